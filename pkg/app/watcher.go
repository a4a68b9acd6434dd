package app

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// configWatcher 监听属性配置文件的修改
//
// 监听的是文件所在目录而不是文件本身：很多编辑器保存时会先写临时文件再重命名，
// 直接监听文件会在第一次保存后丢失。
// 事件在后台 goroutine 中接收，通过 changes 通道交给游戏循环处理，
// 配置对象只在 Update 中读写。
type configWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan string
	done    chan struct{}
}

// newConfigWatcher 开始监听 path
func newConfigWatcher(path string) (*configWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &configWatcher{
		watcher: watcher,
		path:    abs,
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go w.loop()

	log.Printf("[Watcher] Watching %s", abs)
	return w, nil
}

func (w *configWatcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isConfigChange(event, w.path) {
				continue
			}
			// 通道满说明上一次修改还没处理，合并成一次重载
			select {
			case w.changes <- w.path:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Watcher] Error: %v", err)
		}
	}
}

// isConfigChange 判断事件是否是目标文件的写入或重建
func isConfigChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// poll 非阻塞地取出一次待处理的修改
func (w *configWatcher) poll() (string, bool) {
	select {
	case path := <-w.changes:
		return path, true
	default:
		return "", false
	}
}

// Close 停止监听
func (w *configWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
