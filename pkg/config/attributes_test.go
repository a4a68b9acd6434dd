package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/colors"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/gravity"
)

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *Attributes)
	}{
		{
			name:        "empty file uses defaults",
			yamlContent: ``,
			validate: func(t *testing.T, a *Attributes) {
				if !a.TitleEnabled {
					t.Error("expected titleEnabled default true")
				}
				expanded, collapsed, err := a.Gravities()
				if err != nil {
					t.Fatalf("Gravities() error: %v", err)
				}
				if expanded != gravity.Start|gravity.Bottom {
					t.Errorf("expected expanded gravity start|bottom, got %s", expanded)
				}
				if collapsed != gravity.Start|gravity.CenterVertical {
					t.Errorf("expected collapsed gravity start|center_vertical, got %s", collapsed)
				}
				if a.ScrimVisibleHeightTrigger != ScrimTriggerAuto {
					t.Errorf("expected auto scrim trigger, got %d", a.ScrimVisibleHeightTrigger)
				}
				if a.Toolbar.Height != DefaultToolbarHeight {
					t.Errorf("expected toolbar height %d, got %d", DefaultToolbarHeight, a.Toolbar.Height)
				}
			},
		},
		{
			name: "full config",
			yamlContent: `
title: Collapsing Toolbar
subtitle: With subtitle
titleEnabled: true
expandedTitleGravity: center_horizontal|bottom
collapsedTitleGravity: start|center_vertical
expandedTitleMargin: 24
expandedTitleMarginBottom: 40
expandedTitleTextAppearance: Headline
contentScrim: "#FF3F51B5"
statusBarScrim: "#FF303F9F"
toolbarId: toolbar
scrimVisibleHeightTrigger: 180
scrimAnimationDuration: 300
textAppearances:
  Headline:
    textSize: 40
    textColor:
      - states: [pressed]
        color: "#FFFF4081"
      - color: "#FFFFFFFF"
    fontFamily: sans-serif-bold
    shadowRadius: 3
    shadowDx: 1
    shadowDy: 2
    shadowColor: "#80000000"
fonts:
  brand: assets/fonts/brand.ttf
toolbar:
  height: 64
  titleMarginStart: 72
  titleMarginEnd: 16
`,
			validate: func(t *testing.T, a *Attributes) {
				if a.Title != "Collapsing Toolbar" || a.Subtitle != "With subtitle" {
					t.Errorf("unexpected title/subtitle: %q / %q", a.Title, a.Subtitle)
				}
				start, top, end, bottom := a.ExpandedMargins()
				if start != 24 || top != 24 || end != 24 || bottom != 40 {
					t.Errorf("expected margins 24,24,24,40, got %d,%d,%d,%d", start, top, end, bottom)
				}

				ta, ok := a.Appearance("Headline")
				if !ok {
					t.Fatal("expected Headline appearance")
				}
				if ta.TextSize != 40 || ta.FontFamily != "sans-serif-bold" {
					t.Errorf("unexpected appearance: %+v", ta)
				}
				cs := ta.TextColor.ColorSet()
				if cs == nil || !cs.IsStateful() {
					t.Fatal("expected stateful text color")
				}
				if got := cs.ColorForState(colors.StateSet{colors.Pressed}); got != (color.NRGBA{R: 0xff, G: 0x40, B: 0x81, A: 0xff}) {
					t.Errorf("unexpected pressed color %v", got)
				}
				shadow, err := ta.ShadowNRGBA()
				if err != nil || shadow.A != 0x80 {
					t.Errorf("unexpected shadow color %v (err %v)", shadow, err)
				}

				content, statusBar := a.ScrimColors()
				if content != (color.NRGBA{R: 0x3f, G: 0x51, B: 0xb5, A: 0xff}) {
					t.Errorf("unexpected content scrim %v", content)
				}
				if statusBar.A != 0xff {
					t.Errorf("unexpected status bar scrim %v", statusBar)
				}

				if a.Fonts["brand"] != "assets/fonts/brand.ttf" {
					t.Errorf("unexpected fonts %v", a.Fonts)
				}
				if a.Toolbar.Height != 64 || a.Toolbar.TitleMarginStart != 72 {
					t.Errorf("unexpected toolbar %+v", a.Toolbar)
				}

				// 未覆盖的外观引用仍然指向内置外观
				if _, ok := a.Appearance(a.CollapsedTitleTextAppearance); !ok {
					t.Error("expected builtin collapsed title appearance")
				}
			},
		},
		{
			name:        "invalid gravity",
			yamlContent: `expandedTitleGravity: start|sideways`,
			wantErr:     true,
			errContains: "expandedTitleGravity",
		},
		{
			name:        "unknown appearance reference",
			yamlContent: `collapsedTitleTextAppearance: Missing`,
			wantErr:     true,
			errContains: "unknown text appearance",
		},
		{
			name:        "negative margin",
			yamlContent: `expandedTitleMarginStart: -4`,
			wantErr:     true,
			errContains: "expandedTitleMargin start",
		},
		{
			name:        "invalid scrim color",
			yamlContent: `contentScrim: "blue"`,
			wantErr:     true,
			errContains: "contentScrim",
		},
		{
			name:        "negative scrim duration",
			yamlContent: `scrimAnimationDuration: -1`,
			wantErr:     true,
			errContains: "scrimAnimationDuration",
		},
		{
			name:        "scrim trigger below auto",
			yamlContent: `scrimVisibleHeightTrigger: -2`,
			wantErr:     true,
			errContains: "scrimVisibleHeightTrigger",
		},
		{
			name: "invalid text color",
			yamlContent: `
textAppearances:
  Bad:
    textColor: "#12"
`,
			wantErr:     true,
			errContains: "failed to parse",
		},
		{
			name: "unknown state",
			yamlContent: `
textAppearances:
  Bad:
    textColor:
      - states: [sleeping]
        color: "#FFFFFFFF"
`,
			wantErr:     true,
			errContains: "unknown view state",
		},
		{
			name: "empty state list",
			yamlContent: `
textAppearances:
  Bad:
    textColor: []
`,
			wantErr:     true,
			errContains: "empty color state list",
		},
		{
			name: "invalid shadow color",
			yamlContent: `
expandedTitleTextAppearance: Shadowed
textAppearances:
  Shadowed:
    textSize: 30
    shadowColor: "shadow"
`,
			wantErr:     true,
			errContains: "shadowColor",
		},
		{
			name:        "malformed yaml",
			yamlContent: "title: [unclosed",
			wantErr:     true,
			errContains: "failed to parse attributes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs, err := ParseAttributes([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, attrs)
			}
		})
	}
}

func TestNegatedStateSpec(t *testing.T) {
	attrs, err := ParseAttributes([]byte(`
textAppearances:
  Toggle:
    textColor:
      - states: [-enabled]
        color: "#FF888888"
      - color: "#FF000000"
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ta, _ := attrs.Appearance("Toggle")
	cs := ta.TextColor.ColorSet()
	if got := cs.ColorForState(colors.StateSet{}); got.R != 0x88 {
		t.Errorf("disabled color = %v, expected gray", got)
	}
	if got := cs.ColorForState(colors.StateSet{colors.Enabled}); got.R != 0 {
		t.Errorf("enabled color = %v, expected black", got)
	}
}

func TestLoadAttributes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collapsing_toolbar.yaml")
	if err := os.WriteFile(path, []byte("title: From file\n"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	attrs, err := LoadAttributes(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attrs.Title != "From file" {
		t.Errorf("expected title 'From file', got %q", attrs.Title)
	}

	_, err = LoadAttributes(filepath.Join(dir, "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read attributes") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestColorValueUnset(t *testing.T) {
	var v ColorValue
	if v.IsSet() || v.ColorSet() != nil {
		t.Error("zero ColorValue should be unset")
	}
	v = NewColorValue(colors.Solid(color.NRGBA{A: 0xff}))
	if !v.IsSet() {
		t.Error("expected ColorValue to be set")
	}
}
