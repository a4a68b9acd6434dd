package gravity

import "testing"

// TestAndroidValues 验证常量与平台取值一致
func TestAndroidValues(t *testing.T) {
	tests := []struct {
		name string
		got  Gravity
		want int
	}{
		{"Left", Left, 0x03},
		{"Right", Right, 0x05},
		{"CenterHorizontal", CenterHorizontal, 0x01},
		{"Top", Top, 0x30},
		{"Bottom", Bottom, 0x50},
		{"CenterVertical", CenterVertical, 0x10},
		{"Center", Center, 0x11},
		{"Start", Start, 0x00800003},
		{"End", End, 0x00800005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if int(tt.got) != tt.want {
				t.Errorf("%s = %#x, 期望 %#x", tt.name, int(tt.got), tt.want)
			}
		})
	}
}

// TestAbsolute 测试相对方向解析
func TestAbsolute(t *testing.T) {
	tests := []struct {
		name string
		in   Gravity
		rtl  bool
		want Gravity
	}{
		{"start LTR", Start | CenterVertical, false, Left | CenterVertical},
		{"start RTL", Start | CenterVertical, true, Right | CenterVertical},
		{"end LTR", End | Bottom, false, Right | Bottom},
		{"end RTL", End | Bottom, true, Left | Bottom},
		{"绝对方向不变", Right | Top, true, Right | Top},
		{"居中不受方向影响", Center, true, Center},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Absolute(tt.rtl)
			if got != tt.want {
				t.Errorf("Absolute(%v) = %v, 期望 %v", tt.rtl, got, tt.want)
			}
			if got.IsRelative() {
				t.Errorf("Absolute() 结果仍包含相对方向标志: %#x", int(got))
			}
		})
	}
}

// TestMasks 测试分量提取
func TestMasks(t *testing.T) {
	g := (Start | Bottom).Absolute(false)
	if g.Horizontal() != Left {
		t.Errorf("Horizontal() = %v, 期望 left", g.Horizontal())
	}
	if g.Vertical() != Bottom {
		t.Errorf("Vertical() = %v, 期望 bottom", g.Vertical())
	}
	if Center.Vertical() != CenterVertical || Center.Horizontal() != CenterHorizontal {
		t.Errorf("Center 分量错误: %v / %v", Center.Vertical(), Center.Horizontal())
	}
}

// TestParse 测试属性字符串解析
func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Gravity
		wantErr bool
	}{
		{"start|center_vertical", Start | CenterVertical, false},
		{"START | Bottom", Start | Bottom, false},
		{"center", Center, false},
		{"", NoGravity, false},
		{"right|top", Right | Top, false},
		{"start|middle", NoGravity, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#x, 期望 %#x", tt.input, int(got), int(tt.want))
			}
		})
	}
}

// TestStringRoundTrip 测试 String 输出可以被解析
func TestStringRoundTrip(t *testing.T) {
	for _, g := range []Gravity{Start | Bottom, End | Top, Center, Left | CenterVertical, Right} {
		parsed, err := Parse(g.String())
		if err != nil {
			t.Fatalf("Parse(%q) 失败: %v", g.String(), err)
		}
		if parsed != g {
			t.Errorf("Parse(%q) = %#x, 期望 %#x", g.String(), int(parsed), int(g))
		}
	}
}
