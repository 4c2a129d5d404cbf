package shift

import "testing"

// TestIsValidClock 测试 HH:MM 时刻格式校验
func TestIsValidClock(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"09:00", true},
		{"00:00", true},
		{"23:59", true},
		{"12:30", true},

		{"24:00", false},
		{"9:00", false},
		{"09:60", false},
		{"09-00", false},
		{"09:00:00", false},
		{"", false},
		{"morning", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isValidClock(tt.input); got != tt.expected {
				t.Errorf("isValidClock(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestGenerateID 测试 ID 生成格式与唯一性
func TestGenerateID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := generateID("shift")
		if len(id) != len("shift-")+12 {
			t.Fatalf("unexpected id length: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}
