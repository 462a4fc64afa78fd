package validation

import "testing"

func TestIsTokenCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"canonical", "TFX-A1B2C3-D4E5F6", true},
		{"lower case accepted", "tfx-a1b2c3-d4e5f6", true},
		{"all digits", "TFX-123456-654321", true},
		{"wrong prefix", "TLX-A1B2C3-D4E5F6", false},
		{"short block", "TFX-A1B2C-D4E5F6", false},
		{"long block", "TFX-A1B2C3A-D4E5F6", false},
		{"missing block", "TFX-A1B2C3", false},
		{"embedded garbage", "TFX-A1B2C3-D4E5F6X", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTokenCode(tt.code); got != tt.want {
				t.Errorf("IsTokenCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
