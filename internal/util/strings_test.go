package util

import "testing"

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"needs truncation", "hello world", 8, "hello..."},
		{"tiny max", "hello", 3, "..."},
		{"multibyte runes", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestClipString(t *testing.T) {
	if got := ClipString("abcdef", 4); got != "abcd" {
		t.Errorf("ClipString = %q, want %q", got, "abcd")
	}
	if got := ClipString("abc", 4); got != "abc" {
		t.Errorf("ClipString = %q, want %q", got, "abc")
	}
	if got := ClipString("héllo", 2); got != "hé" {
		t.Errorf("ClipString should count runes, got %q", got)
	}
}
