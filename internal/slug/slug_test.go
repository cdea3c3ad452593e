package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Trip! #1", "my-trip-1"},
		{"  leading/trailing -- ", "leading-trailing"},
		{"Goa Beach Escape", "goa-beach-escape"},
		{"ALL CAPS", "all-caps"},
		{"already-a-slug", "already-a-slug"},
		{"multiple   spaces", "multiple-spaces"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Make(tt.in); got != tt.want {
			t.Fatalf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
