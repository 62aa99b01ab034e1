package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 6, "hello…"},
		{"hello", 0, ""},
		{"héllo wörld", 6, "héllo…"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPad(t *testing.T) {
	if got := Pad("ab", 4); got != "ab  " {
		t.Errorf("Pad = %q", got)
	}
	if got := Pad("abcdef", 4); lipgloss.Width(got) != 4 {
		t.Errorf("Pad width = %d, want 4", lipgloss.Width(got))
	}
}

func TestHighlightKeepsText(t *testing.T) {
	plain := lipgloss.NewStyle()
	got := Highlight("accusamus", []int{0, 2}, plain)
	if lipgloss.Width(got) != len("accusamus") {
		t.Errorf("highlighted width = %d", lipgloss.Width(got))
	}
	if Highlight("abc", nil, plain) != "abc" {
		t.Error("no offsets should render the base style only")
	}
}
