package render

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWrapTextKeepsBlankLines(t *testing.T) {
	lines := wrapText("a\n\nb", 10)
	if len(lines) != 3 || lines[1] != "" {
		t.Fatalf("lines=%v", lines)
	}
}

func TestWrapLineRespectsWidth(t *testing.T) {
	lines := wrapLine("one two three four five", 9)
	for _, l := range lines {
		if runewidth.StringWidth(l) > 9 {
			t.Fatalf("line %q exceeds width", l)
		}
	}
	if strings.Join(strings.Fields(strings.Join(lines, " ")), " ") != "one two three four five" {
		t.Fatalf("words lost: %v", lines)
	}
}

func TestWrapBreaksLongWord(t *testing.T) {
	lines := wrapLine("abcdefghij", 4)
	if len(lines) != 3 {
		t.Fatalf("lines=%v", lines)
	}
}

func TestWrapCountsWideRunes(t *testing.T) {
	// 每个汉字占两列，宽度 4 每行最多两个。
	lines := breakLongWord("你好世界", 4)
	if len(lines) != 2 || lines[0] != "你好" || lines[1] != "世界" {
		t.Fatalf("lines=%v", lines)
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := TruncateToWidth("hello", 3); got != "hel" {
		t.Fatalf("got %q", got)
	}
	if got := TruncateToWidth("你好世界", 5); got != "你好" {
		t.Fatalf("got %q", got)
	}
	if got := TruncateToWidth("x", 0); got != "" {
		t.Fatalf("got %q", got)
	}
}
