package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Source", "Words", "WPM"}
	rows := [][]string{
		{"stdin", "120", "312.5"},
		{"novel.txt", "4", "80.0"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Source     Words    WPM" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "stdin        120  312.5" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "novel.txt      4   80.0" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Source", "Words"}, [][]string{{"日本", "1"}}, nil)
	if lines[1] != "日本    1" {
		t.Fatalf("unexpected wide-rune row: %q", lines[1])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty table, got %v", lines)
	}
}
