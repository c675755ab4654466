package gcd

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestImportTextCountsSkips(t *testing.T) {
	input := strings.Join([]string{
		"M3",
		"G1 X0 Y0",
		"G1 X5 Y0",
		"G1 X10 Y0",
		"M5",
	}, "\n")

	moves, skipped, err := ImportText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if len(moves) != 3 {
		t.Errorf("expected 3 moves, got %d", len(moves))
	}

	if skipped != 2 {
		t.Errorf("expected 2 skipped lines, got %d", skipped)
	}
}

func TestImportTextNeverFailsPerLine(t *testing.T) {
	input := "garbage\nG1 Xoops Y1\n\n; note\nG1 X1 Y1\n"

	moves, skipped, err := ImportText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if len(moves) != 1 || skipped != 4 {
		t.Errorf("got %d moves / %d skipped, want 1 / 4", len(moves), skipped)
	}
}

func TestApplyImportReplace(t *testing.T) {
	d := NewDocument()
	d.Append(99, 99)

	moves := []Move{{0, 0}, {5, 0}, {10, 0}}
	if err := ApplyImport(d, moves, true); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	// the merge rule applies across the imported run
	want := []string{"G1 X0 Y0", "G1 X10 Y0"}
	if got := d.Records(); !reflect.DeepEqual(got, want) {
		t.Errorf("records = %v, want %v", got, want)
	}

	// one snapshot covers clear+append: a single undo reverts it all
	if !d.Restore() {
		t.Fatal("restore reported no snapshot")
	}
	if got := d.Records(); !reflect.DeepEqual(got, []string{"G1 X99 Y99"}) {
		t.Errorf("undo after import = %v, want the pre-import record", got)
	}
}

func TestApplyImportAppend(t *testing.T) {
	d := NewDocument()
	d.Append(1, 1)

	if err := ApplyImport(d, []Move{{2, 7}}, false); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	want := []string{"G1 X1 Y1", "G1 X2 Y7"}
	if got := d.Records(); !reflect.DeepEqual(got, want) {
		t.Errorf("records = %v, want %v", got, want)
	}
}

func TestApplyImportNoMoves(t *testing.T) {
	d := NewDocument()
	d.Append(1, 1)

	if err := ApplyImport(d, nil, true); !errors.Is(err, ErrNoMoves) {
		t.Errorf("expected ErrNoMoves, got %v", err)
	}

	if d.Len() != 1 {
		t.Errorf("failed import must not mutate, got %d records", d.Len())
	}
}

func TestExportWrapsAndAddsFeed(t *testing.T) {
	d := NewDocument()
	d.Append(1, 2)

	lines, err := Export(d)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	want := []string{"M3", "G1 X1 Y2 F200", "M5"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestExportFeedOnlyOnFirst(t *testing.T) {
	d := NewDocument()
	d.Append(0, 0)
	d.Append(5, 5)

	lines, err := Export(d)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	want := []string{"M3", "G1 X0 Y0 F200", "G1 X5 Y5", "M5"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestExportKeepsExistingFeed(t *testing.T) {
	d := NewDocument()
	d.records = []string{"G1 X1 Y2 F350"}

	lines, err := Export(d)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if lines[1] != "G1 X1 Y2 F350" {
		t.Errorf("existing feed field must be kept, got %q", lines[1])
	}
}

func TestExportEmptyDocument(t *testing.T) {
	if _, err := Export(NewDocument()); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestWriteProgram(t *testing.T) {
	d := NewDocument()
	d.Append(1, 2)

	var sb strings.Builder
	if err := WriteProgram(&sb, d); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	want := "M3\nG1 X1 Y2 F200\nM5\n"
	if sb.String() != want {
		t.Errorf("program = %q, want %q", sb.String(), want)
	}
}
