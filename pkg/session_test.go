package gcgen

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg/gcd"
)

func TestPreview(t *testing.T) {
	cases := []struct {
		x, y, want string
	}{
		{"1.50", "2", "G1 X1.5 Y2"},
		{"1", "", "G1 X1 Y?"},
		{"", "2", "G1 X? Y2"},
		{"", "", "G1 X? Y?"},
		{"abc", "2", "G1 X? Y2"},
	}

	for _, c := range cases {
		if got := Preview(c.x, c.y); got != c.want {
			t.Errorf("Preview(%q, %q) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
}

func TestSubmitCanonicalizes(t *testing.T) {
	s := NewSession()

	record, err := s.Submit(" 2.250 ", "10.0")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if record != "G1 X2.25 Y10" {
		t.Errorf("record = %q, want %q", record, "G1 X2.25 Y10")
	}
}

func TestSubmitRejectsBadInput(t *testing.T) {
	s := NewSession()

	for _, c := range [][2]string{{"abc", "1"}, {"1", ""}, {"", ""}, {"NaN", "1"}, {"1", "Inf"}} {
		if _, err := s.Submit(c[0], c[1]); !errors.Is(err, gcd.ErrBadNumber) {
			t.Errorf("Submit(%q, %q): expected ErrBadNumber, got %v", c[0], c[1], err)
		}
	}

	if len(s.Records()) != 0 {
		t.Errorf("rejected submits must not mutate, got %d records", len(s.Records()))
	}
}

func TestSubmitMergeReturnsEndpoint(t *testing.T) {
	s := NewSession()

	for _, xy := range [][2]string{{"0", "0"}, {"5", "0"}, {"10", "0"}} {
		if _, err := s.Submit(xy[0], xy[1]); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	want := []string{"G1 X0 Y0", "G1 X10 Y0"}
	if got := s.Records(); !reflect.DeepEqual(got, want) {
		t.Errorf("records = %v, want %v", got, want)
	}
}

func TestUndoRevertsOneSubmit(t *testing.T) {
	s := NewSession()

	if _, err := s.Submit("1", "1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit("9", "9"); err != nil {
		t.Fatal(err)
	}

	if !s.Undo() {
		t.Fatal("undo reported nothing to restore")
	}

	want := []string{"G1 X1 Y1"}
	if got := s.Records(); !reflect.DeepEqual(got, want) {
		t.Errorf("records = %v, want %v", got, want)
	}

	if s.Undo() {
		t.Error("second undo without a mutation should be a no-op")
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	s := NewSession()

	input := "M3\nG1 X0 Y0\nG1 X3 Y4 ; diag\nM5\n"
	imported, skipped, err := s.ImportFrom(strings.NewReader(input), true)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if imported != 2 || skipped != 2 {
		t.Errorf("imported %d / skipped %d, want 2 / 2", imported, skipped)
	}

	var sb strings.Builder
	if err := s.ExportTo(&sb); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	want := "M3\nG1 X0 Y0 F200\nG1 X3 Y4\nM5\n"
	if sb.String() != want {
		t.Errorf("program = %q, want %q", sb.String(), want)
	}
}

func TestImportNoMoves(t *testing.T) {
	s := NewSession()
	if _, err := s.Submit("1", "1"); err != nil {
		t.Fatal(err)
	}

	_, _, err := s.ImportFrom(strings.NewReader("; nothing here\nM3\n"), true)
	if !errors.Is(err, gcd.ErrNoMoves) {
		t.Fatalf("expected ErrNoMoves, got %v", err)
	}

	if len(s.Records()) != 1 {
		t.Errorf("failed import must not mutate, got %d records", len(s.Records()))
	}
}

func TestLoopThroughSession(t *testing.T) {
	s := NewSession()
	if _, err := s.Submit("0", "0"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit("1", "0"); err != nil {
		t.Fatal(err)
	}

	groups, err := s.Loop(2, 0, gcd.Bound(5), gcd.Limit{})
	if err != nil {
		t.Fatalf("loop failed: %v", err)
	}

	if groups != 2 {
		t.Errorf("expected 2 groups, got %d", groups)
	}

	if !s.Undo() {
		t.Fatal("undo after loop reported nothing to restore")
	}

	want := []string{"G1 X0 Y0", "G1 X1 Y0"}
	if got := s.Records(); !reflect.DeepEqual(got, want) {
		t.Errorf("records after undo = %v, want %v", got, want)
	}
}

func TestMovesIsReadOnly(t *testing.T) {
	s := NewSession()
	if _, err := s.Submit("1", "2"); err != nil {
		t.Fatal(err)
	}

	moves := s.Moves()
	if len(moves) != 1 || !moves[0].Eq(gcd.Move{X: 1, Y: 2}) {
		t.Fatalf("moves = %+v, want one move at (1,2)", moves)
	}

	moves[0].X = 999
	if got := s.Moves(); !got[0].Eq(gcd.Move{X: 1, Y: 2}) {
		t.Errorf("mutating the returned slice must not affect the document")
	}
}
