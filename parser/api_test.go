package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestParseStringPropagatesLexErrors(t *testing.T) {
	_, err := ParseString(`PRINT("open`)
	var lerr *LexError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *LexError, got %T (%v)", err, err)
	}
	if !IsIncomplete(err) {
		t.Fatalf("expected unterminated string to be incomplete")
	}
}

func TestParseStringPropagatesSyntaxErrors(t *testing.T) {
	if _, err := ParseString("LET = 1"); err == nil || !strings.Contains(err.Error(), "expected variable name") {
		t.Fatalf("expected syntax error for malformed declaration, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestParseReaderHandlesIOReturns(t *testing.T) {
	if _, err := ParseReader(failingReader{}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected underlying IO error, got %v", err)
	}

	tree, err := ParseReader(strings.NewReader("LET value : INTEGER = 5; value;"))
	if err != nil {
		t.Fatalf("ParseReader returned error: %v", err)
	}
	if len(tree.Stmts) != 2 {
		t.Fatalf("expected two statements from reader, got %d", len(tree.Stmts))
	}
}

func TestIsIncompleteIgnoresOtherErrors(t *testing.T) {
	if IsIncomplete(errors.New("plain")) {
		t.Fatalf("plain errors are never incomplete")
	}
	if IsIncomplete(nil) {
		t.Fatalf("nil is never incomplete")
	}
}
