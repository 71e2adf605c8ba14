package ui

import "testing"

func scanStr(s string) Mode {
	r := []rune(s)
	return ModeTracker{}.Scan(r, len(r))
}

func TestModeStackWhenBufferEmpty(t *testing.T) {
	if got := scanStr(""); got != ModeStack {
		t.Fatalf("want STACK, got %v", got)
	}
}

func TestModeDirectForPlainText(t *testing.T) {
	if got := scanStr("123"); got != ModeDirect {
		t.Fatalf("want DIRECT, got %v", got)
	}
}

func TestModeTextInsideQuotes(t *testing.T) {
	if got := scanStr(`"hello`); got != ModeText {
		t.Fatalf("want TEXT, got %v", got)
	}
}

func TestModeTextClosesAfterMatchingQuote(t *testing.T) {
	if got := scanStr(`"hello" `); got != ModeDirect {
		t.Fatalf("want DIRECT after the string closes, got %v", got)
	}
}

func TestModeProgramInsideBraces(t *testing.T) {
	if got := scanStr("{ 1 2"); got != ModeProgram {
		t.Fatalf("want PROGRAM inside {}, got %v", got)
	}
}

func TestModeProgramInsideGuillemets(t *testing.T) {
	if got := scanStr("« DUP"); got != ModeProgram {
		t.Fatalf("want PROGRAM inside guillemets, got %v", got)
	}
}

func TestModeMatrixInsideBrackets(t *testing.T) {
	if got := scanStr("[ 1 2"); got != ModeMatrix {
		t.Fatalf("want MATRIX inside [], got %v", got)
	}
}

func TestModeParenthesesInsideParens(t *testing.T) {
	if got := scanStr("(1,2"); got != ModeParentheses {
		t.Fatalf("want PARENTHESES inside (), got %v", got)
	}
}

func TestModeAlgebraicInsideTicks(t *testing.T) {
	if got := scanStr("'X+"); got != ModeAlgebraic {
		t.Fatalf("want ALGEBRAIC inside single quotes, got %v", got)
	}
}

func TestModeNestingPopsBackToOuter(t *testing.T) {
	if got := scanStr("{ (1,2) "); got != ModeProgram {
		t.Fatalf("want PROGRAM once the nested () closes, got %v", got)
	}
}

func TestModeBasedTrailingLiteral(t *testing.T) {
	if got := scanStr("#1010"); got != ModeBased {
		t.Fatalf("want BASED, got %v", got)
	}
}

func TestModeUnitTrailingLiteral(t *testing.T) {
	if got := scanStr("5_m"); got != ModeUnit {
		t.Fatalf("want UNIT, got %v", got)
	}
}

func TestModeScanRespectsCursorNotFullBuffer(t *testing.T) {
	buf := []rune("{ 1 2 }")
	// Cursor sitting right after the opening brace: still inside PROGRAM
	// even though the full buffer closes it later.
	if got := (ModeTracker{}).Scan(buf, 2); got != ModeProgram {
		t.Fatalf("want PROGRAM at cursor=2, got %v", got)
	}
	if got := (ModeTracker{}).Scan(buf, len(buf)); got != ModeDirect {
		t.Fatalf("want DIRECT once braces are balanced, got %v", got)
	}
}

func TestModeStringIgnoresDelimitersInsideIt(t *testing.T) {
	if got := scanStr(`"{["`); got != ModeDirect {
		t.Fatalf("delimiters inside a closed string must not affect mode, got %v", got)
	}
}
