/*
 * rpl48 - Editor mode tracker.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package ui implements the input-mode tracker, the command-line buffer it
// drives, shift/alpha planes, the key-to-object table, and soft-key menus with
// pagination and history. Generalized from a line-editing REPL (a single
// buffer, a completer callback, a commit-on-Enter cycle) into a full
// mode-classifying editor: the mode tracker is a pure function of the buffer
// and cursor, implemented as a small character-class automaton with nested
// bracket counters.
package ui

// Mode is the editing mode that decides how the next keystroke is injected
// into the command-line buffer.
type Mode int

const (
	ModeStack Mode = iota
	ModeDirect
	ModeText
	ModeProgram
	ModeAlgebraic
	ModeParentheses
	ModePostfix
	ModeInfix
	ModeConstant
	ModeMatrix
	ModeBased
	ModeUnit
)

func (m Mode) String() string {
	switch m {
	case ModeStack:
		return "STACK"
	case ModeDirect:
		return "DIRECT"
	case ModeText:
		return "TEXT"
	case ModeProgram:
		return "PROGRAM"
	case ModeAlgebraic:
		return "ALGEBRAIC"
	case ModeParentheses:
		return "PARENTHESES"
	case ModePostfix:
		return "POSTFIX"
	case ModeInfix:
		return "INFIX"
	case ModeConstant:
		return "CONSTANT"
	case ModeMatrix:
		return "MATRIX"
	case ModeBased:
		return "BASED"
	case ModeUnit:
		return "UNIT"
	default:
		return "?"
	}
}

// bracket is one nesting level the scan tracks, tagged with the
// delimiter that opened it so Scan can report which mode it implies.
type bracket struct {
	open rune
	mode Mode
}

// ModeTracker is a pure function of buffer+cursor: it scans the buffer from
// start to cursor counting the nesting depth of the delimiters, and checks
// separately for a trailing based or unit literal. It does not track
// whether the cursor sits in a run of digits/exponent/decimal-mark.
type ModeTracker struct{}

// Scan recomputes the active mode by walking buf[:cursor] once,
// maintaining a stack of open delimiters. A based-number literal
// ("#1010b") and a unit group ("_m") are detected as trailing runs
// rather than pushed onto the bracket stack, since neither nests.
func (ModeTracker) Scan(buf []rune, cursor int) Mode {
	if cursor > len(buf) {
		cursor = len(buf)
	}
	var stack []bracket
	inString := false

	for i := 0; i < cursor; i++ {
		r := buf[i]
		if inString {
			if r == '"' {
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '\'':
			if top, ok := topOf(stack); ok && top.open == '\'' {
				stack = stack[:len(stack)-1]
			} else {
				stack = append(stack, bracket{'\'', ModeAlgebraic})
			}
		case '{':
			stack = append(stack, bracket{'{', ModeProgram})
		case '}':
			stack = popMatching(&stack, '{')
		case '[':
			stack = append(stack, bracket{'[', ModeMatrix})
		case ']':
			stack = popMatching(&stack, '[')
		case '(':
			stack = append(stack, bracket{'(', ModeParentheses})
		case ')':
			stack = popMatching(&stack, '(')
		case '«':
			stack = append(stack, bracket{'«', ModeProgram})
		case '»':
			stack = popMatching(&stack, '«')
		}
	}

	if inString {
		return ModeText
	}
	if top, ok := topOf(stack); ok {
		return top.mode
	}

	if mode, ok := trailingBasedOrUnit(buf, cursor); ok {
		return mode
	}
	if cursor > 0 {
		return ModeDirect
	}
	return ModeStack
}

func topOf(stack []bracket) (bracket, bool) {
	if len(stack) == 0 {
		return bracket{}, false
	}
	return stack[len(stack)-1], true
}

// popMatching pops the top of stack iff it was opened by open; an unmatched
// close is ignored rather than raising a syntax error here — the parser is the
// one that reports unterminated constructs.
func popMatching(stack *[]bracket, open rune) []bracket {
	s := *stack
	if len(s) == 0 {
		return s
	}
	if s[len(s)-1].open != open {
		return s
	}
	return s[:len(s)-1]
}

// trailingBasedOrUnit reports whether the run of characters immediately
// before cursor forms a based-integer literal ("#..." with no
// whitespace since the '#') or a unit group ("_..." similarly), neither
// of which nests and so isn't tracked on the bracket stack.
func trailingBasedOrUnit(buf []rune, cursor int) (Mode, bool) {
	i := cursor - 1
	for i >= 0 {
		r := buf[i]
		switch {
		case r == '#':
			return ModeBased, true
		case r == '_':
			return ModeUnit, true
		case isWordChar(r):
			i--
		default:
			return 0, false
		}
	}
	return 0, false
}

func isWordChar(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '.'
}
