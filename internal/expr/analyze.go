// Package expr classifies circuit input text. A field's raw text is either a
// bare literal the prover can consume directly, or an expression that has to
// go through the evaluator before it becomes a witness value.
package expr

import (
	"strings"
	"unicode"
)

// Analysis is the classification of one input string.
type Analysis struct {
	// IsExpression is true when the text is not a bare numeric or
	// array-of-numbers literal.
	IsExpression bool
	// IsPartial is true when the text looks like an in-progress expression
	// that is not yet syntactically complete (unmatched opening delimiter,
	// trailing operator, unterminated string).
	IsPartial bool
}

const eof = -1

// Analyze classifies text. It is a total function: any input gets a
// classification, nothing is rejected. It is pure and cheap enough to run
// on every keystroke.
func Analyze(text string) Analysis {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Analysis{}
	}

	s := &scanner{input: trimmed}
	literal := s.scanLiteral() && s.peek() == eof

	return Analysis{
		IsExpression: !literal,
		IsPartial:    isPartial(trimmed),
	}
}

// scanner walks runes over the trimmed input. The technique follows the
// usual hand-rolled lexer shape: peek/next over a byte offset, no
// tokenization, since only literal-ness needs to be decided.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) peek() rune {
	if s.pos >= len(s.input) {
		return eof
	}
	return rune(s.input[s.pos])
}

func (s *scanner) next() rune {
	ch := s.peek()
	if ch != eof {
		s.pos++
	}
	return ch
}

func (s *scanner) skipSpace() {
	for s.peek() == ' ' || s.peek() == '\t' {
		s.pos++
	}
}

// scanLiteral consumes one literal: a signed number or a (possibly nested)
// array of literals. Returns false as soon as the shape breaks.
func (s *scanner) scanLiteral() bool {
	s.skipSpace()
	if s.peek() == '[' {
		return s.scanArray()
	}
	return s.scanNumber()
}

func (s *scanner) scanNumber() bool {
	if s.peek() == '-' {
		s.next()
	}
	if s.peek() == '0' {
		s.next()
		// Hex literals are common for field elements.
		if s.peek() == 'x' || s.peek() == 'X' {
			s.next()
			return s.scanDigits(isHexDigit)
		}
		s.scanDigits(isDigit)
		return true
	}
	return s.scanDigits(isDigit)
}

func (s *scanner) scanDigits(valid func(rune) bool) bool {
	n := 0
	for valid(s.peek()) || (n > 0 && s.peek() == '_') {
		s.next()
		n++
	}
	return n > 0
}

func (s *scanner) scanArray() bool {
	s.next() // consume '['
	s.skipSpace()
	if s.peek() == ']' {
		s.next()
		return true
	}
	for {
		if !s.scanLiteral() {
			return false
		}
		s.skipSpace()
		switch s.peek() {
		case ',':
			s.next()
		case ']':
			s.next()
			return true
		default:
			return false
		}
	}
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// operator runes that, when trailing, mark the expression as half-typed.
const trailingOperators = "+-*/%^&|<>=!,.:"

// isPartial reports whether the text is syntactically incomplete. Delimiters
// inside string literals do not count toward the balance.
func isPartial(text string) bool {
	depth := 0
	var quote rune
	for _, ch := range text {
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			quote = ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	if depth > 0 || quote != 0 {
		return true
	}

	last, _ := lastNonSpace(text)
	return strings.ContainsRune(trailingOperators, last)
}

func lastNonSpace(text string) (rune, bool) {
	runes := []rune(text)
	for i := len(runes) - 1; i >= 0; i-- {
		if !unicode.IsSpace(runes[i]) {
			return runes[i], true
		}
	}
	return 0, false
}
