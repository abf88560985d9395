package abi

import (
	"fmt"
	"strings"
)

// ParseSignature extracts the input parameters from a circuit source's main
// function, e.g.
//
//	fn main(x: Field, y: pub Field, arr: [Field; 3]) -> pub Field
//
// Only the parameter list is read; the body and return type are ignored.
// This is how the playground derives which input fields to render.
func ParseSignature(source string) ([]Parameter, error) {
	idx := strings.Index(source, "fn main")
	if idx < 0 {
		return nil, fmt.Errorf("no main function in circuit source")
	}
	rest := source[idx:]

	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return nil, fmt.Errorf("malformed main signature: missing parameter list")
	}
	end := matchingParen(rest, open)
	if end < 0 {
		return nil, fmt.Errorf("malformed main signature: unterminated parameter list")
	}

	var params []Parameter
	for _, decl := range splitTopLevel(rest[open+1:end], ',') {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, typeLabel, found := strings.Cut(decl, ":")
		if !found {
			return nil, fmt.Errorf("malformed parameter %q", decl)
		}
		name = strings.TrimSpace(name)
		typeLabel = strings.TrimSpace(typeLabel)

		isPublic := false
		if after, ok := strings.CutPrefix(typeLabel, "pub "); ok {
			isPublic = true
			typeLabel = strings.TrimSpace(after)
		}
		params = append(params, NewParameter(name, typeLabel, isPublic))
	}
	return params, nil
}

// matchingParen returns the index of the ')' closing the '(' at open, or -1.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on sep, ignoring separators nested inside any kind
// of bracket. Array type labels carry commas-adjacent semicolons, and
// future tuple types carry commas proper.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
