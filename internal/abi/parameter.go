// Package abi models the input interface of a compiled circuit: the
// parameters of its main function, their declared types, and how their
// values are presented in the playground.
package abi

import (
	"fmt"
	"strconv"
	"strings"
)

// defaultArrayLength is used when a parameter is flagged as an array but no
// length could be determined from its type label.
const defaultArrayLength = 3

// Parameter is the static metadata of one circuit input. It is fixed for
// the lifetime of a rendered field.
type Parameter struct {
	Name        string
	Type        string // declared type label, e.g. "Field" or "[Field; 3]"
	IsPublic    bool
	IsArray     bool
	ArrayLength int
}

// NewParameter builds a Parameter from a declared type label, filling the
// array shape when the label denotes one.
func NewParameter(name, typeLabel string, isPublic bool) Parameter {
	p := Parameter{Name: name, Type: typeLabel, IsPublic: isPublic}
	if _, length, ok := ParseArrayType(typeLabel); ok {
		p.IsArray = true
		p.ArrayLength = length
	}
	return p
}

// ParseArrayType parses an array type label of the form "[Elem; N]".
// Returns ok=false for scalar labels. A malformed or missing length yields
// length 0; callers fall back to the default.
func ParseArrayType(label string) (elem string, length int, ok bool) {
	label = strings.TrimSpace(label)
	if !strings.HasPrefix(label, "[") || !strings.HasSuffix(label, "]") {
		return "", 0, false
	}
	inner := label[1 : len(label)-1]
	elem, lenStr, found := strings.Cut(inner, ";")
	elem = strings.TrimSpace(elem)
	if !found {
		return elem, 0, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(lenStr))
	if err != nil || n < 0 {
		return elem, 0, true
	}
	return elem, n, true
}

// Placeholder returns the hint text shown in an empty field: a zero-filled
// array literal for array parameters, "0" for scalars.
func (p Parameter) Placeholder() string {
	if !p.IsArray {
		return "0"
	}
	n := p.ArrayLength
	if n <= 0 {
		n = defaultArrayLength
	}
	zeros := make([]string, n)
	for i := range zeros {
		zeros[i] = "0"
	}
	return "[" + strings.Join(zeros, ", ") + "]"
}

// DisplayType returns the type label with visibility, as it appears in the
// circuit signature, e.g. "pub Field".
func (p Parameter) DisplayType() string {
	if p.IsPublic {
		return "pub " + p.Type
	}
	return p.Type
}

// String implements fmt.Stringer for logs.
func (p Parameter) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.DisplayType())
}
