// Package pattern implements the integral-selection grammar: a
// comma-separated list of 4-character templates, each character a
// wildcard, a fixed 1-based digit, or a named slot whose first
// occurrence binds a value that later occurrences of the same letter
// must match. Grounded on original_source/src/Pattern.hpp.
package pattern

import (
	"fmt"
	"strings"
)

// Pattern is a compiled list of 4-character templates.
type Pattern struct {
	templates []string
}

// New compiles description, a comma-separated list of 4-character
// templates, validating every character.
func New(description string) (*Pattern, error) {
	var templates []string
	for _, tmpl := range strings.Split(description, ",") {
		if err := checkTemplate(tmpl); err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return &Pattern{templates: templates}, nil
}

func checkTemplate(tmpl string) error {
	if len(tmpl) != 4 {
		return fmt.Errorf("pattern: template %q must have exactly 4 characters", tmpl)
	}
	for _, c := range tmpl {
		if !validCharacter(c) {
			return fmt.Errorf("pattern: invalid character %q in template %q", c, tmpl)
		}
	}
	return nil
}

// validCharacter mirrors Pattern::checkCharacter's ASCII isalnum(c) &&
// c!='0' test, restricted to the single-byte range the 128-entry
// assignment table indexes into.
func validCharacter(c rune) bool {
	if c == '*' {
		return true
	}
	if c >= 128 {
		return false
	}
	b := byte(c)
	isAlnum := (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
	return isAlnum && b != '0'
}

// Match reports whether the 1-based index quadruple (i0,i1,i2,i3)
// matches at least one of the compiled templates.
func (p *Pattern) Match(i0, i1, i2, i3 int) bool {
	for _, tmpl := range p.templates {
		if matchTemplate(tmpl, i0, i1, i2, i3) {
			return true
		}
	}
	return false
}

func matchTemplate(tmpl string, i0, i1, i2, i3 int) bool {
	var assignments [128]int
	indices := [4]int{i0, i1, i2, i3}
	for k, c := range tmpl {
		if !matchLetter(byte(c), indices[k], &assignments) {
			return false
		}
	}
	return true
}

func matchLetter(c byte, i int, assignments *[128]int) bool {
	switch {
	case c == '*':
		return true
	case c >= '1' && c <= '9':
		return i == int(c-'0')
	default:
		if assignments[c] != 0 {
			return i == assignments[c]
		}
		assignments[c] = i
		return true
	}
}
