// Package strength scores passwords against five fixed criteria.
package strength

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Criterion is one scoring rule. Its value doubles as the i18n message id.
type Criterion string

const (
	Length    Criterion = "strength.criterion.length"
	Uppercase Criterion = "strength.criterion.uppercase"
	Lowercase Criterion = "strength.criterion.lowercase"
	Digit     Criterion = "strength.criterion.digit"
	Special   Criterion = "strength.criterion.special"
)

// Class is the overall verdict.
type Class string

const (
	VeryWeak   Class = "strength.class.very_weak"
	Weak       Class = "strength.class.weak"
	Strong     Class = "strength.class.strong"
	VeryStrong Class = "strength.class.very_strong"
)

// MinLength is the length criterion threshold in characters.
const MinLength = 8

// SpecialChars is the set counted by the Special criterion.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

var order = []Criterion{Length, Uppercase, Lowercase, Digit, Special}

// Criteria returns the criteria in display order.
func Criteria() []Criterion {
	out := make([]Criterion, len(order))
	copy(out, order)
	return out
}

// Report is the result of Score.
type Report struct {
	Criteria map[Criterion]bool
	Points   int
	Class    Class
}

// Score evaluates password. Every satisfied criterion is worth one point.
func Score(password string) Report {
	met := map[Criterion]bool{
		Length:    utf8.RuneCountInString(password) >= MinLength,
		Uppercase: strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }),
		Lowercase: strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }),
		Digit:     strings.ContainsFunc(password, unicode.IsDigit),
		Special:   strings.ContainsAny(password, SpecialChars),
	}

	points := 0
	for _, ok := range met {
		if ok {
			points++
		}
	}
	return Report{Criteria: met, Points: points, Class: Classify(points)}
}

// Classify maps a point total to its class.
func Classify(points int) Class {
	switch {
	case points >= 5:
		return VeryStrong
	case points >= 3:
		return Strong
	case points == 2:
		return Weak
	default:
		return VeryWeak
	}
}
