package cardapplication

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	v "card-application-workers/internal/common/validation"
)

// MaxEmbossLength is the longest printable emboss line, in characters.
const MaxEmbossLength = 20

const (
	msgEmbossEmpty    = `"emboss" can't be empty`
	msgEmbossMismatch = `"emboss" should be from the [%s]`
)

// GenerateEmbossOptions lists the emboss strings an applicant may choose, in a fixed order.
// Candidates longer than MaxEmbossLength are dropped, never truncated. The result is empty
// unless both first and last are non-empty.
func GenerateEmbossOptions(first, middle, last string) []string {
	if first == "" || last == "" {
		return []string{}
	}

	var candidates []string
	if middle != "" {
		if utf8.RuneCountInString(middle) > 1 {
			candidates = append(candidates, first+" "+middle+" "+last)
		}
		candidates = append(candidates,
			initial(first)+" "+initial(middle)+" "+last,
			first+" "+initial(middle)+" "+last,
		)
	}
	candidates = append(candidates,
		initial(first)+" "+last,
		first+" "+last,
	)
	if middle != "" {
		candidates = append(candidates, middle+" "+last)
	}

	options := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if utf8.RuneCountInString(c) <= MaxEmbossLength {
			options = append(options, c)
		}
	}
	return options
}

// initial is the first character of name, upper-cased.
func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

// MatchEmboss checks the submitted emboss against options, ignoring case. It returns nil
// when the emboss matches.
func MatchEmboss(emboss interface{}, options []string) *v.Violation {
	s, isString := emboss.(string)
	if emboss == nil || (isString && s == "") {
		return &v.Violation{Field: FieldEmboss, Code: v.CodeEmbossEmpty, Message: msgEmbossEmpty}
	}

	if isString {
		for _, o := range options {
			if strings.ToLower(o) == strings.ToLower(s) {
				return nil
			}
		}
	}

	return &v.Violation{
		Field:   FieldEmboss,
		Code:    v.CodeEmbossMismatch,
		Message: fmt.Sprintf(msgEmbossMismatch, strings.Join(options, ",")),
	}
}
