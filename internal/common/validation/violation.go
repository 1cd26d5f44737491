package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Code classifies a single rule violation.
type Code string

const (
	CodeRequired       Code = "REQUIRED_FIELD_MISSING"
	CodeInvalidType    Code = "INVALID_TYPE"
	CodeEmpty          Code = "EMPTY_VALUE"
	CodeMinLength      Code = "MIN_LENGTH_VIOLATION"
	CodePattern        Code = "PATTERN_MISMATCH"
	CodeEnum           Code = "INVALID_ENUM_VALUE"
	CodeMinimum        Code = "MINIMUM_VIOLATION"
	CodeMaximum        Code = "MAXIMUM_VIOLATION"
	CodeFormat         Code = "INVALID_FORMAT"
	CodeExtraField     Code = "EXTRA_FIELD"
	CodeInvalidDate    Code = "INVALID_DATE"
	CodeAge            Code = "AGE_REQUIREMENT"
	CodeEmbossEmpty    Code = "EMBOSS_EMPTY"
	CodeEmbossMismatch Code = "EMBOSS_MISMATCH"
	CodeInvalidPayload Code = "INVALID_PAYLOAD"
	CodeInvalid        Code = "INVALID_VALUE"
)

// codeRank orders violations of the same field: presence, then type, then content.
var codeRank = map[Code]int{
	CodeRequired:    0,
	CodeInvalidType: 1,
	CodeEmpty:       2,
	CodeInvalidDate: 3,
	CodePattern:     4,
	CodeMinLength:   5,
	CodeEnum:        6,
	CodeFormat:      7,
	CodeMinimum:     8,
	CodeMaximum:     9,
	CodeAge:         10,
}

// Violation is one broken rule.
type Violation struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Violations is the growable list a validation run accumulates.
type Violations []Violation

// Messages returns the message of every violation in order.
func (vs Violations) Messages() []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Message
	}
	return out
}

// HasField reports whether any violation concerns field.
func (vs Violations) HasField(field string) bool {
	for _, v := range vs {
		if v.Field == field {
			return true
		}
	}
	return false
}

// ForField returns the violations reported for field.
func (vs Violations) ForField(field string) Violations {
	var out Violations
	for _, v := range vs {
		if v.Field == field {
			out = append(out, v)
		}
	}
	return out
}

// Codes returns the distinct codes in first-seen order.
func (vs Violations) Codes() []Code {
	seen := make(map[Code]bool, len(vs))
	var out []Code
	for _, v := range vs {
		if !seen[v.Code] {
			seen[v.Code] = true
			out = append(out, v.Code)
		}
	}
	return out
}

// Sort orders violations by the position of their field in order, then by code rank.
// Fields missing from order sort after the known ones, alphabetically. The sort is stable.
func (vs Violations) Sort(order []string) {
	pos := make(map[string]int, len(order))
	for i, f := range order {
		pos[f] = i
	}
	index := func(field string) int {
		if i, ok := pos[field]; ok {
			return i
		}
		return len(order)
	}
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		ia, ib := index(a.Field), index(b.Field)
		if ia != ib {
			return ia < ib
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		return codeRank[a.Code] < codeRank[b.Code]
	})
}

// Policy decides how a violation list collapses into the single outward error message.
type Policy string

const (
	// PolicyAbortEarly reports the first violation in field order, as a validator that stops
	// at the first broken field would. An emboss violation, which is checked after the field
	// rules, replaces it.
	PolicyAbortEarly Policy = "abort_early"
	// PolicyLast keeps only the last violation's message. Later checks overwrite earlier ones.
	PolicyLast Policy = "last"
	// PolicyFirst keeps only the first violation's message.
	PolicyFirst Policy = "first"
	// PolicyAll joins every message.
	PolicyAll Policy = "all"
)

// MessageSeparator joins messages under PolicyAll.
const MessageSeparator = "; "

// ParsePolicy accepts "abort_early", "last", "first" or "all" (case-insensitive). Empty means
// PolicyAbortEarly.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyAbortEarly:
		return PolicyAbortEarly, nil
	case PolicyLast:
		return PolicyLast, nil
	case PolicyFirst:
		return PolicyFirst, nil
	case PolicyAll:
		return PolicyAll, nil
	default:
		return "", fmt.Errorf("unknown aggregation policy %q", s)
	}
}

// Message collapses the list according to p. An empty list yields "".
func (vs Violations) Message(p Policy) string {
	if len(vs) == 0 {
		return ""
	}
	if p == PolicyAll {
		return strings.Join(vs.Messages(), MessageSeparator)
	}
	return vs[vs.surfacedIndex(p)].Message
}

// Surfaced returns the violation whose message p reports. PolicyAll reports the last one.
func (vs Violations) Surfaced(p Policy) (Violation, bool) {
	if len(vs) == 0 {
		return Violation{}, false
	}
	return vs[vs.surfacedIndex(p)], true
}

func (vs Violations) surfacedIndex(p Policy) int {
	last := len(vs) - 1
	switch p {
	case PolicyFirst:
		return 0
	case PolicyAbortEarly:
		if c := vs[last].Code; c == CodeEmbossEmpty || c == CodeEmbossMismatch {
			return last
		}
		return 0
	default:
		return last
	}
}
