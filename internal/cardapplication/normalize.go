package cardapplication

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Normalize returns a normalized copy of p. It never fails and never mutates p.
//
// Tracking fields are defaulted to "", name parts are trimmed when both first_name and
// last_name are present, and numeric strings in numeric fields become float64.
func Normalize(p Payload) Payload {
	out := p.Clone()

	for _, key := range []string{FieldAffiliateID, FieldReferredBy, FieldIP} {
		if !out.Has(key) {
			out[key] = ""
		}
	}

	if out.Has(FieldFirstName) && out.Has(FieldLastName) {
		trimKey(out, FieldFirstName)
		trimKey(out, FieldLastName)
		if out.Has(FieldMiddleName) {
			trimKey(out, FieldMiddleName)
		} else {
			out[FieldMiddleName] = ""
		}
	}

	for _, key := range numericFields {
		coerceNumber(out, key)
	}
	return out
}

func trimKey(p Payload, key string) {
	if s, ok := p.String(key); ok {
		p[key] = strings.TrimSpace(s)
	}
}

func coerceNumber(p Payload, key string) {
	switch raw := p[key].(type) {
	case string:
		s := strings.TrimSpace(raw)
		if s == "" {
			if blankableNumericFields[key] {
				delete(p, key)
			}
			return
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && finite(f) {
			p[key] = f
		}
	case json.Number:
		if f, err := raw.Float64(); err == nil && finite(f) {
			p[key] = f
		}
	}
}

// finite rejects "NaN" and "Inf" spellings that ParseFloat accepts but JSON cannot carry.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// names returns the trimmed name parts used for emboss generation.
func names(p Payload) (first, middle, last string) {
	first, _ = p.String(FieldFirstName)
	middle, _ = p.String(FieldMiddleName)
	last, _ = p.String(FieldLastName)
	return strings.TrimSpace(first), strings.TrimSpace(middle), strings.TrimSpace(last)
}
