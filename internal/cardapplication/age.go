package cardapplication

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	v "card-application-workers/internal/common/validation"
)

// DefaultMinimumAge is the youngest age, in years, at which an applicant may apply.
const DefaultMinimumAge = 18

// AgeCutoff selects how "now minus N years" is computed.
type AgeCutoff string

const (
	// AgeCutoffFixed365 subtracts N × 365 days, ignoring leap days.
	AgeCutoffFixed365 AgeCutoff = "fixed365"
	// AgeCutoffCalendar subtracts N calendar years.
	AgeCutoffCalendar AgeCutoff = "calendar"
)

const (
	msgDOBRequired = `"dob" is a required field`
	msgDOBEmpty    = `"dob" cannot be an empty field`
	msgDOBInvalid  = `"dob" must be a valid date`
	msgDOBAge      = `"dob" is invalid. You must be %d years old.`
)

// epochMillisPattern matches numeric strings, which are read as epoch milliseconds.
var epochMillisPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseAgeCutoff accepts "fixed365" or "calendar" (case-insensitive). Empty means fixed365.
func ParseAgeCutoff(s string) (AgeCutoff, error) {
	switch AgeCutoff(strings.ToLower(strings.TrimSpace(s))) {
	case "", AgeCutoffFixed365:
		return AgeCutoffFixed365, nil
	case AgeCutoffCalendar:
		return AgeCutoffCalendar, nil
	default:
		return "", fmt.Errorf("unknown age cutoff %q", s)
	}
}

// Cutoff returns the latest date of birth allowed at now.
func Cutoff(now time.Time, years int, mode AgeCutoff) time.Time {
	if mode == AgeCutoffCalendar {
		return now.AddDate(-years, 0, 0)
	}
	return now.Add(-time.Duration(years) * 365 * 24 * time.Hour)
}

// ParseDOB reads a date of birth given as a time.Time, a date string or epoch milliseconds,
// either as a number or a numeric string.
func ParseDOB(raw interface{}) (time.Time, error) {
	switch val := raw.(type) {
	case time.Time:
		return val, nil
	case string:
		s := strings.TrimSpace(val)
		if epochMillisPattern.MatchString(s) {
			ms, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return time.Time{}, fmt.Errorf("unrecognized date %q", val)
			}
			return time.UnixMilli(int64(ms)).UTC(), nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", val)
	case float64:
		return time.UnixMilli(int64(val)).UTC(), nil
	case int:
		return time.UnixMilli(int64(val)).UTC(), nil
	case int64:
		return time.UnixMilli(val).UTC(), nil
	case json.Number:
		ms, err := val.Int64()
		if err != nil {
			return time.Time{}, fmt.Errorf("unrecognized date %q", val)
		}
		return time.UnixMilli(ms).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", raw)
	}
}

// checkAge validates the dob entry of p against cutoff. A missing dob is left to the schema.
func checkAge(p Payload, cutoff time.Time, minimumAge int) *v.Violation {
	raw, ok := p[FieldDOB]
	if !ok {
		return nil
	}
	if s, isString := raw.(string); isString && strings.TrimSpace(s) == "" {
		return &v.Violation{Field: FieldDOB, Code: v.CodeEmpty, Message: msgDOBEmpty}
	}

	dob, err := ParseDOB(raw)
	if err != nil {
		return &v.Violation{Field: FieldDOB, Code: v.CodeInvalidDate, Message: msgDOBInvalid}
	}
	if dob.After(cutoff) {
		return &v.Violation{Field: FieldDOB, Code: v.CodeAge, Message: fmt.Sprintf(msgDOBAge, minimumAge)}
	}
	return nil
}
