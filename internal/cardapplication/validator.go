package cardapplication

import (
	"fmt"
	"time"

	v "card-application-workers/internal/common/validation"
)

// Options configures a Validator. The zero value gives the default behavior.
type Options struct {
	// Aggregation picks the outward message. Defaults to v.PolicyAbortEarly.
	Aggregation v.Policy
	// AgeCutoff defaults to AgeCutoffFixed365.
	AgeCutoff AgeCutoff
	// MinimumAge defaults to DefaultMinimumAge.
	MinimumAge int
	// Now is read once per Validate call. Defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of one validation run.
type Result struct {
	// Error is the aggregated message; empty when the payload is accepted.
	Error string `json:"error,omitempty"`

	Violations    v.Violations `json:"-"`
	EmbossOptions []string     `json:"-"`
	// Application is the normalized payload that was validated.
	Application Payload `json:"-"`
}

// Valid reports whether the payload was accepted.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Validator runs the full validation pipeline. It is immutable and safe for concurrent use.
type Validator struct {
	schema     *v.Schema
	conditions *v.Conditions
	opts       Options
}

// NewValidator compiles the rule tables and applies option defaults.
func NewValidator(opts Options) (*Validator, error) {
	policy, err := v.ParsePolicy(string(opts.Aggregation))
	if err != nil {
		return nil, err
	}
	opts.Aggregation = policy

	cutoff, err := ParseAgeCutoff(string(opts.AgeCutoff))
	if err != nil {
		return nil, err
	}
	opts.AgeCutoff = cutoff

	if opts.MinimumAge < 0 {
		return nil, fmt.Errorf("minimum age must not be negative, got %d", opts.MinimumAge)
	}
	if opts.MinimumAge == 0 {
		opts.MinimumAge = DefaultMinimumAge
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	schema, err := v.NewSchema(fieldRules, v.SchemaOptions{})
	if err != nil {
		return nil, fmt.Errorf("field rules: %w", err)
	}
	conditions, err := v.NewConditions(conditionalRules)
	if err != nil {
		return nil, fmt.Errorf("conditional rules: %w", err)
	}

	return &Validator{schema: schema, conditions: conditions, opts: opts}, nil
}

// MustNewValidator is NewValidator that panics on error.
func MustNewValidator(opts Options) *Validator {
	val, err := NewValidator(opts)
	if err != nil {
		panic(err)
	}
	return val
}

// Options returns the effective options.
func (val *Validator) Options() Options {
	return val.opts
}

// Validate normalizes p, runs every rule and aggregates the violations. It never fails;
// problems with the payload itself are reported as violations.
func (val *Validator) Validate(p Payload) Result {
	now := val.opts.Now()
	app := Normalize(p)
	options := GenerateEmbossOptions(names(app))

	var vs v.Violations
	if schemaVs, err := val.schema.Validate(app); err != nil {
		// The conditional schemas would fail to load the same document.
		vs = append(vs, invalidPayload(err))
	} else {
		vs = append(vs, schemaVs...)
		condVs, err := val.conditions.Validate(app)
		if err != nil {
			vs = append(vs, invalidPayload(err))
		}
		vs = append(vs, condVs...)
	}

	if ageV := checkAge(app, Cutoff(now, val.opts.MinimumAge, val.opts.AgeCutoff), val.opts.MinimumAge); ageV != nil {
		vs = append(vs, *ageV)
	}
	vs.Sort(val.schema.Order())

	// The emboss check always runs and always reports last.
	if embossV := MatchEmboss(app[FieldEmboss], options); embossV != nil {
		vs = append(vs, *embossV)
	}

	return Result{
		Error:         vs.Message(val.opts.Aggregation),
		Violations:    vs,
		EmbossOptions: options,
		Application:   app,
	}
}

func invalidPayload(err error) v.Violation {
	return v.Violation{
		Code:    v.CodeInvalidPayload,
		Message: fmt.Sprintf("payload could not be validated: %v", err),
	}
}

var defaultValidator = MustNewValidator(Options{})

// Validate runs the default validator: abort-early aggregation, an
// 18-year minimum age with fixed 365-day years, and the wall clock.
func Validate(p Payload) Result {
	return defaultValidator.Validate(p)
}
