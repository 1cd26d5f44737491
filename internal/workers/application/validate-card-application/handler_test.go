package validatecardapplication

import (
	"context"
	"errors"
	"testing"
	"time"

	"card-application-workers/internal/cardapplication"
	"card-application-workers/internal/common/config"
	apperrors "card-application-workers/internal/common/errors"
	"card-application-workers/internal/common/logger"
	"card-application-workers/internal/common/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func createTestConfig(policy validation.Policy) *Config {
	return &Config{
		Timeout: 5 * time.Second,
		Validation: cardapplication.Options{
			Aggregation: policy,
			AgeCutoff:   cardapplication.AgeCutoffFixed365,
			Now:         func() time.Time { return fixedNow },
		},
	}
}

// createValidApplication mirrors what json.Unmarshal produces for job variables.
func createValidApplication() map[string]interface{} {
	return map[string]interface{}{
		"first_name":               " Jon ",
		"last_name":                "Lee",
		"emboss":                   "j lee",
		"dob":                      "1990-01-15",
		"gender":                   "M",
		"street_address":           "1 Main St",
		"city":                     "Toronto",
		"province":                 "ON",
		"postal_code":              "A1B2C3",
		"phone_number":             "(416) 555-1234",
		"email":                    "jon@example.com",
		"credit_limit":             1000.0,
		"annual_salary_before_tax": 50000.0,
		"employment_status":        "Retired",
	}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestHandler(t *testing.T, policy validation.Policy) *Handler {
	h, err := NewHandler(createTestConfig(policy), &testLogger{t: t}, nil)
	require.NoError(t, err)
	return h
}

func asStandardError(t *testing.T, err error) *apperrors.StandardError {
	t.Helper()
	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr), "expected StandardError, got %T", err)
	return stdErr
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	h := newTestHandler(t, validation.PolicyLast)

	output, err := h.Execute(context.Background(), &Input{Application: createValidApplication()})
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.True(t, output.IsValid)
	assert.NotEmpty(t, output.ValidationID)
	assert.Equal(t, []string{"J Lee", "Jon Lee"}, output.EmbossOptions)
	assert.Equal(t, "2026-10-18T09:30:00Z", output.ValidatedAt)

	assert.Equal(t, "Jon", output.Application["first_name"])
	assert.Equal(t, "", output.Application["middle_name"])
	assert.Equal(t, "", output.Application["affiliate_id"])
}

func TestHandler_Execute_DoesNotMutateInput(t *testing.T) {
	h := newTestHandler(t, validation.PolicyLast)
	app := createValidApplication()

	_, err := h.Execute(context.Background(), &Input{Application: app})
	require.NoError(t, err)

	assert.Equal(t, " Jon ", app["first_name"])
	_, hasMiddle := app["middle_name"]
	assert.False(t, hasMiddle)
}

func TestHandler_Execute_UniqueValidationIDs(t *testing.T) {
	h := newTestHandler(t, validation.PolicyLast)

	first, err := h.Execute(context.Background(), &Input{Application: createValidApplication()})
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), &Input{Application: createValidApplication()})
	require.NoError(t, err)

	assert.NotEqual(t, first.ValidationID, second.ValidationID)
}

// ==========================
// Rejection Tests
// ==========================

func TestHandler_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		policy      validation.Policy
		mutate      func(app map[string]interface{})
		wantCode    apperrors.ErrorCode
		wantMessage string
	}{
		{
			name:        "emboss mismatch",
			policy:      validation.PolicyLast,
			mutate:      func(app map[string]interface{}) { app["emboss"] = "JONATHAN LEE" },
			wantCode:    apperrors.ErrCodeEmbossInvalid,
			wantMessage: `"emboss" should be from the [J Lee,Jon Lee]`,
		},
		{
			name:        "emboss missing",
			policy:      validation.PolicyLast,
			mutate:      func(app map[string]interface{}) { delete(app, "emboss") },
			wantCode:    apperrors.ErrCodeEmbossInvalid,
			wantMessage: `"emboss" can't be empty`,
		},
		{
			name:        "under age",
			policy:      validation.PolicyLast,
			mutate:      func(app map[string]interface{}) { app["dob"] = "2015-06-01" },
			wantCode:    apperrors.ErrCodeApplicationValidationFailed,
			wantMessage: `"dob" is invalid. You must be 18 years old.`,
		},
		{
			name:   "emboss surfaces last under last policy",
			policy: validation.PolicyLast,
			mutate: func(app map[string]interface{}) {
				app["first_name"] = "J0n"
				app["emboss"] = "wrong"
			},
			wantCode:    apperrors.ErrCodeEmbossInvalid,
			wantMessage: `"emboss" should be from the [J Lee,J0n Lee]`,
		},
		{
			name:   "field violation surfaces under first policy",
			policy: validation.PolicyFirst,
			mutate: func(app map[string]interface{}) {
				app["first_name"] = "J0n"
				app["emboss"] = "wrong"
			},
			wantCode: apperrors.ErrCodeApplicationValidationFailed,
		},
		{
			name:   "first broken field surfaces under abort early policy",
			policy: validation.PolicyAbortEarly,
			mutate: func(app map[string]interface{}) {
				delete(app, "city")
				app["phone_number"] = "4165551234"
			},
			wantCode:    apperrors.ErrCodeApplicationValidationFailed,
			wantMessage: `"city" is required`,
		},
		{
			name:   "emboss overrides field violations under abort early policy",
			policy: validation.PolicyAbortEarly,
			mutate: func(app map[string]interface{}) {
				delete(app, "city")
				app["emboss"] = "wrong"
			},
			wantCode:    apperrors.ErrCodeEmbossInvalid,
			wantMessage: `"emboss" should be from the [J Lee,Jon Lee]`,
		},
		{
			name:   "employment details required when employed",
			policy: validation.PolicyLast,
			mutate: func(app map[string]interface{}) {
				app["employment_status"] = "Employed"
			},
			wantCode: apperrors.ErrCodeApplicationValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, tt.policy)
			app := createValidApplication()
			tt.mutate(app)

			output, err := h.Execute(context.Background(), &Input{Application: app})
			require.Error(t, err)
			assert.Nil(t, output)

			stdErr := asStandardError(t, err)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.False(t, stdErr.Retryable)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, stdErr.Message)
			}
			assert.NotEmpty(t, stdErr.Metadata["validationId"])
			assert.NotEmpty(t, stdErr.Metadata["violations"])
			assert.Contains(t, stdErr.Metadata, "embossOptions")
		})
	}
}

func TestHandler_Execute_AllPolicyJoinsMessages(t *testing.T) {
	h := newTestHandler(t, validation.PolicyAll)
	app := createValidApplication()
	app["postal_code"] = "A1B"
	app["emboss"] = "nope"

	_, err := h.Execute(context.Background(), &Input{Application: app})
	stdErr := asStandardError(t, err)

	violations, ok := stdErr.Metadata["violations"].(validation.Violations)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(violations), 2)
	assert.Contains(t, stdErr.Message, "postal_code")
	assert.Contains(t, stdErr.Message, "emboss")
}

func TestHandler_Execute_BPMNVariables(t *testing.T) {
	h := newTestHandler(t, validation.PolicyLast)
	app := createValidApplication()
	app["emboss"] = "wrong"

	_, err := h.Execute(context.Background(), &Input{Application: app})
	bpmnErr := apperrors.ConvertToBPMNError(asStandardError(t, err))

	assert.Equal(t, string(apperrors.ErrCodeEmbossInvalid), bpmnErr.Code)
	assert.Equal(t, 0, bpmnErr.Retries)
	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, []string{"J Lee", "Jon Lee"}, vars["embossOptions"])
}

// ==========================
// Configuration Tests
// ==========================

func TestNewHandler_RejectsBadOptions(t *testing.T) {
	cfg := createTestConfig(validation.Policy("sometimes"))
	_, err := NewHandler(cfg, &testLogger{t: t}, nil)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg := &config.Config{
		Workers: map[string]config.WorkerConfig{
			TaskType: {Enabled: true, MaxJobsActive: 3, Timeout: 15000},
		},
		Validation: config.ValidationConfig{
			Aggregation: "all",
			AgeCutoff:   "calendar",
			MinimumAge:  21,
		},
	}

	wc, err := LoadConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, wc.Timeout)
	assert.Equal(t, validation.PolicyAll, wc.Validation.Aggregation)
	assert.Equal(t, cardapplication.AgeCutoffCalendar, wc.Validation.AgeCutoff)
	assert.Equal(t, 21, wc.Validation.MinimumAge)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	_, err := LoadConfig(&config.Config{Validation: config.ValidationConfig{Aggregation: "most", AgeCutoff: "fixed365", MinimumAge: 18}})
	assert.Error(t, err)

	_, err = LoadConfig(&config.Config{Validation: config.ValidationConfig{Aggregation: "last", AgeCutoff: "lunar", MinimumAge: 18}})
	assert.Error(t, err)
}
