package cardapplication

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_DefaultsAndTrim(t *testing.T) {
	in := Payload{
		FieldFirstName: "  Jon ",
		FieldLastName:  "Lee\t",
	}

	out := Normalize(in)

	assert.Equal(t, "Jon", out[FieldFirstName])
	assert.Equal(t, "Lee", out[FieldLastName])
	assert.Equal(t, "", out[FieldMiddleName])
	assert.Equal(t, "", out[FieldAffiliateID])
	assert.Equal(t, "", out[FieldReferredBy])
	assert.Equal(t, "", out[FieldIP])

	// The caller's map is untouched.
	assert.Equal(t, "  Jon ", in[FieldFirstName])
	assert.NotContains(t, in, FieldMiddleName)
	assert.NotContains(t, in, FieldAffiliateID)
}

func TestNormalize_KeepsProvidedTrackingFields(t *testing.T) {
	out := Normalize(Payload{FieldAffiliateID: "aff-1", FieldIP: "10.0.0.1"})
	assert.Equal(t, "aff-1", out[FieldAffiliateID])
	assert.Equal(t, "10.0.0.1", out[FieldIP])
	assert.Equal(t, "", out[FieldReferredBy])
}

func TestNormalize_NamesRequireBothParts(t *testing.T) {
	out := Normalize(Payload{FieldFirstName: " Jon "})
	assert.Equal(t, " Jon ", out[FieldFirstName])
	assert.NotContains(t, out, FieldMiddleName)

	out = Normalize(Payload{FieldFirstName: " Jon", FieldMiddleName: " Paul ", FieldLastName: "Lee "})
	assert.Equal(t, "Paul", out[FieldMiddleName])
}

func TestNormalize_NonStringNamesAreLeftForTheSchema(t *testing.T) {
	out := Normalize(Payload{FieldFirstName: 12.0, FieldLastName: "Lee"})
	assert.Equal(t, 12.0, out[FieldFirstName])
}

func TestNormalize_NumericCoercion(t *testing.T) {
	out := Normalize(Payload{
		FieldCreditLimit:           "1500",
		FieldAnnualSalaryBeforeTax: json.Number("52000.5"),
		FieldEmploymentYear:        "",
		FieldEmploymentMonth:       " 4 ",
		FieldCardType:              "",
	})

	assert.Equal(t, 1500.0, out[FieldCreditLimit])
	assert.Equal(t, 52000.5, out[FieldAnnualSalaryBeforeTax])
	assert.Equal(t, 4.0, out[FieldEmploymentMonth])
	assert.NotContains(t, out, FieldEmploymentYear)
	assert.NotContains(t, out, FieldCardType)
}

func TestNormalize_LeavesBadNumbersAlone(t *testing.T) {
	out := Normalize(Payload{FieldCreditLimit: "lots", FieldAnnualSalaryBeforeTax: ""})
	assert.Equal(t, "lots", out[FieldCreditLimit])
	assert.Equal(t, "", out[FieldAnnualSalaryBeforeTax])

	for _, s := range []string{"NaN", "Infinity", "inf", "-Inf"} {
		out = Normalize(Payload{FieldCreditLimit: s})
		assert.Equal(t, s, out[FieldCreditLimit])
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	in := Payload{
		FieldFirstName:   " Jon ",
		FieldLastName:    " Lee",
		FieldCreditLimit: "900",
	}
	once := Normalize(in)
	assert.Equal(t, once, Normalize(once))
}
