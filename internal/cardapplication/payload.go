// Package cardapplication validates credit-card application payloads and the printed-name
// ("emboss") line an applicant picks for the card.
//
// Validation is a pure function of the payload and the wall clock: the payload is
// normalized, emboss options are derived from the trimmed name parts, the field rules and
// the employment-dependent rules run, and finally the submitted emboss is matched against
// the options. Every broken rule is kept; the single outward message is chosen by the
// configured aggregation policy.
package cardapplication

// Payload is the untyped application document handed over by the request layer.
type Payload map[string]interface{}

// Payload keys.
const (
	FieldGender                = "gender"
	FieldFirstName             = "first_name"
	FieldMiddleName            = "middle_name"
	FieldLastName              = "last_name"
	FieldEmboss                = "emboss"
	FieldDOB                   = "dob"
	FieldSIN                   = "sin"
	FieldWhyDoYouWantTheCard   = "why_do_you_want_the_card"
	FieldHowDidYouHearAboutUs  = "how_did_you_hear_about_us"
	FieldStreetAddress         = "street_address"
	FieldSuiteNumber           = "suite_number"
	FieldCity                  = "city"
	FieldProvince              = "province"
	FieldPostalCode            = "postal_code"
	FieldPhoneNumber           = "phone_number"
	FieldEmail                 = "email"
	FieldCreditLimit           = "credit_limit"
	FieldOtherHouseIncome      = "other_house_income"
	FieldAnnualSalaryBeforeTax = "annual_salary_before_tax"
	FieldEmploymentStatus      = "employment_status"
	FieldCurrentEmployer       = "current_employer"
	FieldIndustry              = "industry"
	FieldMortgage              = "mortgage"
	FieldRentOnMortgage        = "rent_on_mortgage"
	FieldEmploymentYear        = "employment_year"
	FieldEmploymentMonth       = "employment_month"
	FieldJobDescription        = "job_description"
	FieldOtherSource           = "other_source"
	FieldAffiliateID           = "affiliate_id"
	FieldReferredBy            = "referred_by"
	FieldIP                    = "ip"
	FieldHutk                  = "hutk"
	FieldCardType              = "card_type"
)

// Employment statuses.
const (
	EmploymentEmployed     = "Employed"
	EmploymentSelfEmployed = "Self-Employed"
	EmploymentRetired      = "Retired"
	EmploymentStudent      = "Student"
	EmploymentUnemployed   = "Unemployed"
)

// Clone returns a shallow copy of p.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p)+4)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// String returns the value under key when it is a string.
func (p Payload) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// Has reports whether key is present, even with a nil value.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}
