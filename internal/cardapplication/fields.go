package cardapplication

import (
	v "card-application-workers/internal/common/validation"
)

const (
	namePattern       = `^[a-zA-Z]+\s*[a-zA-Z]+$`
	postalCodePattern = `([A-Za-z][0-9][A-Za-z][0-9][A-Za-z][0-9])+$`
	phonePattern      = `\([0-9]{3}\)\s[0-9]{3}-[0-9]{4}`
)

var (
	whyDoYouWantTheCardValues = []interface{}{
		"Rebuild your Credit",
		"New to Canada",
		"Want a rewards Credit Card",
	}
	howDidYouHearAboutUsValues = []interface{}{
		"Mail Offer",
		"Friends or Family",
		"Email Offer Plastk",
		"Search Engine",
		"Online Banner Ad or Video",
		"Facebook Ad or Video",
		"Credit Card Comparisons",
		"Other",
	}
	employmentStatusValues = []interface{}{
		EmploymentEmployed,
		EmploymentSelfEmployed,
		EmploymentRetired,
		EmploymentStudent,
		EmploymentUnemployed,
	}
)

func nameMessages() map[v.Code]string {
	return map[v.Code]string{
		v.CodeInvalidType: `"{field}" should be a type of 'text'`,
		v.CodeEmpty:       `"{field}" cannot be an empty field`,
		v.CodeMinLength:   `"{field}" should have a minimum length of {limit}`,
		v.CodeRequired:    `"{field}" is a required field`,
		v.CodePattern:     `"{field}" should be alphabetics`,
	}
}

// fieldRules is the static constraint table, in the order violations are reported.
var fieldRules = []v.FieldRule{
	{Name: FieldGender, Kind: v.KindString, Enum: []interface{}{"M", "F", "O"}},
	{Name: FieldFirstName, Kind: v.KindString, Required: true, Pattern: namePattern, MinLength: 2, Messages: nameMessages()},
	{Name: FieldMiddleName, Kind: v.KindString, AllowEmpty: true, Pattern: namePattern, Messages: nameMessages()},
	{Name: FieldLastName, Kind: v.KindString, Required: true, Pattern: namePattern, MinLength: 2, Messages: nameMessages()},
	{Name: FieldEmboss, Kind: v.KindString},
	{Name: FieldDOB, Kind: v.KindAny, Required: true, Messages: map[v.Code]string{
		v.CodeRequired: msgDOBRequired,
	}},
	{Name: FieldSIN, Kind: v.KindString, AllowEmpty: true},
	{Name: FieldWhyDoYouWantTheCard, Kind: v.KindString, AllowEmpty: true, Enum: whyDoYouWantTheCardValues},
	{Name: FieldHowDidYouHearAboutUs, Kind: v.KindString, AllowEmpty: true, Enum: howDidYouHearAboutUsValues},
	{Name: FieldStreetAddress, Kind: v.KindString, Required: true},
	{Name: FieldSuiteNumber, Kind: v.KindString, AllowEmpty: true},
	{Name: FieldCity, Kind: v.KindString, Required: true},
	{Name: FieldProvince, Kind: v.KindString, Required: true},
	{Name: FieldPostalCode, Kind: v.KindString, Required: true, MinLength: 6, Pattern: postalCodePattern, Messages: map[v.Code]string{
		v.CodeEmpty:     `"postal_code" cannot be an empty field`,
		v.CodeMinLength: `"postal_code" is invalid. It must be at least {limit} characters.`,
		v.CodeRequired:  `"postal_code" is a required field`,
		v.CodePattern:   `"postal_code" should be a valid postal code`,
	}},
	{Name: FieldPhoneNumber, Kind: v.KindString, Required: true, Pattern: phonePattern, Messages: map[v.Code]string{
		v.CodePattern: `"phone_number" should be a valid phone number`,
	}},
	{Name: FieldEmail, Kind: v.KindString, Required: true, Format: "email"},
	{Name: FieldCreditLimit, Kind: v.KindNumber, Required: true, Minimum: v.Float(300), Maximum: v.Float(10000)},
	{Name: FieldOtherHouseIncome, Kind: v.KindString, AllowEmpty: true},
	{Name: FieldAnnualSalaryBeforeTax, Kind: v.KindNumber, Required: true},
	{Name: FieldEmploymentStatus, Kind: v.KindString, Enum: employmentStatusValues},
	{Name: FieldCurrentEmployer, Kind: v.KindAny},
	{Name: FieldIndustry, Kind: v.KindAny},
	{Name: FieldMortgage, Kind: v.KindString, AllowEmpty: true, Enum: []interface{}{"Yes", "No"}},
	{Name: FieldRentOnMortgage, Kind: v.KindAny},
	{Name: FieldEmploymentYear, Kind: v.KindNumber, Minimum: v.Float(1)},
	{Name: FieldEmploymentMonth, Kind: v.KindNumber, Minimum: v.Float(1)},
	{Name: FieldJobDescription, Kind: v.KindAny},
	{Name: FieldOtherSource, Kind: v.KindString, AllowEmpty: true},
	{Name: FieldAffiliateID, Kind: v.KindString, AllowEmpty: true},
	{Name: FieldReferredBy, Kind: v.KindString, AllowEmpty: true},
	{Name: FieldIP, Kind: v.KindString, AllowEmpty: true},
	{Name: FieldHutk, Kind: v.KindString, AllowEmpty: true},
	{Name: FieldCardType, Kind: v.KindNumber, Enum: []interface{}{1, 2}},
}

// conditionalRules holds the employment-dependent requirements.
var conditionalRules = []v.ConditionalRule{
	{
		Field: FieldEmploymentStatus,
		In:    []string{EmploymentEmployed, EmploymentSelfEmployed},
		Then: []v.FieldRule{
			{Name: FieldCurrentEmployer, Kind: v.KindString, Required: true},
			{Name: FieldIndustry, Kind: v.KindString, Required: true},
			{Name: FieldJobDescription, Kind: v.KindString, Required: true, AllowEmpty: true},
		},
	},
}

// numericFields are coerced from numeric strings during normalization.
var numericFields = []string{
	FieldCreditLimit,
	FieldAnnualSalaryBeforeTax,
	FieldEmploymentYear,
	FieldEmploymentMonth,
	FieldCardType,
}

// blankableNumericFields treat "" as absent.
var blankableNumericFields = map[string]bool{
	FieldEmploymentYear:  true,
	FieldEmploymentMonth: true,
	FieldCardType:        true,
}
