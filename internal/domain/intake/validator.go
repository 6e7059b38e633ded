package intake

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^(?:\d{10}|\(\d{3}\)\d{3}-\d{4}|\d{3}-\d{3}-\d{4})$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// ValidationResult carries the authoritative error map for a record. Valid is
// derived from the full map regardless of whether the UI is currently showing
// errors; Displayed applies the presentation gating.
type ValidationResult struct {
	Errors map[string]string
	Valid  bool
}

// Validate evaluates required-field and format rules against the record. The
// result is authoritative: a pristine form that is missing required fields is
// invalid even while nothing is displayed.
func Validate(r *FormRecord) ValidationResult {
	errs := make(map[string]string)

	if strings.TrimSpace(r.ApplicantName) == "" {
		errs["applicantName"] = "Applicant name is required"
	}
	if r.ApplicantBirthDate == nil {
		errs["applicantBirthDate"] = "Applicant birth date is required"
	}
	if strings.TrimSpace(r.State) == "" {
		errs["state"] = "State of residence is required"
	}
	if strings.TrimSpace(r.MaritalStatus) == "" {
		errs["maritalStatus"] = "Marital status is required"
	}

	if r.Email != "" && !emailPattern.MatchString(r.Email) {
		errs["email"] = "Enter a valid email address"
	}
	if r.HomePhone != "" && !validPhone(r.HomePhone) {
		errs["homePhone"] = "Enter a valid phone number"
	}
	if r.CellPhone != "" && !validPhone(r.CellPhone) {
		errs["cellPhone"] = "Enter a valid phone number"
	}
	if r.EmergencyPhone != "" && !validPhone(r.EmergencyPhone) {
		errs["emergencyPhone"] = "Enter a valid phone number"
	}
	if r.Zip != "" && !zipPattern.MatchString(r.Zip) {
		errs["zip"] = "Enter a valid ZIP code"
	}

	return ValidationResult{Errors: errs, Valid: len(errs) == 0}
}

// Displayed returns the errors that should be surfaced to the user. A form
// the user has never touched shows nothing until validation display is forced
// at submit time.
func (v ValidationResult) Displayed(showValidation, hasInteracted bool) map[string]string {
	if showValidation || hasInteracted {
		return v.Errors
	}
	return map[string]string{}
}

// validPhone strips whitespace and accepts NNNNNNNNNN, (NNN) NNN-NNNN, or
// NNN-NNN-NNNN.
func validPhone(raw string) bool {
	stripped := strings.Join(strings.Fields(raw), "")
	return phonePattern.MatchString(stripped)
}
