package intake

import (
	"testing"
	"time"
)

func completeRecord() *FormRecord {
	birth := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewFormRecord()
	r.ApplicantName = "Jane Doe"
	r.ApplicantBirthDate = &birth
	r.State = "NY"
	r.MaritalStatus = "married"
	return r
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FormRecord)
		wantKey string
	}{
		{"missing name", func(r *FormRecord) { r.ApplicantName = "" }, "applicantName"},
		{"missing birth date", func(r *FormRecord) { r.ApplicantBirthDate = nil }, "applicantBirthDate"},
		{"missing state", func(r *FormRecord) { r.State = "" }, "state"},
		{"missing marital status", func(r *FormRecord) { r.MaritalStatus = "" }, "maritalStatus"},
		{"whitespace name", func(r *FormRecord) { r.ApplicantName = "   " }, "applicantName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := completeRecord()
			tt.mutate(r)
			result := Validate(r)
			if result.Valid {
				t.Error("Validate() valid = true, want false")
			}
			if _, ok := result.Errors[tt.wantKey]; !ok {
				t.Errorf("Errors missing key %q, got %v", tt.wantKey, result.Errors)
			}
		})
	}
}

func TestValidate_CompleteRecordIsValid(t *testing.T) {
	result := Validate(completeRecord())
	if !result.Valid {
		t.Errorf("Validate() valid = false, errors = %v", result.Errors)
	}
}

func TestValidate_EmailFormat(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"", true}, // optional
		{"jane@example.com", true},
		{"jane.doe@mail.example.org", true},
		{"not-an-email", false},
		{"missing@domain", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			r := completeRecord()
			r.Email = tt.email
			result := Validate(r)
			_, hasErr := result.Errors["email"]
			if hasErr == tt.valid {
				t.Errorf("email %q: error = %v, want valid = %v", tt.email, hasErr, tt.valid)
			}
		})
	}
}

func TestValidate_PhoneFormats(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"", true}, // optional
		{"5551234567", true},
		{"(555) 123-4567", true},
		{"555-123-4567", true},
		{"555 123 4567", false},
		{"12345", false},
		{"555-12-34567", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			r := completeRecord()
			r.HomePhone = tt.phone
			r.CellPhone = tt.phone
			result := Validate(r)
			_, homeErr := result.Errors["homePhone"]
			_, cellErr := result.Errors["cellPhone"]
			if homeErr == tt.valid || cellErr == tt.valid {
				t.Errorf("phone %q: homeErr=%v cellErr=%v, want valid=%v", tt.phone, homeErr, cellErr, tt.valid)
			}
		})
	}
}

func TestValidate_ZipFormat(t *testing.T) {
	tests := []struct {
		zip   string
		valid bool
	}{
		{"", true},
		{"12345", true},
		{"12345-6789", true},
		{"1234", false},
		{"123456", false},
		{"12345-678", false},
	}

	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			r := completeRecord()
			r.Zip = tt.zip
			result := Validate(r)
			_, hasErr := result.Errors["zip"]
			if hasErr == tt.valid {
				t.Errorf("zip %q: error = %v, want valid = %v", tt.zip, hasErr, tt.valid)
			}
		})
	}
}

func TestDisplayed_GatesOnFlags(t *testing.T) {
	r := NewFormRecord() // missing everything
	result := Validate(r)

	if result.Valid {
		t.Error("empty record should not be valid")
	}
	if got := result.Displayed(false, false); len(got) != 0 {
		t.Errorf("pristine form should display no errors, got %v", got)
	}
	if got := result.Displayed(true, false); len(got) == 0 {
		t.Error("forced display should surface errors")
	}
	if got := result.Displayed(false, true); len(got) == 0 {
		t.Error("interacted form should surface errors")
	}
}
