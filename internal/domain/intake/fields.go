package intake

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldKind describes how a raw change value is interpreted.
type FieldKind string

const (
	KindText  FieldKind = "text"
	KindCheck FieldKind = "check"
	KindDate  FieldKind = "date"
)

// FieldChange is a single raw input applied to a record: the field name as it
// appears on the wire and the value as the client sent it. Checkbox values
// parse as booleans, date values as ISO calendar dates, everything else is
// taken as-is.
type FieldChange struct {
	Name  string    `json:"field"`
	Kind  FieldKind `json:"kind"`
	Value string    `json:"value"`
}

const dateLayout = "2006-01-02"

// legacyFieldNames maps retired wire names onto their canonical fields. The
// old client sent dateOfBirth alongside applicantBirthDate; here the alias is
// folded into the canonical field at the input boundary instead of keeping
// both in sync.
var legacyFieldNames = map[string]string{
	"dateOfBirth": "applicantBirthDate",
}

var stringFields = map[string]func(*FormRecord) *string{
	"applicantName":           func(r *FormRecord) *string { return &r.ApplicantName },
	"maritalStatus":           func(r *FormRecord) *string { return &r.MaritalStatus },
	"state":                   func(r *FormRecord) *string { return &r.State },
	"email":                   func(r *FormRecord) *string { return &r.Email },
	"homePhone":               func(r *FormRecord) *string { return &r.HomePhone },
	"cellPhone":               func(r *FormRecord) *string { return &r.CellPhone },
	"address":                 func(r *FormRecord) *string { return &r.Address },
	"city":                    func(r *FormRecord) *string { return &r.City },
	"zip":                     func(r *FormRecord) *string { return &r.Zip },
	"veteranStatus":           func(r *FormRecord) *string { return &r.VeteranStatus },
	"spouseName":              func(r *FormRecord) *string { return &r.SpouseName },
	"medicalStatus":           func(r *FormRecord) *string { return &r.MedicalStatus },
	"currentDiagnoses":        func(r *FormRecord) *string { return &r.CurrentDiagnoses },
	"primaryPhysician":        func(r *FormRecord) *string { return &r.PrimaryPhysician },
	"currentMedications":      func(r *FormRecord) *string { return &r.CurrentMedications },
	"hospitalStayDuration":    func(r *FormRecord) *string { return &r.HospitalStayDuration },
	"currentLivingSituation":  func(r *FormRecord) *string { return &r.CurrentLivingSituation },
	"nursingHomeName":         func(r *FormRecord) *string { return &r.NursingHomeName },
	"monthlyNursingHomeCost":  func(r *FormRecord) *string { return &r.MonthlyNursingHomeCost },
	"ltcInsuranceDetails":     func(r *FormRecord) *string { return &r.LtcInsuranceDetails },
	"applicantSocialSecurity": func(r *FormRecord) *string { return &r.ApplicantSocialSecurity },
	"applicantPension":        func(r *FormRecord) *string { return &r.ApplicantPension },
	"spouseSocialSecurity":    func(r *FormRecord) *string { return &r.SpouseSocialSecurity },
	"spousePension":           func(r *FormRecord) *string { return &r.SpousePension },
	"annuityIncome":           func(r *FormRecord) *string { return &r.AnnuityIncome },
	"rentalIncome":            func(r *FormRecord) *string { return &r.RentalIncome },
	"investmentIncome":        func(r *FormRecord) *string { return &r.InvestmentIncome },
	"rentMortgage":            func(r *FormRecord) *string { return &r.RentMortgage },
	"realEstateTaxes":         func(r *FormRecord) *string { return &r.RealEstateTaxes },
	"utilities":               func(r *FormRecord) *string { return &r.Utilities },
	"homeownersInsurance":     func(r *FormRecord) *string { return &r.HomeownersInsurance },
	"homeMaintenance":         func(r *FormRecord) *string { return &r.HomeMaintenance },
	"food":                    func(r *FormRecord) *string { return &r.Food },
	"transportation":          func(r *FormRecord) *string { return &r.Transportation },
	"clothing":                func(r *FormRecord) *string { return &r.Clothing },
	"nonReimbursedMedical":    func(r *FormRecord) *string { return &r.NonReimbursedMedical },
	"healthInsurancePremiums": func(r *FormRecord) *string { return &r.HealthInsurancePremiums },
	"extraordinaryMedical":    func(r *FormRecord) *string { return &r.ExtraordinaryMedical },
	"checkingAccounts":        func(r *FormRecord) *string { return &r.CheckingAccounts },
	"savingsAccounts":         func(r *FormRecord) *string { return &r.SavingsAccounts },
	"moneyMarketAccounts":     func(r *FormRecord) *string { return &r.MoneyMarketAccounts },
	"certificatesOfDeposit":   func(r *FormRecord) *string { return &r.CertificatesOfDeposit },
	"stocksBonds":             func(r *FormRecord) *string { return &r.StocksBonds },
	"retirementAccounts":      func(r *FormRecord) *string { return &r.RetirementAccounts },
	"lifeInsuranceCashValue":  func(r *FormRecord) *string { return &r.LifeInsuranceCashValue },
	"homeValue":               func(r *FormRecord) *string { return &r.HomeValue },
	"mortgageBalance":         func(r *FormRecord) *string { return &r.MortgageBalance },
	"otherRealEstate":         func(r *FormRecord) *string { return &r.OtherRealEstate },
	"householdProperty":       func(r *FormRecord) *string { return &r.HouseholdProperty },
	"vehicleValue":            func(r *FormRecord) *string { return &r.VehicleValue },
	"otherAssets":             func(r *FormRecord) *string { return &r.OtherAssets },
	"giftsDetails":            func(r *FormRecord) *string { return &r.GiftsDetails },
	"trustsEstablished":       func(r *FormRecord) *string { return &r.TrustsEstablished },
	"attorneyName":            func(r *FormRecord) *string { return &r.AttorneyName },
	"additionalNotes":         func(r *FormRecord) *string { return &r.AdditionalNotes },
	"referralSource":          func(r *FormRecord) *string { return &r.ReferralSource },
	"preferredContact":        func(r *FormRecord) *string { return &r.PreferredContact },
	"bestTimeToCall":          func(r *FormRecord) *string { return &r.BestTimeToCall },
	"emergencyContact":        func(r *FormRecord) *string { return &r.EmergencyContact },
	"emergencyPhone":          func(r *FormRecord) *string { return &r.EmergencyPhone },
}

var boolFields = map[string]func(*FormRecord) *bool{
	"applicantCitizen":      func(r *FormRecord) *bool { return &r.ApplicantCitizen },
	"spouseCitizen":         func(r *FormRecord) *bool { return &r.SpouseCitizen },
	"recentHospitalStay":    func(r *FormRecord) *bool { return &r.RecentHospitalStay },
	"longTermCareInsurance": func(r *FormRecord) *bool { return &r.LongTermCareInsurance },
	"intentToReturnHome":    func(r *FormRecord) *bool { return &r.IntentToReturnHome },
	"giftsTransfers":        func(r *FormRecord) *bool { return &r.GiftsTransfers },
	"burialPlots":           func(r *FormRecord) *bool { return &r.BurialPlots },
	"powerOfAttorney":       func(r *FormRecord) *bool { return &r.PowerOfAttorney },
	"healthcareProxy":       func(r *FormRecord) *bool { return &r.HealthcareProxy },
	"livingWill":            func(r *FormRecord) *bool { return &r.LivingWill },
	"lastWill":              func(r *FormRecord) *bool { return &r.LastWill },
}

var dateFields = map[string]func(*FormRecord) **time.Time{
	"applicantBirthDate": func(r *FormRecord) **time.Time { return &r.ApplicantBirthDate },
	"spouseBirthDate":    func(r *FormRecord) **time.Time { return &r.SpouseBirthDate },
}

// derivedFields are written only by RecalculateTotals and rejected as change
// targets.
var derivedFields = map[string]bool{
	"applicantIncomeTotal":  true,
	"spouseIncomeTotal":     true,
	"otherIncomeTotal":      true,
	"totalMonthlyIncome":    true,
	"housingExpensesTotal":  true,
	"personalExpensesTotal": true,
	"medicalExpensesTotal":  true,
	"totalMonthlyExpenses":  true,
	"bankAccountsTotal":     true,
	"investmentsTotal":      true,
	"insuranceTotal":        true,
	"propertyTotal":         true,
	"personalPropertyTotal": true,
	"totalAssets":           true,
}

// CanonicalFieldName resolves legacy aliases to their current names.
func CanonicalFieldName(name string) string {
	if canonical, ok := legacyFieldNames[name]; ok {
		return canonical
	}
	return name
}

// KnownField reports whether name (after alias resolution) is a mutable
// field of the record.
func KnownField(name string) bool {
	name = CanonicalFieldName(name)
	if _, ok := stringFields[name]; ok {
		return true
	}
	if _, ok := boolFields[name]; ok {
		return true
	}
	_, ok := dateFields[name]
	return ok
}

// Apply writes a single field change onto the record. Unknown and derived
// field names are rejected; values that cannot be parsed for their kind are
// rejected with the parse failure. Derived totals are recomputed before
// returning so the totals invariant holds after every change.
func Apply(r *FormRecord, change FieldChange) error {
	name := CanonicalFieldName(change.Name)

	if derivedFields[name] {
		return fmt.Errorf("field %q is derived and cannot be set directly", change.Name)
	}

	switch {
	case boolFields[name] != nil:
		v, err := parseCheckbox(change.Value)
		if err != nil {
			return fmt.Errorf("field %q: %w", change.Name, err)
		}
		*boolFields[name](r) = v

	case dateFields[name] != nil:
		slot := dateFields[name](r)
		if strings.TrimSpace(change.Value) == "" {
			*slot = nil
			break
		}
		t, err := time.Parse(dateLayout, change.Value)
		if err != nil {
			return fmt.Errorf("field %q: invalid date %q", change.Name, change.Value)
		}
		*slot = &t

	case stringFields[name] != nil:
		*stringFields[name](r) = change.Value

	default:
		return fmt.Errorf("unknown field %q", change.Name)
	}

	RecalculateTotals(r)
	return nil
}

func parseCheckbox(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "false", "off", "unchecked":
		return false, nil
	case "true", "on", "checked":
		return true, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid checkbox value %q", raw)
	}
	return v, nil
}
