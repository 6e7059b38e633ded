// Package intake holds the client intake form model: the flat record of
// everything collected from an applicant, the field change registry used to
// mutate it, derived category totals, and the validation rules that gate
// submission.
package intake

import "time"

// SchemaVersion tags persisted drafts. A draft saved under a different
// version is discarded on load rather than migrated.
const SchemaVersion = "1.2"

// FormRecord is one in-progress intake submission. Monetary fields are kept
// as the decimal strings the applicant typed; derived totals are written back
// as strings formatted to two decimal places and are never user-editable.
type FormRecord struct {
	// Client identity
	ApplicantName      string     `json:"applicantName"`
	ApplicantBirthDate *time.Time `json:"applicantBirthDate,omitempty"`
	MaritalStatus      string     `json:"maritalStatus"`
	State              string     `json:"state"`
	Email              string     `json:"email"`
	HomePhone          string     `json:"homePhone"`
	CellPhone          string     `json:"cellPhone"`
	Address            string     `json:"address"`
	City               string     `json:"city"`
	Zip                string     `json:"zip"`
	ApplicantCitizen   bool       `json:"applicantCitizen"`
	VeteranStatus      string     `json:"veteranStatus"`

	// Spouse
	SpouseName      string     `json:"spouseName"`
	SpouseBirthDate *time.Time `json:"spouseBirthDate,omitempty"`
	SpouseCitizen   bool       `json:"spouseCitizen"`

	// Medical and living situation
	MedicalStatus          string `json:"medicalStatus"`
	CurrentDiagnoses       string `json:"currentDiagnoses"`
	PrimaryPhysician       string `json:"primaryPhysician"`
	CurrentMedications     string `json:"currentMedications"`
	RecentHospitalStay     bool   `json:"recentHospitalStay"`
	HospitalStayDuration   string `json:"hospitalStayDuration"`
	CurrentLivingSituation string `json:"currentLivingSituation"`
	NursingHomeName        string `json:"nursingHomeName"`
	MonthlyNursingHomeCost string `json:"monthlyNursingHomeCost"`
	LongTermCareInsurance  bool   `json:"longTermCareInsurance"`
	LtcInsuranceDetails    string `json:"ltcInsuranceDetails"`
	IntentToReturnHome     bool   `json:"intentToReturnHome"`

	// Monthly income
	ApplicantSocialSecurity string `json:"applicantSocialSecurity"`
	ApplicantPension        string `json:"applicantPension"`
	SpouseSocialSecurity    string `json:"spouseSocialSecurity"`
	SpousePension           string `json:"spousePension"`
	AnnuityIncome           string `json:"annuityIncome"`
	RentalIncome            string `json:"rentalIncome"`
	InvestmentIncome        string `json:"investmentIncome"`
	ApplicantIncomeTotal    string `json:"applicantIncomeTotal"`
	SpouseIncomeTotal       string `json:"spouseIncomeTotal"`
	OtherIncomeTotal        string `json:"otherIncomeTotal"`
	TotalMonthlyIncome      string `json:"totalMonthlyIncome"`

	// Monthly expenses
	RentMortgage            string `json:"rentMortgage"`
	RealEstateTaxes         string `json:"realEstateTaxes"`
	Utilities               string `json:"utilities"`
	HomeownersInsurance     string `json:"homeownersInsurance"`
	HomeMaintenance         string `json:"homeMaintenance"`
	Food                    string `json:"food"`
	Transportation          string `json:"transportation"`
	Clothing                string `json:"clothing"`
	NonReimbursedMedical    string `json:"nonReimbursedMedical"`
	HealthInsurancePremiums string `json:"healthInsurancePremiums"`
	ExtraordinaryMedical    string `json:"extraordinaryMedical"`
	HousingExpensesTotal    string `json:"housingExpensesTotal"`
	PersonalExpensesTotal   string `json:"personalExpensesTotal"`
	MedicalExpensesTotal    string `json:"medicalExpensesTotal"`
	TotalMonthlyExpenses    string `json:"totalMonthlyExpenses"`

	// Assets
	CheckingAccounts       string `json:"checkingAccounts"`
	SavingsAccounts        string `json:"savingsAccounts"`
	MoneyMarketAccounts    string `json:"moneyMarketAccounts"`
	CertificatesOfDeposit  string `json:"certificatesOfDeposit"`
	StocksBonds            string `json:"stocksBonds"`
	RetirementAccounts     string `json:"retirementAccounts"`
	LifeInsuranceCashValue string `json:"lifeInsuranceCashValue"`
	HomeValue              string `json:"homeValue"`
	MortgageBalance        string `json:"mortgageBalance"`
	OtherRealEstate        string `json:"otherRealEstate"`
	HouseholdProperty      string `json:"householdProperty"`
	VehicleValue           string `json:"vehicleValue"`
	OtherAssets            string `json:"otherAssets"`
	BankAccountsTotal      string `json:"bankAccountsTotal"`
	InvestmentsTotal       string `json:"investmentsTotal"`
	InsuranceTotal         string `json:"insuranceTotal"`
	PropertyTotal          string `json:"propertyTotal"`
	PersonalPropertyTotal  string `json:"personalPropertyTotal"`
	TotalAssets            string `json:"totalAssets"`

	// Legal and additional
	GiftsTransfers      bool   `json:"giftsTransfers"`
	GiftsDetails        string `json:"giftsDetails"`
	BurialPlots         bool   `json:"burialPlots"`
	PowerOfAttorney     bool   `json:"powerOfAttorney"`
	HealthcareProxy     bool   `json:"healthcareProxy"`
	LivingWill          bool   `json:"livingWill"`
	LastWill            bool   `json:"lastWill"`
	TrustsEstablished   string `json:"trustsEstablished"`
	AttorneyName        string `json:"attorneyName"`
	AdditionalNotes     string `json:"additionalNotes"`
	ReferralSource      string `json:"referralSource"`
	PreferredContact    string `json:"preferredContact"`
	BestTimeToCall      string `json:"bestTimeToCall"`
	EmergencyContact    string `json:"emergencyContact"`
	EmergencyPhone      string `json:"emergencyPhone"`
}

// NewFormRecord returns an empty record with derived totals pre-formatted so
// the totals invariant holds from the first render.
func NewFormRecord() *FormRecord {
	r := &FormRecord{}
	RecalculateTotals(r)
	return r
}

// EssentiallyEmpty reports whether the record carries none of the three
// fields that make a draft worth keeping. Drafts of essentially empty records
// are never persisted.
func (r *FormRecord) EssentiallyEmpty() bool {
	return r.ApplicantName == "" && r.ApplicantBirthDate == nil && r.MaritalStatus == ""
}
