// Package service contains the application services: session management,
// draft persistence with autosave, the submission pipeline, and report
// generation. Services orchestrate domain types and speak to infrastructure
// through the port interfaces.
package service

import (
	"time"

	"github.com/carepath/medicaid-intake/internal/domain/entity"
	"github.com/carepath/medicaid-intake/internal/domain/intake"
)

// AgeAt computes a whole-year age at the reference time.
func AgeAt(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	anniversary := time.Date(now.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// MapClientInfo flattens the intake record into the applicant summary the
// planner expects. Health status defaults to "good" when unset; the cell
// phone wins over the home phone; isCrisis is set only for a critical
// medical status.
func MapClientInfo(r *intake.FormRecord, now time.Time) entity.ClientInfo {
	age := 0
	if r.ApplicantBirthDate != nil {
		age = AgeAt(*r.ApplicantBirthDate, now)
	}

	health := r.MedicalStatus
	if health == "" {
		health = "good"
	}

	phone := r.CellPhone
	if phone == "" {
		phone = r.HomePhone
	}

	return entity.ClientInfo{
		Name:          r.ApplicantName,
		Age:           age,
		MaritalStatus: r.MaritalStatus,
		HealthStatus:  health,
		Email:         r.Email,
		Phone:         phone,
		State:         r.State,
		IsCrisis:      r.MedicalStatus == "critical",
	}
}

// MapAssets buckets assets into countable resources and exempt categories.
// Home equity (value minus mortgage), one vehicle, and household goods are
// exempt; everything liquid or near-liquid, plus non-home real estate,
// counts against the resource limit.
func MapAssets(r *intake.FormRecord) entity.Assets {
	countable := intake.ParseAmount(r.CheckingAccounts) +
		intake.ParseAmount(r.SavingsAccounts) +
		intake.ParseAmount(r.MoneyMarketAccounts) +
		intake.ParseAmount(r.CertificatesOfDeposit) +
		intake.ParseAmount(r.StocksBonds) +
		intake.ParseAmount(r.RetirementAccounts) +
		intake.ParseAmount(r.LifeInsuranceCashValue) +
		intake.ParseAmount(r.OtherRealEstate) +
		intake.ParseAmount(r.OtherAssets)

	nonCountable := intake.ParseAmount(r.HomeValue) -
		intake.ParseAmount(r.MortgageBalance) +
		intake.ParseAmount(r.HouseholdProperty) +
		intake.ParseAmount(r.VehicleValue)

	return entity.Assets{Countable: countable, NonCountable: nonCountable}
}

// MapIncome sums each income source across applicant and spouse.
func MapIncome(r *intake.FormRecord) entity.Income {
	return entity.Income{
		SocialSecurity: intake.ParseAmount(r.ApplicantSocialSecurity) + intake.ParseAmount(r.SpouseSocialSecurity),
		Pension:        intake.ParseAmount(r.ApplicantPension) + intake.ParseAmount(r.SpousePension),
		Annuity:        intake.ParseAmount(r.AnnuityIncome),
		Rental:         intake.ParseAmount(r.RentalIncome),
		Investment:     intake.ParseAmount(r.InvestmentIncome),
	}
}

// MapExpenses carries the derived category totals across as numbers.
func MapExpenses(r *intake.FormRecord) entity.Expenses {
	housing := intake.ParseAmount(r.HousingExpensesTotal)
	personal := intake.ParseAmount(r.PersonalExpensesTotal)
	medical := intake.ParseAmount(r.MedicalExpensesTotal)
	return entity.Expenses{
		Housing:  housing,
		Personal: personal,
		Medical:  medical,
		Total:    housing + personal + medical,
	}
}

// MapMedicalInfo extracts the medical picture for plan generation.
func MapMedicalInfo(r *intake.FormRecord) entity.MedicalInfo {
	return entity.MedicalInfo{
		Status:                r.MedicalStatus,
		Diagnoses:             r.CurrentDiagnoses,
		RecentHospitalStay:    r.RecentHospitalStay,
		HospitalStayDuration:  r.HospitalStayDuration,
		LongTermCareInsurance: r.LongTermCareInsurance,
	}
}

// MapLivingInfo extracts the living situation for plan generation.
func MapLivingInfo(r *intake.FormRecord) entity.LivingInfo {
	return entity.LivingInfo{
		CurrentSituation:   r.CurrentLivingSituation,
		NursingHomeName:    r.NursingHomeName,
		MonthlyCost:        intake.ParseAmount(r.MonthlyNursingHomeCost),
		IntentToReturnHome: r.IntentToReturnHome,
	}
}
