package intake

import (
	"fmt"
	"strconv"
	"strings"
)

// totalGroup ties one derived total to the fields it sums. Groups without a
// compute override are plain sums of their dependents.
type totalGroup struct {
	total   func(*FormRecord) *string
	deps    []func(*FormRecord) *string
	compute func(*FormRecord) float64
}

var incomeGroups = []totalGroup{
	{
		total: func(r *FormRecord) *string { return &r.ApplicantIncomeTotal },
		deps: []func(*FormRecord) *string{
			func(r *FormRecord) *string { return &r.ApplicantSocialSecurity },
			func(r *FormRecord) *string { return &r.ApplicantPension },
		},
	},
	{
		total: func(r *FormRecord) *string { return &r.SpouseIncomeTotal },
		deps: []func(*FormRecord) *string{
			func(r *FormRecord) *string { return &r.SpouseSocialSecurity },
			func(r *FormRecord) *string { return &r.SpousePension },
		},
	},
	{
		total: func(r *FormRecord) *string { return &r.OtherIncomeTotal },
		deps: []func(*FormRecord) *string{
			func(r *FormRecord) *string { return &r.AnnuityIncome },
			func(r *FormRecord) *string { return &r.RentalIncome },
			func(r *FormRecord) *string { return &r.InvestmentIncome },
		},
	},
}

var expenseGroups = []totalGroup{
	{
		total: func(r *FormRecord) *string { return &r.HousingExpensesTotal },
		deps: []func(*FormRecord) *string{
			func(r *FormRecord) *string { return &r.RentMortgage },
			func(r *FormRecord) *string { return &r.RealEstateTaxes },
			func(r *FormRecord) *string { return &r.Utilities },
			func(r *FormRecord) *string { return &r.HomeownersInsurance },
			func(r *FormRecord) *string { return &r.HomeMaintenance },
		},
	},
	{
		total: func(r *FormRecord) *string { return &r.PersonalExpensesTotal },
		deps: []func(*FormRecord) *string{
			func(r *FormRecord) *string { return &r.Food },
			func(r *FormRecord) *string { return &r.Transportation },
			func(r *FormRecord) *string { return &r.Clothing },
		},
	},
	{
		total: func(r *FormRecord) *string { return &r.MedicalExpensesTotal },
		deps: []func(*FormRecord) *string{
			func(r *FormRecord) *string { return &r.NonReimbursedMedical },
			func(r *FormRecord) *string { return &r.HealthInsurancePremiums },
			func(r *FormRecord) *string { return &r.ExtraordinaryMedical },
		},
	},
}

var assetGroups = []totalGroup{
	{
		total: func(r *FormRecord) *string { return &r.BankAccountsTotal },
		deps: []func(*FormRecord) *string{
			func(r *FormRecord) *string { return &r.CheckingAccounts },
			func(r *FormRecord) *string { return &r.SavingsAccounts },
			func(r *FormRecord) *string { return &r.MoneyMarketAccounts },
			func(r *FormRecord) *string { return &r.CertificatesOfDeposit },
		},
	},
	{
		total: func(r *FormRecord) *string { return &r.InvestmentsTotal },
		deps: []func(*FormRecord) *string{
			func(r *FormRecord) *string { return &r.StocksBonds },
			func(r *FormRecord) *string { return &r.RetirementAccounts },
		},
	},
	{
		total: func(r *FormRecord) *string { return &r.InsuranceTotal },
		deps: []func(*FormRecord) *string{
			func(r *FormRecord) *string { return &r.LifeInsuranceCashValue },
		},
	},
	{
		// Net property position: home equity can go negative when the
		// mortgage exceeds home value plus other real estate. The negative
		// value flows into the grand total unclamped.
		total: func(r *FormRecord) *string { return &r.PropertyTotal },
		compute: func(r *FormRecord) float64 {
			return ParseAmount(r.HomeValue) - ParseAmount(r.MortgageBalance) + ParseAmount(r.OtherRealEstate)
		},
	},
	{
		total: func(r *FormRecord) *string { return &r.PersonalPropertyTotal },
		deps: []func(*FormRecord) *string{
			func(r *FormRecord) *string { return &r.HouseholdProperty },
			func(r *FormRecord) *string { return &r.VehicleValue },
			func(r *FormRecord) *string { return &r.OtherAssets },
		},
	},
}

// ParseAmount reads a user-typed monetary string as a decimal. Empty strings,
// stray commas and dollar signs, and non-numeric text all come back as zero;
// amount parsing never fails.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmount renders a derived total as a two-decimal string.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func (g totalGroup) value(r *FormRecord) float64 {
	if g.compute != nil {
		return g.compute(r)
	}
	sum := 0.0
	for _, dep := range g.deps {
		sum += ParseAmount(*dep(r))
	}
	return sum
}

func recalcCategory(r *FormRecord, groups []totalGroup, grand *string) {
	category := 0.0
	for _, g := range groups {
		v := g.value(r)
		*g.total(r) = FormatAmount(v)
		category += v
	}
	*grand = FormatAmount(category)
}

// RecalculateTotals rewrites every derived total from its dependent fields.
// Called after each applied change so the totals never drift from the inputs.
func RecalculateTotals(r *FormRecord) {
	recalcCategory(r, incomeGroups, &r.TotalMonthlyIncome)
	recalcCategory(r, expenseGroups, &r.TotalMonthlyExpenses)
	recalcCategory(r, assetGroups, &r.TotalAssets)
}
