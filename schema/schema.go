// Package schema has configs, models and constants for all parts of aem.
package schema

// ProgramExpense is one entry of the largest-program-expenses breakdown.
type ProgramExpense struct {
	Expenses float64  `json:"expenses"`
	Revenue  float64  `json:"revenue"`
	Grants   *float64 `json:"grants,omitempty"`
}

// FinancialRecord is the annual disclosure data for one organization, as produced
// by the Form 990 extraction step. Monetary totals are pointers so that an absent
// field can be told apart from a reported zero.
type FinancialRecord struct {
	OrganizationName string `json:"organization_name"`
	FiscalYear       string `json:"fiscal_year,omitempty"`
	Mission          string `json:"mission,omitempty"`
	Website          string `json:"website,omitempty"`

	TotalRevenue           *float64 `json:"total_revenue"`
	TotalExpenses          *float64 `json:"total_expenses"`
	ContributionsAndGrants *float64 `json:"contributions_and_grants"`
	ProgramServiceRevenue  *float64 `json:"program_service_revenue"`
	FundraisingExpenses    *float64 `json:"fundraising_expenses"`

	LargestProgramExpenses map[string]ProgramExpense `json:"largest_program_expenses,omitempty"`
	TopIndividualSalaries  map[string]float64        `json:"top_individual_salaries,omitempty"`
	Policies               map[PolicyKey]*bool       `json:"policies,omitempty"`

	// Precomputed ratios; when present they replace the derived values.
	// FundraisingEfficiency is dollars raised per fundraising dollar, before log scaling.
	ProgramExpenseRatio   *float64 `json:"program_expense_ratio,omitempty"`
	FundraisingEfficiency *float64 `json:"fundraising_efficiency,omitempty"`

	Form990Details
}

// Form990Details carries the remaining Form 990 summary fields. They are not
// used for scoring but are kept so records round-trip without loss.
type Form990Details struct {
	GrossReceipts               *float64 `json:"gross_receipts,omitempty"`
	RevenueLessExpenses         *float64 `json:"revenue_less_expenses,omitempty"`
	InvestmentIncome            *float64 `json:"investment_income,omitempty"`
	OtherRevenue                *float64 `json:"other_revenue,omitempty"`
	GrantsAndSimilarAmountsPaid *float64 `json:"grants_and_similar_amounts_paid,omitempty"`
	SalariesAndEmployeeBenefits *float64 `json:"salaries_and_employee_benefits,omitempty"`
	OtherExpenses               *float64 `json:"other_expenses,omitempty"`
	TotalAssetsBeginning        *float64 `json:"total_assets_beginning,omitempty"`
	TotalAssetsEnd              *float64 `json:"total_assets_end,omitempty"`
	TotalLiabilitiesBeginning   *float64 `json:"total_liabilities_beginning,omitempty"`
	TotalLiabilitiesEnd         *float64 `json:"total_liabilities_end,omitempty"`
	NetAssetsBeginning          *float64 `json:"net_assets_beginning,omitempty"`
	NetAssetsEnd                *float64 `json:"net_assets_end,omitempty"`
	NumberOfEmployees           *float64 `json:"number_of_employees,omitempty"`
	NumberOfVolunteers          *float64 `json:"number_of_volunteers,omitempty"`
	UnrelatedBusinessIncome     *float64 `json:"unrelated_business_income,omitempty"`
	NetUnrelatedBusinessIncome  *float64 `json:"net_unrelated_business_income,omitempty"`
	ForeignGrants               *float64 `json:"foreign_grants,omitempty"`
	DomesticGrants              *float64 `json:"domestic_grants,omitempty"`
	InvestmentInSecurities      *bool    `json:"investment_in_securities,omitempty"`
	LandBuildingsAndEquipment   *bool    `json:"land_buildings_and_equipment,omitempty"`
	AuditedFinancials           *bool    `json:"audited_financials,omitempty"`
}

// Name returns the organization name, or UnknownOrganization when blank.
func (r *FinancialRecord) Name() string {
	if r == nil || r.OrganizationName == "" {
		return UnknownOrganization
	}
	return r.OrganizationName
}

// RequiredField pairs a JSON field name with its value on a record.
type RequiredField struct {
	Name  string
	Value *float64
}

// RequiredFields returns the totals that have no fallback, in canonical order.
func (r *FinancialRecord) RequiredFields() []RequiredField {
	return []RequiredField{
		{Name: "total_revenue", Value: r.TotalRevenue},
		{Name: "total_expenses", Value: r.TotalExpenses},
		{Name: "contributions_and_grants", Value: r.ContributionsAndGrants},
		{Name: "program_service_revenue", Value: r.ProgramServiceRevenue},
		{Name: "fundraising_expenses", Value: r.FundraisingExpenses},
	}
}

// Validate reports the first required field that is absent.
func (r *FinancialRecord) Validate() error {
	if r == nil {
		return &MissingFieldError{Field: "record"}
	}
	for _, f := range r.RequiredFields() {
		if f.Value == nil {
			return &MissingFieldError{Field: f.Name, Organization: r.Name()}
		}
	}
	return nil
}

// Float returns a pointer to v. It keeps record literals in tests and callers short.
func Float(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}
