package core

import (
	"github.com/huangsam/aem/schema"
)

// shadySideAcademy returns the FY2023 Form 990 figures of Shady Side Academy.
func shadySideAcademy() *schema.FinancialRecord {
	return &schema.FinancialRecord{
		OrganizationName:       "Shady Side Academy",
		FiscalYear:             "2022-07-01 to 2023-06-30",
		TotalRevenue:           schema.Float(61264018),
		TotalExpenses:          schema.Float(46214302),
		ContributionsAndGrants: schema.Float(19134631),
		ProgramServiceRevenue:  schema.Float(39159042),
		FundraisingExpenses:    schema.Float(965621),
		LargestProgramExpenses: map[string]schema.ProgramExpense{
			"instructional":      {Expenses: 26606300, Revenue: 34274636},
			"auxiliary_services": {Expenses: 5563568, Revenue: 3071934},
			"summer_programs":    {Expenses: 1027679, Revenue: 1436096},
		},
		TopIndividualSalaries: map[string]float64{},
		Policies: map[schema.PolicyKey]*bool{
			schema.ConflictOfInterestPolicy:  schema.Bool(true),
			schema.WhistleblowerPolicy:       schema.Bool(true),
			schema.DocumentRetentionPolicy:   schema.Bool(true),
			schema.CompensationReviewProcess: schema.Bool(true),
		},
	}
}

// harborViewSchool returns a school running a deficit with disclosed salaries.
func harborViewSchool() *schema.FinancialRecord {
	return &schema.FinancialRecord{
		OrganizationName:       "Harbor View School",
		TotalRevenue:           schema.Float(58000000),
		TotalExpenses:          schema.Float(60000000),
		ContributionsAndGrants: schema.Float(12000000),
		ProgramServiceRevenue:  schema.Float(42000000),
		FundraisingExpenses:    schema.Float(1500000),
		LargestProgramExpenses: map[string]schema.ProgramExpense{
			"instructional": {Expenses: 40000000, Revenue: 38000000},
			"athletics":     {Expenses: 6000000, Revenue: 4000000},
		},
		TopIndividualSalaries: map[string]float64{
			"head_of_school":          850000,
			"chief_financial_officer": 400000,
		},
		Policies: map[schema.PolicyKey]*bool{
			schema.ConflictOfInterestPolicy: schema.Bool(true),
			schema.WhistleblowerPolicy:      schema.Bool(false),
			schema.DocumentRetentionPolicy:  schema.Bool(true),
		},
	}
}

// zeroRecord has every required total present and equal to zero.
func zeroRecord() *schema.FinancialRecord {
	return &schema.FinancialRecord{
		TotalRevenue:           schema.Float(0),
		TotalExpenses:          schema.Float(0),
		ContributionsAndGrants: schema.Float(0),
		ProgramServiceRevenue:  schema.Float(0),
		FundraisingExpenses:    schema.Float(0),
	}
}
