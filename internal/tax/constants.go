package tax

import "github.com/shopspring/decimal"

// Statutory figures for the simplified regime, in UAH.
var (
	LimitGroup1 = decimal.NewFromInt(1_000_000)
	LimitGroup2 = decimal.NewFromInt(5_921_400)
	LimitGroup3 = decimal.NewFromInt(8_285_700)

	VatRegistrationThreshold = decimal.NewFromInt(1_000_000)
	LimitApproachRatio       = decimal.RequireFromString("0.9")

	MinESV           = decimal.NewFromInt(1760)
	SingleTaxGroup1  = decimal.RequireFromString("302.80")
	SingleTaxGroup2  = decimal.NewFromInt(1600)
	FixedMilitaryTax = decimal.NewFromInt(800)

	Group3RateDefault  = decimal.RequireFromString("0.05")
	Group3RateVatPayer = decimal.RequireFromString("0.03")
	Group3MilitaryRate = decimal.RequireFromString("0.01")

	// Group4LandRate is applied to the normative land value per year.
	Group4LandRate = decimal.RequireFromString("0.0095")
)

const MaxGroup2Employees = 10

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)
