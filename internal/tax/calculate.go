package tax

import (
	"errors"
	"fmt"

	"fopassistant/internal/model"

	"github.com/shopspring/decimal"
)

var (
	ErrUnsupportedGroup  = errors.New("unsupported fop group")
	ErrUnsupportedPeriod = errors.New("unsupported reporting period")
)

// Calculation is the tax breakdown of one reporting period.
//
// SingleTax, ESV and MilitaryTax are scaled to the requested period. The
// Total* fields are always derived from the single-month components, whatever
// period was requested.
type Calculation struct {
	SingleTax         decimal.Decimal  `json:"single_tax"`
	ESV               decimal.Decimal  `json:"esv"`
	MilitaryTax       decimal.Decimal  `json:"military_tax"`
	VAT               *decimal.Decimal `json:"vat"` // not computed under the simplified regime
	TotalMonthlyTax   decimal.Decimal  `json:"total_monthly_tax"`
	TotalQuarterlyTax decimal.Decimal  `json:"total_quarterly_tax"`
	TotalAnnualTax    decimal.Decimal  `json:"total_annual_tax"`
}

func PeriodMonths(period model.ReportingPeriod) (int64, error) {
	switch period {
	case model.PeriodMonth:
		return 1, nil
	case model.PeriodQuarter:
		return 3, nil
	case model.PeriodYear:
		return 12, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedPeriod, period)
}

// SocialContribution is the monthly ESV charge. It never drops below MinESV.
func SocialContribution(s model.FopSettings) decimal.Decimal {
	if s.EsvValue.GreaterThan(MinESV) {
		return s.EsvValue
	}
	return MinESV
}

// Calculate computes the taxes owed on periodIncome, the income of one month.
func Calculate(s model.FopSettings, periodIncome decimal.Decimal, period model.ReportingPeriod) (Calculation, error) {
	months, err := PeriodMonths(period)
	if err != nil {
		return Calculation{}, err
	}

	esv := SocialContribution(s)
	var singleTax, militaryTax decimal.Decimal

	switch s.FopGroup {
	case model.FopGroup1:
		singleTax = SingleTaxGroup1
		militaryTax = FixedMilitaryTax
	case model.FopGroup2:
		singleTax = SingleTaxGroup2
		militaryTax = FixedMilitaryTax
	case model.FopGroup3:
		singleTax = periodIncome.Mul(group3Rate(s))
		militaryTax = periodIncome.Mul(group3MilitaryRate(s))
	case model.FopGroup4:
		landValue := valueOrZero(s.NormativeLandValue)
		area := valueOrZero(s.LandAreaHa)
		singleTax = landValue.Mul(area).Mul(Group4LandRate).Div(monthsInYear)
		militaryTax = FixedMilitaryTax
	default:
		return Calculation{}, fmt.Errorf("%w: %d", ErrUnsupportedGroup, s.FopGroup)
	}

	scale := decimal.NewFromInt(months)
	monthly := singleTax.Add(esv).Add(militaryTax)

	return Calculation{
		SingleTax:         singleTax.Mul(scale).Round(2),
		ESV:               esv.Mul(scale).Round(2),
		MilitaryTax:       militaryTax.Mul(scale).Round(2),
		TotalMonthlyTax:   monthly.Round(2),
		TotalQuarterlyTax: monthly.Mul(decimal.NewFromInt(3)).Round(2),
		TotalAnnualTax:    monthly.Mul(monthsInYear).Round(2),
	}, nil
}

func group3Rate(s model.FopSettings) decimal.Decimal {
	if s.IncomeTaxPercent != nil {
		return s.IncomeTaxPercent.Div(hundred)
	}
	if s.IsVatPayer {
		return Group3RateVatPayer
	}
	return Group3RateDefault
}

func group3MilitaryRate(s model.FopSettings) decimal.Decimal {
	if s.MilitaryTaxPercent != nil {
		return s.MilitaryTaxPercent.Div(hundred)
	}
	return Group3MilitaryRate
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
