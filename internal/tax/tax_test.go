package tax

import (
	"errors"
	"slices"
	"testing"

	"fopassistant/internal/model"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func settings(group model.FopGroup) model.FopSettings {
	return model.FopSettings{
		FopGroup:        group,
		TaxSystem:       model.TaxSystemSimplified,
		ActivityType:    model.ActivityServices,
		ReportingPeriod: model.PeriodMonth,
	}
}

func TestVerifyGroupRestrictions(t *testing.T) {
	agricultural := settings(model.FopGroup4)
	agricultural.ActivityType = model.ActivityAgriculture
	agricultural.LandAreaHa = decPtr("5")

	withEmployees := func(s model.FopSettings, count int) model.FopSettings {
		s.HasEmployees = true
		s.EmployeesCount = count
		return s
	}

	tests := []struct {
		name     string
		settings model.FopSettings
		income   string
		want     []Violation
	}{
		{"group 1 over limit", settings(model.FopGroup1), "1100000", []Violation{ViolationGroup1IncomeLimit}},
		{"group 1 at limit", settings(model.FopGroup1), "1000000", []Violation{}},
		{"group 1 employees", withEmployees(settings(model.FopGroup1), 1), "500000", []Violation{ViolationGroup1Employees}},
		{"group 2 both rules", withEmployees(settings(model.FopGroup2), 11), "6000000",
			[]Violation{ViolationGroup2IncomeLimit, ViolationGroup2EmployeeLimit}},
		{"group 2 ten employees allowed", withEmployees(settings(model.FopGroup2), 10), "100000", []Violation{}},
		{"group 3 over limit", settings(model.FopGroup3), "9000000", []Violation{ViolationGroup3TransitionGeneral}},
		{"group 3 employees allowed", withEmployees(settings(model.FopGroup3), 50), "100000", []Violation{}},
		{"group 4 everything wrong", withEmployees(settings(model.FopGroup4), 2), "0",
			[]Violation{ViolationGroup4Activity, ViolationGroup4Employees, ViolationGroup4Land}},
		{"group 4 compliant", agricultural, "99000000", []Violation{}},
		{"unknown group", settings(model.FopGroup(7)), "0", []Violation{ViolationUnsupportedGroup}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifyGroupRestrictions(tt.settings, dec(tt.income))
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	vatPayer := func(s model.FopSettings) model.FopSettings {
		s.IsVatPayer = true
		return s
	}

	tests := []struct {
		name     string
		settings model.FopSettings
		income   decimal.Decimal
		want     []Warning
	}{
		{"group 1 approaching limit", settings(model.FopGroup1), LimitGroup1.Mul(dec("0.91")), []Warning{WarningLimitApproaching}},
		{"group 3 approaching limit as vat payer", vatPayer(settings(model.FopGroup3)), LimitGroup3.Mul(dec("0.91")),
			[]Warning{WarningLimitApproaching}},
		{"group 3 approaching limit without vat", settings(model.FopGroup3), LimitGroup3.Mul(dec("0.91")),
			[]Warning{WarningLimitApproaching, WarningVatRegistrationRequired}},
		{"exactly ninety percent", settings(model.FopGroup2), LimitGroup2.Mul(LimitApproachRatio),
			[]Warning{WarningLimitApproaching, WarningVatRegistrationRequired}},
		{"vat threshold is exclusive", settings(model.FopGroup3), dec("1000000"), []Warning{}},
		{"group 4 has no limit", settings(model.FopGroup4), dec("50000000"), []Warning{WarningVatRegistrationRequired}},
		{"nothing to report", settings(model.FopGroup2), dec("250000"), []Warning{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Warnings(tt.settings, tt.income)
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	group3 := settings(model.FopGroup3)
	group3VAT := settings(model.FopGroup3)
	group3VAT.IsVatPayer = true
	group3Custom := settings(model.FopGroup3)
	group3Custom.IncomeTaxPercent = decPtr("2.5")
	group3Custom.MilitaryTaxPercent = decPtr("1.5")
	group4 := settings(model.FopGroup4)
	group4.NormativeLandValue = decPtr("1000000")
	group4.LandAreaHa = decPtr("10")
	group1HighESV := settings(model.FopGroup1)
	group1HighESV.EsvValue = dec("2000")

	type amounts struct{ single, esv, military, monthly, quarterly, annual string }
	tests := []struct {
		name     string
		settings model.FopSettings
		income   string
		period   model.ReportingPeriod
		want     amounts
	}{
		{"group 1 month", settings(model.FopGroup1), "0", model.PeriodMonth,
			amounts{"302.80", "1760", "800", "2862.80", "8588.40", "34353.60"}},
		{"group 2 quarter keeps totals unscaled", settings(model.FopGroup2), "999999", model.PeriodQuarter,
			amounts{"4800", "5280", "2400", "4160", "12480", "49920"}},
		{"group 3 default rates over a year", group3, "100000", model.PeriodYear,
			amounts{"60000", "21120", "12000", "7760", "23280", "93120"}},
		{"group 3 vat payer", group3VAT, "100000", model.PeriodMonth,
			amounts{"3000", "1760", "1000", "5760", "17280", "69120"}},
		{"group 3 custom percents", group3Custom, "100000", model.PeriodMonth,
			amounts{"2500", "1760", "1500", "5760", "17280", "69120"}},
		{"group 3 zero income still pays esv", group3, "0", model.PeriodQuarter,
			amounts{"0", "5280", "0", "1760", "5280", "21120"}},
		{"group 4 land share", group4, "0", model.PeriodMonth,
			amounts{"7916.67", "1760", "800", "10476.67", "31430.00", "125720.00"}},
		{"esv above minimum", group1HighESV, "0", model.PeriodMonth,
			amounts{"302.80", "2000", "800", "3102.80", "9308.40", "37233.60"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.settings, dec(tt.income), tt.period)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			check := func(field string, got decimal.Decimal, want string) {
				if !got.Equal(dec(want)) {
					t.Errorf("%s: expected %s, got %s", field, want, got)
				}
			}
			check("single_tax", got.SingleTax, tt.want.single)
			check("esv", got.ESV, tt.want.esv)
			check("military_tax", got.MilitaryTax, tt.want.military)
			check("total_monthly_tax", got.TotalMonthlyTax, tt.want.monthly)
			check("total_quarterly_tax", got.TotalQuarterlyTax, tt.want.quarterly)
			check("total_annual_tax", got.TotalAnnualTax, tt.want.annual)
			if got.VAT != nil {
				t.Errorf("expected no VAT, got %s", got.VAT)
			}
		})
	}
}

func TestCalculateRejectsUnknownInputs(t *testing.T) {
	if _, err := Calculate(settings(model.FopGroup(0)), decimal.Zero, model.PeriodMonth); !errors.Is(err, ErrUnsupportedGroup) {
		t.Errorf("expected ErrUnsupportedGroup, got %v", err)
	}
	if _, err := Calculate(settings(model.FopGroup1), decimal.Zero, model.ReportingPeriod("week")); !errors.Is(err, ErrUnsupportedPeriod) {
		t.Errorf("expected ErrUnsupportedPeriod, got %v", err)
	}
}

func TestPaymentCalendar(t *testing.T) {
	entries := PaymentCalendar()
	if len(entries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(entries))
	}
	if len(entries[0].ApplicableGroups) != 4 {
		t.Errorf("esv applies to every group, got %v", entries[0].ApplicableGroups)
	}

	entries[0].Event = "changed"
	if PaymentCalendar()[0].Event == "changed" {
		t.Fatal("calendar must not share state between calls")
	}

	if got := CalendarFor(model.FopGroup3); len(got) != 3 {
		t.Errorf("expected 3 entries for group 3, got %d", len(got))
	}
	if got := CalendarFor(model.FopGroup4); len(got) != 3 {
		t.Errorf("expected 3 entries for group 4, got %d", len(got))
	}
}

func TestViolationMessages(t *testing.T) {
	if got := ViolationGroup1IncomeLimit.Message(); got != "Income exceeds UAH 1000000" {
		t.Errorf("unexpected message %q", got)
	}
	if got := Violation("SOMETHING_ELSE").Message(); got != "SOMETHING_ELSE" {
		t.Errorf("unknown codes should echo, got %q", got)
	}
}
