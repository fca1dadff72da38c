package tax

import (
	"fmt"

	"fopassistant/internal/model"

	"github.com/shopspring/decimal"
)

// Violation is a hard group rule broken by the declared settings.
type Violation string

const (
	ViolationGroup1IncomeLimit       Violation = "GROUP_1_INCOME_LIMIT_EXCEEDED"
	ViolationGroup1Employees         Violation = "GROUP_1_EMPLOYEES_PROHIBITED"
	ViolationGroup2IncomeLimit       Violation = "GROUP_2_INCOME_LIMIT_EXCEEDED"
	ViolationGroup2EmployeeLimit     Violation = "GROUP_2_EMPLOYEE_LIMIT_EXCEEDED"
	ViolationGroup3TransitionGeneral Violation = "AUTO_TRANSITION_GENERAL"
	ViolationGroup4Activity          Violation = "GROUP_4_INVALID_ACTIVITY"
	ViolationGroup4Employees         Violation = "GROUP_4_EMPLOYEES_PROHIBITED"
	ViolationGroup4Land              Violation = "GROUP_4_INVALID_LAND"
	ViolationUnsupportedGroup        Violation = "UNSUPPORTED_GROUP"
)

func (v Violation) Message() string {
	switch v {
	case ViolationGroup1IncomeLimit:
		return fmt.Sprintf("Income exceeds UAH %s", LimitGroup1.StringFixed(0))
	case ViolationGroup1Employees, ViolationGroup4Employees:
		return "Employees are prohibited"
	case ViolationGroup2IncomeLimit:
		return fmt.Sprintf("Income exceeds UAH %s", LimitGroup2.StringFixed(0))
	case ViolationGroup2EmployeeLimit:
		return fmt.Sprintf("Number of employees exceeds %d", MaxGroup2Employees)
	case ViolationGroup3TransitionGeneral:
		return fmt.Sprintf("Income exceeds UAH %s. Transition to general system required.", LimitGroup3.StringFixed(0))
	case ViolationGroup4Activity:
		return "Exclusively agricultural activity required"
	case ViolationGroup4Land:
		return "Land area must be greater than 0"
	case ViolationUnsupportedGroup:
		return "FOP group must be 1, 2, 3 or 4"
	}
	return string(v)
}

// Warning is advisory and never blocks a calculation.
type Warning string

const (
	WarningLimitApproaching        Warning = "LIMIT_APPROACHING"
	WarningVatRegistrationRequired Warning = "VAT_REGISTRATION_REQUIRED"
)

// IncomeLimit returns the annual income ceiling of a group. Group 4 has none.
func IncomeLimit(group model.FopGroup) (decimal.Decimal, bool) {
	switch group {
	case model.FopGroup1:
		return LimitGroup1, true
	case model.FopGroup2:
		return LimitGroup2, true
	case model.FopGroup3:
		return LimitGroup3, true
	case model.FopGroup4:
		return decimal.Zero, false
	}
	return decimal.Zero, false
}

// VerifyGroupRestrictions checks the rules of the active group only.
// The result is never nil; an empty slice means the settings are compliant.
func VerifyGroupRestrictions(s model.FopSettings, annualIncome decimal.Decimal) []Violation {
	violations := []Violation{}

	switch s.FopGroup {
	case model.FopGroup1:
		if annualIncome.GreaterThan(LimitGroup1) {
			violations = append(violations, ViolationGroup1IncomeLimit)
		}
		if s.HasEmployees {
			violations = append(violations, ViolationGroup1Employees)
		}
	case model.FopGroup2:
		if annualIncome.GreaterThan(LimitGroup2) {
			violations = append(violations, ViolationGroup2IncomeLimit)
		}
		if s.EmployeesCount > MaxGroup2Employees {
			violations = append(violations, ViolationGroup2EmployeeLimit)
		}
	case model.FopGroup3:
		if annualIncome.GreaterThan(LimitGroup3) {
			violations = append(violations, ViolationGroup3TransitionGeneral)
		}
	case model.FopGroup4:
		if s.ActivityType != model.ActivityAgriculture {
			violations = append(violations, ViolationGroup4Activity)
		}
		if s.HasEmployees {
			violations = append(violations, ViolationGroup4Employees)
		}
		if s.LandAreaHa == nil || !s.LandAreaHa.IsPositive() {
			violations = append(violations, ViolationGroup4Land)
		}
	default:
		violations = append(violations, ViolationUnsupportedGroup)
	}

	return violations
}

func Warnings(s model.FopSettings, annualIncome decimal.Decimal) []Warning {
	warnings := []Warning{}

	if limit, ok := IncomeLimit(s.FopGroup); ok && annualIncome.GreaterThanOrEqual(limit.Mul(LimitApproachRatio)) {
		warnings = append(warnings, WarningLimitApproaching)
	}
	if !s.IsVatPayer && annualIncome.GreaterThan(VatRegistrationThreshold) {
		warnings = append(warnings, WarningVatRegistrationRequired)
	}

	return warnings
}
