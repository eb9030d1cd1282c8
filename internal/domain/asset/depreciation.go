package asset

import (
	"fmt"
	"time"

	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DepreciationMethod represents the depreciation policy of an asset
type DepreciationMethod string

const (
	MethodStraightLine      DepreciationMethod = "STRAIGHT_LINE"
	MethodDecliningBalance  DepreciationMethod = "DECLINING_BALANCE"
	MethodUnitsOfProduction DepreciationMethod = "UNITS_OF_PRODUCTION"
)

// IsValid checks if the method is a declared DepreciationMethod
func (m DepreciationMethod) IsValid() bool {
	switch m {
	case MethodStraightLine, MethodDecliningBalance, MethodUnitsOfProduction:
		return true
	}
	return false
}

// IsSupported returns true if the generator can compute charges for this method.
// DECLINING_BALANCE and UNITS_OF_PRODUCTION are declared but have no compute
// policy yet; runs that encounter them must fail, never charge zero.
func (m DepreciationMethod) IsSupported() bool {
	return m == MethodStraightLine
}

// String returns the string representation of DepreciationMethod
func (m DepreciationMethod) String() string {
	return string(m)
}

// MonthlyCharge computes one calendar month's depreciation charge.
// Straight line: cost basis spread evenly over the useful life.
func MonthlyCharge(method DepreciationMethod, costBasis decimal.Decimal, usefulLifeMonths int) (decimal.Decimal, error) {
	if !method.IsValid() {
		return decimal.Zero, shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Depreciation method %s is not valid", method))
	}
	if !method.IsSupported() {
		return decimal.Zero, shared.NewDomainError("UNSUPPORTED_METHOD", fmt.Sprintf("Depreciation method %s is not supported yet", method))
	}
	if usefulLifeMonths <= 0 {
		return decimal.Zero, shared.NewDomainError("INVALID_USEFUL_LIFE", "Useful life must be a positive number of months")
	}
	return costBasis.Div(decimal.NewFromInt(int64(usefulLifeMonths))), nil
}

// PeriodOf returns the depreciation period containing t,
// normalized to the first day of the month at UTC midnight.
func PeriodOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// CurrentPeriod returns the period for the current calendar month
func CurrentPeriod() time.Time {
	return PeriodOf(time.Now())
}
