package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanSnapshot – read-only engine input
// ---------------------------------------------------------------------------

// LoanSnapshot is one loan record as handed to the engine by the
// surrounding system. It is a value object: the engine never mutates it.
//
// OutstandingBalance is optional; an absent balance is not the same as a
// zero balance. Loans without a balance are staged but excluded from
// monetary aggregation. NDIA (number of days in arrears) is likewise
// optional and derived from arrears when missing.
type LoanSnapshot struct {
	LoanID             string
	EmployeeID         string
	OutstandingBalance decimal.NullDecimal
	LoanAmount         decimal.Decimal
	MonthlyInstallment decimal.Decimal
	LoanTerm           int
	IssueDate          time.Time
	AccumulatedArrears decimal.Decimal
	NDIA               *int
	Paid               bool
}

// HasBalance reports whether the loan carries an outstanding balance.
func (l LoanSnapshot) HasBalance() bool { return l.OutstandingBalance.Valid }

// Balance returns the outstanding balance, or zero when absent. Callers
// must check HasBalance before treating the value as monetary input.
func (l LoanSnapshot) Balance() decimal.Decimal {
	if !l.OutstandingBalance.Valid {
		return decimal.Zero
	}
	return l.OutstandingBalance.Decimal
}

// TotalInterest derives the contractual interest over the loan's life:
// installment × term − principal. Negative results are floored at zero.
func (l LoanSnapshot) TotalInterest() decimal.Decimal {
	if l.LoanTerm <= 0 {
		return decimal.Zero
	}
	total := l.MonthlyInstallment.Mul(decimal.NewFromInt(int64(l.LoanTerm))).Sub(l.LoanAmount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// ---------------------------------------------------------------------------
// Collateral – security held against a client's loans
// ---------------------------------------------------------------------------

// Collateral is a security record keyed by the client (employee) reference.
// Cash collateral recovers at face value; non-cash at a haircut.
type Collateral struct {
	EmployeeID string
	Kind       valueobject.CollateralKind
	Value      decimal.Decimal
}

// CollateralBook groups collateral records by client reference for constant
// time lookup during ECL calculation.
type CollateralBook map[string][]Collateral

// NewCollateralBook builds a CollateralBook from an ordered collateral list.
func NewCollateralBook(collaterals []Collateral) CollateralBook {
	book := make(CollateralBook, len(collaterals))
	for _, c := range collaterals {
		book[c.EmployeeID] = append(book[c.EmployeeID], c)
	}
	return book
}

// ForClient returns the collateral held for a client, or nil.
func (b CollateralBook) ForClient(employeeID string) []Collateral {
	if b == nil {
		return nil
	}
	return b[employeeID]
}
