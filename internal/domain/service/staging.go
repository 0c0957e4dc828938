package service

import (
	"log/slog"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Classifier – domain service for staging loans into risk buckets
// ---------------------------------------------------------------------------

// Classifier assigns loans to risk buckets by arrears aging. Every call is
// a pure function of the loans and the parsed configuration, so concurrent
// use needs no coordination.
//
// Both live staging and reconstruction of a staging run from a persisted
// summary go through this type; there is deliberately no second
// implementation of the classification rules anywhere in the engine.
type Classifier struct {
	logger *slog.Logger
}

// NewClassifier wires dependencies.
func NewClassifier(logger *slog.Logger) *Classifier {
	return &Classifier{logger: logger}
}

type labelledRange struct {
	label string
	r     valueobject.DaysRange
}

// classify returns the label of the first bucket (in configured order)
// whose range contains value, or the terminal label when none does. The
// no-match fallthrough is a conservative policy, not an error, but it is
// logged so configuration gaps leave an audit trail.
func (c *Classifier) classify(loanID string, value float64, buckets []labelledRange, terminal string) string {
	for _, b := range buckets {
		if b.r.Contains(value) {
			return b.label
		}
	}
	c.logger.Warn("loan matched no configured range, assigning terminal bucket",
		"loan_id", loanID,
		"ndia", value,
		"terminal", terminal,
	)
	return terminal
}

// StageECL classifies loans into the three ECL stages. The effective NDIA
// is the loan's NDIA, or 0 when absent: this path is strictly NDIA-based
// and assumes arrears aging was computed upstream. Output preserves input
// order. Loans without an outstanding balance are staged but keep an
// invalid Balance so aggregation can exclude them.
func (c *Classifier) StageECL(loans []model.LoanSnapshot, buckets []model.ECLBucket) ([]model.StagedLoan, map[string]int) {
	ranges := make([]labelledRange, len(buckets))
	for i, b := range buckets {
		ranges[i] = labelledRange{label: b.Stage.String(), r: b.Range}
	}
	terminal := valueobject.ECLStage3.String()

	staged := make([]model.StagedLoan, 0, len(loans))
	counts := make(map[string]int, len(buckets))
	for _, loan := range loans {
		ndia := 0.0
		if loan.NDIA != nil {
			ndia = float64(*loan.NDIA)
		}
		label := c.classify(loan.LoanID, ndia, ranges, terminal)
		counts[label]++
		staged = append(staged, model.StagedLoan{
			LoanID:     loan.LoanID,
			EmployeeID: loan.EmployeeID,
			Stage:      label,
			Balance:    loan.OutstandingBalance,
			NDIA:       ndia,
		})
	}
	return staged, counts
}

// StageLocalImpairment classifies loans into the five local impairment
// categories. The effective NDIA falls back to the shared days-past-due
// derivation when the loan carries none.
func (c *Classifier) StageLocalImpairment(loans []model.LoanSnapshot, buckets []model.ImpairmentBucket) ([]model.StagedLoan, map[string]int) {
	ranges := make([]labelledRange, len(buckets))
	for i, b := range buckets {
		ranges[i] = labelledRange{label: b.Category.String(), r: b.Range}
	}
	terminal := valueobject.CategoryLoss.String()

	staged := make([]model.StagedLoan, 0, len(loans))
	counts := make(map[string]int, len(buckets))
	for _, loan := range loans {
		ndia := DaysPastDue(loan)
		label := c.classify(loan.LoanID, ndia, ranges, terminal)
		counts[label]++
		staged = append(staged, model.StagedLoan{
			LoanID:     loan.LoanID,
			EmployeeID: loan.EmployeeID,
			Stage:      label,
			Balance:    loan.OutstandingBalance,
			NDIA:       ndia,
		})
	}
	return staged, counts
}
