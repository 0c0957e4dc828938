package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Aggregator – buckets staged loans into a portfolio summary
// ---------------------------------------------------------------------------

// LoanProvision pairs one staged loan with its computed provision and, for
// ECL runs, the risk components that produced it.
type LoanProvision struct {
	Loan      model.StagedLoan
	Provision decimal.Decimal
	PD        decimal.Decimal
	LGD       decimal.Decimal
	EAD       decimal.Decimal
}

// Aggregator sums staged loans into per-bucket and overall totals.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator wires dependencies.
func NewAggregator(logger *slog.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

type bucketAccumulator struct {
	count     int
	balance   decimal.Decimal
	provision decimal.Decimal
}

// Summarize buckets the items by stage label, in the given order, and
// produces the portfolio summary. Loans with an unrecognized label are
// folded into the terminal (worst) bucket and logged, never dropped. Loans
// without an outstanding balance are excluded from monetary totals and
// counted separately. Sums accumulate at full precision; monetary fields
// round to 2 decimal places, rates to 4 and percentages to 2 only here, at
// the presentation boundary.
func (a *Aggregator) Summarize(labels []string, terminal string, items []LoanProvision, withComponents bool) model.PortfolioSummary {
	acc := make(map[string]*bucketAccumulator, len(labels))
	for _, l := range labels {
		acc[l] = &bucketAccumulator{balance: decimal.Zero, provision: decimal.Zero}
	}

	skipped := 0
	totalLoans := 0
	sumPD, sumLGD, sumEAD := decimal.Zero, decimal.Zero, decimal.Zero

	for _, item := range items {
		if !item.Loan.Balance.Valid {
			skipped++
			continue
		}

		bucket, ok := acc[item.Loan.Stage]
		if !ok {
			a.logger.Warn("unrecognized stage label, folding into terminal bucket",
				"loan_id", item.Loan.LoanID,
				"stage", item.Loan.Stage,
				"terminal", terminal,
			)
			bucket = acc[terminal]
		}

		bucket.count++
		bucket.balance = bucket.balance.Add(item.Loan.Balance.Decimal)
		bucket.provision = bucket.provision.Add(item.Provision)
		totalLoans++

		if withComponents {
			sumPD = sumPD.Add(item.PD)
			sumLGD = sumLGD.Add(item.LGD)
			sumEAD = sumEAD.Add(item.EAD)
		}
	}

	summary := model.PortfolioSummary{
		Buckets:          make([]model.BucketSummary, 0, len(labels)),
		TotalLoans:       totalLoans,
		SkippedNoBalance: skipped,
	}

	totalBalance, totalProvision := decimal.Zero, decimal.Zero
	for _, label := range labels {
		b := acc[label]
		totalBalance = totalBalance.Add(b.balance)
		totalProvision = totalProvision.Add(b.provision)

		rate := decimal.Zero
		if b.balance.IsPositive() {
			rate = b.provision.Div(b.balance)
		}
		summary.Buckets = append(summary.Buckets, model.BucketSummary{
			Label:          label,
			Count:          b.count,
			TotalBalance:   b.balance.Round(2),
			TotalProvision: b.provision.Round(2),
			ProvisionRate:  rate.Round(4),
		})
	}

	summary.TotalBalance = totalBalance.Round(2)
	summary.TotalProvision = totalProvision.Round(2)
	if totalBalance.IsPositive() {
		summary.ProvisionPercentage = totalProvision.Div(totalBalance).Mul(decimal.NewFromInt(100)).Round(2)
	} else {
		summary.ProvisionPercentage = decimal.Zero
	}

	if withComponents && totalLoans > 0 {
		n := decimal.NewFromInt(int64(totalLoans))
		summary.AvgPD = sumPD.Div(n).Round(4)
		summary.AvgLGD = sumLGD.Div(n).Round(4)
		summary.AvgEAD = sumEAD.Div(n).Round(4)
	}

	return summary
}
