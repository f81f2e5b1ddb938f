package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildledger/payables_backend/internal/core/domain"
	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
	portssvc "github.com/buildledger/payables_backend/internal/core/ports/services"
	"github.com/buildledger/payables_backend/internal/middleware"
	"github.com/buildledger/payables_backend/internal/platform/config"
	"github.com/buildledger/payables_backend/internal/utils/accounting"
)

var oneHundred = decimal.NewFromInt(100)

type reportingService struct {
	payableRepo portsrepo.PayableReader
	cfg         *config.Config
}

// NewReportingService creates a new ReportingService.
func NewReportingService(payableRepo portsrepo.PayableReader, cfg *config.Config) portssvc.ReportingSvcFacade {
	return &reportingService{payableRepo: payableRepo, cfg: cfg}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GenerateAgingReport buckets every open payable by days elapsed since its
// invoice date, relative to asOf. Aging is always recomputed here; the
// snapshot stored at creation time is ignored. All four buckets appear in
// the result even when empty, in fixed order.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) GenerateAgingReport(ctx context.Context, asOf time.Time, actorID string) (*domain.AgingReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	open, err := s.payableRepo.FindOpenPayables(ctx)
	if err != nil {
		logger.Error("Failed to fetch open payables for aging report", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch open payables: %w", err)
	}

	totals := make(map[domain.AgingBracket]*domain.AgingBracketTotal, len(domain.AgingBrackets))
	for _, bracket := range domain.AgingBrackets {
		totals[bracket] = &domain.AgingBracketTotal{
			Bracket:     bracket,
			TotalAmount: decimal.Zero,
			Percentage:  decimal.Zero,
		}
	}

	totalAmount := decimal.Zero
	details := make([]domain.AccountsPayable, len(open))
	for i, payable := range open {
		days, bracket := accounting.CalculateAging(payable.InvoiceDate, asOf)
		payable.AgingDays = days
		payable.AgingBracket = bracket
		details[i] = payable

		bucket := totals[bracket]
		bucket.Count++
		bucket.TotalAmount = bucket.TotalAmount.Add(payable.AmountDue)
		totalAmount = totalAmount.Add(payable.AmountDue)
	}

	brackets := make([]domain.AgingBracketTotal, len(domain.AgingBrackets))
	for i, bracket := range domain.AgingBrackets {
		bucket := totals[bracket]
		if totalAmount.IsPositive() {
			bucket.Percentage = bucket.TotalAmount.Div(totalAmount).Mul(oneHundred).Round(2)
		}
		brackets[i] = *bucket
	}

	report := &domain.AgingReport{
		ReportDate:   asOf,
		ReportType:   "payable",
		CurrencyCode: s.cfg.DefaultCurrency,
		Brackets:     brackets,
		TotalCount:   len(open),
		TotalAmount:  totalAmount,
		Details:      details,
		GeneratedAt:  time.Now().UTC(),
		GeneratedBy:  actorID,
	}

	logger.Info("Aging report generated",
		slog.Int("open_count", report.TotalCount),
		slog.String("total_amount", report.TotalAmount.String()),
	)
	return report, nil
}
