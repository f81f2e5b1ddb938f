package dto

import (
	"time"

	"github.com/buildledger/payables_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AgingBracketResponse is one bucket of an aging report.
type AgingBracketResponse struct {
	Bracket     string          `json:"bracket"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// AgingReportResponse is the API shape of a payable aging report.
type AgingReportResponse struct {
	ReportDate   time.Time              `json:"reportDate"`
	ReportType   string                 `json:"reportType"`
	CurrencyCode string                 `json:"currencyCode"`
	Brackets     []AgingBracketResponse `json:"brackets"`
	TotalCount   int                    `json:"totalCount"`
	TotalAmount  decimal.Decimal        `json:"totalAmount"`
	Details      []PayableResponse      `json:"details"`
	GeneratedAt  time.Time              `json:"generatedAt"`
	GeneratedBy  string                 `json:"generatedBy"`
}

// ToAgingReportResponse converts a domain aging report to its API shape.
func ToAgingReportResponse(r *domain.AgingReport) AgingReportResponse {
	brackets := make([]AgingBracketResponse, len(r.Brackets))
	for i, b := range r.Brackets {
		brackets[i] = AgingBracketResponse{
			Bracket:     string(b.Bracket),
			Count:       b.Count,
			TotalAmount: b.TotalAmount,
			Percentage:  b.Percentage,
		}
	}
	details := make([]PayableResponse, len(r.Details))
	for i := range r.Details {
		details[i] = ToPayableResponse(&r.Details[i])
	}
	return AgingReportResponse{
		ReportDate:   r.ReportDate,
		ReportType:   r.ReportType,
		CurrencyCode: r.CurrencyCode,
		Brackets:     brackets,
		TotalCount:   r.TotalCount,
		TotalAmount:  r.TotalAmount,
		Details:      details,
		GeneratedAt:  r.GeneratedAt,
		GeneratedBy:  r.GeneratedBy,
	}
}
