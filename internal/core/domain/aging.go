package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgingBracket classifies how many days have elapsed since an invoice's date.
type AgingBracket string

const (
	Aging0To30  AgingBracket = "0-30"
	Aging31To60 AgingBracket = "31-60"
	Aging61To90 AgingBracket = "61-90"
	AgingOver90 AgingBracket = "90+"
)

// AgingBrackets lists the four fixed buckets in report order.
var AgingBrackets = []AgingBracket{Aging0To30, Aging31To60, Aging61To90, AgingOver90}

// AgingBracketTotal is one bucket of an aging report. All four buckets are
// always present, even when Count is 0.
type AgingBracketTotal struct {
	Bracket     AgingBracket    `json:"bracket"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// AgingReport is a point-in-time snapshot of all open payables bucketed by age.
// Aging is recomputed against ReportDate at generation time; the snapshot
// stored on each payable at creation is never trusted for reporting.
type AgingReport struct {
	ReportDate   time.Time           `json:"reportDate"`
	ReportType   string              `json:"reportType"` // always "payable"
	CurrencyCode string              `json:"currencyCode"`
	Brackets     []AgingBracketTotal `json:"brackets"` // exactly 4
	TotalCount   int                 `json:"totalCount"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	Details      []AccountsPayable   `json:"details"` // open records with refreshed aging
	GeneratedAt  time.Time           `json:"generatedAt"`
	GeneratedBy  string              `json:"generatedBy"`
}
