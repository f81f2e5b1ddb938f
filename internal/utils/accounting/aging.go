package accounting

import (
	"math"
	"time"

	"github.com/buildledger/payables_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementTolerance treats a remaining due of one cent or less as paid.
// Comparisons against it are the single source of truth for the
// paid/partially_paid decision, shared by services and repositories.
var SettlementTolerance = decimal.NewFromFloat(0.01)

// IsSettled reports whether the remaining due amount counts as fully paid.
func IsSettled(amountDue decimal.Decimal) bool {
	return amountDue.LessThanOrEqual(SettlementTolerance)
}

// CalculateAging computes the days elapsed between an invoice date and the
// given as-of instant, rounded up, and the bracket the record falls into.
// Deterministic and side-effect free; callers decide whether the result is a
// creation-time snapshot or a transient report value.
func CalculateAging(invoiceDate, asOf time.Time) (int, domain.AgingBracket) {
	elapsed := asOf.Sub(invoiceDate)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	days := int(math.Ceil(elapsed.Hours() / 24))
	return days, BracketForDays(days)
}

// BracketForDays classifies an aging day count into one of the four fixed
// buckets. Boundaries are inclusive at 30/60/90: day 30 is "0-30", day 31
// is "31-60".
func BracketForDays(days int) domain.AgingBracket {
	switch {
	case days <= 30:
		return domain.Aging0To30
	case days <= 60:
		return domain.Aging31To60
	case days <= 90:
		return domain.Aging61To90
	default:
		return domain.AgingOver90
	}
}
