package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildledger/payables_backend/internal/apperrors"
	"github.com/buildledger/payables_backend/internal/core/domain"
	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
	portssvc "github.com/buildledger/payables_backend/internal/core/ports/services"
	"github.com/buildledger/payables_backend/internal/dto"
	"github.com/buildledger/payables_backend/internal/middleware"
	"github.com/buildledger/payables_backend/internal/platform/config"
	"github.com/buildledger/payables_backend/internal/utils/accounting"
)

var (
	ErrInvoiceNumberMissing = errors.New("invoice number is required (1-50 characters)")
	ErrVendorMissing        = errors.New("vendor ID is required")
	ErrLineItemsEmpty       = errors.New("payable must have at least one line item")
	ErrPaymentNotPositive   = errors.New("payment amount must be positive")
	ErrPaymentExceedsDue    = errors.New("payment amount exceeds amount due")
)

const maxInvoiceNumberLen = 50

// payableService orchestrates the accounts-payable lifecycle: create,
// approve, cancel and payment application. It is stateless; all
// collaborators are injected.
type payableService struct {
	payableRepo  portsrepo.PayableRepositoryWithTx
	sequenceRepo portsrepo.SequenceAllocator
	journalSvc   portssvc.JournalBridgeSvcFacade
	auditSvc     portssvc.AuditRecorderSvcFacade
	cfg          *config.Config
}

// NewPayableService creates a new PayableService.
func NewPayableService(
	payableRepo portsrepo.PayableRepositoryWithTx,
	sequenceRepo portsrepo.SequenceAllocator,
	journalSvc portssvc.JournalBridgeSvcFacade,
	auditSvc portssvc.AuditRecorderSvcFacade,
	cfg *config.Config,
) portssvc.PayableSvcFacade {
	return &payableService{
		payableRepo:  payableRepo,
		sequenceRepo: sequenceRepo,
		journalSvc:   journalSvc,
		auditSvc:     auditSvc,
		cfg:          cfg,
	}
}

// Ensure payableService implements the portssvc.PayableSvcFacade interface
var _ portssvc.PayableSvcFacade = (*payableService)(nil)

// CreatePayable validates input, allocates the AP number, enriches line
// items and persists the new record in pending state.
// Implements portssvc.PayableSvcFacade
func (s *payableService) CreatePayable(ctx context.Context, req dto.CreatePayableRequest, actorID string) (*domain.AccountsPayable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// --- Basic Validation ---
	if len(req.InvoiceNumber) == 0 || len(req.InvoiceNumber) > maxInvoiceNumberLen {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvoiceNumberMissing)
	}
	if req.VendorID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrVendorMissing)
	}
	if len(req.LineItems) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrLineItemsEmpty)
	}

	now := time.Now().UTC()

	// --- Enrich Line Items ---
	// Each line gets a sequential ID, a 1-based line number matching its
	// position, a recomputed amount when none was supplied, and the default
	// expense account when none was supplied. Every line must resolve to an
	// account before the payable is postable.
	lineItems := make([]domain.PayableLineItem, len(req.LineItems))
	subtotal := decimal.Zero
	for i, lineReq := range req.LineItems {
		if lineReq.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if lineReq.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %d unit price must not be negative", apperrors.ErrValidation, i+1)
		}

		amount := lineReq.Amount
		if amount.IsZero() {
			amount = lineReq.Quantity.Mul(lineReq.UnitPrice)
		}

		line := domain.PayableLineItem{
			LineItemID:           fmt.Sprintf("line_%d", i+1),
			LineNumber:           i + 1,
			Description:          lineReq.Description,
			Quantity:             lineReq.Quantity,
			UnitPrice:            lineReq.UnitPrice,
			Amount:               amount,
			ExpenseAccountID:     lineReq.ExpenseAccountID,
			ExpenseAccountNumber: lineReq.ExpenseAccountNumber,
			ExpenseAccountName:   lineReq.ExpenseAccountName,
		}
		if line.ExpenseAccountID == "" {
			line.ExpenseAccountID = s.cfg.DefaultExpenseAccount.ID
			line.ExpenseAccountNumber = s.cfg.DefaultExpenseAccount.Number
			line.ExpenseAccountName = s.cfg.DefaultExpenseAccount.Name
		}
		lineItems[i] = line
		subtotal = subtotal.Add(amount)
	}

	if !req.Subtotal.IsZero() {
		subtotal = req.Subtotal
	}
	totalAmount := req.TotalAmount
	if totalAmount.IsZero() {
		totalAmount = subtotal.Add(req.TaxAmount)
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	// --- Allocate AP Number ---
	// The sequence allocator serializes concurrent creates within a fiscal
	// year; duplicates here would corrupt the numbering invariant.
	apNumber, err := s.sequenceRepo.NextAPNumber(ctx, now.Year())
	if err != nil {
		logger.Error("Failed to allocate AP number", slog.Int("year", now.Year()), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to allocate AP number: %w", err)
	}

	// Aging snapshot at creation; reports recompute from InvoiceDate.
	agingDays, agingBracket := accounting.CalculateAging(req.InvoiceDate, now)

	payable := domain.AccountsPayable{
		APID:             uuid.NewString(),
		APNumber:         apNumber,
		InvoiceNumber:    req.InvoiceNumber,
		InvoiceDate:      req.InvoiceDate,
		DueDate:          req.DueDate,
		VendorID:         req.VendorID,
		VendorName:       req.VendorName,
		VendorCode:       req.VendorCode,
		CurrencyCode:     currency,
		LineItems:        lineItems,
		Subtotal:         subtotal,
		TaxAmount:        req.TaxAmount,
		TotalAmount:      totalAmount,
		AmountPaid:       decimal.Zero,
		AmountDue:        totalAmount,
		Status:           domain.PayablePending,
		Payments:         []domain.Payment{},
		AgingDays:        agingDays,
		AgingBracket:     agingBracket,
		RequiresApproval: totalAmount.GreaterThan(s.cfg.ApprovalThreshold),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.payableRepo.SavePayable(ctx, payable); err != nil {
		logger.Error("Failed to save payable", slog.String("ap_number", apNumber), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save payable: %w", err)
	}

	s.auditSvc.Record(ctx, payable.APID, domain.AuditAPCreated, actorID, map[string]any{
		"apNumber":      payable.APNumber,
		"invoiceNumber": payable.InvoiceNumber,
		"vendorID":      payable.VendorID,
		"totalAmount":   payable.TotalAmount.String(),
	})

	logger.Info("Payable created", slog.String("ap_id", payable.APID), slog.String("ap_number", apNumber))
	return &payable, nil
}

// GetPayableByID fetches a payable with line items and payments, retrying
// transient read failures a bounded number of times.
// Implements portssvc.PayableSvcFacade
func (s *payableService) GetPayableByID(ctx context.Context, apID string) (*domain.AccountsPayable, error) {
	return s.fetchPayable(ctx, apID)
}

// ListPayables fetches a page of payables, optionally filtered by status.
// Implements portssvc.PayableSvcFacade
func (s *payableService) ListPayables(ctx context.Context, filter portsrepo.ListPayablesFilter) ([]domain.AccountsPayable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	payables, err := s.payableRepo.ListPayables(ctx, filter)
	if err != nil {
		logger.Error("Failed to list payables", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list payables: %w", err)
	}
	return payables, nil
}

// ApprovePayable moves a pending payable to approved.
// Implements portssvc.PayableSvcFacade
func (s *payableService) ApprovePayable(ctx context.Context, apID string, req dto.ApprovePayableRequest, actorID string) (*domain.AccountsPayable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payable, err := s.fetchPayable(ctx, apID)
	if err != nil {
		return nil, err
	}

	if payable.Status != domain.PayablePending {
		return nil, fmt.Errorf("%w: cannot approve payable in status %q", apperrors.ErrInvalidOperation, payable.Status)
	}

	now := time.Now().UTC()
	// The repository applies the approval conditionally on the status still
	// being pending, so a racing approval or cancellation loses cleanly.
	if err := s.payableRepo.MarkApproved(ctx, apID, actorID, now, req.Notes); err != nil {
		logger.Error("Failed to approve payable", slog.String("ap_id", apID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to approve payable %s: %w", apID, err)
	}

	s.auditSvc.Record(ctx, apID, domain.AuditAPApproved, actorID, map[string]any{
		"apNumber": payable.APNumber,
		"notes":    req.Notes,
	})

	logger.Info("Payable approved", slog.String("ap_id", apID), slog.String("ap_number", payable.APNumber))
	return s.fetchPayable(ctx, apID)
}

// CancelPayable moves a pending or approved payable with no recorded
// payments to cancelled.
// Implements portssvc.PayableSvcFacade
func (s *payableService) CancelPayable(ctx context.Context, apID string, req dto.CancelPayableRequest, actorID string) (*domain.AccountsPayable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payable, err := s.fetchPayable(ctx, apID)
	if err != nil {
		return nil, err
	}

	if payable.Status != domain.PayablePending && payable.Status != domain.PayableApproved {
		return nil, fmt.Errorf("%w: cannot cancel payable in status %q", apperrors.ErrInvalidOperation, payable.Status)
	}
	if len(payable.Payments) > 0 {
		return nil, fmt.Errorf("%w: cannot cancel a payable with recorded payments", apperrors.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	if err := s.payableRepo.MarkCancelled(ctx, apID, actorID, now); err != nil {
		logger.Error("Failed to cancel payable", slog.String("ap_id", apID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to cancel payable %s: %w", apID, err)
	}

	s.auditSvc.Record(ctx, apID, domain.AuditAPCancelled, actorID, map[string]any{
		"apNumber": payable.APNumber,
		"reason":   req.Reason,
	})

	logger.Info("Payable cancelled", slog.String("ap_id", apID), slog.String("ap_number", payable.APNumber))
	return s.fetchPayable(ctx, apID)
}

// RecordPayment applies a full or partial payment. The financial mutation is
// linearized per record: the payable row is locked, re-validated and updated
// in a single database transaction. The journal post that follows is
// best-effort; its failure never rolls back the committed payment.
// Implements portssvc.PayableSvcFacade
func (s *payableService) RecordPayment(ctx context.Context, apID string, req dto.RecordPaymentRequest, actorID string) (*domain.AccountsPayable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPaymentNotPositive)
	}

	// Fast-fail pre-checks on a fresh read for friendly errors; the
	// authoritative checks repeat under the row lock below.
	payable, err := s.fetchPayable(ctx, apID)
	if err != nil {
		return nil, err
	}
	if !payable.Status.IsPayable() {
		return nil, fmt.Errorf("%w: cannot record payment on payable in status %q", apperrors.ErrInvalidOperation, payable.Status)
	}
	if req.Amount.GreaterThan(payable.AmountDue) {
		return nil, fmt.Errorf("%w: %s: payment amount %s exceeds amount due %s",
			apperrors.ErrValidation, ErrPaymentExceedsDue, req.Amount.String(), payable.AmountDue.String())
	}

	now := time.Now().UTC()
	currency := req.CurrencyCode
	if currency == "" {
		currency = payable.CurrencyCode
	}

	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		PaymentNumber:   fmt.Sprintf("PAY-%d", now.UnixNano()),
		Amount:          req.Amount,
		PaymentDate:     req.PaymentDate,
		PaymentMethod:   req.PaymentMethod,
		BankAccountID:   req.BankAccountID,
		BankAccountName: req.BankAccountName,
		Reference:       req.Reference,
		CurrencyCode:    currency,
		Status:          domain.PaymentCompleted,
		ReferenceType:   domain.ReferenceTypeAP,
		ReferenceID:     apID,
		CreatedAt:       now,
		CreatedBy:       actorID,
	}

	updated, err := s.applyPayment(ctx, apID, payment, actorID, now)
	if err != nil {
		return nil, err
	}

	// Best-effort hand-off to the double-entry engine. The payable is the
	// source of payment truth; a failed post is logged and left to
	// reconciliation, never surfaced to the caller.
	journalRef := s.postPaymentJournal(ctx, updated, payment, actorID)

	details := map[string]any{
		"paymentNumber": payment.PaymentNumber,
		"amount":        payment.Amount.String(),
		"paymentMethod": payment.PaymentMethod,
		"newStatus":     string(updated.Status),
	}
	if journalRef != nil {
		details["journalEntryNumber"] = journalRef.EntryNumber
	}
	s.auditSvc.Record(ctx, apID, domain.AuditPaymentRecorded, actorID, details)

	logger.Info("Payment recorded",
		slog.String("ap_id", apID),
		slog.String("payment_number", payment.PaymentNumber),
		slog.String("amount", payment.Amount.String()),
		slog.String("status", string(updated.Status)),
	)
	return s.fetchPayable(ctx, apID)
}

// applyPayment performs the locked read-modify-write that appends the
// payment and recomputes the payable's ledger state.
func (s *payableService) applyPayment(ctx context.Context, apID string, payment domain.Payment, actorID string, now time.Time) (*domain.AccountsPayable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.payableRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin payment transaction: %w", err)
	}
	defer s.payableRepo.Rollback(ctx, tx) // no-op once committed

	locked, err := s.payableRepo.FindPayableByIDForUpdate(ctx, tx, apID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock payable %s: %w", apID, err)
	}

	// Re-validate under the lock: a concurrent payment may have landed
	// between the pre-check and here.
	if !locked.Status.IsPayable() {
		return nil, fmt.Errorf("%w: payable %s moved to status %q", apperrors.ErrConflict, apID, locked.Status)
	}
	if payment.Amount.GreaterThan(locked.AmountDue) {
		return nil, fmt.Errorf("%w: %s: payment amount %s exceeds amount due %s",
			apperrors.ErrConflict, ErrPaymentExceedsDue, payment.Amount.String(), locked.AmountDue.String())
	}

	locked.AmountPaid = locked.AmountPaid.Add(payment.Amount)
	locked.AmountDue = locked.TotalAmount.Sub(locked.AmountPaid)
	if accounting.IsSettled(locked.AmountDue) {
		locked.Status = domain.PayablePaid
	} else {
		locked.Status = domain.PayablePartiallyPaid
	}
	paymentDate := payment.PaymentDate
	locked.LastPaymentDate = &paymentDate
	locked.LastUpdatedAt = now
	locked.LastUpdatedBy = actorID

	if err := s.payableRepo.AppendPaymentInTx(ctx, tx, payment, *locked); err != nil {
		logger.Error("Failed to append payment", slog.String("ap_id", apID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to append payment to payable %s: %w", apID, err)
	}

	if err := s.payableRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit payment for payable %s: %w", apID, err)
	}

	return locked, nil
}

// postPaymentJournal builds and posts the two-line entry for a payment:
// debit the AP control account, credit the paying bank/cash account.
// Returns nil when the post fails; the failure is logged, not propagated.
func (s *payableService) postPaymentJournal(ctx context.Context, payable *domain.AccountsPayable, payment domain.Payment, actorID string) *domain.PostedJournalRef {
	logger := middleware.GetLoggerFromCtx(ctx)

	creditAccount := config.AccountRef{
		ID:   payment.BankAccountID,
		Name: payment.BankAccountName,
	}
	if creditAccount.ID == "" {
		creditAccount = s.cfg.DefaultCashAccount
	}

	entry := domain.JournalEntry{
		EntryDate:    payment.PaymentDate,
		Description:  fmt.Sprintf("Payment %s for %s (%s)", payment.PaymentNumber, payable.APNumber, payable.VendorName),
		Reference:    payable.APNumber,
		CurrencyCode: payment.CurrencyCode,
		Lines: []domain.JournalLine{
			{
				AccountID:     s.cfg.APAccount.ID,
				AccountNumber: s.cfg.APAccount.Number,
				AccountName:   s.cfg.APAccount.Name,
				Debit:         payment.Amount,
				Credit:        decimal.Zero,
				CurrencyCode:  payment.CurrencyCode,
				Description:   fmt.Sprintf("Settle %s", payable.APNumber),
			},
			{
				AccountID:     creditAccount.ID,
				AccountNumber: creditAccount.Number,
				AccountName:   creditAccount.Name,
				Debit:         decimal.Zero,
				Credit:        payment.Amount,
				CurrencyCode:  payment.CurrencyCode,
				Description:   fmt.Sprintf("Payment %s", payment.PaymentNumber),
			},
		},
	}

	ref, err := s.journalSvc.PostJournalEntry(ctx, entry, actorID)
	if err != nil {
		logger.Warn("Journal post failed for payment; payable remains authoritative",
			slog.String("ap_id", payable.APID),
			slog.String("payment_number", payment.PaymentNumber),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return ref
}

// fetchPayable reads a payable, retrying transient failures a bounded number
// of times. Not-found is returned immediately; it is not transient.
func (s *payableService) fetchPayable(ctx context.Context, apID string) (*domain.AccountsPayable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var payable *domain.AccountsPayable
	var err error
	attempts := s.cfg.ReadRetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		payable, err = s.payableRepo.FindPayableByID(ctx, apID)
		if err == nil {
			return payable, nil
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("payable %s: %w", apID, err)
		}
		if attempt < attempts {
			logger.Warn("Transient read failure, retrying",
				slog.String("ap_id", apID),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
			}
		}
	}
	logger.Error("Failed to fetch payable after retries", slog.String("ap_id", apID), slog.String("error", err.Error()))
	return nil, fmt.Errorf("failed to fetch payable %s: %w", apID, err)
}
