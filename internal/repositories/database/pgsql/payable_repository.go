package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buildledger/payables_backend/internal/apperrors"
	"github.com/buildledger/payables_backend/internal/core/domain"
	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
	"github.com/buildledger/payables_backend/internal/models"
	"github.com/buildledger/payables_backend/internal/utils/mapping"
)

const uniqueViolationCode = "23505"

const payableColumns = `
	ap_id, ap_number, invoice_number, invoice_date, due_date,
	vendor_id, vendor_name, vendor_code, currency_code,
	subtotal, tax_amount, total_amount, amount_paid, amount_due,
	status, aging_days, aging_bracket,
	requires_approval, approved_by, approved_at, approval_notes,
	last_payment_date,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPayableRepository struct {
	BaseRepository
}

// newPgxPayableRepository creates a new repository for accounts-payable data.
func newPgxPayableRepository(pool *pgxpool.Pool) portsrepo.PayableRepositoryWithTx {
	return &PgxPayableRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPayableRepository implements portsrepo.PayableRepositoryWithTx
var _ portsrepo.PayableRepositoryWithTx = (*PgxPayableRepository)(nil)

// SavePayable persists the payable header and its line items in one DB transaction.
func (r *PgxPayableRepository) SavePayable(ctx context.Context, payable domain.AccountsPayable) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPayable(payable)
	headerQuery := `
		INSERT INTO ap_payables (` + payableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.APID, m.APNumber, m.InvoiceNumber, m.InvoiceDate, m.DueDate,
		m.VendorID, m.VendorName, m.VendorCode, m.CurrencyCode,
		m.Subtotal, m.TaxAmount, m.TotalAmount, m.AmountPaid, m.AmountDue,
		m.Status, m.AgingDays, m.AgingBracket,
		m.RequiresApproval, m.ApprovedBy, m.ApprovedAt, m.ApprovalNotes,
		m.LastPaymentDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: payable with AP number %s or invoice %s already exists",
				apperrors.ErrDuplicate, m.APNumber, m.InvoiceNumber)
		}
		return apperrors.NewAppError(500, "failed to insert payable "+m.APID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO ap_line_items (
			line_item_id, ap_id, line_number, description, quantity, unit_price, amount,
			expense_account_id, expense_account_number, expense_account_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range payable.LineItems {
		ml := mapping.ToModelLineItem(payable.APID, line)
		batch.Queue(lineQuery,
			ml.LineItemID, ml.APID, ml.LineNumber, ml.Description,
			ml.Quantity, ml.UnitPrice, ml.Amount,
			ml.ExpenseAccountID, ml.ExpenseAccountNumber, ml.ExpenseAccountName,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range payable.LineItems {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert line items for payable "+m.APID, err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close line item batch for payable "+m.APID, err)
	}

	return r.Commit(ctx, tx)
}

// FindPayableByID retrieves a payable with its line items and payments.
func (r *PgxPayableRepository) FindPayableByID(ctx context.Context, apID string) (*domain.AccountsPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM ap_payables WHERE ap_id = $1;`
	rows, err := r.Pool.Query(ctx, query, apID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payable "+apID, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[models.Payable])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payable " + apID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to scan payable "+apID, err)
	}

	payable := mapping.ToDomainPayable(m)
	if payable.LineItems, err = r.findLineItems(ctx, apID); err != nil {
		return nil, err
	}
	if payable.Payments, err = r.findPayments(ctx, apID); err != nil {
		return nil, err
	}
	return &payable, nil
}

// ListPayables retrieves a paginated list of payables with line items.
func (r *PgxPayableRepository) ListPayables(ctx context.Context, filter portsrepo.ListPayablesFilter) ([]domain.AccountsPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM ap_payables`
	args := []any{}
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*filter.Status))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, ap_number DESC LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payables", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Payable])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan payables", err)
	}

	return r.attachLineItems(ctx, ms)
}

// FindOpenPayables retrieves every payable that is not in a terminal state,
// with line items, for aging aggregation.
func (r *PgxPayableRepository) FindOpenPayables(ctx context.Context) ([]domain.AccountsPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM ap_payables
		WHERE status NOT IN ($1, $2, $3)
		ORDER BY invoice_date ASC, ap_number ASC;`
	rows, err := r.Pool.Query(ctx, query,
		string(domain.PayablePaid), string(domain.PayableCancelled), string(domain.PayableVoid))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open payables", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Payable])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan open payables", err)
	}

	return r.attachLineItems(ctx, ms)
}

// MarkApproved sets approval fields conditionally on the payable still being
// pending. A zero row count distinguishes missing from raced.
func (r *PgxPayableRepository) MarkApproved(ctx context.Context, apID string, approvedBy string, approvedAt time.Time, notes string) error {
	query := `
		UPDATE ap_payables
		SET status = $1, approved_by = $2, approved_at = $3, approval_notes = $4,
		    last_updated_at = $3, last_updated_by = $2
		WHERE ap_id = $5 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(domain.PayableApproved), approvedBy, approvedAt, notes,
		apID, string(domain.PayablePending),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to approve payable "+apID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyZeroUpdate(ctx, apID, "approve")
	}
	return nil
}

// MarkCancelled sets status cancelled conditionally on the payable still
// being pending or approved with no recorded payments.
func (r *PgxPayableRepository) MarkCancelled(ctx context.Context, apID string, actorID string, now time.Time) error {
	query := `
		UPDATE ap_payables
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE ap_id = $4 AND status IN ($5, $6)
		  AND NOT EXISTS (SELECT 1 FROM ap_payments WHERE ap_id = $4);
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(domain.PayableCancelled), now, actorID,
		apID, string(domain.PayablePending), string(domain.PayableApproved),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel payable "+apID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyZeroUpdate(ctx, apID, "cancel")
	}
	return nil
}

// FindPayableByIDForUpdate selects the payable header and locks its row
// within the given transaction. Line items and payments are not loaded;
// payment application only needs the header totals.
func (r *PgxPayableRepository) FindPayableByIDForUpdate(ctx context.Context, tx pgx.Tx, apID string) (*domain.AccountsPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM ap_payables WHERE ap_id = $1 FOR UPDATE;`
	rows, err := tx.Query(ctx, query, apID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock payable "+apID, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[models.Payable])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payable " + apID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to scan locked payable "+apID, err)
	}
	payable := mapping.ToDomainPayable(m)
	return &payable, nil
}

// AppendPaymentInTx inserts the payment row and writes the recomputed totals
// onto the locked payable header within the transaction.
func (r *PgxPayableRepository) AppendPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment, updated domain.AccountsPayable) error {
	mp := mapping.ToModelPayment(payment)
	paymentQuery := `
		INSERT INTO ap_payments (
			payment_id, payment_number, ap_id, amount, payment_date, payment_method,
			bank_account_id, bank_account_name, reference, currency_code, status,
			reference_type, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, paymentQuery,
		mp.PaymentID, mp.PaymentNumber, mp.APID, mp.Amount, mp.PaymentDate, mp.PaymentMethod,
		mp.BankAccountID, mp.BankAccountName, mp.Reference, mp.CurrencyCode, mp.Status,
		mp.ReferenceType, mp.CreatedAt, mp.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: payment number %s already exists", apperrors.ErrDuplicate, mp.PaymentNumber)
		}
		return apperrors.NewAppError(500, "failed to insert payment "+mp.PaymentID, err)
	}

	mu := mapping.ToModelPayable(updated)
	updateQuery := `
		UPDATE ap_payables
		SET amount_paid = $1, amount_due = $2, status = $3, last_payment_date = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE ap_id = $7;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		mu.AmountPaid, mu.AmountDue, mu.Status, mu.LastPaymentDate,
		mu.LastUpdatedAt, mu.LastUpdatedBy, mu.APID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payable totals for "+mu.APID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payable " + mu.APID + " not found")
	}
	return nil
}

// classifyZeroUpdate decides whether a conditional update matched no row
// because the payable is missing or because its state no longer allows the
// transition.
func (r *PgxPayableRepository) classifyZeroUpdate(ctx context.Context, apID string, action string) error {
	var status string
	err := r.Pool.QueryRow(ctx, `SELECT status FROM ap_payables WHERE ap_id = $1;`, apID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("payable " + apID + " not found")
		}
		return apperrors.NewAppError(500, "failed to re-check payable "+apID, err)
	}
	return fmt.Errorf("%w: cannot %s payable %s in status %q", apperrors.ErrConflict, action, apID, status)
}

func (r *PgxPayableRepository) findLineItems(ctx context.Context, apID string) ([]domain.PayableLineItem, error) {
	query := `
		SELECT line_item_id, ap_id, line_number, description, quantity, unit_price, amount,
		       expense_account_id, expense_account_number, expense_account_name
		FROM ap_line_items WHERE ap_id = $1 ORDER BY line_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, apID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for payable "+apID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.PayableLineItem])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan line items for payable "+apID, err)
	}
	return mapping.ToDomainLineItemSlice(ms), nil
}

func (r *PgxPayableRepository) findPayments(ctx context.Context, apID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, payment_number, ap_id, amount, payment_date, payment_method,
		       bank_account_id, bank_account_name, reference, currency_code, status,
		       reference_type, created_at, created_by
		FROM ap_payments WHERE ap_id = $1 ORDER BY created_at ASC, payment_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, apID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for payable "+apID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Payment])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan payments for payable "+apID, err)
	}
	return mapping.ToDomainPaymentSlice(ms), nil
}

// attachLineItems loads line items for a page of payable headers in one
// round trip and distributes them by ap_id.
func (r *PgxPayableRepository) attachLineItems(ctx context.Context, ms []models.Payable) ([]domain.AccountsPayable, error) {
	payables := make([]domain.AccountsPayable, len(ms))
	if len(ms) == 0 {
		return payables, nil
	}

	apIDs := make([]string, len(ms))
	for i, m := range ms {
		payables[i] = mapping.ToDomainPayable(m)
		payables[i].LineItems = []domain.PayableLineItem{}
		payables[i].Payments = []domain.Payment{}
		apIDs[i] = m.APID
	}

	query := `
		SELECT line_item_id, ap_id, line_number, description, quantity, unit_price, amount,
		       expense_account_id, expense_account_number, expense_account_name
		FROM ap_line_items WHERE ap_id = ANY($1) ORDER BY ap_id, line_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, apIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for payable listing", err)
	}
	lineModels, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.PayableLineItem])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan line items for payable listing", err)
	}

	byAP := make(map[string][]domain.PayableLineItem, len(ms))
	for _, lm := range lineModels {
		byAP[lm.APID] = append(byAP[lm.APID], mapping.ToDomainLineItem(lm))
	}
	for i := range payables {
		if lines, ok := byAP[payables[i].APID]; ok {
			payables[i].LineItems = lines
		}
	}
	return payables, nil
}
