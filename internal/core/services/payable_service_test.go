package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/buildledger/payables_backend/internal/apperrors"
	"github.com/buildledger/payables_backend/internal/core/domain"
	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
	portssvc "github.com/buildledger/payables_backend/internal/core/ports/services"
	"github.com/buildledger/payables_backend/internal/core/services"
	"github.com/buildledger/payables_backend/internal/dto"
	"github.com/buildledger/payables_backend/internal/platform/config"
)

// --- Mock PayableRepository ---
type MockPayableRepository struct {
	mock.Mock
}

// Ensure MockPayableRepository implements portsrepo.PayableRepositoryWithTx
var _ portsrepo.PayableRepositoryWithTx = (*MockPayableRepository)(nil)

func (m *MockPayableRepository) FindPayableByID(ctx context.Context, apID string) (*domain.AccountsPayable, error) {
	args := m.Called(ctx, apID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountsPayable), args.Error(1)
}

func (m *MockPayableRepository) ListPayables(ctx context.Context, filter portsrepo.ListPayablesFilter) ([]domain.AccountsPayable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountsPayable), args.Error(1)
}

func (m *MockPayableRepository) FindOpenPayables(ctx context.Context) ([]domain.AccountsPayable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountsPayable), args.Error(1)
}

func (m *MockPayableRepository) SavePayable(ctx context.Context, payable domain.AccountsPayable) error {
	args := m.Called(ctx, payable)
	return args.Error(0)
}

func (m *MockPayableRepository) MarkApproved(ctx context.Context, apID string, approvedBy string, approvedAt time.Time, notes string) error {
	args := m.Called(ctx, apID, approvedBy, approvedAt, notes)
	return args.Error(0)
}

func (m *MockPayableRepository) MarkCancelled(ctx context.Context, apID string, actorID string, now time.Time) error {
	args := m.Called(ctx, apID, actorID, now)
	return args.Error(0)
}

func (m *MockPayableRepository) FindPayableByIDForUpdate(ctx context.Context, tx pgx.Tx, apID string) (*domain.AccountsPayable, error) {
	args := m.Called(ctx, tx, apID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountsPayable), args.Error(1)
}

func (m *MockPayableRepository) AppendPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment, updated domain.AccountsPayable) error {
	args := m.Called(ctx, tx, payment, updated)
	return args.Error(0)
}

func (m *MockPayableRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPayableRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPayableRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock SequenceAllocator ---
type MockSequenceAllocator struct {
	mock.Mock
}

var _ portsrepo.SequenceAllocator = (*MockSequenceAllocator)(nil)

func (m *MockSequenceAllocator) NextAPNumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

// --- Mock JournalBridge ---
type MockJournalBridge struct {
	mock.Mock
}

var _ portssvc.JournalBridgeSvcFacade = (*MockJournalBridge)(nil)

func (m *MockJournalBridge) PostJournalEntry(ctx context.Context, entry domain.JournalEntry, actorID string) (*domain.PostedJournalRef, error) {
	args := m.Called(ctx, entry, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostedJournalRef), args.Error(1)
}

// --- Mock AuditRecorder ---
type MockAuditRecorder struct {
	mock.Mock
}

var _ portssvc.AuditRecorderSvcFacade = (*MockAuditRecorder)(nil)

func (m *MockAuditRecorder) Record(ctx context.Context, apID string, action domain.AuditAction, actorID string, details map[string]any) {
	m.Called(ctx, apID, action, actorID, details)
}

// --- Test Suite ---
type PayableServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockPayableRepository
	mockSequence *MockSequenceAllocator
	mockJournal  *MockJournalBridge
	mockAudit    *MockAuditRecorder
	cfg          *config.Config
	service      portssvc.PayableSvcFacade

	actorID string
}

func (suite *PayableServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPayableRepository)
	suite.mockSequence = new(MockSequenceAllocator)
	suite.mockJournal = new(MockJournalBridge)
	suite.mockAudit = new(MockAuditRecorder)
	suite.cfg = &config.Config{
		ApprovalThreshold: decimal.NewFromInt(10_000),
		DefaultCurrency:   "IDR",
		DefaultExpenseAccount: config.AccountRef{
			ID: "acc-expense-default", Number: "6000", Name: "Project Expenses",
		},
		APAccount: config.AccountRef{
			ID: "acc-ap-control", Number: "2100", Name: "Accounts Payable",
		},
		DefaultCashAccount: config.AccountRef{
			ID: "acc-cash-main", Number: "1000", Name: "Cash",
		},
		ReadRetryAttempts: 2,
	}
	suite.service = services.NewPayableService(suite.mockRepo, suite.mockSequence, suite.mockJournal, suite.mockAudit, suite.cfg)
	suite.actorID = uuid.NewString()
}

func TestPayableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayableServiceTestSuite))
}

func (suite *PayableServiceTestSuite) validCreateRequest() dto.CreatePayableRequest {
	return dto.CreatePayableRequest{
		InvoiceNumber: "INV-1001",
		InvoiceDate:   time.Now().UTC().Add(-48 * time.Hour),
		DueDate:       time.Now().UTC().Add(28 * 24 * time.Hour),
		VendorID:      "vendor-1",
		VendorName:    "PT Sumber Makmur",
		LineItems: []dto.CreateLineItemRequest{
			{Description: "Cement", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(50)},
			{Description: "Rebar", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100), ExpenseAccountID: "acc-materials"},
		},
	}
}

func (suite *PayableServiceTestSuite) TestCreatePayable_Success() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockSequence.On("NextAPNumber", ctx, time.Now().UTC().Year()).Return("AP-2026-0001", nil).Once()
	suite.mockRepo.On("SavePayable", ctx, mock.AnythingOfType("domain.AccountsPayable")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("string"), domain.AuditAPCreated, suite.actorID, mock.Anything).Return().Once()

	created, err := suite.service.CreatePayable(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("AP-2026-0001", created.APNumber)
	suite.Equal(domain.PayablePending, created.Status)
	suite.True(created.TotalAmount.Equal(decimal.NewFromInt(1000)))
	suite.True(created.AmountDue.Equal(created.TotalAmount))
	suite.True(created.AmountPaid.IsZero())
	suite.False(created.RequiresApproval)
	suite.Equal("IDR", created.CurrencyCode)
	suite.Equal(suite.actorID, created.CreatedBy)

	// Line enrichment: sequential IDs, 1-based numbers, default account on the
	// first line, supplied account preserved on the second.
	suite.Require().Len(created.LineItems, 2)
	suite.Equal("line_1", created.LineItems[0].LineItemID)
	suite.Equal(1, created.LineItems[0].LineNumber)
	suite.Equal("acc-expense-default", created.LineItems[0].ExpenseAccountID)
	suite.Equal("line_2", created.LineItems[1].LineItemID)
	suite.Equal(2, created.LineItems[1].LineNumber)
	suite.Equal("acc-materials", created.LineItems[1].ExpenseAccountID)
	suite.True(created.LineItems[0].Amount.Equal(decimal.NewFromInt(500)))

	suite.mockSequence.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestCreatePayable_AboveThresholdRequiresApproval() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.LineItems = []dto.CreateLineItemRequest{
		{Description: "Excavator rental", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10_001)},
	}

	suite.mockSequence.On("NextAPNumber", ctx, mock.AnythingOfType("int")).Return("AP-2026-0002", nil).Once()
	suite.mockRepo.On("SavePayable", ctx, mock.AnythingOfType("domain.AccountsPayable")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, mock.Anything, domain.AuditAPCreated, suite.actorID, mock.Anything).Return().Once()

	created, err := suite.service.CreatePayable(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(created.RequiresApproval)
}

func (suite *PayableServiceTestSuite) TestCreatePayable_EqualToThresholdNoApproval() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.LineItems = []dto.CreateLineItemRequest{
		{Description: "Excavator rental", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10_000)},
	}

	suite.mockSequence.On("NextAPNumber", ctx, mock.AnythingOfType("int")).Return("AP-2026-0003", nil).Once()
	suite.mockRepo.On("SavePayable", ctx, mock.AnythingOfType("domain.AccountsPayable")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, mock.Anything, domain.AuditAPCreated, suite.actorID, mock.Anything).Return().Once()

	created, err := suite.service.CreatePayable(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.False(created.RequiresApproval)
}

func (suite *PayableServiceTestSuite) TestCreatePayable_EmptyLineItems() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.LineItems = nil

	_, err := suite.service.CreatePayable(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSequence.AssertNotCalled(suite.T(), "NextAPNumber", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayable", mock.Anything, mock.Anything)
}

func (suite *PayableServiceTestSuite) TestCreatePayable_InvoiceNumberTooLong() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'A'
	}
	req.InvoiceNumber = string(long)

	_, err := suite.service.CreatePayable(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayableServiceTestSuite) TestCreatePayable_SequenceFailure() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockSequence.On("NextAPNumber", ctx, mock.AnythingOfType("int")).Return("", errors.New("connection refused")).Once()

	_, err := suite.service.CreatePayable(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayable", mock.Anything, mock.Anything)
}

func (suite *PayableServiceTestSuite) pendingPayable() *domain.AccountsPayable {
	total := decimal.NewFromInt(1000)
	return &domain.AccountsPayable{
		APID:          uuid.NewString(),
		APNumber:      "AP-2026-0042",
		InvoiceNumber: "INV-42",
		InvoiceDate:   time.Now().UTC().Add(-10 * 24 * time.Hour),
		DueDate:       time.Now().UTC().Add(20 * 24 * time.Hour),
		VendorID:      "vendor-1",
		CurrencyCode:  "IDR",
		TotalAmount:   total,
		Subtotal:      total,
		AmountPaid:    decimal.Zero,
		AmountDue:     total,
		Status:        domain.PayablePending,
		Payments:      []domain.Payment{},
	}
}

func (suite *PayableServiceTestSuite) TestApprovePayable_Success() {
	ctx := context.Background()
	payable := suite.pendingPayable()

	approved := *payable
	approved.Status = domain.PayableApproved

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()
	suite.mockRepo.On("MarkApproved", ctx, payable.APID, suite.actorID, mock.AnythingOfType("time.Time"), "ok to pay").Return(nil).Once()
	suite.mockAudit.On("Record", ctx, payable.APID, domain.AuditAPApproved, suite.actorID, mock.Anything).Return().Once()
	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(&approved, nil).Once()

	result, err := suite.service.ApprovePayable(ctx, payable.APID, dto.ApprovePayableRequest{Notes: "ok to pay"}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PayableApproved, result.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestApprovePayable_NotPending() {
	ctx := context.Background()
	payable := suite.pendingPayable()
	payable.Status = domain.PayablePaid

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()

	_, err := suite.service.ApprovePayable(ctx, payable.APID, dto.ApprovePayableRequest{}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.Contains(err.Error(), "paid")
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayableServiceTestSuite) TestApprovePayable_NotFound() {
	ctx := context.Background()
	apID := uuid.NewString()

	suite.mockRepo.On("FindPayableByID", ctx, apID).Return(nil, apperrors.NewNotFoundError("payable "+apID+" not found")).Once()

	_, err := suite.service.ApprovePayable(ctx, apID, dto.ApprovePayableRequest{}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PayableServiceTestSuite) TestCancelPayable_Success() {
	ctx := context.Background()
	payable := suite.pendingPayable()

	cancelled := *payable
	cancelled.Status = domain.PayableCancelled

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()
	suite.mockRepo.On("MarkCancelled", ctx, payable.APID, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, payable.APID, domain.AuditAPCancelled, suite.actorID, mock.Anything).Return().Once()
	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(&cancelled, nil).Once()

	result, err := suite.service.CancelPayable(ctx, payable.APID, dto.CancelPayableRequest{Reason: "duplicate entry"}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PayableCancelled, result.Status)
}

func (suite *PayableServiceTestSuite) TestCancelPayable_WithPayments() {
	ctx := context.Background()
	payable := suite.pendingPayable()
	payable.Status = domain.PayableApproved
	payable.Payments = []domain.Payment{{PaymentID: uuid.NewString(), Amount: decimal.NewFromInt(100)}}

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()

	_, err := suite.service.CancelPayable(ctx, payable.APID, dto.CancelPayableRequest{}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkCancelled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayableServiceTestSuite) TestCancelPayable_TerminalStatus() {
	ctx := context.Background()
	payable := suite.pendingPayable()
	payable.Status = domain.PayableCancelled

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()

	_, err := suite.service.CancelPayable(ctx, payable.APID, dto.CancelPayableRequest{}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
}

func (suite *PayableServiceTestSuite) paymentRequest(amount int64) dto.RecordPaymentRequest {
	return dto.RecordPaymentRequest{
		Amount:        decimal.NewFromInt(amount),
		PaymentDate:   time.Now().UTC(),
		PaymentMethod: "bank_transfer",
	}
}

func (suite *PayableServiceTestSuite) TestRecordPayment_PartialPayment() {
	ctx := context.Background()
	payable := suite.pendingPayable()
	payable.Status = domain.PayableApproved

	locked := *payable
	final := *payable
	final.Status = domain.PayablePartiallyPaid
	final.AmountPaid = decimal.NewFromInt(400)
	final.AmountDue = decimal.NewFromInt(600)

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindPayableByIDForUpdate", ctx, mock.Anything, payable.APID).Return(&locked, nil).Once()
	suite.mockRepo.On("AppendPaymentInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("domain.AccountsPayable")).
		Run(func(args mock.Arguments) {
			updated := args.Get(3).(domain.AccountsPayable)
			suite.Equal(domain.PayablePartiallyPaid, updated.Status)
			suite.True(updated.AmountPaid.Equal(decimal.NewFromInt(400)))
			suite.True(updated.AmountDue.Equal(decimal.NewFromInt(600)))
			suite.NotNil(updated.LastPaymentDate)
		}).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournal.On("PostJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), suite.actorID).
		Return(&domain.PostedJournalRef{JournalID: uuid.NewString(), EntryNumber: "JE-1"}, nil).Once()
	suite.mockAudit.On("Record", ctx, payable.APID, domain.AuditPaymentRecorded, suite.actorID, mock.Anything).Return().Once()
	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(&final, nil).Once()

	result, err := suite.service.RecordPayment(ctx, payable.APID, suite.paymentRequest(400), suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PayablePartiallyPaid, result.Status)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestRecordPayment_FullPaymentSettles() {
	ctx := context.Background()
	payable := suite.pendingPayable()
	payable.Status = domain.PayableApproved

	locked := *payable
	final := *payable
	final.Status = domain.PayablePaid
	final.AmountPaid = payable.TotalAmount
	final.AmountDue = decimal.Zero

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindPayableByIDForUpdate", ctx, mock.Anything, payable.APID).Return(&locked, nil).Once()
	suite.mockRepo.On("AppendPaymentInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("domain.AccountsPayable")).
		Run(func(args mock.Arguments) {
			updated := args.Get(3).(domain.AccountsPayable)
			suite.Equal(domain.PayablePaid, updated.Status)
			suite.True(updated.AmountDue.IsZero())
		}).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournal.On("PostJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), suite.actorID).
		Return(&domain.PostedJournalRef{JournalID: uuid.NewString(), EntryNumber: "JE-2"}, nil).Once()
	suite.mockAudit.On("Record", ctx, payable.APID, domain.AuditPaymentRecorded, suite.actorID, mock.Anything).Return().Once()
	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(&final, nil).Once()

	result, err := suite.service.RecordPayment(ctx, payable.APID, suite.paymentRequest(1000), suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PayablePaid, result.Status)
}

func (suite *PayableServiceTestSuite) TestRecordPayment_WithinToleranceSettles() {
	ctx := context.Background()
	payable := suite.pendingPayable()
	payable.Status = domain.PayableApproved

	locked := *payable
	final := *payable
	final.Status = domain.PayablePaid

	// 999.995 leaves 0.005 due, inside the settlement tolerance.
	amount := decimal.NewFromFloat(999.995)

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindPayableByIDForUpdate", ctx, mock.Anything, payable.APID).Return(&locked, nil).Once()
	suite.mockRepo.On("AppendPaymentInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("domain.AccountsPayable")).
		Run(func(args mock.Arguments) {
			updated := args.Get(3).(domain.AccountsPayable)
			suite.Equal(domain.PayablePaid, updated.Status)
		}).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournal.On("PostJournalEntry", ctx, mock.Anything, suite.actorID).
		Return(&domain.PostedJournalRef{JournalID: uuid.NewString(), EntryNumber: "JE-3"}, nil).Once()
	suite.mockAudit.On("Record", ctx, payable.APID, domain.AuditPaymentRecorded, suite.actorID, mock.Anything).Return().Once()
	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(&final, nil).Once()

	req := dto.RecordPaymentRequest{Amount: amount, PaymentDate: time.Now().UTC(), PaymentMethod: "bank_transfer"}
	result, err := suite.service.RecordPayment(ctx, payable.APID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PayablePaid, result.Status)
}

func (suite *PayableServiceTestSuite) TestRecordPayment_Overpayment() {
	ctx := context.Background()
	payable := suite.pendingPayable()
	payable.Status = domain.PayableApproved

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()

	_, err := suite.service.RecordPayment(ctx, payable.APID, suite.paymentRequest(1001), suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// The rejection names both amounts.
	suite.Contains(err.Error(), "1001")
	suite.Contains(err.Error(), "1000")
	suite.mockRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PayableServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.RecordPayment(ctx, uuid.NewString(), suite.paymentRequest(0), suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindPayableByID", mock.Anything, mock.Anything)
}

func (suite *PayableServiceTestSuite) TestRecordPayment_TerminalStatus() {
	ctx := context.Background()
	payable := suite.pendingPayable()
	payable.Status = domain.PayableCancelled

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()

	_, err := suite.service.RecordPayment(ctx, payable.APID, suite.paymentRequest(100), suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
}

func (suite *PayableServiceTestSuite) TestRecordPayment_JournalFailureDoesNotFailPayment() {
	ctx := context.Background()
	payable := suite.pendingPayable()
	payable.Status = domain.PayableApproved

	locked := *payable
	final := *payable
	final.Status = domain.PayablePartiallyPaid

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindPayableByIDForUpdate", ctx, mock.Anything, payable.APID).Return(&locked, nil).Once()
	suite.mockRepo.On("AppendPaymentInTx", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournal.On("PostJournalEntry", ctx, mock.Anything, suite.actorID).
		Return(nil, errors.New("journal engine unavailable")).Once()
	suite.mockAudit.On("Record", ctx, payable.APID, domain.AuditPaymentRecorded, suite.actorID, mock.Anything).Return().Once()
	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(&final, nil).Once()

	result, err := suite.service.RecordPayment(ctx, payable.APID, suite.paymentRequest(400), suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PayablePartiallyPaid, result.Status)
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestRecordPayment_ConflictUnderLock() {
	ctx := context.Background()
	payable := suite.pendingPayable()
	payable.Status = domain.PayableApproved

	// Another payment landed between the pre-check and the lock: only 300 due.
	locked := *payable
	locked.Status = domain.PayablePartiallyPaid
	locked.AmountPaid = decimal.NewFromInt(700)
	locked.AmountDue = decimal.NewFromInt(300)

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindPayableByIDForUpdate", ctx, mock.Anything, payable.APID).Return(&locked, nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.RecordPayment(ctx, payable.APID, suite.paymentRequest(400), suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendPaymentInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PayableServiceTestSuite) TestGetPayableByID_RetriesTransientFailure() {
	ctx := context.Background()
	payable := suite.pendingPayable()

	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(nil, errors.New("connection reset")).Once()
	suite.mockRepo.On("FindPayableByID", ctx, payable.APID).Return(payable, nil).Once()

	result, err := suite.service.GetPayableByID(ctx, payable.APID)

	suite.Require().NoError(err)
	suite.Equal(payable.APID, result.APID)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "FindPayableByID", 2)
}

func (suite *PayableServiceTestSuite) TestGetPayableByID_NotFoundIsNotRetried() {
	ctx := context.Background()
	apID := uuid.NewString()

	suite.mockRepo.On("FindPayableByID", ctx, apID).Return(nil, apperrors.NewNotFoundError("payable "+apID+" not found")).Once()

	_, err := suite.service.GetPayableByID(ctx, apID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "FindPayableByID", 1)
}

func (suite *PayableServiceTestSuite) TestListPayables_DefaultsLimit() {
	ctx := context.Background()

	suite.mockRepo.On("ListPayables", ctx, mock.MatchedBy(func(f portsrepo.ListPayablesFilter) bool {
		return f.Limit == 20 && f.Status == nil
	})).Return([]domain.AccountsPayable{}, nil).Once()

	result, err := suite.service.ListPayables(ctx, portsrepo.ListPayablesFilter{})

	suite.Require().NoError(err)
	suite.Empty(result)
	suite.mockRepo.AssertExpectations(suite.T())
}
