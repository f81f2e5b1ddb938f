package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/buildledger/payables_backend/internal/apperrors"
	"github.com/buildledger/payables_backend/internal/core/domain"
	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
	portssvc "github.com/buildledger/payables_backend/internal/core/ports/services"
	"github.com/buildledger/payables_backend/internal/core/services"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type JournalBridgeServiceTestSuite struct {
	suite.Suite
	mockRepo *MockJournalRepository
	service  portssvc.JournalBridgeSvcFacade
}

func (suite *JournalBridgeServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockJournalRepository)
	suite.service = services.NewJournalBridgeService(suite.mockRepo)
}

func TestJournalBridgeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalBridgeServiceTestSuite))
}

func balancedEntry() domain.JournalEntry {
	return domain.JournalEntry{
		EntryDate:    time.Now().UTC(),
		Description:  "Payment PAY-1 for AP-2026-0001",
		CurrencyCode: "IDR",
		Lines: []domain.JournalLine{
			{AccountID: "acc-ap-control", Debit: decimal.NewFromInt(400), Credit: decimal.Zero, CurrencyCode: "IDR"},
			{AccountID: "acc-cash-main", Debit: decimal.Zero, Credit: decimal.NewFromInt(400), CurrencyCode: "IDR"},
		},
	}
}

func (suite *JournalBridgeServiceTestSuite) TestPostJournalEntry_Success() {
	ctx := context.Background()
	entry := balancedEntry()

	suite.mockRepo.On("SaveJournalEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Posted && e.JournalID != "" && e.EntryNumber != "" &&
			e.Lines[0].JournalID == e.JournalID && e.Lines[0].LineID != ""
	})).Return(nil).Once()

	ref, err := suite.service.PostJournalEntry(ctx, entry, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(ref)
	suite.NotEmpty(ref.JournalID)
	suite.NotEmpty(ref.EntryNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalBridgeServiceTestSuite) TestPostJournalEntry_ValidationFailures() {
	tests := []struct {
		name   string
		mutate func(*domain.JournalEntry)
	}{
		{
			name: "single line",
			mutate: func(e *domain.JournalEntry) {
				e.Lines = e.Lines[:1]
			},
		},
		{
			name: "unbalanced",
			mutate: func(e *domain.JournalEntry) {
				e.Lines[1].Credit = decimal.NewFromInt(399)
			},
		},
		{
			name: "both sides set on one line",
			mutate: func(e *domain.JournalEntry) {
				e.Lines[0].Credit = decimal.NewFromInt(400)
			},
		},
		{
			name: "neither side set on one line",
			mutate: func(e *domain.JournalEntry) {
				e.Lines[0].Debit = decimal.Zero
			},
		},
		{
			name: "negative amount",
			mutate: func(e *domain.JournalEntry) {
				e.Lines[0].Debit = decimal.NewFromInt(-400)
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			entry := balancedEntry()
			tt.mutate(&entry)

			_, err := suite.service.PostJournalEntry(context.Background(), entry, "user-1")

			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalBridgeServiceTestSuite) TestPostJournalEntry_RepoFailureIsDependencyError() {
	ctx := context.Background()
	entry := balancedEntry()

	suite.mockRepo.On("SaveJournalEntry", ctx, mock.Anything).Return(errors.New("connection refused")).Once()

	_, err := suite.service.PostJournalEntry(ctx, entry, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDependency)
}
