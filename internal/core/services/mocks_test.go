package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateStore ---
type MockRateStore struct {
	mock.Mock
}

func (m *MockRateStore) FindApplicableRate(ctx context.Context, source, target string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, source, target, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Mock TransactionStore ---
type MockTransactionStore struct {
	mock.Mock
}

func (m *MockTransactionStore) RangeForClient(ctx context.Context, clientID int64, start, end time.Time) ([]domain.VolumeRow, error) {
	args := m.Called(ctx, clientID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VolumeRow), args.Error(1)
}

// --- Mock ClientReader ---
type MockClientReader struct {
	mock.Mock
}

func (m *MockClientReader) FindClientByExternalID(ctx context.Context, externalID string) (*domain.Client, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

// --- Mock RateResolverSvc ---
type MockRateResolver struct {
	mock.Mock
}

func (m *MockRateResolver) GetRate(ctx context.Context, source, target string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, source, target, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock MonthlyVolumeSvc ---
type MockMonthlyVolume struct {
	mock.Mock
}

func (m *MockMonthlyVolume) MonthlyVolumeEUR(ctx context.Context, client *domain.Client, day time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, client, day)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockMonthlyVolume) HasHistory(ctx context.Context, client *domain.Client, day time.Time) (bool, error) {
	args := m.Called(ctx, client, day)
	return args.Bool(0), args.Error(1)
}

// --- Mock TierResolverSvc ---
type MockTierResolver struct {
	mock.Mock
}

func (m *MockTierResolver) ResolveTier(ctx context.Context, client *domain.Client, date time.Time) (domain.Tier, error) {
	args := m.Called(ctx, client, date)
	return args.Get(0).(domain.Tier), args.Error(1)
}

func (m *MockTierResolver) Breakdown(ctx context.Context, clientExternalID string, date time.Time) (*domain.TierBreakdown, error) {
	args := m.Called(ctx, clientExternalID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TierBreakdown), args.Error(1)
}

// --- Helpers ---

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func boolPtr(b bool) *bool {
	return &b
}

func stringPtr(s string) *string {
	return &s
}

// --- Mock TransactionReader ---
type MockTransactionReader struct {
	mock.Mock
}

func (m *MockTransactionReader) FindTransactionByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) ListTransactionsWithOriginals(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock FeeCalculatorSvc ---
type MockFeeCalculator struct {
	mock.Mock
}

func (m *MockFeeCalculator) Calculate(ctx context.Context, tx domain.Transaction) (*domain.FeeCalculationResult, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeCalculationResult), args.Error(1)
}

func (m *MockFeeCalculator) CalculateByID(ctx context.Context, transactionExternalID string) (*domain.FeeCalculationResult, error) {
	args := m.Called(ctx, transactionExternalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeCalculationResult), args.Error(1)
}
