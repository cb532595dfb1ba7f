package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type MonthlyVolumeServiceTestSuite struct {
	suite.Suite
	mockTxRepo *MockTransactionStore
	mockRates  *MockRateResolver
	service    portssvc.MonthlyVolumeSvc
	client     *domain.Client
	ctx        context.Context
	janStart   time.Time
	febStart   time.Time
}

func (suite *MonthlyVolumeServiceTestSuite) SetupTest() {
	suite.mockTxRepo = new(MockTransactionStore)
	suite.mockRates = new(MockRateResolver)
	suite.service = services.NewMonthlyVolumeService(suite.mockTxRepo, suite.mockRates)
	suite.client = &domain.Client{ID: 7, ExternalID: "C007", Name: "Initech"}
	suite.ctx = context.Background()
	suite.janStart = at(2024, time.January, 1, 0, 0)
	suite.febStart = at(2024, time.February, 1, 0, 0)
}

func (suite *MonthlyVolumeServiceTestSuite) expectJanuary(rows []domain.VolumeRow) {
	suite.mockTxRepo.On("RangeForClient", mock.Anything, int64(7), suite.janStart, suite.febStart).Return(rows, nil).Once()
}

func eurRow(amount string, createdAt time.Time) domain.VolumeRow {
	return domain.VolumeRow{Amount: dec(amount), SourceCurrency: "EUR", CreatedAt: createdAt}
}

// --- Test Cases ---

func (suite *MonthlyVolumeServiceTestSuite) TestEURRowsAreSummed() {
	suite.expectJanuary([]domain.VolumeRow{
		eurRow("10.00", at(2024, time.January, 3, 10, 0)),
		eurRow("2.50", at(2024, time.January, 28, 18, 0)),
	})

	volume, err := suite.service.MonthlyVolumeEUR(suite.ctx, suite.client, at(2024, time.January, 15, 0, 0))
	suite.Require().NoError(err)
	suite.Equal("12.50", volume.StringFixed(2))

	has, err := suite.service.HasHistory(suite.ctx, suite.client, at(2024, time.January, 31, 0, 0))
	suite.Require().NoError(err)
	suite.True(has)

	// Both answers come from one range scan.
	suite.mockTxRepo.AssertNumberOfCalls(suite.T(), "RangeForClient", 1)
	suite.mockRates.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MonthlyVolumeServiceTestSuite) TestForeignRowsAreConvertedAtTheirOwnDate() {
	created := at(2024, time.January, 9, 14, 30)
	suite.expectJanuary([]domain.VolumeRow{
		eurRow("1.00", at(2024, time.January, 2, 8, 0)),
		{Amount: dec("10.00"), SourceCurrency: "usd", CreatedAt: created},
	})
	suite.mockRates.On("GetRate", mock.Anything, "USD", "EUR", created).Return(dec("0.92165898"), nil).Once()

	volume, err := suite.service.MonthlyVolumeEUR(suite.ctx, suite.client, suite.janStart)
	suite.Require().NoError(err)
	suite.Equal("10.22", volume.StringFixed(2))
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *MonthlyVolumeServiceTestSuite) TestUnresolvableFXIsSkippedButCountsAsHistory() {
	created := at(2024, time.January, 5, 9, 0)
	suite.expectJanuary([]domain.VolumeRow{
		{Amount: dec("500.00"), SourceCurrency: "XAU", CreatedAt: created},
	})
	suite.mockRates.On("GetRate", mock.Anything, "XAU", "EUR", created).
		Return(decimal.Zero, apperrors.ErrRateNotFound).Once()

	volume, err := suite.service.MonthlyVolumeEUR(suite.ctx, suite.client, suite.janStart)
	suite.Require().NoError(err)
	suite.True(volume.IsZero())

	has, err := suite.service.HasHistory(suite.ctx, suite.client, suite.janStart)
	suite.Require().NoError(err)
	suite.True(has)
}

func (suite *MonthlyVolumeServiceTestSuite) TestUnreadableTimestampIsSkippedButCountsAsHistory() {
	suite.expectJanuary([]domain.VolumeRow{
		eurRow("10.00", at(2024, time.January, 3, 10, 0)),
		{Amount: dec("99.00"), SourceCurrency: "EUR"},
	})

	volume, err := suite.service.MonthlyVolumeEUR(suite.ctx, suite.client, suite.janStart)
	suite.Require().NoError(err)
	suite.Equal("10.00", volume.StringFixed(2))

	has, err := suite.service.HasHistory(suite.ctx, suite.client, suite.janStart)
	suite.Require().NoError(err)
	suite.True(has)
}

func (suite *MonthlyVolumeServiceTestSuite) TestRefundsWithinWindowDoNotQualify() {
	created := at(2024, time.January, 10, 12, 0)
	suite.expectJanuary([]domain.VolumeRow{
		{Amount: dec("100.00"), SourceCurrency: "EUR", CreatedAt: created, RefundedAt: timePtr(created.Add(71 * time.Hour))},
		{Amount: dec("200.00"), SourceCurrency: "EUR", CreatedAt: created, RefundedAt: timePtr(created.Add(72 * time.Hour))},
		{Amount: dec("300.00"), SourceCurrency: "EUR", CreatedAt: created, RefundedAt: timePtr(created.Add(73 * time.Hour))},
	})

	volume, err := suite.service.MonthlyVolumeEUR(suite.ctx, suite.client, suite.janStart)
	suite.Require().NoError(err)
	suite.Equal("300.00", volume.StringFixed(2))
}

func (suite *MonthlyVolumeServiceTestSuite) TestOnlyRefundedRowsMeanNoHistory() {
	created := at(2024, time.January, 10, 12, 0)
	suite.expectJanuary([]domain.VolumeRow{
		{Amount: dec("100.00"), SourceCurrency: "EUR", CreatedAt: created, RefundedAt: timePtr(created.Add(time.Hour))},
	})

	has, err := suite.service.HasHistory(suite.ctx, suite.client, suite.janStart)
	suite.Require().NoError(err)
	suite.False(has)

	// Cached: a second question does not scan again.
	has, err = suite.service.HasHistory(suite.ctx, suite.client, at(2024, time.January, 20, 0, 0))
	suite.Require().NoError(err)
	suite.False(has)
	suite.mockTxRepo.AssertNumberOfCalls(suite.T(), "RangeForClient", 1)
}

func (suite *MonthlyVolumeServiceTestSuite) TestVolumeIsCachedPerMonth() {
	suite.expectJanuary([]domain.VolumeRow{eurRow("42.00", at(2024, time.January, 3, 10, 0))})
	suite.mockTxRepo.On("RangeForClient", mock.Anything, int64(7), suite.febStart, at(2024, time.March, 1, 0, 0)).
		Return([]domain.VolumeRow{}, nil).Once()

	for i := 0; i < 3; i++ {
		volume, err := suite.service.MonthlyVolumeEUR(suite.ctx, suite.client, at(2024, time.January, 1+i, 0, 0))
		suite.Require().NoError(err)
		suite.Equal("42.00", volume.StringFixed(2))
	}

	volume, err := suite.service.MonthlyVolumeEUR(suite.ctx, suite.client, at(2024, time.February, 29, 0, 0))
	suite.Require().NoError(err)
	suite.True(volume.IsZero())

	suite.mockTxRepo.AssertExpectations(suite.T())
}

func (suite *MonthlyVolumeServiceTestSuite) TestStoreErrorPropagates() {
	dbErr := errors.New("connection refused")
	suite.mockTxRepo.On("RangeForClient", mock.Anything, int64(7), suite.janStart, suite.febStart).Return(nil, dbErr).Twice()

	_, err := suite.service.MonthlyVolumeEUR(suite.ctx, suite.client, suite.janStart)
	suite.ErrorIs(err, dbErr)

	_, err = suite.service.HasHistory(suite.ctx, suite.client, suite.janStart)
	suite.ErrorIs(err, dbErr)
}

func (suite *MonthlyVolumeServiceTestSuite) TestUnexpectedRateErrorPropagates() {
	created := at(2024, time.January, 5, 9, 0)
	rateErr := errors.New("rate store unavailable")
	suite.expectJanuary([]domain.VolumeRow{{Amount: dec("5.00"), SourceCurrency: "USD", CreatedAt: created}})
	suite.mockRates.On("GetRate", mock.Anything, "USD", "EUR", created).Return(decimal.Zero, rateErr).Once()

	_, err := suite.service.MonthlyVolumeEUR(suite.ctx, suite.client, suite.janStart)
	suite.ErrorIs(err, rateErr)
}

func (suite *MonthlyVolumeServiceTestSuite) TestNilClientIsRejected() {
	_, err := suite.service.MonthlyVolumeEUR(suite.ctx, nil, suite.janStart)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.HasHistory(suite.ctx, nil, suite.janStart)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---
func TestMonthlyVolumeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MonthlyVolumeServiceTestSuite))
}
