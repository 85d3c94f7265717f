package report

import (
	"context"
	"errors"
	"testing"

	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/shoplite/storefront/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReportGateway is a mock implementation of report.ReportGateway
type MockReportGateway struct {
	mock.Mock
}

func (m *MockReportGateway) TopProducts(ctx context.Context, days int) ([]report.ProductRevenue, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.ProductRevenue), args.Error(1)
}

func (m *MockReportGateway) DailySales(ctx context.Context, days int) (*report.DailySales, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.DailySales), args.Error(1)
}

func (m *MockReportGateway) LowStock(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

// MockDataToolsGateway is a mock implementation of report.DataToolsGateway
type MockDataToolsGateway struct {
	mock.Mock
}

func (m *MockDataToolsGateway) RecomputeOrderTotals(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockDataToolsGateway) RefreshSalesSummary(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func decs(vals ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func TestReportService_TopProducts(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		wantDays int
		wantErr  error
	}{
		{"default window", 0, 30, nil},
		{"explicit window", 7, 7, nil},
		{"max window", 365, 365, nil},
		{"negative", -1, 0, report.ErrInvalidDays},
		{"too long", 366, 0, report.ErrInvalidDays},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(MockReportGateway)
			svc := NewReportService(gw, nil)
			rows := []report.ProductRevenue{{ProductID: 1, Name: "Widget", Revenue: decimal.NewFromInt(50)}}
			if tt.wantErr == nil {
				gw.On("TopProducts", mock.Anything, tt.wantDays).Return(rows, nil)
			}

			got, err := svc.TopProducts(context.Background(), tt.days)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				gw.AssertNotCalled(t, "TopProducts", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, rows, got)
			gw.AssertExpectations(t)
		})
	}
}

func TestReportService_DailySales(t *testing.T) {
	t.Run("keeps moving average from the API", func(t *testing.T) {
		gw := new(MockReportGateway)
		svc := NewReportService(gw, nil)
		sales := &report.DailySales{
			Dates:     []string{"2024-05-01", "2024-05-02"},
			Revenues:  decs("10", "20"),
			MovingAvg: decs("10", "15"),
		}
		gw.On("DailySales", mock.Anything, 90).Return(sales, nil)

		got, err := svc.DailySales(context.Background(), 0)
		require.NoError(t, err)
		assert.Equal(t, sales.MovingAvg, got.MovingAvg)
	})

	t.Run("computes missing moving average", func(t *testing.T) {
		gw := new(MockReportGateway)
		svc := NewReportService(gw, nil)
		gw.On("DailySales", mock.Anything, 14).Return(&report.DailySales{
			Dates:    []string{"2024-05-01", "2024-05-02", "2024-05-03"},
			Revenues: decs("10", "20", "60"),
		}, nil)

		got, err := svc.DailySales(context.Background(), 14)
		require.NoError(t, err)
		require.Len(t, got.MovingAvg, 3)
		assert.Equal(t, "15", got.MovingAvg[1].String())
		assert.Equal(t, "30", got.MovingAvg[2].String())
	})

	t.Run("rejects misaligned series", func(t *testing.T) {
		gw := new(MockReportGateway)
		svc := NewReportService(gw, nil)
		gw.On("DailySales", mock.Anything, 90).Return(&report.DailySales{
			Dates:    []string{"2024-05-01"},
			Revenues: decs("10", "20"),
		}, nil)

		_, err := svc.DailySales(context.Background(), 90)
		assert.Error(t, err)
	})
}

func TestReportService_LowStock(t *testing.T) {
	gw := new(MockReportGateway)
	svc := NewReportService(gw, nil)
	gw.On("LowStock", mock.Anything).Return(nil, errors.New("api down"))

	_, err := svc.LowStock(context.Background())
	assert.EqualError(t, err, "api down")
}

func TestDataToolsService(t *testing.T) {
	gw := new(MockDataToolsGateway)
	svc := NewDataToolsService(gw, nil)

	gw.On("RecomputeOrderTotals", mock.Anything).Return("Order totals recomputed.", nil)
	gw.On("RefreshSalesSummary", mock.Anything).Return("", nil)

	msg, err := svc.RecomputeOrderTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Order totals recomputed.", msg)

	msg, err = svc.RefreshSalesSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultRefreshMessage, msg)
}

func TestDataToolsService_Error(t *testing.T) {
	gw := new(MockDataToolsGateway)
	svc := NewDataToolsService(gw, nil)
	gw.On("RefreshSalesSummary", mock.Anything).Return("", errors.New("timeout"))

	_, err := svc.RefreshSalesSummary(context.Background())
	assert.EqualError(t, err, "timeout")
}
