package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/shoplite/storefront/internal/domain/report"
	"github.com/shoplite/storefront/internal/domain/trade"
	"github.com/shoplite/storefront/internal/infrastructure/logger"
	"github.com/shoplite/storefront/internal/interfaces/http/dto"
	"github.com/shoplite/storefront/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockProductGateway struct {
	mock.Mock
}

func (m *MockProductGateway) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductGateway) GetProduct(ctx context.Context, id cart.ProductID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

type MockOrderGateway struct {
	mock.Mock
}

func (m *MockOrderGateway) PlaceOrder(ctx context.Context, customer trade.Customer, items cart.Cart) (int64, error) {
	args := m.Called(ctx, customer, items)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderGateway) GetOrder(ctx context.Context, id int64) (*trade.OrderDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.OrderDetail), args.Error(1)
}

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

func (m *MockReportGateway) RecomputeOrderTotals(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockReportGateway) RefreshSalesSummary(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// newTestEngine builds an engine with the middleware a handler relies on
func newTestEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(zap.NewNop()))
	engine.Use(middleware.Profile(middleware.DefaultProfileConfig()))
	return engine
}

// do sends a request as the given profile and decodes the envelope
func do(t *testing.T, engine *gin.Engine, method, path, profile string, body any) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if profile != "" {
		req.Header.Set(middleware.DefaultProfileHeader, profile)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp dto.Response
	if w.Code != http.StatusNoContent && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

// decodeData re-decodes the envelope's data field into out
func decodeData(t *testing.T, resp dto.Response, out any) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}
