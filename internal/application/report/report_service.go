// Package report serves the admin report pages and data repair tools.
package report

import (
	"context"
	"fmt"

	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/shoplite/storefront/internal/domain/report"
	"github.com/shoplite/storefront/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReportService fetches admin reports from the storefront API
type ReportService struct {
	reports report.ReportGateway
	logger  *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reports report.ReportGateway, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{reports: reports, logger: logger}
}

// TopProducts returns products ranked by revenue over the last days days.
// days of 0 means report.DefaultTopDays.
func (s *ReportService) TopProducts(ctx context.Context, days int) ([]report.ProductRevenue, error) {
	if days == 0 {
		days = report.DefaultTopDays
	}
	if err := report.ValidateDays(days); err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "report", "top_products",
		telemetry.WithAttribute(telemetry.SpanAttrReportDays, days))
	defer span.End()

	rows, err := s.reports.TopProducts(ctx, days)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return rows, nil
}

// DailySales returns the daily revenue series over the last days days.
// days of 0 means report.DefaultDailyDays. A response without a moving
// average gets a 7-day trailing mean computed here.
func (s *ReportService) DailySales(ctx context.Context, days int) (*report.DailySales, error) {
	if days == 0 {
		days = report.DefaultDailyDays
	}
	if err := report.ValidateDays(days); err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "report", "daily_sales",
		telemetry.WithAttribute(telemetry.SpanAttrReportDays, days))
	defer span.End()

	sales, err := s.reports.DailySales(ctx, days)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := sales.Validate(); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("daily sales report: %w", err)
	}
	if len(sales.MovingAvg) == 0 && len(sales.Revenues) > 0 {
		s.logger.Debug("Daily sales response has no moving average, computing it",
			zap.Int("points", len(sales.Revenues)))
		sales.MovingAvg = report.MovingAverage(sales.Revenues, report.MovingAverageWindow)
	}
	return sales, nil
}

// LowStock returns products at or below their reorder level
func (s *ReportService) LowStock(ctx context.Context) ([]catalog.Product, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "low_stock")
	defer span.End()

	products, err := s.reports.LowStock(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return products, nil
}

// DataToolsService triggers the API's data repair jobs
type DataToolsService struct {
	tools  report.DataToolsGateway
	logger *zap.Logger
}

// NewDataToolsService creates a new DataToolsService
func NewDataToolsService(tools report.DataToolsGateway, logger *zap.Logger) *DataToolsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataToolsService{tools: tools, logger: logger}
}

// Default status messages, used when the API returns none
const (
	DefaultRecomputeMessage = "Recomputed order totals."
	DefaultRefreshMessage   = "Refreshed 90-day summary."
)

// RecomputeOrderTotals asks the API to recompute every order total from its lines
func (s *DataToolsService) RecomputeOrderTotals(ctx context.Context) (string, error) {
	return s.run(ctx, "recompute_order_totals", DefaultRecomputeMessage, s.tools.RecomputeOrderTotals)
}

// RefreshSalesSummary asks the API to rebuild the 90-day sales summary
func (s *DataToolsService) RefreshSalesSummary(ctx context.Context) (string, error) {
	return s.run(ctx, "refresh_sales_summary", DefaultRefreshMessage, s.tools.RefreshSalesSummary)
}

func (s *DataToolsService) run(ctx context.Context, name, fallback string, fn func(context.Context) (string, error)) (string, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "data_tools", name)
	defer span.End()

	msg, err := fn(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Data tool failed", zap.String("tool", name), zap.Error(err))
		return "", err
	}
	if msg == "" {
		msg = fallback
	}
	s.logger.Info("Data tool completed", zap.String("tool", name), zap.String("message", msg))
	return msg, nil
}
