// Package report holds the read models of the storefront's admin reports.
// The numbers are computed by the storefront API; this package only shapes them.
package report

import (
	"context"
	"fmt"

	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/shoplite/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Report window limits, in days
const (
	MinDays             = 1
	MaxDays             = 365
	DefaultTopDays      = 30
	DefaultDailyDays    = 90
	MovingAverageWindow = 7
)

// ErrInvalidDays is returned for a report window outside MinDays..MaxDays
var ErrInvalidDays = shared.NewDomainError("INVALID_DAYS", fmt.Sprintf("days must be between %d and %d", MinDays, MaxDays))

// ProductRevenue is one row of the top products report
type ProductRevenue struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DailySales is the daily revenue series. The three slices are parallel.
type DailySales struct {
	Dates     []string          `json:"dates"`
	Revenues  []decimal.Decimal `json:"revenues"`
	MovingAvg []decimal.Decimal `json:"moving_avg"`
}

// Validate checks that the series are parallel
func (d DailySales) Validate() error {
	if len(d.Dates) != len(d.Revenues) {
		return fmt.Errorf("daily sales has %d dates but %d revenues", len(d.Dates), len(d.Revenues))
	}
	if d.MovingAvg != nil && len(d.MovingAvg) != len(d.Revenues) {
		return fmt.Errorf("daily sales has %d revenues but %d moving averages", len(d.Revenues), len(d.MovingAvg))
	}
	return nil
}

// MovingAverage returns the trailing mean of values over window points.
// The first window-1 entries average over the points available so far.
func MovingAverage(values []decimal.Decimal, window int) []decimal.Decimal {
	if window < 1 {
		window = 1
	}
	out := make([]decimal.Decimal, len(values))
	sum := decimal.Zero
	for i, v := range values {
		sum = sum.Add(v)
		if i >= window {
			sum = sum.Sub(values[i-window])
		}
		n := min(i+1, window)
		out[i] = sum.Div(decimal.NewFromInt(int64(n)))
	}
	return out
}

// ValidateDays checks a report window
func ValidateDays(days int) error {
	if days < MinDays || days > MaxDays {
		return fmt.Errorf("%w: got %d", ErrInvalidDays, days)
	}
	return nil
}

// ReportGateway fetches report data from the storefront API
type ReportGateway interface {
	TopProducts(ctx context.Context, days int) ([]ProductRevenue, error)
	DailySales(ctx context.Context, days int) (*DailySales, error)
	LowStock(ctx context.Context) ([]catalog.Product, error)
}

// DataToolsGateway triggers the API's data repair jobs. Each returns the
// API's status message.
type DataToolsGateway interface {
	RecomputeOrderTotals(ctx context.Context) (string, error)
	RefreshSalesSummary(ctx context.Context) (string, error)
}
