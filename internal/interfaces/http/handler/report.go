package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	reportapp "github.com/shoplite/storefront/internal/application/report"
	"github.com/shoplite/storefront/internal/domain/report"
	"github.com/shoplite/storefront/internal/interfaces/http/dto"
)

// ReportHandler serves the admin reports and data tools
type ReportHandler struct {
	BaseHandler
	reports *reportapp.ReportService
	tools   *reportapp.DataToolsService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *reportapp.ReportService, tools *reportapp.DataToolsService) *ReportHandler {
	return &ReportHandler{reports: reports, tools: tools}
}

// TopProducts godoc
// @ID           getTopProducts
// @Summary      Top products by revenue
// @Tags         reports
// @Produce      json
// @Param        days  query  int  false  "Window in days (1-365, default 30)"
// @Router       /reports/top-products [get]
func (h *ReportHandler) TopProducts(c *gin.Context) {
	days, ok := h.days(c)
	if !ok {
		return
	}
	rows, err := h.reports.TopProducts(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// DailySales godoc
// @ID           getDailySales
// @Summary      Daily revenue with its 7-day moving average
// @Tags         reports
// @Produce      json
// @Param        days  query  int  false  "Window in days (1-365, default 90)"
// @Router       /reports/daily-sales [get]
func (h *ReportHandler) DailySales(c *gin.Context) {
	days, ok := h.days(c)
	if !ok {
		return
	}
	series, err := h.reports.DailySales(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// LowStock godoc
// @ID           getLowStock
// @Summary      Products at or below their reorder level
// @Tags         reports
// @Produce      json
// @Router       /reports/low-stock [get]
func (h *ReportHandler) LowStock(c *gin.Context) {
	products, err := h.reports.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// RecomputeOrderTotals godoc
// @ID           recomputeOrderTotals
// @Summary      Recompute order totals
// @Description  Runs the order totals repair tool and returns its message
// @Tags         tools
// @Produce      json
// @Router       /tools/recompute-order-totals [post]
func (h *ReportHandler) RecomputeOrderTotals(c *gin.Context) {
	h.runTool(c, h.tools.RecomputeOrderTotals)
}

// RefreshSalesSummary godoc
// @ID           refreshSalesSummary
// @Summary      Refresh the sales summary
// @Description  Rebuilds the 90-day sales summary and returns the tool's message
// @Tags         tools
// @Produce      json
// @Router       /tools/refresh-sales-summary [post]
func (h *ReportHandler) RefreshSalesSummary(c *gin.Context) {
	h.runTool(c, h.tools.RefreshSalesSummary)
}

func (h *ReportHandler) runTool(c *gin.Context, tool func(ctx context.Context) (string, error)) {
	msg, err := tool(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: msg})
}

// days reads the days query parameter. An absent parameter is 0, which the
// report service replaces with the report's default window.
func (h *ReportHandler) days(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return 0, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days == 0 {
		h.HandleError(c, report.ErrInvalidDays)
		return 0, false
	}
	return days, true
}
