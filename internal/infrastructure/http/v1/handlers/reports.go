package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/domain/orders"
	"retailhub/internal/domain/reports"
	"retailhub/internal/infrastructure/export"
)

// ReportsHandler serves profit summaries and stock usage reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// ProfitSummary handles GET /reports/profit-summary.
// The strategy query parameter is required: strict and heuristic
// classification put some legacy orders in different channels.
func (h *ReportsHandler) ProfitSummary(c *gin.Context) {
	filter, strategy, err := h.parseSummaryQuery(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	summary, err := h.service.ProfitSummary(c.Request.Context(), filter, strategy)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}

// ExportProfitSummary handles GET /reports/profit-summary/export?format=csv|xlsx.
func (h *ReportsHandler) ExportProfitSummary(c *gin.Context) {
	filter, strategy, err := h.parseSummaryQuery(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	summary, err := h.service.ProfitSummary(c.Request.Context(), filter, strategy)
	if err != nil {
		h.Error(c, err)
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		c.Header("Content-Disposition", `attachment; filename="profit-summary.csv"`)
		c.Header("Content-Type", "text/csv")
		if err := export.SummaryCSV(&summary, c.Writer); err != nil {
			h.Error(c, apperror.NewInternal(err))
		}
	case "xlsx":
		c.Header("Content-Disposition", `attachment; filename="profit-summary.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := export.SummaryXLSX(&summary, c.Writer); err != nil {
			h.Error(c, apperror.NewInternal(err))
		}
	default:
		h.Error(c, apperror.NewValidation("format must be csv or xlsx"))
	}
}

// Usage handles GET /reports/stock-usage.
func (h *ReportsHandler) Usage(c *gin.Context) {
	storeID, period, err := h.parseUsageQuery(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.Usage(c.Request.Context(), storeID, period)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// ExportUsage handles GET /reports/stock-usage/export?format=csv|xlsx.
func (h *ReportsHandler) ExportUsage(c *gin.Context) {
	storeID, period, err := h.parseUsageQuery(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.Usage(c.Request.Context(), storeID, period)
	if err != nil {
		h.Error(c, err)
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		c.Header("Content-Disposition", `attachment; filename="stock-usage.csv"`)
		c.Header("Content-Type", "text/csv")
		if err := export.UsageCSV(&result, c.Writer); err != nil {
			h.Error(c, apperror.NewInternal(err))
		}
	case "xlsx":
		c.Header("Content-Disposition", `attachment; filename="stock-usage.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := export.UsageXLSX(&result, c.Writer); err != nil {
			h.Error(c, apperror.NewInternal(err))
		}
	default:
		h.Error(c, apperror.NewValidation("format must be csv or xlsx"))
	}
}

func (h *ReportsHandler) parseSummaryQuery(c *gin.Context) (reports.Filter, orders.Strategy, error) {
	strategy := orders.Strategy(c.Query("strategy"))
	if strategy == "" {
		return reports.Filter{}, "", apperror.NewValidation("strategy is required (strict or heuristic)")
	}

	filter := reports.Filter{
		Range: reports.DateRange{
			From: c.Query("from"),
			To:   c.Query("to"),
		},
		TopN: h.ParseIntQuery(c, "topN", 0),
	}

	if storeStr := c.Query("storeId"); storeStr != "" {
		storeID, err := id.Parse(storeStr)
		if err != nil {
			return reports.Filter{}, "", apperror.NewValidation("invalid storeId format")
		}
		filter.StoreID = &storeID
	}
	if channelStr := c.Query("channel"); channelStr != "" {
		ch := orders.Channel(channelStr)
		if !ch.Valid() {
			return reports.Filter{}, "", apperror.NewValidation("unknown sales channel").
				WithDetail("channel", channelStr)
		}
		filter.Channel = &ch
	}

	return filter, strategy, nil
}

func (h *ReportsHandler) parseUsageQuery(c *gin.Context) (*id.ID, reports.Period, error) {
	var storeID *id.ID
	if storeStr := c.Query("storeId"); storeStr != "" {
		parsed, err := id.Parse(storeStr)
		if err != nil {
			return nil, reports.Period{}, apperror.NewValidation("invalid storeId format")
		}
		storeID = &parsed
	}

	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return nil, reports.Period{}, apperror.NewValidation("from must be RFC3339 or YYYY-MM-DD")
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return nil, reports.Period{}, apperror.NewValidation("to must be RFC3339 or YYYY-MM-DD")
	}

	// A date-only upper bound means "through the end of that day".
	if to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 && c.Query("to") != "" && len(c.Query("to")) == 10 {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	return storeID, reports.Period{From: from, To: to}, nil
}

func parseTimeQuery(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
