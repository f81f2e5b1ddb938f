package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/buildledger/payables_backend/internal/core/ports/services"
	"github.com/buildledger/payables_backend/internal/dto"
	"github.com/buildledger/payables_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for AP reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// registerReportingRoutes registers the reporting routes on the given group.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	rg := group.Group("/reports")
	rg.GET("/aging", h.getAgingReport)
}

// getAgingReport godoc
// @Summary Generate a payable aging report
// @Description Buckets every open payable by days since invoice date, as of the given date
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (RFC 3339 or YYYY-MM-DD); defaults to now"
// @Success 200 {object} dto.AgingReportResponse "The aging report"
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/aging [get]
func (h *reportingHandler) getAgingReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := parseReportDate(raw)
		if err != nil {
			logger.Warn("Invalid asOf date", slog.String("as_of", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date"})
			return
		}
		asOf = parsed
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reportingService.GenerateAgingReport(c.Request.Context(), asOf, actorID)
	if err != nil {
		logger.Error("Failed to generate aging report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAgingReportResponse(report))
}

// parseReportDate accepts RFC 3339 timestamps and bare dates.
func parseReportDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
