package handlers

import (
	"net/http"
	"time"

	response "poolops/internal/adapter/http/dto/response"
	"poolops/internal/domain/entities"
	"poolops/internal/usecase"
	"poolops/pkg"

	"github.com/gin-gonic/gin"
)

// HistoryHandler serves the audit trail: filtered listing, the dashboard
// metrics rollup, and CSV export.
type HistoryHandler struct {
	usecase usecase.IHistoryUseCase
}

func NewHistoryHandler(uc usecase.IHistoryUseCase) *HistoryHandler {
	return &HistoryHandler{usecase: uc}
}

func (h *HistoryHandler) ListHistory(c *gin.Context) {
	filter, ok := historyFilterFromQuery(c)
	if !ok {
		return
	}

	logs, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromHistoryLogs(logs))
}

func (h *HistoryHandler) HistoryMetrics(c *gin.Context) {
	filter, ok := historyFilterFromQuery(c)
	if !ok {
		return
	}

	metrics, err := h.usecase.Metrics(c.Request.Context(), filter)
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// ExportHistoryCSV streams the filtered history as a CSV attachment.
func (h *HistoryHandler) ExportHistoryCSV(c *gin.Context) {
	filter, ok := historyFilterFromQuery(c)
	if !ok {
		return
	}

	data, err := h.usecase.ExportCSV(c.Request.Context(), filter)
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	filename := "estimate-history-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// historyFilterFromQuery parses the shared filter query params. It writes
// the 400 response itself and returns ok=false on a bad date.
func historyFilterFromQuery(c *gin.Context) (entities.HistoryFilter, bool) {
	filter := entities.HistoryFilter{
		EstimateID:      c.Query("estimate_id"),
		ActionType:      entities.HistoryAction(c.Query("action")),
		PropertyID:      c.Query("property_id"),
		PerformedByName: c.Query("performed_by"),
		ApprovalMethod:  entities.ApprovalMethod(c.Query("approval_method")),
	}

	for _, q := range []struct {
		name string
		dst  **time.Time
	}{
		{"start_date", &filter.StartDate},
		{"end_date", &filter.EndDate},
	} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid "+q.name, http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return entities.HistoryFilter{}, false
		}
		*q.dst = &t
	}
	return filter, true
}
