package report

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/spendwise/expense-tracker/internal"
	"github.com/spendwise/expense-tracker/internal/transport"
	"github.com/spendwise/expense-tracker/pkg/logger"
)

const dateLayout = "2006-01-02"

type ServiceAPI interface {
	QuickSummary(ctx context.Context, requestingUsername string, p QuickSummaryParams) (*QuickSummary, error)
	CategoryBreakdown(ctx context.Context, requestingUsername string, p RangeParams) ([]CategoryBreakdown, error)
	TimeBasedReport(ctx context.Context, requestingUsername string, p TimeBasedParams) ([]TimeBasedReport, error)
	TopExpenses(ctx context.Context, requestingUsername string, p TopExpensesParams) ([]TopExpense, error)
	DetailedReport(ctx context.Context, requestingUsername string, p DetailedParams) (*DetailedReport, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
	}
}

func (h *Handler) QuickSummary(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requestingUser(w, r)
	if !ok {
		return
	}

	p := QuickSummaryParams{TargetUsername: r.URL.Query().Get("username")}
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid days parameter")
			return
		}
		p.LastNDays = days
	}

	summary, err := h.Service.QuickSummary(r.Context(), username, p)
	if err != nil {
		h.Logger.Error("QuickSummary: service error", "error", err, "username", username)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requestingUser(w, r)
	if !ok {
		return
	}

	p, ok := h.rangeParams(w, r)
	if !ok {
		return
	}

	breakdown, err := h.Service.CategoryBreakdown(r.Context(), username, p)
	if err != nil {
		h.Logger.Error("CategoryBreakdown: service error", "error", err, "username", username)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": breakdown,
		"count":      len(breakdown),
	})
}

func (h *Handler) TimeBasedReport(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requestingUser(w, r)
	if !ok {
		return
	}

	rangeParams, ok := h.rangeParams(w, r)
	if !ok {
		return
	}

	p := TimeBasedParams{
		RangeParams: rangeParams,
		GroupBy:     Granularity(r.URL.Query().Get("group_by")),
	}

	timeline, err := h.Service.TimeBasedReport(r.Context(), username, p)
	if err != nil {
		h.Logger.Error("TimeBasedReport: service error", "error", err, "username", username)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"timeline": timeline,
		"count":    len(timeline),
	})
}

func (h *Handler) TopExpenses(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requestingUser(w, r)
	if !ok {
		return
	}

	rangeParams, ok := h.rangeParams(w, r)
	if !ok {
		return
	}

	p := TopExpensesParams{RangeParams: rangeParams}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		p.Limit = limit
	}

	top, err := h.Service.TopExpenses(r.Context(), username, p)
	if err != nil {
		h.Logger.Error("TopExpenses: service error", "error", err, "username", username)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": top,
		"count":    len(top),
	})
}

func (h *Handler) DetailedReport(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requestingUser(w, r)
	if !ok {
		return
	}

	rangeParams, ok := h.rangeParams(w, r)
	if !ok {
		return
	}

	p := DetailedParams{RangeParams: rangeParams}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		p.TopExpensesLimit = limit
	}

	detailed, err := h.Service.DetailedReport(r.Context(), username, p)
	if err != nil {
		h.Logger.Error("DetailedReport: service error", "error", err, "username", username)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detailed)
}

func (h *Handler) requestingUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	username := internal.UsernameFromContext(r.Context())
	if username == "" {
		h.Logger.Error("report request without authenticated user")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return username, true
}

func (h *Handler) rangeParams(w http.ResponseWriter, r *http.Request) (RangeParams, bool) {
	p := RangeParams{TargetUsername: r.URL.Query().Get("username")}

	if startStr := r.URL.Query().Get("start_date"); startStr != "" {
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
			return RangeParams{}, false
		}
		p.StartDate = start
	}

	if endStr := r.URL.Query().Get("end_date"); endStr != "" {
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
			return RangeParams{}, false
		}
		p.EndDate = end
	}

	return p, true
}
