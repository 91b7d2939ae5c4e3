package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService  *service.DashboardService
	preferenceService *service.PreferenceService
	logger            *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, preferenceService *service.PreferenceService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:  dashboardService,
		preferenceService: preferenceService,
		logger:            logger,
	}
}

// Get godoc
// @Summary Get dashboard
// @Description Returns the filtered offers joined with client names, newest first, with totals and a per-status summary.
// @Description
// @Description **Filters:**
// @Description - `clientId`: only offers of this client (empty = all)
// @Description - `status`: repeatable or comma separated. Absent = every status, present but empty = no status (empty result)
// @Description - `createdFrom`/`createdTo`, `validFrom`/`validTo`: inclusive bounds, YYYY-MM-DD or RFC 3339. A date-only upper bound covers the whole day. Offers with an unparseable date are excluded once a bound is set.
// @Tags Dashboard
// @Produce json
// @Param clientId query string false "Client ID"
// @Param status query []string false "Statuses" collectionFormat(multi) Enums(draft, in_review, sent, won, lost)
// @Param createdFrom query string false "Created on or after"
// @Param createdTo query string false "Created on or before"
// @Param validFrom query string false "Valid until on or after"
// @Param validTo query string false "Valid until on or before"
// @Success 200 {object} domain.DashboardView
// @Failure 400 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Router /dashboard [get]
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := parseDashboardFilter(r.URL.Query())
	if len(fieldErrors) > 0 {
		respondJSON(w, http.StatusBadRequest, domain.APIError{
			Type:   domain.ErrorTypeValidation,
			Title:  "Validation Error",
			Status: http.StatusBadRequest,
			Detail: "One or more filters are invalid",
			Errors: fieldErrors,
		})
		return
	}

	view, err := h.dashboardService.View(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, h.logger, "build dashboard", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// GetColumns godoc
// @Summary Get visible dashboard columns
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.ColumnsResponse
// @Router /dashboard/columns [get]
func (h *DashboardHandler) GetColumns(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, domain.ColumnsResponse{
		Columns: h.preferenceService.Columns(r.Context()),
	})
}

// UpdateColumns godoc
// @Summary Set visible dashboard columns
// @Description Unknown and repeated column ids are dropped. An empty selection shows every column.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body domain.UpdateColumnsRequest true "Columns in display order"
// @Success 200 {object} domain.ColumnsResponse
// @Failure 400 {object} domain.APIError
// @Router /dashboard/columns [put]
func (h *DashboardHandler) UpdateColumns(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateColumnsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	columns, err := h.preferenceService.SetColumns(r.Context(), req.Columns)
	if err != nil {
		handleServiceError(w, r, h.logger, "save column preference", err)
		return
	}

	respondJSON(w, http.StatusOK, domain.ColumnsResponse{Columns: columns})
}

// parseDashboardFilter reads the filter from the query string
func parseDashboardFilter(query url.Values) (domain.DashboardFilter, map[string]string) {
	filter := domain.DefaultDashboardFilter()
	fieldErrors := make(map[string]string)

	filter.ClientID = strings.TrimSpace(query.Get("clientId"))

	if values, present := query["status"]; present {
		filter.Statuses = []domain.OfferStatus{}
		for _, value := range values {
			for _, part := range strings.Split(value, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				status := domain.OfferStatus(part)
				if !status.IsValid() {
					fieldErrors["status"] = "Unknown status: " + part
					continue
				}
				filter.Statuses = append(filter.Statuses, status)
			}
		}
	}

	bounds := []struct {
		param      string
		target     **time.Time
		upperBound bool
	}{
		{"createdFrom", &filter.CreatedFrom, false},
		{"createdTo", &filter.CreatedTo, true},
		{"validFrom", &filter.ValidFrom, false},
		{"validTo", &filter.ValidTo, true},
	}
	for _, b := range bounds {
		value := strings.TrimSpace(query.Get(b.param))
		if value == "" {
			continue
		}
		t, ok := parseBound(value, b.upperBound)
		if !ok {
			fieldErrors[b.param] = "Must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"
			continue
		}
		*b.target = &t
	}

	return filter, fieldErrors
}

// parseBound extends a date-only upper bound to the end of that day
func parseBound(value string, upperBound bool) (time.Time, bool) {
	if day, err := time.Parse(time.DateOnly, value); err == nil {
		if upperBound {
			return day.Add(24*time.Hour - time.Nanosecond), true
		}
		return day, true
	}
	return domain.ParseTimestamp(value)
}
