package get_all_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/FMP-BookingService/internal/api/handlers"
	"github.com/m04kA/FMP-BookingService/internal/api/middleware"
	"github.com/m04kA/FMP-BookingService/internal/service/bookings"
	"github.com/m04kA/FMP-BookingService/internal/service/bookings/models"
)

const (
	msgMissingPrincipal = "отсутствует аутентификация"
	msgForbidden        = "доступно только администраторам"
	msgInvalidFilter    = "некорректные параметры фильтрации"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/admin/all?user_id=&activity_id=&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/admin/all - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	req := &models.GetAllBookingsRequest{Principal: principal}

	query := r.URL.Query()
	if raw := query.Get("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.UserID = &userID
	}
	if raw := query.Get("activity_id"); raw != "" {
		activityID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.ActivityID = &activityID
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetAllBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/admin/all - Access denied: user_id=%d", principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/admin/all - Invalid filter: user_id=%d", principal.ID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings/admin/all - Failed to get bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/admin/all - Retrieved %d bookings: admin_id=%d", len(result.Bookings), principal.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
