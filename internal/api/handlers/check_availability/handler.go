package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FMP-BookingService/internal/api/handlers"
	"github.com/m04kA/FMP-BookingService/internal/api/middleware"
	"github.com/m04kA/FMP-BookingService/internal/service/bookings"
	"github.com/m04kA/FMP-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidActivityID = "некорректный ID активности"
	msgInvalidTickets    = "некорректное количество билетов"
	msgMissingPrincipal  = "отсутствует аутентификация"
	msgActivityNotFound  = "активность не найдена"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/availability/{activityId}?tickets_number=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activityID, err := strconv.ParseInt(mux.Vars(r)["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/availability/{id} - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/availability/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	// По умолчанию проверяем доступность одного билета
	ticketsNumber := 1
	if raw := r.URL.Query().Get("tickets_number"); raw != "" {
		ticketsNumber, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /bookings/availability/{id} - Invalid tickets_number=%q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidTickets)
			return
		}
	}

	result, err := h.service.CheckAvailability(r.Context(), &models.CheckAvailabilityRequest{
		Principal:     principal,
		ActivityID:    activityID,
		TicketsNumber: ticketsNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrActivityNotFound):
			h.logger.Warn("GET /bookings/availability/{id} - Activity not found: activity_id=%d", activityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/availability/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTickets)

		default:
			h.logger.Error("GET /bookings/availability/{id} - Failed to check availability: activity_id=%d, error=%v",
				activityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
