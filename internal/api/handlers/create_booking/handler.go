package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/FMP-BookingService/internal/api/handlers"
	"github.com/m04kA/FMP-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/FMP-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "отсутствует аутентификация"
	msgAdminCannotBook    = "администраторы не могут бронировать активности"
	msgActivityNotFound   = "активность не найдена"
	msgActivityInPast     = "нельзя бронировать прошедшие активности"
	msgInvalidTickets     = "некорректное количество билетов"
	msgAlreadyBooked      = "у вас уже есть бронирование этой активности"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(principal))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrAdminCannotBook):
			h.logger.Warn("POST /bookings - Admin cannot book: user_id=%d", principal.ID)
			handlers.RespondForbidden(w, msgAdminCannotBook)

		case errors.Is(err, createBooking.ErrActivityNotFound):
			h.logger.Warn("POST /bookings - Activity not found: activity_id=%d", req.ActivityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, createBooking.ErrActivityInPast):
			h.logger.Warn("POST /bookings - Activity in past: activity_id=%d", req.ActivityID)
			handlers.RespondBadRequest(w, msgActivityInPast)

		case errors.Is(err, createBooking.ErrInvalidTickets):
			h.logger.Warn("POST /bookings - Invalid tickets: user_id=%d, tickets=%d", principal.ID, req.TicketsNumber)
			handlers.RespondBadRequest(w, msgInvalidTickets)

		case errors.Is(err, createBooking.ErrNotEnoughSpots):
			// Сообщение несет количество оставшихся мест
			h.logger.Warn("POST /bookings - Not enough spots: activity_id=%d, tickets=%d", req.ActivityID, req.TicketsNumber)
			handlers.RespondBadRequest(w, spotsMessage(err))

		case errors.Is(err, createBooking.ErrAlreadyBooked):
			h.logger.Warn("POST /bookings - Already booked: user_id=%d, activity_id=%d", principal.ID, req.ActivityID)
			handlers.RespondBadRequest(w, msgAlreadyBooked)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, activity_id=%d, error=%v",
				principal.ID, req.ActivityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, activity_id=%d",
		result.ID, principal.ID, req.ActivityID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// spotsMessage различимое для клиента сообщение о нехватке мест
func spotsMessage(err error) string {
	var spotsErr *createBooking.NotEnoughSpotsError
	if errors.As(err, &spotsErr) {
		if spotsErr.SpotsLeft <= 0 {
			return "мест не осталось"
		}
		return fmt.Sprintf("недостаточно мест: доступно %d", spotsErr.SpotsLeft)
	}
	return "недостаточно мест"
}
