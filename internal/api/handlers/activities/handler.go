package activities

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FMP-BookingService/internal/api/handlers"
	"github.com/m04kA/FMP-BookingService/internal/api/middleware"
	"github.com/m04kA/FMP-BookingService/internal/service/activities"
	"github.com/m04kA/FMP-BookingService/internal/service/activities/models"
)

const (
	msgInvalidActivityID  = "некорректный ID активности"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "отсутствует аутентификация"
	msgNotFound           = "активность не найдена"
	msgForbidden          = "доступ запрещен"
	msgDeactivated        = "активность снята с публикации"
	msgDeleted            = "активность безвозвратно удалена"
)

type Handler struct {
	service ActivitiesService
	logger  Logger
}

func NewHandler(service ActivitiesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/activities
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /activities - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req CreateActivityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /activities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(principal))
	if err != nil {
		h.respondError(w, "POST /activities", err)
		return
	}

	h.logger.Info("POST /activities - Activity created: activity_id=%d, admin_id=%d", result.ID, principal.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleGet GET /api/v1/activities/{activityId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	activityID, err := strconv.ParseInt(mux.Vars(r)["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /activities/{id} - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	result, err := h.service.GetByID(r.Context(), activityID)
	if err != nil {
		h.respondError(w, "GET /activities/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/activities?upcoming_only=true&search=...
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	req := &models.ListActivitiesRequest{}

	query := r.URL.Query()
	if raw := query.Get("upcoming_only"); raw != "" {
		upcomingOnly, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /activities - Invalid upcoming_only=%q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		req.UpcomingOnly = upcomingOnly
	}
	if search := query.Get("search"); search != "" {
		req.Search = &search
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /activities", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/activities/{activityId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	activityID, err := strconv.ParseInt(mux.Vars(r)["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /activities/{id} - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PUT /activities/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req UpdateActivityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /activities/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(principal, activityID))
	if err != nil {
		h.respondError(w, "PUT /activities/{id}", err)
		return
	}

	h.logger.Info("PUT /activities/{id} - Activity updated: activity_id=%d, admin_id=%d", activityID, principal.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/activities/{activityId}?permanent=true
// По умолчанию мягкое удаление: активность скрывается из каталога,
// бронирования сохраняются. С permanent=true строка удаляется вместе
// с бронированиями (каскад на уровне схемы)
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	activityID, err := strconv.ParseInt(mux.Vars(r)["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /activities/{id} - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("DELETE /activities/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	if raw := r.URL.Query().Get("permanent"); raw != "" {
		permanent, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("DELETE /activities/{id} - Invalid permanent=%q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		if permanent {
			if err := h.service.Delete(r.Context(), principal, activityID); err != nil {
				h.respondError(w, "DELETE /activities/{id}", err)
				return
			}
			h.logger.Info("DELETE /activities/{id} - Activity deleted permanently: activity_id=%d, admin_id=%d",
				activityID, principal.ID)
			handlers.RespondMessage(w, msgDeleted)
			return
		}
	}

	if err := h.service.Deactivate(r.Context(), principal, activityID); err != nil {
		h.respondError(w, "DELETE /activities/{id}", err)
		return
	}

	h.logger.Info("DELETE /activities/{id} - Activity deactivated: activity_id=%d, admin_id=%d", activityID, principal.ID)
	handlers.RespondMessage(w, msgDeactivated)
}

// HandleToggle PATCH /api/v1/activities/{activityId}/toggle
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	activityID, err := strconv.ParseInt(mux.Vars(r)["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /activities/{id}/toggle - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PATCH /activities/{id}/toggle - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	result, err := h.service.ToggleActive(r.Context(), principal, activityID)
	if err != nil {
		h.respondError(w, "PATCH /activities/{id}/toggle", err)
		return
	}

	h.logger.Info("PATCH /activities/{id}/toggle - Activity toggled: activity_id=%d, is_active=%v, admin_id=%d",
		activityID, result.IsActive, principal.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// respondError единая трансляция ошибок сервиса в HTTP статусы
func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, activities.ErrActivityNotFound):
		h.logger.Warn("%s - Activity not found", op)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, activities.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", op)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, activities.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Internal error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
