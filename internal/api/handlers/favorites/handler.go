package favorites

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FMP-BookingService/internal/api/handlers"
	"github.com/m04kA/FMP-BookingService/internal/api/middleware"
	"github.com/m04kA/FMP-BookingService/internal/service/favorites"
	"github.com/m04kA/FMP-BookingService/internal/service/favorites/models"
)

const (
	msgInvalidFavoriteID  = "некорректный ID записи избранного"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "отсутствует аутентификация"
	msgItemNotFound       = "элемент не найден"
	msgFavoriteNotFound   = "запись избранного не найдена"
	msgAlreadyFavorited   = "элемент уже в избранном"
	msgForbidden          = "доступ запрещен"
	msgRemoved            = "элемент удален из избранного"
)

type Handler struct {
	service FavoritesService
	logger  Logger
}

func NewHandler(service FavoritesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleAdd POST /api/v1/favorites
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /favorites - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req AddFavoriteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /favorites - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Add(r.Context(), req.ToServiceRequest(principal))
	if err != nil {
		switch {
		case errors.Is(err, favorites.ErrItemNotFound):
			h.logger.Warn("POST /favorites - Item not found: item_id=%d, item_type=%s", req.ItemID, req.ItemType)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, favorites.ErrAlreadyFavorited):
			h.logger.Warn("POST /favorites - Already favorited: user_id=%d, item_id=%d, item_type=%s",
				principal.ID, req.ItemID, req.ItemType)
			handlers.RespondConflict(w, msgAlreadyFavorited)

		case errors.Is(err, favorites.ErrInvalidInput):
			h.logger.Warn("POST /favorites - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /favorites - Failed to add favorite: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /favorites - Favorite added: favorite_id=%d, user_id=%d", result.ID, principal.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/favorites?item_type=product|activity
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /favorites - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	req := &models.ListFavoritesRequest{Principal: principal}
	if itemType := r.URL.Query().Get("item_type"); itemType != "" {
		req.ItemType = &itemType
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, favorites.ErrInvalidInput):
			h.logger.Warn("GET /favorites - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("GET /favorites - Failed to list favorites: user_id=%d, error=%v", principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleListIDs GET /api/v1/favorites/ids
// Облегченный ответ для клиентской подсветки избранного в каталоге
func (h *Handler) HandleListIDs(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /favorites/ids - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	result, err := h.service.ListIDs(r.Context(), principal)
	if err != nil {
		h.logger.Error("GET /favorites/ids - Failed to list favorite IDs: user_id=%d, error=%v", principal.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleRemove DELETE /api/v1/favorites/{favoriteId}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	favoriteID, err := strconv.ParseInt(mux.Vars(r)["favoriteId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /favorites/{id} - Invalid favorite ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFavoriteID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("DELETE /favorites/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	if err := h.service.Remove(r.Context(), principal, favoriteID); err != nil {
		switch {
		case errors.Is(err, favorites.ErrFavoriteNotFound):
			h.logger.Warn("DELETE /favorites/{id} - Favorite not found: favorite_id=%d", favoriteID)
			handlers.RespondNotFound(w, msgFavoriteNotFound)

		case errors.Is(err, favorites.ErrAccessDenied):
			h.logger.Warn("DELETE /favorites/{id} - Access denied: favorite_id=%d, user_id=%d", favoriteID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /favorites/{id} - Failed to remove favorite: favorite_id=%d, error=%v", favoriteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /favorites/{id} - Favorite removed: favorite_id=%d, user_id=%d", favoriteID, principal.ID)
	handlers.RespondMessage(w, msgRemoved)
}
