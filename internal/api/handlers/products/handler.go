package products

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FMP-BookingService/internal/api/handlers"
	"github.com/m04kA/FMP-BookingService/internal/api/middleware"
	"github.com/m04kA/FMP-BookingService/internal/service/products"
	"github.com/m04kA/FMP-BookingService/internal/service/products/models"
)

const (
	msgInvalidProductID   = "некорректный ID товара"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidQueryParams = "некорректные параметры запроса"
	msgMissingPrincipal   = "отсутствует аутентификация"
	msgNotFound           = "товар не найден"
	msgForbidden          = "доступ запрещен"
	msgDeleted            = "товар успешно удален"
)

type Handler struct {
	service ProductsService
	logger  Logger
}

func NewHandler(service ProductsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/products
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /products - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req CreateProductRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /products - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(principal))
	if err != nil {
		h.respondError(w, "POST /products", err)
		return
	}

	h.logger.Info("POST /products - Product created: product_id=%d, admin_id=%d", result.ID, principal.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleGet GET /api/v1/products/{productId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /products/{id} - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	result, err := h.service.GetByID(r.Context(), productID)
	if err != nil {
		h.respondError(w, "GET /products/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/products?category=&min_price=&max_price=&search=&limit=&offset=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	req, err := parseListRequest(r)
	if err != nil {
		h.logger.Warn("GET /products - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /products", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/products/{productId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /products/{id} - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PUT /products/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req UpdateProductRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /products/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(principal, productID))
	if err != nil {
		h.respondError(w, "PUT /products/{id}", err)
		return
	}

	h.logger.Info("PUT /products/{id} - Product updated: product_id=%d, admin_id=%d", productID, principal.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/products/{productId}
// Мягкое удаление: товар скрывается из каталога и может быть восстановлен
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /products/{id} - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("DELETE /products/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	if err := h.service.Delete(r.Context(), principal, productID); err != nil {
		h.respondError(w, "DELETE /products/{id}", err)
		return
	}

	h.logger.Info("DELETE /products/{id} - Product deleted: product_id=%d, admin_id=%d", productID, principal.ID)
	handlers.RespondMessage(w, msgDeleted)
}

// HandleRestore PUT /api/v1/products/{productId}/restore
func (h *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /products/{id}/restore - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PUT /products/{id}/restore - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	result, err := h.service.Restore(r.Context(), principal, productID)
	if err != nil {
		h.respondError(w, "PUT /products/{id}/restore", err)
		return
	}

	h.logger.Info("PUT /products/{id}/restore - Product restored: product_id=%d, admin_id=%d", productID, principal.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseListRequest разбирает query параметры публичного списка товаров
func parseListRequest(r *http.Request) (*models.ListProductsRequest, error) {
	req := &models.ListProductsRequest{}
	query := r.URL.Query()

	if category := query.Get("category"); category != "" {
		req.Category = &category
	}
	if search := query.Get("search"); search != "" {
		req.Search = &search
	}
	if raw := query.Get("min_price"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		req.MinPrice = &minPrice
	}
	if raw := query.Get("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		req.MaxPrice = &maxPrice
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Offset = offset
	}

	return req, nil
}

// respondError единая трансляция ошибок сервиса в HTTP статусы
func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, products.ErrProductNotFound):
		h.logger.Warn("%s - Product not found", op)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, products.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", op)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, products.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Internal error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
