package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"service-lastmile/internal/apperr"
	"service-lastmile/internal/domain"
	"service-lastmile/internal/logx"
)

const (
	headerAgentID   = "X-Agent-Id"
	headerAgentName = "X-Agent-Name"
)

// DeliveryHandler handles HTTP requests for final-mile deliveries.
type DeliveryHandler struct {
	usecase deliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase) *DeliveryHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// Create handles POST /v1/last-mile/internal/deliveries.
// @Summary Создать доставку
// @Description Регистрирует доставку в статусе PENDING для заказа
// @Tags internal-deliveries
// @Accept json
// @Produce json
// @Param request body createDeliveryRequest true "Delivery details; expectedTime may omit the zone, recipientSlackId is an alias of recipientContact"
// @Success 201 {object} createDeliveryResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 409 {object} ErrorResponse "delivery already exists"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /v1/last-mile/internal/deliveries [post]
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.usecase.CreateDelivery(r.Context(), req.toCreateInput())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, createResultToResponse(res))
}

// AssignDriver handles POST /v1/last-mile/internal/deliveries/{id}/assign-driver.
// @Summary Назначить водителя
// @Description Запрашивает водителя у сервиса водителей и отправляет доставку в путь (ON_THE_WAY)
// @Tags internal-deliveries
// @Produce json
// @Param id path string true "Delivery ID"
// @Success 200 {object} assignDriverResponse
// @Failure 400 {object} ErrorResponse "driver already assigned / invalid transition"
// @Failure 404 {object} ErrorResponse "delivery or driver not found"
// @Failure 503 {object} ErrorResponse "driver service unavailable"
// @Router /v1/last-mile/internal/deliveries/{id}/assign-driver [post]
func (h *DeliveryHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	res, err := h.usecase.AssignDriver(r.Context(), idFromURL(r, "id"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignResultToResponse(res))
}

// Cancel handles POST /v1/last-mile/internal/deliveries/{id}/cancel.
// @Summary Отменить доставку
// @Description Отменяет доставку и уведомляет водителя, если он назначен
// @Tags internal-deliveries
// @Param id path string true "Delivery ID"
// @Success 204 "canceled"
// @Failure 400 {object} ErrorResponse "already completed / already canceled"
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Router /v1/last-mile/internal/deliveries/{id}/cancel [post]
func (h *DeliveryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.usecase.CancelDelivery(r.Context(), idFromURL(r, "id")); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FindByOrderID handles GET /v1/last-mile/internal/deliveries?order_id=.
// @Summary Найти доставку по заказу
// @Tags internal-deliveries
// @Produce json
// @Param order_id query string true "Order ID"
// @Success 200 {object} deliveryResponse
// @Failure 400 {object} ErrorResponse "order_id is required"
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Router /v1/last-mile/internal/deliveries [get]
func (h *DeliveryHandler) FindByOrderID(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimSpace(r.URL.Query().Get("order_id"))
	if orderID == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, codeInvalidInput, "order_id is required")
		return
	}

	d, err := h.usecase.FindByOrderID(r.Context(), orderID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(d))
}

// Register handles POST /api/v1/last-mile.
// @Summary Зарегистрировать доставку водителем
// @Description Создает доставку сразу в статусе PICKED_UP за водителем из заголовков
// @Tags last-mile
// @Accept json
// @Produce json
// @Param X-Agent-Id header string true "Driver ID"
// @Param X-Agent-Name header string false "Driver name"
// @Param request body createDeliveryRequest true "Delivery details"
// @Success 201 {object} deliveryResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 409 {object} ErrorResponse "delivery already exists"
// @Router /api/v1/last-mile [post]
func (h *DeliveryHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req createDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.RegisterDelivery(
		r.Context(),
		r.Header.Get(headerAgentID),
		r.Header.Get(headerAgentName),
		req.toRegisterInput(),
	)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, deliveryToResponse(d))
}

// Get handles GET /api/v1/last-mile/{id}.
// @Summary Получить доставку
// @Tags last-mile
// @Produce json
// @Param id path string true "Delivery ID"
// @Success 200 {object} deliveryResponse
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Router /api/v1/last-mile/{id} [get]
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.usecase.GetDelivery(r.Context(), idFromURL(r, "id"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(d))
}

// UpdateStatus handles PATCH /api/v1/last-mile/{id}.
// @Summary Обновить статус доставки
// @Description Допустимые значения: PICKED_UP, ON_THE_WAY, DELIVERED, FAILED, CANCELED
// @Tags last-mile
// @Accept json
// @Param id path string true "Delivery ID"
// @Param request body updateStatusRequest true "New status"
// @Success 204 "updated"
// @Failure 400 {object} ErrorResponse "invalid input / invalid transition"
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Router /api/v1/last-mile/{id} [patch]
func (h *DeliveryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	status, ok := domain.ParseStatus(req.NewStatus)
	if !ok {
		writeServiceError(h.logger, w, r, fmt.Errorf("%w: unknown status %q", apperr.ErrInvalid, req.NewStatus))
		return
	}

	if err := h.usecase.UpdateStatus(r.Context(), idFromURL(r, "id"), status); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SoftDelete handles DELETE /api/v1/last-mile/{id}.
// @Summary Удалить доставку
// @Description Помечает доставку удаленной, запись сохраняется
// @Tags last-mile
// @Param id path string true "Delivery ID"
// @Param X-Agent-Id header string true "Actor ID"
// @Success 204 "deleted"
// @Failure 400 {object} ErrorResponse "invalid input / delivered"
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Router /api/v1/last-mile/{id} [delete]
func (h *DeliveryHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	err := h.usecase.SoftDeleteDelivery(r.Context(), idFromURL(r, "id"), r.Header.Get(headerAgentID))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
