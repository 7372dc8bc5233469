package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/drive_thru_order_app/internal/apperrors"
	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	portssvc "github.com/SscSPs/drive_thru_order_app/internal/core/ports/services"
	"github.com/SscSPs/drive_thru_order_app/internal/dto"
	"github.com/SscSPs/drive_thru_order_app/internal/middleware"
	"github.com/SscSPs/drive_thru_order_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

const actionLabelUtterance = "utterance"

// orderHandler handles HTTP requests for the ordering session.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
	metrics      *metrics.ServerMetrics
}

// newOrderHandler creates a new orderHandler. m may be nil.
func newOrderHandler(orderService portssvc.OrderSvcFacade, m *metrics.ServerMetrics) *orderHandler {
	return &orderHandler{
		orderService: orderService,
		metrics:      m,
	}
}

// registerOrderRoutes registers the ordering routes. A nil rateLimiter
// leaves /process-order unthrottled.
func registerOrderRoutes(r gin.IRouter, orderService portssvc.OrderSvcFacade, m *metrics.ServerMetrics, rateLimiter *limiter.Limiter) {
	h := newOrderHandler(orderService, m)

	processOrder := []gin.HandlerFunc{h.processOrder}
	if rateLimiter != nil {
		processOrder = append([]gin.HandlerFunc{middleware.RateLimit(rateLimiter)}, processOrder...)
	}

	r.POST("/process-order", processOrder...)
	r.POST("/actions", h.processAction)
	r.GET("/orders", h.getOrders)
	r.GET("/totals", h.getTotals)
}

// processOrder godoc
// @Summary Process a customer utterance
// @Description Translates free-form text into a place or cancel action and applies it to the session
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   request body dto.ProcessOrderRequest true "Customer utterance"
// @Success 200 {object} dto.ResultEnvelope
// @Failure 400 {object} dto.ErrorResponse "Invalid input or unintelligible request"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 502 {object} dto.ErrorResponse "Language service failure"
// @Failure 503 {object} dto.ErrorResponse "Language service not configured"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /process-order [post]
func (h *orderHandler) processOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ProcessOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received utterance", slog.Int("length", len(req.Message)))

	result, err := h.orderService.ProcessUtterance(c.Request.Context(), req.Message)
	if err != nil {
		h.writeError(c, logger, err)
		return
	}

	h.respond(c, logger, actionLabelUtterance, result)
}

// processAction godoc
// @Summary Apply a structured action
// @Description Places an order or cancels items, a whole order, or all orders without the language service
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   action body dto.ActionRequest true "Structured action"
// @Success 200 {object} dto.ResultEnvelope
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /actions [post]
func (h *orderHandler) processAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessAction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("action", req.Type))
	result, err := h.orderService.ProcessAction(c.Request.Context(), req.ToDomainAction())
	if err != nil {
		h.writeError(c, logger, err)
		return
	}

	h.respond(c, logger, req.Type, result)
}

// getOrders godoc
// @Summary List the action history
// @Description Returns every committed order and cancellation in the session, oldest first
// @Tags orders
// @Produce  json
// @Success 200 {array} domain.HistoryEntry
// @Router /orders [get]
func (h *orderHandler) getOrders(c *gin.Context) {
	history := h.orderService.GetHistory(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToHistoryResponse(history))
}

// getTotals godoc
// @Summary Get item totals
// @Description Returns the net quantity of every item kind in the session
// @Tags orders
// @Produce  json
// @Success 200 {object} map[string]int
// @Router /totals [get]
func (h *orderHandler) getTotals(c *gin.Context) {
	c.JSON(http.StatusOK, h.orderService.GetTotals(c.Request.Context()))
}

func (h *orderHandler) respond(c *gin.Context, logger *slog.Logger, action string, result *domain.ActionResult) {
	if h.metrics != nil {
		h.metrics.RecordAction(action, result)
	}
	if result.Status == domain.StatusError {
		logger.Info("Action rejected", slog.String("message", result.Message))
	} else {
		logger.Info("Action applied", slog.String("message", result.Message), slog.Int("history_len", len(result.History)))
	}
	c.JSON(http.StatusOK, dto.ToResultEnvelope(result))
}

func (h *orderHandler) writeError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnintelligible):
		logger.Warn("Rejected request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotConfigured):
		logger.Warn("Language service not configured")
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Language service is not configured"})
	case errors.Is(err, apperrors.ErrUpstream):
		logger.Error("Language service failure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "Error processing order with language service"})
	default:
		logger.Error("Failed to process order", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to process order"})
	}
}
