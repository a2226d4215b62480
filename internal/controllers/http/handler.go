package http

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/infra"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	api    infra.StoreAPI
	health Pinger
}

func NewHandler(api infra.StoreAPI, health Pinger) *Handler {
	return &Handler{api: api, health: health}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/customers", h.ListCustomers)
	api.GET("/products", h.ListProducts)
	api.GET("/orders", h.ListOrders)
	api.GET("/stats", h.GetStats)

	r.GET("/healthz", h.Health)
}

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.api.ListCustomers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.api.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.api.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.api.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) Health(c *gin.Context) {
	if h.health == nil {
		c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
