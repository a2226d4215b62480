// Package web serves the storefront overview page.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type PageData struct {
	Stats     domain.StoreStats
	Customers []domain.CustomerSummary
	Products  []domain.ProductSummary
	Orders    []domain.OrderSummary
	Error     string
}

type Handler struct {
	api    infra.StoreAPI
	logger zerolog.Logger
}

func NewHandler(api infra.StoreAPI, logger zerolog.Logger) *Handler {
	return &Handler{api: api, logger: logger}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.SetHTMLTemplate(indexTemplate)
	r.GET("/", h.Index)
}

func (h *Handler) Index(c *gin.Context) {
	data, err := h.Load(c.Request.Context())
	status := http.StatusOK
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load page data")
		data = PageData{Error: err.Error()}
		status = http.StatusBadGateway
	}

	c.HTML(status, "index.html", data)
}

// Load fetches the four projections concurrently. The first failure cancels
// the rest.
func (h *Handler) Load(ctx context.Context) (PageData, error) {
	var data PageData
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		data.Stats, err = h.api.GetStats(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Customers, err = h.api.ListCustomers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Products, err = h.api.ListProducts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Orders, err = h.api.ListOrders(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return PageData{}, err
	}
	return data, nil
}
