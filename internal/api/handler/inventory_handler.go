package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supplyline/scm-console/internal/api/metrics"
	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

type InventoryHandler struct {
	service ports.InventoryService
}

func NewInventoryHandler(service ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

type inventoryRequest struct {
	ProductName    string `json:"product_name"`
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Category       string `json:"category"`
	Location       string `json:"location"`
}

func (r inventoryRequest) toInput() ports.InventoryInput {
	return ports.InventoryInput{
		ProductName:    r.ProductName,
		Description:    r.Description,
		Quantity:       r.Quantity,
		UnitPriceCents: r.UnitPriceCents,
		Category:       r.Category,
		Location:       r.Location,
	}
}

func (h *InventoryHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Create(c echo.Context) error {
	var req inventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return countValidation(err, "inventory")
	}

	metrics.RecordWritesTotal.WithLabelValues("inventory", "create").Inc()
	return c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) Update(c echo.Context) error {
	var req inventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return countValidation(err, "inventory")
	}

	metrics.RecordWritesTotal.WithLabelValues("inventory", "update").Inc()
	return c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Delete(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), role); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("inventory", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// countValidation bumps the validation failure counter when err carries field
// violations, then hands the error back for the central error handler.
func countValidation(err error, entity string) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		metrics.ValidationFailuresTotal.WithLabelValues(entity).Inc()
	}
	return err
}
