package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supplyline/scm-console/internal/api/metrics"
	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// lineItemRequest deliberately has no line_total field: derived amounts are
// recomputed server-side and never accepted from the wire.
type lineItemRequest struct {
	InventoryID    string `json:"inventory_id"`
	ProductName    string `json:"product_name"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type orderRequest struct {
	SupplierID string            `json:"supplier_id"`
	Status     string            `json:"status"`
	Notes      string            `json:"notes"`
	LineItems  []lineItemRequest `json:"line_items"`
}

func (r orderRequest) toInput() ports.OrderInput {
	items := make([]ports.LineItemInput, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		items = append(items, ports.LineItemInput{
			InventoryID:    li.InventoryID,
			ProductName:    li.ProductName,
			Quantity:       li.Quantity,
			UnitPriceCents: li.UnitPriceCents,
		})
	}
	return ports.OrderInput{
		SupplierID: r.SupplierID,
		Status:     domain.OrderStatus(r.Status),
		Notes:      r.Notes,
		LineItems:  items,
	}
}

func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	order, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return countValidation(err, "order")
	}

	metrics.RecordWritesTotal.WithLabelValues("order", "create").Inc()
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Update(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	order, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return countValidation(err, "order")
	}

	metrics.RecordWritesTotal.WithLabelValues("order", "update").Inc()
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), role); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("order", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
