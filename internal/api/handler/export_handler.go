package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/supplyline/scm-console/internal/core/ports"
)

// ExportHandler streams record collections as CSV downloads.
type ExportHandler struct {
	inventory ports.InventoryService
	suppliers ports.SupplierService
	orders    ports.OrderService
}

func NewExportHandler(inv ports.InventoryService, sup ports.SupplierService, ord ports.OrderService) *ExportHandler {
	return &ExportHandler{inventory: inv, suppliers: sup, orders: ord}
}

// Export handles GET /io/export/:entity for inventory, suppliers, and orders.
func (h *ExportHandler) Export(c echo.Context) error {
	entity := c.Param("entity")

	var header []string
	var rows [][]string

	switch entity {
	case "inventory":
		items, err := h.inventory.List(c.Request().Context())
		if err != nil {
			return err
		}
		header = []string{"id", "product_name", "description", "quantity", "unit_price", "category", "location", "last_updated"}
		for _, it := range items {
			rows = append(rows, []string{
				it.ID,
				it.ProductName,
				it.Description,
				strconv.FormatInt(it.Quantity, 10),
				formatCents(it.UnitPriceCents),
				it.Category,
				it.Location,
				it.LastUpdated.UTC().Format(time.RFC3339),
			})
		}
	case "suppliers":
		suppliers, err := h.suppliers.List(c.Request().Context())
		if err != nil {
			return err
		}
		header = []string{"id", "name", "contact_person", "email", "phone", "address", "rating"}
		for _, s := range suppliers {
			rows = append(rows, []string{
				s.ID,
				s.Name,
				s.ContactPerson,
				s.Email,
				s.Phone,
				s.Address,
				strconv.FormatFloat(s.Rating, 'f', 1, 64),
			})
		}
	case "orders":
		orders, err := h.orders.List(c.Request().Context())
		if err != nil {
			return err
		}
		header = []string{"id", "supplier_id", "supplier_name", "status", "order_date", "line_items", "total_amount"}
		for _, o := range orders {
			rows = append(rows, []string{
				o.ID,
				o.SupplierID,
				o.SupplierName,
				string(o.Status),
				o.OrderDate.UTC().Format(time.RFC3339),
				strconv.Itoa(len(o.LineItems)),
				formatCents(o.TotalAmountCents),
			})
		}
	default:
		return echo.NewHTTPError(http.StatusNotFound, "unknown export entity")
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s.csv"`, entity))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// formatCents renders minor units as a decimal string, e.g. 12050 → "120.50".
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
