package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supplyline/scm-console/internal/api/metrics"
	"github.com/supplyline/scm-console/internal/core/ports"
)

type SupplierHandler struct {
	service ports.SupplierService
}

func NewSupplierHandler(service ports.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

type supplierRequest struct {
	Name          string  `json:"name"`
	ContactPerson string  `json:"contact_person"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	Rating        float64 `json:"rating"`
}

func (r supplierRequest) toInput() ports.SupplierInput {
	return ports.SupplierInput{
		Name:          r.Name,
		ContactPerson: r.ContactPerson,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		Rating:        r.Rating,
	}
}

func (h *SupplierHandler) List(c echo.Context) error {
	suppliers, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, suppliers)
}

func (h *SupplierHandler) Get(c echo.Context) error {
	supplier, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) Create(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	supplier, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return countValidation(err, "supplier")
	}

	metrics.RecordWritesTotal.WithLabelValues("supplier", "create").Inc()
	return c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandler) Update(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	supplier, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return countValidation(err, "supplier")
	}

	metrics.RecordWritesTotal.WithLabelValues("supplier", "update").Inc()
	return c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) Delete(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), role); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("supplier", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
