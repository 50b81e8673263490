package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/supplyline/scm-console/internal/api/metrics"
	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

type activityRequest struct {
	Action  string         `json:"action" validate:"required"`
	Details map[string]any `json:"details,omitempty"`
}

// Append records one audit entry. The actor is always taken from the token,
// never from the payload, so a client cannot write entries for someone else.
func (h *ActivityHandler) Append(c echo.Context) error {
	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	entry := domain.ActivityEntry{
		ActorID: actorID,
		Action:  req.Action,
		Details: req.Details,
	}
	if err := h.service.Record(c.Request().Context(), entry); err != nil {
		return err
	}

	metrics.ActivityEntriesTotal.WithLabelValues(req.Action).Inc()
	return c.NoContent(http.StatusCreated)
}

// Recent returns the newest trail entries, optionally filtered. The route is
// gated to admins by the router.
func (h *ActivityHandler) Recent(c echo.Context) error {
	filter := ports.ListActivityFilter{
		ActorID: c.QueryParam("actor_id"),
		Action:  c.QueryParam("action"),
	}
	if since := c.QueryParam("since"); since != "" {
		ts, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "since must be RFC 3339")
		}
		filter.Since = ts
	}
	if limit := c.QueryParam("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		filter.Limit = n
	}

	entries, err := h.service.Recent(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
