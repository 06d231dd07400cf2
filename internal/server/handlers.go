// Package server provides HTTP handlers and server setup for the gateway.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"localfind/internal/core"
)

// Gateway is the service contract the handlers depend on.
type Gateway interface {
	Geocode(ctx context.Context, city string) (*core.GeocodeResult, error)
	Reverse(ctx context.Context, lat, lng float64) (*core.ReverseResult, error)
	Nearby(ctx context.Context, req *core.NearbyPlacesRequest) (*core.NearbyPlacesResponse, error)
}

// Handler holds the HTTP handlers.
type Handler struct {
	gateway Gateway
}

// NewHandler creates a new handler over the given gateway service.
func NewHandler(gateway Gateway) *Handler {
	return &Handler{gateway: gateway}
}

// Geocode handles GET /location/geocode?city=
func (h *Handler) Geocode(c echo.Context) error {
	city := c.QueryParam("city")
	if utf8.RuneCountInString(city) < 2 {
		return handleError(c, core.NewInvalidRequestError("city must be at least 2 characters", nil))
	}

	result, err := h.gateway.Geocode(c.Request().Context(), city)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Reverse handles GET /location/reverse?lat=&lng=
func (h *Handler) Reverse(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return handleError(c, core.NewInvalidRequestError("lat must be a number", err))
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return handleError(c, core.NewInvalidRequestError("lng must be a number", err))
	}

	result, err := h.gateway.Reverse(c.Request().Context(), lat, lng)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Nearby handles POST /places/nearby
func (h *Handler) Nearby(c echo.Context) error {
	var req core.NearbyPlacesRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, core.NewInvalidRequestError("invalid request body: "+err.Error(), err))
	}
	if err := req.Validate(); err != nil {
		return handleError(c, err)
	}

	result, err := h.gateway.Nearby(c.Request().Context(), &req)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Health handles GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "backend running",
		"cors":   "enabled",
	})
}

// handleError converts gateway errors to HTTP responses.
func handleError(c echo.Context, err error) error {
	var gatewayErr *core.GatewayError
	if errors.As(err, &gatewayErr) {
		return c.JSON(gatewayErr.HTTPStatusCode(), gatewayErr.ToJSON())
	}

	// Fallback for unexpected errors
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error": map[string]interface{}{
			"type":    "internal_error",
			"message": "an unexpected error occurred",
		},
	})
}
