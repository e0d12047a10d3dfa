package main

import (
	"errors"
	"net/http"

	"github.com/damianGG/posadzki-zywiczne-sub001/external/przelewy24"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/services"

	"github.com/labstack/echo/v4"
)

func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService) {
	p := g.Group("/payments")

	// ============================
	// PRZELEWY24 NOTIFICATION
	// (NO JWT, must be public)
	// ============================
	p.POST("/przelewy24/status", func(c echo.Context) error {
		var n przelewy24.Notification
		if err := c.Bind(&n); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
		}

		err := ps.HandleNotification(c.Request().Context(), n)
		switch {
		case err == nil:
			// IMPORTANT:
			// the gateway treats anything but 2xx as undelivered and
			// redelivers, so acknowledge only after processing succeeded
			return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
		case errors.Is(err, services.ErrInvalidSignature),
			errors.Is(err, services.ErrAmountMismatch):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, services.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	})
}
