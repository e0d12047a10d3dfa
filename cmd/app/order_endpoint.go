package main

import (
	"net/http"
	"strconv"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/middleware"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/services"

	"github.com/labstack/echo/v4"
)

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService, ps *services.PaymentService) {
	// ============================
	// ORDER STATUS PAGE
	// (public, keyed by order number)
	// ============================
	g.GET("/orders/:orderNumber", func(c echo.Context) error {
		details, err := os.GetDetails(c.Request().Context(), c.Param("orderNumber"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if details == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusOK, details)
	})

	// ============================
	// ADMIN
	// ============================
	a := g.Group("/admin/orders")
	a.Use(middleware.JWTMiddleware())
	a.Use(middleware.AdminOnly)

	a.GET("", func(c echo.Context) error {
		orders, err := os.List(c.Request().Context(), c.QueryParam("paymentStatus"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, orders)
	})

	a.PUT("/:id/status", func(c echo.Context) error {
		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || orderID <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		req := new(updateOrderStatusRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := os.UpdateStatus(c.Request().Context(), orderID, model.OrderStatus(req.Status)); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
	})

	// re-attempt gateway registration for orders stuck pending with no
	// usable token
	a.POST("/:id/retry-payment", func(c echo.Context) error {
		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || orderID <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		paymentURL, err := os.RetryPayment(c.Request().Context(), orderID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"paymentUrl": paymentURL})
	})

	a.POST("/:id/cancel-payment", func(c echo.Context) error {
		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || orderID <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		if err := ps.CancelPending(c.Request().Context(), orderID); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "cancelled"})
	})
}
