package main

import (
	"errors"
	"net/http"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/cartstore"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/services"

	"github.com/labstack/echo/v4"
)

func registerCheckoutRoutes(g *echo.Group, store cartstore.Store, os *services.OrderService) {
	// CHECKOUT
	g.POST("/checkout", func(c echo.Context) error {
		req := new(services.CheckoutRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		result, err := os.Checkout(c.Request().Context(), *req)
		if err != nil {
			if errors.Is(err, services.ErrCheckoutInvalid) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		// the order exists now; the cart's job is done even if the
		// gateway registration failed. A 5xx here would invite the
		// client to re-submit the checkout and duplicate the order, so
		// a registration failure still answers 201 and the storefront
		// branches on paymentInitFailed.
		store.Clear(c)

		return c.JSON(http.StatusCreated, result)
	})
}
