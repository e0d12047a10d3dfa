package main

import (
	"net/http"
	"strconv"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/cartstore"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/services"

	"github.com/labstack/echo/v4"
)

type addCartRequest struct {
	ProductKitID int64   `json:"productKitId"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func registerCartRoutes(g *echo.Group, store cartstore.Store, validator *services.CartValidator) {
	p := g.Group("/cart")

	// GET cart
	p.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, store.Get(c))
	})

	// ADD item
	p.POST("", func(c echo.Context) error {
		req := new(addCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if req.ProductKitID <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "productKitId is required"})
		}
		if req.Quantity < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		cart := services.AddToCart(store.Get(c), model.CartItem{
			ProductKitID: req.ProductKitID,
			SKU:          req.SKU,
			Name:         req.Name,
			Price:        req.Price,
			Quantity:     req.Quantity,
		})
		if err := store.Save(c, cart); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, cart)
	})

	// UPDATE quantity
	p.PUT("/:kitId", func(c echo.Context) error {
		kitID, _ := strconv.ParseInt(c.Param("kitId"), 10, 64)
		req := new(updateCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		cart := services.UpdateCartItemQuantity(store.Get(c), kitID, req.Quantity)
		if err := store.Save(c, cart); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, cart)
	})

	// REMOVE item
	p.DELETE("/:kitId", func(c echo.Context) error {
		kitID, _ := strconv.ParseInt(c.Param("kitId"), 10, 64)

		cart := services.RemoveFromCart(store.Get(c), kitID)
		if err := store.Save(c, cart); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, cart)
	})

	// CLEAR cart
	p.DELETE("", func(c echo.Context) error {
		store.Clear(c)
		return c.JSON(http.StatusOK, model.EmptyCart())
	})

	// VALIDATE against the catalog (pre-checkout price check for the UI)
	p.POST("/validate", func(c echo.Context) error {
		result, err := validator.ValidateCart(c.Request().Context(), store.Get(c))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, result)
	})
}
