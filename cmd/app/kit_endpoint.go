package main

import (
	"net/http"
	"strconv"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/repository"

	"github.com/labstack/echo/v4"
)

func registerKitRoutes(g *echo.Group, kits *repository.KitRepository) {
	p := g.Group("/kits")

	p.GET("", func(c echo.Context) error {
		out, err := kits.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, out)
	})

	p.GET("/sku/:sku", func(c echo.Context) error {
		kit, err := kits.FindBySKU(c.Request().Context(), c.Param("sku"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if kit == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "kit not found"})
		}
		return c.JSON(http.StatusOK, kit)
	})

	p.GET("/:id", func(c echo.Context) error {
		kitID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || kitID <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid kit id"})
		}
		kit, err := kits.FindByID(c.Request().Context(), kitID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if kit == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "kit not found"})
		}
		return c.JSON(http.StatusOK, kit)
	})
}
