package main

import (
	"net/http"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerAuthRoutes(g *echo.Group, as *services.AuthService) {
	p := g.Group("/auth")

	p.POST("/login", func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		token, err := as.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"token": token})
	})
}
