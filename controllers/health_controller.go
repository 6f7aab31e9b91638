package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const serviceName = "codegenie"

type HealthController struct {
	model string
}

func NewHealthController(model string) *HealthController {
	return &HealthController{model: model}
}

func (hc *HealthController) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"message": "Server is running",
		"service": serviceName,
		"model":   hc.model,
	})
}
