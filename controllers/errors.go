package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/codegen"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// respondError maps a pipeline error onto the HTTP response. Rejected input
// is a 400; everything else is logged and reported as a 500.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	if errors.Is(err, codegen.ErrInvalidRequest) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Status: statusError, Error: err.Error()})
	}

	logger.Error("Request failed",
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Status: statusError, Error: err.Error()})
}

func invalidFormat(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Status: statusError, Error: "Invalid request format"})
}
