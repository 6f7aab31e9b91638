package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/codegen"
)

// CompletionController serves the code-producing tasks.
type CompletionController struct {
	service *codegen.Service
	logger  *zap.Logger
}

type CodeResponse struct {
	Status      string `json:"status"`
	Response    string `json:"response"`
	RefinedCode string `json:"refined_code"`
}

func NewCompletionController(service *codegen.Service, logger *zap.Logger) *CompletionController {
	return &CompletionController{service: service, logger: logger}
}

// Generate handles POST /generate
func (cc *CompletionController) Generate(c echo.Context) error {
	var req codegen.CompletionRequest
	if err := c.Bind(&req); err != nil {
		return invalidFormat(c)
	}

	result, err := cc.service.Generate(c.Request().Context(), req)
	if err != nil {
		return respondError(c, cc.logger, err)
	}

	return c.JSON(http.StatusOK, CodeResponse{
		Status:      statusSuccess,
		Response:    result.Response,
		RefinedCode: result.RefinedCode,
	})
}

// Convert handles POST /convert
func (cc *CompletionController) Convert(c echo.Context) error {
	var req codegen.ConversionRequest
	if err := c.Bind(&req); err != nil {
		return invalidFormat(c)
	}

	result, err := cc.service.Convert(c.Request().Context(), req)
	if err != nil {
		return respondError(c, cc.logger, err)
	}

	return c.JSON(http.StatusOK, CodeResponse{
		Status:      statusSuccess,
		Response:    result.Response,
		RefinedCode: result.RefinedCode,
	})
}
