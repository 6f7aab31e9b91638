package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/codegen"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/report"
)

// AnalysisController serves the report-producing tasks.
type AnalysisController struct {
	service *codegen.Service
	logger  *zap.Logger
}

type AnalysisResponse struct {
	Status   string                 `json:"status"`
	Analysis *report.AnalysisReport `json:"analysis"`
}

type OptimizationResponse struct {
	Status        string                     `json:"status"`
	Optimizations *report.OptimizationReport `json:"optimizations"`
}

type ProjectAnalysisResponse struct {
	Status   string                `json:"status"`
	Analysis *report.ProjectReport `json:"analysis"`
}

func NewAnalysisController(service *codegen.Service, logger *zap.Logger) *AnalysisController {
	return &AnalysisController{service: service, logger: logger}
}

// Analyze handles POST /analyze
func (ac *AnalysisController) Analyze(c echo.Context) error {
	var req codegen.AnalysisRequest
	if err := c.Bind(&req); err != nil {
		return invalidFormat(c)
	}

	result, err := ac.service.Analyze(c.Request().Context(), req)
	if err != nil {
		return respondError(c, ac.logger, err)
	}

	return c.JSON(http.StatusOK, AnalysisResponse{Status: statusSuccess, Analysis: result})
}

// Optimize handles POST /optimize
func (ac *AnalysisController) Optimize(c echo.Context) error {
	var req codegen.OptimizationRequest
	if err := c.Bind(&req); err != nil {
		return invalidFormat(c)
	}

	result, err := ac.service.Optimize(c.Request().Context(), req)
	if err != nil {
		return respondError(c, ac.logger, err)
	}

	return c.JSON(http.StatusOK, OptimizationResponse{Status: statusSuccess, Optimizations: result})
}

// AnalyzeProject handles POST /analyze-project
func (ac *AnalysisController) AnalyzeProject(c echo.Context) error {
	var req codegen.ProjectAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return invalidFormat(c)
	}

	result, err := ac.service.AnalyzeProject(c.Request().Context(), req)
	if err != nil {
		return respondError(c, ac.logger, err)
	}

	return c.JSON(http.StatusOK, ProjectAnalysisResponse{Status: statusSuccess, Analysis: result})
}
