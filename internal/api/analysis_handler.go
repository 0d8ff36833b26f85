package api

import (
	"net/http"

	"confidencevoice/internal/service"
	"github.com/labstack/echo/v4"
)

type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

func (h *AnalysisHandler) GetEmotionResults(c echo.Context) error {
	results, err := h.analysisService.GetEmotionResults(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"results": results})
}

func (h *AnalysisHandler) GetAudioResults(c echo.Context) error {
	results, err := h.analysisService.GetAudioResults(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"results": results})
}

func (h *AnalysisHandler) GetAnalysisResults(c echo.Context) error {
	results, err := h.analysisService.GetAnalysisResults(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"results": results})
}

// Reports --> GET /api/analysis/:service/reports, relayed as the service sent it
func (h *AnalysisHandler) Reports(c echo.Context) error {
	body, err := h.analysisService.Reports(c.Request().Context(), sessionFrom(c), c.Param("service"), bearerToken(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSONBlob(http.StatusOK, body)
}
