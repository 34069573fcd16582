package api

import (
	"net/http"

	"QHSEAssistant/internal/service/answer"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type analyseRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
}

type analyseUploadRequest struct {
	Text     string `json:"text"`
	ImageB64 string `json:"image_b64"`
	ImageURL string `json:"image_url"`
}

type structuredResponse struct {
	Structured *answer.Structured `json:"structured"`
}

// Analyse анализирует ситуацию по описанию и фотографии (по http(s)-ссылке).
// POST /api/analyse
func (h *Handler) Analyse(c echo.Context) error {
	ctx := c.Request().Context()
	reqID := uuid.NewString()[:8]

	if err := h.cfg.Validate(); err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody(err))
	}

	var req analyseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Corps de requête invalide"})
	}

	h.logger.Infow("Запрос анализа принят", "request", reqID)
	out, err := h.service.Analyse(ctx, req.Text, req.ImageURL)
	if err != nil {
		return h.writeError(c, reqID, err)
	}

	if out.Answer.Structured != nil {
		return c.JSON(http.StatusOK, structuredResponse{Structured: out.Answer.Structured})
	}
	return c.JSON(http.StatusOK, map[string]string{"resultat": out.Answer.Text})
}

// AnalyseUpload вариант с локальной загрузкой: изображение приходит как base64
// (или готовый data URI в image_url) и превращается в data URI до валидации.
// POST /api/analyse-upload
func (h *Handler) AnalyseUpload(c echo.Context) error {
	ctx := c.Request().Context()
	reqID := uuid.NewString()[:8]

	if err := h.cfg.Validate(); err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody(err))
	}

	var req analyseUploadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Corps de requête invalide"})
	}

	ref := req.ImageURL
	if req.ImageB64 != "" {
		ref = "data:image/jpeg;base64," + req.ImageB64
	}

	h.logger.Infow("Запрос анализа с загрузкой принят", "request", reqID)
	out, err := h.service.Analyse(ctx, req.Text, ref)
	if err != nil {
		return h.writeError(c, reqID, err)
	}

	if out.Answer.Structured != nil {
		return c.JSON(http.StatusOK, structuredResponse{Structured: out.Answer.Structured})
	}
	return c.JSON(http.StatusOK, map[string]string{"result": out.Answer.Text})
}
