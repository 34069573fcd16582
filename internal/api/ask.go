package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type askRequest struct {
	Question      string `json:"question"`
	SessionHandle string `json:"session_handle"`
}

type askResponse struct {
	Answer        string `json:"answer"`
	SessionHandle string `json:"session_handle,omitempty"`
}

// Ask отвечает на текстовый вопрос по документу QHSSE.
// POST /api/ask
func (h *Handler) Ask(c echo.Context) error {
	ctx := c.Request().Context()
	reqID := uuid.NewString()[:8]

	// Конфигурацию проверяем до чтения тела и до любых удалённых вызовов.
	if err := h.cfg.Validate(); err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody(err))
	}

	var req askRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Corps de requête invalide"})
	}

	h.logger.Infow("Вопрос принят", "request", reqID, "resumed", req.SessionHandle != "")
	out, err := h.service.Ask(ctx, req.Question, req.SessionHandle)
	if err != nil {
		return h.writeError(c, reqID, err)
	}

	return c.JSON(http.StatusOK, askResponse{
		Answer:        out.Answer.Text,
		SessionHandle: out.Session,
	})
}
