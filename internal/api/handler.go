// Package api HTTP-обработчики сервиса: приём запроса, маппинг ошибок на
// коды и контракт {"error": string} для всех отказов.
package api

import (
	"errors"
	"net/http"

	"QHSEAssistant/internal/ai"
	"QHSEAssistant/internal/config"
	"QHSEAssistant/internal/service/assistant"
	"QHSEAssistant/internal/service/run"
	"QHSEAssistant/internal/service/validate"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler обрабатывает HTTP-запросы сервиса.
type Handler struct {
	cfg     *config.Config
	service *assistant.Service
	logger  *zap.SugaredLogger
}

func NewHandler(cfg *config.Config, service *assistant.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{cfg: cfg, service: service, logger: logger}
}

// RegisterRoutes регистрирует маршруты на echo-сервере.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/ask", h.Ask)
	e.POST("/api/analyse", h.Analyse)
	e.POST("/api/analyse-upload", h.AnalyseUpload)
	e.GET("/health", h.Health)
}

// Health возвращает статус сервиса.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HTTPErrorHandler приводит ошибки транспорта (405, 404, невалидное тело)
// к контракту {"error": string}: ни один путь отказа не отдаёт не-JSON тело.
func HTTPErrorHandler(logger *zap.SugaredLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := "Erreur serveur"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			switch code {
			case http.StatusMethodNotAllowed:
				msg = "Méthode non autorisée"
			case http.StatusNotFound:
				msg = "Ressource introuvable"
			default:
				if s, ok := he.Message.(string); ok {
					msg = s
				}
			}
		}
		if werr := c.JSON(code, map[string]string{"error": msg}); werr != nil {
			logger.Errorw("Не удалось записать ответ об ошибке", "error", werr)
		}
	}
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

// writeError отображает ошибку сценария на HTTP-ответ. Неуспех run (статус
// или дедлайн) намеренно уходит с кодом 200: ошибка в теле, вызывающий
// деградирует сам, а не получает жёсткий отказ транспорта.
func (h *Handler) writeError(c echo.Context, reqID string, err error) error {
	if validate.Invalid(err) {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}

	if errors.Is(err, run.ErrTimeout) {
		h.logger.Warnw("Run не уложился в дедлайн", "request", reqID)
		return c.JSON(http.StatusOK, errorBody(err))
	}
	var failed *run.FailedError
	if errors.As(err, &failed) {
		h.logger.Warnw("Run завершился неудачей", "request", reqID, "status", string(failed.Status))
		return c.JSON(http.StatusOK, errorBody(err))
	}

	var missing config.MissingError
	if errors.As(err, &missing) {
		return c.JSON(http.StatusInternalServerError, errorBody(err))
	}

	var upstream *ai.UpstreamError
	if errors.As(err, &upstream) {
		h.logger.Errorw("Ошибка удалённого вызова", "request", reqID, "op", upstream.Op, "error", upstream.Err)
		return c.JSON(http.StatusInternalServerError, errorBody(err))
	}

	h.logger.Errorw("Ошибка обработки запроса", "request", reqID, "error", err)
	return c.JSON(http.StatusInternalServerError, errorBody(err))
}
