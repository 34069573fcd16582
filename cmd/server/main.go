package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"QHSEAssistant/internal/ai"
	"QHSEAssistant/internal/api"
	"QHSEAssistant/internal/config"
	"QHSEAssistant/internal/service/assistant"
	"QHSEAssistant/internal/service/image"
	"QHSEAssistant/internal/service/run"
	"QHSEAssistant/internal/service/session"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// HTTP-сервис вопросов-ответов по документу QHSSE поверх удалённого сервиса
// ассистентов. Один запрос — одна последовательность: валидация, тред,
// сообщение, run с опросом, нормализация ответа.
func main() {
	cfg := config.NewConfig()

	logger, err := newLogger(cfg.DebugMode)
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	// сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	if err := cfg.Validate(); err != nil {
		// Сервер поднимаем в любом случае: обработчики ответят 500 с именем
		// отсутствующего поля, не делая удалённых вызовов.
		sugar.Warnw("Конфигурация неполна", "error", err)
	}

	oClient := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
	client := ai.NewOpenAIClient(&oClient, cfg.AssistantID, cfg.VectorStoreID)

	sessions := session.New(client, cfg.InstructionPrompt, sugar)
	runs := run.New(client, cfg.PollInterval(), cfg.RunDeadline(), sugar)
	fetcher := image.NewFetcher(client, sugar)
	svc := assistant.New(client, sessions, runs, fetcher, sugar)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = api.HTTPErrorHandler(sugar)
	e.Use(middleware.Recover())
	// Не стандартный CORS-middleware: preflight должен уходить кодом 200
	// с пустым телом, echo отвечает 204.
	e.Use(api.CORS())

	api.NewHandler(cfg, svc, sugar).RegisterRoutes(e)

	go func() {
		sugar.Infow("Запуск HTTP-сервера", "addr", cfg.Addr)
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Сервер остановился с ошибкой", "error", err)
		}
	}()

	// Graceful shutdown по Ctrl+C / SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		sugar.Errorw("Ошибка graceful shutdown", "error", err)
		_ = e.Close()
	}
	sugar.Infow("Сервер остановлен")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
