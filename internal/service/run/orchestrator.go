// Package run выполняет асинхронный run удалённого сервиса до терминального
// состояния: фиксированный интервал опроса, фиксированный дедлайн, немедленный
// выход на терминальном статусе.
package run

import (
	"context"
	"errors"
	"fmt"
	"time"

	"QHSEAssistant/internal/ai"

	"go.uber.org/zap"
)

// ErrTimeout локальный дедлайн ожидания истёк. Удалённый run при этом не
// отменяется и может завершиться позже — вызывающий не должен считать его
// остановленным.
var ErrTimeout = errors.New("Timeout de génération")

// FailedError run завершился терминальным статусом без пригодного результата.
// Локальных повторов нет: решение о повторной отправке за вызывающим.
type FailedError struct {
	Status ai.RunStatus
}

func (e *FailedError) Error() string { return fmt.Sprintf("Run %s", e.Status) }

// Orchestrator запускает run и опрашивает его статус с фиксированным интервалом.
// Интервал и дедлайн задаются при создании: в проде 1 с / 30 с из конфигурации,
// в тестах — миллисекунды.
type Orchestrator struct {
	client   ai.Client
	interval time.Duration
	deadline time.Duration
	logger   *zap.SugaredLogger
}

func New(client ai.Client, interval, deadline time.Duration, logger *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{client: client, interval: interval, deadline: deadline, logger: logger}
}

// Await отправляет run и ждёт его завершения. Первый опрос статуса происходит
// сразу после отправки: терминальная неудача на первом опросе выходит без
// единого ожидания интервала.
func (o *Orchestrator) Await(ctx context.Context, threadID string) error {
	runID, err := o.client.StartRun(ctx, threadID)
	if err != nil {
		return err
	}

	start := time.Now()
	for {
		status, err := o.client.RunState(ctx, threadID, runID)
		if err != nil {
			return err
		}
		if status == ai.RunCompleted {
			return nil
		}
		if status.Failure() {
			return &FailedError{Status: status}
		}
		if time.Since(start) > o.deadline {
			// Удалённый run намеренно не отменяем; фиксируем
			// брошенный идентификатор в логе.
			o.logger.Warnw("Дедлайн ожидания run истёк, run остаётся без отмены",
				"thread", threadID, "run", runID, "status", string(status))
			return ErrTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(o.interval):
		}
	}
}
