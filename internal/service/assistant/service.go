// Package assistant связывает валидацию, сессии, выполнение run и нормализацию
// ответа в один сценарий на запрос. Между запросами нет разделяемого
// изменяемого состояния: каждый вызов работает со своим тредом и run.
package assistant

import (
	"context"

	"QHSEAssistant/internal/ai"
	"QHSEAssistant/internal/service/answer"
	"QHSEAssistant/internal/service/run"
	"QHSEAssistant/internal/service/session"
	"QHSEAssistant/internal/service/validate"

	"go.uber.org/zap"
)

// ImageAcquirer получает изображение по ссылке и превращает его в часть сообщения.
type ImageAcquirer interface {
	Acquire(ctx context.Context, ref string) (ai.ImageFilePart, error)
}

// Outcome итог одного обращения: нормализованный ответ и использованный
// handle сессии (для продолжения обмена вызывающим).
type Outcome struct {
	Answer  answer.Result
	Session string
}

// Service сервис оркестрации одного запроса.
type Service struct {
	client   ai.Client
	sessions *session.Manager
	runs     *run.Orchestrator
	images   ImageAcquirer
	logger   *zap.SugaredLogger
}

func New(client ai.Client, sessions *session.Manager, runs *run.Orchestrator, images ImageAcquirer, logger *zap.SugaredLogger) *Service {
	return &Service{client: client, sessions: sessions, runs: runs, images: images, logger: logger}
}

// Ask отвечает на текстовый вопрос по документу. При переданном handle
// продолжает существующую сессию, иначе создаёт новую.
func (s *Service) Ask(ctx context.Context, question, handle string) (Outcome, error) {
	if err := validate.Question(question); err != nil {
		return Outcome{}, err
	}

	threadID, err := s.sessions.OpenOrResume(ctx, handle)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.sessions.AppendUserMessage(ctx, threadID, question, nil); err != nil {
		return Outcome{Session: threadID}, err
	}
	if err := s.runs.Await(ctx, threadID); err != nil {
		return Outcome{Session: threadID}, err
	}

	parts, err := s.client.LastAssistantMessage(ctx, threadID)
	if err != nil {
		return Outcome{Session: threadID}, err
	}
	return Outcome{
		Answer:  answer.Result{Text: answer.NormalizeText(parts)},
		Session: threadID,
	}, nil
}

// Analyse анализирует ситуацию по описанию и фотографии: изображение
// скачивается и загружается в удалённое хранилище, ответ проходит полный
// конвейер нормализации с попыткой выделить структурированную запись.
func (s *Service) Analyse(ctx context.Context, text, imageRef string) (Outcome, error) {
	if err := validate.Analyse(text, imageRef); err != nil {
		return Outcome{}, err
	}

	img, err := s.images.Acquire(ctx, imageRef)
	if err != nil {
		return Outcome{}, err
	}

	threadID, err := s.sessions.OpenOrResume(ctx, "")
	if err != nil {
		return Outcome{}, err
	}
	if err := s.sessions.AppendUserMessage(ctx, threadID, text, img); err != nil {
		return Outcome{Session: threadID}, err
	}
	if err := s.runs.Await(ctx, threadID); err != nil {
		return Outcome{Session: threadID}, err
	}

	parts, err := s.client.LastAssistantMessage(ctx, threadID)
	if err != nil {
		return Outcome{Session: threadID}, err
	}
	return Outcome{Answer: answer.Normalize(parts), Session: threadID}, nil
}
