// Package session управляет тредами удалённого сервиса: одна сессия — один
// логический обмен вопрос-ответ.
package session

import (
	"context"
	"strings"

	"QHSEAssistant/internal/ai"

	"go.uber.org/zap"
)

// Manager создаёт или переиспользует тред и добавляет в него сообщение пользователя.
// Сессии нигде не сохраняются: повторное использование — ответственность вызывающего.
type Manager struct {
	client      ai.Client
	instruction string
	logger      *zap.SugaredLogger
}

func New(client ai.Client, instruction string, logger *zap.SugaredLogger) *Manager {
	return &Manager{client: client, instruction: instruction, logger: logger}
}

// OpenOrResume возвращает переданный handle как есть (доверяем вызывающему,
// что это валидная прошлая сессия) либо создаёт новый тред одним удалённым вызовом.
func (m *Manager) OpenOrResume(ctx context.Context, handle string) (string, error) {
	if handle != "" {
		return handle, nil
	}
	id, err := m.client.CreateThread(ctx)
	if err != nil {
		return "", err
	}
	m.logger.Infow("Создан новый тред", "thread", id)
	return id, nil
}

// AppendUserMessage добавляет сообщение пользователя. Части идут в фиксированном
// порядке: инструкция, затем текст пользователя (если есть), затем изображение.
// Один удалённый вызов; при ошибке локальных повторов нет.
func (m *Manager) AppendUserMessage(ctx context.Context, threadID, text string, image ai.Part) error {
	parts := make([]ai.Part, 0, 3)
	parts = append(parts, ai.TextPart{Text: m.instruction})
	if t := strings.TrimSpace(text); t != "" {
		parts = append(parts, ai.TextPart{Text: t})
	}
	if image != nil {
		parts = append(parts, image)
	}
	return m.client.AddUserMessage(ctx, threadID, parts)
}
