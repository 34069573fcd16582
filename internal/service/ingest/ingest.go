// Package ingest разовая административная операция: создать векторное
// хранилище, загрузить документ и привязать его. Выполняется вне запросного
// пути; полученный идентификатор хранилища копируется в конфигурацию сервера.
package ingest

import (
	"context"
	"fmt"

	"QHSEAssistant/internal/ai"

	"go.uber.org/zap"
)

// Helper выполняет ингестию документа. Отката нет: при ошибке операция
// просто прерывается с диагностикой, частичный успех не компенсируется.
type Helper struct {
	client ai.Ingestor
	logger *zap.SugaredLogger
}

func New(client ai.Ingestor, logger *zap.SugaredLogger) *Helper {
	return &Helper{client: client, logger: logger}
}

// Run создаёт хранилище, загружает файл и привязывает его.
// Возвращает идентификатор созданного хранилища.
func (h *Helper) Run(ctx context.Context, storeName, filePath string) (string, error) {
	h.logger.Infow("Создание векторного хранилища", "name", storeName)
	storeID, err := h.client.CreateVectorStore(ctx, storeName)
	if err != nil {
		return "", fmt.Errorf("create vector store: %w", err)
	}

	h.logger.Infow("Загрузка документа", "file", filePath)
	fileID, err := h.client.UploadDocument(ctx, filePath)
	if err != nil {
		return "", fmt.Errorf("upload document: %w", err)
	}

	h.logger.Infow("Привязка документа к хранилищу", "store", storeID, "file", fileID)
	if err := h.client.AttachDocument(ctx, storeID, fileID); err != nil {
		return "", fmt.Errorf("attach document: %w", err)
	}
	return storeID, nil
}
