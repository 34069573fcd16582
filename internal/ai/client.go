package ai

import (
	"context"
	"fmt"
)

// Part часть содержимого сообщения. Закрытое объединение: текст, ссылка на
// изображение или уже загруженный файл. Нормализатор и клиент перебирают
// варианты исчерпывающе, без инспекции строкового поля type.
type Part interface {
	isPart()
}

// TextPart текстовый фрагмент сообщения.
type TextPart struct {
	Text string
}

// ImageURLPart изображение по внешнему http(s)-адресу.
type ImageURLPart struct {
	URL string
}

// ImageFilePart изображение, уже загруженное в файловое хранилище удалённого сервиса.
type ImageFilePart struct {
	FileID string
}

func (TextPart) isPart()      {}
func (ImageURLPart) isPart()  {}
func (ImageFilePart) isPart() {}

// Client интерфейс взаимодействия с удалённым сервисом ассистентов.
// Все реализации должны быть взаимозаменяемыми (реальный клиент и заглушка в тестах).
// Каждый метод — один удалённый вызов; локальных повторов нет.
type Client interface {
	// CreateThread создаёт новый тред (сессию) с привязанным векторным хранилищем.
	CreateThread(ctx context.Context) (string, error)
	// AddUserMessage добавляет в тред сообщение пользователя из переданных частей.
	AddUserMessage(ctx context.Context, threadID string, parts []Part) error
	// StartRun запускает run ассистента на треде и возвращает его идентификатор.
	StartRun(ctx context.Context, threadID string) (string, error)
	// RunState возвращает текущий статус run.
	RunState(ctx context.Context, threadID, runID string) (RunStatus, error)
	// LastAssistantMessage возвращает части самого свежего сообщения ассистента.
	// Пустой срез — ассистент ничего не ответил; это не ошибка.
	LastAssistantMessage(ctx context.Context, threadID string) ([]Part, error)
	// UploadImage загружает изображение для последующей передачи в сообщении.
	UploadImage(ctx context.Context, name string, data []byte) (string, error)
}

// Ingestor операции разовой ингестии документа. Вынесены отдельно:
// запросный путь сервиса их не использует.
type Ingestor interface {
	CreateVectorStore(ctx context.Context, name string) (string, error)
	UploadDocument(ctx context.Context, path string) (string, error)
	AttachDocument(ctx context.Context, storeID, fileID string) error
}

// UpstreamError ошибка удалённого вызова: сеть либо 4xx/5xx сервиса.
// Op называет операцию для диагностики.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *UpstreamError) Unwrap() error { return e.Err }
