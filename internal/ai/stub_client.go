package ai

import (
	"context"
	"sync"
)

// StubClient заглушка Client/Ingestor, которая не делает реальных запросов:
// проигрывает заданную последовательность статусов run и считает вызовы.
// Счётчики позволяют проверять, что при невалидном входе или неполной
// конфигурации удалённых вызовов не было.
type StubClient struct {
	mu sync.Mutex

	// Statuses отдаются по одному на каждый опрос; последний элемент повторяется.
	Statuses []RunStatus
	// AnswerParts возвращаются как последнее сообщение ассистента.
	AnswerParts []Part

	ThreadErr  error
	MessageErr error
	RunErr     error
	StateErr   error
	UploadErr  error

	Calls        int // все удалённые вызовы суммарно
	ThreadCalls  int
	MessageCalls int
	RunCalls     int
	PollCalls    int
	UploadCalls  int

	// LastParts последнее добавленное сообщение пользователя.
	LastParts []Part
}

func NewStubClient() *StubClient { return &StubClient{} }

func (s *StubClient) CreateThread(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	s.ThreadCalls++
	if s.ThreadErr != nil {
		return "", s.ThreadErr
	}
	return "thread_stub", nil
}

func (s *StubClient) AddUserMessage(_ context.Context, _ string, parts []Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	s.MessageCalls++
	s.LastParts = parts
	return s.MessageErr
}

func (s *StubClient) StartRun(_ context.Context, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	s.RunCalls++
	if s.RunErr != nil {
		return "", s.RunErr
	}
	return "run_stub", nil
}

func (s *StubClient) RunState(_ context.Context, _, _ string) (RunStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	s.PollCalls++
	if s.StateErr != nil {
		return "", s.StateErr
	}
	if len(s.Statuses) == 0 {
		return RunCompleted, nil
	}
	i := s.PollCalls - 1
	if i >= len(s.Statuses) {
		i = len(s.Statuses) - 1
	}
	return s.Statuses[i], nil
}

func (s *StubClient) LastAssistantMessage(_ context.Context, _ string) ([]Part, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	return s.AnswerParts, nil
}

func (s *StubClient) UploadImage(_ context.Context, _ string, _ []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	s.UploadCalls++
	if s.UploadErr != nil {
		return "", s.UploadErr
	}
	return "file_stub", nil
}

func (s *StubClient) CreateVectorStore(_ context.Context, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	return "vs_stub", nil
}

func (s *StubClient) UploadDocument(_ context.Context, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	return "file_stub", nil
}

func (s *StubClient) AttachDocument(_ context.Context, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	return nil
}
