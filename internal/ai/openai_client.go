package ai

import (
	"bytes"
	"context"
	"os"

	"github.com/openai/openai-go/v3"
)

// OpenAIClient реализует Client и Ingestor поверх OpenAI Assistants (Threads).
type OpenAIClient struct {
	client        *openai.Client
	assistantID   string
	vectorStoreID string
}

// NewOpenAIClient создаёт клиента. vectorStoreID может быть пустым для
// сценариев без поиска по документу (ингестия).
func NewOpenAIClient(client *openai.Client, assistantID, vectorStoreID string) *OpenAIClient {
	return &OpenAIClient{client: client, assistantID: assistantID, vectorStoreID: vectorStoreID}
}

func (c *OpenAIClient) CreateThread(ctx context.Context) (string, error) {
	params := openai.BetaThreadNewParams{}
	// Привязываем хранилище с документом к треду: file_search ассистента
	// будет искать только по нему.
	if c.vectorStoreID != "" {
		params.ToolResources = openai.BetaThreadNewParamsToolResources{
			FileSearch: openai.BetaThreadNewParamsToolResourcesFileSearch{
				VectorStoreIDs: []string{c.vectorStoreID},
			},
		}
	}
	th, err := c.client.Beta.Threads.New(ctx, params)
	if err != nil {
		return "", &UpstreamError{Op: "create thread", Err: err}
	}
	return th.ID, nil
}

func (c *OpenAIClient) AddUserMessage(ctx context.Context, threadID string, parts []Part) error {
	content := make([]openai.MessageContentPartParamUnion, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case TextPart:
			content = append(content, openai.MessageContentPartParamUnion{
				OfText: &openai.TextContentBlockParam{Text: v.Text},
			})
		case ImageURLPart:
			content = append(content, openai.MessageContentPartParamUnion{
				OfImageURL: &openai.ImageURLContentBlockParam{
					ImageURL: openai.ImageURLParam{URL: v.URL},
				},
			})
		case ImageFilePart:
			content = append(content, openai.MessageContentPartParamUnion{
				OfImageFile: &openai.ImageFileContentBlockParam{
					ImageFile: openai.ImageFileParam{FileID: v.FileID},
				},
			})
		}
	}

	if _, err := c.client.Beta.Threads.Messages.New(ctx, threadID, openai.BetaThreadMessageNewParams{
		Role: openai.BetaThreadMessageNewParamsRoleUser,
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfArrayOfContentParts: content,
		},
	}); err != nil {
		return &UpstreamError{Op: "add message", Err: err}
	}
	return nil
}

func (c *OpenAIClient) StartRun(ctx context.Context, threadID string) (string, error) {
	run, err := c.client.Beta.Threads.Runs.New(ctx, threadID, openai.BetaThreadRunNewParams{
		AssistantID: c.assistantID,
	})
	if err != nil {
		return "", &UpstreamError{Op: "start run", Err: err}
	}
	return run.ID, nil
}

func (c *OpenAIClient) RunState(ctx context.Context, threadID, runID string) (RunStatus, error) {
	r, err := c.client.Beta.Threads.Runs.Get(ctx, threadID, runID)
	if err != nil {
		return "", &UpstreamError{Op: "get run", Err: err}
	}
	return mapRunStatus(r.Status), nil
}

func (c *OpenAIClient) LastAssistantMessage(ctx context.Context, threadID string) ([]Part, error) {
	msgs, err := c.client.Beta.Threads.Messages.List(ctx, threadID, openai.BetaThreadMessageListParams{
		Order: openai.BetaThreadMessageListParamsOrderDesc,
		Limit: openai.Int(1),
	})
	if err != nil {
		return nil, &UpstreamError{Op: "list messages", Err: err}
	}

	for _, m := range msgs.Data {
		if m.Role != openai.MessageRoleAssistant {
			continue
		}
		parts := make([]Part, 0, len(m.Content))
		for _, item := range m.Content {
			switch item.Type {
			case "text":
				parts = append(parts, TextPart{Text: item.Text.Value})
			case "image_url":
				parts = append(parts, ImageURLPart{URL: item.ImageURL.URL})
			case "image_file":
				parts = append(parts, ImageFilePart{FileID: item.ImageFile.FileID})
			}
		}
		return parts, nil
	}
	return nil, nil
}

func (c *OpenAIClient) UploadImage(ctx context.Context, name string, data []byte) (string, error) {
	// Для сообщений с картинками у Assistants подходящий purpose — vision.
	f, err := c.client.Files.New(ctx, openai.FileNewParams{
		File:    openai.File(bytes.NewReader(data), name, "image/jpeg"),
		Purpose: openai.FilePurposeVision,
	})
	if err != nil {
		return "", &UpstreamError{Op: "upload image", Err: err}
	}
	return f.ID, nil
}

func (c *OpenAIClient) CreateVectorStore(ctx context.Context, name string) (string, error) {
	vs, err := c.client.VectorStores.New(ctx, openai.VectorStoreNewParams{
		Name: openai.String(name),
	})
	if err != nil {
		return "", &UpstreamError{Op: "create vector store", Err: err}
	}
	return vs.ID, nil
}

func (c *OpenAIClient) UploadDocument(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	f, err := c.client.Files.New(ctx, openai.FileNewParams{
		File:    file,
		Purpose: openai.FilePurposeAssistants,
	})
	if err != nil {
		return "", &UpstreamError{Op: "upload document", Err: err}
	}
	return f.ID, nil
}

func (c *OpenAIClient) AttachDocument(ctx context.Context, storeID, fileID string) error {
	if _, err := c.client.VectorStores.Files.New(ctx, storeID, openai.VectorStoreFileNewParams{
		FileID: fileID,
	}); err != nil {
		return &UpstreamError{Op: "attach document", Err: err}
	}
	return nil
}

// mapRunStatus переводит статус SDK в закрытый набор RunStatus.
// requires_action и cancelling не терминальны: цикл опроса продолжается.
func mapRunStatus(s openai.RunStatus) RunStatus {
	switch s {
	case openai.RunStatusQueued:
		return RunQueued
	case openai.RunStatusInProgress:
		return RunInProgress
	case openai.RunStatusCompleted:
		return RunCompleted
	case openai.RunStatusFailed:
		return RunFailed
	case openai.RunStatusCancelled:
		return RunCancelled
	case openai.RunStatusExpired:
		return RunExpired
	case openai.RunStatusIncomplete:
		return RunIncomplete
	default:
		return RunInProgress
	}
}
