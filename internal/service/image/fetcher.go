// Package image получает изображение по ссылке и загружает его в файловое
// хранилище удалённого сервиса. Поддерживаются абсолютные http(s)-адреса и
// data URI (вариант с локальной загрузкой).
package image

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"QHSEAssistant/internal/ai"

	"go.uber.org/zap"
)

const maxImageBytes = 8 * 1024 * 1024

// Fetcher скачивает или декодирует изображение и превращает его в часть
// сообщения со ссылкой на загруженный файл.
type Fetcher struct {
	httpClient *http.Client
	uploader   ai.Client
	logger     *zap.SugaredLogger
}

func NewFetcher(uploader ai.Client, logger *zap.SugaredLogger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		uploader:   uploader,
		logger:     logger,
	}
}

// Acquire получает байты изображения по ссылке и загружает их в удалённое
// хранилище. Ссылка уже прошла валидацию: это http(s)-адрес либо data URI.
func (f *Fetcher) Acquire(ctx context.Context, ref string) (ai.ImageFilePart, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(ref, "data:") {
		data, err = decodeDataURI(ref)
	} else {
		data, err = f.download(ctx, ref)
	}
	if err != nil {
		return ai.ImageFilePart{}, err
	}

	fileID, err := f.uploader.UploadImage(ctx, "photo.jpg", data)
	if err != nil {
		return ai.ImageFilePart{}, err
	}
	f.logger.Infow("Изображение загружено", "bytes", len(data), "file", fileID)
	return ai.ImageFilePart{FileID: fileID}, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Téléchargement image échoué: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Téléchargement image échoué (%d)", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("Image vide")
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("Image trop volumineuse (limite %d octets)", maxImageBytes)
	}
	return data, nil
}

func decodeDataURI(uri string) ([]byte, error) {
	idx := strings.Index(uri, ",")
	if idx < 0 {
		return nil, errors.New("data URI invalide")
	}
	meta, payload := uri[:idx], uri[idx+1:]
	if !strings.Contains(meta, ";base64") {
		return nil, errors.New("data URI: base64 attendu")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("data URI invalide: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("Image vide")
	}
	return data, nil
}
