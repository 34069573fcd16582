package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"QHSEAssistant/internal/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFetcher(stub *ai.StubClient) *Fetcher {
	return NewFetcher(stub, zap.NewNop().Sugar())
}

func TestAcquireDownloadsAndUploads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF})
	}))
	defer srv.Close()

	stub := ai.NewStubClient()
	part, err := newTestFetcher(stub).Acquire(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, ai.ImageFilePart{FileID: "file_stub"}, part)
	assert.Equal(t, 1, stub.UploadCalls)
}

func TestAcquireRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	stub := ai.NewStubClient()
	_, err := newTestFetcher(stub).Acquire(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "Téléchargement image échoué (404)")
	assert.Equal(t, 0, stub.UploadCalls)
}

func TestAcquireRejectsOversizedImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte{0x1}, maxImageBytes+1))
	}))
	defer srv.Close()

	stub := ai.NewStubClient()
	_, err := newTestFetcher(stub).Acquire(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "Image trop volumineuse")
	assert.Equal(t, 0, stub.UploadCalls)
}

func TestAcquireRejectsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	defer srv.Close()

	stub := ai.NewStubClient()
	_, err := newTestFetcher(stub).Acquire(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "Image vide")
	assert.Equal(t, 0, stub.UploadCalls)
}

func TestAcquireDecodesDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("octets image"))
	stub := ai.NewStubClient()

	part, err := newTestFetcher(stub).Acquire(context.Background(), "data:image/jpeg;base64,"+payload)
	require.NoError(t, err)
	assert.Equal(t, ai.ImageFilePart{FileID: "file_stub"}, part)
	assert.Equal(t, 1, stub.UploadCalls)
}

func TestAcquireRejectsBadDataURI(t *testing.T) {
	cases := map[string]string{
		"no comma":       "data:image/jpeg;base64",
		"not base64":     "data:image/jpeg,texte brut",
		"broken payload": "data:image/jpeg;base64,%%%",
		"empty payload":  "data:image/jpeg;base64,",
	}
	for name, ref := range cases {
		t.Run(name, func(t *testing.T) {
			stub := ai.NewStubClient()
			_, err := newTestFetcher(stub).Acquire(context.Background(), ref)
			assert.Error(t, err)
			assert.Equal(t, 0, stub.UploadCalls)
		})
	}
}
