package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"go-ekyc-ocr/images"
	"go-ekyc-ocr/ocr"

	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:8081"

var testConfig = ServerConfig{
	Host:           "localhost",
	Port:           8081,
	UseTls:         false,
	TlsCertPath:    "",
	TlsPrivKeyPath: "",
}

var testNow = time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)

// Widths of the synthetic scans the fake engine recognises. Both lie inside
// the default resize range so preparation keeps them.
const (
	frontWidth = 700
	backWidth  = 800
)

var (
	frontTokens = []string{
		"NEGARA BRUNEI DARUSSALAM", "KAD PENGENALAN", "NAMA", "AHMAD BIN ALI",
		"00-127039", "JANTINA", "LELAKI", "TARIKH LAHIR", "01-01-1990",
	}
	backTokens = []string{
		"TARIKH DIKELUARKAN", "10-10-2020", "TARIKH MANSUH", "10-10-2030", "ALAMAT", "KG KIULAP",
	}
)

func startTestServer(t *testing.T, engine ocr.Engine, cache OCRCache) *Server {
	t.Helper()

	opts := images.DefaultOptions()
	testState := &ServerState{
		processor:      NewDocumentProcessor(engine, cache, opts, 1<<20),
		engineName:     engine.Name(),
		maxUploadBytes: 1 << 20,
		now:            func() time.Time { return testNow },
	}

	srv, err := NewServer(testState, testConfig)
	require.NoError(t, err)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("server error: %v", err)
		}
	}()

	waitUntilHealthy(t, testBaseURL+"/api/health")
	t.Cleanup(func() {
		if err := srv.Stop(); err != nil {
			t.Logf("error shutting down server: %v", err)
		}
	})
	return srv
}

func waitUntilHealthy(t *testing.T, url string) {
	t.Helper()
	const maxAttempts = 50
	for i := 0; i < maxAttempts; i++ {
		if resp, err := http.Get(url); err == nil {
			_ = resp.Body.Close()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("server did not start in time")
}

func postJSON[T any](t *testing.T, url string, payload any) (*http.Response, []byte, *T) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	}
	resp, err := http.Post(url, "application/json", body)
	require.NoError(t, err)

	return readResponse[T](t, resp)
}

func postMultipart[T any](t *testing.T, url string, files map[string][]byte) (*http.Response, []byte, *T) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, data := range files {
		part, err := writer.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	resp, err := http.Post(url, writer.FormDataContentType(), &buf)
	require.NoError(t, err)

	return readResponse[T](t, resp)
}

func readResponse[T any](t *testing.T, resp *http.Response) (*http.Response, []byte, *T) {
	t.Helper()
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var v T
	_ = json.Unmarshal(respBody, &v)
	return resp, respBody, &v
}

func mustStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	require.Equalf(t, want, resp.StatusCode, "body: %s", body)
}

// scan renders a blank PNG of the given width standing in for a card photo.
func scan(t *testing.T, width int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, width, 400))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetGray(0, 0, color.Gray{Y: 10})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// test doubles

// fakeEngine answers with the token stream registered for the image width.
type fakeEngine struct {
	byWidth map[int]ocr.Result
	err     error
	calls   atomic.Int32
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{byWidth: map[int]ocr.Result{
		frontWidth: {Tokens: frontTokens, Scores: []float64{0.934}, Confidence: 0.934},
		backWidth:  {Tokens: backTokens, Scores: []float64{0.871}, Confidence: 0.871},
	}}
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Recognize(_ context.Context, data []byte) (ocr.Result, error) {
	f.calls.Add(1)
	if f.err != nil {
		return ocr.Result{}, f.err
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ocr.Result{}, err
	}
	return f.byWidth[cfg.Width], nil
}
