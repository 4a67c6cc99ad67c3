package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaddleClient_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewPaddleClient(server.URL)
	require.NoError(t, client.HealthCheck(context.Background()))
}

func TestPaddleClient_HealthCheck_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading models"))
	}))
	defer server.Close()

	err := NewPaddleClient(server.URL).HealthCheck(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}

func TestPaddleClient_Recognize_Success(t *testing.T) {
	image := []byte("png bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ocr", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			File     string `json:"file"`
			FileType int    `json:"fileType"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, base64.StdEncoding.EncodeToString(image), body.File)
		require.Equal(t, 1, body.FileType)

		w.Write([]byte(`{
			"errorCode": 0,
			"errorMsg": "Success",
			"result": {"ocrResults": [{"prunedResult": {
				"rec_texts": ["KAD PENGENALAN", "00-127039"],
				"rec_scores": [0.9, 0.8]
			}}]}
		}`))
	}))
	defer server.Close()

	result, err := NewPaddleClient(server.URL).Recognize(context.Background(), image)
	require.NoError(t, err)
	require.Equal(t, []string{"KAD PENGENALAN", "00-127039"}, result.Tokens)
	require.Equal(t, []float64{0.9, 0.8}, result.Scores)
	require.InDelta(t, 0.85, result.Confidence, 1e-9)
}

func TestPaddleClient_Recognize_NoText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errorCode": 0, "result": {"ocrResults": []}}`))
	}))
	defer server.Close()

	result, err := NewPaddleClient(server.URL).Recognize(context.Background(), []byte("x"))
	require.NoError(t, err)
	require.Empty(t, result.Tokens)
	require.Zero(t, result.Confidence)
}

func TestPaddleClient_Recognize_Errors(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}))
		defer server.Close()

		_, err := NewPaddleClient(server.URL).Recognize(context.Background(), []byte("x"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "ocr failed with status 500")
	})

	t.Run("pipeline error code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"errorCode": 500, "errorMsg": "bad image"}`))
		}))
		defer server.Close()

		_, err := NewPaddleClient(server.URL).Recognize(context.Background(), []byte("x"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "bad image")
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		_, err := NewPaddleClient(server.URL).Recognize(context.Background(), []byte("x"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to decode ocr response")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewPaddleClient("http://127.0.0.1:1").Recognize(ctx, []byte("x"))
		require.ErrorIs(t, err, context.Canceled)
	})
}
