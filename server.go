package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go-ekyc-ocr/models"

	_ "go-ekyc-ocr/docs"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

const ERR_MARSHAL = "failed to marshal response message"
const ERR_MULTIPART = "failed to parse multipart form"
const ERR_MISSING_FILE = "missing uploaded file"
const ERR_READ_FILE = "failed to read uploaded file"
const ERR_DECODE_BODY = "failed to decode request body"
const ERR_PROCESSING = "failed to process document"
const ERR_DOCS = "failed to read api documentation"

const (
	requestIDHeader     = "X-Request-Id"
	multipartMemory     = 32 << 20
	multipartOverhead   = 1 << 20
	defaultUploadLimit  = 10 << 20
	maxTokenRequestSize = 1 << 20
)

type ServerConfig struct {
	Host           string `json:"host" yaml:"host"`
	Port           int    `json:"port" yaml:"port"`
	UseTls         bool   `json:"use_tls,omitempty" yaml:"use_tls,omitempty"`
	TlsPrivKeyPath string `json:"tls_priv_key_path,omitempty" yaml:"tls_priv_key_path,omitempty"`
	TlsCertPath    string `json:"tls_cert_path,omitempty" yaml:"tls_cert_path,omitempty"`
}

type ServerState struct {
	processor      *DocumentProcessor
	engineName     string
	maxUploadBytes int64
	now            func() time.Time
}

type Server struct {
	server *http.Server
	config ServerConfig
}

func (s *Server) ListenAndServe() error {
	if s.config.UseTls {
		slog.Info("Starting server with TLS", "host", s.config.Host, "port", s.config.Port, "cert", s.config.TlsCertPath, "key", s.config.TlsPrivKeyPath)
		return s.server.ListenAndServeTLS(s.config.TlsCertPath, s.config.TlsPrivKeyPath)
	} else {
		slog.Info("Starting server without TLS", "host", s.config.Host, "port", s.config.Port)
		return s.server.ListenAndServe()
	}
}

func (s *Server) Stop() error {
	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	if err != nil {
		slog.Error("Error during server shutdown", "error", err)
	} else {
		slog.Info("Server shut down successfully")
	}
	return err
}

func NewServer(state *ServerState, config ServerConfig) (*Server, error) {
	slog.Info("Creating new server", "host", config.Host, "port", config.Port, "tls", config.UseTls)
	if state.now == nil {
		state.now = time.Now
	}
	router := mux.NewRouter()
	router.Use(requestIDMiddleware)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if err := writeJSON(w, http.StatusOK, models.MessageResponse{Message: "eKYC System API is running"}); err != nil {
			respondWithErr(w, http.StatusInternalServerError, ERR_MARSHAL, ERR_MARSHAL, err)
		}
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("Health check request received")
		if err := writeJSON(w, http.StatusOK, models.HealthResponse{Ok: true, Engine: state.engineName}); err != nil {
			respondWithErr(w, http.StatusInternalServerError, ERR_MARSHAL, ERR_MARSHAL, err)
		}
	})

	router.HandleFunc("/ekyc", func(w http.ResponseWriter, r *http.Request) {
		handleEKYC(state, w, r)
	})
	router.HandleFunc("/api/document", func(w http.ResponseWriter, r *http.Request) {
		handleProcessDocument(state, w, r)
	})
	router.HandleFunc("/api/extract", func(w http.ResponseWriter, r *http.Request) {
		handleExtractTokens(w, r)
	})
	router.HandleFunc("/api/ekyc/tokens", func(w http.ResponseWriter, r *http.Request) {
		handleMergeTokens(state, w, r)
	})
	router.HandleFunc("/api/docs/swagger.json", handleSwaggerDoc).Methods(http.MethodGet)

	slog.Debug("Registered all API routes")

	addr := fmt.Sprintf("%v:%v", config.Host, config.Port)
	srv := &http.Server{
		Handler: router,
		Addr:    addr,
		// OCR of two faces can take a while
		WriteTimeout: 90 * time.Second,
		ReadTimeout:  30 * time.Second,
	}

	slog.Info("Server created successfully", "address", addr)
	return &Server{
		server: srv,
		config: config,
	}, nil
}

// handleEKYC godoc
// @Summary Extract and merge both faces of an identity card
// @Accept  multipart/form-data
// @Produce json
// @Param   id_front formData file true  "front of the card"
// @Param   id_back  formData file true  "back of the card"
// @Param   selfie   formData file false "accepted and ignored"
// @Success 200 {object} models.EKYCResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router  /ekyc [post]
func handleEKYC(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	requestID := requestIDFrom(r.Context())
	slog.Info("Received eKYC request", "request_id", requestID)

	r.Body = http.MaxBytesReader(w, r.Body, 2*state.uploadLimit()+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		respondWithErr(w, http.StatusBadRequest, ERR_MULTIPART, ERR_MULTIPART, err)
		return
	}

	front, err := readFormFile(r, "id_front")
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, err.Error(), ERR_MISSING_FILE, err)
		return
	}
	back, err := readFormFile(r, "id_back")
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, err.Error(), ERR_MISSING_FILE, err)
		return
	}

	result, err := state.processor.ProcessIDCard(r.Context(), front, back)
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", ERR_PROCESSING, err), ERR_PROCESSING, err)
		return
	}

	response := newEKYCResponse(result.Front, result.Back, result.FrontTokens, state.now())
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ERR_MARSHAL, ERR_MARSHAL, err)
		return
	}

	slog.Info("eKYC request completed", "request_id", requestID, "document_type", result.Merged.DocumentType)
}

// handleProcessDocument godoc
// @Summary Extract the fields of a single document image
// @Accept  multipart/form-data
// @Produce json
// @Param   document formData file true "document image"
// @Success 200 {object} models.DocumentResponse
// @Router  /api/document [post]
func handleProcessDocument(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, state.uploadLimit()+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		respondWithErr(w, http.StatusBadRequest, ERR_MULTIPART, ERR_MULTIPART, err)
		return
	}

	data, err := readFormFile(r, "document")
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, err.Error(), ERR_MISSING_FILE, err)
		return
	}

	processed, err := state.processor.ProcessDocument(r.Context(), data)
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", ERR_PROCESSING, err), ERR_PROCESSING, err)
		return
	}

	response := models.DocumentResponse{
		RecordData:     models.NewRecordData(processed.Record),
		ExtractedTexts: processed.Tokens,
	}
	if response.ExtractedTexts == nil {
		response.ExtractedTexts = []string{}
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ERR_MARSHAL, ERR_MARSHAL, err)
	}
}

// handleExtractTokens godoc
// @Summary Extract the fields of an OCR token stream
// @Accept  json
// @Produce json
// @Param   request body models.ExtractRequest true "token stream"
// @Success 200 {object} models.RecordData
// @Router  /api/extract [post]
func handleExtractTokens(w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	var request models.ExtractRequest
	if err := decodeJSONBody(w, r, &request); err != nil {
		respondWithErr(w, http.StatusBadRequest, ERR_DECODE_BODY, ERR_DECODE_BODY, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, models.NewRecordData(recordFromTokens(request))); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ERR_MARSHAL, ERR_MARSHAL, err)
	}
}

// handleMergeTokens godoc
// @Summary Extract and merge the token streams of both card faces
// @Accept  json
// @Produce json
// @Param   request body models.MergeTokensRequest true "token streams"
// @Success 200 {object} models.EKYCResponse
// @Router  /api/ekyc/tokens [post]
func handleMergeTokens(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	var request models.MergeTokensRequest
	if err := decodeJSONBody(w, r, &request); err != nil {
		respondWithErr(w, http.StatusBadRequest, ERR_DECODE_BODY, ERR_DECODE_BODY, err)
		return
	}

	response := mergeTokens(request, state.now())
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ERR_MARSHAL, ERR_MARSHAL, err)
	}
}

func handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ERR_DOCS, ERR_DOCS, err)
		return
	}
	writeStaticJSON(w, []byte(doc))
}

// helpers ------------

type requestIDKey struct{}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *ServerState) uploadLimit() int64 {
	if s.maxUploadBytes > 0 {
		return s.maxUploadBytes
	}
	return defaultUploadLimit
}

func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", ERR_MISSING_FILE, field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ERR_READ_FILE, err)
	}
	return data, nil
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTokenRequestSize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}

func respondWithErr(w http.ResponseWriter, code int, message string, logMsg string, e error) {
	slog.Error(logMsg, "error", e, "status_code", code, "response_body", message)
	payload, err := json.Marshal(models.ErrorResponse{Status: models.StatusError, Message: message})
	if err != nil {
		slog.Error("Failed to marshal JSON payload", "error", err)
		payload = []byte(`{"status":"error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(payload); err != nil {
		slog.Error("failed to write body to http response", "error", err)
	}
}

func writeStaticJSON(w http.ResponseWriter, b []byte) {
	slog.Debug("Writing static JSON", "size", len(b))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := w.Write(b); err != nil {
		slog.Error("failed to write body to http response", "error", err)
	}
}

func closeRequestBody(r *http.Request) {
	if err := r.Body.Close(); err != nil {
		slog.Error("failed to close request body", "error", err)
	}
}

func requirePOST(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		slog.Debug("Non-POST request rejected", "method", r.Method, "path", r.URL.Path)
		respondWithErr(w, http.StatusMethodNotAllowed, "method not allowed", "invalid method", nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	slog.Debug("Writing JSON response", "status_code", status)
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to marshal JSON payload", "error", err)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(payload); err != nil {
		slog.Error("failed to write body to http response", "error", err)
	}
	return nil
}
