package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofgraph/infrastructure/config"
	"proofgraph/infrastructure/di"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Environment: "development",
		Limits:      config.DefaultLimits(),
	}
	container, err := di.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	return NewRouter(container).Setup()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors the APIResponse shape for decoding test responses
type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestRouter_HealthEndpoints(t *testing.T) {
	// Arrange
	handler := newTestServer(t)

	// Act / Assert
	rec := doJSON(t, handler, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_DocumentLifecycleOverHTTP(t *testing.T) {
	// Arrange
	handler := newTestServer(t)

	// Act: create a document
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/documents", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	proofID, ok := env.Data["id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, proofID)

	// Add a statement
	rec = doJSON(t, handler, http.MethodPost,
		fmt.Sprintf("/api/v1/documents/%s/statements", proofID),
		map[string]string{"content": "All men are mortal"})
	require.Equal(t, http.StatusCreated, rec.Code)
	env = decodeEnvelope(t, rec)
	stmtID, ok := env.Data["id"].(string)
	require.True(t, ok)

	// Create an argument concluding that statement
	rec = doJSON(t, handler, http.MethodPost,
		fmt.Sprintf("/api/v1/documents/%s/arguments", proofID),
		map[string]interface{}{"conclusion_statement_ids": []string{stmtID}})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Fetch the document with stats
	rec = doJSON(t, handler, http.MethodGet,
		fmt.Sprintf("/api/v1/documents/%s?stats=true", proofID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var docEnv struct {
		Success bool `json:"success"`
		Data    struct {
			Statements      map[string]json.RawMessage `json:"statements"`
			AtomicArguments map[string]json.RawMessage `json:"atomic_arguments"`
			Stats           *struct {
				ValidationStatus string `json:"validation_status"`
			} `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&docEnv))
	assert.Len(t, docEnv.Data.Statements, 1)
	assert.Len(t, docEnv.Data.AtomicArguments, 1)
	require.NotNil(t, docEnv.Data.Stats)
	assert.Equal(t, "valid", docEnv.Data.Stats.ValidationStatus)

	// Delete the document
	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/documents/"+proofID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/documents/"+proofID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_EmptyArgumentBody_CreatesBootstrap(t *testing.T) {
	// Arrange
	handler := newTestServer(t)
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/documents", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	proofID := decodeEnvelope(t, rec).Data["id"].(string)

	// Act: no premises, no conclusions
	rec = doJSON(t, handler, http.MethodPost,
		fmt.Sprintf("/api/v1/documents/%s/arguments", proofID),
		map[string]interface{}{})

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.NotEmpty(t, env.Data["id"])
}

func TestRouter_UnknownDocument_Returns404(t *testing.T) {
	// Arrange
	handler := newTestServer(t)

	// Act
	rec := doJSON(t, handler, http.MethodGet,
		"/api/v1/documents/6ba7b810-9dad-11d1-80b4-00c04fd430c8", nil)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_MalformedID_Returns400(t *testing.T) {
	// Arrange
	handler := newTestServer(t)

	// Act
	rec := doJSON(t, handler, http.MethodGet, "/api/v1/documents/not-a-uuid", nil)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UnknownBodyField_Returns400(t *testing.T) {
	// Arrange
	handler := newTestServer(t)
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/documents", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	proofID := decodeEnvelope(t, rec).Data["id"].(string)

	// Act
	rec = doJSON(t, handler, http.MethodPost,
		fmt.Sprintf("/api/v1/documents/%s/statements", proofID),
		map[string]string{"contents": "typo field"})

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
