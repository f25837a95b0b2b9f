package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"carmarket/internal/config"
)

func gatewayWithBackend(t *testing.T) (*gin.Engine, *httptest.Server) {
	gin.SetMode(gin.TestMode)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"path":       r.URL.Path,
			"method":     r.Method,
			"query":      r.URL.RawQuery,
			"request_id": r.Header.Get("X-Request-ID"),
			"body":       string(body),
		})
	}))
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		ListingURL:     backend.URL,
		TransactionURL: backend.URL,
		JWTSecret:      string(testSecret),
	}
	r := gin.New()
	InitRoutes(r, cfg, zaptest.NewLogger(t))
	return r, backend
}

func TestProxy_ForwardsReadsWithoutAuth(t *testing.T) {
	r, _ := gatewayWithBackend(t)

	req := httptest.NewRequest(http.MethodGet, "/api/carlistings/7?limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var echoed map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &echoed))
	assert.Equal(t, "/carlistings/7", echoed["path"], "the /api prefix is stripped")
	assert.Equal(t, "limit=5", echoed["query"])
	assert.NotEmpty(t, echoed["request_id"], "the gateway tags upstream calls with a request ID")
}

func TestProxy_MutationsRequireToken(t *testing.T) {
	r, _ := gatewayWithBackend(t)

	req := httptest.NewRequest(http.MethodPut, "/api/carlistings/7", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProxy_AuthorizedMutationPassesThrough(t *testing.T) {
	r, _ := gatewayWithBackend(t)

	token := signToken(t, testSecret, []string{"update:carlisting"})
	payload := `{"status":"SOLD"}`
	req := httptest.NewRequest(http.MethodPut, "/api/carlistings/7", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var echoed map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &echoed))
	assert.Equal(t, http.MethodPut, echoed["method"])
	assert.Equal(t, payload, echoed["body"])
}

func TestProxy_UpstreamStatusPreserved(t *testing.T) {
	r, _ := gatewayWithBackend(t)

	token := signToken(t, testSecret, []string{"create:transaction"})
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestProxy_UpstreamDown(t *testing.T) {
	r, backend := gatewayWithBackend(t)
	backend.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/carlistings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
