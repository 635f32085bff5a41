package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "", 5*time.Second, zap.NewNop())
}

func TestGet_DecodesJSONResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/patients/p1", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"p1","name":"Alice"}`))
	})

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	err := c.Get(context.Background(), "/patients/p1", &out)

	require.NoError(t, err)
	assert.Equal(t, "p1", out.ID)
	assert.Equal(t, "Alice", out.Name)
}

func TestPost_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123", 5*time.Second, zap.NewNop())
	err := c.Post(context.Background(), "/beds/b1/assign-patient/p1", nil, nil)
	assert.NoError(t, err)
}

// 2xx 但内容类型不是 JSON：格式错误，不能静默吞掉
func TestGet_NonJSONContentTypeIsFormatError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>login page</html>"))
	})

	var out map[string]any
	err := c.Get(context.Background(), "/patients", &out)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestGet_MalformedJSONIsFormatError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": truncated`))
	})

	var out map[string]any
	err := c.Get(context.Background(), "/patients", &out)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

// out 为 nil 或响应体为空时不做解码
func TestGet_NilOutSkipsDecoding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ignored"))
	})

	assert.NoError(t, c.Get(context.Background(), "/health", nil))
}

func TestGet_ErrorStatusWithDetailMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Patient not found"}`))
	})

	err := c.Get(context.Background(), "/patients/missing", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Patient not found", apiErr.Message)
}

func TestGet_ErrorStatusWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.Get(context.Background(), "/patients", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Request failed with status 502", apiErr.Message)
}

// 422 的 detail 数组映射为按字段分组的校验错误；loc 取最后一段，缺 loc 归入 general
func TestPost_ValidationErrorFieldMapping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[
			{"loc":["body","patient","name"],"msg":"field required"},
			{"loc":["body","patient","name"],"msg":"must not be blank"},
			{"loc":[],"msg":"payload rejected"}
		]}`))
	})

	err := c.Post(context.Background(), "/patients", map[string]string{}, nil)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"field required", "must not be blank"}, ve.Fields["name"])
	assert.Equal(t, []string{"payload rejected"}, ve.Fields["general"])
}

// 422 但没有 detail 数组：走通用错误路径
func TestPost_MalformedValidationBodyFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"unprocessable"}`))
	})

	err := c.Post(context.Background(), "/patients", map[string]string{}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "unprocessable", apiErr.Message)
}

// 传输层失败（连接拒绝）：统一归类为 Network error
func TestGet_TransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 立即关掉，后续连接必然失败

	c := New(srv.URL, "", 2*time.Second, zap.NewNop())
	err := c.Get(context.Background(), "/patients", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Network error", apiErr.Message)
}

func TestErrorTypes_DistinguishableByErrorsAs(t *testing.T) {
	var target *ConflictError
	assert.False(t, errors.As(&APIError{Status: 409, Message: "conflict"}, &target))
	assert.True(t, errors.As(&ConflictError{Message: "bed taken"}, &target))

	var nf *NotFoundError
	require.True(t, errors.As(&NotFoundError{Resource: "bed", ID: "b1"}, &nf))
	assert.Contains(t, nf.Error(), "bed")
	assert.Contains(t, nf.Error(), "b1")
}
