package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout 单次请求的默认超时
const DefaultTimeout = 30 * time.Second

// Client 通用 REST 资源客户端
// 职责：超时控制、JSON 解码、错误分类（见 errors.go）
// 本层不做重试——重试与否由调用方决定（一致性引擎从不重试）
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New 创建资源客户端
func New(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if token != "" {
		httpClient.SetAuthToken(token)
	}

	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// Get 发起 GET 请求并将响应解码到 out（out 可为 nil）
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, resty.MethodGet, path, nil, out)
}

// Post 发起 POST 请求（body 可为 nil）
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, resty.MethodPost, path, body, out)
}

// Put 发起 PUT 请求
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, resty.MethodPut, path, body, out)
}

// Delete 发起 DELETE 请求
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, resty.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		// 超时、DNS、拒绝连接等传输层失败：未收到响应
		c.logger.Warn("Request transport failure",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return &APIError{Status: http.StatusInternalServerError, Message: "Network error"}
	}

	return c.classify(method, path, resp, out)
}

// classify 按状态码与内容类型归类响应
func (c *Client) classify(method, path string, resp *resty.Response, out any) error {
	status := resp.StatusCode()

	if status >= 200 && status < 300 {
		if out == nil || len(resp.Body()) == 0 {
			return nil
		}
		if !isJSONContentType(resp.Header().Get("Content-Type")) {
			return &FormatError{Message: fmt.Sprintf("unexpected content type %q for %s %s",
				resp.Header().Get("Content-Type"), method, path)}
		}
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return &FormatError{Message: fmt.Sprintf("decode response for %s %s: %v", method, path, err)}
		}
		return nil
	}

	if status == http.StatusUnprocessableEntity {
		if ve := parseValidationBody(resp.Body()); ve != nil {
			return ve
		}
	}

	message := parseErrorMessage(resp.Body())
	if message == "" {
		message = fmt.Sprintf("Request failed with status %d", status)
	}
	c.logger.Warn("Request failed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.String("message", message),
	)
	return &APIError{Status: status, Message: message}
}

// validationDetail 后端 422 响应中的单条校验错误
type validationDetail struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// parseValidationBody 解析 422 响应体；无 detail 数组时返回 nil，走通用错误路径
func parseValidationBody(body []byte) *ValidationError {
	var payload struct {
		Detail []validationDetail `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return nil
	}

	fields := make(map[string][]string, len(payload.Detail))
	for _, d := range payload.Detail {
		// 字段名取 loc 路径的最后一段；无 loc 的条目归入 "general"
		field := "general"
		if len(d.Loc) > 0 {
			field = fmt.Sprint(d.Loc[len(d.Loc)-1])
		}
		fields[field] = append(fields[field], d.Msg)
	}
	return &ValidationError{Fields: fields}
}

// parseErrorMessage 尽力从错误响应体中提取服务端消息
func parseErrorMessage(body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		return detail
	}
	return ""
}

func isJSONContentType(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}
