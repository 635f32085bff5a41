package client

import (
	"fmt"
	"sort"
	"strings"
)

// APIError 后端返回的非 2xx 响应，或未收到响应的网络失败（Status=500，Message="Network error"）
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// FormatError 响应不是 JSON 或与预期结构不符
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error: %s", e.Message)
}

// ValidationError 校验失败：后端 422 的字段级错误，或客户端校验（约束 C 的拦截点）
// Fields 按字段名索引错误消息；无字段归属的条目归入 "general"
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

// ConflictError 客户端前置条件冲突（如床位已有监护仪）
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

// NotFoundError 引用的实体不存在
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
