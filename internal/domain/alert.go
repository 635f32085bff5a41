package domain

// 报警级别
const (
	AlertTypeCritical = "critical"
	AlertTypeWarning  = "warning"
	AlertTypeInfo     = "info"
)

// Alert 设备内嵌的报警记录（iotData.alerts 的值）
// 生命周期单向：unresolved → resolved，不允许回退
type Alert struct {
	AlertType  string `json:"type"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	Resolved   bool   `json:"resolved"`
	ResolvedBy string `json:"resolvedBy,omitempty"`
	ResolvedAt string `json:"resolvedAt,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"`
}
