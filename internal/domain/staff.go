package domain

// ShiftEntry 排班表中的一个班次
type ShiftEntry struct {
	Shift string `json:"shift"`
	Ward  string `json:"ward,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Staff 员工领域模型（后端 /staff 资源）
// Schedule 按日期（YYYY-MM-DD）索引
type Staff struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Role     string                `json:"role"`
	Ward     string                `json:"ward,omitempty"`
	OnDuty   bool                  `json:"onDuty"`
	Phone    string                `json:"phone,omitempty"`
	Email    string                `json:"email,omitempty"`
	Schedule map[string]ShiftEntry `json:"schedule"`
}

// Normalize 补齐解码后可能缺失的嵌套容器
func (s *Staff) Normalize() {
	if s.Schedule == nil {
		s.Schedule = map[string]ShiftEntry{}
	}
}
