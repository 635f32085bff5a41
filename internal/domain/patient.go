package domain

// 患者风险等级
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// Patient 患者领域模型（后端 /patients 资源）
// RoomID/BedID 同为 nil 表示未分配床位；两者必须同时出现或同时为空
type Patient struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Age            int      `json:"age"`
	Gender         string   `json:"gender"`
	Ward           string   `json:"ward,omitempty"`
	RoomID         *string  `json:"roomId,omitempty"`
	BedID          *string  `json:"bedId,omitempty"`
	MedicalHistory []string `json:"medicalHistory"`
	Status         string   `json:"status,omitempty"`
	RiskLevel      string   `json:"riskLevel,omitempty"`
}

// IsAdmitted 患者是否已分配床位
func (p *Patient) IsAdmitted() bool {
	return p.RoomID != nil && p.BedID != nil
}

// Normalize 补齐解码后可能缺失的嵌套容器
func (p *Patient) Normalize() {
	if p.MedicalHistory == nil {
		p.MedicalHistory = []string{}
	}
}
