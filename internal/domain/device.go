package domain

// 设备类型
const (
	DeviceTypeVitalsMonitor = "vitals_monitor"
	DeviceTypeSensor        = "sensor"
)

// DeviceInfo 设备的位置与患者绑定信息（iotData.deviceInfo）
// 约束 A：BedID 非空 ⇒ RoomID 非空，且床位属于该病房
// 约束 B：同一 BedID 同时最多被一台设备持有
// 约束 C：CurrentPatientID 非空 ⇒ BedID 非空，且该床位的占用患者就是 CurrentPatientID
type DeviceInfo struct {
	RoomID           *string `json:"roomId,omitempty"`
	BedID            *string `json:"bedId,omitempty"`
	CurrentPatientID *string `json:"currentPatientId,omitempty"`
}

// VitalReading 单项生命体征的最新读数
type VitalReading struct {
	Value     float64 `json:"value"`
	Unit      string  `json:"unit,omitempty"`
	Timestamp string  `json:"timestamp"`
	Status    string  `json:"status,omitempty"`
}

// Device IoT 设备领域模型（后端 /iotData 资源）
// Vitals 按读数类型（heartRate、oxygenLevel 等）索引，Alerts 按报警时间戳索引
type Device struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	DeviceType string                  `json:"type"`
	Status     string                  `json:"status,omitempty"`
	DeviceInfo DeviceInfo              `json:"deviceInfo"`
	Vitals     map[string]VitalReading `json:"vitals"`
	Alerts     map[string]Alert        `json:"alerts"`
}

// Normalize 补齐解码后可能缺失的嵌套容器（后端省略空 map）
func (d *Device) Normalize() {
	if d.Vitals == nil {
		d.Vitals = map[string]VitalReading{}
	}
	if d.Alerts == nil {
		d.Alerts = map[string]Alert{}
	}
}

// IsMonitor 是否为可绑定床位的监护仪
func (d *Device) IsMonitor() bool {
	return d.DeviceType == DeviceTypeVitalsMonitor
}

// BoundToBed 设备是否已绑定到指定床位
func (d *Device) BoundToBed(bedID string) bool {
	return d.DeviceInfo.BedID != nil && *d.DeviceInfo.BedID == bedID
}

// LinkedToPatient 设备是否已关联指定患者
func (d *Device) LinkedToPatient(patientID string) bool {
	return d.DeviceInfo.CurrentPatientID != nil && *d.DeviceInfo.CurrentPatientID == patientID
}
