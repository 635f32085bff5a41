package audit

import (
	"fmt"

	"smarthospital-client/internal/domain"
)

// 审计级别
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// Finding 一条审计发现
type Finding struct {
	Check     string // 违反的检查项
	Severity  string
	BedID     string
	RoomID    string
	DeviceID  string
	PatientID string
	Detail    string
}

// Run 对床位/患者/设备的当前快照做一致性审计
//
// 检查项：
//   bed-patient-symmetry  bed.patientId 非空 ⇔ 恰有一名患者占用该床位
//   invariant-a           设备绑定床位 ⇒ 绑定房间，且床位确属该房间
//   invariant-b           同一床位最多一台设备
//   invariant-c           设备关联患者 ⇒ 绑定床位，且床位占用者一致
func Run(beds []*domain.Bed, patients []*domain.Patient, devices []*domain.Device) []Finding {
	var findings []Finding

	bedsByID := make(map[string]*domain.Bed, len(beds))
	for _, b := range beds {
		bedsByID[b.ID] = b
	}

	// 每个床位的占用患者（按 patient.roomId/bedId 统计）
	occupants := make(map[string][]*domain.Patient)
	for _, p := range patients {
		if p.RoomID != nil && p.BedID != nil {
			occupants[*p.BedID] = append(occupants[*p.BedID], p)
		}
	}

	// bed.patientId ⇔ 患者侧的占用记录
	for _, b := range beds {
		occ := occupants[b.ID]
		switch {
		case b.PatientID != nil && len(occ) == 0:
			findings = append(findings, Finding{
				Check: "bed-patient-symmetry", Severity: SeverityCritical,
				BedID: b.ID, RoomID: b.RoomID, PatientID: *b.PatientID,
				Detail: fmt.Sprintf("bed claims patient %s but no patient record points at this bed", *b.PatientID),
			})
		case b.PatientID != nil && (len(occ) > 1 || occ[0].ID != *b.PatientID):
			findings = append(findings, Finding{
				Check: "bed-patient-symmetry", Severity: SeverityCritical,
				BedID: b.ID, RoomID: b.RoomID, PatientID: *b.PatientID,
				Detail: fmt.Sprintf("bed claims patient %s but occupants are %s", *b.PatientID, patientIDs(occ)),
			})
		case b.PatientID == nil && len(occ) > 0:
			findings = append(findings, Finding{
				Check: "bed-patient-symmetry", Severity: SeverityCritical,
				BedID: b.ID, RoomID: b.RoomID, PatientID: occ[0].ID,
				Detail: fmt.Sprintf("patient(s) %s point at this bed but bed.patientId is empty", patientIDs(occ)),
			})
		}
	}

	// 占用患者指向不存在的床位
	for bedID, occ := range occupants {
		if _, ok := bedsByID[bedID]; !ok {
			findings = append(findings, Finding{
				Check: "bed-patient-symmetry", Severity: SeverityCritical,
				BedID: bedID, PatientID: occ[0].ID,
				Detail: fmt.Sprintf("patient(s) %s reference unknown bed %s", patientIDs(occ), bedID),
			})
		}
	}

	// 约束 A / B / C
	bedHolders := make(map[string][]*domain.Device)
	for _, d := range devices {
		info := d.DeviceInfo
		if info.BedID != nil {
			bedHolders[*info.BedID] = append(bedHolders[*info.BedID], d)

			if info.RoomID == nil {
				findings = append(findings, Finding{
					Check: "invariant-a", Severity: SeverityCritical,
					BedID: *info.BedID, DeviceID: d.ID,
					Detail: "device bound to a bed without a room binding",
				})
			} else if bed, ok := bedsByID[*info.BedID]; !ok {
				findings = append(findings, Finding{
					Check: "invariant-a", Severity: SeverityWarning,
					BedID: *info.BedID, RoomID: *info.RoomID, DeviceID: d.ID,
					Detail: "device references unknown bed",
				})
			} else if bed.RoomID != *info.RoomID {
				findings = append(findings, Finding{
					Check: "invariant-a", Severity: SeverityCritical,
					BedID: bed.ID, RoomID: *info.RoomID, DeviceID: d.ID,
					Detail: fmt.Sprintf("device room %s does not own bed %s (bed belongs to room %s)",
						*info.RoomID, bed.ID, bed.RoomID),
				})
			}
		}

		if info.CurrentPatientID != nil {
			if info.BedID == nil {
				findings = append(findings, Finding{
					Check: "invariant-c", Severity: SeverityCritical,
					DeviceID: d.ID, PatientID: *info.CurrentPatientID,
					Detail: "device linked to a patient without a bed binding",
				})
			} else if bed, ok := bedsByID[*info.BedID]; ok {
				if bed.PatientID == nil || *bed.PatientID != *info.CurrentPatientID {
					findings = append(findings, Finding{
						Check: "invariant-c", Severity: SeverityCritical,
						BedID: bed.ID, DeviceID: d.ID, PatientID: *info.CurrentPatientID,
						Detail: fmt.Sprintf("device claims patient %s but bed occupant is %s",
							*info.CurrentPatientID, stringOrEmpty(bed.PatientID)),
					})
				}
			}
		}
	}

	for bedID, holders := range bedHolders {
		if len(holders) > 1 {
			ids := make([]string, len(holders))
			for i, d := range holders {
				ids[i] = d.ID
			}
			findings = append(findings, Finding{
				Check: "invariant-b", Severity: SeverityCritical,
				BedID: bedID, DeviceID: ids[0],
				Detail: fmt.Sprintf("bed %s is held by %d devices: %v", bedID, len(holders), ids),
			})
		}
	}

	return findings
}

// HasCritical 审计结果中是否存在 critical 级发现
func HasCritical(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

func patientIDs(patients []*domain.Patient) string {
	ids := make([]string, len(patients))
	for i, p := range patients {
		ids[i] = p.ID
	}
	return fmt.Sprintf("%v", ids)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return "<none>"
	}
	return *s
}
