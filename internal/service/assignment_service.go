package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"smarthospital-client/internal/client"
	"smarthospital-client/internal/domain"
	"smarthospital-client/internal/repository"

	"go.uber.org/zap"
)

// AssignmentService 分配一致性引擎
//
// 在床位、设备、患者三类资源之间编排复合状态迁移。后端没有跨资源事务，
// 每一步都是独立的 REST 调用，因此这里显式区分"关键步骤"（失败即中止）
// 与"尽力而为步骤"（失败只记录为警告），并在必要时做补偿。
//
// 维护的约束：
//   A. 设备绑定床位 ⇒ 必须先绑定床位所在病房
//   B. 同一床位同时最多绑定一台监护仪
//   C. 设备关联患者 ⇒ 设备已绑定床位，且床位占用者就是该患者
type AssignmentService interface {
	AssignPatientToBed(ctx context.Context, req AssignPatientToBedRequest) (*AssignPatientToBedResponse, error)
	DischargePatientFromBed(ctx context.Context, req DischargePatientFromBedRequest) (*DischargePatientFromBedResponse, error)
	AssignMonitorToBed(ctx context.Context, req AssignMonitorToBedRequest) (*AssignMonitorToBedResponse, error)
	UnassignMonitorFromBed(ctx context.Context, req UnassignMonitorFromBedRequest) (*UnassignMonitorFromBedResponse, error)
	AddMonitorToRoom(ctx context.Context, req AddMonitorToRoomRequest) (*AddMonitorToRoomResponse, error)
	RemoveMonitorFromRoom(ctx context.Context, req RemoveMonitorFromRoomRequest) (*RemoveMonitorFromRoomResponse, error)
	AssignPatientToMonitor(ctx context.Context, req AssignPatientToMonitorRequest) (*AssignPatientToMonitorResponse, error)
	UnassignPatientFromMonitor(ctx context.Context, req UnassignPatientFromMonitorRequest) (*UnassignPatientFromMonitorResponse, error)
}

type assignmentService struct {
	bedsRepo     repository.BedsRepository
	devicesRepo  repository.DevicesRepository
	patientsRepo repository.PatientsRepository
	roomsRepo    repository.RoomsRepository
	logger       *zap.Logger
}

// NewAssignmentService 创建分配一致性引擎
func NewAssignmentService(
	bedsRepo repository.BedsRepository,
	devicesRepo repository.DevicesRepository,
	patientsRepo repository.PatientsRepository,
	roomsRepo repository.RoomsRepository,
	logger *zap.Logger,
) AssignmentService {
	return &assignmentService{
		bedsRepo:     bedsRepo,
		devicesRepo:  devicesRepo,
		patientsRepo: patientsRepo,
		roomsRepo:    roomsRepo,
		logger:       logger,
	}
}

// AssignPatientToBedRequest 患者入住床位请求
type AssignPatientToBedRequest struct {
	BedID     string
	PatientID string
}

// AssignPatientToBedResponse 患者入住床位响应
// MonitorAssigned=false 且无 Warnings 表示房间内确实没有可用监护仪，不算失败
type AssignPatientToBedResponse struct {
	Success         bool
	MonitorAssigned bool     // 是否自动绑定了监护仪
	MonitorID       string   // 自动绑定的监护仪 ID
	Warnings        []string // 尽力而为步骤的失败记录
}

// AssignPatientToBed 患者入住床位
// 步骤 2 成功后即视为操作成功；步骤 3 失败不回滚（床位可以合法地没有监护仪）
func (s *assignmentService) AssignPatientToBed(ctx context.Context, req AssignPatientToBedRequest) (*AssignPatientToBedResponse, error) {
	// 1. 前置检查：床位必须可用
	bed, err := s.bedsRepo.GetBed(ctx, req.BedID)
	if err != nil {
		return nil, fmt.Errorf("get bed: %w", err)
	}
	if !bed.IsAvailable() {
		return nil, &client.ConflictError{
			Message: fmt.Sprintf("bed %s is not available (status: %s)", bed.ID, bed.Status),
		}
	}

	// 2. 关键步骤：后端绑定患者与床位
	if err := s.bedsRepo.AssignPatient(ctx, req.BedID, req.PatientID); err != nil {
		return nil, fmt.Errorf("assign patient to bed: %w", err)
	}
	s.logger.Info("Patient assigned to bed",
		zap.String("bed_id", req.BedID),
		zap.String("patient_id", req.PatientID),
	)

	resp := &AssignPatientToBedResponse{Success: true}

	// 3. 尽力而为：自动绑定房间内空闲的监护仪
	monitorID, err := s.autoAssignMonitor(ctx, bed)
	if err != nil {
		s.logger.Warn("Auto-assign monitor failed",
			zap.String("bed_id", req.BedID),
			zap.Error(err),
		)
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("auto-assign monitor: %v", err))
		return resp, nil
	}
	if monitorID != "" {
		resp.MonitorAssigned = true
		resp.MonitorID = monitorID
	}
	return resp, nil
}

// autoAssignMonitor 自动为床位挑选监护仪
// 选择规则：床位所在房间内、类型为监护仪、尚未绑定床位的设备，取枚举序第一台。
// 后端不保证枚举顺序，选择结果是非确定性的，属已知限制。
// 返回空 ID 且无错误表示无需绑定（已有监护仪）或房间内没有空闲监护仪。
func (s *assignmentService) autoAssignMonitor(ctx context.Context, bed *domain.Bed) (string, error) {
	devices, err := s.devicesRepo.ListDevices(ctx)
	if err != nil {
		return "", fmt.Errorf("list devices: %w", err)
	}

	// 并发场景下重新确认：床位已有监护仪则不再绑定
	for _, d := range devices {
		if d.BoundToBed(bed.ID) {
			return "", nil
		}
	}

	for _, d := range devices {
		if !d.IsMonitor() || d.DeviceInfo.BedID != nil {
			continue
		}
		if d.DeviceInfo.RoomID == nil || *d.DeviceInfo.RoomID != bed.RoomID {
			continue
		}

		info := d.DeviceInfo
		info.RoomID = &bed.RoomID
		info.BedID = &bed.ID
		if err := s.devicesRepo.UpdateDeviceInfo(ctx, d.ID, info); err != nil {
			return "", fmt.Errorf("update device info: %w", err)
		}
		s.logger.Info("Monitor auto-assigned to bed",
			zap.String("bed_id", bed.ID),
			zap.String("device_id", d.ID),
		)
		return d.ID, nil
	}

	// 房间内没有空闲监护仪，不算错误
	return "", nil
}

// DischargePatientFromBedRequest 患者出院请求
type DischargePatientFromBedRequest struct {
	BedID     string
	PatientID string
}

// DischargePatientFromBedResponse 患者出院响应
type DischargePatientFromBedResponse struct {
	Success  bool
	Warnings []string
}

// DischargePatientFromBed 患者出院（级联操作，上游需用户显式确认）
//
// 步骤顺序刻意如此：先解除监护仪与患者的关联，再出院，最后解绑床位上的
// 监护仪——保证任何时刻都不会观察到监护仪仍持有一个已不在床上的患者。
// 出院（步骤 2）是唯一的关键步骤；步骤 2 失败时步骤 1 的效果作为无害残留
// 保留（被出院的患者提前与监护仪解除关联不构成约束违反）。
func (s *assignmentService) DischargePatientFromBed(ctx context.Context, req DischargePatientFromBedRequest) (*DischargePatientFromBedResponse, error) {
	resp := &DischargePatientFromBedResponse{}

	// 1. 尽力而为：解除所有监护仪与该患者的关联（保留 bedId/roomId）
	devices, err := s.devicesRepo.ListDevices(ctx)
	if err != nil {
		s.logger.Warn("List devices for patient unlink failed",
			zap.String("patient_id", req.PatientID),
			zap.Error(err),
		)
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("list devices: %v", err))
	} else {
		for _, d := range devices {
			if !d.LinkedToPatient(req.PatientID) {
				continue
			}
			info := d.DeviceInfo
			info.CurrentPatientID = nil
			if err := s.devicesRepo.UpdateDeviceInfo(ctx, d.ID, info); err != nil {
				s.logger.Warn("Unlink patient from monitor failed",
					zap.String("device_id", d.ID),
					zap.String("patient_id", req.PatientID),
					zap.Error(err),
				)
				resp.Warnings = append(resp.Warnings, fmt.Sprintf("unlink patient from monitor %s: %v", d.ID, err))
			}
		}
	}

	// 2. 关键步骤：出院。失败则中止，后续步骤不得执行
	if err := s.bedsRepo.DischargePatient(ctx, req.BedID, req.PatientID); err != nil {
		return nil, fmt.Errorf("discharge patient from bed: %w", err)
	}
	s.logger.Info("Patient discharged from bed",
		zap.String("bed_id", req.BedID),
		zap.String("patient_id", req.PatientID),
	)

	// 3. 尽力而为：解绑该床位上的监护仪（清 bedId 与 currentPatientId，保留 roomId）
	devices, err = s.devicesRepo.ListDevices(ctx)
	if err != nil {
		s.logger.Warn("List devices for bed unlink failed",
			zap.String("bed_id", req.BedID),
			zap.Error(err),
		)
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("list devices: %v", err))
	} else {
		for _, d := range devices {
			if !d.BoundToBed(req.BedID) {
				continue
			}
			info := d.DeviceInfo
			info.BedID = nil
			info.CurrentPatientID = nil
			if err := s.devicesRepo.UpdateDeviceInfo(ctx, d.ID, info); err != nil {
				s.logger.Warn("Unassign monitor from bed failed",
					zap.String("device_id", d.ID),
					zap.String("bed_id", req.BedID),
					zap.Error(err),
				)
				resp.Warnings = append(resp.Warnings, fmt.Sprintf("unassign monitor %s from bed: %v", d.ID, err))
			}
		}
	}

	resp.Success = true
	return resp, nil
}

// AssignMonitorToBedRequest 手动绑定监护仪到床位请求
type AssignMonitorToBedRequest struct {
	BedID     string
	MonitorID string
}

// AssignMonitorToBedResponse 手动绑定监护仪到床位响应
type AssignMonitorToBedResponse struct {
	Success bool
}

// AssignMonitorToBed 手动绑定监护仪到床位
// 三项前置检查全部在任何写操作之前完成，每一项都是独立可报告的冲突
func (s *assignmentService) AssignMonitorToBed(ctx context.Context, req AssignMonitorToBedRequest) (*AssignMonitorToBedResponse, error) {
	// 1. 读取床位与监护仪
	bed, err := s.bedsRepo.GetBed(ctx, req.BedID)
	if err != nil {
		return nil, fmt.Errorf("get bed: %w", err)
	}
	monitor, err := s.devicesRepo.GetDevice(ctx, req.MonitorID)
	if err != nil {
		if isNotFound(err) {
			return nil, &client.NotFoundError{Resource: "monitor", ID: req.MonitorID}
		}
		return nil, fmt.Errorf("get monitor: %w", err)
	}
	devices, err := s.devicesRepo.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	// 2a. 约束 B：床位不得已有其他监护仪
	for _, d := range devices {
		if d.ID != monitor.ID && d.BoundToBed(bed.ID) {
			return nil, &client.ConflictError{
				Message: fmt.Sprintf("bed %s already has monitor %s", bed.ID, d.ID),
			}
		}
	}

	// 2b. 监护仪不得已绑定其他床位
	if monitor.DeviceInfo.BedID != nil && *monitor.DeviceInfo.BedID != bed.ID {
		return nil, &client.ConflictError{
			Message: fmt.Sprintf("monitor %s already assigned to bed %s", monitor.ID, *monitor.DeviceInfo.BedID),
		}
	}

	// 2c. 约束 A：监护仪必须已在床位所在的房间
	if monitor.DeviceInfo.RoomID == nil || *monitor.DeviceInfo.RoomID != bed.RoomID {
		return nil, &client.ConflictError{
			Message: fmt.Sprintf("monitor %s not in room %s", monitor.ID, bed.RoomID),
		}
	}

	// 3. 单资源更新，无需补偿
	info := monitor.DeviceInfo
	info.RoomID = &bed.RoomID
	info.BedID = &bed.ID
	if err := s.devicesRepo.UpdateDeviceInfo(ctx, monitor.ID, info); err != nil {
		return nil, fmt.Errorf("update device info: %w", err)
	}
	s.logger.Info("Monitor assigned to bed",
		zap.String("bed_id", bed.ID),
		zap.String("device_id", monitor.ID),
	)
	return &AssignMonitorToBedResponse{Success: true}, nil
}

// UnassignMonitorFromBedRequest 解绑床位监护仪请求
type UnassignMonitorFromBedRequest struct {
	BedID string
}

// UnassignMonitorFromBedResponse 解绑床位监护仪响应
type UnassignMonitorFromBedResponse struct {
	Success   bool
	MonitorID string
}

// UnassignMonitorFromBed 解绑床位上的监护仪
// 必须同时清除 currentPatientId：脱离床位的监护仪不能再声称关联患者（约束 C）
func (s *assignmentService) UnassignMonitorFromBed(ctx context.Context, req UnassignMonitorFromBedRequest) (*UnassignMonitorFromBedResponse, error) {
	devices, err := s.devicesRepo.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	var monitor *domain.Device
	for _, d := range devices {
		if d.BoundToBed(req.BedID) {
			monitor = d
			break
		}
	}
	if monitor == nil {
		return nil, &client.NotFoundError{Resource: "monitor for bed", ID: req.BedID}
	}

	info := monitor.DeviceInfo
	info.BedID = nil
	info.CurrentPatientID = nil
	if err := s.devicesRepo.UpdateDeviceInfo(ctx, monitor.ID, info); err != nil {
		return nil, fmt.Errorf("update device info: %w", err)
	}
	s.logger.Info("Monitor unassigned from bed",
		zap.String("bed_id", req.BedID),
		zap.String("device_id", monitor.ID),
	)
	return &UnassignMonitorFromBedResponse{Success: true, MonitorID: monitor.ID}, nil
}

// AddMonitorToRoomRequest 监护仪入驻病房请求
type AddMonitorToRoomRequest struct {
	MonitorID string
	RoomID    string
}

// AddMonitorToRoomResponse 监护仪入驻病房响应
type AddMonitorToRoomResponse struct {
	Success bool
}

// AddMonitorToRoom 监护仪入驻病房
// 换房时级联清除 bedId/currentPatientId：原床位属于旧房间（约束 A）
func (s *assignmentService) AddMonitorToRoom(ctx context.Context, req AddMonitorToRoomRequest) (*AddMonitorToRoomResponse, error) {
	room, err := s.roomsRepo.GetRoom(ctx, req.RoomID)
	if err != nil {
		if isNotFound(err) {
			return nil, &client.NotFoundError{Resource: "room", ID: req.RoomID}
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	monitor, err := s.devicesRepo.GetDevice(ctx, req.MonitorID)
	if err != nil {
		if isNotFound(err) {
			return nil, &client.NotFoundError{Resource: "monitor", ID: req.MonitorID}
		}
		return nil, fmt.Errorf("get monitor: %w", err)
	}

	info := monitor.DeviceInfo
	if info.RoomID == nil || *info.RoomID != room.ID {
		info.BedID = nil
		info.CurrentPatientID = nil
	}
	info.RoomID = &room.ID
	if err := s.devicesRepo.UpdateDeviceInfo(ctx, monitor.ID, info); err != nil {
		return nil, fmt.Errorf("update device info: %w", err)
	}
	s.logger.Info("Monitor added to room",
		zap.String("room_id", room.ID),
		zap.String("device_id", monitor.ID),
	)
	return &AddMonitorToRoomResponse{Success: true}, nil
}

// RemoveMonitorFromRoomRequest 监护仪撤出病房请求
type RemoveMonitorFromRoomRequest struct {
	MonitorID string
}

// RemoveMonitorFromRoomResponse 监护仪撤出病房响应
type RemoveMonitorFromRoomResponse struct {
	Success bool
}

// RemoveMonitorFromRoom 监护仪撤出病房
// 级联清除 bedId/currentPatientId：约束 A 禁止无房间的床位绑定
func (s *assignmentService) RemoveMonitorFromRoom(ctx context.Context, req RemoveMonitorFromRoomRequest) (*RemoveMonitorFromRoomResponse, error) {
	monitor, err := s.devicesRepo.GetDevice(ctx, req.MonitorID)
	if err != nil {
		if isNotFound(err) {
			return nil, &client.NotFoundError{Resource: "monitor", ID: req.MonitorID}
		}
		return nil, fmt.Errorf("get monitor: %w", err)
	}

	info := monitor.DeviceInfo
	info.RoomID = nil
	info.BedID = nil
	info.CurrentPatientID = nil
	if err := s.devicesRepo.UpdateDeviceInfo(ctx, monitor.ID, info); err != nil {
		return nil, fmt.Errorf("update device info: %w", err)
	}
	s.logger.Info("Monitor removed from room",
		zap.String("device_id", monitor.ID),
	)
	return &RemoveMonitorFromRoomResponse{Success: true}, nil
}

// AssignPatientToMonitorRequest 监护仪关联患者请求
type AssignPatientToMonitorRequest struct {
	DeviceID  string
	PatientID string
}

// AssignPatientToMonitorResponse 监护仪关联患者响应
type AssignPatientToMonitorResponse struct {
	Success bool
}

// AssignPatientToMonitor 监护仪关联患者（约束 C 的实施点）
// 全部校验通过后才执行写操作；任一不匹配都返回指明冲突房间/床位的校验错误
func (s *assignmentService) AssignPatientToMonitor(ctx context.Context, req AssignPatientToMonitorRequest) (*AssignPatientToMonitorResponse, error) {
	patient, err := s.patientsRepo.GetPatient(ctx, req.PatientID)
	if err != nil {
		if isNotFound(err) {
			return nil, &client.NotFoundError{Resource: "patient", ID: req.PatientID}
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	monitor, err := s.devicesRepo.GetDevice(ctx, req.DeviceID)
	if err != nil {
		if isNotFound(err) {
			return nil, &client.NotFoundError{Resource: "monitor", ID: req.DeviceID}
		}
		return nil, fmt.Errorf("get monitor: %w", err)
	}

	info := monitor.DeviceInfo
	if info.RoomID == nil {
		return nil, &client.ValidationError{
			Message: fmt.Sprintf("monitor %s is not assigned to any room", monitor.ID),
		}
	}
	if info.BedID == nil {
		return nil, &client.ValidationError{
			Message: fmt.Sprintf("monitor %s is not attached to any bed", monitor.ID),
		}
	}
	if !patient.IsAdmitted() {
		return nil, &client.ValidationError{
			Message: fmt.Sprintf("patient %s is not assigned to a bed", patient.ID),
		}
	}
	if *info.RoomID != *patient.RoomID {
		return nil, &client.ValidationError{
			Message: fmt.Sprintf("monitor %s is in room %s but patient %s is in room %s",
				monitor.ID, *info.RoomID, patient.ID, *patient.RoomID),
		}
	}
	if *info.BedID != *patient.BedID {
		return nil, &client.ValidationError{
			Message: fmt.Sprintf("monitor %s is attached to bed %s but patient %s occupies bed %s",
				monitor.ID, *info.BedID, patient.ID, *patient.BedID),
		}
	}

	if err := s.devicesRepo.AssignPatient(ctx, monitor.ID, patient.ID); err != nil {
		return nil, fmt.Errorf("assign patient to monitor: %w", err)
	}
	s.logger.Info("Patient linked to monitor",
		zap.String("device_id", monitor.ID),
		zap.String("patient_id", patient.ID),
	)
	return &AssignPatientToMonitorResponse{Success: true}, nil
}

// UnassignPatientFromMonitorRequest 解除监护仪患者关联请求
type UnassignPatientFromMonitorRequest struct {
	DeviceID string
}

// UnassignPatientFromMonitorResponse 解除监护仪患者关联响应
type UnassignPatientFromMonitorResponse struct {
	Success bool
}

// UnassignPatientFromMonitor 解除监护仪与患者的关联（只清 currentPatientId）
func (s *assignmentService) UnassignPatientFromMonitor(ctx context.Context, req UnassignPatientFromMonitorRequest) (*UnassignPatientFromMonitorResponse, error) {
	if err := s.devicesRepo.UnassignPatient(ctx, req.DeviceID); err != nil {
		return nil, fmt.Errorf("unassign patient from monitor: %w", err)
	}
	s.logger.Info("Patient unlinked from monitor",
		zap.String("device_id", req.DeviceID),
	)
	return &UnassignPatientFromMonitorResponse{Success: true}, nil
}

// isNotFound 后端 404 判定
func isNotFound(err error) bool {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}
	var nfErr *client.NotFoundError
	return errors.As(err, &nfErr)
}
