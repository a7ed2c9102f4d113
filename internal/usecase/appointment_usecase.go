package usecase

import (
	"context"
	"errors"
	"time"

	"careslot/internal/converter"
	"careslot/internal/delivery/dto"
	"careslot/internal/domain/entity"
	"careslot/internal/domain/repository"
	"careslot/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrSlotTaken               = errors.New("the selected slot is already booked")
	ErrSlotNotOffered          = errors.New("the selected time is not in the doctor's schedule")
	ErrDoctorNotAvailable      = errors.New("doctor is not available on the selected date")
	ErrInvalidStatusTransition = errors.New("appointment status does not allow this transition")
	ErrInvalidTimeFormat       = errors.New("invalid time format, use HH:MM")
	ErrForbidden               = errors.New("you are not allowed to perform this action")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, actorID uuid.UUID, actorRoleID int, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AppointmentListResponse, error)
	ConfirmAppointment(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID) (*dto.AppointmentResponse, error)
	CompleteAppointment(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID) (*dto.AppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	scheduleRepo    repository.WeeklyScheduleRepository
	doctorRepo      repository.DoctorProfileRepository
	patientRepo     repository.PatientProfileRepository
	centerRepo      repository.MedicalCenterRepository
	auditService    service.AuditService
	slotCache       *service.SlotCacheService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	scheduleRepo repository.WeeklyScheduleRepository,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	centerRepo repository.MedicalCenterRepository,
	auditService service.AuditService,
	slotCache *service.SlotCacheService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		centerRepo:      centerRepo,
		auditService:    auditService,
		slotCache:       slotCache,
	}
}

// centersConflict decides whether two appointments at the same
// (doctor, date, time) collide. Only two distinct, explicit centers may
// coexist; a NULL center collides with everything.
func centersConflict(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return true
	}
	return *a == *b
}

// CreateAppointment books a slot for a patient. Patients may only book
// for themselves; admins may book on behalf of any patient. The slot
// must exist in the doctor's weekly template and be free of active
// appointments at the same center. The database backs the in-code
// conflict check with a partial unique index, so a concurrent double
// booking surfaces as a duplicate key error.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, actorID uuid.UUID, actorRoleID int, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if actorRoleID != entity.RoleIDAdmin && req.PatientID != actorID {
		return nil, ErrForbidden
	}

	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	timeHHMM := entity.NormalizeClockTime(req.AppointmentTime)
	if timeHHMM == "" {
		return nil, ErrInvalidTimeFormat
	}

	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.CenterID != nil {
		center, err := u.centerRepo.FindByID(u.db.WithContext(ctx), *req.CenterID)
		if err != nil {
			u.log.Warnf("Failed to find center %s: %+v", *req.CenterID, err)
			return nil, err
		}
		if center == nil || !center.IsActive {
			return nil, ErrCenterNotFound
		}
	}

	entry, err := u.scheduleRepo.FindForDay(u.db.WithContext(ctx), req.DoctorID, int(date.Weekday()), req.CenterID)
	if err != nil {
		u.log.Warnf("Failed to find schedule entry for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if entry == nil || !entry.IsAvailable {
		return nil, ErrDoctorNotAvailable
	}
	if !slotOffered(entry, timeHHMM) {
		return nil, ErrSlotNotOffered
	}

	existing, err := u.appointmentRepo.FindActiveAtSlot(u.db.WithContext(ctx), req.DoctorID, date, timeHHMM)
	if err != nil {
		u.log.Warnf("Failed to check slot occupancy: %+v", err)
		return nil, err
	}
	for i := range existing {
		if centersConflict(existing[i].CenterID, req.CenterID) {
			return nil, ErrSlotTaken
		}
	}

	appointment := &entity.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		CenterID:        req.CenterID,
		AppointmentDate: date,
		AppointmentTime: timeHHMM,
		Status:          entity.AppointmentStatusScheduled,
		AppointmentType: entity.AppointmentTypeDefault,
		Symptoms:        req.Symptoms,
		DurationMinutes: entity.DefaultDurationMinutes,
		ConsultationFee: entry.ConsultationFee,
	}
	if req.AppointmentType != "" {
		appointment.AppointmentType = req.AppointmentType
	}
	if req.DurationMinutes != nil {
		appointment.DurationMinutes = *req.DurationMinutes
	}
	if req.ConsultationFee != nil {
		appointment.ConsultationFee = *req.ConsultationFee
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		// The partial unique index catches the race the read above cannot
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrSlotTaken
		}
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateDay(ctx, req.DoctorID, req.AppointmentDate)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRoleID != entity.RoleIDAdmin && appointment.PatientID != actorID && appointment.DoctorID != actorID {
		return nil, ErrForbidden
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AppointmentListResponse, error) {
	var day time.Time
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		day = parsed
	}

	appointments, err := u.appointmentRepo.FindByDoctorAndDate(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// ConfirmAppointment moves scheduled -> confirmed. Doctor-owned action.
func (u *appointmentUsecase) ConfirmAppointment(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actorID, id, entity.AppointmentStatusConfirmed, "", entity.AuditActionAppointmentConfirm, func(a *entity.Appointment) bool {
		return actorRoleID == entity.RoleIDAdmin || a.DoctorID == actorID
	})
}

// CompleteAppointment moves confirmed -> completed. Doctor-owned action.
func (u *appointmentUsecase) CompleteAppointment(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actorID, id, entity.AppointmentStatusCompleted, "", entity.AuditActionAppointmentComplete, func(a *entity.Appointment) bool {
		return actorRoleID == entity.RoleIDAdmin || a.DoctorID == actorID
	})
}

// CancelAppointment releases the slot. The patient, the doctor, or an
// admin may cancel, and a reason is always recorded.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actorID, id, entity.AppointmentStatusCancelled, req.Reason, entity.AuditActionAppointmentCancel, func(a *entity.Appointment) bool {
		return actorRoleID == entity.RoleIDAdmin || a.PatientID == actorID || a.DoctorID == actorID
	})
}

// MarkNoShow releases the slot for a patient who did not attend.
func (u *appointmentUsecase) MarkNoShow(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actorID, id, entity.AppointmentStatusNoShow, "", entity.AuditActionAppointmentNoShow, func(a *entity.Appointment) bool {
		return actorRoleID == entity.RoleIDAdmin || a.DoctorID == actorID
	})
}

// RescheduleAppointment moves an active appointment to a new slot,
// re-running the full availability and conflict checks for the target.
func (u *appointmentUsecase) RescheduleAppointment(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRoleID != entity.RoleIDAdmin && appointment.PatientID != actorID && appointment.DoctorID != actorID {
		return nil, ErrForbidden
	}
	if !appointment.OccupiesSlot() {
		return nil, ErrInvalidStatusTransition
	}

	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	timeHHMM := entity.NormalizeClockTime(req.AppointmentTime)
	if timeHHMM == "" {
		return nil, ErrInvalidTimeFormat
	}

	entry, err := u.scheduleRepo.FindForDay(u.db.WithContext(ctx), appointment.DoctorID, int(date.Weekday()), appointment.CenterID)
	if err != nil {
		u.log.Warnf("Failed to find schedule entry for doctor %s: %+v", appointment.DoctorID, err)
		return nil, err
	}
	if entry == nil || !entry.IsAvailable {
		return nil, ErrDoctorNotAvailable
	}
	if !slotOffered(entry, timeHHMM) {
		return nil, ErrSlotNotOffered
	}

	existing, err := u.appointmentRepo.FindActiveAtSlot(u.db.WithContext(ctx), appointment.DoctorID, date, timeHHMM)
	if err != nil {
		u.log.Warnf("Failed to check slot occupancy: %+v", err)
		return nil, err
	}
	for i := range existing {
		if existing[i].ID != appointment.ID && centersConflict(existing[i].CenterID, appointment.CenterID) {
			return nil, ErrSlotTaken
		}
	}

	oldDate := appointment.AppointmentDate.Format("2006-01-02")

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	oldValue := map[string]string{
		"appointment_date": oldDate,
		"appointment_time": entity.NormalizeClockTime(appointment.AppointmentTime),
	}
	newValue := map[string]string{
		"appointment_date": req.AppointmentDate,
		"appointment_time": timeHHMM,
	}

	if err := u.appointmentRepo.UpdateSlot(tx, appointment.ID, date, timeHHMM); err != nil {
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to reschedule appointment %s: %+v", appointment.ID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentReschedule, "appointment", appointment.ID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateDay(ctx, appointment.DoctorID, oldDate)
	u.slotCache.InvalidateDay(ctx, appointment.DoctorID, req.AppointmentDate)

	appointment.AppointmentDate = date
	appointment.AppointmentTime = timeHHMM
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) findAppointment(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// transition applies one step of the status state machine. The update is
// conditional on the status the actor saw, so two concurrent transitions
// cannot both win; the loser gets ErrInvalidStatusTransition.
func (u *appointmentUsecase) transition(
	ctx context.Context,
	actorID uuid.UUID,
	id uuid.UUID,
	toStatus entity.AppointmentStatus,
	reason string,
	auditAction string,
	allowed func(*entity.Appointment) bool,
) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !allowed(appointment) {
		return nil, ErrForbidden
	}
	if !appointment.Status.CanTransitionTo(toStatus) {
		return nil, ErrInvalidStatusTransition
	}

	fromStatus := appointment.Status

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatus(tx, id, fromStatus, toStatus, reason)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidStatusTransition
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, auditAction, "appointment", id.String(),
		map[string]string{"status": string(fromStatus)},
		map[string]string{"status": string(toStatus)},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Every transition starts from an active status, so occupancy may
	// have changed either way
	u.slotCache.InvalidateDay(ctx, appointment.DoctorID, appointment.AppointmentDate.Format("2006-01-02"))

	appointment.Status = toStatus
	if reason != "" {
		appointment.CancellationReason = reason
	}
	return converter.AppointmentToResponse(appointment), nil
}

// slotOffered reports whether the template entry contains the normalized
// time as an open slot.
func slotOffered(entry *entity.WeeklySchedule, timeHHMM string) bool {
	for _, t := range entry.OpenSlotTimes() {
		if t == timeHHMM {
			return true
		}
	}
	return false
}
