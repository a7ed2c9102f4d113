package usecase

import (
	"context"
	"errors"
	"strconv"

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
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrScheduleExists   = errors.New("a schedule already exists for this doctor, center and day")
	ErrNoValidSlots     = errors.New("time slots contain no valid times")
)

type WeeklyScheduleUsecase interface {
	CreateSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetDoctorSchedules(ctx context.Context, doctorID uuid.UUID, centerID *uuid.UUID) (*dto.ScheduleListResponse, error)
	UpdateSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, id int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, id int) error
}

type weeklyScheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.WeeklyScheduleRepository
	doctorRepo   repository.DoctorProfileRepository
	centerRepo   repository.MedicalCenterRepository
	auditService service.AuditService
}

func NewWeeklyScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.WeeklyScheduleRepository,
	doctorRepo repository.DoctorProfileRepository,
	centerRepo repository.MedicalCenterRepository,
	auditService service.AuditService,
) WeeklyScheduleUsecase {
	return &weeklyScheduleUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		doctorRepo:   doctorRepo,
		centerRepo:   centerRepo,
		auditService: auditService,
	}
}

// CreateSchedule adds one weekly template entry. Doctors create entries
// for themselves; admins may pass doctor_id to manage any doctor.
func (u *weeklyScheduleUsecase) CreateSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	doctorID := actorID
	if req.DoctorID != nil {
		if actorRoleID != entity.RoleIDAdmin && *req.DoctorID != actorID {
			return nil, ErrForbidden
		}
		doctorID = *req.DoctorID
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
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

	slots, err := buildTimeSlots(req.TimeSlots)
	if err != nil {
		return nil, err
	}

	schedule := &entity.WeeklySchedule{
		DoctorID:        doctorID,
		CenterID:        req.CenterID,
		DayOfWeek:       *req.DayOfWeek,
		IsAvailable:     true,
		TimeSlots:       slots,
		ConsultationFee: req.ConsultationFee,
	}
	if req.IsAvailable != nil {
		schedule.IsAvailable = *req.IsAvailable
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.scheduleRepo.Create(tx, schedule); err != nil {
		if isDuplicateKeyError(err, "day_of_week") {
			return nil, ErrScheduleExists
		}
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionScheduleCreate, "weekly_schedule", strconv.Itoa(schedule.ID), schedule); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *weeklyScheduleUsecase) GetDoctorSchedules(ctx context.Context, doctorID uuid.UUID, centerID *uuid.UUID) (*dto.ScheduleListResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	schedules, err := u.scheduleRepo.FindByDoctor(u.db.WithContext(ctx), doctorID, centerID)
	if err != nil {
		u.log.Warnf("Failed to find schedules for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ScheduleListResponse{
		Schedules: converter.SchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

func (u *weeklyScheduleUsecase) UpdateSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, id int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := u.findOwnedSchedule(ctx, actorID, actorRoleID, id)
	if err != nil {
		return nil, err
	}

	oldValue := *schedule

	if req.IsAvailable != nil {
		schedule.IsAvailable = *req.IsAvailable
	}
	if len(req.TimeSlots) > 0 {
		slots, err := buildTimeSlots(req.TimeSlots)
		if err != nil {
			return nil, err
		}
		schedule.TimeSlots = slots
	}
	if req.ConsultationFee != nil {
		schedule.ConsultationFee = *req.ConsultationFee
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.scheduleRepo.Update(tx, schedule); err != nil {
		u.log.Warnf("Failed to update schedule %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionScheduleUpdate, "weekly_schedule", strconv.Itoa(id), &oldValue, schedule); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *weeklyScheduleUsecase) DeleteSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, id int) error {
	schedule, err := u.findOwnedSchedule(ctx, actorID, actorRoleID, id)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.scheduleRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete schedule %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrScheduleNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionScheduleDelete, "weekly_schedule", strconv.Itoa(id), schedule); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *weeklyScheduleUsecase) findOwnedSchedule(ctx context.Context, actorID uuid.UUID, actorRoleID int, id int) (*entity.WeeklySchedule, error) {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find schedule %d: %+v", id, err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if actorRoleID != entity.RoleIDAdmin && schedule.DoctorID != actorID {
		return nil, ErrForbidden
	}
	return schedule, nil
}

// buildTimeSlots normalizes request slots into the stored shape,
// rejecting a set with no usable times.
func buildTimeSlots(requests []dto.TimeSlotRequest) (entity.TimeSlotList, error) {
	slots := make(entity.TimeSlotList, 0, len(requests))
	valid := 0
	for _, req := range requests {
		normalized := entity.NormalizeClockTime(req.StartTime)
		if normalized == "" {
			continue
		}
		slots = append(slots, entity.TimeSlot{
			StartTime: normalized,
			Available: req.Available,
		})
		valid++
	}
	if valid == 0 {
		return nil, ErrNoValidSlots
	}
	return slots, nil
}
