package usecase

import (
	"context"
	"errors"

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
	ErrCenterNotFound      = errors.New("medical center not found")
	ErrCenterAlreadyExists = errors.New("medical center name already exists")
)

// MedicalCenterUsecase manages the center registry. Writes are admin-only;
// the router enforces that.
type MedicalCenterUsecase interface {
	CreateCenter(ctx context.Context, actorID uuid.UUID, req *dto.CreateCenterRequest) (*dto.CenterResponse, error)
	GetCenter(ctx context.Context, id uuid.UUID) (*dto.CenterResponse, error)
	GetAllCenters(ctx context.Context) (*dto.CenterListResponse, error)
	UpdateCenter(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateCenterRequest) (*dto.CenterResponse, error)
	DeleteCenter(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
}

type medicalCenterUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	centerRepo   repository.MedicalCenterRepository
	auditService service.AuditService
}

func NewMedicalCenterUsecase(db *gorm.DB, log *logrus.Logger, centerRepo repository.MedicalCenterRepository, auditService service.AuditService) MedicalCenterUsecase {
	return &medicalCenterUsecase{
		db:           db,
		log:          log,
		centerRepo:   centerRepo,
		auditService: auditService,
	}
}

func (u *medicalCenterUsecase) CreateCenter(ctx context.Context, actorID uuid.UUID, req *dto.CreateCenterRequest) (*dto.CenterResponse, error) {
	center := &entity.MedicalCenter{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: true,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.centerRepo.Create(tx, center); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrCenterAlreadyExists
		}
		u.log.Warnf("Failed to create center: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionCenterCreate, "medical_center", center.ID.String(), center); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.CenterToResponse(center), nil
}

func (u *medicalCenterUsecase) GetCenter(ctx context.Context, id uuid.UUID) (*dto.CenterResponse, error) {
	center, err := u.centerRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find center %s: %+v", id, err)
		return nil, err
	}
	if center == nil {
		return nil, ErrCenterNotFound
	}

	return converter.CenterToResponse(center), nil
}

func (u *medicalCenterUsecase) GetAllCenters(ctx context.Context) (*dto.CenterListResponse, error) {
	centers, err := u.centerRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list centers: %+v", err)
		return nil, err
	}

	return &dto.CenterListResponse{
		Centers: converter.CentersToResponses(centers),
		Total:   len(centers),
	}, nil
}

func (u *medicalCenterUsecase) UpdateCenter(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateCenterRequest) (*dto.CenterResponse, error) {
	center, err := u.centerRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find center %s: %+v", id, err)
		return nil, err
	}
	if center == nil {
		return nil, ErrCenterNotFound
	}

	oldValue := *center

	if req.Name != "" {
		center.Name = req.Name
	}
	if req.Address != "" {
		center.Address = req.Address
	}
	if req.Phone != "" {
		center.Phone = req.Phone
	}
	if req.Email != "" {
		center.Email = req.Email
	}
	if req.IsActive != nil {
		center.IsActive = *req.IsActive
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.centerRepo.Update(tx, center); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrCenterAlreadyExists
		}
		u.log.Warnf("Failed to update center %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionCenterUpdate, "medical_center", id.String(), &oldValue, center); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.CenterToResponse(center), nil
}

func (u *medicalCenterUsecase) DeleteCenter(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	center, err := u.centerRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find center %s: %+v", id, err)
		return err
	}
	if center == nil {
		return ErrCenterNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.centerRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete center %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrCenterNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionCenterDelete, "medical_center", id.String(), center); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
