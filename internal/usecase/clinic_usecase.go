package usecase

import (
	"context"
	"errors"

	"clinic-directory/internal/converter"
	"clinic-directory/internal/delivery/dto"
	"clinic-directory/internal/domain/entity"
	"clinic-directory/internal/domain/repository"
	"clinic-directory/internal/infrastructure/cache"
	"clinic-directory/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrClinicNotFound   = errors.New("clinic not found")
	ErrClinicCodeExists = errors.New("clinic code already exists")
)

const auditSavePoint = "clinic_audit"

type ClinicUsecase interface {
	ListClinics(ctx context.Context, filter *entity.ClinicFilter) (*dto.ClinicListResponse, error)
	SearchClinics(ctx context.Context, term string) (*dto.ClinicListResponse, error)
	GetClinic(ctx context.Context, id uuid.UUID) (*dto.ClinicResponse, error)
	CreateClinic(ctx context.Context, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error)
	// AllClinics returns the unfiltered collection, from the cache when warm.
	AllClinics(ctx context.Context) ([]entity.Clinic, error)
}

type clinicUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	clinicRepo   repository.ClinicRepository
	clinicCache  cache.ClinicCache
	auditService service.AuditService
}

func NewClinicUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	clinicCache cache.ClinicCache,
	auditService service.AuditService,
) ClinicUsecase {
	return &clinicUsecase{
		db:           db,
		log:          log,
		clinicRepo:   clinicRepo,
		clinicCache:  clinicCache,
		auditService: auditService,
	}
}

func (u *clinicUsecase) ListClinics(ctx context.Context, filter *entity.ClinicFilter) (*dto.ClinicListResponse, error) {
	var (
		clinics []entity.Clinic
		err     error
	)
	if filter.IsEmpty() {
		clinics, err = u.AllClinics(ctx)
	} else {
		clinics, err = u.clinicRepo.FindAll(u.db.WithContext(ctx), filter)
		if err != nil {
			u.log.Warnf("Failed to find clinics: %+v", err)
		}
	}
	if err != nil {
		return nil, err
	}

	return toListResponse(clinics), nil
}

func (u *clinicUsecase) SearchClinics(ctx context.Context, term string) (*dto.ClinicListResponse, error) {
	clinics, err := u.clinicRepo.Search(u.db.WithContext(ctx), term)
	if err != nil {
		u.log.Warnf("Failed to search clinics: %+v", err)
		return nil, err
	}

	return toListResponse(clinics), nil
}

func (u *clinicUsecase) GetClinic(ctx context.Context, id uuid.UUID) (*dto.ClinicResponse, error) {
	clinic, err := u.clinicRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find clinic: %+v", err)
		return nil, err
	}
	if clinic == nil {
		u.log.Warnf("Failed to find clinic: %+v", ErrClinicNotFound)
		return nil, ErrClinicNotFound
	}

	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) CreateClinic(ctx context.Context, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	clinic := converter.CreateClinicRequestToEntity(req)
	if err := u.clinicRepo.Create(tx, clinic); err != nil {
		u.log.Warnf("Failed to create clinic: %+v", err)
		if isDuplicateKeyError(err, "clinic_code") {
			return nil, ErrClinicCodeExists
		}
		return nil, err
	}

	response := converter.ClinicToResponse(clinic)

	// Audit log - create clinic. A failed audit insert is rolled back to the
	// savepoint so the clinic still commits.
	if err := tx.SavePoint(auditSavePoint).Error; err != nil {
		u.log.Warnf("Failed to create savepoint: %+v", err)
		return nil, err
	}
	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionClinicCreate, entity.AuditEntityClinic, clinic.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		if err := tx.RollbackTo(auditSavePoint).Error; err != nil {
			u.log.Warnf("Failed to roll back audit log: %+v", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if err := u.clinicCache.Invalidate(ctx); err != nil {
		u.log.Warnf("Failed to invalidate clinic cache: %+v", err)
	}

	return response, nil
}

func (u *clinicUsecase) AllClinics(ctx context.Context) ([]entity.Clinic, error) {
	clinics, ok, err := u.clinicCache.GetAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to read clinic cache: %+v", err)
	}
	if ok {
		return clinics, nil
	}

	generation, genErr := u.clinicCache.Generation(ctx)
	if genErr != nil {
		u.log.Warnf("Failed to read clinic cache generation: %+v", genErr)
	}

	clinics, err = u.clinicRepo.FindAll(u.db.WithContext(ctx), nil)
	if err != nil {
		u.log.Warnf("Failed to find clinics: %+v", err)
		return nil, err
	}

	if genErr == nil {
		if err := u.clinicCache.SetAll(ctx, generation, clinics); err != nil && !errors.Is(err, cache.ErrGenerationChanged) {
			u.log.Warnf("Failed to fill clinic cache: %+v", err)
		}
	}
	return clinics, nil
}

func toListResponse(clinics []entity.Clinic) *dto.ClinicListResponse {
	return &dto.ClinicListResponse{
		Clinics: converter.ClinicsToResponses(clinics),
		Total:   len(clinics),
	}
}
