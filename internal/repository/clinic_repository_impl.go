package repository

import (
	"errors"
	"strings"

	"clinic-directory/internal/domain/entity"
	domainRepo "clinic-directory/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// likeEscaper makes user input match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(v string) string {
	return "%" + likeEscaper.Replace(v) + "%"
}

type clinicRepository struct{}

func NewClinicRepository() domainRepo.ClinicRepository {
	return &clinicRepository{}
}

func (r *clinicRepository) Create(db *gorm.DB, clinic *entity.Clinic) error {
	return db.Create(clinic).Error
}

func (r *clinicRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := db.Where("id = ?", id).First(&clinic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) FindAll(db *gorm.DB, filter *entity.ClinicFilter) ([]entity.Clinic, error) {
	var clinics []entity.Clinic
	query := db.Model(&entity.Clinic{})

	if filter != nil {
		if filter.ClinicCode != "" {
			query = query.Where("clinics.clinic_code ILIKE ?", containsPattern(filter.ClinicCode))
		}
		if filter.Name != "" {
			query = query.Where("clinics.name ILIKE ?", containsPattern(filter.Name))
		}
		if filter.DoctorName != "" {
			query = query.Where("clinics.doctor_name ILIKE ?", containsPattern(filter.DoctorName))
		}
		if filter.Address != "" {
			query = query.Where("clinics.address ILIKE ?", containsPattern(filter.Address))
		}
		if filter.Phone != "" {
			query = query.Where("clinics.phone ILIKE ?", containsPattern(filter.Phone))
		}
		for _, service := range filter.Services {
			query = query.Where(
				"EXISTS (SELECT 1 FROM jsonb_array_elements_text(clinics.services) AS s(label) WHERE s.label ILIKE ?)",
				containsPattern(service),
			)
		}
	}

	err := query.Order("clinics.created_at ASC").Find(&clinics).Error
	if err != nil {
		return nil, err
	}
	return clinics, nil
}

func (r *clinicRepository) Search(db *gorm.DB, term string) ([]entity.Clinic, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.FindAll(db, nil)
	}

	pattern := containsPattern(term)
	var clinics []entity.Clinic
	err := db.Model(&entity.Clinic{}).
		Where("clinics.clinic_code ILIKE ? OR clinics.name ILIKE ? OR clinics.doctor_name ILIKE ? OR clinics.address ILIKE ? OR clinics.phone ILIKE ?",
			pattern, pattern, pattern, pattern, pattern).
		Order("clinics.created_at ASC").
		Find(&clinics).Error
	if err != nil {
		return nil, err
	}
	return clinics, nil
}
