package usecase

import (
	"context"

	"clinic-directory/internal/converter"
	"clinic-directory/internal/delivery/dto"
	"clinic-directory/internal/directory"
	"clinic-directory/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

type DirectoryUsecase interface {
	View(ctx context.Context, req *dto.DirectoryRequest) (*dto.DirectoryResponse, error)
}

type directoryUsecase struct {
	log    *logrus.Logger
	source directory.ClinicSource
}

func NewDirectoryUsecase(log *logrus.Logger, clinicUsecase ClinicUsecase) DirectoryUsecase {
	return &directoryUsecase{
		log:    log,
		source: &clinicSource{clinics: clinicUsecase},
	}
}

// View runs one directory session server-side: load everything, commit the
// requested filters and return the highlighted rows.
func (u *directoryUsecase) View(ctx context.Context, req *dto.DirectoryRequest) (*dto.DirectoryResponse, error) {
	session := directory.NewSession(u.source, u.log)
	if err := session.Load(ctx); err != nil {
		return nil, err
	}

	session.SetSearchText(req.Query)
	for name, value := range req.Filters {
		key, err := directory.ParseFilterKey(name)
		if err != nil {
			u.log.Warnf("Failed to parse filter key: %+v", err)
			return nil, err
		}
		session.SetFilter(key, value)
	}

	terms := session.ActiveTerms()
	if terms == nil {
		terms = []string{}
	}

	rows := session.Rows()
	return &dto.DirectoryResponse{
		Summary:     session.Summary(),
		SearchText:  session.SearchText(),
		ActiveTerms: terms,
		Filters:     session.Filters().Map(),
		Rows:        converter.RowsToResponses(rows),
		Total:       len(rows),
	}, nil
}

// clinicSource serves a directory session straight from the clinic usecase.
type clinicSource struct {
	clinics ClinicUsecase
}

func (s *clinicSource) FetchClinics(ctx context.Context, filter entity.ClinicFilter) ([]entity.Clinic, error) {
	if filter.IsEmpty() {
		return s.clinics.AllClinics(ctx)
	}
	resp, err := s.clinics.ListClinics(ctx, &filter)
	if err != nil {
		return nil, err
	}
	return responsesToClinics(resp.Clinics), nil
}

func (s *clinicSource) SearchClinics(ctx context.Context, term string) ([]entity.Clinic, error) {
	resp, err := s.clinics.SearchClinics(ctx, term)
	if err != nil {
		return nil, err
	}
	return responsesToClinics(resp.Clinics), nil
}

func (s *clinicSource) AddClinic(ctx context.Context, clinic *entity.Clinic) (*entity.Clinic, error) {
	resp, err := s.clinics.CreateClinic(ctx, converter.ClinicToCreateRequest(clinic))
	if err != nil {
		return nil, err
	}
	created := responsesToClinics([]dto.ClinicResponse{*resp})[0]
	return &created, nil
}

func responsesToClinics(responses []dto.ClinicResponse) []entity.Clinic {
	clinics := make([]entity.Clinic, len(responses))
	for i, r := range responses {
		clinics[i] = entity.Clinic{
			ID:         r.ID,
			ClinicCode: r.ClinicCode,
			Name:       r.Name,
			DoctorName: r.DoctorName,
			Address:    r.Address,
			Phone:      r.Phone,
			Services:   entity.NewServiceList(r.Services...),
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		}
	}
	return clinics
}
