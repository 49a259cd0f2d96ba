package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"clinic-directory/internal/delivery/dto"
	"clinic-directory/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clinicFixture struct {
	mock  sqlmock.Sqlmock
	repo  *fakeClinicRepo
	cache *fakeCache
	audit *fakeAuditService
	uc    ClinicUsecase
}

func newClinicFixture(t *testing.T) *clinicFixture {
	t.Helper()
	db, mock := setupMockDB(t)
	log, _ := newTestLogger()
	f := &clinicFixture{
		mock:  mock,
		repo:  &fakeClinicRepo{clinics: seedClinics()},
		cache: &fakeCache{},
		audit: &fakeAuditService{},
	}
	f.uc = NewClinicUsecase(db, log, f.repo, f.cache, f.audit)
	return f
}

func validCreateRequest() *dto.CreateClinicRequest {
	return &dto.CreateClinicRequest{
		ClinicCode: "CLIN-009",
		Name:       "Kids First",
		DoctorName: "Dr. Lee",
		Address:    "3 Park Ave",
		Phone:      "555-0109",
		Services:   dto.ServiceInput{"Peds"},
	}
}

func TestClinicUsecase_ListClinicsUsesCache(t *testing.T) {
	t.Parallel()

	f := newClinicFixture(t)
	ctx := context.Background()

	resp, err := f.uc.ListClinics(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, f.repo.findAll)
	assert.Equal(t, 1, f.cache.sets)

	resp, err = f.uc.ListClinics(ctx, &entity.ClinicFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, f.repo.findAll, "second unfiltered list is served from the cache")
}

func TestClinicUsecase_ListClinicsFilteredBypassesCache(t *testing.T) {
	t.Parallel()

	f := newClinicFixture(t)
	filter := &entity.ClinicFilter{Name: "uptown"}

	resp, err := f.uc.ListClinics(context.Background(), filter)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Uptown Clinic", resp.Clinics[0].Name)
	assert.Same(t, filter, f.repo.lastFilter)
	assert.Zero(t, f.cache.sets)
}

func TestClinicUsecase_CacheFailureFallsBackToDatabase(t *testing.T) {
	t.Parallel()

	f := newClinicFixture(t)
	f.cache.err = errors.New("redis down")

	resp, err := f.uc.ListClinics(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, f.repo.findAll)
}

func TestClinicUsecase_ListClinicsError(t *testing.T) {
	t.Parallel()

	f := newClinicFixture(t)
	f.repo.err = errors.New("connection reset")

	_, err := f.uc.ListClinics(context.Background(), nil)
	assert.EqualError(t, err, "connection reset")
	_, err = f.uc.ListClinics(context.Background(), &entity.ClinicFilter{Phone: "1"})
	assert.EqualError(t, err, "connection reset")
}

func TestClinicUsecase_SearchClinics(t *testing.T) {
	t.Parallel()

	f := newClinicFixture(t)
	resp, err := f.uc.SearchClinics(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, "main", f.repo.lastTerm)
	assert.Equal(t, 2, resp.Total)
}

func TestClinicUsecase_GetClinic(t *testing.T) {
	t.Parallel()

	f := newClinicFixture(t)
	want := f.repo.clinics[1]

	resp, err := f.uc.GetClinic(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Name, resp.Name)
	assert.Equal(t, []string{"Cardio"}, resp.Services)

	_, err = f.uc.GetClinic(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrClinicNotFound)
}

func TestClinicUsecase_CreateClinic(t *testing.T) {
	t.Parallel()

	f := newClinicFixture(t)
	f.cache.warm = true
	f.mock.ExpectBegin()
	f.mock.ExpectExec(regexp.QuoteMeta("SAVEPOINT clinic_audit")).WillReturnResult(sqlmock.NewResult(0, 0))
	f.mock.ExpectCommit()

	resp, err := f.uc.CreateClinic(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.NoError(t, f.mock.ExpectationsWereMet())

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "Kids First", resp.Name)
	assert.Equal(t, []string{"Peds"}, resp.Services)

	require.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	assert.Equal(t, entity.AuditActionClinicCreate, entry.action)
	assert.Equal(t, "clinic", entry.entity)
	assert.Equal(t, resp.ID.String(), entry.entityID)
	assert.Equal(t, resp, entry.value)

	assert.Equal(t, 1, f.cache.invalidated)
	assert.False(t, f.cache.warm)
}

func TestClinicUsecase_CreateClinicAuditFailureStillCommits(t *testing.T) {
	t.Parallel()

	f := newClinicFixture(t)
	f.audit.err = errors.New("audit table missing")
	f.mock.ExpectBegin()
	f.mock.ExpectExec(regexp.QuoteMeta("SAVEPOINT clinic_audit")).WillReturnResult(sqlmock.NewResult(0, 0))
	f.mock.ExpectExec(regexp.QuoteMeta("ROLLBACK TO SAVEPOINT clinic_audit")).WillReturnResult(sqlmock.NewResult(0, 0))
	f.mock.ExpectCommit()

	_, err := f.uc.CreateClinic(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestClinicUsecase_CreateClinicSavepointFailure(t *testing.T) {
	t.Parallel()

	f := newClinicFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectExec(regexp.QuoteMeta("SAVEPOINT clinic_audit")).WillReturnError(errors.New("connection reset"))
	f.mock.ExpectRollback()

	_, err := f.uc.CreateClinic(context.Background(), validCreateRequest())
	require.Error(t, err)
	require.NoError(t, f.mock.ExpectationsWereMet())
	assert.Empty(t, f.audit.entries)
	assert.Zero(t, f.cache.invalidated)
}

func TestClinicUsecase_AllClinicsSkipsStaleCacheWrite(t *testing.T) {
	t.Parallel()

	f := newClinicFixture(t)
	// A create commits while the list is being read.
	f.cache.onGeneration = func() { _ = f.cache.Invalidate(context.Background()) }

	clinics, err := f.uc.AllClinics(context.Background())
	require.NoError(t, err)
	assert.Len(t, clinics, 2)
	assert.Equal(t, 1, f.cache.sets)
	assert.False(t, f.cache.warm)
}

func TestClinicUsecase_CreateClinicDuplicateCode(t *testing.T) {
	t.Parallel()

	f := newClinicFixture(t)
	f.repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "idx_clinics_clinic_code"}
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.uc.CreateClinic(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrClinicCodeExists)
	require.NoError(t, f.mock.ExpectationsWereMet())
	assert.Empty(t, f.audit.entries)
	assert.Zero(t, f.cache.invalidated)
}

func TestClinicUsecase_CreateClinicOtherError(t *testing.T) {
	t.Parallel()

	f := newClinicFixture(t)
	f.repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "clinics_pkey"}
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.uc.CreateClinic(context.Background(), validCreateRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrClinicCodeExists)
}
