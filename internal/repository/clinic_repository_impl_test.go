package repository

import (
	"errors"
	"regexp"
	"testing"

	"clinic-directory/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"dent", "%dent%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c:\x`, `%c:\\x%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsPattern(tt.in), tt.in)
	}
}

func TestClinicRepository_FindAll(t *testing.T) {
	t.Parallel()

	db, mock := setupMockDB(t)
	repo := NewClinicRepository()

	rows := sqlmock.NewRows(clinicColumns)
	clinicRow(rows, uuid.NewString(), "CLIN-001", "Downtown Health", "Dr. Smith", "1 Main St", "555-0001", `["Dental"]`)
	clinicRow(rows, uuid.NewString(), "CLIN-002", "Uptown Clinic", "Dr. Chen", "9 High St", "555-0002", `[{"name":"Cardio"}]`)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "clinics" ORDER BY clinics.created_at ASC`)).
		WillReturnRows(rows)

	clinics, err := repo.FindAll(db, nil)
	require.NoError(t, err)
	require.Len(t, clinics, 2)
	assert.Equal(t, "Downtown Health", clinics[0].Name)
	assert.Equal(t, []string{"Dental"}, clinics[0].ServiceLabels())
	assert.Equal(t, []string{"Cardio"}, clinics[1].ServiceLabels())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClinicRepository_FindAllWithFilter(t *testing.T) {
	t.Parallel()

	db, mock := setupMockDB(t)
	repo := NewClinicRepository()

	rows := sqlmock.NewRows(clinicColumns)
	clinicRow(rows, uuid.NewString(), "CLIN-001", "Downtown Health", "Dr. Smith", "1 Main St", "555-0001", `["Dental"]`)
	mock.ExpectQuery(`clinics\.name ILIKE .+ AND clinics\.phone ILIKE .+ AND EXISTS \(SELECT 1 FROM jsonb_array_elements_text\(clinics\.services\)`).
		WithArgs("%health%", "%555%", "%dent%").
		WillReturnRows(rows)

	clinics, err := repo.FindAll(db, &entity.ClinicFilter{Name: "health", Phone: "555", Services: []string{"dent"}})
	require.NoError(t, err)
	require.Len(t, clinics, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClinicRepository_Search(t *testing.T) {
	t.Parallel()

	db, mock := setupMockDB(t)
	repo := NewClinicRepository()

	mock.ExpectQuery(`clinics\.clinic_code ILIKE .+ OR clinics\.name ILIKE .+ OR clinics\.doctor_name ILIKE .+ OR clinics\.address ILIKE .+ OR clinics\.phone ILIKE`).
		WithArgs("%main%", "%main%", "%main%", "%main%", "%main%").
		WillReturnRows(sqlmock.NewRows(clinicColumns))

	clinics, err := repo.Search(db, "  main ")
	require.NoError(t, err)
	assert.Empty(t, clinics)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClinicRepository_SearchEmptyTermListsAll(t *testing.T) {
	t.Parallel()

	db, mock := setupMockDB(t)
	repo := NewClinicRepository()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "clinics" ORDER BY clinics.created_at ASC`)).
		WillReturnRows(sqlmock.NewRows(clinicColumns))

	_, err := repo.Search(db, "   ")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClinicRepository_FindByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		db, mock := setupMockDB(t)
		id := uuid.New()

		rows := sqlmock.NewRows(clinicColumns)
		clinicRow(rows, id.String(), "CLIN-003", "Harbor Dental", "", "", "555-0103", `[]`)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "clinics" WHERE id = $1`)).WillReturnRows(rows)

		clinic, err := NewClinicRepository().FindByID(db, id)
		require.NoError(t, err)
		require.NotNil(t, clinic)
		assert.Equal(t, id, clinic.ID)
		assert.Empty(t, clinic.Services)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db, mock := setupMockDB(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "clinics" WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows(clinicColumns))

		clinic, err := NewClinicRepository().FindByID(db, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, clinic)
	})
}

func TestClinicRepository_Create(t *testing.T) {
	t.Parallel()

	db, mock := setupMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "clinics"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	clinic := &entity.Clinic{
		ClinicCode: "CLIN-009",
		Name:       "Kids First",
		DoctorName: "Dr. Lee",
		Address:    "3 Park Ave",
		Phone:      "555-0109",
		Services:   entity.NewServiceList("Peds"),
	}
	require.NoError(t, NewClinicRepository().Create(db, clinic))
	assert.Equal(t, id, clinic.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClinicRepository_CreateDuplicate(t *testing.T) {
	t.Parallel()

	db, mock := setupMockDB(t)
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_clinics_clinic_code"}
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "clinics"`)).WillReturnError(pgErr)

	err := NewClinicRepository().Create(db, &entity.Clinic{ClinicCode: "CLIN-001"})
	var target *pgconn.PgError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "23505", target.Code)
}
