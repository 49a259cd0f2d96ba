package usecase

import (
	"context"
	"strings"
	"testing"

	"clinic-directory/internal/domain/entity"
	"clinic-directory/internal/infrastructure/cache"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func newTestLogger() (*logrus.Logger, *logtest.Hook) {
	return logtest.NewNullLogger()
}

type fakeClinicRepo struct {
	clinics    []entity.Clinic
	err        error
	createErr  error
	findAll    int
	lastFilter *entity.ClinicFilter
	lastTerm   string
	created    []*entity.Clinic
}

func (r *fakeClinicRepo) Create(_ *gorm.DB, clinic *entity.Clinic) error {
	if r.createErr != nil {
		return r.createErr
	}
	clinic.ID = uuid.New()
	r.created = append(r.created, clinic)
	r.clinics = append(r.clinics, *clinic)
	return nil
}

func (r *fakeClinicRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Clinic, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.clinics {
		if r.clinics[i].ID == id {
			c := r.clinics[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeClinicRepo) FindAll(_ *gorm.DB, filter *entity.ClinicFilter) ([]entity.Clinic, error) {
	r.findAll++
	r.lastFilter = filter
	if r.err != nil {
		return nil, r.err
	}
	out := make([]entity.Clinic, 0, len(r.clinics))
	for _, c := range r.clinics {
		if filter == nil || filter.Name == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Name)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClinicRepo) Search(_ *gorm.DB, term string) ([]entity.Clinic, error) {
	r.lastTerm = term
	if r.err != nil {
		return nil, r.err
	}
	return r.clinics, nil
}

type fakeCache struct {
	clinics     []entity.Clinic
	warm        bool
	err         error
	sets        int
	invalidated int
	generation  int64
	// onGeneration runs after the generation is read, before the list is loaded.
	onGeneration func()
}

func (c *fakeCache) GetAll(context.Context) ([]entity.Clinic, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	return c.clinics, c.warm, nil
}

func (c *fakeCache) Generation(context.Context) (int64, error) {
	gen := c.generation
	if c.onGeneration != nil {
		c.onGeneration()
	}
	return gen, c.err
}

func (c *fakeCache) SetAll(_ context.Context, generation int64, clinics []entity.Clinic) error {
	c.sets++
	if c.err != nil {
		return c.err
	}
	if generation != c.generation {
		return cache.ErrGenerationChanged
	}
	c.clinics, c.warm = clinics, true
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.invalidated++
	c.generation++
	c.clinics, c.warm = nil, false
	return c.err
}

type auditEntry struct {
	action   string
	entity   string
	entityID string
	value    interface{}
}

type fakeAuditService struct {
	entries []auditEntry
	err     error
}

func (s *fakeAuditService) LogCreate(_ context.Context, _ *gorm.DB, action, entityName, entityID string, newValue interface{}) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, auditEntry{action, entityName, entityID, newValue})
	return nil
}

func seedClinics() []entity.Clinic {
	return []entity.Clinic{
		{ID: uuid.New(), ClinicCode: "CLIN-001", Name: "Downtown Health", DoctorName: "Dr. Smith", Address: "1 Main St", Phone: "555-0001", Services: entity.NewServiceList("Dental")},
		{ID: uuid.New(), ClinicCode: "CLIN-002", Name: "Uptown Clinic", DoctorName: "Dr. Chen", Address: "9 High St", Phone: "555-0002", Services: entity.NewServiceList("Cardio")},
	}
}
