package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"clinic-directory/internal/directory"
	"clinic-directory/internal/domain/entity"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	clinics []entity.Clinic
}

func (s staticSource) FetchClinics(context.Context, entity.ClinicFilter) ([]entity.Clinic, error) {
	return s.clinics, nil
}

func (s staticSource) SearchClinics(context.Context, string) ([]entity.Clinic, error) {
	return s.clinics, nil
}

func (s staticSource) AddClinic(_ context.Context, c *entity.Clinic) (*entity.Clinic, error) {
	return c, nil
}

func loadedSession(t *testing.T, clinics []entity.Clinic) *directory.Session {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	session := directory.NewSession(staticSource{clinics: clinics}, log)
	require.NoError(t, session.Load(context.Background()))
	return session
}

func TestRenderList(t *testing.T) {
	t.Parallel()

	session := loadedSession(t, []entity.Clinic{
		{ClinicCode: "CLIN-001", Name: "Downtown Health", DoctorName: "Dr. Adams", Address: "1 Main St", Phone: "555-0101", Services: entity.NewServiceList("Dental", "X-Ray")},
		{ClinicCode: "CLIN-002", Name: "Uptown Clinic", DoctorName: "Dr. Brown", Address: "9 Hill Rd", Services: entity.NewServiceList("Cardiology")},
	})
	session.SetFilter(directory.KeyServices, "dent")

	var out bytes.Buffer
	require.NoError(t, renderList(&out, session))

	text := out.String()
	assert.Contains(t, text, "Filters: Services: dent")
	assert.Contains(t, text, "Downtown Health")
	assert.Contains(t, text, "Dental, X-Ray")
	assert.NotContains(t, text, "Uptown Clinic")
	assert.Contains(t, text, "1 of 2 clinics")
}

func TestRenderList_Empty(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, renderList(&out, loadedSession(t, nil)))
	assert.Equal(t, "No clinics yet. Add your first clinic to get started.\n", out.String())
}

func TestRenderList_NoMatches(t *testing.T) {
	t.Parallel()

	session := loadedSession(t, []entity.Clinic{{Name: "Downtown Health"}})
	session.SetFilter(directory.KeyClinicName, "uptown")

	var out bytes.Buffer
	require.NoError(t, renderList(&out, session))
	assert.Equal(t, "Filters: Clinic Name: uptown\nNo clinics match the current search.\n", out.String())
}

// recordingSource remembers what the list command asked the API for.
type recordingSource struct {
	staticSource
	filters []entity.ClinicFilter
	terms   []string
}

func (s *recordingSource) FetchClinics(ctx context.Context, filter entity.ClinicFilter) ([]entity.Clinic, error) {
	s.filters = append(s.filters, filter)
	return s.staticSource.FetchClinics(ctx, filter)
}

func (s *recordingSource) SearchClinics(ctx context.Context, term string) ([]entity.Clinic, error) {
	s.terms = append(s.terms, term)
	return s.staticSource.SearchClinics(ctx, term)
}

func TestLoadList(t *testing.T) {
	t.Parallel()

	seed := []entity.Clinic{
		{Name: "Downtown Health", Phone: "555-0101", Services: entity.NewServiceList("Dental")},
		{Name: "Uptown Clinic", Phone: "555-0102", Services: entity.NewServiceList("Cardiology")},
	}

	tests := []struct {
		name        string
		args        []string
		server      bool
		wantFilters []entity.ClinicFilter
		wantTerms   []string
		wantVisible int
	}{
		{
			name:        "local",
			args:        []string{"--phone", "555", "--services", "dent"},
			wantFilters: []entity.ClinicFilter{{}},
			wantVisible: 1,
		},
		{
			name:        "server narrows scalar filters",
			args:        []string{"--phone", "555", "--services", "dent"},
			server:      true,
			wantFilters: []entity.ClinicFilter{{Phone: "555"}},
			wantVisible: 1,
		},
		{
			name:        "server search",
			args:        []string{"--search", " uptown "},
			server:      true,
			wantTerms:   []string{"uptown"},
			wantVisible: 1,
		},
		{
			name:        "search ignored while filters are active",
			args:        []string{"--search", "uptown", "--name", "health"},
			server:      true,
			wantFilters: []entity.ClinicFilter{{Name: "health"}},
			wantVisible: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := &cobra.Command{Use: "list"}
			registerListFlags(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			source := &recordingSource{staticSource: staticSource{clinics: seed}}
			log, _ := logtest.NewNullLogger()
			session := directory.NewSession(source, log)
			require.NoError(t, applyListFlags(cmd, session))
			require.NoError(t, loadList(context.Background(), session, tt.server))

			assert.Equal(t, tt.wantFilters, source.filters)
			assert.Equal(t, tt.wantTerms, source.terms)
			assert.Len(t, session.Visible(), tt.wantVisible)
		})
	}
}

func TestCellText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", cellText([]string{""}))
	assert.Equal(t, "-", cellText(nil))
	assert.Equal(t, "Dental, X-Ray", cellText([]string{"Dental", "X-Ray"}))
}

func newAddCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "add"}
	registerAddFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestAddRequestFromFlags(t *testing.T) {
	t.Parallel()

	cmd := newAddCmd(t,
		"--clinic-id", " CLIN-009 ",
		"--name", "Kids First",
		"--doctor", "Dr. Lee",
		"--address", "3 Park Ave",
		"--phone", "555-0109",
		"--services", "Peds, , Vaccines",
	)
	req, err := addRequestFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, "CLIN-009", req.ClinicCode)
	assert.Equal(t, []string{"Peds", "Vaccines"}, []string(req.Services))
}

func TestAddRequestFromFlags_ReportsEveryMissingField(t *testing.T) {
	t.Parallel()

	_, err := addRequestFromFlags(newAddCmd(t, "--name", "Kids First", "--services", " , "))
	require.Error(t, err)

	msg := err.Error()
	for _, field := range []string{"clinic_code", "doctor_name", "address", "phone", "services"} {
		assert.Contains(t, msg, field)
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"y\n", true},
		{"no\n", false},
	}
	for _, tt := range tests {
		cmd := &cobra.Command{}
		cmd.SetIn(strings.NewReader(tt.input))
		cmd.SetOut(&bytes.Buffer{})
		got, err := confirm(cmd, "Continue?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.input)
	}
}
