package database

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr    error
	downErr  error
	steps    []int
	downRuns int
}

func (f *fakeMigrator) Up() error { return f.upErr }
func (f *fakeMigrator) Down() error {
	f.downRuns++
	return f.downErr
}
func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return f.downErr
}
func (f *fakeMigrator) Version() (uint, bool, error) { return 2, false, nil }
func (f *fakeMigrator) Close() (error, error)        { return nil, nil }

func TestMigrationSource_ListsEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	src, err := MigrationSource()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)
}

func TestMigrateUp(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MigrateUp(&fakeMigrator{}))
	assert.NoError(t, MigrateUp(&fakeMigrator{upErr: migrate.ErrNoChange}))

	err := MigrateUp(&fakeMigrator{upErr: errors.New("dirty database")})
	assert.ErrorContains(t, err, "dirty database")
}

func TestMigrateDown(t *testing.T) {
	t.Parallel()

	all := &fakeMigrator{}
	require.NoError(t, MigrateDown(all, 0))
	assert.Equal(t, 1, all.downRuns)
	assert.Empty(t, all.steps)

	some := &fakeMigrator{downErr: migrate.ErrNoChange}
	require.NoError(t, MigrateDown(some, 2))
	assert.Equal(t, []int{-2}, some.steps)
}
