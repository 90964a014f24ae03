package database

import (
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/migrations"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@localhost:5432/kintai?sslmode=disable", "pgx5://u:p@localhost:5432/kintai?sslmode=disable"},
		{"postgresql://u@db/kintai", "pgx5://u@db/kintai"},
		{"pgx5://u@db/kintai", "pgx5://u@db/kintai"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, MigrateURL(tt.dsn))
		})
	}
}

func TestMigrationsSourceReadsEmbeddedFiles(t *testing.T) {
	src, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, identifier, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "init", identifier)
}
