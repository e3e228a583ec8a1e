package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"mysql", MySQL},
		{"MariaDB", MySQL},
		{"sqlite", SQLite},
		{"sqlite3", SQLite},
		{" postgres ", Postgres},
		{"PostgreSQL", Postgres},
		{"pg", Postgres},
		{"pgx", Postgres},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}

	_, err := Normalize("oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"oracle"`)
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, "sqlite", DriverName(SQLite))
	assert.Equal(t, "postgres", DriverName(Postgres))
	assert.Equal(t, "mysql", DriverName(MySQL))
}

func TestDefaultSchema(t *testing.T) {
	assert.Equal(t, "main", DefaultSchema(SQLite))
	assert.Equal(t, "public", DefaultSchema(Postgres))
	assert.Empty(t, DefaultSchema(MySQL))
}
