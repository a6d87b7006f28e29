package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

func TestNewCountryRepository_EmbeddedCatalog(t *testing.T) {
	repo, err := NewCountryRepository("")
	require.NoError(t, err)

	all := repo.GetAll()
	require.Len(t, all, 12)

	want := []string{"Estonia", "France", "Germany", "Ireland", "Italy", "Monaco",
		"Nigeria", "Poland", "Russia", "Spain", "UK", "US"}
	for i, c := range all {
		assert.Equal(t, want[i], c.Name)
		assert.NotEmpty(t, c.Emoji, c.Name)
	}
}

func TestCountryRepository_Labels(t *testing.T) {
	repo, err := NewCountryRepository("")
	require.NoError(t, err)

	assert.Equal(t, entities.UnknownFlagLabel, repo.Label("Monaco"))
	assert.Equal(t, entities.UnknownFlagLabel, repo.Label("Atlantis"))
	assert.Equal(t,
		"Flag with two horizontal stripes of equal size. Top stripe white, bottom stripe red",
		repo.Label("Poland"))
}

func TestCountryRepository_GetByName(t *testing.T) {
	repo, err := NewCountryRepository("")
	require.NoError(t, err)

	c, err := repo.GetByName("Italy")
	require.NoError(t, err)
	assert.Equal(t, "🇮🇹", c.Emoji)

	_, err = repo.GetByName("Atlantis")
	assert.ErrorIs(t, err, ErrCountryNotFound)
}

func TestCountryRepository_GetAllReturnsCopy(t *testing.T) {
	repo, err := NewCountryRepository("")
	require.NoError(t, err)

	all := repo.GetAll()
	all[0].Name = "Changed"

	assert.Equal(t, "Estonia", repo.GetAll()[0].Name)
}

func TestNewCountryRepository_FromFile(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		wantLen int
	}{
		{
			name:    "valid",
			body:    `{"countries":[{"name":"A"},{"name":"B"},{"name":"C"}]}`,
			wantLen: 3,
		},
		{
			name:    "too small",
			body:    `{"countries":[{"name":"A"},{"name":"B"}]}`,
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "missing name",
			body:    `{"countries":[{"name":"A"},{"name":""},{"name":"C"}]}`,
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "duplicate",
			body:    `{"countries":[{"name":"A"},{"name":"B"},{"name":"A"}]}`,
			wantErr: ErrDuplicateCountry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "countries.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			repo, err := NewCountryRepository(path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, repo.GetAll(), tt.wantLen)
		})
	}
}

func TestNewCountryRepository_BadInput(t *testing.T) {
	_, err := NewCountryRepository(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = NewCountryRepository(path)
	assert.Error(t, err)
}
