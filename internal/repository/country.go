package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/guess-the-flag-bot/assets"
	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

var (
	ErrCountryNotFound  = errors.New("country not found")
	ErrInvalidCatalog   = errors.New("invalid country catalog")
	ErrDuplicateCountry = errors.New("duplicate country in catalog")
)

const minCatalogSize = entities.ChoicesPerRound

// CountryRepository provides access to the fixed flag catalog.
// The catalog is loaded once and never changes afterwards.
type CountryRepository struct {
	countries []entities.Country
	byName    map[string]entities.Country
}

// NewCountryRepository loads the catalog from path, or from the embedded
// default when path is empty.
func NewCountryRepository(path string) (*CountryRepository, error) {
	data := assets.Countries
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}

	countries, err := parseCatalog(data)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]entities.Country, len(countries))
	for _, c := range countries {
		byName[c.Name] = c
	}

	return &CountryRepository{
		countries: countries,
		byName:    byName,
	}, nil
}

// GetAll returns a copy of the catalog in its original order.
func (r *CountryRepository) GetAll() []entities.Country {
	return append([]entities.Country(nil), r.countries...)
}

// GetByName returns the catalog entry with the given name.
func (r *CountryRepository) GetByName(name string) (entities.Country, error) {
	c, ok := r.byName[name]
	if !ok {
		return entities.Country{}, fmt.Errorf("%w: %s", ErrCountryNotFound, name)
	}
	return c, nil
}

// Label returns the accessibility label for the named country.
func (r *CountryRepository) Label(name string) string {
	c, ok := r.byName[name]
	if !ok {
		return entities.UnknownFlagLabel
	}
	return c.Label()
}

func parseCatalog(data []byte) ([]entities.Country, error) {
	var wrapper struct {
		Countries []entities.Country `json:"countries"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal countries JSON: %w", err)
	}

	if len(wrapper.Countries) < minCatalogSize {
		return nil, fmt.Errorf("%w: expected at least %d countries, got %d",
			ErrInvalidCatalog, minCatalogSize, len(wrapper.Countries))
	}

	seen := make(map[string]struct{}, len(wrapper.Countries))
	for i, c := range wrapper.Countries {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: country #%d has no name", ErrInvalidCatalog, i+1)
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCountry, c.Name)
		}
		seen[c.Name] = struct{}{}
	}

	return wrapper.Countries, nil
}
