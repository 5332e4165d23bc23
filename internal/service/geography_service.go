package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/ports"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
)

var (
	ErrCountryNotFound = errors.New("country not found")
	ErrCityNotFound    = errors.New("city not found")
	ErrCountryExists   = errors.New("country already exists")
)

const maxImportBytes = 1 << 20 // 1 MiB of YAML is plenty for a geography seed

type GeographyService struct {
	countries ports.CountryRepository
	cities    ports.CityRepository
}

func NewGeographyService(countries ports.CountryRepository, cities ports.CityRepository) *GeographyService {
	return &GeographyService{countries: countries, cities: cities}
}

func (s *GeographyService) CreateCountry(ctx context.Context, name, isoCode string) (*domain.Country, error) {
	name = strings.TrimSpace(name)
	isoCode = strings.ToUpper(strings.TrimSpace(isoCode))
	if name == "" {
		return nil, errors.New("country name is required")
	}
	if len(isoCode) != 2 {
		return nil, errors.New("iso code must be two letters")
	}

	country, err := s.countries.Create(ctx, &domain.Country{Name: name, ISOCode: isoCode})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCountryExists
		}
		return nil, err
	}
	return country, nil
}

func (s *GeographyService) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return s.countries.List(ctx)
}

func (s *GeographyService) DeleteCountry(ctx context.Context, id uuid.UUID) error {
	if err := s.countries.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrCountryNotFound
		}
		return err
	}
	return nil
}

func (s *GeographyService) CreateCity(ctx context.Context, countryID uuid.UUID, name string) (*domain.City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("city name is required")
	}
	if _, err := s.countries.FindByID(ctx, countryID); err != nil {
		if isNotFound(err) {
			return nil, ErrCountryNotFound
		}
		return nil, err
	}

	slug := util.Slugify(name)
	city := &domain.City{CountryID: countryID, Name: name}
	if slug != "" {
		city.Slug = &slug
	}
	return s.cities.Create(ctx, city)
}

func (s *GeographyService) ListCities(ctx context.Context, countryID uuid.UUID) ([]domain.City, error) {
	if _, err := s.countries.FindByID(ctx, countryID); err != nil {
		if isNotFound(err) {
			return nil, ErrCountryNotFound
		}
		return nil, err
	}
	return s.cities.ListByCountry(ctx, countryID)
}

func (s *GeographyService) SearchCities(ctx context.Context, query string, limit int) ([]domain.CityWithCountry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.CityWithCountry{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.cities.Search(ctx, query, limit)
}

func (s *GeographyService) DeleteCity(ctx context.Context, id uuid.UUID) error {
	if err := s.cities.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrCityNotFound
		}
		return err
	}
	return nil
}

type geographySeed struct {
	Countries []struct {
		Name    string   `json:"name"`
		ISOCode string   `json:"iso_code"`
		Cities  []string `json:"cities"`
	} `json:"countries"`
}

type ImportResult struct {
	CountriesCreated int `json:"countries_created"`
	CitiesCreated    int `json:"cities_created"`
	Skipped          int `json:"skipped"`
}

// ImportYAML loads a countries-and-cities seed file. Countries already
// present by ISO code are reused; their listed cities are still created.
func (s *GeographyService) ImportYAML(ctx context.Context, r io.Reader) (*ImportResult, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxImportBytes))
	if err != nil {
		return nil, err
	}

	var seed geographySeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("invalid geography file: %w", err)
	}
	if len(seed.Countries) == 0 {
		return nil, errors.New("geography file lists no countries")
	}

	result := &ImportResult{}
	for _, entry := range seed.Countries {
		isoCode := strings.ToUpper(strings.TrimSpace(entry.ISOCode))
		name := strings.TrimSpace(entry.Name)
		if name == "" || len(isoCode) != 2 {
			result.Skipped++
			continue
		}

		country, err := s.countries.FindByISOCode(ctx, isoCode)
		if err != nil {
			if !isNotFound(err) {
				return nil, err
			}
			country, err = s.countries.Create(ctx, &domain.Country{Name: name, ISOCode: isoCode})
			if err != nil {
				return nil, err
			}
			result.CountriesCreated++
		}

		existing, err := s.cities.ListByCountry(ctx, country.ID)
		if err != nil {
			return nil, err
		}
		known := make(map[string]bool, len(existing))
		for _, city := range existing {
			known[strings.ToLower(city.Name)] = true
		}

		for _, cityName := range entry.Cities {
			cityName = strings.TrimSpace(cityName)
			if cityName == "" || known[strings.ToLower(cityName)] {
				result.Skipped++
				continue
			}
			slug := util.Slugify(cityName)
			city := &domain.City{CountryID: country.ID, Name: cityName}
			if slug != "" {
				city.Slug = &slug
			}
			if _, err := s.cities.Create(ctx, city); err != nil {
				return nil, err
			}
			known[strings.ToLower(cityName)] = true
			result.CitiesCreated++
		}
	}
	return result, nil
}
