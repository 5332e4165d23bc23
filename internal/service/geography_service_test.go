package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

const geographySeedYAML = `
countries:
  - name: México
    iso_code: mx
    cities:
      - Cancún
      - Ciudad de México
      - Tulum
  - name: España
    iso_code: ES
    cities:
      - Madrid
      - Barcelona
`

func newGeographyFixture() (*GeographyService, *memoryCountryRepo, *memoryCityRepo) {
	countries := newMemoryCountryRepo()
	cities := newMemoryCityRepo()
	return NewGeographyService(countries, cities), countries, cities
}

func TestGeographyService_ImportYAML(t *testing.T) {
	svc, countries, cities := newGeographyFixture()
	ctx := context.Background()

	result, err := svc.ImportYAML(ctx, strings.NewReader(geographySeedYAML))
	if err != nil {
		t.Fatalf("ImportYAML returned error: %v", err)
	}
	if result.CountriesCreated != 2 {
		t.Fatalf("expected 2 countries created, got %d", result.CountriesCreated)
	}
	if result.CitiesCreated != 5 {
		t.Fatalf("expected 5 cities created, got %d", result.CitiesCreated)
	}

	mx, err := countries.FindByISOCode(ctx, "MX")
	if err != nil {
		t.Fatalf("MX should exist with uppercased iso code: %v", err)
	}
	mxCities, _ := cities.ListByCountry(ctx, mx.ID)
	if len(mxCities) != 3 {
		t.Fatalf("expected 3 mexican cities, got %d", len(mxCities))
	}
	for _, city := range mxCities {
		if city.Name == "Cancún" {
			if city.Slug == nil || *city.Slug != "cancun" {
				t.Fatalf("expected slug cancun, got %v", city.Slug)
			}
		}
	}
}

func TestGeographyService_ImportYAMLIsIdempotent(t *testing.T) {
	svc, _, _ := newGeographyFixture()
	ctx := context.Background()

	if _, err := svc.ImportYAML(ctx, strings.NewReader(geographySeedYAML)); err != nil {
		t.Fatalf("first import returned error: %v", err)
	}
	second, err := svc.ImportYAML(ctx, strings.NewReader(geographySeedYAML))
	if err != nil {
		t.Fatalf("second import returned error: %v", err)
	}
	if second.CountriesCreated != 0 || second.CitiesCreated != 0 {
		t.Fatalf("second import should create nothing, got %+v", second)
	}
	if second.Skipped != 5 {
		t.Fatalf("expected 5 skipped cities, got %d", second.Skipped)
	}
}

func TestGeographyService_ImportYAMLRejectsGarbage(t *testing.T) {
	svc, _, _ := newGeographyFixture()

	if _, err := svc.ImportYAML(context.Background(), strings.NewReader("{{nope")); err == nil {
		t.Fatalf("expected an error for malformed yaml")
	}
	if _, err := svc.ImportYAML(context.Background(), strings.NewReader("countries: []")); err == nil {
		t.Fatalf("expected an error for an empty seed")
	}
}

func TestGeographyService_CreateCountryValidation(t *testing.T) {
	svc, _, _ := newGeographyFixture()
	ctx := context.Background()

	if _, err := svc.CreateCountry(ctx, "", "MX"); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := svc.CreateCountry(ctx, "México", "MEX"); err == nil {
		t.Fatalf("expected error for three letter code")
	}

	created, err := svc.CreateCountry(ctx, " México ", "mx")
	if err != nil {
		t.Fatalf("CreateCountry returned error: %v", err)
	}
	if created.Name != "México" || created.ISOCode != "MX" {
		t.Fatalf("expected trimmed name and upper iso, got %+v", created)
	}

	if _, err := svc.CreateCountry(ctx, "México", "MX"); !errors.Is(err, ErrCountryExists) {
		t.Fatalf("expected ErrCountryExists, got %v", err)
	}
}

func TestGeographyService_SearchCitiesEmptyQuery(t *testing.T) {
	svc, _, _ := newGeographyFixture()

	results, err := svc.SearchCities(context.Background(), "   ", 10)
	if err != nil {
		t.Fatalf("SearchCities returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("blank query must not hit the repository, got %d rows", len(results))
	}
}

// --- fakes ---

type memoryCountryRepo struct {
	items map[uuid.UUID]*domain.Country
}

func newMemoryCountryRepo() *memoryCountryRepo {
	return &memoryCountryRepo{items: make(map[uuid.UUID]*domain.Country)}
}

func (m *memoryCountryRepo) Create(_ context.Context, country *domain.Country) (*domain.Country, error) {
	for _, existing := range m.items {
		if existing.ISOCode == country.ISOCode {
			return nil, fakeUniqueViolation()
		}
	}
	stored := *country
	stored.ID = uuid.New()
	m.items[stored.ID] = &stored
	cloned := stored
	return &cloned, nil
}

func (m *memoryCountryRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Country, error) {
	country, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cloned := *country
	return &cloned, nil
}

func (m *memoryCountryRepo) FindByISOCode(_ context.Context, isoCode string) (*domain.Country, error) {
	for _, country := range m.items {
		if country.ISOCode == isoCode {
			cloned := *country
			return &cloned, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryCountryRepo) List(_ context.Context) ([]domain.Country, error) {
	out := []domain.Country{}
	for _, country := range m.items {
		out = append(out, *country)
	}
	return out, nil
}

func (m *memoryCountryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

type memoryCityRepo struct {
	items map[uuid.UUID]*domain.City
}

func newMemoryCityRepo() *memoryCityRepo {
	return &memoryCityRepo{items: make(map[uuid.UUID]*domain.City)}
}

func (m *memoryCityRepo) Create(_ context.Context, city *domain.City) (*domain.City, error) {
	stored := *city
	stored.ID = uuid.New()
	m.items[stored.ID] = &stored
	cloned := stored
	return &cloned, nil
}

func (m *memoryCityRepo) Update(_ context.Context, city *domain.City) (*domain.City, error) {
	if _, ok := m.items[city.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	stored := *city
	m.items[city.ID] = &stored
	cloned := stored
	return &cloned, nil
}

func (m *memoryCityRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.City, error) {
	city, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cloned := *city
	return &cloned, nil
}

func (m *memoryCityRepo) ListByCountry(_ context.Context, countryID uuid.UUID) ([]domain.City, error) {
	out := []domain.City{}
	for _, city := range m.items {
		if city.CountryID == countryID {
			out = append(out, *city)
		}
	}
	return out, nil
}

func (m *memoryCityRepo) Search(_ context.Context, query string, limit int) ([]domain.CityWithCountry, error) {
	out := []domain.CityWithCountry{}
	for _, city := range m.items {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(city.Name), strings.ToLower(query)) {
			out = append(out, domain.CityWithCountry{City: *city})
		}
	}
	return out, nil
}

func (m *memoryCityRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}
