// Package directory is the administrative CRUD surface for companies,
// providers and services — the records the availability engine reads.
package directory

import (
	"context"
	"errors"
	"time"

	"schedula/database/repository"
	companyRepo "schedula/database/repository/company"
	providerRepo "schedula/database/repository/provider"
	serviceRepo "schedula/database/repository/service"
	"schedula/models"
	"schedula/services/scheduling"
	"schedula/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type Service interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	UpdateCompany(ctx context.Context, company *models.Company) error
	UpdateCompanyWorkingHours(ctx context.Context, id string, hours []models.WorkingHour) error

	CreateProvider(ctx context.Context, provider *models.Provider) error
	GetProvider(ctx context.Context, id string) (*models.Provider, error)
	UpdateProvider(ctx context.Context, provider *models.Provider) error
	UpdateProviderWorkingHours(ctx context.Context, id string, hours []models.WorkingHour) error
	DeleteProvider(ctx context.Context, id string) error

	CreateService(ctx context.Context, svc *models.Service) error
	GetService(ctx context.Context, id string) (*models.Service, error)
	GetCompanyServices(ctx context.Context, companyID string) ([]models.Service, error)
	UpdateService(ctx context.Context, svc *models.Service) error
	DeleteService(ctx context.Context, id string) error
}

type DefaultDirectoryService struct {
	Companies companyRepo.Repository
	Providers providerRepo.Repository
	Services  serviceRepo.Repository

	// Cache may be nil. Provider-scoped writes invalidate that provider's
	// cached availability; company-scoped schedule changes are left to the
	// cache TTL since the affected provider set is unknown here.
	Cache *redis.Client
}

func NewDirectoryService(companies companyRepo.Repository, providers providerRepo.Repository, services serviceRepo.Repository, cache *redis.Client) *DefaultDirectoryService {
	return &DefaultDirectoryService{Companies: companies, Providers: providers, Services: services, Cache: cache}
}

func (s *DefaultDirectoryService) CreateCompany(ctx context.Context, company *models.Company) error {
	if company.Name == "" {
		return scheduling.ValidationError{Field: "name", Message: "company name is required"}
	}
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now
	return s.Companies.Create(ctx, company)
}

func (s *DefaultDirectoryService) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	company, err := s.Companies.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "company", id)
	}
	return company, nil
}

func (s *DefaultDirectoryService) UpdateCompany(ctx context.Context, company *models.Company) error {
	company.UpdatedAt = time.Now()
	return mapNotFound(s.Companies.Update(ctx, company), "company", company.ID)
}

func (s *DefaultDirectoryService) UpdateCompanyWorkingHours(ctx context.Context, id string, hours []models.WorkingHour) error {
	if err := validateWorkingHours(hours); err != nil {
		return err
	}
	return mapNotFound(s.Companies.UpdateWorkingHours(ctx, id, hours), "company", id)
}

func (s *DefaultDirectoryService) CreateProvider(ctx context.Context, provider *models.Provider) error {
	if provider.Name == "" {
		return scheduling.ValidationError{Field: "name", Message: "provider name is required"}
	}
	if provider.CompanyID != "" {
		if _, err := s.Companies.GetByID(ctx, provider.CompanyID); err != nil {
			return mapNotFound(err, "company", provider.CompanyID)
		}
	}
	if err := validateWorkingHours(provider.WorkingHours); err != nil {
		return err
	}
	if provider.ID == "" {
		provider.ID = uuid.NewString()
	}
	now := time.Now()
	provider.CreatedAt = now
	provider.UpdatedAt = now
	return s.Providers.Create(ctx, provider)
}

func (s *DefaultDirectoryService) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	provider, err := s.Providers.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "provider", id)
	}
	return provider, nil
}

func (s *DefaultDirectoryService) UpdateProvider(ctx context.Context, provider *models.Provider) error {
	if err := validateWorkingHours(provider.WorkingHours); err != nil {
		return err
	}
	provider.UpdatedAt = time.Now()
	if err := mapNotFound(s.Providers.Update(ctx, provider), "provider", provider.ID); err != nil {
		return err
	}
	utils.InvalidateAvailability(ctx, s.Cache, provider.ID)
	return nil
}

func (s *DefaultDirectoryService) UpdateProviderWorkingHours(ctx context.Context, id string, hours []models.WorkingHour) error {
	if err := validateWorkingHours(hours); err != nil {
		return err
	}
	if err := mapNotFound(s.Providers.UpdateWorkingHours(ctx, id, hours), "provider", id); err != nil {
		return err
	}
	utils.InvalidateAvailability(ctx, s.Cache, id)
	return nil
}

func (s *DefaultDirectoryService) DeleteProvider(ctx context.Context, id string) error {
	if err := mapNotFound(s.Providers.Delete(ctx, id), "provider", id); err != nil {
		return err
	}
	utils.InvalidateAvailability(ctx, s.Cache, id)
	return nil
}

func (s *DefaultDirectoryService) CreateService(ctx context.Context, svc *models.Service) error {
	if svc.Name == "" {
		return scheduling.ValidationError{Field: "name", Message: "service name is required"}
	}
	if svc.Duration <= 0 {
		return scheduling.ValidationError{Field: "duration", Message: "duration must be positive"}
	}
	if svc.BufferDuration < 0 {
		return scheduling.ValidationError{Field: "bufferDuration", Message: "buffer duration cannot be negative"}
	}
	if svc.CompanyID != "" {
		if _, err := s.Companies.GetByID(ctx, svc.CompanyID); err != nil {
			return mapNotFound(err, "company", svc.CompanyID)
		}
	}
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	return s.Services.Create(ctx, svc)
}

func (s *DefaultDirectoryService) GetService(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "service", id)
	}
	return svc, nil
}

func (s *DefaultDirectoryService) GetCompanyServices(ctx context.Context, companyID string) ([]models.Service, error) {
	return s.Services.GetByCompanyID(ctx, companyID)
}

func (s *DefaultDirectoryService) UpdateService(ctx context.Context, svc *models.Service) error {
	if svc.Duration <= 0 {
		return scheduling.ValidationError{Field: "duration", Message: "duration must be positive"}
	}
	svc.UpdatedAt = time.Now()
	return mapNotFound(s.Services.Update(ctx, svc), "service", svc.ID)
}

func (s *DefaultDirectoryService) DeleteService(ctx context.Context, id string) error {
	return mapNotFound(s.Services.Delete(ctx, id), "service", id)
}

// validateWorkingHours rejects schedules the availability engine would later
// refuse with INVALID_TIME, so bad clock strings never reach storage.
func validateWorkingHours(hours []models.WorkingHour) error {
	anchor := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, h := range hours {
		start, err := anchorOrErr(anchor, h.Start, "workingHours.start")
		if err != nil {
			return err
		}
		end, err := anchorOrErr(anchor, h.End, "workingHours.end")
		if err != nil {
			return err
		}
		if !end.After(start) {
			return scheduling.ValidationError{Field: "workingHours", Code: models.ReasonInvalidTime, Message: "end is not after start for " + h.Day}
		}
		for _, b := range h.Breaks {
			if _, err := anchorOrErr(anchor, b.Start, "workingHours.breaks"); err != nil {
				return err
			}
			if _, err := anchorOrErr(anchor, b.End, "workingHours.breaks"); err != nil {
				return err
			}
		}
	}
	return nil
}

func anchorOrErr(anchor time.Time, clock, field string) (time.Time, error) {
	t, err := utils.AnchorClock(anchor, clock)
	if err != nil {
		return time.Time{}, scheduling.ValidationError{Field: field, Code: models.ReasonInvalidTime, Message: err.Error()}
	}
	return t, nil
}

func mapNotFound(err error, resource, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return scheduling.NotFoundError{Resource: resource, ID: id}
	}
	return err
}
