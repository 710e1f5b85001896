package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Paqueteria-api/internal/application/dto"
	"github.com/jhoicas/Paqueteria-api/internal/domain"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
	"github.com/jhoicas/Paqueteria-api/internal/domain/repository"
)

// LocationUseCase gestión de ubicaciones: puntos de recogida y bodegas.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso de ubicaciones.
func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

// Create da de alta una ubicación. El nombre es obligatorio.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	loc := &entity.Location{
		ID:          uuid.New().String(),
		Name:        in.Name,
		IsWarehouse: in.IsWarehouse,
		CreatedAt:   time.Now(),
	}
	if err := uc.locationRepo.Create(loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// GetByID devuelve una ubicación o ErrNotFound.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(loc), nil
}

// List devuelve todas las ubicaciones, para el selector de ubicación.
func (uc *LocationUseCase) List() ([]dto.LocationResponse, error) {
	locs, err := uc.locationRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locs))
	for _, loc := range locs {
		out = append(out, *toLocationResponse(loc))
	}
	return out, nil
}

func toLocationResponse(loc *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          loc.ID,
		Name:        loc.Name,
		IsWarehouse: loc.IsWarehouse,
		CreatedAt:   loc.CreatedAt,
	}
}
