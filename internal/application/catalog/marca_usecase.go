package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
	"github.com/lucasgiorgi95/stock-backend/internal/domain"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/repository"
)

// MarcaUseCase CRUD de marcas, con las mismas reglas que proveedores: nombre
// único por usuario y eliminación bloqueada mientras haya productos asociados.
type MarcaUseCase struct {
	marcaRepo   repository.MarcaRepository
	productRepo repository.ProductRepository
}

// NewMarcaUseCase construye el caso de uso.
func NewMarcaUseCase(marcaRepo repository.MarcaRepository, productRepo repository.ProductRepository) *MarcaUseCase {
	return &MarcaUseCase{marcaRepo: marcaRepo, productRepo: productRepo}
}

// Create valida el nombre, verifica unicidad (case-insensitive) y persiste.
func (uc *MarcaUseCase) Create(ownerID string, in dto.CreateMarcaRequest) (*dto.MarcaResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.marcaRepo.GetByName(ownerID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	marca := &entity.Marca{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.marcaRepo.Create(marca); err != nil {
		return nil, err
	}
	out := dto.ToMarcaResponse(marca)
	return &out, nil
}

// GetByID obtiene una marca del usuario.
func (uc *MarcaUseCase) GetByID(ownerID, id string) (*dto.MarcaResponse, error) {
	marca, err := uc.marcaRepo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if marca == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToMarcaResponse(marca)
	return &out, nil
}

// List lista marcas del usuario con búsqueda y paginación.
func (uc *MarcaUseCase) List(ownerID, search string, page dto.PageRequest) ([]dto.MarcaResponse, dto.Pagination, error) {
	page.Normalize()
	marcas, total, err := uc.marcaRepo.List(ownerID, repository.MarcaFilter{
		Search: strings.TrimSpace(search),
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	return dto.ToMarcaResponses(marcas), dto.NewPagination(total, page), nil
}

// Update aplica cambios parciales; si cambia el nombre se re-verifica la unicidad.
func (uc *MarcaUseCase) Update(ownerID, id string, in dto.UpdateMarcaRequest) (*dto.MarcaResponse, error) {
	marca, err := uc.marcaRepo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if marca == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		if !strings.EqualFold(name, marca.Name) {
			existing, err := uc.marcaRepo.GetByName(ownerID, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != marca.ID {
				return nil, domain.ErrDuplicate
			}
		}
		marca.Name = name
	}
	if in.Description != nil {
		marca.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsActive != nil {
		marca.IsActive = *in.IsActive
	}
	marca.UpdatedAt = time.Now()

	if err := uc.marcaRepo.Update(marca); err != nil {
		return nil, err
	}
	out := dto.ToMarcaResponse(marca)
	return &out, nil
}

// Delete elimina la marca. Se rechaza con DependentsError si tiene productos asociados.
func (uc *MarcaUseCase) Delete(ownerID, id string) error {
	marca, err := uc.marcaRepo.GetByID(ownerID, id)
	if err != nil {
		return err
	}
	if marca == nil {
		return domain.ErrNotFound
	}

	count, err := uc.productRepo.CountByMarca(ownerID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.DependentsError{Resource: "marca", Count: count}
	}
	return uc.marcaRepo.Delete(ownerID, id)
}
