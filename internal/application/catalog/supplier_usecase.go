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

// SupplierUseCase CRUD de proveedores con unicidad de nombre por usuario y
// eliminación bloqueada mientras existan productos que lo referencien.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository, productRepo repository.ProductRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo, productRepo: productRepo}
}

// Create valida el nombre, verifica unicidad (case-insensitive) y persiste.
func (uc *SupplierUseCase) Create(ownerID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.supplierRepo.GetByName(ownerID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Name:      name,
		Contact:   strings.TrimSpace(in.Contact),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	out := dto.ToSupplierResponse(supplier)
	return &out, nil
}

// GetByID obtiene un proveedor del usuario.
func (uc *SupplierUseCase) GetByID(ownerID, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToSupplierResponse(supplier)
	return &out, nil
}

// List lista proveedores del usuario con búsqueda y paginación.
func (uc *SupplierUseCase) List(ownerID, search string, page dto.PageRequest) ([]dto.SupplierResponse, dto.Pagination, error) {
	page.Normalize()
	suppliers, total, err := uc.supplierRepo.List(ownerID, repository.SupplierFilter{
		Search: strings.TrimSpace(search),
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	return dto.ToSupplierResponses(suppliers), dto.NewPagination(total, page), nil
}

// Update aplica cambios parciales; si cambia el nombre se re-verifica la unicidad.
func (uc *SupplierUseCase) Update(ownerID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		if !strings.EqualFold(name, supplier.Name) {
			existing, err := uc.supplierRepo.GetByName(ownerID, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != supplier.ID {
				return nil, domain.ErrDuplicate
			}
		}
		supplier.Name = name
	}
	if in.Contact != nil {
		supplier.Contact = strings.TrimSpace(*in.Contact)
	}
	if in.Phone != nil {
		supplier.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		supplier.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		supplier.Address = strings.TrimSpace(*in.Address)
	}
	if in.IsActive != nil {
		supplier.IsActive = *in.IsActive
	}
	supplier.UpdatedAt = time.Now()

	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	out := dto.ToSupplierResponse(supplier)
	return &out, nil
}

// Delete elimina el proveedor. Se rechaza con DependentsError si tiene productos asociados.
func (uc *SupplierUseCase) Delete(ownerID, id string) error {
	supplier, err := uc.supplierRepo.GetByID(ownerID, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}

	count, err := uc.productRepo.CountBySupplier(ownerID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.DependentsError{Resource: "proveedor", Count: count}
	}
	return uc.supplierRepo.Delete(ownerID, id)
}
