// Package catalog contiene los casos de uso CRUD sobre productos, proveedores
// y marcas, con unicidad por usuario y guardas de integridad referencial.
package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
	"github.com/lucasgiorgi95/stock-backend/internal/domain"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/repository"
)

// ProductUseCase CRUD de productos. No toca products.stock más allá del valor
// inicial en Create: las mutaciones posteriores pasan por el motor de ledger.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// Create valida code y name, verifica unicidad de code por usuario y persiste.
func (uc *ProductUseCase) Create(ownerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.productRepo.GetByCode(ownerID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	stock := decimal.Zero
	if in.Stock != nil {
		if in.Stock.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		stock = *in.Stock
	}
	minStock := entity.DefaultMinStock
	if in.MinStock != nil {
		if in.MinStock.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		minStock = *in.MinStock
	}
	price := decimal.Zero
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		price = *in.Price
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Stock:       stock,
		MinStock:    minStock,
		Price:       price,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		SupplierID:  in.SupplierID,
		MarcaID:     in.MarcaID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto del usuario.
func (uc *ProductUseCase) GetByID(ownerID, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// List lista productos del usuario con búsqueda y paginación.
func (uc *ProductUseCase) List(ownerID, search string, page dto.PageRequest) ([]dto.ProductResponse, dto.Pagination, error) {
	page.Normalize()
	products, total, err := uc.productRepo.List(ownerID, repository.ProductFilter{
		Search: strings.TrimSpace(search),
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	return dto.ToProductResponses(products), dto.NewPagination(total, page), nil
}

// SearchByCode busca productos activos cuyo code contenga el texto indicado.
func (uc *ProductUseCase) SearchByCode(ownerID, code string) ([]dto.ProductResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	products, err := uc.productRepo.SearchByCode(ownerID, code, 20)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponses(products), nil
}

// ListLowStock lista productos con stock en o por debajo de su umbral mínimo.
func (uc *ProductUseCase) ListLowStock(ownerID string, page dto.PageRequest) ([]dto.ProductResponse, dto.Pagination, error) {
	page.Normalize()
	products, total, err := uc.productRepo.ListLowStock(ownerID, page.Limit, page.Offset())
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	return dto.ToProductResponses(products), dto.NewPagination(total, page), nil
}

// Update aplica cambios parciales. Si cambia el code se vuelve a verificar la
// unicidad por usuario. El stock no se actualiza por esta vía.
func (uc *ProductUseCase) Update(ownerID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, domain.ErrInvalidInput
		}
		if code != product.Code {
			existing, err := uc.productRepo.GetByCode(ownerID, code)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != product.ID {
				return nil, domain.ErrDuplicate
			}
			product.Code = code
		}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.MinStock != nil {
		if in.MinStock.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.SupplierID != nil {
		product.SupplierID = in.SupplierID
	}
	if in.MarcaID != nil {
		product.MarcaID = in.MarcaID
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// Delete marca el producto como inactivo. Se rechaza con DependentsError si el
// producto tiene movimientos en el ledger.
func (uc *ProductUseCase) Delete(ownerID, id string) error {
	product, err := uc.productRepo.GetByID(ownerID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	count, err := uc.movementRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.DependentsError{Resource: "producto", Count: count}
	}
	return uc.productRepo.SoftDelete(ownerID, id)
}
