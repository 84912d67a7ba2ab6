package catalog_test

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/repository"
)

// Fakes en memoria para los casos de uso de catálogo. Replican las reglas de
// visibilidad de los repos reales: todo acotado por usuario y (nil, nil) cuando
// no hay coincidencia.

type fakeProductRepo struct {
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(ownerID, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok || p.UserID != ownerID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCode(ownerID, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.UserID == ownerID && p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) SoftDelete(ownerID, id string) error {
	if p, ok := r.products[id]; ok && p.UserID == ownerID {
		p.IsActive = false
	}
	return nil
}

func (r *fakeProductRepo) List(ownerID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var all []*entity.Product
	for _, p := range r.products {
		if p.UserID != ownerID {
			continue
		}
		if f.Search != "" &&
			!containsFold(p.Code, f.Search) &&
			!containsFold(p.Name, f.Search) &&
			!containsFold(p.Description, f.Search) {
			continue
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return paginate(all, f.Limit, f.Offset)
}

func (r *fakeProductRepo) ListLowStock(ownerID string, limit, offset int) ([]*entity.Product, int, error) {
	var all []*entity.Product
	for _, p := range r.products {
		if p.UserID == ownerID && p.IsActive && p.IsLowStock() {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return paginate(all, limit, offset)
}

func (r *fakeProductRepo) SearchByCode(ownerID, code string, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.UserID == ownerID && p.IsActive && containsFold(p.Code, code) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProductRepo) CountBySupplier(ownerID, supplierID string) (int, error) {
	n := 0
	for _, p := range r.products {
		if p.UserID == ownerID && p.SupplierID != nil && *p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) CountByMarca(ownerID, marcaID string) (int, error) {
	n := 0
	for _, p := range r.products {
		if p.UserID == ownerID && p.MarcaID != nil && *p.MarcaID == marcaID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) GetForUpdate(ownerID, id string) (*entity.Product, error) {
	return r.GetByID(ownerID, id)
}

func (r *fakeProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	if p, ok := r.products[id]; ok {
		p.Stock = stock
	}
	return nil
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

var _ repository.SupplierRepository = (*fakeSupplierRepo)(nil)

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: make(map[string]*entity.Supplier)}
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) GetByID(ownerID, id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok || s.UserID != ownerID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSupplierRepo) GetByName(ownerID, name string) (*entity.Supplier, error) {
	for _, s := range r.suppliers {
		if s.UserID == ownerID && strings.EqualFold(s.Name, name) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSupplierRepo) Update(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) Delete(ownerID, id string) error {
	if s, ok := r.suppliers[id]; ok && s.UserID == ownerID {
		delete(r.suppliers, id)
	}
	return nil
}

func (r *fakeSupplierRepo) List(ownerID string, f repository.SupplierFilter) ([]*entity.Supplier, int, error) {
	var all []*entity.Supplier
	for _, s := range r.suppliers {
		if s.UserID != ownerID {
			continue
		}
		if f.Search != "" &&
			!containsFold(s.Name, f.Search) &&
			!containsFold(s.Contact, f.Search) &&
			!containsFold(s.Email, f.Search) {
			continue
		}
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, f.Limit, f.Offset)
}

type fakeMarcaRepo struct {
	marcas map[string]*entity.Marca
}

var _ repository.MarcaRepository = (*fakeMarcaRepo)(nil)

func newFakeMarcaRepo() *fakeMarcaRepo {
	return &fakeMarcaRepo{marcas: make(map[string]*entity.Marca)}
}

func (r *fakeMarcaRepo) Create(m *entity.Marca) error {
	cp := *m
	r.marcas[m.ID] = &cp
	return nil
}

func (r *fakeMarcaRepo) GetByID(ownerID, id string) (*entity.Marca, error) {
	m, ok := r.marcas[id]
	if !ok || m.UserID != ownerID {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMarcaRepo) GetByName(ownerID, name string) (*entity.Marca, error) {
	for _, m := range r.marcas {
		if m.UserID == ownerID && strings.EqualFold(m.Name, name) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMarcaRepo) Update(m *entity.Marca) error {
	cp := *m
	r.marcas[m.ID] = &cp
	return nil
}

func (r *fakeMarcaRepo) Delete(ownerID, id string) error {
	if m, ok := r.marcas[id]; ok && m.UserID == ownerID {
		delete(r.marcas, id)
	}
	return nil
}

func (r *fakeMarcaRepo) List(ownerID string, f repository.MarcaFilter) ([]*entity.Marca, int, error) {
	var all []*entity.Marca
	for _, m := range r.marcas {
		if m.UserID != ownerID {
			continue
		}
		if f.Search != "" && !containsFold(m.Name, f.Search) && !containsFold(m.Description, f.Search) {
			continue
		}
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, f.Limit, f.Offset)
}

// fakeMovementCounter solo responde CountByProduct, lo único que usa el catálogo.
type fakeMovementCounter struct {
	repository.StockMovementRepository
	counts map[string]int
}

func (r *fakeMovementCounter) CountByProduct(productID string) (int, error) {
	return r.counts[productID], nil
}

func (r *fakeMovementCounter) ListRecent(context.Context, string, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func paginate[T any](all []T, limit, offset int) ([]T, int, error) {
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return all[offset:end], total, nil
}
