package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
	"github.com/lucasgiorgi95/stock-backend/internal/application/ledger"
	"github.com/lucasgiorgi95/stock-backend/internal/domain"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria con semántica transaccional
//
// Reproduce el comportamiento del TxRunner de postgres: GetForUpdate toma un
// candado por producto que se mantiene hasta el final de la transacción, las
// escrituras se acumulan y solo se aplican en el commit (fn sin error). Si fn
// falla, las escrituras pendientes se descartan, igual que un Rollback.
// ──────────────────────────────────────────────────────────────────────────────

var errFalloInyectado = errors.New("fallo inyectado")

type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	locks     map[string]*sync.Mutex

	// Inyección de fallos dentro de la transacción
	failMovementCreate bool
	failStockUpdate    bool
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *memStore) addProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
	s.locks[p.ID] = &sync.Mutex{}
}

func (s *memStore) productStock(id string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

// ledgerSum calcula Σ(entradas) − Σ(salidas) directamente sobre los movimientos.
func (s *memStore) ledgerSum(productID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, m := range s.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.Signed())
		}
	}
	return sum
}

func (s *memStore) movementCount(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n
}

// memTx transacción en curso: candados tomados y escrituras pendientes.
type memTx struct {
	store        *memStore
	locked       []string
	newMovements []*entity.StockMovement
	stockWrites  map[string]decimal.Decimal
}

func (tx *memTx) commit() {
	tx.store.mu.Lock()
	tx.store.movements = append(tx.store.movements, tx.newMovements...)
	for id, stock := range tx.stockWrites {
		tx.store.products[id].Stock = stock
	}
	tx.store.mu.Unlock()
}

func (tx *memTx) release() {
	for _, id := range tx.locked {
		tx.store.locks[id].Unlock()
	}
}

// memTxRunner implementa ledger.TxRunner sobre el store en memoria.
type memTxRunner struct {
	store *memStore
}

var _ ledger.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(ctx context.Context, fn func(repository.StockMovementRepository, repository.ProductRepository) error) error {
	tx := &memTx{store: r.store, stockWrites: make(map[string]decimal.Decimal)}
	defer tx.release()

	err := fn(&memMovementRepo{store: r.store, tx: tx}, &memProductRepo{store: r.store, tx: tx})
	if err != nil {
		return err
	}
	tx.commit()
	return nil
}

// memProductRepo repositorio de productos; con tx != nil participa de la transacción.
type memProductRepo struct {
	store *memStore
	tx    *memTx
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) GetByID(ownerID, id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok || p.UserID != ownerID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ownerID, id string) (*entity.Product, error) {
	r.store.mu.Lock()
	lock, ok := r.store.locks[id]
	r.store.mu.Unlock()
	if !ok {
		return nil, nil
	}
	// Candado de fila: se mantiene hasta el final de la transacción
	lock.Lock()
	r.tx.locked = append(r.tx.locked, id)
	return r.GetByID(ownerID, id)
}

func (r *memProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	if r.store.failStockUpdate {
		return errFalloInyectado
	}
	r.tx.stockWrites[id] = stock
	return nil
}

func (r *memProductRepo) Create(*entity.Product) error          { return nil }
func (r *memProductRepo) Update(*entity.Product) error          { return nil }
func (r *memProductRepo) SoftDelete(ownerID, id string) error   { return nil }
func (r *memProductRepo) GetByCode(ownerID, code string) (*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) List(string, repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *memProductRepo) ListLowStock(string, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *memProductRepo) SearchByCode(string, string, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) CountBySupplier(string, string) (int, error) { return 0, nil }
func (r *memProductRepo) CountByMarca(string, string) (int, error)    { return 0, nil }

// memMovementRepo repositorio de movimientos sobre el store en memoria.
type memMovementRepo struct {
	store *memStore
	tx    *memTx
}

var _ repository.StockMovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	if r.store.failMovementCreate {
		return errFalloInyectado
	}
	cp := *m
	r.tx.newMovements = append(r.tx.newMovements, &cp)
	return nil
}

func (r *memMovementRepo) ListByProduct(_ context.Context, productID string, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*entity.StockMovement
	for _, m := range r.store.movements {
		if matchMovement(m, productID, f) {
			all = append(all, m)
		}
	}
	// Orden descendente por fecha (los tests insertan en orden cronológico)
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *memMovementRepo) Summary(_ context.Context, productID string, f repository.MovementFilter) (decimal.Decimal, decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entrada, salida := decimal.Zero, decimal.Zero
	for _, m := range r.store.movements {
		if !matchMovement(m, productID, f) {
			continue
		}
		if m.Type == entity.MovementTypeEntrada {
			entrada = entrada.Add(m.Quantity)
		} else {
			salida = salida.Add(m.Quantity)
		}
	}
	return entrada, salida, nil
}

func (r *memMovementRepo) CountByProduct(productID string) (int, error) {
	return r.store.movementCount(productID), nil
}

func (r *memMovementRepo) ListRecent(context.Context, string, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func matchMovement(m *entity.StockMovement, productID string, f repository.MovementFilter) bool {
	if m.ProductID != productID {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.StartDate != nil && m.MovementDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !m.MovementDate.Before(*f.EndDate) {
		return false
	}
	return true
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerID   = "00000000-0000-0000-0000-0000000000aa"
	productID = "00000000-0000-0000-0000-0000000000p1"
)

func newLedgerUseCase(stock int64) (*ledger.UseCase, *memStore) {
	store := newMemStore()
	store.addProduct(&entity.Product{
		ID:       productID,
		UserID:   ownerID,
		Code:     "SKU1",
		Name:     "Tornillo 3mm",
		Stock:    decimal.NewFromInt(stock),
		MinStock: entity.DefaultMinStock,
		IsActive: true,
	})
	movRepo := &memMovementRepo{store: store}
	prodRepo := &memProductRepo{store: store}
	uc := ledger.NewUseCase(&memTxRunner{store: store}, prodRepo, movRepo)
	return uc, store
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func salida(qty int64) ledger.MovementInput {
	return ledger.MovementInput{
		UserID:    ownerID,
		ProductID: productID,
		Type:      entity.MovementTypeSalida,
		Quantity:  dec(qty),
		Reason:    "Venta mostrador",
	}
}

func entrada(qty int64) ledger.MovementInput {
	return ledger.MovementInput{
		UserID:    ownerID,
		ProductID: productID,
		Type:      entity.MovementTypeEntrada,
		Quantity:  dec(qty),
		Reason:    "Compra a proveedor",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

// Escenario base: stock 10, salida de 4 → stock 6; luego entrada de 20 → stock 26.
func TestRecordMovement_EntradaYSalidaActualizanStock(t *testing.T) {
	uc, store := newLedgerUseCase(10)
	ctx := context.Background()

	res, err := uc.RecordMovement(ctx, salida(4))
	require.NoError(t, err)
	assert.True(t, res.NewStock.Equal(dec(6)), "stock tras la salida debe ser 6, fue %s", res.NewStock)
	assert.Equal(t, entity.MovementTypeSalida, res.Movement.Type)
	assert.True(t, res.Movement.Quantity.Equal(dec(4)))

	res, err = uc.RecordMovement(ctx, entrada(20))
	require.NoError(t, err)
	assert.True(t, res.NewStock.Equal(dec(26)), "stock tras la entrada debe ser 26, fue %s", res.NewStock)

	// Invariante: el stock cacheado siempre coincide con la suma del ledger
	assert.True(t, store.productStock(productID).Equal(dec(26)))
	assert.True(t, store.ledgerSum(productID).Equal(dec(16)),
		"la suma del ledger debe ser -4+20 = 16 sobre el stock inicial")
}

func TestRecordMovement_SalidaMayorAlStock_Falla(t *testing.T) {
	uc, store := newLedgerUseCase(10)

	_, err := uc.RecordMovement(context.Background(), salida(11))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.True(t, ise.Available.Equal(dec(10)), "disponible debe ser 10")
	assert.True(t, ise.Requested.Equal(dec(11)), "solicitado debe ser 11")

	// La operación rechazada no deja rastro: ni movimiento ni cambio de stock
	assert.Equal(t, 0, store.movementCount(productID))
	assert.True(t, store.productStock(productID).Equal(dec(10)))
}

func TestRecordMovement_SalidaExacta_DejaStockEnCero(t *testing.T) {
	uc, store := newLedgerUseCase(10)

	res, err := uc.RecordMovement(context.Background(), salida(10))
	require.NoError(t, err)
	assert.True(t, res.NewStock.IsZero(), "salida por el stock completo debe dejar 0")
	assert.True(t, store.productStock(productID).IsZero())
}

func TestRecordMovement_EntradasValidadas(t *testing.T) {
	uc, _ := newLedgerUseCase(10)
	ctx := context.Background()

	casos := []struct {
		nombre string
		in     ledger.MovementInput
	}{
		{"tipo inválido", ledger.MovementInput{UserID: ownerID, ProductID: productID, Type: "transferencia", Quantity: dec(1), Reason: "x"}},
		{"cantidad cero", ledger.MovementInput{UserID: ownerID, ProductID: productID, Type: entity.MovementTypeEntrada, Quantity: decimal.Zero, Reason: "x"}},
		{"cantidad negativa", ledger.MovementInput{UserID: ownerID, ProductID: productID, Type: entity.MovementTypeEntrada, Quantity: dec(-3), Reason: "x"}},
		{"sin motivo", ledger.MovementInput{UserID: ownerID, ProductID: productID, Type: entity.MovementTypeEntrada, Quantity: dec(1), Reason: "   "}},
		{"sin producto", ledger.MovementInput{UserID: ownerID, Type: entity.MovementTypeEntrada, Quantity: dec(1), Reason: "x"}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.RecordMovement(ctx, c.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecordMovement_ProductoDeOtroUsuario_NotFound(t *testing.T) {
	uc, _ := newLedgerUseCase(10)

	in := entrada(5)
	in.UserID = "00000000-0000-0000-0000-0000000000bb"
	_, err := uc.RecordMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un producto ajeno debe verse como inexistente")
}

// Atomicidad: si falla la escritura del stock después de crear el movimiento,
// la transacción entera se descarta y no queda ni el movimiento ni el cambio.
func TestRecordMovement_FalloEnUpdateStock_RevierteTodo(t *testing.T) {
	uc, store := newLedgerUseCase(10)
	store.failStockUpdate = true

	_, err := uc.RecordMovement(context.Background(), entrada(5))
	require.ErrorIs(t, err, errFalloInyectado)

	assert.Equal(t, 0, store.movementCount(productID),
		"el movimiento creado antes del fallo no debe ser visible")
	assert.True(t, store.productStock(productID).Equal(dec(10)),
		"el stock no debe cambiar si la transacción falló")
}

func TestRecordMovement_FalloEnCrearMovimiento_NoTocaStock(t *testing.T) {
	uc, store := newLedgerUseCase(10)
	store.failMovementCreate = true

	_, err := uc.RecordMovement(context.Background(), salida(3))
	require.ErrorIs(t, err, errFalloInyectado)
	assert.True(t, store.productStock(productID).Equal(dec(10)))
}

// Concurrencia: N salidas simultáneas pidiendo el stock completo. El candado de
// fila serializa los chequeos, así que exactamente una puede pasar.
func TestRecordMovement_SalidasConcurrentes_SoloUnaGana(t *testing.T) {
	const n = 20
	uc, store := newLedgerUseCase(50)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RecordMovement(ctx, salida(50))
		}(i)
	}
	wg.Wait()

	exitos, insuficientes := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			exitos++
		case errors.Is(err, domain.ErrInsufficientStock):
			insuficientes++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, exitos, "solo una salida debe poder llevarse todo el stock")
	assert.Equal(t, n-1, insuficientes)
	assert.True(t, store.productStock(productID).IsZero())
	assert.Equal(t, 1, store.movementCount(productID),
		"las salidas rechazadas no deben dejar movimientos")
}

// Bajo mezcla concurrente de entradas y salidas el stock cacheado tiene que
// terminar igual a la suma del ledger.
func TestRecordMovement_ConcurrenciaMixta_StockConsistenteConLedger(t *testing.T) {
	uc, store := newLedgerUseCase(100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 15; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = uc.RecordMovement(ctx, entrada(3))
		}()
		go func() {
			defer wg.Done()
			_, _ = uc.RecordMovement(ctx, salida(2))
		}()
	}
	wg.Wait()

	esperado := dec(100).Add(store.ledgerSum(productID))
	assert.True(t, store.productStock(productID).Equal(esperado),
		"stock %s debe coincidir con inicial+ledger %s", store.productStock(productID), esperado)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStockTo
// ──────────────────────────────────────────────────────────────────────────────

// Ajuste de 10 a 3: debe registrarse una única salida de 7 marcada como ajuste.
func TestAdjustStockTo_Reduccion_GeneraSalidaDeAjuste(t *testing.T) {
	uc, store := newLedgerUseCase(10)

	res, err := uc.AdjustStockTo(context.Background(), ledger.AdjustInput{
		UserID:    ownerID,
		ProductID: productID,
		Target:    dec(3),
		Reason:    "Conteo físico",
	})
	require.NoError(t, err)

	assert.True(t, res.PreviousStock.Equal(dec(10)))
	assert.True(t, res.NewStock.Equal(dec(3)))
	assert.True(t, res.Delta.Equal(dec(-7)))
	assert.Equal(t, entity.MovementTypeSalida, res.Kind)

	require.Equal(t, 1, store.movementCount(productID))
	mov := store.movements[0]
	assert.True(t, mov.Quantity.Equal(dec(7)), "la cantidad del ajuste debe ser |delta| = 7")
	assert.True(t, mov.IsAdjustment, "el movimiento debe marcarse como ajuste")
	assert.Equal(t, "Ajuste de inventario: Conteo físico", mov.Reason)
	assert.True(t, store.productStock(productID).Equal(dec(3)))
}

func TestAdjustStockTo_Aumento_GeneraEntrada(t *testing.T) {
	uc, store := newLedgerUseCase(10)

	res, err := uc.AdjustStockTo(context.Background(), ledger.AdjustInput{
		UserID:    ownerID,
		ProductID: productID,
		Target:    dec(25),
		Reason:    "Mercadería encontrada",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeEntrada, res.Kind)
	assert.True(t, res.Delta.Equal(dec(15)))
	assert.True(t, store.productStock(productID).Equal(dec(25)))
}

// Ajuste al mismo valor: no debe escribirse nada, ni movimiento ni stock.
func TestAdjustStockTo_SinCambio_NoEscribeNada(t *testing.T) {
	uc, store := newLedgerUseCase(10)

	res, err := uc.AdjustStockTo(context.Background(), ledger.AdjustInput{
		UserID:    ownerID,
		ProductID: productID,
		Target:    dec(10),
		Reason:    "Verificación",
	})
	require.NoError(t, err)
	assert.True(t, res.Delta.IsZero())
	assert.Empty(t, res.Kind)
	assert.Equal(t, 0, store.movementCount(productID),
		"un ajuste sin diferencia no debe crear movimientos")
}

// Objetivo negativo: se recorta a cero en vez de fallar.
func TestAdjustStockTo_ObjetivoNegativo_SeRecortaACero(t *testing.T) {
	uc, store := newLedgerUseCase(10)

	res, err := uc.AdjustStockTo(context.Background(), ledger.AdjustInput{
		UserID:    ownerID,
		ProductID: productID,
		Target:    dec(-4),
		Reason:    "Pérdida total",
	})
	require.NoError(t, err)
	assert.True(t, res.NewStock.IsZero())
	assert.True(t, res.Delta.Equal(dec(-10)))
	assert.True(t, store.productStock(productID).IsZero())
}

func TestAdjustStockTo_SinMotivo_Falla(t *testing.T) {
	uc, _ := newLedgerUseCase(10)
	_, err := uc.AdjustStockTo(context.Background(), ledger.AdjustInput{
		UserID:    ownerID,
		ProductID: productID,
		Target:    dec(3),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetLedger
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLedger_ResumenYSaldo(t *testing.T) {
	uc, _ := newLedgerUseCase(0)
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, entrada(30))
	require.NoError(t, err)
	_, err = uc.RecordMovement(ctx, salida(12))
	require.NoError(t, err)
	_, err = uc.RecordMovement(ctx, entrada(5))
	require.NoError(t, err)

	page, err := uc.GetLedger(ctx, ownerID, productID, ledger.LedgerFilter{}, dto.PageRequest{})
	require.NoError(t, err)

	assert.Len(t, page.Movements, 3)
	assert.True(t, page.Summary.Entrada.Equal(dec(35)), "entradas: 30+5")
	assert.True(t, page.Summary.Salida.Equal(dec(12)))
	assert.True(t, page.Summary.Saldo.Equal(dec(23)), "saldo = entradas - salidas")
	assert.Equal(t, 3, page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.Page)
}

func TestGetLedger_FiltroPorTipo(t *testing.T) {
	uc, _ := newLedgerUseCase(0)
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, entrada(30))
	require.NoError(t, err)
	_, err = uc.RecordMovement(ctx, salida(12))
	require.NoError(t, err)

	page, err := uc.GetLedger(ctx, ownerID, productID,
		ledger.LedgerFilter{Type: entity.MovementTypeSalida}, dto.PageRequest{})
	require.NoError(t, err)

	require.Len(t, page.Movements, 1)
	assert.Equal(t, entity.MovementTypeSalida, page.Movements[0].Type)
	assert.True(t, page.Summary.Entrada.IsZero(), "el resumen respeta el filtro")
	assert.True(t, page.Summary.Salida.Equal(dec(12)))
}

func TestGetLedger_TipoInvalido_Falla(t *testing.T) {
	uc, _ := newLedgerUseCase(0)
	_, err := uc.GetLedger(context.Background(), ownerID, productID,
		ledger.LedgerFilter{Type: "devolucion"}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La fecha final del filtro incluye el día completo.
func TestGetLedger_FechaFinalInclusiva(t *testing.T) {
	uc, _ := newLedgerUseCase(0)
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, entrada(10))
	require.NoError(t, err)

	hoy := time.Now().Truncate(24 * time.Hour)
	page, err := uc.GetLedger(ctx, ownerID, productID,
		ledger.LedgerFilter{EndDate: &hoy}, dto.PageRequest{})
	require.NoError(t, err)

	assert.Len(t, page.Movements, 1,
		"un movimiento de hoy debe entrar con endDate = hoy")
}

func TestGetLedger_ProductoInexistente_NotFound(t *testing.T) {
	uc, _ := newLedgerUseCase(0)
	_, err := uc.GetLedger(context.Background(), ownerID, "otro-id",
		ledger.LedgerFilter{}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
