// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Sirve para tests y para el modo de desarrollo sin PostgreSQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/application/engine"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var _ engine.TxRunner = (*Store)(nil)

// state es el contenido del store. Las mutaciones transaccionales operan
// sobre él con el mutex tomado; Run lo clona para poder revertir.
type state struct {
	products   map[string]*entity.Product
	movements  []*entity.StockMovement
	sales      []*entity.Sale
	categories map[string]*entity.Category
	suppliers  map[string]*entity.Supplier
}

func newState() *state {
	return &state{
		products:   make(map[string]*entity.Product),
		categories: make(map[string]*entity.Category),
		suppliers:  make(map[string]*entity.Supplier),
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	c.movements = make([]*entity.StockMovement, len(s.movements))
	copy(c.movements, s.movements)
	c.sales = make([]*entity.Sale, len(s.sales))
	copy(c.sales, s.sales)
	for id, cat := range s.categories {
		cc := *cat
		c.categories[id] = &cc
	}
	for id, sup := range s.suppliers {
		cs := *sup
		c.suppliers[id] = &cs
	}
	return c
}

// Store guarda todo el estado bajo un único mutex. Run lo mantiene tomado
// durante toda la transacción, de modo que las transacciones se serializan
// (equivalente en memoria al bloqueo de fila de PostgreSQL).
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con vistas transaccionales de los repos. Si fn falla, el
// estado vuelve al snapshot previo; si no, los cambios quedan aplicados.
func (s *Store) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	err := fn(&productView{s: s, inTx: true}, &movementView{s: s, inTx: true}, &saleView{s: s, inTx: true})
	if err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Products devuelve el repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return &productView{s: s} }

// Movements devuelve el repositorio del libro de movimientos.
func (s *Store) Movements() repository.StockMovementRepository { return &movementView{s: s} }

// Sales devuelve el repositorio de ventas.
func (s *Store) Sales() repository.SaleRepository { return &saleView{s: s} }

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() repository.CategoryRepository { return &categoryView{s: s} }

// Suppliers devuelve el repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierView{s: s} }

// Reports devuelve el repositorio de consultas de reporte.
func (s *Store) Reports() repository.ReportRepository { return &reportView{s: s} }

// lock toma el mutex salvo dentro de una transacción (Run ya lo tiene).
func lock(s *Store, inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ---- productos ----

type productView struct {
	s    *Store
	inTx bool
}

var _ repository.ProductRepository = (*productView)(nil)

func (v *productView) Create(_ context.Context, product *entity.Product) error {
	defer lock(v.s, v.inTx)()
	st := v.s.st
	for _, p := range st.products {
		if p.Barcode == product.Barcode {
			return domain.ErrDuplicate
		}
	}
	if _, ok := st.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *product
	st.products[product.ID] = &cp
	return nil
}

func (v *productView) getByID(id string) *entity.Product {
	if p, ok := v.s.st.products[id]; ok {
		cp := *p
		return &cp
	}
	return nil
}

func (v *productView) getByBarcode(barcode string) *entity.Product {
	for _, p := range v.s.st.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp
		}
	}
	return nil
}

func (v *productView) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer lock(v.s, v.inTx)()
	return v.getByID(id), nil
}

func (v *productView) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	defer lock(v.s, v.inTx)()
	return v.getByBarcode(barcode), nil
}

// En memoria el "bloqueo de fila" es el propio mutex del store, que Run
// mantiene tomado; los ForUpdate son lecturas normales.
func (v *productView) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return v.GetByID(ctx, id)
}

func (v *productView) GetByBarcodeForUpdate(ctx context.Context, barcode string) (*entity.Product, error) {
	return v.GetByBarcode(ctx, barcode)
}

func (v *productView) UpdateStock(_ context.Context, id string, newStock int, updatedAt time.Time) error {
	defer lock(v.s, v.inTx)()
	p, ok := v.s.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = newStock
	p.UpdatedAt = updatedAt
	return nil
}

func (v *productView) Update(_ context.Context, product *entity.Product) error {
	defer lock(v.s, v.inTx)()
	existing, ok := v.s.st.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *product
	cp.Barcode = existing.Barcode
	cp.CurrentStock = existing.CurrentStock
	v.s.st.products[product.ID] = &cp
	return nil
}

func (v *productView) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	defer lock(v.s, v.inTx)()

	matches := func(p *entity.Product) bool {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			return false
		}
		if filter.SupplierID != "" && p.SupplierID != filter.SupplierID {
			return false
		}
		if filter.Search == "" {
			return true
		}
		q := strings.ToLower(filter.Search)
		return strings.Contains(strings.ToLower(p.Barcode), q) ||
			strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Name), q)
	}

	var all []*entity.Product
	for _, p := range v.s.st.products {
		if matches(p) {
			cp := *p
			all = append(all, &cp)
		}
	}

	less := func(a, b *entity.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch filter.SortBy {
	case "title":
		less = func(a, b *entity.Product) bool { return a.Title < b.Title }
	case "name":
		less = func(a, b *entity.Product) bool { return a.Name < b.Name }
	case "current_stock":
		less = func(a, b *entity.Product) bool { return a.CurrentStock < b.CurrentStock }
	case "sale_price":
		less = func(a, b *entity.Product) bool { return a.SalePrice.LessThan(b.SalePrice) }
	}
	sort.SliceStable(all, func(i, j int) bool {
		if filter.SortDesc {
			return less(all[j], all[i])
		}
		return less(all[i], all[j])
	})

	total := len(all)
	if filter.Offset >= total {
		return nil, total, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && len(all) > filter.Limit {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

func (v *productView) Delete(_ context.Context, id string) error {
	defer lock(v.s, v.inTx)()
	if _, ok := v.s.st.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(v.s.st.products, id)
	return nil
}

func (v *productView) CountByCategory(_ context.Context, categoryID string) (int, error) {
	defer lock(v.s, v.inTx)()
	n := 0
	for _, p := range v.s.st.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (v *productView) CountBySupplier(_ context.Context, supplierID string) (int, error) {
	defer lock(v.s, v.inTx)()
	n := 0
	for _, p := range v.s.st.products {
		if p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

// ---- movimientos ----

type movementView struct {
	s    *Store
	inTx bool
}

var _ repository.StockMovementRepository = (*movementView)(nil)

func (v *movementView) Create(_ context.Context, movement *entity.StockMovement) error {
	defer lock(v.s, v.inTx)()
	cp := *movement
	v.s.st.movements = append(v.s.st.movements, &cp)
	return nil
}

func (v *movementView) ListRecentByProduct(_ context.Context, productID string, limit int) ([]*entity.StockMovement, error) {
	defer lock(v.s, v.inTx)()
	var list []*entity.StockMovement
	// El slice está en orden de inserción (cronológico); se recorre al revés.
	for i := len(v.s.st.movements) - 1; i >= 0 && len(list) < limit; i-- {
		m := v.s.st.movements[i]
		if m.ProductID == productID {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (v *movementView) SumQuantityByProduct(_ context.Context, productID string) (int, error) {
	defer lock(v.s, v.inTx)()
	sum := 0
	for _, m := range v.s.st.movements {
		if m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

func (v *movementView) CountByProduct(_ context.Context, productID string) (int, error) {
	defer lock(v.s, v.inTx)()
	n := 0
	for _, m := range v.s.st.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// ---- ventas ----

type saleView struct {
	s    *Store
	inTx bool
}

var _ repository.SaleRepository = (*saleView)(nil)

func (v *saleView) Create(_ context.Context, sale *entity.Sale) error {
	defer lock(v.s, v.inTx)()
	cp := *sale
	v.s.st.sales = append(v.s.st.sales, &cp)
	return nil
}

func (v *saleView) ListRecentByProduct(_ context.Context, productID string, limit int) ([]*entity.Sale, error) {
	defer lock(v.s, v.inTx)()
	var list []*entity.Sale
	for i := len(v.s.st.sales) - 1; i >= 0 && len(list) < limit; i-- {
		s := v.s.st.sales[i]
		if s.ProductID == productID {
			cp := *s
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (v *saleView) withProduct(s *entity.Sale) repository.SaleWithProduct {
	item := repository.SaleWithProduct{Sale: *s}
	if p, ok := v.s.st.products[s.ProductID]; ok {
		item.ProductBarcode = p.Barcode
		item.ProductTitle = p.Title
		item.ProductName = p.Name
	}
	return item
}

func (v *saleView) ListSince(_ context.Context, from *time.Time) ([]repository.SaleWithProduct, error) {
	defer lock(v.s, v.inTx)()
	var list []repository.SaleWithProduct
	for i := len(v.s.st.sales) - 1; i >= 0; i-- {
		s := v.s.st.sales[i]
		if from != nil && s.CreatedAt.Before(*from) {
			continue
		}
		list = append(list, v.withProduct(s))
	}
	return list, nil
}

func (v *saleView) List(_ context.Context, from, to *time.Time, limit, offset int) ([]repository.SaleWithProduct, int, error) {
	defer lock(v.s, v.inTx)()
	var all []repository.SaleWithProduct
	for i := len(v.s.st.sales) - 1; i >= 0; i-- {
		s := v.s.st.sales[i]
		if from != nil && s.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && !s.CreatedAt.Before(*to) {
			continue
		}
		all = append(all, v.withProduct(s))
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (v *saleView) CountByProduct(_ context.Context, productID string) (int, error) {
	defer lock(v.s, v.inTx)()
	n := 0
	for _, s := range v.s.st.sales {
		if s.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// ---- categorías ----

type categoryView struct {
	s    *Store
	inTx bool
}

var _ repository.CategoryRepository = (*categoryView)(nil)

func (v *categoryView) Create(_ context.Context, category *entity.Category) error {
	defer lock(v.s, v.inTx)()
	for _, c := range v.s.st.categories {
		if c.Name == category.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *category
	v.s.st.categories[category.ID] = &cp
	return nil
}

func (v *categoryView) GetByID(_ context.Context, id string) (*entity.Category, error) {
	defer lock(v.s, v.inTx)()
	if c, ok := v.s.st.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (v *categoryView) GetByName(_ context.Context, name string) (*entity.Category, error) {
	defer lock(v.s, v.inTx)()
	for _, c := range v.s.st.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (v *categoryView) Update(_ context.Context, category *entity.Category) error {
	defer lock(v.s, v.inTx)()
	if _, ok := v.s.st.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, c := range v.s.st.categories {
		if id != category.ID && c.Name == category.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *category
	v.s.st.categories[category.ID] = &cp
	return nil
}

func (v *categoryView) List(_ context.Context) ([]*entity.Category, error) {
	defer lock(v.s, v.inTx)()
	var list []*entity.Category
	for _, c := range v.s.st.categories {
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (v *categoryView) Delete(_ context.Context, id string) error {
	defer lock(v.s, v.inTx)()
	if _, ok := v.s.st.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(v.s.st.categories, id)
	return nil
}

// ---- proveedores ----

type supplierView struct {
	s    *Store
	inTx bool
}

var _ repository.SupplierRepository = (*supplierView)(nil)

func (v *supplierView) Create(_ context.Context, supplier *entity.Supplier) error {
	defer lock(v.s, v.inTx)()
	for _, sp := range v.s.st.suppliers {
		if sp.Name == supplier.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *supplier
	v.s.st.suppliers[supplier.ID] = &cp
	return nil
}

func (v *supplierView) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	defer lock(v.s, v.inTx)()
	if sp, ok := v.s.st.suppliers[id]; ok {
		cp := *sp
		return &cp, nil
	}
	return nil, nil
}

func (v *supplierView) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	defer lock(v.s, v.inTx)()
	for _, sp := range v.s.st.suppliers {
		if sp.Name == name {
			cp := *sp
			return &cp, nil
		}
	}
	return nil, nil
}

func (v *supplierView) Update(_ context.Context, supplier *entity.Supplier) error {
	defer lock(v.s, v.inTx)()
	if _, ok := v.s.st.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, sp := range v.s.st.suppliers {
		if id != supplier.ID && sp.Name == supplier.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *supplier
	v.s.st.suppliers[supplier.ID] = &cp
	return nil
}

func (v *supplierView) List(_ context.Context) ([]*entity.Supplier, error) {
	defer lock(v.s, v.inTx)()
	var list []*entity.Supplier
	for _, sp := range v.s.st.suppliers {
		cp := *sp
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (v *supplierView) Delete(_ context.Context, id string) error {
	defer lock(v.s, v.inTx)()
	if _, ok := v.s.st.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(v.s.st.suppliers, id)
	return nil
}

// ---- reportes ----

type reportView struct {
	s    *Store
	inTx bool
}

var _ repository.ReportRepository = (*reportView)(nil)

func (v *reportView) ListLowStock(_ context.Context, limit int) ([]repository.LowStockRow, error) {
	defer lock(v.s, v.inTx)()
	var rows []repository.LowStockRow
	for _, p := range v.s.st.products {
		if p.LowStock() {
			rows = append(rows, repository.LowStockRow{
				ProductID:    p.ID,
				Title:        p.Title,
				CurrentStock: p.CurrentStock,
				MinStock:     p.MinStock,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CurrentStock < rows[j].CurrentStock })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (v *reportView) CountLowStock(_ context.Context) (int, error) {
	defer lock(v.s, v.inTx)()
	n := 0
	for _, p := range v.s.st.products {
		if p.LowStock() {
			n++
		}
	}
	return n, nil
}

func (v *reportView) GetInventorySummary(_ context.Context) (repository.InventorySummary, error) {
	defer lock(v.s, v.inTx)()
	var s repository.InventorySummary
	s.TotalValue = decimal.Zero
	for _, p := range v.s.st.products {
		s.TotalProducts++
		s.TotalStock += p.CurrentStock
		s.TotalValue = s.TotalValue.Add(p.SalePrice.Mul(decimal.NewFromInt(int64(p.CurrentStock))))
	}
	return s, nil
}

func (v *reportView) GetInventoryValueAtCost(_ context.Context) (decimal.Decimal, error) {
	defer lock(v.s, v.inTx)()
	value := decimal.Zero
	for _, p := range v.s.st.products {
		value = value.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(p.CurrentStock))))
	}
	return value, nil
}

func (v *reportView) GetSalesBetween(_ context.Context, start, end time.Time) (repository.TodaySales, error) {
	defer lock(v.s, v.inTx)()
	t := repository.TodaySales{Total: decimal.Zero}
	for _, s := range v.s.st.sales {
		if s.CreatedAt.Before(start) || !s.CreatedAt.Before(end) {
			continue
		}
		t.Total = t.Total.Add(s.Total)
		t.Quantity += s.Quantity
		t.Count++
	}
	return t, nil
}
