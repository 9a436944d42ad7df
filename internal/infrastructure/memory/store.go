// Package memory implementa los repositorios en memoria para desarrollo local y pruebas.
// Las transacciones se serializan con un mutex y se revierten restaurando una copia del estado.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-bins/internal/application/inventory"
	"github.com/jhoicas/Inventario-bins/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type binKey struct {
	item      string
	warehouse string
}

type state struct {
	items      map[string]*entity.Item
	warehouses map[string]*entity.Warehouse
	bins       map[binKey]*entity.Bin
	ledger     []*entity.StockLedgerEntry // orden de inserción
	orders     map[string]*entity.ProductionOrder
}

func newState() *state {
	return &state{
		items:      map[string]*entity.Item{},
		warehouses: map[string]*entity.Warehouse{},
		bins:       map[binKey]*entity.Bin{},
		orders:     map[string]*entity.ProductionOrder{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.items {
		it := *v
		c.items[k] = &it
	}
	for k, v := range s.warehouses {
		w := *v
		c.warehouses[k] = &w
	}
	for k, v := range s.bins {
		b := *v
		c.bins[k] = &b
	}
	c.ledger = make([]*entity.StockLedgerEntry, 0, len(s.ledger))
	for _, v := range s.ledger {
		e := *v
		c.ledger = append(c.ledger, &e)
	}
	for k, v := range s.orders {
		c.orders[k] = copyOrder(v)
	}
	return c
}

// Store almacén en memoria. Implementa inventory.TxRunner.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn en exclusión mutua; si fn falla se descartan sus cambios.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(s.repositories()); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) repositories() inventory.Repositories {
	return inventory.Repositories{
		Bins:       &binRepo{s: s},
		Items:      &itemRepo{s: s},
		Warehouses: &warehouseRepo{s: s},
		Ledger:     &ledgerRepo{s: s},
		Production: &productionRepo{s: s},
	}
}

func copyOrder(o *entity.ProductionOrder) *entity.ProductionOrder {
	c := *o
	c.Items = append([]entity.ProductionOrderItem(nil), o.Items...)
	return &c
}
