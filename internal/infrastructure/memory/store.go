// Package memory implementa los puertos de persistencia en memoria del proceso.
// Cada transacción trabaja sobre una copia del estado y la publica al confirmar;
// un único mutex serializa a los escritores, lo que equivale a aislamiento serializable.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

type state struct {
	ingredients map[int64]entity.Ingredient
	products    map[int64]entity.Product
	recipes     map[int64]entity.RecipeEntry
	tables      map[int64]entity.Table
	comandas    map[int64]entity.Comanda
	items       map[int64]entity.ComandaItem
	sales       []entity.Sale
	movements   []entity.StockMovement
	seq         map[string]int64
}

func newState() *state {
	return &state{
		ingredients: map[int64]entity.Ingredient{},
		products:    map[int64]entity.Product{},
		recipes:     map[int64]entity.RecipeEntry{},
		tables:      map[int64]entity.Table{},
		comandas:    map[int64]entity.Comanda{},
		items:       map[int64]entity.ComandaItem{},
		seq:         map[string]int64{},
	}
}

func (s *state) clone() *state {
	c := &state{
		ingredients: make(map[int64]entity.Ingredient, len(s.ingredients)),
		products:    make(map[int64]entity.Product, len(s.products)),
		recipes:     make(map[int64]entity.RecipeEntry, len(s.recipes)),
		tables:      make(map[int64]entity.Table, len(s.tables)),
		comandas:    make(map[int64]entity.Comanda, len(s.comandas)),
		items:       make(map[int64]entity.ComandaItem, len(s.items)),
		sales:       append([]entity.Sale(nil), s.sales...),
		movements:   append([]entity.StockMovement(nil), s.movements...),
		seq:         make(map[string]int64, len(s.seq)),
	}
	for k, v := range s.ingredients {
		c.ingredients[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.recipes {
		c.recipes[k] = v
	}
	for k, v := range s.tables {
		c.tables[k] = v
	}
	for k, v := range s.comandas {
		c.comandas[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.seq {
		c.seq[k] = v
	}
	return c
}

func (s *state) next(name string) int64 {
	s.seq[name]++
	return s.seq[name]
}

// Store es el almacenamiento embebido. Implementa TxRunner y, vía Repos, todos los repositorios.
type Store struct {
	mu     sync.Mutex
	st     *state
	faults map[string]error
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState(), faults: map[string]error{}}
}

// Run ejecuta fn sobre una copia del estado. Si fn falla o ctx se cancela antes de confirmar,
// la copia se descarta y nada de lo escrito queda visible.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Storage(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(s.bind(work)); err != nil {
		return domain.Storage(err)
	}
	if err := ctx.Err(); err != nil {
		return domain.Storage(err)
	}
	s.st = work
	return nil
}

// Repos devuelve repositorios fuera de transacción: cada llamada es atómica por sí sola.
func (s *Store) Repos() repository.Repos {
	return s.bind(nil)
}

// FailOn hace que la operación op (p.ej. "sales.create") falle con err hasta que se limpie con nil.
// Solo para pruebas de atomicidad.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

func (s *Store) bind(st *state) repository.Repos {
	h := &handle{store: s, st: st}
	return repository.Repos{
		Ingredients: &ingredientRepo{h},
		Products:    &productRepo{h},
		Recipes:     &recipeRepo{h},
		Sales:       &saleRepo{h},
		Movements:   &movementRepo{h},
		Tables:      &tableRepo{h},
		Comandas:    &comandaRepo{h},
	}
}

// handle resuelve el estado sobre el que opera un repositorio: la copia de la transacción
// o, fuera de ella, el estado confirmado bajo el mutex.
type handle struct {
	store *Store
	st    *state
}

func (h *handle) do(op string, fn func(st *state) error) error {
	if h.st != nil {
		if err := h.store.faults[op]; err != nil {
			return err
		}
		return fn(h.st)
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if err := h.store.faults[op]; err != nil {
		return err
	}
	return fn(h.store.st)
}
