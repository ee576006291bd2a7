package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

type saleRepo struct{ h *handle }

func (r *saleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.h.do("sales.create", func(st *state) error {
		s.ID = st.next("sales")
		st.sales = append(st.sales, *s)
		return nil
	})
}

func (r *saleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.h.do("sales.list", func(st *state) error {
		for i := len(st.sales) - 1 - offset; i >= 0 && len(out) < limit; i-- {
			s := st.sales[i]
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

func (r *saleRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.h.do("sales.list", func(st *state) error {
		for _, s := range st.sales {
			if s.BatchID == batchID {
				s := s
				out = append(out, &s)
			}
		}
		return nil
	})
	return out, err
}

type movementRepo struct{ h *handle }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.h.do("movements.create", func(st *state) error {
		m.ID = st.next("movements")
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *movementRepo) ListByIngredient(_ context.Context, ingredientID int64, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.h.do("movements.list", func(st *state) error {
		skipped := 0
		for i := len(st.movements) - 1; i >= 0 && len(out) < limit; i-- {
			m := st.movements[i]
			if m.IngredientID != ingredientID {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

type comandaRepo struct{ h *handle }

func (r *comandaRepo) Create(_ context.Context, c *entity.Comanda) error {
	return r.h.do("comandas.create", func(st *state) error {
		if c.Status == entity.ComandaStatusOpen {
			for _, other := range st.comandas {
				if other.TableID == c.TableID && other.IsOpen() {
					return domain.Detailed(domain.ErrTableAlreadyOccupied,
						map[string]any{"table_id": c.TableID, "comanda_id": other.ID},
						"mesa ID %d já possui a comanda %d aberta", c.TableID, other.ID)
				}
			}
		}
		c.ID = st.next("comandas")
		st.comandas[c.ID] = *c
		return nil
	})
}

func (r *comandaRepo) GetByID(_ context.Context, id int64) (*entity.Comanda, error) {
	var out *entity.Comanda
	err := r.h.do("comandas.get", func(st *state) error {
		if c, ok := st.comandas[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *comandaRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Comanda, error) {
	return r.GetByID(ctx, id)
}

func (r *comandaRepo) GetOpenByTable(_ context.Context, tableID int64) (*entity.Comanda, error) {
	var out *entity.Comanda
	err := r.h.do("comandas.get", func(st *state) error {
		for _, c := range st.comandas {
			if c.TableID == tableID && c.IsOpen() {
				c := c
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *comandaRepo) List(_ context.Context, status string) ([]*entity.Comanda, error) {
	var out []*entity.Comanda
	err := r.h.do("comandas.list", func(st *state) error {
		for _, c := range st.comandas {
			if status != "" && c.Status != status {
				continue
			}
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, err
}

func (r *comandaRepo) UpdateTotal(_ context.Context, c *entity.Comanda) error {
	return r.h.do("comandas.update_total", func(st *state) error {
		cur, ok := st.comandas[c.ID]
		if !ok {
			return domain.ErrComandaNotFound
		}
		cur.Total = c.Total
		st.comandas[c.ID] = cur
		return nil
	})
}

func (r *comandaRepo) Close(_ context.Context, c *entity.Comanda) error {
	return r.h.do("comandas.close", func(st *state) error {
		cur, ok := st.comandas[c.ID]
		if !ok {
			return domain.ErrComandaNotFound
		}
		cur.Status = c.Status
		cur.ClosedAt = c.ClosedAt
		cur.PaymentMethod = c.PaymentMethod
		cur.AmountTendered = c.AmountTendered
		cur.Change = c.Change
		st.comandas[c.ID] = cur
		return nil
	})
}

func (r *comandaRepo) AddItem(_ context.Context, it *entity.ComandaItem) error {
	return r.h.do("comandas.add_item", func(st *state) error {
		if _, ok := st.comandas[it.ComandaID]; !ok {
			return domain.ErrComandaNotFound
		}
		it.ID = st.next("comanda_items")
		st.items[it.ID] = *it
		return nil
	})
}

func (r *comandaRepo) GetItem(_ context.Context, comandaID, itemID int64) (*entity.ComandaItem, error) {
	var out *entity.ComandaItem
	err := r.h.do("comandas.get_item", func(st *state) error {
		if it, ok := st.items[itemID]; ok && it.ComandaID == comandaID {
			out = &it
		}
		return nil
	})
	return out, err
}

func (r *comandaRepo) FindItem(_ context.Context, comandaID, productID int64, notes string) (*entity.ComandaItem, error) {
	var out *entity.ComandaItem
	err := r.h.do("comandas.get_item", func(st *state) error {
		var best int64
		for id, it := range st.items {
			if it.ComandaID == comandaID && it.ProductID == productID && it.Notes == notes && (best == 0 || id < best) {
				best = id
			}
		}
		if best != 0 {
			it := st.items[best]
			out = &it
		}
		return nil
	})
	return out, err
}

func (r *comandaRepo) UpdateItem(_ context.Context, it *entity.ComandaItem) error {
	return r.h.do("comandas.update_item", func(st *state) error {
		cur, ok := st.items[it.ID]
		if !ok || cur.ComandaID != it.ComandaID {
			return domain.ErrItemNotFound
		}
		cur.Quantity = it.Quantity
		cur.Subtotal = it.Subtotal
		st.items[it.ID] = cur
		return nil
	})
}

func (r *comandaRepo) DeleteItem(_ context.Context, comandaID, itemID int64) error {
	return r.h.do("comandas.delete_item", func(st *state) error {
		if it, ok := st.items[itemID]; ok && it.ComandaID == comandaID {
			delete(st.items, itemID)
		}
		return nil
	})
}

func (r *comandaRepo) ListItems(_ context.Context, comandaID int64) ([]*entity.ComandaItem, error) {
	var out []*entity.ComandaItem
	err := r.h.do("comandas.list_items", func(st *state) error {
		for _, it := range st.items {
			if it.ComandaID == comandaID {
				it := it
				out = append(out, &it)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}
