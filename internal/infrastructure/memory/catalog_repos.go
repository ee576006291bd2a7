package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

type ingredientRepo struct{ h *handle }

func (r *ingredientRepo) Create(_ context.Context, ing *entity.Ingredient) error {
	return r.h.do("ingredients.create", func(st *state) error {
		ing.ID = st.next("ingredients")
		st.ingredients[ing.ID] = *ing
		return nil
	})
}

func (r *ingredientRepo) GetByID(_ context.Context, id int64) (*entity.Ingredient, error) {
	var out *entity.Ingredient
	err := r.h.do("ingredients.get", func(st *state) error {
		if ing, ok := st.ingredients[id]; ok {
			out = &ing
		}
		return nil
	})
	return out, err
}

func (r *ingredientRepo) List(_ context.Context) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	err := r.h.do("ingredients.list", func(st *state) error {
		for _, ing := range st.ingredients {
			ing := ing
			out = append(out, &ing)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *ingredientRepo) Update(_ context.Context, ing *entity.Ingredient) error {
	return r.h.do("ingredients.update", func(st *state) error {
		cur, ok := st.ingredients[ing.ID]
		if !ok {
			return domain.IngredientNotFound(ing.ID)
		}
		cur.Name = ing.Name
		cur.UnitMeasure = ing.UnitMeasure
		cur.Minimum = ing.Minimum
		cur.UpdatedAt = ing.UpdatedAt
		st.ingredients[ing.ID] = cur
		return nil
	})
}

func (r *ingredientRepo) Delete(_ context.Context, id int64) error {
	return r.h.do("ingredients.delete", func(st *state) error {
		for _, e := range st.recipes {
			if e.IngredientID == id {
				return domain.Detailed(domain.ErrIngredientInUse, map[string]any{"ingredient_id": id},
					"insumo ID %d referenciado por ficha técnica", id)
			}
		}
		delete(st.ingredients, id)
		return nil
	})
}

func (r *ingredientRepo) LockForUpdate(_ context.Context, ids []int64) (map[int64]*entity.Ingredient, error) {
	out := make(map[int64]*entity.Ingredient, len(ids))
	err := r.h.do("ingredients.lock", func(st *state) error {
		for _, id := range ids {
			if ing, ok := st.ingredients[id]; ok {
				out[id] = &ing
			}
		}
		return nil
	})
	return out, err
}

func (r *ingredientRepo) AddStock(_ context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.h.do("ingredients.add_stock", func(st *state) error {
		ing, ok := st.ingredients[id]
		if !ok {
			return domain.IngredientNotFound(id)
		}
		ing.Stock = ing.Stock.Add(delta)
		ing.UpdatedAt = time.Now()
		st.ingredients[id] = ing
		balance = ing.Stock
		return nil
	})
	return balance, err
}

func (r *ingredientRepo) SetAverageCost(_ context.Context, id int64, cost decimal.Decimal) error {
	return r.h.do("ingredients.set_cost", func(st *state) error {
		ing, ok := st.ingredients[id]
		if !ok {
			return domain.IngredientNotFound(id)
		}
		ing.AverageCost = cost
		st.ingredients[id] = ing
		return nil
	})
}

func (r *ingredientRepo) ListBelowMinimum(_ context.Context) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	err := r.h.do("ingredients.list", func(st *state) error {
		for _, ing := range st.ingredients {
			ing := ing
			if ing.BelowMinimum() {
				out = append(out, &ing)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

type productRepo struct{ h *handle }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.h.do("products.create", func(st *state) error {
		p.ID = st.next("products")
		st.products[p.ID] = *p
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.do("products.get", func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *productRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.h.do("products.list", func(st *state) error {
		for _, p := range st.products {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

type recipeRepo struct{ h *handle }

func (r *recipeRepo) Create(_ context.Context, e *entity.RecipeEntry) error {
	return r.h.do("recipes.create", func(st *state) error {
		if _, ok := st.products[e.ProductID]; !ok {
			return domain.ProductNotFound(e.ProductID)
		}
		if _, ok := st.ingredients[e.IngredientID]; !ok {
			return domain.IngredientNotFound(e.IngredientID)
		}
		e.ID = st.next("recipes")
		stored := *e
		stored.IngredientName, stored.UnitMeasure = "", ""
		st.recipes[e.ID] = stored
		return nil
	})
}

func (r *recipeRepo) GetByID(_ context.Context, id int64) (*entity.RecipeEntry, error) {
	var out *entity.RecipeEntry
	err := r.h.do("recipes.get", func(st *state) error {
		if e, ok := st.recipes[id]; ok {
			out = joinIngredient(st, e)
		}
		return nil
	})
	return out, err
}

func (r *recipeRepo) Delete(_ context.Context, id int64) error {
	return r.h.do("recipes.delete", func(st *state) error {
		delete(st.recipes, id)
		return nil
	})
}

func (r *recipeRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.RecipeEntry, error) {
	var out []*entity.RecipeEntry
	err := r.h.do("recipes.list", func(st *state) error {
		for _, e := range st.recipes {
			if e.ProductID == productID {
				out = append(out, joinIngredient(st, e))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *recipeRepo) IngredientInUse(_ context.Context, ingredientID int64) (bool, error) {
	var inUse bool
	err := r.h.do("recipes.list", func(st *state) error {
		for _, e := range st.recipes {
			if e.IngredientID == ingredientID {
				inUse = true
				break
			}
		}
		return nil
	})
	return inUse, err
}

// joinIngredient emula el LEFT JOIN con insumos.
func joinIngredient(st *state, e entity.RecipeEntry) *entity.RecipeEntry {
	if ing, ok := st.ingredients[e.IngredientID]; ok {
		e.IngredientName = ing.Name
		e.UnitMeasure = ing.UnitMeasure
	}
	return &e
}

type tableRepo struct{ h *handle }

func (r *tableRepo) Create(_ context.Context, t *entity.Table) error {
	return r.h.do("tables.create", func(st *state) error {
		for _, other := range st.tables {
			if other.Number == t.Number {
				return domain.Detailed(domain.ErrDuplicate, map[string]any{"number": t.Number},
					"mesa número %d já existe", t.Number)
			}
		}
		t.ID = st.next("tables")
		st.tables[t.ID] = *t
		return nil
	})
}

func (r *tableRepo) GetByID(_ context.Context, id int64) (*entity.Table, error) {
	var out *entity.Table
	err := r.h.do("tables.get", func(st *state) error {
		if t, ok := st.tables[id]; ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *tableRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Table, error) {
	return r.GetByID(ctx, id)
}

func (r *tableRepo) List(_ context.Context) ([]*entity.Table, error) {
	var out []*entity.Table
	err := r.h.do("tables.list", func(st *state) error {
		for _, t := range st.tables {
			t := t
			out = append(out, &t)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, err
}

func (r *tableRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	return r.h.do("tables.update_status", func(st *state) error {
		t, ok := st.tables[id]
		if !ok {
			return domain.Detailed(domain.ErrTableNotFound, map[string]any{"table_id": id}, "mesa ID %d", id)
		}
		t.Status = status
		st.tables[id] = t
		return nil
	})
}
