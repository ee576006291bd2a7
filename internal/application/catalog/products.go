package catalog

import (
	"context"
	"strings"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// ListProducts lista el cardápio.
func (uc *UseCase) ListProducts(ctx context.Context) ([]*dto.ProductResponse, error) {
	list, err := uc.repos.Products.List(ctx)
	if err != nil {
		return nil, domain.Storage(err)
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// GetProduct obtiene un producto.
func (uc *UseCase) GetProduct(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage(err)
	}
	if p == nil {
		return nil, domain.ProductNotFound(id)
	}
	return toProductResponse(p), nil
}

// CreateProduct crea un producto con precio > 0. La ficha técnica se carga aparte.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Detailed(domain.ErrInvalidInput, nil, "nome é obrigatório")
	}
	price := in.Price.Round(2)
	if !price.IsPositive() {
		return nil, domain.Detailed(domain.ErrInvalidInput, map[string]any{"price": in.Price.String()},
			"preco_venda deve ser maior que zero")
	}
	p := &entity.Product{Name: name, Price: price, CreatedAt: uc.now()}
	if err := uc.repos.Products.Create(ctx, p); err != nil {
		return nil, domain.Storage(err)
	}
	uc.log.Info().Int64("product_id", p.ID).Str("name", p.Name).Msg("produto cadastrado")
	return toProductResponse(p), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price}
}
