package sale

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/inventory"
	"github.com/jhoicas/restaurante-api/internal/application/observability"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

const instrumentation = "github.com/jhoicas/restaurante-api/internal/application/sale"

// UseCase registra ventas directas del PDV: resuelve fichas técnicas, descuenta stock y
// graba las ventas como una única transacción.
type UseCase struct {
	txRunner TxRunner
	sales    repository.SaleRepository
	log      *logger.Logger
	tracer   trace.Tracer

	registered metric.Int64Counter
	rejected   metric.Int64Counter

	now     func() time.Time
	batchID func() string
}

// NewUseCase construye el caso de uso. Tracer y meter se toman de los providers globales de OTel.
func NewUseCase(
	txRunner TxRunner,
	sales repository.SaleRepository,
	log *logger.Logger,
) *UseCase {
	meter := otel.Meter(instrumentation)
	registered, _ := meter.Int64Counter("sales.registered",
		metric.WithDescription("Líneas de venta registradas"))
	rejected, _ := meter.Int64Counter("sales.rejected",
		metric.WithDescription("Ventas rechazadas por código de error"))
	return &UseCase{
		txRunner:   txRunner,
		sales:      sales,
		log:        log.WithComponent("sale"),
		tracer:     otel.Tracer(instrumentation),
		registered: registered,
		rejected:   rejected,
		now:        time.Now,
		batchID:    func() string { return uuid.New().String() },
	}
}

// RegisterSale valida el carrito y, en una sola transacción, descuenta los insumos de cada
// línea según su ficha técnica y graba una venta por línea. Cualquier falla deja stock y
// ventas exactamente como estaban.
func (uc *UseCase) RegisterSale(ctx context.Context, in dto.RegisterSaleRequest) (*dto.SaleConfirmation, error) {
	ctx, span := uc.tracer.Start(ctx, "sale.Register",
		trace.WithAttributes(attribute.Int("cart.lines", len(in.Items))))
	defer span.End()

	lines, err := cartLines(in.Items)
	if err != nil {
		uc.fail(ctx, span, err)
		return nil, err
	}

	now := uc.now()
	batchID := uc.batchID()
	span.SetAttributes(attribute.String("sale.batch_id", batchID))

	var conf *dto.SaleConfirmation
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		results, err := inventory.DeductInTx(ctx, repos, lines, batchID, now)
		if err != nil {
			return err
		}
		c := &dto.SaleConfirmation{BatchID: batchID, SoldAt: now, Total: decimal.Zero}
		for _, r := range results {
			s := &entity.Sale{
				BatchID:   batchID,
				ProductID: r.Product.ID,
				Quantity:  r.Quantity,
				UnitPrice: r.Product.Price,
				SoldAt:    now,
			}
			if err := repos.Sales.Create(ctx, s); err != nil {
				return err
			}
			line := SaleToResponse(s)
			line.ProductName = r.Product.Name
			c.Sales = append(c.Sales, line)
			c.Total = c.Total.Add(line.Subtotal)
		}
		c.Deductions = inventory.SummarizeDeductions(results)
		conf = c
		return nil
	})
	if err != nil {
		uc.fail(ctx, span, err)
		return nil, err
	}

	uc.registered.Add(ctx, int64(len(conf.Sales)))
	uc.log.Info().
		Str("batch_id", batchID).
		Int("lines", len(conf.Sales)).
		Str("total", conf.Total.StringFixed(2)).
		Msg("venda registrada")
	return conf, nil
}

// ListSales devuelve el histórico de ventas, más reciente primero.
func (uc *UseCase) ListSales(ctx context.Context, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	list, err := uc.sales.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Storage(err)
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleLineResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, s := range list {
		out.Items = append(out.Items, SaleToResponse(s))
	}
	return out, nil
}

func (uc *UseCase) fail(ctx context.Context, span trace.Span, err error) {
	uc.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("code", domain.CodeOf(err))))
	observability.Fail(uc.log, span, "sale.Register", err)
}

// cartLines valida el carrito antes de tocar el almacenamiento.
func cartLines(items []dto.CartItemRequest) ([]inventory.Line, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	lines := make([]inventory.Line, 0, len(items))
	for i, it := range items {
		if it.ProductID <= 0 {
			return nil, domain.Detailed(domain.ErrInvalidInput, map[string]any{"line": i},
				"linha %d sem produto_id", i+1)
		}
		if !entity.ValidQuantity(it.Quantity) {
			return nil, domain.Detailed(domain.ErrInvalidQuantity,
				map[string]any{"line": i, "product_id": it.ProductID, "quantity": it.Quantity},
				"linha %d com quantidade %d", i+1, it.Quantity)
		}
		lines = append(lines, inventory.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines, nil
}

// SaleToResponse mapea la entidad al DTO.
func SaleToResponse(s *entity.Sale) dto.SaleLineResponse {
	return dto.SaleLineResponse{
		SaleID:    s.ID,
		ProductID: s.ProductID,
		ComandaID: s.ComandaID,
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice,
		Subtotal:  s.Subtotal(),
		SoldAt:    s.SoldAt,
	}
}
