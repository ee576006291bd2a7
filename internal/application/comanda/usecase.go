package comanda

import (
	"context"
	"fmt"
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
	"github.com/jhoicas/restaurante-api/internal/application/sale"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

const instrumentation = "github.com/jhoicas/restaurante-api/internal/application/comanda"

// LinePolicy decide qué pasa al agregar de nuevo un producto ya presente en la comanda.
type LinePolicy string

const (
	// LinePolicyMerge suma la cantidad en la línea existente (mismo producto y misma observación)
	// conservando el precio congelado original.
	LinePolicyMerge LinePolicy = "merge"
	// LinePolicySeparate crea siempre una línea nueva al precio vigente.
	LinePolicySeparate LinePolicy = "separate"
)

// ParseLinePolicy valida el valor configurado.
func ParseLinePolicy(s string) (LinePolicy, error) {
	switch LinePolicy(s) {
	case LinePolicyMerge, LinePolicySeparate:
		return LinePolicy(s), nil
	case "":
		return LinePolicyMerge, nil
	}
	return "", fmt.Errorf("política de itens inválida: %q (use merge ou separate)", s)
}

// UseCase ciclo de vida de la comanda: abrir, agregar/quitar items, pagar o cancelar.
// El pago reutiliza la misma baja de stock por ficha técnica que las ventas directas.
type UseCase struct {
	txRunner TxRunner
	comandas repository.ComandaRepository
	tables   repository.TableRepository
	products repository.ProductRepository
	receipts ReceiptGenerator
	policy   LinePolicy
	log      *logger.Logger
	tracer   trace.Tracer
	closed   metric.Int64Counter

	now     func() time.Time
	batchID func() string
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	comandas repository.ComandaRepository,
	tables repository.TableRepository,
	products repository.ProductRepository,
	receipts ReceiptGenerator,
	policy LinePolicy,
	log *logger.Logger,
) *UseCase {
	if policy == "" {
		policy = LinePolicyMerge
	}
	closed, _ := otel.Meter(instrumentation).Int64Counter("comandas.closed",
		metric.WithDescription("Comandas encerradas por status final"))
	return &UseCase{
		txRunner: txRunner,
		comandas: comandas,
		tables:   tables,
		products: products,
		receipts: receipts,
		policy:   policy,
		log:      log.WithComponent("comanda"),
		tracer:   otel.Tracer(instrumentation),
		closed:   closed,
		now:      time.Now,
		batchID:  func() string { return uuid.New().String() },
	}
}

// OpenComanda abre una comanda para la mesa y la marca ocupada.
func (uc *UseCase) OpenComanda(ctx context.Context, tableID int64) (*dto.ComandaResponse, error) {
	ctx, span := uc.start(ctx, "comanda.Open", attribute.Int64("table.id", tableID))
	defer span.End()

	now := uc.now()
	var out *dto.ComandaResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		table, err := repos.Tables.GetForUpdate(ctx, tableID)
		if err != nil {
			return err
		}
		if table == nil {
			return domain.Detailed(domain.ErrTableNotFound, map[string]any{"table_id": tableID},
				"mesa ID %d", tableID)
		}
		open, err := repos.Comandas.GetOpenByTable(ctx, tableID)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.Detailed(domain.ErrTableAlreadyOccupied,
				map[string]any{"table_id": tableID, "table_number": table.Number, "comanda_id": open.ID},
				"mesa %d já está com a comanda %d aberta", table.Number, open.ID)
		}
		c := &entity.Comanda{
			TableID:  tableID,
			Status:   entity.ComandaStatusOpen,
			Total:    decimal.Zero,
			OpenedAt: now,
		}
		if err := repos.Comandas.Create(ctx, c); err != nil {
			return err
		}
		if err := repos.Tables.UpdateStatus(ctx, tableID, entity.TableStatusOccupied); err != nil {
			return err
		}
		out = ToResponse(c, nil)
		return nil
	})
	if err != nil {
		observability.Fail(uc.log, span, "comanda.Open", err)
		return nil, err
	}
	uc.log.Info().Int64("comanda_id", out.ID).Int64("table_id", tableID).Msg("comanda aberta")
	return out, nil
}

// AddLineItem agrega un producto con el precio vigente congelado en la línea e incrementa el total.
func (uc *UseCase) AddLineItem(ctx context.Context, comandaID int64, in dto.AddItemRequest) (*dto.ComandaResponse, error) {
	ctx, span := uc.start(ctx, "comanda.AddLineItem",
		attribute.Int64("comanda.id", comandaID), attribute.Int64("product.id", in.ProductID))
	defer span.End()

	if in.ProductID <= 0 {
		err := domain.Detailed(domain.ErrInvalidInput, nil, "produto_id obrigatório")
		observability.Fail(uc.log, span, "comanda.AddLineItem", err)
		return nil, err
	}
	if !entity.ValidQuantity(in.Quantity) {
		err := domain.Detailed(domain.ErrInvalidQuantity, map[string]any{"quantity": in.Quantity},
			"quantidade %d", in.Quantity)
		observability.Fail(uc.log, span, "comanda.AddLineItem", err)
		return nil, err
	}

	now := uc.now()
	var out *dto.ComandaResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		c, err := lockOpen(ctx, repos, comandaID)
		if err != nil {
			return err
		}
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ProductNotFound(in.ProductID)
		}

		var delta decimal.Decimal
		var existing *entity.ComandaItem
		if uc.policy == LinePolicyMerge {
			if existing, err = repos.Comandas.FindItem(ctx, comandaID, in.ProductID, in.Notes); err != nil {
				return err
			}
		}
		if existing != nil {
			if in.Quantity > entity.MaxLineQuantity-existing.Quantity {
				return domain.Detailed(domain.ErrInvalidQuantity,
					map[string]any{"item_id": existing.ID, "quantity": existing.Quantity, "added": in.Quantity},
					"item %d ultrapassaria %d unidades", existing.ID, entity.MaxLineQuantity)
			}
			before := existing.Subtotal
			existing.Quantity += in.Quantity
			existing.Subtotal = entity.LineSubtotal(existing.UnitPrice, existing.Quantity)
			if err := repos.Comandas.UpdateItem(ctx, existing); err != nil {
				return err
			}
			delta = existing.Subtotal.Sub(before)
		} else {
			item := &entity.ComandaItem{
				ComandaID: comandaID,
				ProductID: product.ID,
				Quantity:  in.Quantity,
				UnitPrice: product.Price,
				Subtotal:  entity.LineSubtotal(product.Price, in.Quantity),
				Notes:     in.Notes,
				AddedAt:   now,
			}
			if err := repos.Comandas.AddItem(ctx, item); err != nil {
				return err
			}
			delta = item.Subtotal
		}

		c.Total = c.Total.Add(delta)
		if err := repos.Comandas.UpdateTotal(ctx, c); err != nil {
			return err
		}
		items, err := verifiedItems(ctx, repos, c)
		if err != nil {
			return err
		}
		out = ToResponse(c, items)
		return nil
	})
	if err != nil {
		observability.Fail(uc.log, span, "comanda.AddLineItem", err)
		return nil, err
	}
	return out, nil
}

// RemoveLineItem elimina la línea y descuenta su subtotal del total.
func (uc *UseCase) RemoveLineItem(ctx context.Context, comandaID, itemID int64) (*dto.ComandaResponse, error) {
	ctx, span := uc.start(ctx, "comanda.RemoveLineItem",
		attribute.Int64("comanda.id", comandaID), attribute.Int64("item.id", itemID))
	defer span.End()

	var out *dto.ComandaResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		c, err := lockOpen(ctx, repos, comandaID)
		if err != nil {
			return err
		}
		item, err := repos.Comandas.GetItem(ctx, comandaID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.Detailed(domain.ErrItemNotFound,
				map[string]any{"comanda_id": comandaID, "item_id": itemID},
				"item %d na comanda %d", itemID, comandaID)
		}
		if err := repos.Comandas.DeleteItem(ctx, comandaID, itemID); err != nil {
			return err
		}
		c.Total = c.Total.Sub(item.Subtotal)
		if err := repos.Comandas.UpdateTotal(ctx, c); err != nil {
			return err
		}
		items, err := verifiedItems(ctx, repos, c)
		if err != nil {
			return err
		}
		out = ToResponse(c, items)
		return nil
	})
	if err != nil {
		observability.Fail(uc.log, span, "comanda.RemoveLineItem", err)
		return nil, err
	}
	return out, nil
}

// CloseAndPay cobra la comanda: descuenta los insumos de cada línea, graba una venta por línea,
// marca la comanda paga y libera la mesa. Todo en una transacción.
func (uc *UseCase) CloseAndPay(ctx context.Context, comandaID int64, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	ctx, span := uc.start(ctx, "comanda.CloseAndPay",
		attribute.Int64("comanda.id", comandaID), attribute.String("payment.method", in.PaymentMethod))
	defer span.End()

	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		err := domain.Detailed(domain.ErrInvalidPaymentMethod,
			map[string]any{"payment_method": in.PaymentMethod}, "%q", in.PaymentMethod)
		observability.Fail(uc.log, span, "comanda.CloseAndPay", err)
		return nil, err
	}
	if in.AmountTendered.IsNegative() {
		err := domain.Detailed(domain.ErrInvalidInput, nil, "valor_pago negativo")
		observability.Fail(uc.log, span, "comanda.CloseAndPay", err)
		return nil, err
	}

	now := uc.now()
	batchID := uc.batchID()
	var out *dto.PaymentResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		c, err := lockOpen(ctx, repos, comandaID)
		if err != nil {
			return err
		}
		items, err := verifiedItems(ctx, repos, c)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.Detailed(domain.ErrComandaEmpty, map[string]any{"comanda_id": comandaID},
				"comanda %d", comandaID)
		}
		if in.AmountTendered.LessThan(c.Total) {
			return domain.InsufficientPayment(c.Total.StringFixed(2), in.AmountTendered.StringFixed(2))
		}

		lines := make([]inventory.Line, 0, len(items))
		for _, it := range items {
			lines = append(lines, inventory.Line{ProductID: it.ProductID, Quantity: it.Quantity})
		}
		results, err := inventory.DeductInTx(ctx, repos, lines, batchID, now)
		if err != nil {
			return err
		}

		resp := &dto.PaymentResponse{BatchID: batchID}
		for i, it := range items {
			s := &entity.Sale{
				BatchID:   batchID,
				ProductID: it.ProductID,
				ComandaID: &c.ID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				SoldAt:    now,
			}
			if err := repos.Sales.Create(ctx, s); err != nil {
				return err
			}
			line := sale.SaleToResponse(s)
			line.ProductName = results[i].Product.Name
			resp.Sales = append(resp.Sales, line)
		}

		change := in.AmountTendered.Sub(c.Total)
		tendered := in.AmountTendered
		c.Status = entity.ComandaStatusPaid
		c.ClosedAt = &now
		c.PaymentMethod = in.PaymentMethod
		c.AmountTendered = &tendered
		c.Change = &change
		if err := repos.Comandas.Close(ctx, c); err != nil {
			return err
		}
		if err := repos.Tables.UpdateStatus(ctx, c.TableID, entity.TableStatusAvailable); err != nil {
			return err
		}
		resp.Comanda = *ToResponse(c, items)
		resp.Change = change
		resp.Deductions = inventory.SummarizeDeductions(results)
		out = resp
		return nil
	})
	if err != nil {
		observability.Fail(uc.log, span, "comanda.CloseAndPay", err)
		return nil, err
	}
	uc.closed.Add(ctx, 1, metric.WithAttributes(attribute.String("status", entity.ComandaStatusPaid)))
	uc.log.Info().
		Int64("comanda_id", comandaID).
		Str("batch_id", batchID).
		Str("total", out.Comanda.Total.StringFixed(2)).
		Str("troco", out.Change.StringFixed(2)).
		Str("forma_pagamento", in.PaymentMethod).
		Msg("comanda paga")
	return out, nil
}

// Cancel cancela la comanda abierta y libera la mesa sin grabar ventas.
func (uc *UseCase) Cancel(ctx context.Context, comandaID int64) (*dto.ComandaResponse, error) {
	ctx, span := uc.start(ctx, "comanda.Cancel", attribute.Int64("comanda.id", comandaID))
	defer span.End()

	now := uc.now()
	var out *dto.ComandaResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		c, err := lockOpen(ctx, repos, comandaID)
		if err != nil {
			return err
		}
		c.Status = entity.ComandaStatusCancelled
		c.ClosedAt = &now
		if err := repos.Comandas.Close(ctx, c); err != nil {
			return err
		}
		if err := repos.Tables.UpdateStatus(ctx, c.TableID, entity.TableStatusAvailable); err != nil {
			return err
		}
		items, err := repos.Comandas.ListItems(ctx, comandaID)
		if err != nil {
			return err
		}
		out = ToResponse(c, items)
		return nil
	})
	if err != nil {
		observability.Fail(uc.log, span, "comanda.Cancel", err)
		return nil, err
	}
	uc.closed.Add(ctx, 1, metric.WithAttributes(attribute.String("status", entity.ComandaStatusCancelled)))
	uc.log.Info().Int64("comanda_id", comandaID).Msg("comanda cancelada")
	return out, nil
}

// Get devuelve la comanda con sus items.
func (uc *UseCase) Get(ctx context.Context, comandaID int64) (*dto.ComandaResponse, error) {
	c, err := uc.comandas.GetByID(ctx, comandaID)
	if err != nil {
		return nil, domain.Storage(err)
	}
	if c == nil {
		return nil, comandaNotFound(comandaID)
	}
	items, err := uc.comandas.ListItems(ctx, comandaID)
	if err != nil {
		return nil, domain.Storage(err)
	}
	return ToResponse(c, items), nil
}

// List devuelve las comandas, opcionalmente filtradas por status.
func (uc *UseCase) List(ctx context.Context, status string) ([]dto.ComandaResponse, error) {
	switch status {
	case "", entity.ComandaStatusOpen, entity.ComandaStatusPaid, entity.ComandaStatusCancelled:
	default:
		return nil, domain.Detailed(domain.ErrInvalidInput, map[string]any{"status": status}, "status %q", status)
	}
	list, err := uc.comandas.List(ctx, status)
	if err != nil {
		return nil, domain.Storage(err)
	}
	out := make([]dto.ComandaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *ToResponse(c, nil))
	}
	return out, nil
}

// Receipt genera el PDF de la comanda (conferência si está abierta, recibo si está paga).
func (uc *UseCase) Receipt(ctx context.Context, comandaID int64) ([]byte, error) {
	ctx, span := uc.start(ctx, "comanda.Receipt", attribute.Int64("comanda.id", comandaID))
	defer span.End()

	c, err := uc.comandas.GetByID(ctx, comandaID)
	if err != nil {
		return nil, domain.Storage(err)
	}
	if c == nil {
		return nil, comandaNotFound(comandaID)
	}
	items, err := uc.comandas.ListItems(ctx, comandaID)
	if err != nil {
		return nil, domain.Storage(err)
	}
	table, err := uc.tables.GetByID(ctx, c.TableID)
	if err != nil {
		return nil, domain.Storage(err)
	}
	receipt := Receipt{Comanda: c, Table: table, Lines: make([]ReceiptLine, 0, len(items))}
	for _, it := range items {
		name := fmt.Sprintf("Produto %d", it.ProductID)
		if p, err := uc.products.GetByID(ctx, it.ProductID); err == nil && p != nil {
			name = p.Name
		}
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			ProductName: name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
			Notes:       it.Notes,
		})
	}
	pdf, err := uc.receipts.GenerateReceiptPDF(ctx, receipt)
	if err != nil {
		err = domain.Storage(err)
		observability.Fail(uc.log, span, "comanda.Receipt", err)
		return nil, err
	}
	return pdf, nil
}

func (uc *UseCase) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return uc.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func comandaNotFound(id int64) error {
	return domain.Detailed(domain.ErrComandaNotFound, map[string]any{"comanda_id": id}, "comanda ID %d", id)
}

// lockOpen bloquea la comanda y exige estado aberta.
func lockOpen(ctx context.Context, repos repository.Repos, id int64) (*entity.Comanda, error) {
	c, err := repos.Comandas.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, comandaNotFound(id)
	}
	if !c.IsOpen() {
		return nil, domain.Detailed(domain.ErrComandaNotOpen,
			map[string]any{"comanda_id": id, "status": c.Status},
			"comanda %d está %s", id, c.Status)
	}
	return c, nil
}

// verifiedItems lista los items y comprueba total == suma de subtotales.
func verifiedItems(ctx context.Context, repos repository.Repos, c *entity.Comanda) ([]*entity.ComandaItem, error) {
	items, err := repos.Comandas.ListItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Subtotal)
	}
	if !sum.Equal(c.Total) {
		return nil, domain.Consistency(map[string]any{
			"comanda_id": c.ID,
			"total":      c.Total.String(),
			"items_sum":  sum.String(),
		}, "total da comanda %d difere da soma dos itens", c.ID)
	}
	return items, nil
}

// ToResponse mapea comanda + items al DTO.
func ToResponse(c *entity.Comanda, items []*entity.ComandaItem) *dto.ComandaResponse {
	out := &dto.ComandaResponse{
		ID:             c.ID,
		TableID:        c.TableID,
		Status:         c.Status,
		Total:          c.Total,
		PaymentMethod:  c.PaymentMethod,
		AmountTendered: c.AmountTendered,
		Change:         c.Change,
		OpenedAt:       c.OpenedAt,
		ClosedAt:       c.ClosedAt,
		Items:          make([]dto.ComandaItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.ComandaItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
			Notes:     it.Notes,
			AddedAt:   it.AddedAt,
		})
	}
	return out
}
