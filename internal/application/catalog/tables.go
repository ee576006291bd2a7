package catalog

import (
	"context"
	"strings"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// ListTables lista las mesas por número.
func (uc *UseCase) ListTables(ctx context.Context) ([]*dto.TableResponse, error) {
	list, err := uc.repos.Tables.List(ctx)
	if err != nil {
		return nil, domain.Storage(err)
	}
	out := make([]*dto.TableResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTableResponse(t))
	}
	return out, nil
}

// CreateTable crea una mesa disponible. Número repetido => ErrDuplicate.
func (uc *UseCase) CreateTable(ctx context.Context, in dto.CreateTableRequest) (*dto.TableResponse, error) {
	if in.Number <= 0 || in.Capacity <= 0 {
		return nil, domain.Detailed(domain.ErrInvalidInput,
			map[string]any{"number": in.Number, "capacity": in.Capacity},
			"numero e capacidade devem ser maiores que zero")
	}
	t := &entity.Table{
		Number:    in.Number,
		Capacity:  in.Capacity,
		Location:  strings.TrimSpace(in.Location),
		Status:    entity.TableStatusAvailable,
		CreatedAt: uc.now(),
	}
	if err := uc.repos.Tables.Create(ctx, t); err != nil {
		return nil, domain.Storage(err)
	}
	return ToTableResponse(t), nil
}

// Reserve pasa una mesa disponible a reservada.
func (uc *UseCase) Reserve(ctx context.Context, tableID int64) (*dto.TableResponse, error) {
	return uc.transition(ctx, tableID, entity.TableStatusAvailable, entity.TableStatusReserved)
}

// ReleaseReservation devuelve una mesa reservada a disponible.
func (uc *UseCase) ReleaseReservation(ctx context.Context, tableID int64) (*dto.TableResponse, error) {
	return uc.transition(ctx, tableID, entity.TableStatusReserved, entity.TableStatusAvailable)
}

func (uc *UseCase) transition(ctx context.Context, tableID int64, from, to string) (*dto.TableResponse, error) {
	var out *dto.TableResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		t, err := repos.Tables.GetForUpdate(ctx, tableID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.Detailed(domain.ErrTableNotFound, map[string]any{"table_id": tableID}, "mesa ID %d", tableID)
		}
		if t.Status != from {
			return domain.Detailed(domain.ErrTableNotAvailable,
				map[string]any{"table_id": tableID, "status": t.Status},
				"mesa %d está %s", t.Number, t.Status)
		}
		if err := repos.Tables.UpdateStatus(ctx, tableID, to); err != nil {
			return err
		}
		t.Status = to
		out = ToTableResponse(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToTableResponse mapea la entidad al DTO.
func ToTableResponse(t *entity.Table) *dto.TableResponse {
	return &dto.TableResponse{
		ID:       t.ID,
		Number:   t.Number,
		Capacity: t.Capacity,
		Location: t.Location,
		Status:   t.Status,
	}
}
