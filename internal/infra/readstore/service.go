package readstore

import (
	"context"
	"errors"

	"slotledger/internal/domain/service"
	"slotledger/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceReadStore struct {
	pool *pgxpool.Pool
}

func NewServiceReadStore(pool *pgxpool.Pool) *ServiceReadStore {
	return &ServiceReadStore{pool: pool}
}

const findServiceByIDSQL = `
SELECT id, name, duration_minutes
FROM services
WHERE id = $1`

func (r *ServiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*service.Service, error) {
	var (
		serviceID       uuid.UUID
		name            string
		durationMinutes int
	)
	err := r.pool.QueryRow(ctx, findServiceByIDSQL, id).Scan(&serviceID, &name, &durationMinutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err, infra.ClassifyPgErr(err))
	}

	svc, err := service.NewService(serviceID, name, durationMinutes)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid service row", err)
	}
	return svc, nil
}
