package components

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"redemption-service/internal/infra/db"
	"redemption-service/internal/infra/memstore"
	"redemption-service/internal/infra/readstore"
	"redemption-service/internal/infra/uow"
	"redemption-service/internal/pkg/config"
	"redemption-service/internal/usecase/queries"
	"redemption-service/internal/usecase/shared"

	"go.uber.org/fx"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewPersistence,
	),
)

type Persistence struct {
	fx.Out

	UoW          shared.UnitOfWork
	Codes        queries.CodeReadStore
	Reservations queries.ReservationReadStore
	Referrals    queries.ReferralReadStore
}

// NewPersistence selects the backend named by REDEMPTION_STORE.
func NewPersistence(lc fx.Lifecycle, cfg config.Config) (Persistence, error) {
	switch cfg.Redemption.Store {
	case StoreMemory:
		slog.Warn("using in-memory store; state is lost on restart")
		store := memstore.New()
		if cfg.Redemption.SeedFile != "" {
			n, err := store.SeedFromFile(context.Background(), cfg.Redemption.SeedFile, time.Now())
			if err != nil {
				return Persistence{}, err
			}
			slog.Info("seeded in-memory store", "codes", n, "file", cfg.Redemption.SeedFile)
		}
		return Persistence{UoW: store, Codes: store, Reservations: store, Referrals: store}, nil

	case StorePostgres:
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return Persistence{}, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		return Persistence{
			UoW:          uow.NewPostgresUoW(pool),
			Codes:        readstore.NewCodeReadStore(pool),
			Reservations: readstore.NewReservationReadStore(pool),
			Referrals:    readstore.NewReferralReadStore(pool),
		}, nil

	default:
		return Persistence{}, fmt.Errorf("unknown REDEMPTION_STORE %q", cfg.Redemption.Store)
	}
}
