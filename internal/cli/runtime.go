package cli

import (
	"context"

	"github.com/deppfellow/go-invoicing/internal/config"
	"github.com/deppfellow/go-invoicing/internal/database"
	"github.com/deppfellow/go-invoicing/internal/repository"
	"github.com/deppfellow/go-invoicing/internal/service"
	"github.com/rs/zerolog"
)

// NewRuntime wires the commands to PostgreSQL. The CLI never starts the
// New Relic agent, Redis or the job workers.
func NewRuntime(cfg *config.Config, logger *zerolog.Logger) *Runtime {
	return &Runtime{
		Migrate: func(ctx context.Context) error {
			return database.Migrate(ctx, logger, cfg)
		},
		OpenAccounts: func(ctx context.Context) (Accounts, func(), error) {
			db, err := database.New(cfg, logger, nil)
			if err != nil {
				return nil, nil, err
			}

			repos := repository.NewRepositoriesWithPool(repository.NewPool(db.Pool))
			closeFn := func() {
				if err := db.Close(); err != nil {
					logger.Warn().Err(err).Msg("failed to close database")
				}
			}
			return service.NewAccountService(repos.Users, repos.Customers), closeFn, nil
		},
	}
}
