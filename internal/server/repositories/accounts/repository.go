// Package accounts provides durable storage for account records. The
// PostgreSQL implementation enforces email and phone uniqueness with table
// constraints, which is the hard backstop for concurrent registrations that
// pass the service-level pre-checks simultaneously.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/profilehub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByPhone(ctx context.Context, phone string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) (*models.Account, error)
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]*models.Account, error)
	SearchByUserName(ctx context.Context, substring string) ([]*models.Account, error)
}
