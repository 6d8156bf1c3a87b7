package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/evorisgroup/chatbot-backend/internal/core/tenant"
	"github.com/evorisgroup/chatbot-backend/internal/modules/chat/models"
)

// ClientRepo reads tenant rows. It satisfies tenant.Store.
type ClientRepo interface {
	tenant.Store
	GetByID(ctx context.Context, clientID string) (*models.Client, error)
}

type clientRepo struct {
	db *gorm.DB
}

// NewClientRepo creates a new client repository
func NewClientRepo(db *gorm.DB) ClientRepo {
	return &clientRepo{db: db}
}

func (r *clientRepo) GetByID(ctx context.Context, clientID string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, tenant.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load client %s: %w", clientID, err)
	}
	return &client, nil
}

func (r *clientRepo) FetchTenant(ctx context.Context, clientID string) (*tenant.Record, error) {
	client, err := r.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return client.ToRecord(), nil
}
