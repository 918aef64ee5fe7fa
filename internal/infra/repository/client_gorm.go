package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/barbersoft/agenda-api/internal/domain/schedule"
	"github.com/barbersoft/agenda-api/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) FindByPhone(
	ctx context.Context,
	unitID string,
	phone string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("unit_id = ? AND phone = ?", unitID, phone).
		First(&client).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientGormRepository) Create(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientGormRepository) UpdateFields(
	ctx context.Context,
	clientID string,
	updates map[string]any,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Updates(updates).Error
}

var _ domain.ClientRepository = (*ClientGormRepository)(nil)
