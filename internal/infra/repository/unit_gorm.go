package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/barbersoft/agenda-api/internal/domain/schedule"
	"github.com/barbersoft/agenda-api/internal/models"
)

type UnitGormRepository struct {
	db *gorm.DB
}

func NewUnitGormRepository(db *gorm.DB) *UnitGormRepository {
	return &UnitGormRepository{db: db}
}

func (r *UnitGormRepository) GetByInstanceName(
	ctx context.Context,
	instanceName string,
) (*models.Unit, error) {

	var unit models.Unit
	err := r.db.WithContext(ctx).
		Where("evolution_instance_name = ?", instanceName).
		First(&unit).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

var _ domain.UnitRepository = (*UnitGormRepository)(nil)
