package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/barbersoft/agenda-api/internal/domain/schedule"
	"github.com/barbersoft/agenda-api/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *CatalogGormRepository) ListActiveBarbers(
	ctx context.Context,
	unitID string,
	nameFilter string,
) ([]models.Barber, error) {

	q := r.db.WithContext(ctx).
		Where("unit_id = ? AND is_active = ?", unitID, true)

	if f := strings.TrimSpace(nameFilter); f != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f)+"%")
	}

	var barbers []models.Barber
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

// FindBarberByName devolve o primeiro barbeiro ativo cujo nome contém o
// termo. Ordem de criação como desempate estável; nomes ambíguos resolvem
// para o primeiro, sem desambiguação.
func (r *CatalogGormRepository) FindBarberByName(
	ctx context.Context,
	unitID string,
	name string,
) (*models.Barber, error) {

	var barber models.Barber
	err := r.db.WithContext(ctx).
		Where("unit_id = ? AND is_active = ?", unitID, true).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(name))+"%").
		Order("created_at ASC").
		First(&barber).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListActiveServices(
	ctx context.Context,
	unitID string,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("unit_id = ? AND is_active = ?", unitID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) FindServiceByName(
	ctx context.Context,
	unitID string,
	name string,
) (*models.Service, error) {

	var service models.Service
	err := r.db.WithContext(ctx).
		Where("unit_id = ? AND is_active = ?", unitID, true).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(name))+"%").
		Order("created_at ASC").
		First(&service).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

var _ domain.CatalogRepository = (*CatalogGormRepository)(nil)
