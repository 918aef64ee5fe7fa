package agenda

import (
	"context"
	"log"

	"github.com/barbersoft/agenda-api/internal/cache"
	domain "github.com/barbersoft/agenda-api/internal/domain/schedule"
	"github.com/barbersoft/agenda-api/internal/httperr"
)

// ======================================================
// USE CASE — Unit Directory
// ======================================================

type ResolveUnit struct {
	units domain.UnitRepository
	cache *cache.UnitCache
}

func NewResolveUnit(units domain.UnitRepository, unitCache *cache.UnitCache) *ResolveUnit {
	return &ResolveUnit{
		units: units,
		cache: unitCache,
	}
}

// Execute resolve o contexto (unidade, empresa) da requisição.
//
// unit_id explícito passa direto, com empresa não resolvida. Caso
// contrário o instance_name é consultado no cache e depois no banco.
// Sem unit_id e sem instance_name devolve um UnitRef vazio: cada ação
// valida a presença do unit_id com sua própria mensagem.
func (uc *ResolveUnit) Execute(
	ctx context.Context,
	unitID string,
	instanceName string,
) (domain.UnitRef, error) {

	if unitID != "" {
		return domain.UnitRef{UnitID: unitID}, nil
	}

	if instanceName == "" {
		return domain.UnitRef{}, nil
	}

	if ref, ok := uc.cache.Get(ctx, instanceName); ok {
		return *ref, nil
	}

	unit, err := uc.units.GetByInstanceName(ctx, instanceName)
	if err != nil {
		log.Printf("unit lookup failed for instance %q: %v", instanceName, err)
		return domain.UnitRef{}, httperr.ErrBusiness("unit_lookup_failed")
	}
	if unit == nil {
		return domain.UnitRef{}, httperr.ErrBusinessDetail("unit_not_found", instanceName)
	}

	ref := domain.UnitRef{
		UnitID:    unit.ID,
		CompanyID: unit.CompanyID,
	}
	uc.cache.Set(ctx, instanceName, ref)

	return ref, nil
}
