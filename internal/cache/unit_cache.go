package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/barbersoft/agenda-api/internal/domain/schedule"
)

const unitKeyPrefix = "agenda:unit:instance:"

// Unidades mudam de instância raramente; TTL curto mantém o redirecionamento
// de canal aceitavelmente fresco.
const DefaultUnitTTL = 5 * time.Minute

// UnitCache guarda em Redis a resolução instance_name -> (unit, company).
// É somente atalho do caminho quente do Unit Directory: qualquer falha
// vira cache miss e a consulta segue para o banco. Um *UnitCache nulo é
// válido e sempre responde miss.
type UnitCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewUnitCache(rdb *redis.Client, ttl time.Duration) *UnitCache {
	if rdb == nil {
		return nil
	}
	return &UnitCache{rdb: rdb, ttl: ttl}
}

func (c *UnitCache) Get(ctx context.Context, instanceName string) (*schedule.UnitRef, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, unitKeyPrefix+instanceName).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("unit cache get failed: %v", err)
		}
		return nil, false
	}

	var ref schedule.UnitRef
	if err := json.Unmarshal([]byte(raw), &ref); err != nil {
		return nil, false
	}
	return &ref, true
}

func (c *UnitCache) Set(ctx context.Context, instanceName string, ref schedule.UnitRef) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(ref)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, unitKeyPrefix+instanceName, raw, c.ttl).Err(); err != nil {
		log.Printf("unit cache set failed: %v", err)
	}
}
