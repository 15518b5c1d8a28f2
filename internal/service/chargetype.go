package service

import (
	"context"
	"time"

	"github.com/chethandvg/tenantmanagement/internal/cache"
	"github.com/chethandvg/tenantmanagement/internal/domain/chargetype"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

const chargeTypeCacheExpiry = 15 * time.Minute

// ChargeTypeService manages the charge type catalog. Code lookups are cached
// per organization since every generated rent line resolves the same code.
type ChargeTypeService interface {
	CreateChargeType(ctx context.Context, ct *chargetype.ChargeType) (*chargetype.ChargeType, error)
	GetChargeType(ctx context.Context, id string) (*chargetype.ChargeType, error)
	GetChargeTypeByCode(ctx context.Context, code string) (*chargetype.ChargeType, error)
	ListChargeTypes(ctx context.Context) ([]*chargetype.ChargeType, error)
}

type chargeTypeService struct {
	ServiceParams
}

func NewChargeTypeService(params ServiceParams) ChargeTypeService {
	return &chargeTypeService{ServiceParams: params}
}

func (s *chargeTypeService) CreateChargeType(ctx context.Context, ct *chargetype.ChargeType) (*chargetype.ChargeType, error) {
	if err := ct.Validate(); err != nil {
		return nil, err
	}

	if ct.ID == "" {
		ct.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CHARGE_TYPE)
	}
	ct.BaseModel = types.GetDefaultBaseModel(ctx)

	if err := s.ChargeTypeRepo.Create(ctx, ct); err != nil {
		return nil, err
	}

	s.Cache.DeleteByPrefix(ctx, cache.PrefixChargeType)
	return ct, nil
}

func (s *chargeTypeService) GetChargeType(ctx context.Context, id string) (*chargetype.ChargeType, error) {
	return s.ChargeTypeRepo.Get(ctx, id)
}

func (s *chargeTypeService) GetChargeTypeByCode(ctx context.Context, code string) (*chargetype.ChargeType, error) {
	key := cache.GenerateKey(cache.PrefixChargeType, types.GetOrganizationID(ctx), code)
	if cached, found := s.Cache.Get(ctx, key); found {
		if ct, ok := cached.(*chargetype.ChargeType); ok {
			return ct, nil
		}
	}

	ct, err := s.ChargeTypeRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, ct, chargeTypeCacheExpiry)
	return ct, nil
}

func (s *chargeTypeService) ListChargeTypes(ctx context.Context) ([]*chargetype.ChargeType, error) {
	return s.ChargeTypeRepo.List(ctx)
}
