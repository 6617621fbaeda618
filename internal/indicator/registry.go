package indicator

import (
	"sort"
	"sync"

	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// Factory creates a fresh indicator with default configuration.
type Factory func() Indicator

// IndicatorRegistry maps indicator kinds to factories.
type IndicatorRegistry interface {
	RegisterIndicator(kind types.IndicatorType, factory Factory) error
	// NewIndicator creates an indicator of the given kind and applies params to it
	NewIndicator(kind types.IndicatorType, params ...any) (Indicator, error)
	ListIndicators() []types.IndicatorType
	RemoveIndicator(kind types.IndicatorType) error
}

// IndicatorRegistryV1 manages all available indicators.
type IndicatorRegistryV1 struct {
	factories map[types.IndicatorType]Factory
	mu        sync.RWMutex
}

// NewIndicatorRegistry creates a new, empty indicator registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		factories: make(map[types.IndicatorType]Factory),
		mu:        sync.RWMutex{},
	}
}

// NewDefaultIndicatorRegistry creates a registry holding every built-in indicator.
func NewDefaultIndicatorRegistry() IndicatorRegistry {
	registry := NewIndicatorRegistry()

	// kinds are distinct so registration cannot fail
	_ = registry.RegisterIndicator(types.IndicatorTypeSMA, NewSMA)
	_ = registry.RegisterIndicator(types.IndicatorTypeEMA, NewEMA)
	_ = registry.RegisterIndicator(types.IndicatorTypeRSI, NewRSI)
	_ = registry.RegisterIndicator(types.IndicatorTypeMACD, NewMACD)
	_ = registry.RegisterIndicator(types.IndicatorTypeBollinger, NewBollingerBands)
	_ = registry.RegisterIndicator(types.IndicatorTypeVolumeMA, NewVolumeMA)
	_ = registry.RegisterIndicator(types.IndicatorTypeATR, NewATR)

	return registry
}

// RegisterIndicator adds an indicator factory to the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(kind types.IndicatorType, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "RegisterIndicator: indicator with name %s already registered", kind)
	}

	r.factories[kind] = factory

	return nil
}

// NewIndicator creates a configured indicator of the given kind.
// With no params the indicator keeps its defaults.
func (r *IndicatorRegistryV1) NewIndicator(kind types.IndicatorType, params ...any) (Indicator, error) {
	r.mu.RLock()
	factory, exists := r.factories[kind]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrCodeUnknownIndicatorKind, "NewIndicator: indicator with name %s not found", kind)
	}

	indicator := factory()
	if len(params) == 0 {
		return indicator, nil
	}

	if err := indicator.Config(params...); err != nil {
		return nil, err
	}

	return indicator, nil
}

// ListIndicators returns the registered kinds in lexical order.
func (r *IndicatorRegistryV1) ListIndicators() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.IndicatorType, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

// RemoveIndicator removes an indicator factory from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(kind types.IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; !exists {
		return errors.Newf(errors.ErrCodeUnknownIndicatorKind, "RemoveIndicator: indicator with name %s not found", kind)
	}

	delete(r.factories, kind)

	return nil
}
