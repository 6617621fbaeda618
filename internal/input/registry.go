package input

import (
	"github.com/rxtech-lab/coin-signal/internal/indicator"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/internal/utils"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// Builder creates an input of one kind from its declared parameters.
type Builder func(name string, params map[string]any, indicators indicator.IndicatorRegistry) (SignalInput, error)

// Registry maps input kinds to builders.
type Registry struct {
	builders   map[types.IndicatorType]Builder
	indicators indicator.IndicatorRegistry
}

// NewRegistry creates a registry with every built-in input kind.
//
// Kinds and their parameter defaults:
//
//	close
//	rsi           period=14
//	sma           period=20
//	ema           period=20
//	macd          fast_period=12 slow_period=26 signal_period=9 line=macd
//	bollinger     period=20 std_dev_multiplier=2.0 band=middle
//	volume_ma     period=20
//	volume_surge  period=20 multiplier=2.0
//	atr           period=14
func NewRegistry() *Registry {
	r := &Registry{
		builders:   make(map[types.IndicatorType]Builder),
		indicators: indicator.NewDefaultIndicatorRegistry(),
	}

	r.builders[types.IndicatorTypeClose] = buildClose
	r.builders[types.IndicatorTypeRSI] = periodBuilder(types.IndicatorTypeRSI, 14)
	r.builders[types.IndicatorTypeSMA] = periodBuilder(types.IndicatorTypeSMA, 20)
	r.builders[types.IndicatorTypeEMA] = periodBuilder(types.IndicatorTypeEMA, 20)
	r.builders[types.IndicatorTypeVolumeMA] = periodBuilder(types.IndicatorTypeVolumeMA, 20)
	r.builders[types.IndicatorTypeATR] = periodBuilder(types.IndicatorTypeATR, 14)
	r.builders[types.IndicatorTypeMACD] = buildMACD
	r.builders[types.IndicatorTypeBollinger] = buildBollinger
	r.builders[types.IndicatorTypeVolumeSurge] = buildVolumeSurge

	return r
}

// Register adds or replaces the builder for kind.
func (r *Registry) Register(kind types.IndicatorType, builder Builder) {
	r.builders[kind] = builder
}

// Build creates one input from its configuration.
func (r *Registry) Build(config Config) (SignalInput, error) {
	builder, ok := r.builders[types.IndicatorType(config.Kind)]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownIndicatorKind, "input %q: unknown kind %q", config.Name, config.Kind)
	}

	signalInput, err := builder(config.Name, config.Params, r.indicators)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "input %q", config.Name)
	}

	return signalInput, nil
}

// BuildAll creates every configured input, or DefaultInputs when none are configured.
// Names must be unique.
func (r *Registry) BuildAll(configs []Config) ([]SignalInput, error) {
	if len(configs) == 0 {
		configs = DefaultInputs()
	}

	seen := make(map[string]struct{}, len(configs))
	inputs := make([]SignalInput, 0, len(configs))

	for _, config := range configs {
		if config.Name == "" {
			return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "input of kind %q has no name", config.Kind)
		}

		if _, dup := seen[config.Name]; dup {
			return nil, errors.Newf(errors.ErrCodeDuplicateName, "duplicate input name %q", config.Name)
		}

		seen[config.Name] = struct{}{}

		signalInput, err := r.Build(config)
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, signalInput)
	}

	return inputs, nil
}

// MaxRequiredCandles returns the largest RequiredCandles among inputs, at least 1.
func MaxRequiredCandles(inputs []SignalInput) int {
	required := 1
	for _, in := range inputs {
		if in.RequiredCandles() > required {
			required = in.RequiredCandles()
		}
	}

	return required
}

func buildClose(name string, _ map[string]any, _ indicator.IndicatorRegistry) (SignalInput, error) {
	return NewCloseInput(name), nil
}

func periodBuilder(kind types.IndicatorType, defaultPeriod int) Builder {
	return func(name string, params map[string]any, indicators indicator.IndicatorRegistry) (SignalInput, error) {
		period, err := utils.IntParam(params, "period", defaultPeriod)
		if err != nil {
			return nil, err
		}

		ind, err := indicators.NewIndicator(kind, period)
		if err != nil {
			return nil, err
		}

		return NewIndicatorInput(name, ind), nil
	}
}

func buildMACD(name string, params map[string]any, indicators indicator.IndicatorRegistry) (SignalInput, error) {
	fast, err := utils.IntParam(params, "fast_period", 12)
	if err != nil {
		return nil, err
	}

	slow, err := utils.IntParam(params, "slow_period", 26)
	if err != nil {
		return nil, err
	}

	signal, err := utils.IntParam(params, "signal_period", 9)
	if err != nil {
		return nil, err
	}

	line, err := utils.StringParam(params, "line", "macd")
	if err != nil {
		return nil, err
	}

	ind, err := indicators.NewIndicator(types.IndicatorTypeMACD, fast, slow, signal)
	if err != nil {
		return nil, err
	}

	macd, ok := ind.(*indicator.MACD)
	if !ok {
		return NewIndicatorInput(name, ind), nil
	}

	var pick func(v indicator.MACDValue) float64

	switch line {
	case "macd":
		return NewIndicatorInput(name, ind), nil
	case "signal":
		pick = func(v indicator.MACDValue) float64 { return v.Signal }
	case "histogram":
		pick = func(v indicator.MACDValue) float64 { return v.Histogram }
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "param \"line\" must be one of macd, signal, histogram, got %q", line)
	}

	return NewIndicatorInputWith(name, ind, func(candles []types.Candle) ([]float64, error) {
		values, err := macd.CalculateFull(candles)
		if err != nil {
			return nil, err
		}

		result := make([]float64, len(values))
		for i, v := range values {
			result[i] = pick(v)
		}

		return result, nil
	}), nil
}

func buildBollinger(name string, params map[string]any, indicators indicator.IndicatorRegistry) (SignalInput, error) {
	period, err := utils.IntParam(params, "period", 20)
	if err != nil {
		return nil, err
	}

	multiplier, err := utils.FloatParam(params, "std_dev_multiplier", 2.0)
	if err != nil {
		return nil, err
	}

	band, err := utils.StringParam(params, "band", "middle")
	if err != nil {
		return nil, err
	}

	ind, err := indicators.NewIndicator(types.IndicatorTypeBollinger, period, multiplier)
	if err != nil {
		return nil, err
	}

	bollinger, ok := ind.(*indicator.BollingerBands)
	if !ok {
		return NewIndicatorInput(name, ind), nil
	}

	var pick func(b indicator.Band) float64

	switch band {
	case "middle":
		return NewIndicatorInput(name, ind), nil
	case "upper":
		pick = func(b indicator.Band) float64 { return b.Upper }
	case "lower":
		pick = func(b indicator.Band) float64 { return b.Lower }
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "param \"band\" must be one of upper, middle, lower, got %q", band)
	}

	return NewIndicatorInputWith(name, ind, func(candles []types.Candle) ([]float64, error) {
		bands, err := bollinger.CalculateBands(candles)
		if err != nil {
			return nil, err
		}

		result := make([]float64, len(bands))
		for i, b := range bands {
			result[i] = pick(b)
		}

		return result, nil
	}), nil
}

func buildVolumeSurge(name string, params map[string]any, indicators indicator.IndicatorRegistry) (SignalInput, error) {
	period, err := utils.IntParam(params, "period", 20)
	if err != nil {
		return nil, err
	}

	multiplier, err := utils.FloatParam(params, "multiplier", 2.0)
	if err != nil {
		return nil, err
	}

	if multiplier <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidMultiplier, "param \"multiplier\" must be greater than 0, got %v", multiplier)
	}

	ind, err := indicators.NewIndicator(types.IndicatorTypeVolumeMA, period)
	if err != nil {
		return nil, err
	}

	volumeMA, ok := ind.(*indicator.VolumeMA)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "volume_ma kind is not backed by a VolumeMA indicator")
	}

	return NewIndicatorInputWith(name, ind, func(candles []types.Candle) ([]float64, error) {
		surges, err := volumeMA.DetectSurges(candles, multiplier)
		if err != nil {
			return nil, err
		}

		result := make([]float64, len(surges))
		for i, surge := range surges {
			if surge {
				result[i] = 1
			}
		}

		return result, nil
	}), nil
}
