package types

// IndicatorType is the configuration kind of an indicator or input.
type IndicatorType string

const (
	IndicatorTypeClose       IndicatorType = "close"
	IndicatorTypeRSI         IndicatorType = "rsi"
	IndicatorTypeSMA         IndicatorType = "sma"
	IndicatorTypeEMA         IndicatorType = "ema"
	IndicatorTypeMACD        IndicatorType = "macd"
	IndicatorTypeBollinger   IndicatorType = "bollinger"
	IndicatorTypeVolumeMA    IndicatorType = "volume_ma"
	IndicatorTypeVolumeSurge IndicatorType = "volume_surge"
	IndicatorTypeATR         IndicatorType = "atr"
)

// ModelType is the configuration kind of a trading model.
type ModelType string

const (
	ModelTypeRSIReversion ModelType = "rsi_reversion"
	ModelTypeSMACross     ModelType = "sma_cross"
)
