//go:build darwin && !ios

package smc

// SMC keys read on arm64 (Apple Silicon).
const (
	ACPowerKey         = "AC-W"
	ChargingInhibitKey = "CH0B"
	BatteryChargeKey   = "BUIC"
	BatteryCurrentKey  = "B0AC"
	BatteryVoltageKey  = "B0AV"
)
