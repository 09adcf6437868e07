//go:build darwin && !ios

package smc

// SMC keys read on amd64 (Intel 64). Only the charge key has been verified.
const (
	ACPowerKey         = "AC-W" // Not verified yet.
	ChargingInhibitKey = "CH0B" // Not verified yet.
	BatteryChargeKey   = "BBIF"
	BatteryCurrentKey  = "B0AC" // Not verified yet.
	BatteryVoltageKey  = "B0AV" // Not verified yet.
)
