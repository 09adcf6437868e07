package power

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/rtshim/pkg/platform"
)

const defaultSysfsRoot = "/sys"

// Sysfs reads battery state from the Linux power supply class, which is
// also what Android exposes.
type Sysfs struct {
	powerSupplyPath string
	profilePath     string
	poll            *poller
}

var _ Backend = &Sysfs{}

// NewSysfs returns a sysfs backend rooted at opts.SysfsRoot (default /sys).
func NewSysfs(opts Options) *Sysfs {
	root := opts.SysfsRoot
	if root == "" {
		root = defaultSysfsRoot
	}
	s := &Sysfs{
		powerSupplyPath: filepath.Join(root, "class", "power_supply"),
		profilePath:     filepath.Join(root, "firmware", "acpi", "platform_profile"),
	}
	s.poll = newPoller(BackendSysfs, opts.pollInterval(), s.RemainingChargePercent)
	return s
}

type sysfsBattery struct {
	name       string
	status     string
	capacity   int
	hasCap     bool
	energyNow  uint64
	energyFull uint64
	powerNow   uint64
}

type sysfsSnapshot struct {
	batteries []sysfsBattery
	acOnline  bool
}

func (s *sysfsSnapshot) anyStatus(status string) bool {
	for _, b := range s.batteries {
		if b.status == status {
			return true
		}
	}
	return false
}

func (s *Sysfs) Name() string { return BackendSysfs }

func (s *Sysfs) RemainingChargePercent() (int, error) {
	logrus.Tracef("sysfs RemainingChargePercent called")

	snap, err := s.snapshot()
	if err != nil {
		return 0, err
	}
	if len(snap.batteries) == 0 {
		return 0, errors.Wrap(platform.ErrUnsupported, "no battery found")
	}

	var now, full uint64
	var capSum, capCount int
	for _, b := range snap.batteries {
		now += b.energyNow
		full += b.energyFull
		if b.hasCap {
			capSum += b.capacity
			capCount++
		}
	}

	var p int
	switch {
	case full > 0:
		p = int(math.Round(float64(now) / float64(full) * 100))
	case capCount > 0:
		p = capSum / capCount
	default:
		return 0, errors.Errorf("no charge level reported in %s", s.powerSupplyPath)
	}

	return clampPercent(p), nil
}

func (s *Sysfs) BatteryStatus() (BatteryStatus, error) {
	snap, err := s.snapshot()
	if err != nil {
		return BatteryNotPresent, err
	}

	switch {
	case len(snap.batteries) == 0:
		return BatteryNotPresent, nil
	case snap.anyStatus("Charging"):
		return BatteryCharging, nil
	case snap.anyStatus("Discharging"):
		return BatteryDischarging, nil
	default:
		// Full, Not charging and Unknown.
		return BatteryIdle, nil
	}
}

func (s *Sysfs) PowerSupplyStatus() (PowerSupplyStatus, error) {
	snap, err := s.snapshot()
	if err != nil {
		return PowerSupplyNotPresent, err
	}

	if !snap.acOnline {
		return PowerSupplyNotPresent, nil
	}
	if snap.anyStatus("Discharging") {
		return PowerSupplyInadequate, nil
	}
	return PowerSupplyAdequate, nil
}

func (s *Sysfs) RemainingDischargeTime() (time.Duration, error) {
	snap, err := s.snapshot()
	if err != nil {
		return 0, err
	}
	if len(snap.batteries) == 0 {
		return 0, errors.Wrap(platform.ErrUnsupported, "no battery found")
	}
	if !snap.anyStatus("Discharging") {
		return 0, nil
	}

	var now, rate uint64
	for _, b := range snap.batteries {
		now += b.energyNow
		if b.status == "Discharging" {
			rate += b.powerNow
		}
	}
	if rate == 0 {
		return 0, nil
	}

	return time.Duration(now*3600/rate) * time.Second, nil
}

func (s *Sysfs) EnergySaverStatus() (EnergySaverStatus, error) {
	profile, ok := readStringFile(s.profilePath)
	if !ok {
		return EnergySaverDisabled, errors.Wrapf(platform.ErrUnsupported, "no platform profile at %s", s.profilePath)
	}

	snap, err := s.snapshot()
	if err != nil {
		return EnergySaverDisabled, err
	}
	if snap.acOnline {
		return EnergySaverDisabled, nil
	}
	if profile == "low-power" {
		return EnergySaverOn, nil
	}
	return EnergySaverOff, nil
}

func (s *Sysfs) StartMonitoring(notify func()) error {
	return s.poll.Start(notify)
}

func (s *Sysfs) StopMonitoring() error {
	return s.poll.Stop()
}

func (s *Sysfs) snapshot() (*sysfsSnapshot, error) {
	entries, err := os.ReadDir(s.powerSupplyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(platform.ErrUnsupported, "%s does not exist", s.powerSupplyPath)
		}
		return nil, errors.Wrapf(err, "failed to read %s", s.powerSupplyPath)
	}

	snap := &sysfsSnapshot{}
	for _, entry := range entries {
		// Entries are usually symlinks into /sys/devices.
		devicePath := filepath.Join(s.powerSupplyPath, entry.Name())
		supplyType, ok := readStringFile(filepath.Join(devicePath, "type"))
		if !ok {
			continue
		}

		switch strings.ToLower(supplyType) {
		case "battery":
			if present, ok := readUint64File(filepath.Join(devicePath, "present")); ok && present == 0 {
				continue
			}
			snap.batteries = append(snap.batteries, readSysfsBattery(devicePath, entry.Name()))
		case "mains", "usb", "usb_c", "usb_pd", "ups", "wireless":
			if online, ok := readUint64File(filepath.Join(devicePath, "online")); ok && online == 1 {
				snap.acOnline = true
			}
		}
	}

	return snap, nil
}

func readSysfsBattery(devicePath, name string) sysfsBattery {
	b := sysfsBattery{name: name}

	b.status, _ = readStringFile(filepath.Join(devicePath, "status"))
	if c, ok := readUint64File(filepath.Join(devicePath, "capacity")); ok {
		b.capacity = int(c)
		b.hasCap = true
	}

	energyNow, hasEnergy := readUint64File(filepath.Join(devicePath, "energy_now"))
	energyFull, _ := readUint64File(filepath.Join(devicePath, "energy_full"))
	powerNow, _ := readUint64File(filepath.Join(devicePath, "power_now"))

	// Charge based batteries report µAh and µA, convert with the current voltage.
	if !hasEnergy {
		chargeNow, _ := readUint64File(filepath.Join(devicePath, "charge_now"))
		chargeFull, _ := readUint64File(filepath.Join(devicePath, "charge_full"))
		currentNow, _ := readUint64File(filepath.Join(devicePath, "current_now"))
		voltage, _ := readUint64File(filepath.Join(devicePath, "voltage_now"))
		if voltage > 0 {
			energyNow = chargeNow * voltage / 1000000
			energyFull = chargeFull * voltage / 1000000
			powerNow = currentNow * voltage / 1000000
		}
	}

	b.energyNow = energyNow
	b.energyFull = energyFull
	b.powerNow = powerNow

	return b
}

func readUint64File(path string) (uint64, bool) {
	s, ok := readStringFile(path)
	if !ok {
		return 0, false
	}

	// Some drivers report signed values for current_now.
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	if v < 0 {
		v = -v
	}

	return uint64(v), true
}

func readStringFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}
