package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
	"github.com/custodia-labs/campusnav/internal/core/ports/driving"
	"github.com/custodia-labs/campusnav/internal/validation"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStartLocation    = "navigation.start_location"
	keyTimePerMeter     = "navigation.time_per_meter"
	keyTimePer90Turn    = "navigation.time_per_90_turn"
	keyForwardSpeed     = "navigation.forward_speed"
	keyTurnSpeed        = "navigation.turn_speed"
	keyObstacleCM       = "navigation.obstacle_threshold_cm"
	keyPollIntervalMS   = "navigation.poll_interval_ms"
	keyGracePeriodMS    = "navigation.grace_period_ms"
	keySettleDelayMS    = "navigation.settle_delay_ms"
	keyTurnSettleMS     = "navigation.turn_settle_ms"
	keyMapPath          = "map.path"
	keyMapEdgePolicy    = "map.edge_policy"
	keyHardwareMode     = "hardware.mode"
	keyLeftForwardPin   = "hardware.left_forward_pin"
	keyLeftBackwardPin  = "hardware.left_backward_pin"
	keyRightForwardPin  = "hardware.right_forward_pin"
	keyRightBackwardPin = "hardware.right_backward_pin"
	keyTriggerPin       = "hardware.trigger_pin"
	keyEchoPin          = "hardware.echo_pin"
)

// SettingsService manages navigation settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current settings. Unset or unrecognised values fall back
// to defaults.
func (s *SettingsService) Get() (*domain.NavigationSettings, error) {
	d := domain.DefaultNavigationSettings()

	settings := &domain.NavigationSettings{
		StartLocation: domain.LocationID(s.getString(keyStartLocation, string(d.StartLocation))),
		Motion: domain.MotionSettings{
			TimePerMeter:        s.getSeconds(keyTimePerMeter, d.Motion.TimePerMeter),
			TimePer90Turn:       s.getSeconds(keyTimePer90Turn, d.Motion.TimePer90Turn),
			ForwardSpeed:        s.getInt(keyForwardSpeed, d.Motion.ForwardSpeed),
			TurnSpeed:           s.getInt(keyTurnSpeed, d.Motion.TurnSpeed),
			ObstacleThresholdCM: s.getFloat(keyObstacleCM, d.Motion.ObstacleThresholdCM),
			PollInterval:        s.getMillis(keyPollIntervalMS, d.Motion.PollInterval),
			GracePeriod:         s.getMillis(keyGracePeriodMS, d.Motion.GracePeriod),
			SettleDelay:         s.getMillis(keySettleDelayMS, d.Motion.SettleDelay),
			TurnSettle:          s.getMillis(keyTurnSettleMS, d.Motion.TurnSettle),
		},
		Map: domain.MapSettings{
			Path:       s.configStore.GetString(keyMapPath), // Empty selects the built-in map
			EdgePolicy: s.getEdgePolicy(d.Map.EdgePolicy),
		},
		Hardware: domain.HardwareSettings{
			Mode:             s.getHardwareMode(d.Hardware.Mode),
			LeftForwardPin:   s.getString(keyLeftForwardPin, d.Hardware.LeftForwardPin),
			LeftBackwardPin:  s.getString(keyLeftBackwardPin, d.Hardware.LeftBackwardPin),
			RightForwardPin:  s.getString(keyRightForwardPin, d.Hardware.RightForwardPin),
			RightBackwardPin: s.getString(keyRightBackwardPin, d.Hardware.RightBackwardPin),
			TriggerPin:       s.getString(keyTriggerPin, d.Hardware.TriggerPin),
			EchoPin:          s.getString(keyEchoPin, d.Hardware.EchoPin),
		},
	}

	return settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.NavigationSettings) error {
	if err := s.Validate(settings); err != nil {
		return err
	}

	values := storedValues(settings)
	for _, key := range s.Keys() {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}

	return s.configStore.Save()
}

// Set parses value for key, validates the resulting settings and persists them.
//
//nolint:gocyclo // One case per key
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	switch key {
	case keyStartLocation:
		settings.StartLocation = domain.LocationID(value)
	case keyTimePerMeter:
		settings.Motion.TimePerMeter, err = parseSeconds(value)
	case keyTimePer90Turn:
		settings.Motion.TimePer90Turn, err = parseSeconds(value)
	case keyForwardSpeed:
		settings.Motion.ForwardSpeed, err = strconv.Atoi(value)
	case keyTurnSpeed:
		settings.Motion.TurnSpeed, err = strconv.Atoi(value)
	case keyObstacleCM:
		settings.Motion.ObstacleThresholdCM, err = strconv.ParseFloat(value, 64)
	case keyPollIntervalMS:
		settings.Motion.PollInterval, err = parseMillis(value)
	case keyGracePeriodMS:
		settings.Motion.GracePeriod, err = parseMillis(value)
	case keySettleDelayMS:
		settings.Motion.SettleDelay, err = parseMillis(value)
	case keyTurnSettleMS:
		settings.Motion.TurnSettle, err = parseMillis(value)
	case keyMapPath:
		settings.Map.Path = value
	case keyMapEdgePolicy:
		settings.Map.EdgePolicy = domain.EdgePolicy(value)
	case keyHardwareMode:
		settings.Hardware.Mode = domain.HardwareMode(value)
	case keyLeftForwardPin:
		settings.Hardware.LeftForwardPin = value
	case keyLeftBackwardPin:
		settings.Hardware.LeftBackwardPin = value
	case keyRightForwardPin:
		settings.Hardware.RightForwardPin = value
	case keyRightBackwardPin:
		settings.Hardware.RightBackwardPin = value
	case keyTriggerPin:
		settings.Hardware.TriggerPin = value
	case keyEchoPin:
		settings.Hardware.EchoPin = value
	default:
		return fmt.Errorf("%w: unknown settings key %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	return s.Save(settings)
}

// Keys returns every supported settings key, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyStartLocation, keyTimePerMeter, keyTimePer90Turn, keyForwardSpeed, keyTurnSpeed,
		keyObstacleCM, keyPollIntervalMS, keyGracePeriodMS, keySettleDelayMS, keyTurnSettleMS,
		keyMapPath, keyMapEdgePolicy, keyHardwareMode, keyLeftForwardPin, keyLeftBackwardPin,
		keyRightForwardPin, keyRightBackwardPin, keyTriggerPin, keyEchoPin,
	}
	sort.Strings(keys)
	return keys
}

// Values returns the current value of every key, formatted the way Set accepts it.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(s.Keys()))
	for key, v := range storedValues(settings) {
		out[key] = fmt.Sprint(v)
	}
	return out, nil
}

// storedValues maps settings onto their config keys. Durations are stored as
// seconds or milliseconds depending on the key suffix.
func storedValues(settings *domain.NavigationSettings) map[string]any {
	return map[string]any{
		keyStartLocation:    string(settings.StartLocation),
		keyTimePerMeter:     settings.Motion.TimePerMeter.Seconds(),
		keyTimePer90Turn:    settings.Motion.TimePer90Turn.Seconds(),
		keyForwardSpeed:     settings.Motion.ForwardSpeed,
		keyTurnSpeed:        settings.Motion.TurnSpeed,
		keyObstacleCM:       settings.Motion.ObstacleThresholdCM,
		keyPollIntervalMS:   settings.Motion.PollInterval.Milliseconds(),
		keyGracePeriodMS:    settings.Motion.GracePeriod.Milliseconds(),
		keySettleDelayMS:    settings.Motion.SettleDelay.Milliseconds(),
		keyTurnSettleMS:     settings.Motion.TurnSettle.Milliseconds(),
		keyMapPath:          settings.Map.Path,
		keyMapEdgePolicy:    settings.Map.EdgePolicy.String(),
		keyHardwareMode:     settings.Hardware.Mode.String(),
		keyLeftForwardPin:   settings.Hardware.LeftForwardPin,
		keyLeftBackwardPin:  settings.Hardware.LeftBackwardPin,
		keyRightForwardPin:  settings.Hardware.RightForwardPin,
		keyRightBackwardPin: settings.Hardware.RightBackwardPin,
		keyTriggerPin:       settings.Hardware.TriggerPin,
		keyEchoPin:          settings.Hardware.EchoPin,
	}
}

// Validate checks settings against their constraints.
func (s *SettingsService) Validate(settings *domain.NavigationSettings) error {
	return validation.ValidateSettings(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.NavigationSettings {
	return domain.DefaultNavigationSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val * float64(time.Second))
}

// getMillis treats an explicit zero as zero, unlike the other getters,
// so delays can be disabled.
func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

func (s *SettingsService) getEdgePolicy(defaultVal domain.EdgePolicy) domain.EdgePolicy {
	val := s.configStore.GetString(keyMapEdgePolicy)
	if val == "" {
		return defaultVal
	}
	policy := domain.EdgePolicy(val)
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}

func (s *SettingsService) getHardwareMode(defaultVal domain.HardwareMode) domain.HardwareMode {
	val := s.configStore.GetString(keyHardwareMode)
	if val == "" {
		return defaultVal
	}
	mode := domain.HardwareMode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func parseSeconds(str string) (time.Duration, error) {
	if d, err := time.ParseDuration(str); err == nil {
		return d, nil
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(f * float64(time.Second)), nil
}

func parseMillis(str string) (time.Duration, error) {
	if d, err := time.ParseDuration(str); err == nil {
		return d, nil
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Millisecond, nil
}
