package mission

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teslashibe/go-firebot/pkg/drive"
)

// Duration is a time.Duration that encodes as a human-readable string
// ("3s", "500ms") in tuning files and API responses.
type Duration time.Duration

// D returns the standard library duration.
func (d Duration) D() time.Duration {
	return time.Duration(d)
}

// String returns the standard duration formatting.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalYAML encodes the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML decodes a duration from a string.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("mission: bad duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalJSON encodes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// Config holds all mission tuning constants. It is read-only after the
// controller is constructed.
type Config struct {
	// Chassis geometry, for the hub daemon's odometry.
	WheelDiameterMM float64 `yaml:"wheel_diameter_mm" json:"wheel_diameter_mm"`
	AxleTrackMM     float64 `yaml:"axle_track_mm" json:"axle_track_mm"`

	// Wandering.
	WanderDistanceMM float64 `yaml:"wander_distance_mm" json:"wander_distance_mm"`
	ObstacleTurnDeg  float64 `yaml:"obstacle_turn_deg" json:"obstacle_turn_deg"`

	// Wall following. The adjust gain is degrees of correction per
	// millimeter of distance error (pure proportional control).
	WallFollowMinDistanceMM float64 `yaml:"wall_follow_min_distance_mm" json:"wall_follow_min_distance_mm"`
	WallFollowStepMM        float64 `yaml:"wall_follow_step_mm" json:"wall_follow_step_mm"`
	WallFollowAdjustGain    float64 `yaml:"wall_follow_adjust_gain" json:"wall_follow_adjust_gain"`

	// Flame scan: ScanTurns increments of ScanTurnDeg cover a full circle.
	ScanTurnDeg    float64 `yaml:"scan_turn_deg" json:"scan_turn_deg"`
	ScanTurns      int     `yaml:"scan_turns" json:"scan_turns"`
	FlameThreshold float64 `yaml:"flame_threshold" json:"flame_threshold"`

	// Approach and extinguish.
	ApproachStepMM float64     `yaml:"approach_step_mm" json:"approach_step_mm"`
	GoalColor      drive.Color `yaml:"goal_color" json:"goal_color"`
	FanSpeed       float64     `yaml:"fan_speed" json:"fan_speed"`
	FanRunTime     Duration    `yaml:"fan_run_time" json:"fan_run_time"`
	Cooldown       Duration    `yaml:"cooldown" json:"cooldown"`

	// Alarm tone, for the supervisor-triggered alarm.
	AlarmFreqHz   int      `yaml:"alarm_freq_hz" json:"alarm_freq_hz"`
	AlarmDuration Duration `yaml:"alarm_duration" json:"alarm_duration"`

	// Control loop cadence.
	TickInterval Duration `yaml:"tick_interval" json:"tick_interval"`
}

// DefaultConfig returns the stock tuning for the competition arena.
func DefaultConfig() Config {
	return Config{
		WheelDiameterMM: 56,
		AxleTrackMM:     114,

		WanderDistanceMM: 150,
		ObstacleTurnDeg:  90,

		WallFollowMinDistanceMM: 100,
		WallFollowStepMM:        125,
		WallFollowAdjustGain:    30,

		ScanTurnDeg:    45,
		ScanTurns:      8,
		FlameThreshold: 50,

		ApproachStepMM: 50,
		GoalColor:      drive.ColorRed,
		FanSpeed:       1000,
		FanRunTime:     Duration(3 * time.Second),
		Cooldown:       Duration(5 * time.Second),

		AlarmFreqHz:   2000,
		AlarmDuration: Duration(500 * time.Millisecond),

		TickInterval: Duration(100 * time.Millisecond),
	}
}

// LoadConfig reads a YAML tuning file over the defaults.
// Fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("mission: read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("mission: parse tuning file %s: %w", path, err)
	}
	return cfg, nil
}
