package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

func TestValidateSettings_Defaults(t *testing.T) {
	s := domain.DefaultNavigationSettings()
	assert.NoError(t, ValidateSettings(&s))
}

func TestValidateSettings_Nil(t *testing.T) {
	err := ValidateSettings(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
}

func TestValidateSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *domain.NavigationSettings)
		message string
	}{
		{
			name:    "poll interval above 200ms",
			mutate:  func(s *domain.NavigationSettings) { s.Motion.PollInterval = 250 * time.Millisecond },
			message: "PollInterval",
		},
		{
			name:    "zero poll interval",
			mutate:  func(s *domain.NavigationSettings) { s.Motion.PollInterval = 0 },
			message: "PollInterval",
		},
		{
			name:    "zero time per meter",
			mutate:  func(s *domain.NavigationSettings) { s.Motion.TimePerMeter = 0 },
			message: "TimePerMeter",
		},
		{
			name:    "negative grace period",
			mutate:  func(s *domain.NavigationSettings) { s.Motion.GracePeriod = -time.Second },
			message: "GracePeriod",
		},
		{
			name:    "speed above 100",
			mutate:  func(s *domain.NavigationSettings) { s.Motion.ForwardSpeed = 120 },
			message: "ForwardSpeed",
		},
		{
			name:    "zero turn speed",
			mutate:  func(s *domain.NavigationSettings) { s.Motion.TurnSpeed = 0 },
			message: "TurnSpeed",
		},
		{
			name:    "zero threshold",
			mutate:  func(s *domain.NavigationSettings) { s.Motion.ObstacleThresholdCM = 0 },
			message: "ObstacleThresholdCM",
		},
		{
			name:    "unknown edge policy",
			mutate:  func(s *domain.NavigationSettings) { s.Map.EdgePolicy = "strict" },
			message: "EdgePolicy",
		},
		{
			name:    "unknown hardware mode",
			mutate:  func(s *domain.NavigationSettings) { s.Hardware.Mode = "gpio" },
			message: "Mode",
		},
		{
			name:    "missing echo pin",
			mutate:  func(s *domain.NavigationSettings) { s.Hardware.EchoPin = "" },
			message: "EchoPin",
		},
		{
			name:    "missing start location",
			mutate:  func(s *domain.NavigationSettings) { s.StartLocation = "" },
			message: "StartLocation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.DefaultNavigationSettings()
			tt.mutate(&s)

			err := ValidateSettings(&s)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidSettings)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func validDefinition() *domain.MapDefinition {
	return &domain.MapDefinition{
		Locations: []domain.LocationDefinition{
			{Name: "A", Aliases: []string{"alpha"}, Edges: []domain.EdgeDefinition{{To: "B", Distance: 3, Action: "forward"}}},
			{Name: "B", Edges: []domain.EdgeDefinition{{To: "A", Distance: 3, Action: "forward", Angle: 180}}},
		},
	}
}

func TestValidateMapDefinition_Valid(t *testing.T) {
	assert.NoError(t, ValidateMapDefinition(validDefinition()))
}

func TestValidateMapDefinition_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *domain.MapDefinition)
	}{
		{"nil locations", func(d *domain.MapDefinition) { d.Locations = nil }},
		{"empty location name", func(d *domain.MapDefinition) { d.Locations[0].Name = "" }},
		{"empty alias", func(d *domain.MapDefinition) { d.Locations[0].Aliases = []string{""} }},
		{"missing edge target", func(d *domain.MapDefinition) { d.Locations[0].Edges[0].To = "" }},
		{"negative distance", func(d *domain.MapDefinition) { d.Locations[0].Edges[0].Distance = -2 }},
		{"unknown action", func(d *domain.MapDefinition) { d.Locations[0].Edges[0].Action = "hop" }},
		{"angle out of range", func(d *domain.MapDefinition) { d.Locations[0].Edges[0].Angle = 720 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.mutate(def)
			err := ValidateMapDefinition(def)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidMap)
		})
	}

	assert.ErrorIs(t, ValidateMapDefinition(nil), domain.ErrInvalidMap)
}
