package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

func TestCompileInstructions_DirectorOffice(t *testing.T) {
	m := builtinCampus(t)
	path := domain.Path{"Entrance", "Corridor_Main", "Faculty_Offices", "Director_Office"}

	instructions, err := CompileInstructions(m, path)

	require.NoError(t, err)
	require.Len(t, instructions, 3)
	assert.Equal(t, domain.Instruction{From: "Entrance", To: "Corridor_Main", Action: domain.ActionForward, Distance: 5}, instructions[0])
	assert.Equal(t, domain.Instruction{From: "Corridor_Main", To: "Faculty_Offices", Action: domain.ActionTurnLeft, Distance: 4, Angle: 90}, instructions[1])
	assert.Equal(t, domain.Instruction{From: "Faculty_Offices", To: "Director_Office", Action: domain.ActionForward, Distance: 6}, instructions[2])

	assert.Equal(t, "forward 5.0m to Corridor_Main", instructions[0].String())
	assert.Equal(t, "turn_left 90° +4.0m to Faculty_Offices", instructions[1].String())
}

func TestCompileInstructions_Stairs(t *testing.T) {
	m := builtinCampus(t)
	path := domain.Path{"Entrance", "Corridor_Main", "Stairs", "Floor_1_Corridor", "CS_Lab"}

	instructions, err := CompileInstructions(m, path)

	require.NoError(t, err)
	require.Len(t, instructions, 4)
	assert.Equal(t, domain.ActionStairsUp, instructions[2].Action)
	assert.Zero(t, instructions[2].Distance)
}

func TestCompileInstructions_ShortPaths(t *testing.T) {
	m := builtinCampus(t)

	for name, path := range map[string]domain.Path{
		"nil":    nil,
		"empty":  {},
		"single": {"Entrance"},
	} {
		t.Run(name, func(t *testing.T) {
			instructions, err := CompileInstructions(m, path)

			require.NoError(t, err)
			assert.NotNil(t, instructions)
			assert.Empty(t, instructions)
		})
	}
}

func TestCompileInstructions_BrokenPath(t *testing.T) {
	m := builtinCampus(t)

	tests := []struct {
		name string
		path domain.Path
	}{
		{"no direct edge", domain.Path{"Entrance", "Director_Office"}},
		{"wrong direction of one-way pair", domain.Path{"Entrance", "Corridor_Main", "Exam_Branch"}},
		{"unknown location", domain.Path{"Entrance", "Mars"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instructions, err := CompileInstructions(m, tt.path)

			assert.ErrorIs(t, err, domain.ErrBrokenPath)
			assert.Nil(t, instructions)
		})
	}
}
