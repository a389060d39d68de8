package mapfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

func TestBuiltinSource_Load(t *testing.T) {
	src := NewBuiltinSource()
	def, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "A Block", def.Name)
	assert.Len(t, def.Locations, 13)
	assert.Contains(t, src.Describe(), "built-in")

	m, err := domain.NewCampusMap(*def, domain.EdgePolicyRequireReverse)
	require.NoError(t, err)
	assert.Equal(t, 24, m.EdgeCount())

	edge, ok := m.Edge("Stairs", "Floor_1_Corridor")
	require.True(t, ok)
	assert.Equal(t, domain.ActionStairsUp, edge.Action)
	assert.InDelta(t, 0.0, edge.Distance, 0.001)
}

func TestBuiltinSource_Aliases(t *testing.T) {
	def, err := NewBuiltinSource().Load(context.Background())
	require.NoError(t, err)
	m, err := domain.NewCampusMap(*def, domain.EdgePolicyAllowOneWay)
	require.NoError(t, err)

	aliases := map[string]domain.LocationID{
		"block a":          "Entrance",
		"entrance":         "Entrance",
		"main corridor":    "Corridor_Main",
		"faculty":          "Faculty_Offices",
		"director":         "Director_Office",
		"accounts":         "Accounts_Office",
		"exam":             "Exam_Branch",
		"library":          "Library_Entrance",
		"digital library":  "Digital_Library",
		"cs lab":           "CS_Lab",
		"d4":               "D4",
		"c2.5":             "C2_5_Classroom",
		"c2.5 classroom":   "C2_5_Classroom",
		"Floor 1 Corridor": "Floor_1_Corridor",
	}
	for input, want := range aliases {
		got, ok := m.Resolve(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}
}

func TestFileSource_Formats(t *testing.T) {
	for _, name := range []string{"wing.toml", "wing.yaml", "wing.hcl"} {
		t.Run(name, func(t *testing.T) {
			src := NewFileSource(filepath.Join("testdata", name))
			def, err := src.Load(context.Background())
			require.NoError(t, err)

			assert.Equal(t, "East Wing", def.Name)
			require.Len(t, def.Locations, 3)
			assert.Equal(t, "Lobby", def.Locations[0].Name)
			assert.Equal(t, []string{"front desk"}, def.Locations[0].Aliases)
			require.Len(t, def.Locations[1].Edges, 2)
			assert.Equal(t, domain.EdgeDefinition{To: "Store", Distance: 2, Action: "turn_right", Angle: -90}, def.Locations[1].Edges[1])

			_, err = domain.NewCampusMap(*def, domain.EdgePolicyRequireReverse)
			assert.NoError(t, err)
		})
	}
}

func TestNewSource(t *testing.T) {
	assert.Contains(t, NewSource("").Describe(), "built-in")
	assert.Equal(t, "/tmp/x.yaml", NewSource("/tmp/x.yaml").Describe())
}

func TestFileSource_Missing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "none.toml")).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		wantErr error
	}{
		{
			name:    "unsupported extension",
			file:    "map.json",
			data:    `{}`,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "malformed toml",
			file:    "map.toml",
			data:    `locations = [`,
			wantErr: domain.ErrInvalidMap,
		},
		{
			name:    "unknown toml field",
			file:    "map.toml",
			data:    "colour = \"red\"\n[[locations]]\nname = \"A\"\n",
			wantErr: domain.ErrInvalidMap,
		},
		{
			name:    "unknown yaml field",
			file:    "map.yaml",
			data:    "locations:\n  - name: A\n    floor: 2\n",
			wantErr: domain.ErrInvalidMap,
		},
		{
			name:    "no locations",
			file:    "map.yaml",
			data:    "name: empty\n",
			wantErr: domain.ErrInvalidMap,
		},
		{
			name:    "bad action",
			file:    "map.yaml",
			data:    "locations:\n  - name: A\n    edges:\n      - {to: B, distance: 1, action: fly}\n  - name: B\n",
			wantErr: domain.ErrInvalidMap,
		},
		{
			name:    "hcl missing required attribute",
			file:    "map.hcl",
			data:    "location \"A\" {\n  edge {\n    to = \"B\"\n  }\n}\n",
			wantErr: domain.ErrInvalidMap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.file, []byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSource_LoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBuiltinSource().Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
