package services

import (
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

func TestRoute_BuiltinCampus(t *testing.T) {
	m := builtinCampus(t)

	tests := []struct {
		name     string
		start    domain.LocationID
		goal     domain.LocationID
		path     domain.Path
		distance float64
	}{
		{
			name:     "director office",
			start:    "Entrance",
			goal:     "Director_Office",
			path:     domain.Path{"Entrance", "Corridor_Main", "Faculty_Offices", "Director_Office"},
			distance: 15,
		},
		{
			name:     "through the stairs",
			start:    "Entrance",
			goal:     "CS_Lab",
			path:     domain.Path{"Entrance", "Corridor_Main", "Stairs", "Floor_1_Corridor", "CS_Lab"},
			distance: 18,
		},
		{
			name:     "exam branch",
			start:    "Entrance",
			goal:     "Exam_Branch",
			path:     domain.Path{"Entrance", "Corridor_Main", "Accounts_Office", "Exam_Branch"},
			distance: 14,
		},
		{
			name:     "digital library back to entrance",
			start:    "Digital_Library",
			goal:     "Entrance",
			path:     domain.Path{"Digital_Library", "Library_Entrance", "Stairs", "Corridor_Main", "Entrance"},
			distance: 18,
		},
		{
			name:     "start equals goal",
			start:    "Stairs",
			goal:     "Stairs",
			path:     domain.Path{"Stairs"},
			distance: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, ok := Route(m, tt.start, tt.goal)

			require.True(t, ok)
			assert.Equal(t, tt.path, route.Path)
			assert.InDelta(t, tt.distance, route.Distance, 1e-9)
		})
	}
}

func TestRoute_Unreachable(t *testing.T) {
	m := buildCampus(t, map[string][]domain.EdgeDefinition{
		"A": {edge("B", 1, domain.ActionForward, 0)},
		"B": {edge("A", 1, domain.ActionForward, 0)},
		"C": {edge("A", 1, domain.ActionForward, 0)},
	})

	_, ok := Route(m, "A", "C")
	assert.False(t, ok, "C has no incoming edge")

	route, ok := Route(m, "C", "B")
	require.True(t, ok)
	assert.Equal(t, domain.Path{"C", "A", "B"}, route.Path)
}

func TestRoute_UnknownEndpoints(t *testing.T) {
	m := builtinCampus(t)

	_, ok := Route(m, "Entrance", "Mars")
	assert.False(t, ok)

	_, ok = Route(m, "Mars", "Entrance")
	assert.False(t, ok)

	_, ok = Route(nil, "Entrance", "Stairs")
	assert.False(t, ok)
}

func TestRoute_OneWayEdgeRespected(t *testing.T) {
	m := buildCampus(t, map[string][]domain.EdgeDefinition{
		"A": {edge("B", 10, domain.ActionForward, 0)},
		"B": {edge("C", 1, domain.ActionForward, 0)},
		"C": {edge("A", 1, domain.ActionForward, 0)},
	})

	route, ok := Route(m, "B", "A")
	require.True(t, ok)
	assert.Equal(t, domain.Path{"B", "C", "A"}, route.Path)
	assert.InDelta(t, 2.0, route.Distance, 1e-9)
}

func TestRoute_PrefersShorterOverFewerHops(t *testing.T) {
	m := buildCampus(t, map[string][]domain.EdgeDefinition{
		"A": {edge("D", 10, domain.ActionForward, 0), edge("B", 2, domain.ActionForward, 0)},
		"B": {edge("C", 2, domain.ActionForward, 0)},
		"C": {edge("D", 2, domain.ActionForward, 0)},
		"D": {},
	})

	route, ok := Route(m, "A", "D")
	require.True(t, ok)
	assert.Equal(t, domain.Path{"A", "B", "C", "D"}, route.Path)
	assert.InDelta(t, 6.0, route.Distance, 1e-9)
}

func TestRoute_TieBreakIsDeterministic(t *testing.T) {
	m := buildCampus(t, map[string][]domain.EdgeDefinition{
		"A": {edge("C", 1, domain.ActionForward, 0), edge("B", 1, domain.ActionForward, 0)},
		"B": {edge("D", 1, domain.ActionForward, 0)},
		"C": {edge("D", 1, domain.ActionForward, 0)},
		"D": {},
	})

	first, ok := Route(m, "A", "D")
	require.True(t, ok)
	for i := 0; i < 20; i++ {
		again, _ := Route(m, "A", "D")
		assert.Equal(t, first.Path, again.Path)
	}
	assert.Equal(t, domain.Path{"A", "B", "D"}, first.Path)
}

func TestRoute_ZeroDistanceEdges(t *testing.T) {
	m := buildCampus(t, map[string][]domain.EdgeDefinition{
		"A": {edge("B", 0, domain.ActionStairsUp, 0)},
		"B": {edge("C", 0, domain.ActionForward, 0)},
		"C": {},
	})

	route, ok := Route(m, "A", "C")
	require.True(t, ok)
	assert.Equal(t, domain.Path{"A", "B", "C"}, route.Path)
	assert.Zero(t, route.Distance)
}

// randomCampus builds a random directed graph from seed.
func randomCampus(t *testing.T, seed int64, size int) *domain.CampusMap {
	rng := rand.New(rand.NewSource(seed))
	names := make([]string, size)
	for i := range names {
		names[i] = string(rune('A' + i))
	}
	locations := make(map[string][]domain.EdgeDefinition, size)
	for _, from := range names {
		locations[from] = nil
		for _, to := range names {
			if from == to || rng.Intn(3) != 0 {
				continue
			}
			d := float64(rng.Intn(20))
			locations[from] = append(locations[from], edge(to, d, domain.ActionForward, 0))
		}
	}
	return buildCampus(t, locations)
}

// shortestDistances is Floyd-Warshall over the map.
func shortestDistances(m *domain.CampusMap) map[domain.LocationID]map[domain.LocationID]float64 {
	ids := m.Locations()
	dist := make(map[domain.LocationID]map[domain.LocationID]float64, len(ids))
	for _, a := range ids {
		dist[a] = make(map[domain.LocationID]float64, len(ids))
		for _, b := range ids {
			switch {
			case a == b:
				dist[a][b] = 0
			default:
				dist[a][b] = m.EdgeWeight(a, b)
			}
		}
	}
	for _, k := range ids {
		for _, i := range ids {
			for _, j := range ids {
				if via := dist[i][k] + dist[k][j]; via < dist[i][j] {
					dist[i][j] = via
				}
			}
		}
	}
	return dist
}

// pathDistance sums the edges along path, or +Inf if an edge is missing.
func pathDistance(m *domain.CampusMap, path domain.Path) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += m.EdgeWeight(path[i-1], path[i])
	}
	return total
}

func TestRoute_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("routes are optimal and consistent", prop.ForAll(
		func(seed int64, size int) bool {
			m := randomCampus(t, seed, size)
			best := shortestDistances(m)

			for _, start := range m.Locations() {
				for _, goal := range m.Locations() {
					route, ok := Route(m, start, goal)
					reachable := !math.IsInf(best[start][goal], 1)
					if ok != reachable {
						return false
					}
					if !ok {
						continue
					}
					if route.Path.Start() != start || route.Path.Goal() != goal {
						return false
					}
					if math.Abs(pathDistance(m, route.Path)-route.Distance) > 1e-9 {
						return false
					}
					if math.Abs(route.Distance-best[start][goal]) > 1e-9 {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(1, 8),
	))

	properties.Property("compiled length is path length minus one", prop.ForAll(
		func(seed int64, size int) bool {
			m := randomCampus(t, seed, size)
			for _, start := range m.Locations() {
				for _, goal := range m.Locations() {
					route, ok := Route(m, start, goal)
					if !ok {
						continue
					}
					instructions, err := CompileInstructions(m, route.Path)
					if err != nil || len(instructions) != len(route.Path)-1 {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}
