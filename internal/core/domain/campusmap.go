package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// EdgePolicy controls how edge symmetry is validated when a map is loaded.
type EdgePolicy string

// Available edge policies.
const (
	// EdgePolicyAllowOneWay accepts edges with no reverse counterpart.
	EdgePolicyAllowOneWay EdgePolicy = "allow_one_way"

	// EdgePolicyRequireReverse rejects any edge whose reverse is missing.
	EdgePolicyRequireReverse EdgePolicy = "require_reverse"
)

// IsValid returns true if the policy is recognised.
func (p EdgePolicy) IsValid() bool {
	return p == EdgePolicyAllowOneWay || p == EdgePolicyRequireReverse
}

// String returns the string representation.
func (p EdgePolicy) String() string {
	return string(p)
}

// MapDefinition is the on-disk schema of a campus map.
type MapDefinition struct {
	Name      string               `toml:"name" yaml:"name" hcl:"name,optional"`
	Locations []LocationDefinition `toml:"locations" yaml:"locations" hcl:"location,block" validate:"required,min=1,dive"`
}

// LocationDefinition describes one location and its outgoing edges.
type LocationDefinition struct {
	Name    string           `toml:"name" yaml:"name" hcl:"name,label" validate:"required"`
	Aliases []string         `toml:"aliases" yaml:"aliases" hcl:"aliases,optional" validate:"dive,required"`
	Edges   []EdgeDefinition `toml:"edges" yaml:"edges" hcl:"edge,block" validate:"dive"`
}

// EdgeDefinition describes one directed edge leaving a location.
type EdgeDefinition struct {
	To       string  `toml:"to" yaml:"to" hcl:"to" validate:"required"`
	Distance float64 `toml:"distance" yaml:"distance" hcl:"distance" validate:"gte=0"`
	Action   string  `toml:"action" yaml:"action" hcl:"action" validate:"required,oneof=forward turn_left turn_right stairs_up stairs_down"`
	Angle    float64 `toml:"angle" yaml:"angle" hcl:"angle,optional" validate:"gte=-360,lte=360"`
}

// CampusMap is an immutable directed graph of campus locations with an
// alias table. Safe for concurrent reads.
type CampusMap struct {
	name      string
	graph     map[LocationID]map[LocationID]Edge
	aliases   map[string]LocationID
	canonical map[string]LocationID
	byNode    map[LocationID][]string
}

// NewCampusMap validates def and builds a map from it.
// All violations are reported as ErrInvalidMap.
func NewCampusMap(def MapDefinition, policy EdgePolicy) (*CampusMap, error) {
	if policy == "" {
		policy = EdgePolicyAllowOneWay
	}
	if !policy.IsValid() {
		return nil, fmt.Errorf("%w: unknown edge policy %q", ErrInvalidMap, policy)
	}
	if len(def.Locations) == 0 {
		return nil, fmt.Errorf("%w: no locations", ErrInvalidMap)
	}

	m := &CampusMap{
		name:      def.Name,
		graph:     make(map[LocationID]map[LocationID]Edge, len(def.Locations)),
		aliases:   make(map[string]LocationID),
		canonical: make(map[string]LocationID, len(def.Locations)),
		byNode:    make(map[LocationID][]string),
	}

	for _, loc := range def.Locations {
		id := LocationID(strings.TrimSpace(loc.Name))
		if id == "" {
			return nil, fmt.Errorf("%w: location with empty name", ErrInvalidMap)
		}
		if _, dup := m.graph[id]; dup {
			return nil, fmt.Errorf("%w: duplicate location %q", ErrInvalidMap, id)
		}
		key := normaliseName(string(id))
		if other, clash := m.canonical[key]; clash {
			return nil, fmt.Errorf("%w: locations %q and %q resolve to the same name", ErrInvalidMap, other, id)
		}
		m.graph[id] = make(map[LocationID]Edge, len(loc.Edges))
		m.canonical[key] = id
	}

	for _, loc := range def.Locations {
		from := LocationID(strings.TrimSpace(loc.Name))
		for _, e := range loc.Edges {
			edge, err := buildEdge(from, e)
			if err != nil {
				return nil, err
			}
			if _, ok := m.graph[edge.To]; !ok {
				return nil, fmt.Errorf("%w: edge %s -> %s targets unknown location", ErrInvalidMap, from, edge.To)
			}
			if _, dup := m.graph[from][edge.To]; dup {
				return nil, fmt.Errorf("%w: duplicate edge %s -> %s", ErrInvalidMap, from, edge.To)
			}
			m.graph[from][edge.To] = edge
		}
		for _, alias := range loc.Aliases {
			if err := m.addAlias(alias, from); err != nil {
				return nil, err
			}
		}
	}

	if policy == EdgePolicyRequireReverse {
		for from, edges := range m.graph {
			for to := range edges {
				if _, ok := m.graph[to][from]; !ok {
					return nil, fmt.Errorf("%w: edge %s -> %s has no reverse edge", ErrInvalidMap, from, to)
				}
			}
		}
	}

	return m, nil
}

func buildEdge(from LocationID, e EdgeDefinition) (Edge, error) {
	to := LocationID(strings.TrimSpace(e.To))
	action := Action(e.Action)
	switch {
	case to == "":
		return Edge{}, fmt.Errorf("%w: edge from %s has no target", ErrInvalidMap, from)
	case to == from:
		return Edge{}, fmt.Errorf("%w: self-loop on %s", ErrInvalidMap, from)
	case e.Distance < 0 || math.IsNaN(e.Distance) || math.IsInf(e.Distance, 0):
		return Edge{}, fmt.Errorf("%w: edge %s -> %s has invalid distance %v", ErrInvalidMap, from, to, e.Distance)
	case !action.IsValid():
		return Edge{}, fmt.Errorf("%w: edge %s -> %s has unknown action %q", ErrInvalidMap, from, to, e.Action)
	}
	return Edge{From: from, To: to, Distance: e.Distance, Action: action, Angle: e.Angle}, nil
}

func (m *CampusMap) addAlias(alias string, id LocationID) error {
	key := strings.ToLower(strings.TrimSpace(alias))
	if key == "" {
		return fmt.Errorf("%w: empty alias on %s", ErrInvalidMap, id)
	}
	if existing, ok := m.aliases[key]; ok {
		if existing == id {
			return nil
		}
		return fmt.Errorf("%w: alias %q maps to both %s and %s", ErrInvalidMap, key, existing, id)
	}
	if other, ok := m.canonical[normaliseName(key)]; ok && other != id {
		return fmt.Errorf("%w: alias %q on %s shadows location %s", ErrInvalidMap, key, id, other)
	}
	m.aliases[key] = id
	m.byNode[id] = append(m.byNode[id], key)
	return nil
}

// normaliseName lowercases, trims and treats underscores as spaces.
func normaliseName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", " ")
}

// Name returns the map's display name, if any.
func (m *CampusMap) Name() string {
	return m.name
}

// Has reports whether id is a location on the map.
func (m *CampusMap) Has(id LocationID) bool {
	_, ok := m.graph[id]
	return ok
}

// Neighbors returns the outgoing edges of id keyed by target.
// An unknown location yields an empty map.
func (m *CampusMap) Neighbors(id LocationID) map[LocationID]Edge {
	edges := m.graph[id]
	out := make(map[LocationID]Edge, len(edges))
	for to, e := range edges {
		out[to] = e
	}
	return out
}

// Edge returns the direct edge from -> to, if any.
func (m *CampusMap) Edge(from, to LocationID) (Edge, bool) {
	e, ok := m.graph[from][to]
	return e, ok
}

// EdgeWeight returns the direct edge distance, or +Inf if no edge exists.
func (m *CampusMap) EdgeWeight(from, to LocationID) float64 {
	if e, ok := m.graph[from][to]; ok {
		return e.Distance
	}
	return math.Inf(1)
}

// Resolve maps user input to a canonical location.
// The alias table is consulted first, then canonical names compared
// case-insensitively with underscores and spaces treated as equal.
func (m *CampusMap) Resolve(input string) (LocationID, bool) {
	key := strings.ToLower(strings.TrimSpace(input))
	if key == "" {
		return "", false
	}
	if id, ok := m.aliases[key]; ok {
		return id, true
	}
	id, ok := m.canonical[normaliseName(key)]
	return id, ok
}

// Locations returns every location sorted by name.
func (m *CampusMap) Locations() []LocationID {
	ids := make([]LocationID, 0, len(m.graph))
	for id := range m.graph {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Aliases returns the aliases of id, sorted.
func (m *CampusMap) Aliases(id LocationID) []string {
	out := append([]string(nil), m.byNode[id]...)
	sort.Strings(out)
	return out
}

// EdgeCount returns the number of directed edges.
func (m *CampusMap) EdgeCount() int {
	n := 0
	for _, edges := range m.graph {
		n += len(edges)
	}
	return n
}

// Info returns listing entries for every location.
func (m *CampusMap) Info() []LocationInfo {
	ids := m.Locations()
	out := make([]LocationInfo, len(ids))
	for i, id := range ids {
		out[i] = LocationInfo{ID: id, Name: id.DisplayName(), Aliases: m.Aliases(id)}
	}
	return out
}
