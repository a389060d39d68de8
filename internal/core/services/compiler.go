package services

import (
	"fmt"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

// CompileInstructions converts a path into one motion instruction per
// consecutive pair. Paths of length 0 or 1 compile to no instructions.
// A pair without an edge on the map yields ErrBrokenPath.
func CompileInstructions(m *domain.CampusMap, path domain.Path) ([]domain.Instruction, error) {
	if len(path) < 2 {
		return []domain.Instruction{}, nil
	}

	out := make([]domain.Instruction, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		from, to := path[i], path[i+1]
		edge, ok := m.Edge(from, to)
		if !ok {
			return nil, fmt.Errorf("%w: no edge %s -> %s at step %d", domain.ErrBrokenPath, from, to, i+1)
		}
		out = append(out, domain.Instruction{
			From:     from,
			To:       to,
			Action:   edge.Action,
			Distance: edge.Distance,
			Angle:    edge.Angle,
		})
	}
	return out, nil
}
