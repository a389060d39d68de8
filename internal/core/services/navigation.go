package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
	"github.com/custodia-labs/campusnav/internal/core/ports/driving"
	"github.com/custodia-labs/campusnav/internal/logger"
)

// Ensure NavigationService implements the interface.
var _ driving.NavigationService = (*NavigationService)(nil)

// DefaultHistoryKeep is how many navigation records are retained.
const DefaultHistoryKeep = 500

// NavigationService plans and executes navigation requests against one
// campus map. Navigate calls are serialised: a call that arrives while
// another is in progress is rejected with StatusAlreadyRunning.
type NavigationService struct {
	campus   *domain.CampusMap
	executor *NavigationExecutor
	history  driven.NavigationHistoryStore
	metrics  driven.NavigationMetrics
	clock    driven.Clock
	keep     int

	navMu sync.Mutex

	posMu    sync.RWMutex
	position domain.LocationID

	closeOnce sync.Once
	closeErr  error
}

// NewNavigationService creates a service positioned at start.
// History and metrics may be nil.
func NewNavigationService(
	campus *domain.CampusMap,
	executor *NavigationExecutor,
	start string,
	history driven.NavigationHistoryStore,
	metrics driven.NavigationMetrics,
	clock driven.Clock,
) (*NavigationService, error) {
	position, ok := campus.Resolve(start)
	if !ok {
		return nil, fmt.Errorf("start location %q: %w", start, domain.ErrUnknownLocation)
	}
	return &NavigationService{
		campus:   campus,
		executor: executor,
		history:  history,
		metrics:  metrics,
		clock:    clock,
		keep:     DefaultHistoryKeep,
		position: position,
	}, nil
}

// SetHistoryLimit sets how many history records are kept after each
// navigation. Zero or less disables pruning.
func (s *NavigationService) SetHistoryLimit(keep int) {
	s.keep = keep
}

// Navigate resolves destination, routes from the current position and
// drives the route. The result is never nil.
func (s *NavigationService) Navigate(ctx context.Context, destination string) *domain.NavigationResult {
	return s.NavigateFrom(ctx, "", destination)
}

// NavigateFrom sets the position to from and navigates to destination
// under a single hold of the navigation lock. An empty from keeps the
// current position; an unknown one is reported as StatusUnknownLocation.
func (s *NavigationService) NavigateFrom(ctx context.Context, from, destination string) *domain.NavigationResult {
	startedAt := s.clock.Now()

	if !s.navMu.TryLock() {
		return s.reject(destination)
	}
	defer s.navMu.Unlock()

	var (
		result *domain.NavigationResult
		record *domain.NavigationRecord
	)
	if from != "" {
		id, ok := s.campus.Resolve(from)
		if ok {
			s.setPosition(id)
			logger.Info("Position set to %s", id)
		} else {
			result, record = s.outcome(&domain.NavigationResult{
				Status:  domain.StatusUnknownLocation,
				Message: fmt.Sprintf("Unknown start location: %q", from),
				From:    s.Position(),
				Err:     fmt.Errorf("%w: %q", domain.ErrUnknownLocation, from),
			}, destination, 0)
		}
	}
	if result == nil {
		result, record = s.navigate(ctx, s.Position(), destination)
	}

	elapsed := s.clock.Now().Sub(startedAt)
	if s.metrics != nil {
		s.metrics.NavigationRequested(result.Status)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.StartedAt = startedAt
	record.FinishedAt = startedAt.Add(elapsed)
	s.recordHistory(ctx, record)

	return result
}

// navigate does the work of Navigate under the navigation lock.
//
//nolint:gocyclo // One branch per outcome
func (s *NavigationService) navigate(ctx context.Context, from domain.LocationID, destination string) (*domain.NavigationResult, *domain.NavigationRecord) {
	logger.Section("Navigate")
	logger.Debug("Destination: %q, position: %s", destination, from)

	goal, ok := s.campus.Resolve(destination)
	if !ok {
		return s.outcome(&domain.NavigationResult{
			Status:  domain.StatusUnknownLocation,
			Message: fmt.Sprintf("Unknown location: %q", destination),
			From:    from,
			Err:     fmt.Errorf("%w: %q", domain.ErrUnknownLocation, destination),
		}, destination, 0)
	}

	route, found := Route(s.campus, from, goal)
	if s.metrics != nil {
		s.metrics.RoutePlanned(found, route.Distance)
	}
	if !found {
		return s.outcome(&domain.NavigationResult{
			Status:      domain.StatusNoPathFound,
			Message:     fmt.Sprintf("No path from %s to %s", from.DisplayName(), goal.DisplayName()),
			From:        from,
			Destination: goal,
			Err:         fmt.Errorf("%w: %s -> %s", domain.ErrNoPathFound, from, goal),
		}, destination, 0)
	}
	logger.Info("Route: %s (%.1fm)", route.Path, route.Distance)

	instructions, err := CompileInstructions(s.campus, route.Path)
	if err != nil {
		logger.Error("Internal fault compiling route %s: %v", route.Path, err)
		s.executor.stopQuietly()
		return s.outcome(&domain.NavigationResult{
			Status:      domain.StatusFailed,
			Message:     "Navigation failed due to an internal error",
			From:        from,
			Destination: goal,
			Path:        route.Path,
			Distance:    route.Distance,
			Err:         err,
		}, destination, 0)
	}

	base := domain.NavigationResult{
		From:        from,
		Destination: goal,
		Path:        route.Path,
		Distance:    route.Distance,
		StepsTotal:  len(instructions),
	}

	if len(instructions) == 0 {
		base.Status = domain.StatusCompleted
		base.Message = fmt.Sprintf("Already at %s", goal.DisplayName())
		return s.outcome(&base, destination, 0)
	}

	report, err := s.executor.Run(ctx, instructions)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRunning) {
			base.Status = domain.StatusAlreadyRunning
			base.Message = "Another navigation is already running"
		} else {
			base.Status = domain.StatusFailed
			base.Message = fmt.Sprintf("Navigation failed: %v", err)
		}
		base.Err = err
		return s.outcome(&base, destination, 0)
	}

	// Open-loop position: the end of the last instruction that completed.
	s.setPosition(route.Path[report.Completed])

	base.SessionID = report.SessionID
	base.StepsCompleted = report.Completed
	base.Status = domain.StatusFromState(report.State)
	base.Message = reportMessage(report, goal)
	if report.State == domain.StateFailed {
		base.Err = report.Fault
	}

	result, record := s.outcome(&base, destination, report.Obstacles)
	record.ID = report.SessionID
	return result, record
}

// outcome pairs a result with its history record.
func (s *NavigationService) outcome(r *domain.NavigationResult, requested string, obstacles int) (*domain.NavigationResult, *domain.NavigationRecord) {
	dest := r.Destination
	if dest == "" {
		dest = domain.LocationID(requested)
	}
	record := &domain.NavigationRecord{
		ID:             r.SessionID,
		From:           r.From,
		Destination:    dest,
		Status:         r.Status,
		Message:        r.Message,
		Path:           r.Path,
		Distance:       r.Distance,
		StepsCompleted: r.StepsCompleted,
		StepsTotal:     r.StepsTotal,
		Obstacles:      obstacles,
	}
	if r.Err != nil {
		record.Error = r.Err.Error()
	}

	switch {
	case r.Status.IsSuccess():
		logger.Info("%s", r.Message)
	default:
		logger.Warn("%s", r.Message)
	}
	return r, record
}

// reject answers a Navigate call made while another is in progress.
// Rejections are not written to history.
func (s *NavigationService) reject(destination string) *domain.NavigationResult {
	logger.Warn("Rejected navigation to %q: already running", destination)
	if s.metrics != nil {
		s.metrics.NavigationRequested(domain.StatusAlreadyRunning)
	}
	return &domain.NavigationResult{
		Status:  domain.StatusAlreadyRunning,
		Message: "Another navigation is already running",
		From:    s.Position(),
		Err:     domain.ErrAlreadyRunning,
	}
}

func (s *NavigationService) recordHistory(ctx context.Context, record *domain.NavigationRecord) {
	if s.history == nil {
		return
	}
	// History must survive a cancelled request context.
	ctx = context.WithoutCancel(ctx)
	if err := s.history.Record(ctx, record); err != nil {
		logger.Warn("Failed to record navigation history: %v", err)
		return
	}
	if s.keep > 0 {
		if err := s.history.Prune(ctx, s.keep); err != nil {
			logger.Warn("Failed to prune navigation history: %v", err)
		}
	}
}

func reportMessage(r *domain.ExecutionReport, goal domain.LocationID) string {
	switch r.State {
	case domain.StateCompleted:
		return fmt.Sprintf("Arrived at %s", goal.DisplayName())
	case domain.StateCancelled:
		return fmt.Sprintf("Navigation cancelled after %d of %d steps", r.Completed, r.Total)
	case domain.StateBlocked:
		if r.Halted != nil {
			return fmt.Sprintf("Path blocked between %s and %s", r.Halted.From.DisplayName(), r.Halted.To.DisplayName())
		}
		return "Path blocked"
	case domain.StateManualInterventionRequired:
		if r.Halted != nil {
			return fmt.Sprintf("Stairs between %s and %s: manual intervention required",
				r.Halted.From.DisplayName(), r.Halted.To.DisplayName())
		}
		return "Manual intervention required"
	default:
		if r.Fault != nil {
			return fmt.Sprintf("Navigation failed: %v", r.Fault)
		}
		return "Navigation failed"
	}
}

// CancelCurrent requests the active navigation to stop.
func (s *NavigationService) CancelCurrent() bool {
	return s.executor.Cancel()
}

// Position returns the robot's believed location.
func (s *NavigationService) Position() domain.LocationID {
	s.posMu.RLock()
	defer s.posMu.RUnlock()
	return s.position
}

func (s *NavigationService) setPosition(id domain.LocationID) {
	s.posMu.Lock()
	defer s.posMu.Unlock()
	s.position = id
}

// RestorePosition moves the believed position to where the most recent
// recorded navigation left the robot. Without usable history the start
// location is kept and false is returned.
func (s *NavigationService) RestorePosition(ctx context.Context) (domain.LocationID, bool) {
	if s.history == nil {
		return s.Position(), false
	}
	records, err := s.history.List(ctx, 1)
	if err != nil {
		logger.Warn("Failed to read navigation history: %v", err)
		return s.Position(), false
	}
	if len(records) == 0 {
		return s.Position(), false
	}

	last := records[0].EndPosition()
	id, ok := s.campus.Resolve(string(last))
	if !ok {
		logger.Warn("Last position %q is not on the map, starting at %s", last, s.Position())
		return s.Position(), false
	}

	s.setPosition(id)
	logger.Debug("Restored position %s from navigation %s", id, records[0].ID)
	return id, true
}

// Relocate sets the believed position.
func (s *NavigationService) Relocate(location string) (domain.LocationID, error) {
	id, ok := s.campus.Resolve(location)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownLocation, location)
	}
	if !s.navMu.TryLock() {
		return "", domain.ErrAlreadyRunning
	}
	defer s.navMu.Unlock()

	s.setPosition(id)
	logger.Info("Position set to %s", id)
	return id, nil
}

// Status returns the current position and session progress.
func (s *NavigationService) Status() domain.NavigationStatusSnapshot {
	snap := domain.NavigationStatusSnapshot{
		Position: s.Position(),
		State:    domain.StateIdle,
	}
	session, step, ok := s.executor.Session()
	if !ok {
		return snap
	}
	snap.State = session.State
	snap.SessionID = session.ID
	snap.Destination = session.Destination
	snap.Current = session.Current
	snap.Total = session.Total
	snap.Step = step
	return snap
}

// Plan previews the route between two locations without moving.
func (s *NavigationService) Plan(_ context.Context, from, destination string) (*domain.RoutePlan, error) {
	start := s.Position()
	if from != "" {
		id, ok := s.campus.Resolve(from)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownLocation, from)
		}
		start = id
	}

	goal, ok := s.campus.Resolve(destination)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownLocation, destination)
	}

	route, found := Route(s.campus, start, goal)
	if s.metrics != nil {
		s.metrics.RoutePlanned(found, route.Distance)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrNoPathFound, start, goal)
	}

	instructions, err := CompileInstructions(s.campus, route.Path)
	if err != nil {
		logger.Error("Internal fault compiling route %s: %v", route.Path, err)
		return nil, err
	}

	return &domain.RoutePlan{
		From:         start,
		To:           goal,
		Path:         route.Path,
		Distance:     route.Distance,
		Instructions: instructions,
	}, nil
}

// Locations lists every location with its aliases.
func (s *NavigationService) Locations() []domain.LocationInfo {
	return s.campus.Info()
}

// History returns recent navigation records, most recent first.
func (s *NavigationService) History(ctx context.Context, limit int) ([]domain.NavigationRecord, error) {
	if s.history == nil {
		return []domain.NavigationRecord{}, nil
	}
	records, err := s.history.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing navigation history: %w", err)
	}
	return records, nil
}

// Close cancels any active navigation and shuts the motors down.
// Safe to call more than once.
func (s *NavigationService) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.executor.Shutdown()
	})
	return s.closeErr
}

// LoadCampusMap reads a map definition from src and builds the map.
func LoadCampusMap(ctx context.Context, src driven.MapSource, policy domain.EdgePolicy) (*domain.CampusMap, error) {
	def, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading map from %s: %w", src.Describe(), err)
	}
	campus, err := domain.NewCampusMap(*def, policy)
	if err != nil {
		return nil, fmt.Errorf("building map from %s: %w", src.Describe(), err)
	}
	logger.Info("Loaded map %q from %s: %d locations, %d edges",
		campus.Name(), src.Describe(), len(campus.Locations()), campus.EdgeCount())
	return campus, nil
}
