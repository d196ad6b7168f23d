package insights

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockport/portfolio-engine/internal/domain"
	"github.com/stockport/portfolio-engine/internal/events"
)

// ErrNotFound is returned when an insight ID does not exist
var ErrNotFound = errors.New("insight not found")

// Snapshotter supplies the valued portfolio a generation run scans
type Snapshotter interface {
	ValuedSnapshot() []domain.ValuedPosition
}

// Service owns the active insight collection. The in-memory list is
// authoritative; sqlite is write-through and non-fatal, same policy as the
// holdings ledger. Repeated generation runs suppress duplicates of a
// finding raised within the cool-down window instead of piling up
// near-identical entries.
type Service struct {
	mu       sync.Mutex
	insights []Insight
	repo     *Repository
	snapshot Snapshotter
	events   *events.Manager
	cooldown time.Duration
	log      zerolog.Logger
}

// NewService creates the insight service and loads persisted insights
func NewService(repo *Repository, snapshot Snapshotter, ev *events.Manager, cooldown time.Duration, log zerolog.Logger) *Service {
	s := &Service{
		repo:     repo,
		snapshot: snapshot,
		events:   ev,
		cooldown: cooldown,
		log:      log.With().Str("service", "insights").Logger(),
	}

	loaded, err := repo.GetAll()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to load insights, starting empty")
		return s
	}
	s.insights = loaded

	return s
}

// Generate runs a fresh rule scan over the current valued portfolio,
// appends the surviving findings, persists them, and returns them.
func (s *Service) Generate() []Insight {
	fresh := Generate(s.snapshot.ValuedSnapshot())

	s.mu.Lock()
	var added []Insight
	for _, ins := range fresh {
		if s.isDuplicateLocked(ins) {
			continue
		}
		s.insights = append(s.insights, ins)
		added = append(added, ins)
		if err := s.repo.Insert(ins); err != nil {
			s.log.Warn().Err(err).Str("title", ins.Title).Msg("Failed to persist insight")
		}
	}
	s.mu.Unlock()

	s.log.Info().
		Int("generated", len(fresh)).
		Int("added", len(added)).
		Msg("Insight scan complete")

	if len(added) > 0 {
		s.events.Emit(events.InsightsGenerated, "insights", map[string]interface{}{
			"count": len(added),
		})
	}

	return added
}

// List returns all active insights sorted by priority (descending) and then
// creation time (newest first). The sort is stable, so equal entries keep
// insertion order.
func (s *Service) List() []Insight {
	s.mu.Lock()
	out := make([]Insight, len(s.insights))
	copy(out, s.insights)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority.Rank() != out[j].Priority.Rank() {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

// MarkRead flags an insight as read. The insight stays in the active set so
// history and unread counts keep working.
func (s *Service) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.insights {
		if s.insights[i].ID == id {
			s.insights[i].IsRead = true
			if err := s.repo.MarkRead(id); err != nil {
				s.log.Warn().Err(err).Str("id", id).Msg("Failed to persist read flag")
			}
			return nil
		}
	}
	return ErrNotFound
}

// Dismiss removes an insight from the active set
func (s *Service) Dismiss(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.insights {
		if s.insights[i].ID == id {
			s.insights = append(s.insights[:i], s.insights[i+1:]...)
			if err := s.repo.Delete(id); err != nil {
				s.log.Warn().Err(err).Str("id", id).Msg("Failed to persist dismissal")
			}
			return nil
		}
	}
	return ErrNotFound
}

// Clear removes every insight
func (s *Service) Clear() {
	s.mu.Lock()
	s.insights = nil
	if err := s.repo.DeleteAll(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to persist clear")
	}
	s.mu.Unlock()
}

// UnreadCount returns the number of unread insights
func (s *Service) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, ins := range s.insights {
		if !ins.IsRead {
			count++
		}
	}
	return count
}

// isDuplicateLocked reports whether an equivalent finding (same kind, title
// and related symbols) was already raised within the cool-down window.
// Caller holds s.mu.
func (s *Service) isDuplicateLocked(candidate Insight) bool {
	if s.cooldown <= 0 {
		return false
	}

	cutoff := time.Now().Add(-s.cooldown)
	key := dedupeKey(candidate)
	for _, existing := range s.insights {
		if existing.CreatedAt.After(cutoff) && dedupeKey(existing) == key {
			return true
		}
	}
	return false
}

func dedupeKey(ins Insight) string {
	return string(ins.Kind) + "|" + ins.Title + "|" + strings.Join(ins.RelatedSymbols, ",")
}
