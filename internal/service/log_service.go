package service

import (
	"context"
	"errors"

	"exercise-tracker/internal/dates"
	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogQuery carries the optional query parameters of a log request. A nil
// field means the parameter was absent; presence with an empty value is a
// distinct state (an empty bound parses as invalid and matches nothing).
type LogQuery struct {
	From  *string
	To    *string
	Limit *string
}

// LogEntry is the display projection of an exercise.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResult is the log payload. From and To are present exactly when the
// corresponding query parameter was supplied, which yields the four response
// shapes (neither, from only, to only, both) with stable field order.
type LogResult struct {
	ID       string     `json:"_id"`
	From     *string    `json:"from,omitempty"`
	To       *string    `json:"to,omitempty"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// LogService produces activity log payloads.
type LogService interface {
	// GetUserLog resolves the user, loads their exercises in insertion
	// order and builds the filtered, limited, shape-varying payload.
	// Returns ErrUserNotFound without touching the exercise store when the
	// id does not resolve.
	GetUserLog(ctx context.Context, userID primitive.ObjectID, query LogQuery) (*LogResult, error)
}

type logService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	dates        *dates.Formatter
}

// NewLogService creates a new instance of logService.
func NewLogService(userRepo repository.UserRepository, exerciseRepo repository.ExerciseRepository, formatter *dates.Formatter) LogService {
	return &logService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		dates:        formatter,
	}
}

func (s *logService) GetUserLog(ctx context.Context, userID primitive.ObjectID, query LogQuery) (*LogResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exercises, err := s.exerciseRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return BuildLog(user.ID.Hex(), user.Username, exercises, query, s.dates), nil
}

// BuildLog is the query engine proper: a pure function of the user's
// identity, their exercise records in insertion order, and the optional
// from/to/limit parameters.
//
// Records are projected to display form first and the date bounds are
// compared against the reparse of the rendered date string, not the stored
// value. Downstream consumers depend on this, so it is kept even though
// filtering on the stored date would be the cleaner design.
func BuildLog(id, username string, exercises []domain.Exercise, query LogQuery, f *dates.Formatter) *LogResult {
	entries := make([]LogEntry, 0, len(exercises))
	for _, ex := range exercises {
		entries = append(entries, LogEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        f.Display(ex.Date),
		})
	}

	result := &LogResult{ID: id, Username: username}

	if query.From != nil {
		from, err := f.Parse(*query.From)
		entries = filterEntries(entries, f, func(entryDate int64) bool {
			// An unparseable bound matches nothing.
			return err == nil && entryDate >= from.Unix()
		})
		formatted := f.Display(*query.From)
		result.From = &formatted
	}

	if query.To != nil {
		to, err := f.Parse(*query.To)
		entries = filterEntries(entries, f, func(entryDate int64) bool {
			return err == nil && entryDate <= to.Unix()
		})
		formatted := f.Display(*query.To)
		result.To = &formatted
	}

	if query.Limit != nil {
		if n, ok := parseLimit(*query.Limit); ok && n < len(entries) {
			entries = entries[:n]
		}
	}

	result.Count = len(entries)
	result.Log = entries
	return result
}

// filterEntries keeps the entries whose rendered date, reparsed at day
// granularity, satisfies the predicate. Entries whose rendered date does not
// reparse (i.e. "Invalid date") are dropped by any active bound.
func filterEntries(entries []LogEntry, f *dates.Formatter, keep func(entryDate int64) bool) []LogEntry {
	filtered := entries[:0:0]
	for _, e := range entries {
		t, err := f.Parse(e.Date)
		if err != nil {
			continue
		}
		if keep(t.Unix()) {
			filtered = append(filtered, e)
		}
	}
	if filtered == nil {
		filtered = []LogEntry{}
	}
	return filtered
}

// parseLimit reads the leading digit run of the limit parameter, the way
// parseInt would. A value with no leading digits means "no limit".
func parseLimit(raw string) (int, bool) {
	i := 0
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n := 0
	for _, c := range raw[:i] {
		n = n*10 + int(c-'0')
		if n > 1<<30 {
			return 1 << 30, true
		}
	}
	return n, true
}
