package mockdata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// EventDateLayout accepts DD-MM-YYYY; single digit days and months are allowed
const EventDateLayout = "2-1-2006"

// Timestamp window relative to the event date
const (
	minDayOffset = 1
	maxDayOffset = 10
	firstHour    = 10
	lastHour     = 17

	// TimestampSpace is the number of distinct timestamps the window can produce
	TimestampSpace = (maxDayOffset - minDayOffset + 1) * (lastHour - firstHour + 1) * 60 * 60

	// MinRating and MaxRating bound every generated answer
	MinRating = 2
	MaxRating = 5
)

// drawsPerSlot bounds the resampling loop at drawsPerSlot*TimestampSpace
// draws. Collecting the whole window takes about TimestampSpace*ln(TimestampSpace)
// draws on average, a little under half the bound.
const drawsPerSlot = 32

var (
	// ErrInvalidEventDate is returned when the event date is not DD-MM-YYYY
	ErrInvalidEventDate = errors.New("invalid date format, use DD-MM-YYYY")
	// ErrInvalidCount is returned for a non-positive participant count
	ErrInvalidCount = errors.New("number of students must be at least 1")
	// ErrTimestampSpaceExhausted is returned when more unique timestamps are
	// requested than the window holds, or sampling gives up
	ErrTimestampSpaceExhausted = errors.New("not enough distinct timestamps for the requested number of students")
)

// Questions are the Likert questions every synthetic response answers
var Questions = []string{
	"1. How satisfied were you with the overall event?",
	"2. How well was the event organized?",
	"3. How informative did you find the sessions?",
	"4. How would you rate the event venue and facilities?",
	"5. How likely are you to recommend this event to others?",
}

// ParseEventDate parses a user-entered event date
func ParseEventDate(input string) (time.Time, error) {
	t, err := time.Parse(EventDateLayout, strings.TrimSpace(input))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidEventDate, input)
	}
	return t, nil
}

// Params describes one generation run
type Params struct {
	Count     int
	EventDate time.Time
	// Questions defaults to the package Questions when empty
	Questions []string
}

// Generator produces synthetic student records
type Generator struct {
	rng       *rand.Rand
	logger    *slog.Logger
	drawLimit int
}

// Option configures a Generator
type Option func(*Generator)

// WithRand sets the random source, typically a seeded one in tests
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = r
	}
}

// WithLogger sets the generator logger
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a generator seeded from the runtime's random source
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{drawLimit: drawsPerSlot * TimestampSpace}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Generate builds p.Count records. Record i gets the i-th smallest timestamp.
// Nothing is returned unless every record could be built.
func (g *Generator) Generate(ctx context.Context, p Params) ([]domain.StudentRecord, error) {
	if p.Count < 1 {
		return nil, ErrInvalidCount
	}
	questions := p.Questions
	if len(questions) == 0 {
		questions = Questions
	}

	timestamps, err := g.uniqueTimestamps(ctx, p.EventDate, p.Count)
	if err != nil {
		return nil, err
	}

	records := make([]domain.StudentRecord, p.Count)
	for i := range records {
		ratings := make([]int, len(questions))
		for q := range ratings {
			ratings[q] = MinRating + g.rng.IntN(MaxRating-MinRating+1)
		}

		records[i] = domain.StudentRecord{
			Timestamp: timestamps[i],
			Email:     fmt.Sprintf("student%d@example.com", i+1),
			Name:      fmt.Sprintf("Student %d", i+1),
			Code:      fmt.Sprintf("BWU%04d", i+1),
			Ratings:   ratings,
		}
	}

	g.logger.Debug("generated synthetic responses",
		slog.Int("count", len(records)),
		slog.Int("questions", len(questions)),
		slog.String("event_date", p.EventDate.Format(EventDateLayout)))

	return records, nil
}

// uniqueTimestamps samples the window, discarding repeats, and returns n sorted timestamps
func (g *Generator) uniqueTimestamps(ctx context.Context, eventDate time.Time, n int) ([]time.Time, error) {
	if n > TimestampSpace {
		return nil, fmt.Errorf("%w: requested %d, window holds %d", ErrTimestampSpaceExhausted, n, TimestampSpace)
	}

	base := time.Date(eventDate.Year(), eventDate.Month(), eventDate.Day(), 0, 0, 0, 0, eventDate.Location())
	seen := make(map[int64]struct{}, n)
	out := make([]time.Time, 0, n)
	for draws := 0; len(out) < n; draws++ {
		if draws >= g.drawLimit {
			return nil, fmt.Errorf("%w: gave up after %d draws with %d of %d collected",
				ErrTimestampSpaceExhausted, draws, len(out), n)
		}
		if draws%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		ts := g.drawTimestamp(base)
		if _, dup := seen[ts.Unix()]; dup {
			continue
		}
		seen[ts.Unix()] = struct{}{}
		out = append(out, ts)
	}

	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out, nil
}

func (g *Generator) drawTimestamp(base time.Time) time.Time {
	days := minDayOffset + g.rng.IntN(maxDayOffset-minDayOffset+1)
	hour := firstHour + g.rng.IntN(lastHour-firstHour+1)
	minute := g.rng.IntN(60)
	second := g.rng.IntN(60)

	return base.AddDate(0, 0, days).Add(
		time.Duration(hour)*time.Hour +
			time.Duration(minute)*time.Minute +
			time.Duration(second)*time.Second)
}
