package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/rs/zerolog"
)

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("lmfit-warning: %v\n", w)
	}
)

// SetWarningHandler replaces the library-wide warning handler. The default
// handler writes warnings to the standard logger.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// Warn emits a warning through the configured handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	if warningHandler != nil {
		warningHandler(w)
	}
}

// RankDeficiencyWarning is emitted when a design matrix has lower numerical
// rank than it has columns. The fit may still proceed in callers that handle
// aliasing themselves, but coefficient interpretation is suspect.
type RankDeficiencyWarning struct {
	Op      string
	Rank    int
	Columns int
}

func (w *RankDeficiencyWarning) Error() string {
	return fmt.Sprintf("%s: design matrix is rank deficient (rank %d < %d columns); check for aliased factor levels", w.Op, w.Rank, w.Columns)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *RankDeficiencyWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("rank", w.Rank).
		Int("columns", w.Columns).
		Str("type", "RankDeficiencyWarning")
}

// NewRankDeficiencyWarning creates a RankDeficiencyWarning.
func NewRankDeficiencyWarning(op string, rank, columns int) *RankDeficiencyWarning {
	return &RankDeficiencyWarning{Op: op, Rank: rank, Columns: columns}
}
