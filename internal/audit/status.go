package audit

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pwd-strength/pkg/strength"
)

// Summary is the outcome of one audit run.
type Summary struct {
	Total    int
	Strong   uint64
	Moderate uint64
	Weak     uint64
	Skipped  int
	// WeakUsers lists the accounts whose passwords classified Weak. Only
	// usernames are retained, never passwords.
	WeakUsers []string
}

type status struct {
	evaluated uint64
	strong    uint64
	moderate  uint64
	weak      uint64
	wm        sync.Mutex
	weakUsers []string
	start     time.Time
	ticker    *time.Ticker
	progress  chan bool
	total     int
}

func newStatus(total int) *status {
	return &status{
		start:    time.Now(),
		ticker:   time.NewTicker(10 * time.Second),
		progress: make(chan bool),
		total:    total,
	}
}

// BeginProgress reports the progress of the audit every 10 seconds.
func (s *status) BeginProgress() {
	go func() {
		for {
			select {
			case <-s.progress:
				return
			case <-s.ticker.C:
				total := float64(s.total)
				log.Info().Msgf("%.2f%% entries audited. %.0f entries/s",
					(float64(atomic.LoadUint64(&s.evaluated))*100)/total, s.entriesPerSecond())
			}
		}
	}()
}

func (s *status) ReportDone(username string, c strength.Classification) {
	atomic.AddUint64(&s.evaluated, 1)
	switch c {
	case strength.Strong:
		atomic.AddUint64(&s.strong, 1)
	case strength.Moderate:
		atomic.AddUint64(&s.moderate, 1)
	default:
		atomic.AddUint64(&s.weak, 1)
		s.wm.Lock()
		s.weakUsers = append(s.weakUsers, username)
		s.wm.Unlock()
	}
}

func (s *status) entriesPerSecond() float64 {
	elapsed := time.Since(s.start)
	if elapsed.Nanoseconds() > 0 {
		return float64(atomic.LoadUint64(&s.evaluated)) / elapsed.Seconds()
	}
	return float64(atomic.LoadUint64(&s.evaluated))
}

func (s *status) Done() *Summary {
	s.progress <- true
	s.ticker.Stop()

	p := message.NewPrinter(language.English)
	log.Info().Msgf("finished auditing %s entries in %v. %.0f entries/s",
		p.Sprintf("%d", s.evaluated), time.Since(s.start), s.entriesPerSecond())
	log.Info().Msgf("strong: %s, moderate: %s, weak: %s",
		p.Sprintf("%d", s.strong), p.Sprintf("%d", s.moderate), p.Sprintf("%d", s.weak))

	return &Summary{
		Total:     s.total,
		Strong:    s.strong,
		Moderate:  s.moderate,
		Weak:      s.weak,
		WeakUsers: s.weakUsers,
	}
}
