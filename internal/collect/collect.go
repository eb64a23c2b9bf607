// Package collect turns the raw entries of a source into the ordered list of
// entries to print.
//
// The stages run in a fixed order: age filter, recency sort, limit,
// resolution (decode, classify, resolve remotes) and kind ordering.
package collect

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/jh3/codep/internal/clock"
	"github.com/jh3/codep/internal/entry"
	"github.com/jh3/codep/internal/logging"
	"github.com/jh3/codep/internal/remote"
	"github.com/jh3/codep/internal/source"
	"github.com/jh3/codep/internal/uri"
)

const day = 24 * time.Hour

// ErrMaxAgeTooLarge is returned when the age window reaches past the
// representable time range.
var ErrMaxAgeTooLarge = errors.New("max age too large")

// Selection picks the entries to keep. Files and Dirs gate local entries by
// kind; Remotes gates every remote entry.
type Selection struct {
	Files   bool
	Dirs    bool
	Remotes bool
}

// Any reports whether anything is selected.
func (s Selection) Any() bool {
	return s.Files || s.Dirs || s.Remotes
}

func (s Selection) filter(k entry.Kind) entry.Filter {
	local := s.Files
	if k == entry.KindDir {
		local = s.Dirs
	}
	return entry.Filter{Local: local, Remote: s.Remotes}
}

// Options configures a collection run.
type Options struct {
	Select Selection
	// MaxAgeDays drops timed entries older than the window when set.
	MaxAgeDays *uint
	// Limit keeps the first Limit entries after sorting. Zero means no limit.
	Limit int
	Order Order
	Clock clock.Clock
}

// Cutoff returns the oldest modification time a window of days keeps.
func Cutoff(now time.Time, days uint) (time.Time, error) {
	if uint64(days) > uint64(math.MaxInt64/int64(day)) {
		return time.Time{}, fmt.Errorf("%w: %d days", ErrMaxAgeTooLarge, days)
	}
	return now.Add(-time.Duration(days) * day), nil
}

// Collect runs every stage over the entries of src.
func Collect(src source.Source, opts Options) ([]entry.Resolved, error) {
	seq, err := src.Entries()
	if err != nil {
		return nil, err
	}

	keep := func(entry.Raw) bool { return true }
	if opts.MaxAgeDays != nil {
		c := opts.Clock
		if c == nil {
			c = clock.Real{}
		}
		cutoff, err := Cutoff(c.Now(), *opts.MaxAgeDays)
		if err != nil {
			return nil, err
		}
		keep = func(e entry.Raw) bool {
			return !e.Timed() || !e.ModifiedAt.Before(cutoff)
		}
	}

	var raws []entry.Raw
	for e := range seq {
		if keep(e) {
			raws = append(raws, e)
		}
	}

	SortByRecency(raws)
	if opts.Limit > 0 && len(raws) > opts.Limit {
		raws = raws[:opts.Limit]
	}

	resolved := make([]entry.Resolved, 0, len(raws))
	for _, e := range raws {
		r, ok := Resolve(e, opts.Select)
		if ok {
			resolved = append(resolved, r)
		}
	}
	return Arrange(resolved, opts.Order), nil
}

// SortByRecency orders entries newest first. Entries with equal timestamps
// keep their source order.
func SortByRecency(entries []entry.Raw) {
	slices.SortStableFunc(entries, func(a, b entry.Raw) int {
		return b.ModifiedAt.Compare(a.ModifiedAt)
	})
}

// Resolve decodes and classifies one raw entry. ok is false when the entry
// is filtered out or cannot be resolved.
func Resolve(e entry.Raw, sel Selection) (entry.Resolved, bool) {
	log := logging.L().With(zap.String("uri", e.URI))

	decoded, err := uri.Decode(e.URI)
	if err != nil {
		log.Warn("skipping undecodable uri", zap.Error(err))
		return entry.Resolved{}, false
	}

	class, payload, ok := entry.Classify(decoded, sel.filter(e.Kind))
	if !ok {
		return entry.Resolved{}, false
	}

	raw := decoded
	if e.Path != "" {
		raw, err = uri.Decode(e.Path)
		if err != nil {
			log.Warn("skipping undecodable path", zap.Error(err))
			return entry.Resolved{}, false
		}
	}

	r := entry.Resolved{
		Kind:  e.Kind,
		Class: class,
		Raw:   entry.Sanitize(raw),
	}
	switch class {
	case entry.Local:
		r.Path = entry.Sanitize(payload)
	case entry.Remote:
		info, err := remote.Resolve(payload)
		if err != nil {
			log.Warn("skipping unparsable remote folder", zap.Error(err))
			return entry.Resolved{}, false
		}
		info.Primary = entry.Sanitize(info.Primary)
		if info.Hint != nil {
			info.Hint.Label = entry.Sanitize(info.Hint.Label)
		}
		r.Remote = info
	}
	return r, true
}
