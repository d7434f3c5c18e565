package tosslab

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/zintix-labs/tosslab/errs"
	"github.com/zintix-labs/tosslab/match"
)

// Meta lists what a dataset contains, for building filter menus.
type Meta struct {
	// Fingerprint is a name-based UUID of the record contents. Two labs
	// built from the same records in the same order share it.
	Fingerprint string         `json:"fingerprint" yaml:"fingerprint"`
	Records     int            `json:"records" yaml:"records"`
	Formats     []match.Format `json:"formats" yaml:"formats"`
	Teams       []string       `json:"teams" yaml:"teams"`
	Years       []int          `json:"years" yaml:"years"`
}

// Lab serves reports over one frozen dataset.
//
// The records are copied on construction and never written again, so a Lab
// can be shared by any number of goroutines.
type Lab struct {
	records []match.Record
	meta    Meta
	log     *slog.Logger

	// lifecycle
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	reason    atomic.Value // string
}

// NewLab runs every record through match.New and freezes the normalised
// copies.
//
// A nil logger discards output.
func NewLab(records []match.Record, log *slog.Logger) (*Lab, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	own, err := normalize(records, "invalid record in dataset")
	if err != nil {
		return nil, err
	}
	meta := metaOf(own)
	fp, err := fingerprint(own)
	if err != nil {
		return nil, err
	}
	meta.Fingerprint = fp
	return &Lab{
		records: own,
		meta:    meta,
		log:     log,
		done:    make(chan struct{}),
	}, nil
}

// Records returns a copy of the dataset.
func (l *Lab) Records() []match.Record {
	return slices.Clone(l.records)
}

func (l *Lab) Meta() Meta {
	m := l.meta
	m.Formats = slices.Clone(m.Formats)
	m.Teams = slices.Clone(m.Teams)
	m.Years = slices.Clone(m.Years)
	return m
}

// Report filters the dataset and builds a report on what is left.
func (l *Lab) Report(ctx context.Context, f Filter) (*Report, error) {
	if err := l.ready(ctx); err != nil {
		return nil, err
	}
	start := time.Now()
	recs := f.Apply(l.records)
	rep := Build(recs)
	l.log.Debug("report built",
		slog.String("filter", f.String()),
		slog.Int("records", len(recs)),
		slog.Float64("chi_square", rep.ChiSquare.ChiSquare),
		slog.Float64("p_value", rep.ChiSquare.PValue),
		slog.Duration("took", time.Since(start)),
	)
	return rep, nil
}

// Analyze builds a report on caller-supplied records instead of the dataset.
//
// Records are normalised like the dataset (names trimmed, a missing Year taken
// from Date). The first bad one fails the call with a Warn.
func (l *Lab) Analyze(ctx context.Context, records []match.Record, f Filter) (*Report, error) {
	if err := l.ready(ctx); err != nil {
		return nil, err
	}
	own, err := normalize(records, "invalid record")
	if err != nil {
		return nil, err
	}
	recs := f.Apply(own)
	l.log.Debug("analyze", slog.Int("records", len(recs)), slog.String("filter", f.String()))
	return Build(recs), nil
}

// normalize returns match.New copies of records; the input is untouched.
func normalize(records []match.Record, msg string) ([]match.Record, error) {
	own := make([]match.Record, len(records))
	for i, r := range records {
		v, err := match.New(r)
		if err != nil {
			return nil, errs.WrapWithExtra(err, msg, "index="+strconv.Itoa(i))
		}
		own[i] = v
	}
	return own, nil
}

func (l *Lab) ready(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "report canceled")
	case <-l.done:
		l.closed.Store(true)
		return errs.NewFatal("lab closed: " + l.ClosedReason())
	default:
	}
	return nil
}

// Close stops the lab from serving further reports. Safe to call repeatedly.
func (l *Lab) Close() {
	l.closeWithReason("closed")
}

func (l *Lab) closeWithReason(reason string) {
	l.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		l.reason.Store(reason)
		l.closed.Store(true)
		close(l.done)
	})
}

// Done is closed once the lab is closed.
func (l *Lab) Done() <-chan struct{} {
	return l.done
}

func (l *Lab) Closed() bool {
	return l.closed.Load()
}

func (l *Lab) ClosedReason() string {
	if v := l.reason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func metaOf(records []match.Record) Meta {
	m := Meta{Records: len(records), Formats: match.Formats(), Teams: []string{}, Years: []int{}}
	seenTeam := map[string]bool{}
	seenYear := map[int]bool{}
	for _, r := range records {
		for _, t := range [2]string{r.Team1, r.Team2} {
			if !seenTeam[t] {
				seenTeam[t] = true
				m.Teams = append(m.Teams, t)
			}
		}
		if !seenYear[r.Year] {
			seenYear[r.Year] = true
			m.Years = append(m.Years, r.Year)
		}
	}
	slices.Sort(m.Teams)
	slices.Sort(m.Years)
	return m
}

// namespaceTossLab scopes fingerprints so they never collide with other
// SHA-1 UUIDs derived from the same bytes.
var namespaceTossLab = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/zintix-labs/tosslab"))

func fingerprint(records []match.Record) (string, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return "", errs.Wrap(err, "dataset fingerprint")
	}
	return uuid.NewSHA1(namespaceTossLab, raw).String(), nil
}
