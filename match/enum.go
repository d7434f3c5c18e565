package match

import (
	"strings"

	"github.com/zintix-labs/tosslab/errs"
)

// Format is the closed set of match formats.
//
// The zero value is deliberately invalid so a missing field in decoded input
// never turns into a real format.
type Format uint8

const (
	FormatUnknown Format = iota
	Test
	ODI
	T20
)

var formatNames = map[Format]string{
	Test: "Test",
	ODI:  "ODI",
	T20:  "T20",
}

// Formats returns every valid format in canonical order: Test, ODI, T20.
func Formats() []Format {
	return []Format{Test, ODI, T20}
}

func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseFormat accepts the canonical names case-insensitively.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimSpace(s)
	for _, f := range Formats() {
		if strings.EqualFold(s, formatNames[f]) {
			return f, nil
		}
	}
	return FormatUnknown, errs.Warnf("unknown format %q (want Test|ODI|T20)", s)
}

func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, errs.NewWarn("cannot marshal unknown format")
	}
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Decision is what the toss winner chose to do first.
type Decision uint8

const (
	DecisionUnknown Decision = iota
	Bat
	Field
)

var decisionNames = map[Decision]string{
	Bat:   "bat",
	Field: "field",
}

func Decisions() []Decision {
	return []Decision{Bat, Field}
}

func (d Decision) Valid() bool {
	_, ok := decisionNames[d]
	return ok
}

func (d Decision) String() string {
	if s, ok := decisionNames[d]; ok {
		return s
	}
	return "unknown"
}

func ParseDecision(s string) (Decision, error) {
	s = strings.TrimSpace(s)
	for _, d := range Decisions() {
		if strings.EqualFold(s, decisionNames[d]) {
			return d, nil
		}
	}
	return DecisionUnknown, errs.Warnf("unknown toss decision %q (want bat|field)", s)
}

func (d Decision) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, errs.NewWarn("cannot marshal unknown toss decision")
	}
	return []byte(d.String()), nil
}

func (d *Decision) UnmarshalText(b []byte) error {
	v, err := ParseDecision(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
