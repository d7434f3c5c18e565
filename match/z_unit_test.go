package match_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zintix-labs/tosslab/errs"
	"github.com/zintix-labs/tosslab/match"
	"gopkg.in/yaml.v3"
)

func valid() match.Record {
	return match.Record{
		ID:           1,
		Date:         match.NewDay(2019, time.July, 14),
		Format:       match.ODI,
		Venue:        "Lord's, London",
		Team1:        "England",
		Team2:        "New Zealand",
		TossWinner:   "New Zealand",
		TossDecision: match.Bat,
		MatchWinner:  "England",
	}
}

func TestNewFillsYearFromDate(t *testing.T) {
	r, err := match.New(valid())
	require.NoError(t, err)
	assert.Equal(t, 2019, r.Year)
	assert.False(t, r.TossAndMatchWin())
	assert.Equal(t, "England", r.Opponent("New Zealand"))
	assert.Equal(t, "", r.Opponent("India"))
}

func TestNewRejectsBrokenInvariants(t *testing.T) {
	cases := map[string]func(r *match.Record){
		"same teams":        func(r *match.Record) { r.Team2 = r.Team1 },
		"missing team":      func(r *match.Record) { r.Team1 = "  " },
		"toss outsider":     func(r *match.Record) { r.TossWinner = "India" },
		"winner outsider":   func(r *match.Record) { r.MatchWinner = "India" },
		"no format":         func(r *match.Record) { r.Format = match.FormatUnknown },
		"no decision":       func(r *match.Record) { r.TossDecision = match.DecisionUnknown },
		"year/date clash":   func(r *match.Record) { r.Year = 2020 },
		"no year, no date":  func(r *match.Record) { r.Date = match.Day{} },
		"format out of set": func(r *match.Record) { r.Format = match.Format(9) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := valid()
			mutate(&r)
			_, err := match.New(r)
			require.Error(t, err)
			assert.Equal(t, errs.Warn, errs.Level(err))
		})
	}
}

func TestEnumParsing(t *testing.T) {
	f, err := match.ParseFormat("t20")
	require.NoError(t, err)
	assert.Equal(t, match.T20, f)
	_, err = match.ParseFormat("Hundred")
	assert.Error(t, err)

	d, err := match.ParseDecision("FIELD")
	require.NoError(t, err)
	assert.Equal(t, match.Field, d)
	_, err = match.ParseDecision("bowl")
	assert.Error(t, err)

	assert.Equal(t, []match.Format{match.Test, match.ODI, match.T20}, match.Formats())
}

func TestRecordDecodesFromJSONAndYAML(t *testing.T) {
	js := `{"id":7,"date":"2016-03-01","year":2016,"format":"T20","venue":"MCG, Melbourne",
		"team1":"Australia","team2":"India","tossWinner":"India","tossDecision":"field","matchWinner":"India"}`
	var a match.Record
	require.NoError(t, json.Unmarshal([]byte(js), &a))
	a, err := match.New(a)
	require.NoError(t, err)
	assert.True(t, a.TossAndMatchWin())
	assert.Equal(t, match.Field, a.TossDecision)

	ys := `
id: 7
date: "2016-03-01"
format: T20
venue: MCG, Melbourne
team1: Australia
team2: India
tossWinner: India
tossDecision: field
matchWinner: India
`
	var b match.Record
	require.NoError(t, yaml.Unmarshal([]byte(ys), &b))
	b, err = match.New(b)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"date":"2016-03-01"`)
	assert.Contains(t, string(out), `"tossDecision":"field"`)
}

func TestUnknownEnumFailsDecode(t *testing.T) {
	var r match.Record
	err := json.Unmarshal([]byte(`{"format":"Hundred"}`), &r)
	assert.Error(t, err)
}
