package dataset_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zintix-labs/tosslab/dataset"
	"github.com/zintix-labs/tosslab/errs"
	"github.com/zintix-labs/tosslab/match"
)

func TestGenerateDefaultShape(t *testing.T) {
	cfg := dataset.DefaultGenConfig()
	recs, err := dataset.Generate(cfg)
	require.NoError(t, err)
	require.Len(t, recs, 120)
	assert.Equal(t, cfg.Size(), len(recs))

	perFormat := map[match.Format]int{}
	for i, r := range recs {
		require.NoError(t, r.Validate(), "record %d", i)
		assert.Equal(t, i+1, r.ID)
		assert.Equal(t, r.Year, r.Date.Year())
		perFormat[r.Format]++
	}
	assert.Equal(t, 30, perFormat[match.Test])
	assert.Equal(t, 40, perFormat[match.ODI])
	assert.Equal(t, 50, perFormat[match.T20])

	years := dataset.Years(recs)
	require.Len(t, years, 10)
	assert.Equal(t, 2015, years[0])
	assert.Equal(t, 2024, years[9])
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := dataset.DefaultGenConfig()
	a, err := dataset.Generate(cfg)
	require.NoError(t, err)
	b, err := dataset.Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	cfg.Seed = 7
	c, err := dataset.Generate(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerateVenues(t *testing.T) {
	cfg := dataset.DefaultGenConfig()
	cfg.Teams = append(cfg.Teams, "Ireland")
	cfg.FromYear, cfg.ToYear = 2000, 2009
	recs, err := dataset.Generate(cfg)
	require.NoError(t, err)
	for _, r := range recs {
		v1, v2 := cfg.Venue(r.Team1), cfg.Venue(r.Team2)
		switch r.Venue {
		case v1, v2:
		default:
			t.Fatalf("unexpected venue %q for %s v %s", r.Venue, r.Team1, r.Team2)
		}
		if r.Venue == dataset.NeutralVenue {
			assert.True(t, r.Involves("Ireland"), "neutral venue only when a side has no ground: %+v", r)
		}
	}
	assert.Equal(t, "Lord's, London", cfg.Venue("England"))
	assert.Equal(t, dataset.NeutralVenue, cfg.Venue("Ireland"))
}

func TestGenerateExtremeProbabilities(t *testing.T) {
	cfg := dataset.DefaultGenConfig()
	cfg.TossWinnerWins = 1
	cfg.FieldRate = 0
	recs, err := dataset.Generate(cfg)
	require.NoError(t, err)
	for _, r := range recs {
		assert.True(t, r.TossAndMatchWin())
		assert.Equal(t, match.Bat, r.TossDecision)
	}

	cfg.TossWinnerWins = 0
	recs, err = dataset.Generate(cfg)
	require.NoError(t, err)
	for _, r := range recs {
		assert.False(t, r.TossAndMatchWin())
	}
}

func TestGenConfigValid(t *testing.T) {
	cases := map[string]func(c *dataset.GenConfig){
		"reversed years": func(c *dataset.GenConfig) { c.FromYear, c.ToYear = 2020, 2019 },
		"one team":       func(c *dataset.GenConfig) { c.Teams = []string{"India"} },
		"dup team":       func(c *dataset.GenConfig) { c.Teams = []string{"India", "India"} },
		"neg count":      func(c *dataset.GenConfig) { c.PerYear.ODI = -1 },
		"bad prob":       func(c *dataset.GenConfig) { c.TossWinnerWins = 1.5 },
		"bad field":      func(c *dataset.GenConfig) { c.FieldRate = -0.1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := dataset.DefaultGenConfig()
			mutate(&cfg)
			_, err := dataset.Generate(cfg)
			require.Error(t, err)
			assert.Equal(t, errs.Warn, errs.Level(err))
		})
	}
}

func TestDecodeGenConfig(t *testing.T) {
	cfg, err := dataset.DecodeGenConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, dataset.DefaultGenConfig(), cfg)

	cfg, err = dataset.DecodeGenConfig([]byte("seed: 9\nfromYear: 2020\ntoYear: 2021\nperYear: {test: 1, odi: 0, t20: 2}\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 6, cfg.Size())
	assert.Len(t, cfg.Teams, 10)

	_, err = dataset.DecodeGenConfig([]byte("sede: 9\n"))
	assert.Error(t, err, "unknown keys must be rejected")
}

func TestLoadYAMLAndJSONForms(t *testing.T) {
	list := `
- id: 1
  date: "2019-07-14"
  format: ODI
  venue: Lord's, London
  team1: England
  team2: New Zealand
  tossWinner: New Zealand
  tossDecision: bat
  matchWinner: England
`
	env := `{"matches":[{"id":1,"date":"2019-07-14","format":"ODI","venue":"Lord's, London",
	"team1":"England","team2":"New Zealand","tossWinner":"New Zealand","tossDecision":"bat","matchWinner":"England"}]}`

	a, err := dataset.Load("a.yaml", []byte(list))
	require.NoError(t, err)
	b, err := dataset.Load("b.json", []byte(env))
	require.NoError(t, err)
	require.Len(t, a, 1)
	assert.Equal(t, a, b)
	assert.Equal(t, 2019, a[0].Year)

	empty, err := dataset.Load("e.yml", nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLoadRejects(t *testing.T) {
	_, err := dataset.Load("x.csv", []byte("a,b"))
	assert.Equal(t, errs.Warn, errs.Level(err))

	bad := `[{"id":1,"year":2020,"format":"T20","team1":"India","team2":"India","tossWinner":"India","tossDecision":"bat","matchWinner":"India"}]`
	_, err = dataset.Load("bad.json", []byte(bad))
	require.Error(t, err)
	assert.Equal(t, errs.Warn, errs.Level(err))

	_, err = dataset.Load("broken.json", []byte(`{"matches":[`))
	assert.Error(t, err)
}

func TestSaveAndLoadFile(t *testing.T) {
	recs, err := dataset.Generate(dataset.DefaultGenConfig())
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"d.yaml", "d.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, dataset.SaveFile(path, recs))
		back, err := dataset.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, recs, back, name)
	}

	_, err = dataset.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, errs.Fatal, errs.Level(err))

	var buf bytes.Buffer
	assert.Error(t, dataset.Encode(&buf, "d.txt", recs))
	_, statErr := os.Stat(filepath.Join(dir, "d.yaml"))
	assert.NoError(t, statErr)
}

func TestTeamsIsACopy(t *testing.T) {
	ts := dataset.Teams()
	ts[0] = "Nobody"
	assert.Equal(t, "India", dataset.Teams()[0])
}
