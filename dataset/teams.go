package dataset

import (
	"slices"

	"github.com/zintix-labs/tosslab/match"
)

// NeutralVenue is used when the home side has no ground on file.
const NeutralVenue = "Neutral Venue"

var defaultTeams = []string{
	"India", "Australia", "England", "South Africa", "New Zealand",
	"Pakistan", "Sri Lanka", "West Indies", "Bangladesh", "Afghanistan",
}

var defaultVenues = map[string]string{
	"India":        "Wankhede Stadium, Mumbai",
	"Australia":    "MCG, Melbourne",
	"England":      "Lord's, London",
	"South Africa": "Wanderers, Johannesburg",
	"New Zealand":  "Eden Park, Auckland",
	"Pakistan":     "Gaddafi Stadium, Lahore",
	"Sri Lanka":    "R. Premadasa Stadium, Colombo",
	"West Indies":  "Kensington Oval, Barbados",
	"Bangladesh":   "Sher-e-Bangla, Dhaka",
	"Afghanistan":  "Kabul Cricket Stadium, Kabul",
}

// Teams returns the built-in team list in its canonical order.
func Teams() []string {
	return slices.Clone(defaultTeams)
}

// Years returns the distinct years in records, ascending.
func Years(records []match.Record) []int {
	ys := make([]int, 0, 16)
	for _, r := range records {
		ys = append(ys, r.Year)
	}
	slices.Sort(ys)
	return slices.Compact(ys)
}
