// Package leagues holds the static league registry: the mapping from a
// league name to its TheSportsDB identifier, sport category and display
// name, plus hard-coded rosters for leagues the provider does not cover.
// The registry is immutable after process start and safe for concurrent
// reads from all command handlers.
package leagues

import "sort"

// League describes a single league entry in the registry
type League struct {
	// ProviderID is the TheSportsDB league ID. Empty when the provider
	// does not support the league; callers fall back to Teams().
	ProviderID  string
	Sport       string
	DisplayName string
}

// Supported reports whether the external provider covers this league
func (l League) Supported() bool {
	return l.ProviderID != ""
}

var registry = map[string]League{
	"NFL":        {ProviderID: "4391", Sport: "American Football", DisplayName: "NFL"},
	"EPL":        {ProviderID: "4328", Sport: "Soccer", DisplayName: "English Premier League"},
	"NBA":        {ProviderID: "4387", Sport: "Basketball", DisplayName: "NBA"},
	"MLB":        {ProviderID: "4424", Sport: "Baseball", DisplayName: "MLB"},
	"NHL":        {ProviderID: "4380", Sport: "Ice Hockey", DisplayName: "NHL"},
	"La Liga":    {ProviderID: "4335", Sport: "Soccer", DisplayName: "La Liga"},
	"NCAA":       {ProviderID: "4329", Sport: "American Football", DisplayName: "NCAA Football"},
	"Bundesliga": {ProviderID: "4332", Sport: "Soccer", DisplayName: "Bundesliga"},
	"Serie A":    {ProviderID: "4331", Sport: "Soccer", DisplayName: "Serie A"},
	"Ligue 1":    {ProviderID: "4334", Sport: "Soccer", DisplayName: "Ligue 1"},
	"MLS":        {ProviderID: "4346", Sport: "Soccer", DisplayName: "MLS"},
	"Formula 1":  {ProviderID: "4358", Sport: "Motorsport", DisplayName: "Formula 1"},
	"Tennis":     {ProviderID: "4359", Sport: "Tennis", DisplayName: "Tennis"},
	"UFC/MMA":    {ProviderID: "4360", Sport: "Fighting", DisplayName: "UFC"},
	"WNBA":       {ProviderID: "4410", Sport: "Basketball", DisplayName: "WNBA"},
	"CFL":        {Sport: "American Football", DisplayName: "CFL"},
	"AFL":        {Sport: "Australian Football", DisplayName: "AFL"},
	"Darts":      {Sport: "Darts", DisplayName: "PDC Darts"},
	"EuroLeague": {ProviderID: "4356", Sport: "Basketball", DisplayName: "EuroLeague"},
	"NPB":        {ProviderID: "4412", Sport: "Baseball", DisplayName: "NPB"},
	"KBO":        {ProviderID: "4413", Sport: "Baseball", DisplayName: "KBO"},
	"KHL":        {ProviderID: "4378", Sport: "Ice Hockey", DisplayName: "KHL"},
}

// rosters lists selectable participants for leagues without a provider
// ID, in menu display order.
var rosters = map[string][]string{
	"CFL": {
		"BC Lions",
		"Calgary Stampeders",
		"Edmonton Elks",
		"Hamilton Tiger-Cats",
		"Montreal Alouettes",
		"Ottawa Redblacks",
		"Saskatchewan Roughriders",
		"Toronto Argonauts",
		"Winnipeg Blue Bombers",
	},
	"AFL": {
		"Adelaide Crows",
		"Brisbane Lions",
		"Carlton Blues",
		"Collingwood Magpies",
		"Essendon Bombers",
		"Fremantle Dockers",
		"Geelong Cats",
		"Gold Coast Suns",
		"GWS Giants",
		"Hawthorn Hawks",
		"Melbourne Demons",
		"North Melbourne Kangaroos",
		"Port Adelaide Power",
		"Richmond Tigers",
		"St Kilda Saints",
		"Sydney Swans",
		"West Coast Eagles",
		"Western Bulldogs",
	},
	"Darts": {
		"Luke Humphries",
		"Luke Littler",
		"Michael van Gerwen",
		"Michael Smith",
		"Gerwyn Price",
		"Rob Cross",
		"Nathan Aspinall",
		"Peter Wright",
	},
}

// Lookup returns the registry entry for the given league name.
// The second return is false when the league is not in the registry.
func Lookup(name string) (League, bool) {
	l, ok := registry[name]
	return l, ok
}

// Teams returns the static roster for a league without provider
// support. Nil for supported or unknown leagues.
func Teams(name string) []string {
	roster := rosters[name]
	if roster == nil {
		return nil
	}
	out := make([]string, len(roster))
	copy(out, roster)
	return out
}

// Names returns all league names in sorted order, for select menus
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
