package resolver

import "deblinger/internal/reprint"

// EnergyExceptions maps basic energy names to their evergreen SVE printing.
// These bypass the reprint table entirely: every set carries its own basic
// energy, so id matching cannot pick the printing players expect.
var EnergyExceptions = map[string]reprint.Printing{
	"Grass Energy":     {Set: "SVE", Number: "1"},
	"Fire Energy":      {Set: "SVE", Number: "2"},
	"Water Energy":     {Set: "SVE", Number: "3"},
	"Lightning Energy": {Set: "SVE", Number: "4"},
	"Psychic Energy":   {Set: "SVE", Number: "5"},
	"Fighting Energy":  {Set: "SVE", Number: "6"},
	"Darkness Energy":  {Set: "SVE", Number: "7"},
	"Metal Energy":     {Set: "SVE", Number: "8"},
}

// LookupEnergy returns the fixed printing for a basic energy name. The match
// is exact and case-sensitive.
func LookupEnergy(name string) (reprint.Printing, bool) {
	p, ok := EnergyExceptions[name]
	return p, ok
}
