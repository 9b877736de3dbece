package deck

import (
	"sort"

	"github.com/user/nec_apg_go/internal/config"
)

// SweepProfile is a predefined replacement for every FR card of a deck.
type SweepProfile struct {
	Name string
	Card string
}

// Profiles is the closed set of sweep profiles.
var Profiles = map[string]SweepProfile{
	"hf":   {Name: "hf", Card: "FR 0 541 0 0 3.0 0.05 30.0"},
	"nvis": {Name: "nvis", Card: "FR 0 181 0 0 2.0 0.05 11.0"},
	"vhf":  {Name: "vhf", Card: "FR 0 541 0 0 30.0 0.5 300.0"},
}

// ProfileNames returns the selectable names, including "no", sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(Profiles)+1)
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{config.NoSweepProfile}, names...)
}

// LookupProfile resolves a profile name. "no" and "" select no profile and
// return nil.
func LookupProfile(name string) (*SweepProfile, error) {
	if name == "" || name == config.NoSweepProfile {
		return nil, nil
	}
	p, ok := Profiles[name]
	if !ok {
		return nil, config.Errorf("sweep profile", name, "not a valid FR card, choose from %v", ProfileNames())
	}
	return &p, nil
}
