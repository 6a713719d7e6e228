package profile

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/nback-engine/internal/platform/config"
	apperrors "github.com/louisbranch/nback-engine/internal/platform/errors"
)

// Table maps profile names to profiles. Configuration hands sessions a
// table so deployments can retune the presets without a rebuild.
type Table map[Name]Profile

// Lookup returns the named profile. Unlike Get it reports unknown
// names instead of falling back.
func (t Table) Lookup(name Name) (Profile, error) {
	p, ok := t[name]
	if !ok {
		return Profile{}, apperrors.WithMetadata(apperrors.CodeProfileUnknown,
			fmt.Sprintf("no difficulty profile named %q", name),
			map[string]string{"Name": string(name)})
	}
	return p, nil
}

// overrideEntry is the JSON shape accepted in NBACK_ENGINE_PROFILES.
type overrideEntry struct {
	PositionMatchRate float64 `json:"position_match_rate"`
	AudioMatchRate    float64 `json:"audio_match_rate"`
	MaxConsecutive    int     `json:"max_consecutive"`
	MinGap            int     `json:"min_gap"`
	OverlapBonus      float64 `json:"overlap_bonus"`
}

// tableEnv holds raw env values for the profile table.
type tableEnv struct {
	ProfilesJSON string `env:"NBACK_ENGINE_PROFILES"`
}

// LoadTable builds the profile table from the built-in presets merged
// with NBACK_ENGINE_PROFILES overrides. The variable holds a JSON
// object keyed by profile name; entries may redefine a preset or add a
// new name. Every resulting profile is validated, so a bad override
// fails loudly at startup instead of mid-session.
func LoadTable() (Table, error) {
	table := Table{
		NameEasy:   Get(NameEasy),
		NameMedium: Get(NameMedium),
		NameHard:   Get(NameHard),
	}

	var raw tableEnv
	if err := config.ParseEnv(&raw); err != nil {
		return nil, err
	}
	if raw.ProfilesJSON != "" {
		var overrides map[string]overrideEntry
		if err := json.Unmarshal([]byte(raw.ProfilesJSON), &overrides); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeProfileInvalid,
				"decode NBACK_ENGINE_PROFILES", err)
		}
		for name, entry := range overrides {
			table[Name(name)] = Profile{
				PositionMatchRate: entry.PositionMatchRate,
				AudioMatchRate:    entry.AudioMatchRate,
				MaxConsecutive:    entry.MaxConsecutive,
				MinGap:            entry.MinGap,
				OverlapBonus:      entry.OverlapBonus,
			}
		}
	}

	for name, p := range table {
		if err := p.Validate(); err != nil {
			return nil, apperrors.WrapWithMetadata(apperrors.CodeProfileInvalid,
				fmt.Sprintf("profile %q is invalid", name),
				map[string]string{"Name": string(name)}, err)
		}
	}

	return table, nil
}
