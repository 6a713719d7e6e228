package profile

import (
	"testing"

	apperrors "github.com/louisbranch/nback-engine/internal/platform/errors"
)

func TestLoadTable_BuiltinsOnly(t *testing.T) {
	t.Setenv("NBACK_ENGINE_PROFILES", "")

	table, err := LoadTable()
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("table has %d entries, want 3", len(table))
	}
	if got := table[NameMedium]; got != Get(NameMedium) {
		t.Errorf("medium = %+v, want builtin preset", got)
	}
}

func TestLoadTable_OverridesAndAdds(t *testing.T) {
	t.Setenv("NBACK_ENGINE_PROFILES", `{
		"medium": {"position_match_rate": 0.35, "audio_match_rate": 0.25, "max_consecutive": 2, "min_gap": 1, "overlap_bonus": 0.1},
		"expert": {"position_match_rate": 0.45, "audio_match_rate": 0.45, "max_consecutive": 3, "min_gap": 1, "overlap_bonus": 0.4}
	}`)

	table, err := LoadTable()
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}

	medium, err := table.Lookup(NameMedium)
	if err != nil {
		t.Fatalf("Lookup(medium) error = %v", err)
	}
	if medium.PositionMatchRate != 0.35 || medium.AudioMatchRate != 0.25 {
		t.Errorf("overridden medium = %+v", medium)
	}

	expert, err := table.Lookup("expert")
	if err != nil {
		t.Fatalf("Lookup(expert) error = %v", err)
	}
	if expert.MaxConsecutive != 3 || expert.OverlapBonus != 0.4 {
		t.Errorf("added expert = %+v", expert)
	}

	if easy, _ := table.Lookup(NameEasy); easy != Get(NameEasy) {
		t.Errorf("untouched easy = %+v, want builtin preset", easy)
	}
}

func TestLoadTable_RejectsMalformedJSON(t *testing.T) {
	t.Setenv("NBACK_ENGINE_PROFILES", `{"medium": `)

	if _, err := LoadTable(); !apperrors.IsCode(err, apperrors.CodeProfileInvalid) {
		t.Fatalf("error code = %v, want %v", apperrors.GetCode(err), apperrors.CodeProfileInvalid)
	}
}

func TestLoadTable_RejectsInvalidOverride(t *testing.T) {
	t.Setenv("NBACK_ENGINE_PROFILES", `{"broken": {"position_match_rate": 0, "audio_match_rate": 0.3, "max_consecutive": 2, "min_gap": 1}}`)

	if _, err := LoadTable(); !apperrors.IsCode(err, apperrors.CodeProfileInvalid) {
		t.Fatalf("error code = %v, want %v", apperrors.GetCode(err), apperrors.CodeProfileInvalid)
	}
}

func TestTableLookup_UnknownName(t *testing.T) {
	table := Table{NameMedium: Get(NameMedium)}

	if _, err := table.Lookup("callisto"); !apperrors.IsCode(err, apperrors.CodeProfileUnknown) {
		t.Fatalf("error code = %v, want %v", apperrors.GetCode(err), apperrors.CodeProfileUnknown)
	}
}
