package profile

import (
	"errors"
	"testing"

	"github.com/louisbranch/nback-engine/internal/adaptive"
	apperrors "github.com/louisbranch/nback-engine/internal/platform/errors"
)

func TestGet_Presets(t *testing.T) {
	tests := []struct {
		name Name
		want Profile
	}{
		{NameEasy, Profile{PositionMatchRate: 0.20, AudioMatchRate: 0.20, MaxConsecutive: 2, MinGap: 2, OverlapBonus: 0}},
		{NameMedium, Profile{PositionMatchRate: 0.30, AudioMatchRate: 0.30, MaxConsecutive: 2, MinGap: 1, OverlapBonus: 0.15}},
		{NameHard, Profile{PositionMatchRate: 0.40, AudioMatchRate: 0.40, MaxConsecutive: 3, MinGap: 1, OverlapBonus: 0.30}},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			if got := Get(tt.name); got != tt.want {
				t.Errorf("Get(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestGet_UnknownFallsBackToMedium(t *testing.T) {
	if got, want := Get("nightmare"), Get(NameMedium); got != want {
		t.Errorf("Get(unknown) = %+v, want medium %+v", got, want)
	}
}

func TestValidate(t *testing.T) {
	valid := Get(NameMedium)

	tests := []struct {
		name     string
		mutate   func(*Profile)
		wantCode apperrors.Code
	}{
		{"valid", func(*Profile) {}, ""},
		{"zero position rate", func(p *Profile) { p.PositionMatchRate = 0 }, apperrors.CodeInvalidMatchRate},
		{"audio rate above one", func(p *Profile) { p.AudioMatchRate = 1.2 }, apperrors.CodeInvalidMatchRate},
		{"zero gap", func(p *Profile) { p.MinGap = 0 }, apperrors.CodeInvalidGap},
		{"zero consecutive", func(p *Profile) { p.MaxConsecutive = 0 }, apperrors.CodeInvalidConsecutive},
		{"negative bonus", func(p *Profile) { p.OverlapBonus = -0.1 }, apperrors.CodeInvalidOverlapBonus},
		{"oversized bonus", func(p *Profile) { p.OverlapBonus = 0.6 }, apperrors.CodeInvalidOverlapBonus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !apperrors.IsCode(err, tt.wantCode) {
				t.Errorf("Validate() error code = %v, want %v", apperrors.GetCode(err), tt.wantCode)
			}
		})
	}

	var appErr *apperrors.Error
	if err := (Profile{}).Validate(); !errors.As(err, &appErr) {
		t.Fatalf("Validate(zero) error = %T, want *apperrors.Error", err)
	}
}

func TestApply_ScalesAndClamps(t *testing.T) {
	base := Get(NameMedium)

	adjusted := Apply(base, adaptive.Adjustment{MatchRateMultiplier: 1.2, ComplexityBonusDelta: 0.05})
	if got, want := adjusted.PositionMatchRate, 0.36; !approx(got, want) {
		t.Errorf("position rate = %v, want %v", got, want)
	}
	if got, want := adjusted.OverlapBonus, 0.20; !approx(got, want) {
		t.Errorf("overlap bonus = %v, want %v", got, want)
	}
	if adjusted.MinGap != base.MinGap || adjusted.MaxConsecutive != base.MaxConsecutive {
		t.Error("spacing limits changed, want structural fields untouched")
	}

	floor := Apply(Profile{PositionMatchRate: 0.06, AudioMatchRate: 0.06, MaxConsecutive: 2, MinGap: 1},
		adaptive.Adjustment{MatchRateMultiplier: 0.5, ComplexityBonusDelta: -0.05})
	if got := floor.PositionMatchRate; !approx(got, MinAdjustedRate) {
		t.Errorf("floored rate = %v, want %v", got, MinAdjustedRate)
	}
	if floor.OverlapBonus != 0 {
		t.Errorf("floored bonus = %v, want 0", floor.OverlapBonus)
	}

	ceiling := Apply(Get(NameHard), adaptive.Adjustment{MatchRateMultiplier: 1.5, ComplexityBonusDelta: 0.2, Confidence: 1})
	if got := ceiling.PositionMatchRate; !approx(got, MaxAdjustedRate) {
		t.Errorf("ceiled rate = %v, want %v", got, MaxAdjustedRate)
	}
	if got := ceiling.OverlapBonus; !approx(got, MaxAdjustedOverlap) {
		t.Errorf("ceiled bonus = %v, want %v", got, MaxAdjustedOverlap)
	}
}

func TestApply_ZeroMultiplierKeepsRates(t *testing.T) {
	base := Get(NameMedium)
	got := Apply(base, adaptive.Adjustment{})
	if got.PositionMatchRate != base.PositionMatchRate || got.AudioMatchRate != base.AudioMatchRate {
		t.Errorf("zero-value adjustment changed rates: %+v", got)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
