package puzzle

import (
	"testing"

	"github.com/wackylabs/mathplay-go/internal/rng"
)

func TestGenerateSubsetSumInvariants(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"level one", Params{Level: 1, PartCount: 4, MaxSolutionLen: 3}},
		{"level five", Params{Level: 5, PartCount: 5, MaxSolutionLen: 3}},
		{"short solutions", Params{Level: 3, PartCount: 4, MaxSolutionLen: 1}},
		{"max parts", Params{Level: 8, PartCount: 6, MaxSolutionLen: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 200; seed++ {
				r := rng.NewSeeded(seed)
				p := GenerateSubsetSum(r, tt.params)

				if err := p.Validate(); err != nil {
					t.Fatalf("seed %d: invalid puzzle %+v: %v", seed, p, err)
				}
				if p.Mode != ModeSubsetSum {
					t.Fatalf("seed %d: mode = %q", seed, p.Mode)
				}
				if len(p.Parts) != tt.params.PartCount {
					t.Fatalf("seed %d: part count = %d, want %d", seed, len(p.Parts), tt.params.PartCount)
				}
				lo, hi := subsetTargetLo(tt.params.Level), subsetTargetHi(tt.params.Level)
				if p.Target < lo || p.Target > hi {
					t.Fatalf("seed %d: target %d outside [%d, %d]", seed, p.Target, lo, hi)
				}
				for i, v := range p.Parts {
					if v < 1 {
						t.Fatalf("seed %d: part[%d] = %d, want >= 1", seed, i, v)
					}
				}
			}
		})
	}
}

func TestGenerateSubsetSumDeterministic(t *testing.T) {
	params := Params{Level: 2, PartCount: 4, MaxSolutionLen: 3}

	a := GenerateSubsetSum(rng.NewSeeded(42), params)
	b := GenerateSubsetSum(rng.NewSeeded(42), params)

	if a.Target != b.Target {
		t.Errorf("targets differ: %d vs %d", a.Target, b.Target)
	}
	if len(a.Parts) != len(b.Parts) {
		t.Fatalf("part counts differ: %d vs %d", len(a.Parts), len(b.Parts))
	}
	for i := range a.Parts {
		if a.Parts[i] != b.Parts[i] {
			t.Errorf("part[%d] differs: %d vs %d", i, a.Parts[i], b.Parts[i])
		}
	}
}

func TestGenerateSubsetSumExtremeLevels(t *testing.T) {
	for _, level := range []int{-10, 0, 1, 100, 10000} {
		r := rng.NewSeeded(7)
		p := GenerateSubsetSum(r, Params{Level: level, PartCount: 4, MaxSolutionLen: 3})
		if err := p.Validate(); err != nil {
			t.Errorf("level %d: invalid puzzle: %v", level, err)
		}
	}
}

func TestRegeneratePartsKeepsTarget(t *testing.T) {
	params := Params{Level: 3, PartCount: 5, MaxSolutionLen: 3}
	r := rng.NewSeeded(11)
	original := GenerateSubsetSum(r, params)

	for i := 0; i < 50; i++ {
		p := RegenerateParts(r, original.Target, params)
		if p.Target != original.Target {
			t.Fatalf("round %d: target changed from %d to %d", i, original.Target, p.Target)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("round %d: invalid puzzle: %v", i, err)
		}
	}
}

func TestRepairParts(t *testing.T) {
	tests := []struct {
		name   string
		parts  []int
		target int
	}{
		{"all too large", []int{50, 60, 70}, 7},
		{"tiny target", []int{9, 9, 9}, 1},
		{"target two", []int{44, 44}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := append([]int(nil), tt.parts...)
			repairParts(rng.NewSeeded(5), parts, tt.target)
			if !Solvable(parts, tt.target) {
				t.Errorf("repairParts(%v, %d) left unsolvable parts %v", tt.parts, tt.target, parts)
			}
		})
	}
}

func BenchmarkGenerateSubsetSum(b *testing.B) {
	r := rng.NewSeeded(1)
	params := Params{Level: 5, PartCount: 6, MaxSolutionLen: 3}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		GenerateSubsetSum(r, params)
	}
}
