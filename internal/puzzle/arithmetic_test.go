package puzzle

import (
	"regexp"
	"testing"

	"github.com/wackylabs/mathplay-go/internal/rng"
)

var promptPattern = regexp.MustCompile(`^\d+ [+\-*] \d+$`)

func TestGenerateArithmeticInvariants(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"addition only", Params{Level: 1, OptionCount: 3, Ops: []Op{OpAdd}, Spread: 6}},
		{"subtraction only", Params{Level: 4, OptionCount: 4, Ops: []Op{OpSub}, Spread: 6}},
		{"multiplication only", Params{Level: 3, OptionCount: 3, Ops: []Op{OpMul}, Spread: 8}},
		{"mixed ops", Params{Level: 6, OptionCount: 4, Ops: []Op{OpAdd, OpSub, OpMul}, Spread: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 200; seed++ {
				r := rng.NewSeeded(seed)
				p := GenerateArithmetic(r, tt.params)

				if err := p.Validate(); err != nil {
					t.Fatalf("seed %d: invalid puzzle %+v: %v", seed, p, err)
				}
				if p.Mode != ModeSingleAnswer {
					t.Fatalf("seed %d: mode = %q", seed, p.Mode)
				}
				if len(p.Options) != tt.params.OptionCount {
					t.Fatalf("seed %d: option count = %d, want %d", seed, len(p.Options), tt.params.OptionCount)
				}
				if !promptPattern.MatchString(p.Prompt) {
					t.Fatalf("seed %d: malformed prompt %q", seed, p.Prompt)
				}
				if p.Target < 0 {
					t.Fatalf("seed %d: negative answer %d from %q", seed, p.Target, p.Prompt)
				}
				if p.Options[p.CorrectIndex] != p.Target {
					t.Fatalf("seed %d: options[%d] = %d, want %d", seed, p.CorrectIndex, p.Options[p.CorrectIndex], p.Target)
				}
			}
		})
	}
}

func TestGenerateArithmeticSubtractionNeverNegative(t *testing.T) {
	params := Params{Level: 1, OptionCount: 3, Ops: []Op{OpSub}, Spread: 6}
	for seed := int64(0); seed < 500; seed++ {
		p := GenerateArithmetic(rng.NewSeeded(seed), params)
		if p.Target < 0 {
			t.Fatalf("seed %d: %q = %d", seed, p.Prompt, p.Target)
		}
	}
}

func TestGenerateArithmeticDefaultsToAddition(t *testing.T) {
	p := GenerateArithmetic(rng.NewSeeded(3), Params{Level: 2})
	if !promptPattern.MatchString(p.Prompt) {
		t.Fatalf("malformed prompt %q", p.Prompt)
	}
	for _, c := range p.Prompt {
		if c == '-' || c == '*' {
			t.Fatalf("prompt %q uses operator %q without it being requested", p.Prompt, c)
		}
	}
}

func TestGenerateArithmeticDeterministic(t *testing.T) {
	params := Params{Level: 3, OptionCount: 4, Ops: []Op{OpAdd, OpMul}, Spread: 6}

	a := GenerateArithmetic(rng.NewSeeded(99), params)
	b := GenerateArithmetic(rng.NewSeeded(99), params)

	if a.Prompt != b.Prompt || a.Target != b.Target || a.CorrectIndex != b.CorrectIndex {
		t.Errorf("puzzles differ: %+v vs %+v", a, b)
	}
	for i := range a.Options {
		if a.Options[i] != b.Options[i] {
			t.Errorf("option[%d] differs: %d vs %d", i, a.Options[i], b.Options[i])
		}
	}
}
