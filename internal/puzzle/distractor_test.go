package puzzle

import (
	"testing"

	"github.com/wackylabs/mathplay-go/internal/rng"
)

func TestDistractors(t *testing.T) {
	tests := []struct {
		name   string
		answer int
		count  int
		spread int
	}{
		{"typical", 12, 3, 6},
		{"small answer", 2, 3, 6},
		{"zero answer", 0, 3, 6},
		{"wide spread", 40, 5, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 300; seed++ {
				r := rng.NewSeeded(seed)
				got := Distractors(r, tt.answer, tt.count, tt.spread)

				if len(got) != tt.count {
					t.Fatalf("seed %d: len = %d, want %d", seed, len(got), tt.count)
				}
				seen := make(map[int]bool, len(got))
				for _, v := range got {
					if v == tt.answer {
						t.Fatalf("seed %d: distractor equals answer %d", seed, tt.answer)
					}
					if v < 0 {
						t.Fatalf("seed %d: negative distractor %d", seed, v)
					}
					if seen[v] {
						t.Fatalf("seed %d: duplicate distractor %d in %v", seed, v, got)
					}
					seen[v] = true
				}
			}
		})
	}
}

func TestDistractorsExhaustedSpreadFallsBack(t *testing.T) {
	// Spread 2 around 3 admits only {1, 2, 4, 5}; asking for five
	// distractors has to walk outward deterministically.
	for seed := int64(0); seed < 100; seed++ {
		got := Distractors(rng.NewSeeded(seed), 3, 5, 2)
		if len(got) != 5 {
			t.Fatalf("seed %d: len = %d, want 5", seed, len(got))
		}
		seen := make(map[int]bool, len(got))
		for _, v := range got {
			if v == 3 || v < 0 || seen[v] {
				t.Fatalf("seed %d: bad distractor set %v", seed, got)
			}
			seen[v] = true
		}
	}
}

func TestDistractorsCountZero(t *testing.T) {
	if got := Distractors(rng.NewSeeded(1), 10, 0, 6); len(got) != 0 {
		t.Errorf("Distractors with count 0 = %v, want empty", got)
	}
}

func TestFillDeterministic(t *testing.T) {
	tests := []struct {
		name    string
		answer  int
		count   int
		partial []int
		want    []int
	}{
		{"from scratch", 2, 6, nil, []int{3, 1, 4, 0, 5, 6}},
		{"skips negatives", 0, 3, nil, []int{1, 2, 3}},
		{"respects partial", 5, 4, []int{6, 4}, []int{6, 4, 7, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fillDeterministic(tt.answer, tt.count, tt.partial)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
