// Command mathplay-sim plays game sessions against the engine with a
// scripted player and reports win rates, for balancing variant tunings.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/wackylabs/mathplay-go/internal/games"
	"github.com/wackylabs/mathplay-go/internal/sim"
)

func main() {
	var (
		variant  = flag.String("variant", "", "variant ID to play; empty plays all of them")
		sessions = flag.Int("sessions", 100, "number of sessions to run")
		accuracy = flag.Float64("accuracy", 1.0, "chance of answering a puzzle correctly")
		random   = flag.Bool("random", false, "guess uniformly instead of playing with accuracy")
		seed     = flag.Int64("seed", 0, "base seed; 0 derives one from the clock")
		workers  = flag.Int("workers", 0, "worker goroutines; 0 uses GOMAXPROCS")
		jsonOut  = flag.Bool("json", false, "print the summary as JSON")
		list     = flag.Bool("list", false, "list variant IDs and exit")
	)
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if *list {
		for _, id := range games.IDs() {
			fmt.Println(id)
		}
		return
	}

	var policy sim.Policy
	switch {
	case *random:
		policy = sim.Random()
	case *accuracy >= 1:
		policy = sim.Perfect()
	default:
		policy = sim.Accuracy(*accuracy)
	}

	summary, err := sim.NewRunner(*workers).Run(context.Background(), sim.Config{
		Variant:  *variant,
		Sessions: *sessions,
		Policy:   policy,
		Seed:     *seed,
	})
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			slog.Error("failed to encode summary", "error", err)
			os.Exit(1)
		}
		return
	}

	printSummary(summary)
}

func printSummary(s *sim.Summary) {
	fmt.Printf("policy    %s (seed %d)\n", s.Policy, s.Seed)
	fmt.Printf("sessions  %d  won %d  lost %d  puzzles %d\n", s.Sessions, s.Wins, s.Losses, s.Puzzles)
	fmt.Printf("win rate  %s   avg score %s   avg mistakes %s\n", s.WinRate, s.AvgScore, s.AvgMistakes)
	fmt.Printf("duration  %s\n", s.Duration)

	if len(s.Variants) == 0 {
		return
	}

	ids := make([]string, 0, len(s.Variants))
	for id := range s.Variants {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println()
	fmt.Printf("%-16s %9s %6s %6s %8s\n", "variant", "sessions", "won", "lost", "puzzles")
	for _, id := range ids {
		t := s.Variants[id]
		fmt.Printf("%-16s %9d %6d %6d %8d\n", id, t.Sessions, t.Wins, t.Losses, t.Puzzles)
	}
}
