// Package statistics aggregates the results of many simulated games.
package statistics

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/lox/landlord/internal/game"
	"github.com/lox/landlord/internal/player"
)

// StrategyStats tracks how one strategy fared across games.
type StrategyStats struct {
	Strategy     string  `json:"strategy"`
	Games        int     `json:"games"`
	Wins         int     `json:"wins"`
	Eliminations int     `json:"eliminations"`
	SumBalance   float64 `json:"-"`
}

// WinRate is wins per game played.
func (s StrategyStats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// MeanBalance is the average final balance.
func (s StrategyStats) MeanBalance() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumBalance / float64(s.Games)
}

// Statistics summarises a batch of games.
type Statistics struct {
	Games      int
	SumRounds  float64
	SumRounds2 float64   // sum of squares for variance
	Rounds     []float64 // every game's length, for median and percentiles

	Endings    map[game.EndReason]int
	Strategies map[string]*StrategyStats
	NoWinner   int
}

// Add incorporates one finished game.
func (s *Statistics) Add(result *game.Result) {
	if s.Endings == nil {
		s.Endings = make(map[game.EndReason]int)
		s.Strategies = make(map[string]*StrategyStats)
	}

	rounds := float64(result.Rounds)
	s.Games++
	s.SumRounds += rounds
	s.SumRounds2 += rounds * rounds
	s.Rounds = append(s.Rounds, rounds)
	s.Endings[result.Reason]++
	if result.Winner == player.None {
		s.NoWinner++
	}

	for _, row := range result.Standings {
		st, ok := s.Strategies[row.Strategy]
		if !ok {
			st = &StrategyStats{Strategy: row.Strategy}
			s.Strategies[row.Strategy] = st
		}
		st.Games++
		st.SumBalance += float64(row.Balance)
		if row.Eliminated {
			st.Eliminations++
		}
		if row.Player == result.Winner {
			st.Wins++
		}
	}
}

// Mean returns the mean game length in rounds.
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumRounds / float64(s.Games)
}

// Variance returns the sample variance of game lengths.
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumRounds2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// game length.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median game length.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the interpolated game length at p (0.0 to 1.0).
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Rounds) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Rounds)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Ranking lists strategies by win rate, best first.
func (s *Statistics) Ranking() []StrategyStats {
	rows := make([]StrategyStats, 0, len(s.Strategies))
	for _, st := range s.Strategies {
		rows = append(rows, *st)
	}
	slices.SortFunc(rows, func(a, b StrategyStats) int {
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		return cmp.Compare(a.Strategy, b.Strategy)
	})
	return rows
}

// Validate checks the tallies are consistent with each other.
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Rounds) != s.Games {
		return fmt.Errorf("rounds array length (%d) does not match games count (%d)", len(s.Rounds), s.Games)
	}

	endings := 0
	for _, n := range s.Endings {
		endings += n
	}
	if endings != s.Games {
		return fmt.Errorf("endings total (%d) does not match games count (%d)", endings, s.Games)
	}

	wins := 0
	for _, st := range s.Strategies {
		wins += st.Wins
	}
	if wins+s.NoWinner != s.Games {
		return fmt.Errorf("wins (%d) plus games without a winner (%d) does not match games count (%d)", wins, s.NoWinner, s.Games)
	}
	return nil
}
