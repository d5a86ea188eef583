// Package positions enumerates the universe of positions for a piece
// budget: player 1 has no piece or a single piece anywhere, and player 0
// has up to budget pieces on the remaining squares.
package positions

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/domino14/raysolver/board"
)

// MaxBudget is the largest player 0 budget that still leaves room for
// the player 1 piece.
const MaxBudget = board.NumSquares - 1

// Rough per-position cost: the state in the universe slice plus one
// entry in each distance map.
const (
	stateBytes    = 16
	mapEntryBytes = 48
)

var ErrInvalidBudget = errors.New("invalid piece budget")

func checkBudget(budget int) error {
	if budget < 0 || budget > MaxBudget {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidBudget, budget, MaxBudget)
	}
	return nil
}

// Count returns the number of positions Generate produces for budget.
func Count(budget int) (int, error) {
	if err := checkBudget(budget); err != nil {
		return 0, err
	}
	total := 0
	for i := 0; i <= budget; i++ {
		// player 1 absent, then player 1 on one of 64 squares.
		total += combin.Binomial(board.NumSquares, i)
		total += board.NumSquares * combin.Binomial(board.NumSquares-1, i)
	}
	return total, nil
}

// EstimateBytes is a rough upper estimate of the memory needed to solve
// the universe for budget.
func EstimateBytes(budget int) (uint64, error) {
	n, err := Count(budget)
	if err != nil {
		return 0, err
	}
	return uint64(n) * (stateBytes + 2*mapEntryBytes), nil
}

// Generate returns every position for budget, each exactly once. The order
// is fixed: player 1 absent first, then player 1 on squares 0..63; within
// that by player 0 piece count, then by player 0 squares in lexicographic
// order.
func Generate(budget int) ([]board.State, error) {
	n, err := Count(budget)
	if err != nil {
		return nil, err
	}
	result := make([]board.State, 0, n)
	free := make([]board.Square, 0, board.NumSquares)

	// p1 == -1 means player 1 has no piece.
	for p1 := -1; p1 < board.NumSquares; p1++ {
		free = free[:0]
		for sq := 0; sq < board.NumSquares; sq++ {
			if sq != p1 {
				free = append(free, board.Square(sq))
			}
		}
		var base board.State
		if p1 >= 0 {
			base.Put(board.Player1, board.Square(p1))
		}
		for i := 0; i <= budget; i++ {
			result = appendCombinations(result, base, free, i)
		}
	}
	log.Debug().Int("budget", budget).Int("positions", len(result)).Msg("generated-positions")
	return result, nil
}

func appendCombinations(dst []board.State, base board.State, free []board.Square, k int) []board.State {
	gen := combin.NewCombinationGenerator(len(free), k)
	idxs := make([]int, k)
	for gen.Next() {
		gen.Combination(idxs)
		s := base
		for _, idx := range idxs {
			s.Put(board.Player0, free[idx])
		}
		dst = append(dst, s)
	}
	return dst
}
