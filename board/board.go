package board

import (
	"errors"
	"fmt"
)

const (
	Player0 = 0
	Player1 = 1
)

var (
	ErrInvalidPlayer = errors.New("player should be 0 or 1")
	ErrOverlap       = errors.New("players occupy the same square")
)

// A State is a position: the occupied squares of each player. States are
// comparable and can be used directly as map keys.
type State struct {
	players [2]Bitboard
}

func checkPlayer(player int) error {
	if player != Player0 && player != Player1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayer, player)
	}
	return nil
}

// FromMasks builds a state from raw player masks, as found in a distance dump.
func FromMasks(p0, p1 uint64) (State, error) {
	s := State{players: [2]Bitboard{Bitboard(p0), Bitboard(p1)}}
	if err := s.Validate(); err != nil {
		return State{}, err
	}
	return s, nil
}

// Put marks sq as occupied by player. It does not look at the other
// player's pieces; call Validate if the caller can't guarantee that.
func (s *State) Put(player int, sq Square) error {
	if err := checkPlayer(player); err != nil {
		return err
	}
	s.players[player] = s.players[player].Set(sq)
	return nil
}

func (s State) Pieces(player int) (Bitboard, error) {
	if err := checkPlayer(player); err != nil {
		return EmptyBB, err
	}
	return s.players[player], nil
}

// Mask returns the raw mask for Player0 or Player1. It panics with
// ErrInvalidPlayer for any other id; use Pieces for unchecked input.
func (s State) Mask(player int) uint64 {
	if err := checkPlayer(player); err != nil {
		panic(err)
	}
	return uint64(s.players[player])
}

func (s State) IsEmpty(player int) (bool, error) {
	if err := checkPlayer(player); err != nil {
		return false, err
	}
	return s.players[player] == EmptyBB, nil
}

// Validate returns ErrOverlap if both players claim a square.
func (s State) Validate() error {
	if both := s.players[0] & s.players[1]; both != EmptyBB {
		return fmt.Errorf("%w: %v", ErrOverlap, both.Squares())
	}
	return nil
}

// Compare orders states by the player 0 mask, then the player 1 mask.
func (s State) Compare(other State) int {
	for i := 0; i < 2; i++ {
		if s.players[i] != other.players[i] {
			if s.players[i] < other.players[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (s State) Less(other State) bool {
	return s.Compare(other) < 0
}

func (s State) Hash() uint64 {
	return uint64(s.players[0] ^ s.players[1])
}

// Move returns a copy of the state with player's piece moved from one
// square to another. An opposing piece on the destination is captured.
// The second return value reports whether a capture happened.
func (s State) Move(player int, from, to Square) (State, bool) {
	opp := 1 - player
	s.players[player] = s.players[player].Clear(from).Set(to)
	captured := s.players[opp].Occupied(to)
	if captured {
		s.players[opp] = s.players[opp].Clear(to)
	}
	return s, captured
}
