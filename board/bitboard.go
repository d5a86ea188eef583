package board

import "math/bits"

// Bitboard holds one bit per square, bit index row*8+col.
type Bitboard uint64

const EmptyBB Bitboard = 0

func (bb Bitboard) Occupied(sq Square) bool {
	return bb&(1<<sq) != 0
}

func (bb Bitboard) Set(sq Square) Bitboard {
	return bb | (1 << sq)
}

func (bb Bitboard) Clear(sq Square) Bitboard {
	return bb &^ (1 << sq)
}

func (bb Bitboard) Count() int {
	return bits.OnesCount64(uint64(bb))
}

// Squares returns the occupied squares in ascending index order.
func (bb Bitboard) Squares() []Square {
	sqs := make([]Square, 0, bb.Count())
	for b := uint64(bb); b != 0; b &= b - 1 {
		sqs = append(sqs, Square(bits.TrailingZeros64(b)))
	}
	return sqs
}
