package retrograde

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// Fingerprint hashes every (position, dist0, dist1) triple in universe
// order. Two runs over the same universe agree on the fingerprint iff
// they agree on every label.
func (s *Solver) Fingerprint() uint64 {
	h := xxhash.New()
	var rec [32]byte
	for _, pos := range s.universe {
		d0, ok0 := s.dist0[pos]
		d1, ok1 := s.dist1[pos]
		if !ok0 {
			d0 = -1
		}
		if !ok1 {
			d1 = -1
		}
		binary.LittleEndian.PutUint64(rec[0:], pos.Mask(0))
		binary.LittleEndian.PutUint64(rec[8:], pos.Mask(1))
		binary.LittleEndian.PutUint64(rec[16:], uint64(int64(d0)))
		binary.LittleEndian.PutUint64(rec[24:], uint64(int64(d1)))
		h.Write(rec[:])
	}
	return h.Sum64()
}
