// Package retrograde labels every position of a universe with its
// distance to termination by backward induction. dist0 holds the
// distance with player 0 to move, dist1 with player 1 to move. Player 0
// tries to capture player 1's last piece as fast as possible; player 1
// tries to delay it.
package retrograde

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/raysolver/board"
	"github.com/domino14/raysolver/movegen"
	"github.com/domino14/raysolver/stats"
)

// Positions per context check inside a worker.
const ctxCheckInterval = 4096

var ErrNotInitialized = errors.New("solver is not initialized")

// Distances gives read access to the labels of a solved universe.
type Distances interface {
	Dist0(board.State) (int, bool)
	Dist1(board.State) (int, bool)
}

type label struct {
	idx  int
	dist int
}

type Solver struct {
	universe []board.State
	dist0    map[board.State]int
	dist1    map[board.State]int

	// indices into universe of positions that have no label yet.
	pending0 []int
	pending1 []int

	threads int
	passes  int
	done    bool

	deepest     board.State
	deepestDist int

	logStream io.Writer
}

// Init takes ownership of universe, which must not contain duplicates,
// and seeds dist0 with the terminal positions.
func (s *Solver) Init(ctx context.Context, universe []board.State) error {
	if s.threads < 1 {
		s.threads = 1
	}
	s.universe = universe
	s.dist0 = make(map[board.State]int)
	s.dist1 = make(map[board.State]int)
	s.passes = 0
	s.done = false
	s.deepestDist = -1
	s.deepest = board.State{}

	all := make([]int, len(universe))
	for i := range all {
		all[i] = i
	}
	s.pending1 = all

	tstart := time.Now()
	terminals, rest, err := s.scan(ctx, all, func(_ []board.State, pos board.State) (int, []board.State) {
		if IsTerminalExist(pos) {
			return 0, nil
		}
		return -1, nil
	})
	if err != nil {
		return err
	}
	for _, l := range terminals {
		s.dist0[s.universe[l.idx]] = 0
	}
	s.pending0 = rest
	if len(terminals) > 0 {
		s.deepestDist = 0
		s.deepest = s.universe[terminals[0].idx]
	}
	s.emit(len(s.dist0))
	log.Debug().
		Int("positions", len(universe)).
		Int("terminal", len(terminals)).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("seeded-terminal-positions")
	return nil
}

func (s *Solver) SetThreads(threads int) {
	if threads < 1 {
		threads = 1
	}
	s.threads = threads
}

// SetLogStream sets a writer that receives the map sizes, one integer per
// line: dist0 after seeding, then dist1 and dist0 after every pass.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

func (s *Solver) emit(n int) {
	if s.logStream != nil {
		fmt.Fprintln(s.logStream, n)
	}
}

// Solve runs passes until dist0 stops growing.
func (s *Solver) Solve(ctx context.Context) error {
	if s.dist0 == nil {
		return ErrNotInitialized
	}
	tstart := time.Now()
	for !s.done {
		if _, err := s.RunPass(ctx); err != nil {
			return err
		}
	}
	log.Info().
		Int("positions", len(s.universe)).
		Int("passes", s.passes).
		Int("dist0-size", len(s.dist0)).
		Int("dist1-size", len(s.dist1)).
		Int("max-dist0", s.deepestDist).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	return nil
}

// RunPass labels what it can with player 1 to move, then with player 0
// to move. It reports whether dist0 grew; once it doesn't, the solver is
// done.
func (s *Solver) RunPass(ctx context.Context) (bool, error) {
	if s.dist0 == nil {
		return false, ErrNotInitialized
	}
	if s.done {
		return false, nil
	}
	tstart := time.Now()
	oldSize0 := len(s.dist0)

	// Player 1 needs every reply to be labeled; it picks the longest.
	labels, rest, err := s.scan(ctx, s.pending1, s.maxDistance)
	if err != nil {
		return false, err
	}
	for _, l := range labels {
		s.dist1[s.universe[l.idx]] = l.dist + 1
	}
	s.pending1 = rest
	s.emit(len(s.dist1))

	// Player 0 needs only one labeled reply; it picks the shortest.
	labels, rest, err = s.scan(ctx, s.pending0, s.minDistance)
	if err != nil {
		return false, err
	}
	for _, l := range labels {
		pos := s.universe[l.idx]
		s.dist0[pos] = l.dist
		if l.dist > s.deepestDist {
			s.deepestDist = l.dist
			s.deepest = pos
		}
	}
	s.pending0 = rest
	s.emit(len(s.dist0))

	s.passes++
	grew := len(s.dist0) != oldSize0
	s.done = !grew
	log.Debug().
		Int("pass", s.passes).
		Int("dist0-size", len(s.dist0)).
		Int("dist1-size", len(s.dist1)).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("retrograde-pass")
	return grew, nil
}

// maxDistance returns the largest dist0 over player 1's replies, or -1 if
// some reply isn't labeled yet or there is no reply at all.
func (s *Solver) maxDistance(buf []board.State, pos board.State) (int, []board.State) {
	buf, _ = movegen.AppendMoves(buf[:0], pos, board.Player1)
	result := -1
	for _, m := range buf {
		d, ok := s.dist0[m]
		if !ok {
			return -1, buf
		}
		if d > result {
			result = d
		}
	}
	return result, buf
}

// minDistance returns the smallest dist1 over player 0's replies that
// are labeled, or -1 if none is.
func (s *Solver) minDistance(buf []board.State, pos board.State) (int, []board.State) {
	buf, _ = movegen.AppendMoves(buf[:0], pos, board.Player0)
	result := -1
	for _, m := range buf {
		d, ok := s.dist1[m]
		if !ok {
			continue
		}
		if result == -1 || d < result {
			result = d
		}
	}
	return result, buf
}

type evalFunc func(buf []board.State, pos board.State) (int, []board.State)

// scan evaluates eval on the given universe indices. It returns the
// indices that got a value (in input order) and the ones that didn't.
// eval must only read the solver's maps; they are not written during a
// scan.
func (s *Solver) scan(ctx context.Context, idxs []int, eval evalFunc) ([]label, []int, error) {
	threads := s.threads
	if threads > len(idxs) {
		threads = len(idxs)
	}
	if threads < 1 {
		return nil, nil, ctx.Err()
	}
	labels := make([][]label, threads)
	rests := make([][]int, threads)
	total := len(idxs)

	g, gctx := errgroup.WithContext(ctx)
	for t := 0; t < threads; t++ {
		lo := t * total / threads
		hi := (t + 1) * total / threads
		g.Go(func() error {
			var buf []board.State
			var d int
			for n, idx := range idxs[lo:hi] {
				if n%ctxCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				d, buf = eval(buf, s.universe[idx])
				if d >= 0 {
					labels[t] = append(labels[t], label{idx: idx, dist: d})
				} else {
					rests[t] = append(rests[t], idx)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	var allLabels []label
	allRest := make([]int, 0, len(idxs))
	for t := 0; t < threads; t++ {
		allLabels = append(allLabels, labels[t]...)
		allRest = append(allRest, rests[t]...)
	}
	return allLabels, allRest, nil
}

func (s *Solver) Dist0(pos board.State) (int, bool) {
	d, ok := s.dist0[pos]
	return d, ok
}

func (s *Solver) Dist1(pos board.State) (int, bool) {
	d, ok := s.dist1[pos]
	return d, ok
}

func (s *Solver) Len0() int { return len(s.dist0) }
func (s *Solver) Len1() int { return len(s.dist1) }

func (s *Solver) Passes() int { return s.passes }

// Done reports whether the fixed point has been reached.
func (s *Solver) Done() bool { return s.done }

func (s *Solver) Universe() []board.State { return s.universe }

// Deepest returns the first position that was labeled with the largest
// dist0. ok is false if nothing is labeled.
func (s *Solver) Deepest() (board.State, int, bool) {
	return s.deepest, s.deepestDist, s.deepestDist >= 0
}

// Summary aggregates the labels over the universe.
func (s *Solver) Summary() *stats.DistanceSummary {
	summary := &stats.DistanceSummary{Passes: s.passes}
	for _, pos := range s.universe {
		d0, ok0 := s.dist0[pos]
		d1, ok1 := s.dist1[pos]
		if !ok0 {
			d0 = -1
		}
		if !ok1 {
			d1 = -1
		}
		summary.Add(d0, d1)
	}
	return summary
}
