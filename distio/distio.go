// Package distio reads and writes the flat text dump of a solved
// universe. The first line holds the position count; every following
// line is "<player0 mask> <player1 mask> <dist0> <dist1>", with -1 for
// a missing label.
package distio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/raysolver/board"
	"github.com/domino14/raysolver/retrograde"
)

var (
	ErrMalformedLine = errors.New("malformed dump line")
	ErrCountMismatch = errors.New("dump position count does not match")
	ErrEmptyDump     = errors.New("empty dump")
)

// The header count only sizes the initial slice up to this many records.
const maxPrealloc = 1 << 20

// A Record is one dumped position.
type Record struct {
	P0    uint64
	P1    uint64
	Dist0 int
	Dist1 int
}

func (r Record) State() (board.State, error) {
	return board.FromMasks(r.P0, r.P1)
}

func (r Record) Labeled() bool {
	return r.Dist0 >= 0
}

// Write dumps every position of universe with its labels.
func Write(w io.Writer, universe []board.State, dists retrograde.Distances) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(universe))
	for _, pos := range universe {
		d0, ok := dists.Dist0(pos)
		if !ok {
			d0 = -1
		}
		d1, ok := dists.Dist1(pos)
		if !ok {
			d1 = -1
		}
		fmt.Fprintf(bw, "%d %d %d %d\n", pos.Mask(board.Player0), pos.Mask(board.Player1), d0, d1)
	}
	return bw.Flush()
}

// WriteFile writes the dump to filename.
func WriteFile(filename string, universe []board.State, dists retrograde.Distances) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Write(f, universe, dists); err != nil {
		f.Close()
		return err
	}
	log.Info().Str("filename", filename).Int("positions", len(universe)).Msg("wrote-distance-dump")
	return f.Close()
}

func parseRecord(fields []string) (Record, error) {
	var r Record
	var err error
	if r.P0, err = strconv.ParseUint(fields[0], 10, 64); err != nil {
		return r, err
	}
	if r.P1, err = strconv.ParseUint(fields[1], 10, 64); err != nil {
		return r, err
	}
	if r.Dist0, err = strconv.Atoi(fields[2]); err != nil {
		return r, err
	}
	if r.Dist1, err = strconv.Atoi(fields[3]); err != nil {
		return r, err
	}
	return r, nil
}

// ParseFromReader reads a dump. Lines that don't have exactly four
// fields are skipped.
func ParseFromReader(reader io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, ErrEmptyDump
	}
	header := strings.TrimSpace(scanner.Text())
	count, err := strconv.Atoi(header)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: line 1: %q", ErrMalformedLine, header)
	}
	records := make([]Record, 0, min(count, maxPrealloc))
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		fields := strings.Split(strings.TrimRight(scanner.Text(), "\r"), " ")
		if len(fields) != 4 {
			log.Debug().Int("line", lineNum).Msg("skipping-dump-line")
			continue
		}
		r, err := parseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedLine, lineNum, err)
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(records) != count {
		return records, fmt.Errorf("%w: header says %d, read %d", ErrCountMismatch, count, len(records))
	}
	return records, nil
}

func ParseFile(filename string) ([]Record, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseFromReader(f)
}

// Unlabeled returns the records without a dist0 label whose player 0
// piece count is pieces. A negative pieces matches any count.
func Unlabeled(records []Record, pieces int) []Record {
	return lo.Filter(records, func(r Record, _ int) bool {
		if r.Labeled() {
			return false
		}
		return pieces < 0 || board.Bitboard(r.P0).Count() == pieces
	})
}
