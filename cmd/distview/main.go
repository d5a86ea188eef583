package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/raysolver/distio"
)

func main() {
	filename := flag.String("file", "dist.txt", "distance dump to read")
	pieces := flag.Int("pieces", 4, "player 0 piece count to show; -1 for any")
	sample := flag.Int("sample", 0, "show a random sample of this many positions; 0 for all")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	records, err := distio.ParseFile(*filename)
	if err != nil {
		log.Fatal().Err(err).Str("filename", *filename).Msg("reading dump")
	}
	unlabeled := distio.Unlabeled(records, *pieces)
	log.Info().
		Int("positions", len(records)).
		Int("unlabeled", len(unlabeled)).
		Int("pieces", *pieces).
		Msg("read-dump")

	if *sample > 0 && *sample < len(unlabeled) {
		frand.Shuffle(len(unlabeled), func(i, j int) {
			unlabeled[i], unlabeled[j] = unlabeled[j], unlabeled[i]
		})
		unlabeled = unlabeled[:*sample]
	}
	for _, r := range unlabeled {
		s, err := r.State()
		if err != nil {
			log.Fatal().Err(err).Uint64("p0", r.P0).Uint64("p1", r.P1).Msg("bad record")
		}
		fmt.Println(s)
	}
}
