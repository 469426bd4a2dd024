// Command wordsearch plays a word search game in the terminal.
//
// Each input line is a claim: WORD ROW COL DIRECTION, for example
//
//	scone 4 c vertical
//
// ROW is the two-digit number on the left, COL the letter across the top,
// DIRECTION one of Horizontal, Vertical, Diagonal.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/words"
)

func main() {
	rows := flag.Int("rows", 20, "grid rows")
	cols := flag.Int("cols", 20, "grid columns")
	count := flag.Int("count", 5, "number of random words when -words is empty")
	seed := flag.Uint64("seed", 0, "seed for a reproducible grid (0 = random)")
	list := flag.String("words", "", "comma-separated words to hide")
	wordsFile := flag.String("words-file", "", "word list file (default: embedded list)")
	reveal := flag.Bool("reveal", false, "print where every word was placed")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := words.Init(*wordsFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	var opts []game.Option
	if *seed != 0 {
		opts = append(opts, game.WithSeed(*seed))
	}
	var hidden []string
	if *list != "" {
		hidden = strings.Split(*list, ",")
	} else {
		hidden = words.Daily(pickSeed(*seed), *count, max(*rows, *cols))
	}

	s, err := game.NewSession(*rows, *cols, hidden, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("new game")
	}
	if dropped := s.Dropped(); len(dropped) > 0 {
		log.Warn().Strs("dropped", dropped).Msg("some words did not fit the grid")
	}
	if *reveal {
		for _, p := range s.Placements() {
			fmt.Printf("%-12s %02d %s %s\n", p.Word, p.Row, game.ColumnLabel(p.Col), p.Direction)
		}
	}

	if err := play(s, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("input")
	}
}

// pickSeed keeps the word choice reproducible under -seed.
func pickSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return rand.Uint64()
}

// play runs the read-claim-render loop until the game is over (every word
// found, or the rest blocked by crossing claims) or in reaches EOF.
func play(s *game.Session, in io.Reader, out io.Writer) error {
	printBoard(out, s)
	sc := bufio.NewScanner(in)
	for !s.Over() {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		c, err := parseClaim(line)
		if err != nil {
			fmt.Fprintln(out, "Invalid input!", err)
			continue
		}
		found, err := s.Submit(c.word, c.row, c.col, c.direction)
		switch {
		case errors.Is(err, game.ErrInvalidDirection):
			fmt.Fprintln(out, "Invalid input! direction must be Horizontal, Vertical or Diagonal")
			continue
		case err != nil:
			return err
		case found:
			fmt.Fprintln(out, "Word found:", strings.ToUpper(c.word))
			printBoard(out, s)
		default:
			fmt.Fprintln(out, "Word not found")
		}
	}
	if s.Blocked() {
		fmt.Fprintln(out, "No more words can be found:", strings.Join(s.Remaining(), ", "))
		return nil
	}
	fmt.Fprintln(out, "All words found!")
	return nil
}

func printBoard(out io.Writer, s *game.Session) {
	fmt.Fprint(out, game.Render(s.Snapshot()))
	fmt.Fprintln(out, "Remaining:", strings.Join(s.Remaining(), ", "))
}
