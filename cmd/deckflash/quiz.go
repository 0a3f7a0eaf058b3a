package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/deckflash/internal/deck"
	"github.com/vytor/deckflash/internal/progress"
	"github.com/vytor/deckflash/internal/training"
)

type quizOptions struct {
	mode    string
	rounds  int
	choices int
	seed    uint64
}

func newQuizCmd() *cobra.Command {
	var opts quizOptions
	cmd := &cobra.Command{
		Use:   "quiz <stack>",
		Short: "Run a multiple-choice quiz on a stack",
		Long: `Run a multiple-choice quiz. Answer with the choice letter, or type the
position (card-to-position) or card code (position-to-card) directly.
End of input stops the quiz early.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := deck.DefaultRegistry().Get(args[0])
			if err != nil {
				return err
			}
			mode, err := training.ParseMode(opts.mode)
			if err != nil {
				return err
			}
			if opts.rounds < 1 {
				return fmt.Errorf("--rounds must be positive, got %d", opts.rounds)
			}
			if opts.choices < 2 || opts.choices > 10 {
				return fmt.Errorf("--choices must be between 2 and 10, got %d", opts.choices)
			}
			rng := training.SystemRNG()
			if opts.seed != 0 {
				rng = training.NewRNG(opts.seed)
			}
			q := &quiz{
				stack:   stack,
				mode:    mode,
				choices: opts.choices,
				rng:     rng,
				in:      bufio.NewScanner(cmd.InOrStdin()),
				out:     cmd.OutOrStdout(),
				record:  progress.New(opts.rounds),
			}
			return q.run(opts.rounds)
		},
	}
	cmd.Flags().StringVar(&opts.mode, "mode", string(training.CardToPosition), "card-to-position or position-to-card")
	cmd.Flags().IntVar(&opts.rounds, "rounds", 10, "number of rounds")
	cmd.Flags().IntVar(&opts.choices, "choices", training.DefaultChoicesCount, "choices per round (2-10)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for a repeatable quiz (0 picks one at random)")
	return cmd
}

type quiz struct {
	stack   deck.Stack
	mode    training.Mode
	choices int
	rng     training.RNG
	in      *bufio.Scanner
	out     io.Writer
	record  *progress.Progress
}

func (q *quiz) run(rounds int) error {
	for i := 1; i <= rounds; i++ {
		round, err := training.NewRound(q.stack, q.mode, q.choices, q.rng)
		if err != nil {
			return err
		}
		if !q.ask(i, rounds, round) {
			fmt.Fprintln(q.out)
			break
		}
	}
	q.report()
	return nil
}

// ask plays one round. It returns false when input ran out.
func (q *quiz) ask(n, total int, round training.Round) bool {
	if q.mode == training.PositionToCard {
		fmt.Fprintf(q.out, "[%d/%d] Which card is at position %s?\n", n, total, round.Prompt())
	} else {
		fmt.Fprintf(q.out, "[%d/%d] Where is %s?\n", n, total, round.Prompt())
	}
	for i, c := range round.Choices {
		fmt.Fprintf(q.out, "  %c) %s\n", 'a'+i, q.label(c))
	}

	start := time.Now()
	for {
		fmt.Fprint(q.out, "> ")
		if !q.in.Scan() {
			return false
		}
		position, ok := q.parse(round, q.in.Text())
		if !ok {
			fmt.Fprintln(q.out, "  not a valid choice, try again")
			continue
		}

		correct := round.Check(position)
		q.record.Record(progress.AnswerRecord{
			Mode:           string(q.mode),
			Stack:          q.stack.Name,
			TargetPosition: round.Target.Position,
			AnswerPosition: position,
			Correct:        correct,
			ElapsedSeconds: time.Since(start).Seconds(),
			AnsweredAt:     time.Now(),
		})
		if correct {
			fmt.Fprintln(q.out, "  correct")
		} else {
			fmt.Fprintf(q.out, "  wrong: %s is at %d\n", round.Target.Card, round.Target.Position)
		}
		return true
	}
}

func (q *quiz) label(pc deck.PositionedCard) string {
	if q.mode == training.PositionToCard {
		return pc.Card.String()
	}
	return strconv.Itoa(pc.Position)
}

// parse maps an answer line to a position among the round's choices.
func (q *quiz) parse(round training.Round, line string) (int, bool) {
	line = strings.TrimSpace(line)
	if len(line) == 1 {
		if i := int(strings.ToLower(line)[0] - 'a'); i >= 0 && i < len(round.Choices) {
			return round.Choices[i].Position, true
		}
	}

	var position int
	if q.mode == training.PositionToCard {
		card, err := deck.ParseCard(line)
		if err != nil {
			return 0, false
		}
		if position, err = q.stack.PositionOf(card); err != nil {
			return 0, false
		}
	} else {
		var err error
		if position, err = strconv.Atoi(line); err != nil {
			return 0, false
		}
	}
	return position, round.Choices.Contains(position)
}

func (q *quiz) report() {
	t := q.record.Tally(string(q.mode), q.stack.Name)
	fmt.Fprintf(q.out, "score: %d/%d (%.0f%%), best streak %d\n", t.Correct, t.Total(), t.Accuracy(), t.BestStreak)
}
