// Command deckflash is an offline terminal trainer for memorized decks.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vytor/deckflash/internal/deck"
	"github.com/vytor/deckflash/internal/logger"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "deckflash",
		Short: "Train a memorized deck from the terminal",
		Long: `deckflash drills the positions of a memorized deck (stack).

Available stacks: ` + strings.Join(deck.DefaultRegistry().Names(), ", "),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, ok := logger.LookupLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}
			logger.SetDefault(logger.New(logger.WithLevel(level), logger.WithOutput(cmd.ErrOrStderr())))
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "log level (DEBUG, INFO, WARN, ERROR)")

	root.AddCommand(
		newStacksCmd(),
		newShowCmd(),
		newLookupCmd(),
		newQuizCmd(),
	)
	return root
}

func newStacksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stacks",
		Short: "List the available stacks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range deck.DefaultRegistry().Stacks() {
				fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Label)
			}
			return tw.Flush()
		},
	}
}

func newShowCmd() *cobra.Command {
	var glyphs bool
	cmd := &cobra.Command{
		Use:   "show <stack>",
		Short: "Print every position of a stack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := deck.DefaultRegistry().Get(args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			for _, pc := range stack.PositionedCards() {
				if glyphs {
					fmt.Fprintf(tw, "%d\t%s\t%s\t\n", pc.Position, pc.Card, pc.Card.Glyph())
				} else {
					fmt.Fprintf(tw, "%d\t%s\t\n", pc.Position, pc.Card)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&glyphs, "glyphs", false, "also print the playing-card glyph")
	return cmd
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <stack> <card|position>",
		Short: "Find a card's position or the card at a position",
		Example: `  deckflash lookup mnemonica 27
  deckflash lookup mnemonica 2C`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := deck.DefaultRegistry().Get(args[0])
			if err != nil {
				return err
			}
			pc, err := lookup(stack, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", pc.Position, pc.Card)
			return nil
		},
	}
}

// lookup treats a numeric query as a position and anything else as a card code.
func lookup(stack deck.Stack, query string) (deck.PositionedCard, error) {
	if position, err := strconv.Atoi(query); err == nil {
		return stack.Positioned(position)
	}
	card, err := deck.ParseCard(query)
	if err != nil {
		return deck.PositionedCard{}, err
	}
	return stack.Locate(card)
}
