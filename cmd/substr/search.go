package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	segascii "github.com/segmentio/asm/ascii"
	"github.com/spf13/cobra"

	"github.com/mhr3/substr/bench"
	"github.com/mhr3/substr/match"
)

const (
	algoBruteForce = "brute"
	algoRabinKarp  = "rabin-karp"
)

var errNoInput = errors.New("no input: pass FILE or pipe text on stdin")

type searchOptions struct {
	algo    string
	base    int
	modulus int
	fold    bool
	workers int
	count   bool
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search PATTERN [FILE]",
		Short: "Print every offset at which PATTERN occurs in FILE or stdin",
		Long: `Prints the byte offset of every, possibly overlapping, occurrence of
PATTERN, one per line. An empty PATTERN matches at every offset including
the one just past the end of the input. Reads stdin when FILE is omitted
or "-".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.algo, "algo", algoRabinKarp, "Matcher to use ("+algoBruteForce+", "+algoRabinKarp+")")
	cmd.Flags().IntVar(&opts.base, "base", match.DefaultBase, "Rolling hash base")
	cmd.Flags().IntVar(&opts.modulus, "modulus", match.DefaultModulus, "Rolling hash modulus")
	cmd.Flags().BoolVarP(&opts.fold, "ignore-case", "i", false, "Match ASCII letters case-insensitively")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 1, "Goroutines to split the input across (0 = GOMAXPROCS)")
	cmd.Flags().BoolVarP(&opts.count, "count", "c", false, "Print only the number of matches")
	return cmd
}

func runSearch(cmd *cobra.Command, root *rootOptions, opts *searchOptions, args []string) error {
	logger := root.logger
	pattern := args[0]

	path := "-"
	if len(args) == 2 {
		path = args[1]
	}
	text, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	fn, err := searchFunc(opts, pattern)
	if err != nil {
		return err
	}
	if opts.fold && !segascii.ValidString(pattern) {
		logger.Warn("pattern has non-ASCII bytes; they are matched exactly")
	}

	res, err := bench.MeasureE(1, func() ([]int, error) {
		return match.IndexAllParallel(cmd.Context(), text, pattern, opts.workers, fn)
	})
	if err != nil {
		return err
	}
	logger.Debug("search complete",
		slog.String("algo", opts.algo),
		slog.Int("text_len", len(text)),
		slog.Int("pattern_len", len(pattern)),
		slog.Int("matches", len(res.Value)),
		slog.Duration("elapsed", res.Elapsed),
	)

	w := bufio.NewWriter(cmd.OutOrStdout())
	if opts.count {
		fmt.Fprintln(w, len(res.Value))
		return w.Flush()
	}
	buf := make([]byte, 0, 24)
	for _, off := range res.Value {
		buf = strconv.AppendInt(buf[:0], int64(off), 10)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return w.Flush()
}

func searchFunc(opts *searchOptions, pattern string) (match.SearchFunc[string], error) {
	switch opts.algo {
	case algoBruteForce:
		if opts.fold {
			return match.BruteForceFold[string], nil
		}
		return match.BruteForce[string], nil
	case algoRabinKarp:
		s, err := match.NewSearcher(pattern,
			match.WithBase(opts.base),
			match.WithModulus(opts.modulus),
			match.WithFold(opts.fold),
		)
		if err != nil {
			return nil, err
		}
		return func(text, _ string) []int { return s.IndexAll(text) }, nil
	default:
		return nil, fmt.Errorf("unknown --algo %q: must be %q or %q", opts.algo, algoBruteForce, algoRabinKarp)
	}
}

// readInput reads path, or r when path is "-". It refuses to block on an
// interactive terminal.
func readInput(r io.Reader, path string) (string, error) {
	if path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if f, ok := r.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return "", errNoInput
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
