package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"slices"
	"strings"

	"github.com/mhr3/substr/match"
)

var ErrMismatch = errors.New("bench: matchers disagree")

// Report is the outcome of one case.
type Report struct {
	Name       string
	TextLen    int
	PatternLen int
	Base       int
	Modulus    int

	BruteForce  Timed[[]int]
	RollingHash Timed[[]int]
}

// Agree reports whether both matchers returned the same offsets.
func (r Report) Agree() bool {
	return slices.Equal(r.BruteForce.Value, r.RollingHash.Value)
}

// Runner executes the cases of a Config.
type Runner struct {
	cfg    Config
	logger *slog.Logger
}

// NewRunner validates cfg and returns a Runner. A nil logger discards logs.
func NewRunner(cfg Config, logger *slog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{cfg: cfg, logger: logger}, nil
}

// Run executes every case in order. It returns all reports it produced and
// an error wrapping ErrMismatch naming the cases where the matchers
// disagreed.
func (r *Runner) Run(ctx context.Context) ([]Report, error) {
	rnd := rand.New(rand.NewSource(r.cfg.Seed))

	reports := make([]Report, 0, len(r.cfg.Cases))
	var mismatched []string
	for _, cs := range r.cfg.Cases {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		rep, err := r.runCase(ctx, cs, rnd)
		if err != nil {
			return reports, fmt.Errorf("bench: case %q: %w", cs.Name, err)
		}
		reports = append(reports, rep)

		attrs := []any{
			slog.String("case", rep.Name),
			slog.Int("text_len", rep.TextLen),
			slog.Int("pattern_len", rep.PatternLen),
			slog.Int("matches", len(rep.BruteForce.Value)),
			slog.Duration("brute_force", rep.BruteForce.Elapsed),
			slog.Duration("rolling_hash", rep.RollingHash.Elapsed),
		}
		if !rep.Agree() {
			mismatched = append(mismatched, rep.Name)
			r.logger.Error("matchers disagree", append(attrs, slog.Int("rolling_hash_matches", len(rep.RollingHash.Value)))...)
			continue
		}
		r.logger.Info("case complete", attrs...)
	}

	if len(mismatched) > 0 {
		return reports, fmt.Errorf("%w: %s", ErrMismatch, strings.Join(mismatched, ", "))
	}
	return reports, nil
}

func (r *Runner) runCase(ctx context.Context, cs Case, rnd *rand.Rand) (Report, error) {
	text := cs.Text.Build(rnd)
	pattern := cs.Pattern.Build(rnd)

	repeats := r.cfg.Repeats
	if cs.Repeats > 0 {
		repeats = cs.Repeats
	}
	modulus := r.cfg.Modulus
	if cs.Modulus > 0 {
		modulus = cs.Modulus
	}

	searcher, err := match.NewSearcher(pattern,
		match.WithBase(r.cfg.Base),
		match.WithModulus(modulus),
		match.WithFold(r.cfg.Fold),
	)
	if err != nil {
		return Report{}, err
	}
	brute := match.BruteForce[string]
	if r.cfg.Fold {
		brute = match.BruteForceFold[string]
	}
	rolling := func(text, _ string) []int { return searcher.IndexAll(text) }

	r.logger.Debug("running case",
		slog.String("case", cs.Name),
		slog.Int("repeats", repeats),
		slog.Int("modulus", modulus),
		slog.Int("workers", r.cfg.Workers),
	)

	rep := Report{
		Name:       cs.Name,
		TextLen:    len(text),
		PatternLen: len(pattern),
		Base:       r.cfg.Base,
		Modulus:    modulus,
	}
	rep.BruteForce, err = MeasureE(repeats, func() ([]int, error) {
		return match.IndexAllParallel(ctx, text, pattern, r.workers(), brute)
	})
	if err != nil {
		return Report{}, err
	}
	rep.RollingHash, err = MeasureE(repeats, func() ([]int, error) {
		return match.IndexAllParallel(ctx, text, pattern, r.workers(), rolling)
	})
	if err != nil {
		return Report{}, err
	}
	return rep, nil
}

// workers maps the config's "0 means sequential" onto IndexAllParallel's
// "0 means GOMAXPROCS".
func (r *Runner) workers() int {
	return max(r.cfg.Workers, 1)
}
