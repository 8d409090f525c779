// Package bench runs both matchers over generated scenarios, times them and
// checks that they agree.
//
// Everything a run depends on, including the random seed, is carried by
// Config and passed in explicitly.
package bench

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mhr3/substr/match"
)

var ErrInvalidConfig = errors.New("bench: invalid config")

// Config drives a benchmark run.
type Config struct {
	// Seed feeds the generator used for random texts.
	Seed int64 `yaml:"seed"`

	// Repeats is the default number of timed runs per matcher.
	Repeats int `yaml:"repeats"`

	// Base and Modulus configure the rolling hash.
	Base    int `yaml:"base"`
	Modulus int `yaml:"modulus"`

	// Workers > 1 splits every search across goroutines; 0 or 1 runs it
	// on the calling goroutine.
	Workers int `yaml:"workers"`

	// Fold switches both matchers to ASCII case-insensitive matching.
	Fold bool `yaml:"fold"`

	Cases []Case `yaml:"cases"`
}

// Case is one scenario.
type Case struct {
	Name    string   `yaml:"name"`
	Text    TextSpec `yaml:"text"`
	Pattern TextSpec `yaml:"pattern"`

	// Repeats and Modulus override the Config values when non-zero.
	Repeats int `yaml:"repeats,omitempty"`
	Modulus int `yaml:"modulus,omitempty"`
}

// TextSpec describes how to build a text or pattern. Random takes
// precedence over Repeat, which takes precedence over Literal; Suffix is
// appended in every case.
type TextSpec struct {
	Literal  string `yaml:"literal,omitempty"`
	Repeat   string `yaml:"repeat,omitempty"`
	Count    int    `yaml:"count,omitempty"`
	Random   int    `yaml:"random,omitempty"`
	Alphabet string `yaml:"alphabet,omitempty"`
	Suffix   string `yaml:"suffix,omitempty"`
}

// DefaultConfig returns the demonstration scenarios: random text, the brute
// force worst case, a highly repetitive text, a small literal example and
// the repetitive text again under a modulus small enough to collide often.
func DefaultConfig() Config {
	repetitive := TextSpec{Repeat: "abababababababababab", Count: 500}
	return Config{
		Seed:    42,
		Repeats: 3,
		Base:    match.DefaultBase,
		Modulus: match.DefaultModulus,
		Cases: []Case{
			{
				Name:    "random",
				Text:    TextSpec{Random: 10000, Alphabet: "abcdefghijklmnopqrstuvwxyz "},
				Pattern: TextSpec{Literal: "the"},
			},
			{
				Name:    "pathological",
				Text:    TextSpec{Repeat: "a", Count: 20000},
				Pattern: TextSpec{Repeat: "a", Count: 10000, Suffix: "b"},
				Repeats: 1,
			},
			{
				Name:    "repetitive",
				Text:    repetitive,
				Pattern: TextSpec{Literal: "ababab"},
			},
			{
				Name:    "small",
				Text:    TextSpec{Literal: "XYZABC"},
				Pattern: TextSpec{Literal: "ABC"},
			},
			{
				Name:    "tiny-modulus",
				Text:    repetitive,
				Pattern: TextSpec{Literal: "ababab"},
				Repeats: 1,
				Modulus: 101,
			},
		},
	}
}

// LoadConfig reads a YAML config from path. Fields missing from the file
// keep their DefaultConfig values; a file that lists cases replaces the
// default cases entirely.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("bench: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig is LoadConfig for in-memory YAML.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	cases := cfg.Cases
	cfg.Cases = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(cfg.Cases) == 0 {
		cfg.Cases = cases
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config and every case.
func (c Config) Validate() error {
	if c.Repeats < 1 {
		return fmt.Errorf("%w: repeats must be at least 1, got %d", ErrInvalidConfig, c.Repeats)
	}
	if c.Base <= 0 {
		return fmt.Errorf("%w: base must be positive, got %d", ErrInvalidConfig, c.Base)
	}
	if c.Modulus <= 0 {
		return fmt.Errorf("%w: modulus must be positive, got %d", ErrInvalidConfig, c.Modulus)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if len(c.Cases) == 0 {
		return fmt.Errorf("%w: no cases", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Cases))
	for _, cs := range c.Cases {
		if strings.TrimSpace(cs.Name) == "" {
			return fmt.Errorf("%w: case without a name", ErrInvalidConfig)
		}
		if seen[cs.Name] {
			return fmt.Errorf("%w: duplicate case %q", ErrInvalidConfig, cs.Name)
		}
		seen[cs.Name] = true

		if cs.Repeats < 0 || cs.Modulus < 0 {
			return fmt.Errorf("%w: case %q: repeats and modulus must not be negative", ErrInvalidConfig, cs.Name)
		}
		if err := cs.Text.validate(); err != nil {
			return fmt.Errorf("%w: case %q: text: %v", ErrInvalidConfig, cs.Name, err)
		}
		if err := cs.Pattern.validate(); err != nil {
			return fmt.Errorf("%w: case %q: pattern: %v", ErrInvalidConfig, cs.Name, err)
		}
	}
	return nil
}

func (s TextSpec) validate() error {
	switch {
	case s.Random < 0:
		return fmt.Errorf("random length must not be negative, got %d", s.Random)
	case s.Random > 0 && s.Alphabet == "":
		return errors.New("random text needs an alphabet")
	case s.Count < 0:
		return fmt.Errorf("count must not be negative, got %d", s.Count)
	}
	return nil
}

// Build materializes the text. rnd is consumed only when Random is set.
func (s TextSpec) Build(rnd *rand.Rand) string {
	var body string
	switch {
	case s.Random > 0:
		b := make([]byte, s.Random)
		for i := range b {
			b[i] = s.Alphabet[rnd.Intn(len(s.Alphabet))]
		}
		body = string(b)
	case s.Repeat != "":
		body = strings.Repeat(s.Repeat, s.Count)
	default:
		body = s.Literal
	}
	return body + s.Suffix
}
