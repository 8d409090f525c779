package bench

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sys/cpu"
)

// previewLimit caps how many offsets a report prints per matcher.
const previewLimit = 20

// Environment describes the machine a run happened on.
type Environment struct {
	GOOS     string
	GOARCH   string
	CPUs     int
	Features []string
}

// CurrentEnvironment reports the running machine and its SIMD features.
func CurrentEnvironment() Environment {
	env := Environment{
		GOOS:   runtime.GOOS,
		GOARCH: runtime.GOARCH,
		CPUs:   runtime.NumCPU(),
	}
	feature := func(name string, ok bool) {
		if ok {
			env.Features = append(env.Features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64":
		feature("sse4.1", cpu.X86.HasSSE41)
		feature("avx2", cpu.X86.HasAVX2)
		feature("bmi2", cpu.X86.HasBMI2)
	case "arm64":
		feature("asimd", cpu.ARM64.HasASIMD)
		feature("sve", cpu.ARM64.HasSVE)
	}
	return env
}

func (e Environment) String() string {
	features := "none"
	if len(e.Features) > 0 {
		features = strings.Join(e.Features, ",")
	}
	return fmt.Sprintf("%s/%s, %d CPUs, features: %s", e.GOOS, e.GOARCH, e.CPUs, features)
}

// Render writes a human readable report. Styling adapts to w: colours are
// dropped when w is not a terminal.
func Render(w io.Writer, env Environment, reports []Report) error {
	re := lipgloss.NewRenderer(w)
	var (
		header = re.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
		label  = re.NewStyle().Width(14)
		dim    = re.NewStyle().Foreground(lipgloss.Color("241"))
		ok     = re.NewStyle().Foreground(lipgloss.Color("86"))
		bad    = re.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	)

	var b strings.Builder
	b.WriteString(dim.Render(env.String()))
	b.WriteString("\n")
	for _, r := range reports {
		b.WriteString("\n")
		b.WriteString(header.Render(fmt.Sprintf("%s: text %d, pattern %d", r.Name, r.TextLen, r.PatternLen)))
		b.WriteString("\n")
		writeTimed(&b, label.Render("brute force"), r.BruteForce, "")
		writeTimed(&b, label.Render("rolling hash"), r.RollingHash,
			dim.Render(fmt.Sprintf("  base %d, modulus %d", r.Base, r.Modulus)))
		if r.Agree() {
			b.WriteString(ok.Render("=> both matchers returned the same offsets"))
		} else {
			b.WriteString(bad.Render("!! matchers returned different offsets"))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTimed(b *strings.Builder, label string, t Timed[[]int], suffix string) {
	fmt.Fprintf(b, "%s%d matches %s\n", label, len(t.Value), previewOffsets(t.Value))
	fmt.Fprintf(b, "%s%s avg over %d runs%s\n", strings.Repeat(" ", lipgloss.Width(label)), formatDuration(t.Elapsed), t.Runs, suffix)
}

func previewOffsets(offsets []int) string {
	if len(offsets) <= previewLimit {
		return fmt.Sprint(offsets)
	}
	return strings.TrimSuffix(fmt.Sprint(offsets[:previewLimit]), "]") + " ...]"
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}
