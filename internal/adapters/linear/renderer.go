// Package linear provides the human renderer: colored, line-oriented output
// with an optional in-place progress line.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/twin/internal/ui/output"
	"go.trai.ch/twin/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

const fingerprintWidth = 8

// Renderer implements ports.Renderer for humans. Results go to stdout;
// progress and status lines go to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output
	errOut *termenv.Output

	// inPlace redraws the progress line instead of printing one per item.
	inPlace bool

	mu    sync.Mutex
	drawn bool
}

// NewRenderer creates a new Renderer. Nil writers default to the process's
// standard streams.
func NewRenderer(stdout, stderr io.Writer, inPlace bool) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		out:     output.New(stdout),
		errOut:  output.New(stderr),
		inPlace: inPlace,
	}
}

// OnDetect prints the detection result.
func (r *Renderer) OnDetect(root string, res domain.DetectionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()

	if !res.Found() {
		r.printf(r.stdout, "%s no cache configuration detected in %s\n", r.paint(r.out, style.Circle, style.Slate), root)
		return
	}

	r.printf(r.stdout, "%s %s %s\n", r.paint(r.out, style.Dot, style.Iris), root, r.faint(r.out, string(res.Method)))

	rows := [][2]string{}
	if len(res.Recipes) > 0 {
		rows = append(rows, [2]string{"recipes", strings.Join(res.Recipes, ", ")})
	}
	if len(res.Markers) > 0 {
		rows = append(rows, [2]string{"markers", strings.Join(res.Markers, ", ")})
	}
	patterns := "(none)"
	if len(res.Patterns()) > 0 {
		patterns = strings.Join(res.Patterns(), ", ")
	}
	rows = append(rows, [2]string{"cache", patterns})
	command := "(none)"
	if res.Config.HasCommand() {
		command = res.Config.Command
	}
	rows = append(rows, [2]string{"post_restore", command})

	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row[0]))
	}
	for _, row := range rows {
		r.printf(r.stdout, "  %s  %s\n", r.faint(r.out, pad(row[0], width)), row[1])
	}
}

// OnSource prints the chosen source working copy.
func (r *Renderer) OnSource(sel domain.SourceSelection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()

	r.printf(r.stderr, "%s source %s %s\n", r.paint(r.errOut, style.Arrow, style.Iris), sel.Chosen.Path, r.faint(r.errOut, branchLabel(sel.Chosen)))
}

// OnCreated prints the new working copy.
func (r *Renderer) OnCreated(wc domain.WorkingCopy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()

	r.printf(r.stderr, "%s created %s %s\n", r.paint(r.errOut, style.Check, style.Green), wc.Path, r.faint(r.errOut, branchLabel(wc)))
}

// OnProgress reports per-item progress. The final call clears the line.
func (r *Renderer) OnProgress(index, total int, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index >= total {
		r.clearLocked()
		return
	}

	counter := r.faint(r.errOut, fmt.Sprintf("[%d/%d]", index+1, total))
	if r.inPlace {
		r.printf(r.stderr, "\r\033[K%s %s", counter, path)
		r.drawn = true
		return
	}
	r.printf(r.stderr, "%s %s\n", counter, path)
}

// OnCopy prints the copy summary and every failed item.
func (r *Renderer) OnCopy(res domain.CopyResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()

	icon := r.paint(r.out, style.Check, style.Green)
	if len(res.Failed) > 0 {
		icon = r.paint(r.out, style.Warning, style.Yellow)
	}
	r.printf(r.stdout, "%s linked %d of %d cache path(s)\n", icon, len(res.Copied), len(res.Attempted))

	for _, f := range res.Failed {
		r.printf(r.stdout, "  %s %s %s\n", r.paint(r.out, style.Cross, style.Red), f.Path, r.faint(r.out, f.Err.Error()))
	}
}

// OnReconcile announces the reconciliation command.
func (r *Renderer) OnReconcile(dir, command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()

	r.printf(r.stderr, "%s %s %s\n", r.paint(r.errOut, style.Arrow, style.Iris), command, r.faint(r.errOut, "in "+dir))
}

// OnList prints one row per working copy.
func (r *Renderer) OnList(rows []domain.WorkingCopyStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		marker := " "
		if row.Current {
			marker = style.Current
		}
		branch := branchLabel(row.WorkingCopy)
		if row.Primary {
			branch += " (primary)"
		}
		cache := "empty"
		if row.Populated {
			cache = "cached"
		}
		fingerprint := "-"
		if row.Fingerprint != "" {
			fingerprint = row.Fingerprint[:min(fingerprintWidth, len(row.Fingerprint))]
			if row.Drift {
				fingerprint += style.Drifted
			}
		}
		cells = append(cells, []string{marker, branch, row.Path, cache, fingerprint})
	}

	widths := columnWidths(cells)
	for _, c := range cells {
		cache := c[3]
		if cache == "cached" {
			cache = r.paint(r.out, pad(cache, widths[3]), style.Green)
		} else {
			cache = r.faint(r.out, pad(cache, widths[3]))
		}
		r.printf(r.stdout, "%s %s  %s  %s  %s\n", c[0], pad(c[1], widths[1]), pad(c[2], widths[2]), cache, c[4])
	}
}

// OnRemoved confirms a removal.
func (r *Renderer) OnRemoved(wc domain.WorkingCopy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()

	r.printf(r.stdout, "%s removed %s %s\n", r.paint(r.out, style.Check, style.Green), wc.Path, r.faint(r.out, branchLabel(wc)))
}

// OnRecipes prints the registry in priority order.
func (r *Renderer) OnRecipes(recipes []domain.StackSignature) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()

	cells := make([][]string, 0, len(recipes))
	for _, s := range recipes {
		command := s.Config.Command
		if command == "" {
			command = "-"
		}
		cells = append(cells, []string{s.Name, strings.Join(s.Markers, ", "), strings.Join(s.Config.Patterns, ", "), command})
	}

	widths := columnWidths(cells)
	for _, c := range cells {
		r.printf(r.stdout, "%s  %s  %s  %s\n",
			r.paint(r.out, pad(c[0], widths[0]), style.Iris),
			r.faint(r.out, pad(c[1], widths[1])),
			pad(c[2], widths[2]),
			c[3])
	}
}

// OnInit confirms that an override file was written.
func (r *Renderer) OnInit(path string, cfg domain.CacheConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()

	r.printf(r.stdout, "%s wrote %s %s\n", r.paint(r.out, style.Check, style.Green), path, r.faint(r.out, strings.Join(cfg.Patterns, ", ")))
}

// Flush clears a pending progress line.
func (r *Renderer) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
	return nil
}

// clearLocked erases an in-place progress line. Callers hold r.mu.
func (r *Renderer) clearLocked() {
	if r.drawn {
		r.printf(r.stderr, "\r\033[K")
		r.drawn = false
	}
}

func (r *Renderer) printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func (r *Renderer) paint(out *termenv.Output, s string, color lipgloss.Color) string {
	return output.Colorize(out, s, string(color))
}

func (r *Renderer) faint(out *termenv.Output, s string) string {
	return out.String(s).Faint().String()
}

func branchLabel(wc domain.WorkingCopy) string {
	if wc.Branch == "" {
		return "(detached)"
	}
	return wc.Branch
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	return widths
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
