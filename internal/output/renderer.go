package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/tahmidriaz/scrubdash/internal/model"
)

// Renderer writes one cycle's snapshot to an output stream.
type Renderer interface {
	Render(snap model.Snapshot) error
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))            // gray
	styleHigh    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)  // green
	styleMedium  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true) // yellow
	styleLow     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red
	styleWaiting = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
)

// TextRenderer prints a human-readable report with tier-based colors.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes colorized text to stdout.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{w: os.Stdout}
}

func (r *TextRenderer) Render(snap model.Snapshot) error {
	if snap.State == model.StateWaiting {
		if _, err := fmt.Fprintln(r.w, styleWaiting.Render("waiting for data: "+snap.Error)); err != nil {
			return err
		}
	}

	fmt.Fprintln(r.w, styleTitle.Render("Hand-hygiene attendance — "+snap.Today))
	fmt.Fprintf(r.w, "%s %d\n", styleLabel.Render("washed today:"), snap.TodayCount)
	fmt.Fprintf(r.w, "%s %s %s\n", styleLabel.Render("compliance:  "),
		styleTier(snap.Tier).Render(fmt.Sprintf("%d%%", snap.Percent)), snap.Tier)
	fmt.Fprintf(r.w, "%s %s at %s\n", styleLabel.Render("last event:  "), snap.LastWorker, snap.LastTimestamp)

	for _, ev := range snap.TodayEvents {
		fmt.Fprintf(r.w, "  %s  %s\n", ev.TimestampRaw, ev.WorkerName)
	}
	return nil
}

func styleTier(tier string) lipgloss.Style {
	switch tier {
	case "high":
		return styleHigh
	case "medium":
		return styleMedium
	default:
		return styleLow
	}
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints the snapshot as a single JSON object.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON to stdout.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(os.Stdout)}
}

func (r *JSONRenderer) Render(snap model.Snapshot) error {
	return r.enc.Encode(snap)
}
