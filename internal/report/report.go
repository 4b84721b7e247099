// Package report renders diagnoses for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cephsafedisk/internal/diag"

	"github.com/charmbracelet/lipgloss"
)

type Format uint8

const (
	Pretty Format = iota + 1
	JSON
)

func (f Format) String() string {
	switch f {
	case Pretty:
		return "pretty"
	case JSON:
		return "json"
	default:
		return "unknown_format"
	}
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return Pretty, nil
	case "json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want pretty or json)", s)
	}
}

// QuickKey is the only field of the quick check JSON document.
const QuickKey = "Safe to remove an OSD"

const bullet = "●"

const (
	safeColor    = lipgloss.Color("76")
	pendingColor = lipgloss.Color("214")
	unsafeColor  = lipgloss.Color("204")
	mutedColor   = lipgloss.Color("243")
)

// Printer writes results to Out in the chosen format.
type Printer struct {
	Out    io.Writer
	Format Format
	// Verbose adds per-status PG counts to pretty output.
	Verbose bool
	// Renderer picks the color profile for pretty output. When nil, the
	// profile is detected from Out, so a pipe or file gets no escape codes.
	Renderer *lipgloss.Renderer
}

func (p Printer) renderer() *lipgloss.Renderer {
	if p.Renderer != nil {
		return p.Renderer
	}
	return lipgloss.NewRenderer(p.Out)
}

// marker returns the colored status bullet for s.
func marker(r *lipgloss.Renderer, s diag.Status) string {
	color := unsafeColor
	switch s {
	case diag.Safe:
		color = safeColor
	case diag.Unknown:
		color = pendingColor
	}
	return r.NewStyle().Foreground(color).Render(bullet)
}

// Quick prints the quick check verdict.
func (p Printer) Quick(safe bool) error {
	if p.Format == JSON {
		return json.NewEncoder(p.Out).Encode(map[string]bool{QuickKey: safe})
	}
	r := p.renderer()
	var err error
	if safe {
		_, err = fmt.Fprintf(p.Out, "%s Safe to remove an OSD\n", marker(r, diag.Safe))
	} else {
		_, err = fmt.Fprintf(p.Out, "%s Not safe to remove an OSD\n", marker(r, diag.NonSafe))
	}
	return err
}

// Exhaustive prints every OSD's status. JSON output groups OSD ids into
// Removable, Not Removable and Pending by each OSD's own status.
func (p Printer) Exhaustive(d diag.ClusterDiagnosis) error {
	if p.Format == JSON {
		return json.NewEncoder(p.Out).Encode(diag.NewReview(d))
	}

	r := p.renderer()
	muted := r.NewStyle().Foreground(mutedColor)
	var sb strings.Builder
	sb.WriteString("Current OSD statuses:\n")
	for _, node := range d.Nodes {
		fmt.Fprintf(&sb, "%s %d: %s", marker(r, node.Status), node.OSD, node.Status)
		if p.Verbose {
			sb.WriteString("  ")
			sb.WriteString(muted.Render(fmt.Sprintf("(pgs: %d removable, %d pending, %d not removable)",
				node.PGCount(diag.Safe), node.PGCount(diag.Unknown), node.PGCount(diag.NonSafe))))
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(p.Out, sb.String())
	return err
}
