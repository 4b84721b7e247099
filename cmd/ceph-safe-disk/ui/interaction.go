package ui

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	envNoInteraction = "NO_INTERACTION"
	envCI            = "CI"
	envNoColor       = "NO_COLOR"
	envTerm          = "TERM"
)

var interactionState struct {
	mu          sync.RWMutex
	initialized bool
	interactive bool
	colorless   bool
}

// ConfigureInteraction decides once per process whether stderr is a person at
// a terminal. Non-interactive runs get no spinner and no colors, which keeps
// cron mail and CI logs free of escape codes.
func ConfigureInteraction(noInteraction bool) {
	interactive := detectInteractiveMode(noInteraction)
	colorless := optedOut(noInteraction) || envSet(envNoColor)

	interactionState.mu.Lock()
	interactionState.initialized = true
	interactionState.interactive = interactive
	interactionState.colorless = colorless
	interactionState.mu.Unlock()

	if interactive && !colorless {
		lipgloss.SetColorProfile(termenv.ColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// IsInteractive reports whether stderr is a terminal that may show a spinner
// and colors. If ConfigureInteraction has not run yet, it runs with the flag
// unset.
func IsInteractive() bool {
	interactionState.mu.RLock()
	initialized, interactive := interactionState.initialized, interactionState.interactive
	interactionState.mu.RUnlock()
	if initialized {
		return interactive
	}

	ConfigureInteraction(false)
	return IsInteractive()
}

// IsNoInteraction is the negation of IsInteractive.
func IsNoInteraction() bool {
	return !IsInteractive()
}

// ReportRenderer returns the renderer for results written to w. Its color
// profile follows w rather than stderr, so piping stdout strips colors even
// when stderr is a terminal. Opting out of interaction or setting NO_COLOR
// forces plain text.
func ReportRenderer(w io.Writer) *lipgloss.Renderer {
	IsInteractive()
	interactionState.mu.RLock()
	colorless := interactionState.colorless
	interactionState.mu.RUnlock()

	r := lipgloss.NewRenderer(w)
	if colorless {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func detectInteractiveMode(noInteraction bool) bool {
	if optedOut(noInteraction) {
		return false
	}
	return stderrIsTerminal()
}

// optedOut reports an explicit request for plain, non-interactive output.
func optedOut(noInteraction bool) bool {
	if noInteraction {
		return true
	}
	if envTruthy(envNoInteraction) || envTruthy(envCI) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(os.Getenv(envTerm)), "dumb")
}

func stderrIsTerminal() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func envTruthy(key string) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch v {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
