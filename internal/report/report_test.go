package report

import (
	"bytes"
	"strings"
	"testing"

	"cephsafedisk/internal/diag"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func sampleDiagnosis() diag.ClusterDiagnosis {
	return diag.Diagnose([]diag.PlacementGroup{
		{ID: "1.0", State: "active+clean", Acting: []int{0, 1, 2}},
		{ID: "1.1", State: "active+undersized+degraded", Acting: []int{1, 3}},
		{ID: "1.2", State: "peering", Acting: []int{2, 4}},
	})
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: Pretty},
		{in: "pretty", want: Pretty},
		{in: "JSON", want: JSON},
		{in: "yaml", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("ParseFormat(%q) = (%v, %v), want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestQuick(t *testing.T) {
	testCases := []struct {
		name   string
		format Format
		safe   bool
		want   string
	}{
		{name: "pretty safe", format: Pretty, safe: true, want: "● Safe to remove an OSD\n"},
		{name: "pretty not safe", format: Pretty, safe: false, want: "● Not safe to remove an OSD\n"},
		{name: "json safe", format: JSON, safe: true, want: "{\"Safe to remove an OSD\":true}\n"},
		{name: "json not safe", format: JSON, safe: false, want: "{\"Safe to remove an OSD\":false}\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (Printer{Out: &buf, Format: tc.format}).Quick(tc.safe); err != nil {
				t.Fatalf("Quick() error = %v", err)
			}
			if got := buf.String(); got != tc.want {
				t.Fatalf("Quick() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExhaustivePretty(t *testing.T) {
	var buf bytes.Buffer
	if err := (Printer{Out: &buf, Format: Pretty}).Exhaustive(sampleDiagnosis()); err != nil {
		t.Fatalf("Exhaustive() error = %v", err)
	}
	want := strings.Join([]string{
		"Current OSD statuses:",
		"● 0: Removable",
		"● 1: Not removable",
		"● 2: Pending",
		"● 3: Not removable",
		"● 4: Pending",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("Exhaustive() =\n%s\nwant\n%s", got, want)
	}
}

func TestExhaustivePrettyVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := (Printer{Out: &buf, Format: Pretty, Verbose: true}).Exhaustive(sampleDiagnosis()); err != nil {
		t.Fatalf("Exhaustive() error = %v", err)
	}
	if !strings.Contains(buf.String(), "● 1: Not removable  (pgs: 1 removable, 0 pending, 1 not removable)") {
		t.Fatalf("verbose output = %q", buf.String())
	}
}

func TestExhaustiveJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := (Printer{Out: &buf, Format: JSON}).Exhaustive(sampleDiagnosis()); err != nil {
		t.Fatalf("Exhaustive() error = %v", err)
	}
	want := "{\"Removable\":[0],\"Not Removable\":[1,3],\"Pending\":[2,4]}\n"
	if got := buf.String(); got != want {
		t.Fatalf("Exhaustive() = %q, want %q", got, want)
	}
}

func TestPrettyColorFollowsOut(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	var plain bytes.Buffer
	if err := (Printer{Out: &plain, Format: Pretty}).Quick(true); err != nil {
		t.Fatalf("Quick() error = %v", err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("Quick() to a buffer = %q, want no escape codes", plain.String())
	}

	var colored bytes.Buffer
	r := lipgloss.NewRenderer(&colored)
	r.SetColorProfile(termenv.ANSI256)
	if err := (Printer{Out: &colored, Format: Pretty, Renderer: r}).Exhaustive(sampleDiagnosis()); err != nil {
		t.Fatalf("Exhaustive() error = %v", err)
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("Exhaustive() with ANSI256 renderer = %q, want escape codes", colored.String())
	}
}
