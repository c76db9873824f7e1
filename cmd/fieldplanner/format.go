package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ChicagoDave/fieldplanner/pkg/cost"
	"github.com/ChicagoDave/fieldplanner/pkg/store"
	"github.com/ChicagoDave/fieldplanner/pkg/validation"
	"github.com/ChicagoDave/fieldplanner/pkg/wiring"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(16)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+styleValue.Render(value))
}

func printValidationReport(w io.Writer, r *validation.Report) {
	section := func(title string, style lipgloss.Style, icon string, results []validation.Result, detailed bool) {
		if len(results) == 0 {
			return
		}
		fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("%s (%d)", title, len(results))))
		for _, res := range results {
			fmt.Fprintf(w, "  %s [%s] %s\n", style.Render(icon), res.Level, res.Message)
			if !detailed {
				continue
			}
			if res.Path != "" {
				printDetail(w, "  -> %s = %v", res.Path, res.ActualValue)
			}
			if res.Expected != "" {
				printDetail(w, "  expected: %s", res.Expected)
			}
			for _, s := range res.Suggestions {
				printDetail(w, "  * %s", s)
			}
		}
		fmt.Fprintln(w)
	}

	section("ERRORS", styleError, iconError, r.Errors, true)
	section("WARNINGS", styleWarning, iconWarning, r.Warnings, true)
	section("INFO", styleDim, iconInfo, r.Info, false)

	if r.Valid {
		fmt.Fprintln(w, styleSuccess.Render("Result: VALID")+" "+styleDim.Render("("+r.Summary+")"))
	} else {
		fmt.Fprintln(w, styleError.Render("Result: INVALID")+" "+styleDim.Render("("+r.Summary+")"))
	}
}

func printWiringReport(w io.Writer, name string, res *wiring.Result) {
	fmt.Fprintln(w, styleTitle.Render("Wiring: "+name))
	printKeyValue(w, "strategy", res.Strategy)
	printKeyValue(w, "modules", fmt.Sprintf("%d in %d banks", res.Segment.Len(), len(res.Segment.Banks)))
	printKeyValue(w, "max string size", fmt.Sprintf("%d", res.MaxStringSize))
	printKeyValue(w, "strings", fmt.Sprintf("%d", len(res.Strings)))
	printKeyValue(w, "total distance", fmt.Sprintf("%.3f m", res.Total))
	if s, ok := res.Longest(); ok {
		printKeyValue(w, "longest string", fmt.Sprintf("#%d, %.3f m", s.Index, s.Distance))
	}
	fmt.Fprintln(w)

	rows := make([][]string, len(res.Strings))
	for i, s := range res.Strings {
		first, last := "", ""
		if len(s.Modules) > 0 {
			first, last = s.Modules[0].ID(), s.Modules[len(s.Modules)-1].ID()
		}
		rows[i] = []string{
			fmt.Sprintf("%d", s.Index),
			fmt.Sprintf("%d", len(s.Modules)),
			first,
			last,
			fmt.Sprintf("%.3f", s.Distance),
		}
	}
	printTable(w, []string{"STRING", "MODULES", "FROM", "TO", "DISTANCE (m)"}, rows)
}

func printCostReport(w io.Writer, r *cost.Report) {
	q, b := r.Quantities, r.Estimate
	fmt.Fprintln(w, styleTitle.Render("Cost Estimate"))
	printTable(w, []string{"ITEM", "QUANTITY", "COST"}, [][]string{
		{"panels", fmt.Sprintf("%.1f m²", q.PanelAreaM2), "$" + formatMoney(b.Panels)},
		{"string cable", fmt.Sprintf("%.1f m", q.CableM), "$" + formatMoney(b.Cable)},
		{"connectors", fmt.Sprintf("%d pairs", q.ConnectorPairs), "$" + formatMoney(b.Connectors)},
		{"combiner inputs", fmt.Sprintf("%d", q.CombinerInputs), "$" + formatMoney(b.Combiners)},
	})
	fmt.Fprintln(w)
	printKeyValue(w, "total", "$"+formatMoney(b.Total))
	printKeyValue(w, "per module", "$"+formatMoney(r.Summary.PerModule))
	printKeyValue(w, "per string", "$"+formatMoney(r.Summary.PerString))
	printKeyValue(w, "balance of system", "$"+formatMoney(r.Summary.BOS))
}

func formatMoney(v float64) string {
	if v >= 1_000_000 {
		return fmt.Sprintf("%.2fM", v/1_000_000)
	}
	if v >= 1_000 {
		return fmt.Sprintf("%.1fK", v/1_000)
	}
	return fmt.Sprintf("%.0f", v)
}

func printRun(w io.Writer, r *store.Run) {
	fmt.Fprintln(w, styleTitle.Render("Run "+r.ID))
	printKeyValue(w, "created", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	printKeyValue(w, "scenario", r.Scenario)
	printKeyValue(w, "strategy", r.Strategy)
	printKeyValue(w, "max string size", fmt.Sprintf("%d", r.MaxStringSize))
	printKeyValue(w, "modules", fmt.Sprintf("%d", r.Modules))
	printKeyValue(w, "strings", fmt.Sprintf("%d", r.Strings))
	printKeyValue(w, "total distance", fmt.Sprintf("%.3f m", r.TotalDistance))
	printKeyValue(w, "longest string", fmt.Sprintf("%.3f m", r.Longest))
}

// printTable writes left-aligned columns sized to their widest cell.
func printTable(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	line := func(cells []string, style func(int, string) string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = style(i, c+strings.Repeat(" ", widths[i]-lipgloss.Width(c)))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	fmt.Fprintln(w, line(header, func(_ int, s string) string { return styleHeader.Render(s) }))
	for _, row := range rows {
		fmt.Fprintln(w, line(row, func(i int, s string) string {
			if i == 0 {
				return styleNumber.Render(s)
			}
			return styleValue.Render(s)
		}))
	}
}
