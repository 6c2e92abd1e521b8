package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/internal/strategyconfig"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// PrintSeparator prints a visual separator
func PrintSeparator(out io.Writer) {
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator(out io.Writer) {
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(out io.Writer, message string) {
	fmt.Fprintf(out, "⚠️  %s\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(out io.Writer, message string) {
	fmt.Fprintf(out, "✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(out io.Writer, message string) {
	fmt.Fprintf(out, "❌ %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(out io.Writer, columns []string, widths []int) {
	PrintTableRow(out, columns, widths)

	// Separator line
	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(out, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(out io.Writer, values []string, widths []int) {
	for i, val := range values {
		fmt.Fprintf(out, "%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Fprint(out, "  ")
		}
	}
	fmt.Fprintln(out)
}

// PrintList prints a bulleted list
func PrintList(out io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(out, "   • %s\n", item)
	}
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(out io.Writer, key string, value string, keyWidth int) {
	fmt.Fprintf(out, "   %-*s : %s\n", keyWidth, key, value)
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// money formats dollars with thousands separators: $16,000.00
func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func shares(v float64) string {
	if v == float64(int64(v)) {
		return humanize.Comma(int64(v))
	}
	return fmt.Sprintf("%.4f", v)
}

func score(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

// gitCommit returns the VCS revision baked into the binary, if any
func gitCommit() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

// printPortfolio renders a build result as tables
func printPortfolio(out io.Writer, strategyID string, decision *strategyconfig.DecisionSnapshot, r *contracts.PortfolioResult) {
	PrintDoubleSeparator(out)
	fmt.Fprintf(out, "  Portfolio Build (%s)\n", strategyID)
	PrintSeparator(out)
	PrintKeyValue(out, "Status", string(r.Status), 12)
	PrintKeyValue(out, "Source", string(r.Config.ScoreSource), 12)
	PrintKeyValue(out, "Weighting", string(r.Config.Weighting), 12)
	PrintKeyValue(out, "Capital", money(r.Config.Capital), 12)
	PrintKeyValue(out, "Snapshot", decision.DataSnapshotID, 12)
	PrintKeyValue(out, "Config hash", decision.ConfigHash[:12], 12)
	fmt.Fprintln(out)

	if r.Status == contracts.StatusNoValidCandidates {
		PrintWarning(out, fmt.Sprintf("no instrument has a %s score", r.Config.ScoreSource))
	} else {
		widths := []int{8, 7, 10, 10, 12, 7, 7, 6}
		PrintTableHeader(out, []string{"TICKER", "WEIGHT", "PRICE", "SHARES", "AMOUNT", "SCORE", "TREND", "BADGE"}, widths)
		for _, e := range r.Entries {
			badge := ""
			if e.Scores.Badge != nil {
				badge = e.Scores.Badge.Arrows
			}
			PrintTableRow(out, []string{
				e.Ticker,
				pct(e.Weight),
				money(e.Price),
				shares(e.Shares),
				money(e.RoundedDollars),
				score(e.Scores.Score(r.Config.ScoreSource)),
				score(e.Scores.TrendScore),
				badge,
			}, widths)
		}
		fmt.Fprintln(out)
		PrintKeyValue(out, "Invested", money(r.Invested), 12)
		PrintKeyValue(out, "Cash", money(r.Cash), 12)
	}

	if len(r.Excluded) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Excluded")
		tickers := make([]string, 0, len(r.Excluded))
		for t := range r.Excluded {
			tickers = append(tickers, t)
		}
		sort.Strings(tickers)
		items := make([]string, len(tickers))
		for i, t := range tickers {
			items[i] = fmt.Sprintf("%s: %s", t, r.Excluded[t])
		}
		PrintList(out, items)
	}
	PrintDoubleSeparator(out)
}
