package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/wonny/carteira/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// Every command renders reports through these helpers
// ═══════════════════════════════════════════════════════════

const (
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorReset  = "\033[0m"
)

// Style controls terminal decoration
type Style struct {
	Color bool
}

// statusLabel returns the Portuguese label and color of a classification
func statusLabel(c contracts.Classification) (string, string) {
	switch c {
	case contracts.Cheap:
		return "barato", colorGreen
	case contracts.Fair:
		return "justo", colorYellow
	case contracts.Expensive:
		return "caro", colorRed
	default:
		return "-", ""
	}
}

// FormatNum renders a value with two decimals, "-" when absent
func FormatNum(n contracts.Num) string {
	if !n.Valid {
		return "-"
	}
	return decimal.NewFromFloat(n.Value).StringFixed(2)
}

// FormatBRL renders a value as Brazilian reais ("R$1.234,56")
func FormatBRL(v float64) string {
	cur := money.GetCurrency(money.BRL)
	cents := decimal.NewFromFloat(v).Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return money.New(cents.IntPart(), money.BRL).Display()
}

// FormatPercent renders a ratio as a percentage with a decimal comma ("0,71%")
func FormatPercent(ratio float64) string {
	s := decimal.NewFromFloat(ratio).Shift(2).StringFixed(2)
	return strings.Replace(s, ".", ",", 1) + "%"
}

// tableColumns returns the header and cell values of a report
func tableColumns(rep *contracts.Report) ([]string, [][]string, []contracts.Classification) {
	var header []string
	if rep.Kind == contracts.KindFund {
		header = []string{"FII", "PRECO_ATUAL", "PRECO_MEDIO", "P/VP", "TIPO", "STATUS"}
	} else {
		header = []string{"TICKER", "PRECO_ATUAL", "PRECO_MEDIO", "VALOR_JUSTO", "STATUS"}
	}

	rows := make([][]string, 0, len(rep.Records))
	statuses := make([]contracts.Classification, 0, len(rep.Records))
	for _, r := range rep.Records {
		label, _ := statusLabel(r.Status)
		var row []string
		if rep.Kind == contracts.KindFund {
			category := string(r.Category)
			if category == "" {
				category = "-"
			}
			row = []string{r.Symbol, FormatNum(r.Price), FormatNum(r.AvgPrice), FormatNum(r.PVP), category, label}
		} else {
			row = []string{r.Symbol, FormatNum(r.Price), FormatNum(r.AvgPrice), FormatNum(r.FairValue), label}
		}
		rows = append(rows, row)
		statuses = append(statuses, r.Status)
	}

	return header, rows, statuses
}

// RenderTable prints the aligned report table. The status column is colored
// after padding so escape codes never shift the alignment.
func RenderTable(w io.Writer, rep *contracts.Report, style Style) {
	header, rows, statuses := tableColumns(rep)

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := len([]rune(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	headLine := joinPadded(header, widths)
	fmt.Fprintln(w, headLine)
	fmt.Fprintln(w, strings.Repeat("-", len([]rune(headLine))))

	last := len(header) - 1
	for i, row := range rows {
		if _, color := statusLabel(statuses[i]); style.Color && color != "" {
			row = append(row[:last:last], color+row[last]+colorReset)
		}
		fmt.Fprintln(w, joinPadded(row, widths))
	}
}

// joinPadded pads every cell but the last to its column width
func joinPadded(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		if i == len(cells)-1 {
			padded[i] = c
			continue
		}
		padded[i] = c + strings.Repeat(" ", widths[i]-len([]rune(c)))
	}
	return strings.Join(padded, " | ")
}

// RenderSummary prints the projected income of the wallet
func RenderSummary(w io.Writer, s *contracts.PortfolioSummary) {
	fmt.Fprintf(w, "Total investido : %s\n", FormatBRL(s.TotalInvested))
	fmt.Fprintf(w, "Renda anual     : %s\n", FormatBRL(s.AnnualIncome))
	fmt.Fprintf(w, "Renda mensal    : %s\n", FormatBRL(s.MonthlyIncome))
	fmt.Fprintf(w, "Yield mensal    : %s\n", FormatPercent(s.MonthlyYield))
	fmt.Fprintf(w, "Yield anual     : %s\n", FormatPercent(s.AnnualYield()))
	fmt.Fprintf(w, "Ativos          : %d (%d sem valor ou yield)\n", s.Holdings, s.Skipped)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "⚠️  %s\n\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, message string) {
	fmt.Fprintf(w, "ℹ️  %s\n", message)
}
