// Package report renders a run summary as a terminal scoreboard.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oscillab/crossbt/internal/types"
)

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	labelStyle = lipgloss.NewStyle().Faint(true).Width(22)

	winStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

	lossStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
)

// Render builds the scoreboard for a finished run. The winning side is
// highlighted green, the losing side red.
func Render(summary types.Summary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Backtest %s (%s)", summary.ID, summary.StrategyName)))
	b.WriteString("\n\n")

	strategyStyle := lossStyle
	benchmarkStyle := winStyle

	if summary.Winner == types.WinnerStrategy {
		strategyStyle = winStyle
		benchmarkStyle = lossStyle
	}

	row(&b, "Initial capital", fmt.Sprintf("%.2f", summary.InitialCapital))
	row(&b, "Final equity", fmt.Sprintf("%.2f", summary.FinalEquity))
	row(&b, "Strategy profit", strategyStyle.Render(signed(summary.StrategyProfit)))
	row(&b, "Buy & hold profit", benchmarkStyle.Render(signed(summary.BenchmarkProfit)))
	row(&b, "Winner", string(summary.Winner))
	row(&b, "Margin", fmt.Sprintf("%.2f", summary.Margin))
	b.WriteString("\n")

	result := summary.TradeResult
	row(&b, "Trades", fmt.Sprintf("%d", result.NumberOfTrades))
	row(&b, "Winning / losing", fmt.Sprintf("%d / %d", result.NumberOfWinningTrades, result.NumberOfLosingTrades))
	row(&b, "Win rate", fmt.Sprintf("%.1f%%", result.WinRate*100))
	row(&b, "Best / worst trade", fmt.Sprintf("%s / %s", signed(result.MaximumProfit), signed(result.MaximumLoss)))
	row(&b, "Total commission", fmt.Sprintf("%.2f", summary.TotalCommission))

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

func signed(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.2f", v)
	}

	return fmt.Sprintf("%.2f", v)
}
