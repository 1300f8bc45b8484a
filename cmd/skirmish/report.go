package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gonewx/lostkingdom/pkg/battle"
	"github.com/gonewx/lostkingdom/pkg/inventory"
	"github.com/gonewx/lostkingdom/pkg/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	victoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22C55E")).
			Bold(true)

	defeatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			Padding(0, 1)

	logStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))
)

// renderReport 生成终端彩色报告：阵容网格、每场结果和汇总
func renderReport(s *setup, results []result, withLog bool) string {
	left := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("阵容"),
		rosterLines(s),
		"",
		gridPicture(s.roster.Grid()),
	))

	rows := make([]string, 0, len(results)+1)
	rows = append(rows, titleStyle.Render("战斗结果"))
	for _, r := range results {
		style := defeatStyle
		if r.Outcome.Result == types.ResultVictory {
			style = victoryStyle
		}
		line := fmt.Sprintf("seed %-6d %s  %4d ticks  +%d", r.Seed,
			style.Render(fmt.Sprintf("%-7s", r.Outcome.Result)), r.Outcome.Ticks, r.Outcome.Reward)
		if r.Outcome.Reason == battle.ReasonTimeout {
			line += dimStyle.Render("  (超时)")
		}
		rows = append(rows, line)
	}
	right := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	sum := summarize(results)
	footer := fmt.Sprintf("胜率 %.0f%% (%d/%d)  超时 %d  平均 %.1f ticks  金币 +%d",
		sum.WinRate()*100, sum.Victories, sum.Runs, sum.Timeouts, sum.AvgTicks, sum.Gold)

	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		titleStyle.Render("汇总") + "  " + footer,
	}
	if withLog && len(results) > 0 {
		parts = append(parts,
			dimStyle.Render(fmt.Sprintf("seed %d 的战斗日志", results[0].Seed)),
			logStyle.Render(strings.Join(results[0].Log, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// plainReport 不带样式的报告，用于复制到剪贴板
func plainReport(s *setup, results []result) string {
	var b strings.Builder
	b.WriteString("阵容:\n")
	b.WriteString(rosterLines(s))
	b.WriteString("\n\n")
	b.WriteString(gridPicture(s.roster.Grid()))
	b.WriteString("\n\n")
	for _, r := range results {
		fmt.Fprintf(&b, "seed %d: %s, %d ticks, +%d", r.Seed, r.Outcome.Result, r.Outcome.Ticks, r.Outcome.Reward)
		if r.Outcome.Reason != "" {
			fmt.Fprintf(&b, " (%s)", r.Outcome.Reason)
		}
		b.WriteByte('\n')
	}
	sum := summarize(results)
	fmt.Fprintf(&b, "胜率 %d/%d, 金币 +%d\n", sum.Victories, sum.Runs, sum.Gold)
	return b.String()
}

// rosterLines 每张卡牌一行：显示名、类别和费用
func rosterLines(s *setup) string {
	names := s.catalog.DisplayNames()
	lines := make([]string, 0, s.roster.Len()+1)
	for _, p := range s.roster.Pieces() {
		name, ok := names[p.ID]
		if !ok {
			name = p.ID
		}
		lines = append(lines, fmt.Sprintf("%-6s %-8s %d", name, p.Category, p.Cost))
	}
	lines = append(lines, fmt.Sprintf("费用 %d/%d", s.roster.TotalCost(), s.roster.Limits().Budget))
	return strings.Join(lines, "\n")
}

// gridPicture 用卡牌 ID 首字母画出网格占用，空格子为 "."
func gridPicture(g *inventory.ShapeGrid) string {
	var b strings.Builder
	for row := 0; row < inventory.GridSize; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < inventory.GridSize; col++ {
			mark := byte('.')
			if pp := g.PieceAt(row, col); pp != nil && pp.Piece.ID != "" {
				mark = pp.Piece.ID[0]
			}
			b.WriteByte(mark)
			if col < inventory.GridSize-1 {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}
