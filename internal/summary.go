package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vadiminshakov/fuzzgraph/internal/domain"
)

var (
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	subtle    = lipgloss.AdaptiveColor{Light: "#9C9C9C", Dark: "#6C6C6C"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(0, 2).
			Bold(true)

	labelStyle = lipgloss.NewStyle().Foreground(subtle).Width(16)
	valueStyle = lipgloss.NewStyle().Bold(true)
)

func renderSummary(path, url string, snapshots []domain.BalanceSnapshot, data domain.ChartData) string {
	rows := [][2]string{
		{"source", path},
		{"rounds", fmt.Sprint(len(snapshots))},
		{"addresses", fmt.Sprint(len(data.Addresses))},
		{"reward events", fmt.Sprint(data.Rewards.Len())},
		{"layers", strings.Join(layerNames(data), ", ")},
		{"chart", url},
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("FUZZGRAPH"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row[0]))
		b.WriteString(valueStyle.Render(row[1]))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func layerNames(data domain.ChartData) []string {
	var names []string
	seenAddresses := false
	for _, s := range data.Ordered() {
		switch {
		case s.Role == domain.RoleAddress:
			if !seenAddresses {
				names = append(names, fmt.Sprintf("%d address lines", len(data.Addresses)))
				seenAddresses = true
			}
		case s.Role == domain.RoleReward && s.Len() == 0:
		default:
			names = append(names, s.Name)
		}
	}
	return names
}
