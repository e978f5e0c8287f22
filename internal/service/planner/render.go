package planner

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/desk-planner/internal/domain/desk"
	"github.com/oshokin/desk-planner/internal/layout"
)

// Column widths of the rendered row.
const (
	deskWidth   = 6
	nameWidth   = 24
	teamWidth   = 18
	statusWidth = 7
	scoreWidth  = 6
)

// Render prints one line per desk with the person's contribution, then the total or the violation.
func Render(w io.Writer, people []desk.Person, report *layout.Report) error {
	var (
		r       = lipgloss.NewRenderer(w)
		header  = r.NewStyle().Bold(true)
		cell    = r.NewStyle()
		right   = r.NewStyle().Align(lipgloss.Right)
		failure = r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		success = r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	)

	statusStyles := map[desk.DogStatus]lipgloss.Style{
		desk.DogStatusUnset: cell,
		desk.DogStatusHave:  r.NewStyle().Foreground(lipgloss.Color("3")),
		desk.DogStatusLike:  r.NewStyle().Foreground(lipgloss.Color("2")),
		desk.DogStatusAvoid: r.NewStyle().Foreground(lipgloss.Color("1")),
	}

	row := func(style lipgloss.Style, deskNo, name, team string, status lipgloss.Style, statusText, score string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			right.Inherit(style).Width(deskWidth).Render(deskNo+"  "),
			style.Width(nameWidth).MaxWidth(nameWidth).MaxHeight(1).Render(name),
			style.Width(teamWidth).MaxWidth(teamWidth).MaxHeight(1).Render(team),
			status.Inherit(style).Width(statusWidth).Render(statusText),
			right.Inherit(style).Width(scoreWidth).Render(score),
		)
	}

	lines := []string{row(header, "Desk", "Name", "Team", header, "Dogs", "Score")}

	for i := range people {
		p := &people[i]

		team := "-"
		if p.Team != nil {
			team = p.Team.Name
		}

		statusText := p.DogStatus.String()
		if statusText == "" {
			statusText = "-"
		}

		score := ""
		if i < len(report.Contributions) && report.Contributions[i] > 0 {
			score = strconv.Itoa(report.Contributions[i])
		}

		lines = append(lines, row(cell, strconv.Itoa(i), p.Name, team, statusStyles[p.DogStatus], statusText, score))
	}

	if report.Valid() {
		lines = append(lines, success.Render(fmt.Sprintf("Score: %d", report.Score)))
	} else {
		lines = append(lines, failure.Render("Violation: "+report.Violation.Error()))
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))

	return err
}
