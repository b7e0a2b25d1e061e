package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/services"
	"github.com/ImmortalDemonGod/prime-directive/internal/theme"
)

const cellWidth = 48

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.TableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeaderStyle
			}
			return theme.TableCellStyle
		})
}

// ReposTable lists the registry
func ReposTable(repos []domain.Repository) string {
	t := newTable("ID", "PRIORITY", "BRANCH", "PATH")
	for _, r := range repos {
		t.Row(r.ID, strconv.Itoa(r.Priority), orDash(r.ActiveBranch), r.Path)
	}
	return t.String()
}

// StatusTable renders `pd status`
func StatusTable(rows []services.RepoStatus) string {
	t := newTable("ID", "PRIORITY", "BRANCH", "GIT", "SESSION", "LAST SNAPSHOT")
	for _, r := range rows {
		gitState := theme.CleanStyle.Render("clean")
		if r.Git.Value.Dirty {
			gitState = theme.DirtyStyle.Render(fmt.Sprintf("dirty (%d)", len(r.Git.Value.Files)))
		}
		if r.Git.Degraded {
			gitState = theme.WarningStyle.Render(r.Git.Value.Branch)
		}

		session := theme.MutedStyle.Render("-")
		if r.SessionActive {
			session = theme.OKStyle.Render("active")
		}

		last := "never"
		if r.LastSnapshot != nil {
			last = r.LastSnapshot.Timestamp.Local().Format("2006-01-02 15:04")
		}

		t.Row(r.Repository.ID, strconv.Itoa(r.Repository.Priority), r.Git.Value.Branch, gitState, session, last)
	}
	return t.String()
}

// HistoryTable renders snapshots newest first
func HistoryTable(snaps []domain.ContextSnapshot) string {
	t := newTable("ID", "FROZEN", "NOTE", "SUMMARY")
	for _, s := range snaps {
		note := s.Human.Note
		if note == "" {
			note = s.Human.Objective
		}
		t.Row(
			strconv.FormatInt(s.ID, 10),
			s.Timestamp.Local().Format("2006-01-02 15:04"),
			orDash(Truncate(note, cellWidth/2)),
			orDash(Truncate(s.AISummary, cellWidth)),
		)
	}
	return t.String()
}

// LatencyTable renders the time-to-first-commit KPI
func LatencyTable(rows []domain.LatencySummary) string {
	t := newTable("REPO", "SWITCHES", "MEAN", "MEDIAN", "MAX")
	for _, r := range rows {
		t.Row(r.RepositoryID, strconv.Itoa(r.Count), duration(r.Mean), duration(r.Median), duration(r.Max))
	}
	return t.String()
}

// UsageTable renders month-to-date AI usage and the budget line
func UsageTable(report services.UsageReport) string {
	t := newTable("PROVIDER", "CALLS", "FAILURES", "TOKENS", "COST")
	for _, p := range report.Providers {
		t.Row(p.Provider, strconv.Itoa(p.Calls), strconv.Itoa(p.Failures), strconv.Itoa(p.Tokens), fmt.Sprintf("$%.4f", p.CostUSD))
	}
	budget := fmt.Sprintf("Since %s: $%.2f of $%.2f spent, $%.2f remaining",
		report.Since.Format("2006-01-02"), report.SpentUSD, report.BudgetUSD, report.RemainingUSD)
	return t.String() + "\n" + theme.LabelStyle.Render(budget)
}

// DoctorTable renders doctor checks
func DoctorTable(checks []services.DoctorCheck) string {
	t := newTable("", "CHECK", "DETAIL")
	for _, c := range checks {
		var icon string
		switch c.Status {
		case services.CheckOK:
			icon = theme.OKStyle.Render("✓")
		case services.CheckWarn:
			icon = theme.WarningStyle.Render("!")
		default:
			icon = theme.FailedStyle.Render("✗")
		}
		t.Row(icon, c.Name, c.Detail)
	}
	return t.String()
}

// Truncate shortens the first line of s to at most n runes
func Truncate(s string, n int) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func duration(d time.Duration) string {
	return d.Round(time.Second).String()
}
