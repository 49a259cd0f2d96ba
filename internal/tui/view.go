package tui

import (
	"fmt"
	"strings"

	"clinic-directory/internal/directory"
	"clinic-directory/pkg/highlight"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	emptyCollectionText = "No clinics yet. Add your first clinic to get started."
	noMatchText         = "No clinics match the current search."
	missingValue        = "-"
	helpText            = "1-6 filter · / search · ctrl+r reload · ctrl+l clear all · q quit"
	pillHelpText        = "type to edit · enter apply · ctrl+x clear · esc close"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Clinic Directory"))
	b.WriteString("\n")
	b.WriteString(m.renderPills())
	b.WriteString("\n")
	b.WriteString(m.renderSearch())
	b.WriteString("\n")

	if err := m.session.Banner(); err != nil {
		b.WriteString(m.styles.Banner.Render("Error: " + err.Error()))
		b.WriteString("\n")
	}
	if m.loading {
		b.WriteString(m.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	}

	b.WriteString(m.renderTable())
	b.WriteString("\n")

	if _, open := m.session.OpenKey(); open {
		b.WriteString(m.styles.Muted.Render(pillHelpText))
	} else {
		b.WriteString(m.styles.Muted.Render(helpText))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderPills() string {
	pills := make([]string, 0, len(m.session.Pills()))
	for i, p := range m.session.Pills() {
		label := fmt.Sprintf("%d %s", i+1, p.Label())
		switch {
		case p.IsOpen():
			pills = append(pills, m.styles.PillOpen.Render(label+": "+p.Draft()+"▏"))
		case p.Active():
			pills = append(pills, m.styles.PillActive.Render(label+": "+p.Value()))
		default:
			pills = append(pills, m.styles.Pill.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pills...)
}

func (m *Model) renderSearch() string {
	text := m.session.SearchText()
	style := m.styles.Search
	if m.focus == focusSearch {
		style = m.styles.SearchFocus
		text += "▏"
	} else if text == "" {
		text = m.styles.Muted.Render("Search clinics...")
	}
	return style.Render("Search: " + text)
}

func (m *Model) renderTable() string {
	if len(m.session.Clinics()) == 0 {
		if m.loading {
			return ""
		}
		return m.styles.Muted.Render(emptyCollectionText)
	}

	rows := m.session.Rows()
	if len(rows) == 0 {
		return m.styles.Muted.Render(noMatchText)
	}

	keys := directory.Keys()
	headers := make([]string, len(keys))
	for i, k := range keys {
		headers[i] = k.Label()
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(keys))
		for i, cell := range row.Cells {
			cells[r][i] = m.renderCell(cell)
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(m.styles.Muted).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return m.styles.Header.PaddingRight(2)
			}
			return m.styles.Cell
		}).
		String()
}

// renderCell joins the fragments of a cell with ", ". A field without text is "-".
func (m *Model) renderCell(cell directory.Cell) string {
	parts := make([]string, 0, len(cell.Fragments))
	for _, fragment := range cell.Fragments {
		if len(fragment) == 0 {
			continue
		}
		parts = append(parts, m.renderSegments(fragment))
	}
	if len(parts) == 0 {
		return missingValue
	}
	return strings.Join(parts, ", ")
}

func (m *Model) renderSegments(segments []highlight.Segment) string {
	return highlight.Render(segments, func(seg highlight.Segment) string {
		if seg.Depth > 1 {
			return m.styles.MatchNested.Render(seg.Text)
		}
		return m.styles.Match.Render(seg.Text)
	})
}
