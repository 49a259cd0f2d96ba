// Package tui is the interactive terminal browser of the clinic directory.
// It drives a directory.Session from bubbletea key messages; every fetch runs
// as a tea.Cmd whose result comes back as a message on the event loop.
package tui

import (
	"context"

	"clinic-directory/internal/directory"
	"clinic-directory/internal/domain/entity"

	tea "github.com/charmbracelet/bubbletea"
)

type focus int

const (
	focusTable focus = iota
	focusSearch
)

// clinicsMsg carries the result of fetch number seq.
type clinicsMsg struct {
	seq     int
	clinics []entity.Clinic
	err     error
}

type Model struct {
	ctx     context.Context
	source  directory.ClinicSource
	session *directory.Session
	styles  Styles

	focus   focus
	seq     int
	loading bool
}

func NewModel(ctx context.Context, source directory.ClinicSource, session *directory.Session) *Model {
	return &Model{
		ctx:     ctx,
		source:  source,
		session: session,
		styles:  DefaultStyles(),
	}
}

// Session exposes the directory state driven by the model.
func (m *Model) Session() *directory.Session {
	return m.session
}

func (m *Model) Init() tea.Cmd {
	return m.reload()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clinicsMsg:
		// Results of superseded fetches are dropped
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.session.Fail(msg.err)
			return m, nil
		}
		m.session.Receive(msg.clinics)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyCtrlR:
		return m, m.reload()
	case tea.KeyCtrlL:
		m.focus = focusTable
		m.session.Reset()
		return m, m.reload()
	}
	if _, open := m.session.OpenKey(); open {
		return m, m.handlePillKey(msg)
	}
	if m.focus == focusSearch {
		return m, m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.focus = focusSearch
	case "1", "2", "3", "4", "5", "6":
		m.session.TogglePill(directory.FilterKey(msg.Runes[0] - '1'))
	}
	return m, nil
}

// handlePillKey edits the open pill. Every printable key types into the draft.
func (m *Model) handlePillKey(msg tea.KeyMsg) tea.Cmd {
	key, _ := m.session.OpenKey()
	switch msg.Type {
	case tea.KeyEnter:
		_ = m.session.ApplyPill()
	case tea.KeyCtrlX:
		_ = m.session.ClearPill()
	case tea.KeyEsc:
		m.session.ClosePill()
	case tea.KeyBackspace:
		_ = m.session.SetDraft(dropLastRune(m.session.Pill(key).Draft()))
	case tea.KeySpace:
		_ = m.session.SetDraft(m.session.Pill(key).Draft() + " ")
	case tea.KeyRunes:
		_ = m.session.SetDraft(m.session.Pill(key).Draft() + string(msg.Runes))
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.focus = focusTable
		return m.search()
	case tea.KeyEsc:
		m.focus = focusTable
	case tea.KeyBackspace:
		m.session.SetSearchText(dropLastRune(m.session.SearchText()))
	case tea.KeySpace:
		m.session.SetSearchText(m.session.SearchText() + " ")
	case tea.KeyRunes:
		m.session.SetSearchText(m.session.SearchText() + string(msg.Runes))
	}
	return nil
}

// reload fetches the unfiltered collection; filters are projected locally.
func (m *Model) reload() tea.Cmd {
	seq := m.beginFetch()
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		clinics, err := source.FetchClinics(ctx, entity.ClinicFilter{})
		return clinicsMsg{seq: seq, clinics: clinics, err: err}
	}
}

// search submits the free text to the data source. An empty box, or one
// showing the filter summary, reloads instead.
func (m *Model) search() tea.Cmd {
	term := m.session.FreeText()
	if term == "" {
		return m.reload()
	}

	seq := m.beginFetch()
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		clinics, err := source.SearchClinics(ctx, term)
		return clinicsMsg{seq: seq, clinics: clinics, err: err}
	}
}

func (m *Model) beginFetch() int {
	m.session.BeginFetch()
	m.seq++
	m.loading = true
	return m.seq
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
