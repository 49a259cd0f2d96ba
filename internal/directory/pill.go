package directory

// Pill is the toggle-and-dropdown control of one filter key. It only owns its
// draft; whether it is open is decided by the Session, which keeps at most one
// pill open at a time.
type Pill struct {
	key       FilterKey
	open      bool
	draft     string
	committed string
}

func newPill(key FilterKey) *Pill {
	return &Pill{key: key.mustValid()}
}

// Key returns the filter key the pill controls.
func (p *Pill) Key() FilterKey {
	return p.key
}

// Label is the text on the pill's toggle button.
func (p *Pill) Label() string {
	return p.key.Label()
}

// IsOpen reports whether the dropdown is expanded.
func (p *Pill) IsOpen() bool {
	return p.open
}

// Draft is the uncommitted value being edited. It is "" while the pill is closed.
func (p *Pill) Draft() string {
	return p.draft
}

// Value is the committed filter value.
func (p *Pill) Value() string {
	return p.committed
}

// Active reports whether the pill's filter is applied, whether or not it is open.
func (p *Pill) Active() bool {
	return p.committed != ""
}

// openWith expands the pill with its draft reset to the committed value.
func (p *Pill) openWith(committed string) {
	p.open = true
	p.committed = committed
	p.draft = committed
}

// close collapses the pill and discards the draft.
func (p *Pill) close() {
	p.open = false
	p.draft = ""
}

// setDraft replaces the draft. Edits to a closed pill are ignored.
func (p *Pill) setDraft(text string) {
	if p.open {
		p.draft = text
	}
}

// observe records the committed value. When it changed while open, the draft is
// resynchronized so a stale edit never survives.
func (p *Pill) observe(committed string) {
	if committed == p.committed {
		return
	}
	p.committed = committed
	if p.open {
		p.draft = committed
	}
}
