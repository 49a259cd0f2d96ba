package directory

import (
	"context"
	"errors"

	"clinic-directory/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoOpenPill    = errors.New("no filter pill is open")
	ErrNoSearchTerm  = errors.New("search term is empty")
	ErrNoClinicAdded = errors.New("data source returned no clinic")
)

// ClinicSource is the data source the directory reads from.
//
// Implementations must not deliver results of a request that has been
// superseded by a newer one; the session applies whatever arrives last.
type ClinicSource interface {
	FetchClinics(ctx context.Context, filter entity.ClinicFilter) ([]entity.Clinic, error)
	SearchClinics(ctx context.Context, term string) ([]entity.Clinic, error)
	AddClinic(ctx context.Context, clinic *entity.Clinic) (*entity.Clinic, error)
}

// Session is the state of one directory view: the loaded clinics, the filter
// store, the pills and the error banner. It is not safe for concurrent use; all
// calls are expected to come from one event loop.
type Session struct {
	source ClinicSource
	log    logrus.FieldLogger

	store   *Store
	pills   []*Pill
	openKey FilterKey
	hasOpen bool

	clinics []entity.Clinic
	visible []entity.Clinic
	banner  error
}

// NewSession creates an empty session with every filter inactive.
func NewSession(source ClinicSource, log logrus.FieldLogger) *Session {
	s := &Session{
		source:  source,
		log:     log,
		store:   NewStore(),
		pills:   make([]*Pill, numKeys),
		clinics: []entity.Clinic{},
		visible: []entity.Clinic{},
	}
	for _, k := range Keys() {
		s.pills[k] = newPill(k)
	}
	return s
}

// Load fetches the unfiltered collection. On failure the previous collection is
// kept and the error is shown in the banner.
func (s *Session) Load(ctx context.Context) error {
	s.BeginFetch()
	clinics, err := s.source.FetchClinics(ctx, entity.ClinicFilter{})
	if err != nil {
		s.Fail(err)
		return err
	}
	s.Receive(clinics)
	return nil
}

// LoadMatching fetches the collection narrowed at the data source by the
// committed filters, then projects it locally like Load.
func (s *Session) LoadMatching(ctx context.Context) error {
	s.BeginFetch()
	clinics, err := s.source.FetchClinics(ctx, ServerFilter(s.store.Filters()))
	if err != nil {
		s.Fail(err)
		return err
	}
	s.Receive(clinics)
	return nil
}

// SubmitSearch runs a server-side search for the free text and replaces the
// collection with the result. While filters are active the search box shows
// their summary, which is not free text: ErrNoSearchTerm is returned and the
// collection is left alone.
func (s *Session) SubmitSearch(ctx context.Context) error {
	term := s.FreeText()
	if term == "" {
		return ErrNoSearchTerm
	}

	s.BeginFetch()
	clinics, err := s.source.SearchClinics(ctx, term)
	if err != nil {
		s.Fail(err)
		return err
	}
	s.Receive(clinics)
	return nil
}

// AddClinic registers a clinic with the data source and appends the stored
// record to the collection.
func (s *Session) AddClinic(ctx context.Context, clinic *entity.Clinic) (*entity.Clinic, error) {
	created, err := s.source.AddClinic(ctx, clinic)
	if err != nil {
		s.log.Warnf("Failed to add clinic: %+v", err)
		return nil, err
	}
	if created == nil {
		return nil, ErrNoClinicAdded
	}

	clinics := make([]entity.Clinic, 0, len(s.clinics)+1)
	clinics = append(clinics, s.clinics...)
	s.Receive(append(clinics, *created))
	return created, nil
}

// BeginFetch marks the start of a retry; the error banner is dismissed.
func (s *Session) BeginFetch() {
	s.banner = nil
}

// Receive replaces the collection and re-projects it against the current filters.
func (s *Session) Receive(clinics []entity.Clinic) {
	if clinics == nil {
		clinics = []entity.Clinic{}
	}
	s.clinics = clinics
	s.refresh()
}

// Fail records a data error. The collection and the visible rows are left as they were.
func (s *Session) Fail(err error) {
	s.log.Warnf("Failed to load clinics: %+v", err)
	s.banner = err
}

// Banner is the last data error, or nil.
func (s *Session) Banner() error {
	return s.banner
}

// Clinics returns the loaded collection.
func (s *Session) Clinics() []entity.Clinic {
	return s.clinics
}

// Visible returns the clinics currently shown.
func (s *Session) Visible() []entity.Clinic {
	return s.visible
}

// Rows returns the visible clinics with every cell highlighted.
func (s *Session) Rows() []Row {
	return BuildRows(s.visible, s.store.ActiveTerms())
}

// Filters returns the committed filters.
func (s *Session) Filters() FilterSet {
	return s.store.Filters()
}

// Summary is the search summary of the committed filters.
func (s *Session) Summary() string {
	return s.store.Summary()
}

// SearchText is the content of the search box.
func (s *Session) SearchText() string {
	return s.store.SearchText()
}

// FreeText is the trimmed search text, or "" while any filter is active.
func (s *Session) FreeText() string {
	return s.store.FreeText()
}

// ActiveTerms are the current highlight terms.
func (s *Session) ActiveTerms() []string {
	return s.store.ActiveTerms()
}

// SetSearchText records free text typed into the search box.
func (s *Session) SetSearchText(text string) {
	s.store.SetSearchText(text)
	s.refresh()
}

// SetFilter commits value for key.
func (s *Session) SetFilter(key FilterKey, value string) {
	s.store.SetFilter(key, value)
	s.refresh()
}

// ClearFilter makes key inactive.
func (s *Session) ClearFilter(key FilterKey) {
	s.store.ClearFilter(key)
	s.refresh()
}

// Reset clears every filter and the search text and closes any open pill.
func (s *Session) Reset() {
	s.ClosePill()
	s.store.ClearAll()
	s.refresh()
}

// ClearAll resets the view and reloads the unfiltered collection.
func (s *Session) ClearAll(ctx context.Context) error {
	s.Reset()
	return s.Load(ctx)
}

// Pills returns the pills in declaration order.
func (s *Session) Pills() []*Pill {
	return s.pills
}

// Pill returns the pill for key.
func (s *Session) Pill(key FilterKey) *Pill {
	return s.pills[key.mustValid()]
}

// OpenKey returns the key of the open pill, if any.
func (s *Session) OpenKey() (FilterKey, bool) {
	return s.openKey, s.hasOpen
}

// OpenPill expands the pill for key, closing any other open pill and discarding its draft.
func (s *Session) OpenPill(key FilterKey) {
	s.ClosePill()
	s.pills[key.mustValid()].openWith(s.store.Value(key))
	s.openKey, s.hasOpen = key, true
}

// TogglePill opens the pill for key, or closes it when it is the open one.
func (s *Session) TogglePill(key FilterKey) {
	if open, ok := s.OpenKey(); ok && open == key {
		s.ClosePill()
		return
	}
	s.OpenPill(key)
}

// ClosePill collapses the open pill without applying its draft.
func (s *Session) ClosePill() {
	if !s.hasOpen {
		return
	}
	s.pills[s.openKey].close()
	s.hasOpen = false
}

// SetDraft replaces the draft of the open pill.
func (s *Session) SetDraft(text string) error {
	if !s.hasOpen {
		return ErrNoOpenPill
	}
	s.pills[s.openKey].setDraft(text)
	return nil
}

// ApplyPill commits the open pill's trimmed draft and closes it.
func (s *Session) ApplyPill() error {
	if !s.hasOpen {
		return ErrNoOpenPill
	}
	key := s.openKey
	draft := s.pills[key].Draft()
	s.ClosePill()
	s.SetFilter(key, draft)
	return nil
}

// ClearPill clears the open pill's filter and closes it.
func (s *Session) ClearPill() error {
	if !s.hasOpen {
		return ErrNoOpenPill
	}
	key := s.openKey
	s.ClosePill()
	s.ClearFilter(key)
	return nil
}

func (s *Session) refresh() {
	filters := s.store.Filters()
	for _, p := range s.pills {
		p.observe(filters.Get(p.key))
	}

	if filters.IsEmpty() {
		s.visible = SearchFreeText(s.clinics, s.store.FreeText())
		return
	}
	s.visible = Project(s.clinics, filters)
}
