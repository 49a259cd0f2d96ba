package directory

import (
	"strings"

	"clinic-directory/internal/domain/entity"
	"clinic-directory/pkg/highlight"
	"clinic-directory/pkg/textmatch"
)

// FieldValues returns the display values of a clinic for key: one value for
// scalar fields, one per service label for services.
func FieldValues(c *entity.Clinic, key FilterKey) []string {
	switch key.mustValid() {
	case KeyClinicID:
		return []string{c.ClinicCode}
	case KeyClinicName:
		return []string{c.Name}
	case KeyDoctorName:
		return []string{c.DoctorName}
	case KeyAddress:
		return []string{c.Address}
	case KeyPhone:
		return []string{c.Phone}
	default:
		return c.ServiceLabels()
	}
}

// FieldText is the single string a filter on key is matched against. Services
// are joined with a space.
func FieldText(c *entity.Clinic, key FilterKey) string {
	return strings.Join(FieldValues(c, key), " ")
}

// Project returns the clinics that satisfy every active filter. A clinic passes a
// filter when the field contains the value, ignoring case. The input slice is not
// modified; the result is always a new slice.
func Project(clinics []entity.Clinic, filters FilterSet) []entity.Clinic {
	active := filters.Active()
	visible := make([]entity.Clinic, 0, len(clinics))
	for i := range clinics {
		if matchesAll(&clinics[i], filters, active) {
			visible = append(visible, clinics[i])
		}
	}
	return visible
}

func matchesAll(c *entity.Clinic, filters FilterSet, active []FilterKey) bool {
	for _, k := range active {
		if !textmatch.Matches(FieldText(c, k), filters.Get(k)) {
			return false
		}
	}
	return true
}

// freeTextKeys are the fields free text is searched across.
var freeTextKeys = []FilterKey{KeyClinicName, KeyPhone, KeyClinicID, KeyDoctorName, KeyAddress}

// SearchFreeText returns the clinics where any of name, phone, clinic ID, doctor
// or address contains term. An empty term returns every clinic.
func SearchFreeText(clinics []entity.Clinic, term string) []entity.Clinic {
	term = strings.TrimSpace(term)
	visible := make([]entity.Clinic, 0, len(clinics))
	for i := range clinics {
		if term == "" || matchesAny(&clinics[i], term) {
			visible = append(visible, clinics[i])
		}
	}
	return visible
}

func matchesAny(c *entity.Clinic, term string) bool {
	for _, k := range freeTextKeys {
		if textmatch.Matches(FieldText(c, k), term) {
			return true
		}
	}
	return false
}

// ServerFilter returns the data source query that narrows the collection for
// filters. Only the scalar fields are sent. The source matches each service
// label on its own while Project matches the joined labels, so services stay
// local; callers still run Project over the narrowed result.
func ServerFilter(filters FilterSet) entity.ClinicFilter {
	return entity.ClinicFilter{
		ClinicCode: filters.Get(KeyClinicID),
		Name:       filters.Get(KeyClinicName),
		DoctorName: filters.Get(KeyDoctorName),
		Address:    filters.Get(KeyAddress),
		Phone:      filters.Get(KeyPhone),
	}
}

// Cell is one rendered table cell. Scalar fields have one fragment, services one
// per service label. An empty fragment means the field is missing.
type Cell struct {
	Key       FilterKey             `json:"-"`
	Fragments [][]highlight.Segment `json:"fragments"`
}

// Row is a visible clinic with every cell highlighted.
type Row struct {
	Clinic entity.Clinic
	Cells  []Cell
}

// BuildRows highlights every cell of every clinic with terms.
func BuildRows(clinics []entity.Clinic, terms []string) []Row {
	rows := make([]Row, len(clinics))
	for i := range clinics {
		cells := make([]Cell, numKeys)
		for _, k := range Keys() {
			values := FieldValues(&clinics[i], k)
			fragments := make([][]highlight.Segment, len(values))
			for j, v := range values {
				fragments[j] = highlight.Highlight(v, terms)
			}
			cells[k] = Cell{Key: k, Fragments: fragments}
		}
		rows[i] = Row{Clinic: clinics[i], Cells: cells}
	}
	return rows
}
