package entity

// ClinicFilter is a domain-level filter for querying clinics.
// Used by repository layer to avoid coupling with delivery DTOs.
type ClinicFilter struct {
	ClinicCode string   // ILIKE
	Name       string   // ILIKE
	DoctorName string   // ILIKE
	Address    string   // ILIKE
	Phone      string   // ILIKE
	Services   []string // each must appear in the service list (ILIKE)
}

// IsEmpty reports whether no criterion is set.
func (f *ClinicFilter) IsEmpty() bool {
	return f == nil || (f.ClinicCode == "" && f.Name == "" && f.DoctorName == "" &&
		f.Address == "" && f.Phone == "" && len(f.Services) == 0)
}
