package dto

import "clinic-directory/pkg/highlight"

// DirectoryRequest is a directory view query: committed filter values keyed by
// filter key name, plus free text that only applies while no filter is set.
type DirectoryRequest struct {
	Filters map[string]string
	Query   string
}

type CellResponse struct {
	Fragments [][]highlight.Segment `json:"fragments"`
	HTML      []string              `json:"html"`
}

type DirectoryRowResponse struct {
	Clinic ClinicResponse          `json:"clinic"`
	Cells  map[string]CellResponse `json:"cells"`
}

type DirectoryResponse struct {
	Summary     string                 `json:"summary"`
	SearchText  string                 `json:"search_text"`
	ActiveTerms []string               `json:"active_terms"`
	Filters     map[string]string      `json:"filters"`
	Rows        []DirectoryRowResponse `json:"rows"`
	Total       int                    `json:"total"`
}
