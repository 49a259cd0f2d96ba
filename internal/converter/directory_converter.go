package converter

import (
	"clinic-directory/internal/delivery/dto"
	"clinic-directory/internal/directory"
	"clinic-directory/pkg/highlight"
)

// RowToResponse converts a highlighted directory row, keying cells by filter key name.
func RowToResponse(row *directory.Row) dto.DirectoryRowResponse {
	cells := make(map[string]dto.CellResponse, len(row.Cells))
	for _, cell := range row.Cells {
		markup := make([]string, len(cell.Fragments))
		for i, fragment := range cell.Fragments {
			markup[i] = highlight.MarkupSegments(fragment)
		}
		cells[cell.Key.String()] = dto.CellResponse{
			Fragments: cell.Fragments,
			HTML:      markup,
		}
	}

	return dto.DirectoryRowResponse{
		Clinic: *ClinicToResponse(&row.Clinic),
		Cells:  cells,
	}
}

// RowsToResponses converts a slice of rows
func RowsToResponses(rows []directory.Row) []dto.DirectoryRowResponse {
	responses := make([]dto.DirectoryRowResponse, len(rows))
	for i := range rows {
		responses[i] = RowToResponse(&rows[i])
	}
	return responses
}
