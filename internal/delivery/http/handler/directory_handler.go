package handler

import (
	"errors"
	"net/http"

	"clinic-directory/internal/delivery/dto"
	"clinic-directory/internal/directory"
	"clinic-directory/internal/usecase"
	"clinic-directory/pkg/response"
)

// queryParam is the free text parameter; every other parameter names a filter key.
const queryParam = "q"

type DirectoryHandler struct {
	directoryUsecase usecase.DirectoryUsecase
}

func NewDirectoryHandler(directoryUsecase usecase.DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{
		directoryUsecase: directoryUsecase,
	}
}

func (h *DirectoryHandler) GetDirectory(w http.ResponseWriter, r *http.Request) {
	req := &dto.DirectoryRequest{Filters: map[string]string{}}
	for name, values := range r.URL.Query() {
		if name == queryParam {
			req.Query = values[0]
			continue
		}
		req.Filters[name] = values[0]
	}

	view, err := h.directoryUsecase.View(r.Context(), req)
	if err != nil {
		if errors.Is(err, directory.ErrUnknownFilterKey) {
			response.Error(w, http.StatusBadRequest, "Unknown filter", err.Error())
			return
		}
		response.InternalServerError(w, "Failed to load directory")
		return
	}

	response.Success(w, http.StatusOK, "Directory retrieved successfully", view)
}
