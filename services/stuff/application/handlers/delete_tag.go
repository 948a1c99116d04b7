package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stuffkeeper/pkg/errhttp"
	"github.com/ghuser/stuffkeeper/pkg/httpx"
	appsvcs "github.com/ghuser/stuffkeeper/services/stuff/application/services"
)

// DeleteTagHandler handles DELETE /tags/{id} requests.
type DeleteTagHandler struct {
	svc *appsvcs.Services
}

// NewDeleteTagHandler returns a DeleteTagHandler backed by the given services.
func NewDeleteTagHandler(svc *appsvcs.Services) *DeleteTagHandler {
	return &DeleteTagHandler{svc: svc}
}

// Execute deletes a single tag.
//
//	@Summary		Delete tag
//	@Description	Deletes one tag
//	@Tags			tags
//	@Param			id	path	string	true	"Tag ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/tags/{id} [delete]
func (h *DeleteTagHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Stuff.DeleteTag(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
