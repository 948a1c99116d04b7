package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stuffkeeper/pkg/errhttp"
	"github.com/ghuser/stuffkeeper/pkg/httpx"
	appsvcs "github.com/ghuser/stuffkeeper/services/stuff/application/services"
)

// DeleteStuffHandler handles DELETE /items/{id} requests.
type DeleteStuffHandler struct {
	svc *appsvcs.Services
}

// NewDeleteStuffHandler returns a DeleteStuffHandler backed by the given services.
func NewDeleteStuffHandler(svc *appsvcs.Services) *DeleteStuffHandler {
	return &DeleteStuffHandler{svc: svc}
}

// Execute deletes a stuff and every tag it owns.
//
//	@Summary		Delete stuff
//	@Description	Deletes an inventory item, cascading to its tags
//	@Tags			items
//	@Param			id	path	string	true	"Stuff ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{id} [delete]
func (h *DeleteStuffHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Stuff.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
