package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stuffkeeper/pkg/errhttp"
	"github.com/ghuser/stuffkeeper/pkg/httpx"
	appsvcs "github.com/ghuser/stuffkeeper/services/stuff/application/services"
)

// GetStuffHandler handles GET /items/{id} requests.
type GetStuffHandler struct {
	svc *appsvcs.Services
}

// NewGetStuffHandler returns a GetStuffHandler backed by the given services.
func NewGetStuffHandler(svc *appsvcs.Services) *GetStuffHandler {
	return &GetStuffHandler{svc: svc}
}

// Execute retrieves one stuff with its tags.
//
//	@Summary		Get stuff
//	@Description	Retrieves one inventory item with its tags
//	@Tags			items
//	@Produce		json
//	@Param			id	path		string	true	"Stuff ID"
//	@Success		200	{object}	StuffResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{id} [get]
func (h *GetStuffHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	stuff, err := h.svc.Stuff.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toStuffResponse(stuff))
}
