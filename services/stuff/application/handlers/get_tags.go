package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stuffkeeper/pkg/errhttp"
	"github.com/ghuser/stuffkeeper/pkg/httpx"
	appsvcs "github.com/ghuser/stuffkeeper/services/stuff/application/services"
)

// GetTagsHandler handles GET /items/{id}/tags requests.
type GetTagsHandler struct {
	svc *appsvcs.Services
}

// NewGetTagsHandler returns a GetTagsHandler backed by the given services.
func NewGetTagsHandler(svc *appsvcs.Services) *GetTagsHandler {
	return &GetTagsHandler{svc: svc}
}

// Execute lists the tags owned by one stuff.
//
//	@Summary		List tags
//	@Description	Lists the tags owned by one inventory item, in insertion order
//	@Tags			tags
//	@Produce		json
//	@Param			id	path		string	true	"Stuff ID"
//	@Success		200	{array}		TagResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{id}/tags [get]
func (h *GetTagsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	tags, err := h.svc.Stuff.ListTags(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]TagResponse, 0, len(tags))
	for i := range tags {
		resp = append(resp, toTagResponse(&tags[i]))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
