package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stuffkeeper/pkg/errhttp"
	"github.com/ghuser/stuffkeeper/pkg/httpx"
	pkgvalidator "github.com/ghuser/stuffkeeper/pkg/validator"
	appsvcs "github.com/ghuser/stuffkeeper/services/stuff/application/services"
)

// UpdateTagRequest is the request body for PUT /tags/{id}. Omitted fields
// keep their current values; ownership is never changeable.
type UpdateTagRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=200"`
	ColorCode   *string `json:"color_code,omitempty"  validate:"omitempty,max=7"`
} // @name UpdateTagRequest

// PutTagHandler handles PUT and PATCH /tags/{id} requests.
type PutTagHandler struct {
	svc *appsvcs.Services
}

// NewPutTagHandler returns a PutTagHandler backed by the given services.
func NewPutTagHandler(svc *appsvcs.Services) *PutTagHandler {
	return &PutTagHandler{svc: svc}
}

// Execute updates a single tag.
//
//	@Summary		Update tag
//	@Description	Updates a tag's name, description, or color
//	@Tags			tags
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Tag ID"
//	@Param			request	body		UpdateTagRequest	true	"Tag update request"
//	@Success		200		{object}	TagResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	map[string][]string
//	@Router			/tags/{id} [put]
func (h *PutTagHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateTagRequest](w, r)
	if !ok {
		return
	}

	tag, err := h.svc.Stuff.UpdateTag(r.Context(), id, appsvcs.TagPatch{
		Name:        req.Name,
		Description: req.Description,
		ColorCode:   req.ColorCode,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTagResponse(tag))
}
