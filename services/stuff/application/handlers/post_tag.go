package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stuffkeeper/pkg/errhttp"
	"github.com/ghuser/stuffkeeper/pkg/httpx"
	pkgvalidator "github.com/ghuser/stuffkeeper/pkg/validator"
	appsvcs "github.com/ghuser/stuffkeeper/services/stuff/application/services"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/models"
)

// CreateTagRequest is the request body for POST /items/{id}/tags.
// Ownership comes from the path; a tag cannot be created without an owner.
type CreateTagRequest struct {
	Name        string `json:"name"        validate:"max=50"  example:"frozen"`
	Description string `json:"description" validate:"max=200"`
	ColorCode   string `json:"color_code"  validate:"max=7"   example:"#00FF00"`
} // @name CreateTagRequest

// PostTagHandler handles POST /items/{id}/tags requests.
type PostTagHandler struct {
	svc *appsvcs.Services
}

// NewPostTagHandler returns a PostTagHandler backed by the given services.
func NewPostTagHandler(svc *appsvcs.Services) *PostTagHandler {
	return &PostTagHandler{svc: svc}
}

// Execute creates a tag owned by the stuff in the path.
//
//	@Summary		Create tag
//	@Description	Creates a tag attached to one inventory item
//	@Tags			tags
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Stuff ID"
//	@Param			request	body		CreateTagRequest	true	"Tag creation request"
//	@Success		201		{object}	TagResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	map[string][]string
//	@Router			/items/{id}/tags [post]
func (h *PostTagHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateTagRequest](w, r)
	if !ok {
		return
	}

	tag, err := h.svc.Stuff.CreateTag(r.Context(), id, models.TagFields{
		Name:        req.Name,
		Description: req.Description,
		ColorCode:   req.ColorCode,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toTagResponse(tag))
}
