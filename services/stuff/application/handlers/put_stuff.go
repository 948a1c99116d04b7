package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/stuffkeeper/pkg/errhttp"
	"github.com/ghuser/stuffkeeper/pkg/httpx"
	pkgvalidator "github.com/ghuser/stuffkeeper/pkg/validator"
	appsvcs "github.com/ghuser/stuffkeeper/services/stuff/application/services"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/models"
)

// UpdateStuffRequest is the request body for PUT /items/{id}. Omitted fields
// keep their current values. An omitted tags list leaves existing tags
// untouched; a present list replaces tag membership, so an empty list
// removes every tag.
type UpdateStuffRequest struct {
	Name           *string          `json:"name,omitempty"            validate:"omitempty,max=100"`
	Description    *string          `json:"description,omitempty"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty" swaggertype:"number"`
	Unit           *string          `json:"unit,omitempty"`
	ExpirationDate *time.Time       `json:"expiration_date,omitempty"`
	Archived       *bool            `json:"archived,omitempty"`
	Tags           *[]TagAttributes `json:"tags,omitempty"            validate:"omitempty,dive"`
} // @name UpdateStuffRequest

// PutStuffHandler handles PUT and PATCH /items/{id} requests.
type PutStuffHandler struct {
	svc *appsvcs.Services
}

// NewPutStuffHandler returns a PutStuffHandler backed by the given services.
func NewPutStuffHandler(svc *appsvcs.Services) *PutStuffHandler {
	return &PutStuffHandler{svc: svc}
}

// Execute updates a stuff and applies its nested tag operations atomically.
//
//	@Summary		Update stuff
//	@Description	Updates an inventory item and applies nested tag creates, updates, and deletes as one transaction
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Stuff ID"
//	@Param			request	body		UpdateStuffRequest	true	"Item update request"
//	@Success		200		{object}	StuffResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	map[string][]string
//	@Router			/items/{id} [put]
func (h *PutStuffHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateStuffRequest](w, r)
	if !ok {
		return
	}

	patch := appsvcs.StuffPatch{
		Name:           req.Name,
		Description:    req.Description,
		Quantity:       req.Quantity,
		ExpirationDate: req.ExpirationDate,
		Archived:       req.Archived,
	}
	if req.Unit != nil {
		unit := models.Unit(*req.Unit)
		patch.Unit = &unit
	}

	var tagOps *[]appsvcs.TagOp
	if req.Tags != nil {
		ops := toTagOps(*req.Tags)
		if ops == nil {
			ops = []appsvcs.TagOp{}
		}
		tagOps = &ops
	}

	stuff, err := h.svc.Stuff.Update(r.Context(), id, patch, tagOps)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toStuffResponse(stuff))
}
