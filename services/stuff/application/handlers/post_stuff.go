package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/stuffkeeper/pkg/errhttp"
	"github.com/ghuser/stuffkeeper/pkg/httpx"
	pkgvalidator "github.com/ghuser/stuffkeeper/pkg/validator"
	appsvcs "github.com/ghuser/stuffkeeper/services/stuff/application/services"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/models"
)

// CreateStuffRequest is the request body for POST /items. The optional tags
// list is applied together with the item as one atomic write.
type CreateStuffRequest struct {
	Name           string           `json:"name"            validate:"max=100" example:"Milk"`
	Description    string           `json:"description"     example:"from the corner store"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty" swaggertype:"number" example:"1.5"`
	Unit           string           `json:"unit,omitempty"  example:"L"`
	ExpirationDate *time.Time       `json:"expiration_date,omitempty"`
	Archived       bool             `json:"archived,omitempty"`
	Tags           []TagAttributes  `json:"tags,omitempty"  validate:"dive"`
} // @name CreateStuffRequest

// PostStuffHandler handles POST /items requests.
type PostStuffHandler struct {
	svc *appsvcs.Services
}

// NewPostStuffHandler returns a PostStuffHandler backed by the given services.
func NewPostStuffHandler(svc *appsvcs.Services) *PostStuffHandler {
	return &PostStuffHandler{svc: svc}
}

// Execute creates a new stuff with its nested tags.
//
//	@Summary		Create stuff
//	@Description	Creates an inventory item together with its tags in one atomic write
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateStuffRequest	true	"Item creation request"
//	@Success		201		{object}	StuffResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	map[string][]string
//	@Router			/items [post]
func (h *PostStuffHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateStuffRequest](w, r)
	if !ok {
		return
	}

	fields := models.StuffFields{
		Name:           req.Name,
		Description:    req.Description,
		Quantity:       req.Quantity,
		Unit:           models.Unit(req.Unit),
		ExpirationDate: req.ExpirationDate,
		Archived:       req.Archived,
	}

	stuff, err := h.svc.Stuff.Create(r.Context(), fields, toTagOps(req.Tags))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toStuffResponse(stuff))
}
