package handlers

import (
	"net/http"

	"github.com/ghuser/stuffkeeper/pkg/errhttp"
	"github.com/ghuser/stuffkeeper/pkg/httpx"
	appsvcs "github.com/ghuser/stuffkeeper/services/stuff/application/services"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/models"
)

// GetStuffsHandler handles GET /items requests.
type GetStuffsHandler struct {
	svc *appsvcs.Services
}

// NewGetStuffsHandler returns a GetStuffsHandler backed by the given services.
func NewGetStuffsHandler(svc *appsvcs.Services) *GetStuffsHandler {
	return &GetStuffsHandler{svc: svc}
}

// Execute lists stuffs, optionally filtered by a named scope.
//
//	@Summary		List stuff
//	@Description	Lists inventory items with tags, in insertion order
//	@Tags			items
//	@Produce		json
//	@Param			scope	query		string	false	"Named filter"	Enums(active, archived, expiring_soon, expired)
//	@Success		200		{array}		StuffResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/items [get]
func (h *GetStuffsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	scope, err := models.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	stuffs, err := h.svc.Stuff.List(r.Context(), scope)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]StuffResponse, 0, len(stuffs))
	for _, s := range stuffs {
		resp = append(resp, toStuffResponse(s))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
