package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"tienda-admin/models"
	"tienda-admin/service"
)

// VariantController handles HTTP requests for product variant matrices
type VariantController struct {
	service *service.VariantService
}

// NewVariantController creates a new VariantController
func NewVariantController(svc *service.VariantService) *VariantController {
	return &VariantController{service: svc}
}

// Preview handles POST /admin/variants/preview
// Example request:
// {
//   "skuPrefix": "BC",
//   "groups": [{"name": "Color", "values": ["Rojo"]}, {"name": "Talla", "values": ["S", "M"]}],
//   "previous": [{"assignment": {"Color": "Rojo", "Talla": "S"}, "stockQuantity": 4}]
// }
func (c *VariantController) Preview(w http.ResponseWriter, r *http.Request) {
	logRequest("PreviewVariants", r)

	var req models.PreviewVariantsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := c.service.Preview(req)
	if err != nil {
		writeError(w, "PreviewVariants", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /admin/products/{id}/variants
func (c *VariantController) Get(w http.ResponseWriter, r *http.Request) {
	logRequest("GetVariants", r)

	resp, err := c.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "GetVariants", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Replace handles PUT /admin/products/{id}/variants
func (c *VariantController) Replace(w http.ResponseWriter, r *http.Request) {
	logRequest("ReplaceVariants", r)

	var req models.ReplaceVariantsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := c.service.Replace(r.Context(), mux.Vars(r)["id"], req.Groups, req.Combinations)
	if err != nil {
		writeError(w, "ReplaceVariants", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ApplyEvents handles POST /admin/products/{id}/variants/events
// Example request:
// {"events": [{"type": "add_value", "group": "Talla", "value": "XL"}, {"type": "set_stock", "assignment": {"Color": "Rojo", "Talla": "XL"}, "quantity": 3}]}
func (c *VariantController) ApplyEvents(w http.ResponseWriter, r *http.Request) {
	logRequest("ApplyVariantEvents", r)

	var req models.ApplyVariantEventsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Events) == 0 {
		http.Error(w, "events cannot be empty", http.StatusBadRequest)
		return
	}

	events, err := req.ToEvents()
	if err != nil {
		writeError(w, "ApplyVariantEvents", err)
		return
	}

	resp, err := c.service.ApplyEvents(r.Context(), mux.Vars(r)["id"], events)
	if err != nil {
		writeError(w, "ApplyVariantEvents", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
