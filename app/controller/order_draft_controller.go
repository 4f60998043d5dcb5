package controller

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"tienda-admin/models"
	"tienda-admin/orderbuilder"
	"tienda-admin/service"
)

// OrderDraftController handles HTTP requests for the custom order builder
type OrderDraftController struct {
	service *service.OrderDraftService
}

// NewOrderDraftController creates a new OrderDraftController
func NewOrderDraftController(svc *service.OrderDraftService) *OrderDraftController {
	return &OrderDraftController{service: svc}
}

// Create handles POST /admin/order-drafts
// The body is optional: {"recipient": {"name": "Ana", "phone": "3001234567", "streetAddress": "Cra 7 #12-30", "city": "Bogotá"}}
func (c *OrderDraftController) Create(w http.ResponseWriter, r *http.Request) {
	logRequest("CreateDraft", r)

	var req models.CreateDraftRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := c.service.Create(r.Context(), req.Recipient)
	if err != nil {
		writeError(w, "CreateDraft", err)
		return
	}
	writeJSON(w, http.StatusCreated, models.NewDraftResponse(d))
}

// Get handles GET /admin/order-drafts/{id}
func (c *OrderDraftController) Get(w http.ResponseWriter, r *http.Request) {
	logRequest("GetDraft", r)

	d, err := c.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "GetDraft", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewDraftResponse(d))
}

// AddItem handles POST /admin/order-drafts/{id}/items
// Example request:
// {"productId": "5f0c...", "colors": [{"color": "Negro", "sizes": [{"size": "S", "quantity": 2}]}], "overridePrice": "40000"}
// Example response:
// {"draft": {...,"totals": {"subtotal": "80000", ...}}, "added": [{"id": "...", "totalQuantity": 2, "totalPrice": "80000"}]}
func (c *OrderDraftController) AddItem(w http.ResponseWriter, r *http.Request) {
	logRequest("AddDraftItem", r)

	var req models.AddDraftItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		http.Error(w, "productId is required", http.StatusBadRequest)
		return
	}

	d, added, err := c.service.AddProduct(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, "AddDraftItem", err)
		return
	}
	writeJSON(w, http.StatusOK, models.AddDraftItemResponse{Draft: models.NewDraftResponse(d), Added: added})
}

// RemoveItem handles DELETE /admin/order-drafts/{id}/items/{lineId}
func (c *OrderDraftController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	logRequest("RemoveDraftItem", r)

	vars := mux.Vars(r)
	d, err := c.service.RemoveItem(r.Context(), vars["id"], vars["lineId"])
	if err != nil {
		writeError(w, "RemoveDraftItem", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewDraftResponse(d))
}

// UpdateCharges handles PUT /admin/order-drafts/{id}/charges
// Example request: {"discount": "5000", "shippingCharge": "12000"}
// Negative values are stored as zero.
func (c *OrderDraftController) UpdateCharges(w http.ResponseWriter, r *http.Request) {
	logRequest("UpdateCharges", r)

	var req models.UpdateChargesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := c.service.UpdateCharges(r.Context(), mux.Vars(r)["id"], req.Discount, req.ShippingCharge)
	if err != nil {
		writeError(w, "UpdateCharges", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewDraftResponse(d))
}

// SetRecipient handles PUT /admin/order-drafts/{id}/recipient
func (c *OrderDraftController) SetRecipient(w http.ResponseWriter, r *http.Request) {
	logRequest("SetRecipient", r)

	var req orderbuilder.Recipient
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := c.service.SetRecipient(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, "SetRecipient", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewDraftResponse(d))
}

// AutoDiscount handles POST /admin/order-drafts/{id}/auto-discount
func (c *OrderDraftController) AutoDiscount(w http.ResponseWriter, r *http.Request) {
	logRequest("AutoDiscount", r)

	d, suggestion, err := c.service.ApplyAutoDiscount(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "AutoDiscount", err)
		return
	}
	writeJSON(w, http.StatusOK, models.AutoDiscountResponse{Draft: models.NewDraftResponse(d), Suggestion: suggestion})
}

// Submit handles POST /admin/order-drafts/{id}/submit
// Example response: {"orderId": "9b2e...", "order": {...}}
func (c *OrderDraftController) Submit(w http.ResponseWriter, r *http.Request) {
	logRequest("SubmitDraft", r)

	order, err := c.service.Submit(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "SubmitDraft", err)
		return
	}
	writeJSON(w, http.StatusCreated, models.SubmitDraftResponse{OrderID: order.ID, Order: order})
}
