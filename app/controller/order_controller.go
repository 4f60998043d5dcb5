package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tienda-admin/models"
	"tienda-admin/repository"
	"tienda-admin/service"
)

// OrderController handles HTTP requests for submitted orders and their receipts
type OrderController struct {
	repository repository.OrderRepositoryInterface
	receipts   *service.ReceiptService
}

// NewOrderController creates a new OrderController
func NewOrderController(repo repository.OrderRepositoryInterface, receipts *service.ReceiptService) *OrderController {
	return &OrderController{
		repository: repo,
		receipts:   receipts,
	}
}

// List handles GET /admin/orders?status=pending
// Example response:
// {"orders": [{"id": "9b2e...", "status": "pending", "recipientName": "Ana", "city": "Bogotá", "total": "92000", "totalQuantity": 2}]}
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	logRequest("ListOrders", r)

	status := r.URL.Query().Get("status")
	if status != "" && !models.IsValidOrderStatus(status) {
		http.Error(w, fmt.Sprintf("invalid status %q (must be pending, completed or canceled)", status), http.StatusBadRequest)
		return
	}

	orders, err := c.repository.List(r.Context(), status)
	if err != nil {
		writeError(w, "ListOrders", err)
		return
	}
	writeJSON(w, http.StatusOK, models.OrderListResponse{Orders: orders})
}

// Get handles GET /admin/orders/{id}
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	logRequest("GetOrder", r)

	order, err := c.repository.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "GetOrder", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Receipt handles GET /admin/orders/{id}/receipt and returns the receipt as a PDF
func (c *OrderController) Receipt(w http.ResponseWriter, r *http.Request) {
	logRequest("OrderReceipt", r)

	orderID := mux.Vars(r)["id"]
	pdf, err := c.receipts.GeneratePDF(r.Context(), orderID)
	if err != nil {
		writeError(w, "OrderReceipt", err)
		return
	}

	zap.L().Info("✅ OrderReceipt: PDF generated", zap.String("orderId", orderID), zap.Int("bytes", len(pdf)))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"recibo-%s.pdf\"", orderID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// RenderReceipt handles GET /admin/orders/{id}/receipt/render.
// Headless Chrome loads this page to print the PDF.
func (c *OrderController) RenderReceipt(w http.ResponseWriter, r *http.Request) {
	logRequest("RenderReceipt", r)

	html, err := c.receipts.RenderHTML(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "RenderReceipt", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}
