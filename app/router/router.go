package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"tienda-admin/app/controller"
)

type Controllers struct {
	Product    *controller.ProductController
	Variant    *controller.VariantController
	OrderDraft *controller.OrderDraftController
	Order      *controller.OrderController
	Report     *controller.ReportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) *mux.Router {
	r := mux.NewRouter()

	// Ping endpoint
	r.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	admin := r.PathPrefix("/admin").Subrouter()

	// Products
	admin.HandleFunc("/products", controllers.Product.List).Methods(http.MethodGet)
	admin.HandleFunc("/products", controllers.Product.Create).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", controllers.Product.Get).Methods(http.MethodGet)
	admin.HandleFunc("/products/{id}/image", controllers.Product.Image).Methods(http.MethodGet)

	// Variant matrices
	admin.HandleFunc("/variants/preview", controllers.Variant.Preview).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}/variants", controllers.Variant.Get).Methods(http.MethodGet)
	admin.HandleFunc("/products/{id}/variants", controllers.Variant.Replace).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}/variants/events", controllers.Variant.ApplyEvents).Methods(http.MethodPost)

	// Order drafts
	admin.HandleFunc("/order-drafts", controllers.OrderDraft.Create).Methods(http.MethodPost)
	admin.HandleFunc("/order-drafts/{id}", controllers.OrderDraft.Get).Methods(http.MethodGet)
	admin.HandleFunc("/order-drafts/{id}/items", controllers.OrderDraft.AddItem).Methods(http.MethodPost)
	admin.HandleFunc("/order-drafts/{id}/items/{lineId}", controllers.OrderDraft.RemoveItem).Methods(http.MethodDelete)
	admin.HandleFunc("/order-drafts/{id}/charges", controllers.OrderDraft.UpdateCharges).Methods(http.MethodPut)
	admin.HandleFunc("/order-drafts/{id}/recipient", controllers.OrderDraft.SetRecipient).Methods(http.MethodPut)
	admin.HandleFunc("/order-drafts/{id}/auto-discount", controllers.OrderDraft.AutoDiscount).Methods(http.MethodPost)
	admin.HandleFunc("/order-drafts/{id}/submit", controllers.OrderDraft.Submit).Methods(http.MethodPost)

	// Orders
	admin.HandleFunc("/orders", controllers.Order.List).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}", controllers.Order.Get).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/receipt", controllers.Order.Receipt).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/receipt/render", controllers.Order.RenderReceipt).Methods(http.MethodGet)

	// Reports
	admin.HandleFunc("/reports/sales", controllers.Report.Sales).Methods(http.MethodGet)

	return r
}
