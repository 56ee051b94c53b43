package api

import (
	"database/sql"
	"net/http"

	"github.com/mkoren/stash/internal/store"
)

// NewRouter creates the API router with all endpoints registered. Every
// route except login sits behind the auth middleware.
func NewRouter(database *sql.DB, st *store.Store, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: database, JWTSecret: jwtSecret}
	customersHandler := &CustomersHandler{Store: st}
	itemsHandler := &ItemsHandler{Store: st, DB: database}
	ordersHandler := &OrdersHandler{Store: st}
	billingHandler := &BillingHandler{Store: st}

	authMW := AuthMiddleware(jwtSecret, database)
	protected := func(h http.HandlerFunc) http.Handler {
		return authMW(h)
	}

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.Handle("POST /api/auth/logout", protected(authHandler.Logout))
	mux.Handle("PUT /api/auth/password", protected(authHandler.ChangePassword))

	// Customers.
	mux.Handle("GET /api/customers", protected(customersHandler.List))
	mux.Handle("POST /api/customers", protected(customersHandler.Create))
	mux.Handle("GET /api/customers/{email}", protected(customersHandler.Get))
	mux.Handle("PATCH /api/customers/{email}", protected(customersHandler.Update))

	// Active inventory.
	mux.Handle("GET /api/customers/{email}/items", protected(itemsHandler.List))
	mux.Handle("POST /api/customers/{email}/items", protected(itemsHandler.Create))
	mux.Handle("PUT /api/customers/{email}/items/{id}", protected(itemsHandler.Update))
	mux.Handle("POST /api/customers/{email}/items/{id}/archive", protected(itemsHandler.Archive))
	mux.Handle("POST /api/customers/{email}/items/{id}/restore", protected(itemsHandler.Restore))
	mux.Handle("PUT /api/customers/{email}/items/{id}/image", protected(itemsHandler.UploadImage))
	mux.Handle("GET /api/customers/{email}/items/{id}/image", protected(itemsHandler.GetImage))

	// Archived inventory.
	mux.Handle("GET /api/customers/{email}/archived", protected(itemsHandler.ListArchived))
	mux.Handle("DELETE /api/customers/{email}/archived/{id}", protected(itemsHandler.PurgeArchived))

	// Orders.
	mux.Handle("GET /api/customers/{email}/orders", protected(ordersHandler.List))
	mux.Handle("POST /api/customers/{email}/orders", protected(ordersHandler.Create))
	mux.Handle("PATCH /api/customers/{email}/orders/{id}", protected(ordersHandler.Update))
	mux.Handle("POST /api/customers/{email}/orders/{id}/cancel", protected(ordersHandler.Cancel))

	// Billing.
	mux.Handle("GET /api/customers/{email}/billing", protected(billingHandler.Get))

	return mux
}
