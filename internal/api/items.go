package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/mkoren/stash/internal/db"
	"github.com/mkoren/stash/internal/imaging"
	"github.com/mkoren/stash/internal/model"
	"github.com/mkoren/stash/internal/store"
)

// ItemsHandler handles active and archived inventory endpoints. Item photos
// live in SQLite rather than the snapshot, keyed by item id, so they
// survive customer rekeys.
type ItemsHandler struct {
	Store *store.Store
	DB    *sql.DB
}

type archiveRequest struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// List handles GET /api/customers/{email}/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if _, ok := h.Store.Customer(email); !ok {
		jsonError(w, http.StatusNotFound, "customer not found")
		return
	}

	items := h.Store.ItemsFor(email)
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/customers/{email}/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item model.Item
	if err := decodeJSON(r, &item); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if item.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	if item.Quantity < 0 {
		jsonError(w, http.StatusBadRequest, "quantity must not be negative")
		return
	}

	created, ok := h.Store.AddItem(r.PathValue("email"), item)
	if !ok {
		jsonError(w, http.StatusNotFound, "customer not found")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("item added", "user", claims.Username, "item", created.ID, "name", created.Name)
	jsonResponse(w, http.StatusCreated, created)
}

// Update handles PUT /api/customers/{email}/items/{id}. The body replaces
// the item wholesale; the id comes from the path.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var item model.Item
	if err := decodeJSON(r, &item); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if item.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	if item.Quantity < 0 {
		jsonError(w, http.StatusBadRequest, "quantity must not be negative")
		return
	}

	item.ID = r.PathValue("id")
	if !h.Store.UpdateItem(r.PathValue("email"), item) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	updated, _ := h.Store.Item(r.PathValue("email"), item.ID)
	jsonResponse(w, http.StatusOK, updated)
}

// Archive handles POST /api/customers/{email}/items/{id}/archive.
func (h *ItemsHandler) Archive(w http.ResponseWriter, r *http.Request) {
	var req archiveRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Reason == "" {
		req.Reason = model.ArchiveReasonOther
	}

	if !h.Store.ArchiveItem(r.PathValue("email"), r.PathValue("id"), req.Reason, req.Notes) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("item archived", "user", claims.Username, "item", r.PathValue("id"), "reason", req.Reason)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item archived"})
}

// Restore handles POST /api/customers/{email}/items/{id}/restore.
func (h *ItemsHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if !h.Store.RestoreItem(r.PathValue("email"), r.PathValue("id")) {
		jsonError(w, http.StatusNotFound, "archived item not found")
		return
	}

	item, _ := h.Store.Item(r.PathValue("email"), r.PathValue("id"))
	jsonResponse(w, http.StatusOK, item)
}

// ListArchived handles GET /api/customers/{email}/archived.
func (h *ItemsHandler) ListArchived(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if _, ok := h.Store.Customer(email); !ok {
		jsonError(w, http.StatusNotFound, "customer not found")
		return
	}

	records := h.Store.ArchivedFor(email)
	if records == nil {
		records = []model.ArchivedItemRecord{}
	}
	jsonResponse(w, http.StatusOK, records)
}

// PurgeArchived handles DELETE /api/customers/{email}/archived/{id}. The
// item's stored photo goes with it.
func (h *ItemsHandler) PurgeArchived(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if !h.Store.PurgeArchived(r.PathValue("email"), itemID) {
		jsonError(w, http.StatusNotFound, "archived item not found")
		return
	}

	if err := db.DeleteItemImage(r.Context(), h.DB, itemID); err != nil {
		slog.Warn("deleting purged item image failed", "item", itemID, "error", err)
	}

	claims := GetClaims(r.Context())
	slog.Info("archived item purged", "user", claims.Username, "item", itemID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "archived item deleted"})
}

// UploadImage handles PUT /api/customers/{email}/items/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if _, ok := h.Store.Item(r.PathValue("email"), itemID); !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := db.SetItemImage(r.Context(), h.DB, itemID, result.Data, result.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/customers/{email}/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := db.GetItemImage(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
