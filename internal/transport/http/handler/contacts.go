package handler

import (
	"net/http"

	"github.com/go-contacts-api/internal/application/contact"
	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/transport/http/middleware"
)

// ContactHandler handles the /api/contacts endpoints. Routes with an {id} run behind
// middleware.ContactOwner, which has already loaded the owned contact.
type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler { return &ContactHandler{svc: svc} }

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	q, err := contact.ParseListQuery(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	page, err := h.svc.List(r.Context(), u.UserID, q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	items := make([]ContactItem, len(page.Items))
	for i := range page.Items {
		items[i] = toContactItem(&page.Items[i])
	}
	writeJSON(w, http.StatusOK, PaginatedContactsEnvelope{
		Items: items, TotalPages: page.TotalPages, CurrentPage: page.CurrentPage,
	})
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := middleware.ContactFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	var req domain.CreateContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.svc.Create(r.Context(), u.UserID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ContactHandler) Replace(w http.ResponseWriter, r *http.Request) {
	u, c, ok := ownedContact(w, r)
	if !ok {
		return
	}
	var req domain.CreateContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	updated, err := h.svc.Replace(r.Context(), u.UserID, c.ContactID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ContactHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	u, c, ok := ownedContact(w, r)
	if !ok {
		return
	}
	var req domain.UpdateFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	updated, err := h.svc.SetFavorite(r.Context(), u.UserID, c.ContactID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, c, ok := ownedContact(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), u.UserID, c.ContactID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Contact deleted"})
}

func ownedContact(w http.ResponseWriter, r *http.Request) (*domain.User, *domain.Contact, bool) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return nil, nil, false
	}
	c, ok := middleware.ContactFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return nil, nil, false
	}
	return u, c, true
}
