package httpserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ratehub/ratehub/internal/auth"
	"github.com/ratehub/ratehub/internal/domain"
	"github.com/ratehub/ratehub/internal/repository"
)

type storeListingResponse struct {
	ID            string        `json:"id"`
	StoreName     string        `json:"storeName"`
	Address       string        `json:"address"`
	CreatedAt     time.Time     `json:"createdAt"`
	AverageRating float64       `json:"averageRating"`
	Owner         *domain.Owner `json:"owner,omitempty"`
}

type storeListResponse struct {
	Items []storeListingResponse `json:"items"`
}

type storeResponse struct {
	ID        string    `json:"id"`
	StoreName string    `json:"storeName"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	filters := buildStoreFilters(r.URL.Query())
	listings, err := s.svcs.Stores.ListStores(r.Context(), filters, principal.Role)
	if err != nil {
		s.respondServiceError(w, err, "Failed to list stores")
		return
	}

	items := make([]storeListingResponse, 0, len(listings))
	for _, listing := range listings {
		items = append(items, storeListingResponse{
			ID:            listing.ID,
			StoreName:     listing.StoreName,
			Address:       listing.Address,
			CreatedAt:     listing.CreatedAt,
			AverageRating: listing.AverageRating,
			Owner:         listing.Owner,
		})
	}
	s.respondJSON(w, http.StatusOK, storeListResponse{Items: items})
}

// buildStoreFilters never fails: unknown sort fields are a defined fallback,
// not an error, and absent filters simply match everything.
func buildStoreFilters(query url.Values) repository.StoreListFilters {
	var filters repository.StoreListFilters

	if val := strings.TrimSpace(query.Get("name")); val != "" {
		filters.Name = &val
	}
	if val := strings.TrimSpace(query.Get("address")); val != "" {
		filters.Address = &val
	}
	filters.SortField = strings.TrimSpace(query.Get("sortBy"))
	filters.SortOrder = strings.TrimSpace(query.Get("order"))
	return filters
}

func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := decodeStoreIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	st, err := s.svcs.Stores.GetStore(r.Context(), storeID)
	if err != nil {
		s.respondServiceError(w, err, "Failed to fetch store")
		return
	}

	s.respondJSON(w, http.StatusOK, toStoreResponse(st))
}

func (s *Server) handleDeleteStore(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	storeID, err := decodeStoreIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if err := s.svcs.Stores.DeleteStore(r.Context(), storeID, principal.UserID, principal.Role); err != nil {
		s.respondServiceError(w, err, "Failed to delete store")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "store deleted"})
}

func (s *Server) handleMyStore(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	st, err := s.svcs.Stores.StoreForOwner(r.Context(), principal.UserID)
	if err != nil {
		s.respondServiceError(w, err, "Failed to fetch store")
		return
	}

	s.respondJSON(w, http.StatusOK, toStoreResponse(st))
}

func toStoreResponse(st domain.Store) storeResponse {
	return storeResponse{
		ID:        st.ID,
		StoreName: st.StoreName,
		Email:     st.Email,
		Address:   st.Address,
		OwnerID:   st.OwnerID,
		CreatedAt: st.CreatedAt,
	}
}

func decodeStoreIDParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "storeID")
	if raw == "" {
		return "", fmt.Errorf("missing storeID parameter")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid storeID parameter")
	}
	return id.String(), nil
}
