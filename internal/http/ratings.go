package httpserver

import (
	"net/http"
	"time"

	"github.com/ratehub/ratehub/internal/auth"
	"github.com/ratehub/ratehub/internal/domain"
)

type ratingRequest struct {
	Stars int32 `json:"stars"`
}

type ratingResponse struct {
	StoreID string `json:"storeId"`
	UserID  string `json:"userId"`
	Stars   int32  `json:"stars"`
}

type averageRatingResponse struct {
	StoreID       string  `json:"storeId"`
	AverageRating float64 `json:"averageRating"`
}

type totalStarsResponse struct {
	StoreID    string `json:"storeId"`
	TotalStars int64  `json:"totalStars"`
}

type userRatingResponse struct {
	StoreID string `json:"storeId"`
	UserID  string `json:"userId"`
	Stars   int32  `json:"stars"`
}

type storeRatingResponse struct {
	UserID    string       `json:"userId"`
	Stars     int32        `json:"stars"`
	CreatedAt time.Time    `json:"createdAt"`
	User      domain.Owner `json:"user"`
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}
	// Store owners manage stores, they do not rate them.
	if principal.Role == domain.RoleStoreOwner {
		s.respondError(w, http.StatusForbidden, "FORBIDDEN", "Store owners cannot submit ratings")
		return
	}

	storeID, err := decodeStoreIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if _, err := s.svcs.Stores.GetStore(r.Context(), storeID); err != nil {
		s.respondServiceError(w, err, "Failed to submit rating")
		return
	}

	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	rating, inserted, err := s.svcs.Ratings.SubmitRating(r.Context(), storeID, principal.UserID, req.Stars)
	if err != nil {
		s.respondServiceError(w, err, "Failed to submit rating")
		return
	}

	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	s.respondJSON(w, status, ratingResponse{
		StoreID: rating.StoreID,
		UserID:  rating.UserID,
		Stars:   rating.Stars,
	})
}

func (s *Server) handleStoreAverage(w http.ResponseWriter, r *http.Request) {
	storeID, err := decodeStoreIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	average, err := s.svcs.Ratings.AverageRating(r.Context(), storeID)
	if err != nil {
		s.respondServiceError(w, err, "Failed to fetch average rating")
		return
	}

	s.respondJSON(w, http.StatusOK, averageRatingResponse{StoreID: storeID, AverageRating: average})
}

func (s *Server) handleStoreTotal(w http.ResponseWriter, r *http.Request) {
	storeID, err := decodeStoreIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	total, err := s.svcs.Ratings.TotalStars(r.Context(), storeID)
	if err != nil {
		s.respondServiceError(w, err, "Failed to fetch total stars")
		return
	}

	s.respondJSON(w, http.StatusOK, totalStarsResponse{StoreID: storeID, TotalStars: total})
}

func (s *Server) handleMyRating(w http.ResponseWriter, r *http.Request) {
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

	// 0 means "not rated yet"; stored ratings are always in [1,5].
	stars, err := s.svcs.Ratings.UserRatingForStore(r.Context(), storeID, principal.UserID)
	if err != nil {
		s.respondServiceError(w, err, "Failed to fetch rating")
		return
	}

	s.respondJSON(w, http.StatusOK, userRatingResponse{StoreID: storeID, UserID: principal.UserID, Stars: stars})
}

func (s *Server) handleListStoreRatings(w http.ResponseWriter, r *http.Request) {
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

	st, err := s.svcs.Stores.GetStore(r.Context(), storeID)
	if err != nil {
		s.respondServiceError(w, err, "Failed to fetch ratings")
		return
	}
	if principal.Role != domain.RoleAdmin && st.OwnerID != principal.UserID {
		s.respondError(w, http.StatusForbidden, "FORBIDDEN", "You are not allowed to view these ratings")
		return
	}

	// An unrated store yields an empty slice, never an error.
	ratings, err := s.svcs.Ratings.StoreRatings(r.Context(), storeID)
	if err != nil {
		s.respondServiceError(w, err, "Failed to fetch ratings")
		return
	}

	items := make([]storeRatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		items = append(items, storeRatingResponse{
			UserID:    rating.Rater.ID,
			Stars:     rating.Stars,
			CreatedAt: rating.CreatedAt,
			User:      rating.Rater,
		})
	}
	s.respondJSON(w, http.StatusOK, map[string][]storeRatingResponse{"items": items})
}
