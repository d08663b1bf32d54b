package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/ratehub/ratehub/internal/domain"
	"github.com/ratehub/ratehub/internal/repository"
)

var errInvalidRoleFilter = errors.New("invalid role filter")

type userListResponse struct {
	Items []userResponse `json:"items"`
}

type platformStatsResponse struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
	TotalStars   int64 `json:"totalStars"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	filters, err := buildUserFilters(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	users, err := s.svcs.Auth.ListUsers(r.Context(), filters)
	if err != nil {
		s.respondServiceError(w, err, "Failed to list users")
		return
	}

	items := make([]userResponse, 0, len(users))
	for _, user := range users {
		items = append(items, toUserResponse(user))
	}
	s.respondJSON(w, http.StatusOK, userListResponse{Items: items})
}

func buildUserFilters(query url.Values) (repository.UserListFilters, error) {
	var filters repository.UserListFilters

	if val := strings.TrimSpace(query.Get("role")); val != "" {
		role, ok := domain.ParseRole(val)
		if !ok {
			return filters, errInvalidRoleFilter
		}
		filters.Role = &role
	}
	if val := strings.TrimSpace(query.Get("name")); val != "" {
		filters.NamePrefix = &val
	}
	if val := strings.TrimSpace(query.Get("email")); val != "" {
		filters.EmailPrefix = &val
	}
	filters.SortField = strings.TrimSpace(query.Get("sortBy"))
	filters.SortOrder = strings.TrimSpace(query.Get("order"))
	return filters, nil
}

// handleCreateUser lets an admin provision any account, including other
// admins. Same validation path as public signup.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	s.handleSignUp(w, r)
}

func (s *Server) handlePlatformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svcs.Stats.PlatformStats(r.Context())
	if err != nil {
		s.respondServiceError(w, err, "Failed to fetch platform stats")
		return
	}

	s.respondJSON(w, http.StatusOK, platformStatsResponse{
		TotalUsers:   stats.TotalUsers,
		TotalStores:  stats.TotalStores,
		TotalRatings: stats.TotalRatings,
		TotalStars:   stats.TotalStars,
	})
}
