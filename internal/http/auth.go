package httpserver

import (
	"net/http"
	"time"

	"github.com/ratehub/ratehub/internal/auth"
	"github.com/ratehub/ratehub/internal/domain"
	"github.com/ratehub/ratehub/internal/service"
)

type signUpRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address"`
	Role      string `json:"role"`
	StoreName string `json:"storeName,omitempty"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type signInResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	role := domain.RoleUser
	if req.Role != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok {
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid role")
			return
		}
		role = parsed
	}

	user, err := s.svcs.Auth.SignUp(r.Context(), service.SignUpParams{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Address:   req.Address,
		Role:      role,
		StoreName: req.StoreName,
	})
	if err != nil {
		s.respondServiceError(w, err, "Failed to sign up")
		return
	}

	s.respondJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "email and password are required")
		return
	}

	user, token, err := s.svcs.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondServiceError(w, err, "Failed to sign in")
		return
	}

	s.respondJSON(w, http.StatusOK, signInResponse{User: toUserResponse(user), Token: token})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	user, err := s.svcs.Auth.Profile(r.Context(), principal.UserID)
	if err != nil {
		s.respondServiceError(w, err, "Failed to fetch profile")
		return
	}

	s.respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req updatePasswordRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	if err := s.svcs.Auth.UpdatePassword(r.Context(), principal.UserID, req.Password); err != nil {
		s.respondServiceError(w, err, "Failed to update password")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

func toUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
