package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/anujv/portfolio/internal/token"
	"github.com/anujv/portfolio/pkg/models"
	"github.com/anujv/portfolio/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	adminRepo repository.AdminRepo
	tokens    *token.Service
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ar repository.AdminRepo, tokens *token.Service) *AuthHandler {
	return &AuthHandler{adminRepo: ar, tokens: tokens}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// Register creates the single administrator account. The endpoint is
// public for one-time bootstrap; once any admin exists every further call
// is refused.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	ctx := r.Context()

	existing, err := h.adminRepo.GetAdminByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check existing admin")
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, "Admin already exists")
		return
	}

	// single-admin deployment: refuse a second account outright
	count, err := h.adminRepo.CountAdmins(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check existing admin")
		return
	}
	if count > 0 {
		writeError(w, http.StatusBadRequest, "Admin already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	admin := models.Admin{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	id, err := h.adminRepo.CreateAdmin(ctx, &admin)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error creating admin")
		return
	}

	tokenStr, err := h.tokens.Issue(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error signing token")
		return
	}

	writeData(w, http.StatusCreated, authResponse{ID: id, Username: admin.Username, Email: admin.Email, Token: tokenStr})
}

// Login authenticates by email and password. Unknown email and wrong
// password answer identically so account existence can't be probed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	admin, err := h.adminRepo.GetAdminByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if admin == nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tokenStr, err := h.tokens.Issue(admin.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error signing token")
		return
	}

	writeData(w, http.StatusOK, authResponse{ID: admin.ID, Username: admin.Username, Email: admin.Email, Token: tokenStr})
}

// Me returns the caller's profile; the access guard already resolved it.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, ok := AdminFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, admin not found")
		return
	}

	writeData(w, http.StatusOK, admin)
}
