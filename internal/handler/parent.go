package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/skarbek/treasury-server-go/internal/errors"
	"github.com/skarbek/treasury-server-go/internal/middleware"
	"github.com/skarbek/treasury-server-go/internal/service"
)

type ParentHandler struct {
	parentService *service.ParentService
	auth          *service.AuthService
	authMW        *middleware.AuthMiddleware
	loginLimit    func(http.Handler) http.Handler
}

func NewParentHandler(
	parentService *service.ParentService,
	auth *service.AuthService,
	authMW *middleware.AuthMiddleware,
	loginLimit func(http.Handler) http.Handler,
) *ParentHandler {
	return &ParentHandler{
		parentService: parentService,
		auth:          auth,
		authMW:        authMW,
		loginLimit:    loginLimit,
	}
}

func (h *ParentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.loginLimit)
		r.Post("/login", h.Login)
	})

	// The rotation endpoint requires authentication but must stay reachable
	// while the gate is armed.
	r.Group(func(r chi.Router) {
		r.Use(h.authMW.RequireParent)
		r.Post("/change-password", h.ChangePassword)
		r.Post("/logout", h.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.authMW.RequireParent)
		r.Use(h.authMW.RequirePasswordChanged)
		r.Get("/me", h.Me)
		r.Get("/campaigns", h.Dashboard)
		r.Get("/contributions", h.Contributions)
		r.Post("/contributions", h.SubmitContribution)
	})

	return r
}

func (h *ParentHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, apperrors.MissingRequired("email and password"))
		return
	}

	token, parent, err := h.auth.ParentLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":                 token,
		"requirePasswordChange": parent.MustChangePassword,
	})
}

func (h *ParentHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.GetToken(r.Context()); token != "" {
		h.auth.ParentLogout(r.Context(), token)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ParentHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	parent := middleware.GetParent(r.Context())

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	token, err := h.parentService.RotatePassword(r.Context(), parent.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":                 token,
		"requirePasswordChange": false,
	})
}

func (h *ParentHandler) Me(w http.ResponseWriter, r *http.Request) {
	parent := middleware.GetParent(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"id":    parent.ID,
		"name":  parent.Name,
		"email": parent.Email,
	})
}

func (h *ParentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	parent := middleware.GetParent(r.Context())

	entries, err := h.parentService.Dashboard(r.Context(), parent.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"campaigns": entries,
		"total":     len(entries),
	})
}

func (h *ParentHandler) Contributions(w http.ResponseWriter, r *http.Request) {
	parent := middleware.GetParent(r.Context())

	contributions, err := h.parentService.Contributions(r.Context(), parent.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"contributions": contributions,
		"total":         len(contributions),
	})
}

func (h *ParentHandler) SubmitContribution(w http.ResponseWriter, r *http.Request) {
	parent := middleware.GetParent(r.Context())

	var req struct {
		CampaignID string  `json:"campaignId"`
		Amount     float64 `json:"amount"`
		Note       *string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if req.CampaignID == "" {
		writeError(w, apperrors.MissingRequired("campaignId"))
		return
	}
	if req.Amount < 0 {
		writeError(w, apperrors.ValidationError("amount must not be negative"))
		return
	}

	contribution, err := h.parentService.SubmitContribution(r.Context(), parent.ID, req.CampaignID, req.Amount, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contribution)
}
