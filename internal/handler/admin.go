package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/skarbek/treasury-server-go/internal/errors"
	"github.com/skarbek/treasury-server-go/internal/middleware"
	"github.com/skarbek/treasury-server-go/internal/model"
	"github.com/skarbek/treasury-server-go/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
	ledger       *service.LedgerService
	auth         *service.AuthService
	authMW       *middleware.AuthMiddleware
	loginLimit   func(http.Handler) http.Handler
}

func NewAdminHandler(
	adminService *service.AdminService,
	ledger *service.LedgerService,
	auth *service.AuthService,
	authMW *middleware.AuthMiddleware,
	loginLimit func(http.Handler) http.Handler,
) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		ledger:       ledger,
		auth:         auth,
		authMW:       authMW,
		loginLimit:   loginLimit,
	}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.loginLimit)
		r.Post("/login", h.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.authMW.RequireAdmin)

		r.Post("/logout", h.Logout)

		r.Get("/parents", h.ListParents)
		r.Post("/parents", h.CreateParent)
		r.Put("/parents/{parentID}", h.UpdateParent)
		r.Post("/parents/{parentID}/hide", h.HideParent)
		r.Post("/parents/{parentID}/unhide", h.UnhideParent)
		r.Post("/parents/{parentID}/change-password", h.ResetParentPassword)

		r.Get("/campaigns", h.ListCampaigns)
		r.Post("/campaigns", h.CreateCampaign)
		r.Put("/campaigns/{campaignID}", h.UpdateCampaign)
		r.Post("/campaigns/{campaignID}/close", h.CloseCampaign)
		r.Get("/campaigns/{campaignID}/roster", h.CampaignRoster)

		r.Post("/contributions", h.CreateContribution)
		r.Post("/contributions/mark-paid", h.MarkPaid)
	})

	return r
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	token, err := h.auth.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.GetToken(r.Context()); token != "" {
		h.auth.AdminLogout(r.Context(), token)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Parents

func (h *AdminHandler) ListParents(w http.ResponseWriter, r *http.Request) {
	includeHidden := r.URL.Query().Get("include_hidden") == "true"

	parents, err := h.adminService.ListParents(r.Context(), includeHidden)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"parents": parents,
		"total":   len(parents),
	})
}

func (h *AdminHandler) CreateParent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	parent, tempPassword, err := h.adminService.CreateParent(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	// The temporary password is returned once so the treasurer can hand it
	// over when email delivery is unavailable.
	writeJSON(w, http.StatusOK, map[string]any{
		"parent":       parent,
		"tempPassword": tempPassword,
	})
}

func (h *AdminHandler) UpdateParent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	parent, err := h.adminService.UpdateParent(r.Context(), chi.URLParam(r, "parentID"), model.UpdateParentParams{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, parent)
}

func (h *AdminHandler) HideParent(w http.ResponseWriter, r *http.Request) {
	h.setParentHidden(w, r, true)
}

func (h *AdminHandler) UnhideParent(w http.ResponseWriter, r *http.Request) {
	h.setParentHidden(w, r, false)
}

func (h *AdminHandler) setParentHidden(w http.ResponseWriter, r *http.Request, hidden bool) {
	parent, err := h.adminService.SetParentHidden(r.Context(), chi.URLParam(r, "parentID"), hidden)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, parent)
}

func (h *AdminHandler) ResetParentPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	tempPassword, err := h.adminService.ResetParentPassword(r.Context(), chi.URLParam(r, "parentID"), req.NewPassword)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"tempPassword": tempPassword})
}

// Campaigns

func (h *AdminHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	includeClosed := r.URL.Query().Get("include_closed") == "true"
	showSettled := r.URL.Query().Get("show_settled") == "true"

	overviews, err := h.adminService.CampaignOverviews(r.Context(), includeClosed, showSettled)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"campaigns": overviews,
		"total":     len(overviews),
	})
}

func (h *AdminHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title        string     `json:"title"`
		Description  *string    `json:"description"`
		TargetAmount float64    `json:"targetAmount"`
		DueDate      *time.Time `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	campaign, err := h.adminService.CreateCampaign(r.Context(), model.CreateCampaignParams{
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		DueDate:      req.DueDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

func (h *AdminHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title        *string    `json:"title"`
		Description  *string    `json:"description"`
		TargetAmount *float64   `json:"targetAmount"`
		DueDate      *time.Time `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	campaign, err := h.adminService.UpdateCampaign(r.Context(), chi.URLParam(r, "campaignID"), model.UpdateCampaignParams{
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		DueDate:      req.DueDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

func (h *AdminHandler) CloseCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.adminService.CloseCampaign(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *AdminHandler) CampaignRoster(w http.ResponseWriter, r *http.Request) {
	includeHidden := r.URL.Query().Get("include_hidden") == "true"

	roster, err := h.adminService.CampaignRoster(r.Context(), chi.URLParam(r, "campaignID"), includeHidden)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, roster)
}

// Contributions

func (h *AdminHandler) CreateContribution(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CampaignID     string  `json:"campaignId"`
		ParentID       string  `json:"parentId"`
		AmountExpected float64 `json:"amountExpected"`
		Note           *string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if req.CampaignID == "" {
		writeError(w, apperrors.MissingRequired("campaignId"))
		return
	}
	if req.ParentID == "" {
		writeError(w, apperrors.MissingRequired("parentId"))
		return
	}

	contribution, err := h.ledger.Ensure(r.Context(), req.CampaignID, req.ParentID, req.AmountExpected, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contribution)
}

func (h *AdminHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CampaignID string  `json:"campaignId"`
		ParentID   string  `json:"parentId"`
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
	if req.ParentID == "" {
		writeError(w, apperrors.MissingRequired("parentId"))
		return
	}

	contribution, err := h.ledger.MarkPaid(r.Context(), req.CampaignID, req.ParentID, req.Amount, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contribution)
}
