package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farmstack/farm-api/internal/application"
	"github.com/farmstack/farm-api/internal/interface/middleware"
	"github.com/farmstack/farm-api/pkg/response"
	"github.com/farmstack/farm-api/pkg/validation"
)

type AuthHandler struct {
	Svc *application.AuthService
}

func NewAuthHandler(svc *application.AuthService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,pwd"`
		Name       string `json:"name" binding:"required"`
		Phone      string `json:"phone" binding:"omitempty,phone"`
		NationalID string `json:"national_id" binding:"omitempty,national_id"`
		Role       string `json:"role" binding:"omitempty,oneof=user farmer customer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.Role == "farmer" && req.NationalID == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload",
			map[string]string{"national_id": "is required for farmers"})
		return
	}

	acct, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:      req.Email,
		Phone:      req.Phone,
		NationalID: req.NationalID,
		Name:       req.Name,
		Password:   req.Password,
		Role:       req.Role,
	}, clientIP(c), c.GetHeader("User-Agent"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toAccountView(acct), "registered", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password,
		clientIP(c), c.GetHeader("User-Agent"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":      res.Token,
		"expires_at": res.ExpiresAt.UTC().Format(time.RFC3339),
		"account":    toAccountView(res.Account),
	}, "logged in", nil)
}

// Logout POST /api/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxAccountID))
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

// Me GET /api/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	acct, err := h.Svc.GetProfile(c.Request.Context(), c.GetString(middleware.CtxAccountID))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toAccountView(acct), "profile", nil)
}

// UpdateMe PUT /api/auth/me (auth required)
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"omitempty"`
		Phone    string `json:"phone" binding:"omitempty,phone"`
		Password string `json:"password" binding:"omitempty,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	acct, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxAccountID),
		application.UpdateProfileInput{Name: req.Name, Phone: req.Phone, Password: req.Password})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toAccountView(acct), "profile updated", nil)
}

// ListAccounts GET /api/admin/accounts (admin only)
func (h *AuthHandler) ListAccounts(c *gin.Context) {
	offset, limit := pageParams(c)
	accounts, total, err := h.Svc.ListAccounts(c.Request.Context(), c.Query("role"), offset, limit)
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]accountView, 0, len(accounts))
	for i := range accounts {
		views = append(views, toAccountView(&accounts[i]))
	}
	response.Success(c, http.StatusOK, views, "accounts",
		pageMeta{Offset: offset, Limit: limit, Total: total})
}
