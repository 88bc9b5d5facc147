package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"ctchen222/signup-form/internal/api/models"
	"ctchen222/signup-form/internal/api/repository"
	"ctchen222/signup-form/internal/api/response"
	"ctchen222/signup-form/internal/api/service"

	"github.com/gin-gonic/gin"
)

const headerRecaptchaToken = "X-ReCaptcha-Token"

// RegistrationController handles the stub registration endpoint.
type RegistrationController struct {
	service      service.RegistrationService
	requireToken bool
}

// NewRegistrationController creates a RegistrationController. With
// requireToken set, requests without a reCAPTCHA token are refused.
func NewRegistrationController(svc service.RegistrationService, requireToken bool) *RegistrationController {
	return &RegistrationController{service: svc, requireToken: requireToken}
}

// Register handles POST /api/register.
func (rc *RegistrationController) Register(c *gin.Context) {
	if rc.requireToken && c.GetHeader(headerRecaptchaToken) == "" {
		response.ErrorResponse(c, http.StatusForbidden, "missing recaptcha token")
		return
	}

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	reg, err := rc.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.ErrorResponse(c, http.StatusConflict, "duplicate email")
			return
		}
		slog.ErrorContext(c.Request.Context(), "registration failed", "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "registration failed")
		return
	}

	response.SuccessResponse(c, http.StatusCreated, models.RegisterResponse{
		ID:     reg.ID,
		Email:  reg.Email,
		Status: "pending_verification",
	})
}

// Health handles GET /healthz.
func (rc *RegistrationController) Health(c *gin.Context) {
	response.SuccessResponse(c, http.StatusOK, gin.H{"status": "ok"})
}
