// internal/handlers/admin_auth.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/newerastudio/storefront/internal/config"
	"github.com/newerastudio/storefront/internal/utils"
)

// AdminAuthHandler issues and clears the admin session cookie. There are no
// admin user records; access is gated by a single shared password.
type AdminAuthHandler struct {
	cfg *config.Config
}

func NewAdminAuthHandler(cfg *config.Config) *AdminAuthHandler {
	return &AdminAuthHandler{cfg: cfg}
}

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// POST /api/admin/auth
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if req.Password != h.cfg.Admin.Password {
		logrus.WithField("ip", c.ClientIP()).Warn("Failed admin login attempt")
		utils.UnauthorizedResponse(c, "Invalid password")
		return
	}

	token, err := utils.GenerateSessionToken()
	if err != nil {
		logrus.WithError(err).Error("Failed to generate admin session token")
		utils.InternalErrorResponse(c, "Failed to create session")
		return
	}

	secure := h.cfg.Environment == "production"
	c.SetCookie(utils.AdminSessionCookie, token, int(utils.SessionTTL.Seconds()), "/", "", secure, true)
	utils.SuccessResponse(c, gin.H{"authenticated": true})
}

// DELETE /api/admin/auth
func (h *AdminAuthHandler) Logout(c *gin.Context) {
	secure := h.cfg.Environment == "production"
	c.SetCookie(utils.AdminSessionCookie, "", -1, "/", "", secure, true)
	utils.SuccessResponse(c, gin.H{"authenticated": false})
}
