package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugw/ai-gallery/api/common"
	"github.com/nugw/ai-gallery/internal/auth"
	"github.com/nugw/ai-gallery/utils"
	"go.uber.org/zap"
)

// LoginHandler 登录处理器
type LoginHandler struct {
	loginService *auth.LoginService
	log          *zap.Logger
}

// NewLoginHandler 创建登录处理器
func NewLoginHandler(loginService *auth.LoginService, log *zap.Logger) *LoginHandler {
	return &LoginHandler{
		loginService: loginService,
		log:          log,
	}
}

type userAuthRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken       string `json:"access_token"`
	AccessTokenExpiry int64  `json:"access_token_expiry"`
}

// LoginHandlerFunc user login
func (h *LoginHandler) LoginHandlerFunc(c *gin.Context) {
	var req userAuthRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.loginService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownUser):
			common.RespondError(c, http.StatusUnauthorized, "Invalid username.")
		case errors.Is(err, auth.ErrWrongPassword):
			h.log.Info("failed login attempt",
				zap.String("username", utils.SanitizeLogUsername(req.Username)))
			common.RespondError(c, http.StatusUnauthorized, "Invalid password.")
		default:
			h.log.Error("login failed", zap.Error(err))
			common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	common.RespondSuccessMessage(c, "Login successful", loginResponse{
		AccessToken:       result.AccessToken,
		AccessTokenExpiry: result.AccessTokenExpiry.Unix(),
	})
}

// LogoutHandlerFunc user logout - tokens are stateless, the client discards it
func (h *LoginHandler) LogoutHandlerFunc(c *gin.Context) {
	common.RespondSuccessMessage(c, "Logout successful", nil)
}
