package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/dinerozz/parts-analytics-backend/internal/model/request"
	"github.com/dinerozz/parts-analytics-backend/internal/model/response/wrapper"
	"github.com/dinerozz/parts-analytics-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const cookieMaxAge = 3600 * 24

// AuthHandler authenticates the single dashboard administrator configured by env.
type AuthHandler struct {
	username     string
	passwordHash string
}

func NewAuthHandler(username, passwordHash string) *AuthHandler {
	return &AuthHandler{username: username, passwordHash: passwordHash}
}

// Login godoc
// @Summary Admin login
// @Description Checks the admin credentials and sets the token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body request.AdminLogin true "Credentials"
// @Success 200 {object} wrapper.ResponseWrapper{data=string}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /admin/auth [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.AdminLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	if h.passwordHash == "" {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: "Admin login is not configured", Success: false})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "Invalid username or password", Success: false})
		return
	}

	token, err := utils.GenerateToken(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.SetCookie("token", token, cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: token, Success: true})
}

// Logout godoc
// @Summary Admin logout
// @Description Clears the authentication cookie
// @Tags auth
// @Produce json
// @Success 200 {object} wrapper.SuccessWrapper{message=string}
// @Router /admin/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{
		Message: "Successfully logged out",
		Success: true,
	})
}
