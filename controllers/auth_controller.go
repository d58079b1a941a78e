package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autolot-api/models"
	"autolot-api/repositories"
	"autolot-api/schemas"
	"autolot-api/services"
	"autolot-api/utils"
)

type AuthController struct {
	users     *repositories.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthController(db *gorm.DB, jwtSecret string, jwtExpiry time.Duration) *AuthController {
	return &AuthController{
		users:     repositories.NewUserRepository(db),
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login handles POST /login. An unknown email and a wrong password produce
// the same response, so the endpoint does not reveal which emails exist.
func (ac *AuthController) Login(c *gin.Context) {
	var req schemas.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if violations := schemas.Validate(&req); violations != nil {
		utils.SendValidationErrors(c, violations)
		return
	}

	user, err := ac.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		utils.RespondError(c, err)
		return
	}

	if !services.CheckPassword(req.Password, user.Password) {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := services.IssueToken(user.ID, ac.jwtSecret, ac.jwtExpiry)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  *user,
	})
}
