package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autolot-api/models"
	"autolot-api/repositories"
	"autolot-api/schemas"
	"autolot-api/services"
	"autolot-api/utils"
)

type UserController struct {
	users        *repositories.UserRepository
	emailService *services.EmailService
}

func NewUserController(db *gorm.DB, emailService *services.EmailService) *UserController {
	return &UserController{
		users:        repositories.NewUserRepository(db),
		emailService: emailService,
	}
}

// CreateUser handles POST /user (public). The password is hashed before it
// touches storage; the response never carries the digest.
func (uc *UserController) CreateUser(c *gin.Context) {
	var req schemas.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if violations := schemas.Validate(&req); violations != nil {
		utils.SendValidationErrors(c, violations)
		return
	}

	digest, err := services.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: digest,
	}

	if err := uc.users.Create(&user); err != nil {
		utils.RespondError(c, err)
		return
	}

	go uc.emailService.SendWelcomeEmail(user.Email, user.Name)

	c.JSON(http.StatusCreated, user)
}

// FindUser handles POST /user/find (protected): looks a user up by email.
func (uc *UserController) FindUser(c *gin.Context) {
	var req schemas.FindUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if violations := schemas.Validate(&req); violations != nil {
		utils.SendValidationErrors(c, violations)
		return
	}

	user, err := uc.users.FindByEmail(req.Email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
