package controllers

import (
	"net/http"

	"github.com/Ggirassol/myIntake-API/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	users  *services.UserService
	tokens *services.TokenService
}

func NewAuthController(users *services.UserService, tokens *services.TokenService) *AuthController {
	return &AuthController{users: users, tokens: tokens}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing required fields"})
		return
	}

	created, err := ac.users.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, gin.H{"msg": "User created. Verification email sent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Verification email resent"})
}

func (ac *AuthController) VerifyEmail(c *gin.Context) {
	token := c.Param("token")
	email := c.Param("email")

	if err := ac.users.Verify(c.Request.Context(), token, email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Email successfully verified"})
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing required fields"})
		return
	}

	access, refresh, err := ac.users.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
	}})
}

type RefreshInput struct {
	Token string `json:"token"`
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing required fields"})
		return
	}

	access, err := ac.tokens.Refresh(c.Request.Context(), input.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": gin.H{"accessToken": access}})
}

func (ac *AuthController) Logout(c *gin.Context) {
	userID := c.GetString("userID")

	if err := ac.tokens.Revoke(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Logged out"})
}
