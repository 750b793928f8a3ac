package handlers

import (
	"MediCore/models"
	"MediCore/services"
	"MediCore/utils"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	UserService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{
		UserService: userService,
	}
}

// Register handles new user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if err := h.UserService.ValidateAndCreateUser(ctx, &user); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Validation failed: %v", err)})
		return
	}

	c.Status(201)
}

// Login authenticates the user with email and password and returns tokens
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.AuthenticateUser(ctx, credentials.Email, credentials.Password)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid email or password"})
		return
	}

	h.issueTokens(c, user)
}

// SendOtp emails a one-time login code to the user
func (h *AuthHandler) SendOtp(c *gin.Context) {
	var data struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if err := h.UserService.SendLoginOtp(ctx, data.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(200)
}

// VerifyOtp exchanges a one-time code for tokens
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var data struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.VerifyLoginOtp(ctx, data.Email, data.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.issueTokens(c, user)
}

func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) {
	accessToken, refreshToken, err := utils.GenerateTokens(strconv.FormatInt(user.ID, 10), user.Role.Name)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate tokens: %v", err)})
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(200, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"role":         user.Role.Name,
	})
}

// RefreshToken exchanges a valid refresh token for a new access token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var data struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&data); err != nil || data.RefreshToken == "" {
		if cookie, cerr := c.Cookie("refreshToken"); cerr == nil {
			data.RefreshToken = cookie
		}
	}
	if data.RefreshToken == "" {
		c.JSON(400, gin.H{"error": "Refresh token is required"})
		return
	}

	claims, err := utils.ValidateToken(data.RefreshToken)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate access token: %v", err)})
		return
	}

	c.JSON(200, gin.H{
		"accessToken": accessToken,
	})
}

// Logoff logs the user out by clearing cookies
func (h *AuthHandler) Logoff(c *gin.Context) {
	utils.ClearAuthCookies(c)
	c.Status(200)
}

// GetUserProfile retrieves the current user's profile
func (h *AuthHandler) GetUserProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.GetUserByID(ctx, actor.UserID)
	if err != nil || user == nil {
		c.JSON(404, gin.H{"error": "User not found"})
		return
	}

	c.JSON(200, gin.H{"user": user})
}

// UpdateUserProfile updates the user's profile information
func (h *AuthHandler) UpdateUserProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var updateData struct {
		Username string `json:"username"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if err := h.UserService.UpdateUserProfile(ctx, actor.UserID, updateData.Username, updateData.Phone); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(200)
}

// ChangePassword updates the authenticated user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var data struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.GetUserByID(ctx, actor.UserID)
	if err != nil || user == nil {
		c.JSON(404, gin.H{"error": "User not found"})
		return
	}

	if _, err := h.UserService.AuthenticateUser(ctx, user.Email, data.CurrentPassword); err != nil {
		c.JSON(401, gin.H{"error": "Current password is incorrect"})
		return
	}

	if err := utils.ValidateNewPassword(data.NewPassword); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Invalid new password: %v", err)})
		return
	}

	hashedPassword, err := utils.HashPassword(data.NewPassword)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to hash password: %v", err)})
		return
	}

	if err := h.UserService.UpdateUserPassword(ctx, actor.UserID, hashedPassword); err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to update password: %v", err)})
		return
	}

	c.Status(200)
}

// GetPermissions lists the authenticated user's permissions
func (h *AuthHandler) GetPermissions(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	permissions, err := h.UserService.GetUserPermissions(ctx, actor.UserID)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to retrieve permissions: %v", err)})
		return
	}

	c.JSON(200, gin.H{"permissions": permissions})
}
