package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"specdocs-backend/internal/models"
	"specdocs-backend/internal/supabase"
)

type UsersHandler struct {
	supabaseClient *supabase.Client
}

func NewUsersHandler(supabaseClient *supabase.Client) *UsersHandler {
	return &UsersHandler{
		supabaseClient: supabaseClient,
	}
}

// GetCurrentUser godoc
// @Summary     Get the current user
// @Description Resolves the bearer token against Supabase Auth and returns the user profile.
// @Tags        users
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.UserResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /users/me [get]
func (h *UsersHandler) GetCurrentUser(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing bearer token"})
		return
	}
	token := strings.TrimSpace(parts[1])

	user, err := h.supabaseClient.Supabase.Auth.WithToken(token).GetUser()
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "invalid token",
			Message: err.Error(),
		})
		return
	}

	response := models.UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
	}
	if name, ok := user.UserMetadata["full_name"].(string); ok {
		response.Name = name
	} else if name, ok := user.UserMetadata["name"].(string); ok {
		response.Name = name
	}
	if avatar, ok := user.UserMetadata["avatar_url"].(string); ok {
		response.AvatarURL = avatar
	}

	c.JSON(http.StatusOK, response)
}
