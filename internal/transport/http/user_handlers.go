package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avelichko/gameroom-server/internal/auth"
	"github.com/avelichko/gameroom-server/internal/store"
)

// UserHandlers provides HTTP handlers for user operations.
type UserHandlers struct {
	store  store.Store
	jwtCfg *auth.JWTConfig
	log    *zerolog.Logger
}

// NewUserHandlers creates a new user handlers instance.
func NewUserHandlers(st store.Store, jwtCfg *auth.JWTConfig, logger *zerolog.Logger) *UserHandlers {
	return &UserHandlers{
		store:  st,
		jwtCfg: jwtCfg,
		log:    logger,
	}
}

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token,omitempty"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Register handles user registration.
// POST /api/users
func (h *UserHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid register request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), req.Name, "")
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "user with this name already exists"})
			return
		}
		h.log.Error().Err(err).Str("name", req.Name).Msg("failed to create user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	token, err := auth.GenerateToken(h.jwtCfg, user.ID, user.Name)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", user.ID).Msg("failed to generate token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	if err := h.store.UpdateUserToken(c.Request.Context(), user.ID, token); err != nil {
		h.log.Error().Err(err).Int64("user_id", user.ID).Msg("failed to persist token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("name", user.Name).Int64("user_id", user.ID).Msg("user registered")
	c.JSON(http.StatusCreated, UserResponse{ID: user.ID, Name: user.Name, Token: token})
}

// GetByID handles fetching a single user.
// GET /api/users/:id
func (h *UserHandlers) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		h.log.Error().Err(err).Int64("user_id", id).Msg("failed to fetch user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, UserResponse{ID: user.ID, Name: user.Name})
}

// List handles listing all users.
// GET /api/users
func (h *UserHandlers) List(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list users")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, UserResponse{ID: u.ID, Name: u.Name})
	}
	c.JSON(http.StatusOK, response)
}

// Me returns the authenticated user.
// GET /api/me
func (h *UserHandlers) Me(c *gin.Context) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		h.log.Error().Msg("user_id not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	uid, ok := userID.(int64)
	if !ok {
		h.log.Error().Msg("invalid user_id type in context")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		h.log.Error().Err(err).Int64("user_id", uid).Msg("failed to fetch user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, UserResponse{ID: user.ID, Name: user.Name})
}
