package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/service"
)

type AuthHandler struct {
	auth   service.IAuthService
	expose bool
}

func NewAuthHandler(auth service.IAuthService, exposeDetails bool) *AuthHandler {
	return &AuthHandler{auth: auth, expose: exposeDetails}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)

	users := router.Group("/users")
	{
		users.PUT("/favorites", h.AddFavorite)
		users.GET("/:id/favorites", h.ListFavorites)
	}
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

type FavoriteRequest struct {
	UserID string        `json:"userId"`
	Recipe *model.Recipe `json:"recipe"`
}

type FavoritesResponse struct {
	Message   string         `json:"message"`
	Favorites []model.Recipe `json:"favorites"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", err, h.expose)
		return
	}

	_, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, MessageResponse{Message: "User registered successfully"})
	case errors.Is(err, service.ErrMissingCredentials):
		fail(c, http.StatusBadRequest, "Email and password are required", nil, h.expose)
	case errors.Is(err, service.ErrUserExists):
		fail(c, http.StatusBadRequest, "User already exists", nil, h.expose)
	default:
		fail(c, http.StatusInternalServerError, "Error registering user", err, h.expose)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", err, h.expose)
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", User: user})
	case errors.Is(err, service.ErrUserNotFound):
		fail(c, http.StatusNotFound, "User not found", nil, h.expose)
	case errors.Is(err, service.ErrIncorrectPassword):
		fail(c, http.StatusBadRequest, "Incorrect password", nil, h.expose)
	default:
		fail(c, http.StatusInternalServerError, "Error logging in", err, h.expose)
	}
}

func (h *AuthHandler) AddFavorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", err, h.expose)
		return
	}
	if req.UserID == "" || req.Recipe == nil {
		fail(c, http.StatusBadRequest, "userId and recipe are required", nil, h.expose)
		return
	}

	favorites, err := h.auth.AddFavorite(c.Request.Context(), req.UserID, *req.Recipe)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, FavoritesResponse{Message: "Recipe added to favorites", Favorites: favorites})
	case errors.Is(err, service.ErrUserNotFound):
		fail(c, http.StatusNotFound, "User not found", nil, h.expose)
	default:
		fail(c, http.StatusInternalServerError, "Error updating favorites", err, h.expose)
	}
}

func (h *AuthHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.auth.Favorites(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, favorites)
	case errors.Is(err, service.ErrUserNotFound):
		fail(c, http.StatusNotFound, "User not found", nil, h.expose)
	default:
		fail(c, http.StatusInternalServerError, "Error fetching favorites", err, h.expose)
	}
}
