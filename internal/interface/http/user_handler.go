package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/libhub/library-api/internal/application"
	"github.com/libhub/library-api/internal/domain/entity"
	"github.com/libhub/library-api/internal/domain/repository"
	"github.com/libhub/library-api/internal/interface/middleware"
	"github.com/libhub/library-api/internal/shaping"
	"github.com/libhub/library-api/pkg/helpers"
	"github.com/libhub/library-api/pkg/response"
	"github.com/libhub/library-api/pkg/validation"
)

// UserHandler serves user listing, the create/register pipeline and the
// login/logout/refresh session flows.
type UserHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// List GET /users?include_related=true
// Users are annotated with their post count and filtered to those having
// at least one post; include_related nests each user's reviews.
func (h *UserHandler) List(c *gin.Context) {
	includeRelated := strings.EqualFold(c.Query("include_related"), "true")

	users, err := h.Svc.Repo.ListWithPosts(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.PersistenceFailed(c, err)
		return
	}

	var reviews map[int64][]entity.Review
	if includeRelated {
		ids := make([]int64, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		reviews, err = h.Svc.Repo.ReviewsByUserIDs(c.Request.Context(), ids)
		if err != nil {
			h.Logger.WithError(err).Error("load user reviews failed")
			response.PersistenceFailed(c, err)
			return
		}
	}

	views := make([]shaping.UserListView, 0, len(users))
	for i := range users {
		u := &users[i]
		views = append(views, shaping.UserList(&u.User, u.PostsCnt, reviews[u.ID], includeRelated))
	}
	response.JSON(c, http.StatusOK, views)
}

// Create POST /users
func (h *UserHandler) Create(c *gin.Context) {
	u, ok := h.runCreatePipeline(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusCreated, shaping.UserDetail(u))
}

// Register POST /users/register runs the same create pipeline and
// additionally opens a session by attaching the token pair cookies.
func (h *UserHandler) Register(c *gin.Context) {
	u, ok := h.runCreatePipeline(c)
	if !ok {
		return
	}
	pair, err := h.Svc.IssueTokens(u)
	if err != nil {
		response.Internal(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.JSON(c, http.StatusCreated, shaping.UserDetail(u))
}

// runCreatePipeline binds and validates the create input and persists the
// user, writing the error response itself on failure.
func (h *UserHandler) runCreatePipeline(c *gin.Context) (*entity.User, bool) {
	var in shaping.UserCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return nil, false
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), in)
	if errors.Is(err, entity.ErrUnknownRole) {
		response.ValidationFailed(c, map[string]string{"role": "must be one of: reader, moderator, admin"})
		return nil, false
	}
	if errors.Is(err, repository.ErrDuplicate) {
		response.ValidationFailed(c, map[string]string{"username": "already exists"})
		return nil, false
	}
	if err != nil {
		h.Logger.WithError(err).Error("create user failed")
		response.PersistenceFailed(c, err)
		return nil, false
	}
	return u, true
}

// Login POST /users/login. Success is a bare 200 with the pair attached
// as cookies; bad credentials are a generic 401 that never reveals which
// part was wrong.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Unauthorized(c, "Invalid username or password")
		return
	}
	u, err := h.Svc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, application.ErrInvalidCredentials) {
		response.Unauthorized(c, "Invalid username or password")
		return
	}
	if err != nil {
		h.Logger.WithError(err).Error("login failed")
		response.Internal(c, err)
		return
	}
	pair, err := h.Svc.IssueTokens(u)
	if err != nil {
		response.Internal(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	c.Status(http.StatusOK)
}

// Logout POST /users/logout. The refresh token, when present, is
// blacklisted so it can no longer mint access tokens; both cookies are
// cleared either way and a missing token is not an error.
func (h *UserHandler) Logout(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err == nil && refresh != "" {
		if err := h.Svc.Logout(c.Request.Context(), refresh); err != nil {
			h.Logger.WithError(err).Error("refresh token revocation failed")
			response.Internal(c, err)
			return
		}
	}
	h.Cookies.Clear(c)
	c.Status(http.StatusOK)
}

// Refresh POST /users/refresh rotates the token pair. The presented
// refresh token must not have been revoked.
func (h *UserHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Unauthorized(c, "missing refresh token")
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if errors.Is(err, application.ErrInvalidCredentials) {
		response.Unauthorized(c, "invalid refresh token")
		return
	}
	if err != nil {
		h.Logger.WithError(err).Error("token refresh failed")
		response.Internal(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	c.Status(http.StatusOK)
}

// Profile GET /users/profile (auth required)
func (h *UserHandler) Profile(c *gin.Context) {
	uid := c.GetInt64(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if errors.Is(err, application.ErrUserNotFound) {
		response.NotFound(c, "user not found")
		return
	}
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shaping.UserDetail(u))
}
