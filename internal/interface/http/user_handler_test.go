package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libhub/library-api/internal/application"
	"github.com/libhub/library-api/internal/domain/entity"
	"github.com/libhub/library-api/internal/interface/middleware"
	"github.com/libhub/library-api/pkg/helpers"
)

type userTestEnv struct {
	router *gin.Engine
	repo   *fakeUserRepo
	bl     *fakeBlacklist
	n      *recordingNotifier
	jwt    *helpers.JWTManager
}

func newUserEnv() *userTestEnv {
	repo := newFakeUserRepo()
	bl := newFakeBlacklist()
	n := &recordingNotifier{}
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	svc := application.NewUserService(repo, jwt, bl, n, testLogger())
	h := NewUserHandler(svc, testLogger(), "localhost", false)

	r := gin.New()
	r.GET("/users", h.List)
	r.POST("/users", h.Create)
	r.POST("/users/register", h.Register)
	r.POST("/users/login", h.Login)
	r.POST("/users/logout", h.Logout)
	r.POST("/users/refresh", h.Refresh)
	r.GET("/users/profile", middleware.Auth(jwt), h.Profile)
	return &userTestEnv{router: r, repo: repo, bl: bl, n: n, jwt: jwt}
}

func (e *userTestEnv) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func (e *userTestEnv) seedReader(username, password string) entity.User {
	hash, _ := helpers.HashPassword(password)
	return e.repo.seed(entity.User{
		Username:   username,
		Email:      username + "@example.com",
		FirstName:  "John",
		LastName:   "Doe",
		Role:       entity.RoleReader,
		Password:   hash,
		DateJoined: time.Now(),
	}, 0)
}

const createBody = `{"username":"jdoe","email":"jdoe@example.com","first_name":"John","last_name":"Doe","role":"reader","gender":"male","password":"secret-password","re_password":"secret-password"}`

func TestUserListFiltersUsersWithoutPosts(t *testing.T) {
	env := newUserEnv()
	env.repo.seed(entity.User{Username: "writer", Role: entity.RoleReader}, 2)
	env.repo.seed(entity.User{Username: "lurker", Role: entity.RoleReader}, 0)

	w := env.do(http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "writer", got[0]["username"])
	assert.Equal(t, float64(2), got[0]["posts_cnt"])
	assert.NotContains(t, got[0], "reviews")
}

func TestUserListIncludeRelated(t *testing.T) {
	env := newUserEnv()
	env.repo.seed(entity.User{Username: "writer", Role: entity.RoleReader}, 1,
		entity.Review{ID: 9, Rating: 4, Description: "nice"})

	w := env.do(http.MethodGet, "/users?include_related=true", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	revs, ok := got[0]["reviews"].([]any)
	require.True(t, ok, "reviews must be nested when include_related=true")
	require.Len(t, revs, 1)
	assert.Equal(t, float64(4), revs[0].(map[string]any)["rating"])
}

func TestUserListIncludeRelatedEmpty(t *testing.T) {
	env := newUserEnv()
	env.repo.seed(entity.User{Username: "writer", Role: entity.RoleReader}, 1)

	w := env.do(http.MethodGet, "/users?include_related=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reviews":[]`)
}

func TestUserCreate(t *testing.T) {
	env := newUserEnv()
	w := env.do(http.MethodPost, "/users", createBody)

	require.Equal(t, http.StatusCreated, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "jdoe", got["username"])
	assert.Equal(t, false, got["is_staff"])
	assert.NotContains(t, got, "password")
	assert.Nil(t, cookieByName(w, "access_token"), "plain create opens no session")
}

func TestUserCreateValidation(t *testing.T) {
	env := newUserEnv()
	body := `{"username":"jdoe","email":"bad","first_name":"J0hn","last_name":"Doe","role":"reader","password":"short","re_password":"other"}`
	w := env.do(http.MethodPost, "/users", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var details map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must contain latin letters only", details["first_name"])
	assert.Equal(t, "must be at least 8 characters long", details["password"])
	assert.Equal(t, "passwords must match", details["re_password"])
	assert.Empty(t, env.repo.users)
}

func TestUserCreateUnknownRole(t *testing.T) {
	env := newUserEnv()
	body := strings.Replace(createBody, `"role":"reader"`, `"role":"superuser"`, 1)
	w := env.do(http.MethodPost, "/users", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"role":"must be one of: reader, moderator, admin"}`, w.Body.String())
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	env := newUserEnv()
	env.seedReader("jdoe", "secret-password")

	w := env.do(http.MethodPost, "/users", createBody)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"username":"already exists"}`, w.Body.String())
	assert.Len(t, env.repo.users, 1, "the collision must not persist a second row")
}

func TestUserRegisterDuplicateUsername(t *testing.T) {
	env := newUserEnv()
	env.seedReader("jdoe", "secret-password")

	w := env.do(http.MethodPost, "/users/register", createBody)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"username":"already exists"}`, w.Body.String())
	assert.Nil(t, cookieByName(w, "access_token"), "no session on a failed create")
}

func TestUserCreateModeratorNotifies(t *testing.T) {
	env := newUserEnv()
	body := strings.Replace(createBody, `"role":"reader"`, `"role":"moderator"`, 1)
	w := env.do(http.MethodPost, "/users", body)

	require.Equal(t, http.StatusCreated, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, true, got["is_staff"])
	assert.Equal(t, []string{"jdoe:jdoe@example.com"}, env.n.moderatorEvents)
}

func TestUserRegisterOpensSession(t *testing.T) {
	env := newUserEnv()
	w := env.do(http.MethodPost, "/users/register", createBody)

	require.Equal(t, http.StatusCreated, w.Code)
	access := cookieByName(w, "access_token")
	refresh := cookieByName(w, "refresh_token")
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)

	claims, err := env.jwt.ParseAccessToken(access.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
}

func TestUserLogin(t *testing.T) {
	env := newUserEnv()
	env.seedReader("jdoe", "secret-password")

	w := env.do(http.MethodPost, "/users/login", `{"username":"jdoe","password":"secret-password"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, cookieByName(w, "access_token"))
	assert.NotNil(t, cookieByName(w, "refresh_token"))
	assert.Empty(t, w.Body.String(), "login success is a bare 200")
}

func TestUserLoginBadPassword(t *testing.T) {
	env := newUserEnv()
	env.seedReader("jdoe", "secret-password")

	w := env.do(http.MethodPost, "/users/login", `{"username":"jdoe","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Invalid username or password"}`, w.Body.String())
	assert.Nil(t, cookieByName(w, "access_token"))
}

func TestUserLoginUnknownUsername(t *testing.T) {
	env := newUserEnv()
	w := env.do(http.MethodPost, "/users/login", `{"username":"nobody","password":"whatever"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Invalid username or password"}`, w.Body.String())
}

func TestUserLoginMalformedBody(t *testing.T) {
	env := newUserEnv()
	w := env.do(http.MethodPost, "/users/login", `{"username":`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Invalid username or password"}`, w.Body.String())
}

func TestUserLogoutRevokesAndClears(t *testing.T) {
	env := newUserEnv()
	u := env.seedReader("jdoe", "secret-password")
	refresh, _, err := env.jwt.GenerateRefreshToken(u.ID)
	require.NoError(t, err)

	w := env.do(http.MethodPost, "/users/logout", "", &http.Cookie{Name: "refresh_token", Value: refresh})
	require.Equal(t, http.StatusOK, w.Code)

	claims, err := env.jwt.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.True(t, env.bl.revoked[claims.ID])

	access := cookieByName(w, "access_token")
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.Negative(t, access.MaxAge, "logout expires the cookie")
}

func TestUserLogoutWithoutCookie(t *testing.T) {
	env := newUserEnv()
	w := env.do(http.MethodPost, "/users/logout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.bl.revoked)
}

func TestUserRefreshRotates(t *testing.T) {
	env := newUserEnv()
	u := env.seedReader("jdoe", "secret-password")
	refresh, _, err := env.jwt.GenerateRefreshToken(u.ID)
	require.NoError(t, err)

	w := env.do(http.MethodPost, "/users/refresh", "", &http.Cookie{Name: "refresh_token", Value: refresh})
	require.Equal(t, http.StatusOK, w.Code)

	rotated := cookieByName(w, "refresh_token")
	require.NotNil(t, rotated)
	assert.NotEqual(t, refresh, rotated.Value)

	// the old token is revoked by the rotation
	w2 := env.do(http.MethodPost, "/users/refresh", "", &http.Cookie{Name: "refresh_token", Value: refresh})
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestUserRefreshMissingCookie(t *testing.T) {
	env := newUserEnv()
	w := env.do(http.MethodPost, "/users/refresh", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"missing refresh token"}`, w.Body.String())
}

func TestUserProfileRequiresAuth(t *testing.T) {
	env := newUserEnv()
	w := env.do(http.MethodGet, "/users/profile", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"missing access token"}`, w.Body.String())
}

func TestUserProfileRejectsBadToken(t *testing.T) {
	env := newUserEnv()
	w := env.do(http.MethodGet, "/users/profile", "", &http.Cookie{Name: "access_token", Value: "garbage"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"invalid access token"}`, w.Body.String())
}

func TestUserProfile(t *testing.T) {
	env := newUserEnv()
	u := env.seedReader("jdoe", "secret-password")
	access, _, err := env.jwt.GenerateAccessToken(u.ID)
	require.NoError(t, err)

	w := env.do(http.MethodGet, "/users/profile", "", &http.Cookie{Name: "access_token", Value: access})
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "jdoe", got["username"])
}
