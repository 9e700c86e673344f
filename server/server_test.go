package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/inkpress/inkpress/auth"
	"github.com/inkpress/inkpress/file_store"
	"github.com/inkpress/inkpress/model"
	"github.com/inkpress/inkpress/utils"
	"github.com/inkpress/inkpress/utils/dotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, _ := utils.CreateTempDB(t)
	files, err := file_store.NewLocalFileStore(t.TempDir())
	require.NoError(t, err)
	return New(db, files).Router(), db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	user := &model.User{
		Id:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBlog(t *testing.T, db *gorm.DB, owner *model.User, title string, published bool) *model.Blog {
	t.Helper()
	blog := &model.Blog{
		Id:        uuid.NewString(),
		Title:     title,
		Category:  model.DefaultCategory,
		Published: published,
		AuthorID:  owner.Id,
	}
	require.NoError(t, db.Create(blog).Error)
	return blog
}

// doJSON performs a request with an optional JSON body and an optional
// session for the given user, the same way the admin UI talks to the API.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, as *model.User) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		token, err := auth.IssueToken(as)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.TokenCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestPing(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/ping", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBootstrapFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	// empty system reports not set up and accepts the first registration
	w := doJSON(t, router, http.MethodGet, "/api/auth/check-setup", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["isSetup"])

	w = doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{"email": "admin@example.com", "password": "hunter22"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/auth/check-setup", nil, nil)
	assert.Equal(t, true, decodeBody(t, w)["isSetup"])

	// open registration is closed from now on
	w = doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{"email": "late@example.com", "password": "pw"}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// missing fields rejected before any lookup
	w = doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{"email": "x@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginLifecycle(t *testing.T) {
	router, db := newTestRouter(t)
	seedUser(t, db, "admin@example.com", model.RoleSuperAdmin)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "hunter22"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	var session *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == auth.TokenCookieName {
			session = cookie
		}
	}
	require.NotNil(t, session, "login sets the token cookie")
	assert.True(t, session.HttpOnly)
	assert.Equal(t, int(auth.TokenTTL.Seconds()), session.MaxAge)

	// wrong password and unknown account produce the identical response
	wrong := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "nope"}, nil)
	unknown := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{"email": "ghost@example.com", "password": "hunter22"}, nil)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	// the me endpoint resolves the session, and reports null without one
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(session)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody(t, rec)
	require.NotNil(t, me["user"])

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Nil(t, decodeBody(t, w)["user"])
}

func TestBlogVisibilityOverHTTP(t *testing.T) {
	router, db := newTestRouter(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleSuperAdmin)
	author := seedUser(t, db, "author@example.com", model.RoleAuthor)
	other := seedUser(t, db, "other@example.com", model.RoleAuthor)

	published := seedBlog(t, db, author, "published", true)
	draft := seedBlog(t, db, author, "draft", false)

	// anonymous GET on a published blog returns the full article
	w := doJSON(t, router, http.MethodGet, "/api/blogs/"+published.Id, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "published", decodeBody(t, w)["title"])

	// an unpublished blog of the same shape is a 404, not a 403
	w = doJSON(t, router, http.MethodGet, "/api/blogs/"+draft.Id, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/blogs/"+draft.Id, nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/blogs/"+draft.Id, nil, author)
	assert.Equal(t, http.StatusOK, w.Code)

	// AUTHOR PUT on another author's blog is 403
	payload := gin.H{"title": "edit", "published": true}
	w = doJSON(t, router, http.MethodPut, "/api/blogs/"+published.Id, payload, other)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// SUPER_ADMIN PUT on any blog is 200
	w = doJSON(t, router, http.MethodPut, "/api/blogs/"+published.Id, payload, admin)
	assert.Equal(t, http.StatusOK, w.Code)

	// anonymous writes are 401
	w = doJSON(t, router, http.MethodPost, "/api/blogs", payload, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, router, http.MethodPut, "/api/blogs/"+published.Id, payload, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBlogListOverHTTP(t *testing.T) {
	router, db := newTestRouter(t)
	author := seedUser(t, db, "author@example.com", model.RoleAuthor)
	other := seedUser(t, db, "other@example.com", model.RoleAuthor)
	seedBlog(t, db, author, "mine draft", false)
	seedBlog(t, db, author, "mine published", true)
	seedBlog(t, db, other, "theirs", true)

	var listed []map[string]interface{}

	w := doJSON(t, router, http.MethodGet, "/api/blogs", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 2, "public list shows published only")

	w = doJSON(t, router, http.MethodGet, "/api/blogs?admin=true", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/blogs?admin=true", nil, author)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 2, "author admin view scoped to own blogs")
}

func TestLikeToggleOverHTTP(t *testing.T) {
	router, db := newTestRouter(t)
	author := seedUser(t, db, "author@example.com", model.RoleAuthor)
	reader := seedUser(t, db, "reader@example.com", model.RoleAuthor)
	blog := seedBlog(t, db, author, "xyz", true)

	w := doJSON(t, router, http.MethodPost, "/api/blogs/"+blog.Id+"/like", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/blogs/"+blog.Id+"/like", nil, reader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["liked"])

	w = doJSON(t, router, http.MethodPost, "/api/blogs/"+blog.Id+"/like", nil, reader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["liked"])

	w = doJSON(t, router, http.MethodGet, "/api/blogs/"+blog.Id+"/like", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, false, body["isLiked"])
}

func TestCommentsOverHTTP(t *testing.T) {
	router, db := newTestRouter(t)
	author := seedUser(t, db, "author@example.com", model.RoleAuthor)
	reader := seedUser(t, db, "reader@example.com", model.RoleAuthor)
	blog := seedBlog(t, db, author, "post", true)

	w := doJSON(t, router, http.MethodPost, "/api/blogs/"+blog.Id+"/comments", gin.H{"content": "hello"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/blogs/"+blog.Id+"/comments", gin.H{"content": "  "}, reader)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/blogs/"+blog.Id+"/comments", gin.H{"content": "hello"}, reader)
	require.Equal(t, http.StatusOK, w.Code)
	parentId := decodeBody(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/blogs/"+blog.Id+"/comments", gin.H{"content": "reply", "parentId": parentId}, author)
	require.Equal(t, http.StatusOK, w.Code)

	var comments []map[string]interface{}
	w = doJSON(t, router, http.MethodGet, "/api/blogs/"+blog.Id+"/comments", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	replies := comments[0]["replies"].([]interface{})
	assert.Len(t, replies, 1)
}

func TestUserAdminOverHTTP(t *testing.T) {
	router, db := newTestRouter(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleSuperAdmin)
	author := seedUser(t, db, "author@example.com", model.RoleAuthor)

	// authors never reach the user management surface
	w := doJSON(t, router, http.MethodGet, "/api/admin/users", nil, author)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var users []map[string]interface{}
	w = doJSON(t, router, http.MethodGet, "/api/admin/users", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)
	for _, user := range users {
		_, leaked := user["PasswordHash"]
		assert.False(t, leaked, "password hash never serialized")
	}

	w = doJSON(t, router, http.MethodPatch, "/api/admin/users/"+author.Id, gin.H{"role": "EDITOR"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/api/admin/users/"+author.Id, gin.H{"role": "SUPER_ADMIN"}, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SUPER_ADMIN", decodeBody(t, w)["role"])

	// self deletion always denied, other deletions succeed
	w = doJSON(t, router, http.MethodDelete, "/api/admin/users/"+admin.Id, nil, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, router, http.MethodDelete, "/api/admin/users/"+author.Id, nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadOverHTTP(t *testing.T) {
	router, db := newTestRouter(t)
	author := seedUser(t, db, "author@example.com", model.RoleAuthor)

	buildUpload := func() (*bytes.Buffer, string) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "cover image.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}

	body, contentType := buildUpload()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	body, contentType = buildUpload()
	req = httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	token, err := auth.IssueToken(author)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookieName, Value: token})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	url := decodeBody(t, w)["url"].(string)
	assert.Contains(t, url, "/uploads/")
	assert.Contains(t, url, "cover_image.png")
}

func TestRoleChangeAppliesImmediately(t *testing.T) {
	router, db := newTestRouter(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleSuperAdmin)
	author := seedUser(t, db, "author@example.com", model.RoleAuthor)

	// a token minted while the user was only an author...
	token, err := auth.IssueToken(author)
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPatch, "/api/admin/users/"+author.Id, gin.H{"role": "SUPER_ADMIN"}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	// ...grants admin access right away, the session middleware reloads
	// the role from the database on every request
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookieName, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExternalAuthMode(t *testing.T) {
	t.Setenv("AUTH_MODE", AuthModeExternal)
	t.Setenv("SUPER_ADMIN_EMAIL", "boss@example.com")
	router, db := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("X-Auth-External-Id", "ext-1")
	req.Header.Set("X-Auth-Email", "boss@example.com")
	req.Header.Set("X-Auth-Name", "Boss")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, db.Where("email = ?", "boss@example.com").First(&user).Error)
	assert.Equal(t, model.RoleSuperAdmin, user.Role, "configured email promoted on sync")
}
