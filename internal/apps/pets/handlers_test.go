package pets

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"testing"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/storage"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

// newTestApp mounts the plugin behind a stub that authenticates as the
// user named in the X-Test-User header.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := testutil.NewDB(t)
	store, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		var u models.User
		if err := db.Where("username = ?", c.Get("X-Test-User")).First(&u).Error; err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		identity.SetUser(c, &u)
		return c.Next()
	})
	New().RegisterRoutes(api, &apps.Deps{
		DB:     db,
		Config: &config.Config{MaxUploadSize: 1 << 20},
		Store:  store,
	})
	return &testApp{app: app, db: db}
}

func (a *testApp) do(t *testing.T, method, path, user string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", user)
	return a.send(t, req)
}

func (a *testApp) send(t *testing.T, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func TestHandlers_PetLifecycle(t *testing.T) {
	a := newTestApp(t)
	testutil.CreateUser(t, a.db, "alice")
	testutil.CreateUser(t, a.db, "bob")

	resp, body := a.do(t, http.MethodPost, "/api/pets", "alice", map[string]interface{}{
		"name": "Buddy", "breed": "Golden", "age": 24,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "2岁", body["age_display"])
	assert.Equal(t, float64(1), body["level"])
	assert.Equal(t, []interface{}{}, body["personality_tags"])
	id := int(body["id"].(float64))
	path := "/api/pets/" + strconv.Itoa(id)

	resp, body = a.do(t, http.MethodGet, path, "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Buddy", body["name"])
	assert.Equal(t, []interface{}{}, body["photos"])

	resp, body = a.do(t, http.MethodGet, path, "bob", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, true, body["error"])

	resp, _ = a.do(t, http.MethodGet, "/api/pets/abc", "alice", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = a.do(t, http.MethodPost, path+"/interaction", "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["interaction_count"])

	resp, body = a.do(t, http.MethodPatch, path+"/mood", "alice", map[string]string{"mood": "sleepy"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "sleepy", body["current_mood"])

	resp, _ = a.do(t, http.MethodPatch, path+"/mood", "alice", map[string]string{"mood": "grumpy"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = a.do(t, http.MethodPut, path, "alice", map[string]interface{}{"weight": 30.5})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 30.5, body["weight"])
	assert.Equal(t, "Buddy", body["name"])

	resp, body = a.do(t, http.MethodGet, "/api/pets/stats", "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total_pets"])

	resp, body = a.do(t, http.MethodGet, path+"/ai-prompt", "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body["ai_prompt"], "Buddy")

	resp, _ = a.do(t, http.MethodDelete, path, "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = a.do(t, http.MethodGet, path, "alice", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = a.do(t, http.MethodGet, "/api/pets", "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["total"])
}

func TestHandlers_Photos(t *testing.T) {
	a := newTestApp(t)
	testutil.CreateUser(t, a.db, "alice")

	_, body := a.do(t, http.MethodPost, "/api/pets", "alice", map[string]string{"name": "Mimi", "breed": "Ragdoll"})
	path := "/api/pets/" + strconv.Itoa(int(body["id"].(float64)))

	resp, body := a.do(t, http.MethodPost, path+"/photos", "alice", map[string]interface{}{
		"url": "https://cdn.example.com/a.jpg", "is_avatar": true,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	linkedID := int(body["id"].(float64))

	resp, body = a.send(t, multipartUpload(t, path+"/upload-photo", "image/png", pngBytes(t, 3, 3), true))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	uploaded := body["photo"].(map[string]interface{})
	assert.Equal(t, true, uploaded["is_avatar"])
	assert.Equal(t, float64(3), uploaded["width"])

	resp, _ = a.send(t, multipartUpload(t, path+"/upload-photo", "application/pdf", []byte("%PDF-1.4"), false))
	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)

	resp, body = a.do(t, http.MethodGet, path+"/photos", "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total"])
	photos := body["photos"].([]interface{})
	assert.Equal(t, uploaded["id"], photos[0].(map[string]interface{})["id"])

	resp, _ = a.do(t, http.MethodDelete, "/api/pets/photos/"+strconv.Itoa(linkedID), "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = a.do(t, http.MethodDelete, "/api/pets/photos/"+strconv.Itoa(linkedID), "alice", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func multipartUpload(t *testing.T, path, contentType string, data []byte, avatar bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="photo.bin"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	if avatar {
		require.NoError(t, w.WriteField("is_avatar", "true"))
	}
	require.NoError(t, w.WriteField("description", "hello"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Test-User", "alice")
	return req
}
