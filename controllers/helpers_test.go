package controllers_test

import (
	"Mixtape/middleware"
	models "Mixtape/models/postgres"
	"Mixtape/routes"
	"Mixtape/services/game"
	"Mixtape/services/live"
	"Mixtape/services/storage"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Each test gets its own named in-memory database so tables don't leak
// between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		models.Participant{},
		models.GameSession{},
		models.Guess{},
		models.GameSetting{})
	require.NoError(t, err)

	return db
}

// newServer wires the full router the way main does, minus Redis.
func newServer(t *testing.T, db *gorm.DB) *gin.Engine {
	return newServerWithWindow(t, db, game.AlwaysOpen())
}

func newServerWithWindow(t *testing.T, db *gorm.DB, window game.WindowPolicy) *gin.Engine {
	t.Helper()
	t.Setenv("SESSION_SECRET", "controller-test-secret")

	store, err := storage.NewLocalStore(t.TempDir(), "/photos")
	require.NoError(t, err)

	r := gin.New()
	middleware.SetUpMiddleware(r)
	routes.SetupRoutes(r, db, nil, live.NewHub(), store, window)
	return r
}

func seedParticipant(t *testing.T, db *gorm.DB, name string, withPhoto bool, isAdmin bool) *models.Participant {
	t.Helper()

	p := models.Participant{
		Name:    name,
		Email:   name + "@example.com",
		Artist1: "Artist One of " + name,
		Artist2: "Artist Two of " + name,
		Artist3: "Artist Three of " + name,
		IsAdmin: isAdmin,
	}
	if withPhoto {
		url := "/photos/" + name + ".jpg"
		p.PhotoURL = &url
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func seedRoster(t *testing.T, db *gorm.DB, names ...string) []*models.Participant {
	t.Helper()

	roster := make([]*models.Participant, len(names))
	for i, name := range names {
		roster[i] = seedParticipant(t, db, name, true, false)
	}
	return roster
}

func tokenFor(t *testing.T, p *models.Participant) string {
	t.Helper()

	token, err := middleware.GenerateToken(p)
	require.NoError(t, err)
	return token
}

// doJSON performs a request with an optional bearer token and JSON body and
// decodes the JSON response into a generic map.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "text/csv" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded),
			"response was not JSON: %s", w.Body.String())
	}
	return w.Code, decoded
}

func doRaw(t *testing.T, r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
