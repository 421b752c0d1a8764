package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterCSV = `name,email,artist_1,artist_2,artist_3
Alice,alice@example.com,Radiohead,Björk,Portishead
Bob,bob@example.com,Kraftwerk,Can,Neu!
`

func TestImportParticipantsFromCSV(t *testing.T) {
	db := newTestDB(t)
	r := newServer(t, db)
	admin := seedParticipant(t, db, "gamemaster", false, true)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "roster.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(rosterCSV))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/auth/admin/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, admin))

	w := doRaw(t, r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"imported":2`)

	// The imported people can log in right away
	code, _ := doJSON(t, r, http.MethodPost, "/login", "", map[string]string{"email": "bob@example.com"})
	assert.Equal(t, http.StatusOK, code)
}

func TestImportParticipantsFromJSON(t *testing.T) {
	db := newTestDB(t)
	r := newServer(t, db)
	admin := seedParticipant(t, db, "gamemaster", false, true)

	code, body := doJSON(t, r, http.MethodPost, "/auth/admin/import", tokenFor(t, admin), map[string]interface{}{
		"participants": []map[string]string{
			{"name": "Carol", "email": "carol@example.com", "artist_1": "Sade", "artist_2": "Prince", "artist_3": "D'Angelo"},
			{"name": "Broken Row", "email": "broken@example.com"},
		},
	})
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["imported"])
	assert.Len(t, body["errors"], 1)
}

func TestImportRejectsMalformedCSV(t *testing.T) {
	db := newTestDB(t)
	r := newServer(t, db)
	admin := seedParticipant(t, db, "gamemaster", false, true)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "roster.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("name,email\nAlice,alice@example.com\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/auth/admin/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, admin))

	w := doRaw(t, r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportScores(t *testing.T) {
	db := newTestDB(t)
	r := newServer(t, db)
	seedRoster(t, db, "alice", "bob")
	admin := seedParticipant(t, db, "gamemaster", false, true)

	t.Run("json by default", func(t *testing.T) {
		code, body := doJSON(t, r, http.MethodGet, "/auth/admin/export", tokenFor(t, admin), nil)
		require.Equal(t, http.StatusOK, code)
		assert.Len(t, body["scores"], 2)
	})

	t.Run("csv on request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/admin/export?format=csv", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, admin))

		w := doRaw(t, r, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "Name,Email,Score,Total Cards,Completed,Completed At", strings.TrimSpace(lines[0]))
		assert.Contains(t, w.Body.String(), "alice@example.com")
	})
}
