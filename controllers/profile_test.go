package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeReflectsRegistrationState(t *testing.T) {
	db := newTestDB(t)
	r := newServer(t, db)
	p := seedParticipant(t, db, "newbie", false, false)

	code, body := doJSON(t, r, http.MethodGet, "/auth/me", tokenFor(t, p), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["needsRegistration"])
	assert.Equal(t, "newbie", body["name"])
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	r := newServer(t, db)
	p := seedParticipant(t, db, "newbie", false, false)
	token := tokenFor(t, p)

	code, _ := doJSON(t, r, http.MethodPut, "/auth/profile", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code, "empty update is rejected")

	code, body := doJSON(t, r, http.MethodPut, "/auth/profile", token, map[string]string{
		"name":     "Newbie Prime",
		"photoUrl": "/photos/newbie.jpg",
	})
	require.Equal(t, http.StatusOK, code)
	participant := body["participant"].(map[string]interface{})
	assert.Equal(t, "Newbie Prime", participant["name"])

	// Setting the photo flips registration
	code, body = doJSON(t, r, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["needsRegistration"])
}

func uploadRequest(t *testing.T, token, filename, contentType string, payload []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/auth/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploadPhoto(t *testing.T) {
	db := newTestDB(t)
	r := newServer(t, db)
	p := seedParticipant(t, db, "newbie", false, false)
	token := tokenFor(t, p)

	t.Run("accepts an image", func(t *testing.T) {
		w := doRaw(t, r, uploadRequest(t, token, "me.png", "image/png", []byte("not-really-a-png")))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"url":"/photos/`+p.ID)
	})

	t.Run("rejects non-images", func(t *testing.T) {
		w := doRaw(t, r, uploadRequest(t, token, "notes.txt", "text/plain", []byte("hello")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires a file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/upload", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := doRaw(t, r, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
