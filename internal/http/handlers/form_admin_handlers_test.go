package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formBody struct {
	Success bool `json:"success"`
	Data    struct {
		Kind          string   `json:"kind"`
		State         string   `json:"state"`
		Error         string   `json:"error"`
		Details       []string `json:"details"`
		Notifications []struct {
			Title   string `json:"title"`
			Variant string `json:"variant"`
		} `json:"notifications"`
	} `json:"data"`
}

func TestForms_ContactFlow(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/forms/contact", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := w.Header().Get("Set-Cookie")
	require.NotEmpty(t, cookie)
	session := http.Header{"Cookie": {strings.Split(cookie, ";")[0]}}

	var body formBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "idle", body.Data.State)

	// Невалидные данные: форма в error, уведомление destructive, запись не создана.
	w = f.do(http.MethodPost, "/api/forms/contact/submit", `{"firstName":"A"}`, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Data.State)
	assert.NotEmpty(t, body.Data.Details)
	require.Len(t, body.Data.Notifications, 1)
	assert.Equal(t, "destructive", body.Data.Notifications[0].Variant)
	assert.Equal(t, 0, f.contacts.Len())

	// Из error можно отправить снова.
	w = f.do(http.MethodPost, "/api/forms/contact/submit", validContact, session)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = formBody{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Data.State)
	require.Len(t, body.Data.Notifications, 1)
	assert.Equal(t, "default", body.Data.Notifications[0].Variant)
	assert.Equal(t, 1, f.contacts.Len())

	// success не сбрасывается сам: чтения и повторная отправка его не меняют.
	for i := 0; i < 3; i++ {
		w = f.do(http.MethodGet, "/api/forms/contact", "", session)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "success", body.Data.State)
	}
	w = f.do(http.MethodPost, "/api/forms/contact/submit", validContact, session)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 1, f.contacts.Len())

	w = f.do(http.MethodPost, "/api/forms/contact/reset", "", session)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "idle", body.Data.State)
}

func TestForms_SessionsAreIsolated(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/forms/contact/submit", validContact, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Другой посетитель без cookie видит свою форму в idle.
	w = f.do(http.MethodGet, "/api/forms/contact", "", nil)
	var body formBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "idle", body.Data.State)
}

func TestForms_UnknownKind(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/forms/newsletter", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/api/forms/newsletter/submit", `{}`, nil).Code)
}

func TestAdmin_RequiresAdminRole(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/admin/contact-messages", "", nil).Code)
}

func TestAdmin_ListSeesNewSubmission(t *testing.T) {
	f := newFixture(t)
	admin := f.adminHeader(t)

	w := f.do(http.MethodGet, "/api/admin/contact-messages", "", admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodeList(t, w.Body.Bytes()).Total)

	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/contact", validContact, nil).Code)

	// Прямой POST сбрасывает кэш списка через подписчика событий.
	w = f.do(http.MethodGet, "/api/admin/contact-messages", "", admin)
	assert.Equal(t, 1, decodeList(t, w.Body.Bytes()).Total)
}

func TestAdmin_ExportCSV(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/contact", validContact, nil).Code)

	w := f.do(http.MethodGet, "/api/admin/contact-messages/export.csv", "", f.adminHeader(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "contact-messages-")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,name,email,subject,message,is_read,created_at"))
	assert.Contains(t, lines[1], "Anna Petrova")
}
