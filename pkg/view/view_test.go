package view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/klokku/eventboard/pkg/event"
	"github.com/klokku/eventboard/pkg/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupShell(t *testing.T) (*Shell, *event.StoreImpl) {
	t.Helper()
	store := event.NewStore(nil, event.Options{
		Categories: []string{"Work", "Personal"},
		Seed:       event.DefaultSeed(),
	})
	return NewShell("August", store, router.NewSelector()), store
}

func get(shell http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	shell.ServeHTTP(w, req)
	return w
}

func post(shell http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	shell.ServeHTTP(w, req)
	return w
}

func TestShell(t *testing.T) {
	t.Run("should render header and navigation", func(t *testing.T) {
		shell, _ := setupShell(t)

		w := get(shell, "/")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		body := w.Body.String()
		assert.Contains(t, body, "<h1>August</h1>")
		assert.Contains(t, body, `<a href="/" aria-current="page">Calendar</a>`)
		assert.Contains(t, body, `<a href="/add">Add Event</a>`)
	})

	t.Run("should return 404 for paths without a view", func(t *testing.T) {
		shell, _ := setupShell(t)

		assert.Equal(t, http.StatusNotFound, get(shell, "/favicon.ico").Code)
		assert.Equal(t, http.StatusNotFound, get(shell, "/event/abc").Code)
	})

	t.Run("should reject other methods", func(t *testing.T) {
		shell, _ := setupShell(t)
		req := httptest.NewRequest(http.MethodDelete, "/event/1", nil)
		w := httptest.NewRecorder()

		shell.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestListView(t *testing.T) {
	t.Run("should list events with detail links", func(t *testing.T) {
		shell, _ := setupShell(t)

		body := get(shell, "/").Body.String()

		assert.Contains(t, body, `<a href="/event/1">2024-08-20 - Meeting</a>`)
		assert.Contains(t, body, `<a href="/event/2">2024-08-21 - Birthday Party</a>`)
		assert.Contains(t, body, `<option value="All" selected>All</option>`)
		assert.Contains(t, body, `<option value="Work">Work</option>`)
	})

	t.Run("should apply the selected category", func(t *testing.T) {
		shell, store := setupShell(t)

		w := post(shell, "/", url.Values{"category": {"Personal"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Equal(t, "Personal", store.Filter(context.Background()))
		body := get(shell, "/").Body.String()
		assert.NotContains(t, body, "Meeting")
		assert.Contains(t, body, "Birthday Party")
		assert.Contains(t, body, `<option value="Personal" selected>Personal</option>`)
	})

	t.Run("should show a placeholder for an empty list", func(t *testing.T) {
		shell, store := setupShell(t)
		store.SetFilter(context.Background(), "Travel")

		body := get(shell, "/").Body.String()

		assert.Contains(t, body, "No events")
	})
}

func TestCreateView(t *testing.T) {
	t.Run("should render an empty form", func(t *testing.T) {
		shell, _ := setupShell(t)

		w := get(shell, "/add")

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<h2>Add Event</h2>")
		assert.Contains(t, body, `name="title" value="" placeholder="Event Title" required`)
	})

	t.Run("should add the event and show it in the list", func(t *testing.T) {
		shell, store := setupShell(t)

		w := post(shell, "/add", url.Values{"title": {"Dentist"}, "date": {"2024-08-22"}, "category": {"Personal"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		all := store.All(context.Background())
		require.Len(t, all, 3)
		assert.Equal(t, event.Event{Id: 3, Date: "2024-08-22", Title: "Dentist", Category: "Personal"}, all[2])
		assert.Contains(t, get(shell, "/").Body.String(), `<a href="/event/3">2024-08-22 - Dentist</a>`)
	})

	t.Run("should keep the draft when a field is missing", func(t *testing.T) {
		shell, store := setupShell(t)

		w := post(shell, "/add", url.Values{"title": {"Dentist"}, "date": {""}, "category": {""}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Please fill in: date, category")
		assert.Contains(t, body, `value="Dentist"`)
		assert.Len(t, store.All(context.Background()), 2)
	})
}

func TestDetailView(t *testing.T) {
	t.Run("should seed the form from the event", func(t *testing.T) {
		shell, _ := setupShell(t)

		w := get(shell, "/event/2")

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `name="title" value="Birthday Party"`)
		assert.Contains(t, body, `name="date" value="2024-08-21"`)
		assert.Contains(t, body, `name="category" value="Personal"`)
		assert.Contains(t, body, `action="/event/2"`)
	})

	t.Run("should find events hidden by the filter", func(t *testing.T) {
		shell, store := setupShell(t)
		store.SetFilter(context.Background(), "Personal")

		w := get(shell, "/event/1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `value="Meeting"`)
	})

	t.Run("should render not found for unknown ids", func(t *testing.T) {
		shell, _ := setupShell(t)

		w := get(shell, "/event/99")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Event not found.")
		assert.Contains(t, w.Body.String(), "<h1>August</h1>")
	})

	t.Run("should save changes", func(t *testing.T) {
		shell, store := setupShell(t)

		w := post(shell, "/event/1", url.Values{"action": {"save"}, "title": {"Meeting v2"}, "date": {"2024-08-20"}, "category": {"Work"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/event/1", w.Header().Get("Location"))
		updated, err := store.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Meeting v2", updated.Title)
		second, _ := store.Get(context.Background(), 2)
		assert.Equal(t, "Birthday Party", second.Title)
	})

	t.Run("should delete the event", func(t *testing.T) {
		shell, store := setupShell(t)

		w := post(shell, "/event/1", url.Values{"action": {"delete"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		_, err := store.Get(context.Background(), 1)
		assert.ErrorIs(t, err, event.ErrEventNotFound)
		assert.Equal(t, http.StatusNotFound, get(shell, "/event/1").Code)
	})

	t.Run("should not fail when submitting a deleted event", func(t *testing.T) {
		shell, store := setupShell(t)
		store.Delete(context.Background(), 1)

		w := post(shell, "/event/1", url.Values{"action": {"save"}, "title": {"Ghost"}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Len(t, store.All(context.Background()), 1)
	})

	t.Run("should reject unknown actions", func(t *testing.T) {
		shell, _ := setupShell(t)

		w := post(shell, "/event/1", url.Values{"action": {"archive"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "2024-08-20 - Meeting", Label(event.Event{Id: 1, Date: "2024-08-20", Title: "Meeting"}))
}
