package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mohammad-safakhou/loopcast/models"
)

func TestHealthz(t *testing.T) {
	t.Parallel()

	s := New()
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestStatusReflectsLastRun(t *testing.T) {
	t.Parallel()

	s := New()

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var before map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &before); err != nil {
		t.Fatal(err)
	}
	if _, ok := before["last_episode"]; ok {
		t.Error("last_episode present before any run")
	}

	s.RecordRun(&models.Episode{RunID: "abc", Subreddit: "OutOfTheLoop"}, nil)

	rec = httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	var after struct {
		LastEpisode *models.Episode `json:"last_episode"`
		LastError   string          `json:"last_error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatal(err)
	}
	if after.LastEpisode == nil || after.LastEpisode.RunID != "abc" {
		t.Fatalf("last_episode = %+v", after.LastEpisode)
	}

	// A failed run surfaces the error but keeps the last good episode.
	s.RecordRun(nil, errors.New("reddit down"))
	rec = httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatal(err)
	}
	if after.LastError != "reddit down" {
		t.Errorf("last_error = %q", after.LastError)
	}
	if after.LastEpisode == nil || after.LastEpisode.RunID != "abc" {
		t.Errorf("last good episode lost: %+v", after.LastEpisode)
	}
}
