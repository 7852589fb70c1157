// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"coursemate/cli/internal/backend"
	apperrors "coursemate/cli/internal/errors"
	"coursemate/cli/internal/fakeapi"
	"coursemate/cli/internal/httperrors"
	"coursemate/cli/internal/session"
)

const studentBody = `{"success":true,"message":"ok","student":{"id":"CS2024001","name":"Aia","major":"Software Engineering","level":4,"gpa":3.75}}`

func newTestService(store session.Store, loginURL, recURL string, delay time.Duration) (*Service, *RecordingNavigator) {
	login, rec := backend.New(backend.Endpoints{LoginBaseURL: loginURL, RecommendBaseURL: recURL}, backend.Options{Timeout: 2 * time.Second})
	nav := &RecordingNavigator{}
	svc := NewService(store, nav, login, rec, Options{
		LoginPage:     "index.html",
		LogoutDelay:   delay,
		ProbePassword: "test123",
	})
	return svc, nav
}

func fullStore() *session.MemoryStore {
	return session.NewMemoryStore(map[string]string{
		session.KeyStudentID: "42",
		session.KeyName:      "Aia",
		session.KeyMajor:     "Mathematics",
		session.KeyGPA:       "3.9",
		session.KeyLevel:     "2",
	})
}

func TestCheckLogin(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		store := session.NewMemoryStore(map[string]string{session.KeyStudentID: "42"})
		svc, nav := newTestService(store, "http://unused", "http://unused", 0)

		id, ok := svc.CheckLogin(context.Background())
		if !ok || id != "42" {
			t.Errorf("CheckLogin() = %q, %v; want 42, true", id, ok)
		}
		if len(nav.Alerts) != 0 || len(nav.Redirects) != 0 {
			t.Errorf("navigator used while logged in: %+v", nav)
		}
	})

	t.Run("absent", func(t *testing.T) {
		store := session.NewMemoryStore(nil)
		svc, nav := newTestService(store, "http://unused", "http://unused", 0)

		id, ok := svc.CheckLogin(context.Background())
		if ok || id != "" {
			t.Errorf("CheckLogin() = %q, %v; want \"\", false", id, ok)
		}
		if len(nav.Alerts) != 1 || nav.Alerts[0] != "⛔ Please login first!" {
			t.Errorf("Alerts = %q", nav.Alerts)
		}
		if len(nav.Redirects) != 1 || nav.Redirects[0] != "index.html" {
			t.Errorf("Redirects = %q", nav.Redirects)
		}
		if store.Len() != 0 {
			t.Errorf("CheckLogin wrote to the store")
		}
	})
}

func TestStudentDataFallbackChain(t *testing.T) {
	okRec := fakeapi.Recommender(t, http.StatusOK, `[]`)
	downRec := fakeapi.Recommender(t, http.StatusServiceUnavailable, `{"detail":"down"}`)
	htmlRec := fakeapi.Recommender(t, http.StatusOK, `<html>oops</html>`)
	okLogin := fakeapi.LoginService(t, http.StatusOK, studentBody)
	rejectLogin := fakeapi.LoginService(t, http.StatusOK, `{"success":false,"message":"Invalid password"}`)
	dead := fakeapi.UnreachableURL(t)

	tests := []struct {
		name     string
		loginURL string
		recURL   string
		want     session.Profile
	}{
		{
			name:     "recommender answers",
			loginURL: okLogin.URL,
			recURL:   okRec.URL,
			want:     session.Profile{ID: "7", Name: "Aia", Major: "Mathematics", GPA: "3.9", Level: "2", Source: session.SourceRecommender},
		},
		{
			name:     "recommender down, login answers",
			loginURL: okLogin.URL,
			recURL:   downRec.URL,
			want:     session.Profile{ID: "CS2024001", Name: "Aia", Major: "Software Engineering", GPA: "3.75", Level: "4", Source: session.SourceLogin},
		},
		{
			name:     "recommender not json, login answers",
			loginURL: okLogin.URL,
			recURL:   htmlRec.URL,
			want:     session.Profile{ID: "CS2024001", Name: "Aia", Major: "Software Engineering", GPA: "3.75", Level: "4", Source: session.SourceLogin},
		},
		{
			name:     "login rejects",
			loginURL: rejectLogin.URL,
			recURL:   dead,
			want:     session.Profile{ID: "7", Name: "Aia", Major: "Mathematics", GPA: "3.9", Level: "2", Source: session.SourceCache},
		},
		{
			name:     "both unreachable",
			loginURL: dead,
			recURL:   dead,
			want:     session.Profile{ID: "7", Name: "Aia", Major: "Mathematics", GPA: "3.9", Level: "2", Source: session.SourceCache},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(fullStore(), tt.loginURL, tt.recURL, 0)
			if got := svc.StudentData(context.Background(), "7"); got != tt.want {
				t.Errorf("StudentData() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStudentDataIsSequential(t *testing.T) {
	rec := fakeapi.Recommender(t, http.StatusInternalServerError, `{}`)
	login := fakeapi.LoginService(t, http.StatusOK, studentBody)
	svc, _ := newTestService(session.NewMemoryStore(nil), login.URL, rec.URL, 0)

	svc.StudentData(context.Background(), "CS2024001")

	if n := rec.Count(http.MethodPost, "/recommend"); n != 1 {
		t.Errorf("recommend calls = %d, want 1", n)
	}
	hits := login.Hits()
	if len(hits) != 1 {
		t.Fatalf("login calls = %d, want 1", len(hits))
	}
	if hits[0].Query.Get("university_id") != "CS2024001" || hits[0].Query.Get("password") != "test123" {
		t.Errorf("login query = %v", hits[0].Query)
	}
}

func TestStudentDataSkipsLoginWhenRecommenderAnswers(t *testing.T) {
	rec := fakeapi.Recommender(t, http.StatusOK, `[]`)
	login := fakeapi.LoginService(t, http.StatusOK, studentBody)
	svc, _ := newTestService(session.NewMemoryStore(nil), login.URL, rec.URL, 0)

	svc.StudentData(context.Background(), "1")

	if n := len(login.Hits()); n != 0 {
		t.Errorf("login calls = %d, want 0", n)
	}
}

func TestStudentDataDefaultsWithPartialCache(t *testing.T) {
	dead := fakeapi.UnreachableURL(t)
	store := session.NewMemoryStore(map[string]string{
		session.KeyStudentID: "42",
		session.KeyName:      "Aia",
	})
	svc, _ := newTestService(store, dead, dead, 0)

	got := svc.StudentData(context.Background(), "42")
	want := session.Profile{ID: "42", Name: "Aia", Major: "Computer Science", GPA: "3.5", Level: "3", Source: session.SourceCache}
	if got != want {
		t.Errorf("StudentData() = %+v, want %+v", got, want)
	}
}

func TestStudentDataFillsGapsInLoginPayload(t *testing.T) {
	rec := fakeapi.Recommender(t, http.StatusBadGateway, ``)
	login := fakeapi.LoginService(t, http.StatusOK, `{"success":true,"student":{"id":"9","name":"Omar"}}`)
	svc, _ := newTestService(session.NewMemoryStore(nil), login.URL, rec.URL, 0)

	got := svc.StudentData(context.Background(), "9")
	want := session.Profile{ID: "9", Name: "Omar", Major: "Computer Science", GPA: "3.5", Level: "3", Source: session.SourceLogin}
	if got != want {
		t.Errorf("StudentData() = %+v, want %+v", got, want)
	}
}

func TestProfileFromRecommender(t *testing.T) {
	t.Run("unreachable empty store", func(t *testing.T) {
		svc, _ := newTestService(session.NewMemoryStore(nil), "http://unused", fakeapi.UnreachableURL(t), 0)
		p, ok := svc.ProfileFromRecommender(context.Background(), "7")
		if ok || p != (session.Profile{}) {
			t.Errorf("ProfileFromRecommender() = %+v, %v; want zero, false", p, ok)
		}
	})

	t.Run("server error", func(t *testing.T) {
		rec := fakeapi.Recommender(t, http.StatusInternalServerError, `{}`)
		svc, _ := newTestService(fullStore(), "http://unused", rec.URL, 0)
		if _, ok := svc.ProfileFromRecommender(context.Background(), "7"); ok {
			t.Errorf("ProfileFromRecommender() ok on 500")
		}
	})

	t.Run("answers without json", func(t *testing.T) {
		rec := fakeapi.Recommender(t, http.StatusOK, `plain text`)
		svc, _ := newTestService(session.NewMemoryStore(nil), "http://unused", rec.URL, 0)
		p, ok := svc.ProfileFromRecommender(context.Background(), "7")
		want := session.Profile{ID: "7", Name: "Student", Major: "Computer Science", GPA: "3.5", Level: "3", Source: session.SourceRecommender}
		if !ok || p != want {
			t.Errorf("ProfileFromRecommender() = %+v, %v; want %+v, true", p, ok, want)
		}
	})
}

func TestRecommendations(t *testing.T) {
	list := `[{"course_id":"5","course_code":"CS350","course_name":"Operating Systems","score":8.1,"reason":"Track","type":"academic_path","location":"B3","instructor":"Dr. Noor"}]`

	t.Run("server list returned unchanged", func(t *testing.T) {
		rec := fakeapi.Recommender(t, http.StatusOK, list)
		svc, _ := newTestService(fullStore(), "http://unused", rec.URL, 0)
		got := svc.Recommendations(context.Background(), "42")
		if len(got) != 1 || got[0].CourseCode != "CS350" || got[0].Score != 8.1 || got[0].Instructor != "Dr. Noor" {
			t.Errorf("Recommendations() = %+v", got)
		}
	})

	t.Run("empty list is not replaced", func(t *testing.T) {
		rec := fakeapi.Recommender(t, http.StatusOK, `[]`)
		svc, _ := newTestService(fullStore(), "http://unused", rec.URL, 0)
		if got := svc.Recommendations(context.Background(), "42"); len(got) != 0 {
			t.Errorf("Recommendations() = %+v, want empty", got)
		}
	})

	fallbackCases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"detail":"boom"}`},
		{name: "not found", status: http.StatusNotFound, body: ``},
		{name: "invalid json", status: http.StatusOK, body: `{not json`},
	}
	for _, tt := range fallbackCases {
		t.Run(tt.name, func(t *testing.T) {
			rec := fakeapi.Recommender(t, tt.status, tt.body)
			svc, _ := newTestService(fullStore(), "http://unused", rec.URL, 0)
			assertFallback(t, svc.Recommendations(context.Background(), "42"))
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		svc, _ := newTestService(fullStore(), "http://unused", fakeapi.UnreachableURL(t), 0)
		assertFallback(t, svc.Recommendations(context.Background(), "42"))
	})
}

func assertFallback(t *testing.T, got []backend.Recommendation) {
	t.Helper()
	want := backend.Recommendation{
		CourseID:   "1",
		CourseCode: "CS201",
		CourseName: "Data Structures",
		Score:      9.5,
		Reason:     "Core course for your level",
		Type:       "academic_path",
		Location:   "Building FB200, Room 4",
		Instructor: "Dr. Ahmed Hassan",
	}
	if len(got) != 1 || got[0] != want {
		t.Errorf("Recommendations() = %+v, want exactly the fallback", got)
	}
}

func TestFallbackRecommendationsFresh(t *testing.T) {
	a := FallbackRecommendations()
	a[0].CourseCode = "changed"
	if b := FallbackRecommendations(); b[0].CourseCode != "CS201" {
		t.Errorf("FallbackRecommendations shares state: %q", b[0].CourseCode)
	}
}

func TestLogout(t *testing.T) {
	store := fullStore()
	svc, nav := newTestService(store, "http://unused", "http://unused", 20*time.Millisecond)

	started := time.Now()
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if elapsed := time.Since(started); elapsed < 20*time.Millisecond {
		t.Errorf("Logout returned after %v, want at least the delay", elapsed)
	}
	for _, key := range session.Keys {
		if _, err := store.Get(key); !errors.Is(err, session.ErrNotFound) {
			t.Errorf("key %q still present after logout", key)
		}
	}
	if len(nav.Redirects) != 1 || nav.Redirects[0] != "index.html" {
		t.Errorf("Redirects = %q", nav.Redirects)
	}

	// a second logout ends in the same state
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("second Logout() error = %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d keys after second logout", store.Len())
	}
	if len(nav.Redirects) != 2 {
		t.Errorf("Redirects = %q, want two", nav.Redirects)
	}
}

func TestLogoutCanceledContext(t *testing.T) {
	store := fullStore()
	svc, nav := newTestService(store, "http://unused", "http://unused", time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- svc.Logout(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Logout ignored the cancelled context")
	}
	if store.Len() != 0 {
		t.Errorf("store has %d keys after logout", store.Len())
	}
	if len(nav.Redirects) != 1 {
		t.Errorf("Redirects = %q, want one", nav.Redirects)
	}
}

// failingRemoveStore refuses to remove one key.
type failingRemoveStore struct {
	*session.MemoryStore
	key string
}

func (s failingRemoveStore) Remove(key string) error {
	if key == s.key {
		return errors.New("keychain locked")
	}
	return s.MemoryStore.Remove(key)
}

func TestLogoutReportsStoreFailureButRedirects(t *testing.T) {
	store := failingRemoveStore{MemoryStore: fullStore(), key: session.KeyMajor}
	svc, nav := newTestService(store, "http://unused", "http://unused", 0)

	err := svc.Logout(context.Background())
	if !apperrors.Is(err, apperrors.StoreFailed) {
		t.Errorf("Logout() error = %v, want store_failed", err)
	}
	if len(nav.Redirects) != 1 {
		t.Errorf("Redirects = %q, want one", nav.Redirects)
	}
	// every other key was still removed
	if store.Len() != 1 {
		t.Errorf("store has %d keys, want only the locked one", store.Len())
	}
}

func TestLogin(t *testing.T) {
	login := fakeapi.LoginService(t, http.StatusOK, studentBody)
	store := session.NewMemoryStore(nil)
	svc, _ := newTestService(store, login.URL, "http://unused", 0)

	p, err := svc.Login(context.Background(), "CS2024001", "s3cret", "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if p.GPA != "3.75" || p.Level != "4" || p.Source != session.SourceLogin {
		t.Errorf("Login() = %+v", p)
	}

	rec := svc.SessionRecord(context.Background())
	want := session.Record{StudentID: "CS2024001", Name: "Aia", Major: "Software Engineering", GPA: "3.75", Level: "4"}
	if rec != want {
		t.Errorf("SessionRecord() = %+v, want %+v", rec, want)
	}
	if id, ok := svc.CheckLogin(context.Background()); !ok || id != "CS2024001" {
		t.Errorf("CheckLogin() after Login = %q, %v", id, ok)
	}
	if q := login.Hits()[0].Query; q.Get("password") != "s3cret" {
		t.Errorf("password sent = %q", q.Get("password"))
	}
}

func TestLoginLevelOverride(t *testing.T) {
	login := fakeapi.LoginService(t, http.StatusOK, studentBody)
	store := session.NewMemoryStore(nil)
	svc, _ := newTestService(store, login.URL, "http://unused", 0)

	if _, err := svc.Login(context.Background(), "CS2024001", "pw", "5"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if v, _ := store.Get(session.KeyLevel); v != "5" {
		t.Errorf("selected_level = %q, want 5", v)
	}
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name string
		url  func(t *testing.T) string
		want apperrors.Kind
	}{
		{
			name: "rejected",
			url: func(t *testing.T) string {
				return fakeapi.LoginService(t, http.StatusOK, `{"success":false,"message":"Invalid password"}`).URL
			},
			want: apperrors.LoginRejected,
		},
		{
			name: "server error",
			url: func(t *testing.T) string {
				return fakeapi.LoginService(t, http.StatusInternalServerError, `{}`).URL
			},
			want: apperrors.BackendStatus,
		},
		{
			name: "unreachable",
			url:  func(t *testing.T) string { return fakeapi.UnreachableURL(t) },
			want: apperrors.BackendUnreachable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemoryStore(nil)
			svc, _ := newTestService(store, tt.url(t), "http://unused", 0)
			_, err := svc.Login(context.Background(), "1", "x", "")
			if got := apperrors.KindOf(err); got != tt.want {
				t.Errorf("KindOf(%v) = %q, want %q", err, got, tt.want)
			}
			if store.Len() != 0 {
				t.Errorf("failed login wrote %d keys", store.Len())
			}
		})
	}
}

func TestTestServers(t *testing.T) {
	login := fakeapi.LoginService(t, http.StatusOK, `{}`)
	svc, _ := newTestService(session.NewMemoryStore(nil), login.URL, fakeapi.UnreachableURL(t), 0)

	results := svc.TestServers(context.Background())
	if len(results) != 2 {
		t.Fatalf("len = %d, want 2", len(results))
	}
	if results[0].Service != "login" || !results[0].Reachable || results[0].Status != http.StatusOK {
		t.Errorf("login result = %+v", results[0])
	}
	if results[0].URL != login.URL+"/" {
		t.Errorf("login url = %q", results[0].URL)
	}
	r := results[1]
	if r.Service != "recommend" || r.Reachable {
		t.Errorf("recommend result = %+v", r)
	}
	if r.Class != httperrors.ClassRefused {
		t.Errorf("recommend class = %q, want refused", r.Class)
	}
	if r.Error == "" {
		t.Errorf("recommend error is empty")
	}
}
