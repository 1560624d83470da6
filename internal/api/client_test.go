package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Yugz29/DevNote/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api", time.Second, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestListNotes_PageEnvelope(t *testing.T) {
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects/p1/notes/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": "n1", "title": "Alpha"},
				{"id": "n2", "title": "Beta"},
			},
			"next": srv.URL + "/api/projects/p1/notes/?cursor=abc",
		})
	})
	c, s := newTestClient(t, mux)
	srv = s

	page, err := c.ListNotes(context.Background(), "p1", "")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(page.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(page.Results))
	}
	if page.Next == "" {
		t.Fatalf("expected a next cursor")
	}
}

func TestListNotes_NullNextIsTerminal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects/p1/notes/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":"n1","title":"Only"}],"next":null}`))
	})
	c, _ := newTestClient(t, mux)

	page, err := c.ListNotes(context.Background(), "p1", "")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if page.Next != "" {
		t.Fatalf("null next should decode to empty cursor, got %q", page.Next)
	}
}

func TestListNotes_CursorIsOpaqueURL(t *testing.T) {
	var gotPath, gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"results":[],"next":null}`))
	})
	c, srv := newTestClient(t, mux)

	cursor := srv.URL + "/api/projects/p1/notes/?cursor=tok42"
	if _, err := c.ListNotes(context.Background(), "p1", cursor); err != nil {
		t.Fatalf("ListNotes with cursor: %v", err)
	}
	if gotPath != "/api/projects/p1/notes/" || gotQuery != "cursor=tok42" {
		t.Fatalf("cursor not followed verbatim: path=%q query=%q", gotPath, gotQuery)
	}
}

func TestListAllTodos_FollowsPagination(t *testing.T) {
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects/p1/todos/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cursor") == "two" {
			_, _ = w.Write([]byte(`{"results":[{"id":"t2","title":"B","status":"done","priority":"low"}],"next":null}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"id": "t1", "title": "A", "status": "pending", "priority": "high"}},
			"next":    srv.URL + "/api/projects/p1/todos/?cursor=two",
		})
	})
	c, s := newTestClient(t, mux)
	srv = s

	all, err := c.ListAllTodos(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListAllTodos: %v", err)
	}
	if len(all) != 2 || all[0].ID != "t1" || all[1].ID != "t2" {
		t.Fatalf("unexpected collection: %+v", all)
	}
}

func TestUpdateTodo_PatchOmitsNilFields(t *testing.T) {
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/todos/t1/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"id":"t1","title":"A","status":"in_progress","priority":"high"}`))
	})
	c, _ := newTestClient(t, mux)

	st := model.StatusInProgress
	if _, err := c.UpdateTodo(context.Background(), "t1", TodoPatch{Status: &st}); err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if len(body) != 1 || body["status"] != "in_progress" {
		t.Fatalf("patch body = %v, want only status", body)
	}
}

func TestDo_ServerErrorCarriesDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/notes/n1/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"title":["This field may not be blank."]}`))
	})
	c, _ := newTestClient(t, mux)

	err := c.DeleteNote(context.Background(), "n1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsInvalid(err) {
		t.Fatalf("expected invalid-request error, got %v", err)
	}
}

func TestDo_UnauthorizedIsAuthError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Authentication credentials were not provided."}`))
	})
	c, _ := newTestClient(t, mux)

	_, err := c.Me(context.Background())
	if !IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestLogin_PersistsSessionAcrossClients(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s3cret", Path: "/"})
		_, _ = w.Write([]byte(`{"id":"u1","email":"dev@example.com"}`))
	})
	var gotCookie string
	mux.HandleFunc("/api/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("sessionid"); err == nil {
			gotCookie = ck.Value
		}
		_, _ = w.Write([]byte(`{"id":"u1","email":"dev@example.com"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	c1, err := New(srv.URL+"/api", time.Second, sessionPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c1.Login(context.Background(), "dev@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// A fresh client picks the session up from disk.
	c2, err := New(srv.URL+"/api", time.Second, sessionPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c2.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if gotCookie != "s3cret" {
		t.Fatalf("session cookie not replayed, got %q", gotCookie)
	}
}
