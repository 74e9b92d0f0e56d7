package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeGitHub serves the handful of REST endpoints both bots call and records
// writes. Created comments are returned by later list calls.
type fakeGitHub struct {
	t *testing.T

	mu         sync.Mutex
	comments   []map[string]any
	labels     []string
	files      []string
	labelPosts [][]string
	authHeader string
	repoCalls  int
}

func newFakeGitHub(t *testing.T) (*fakeGitHub, *httptest.Server) {
	t.Helper()
	f := &fakeGitHub{t: t}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/owner/repo", f.repo)
	mux.HandleFunc("GET /repositories/99", f.repo)
	mux.HandleFunc("GET /repos/owner/repo/pulls/42", f.pull)
	mux.HandleFunc("GET /repos/owner/repo/pulls/42/comments", f.listComments)
	mux.HandleFunc("POST /repos/owner/repo/pulls/42/comments", f.createComment)
	mux.HandleFunc("GET /repos/owner/repo/pulls/42/files", f.listFiles)
	mux.HandleFunc("POST /repos/owner/repo/issues/42/labels", f.addLabels)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return f, server
}

func (f *fakeGitHub) write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		f.t.Errorf("encoding response: %v", err)
	}
}

func (f *fakeGitHub) repo(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.authHeader = r.Header.Get("Authorization")
	f.repoCalls++
	f.mu.Unlock()
	f.write(w, http.StatusOK, map[string]any{
		"id":        99,
		"name":      "repo",
		"full_name": "owner/repo",
		"owner":     map[string]any{"login": "owner"},
	})
}

func (f *fakeGitHub) pull(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	labels := make([]map[string]any, 0, len(f.labels))
	for _, l := range f.labels {
		labels = append(labels, map[string]any{"name": l})
	}
	f.write(w, http.StatusOK, map[string]any{
		"number": 42,
		"head":   map[string]any{"ref": "feature", "sha": "head123"},
		"base":   map[string]any{"ref": "main", "sha": "base123"},
		"labels": labels,
	})
}

func (f *fakeGitHub) listComments(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]map[string]any{}, f.comments...)
	f.write(w, http.StatusOK, out)
}

func (f *fakeGitHub) createComment(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		f.t.Errorf("decoding comment: %v", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	body["id"] = len(f.comments) + 1
	body["diff_hunk"] = "@@ -1,1 +1,1 @@"
	f.comments = append(f.comments, body)
	f.write(w, http.StatusCreated, body)
}

func (f *fakeGitHub) listFiles(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.files))
	for _, name := range f.files {
		out = append(out, map[string]any{"filename": name, "status": "modified", "sha": "blob"})
	}
	f.write(w, http.StatusOK, out)
}

func (f *fakeGitHub) addLabels(w http.ResponseWriter, r *http.Request) {
	var names []string
	if err := json.NewDecoder(r.Body).Decode(&names); err != nil {
		f.t.Errorf("decoding labels: %v", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.labelPosts = append(f.labelPosts, names)
	out := make([]map[string]any, 0, len(names))
	for _, n := range names {
		out = append(out, map[string]any{"name": n})
	}
	f.write(w, http.StatusOK, out)
}
