package ghclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/huangsam/prgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiPrefix = "/api/v3/repos/octo/app"

// fakeGitHub keeps comments in memory like the issues API does.
type fakeGitHub struct {
	mu       sync.Mutex
	comments []map[string]any
	nextID   int64
	creates  int
	edits    int
}

func (f *fakeGitHub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(apiPrefix+"/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		if page == "" || page == "1" {
			w.Header().Set("Link", fmt.Sprintf(`<http://%s%s/pulls/7/files?page=2&per_page=100>; rel="next"`, r.Host, apiPrefix))
			_, _ = w.Write([]byte(`[{"filename":"a.go","additions":3,"deletions":1,"status":"modified"},{"filename":"b.go","additions":10,"deletions":0,"status":"added"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"filename":"c.md","additions":0,"deletions":4,"status":"copied"}]`))
	})
	mux.HandleFunc(apiPrefix+"/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(f.comments)
		case http.MethodPost:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			f.nextID++
			f.creates++
			c := map[string]any{"id": f.nextID, "body": body["body"]}
			f.comments = append(f.comments, c)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(c)
		}
	})
	mux.HandleFunc(apiPrefix+"/issues/comments/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		require.Equal(t, http.MethodPatch, r.Method)
		id := strings.TrimPrefix(r.URL.Path, apiPrefix+"/issues/comments/")
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		for _, c := range f.comments {
			if fmt.Sprint(c["id"]) == id {
				c["body"] = body["body"]
				f.edits++
				_ = json.NewEncoder(w).Encode(c)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})
	return mux
}

func newTestClient(t *testing.T, fake *fakeGitHub) *Client {
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	client, err := NewClient(Options{
		Repository: "octo/app",
		APIURL:     server.URL,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)
	return client
}

func TestListChangedFilesPaginates(t *testing.T) {
	client := newTestClient(t, &fakeGitHub{})

	files, err := client.ListChangedFiles(t.Context(), 7)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, schema.ChangedFile{Filename: "a.go", Additions: 3, Deletions: 1, Status: schema.StatusModified}, files[0])
	assert.Equal(t, schema.StatusAdded, files[1].Status)
	assert.Equal(t, schema.StatusModified, files[2].Status, "copied maps to modified")
}

func TestUpsertCommentIsIdempotent(t *testing.T) {
	fake := &fakeGitHub{}
	client := newTestClient(t, fake)

	require.NoError(t, client.UpsertComment(t.Context(), 7, "first report", true))
	require.NoError(t, client.UpsertComment(t.Context(), 7, "second report", true))

	require.Len(t, fake.comments, 1)
	assert.Equal(t, 1, fake.creates)
	assert.Equal(t, 1, fake.edits)
	body := fake.comments[0]["body"].(string)
	assert.True(t, strings.HasPrefix(body, schema.CommentMarker))
	assert.Contains(t, body, "second report")
}

func TestUpsertCommentWithoutUpdateCreates(t *testing.T) {
	fake := &fakeGitHub{}
	client := newTestClient(t, fake)

	require.NoError(t, client.UpsertComment(t.Context(), 7, "one", false))
	require.NoError(t, client.UpsertComment(t.Context(), 7, "two", false))

	assert.Len(t, fake.comments, 2)
	assert.Equal(t, 0, fake.edits)
}

func TestUpsertCommentSkipsForeignComments(t *testing.T) {
	fake := &fakeGitHub{comments: []map[string]any{{"id": 99, "body": "LGTM"}}, nextID: 99}
	client := newTestClient(t, fake)

	require.NoError(t, client.UpsertComment(t.Context(), 7, "report", true))
	assert.Len(t, fake.comments, 2)
	assert.Equal(t, "LGTM", fake.comments[0]["body"])
}

func TestParseRepository(t *testing.T) {
	owner, repo, err := ParseRepository("octo/app")
	require.NoError(t, err)
	assert.Equal(t, "octo", owner)
	assert.Equal(t, "app", repo)

	for _, bad := range []string{"", "octo", "/app", "octo/", "a/b/c"} {
		_, _, err := ParseRepository(bad)
		assert.Error(t, err, bad)
	}
}

func TestWithMarker(t *testing.T) {
	marked := WithMarker("body")
	assert.Equal(t, schema.CommentMarker+"\nbody", marked)
	assert.Equal(t, marked, WithMarker(marked))
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Options{Repository: "octo/app", Token: "t", RetryMax: 1})
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", client.gh.BaseURL.String())
}
