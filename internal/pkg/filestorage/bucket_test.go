package filestorage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selim/courseshelf/internal/pkg/apperrors"
)

type recordedRequest struct {
	method      string
	path        string
	auth        string
	contentType string
	body        []byte
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*BucketClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewBucketClient(BucketConfig{
		Endpoint:   srv.URL,
		Bucket:     "notes",
		ServiceKey: "service-key",
	})
	require.NoError(t, err)
	return client, srv
}

func TestNewBucketClientRequiresEndpointAndBucket(t *testing.T) {
	_, err := NewBucketClient(BucketConfig{Bucket: "notes"})
	assert.Error(t, err)

	_, err = NewBucketClient(BucketConfig{Endpoint: "http://localhost"})
	assert.Error(t, err)
}

func TestBucketClientStore(t *testing.T) {
	var got recordedRequest
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			auth:        r.Header.Get("Authorization"),
			contentType: r.Header.Get("Content-Type"),
			body:        body,
		}
		w.WriteHeader(http.StatusOK)
	})

	stored, err := client.Store(context.Background(), "course_12", "lecture.png", "image/png", strings.NewReader("fake png bytes"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.True(t, strings.HasPrefix(got.path, "/object/notes/course_12/"), "unexpected path %q", got.path)
	assert.Equal(t, "Bearer service-key", got.auth)
	assert.Equal(t, "image/png", got.contentType)
	assert.Equal(t, []byte("fake png bytes"), got.body)

	// The object is renamed but keeps its extension
	assert.True(t, strings.HasPrefix(stored.Path, "course_12/"), "unexpected stored path %q", stored.Path)
	assert.True(t, strings.HasSuffix(stored.Path, ".png"))
	assert.NotContains(t, stored.Path, "lecture")
	assert.Equal(t, srv.URL+"/object/public/notes/"+stored.Path, stored.PublicURL)
}

func TestBucketClientStoreRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket quota exceeded", http.StatusForbidden)
	})

	stored, err := client.Store(context.Background(), "course_12", "lecture.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)
	assert.Nil(t, stored)
	assert.ErrorIs(t, err, apperrors.ErrStorageWrite)
}

func TestBucketClientRemove(t *testing.T) {
	var got recordedRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = recordedRequest{method: r.Method, path: r.URL.Path}
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.Remove(context.Background(), "course_12/abc.png"))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/object/notes/course_12/abc.png", got.path)
}

func TestBucketClientRemoveMissingObjectIsSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	assert.NoError(t, client.Remove(context.Background(), "course_12/gone.png"))
}

func TestBucketClientRemoveFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.Remove(context.Background(), "course_12/abc.png")
	assert.ErrorIs(t, err, apperrors.ErrStorageRemove)
}

func TestBucketClientRemoveEmptyPath(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	assert.NoError(t, client.Remove(context.Background(), ""))
	assert.False(t, called, "no request should be made for an empty path")
}

func TestBucketClientPublicURL(t *testing.T) {
	client, err := NewBucketClient(BucketConfig{
		Endpoint: "https://storage.example.com/storage/v1/",
		Bucket:   "notes",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"https://storage.example.com/storage/v1/object/public/notes/course_12/abc.png",
		client.PublicURL("course_12/abc.png"))
}
