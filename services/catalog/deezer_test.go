package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchPlaylists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/playlist", r.URL.Path)
		assert.Equal(t, "80s synth pop", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [
			{"id": 908622995, "title": "80s Synth Classics", "picture_medium": "https://cdn.example/p1.jpg"},
			{"id": 1313621735, "title": "Synthwave Essentials", "picture_medium": "https://cdn.example/p2.jpg"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	playlists, err := client.SearchPlaylists(context.Background(), "80s synth pop")

	assert.NoError(t, err)
	assert.Len(t, playlists, 2)
	assert.Equal(t, int64(908622995), playlists[0].ID)
	assert.Equal(t, "80s Synth Classics", playlists[0].Title)
	assert.Equal(t, "https://cdn.example/p1.jpg", playlists[0].Thumbnail)
}

func TestSearchPlaylistsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	playlists, err := client.SearchPlaylists(context.Background(), "zzzzzz")

	assert.NoError(t, err)
	assert.Empty(t, playlists)
}

func TestPlaylistTracksMapsNestedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playlist/908622995/tracks", r.URL.Path)
		w.Write([]byte(`{"data": [
			{"title": "Blue Monday", "artist": {"name": "New Order"}, "preview": "https://cdn.example/t1.mp3"},
			{"title": "Enjoy the Silence", "artist": {"name": "Depeche Mode"}, "preview": "https://cdn.example/t2.mp3"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	tracks, err := client.PlaylistTracks(context.Background(), 908622995)

	assert.NoError(t, err)
	assert.Len(t, tracks, 2)
	assert.Equal(t, "Blue Monday", tracks[0].Title)
	assert.Equal(t, "New Order", tracks[0].ArtistName)
	assert.Equal(t, "https://cdn.example/t1.mp3", tracks[0].PreviewURL)
}

func TestCatalogErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	_, err := client.SearchPlaylists(context.Background(), "anything")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	_, err = client.PlaylistTracks(context.Background(), 1)
	assert.Error(t, err)
}

func TestCatalogMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SearchPlaylists(context.Background(), "anything")
	assert.Error(t, err)
}

func TestCatalogHonorsContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL)
	_, err := client.SearchPlaylists(ctx, "anything")
	assert.Error(t, err)
}

func TestNewClientDefaultsToPublicAPI(t *testing.T) {
	client := NewClient("")
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
