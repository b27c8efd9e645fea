package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://api.deezer.com"

// Playlist is one catalog search result.
type Playlist struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"picture_medium"`
}

// Track is one entry of a playlist's track list.
type Track struct {
	Title      string `json:"title"`
	ArtistName string `json:"artist_name"`
	PreviewURL string `json:"preview_url"`
}

// Client talks to the Deezer public API, the external catalog the round
// material comes from.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client. An empty baseURL selects the public
// Deezer API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type playlistSearchResponse struct {
	Data []Playlist `json:"data"`
}

type trackListResponse struct {
	Data []struct {
		Title  string `json:"title"`
		Artist struct {
			Name string `json:"name"`
		} `json:"artist"`
		Preview string `json:"preview"`
	} `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("error building catalog request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling catalog: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding catalog response: %v", err)
	}
	return nil
}

// SearchPlaylists searches the catalog for playlists matching the query.
func (c *Client) SearchPlaylists(ctx context.Context, query string) ([]Playlist, error) {
	var resp playlistSearchResponse
	path := fmt.Sprintf("/search/playlist?q=%s", url.QueryEscape(query))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// PlaylistTracks retrieves the ordered track list of a playlist.
func (c *Client) PlaylistTracks(ctx context.Context, playlistId int64) ([]Track, error) {
	var resp trackListResponse
	path := fmt.Sprintf("/playlist/%d/tracks", playlistId)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(resp.Data))
	for _, t := range resp.Data {
		tracks = append(tracks, Track{
			Title:      t.Title,
			ArtistName: t.Artist.Name,
			PreviewURL: t.Preview,
		})
	}
	return tracks, nil
}
