package wallpaper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"
)

const (
	DefaultBaseURL = "http://wallpaper-api.smartisan.com/app/index.php"

	// DefaultListLimit is the page size the upstream API serves.
	DefaultListLimit = 20

	// PageSize is how many wallpapers make up one display page.
	PageSize = 3
)

// Sources are the wallpaper collections the API accepts.
var Sources = []string{
	"Artand", "Smartisan", "Unsplash", "Minimography", "Pexels",
	"Magdeleine", "Fancycrave", "Snapwiresnaps", "Memento",
	"纹理与材质壁纸", "壁纸摄影大赛精选",
}

// ValidSource reports whether name is a known wallpaper source.
func ValidSource(name string) bool {
	return slices.Contains(Sources, name)
}

// Wallpaper is one entry of the API's listing.
type Wallpaper struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Desc   string `json:"desc"`
	URL    string `json:"url"`
}

// APIError is a non-zero code in an otherwise well-formed API response.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wallpaper api error %d: %s", e.Code, e.Msg)
}

type listResponse struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data []Wallpaper `json:"data"`
}

// Client fetches wallpaper listings.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client against the production API with the 10s request
// timeout the original application used.
func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// List fetches up to limit wallpapers of the given source, starting after
// paperID ("0" for the beginning of the listing).
func (c *Client) List(ctx context.Context, source, paperID string, limit int) ([]Wallpaper, error) {
	if paperID == "" {
		paperID = "0"
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	q := url.Values{}
	q.Set("r", "paperapi/index/list")
	q.Set("client_version", "2")
	q.Set("source", source)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("paper_id", paperID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building list request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching wallpaper list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wallpaper list request returned %s", resp.Status)
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("decoding wallpaper list: %w", err)
	}

	if lr.Code != 0 {
		return nil, &APIError{Code: lr.Code, Msg: lr.Msg}
	}

	return lr.Data, nil
}

// Page slices a listing into display pages of PageSize, matching the paging
// of the original UI. Out-of-range pages yield an empty slice.
func Page(walls []Wallpaper, page int) []Wallpaper {
	if page < 0 {
		return nil
	}
	start := page * PageSize
	if start >= len(walls) {
		return nil
	}
	end := min(start+PageSize, len(walls))
	return walls[start:end]
}
