package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
)

const DefaultMetMuseumBaseURL = "https://collectionapi.metmuseum.org"

type ArtworkProvider interface {
	// SearchArtworks returns the IDs of objects with images matching query.
	SearchArtworks(ctx context.Context, query string) ([]int, error)
	Artwork(ctx context.Context, id int) (*Artwork, error)
}

type Artwork struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Date       string `json:"date"`
	Medium     string `json:"medium"`
	Department string `json:"department"`
	ImageURL   string `json:"imageUrl"`
	ObjectURL  string `json:"objectUrl"`
}

// HasImage reports whether the object can be displayed.
func (a *Artwork) HasImage() bool {
	return a.ImageURL != ""
}

type metSearchResponse struct {
	Total     int   `json:"total"`
	ObjectIDs []int `json:"objectIDs"`
}

type metObjectResponse struct {
	ObjectID          int    `json:"objectID"`
	Title             string `json:"title"`
	ArtistDisplayName string `json:"artistDisplayName"`
	ObjectDate        string `json:"objectDate"`
	Medium            string `json:"medium"`
	Department        string `json:"department"`
	PrimaryImage      string `json:"primaryImage"`
	PrimaryImageSmall string `json:"primaryImageSmall"`
	ObjectURL         string `json:"objectURL"`
}

type metErrorResponse struct {
	Message string `json:"message"`
}

type metMuseumProvider struct {
	baseURL string
	search  *upstream
	objects *upstream
}

func NewMetMuseumProvider(opts ClientOptions) ArtworkProvider {
	opts = opts.withDefaults(DefaultMetMuseumBaseURL)

	return &metMuseumProvider{
		baseURL: opts.BaseURL,
		search:  newUpstream("metmuseum-search", opts, metErrorDetail),
		objects: newUpstream("metmuseum-objects", opts, metErrorDetail),
	}
}

func metErrorDetail(body []byte) string {
	var resp metErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Message
}

func (p *metMuseumProvider) SearchArtworks(ctx context.Context, query string) ([]int, error) {
	params := url.Values{}
	params.Set("hasImages", "true")
	params.Set("q", query)

	endpoint := fmt.Sprintf("%s/public/collection/v1/search?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build artwork search request: %w", err)
	}

	body, err := p.search.do(req)
	if err != nil {
		return nil, err
	}

	var resp metSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, p.search.malformed("%v", err)
	}
	if len(resp.ObjectIDs) == 0 {
		return nil, p.search.malformed("no artworks match %q", query)
	}

	return resp.ObjectIDs, nil
}

func (p *metMuseumProvider) Artwork(ctx context.Context, id int) (*Artwork, error) {
	endpoint := fmt.Sprintf("%s/public/collection/v1/objects/%d", p.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build artwork request: %w", err)
	}

	body, err := p.objects.do(req)
	if err != nil {
		return nil, err
	}

	var resp metObjectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, p.objects.malformed("%v", err)
	}
	if resp.ObjectID == 0 {
		return nil, p.objects.malformed("object %d has no id", id)
	}

	image := resp.PrimaryImage
	if image == "" {
		image = resp.PrimaryImageSmall
	}

	return &Artwork{
		ID:         resp.ObjectID,
		Title:      resp.Title,
		Artist:     resp.ArtistDisplayName,
		Date:       resp.ObjectDate,
		Medium:     resp.Medium,
		Department: resp.Department,
		ImageURL:   image,
		ObjectURL:  resp.ObjectURL,
	}, nil
}
