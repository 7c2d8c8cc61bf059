package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
)

const (
	DefaultFoursquareBaseURL = "https://api.foursquare.com"
	foursquareOAuthURL       = "https://foursquare.com/oauth2"
	foursquareAPIVersion     = "20120609"
)

type CheckinProvider interface {
	// LatestVenue returns the venue of the newest check-in, or nil when the
	// user has none.
	LatestVenue(ctx context.Context) (*Venue, error)
}

type VenueLocation struct {
	Address          string   `json:"address,omitempty"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	LabeledLatLngs   []any    `json:"labeledLatLngs"`
	PostalCode       string   `json:"postalCode,omitempty"`
	CC               string   `json:"cc,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Country          string   `json:"country,omitempty"`
	FormattedAddress []string `json:"formattedAddress"`
}

type CategoryIcon struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

type VenueCategory struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	PluralName string       `json:"pluralName"`
	ShortName  string       `json:"shortName"`
	Icon       CategoryIcon `json:"icon"`
	Primary    bool         `json:"primary"`
}

type Venue struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Contact    map[string]any  `json:"contact"`
	Location   VenueLocation   `json:"location"`
	Categories []VenueCategory `json:"categories,omitempty"`
	Category   *VenueCategory  `json:"category,omitempty"`
}

type foursquareCheckinsResponse struct {
	Meta struct {
		Code        int    `json:"code"`
		ErrorDetail string `json:"errorDetail"`
	} `json:"meta"`
	Response struct {
		Checkins struct {
			Items []struct {
				Venue *Venue `json:"venue"`
			} `json:"items"`
		} `json:"checkins"`
	} `json:"response"`
}

type foursquareProvider struct {
	accessToken string
	baseURL     string
	checkins    *upstream
}

func NewFoursquareProvider(accessToken string, opts ClientOptions) CheckinProvider {
	opts = opts.withDefaults(DefaultFoursquareBaseURL)

	return &foursquareProvider{
		accessToken: accessToken,
		baseURL:     opts.BaseURL,
		checkins:    newUpstream("foursquare-checkins", opts, foursquareErrorDetail),
	}
}

func foursquareErrorDetail(body []byte) string {
	var resp foursquareCheckinsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Meta.ErrorDetail
}

func (p *foursquareProvider) LatestVenue(ctx context.Context) (*Venue, error) {
	params := url.Values{}
	params.Set("limit", "1")
	params.Set("v", foursquareAPIVersion)
	params.Set("sort", "newestfirst")
	params.Set("oauth_token", p.accessToken)

	endpoint := fmt.Sprintf("%s/v2/users/self/checkins?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build checkins request: %w", err)
	}

	body, err := p.checkins.do(req)
	if err != nil {
		return nil, err
	}

	var resp foursquareCheckinsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, p.checkins.malformed("%v", err)
	}

	items := resp.Response.Checkins.Items
	if len(items) == 0 || items[0].Venue == nil {
		return nil, nil
	}

	venue := items[0].Venue
	if len(venue.Categories) > 0 {
		category := venue.Categories[0]
		venue.Category = &category
	}

	return venue, nil
}

// AuthorizeURL is where /login sends the user to grant access.
func AuthorizeURL(clientID, callbackURL string) string {
	return fmt.Sprintf("%s/authenticate?client_id=%s&response_type=code&redirect_uri=%s",
		foursquareOAuthURL, url.QueryEscape(clientID), url.QueryEscape(callbackURL))
}

// AccessTokenURL is the token exchange URL for code. The client secret is
// left as a placeholder for the operator to fill in by hand.
func AccessTokenURL(clientID, callbackURL, code string) string {
	return fmt.Sprintf("%s/access_token?client_id=%s&client_secret=YOUR_CLIENT_SECRET&grant_type=authorization_code&redirect_uri=%s&code=%s",
		foursquareOAuthURL, url.QueryEscape(clientID), url.QueryEscape(callbackURL), url.QueryEscape(code))
}
