// Package amadeus is a small client for the Amadeus self-service travel APIs:
// flight offers search, points of interest and airport/city lookup.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/travelplanner/config"
	"github.com/Domenick1991/travelplanner/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	tokenPath        = "/v1/security/oauth2/token"
	flightOffersPath = "/v2/shopping/flight-offers"
	poisPath         = "/v1/reference-data/locations/pois"
	locationsPath    = "/v1/reference-data/locations"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client whose requests carry a client-credentials bearer
// token. The token is fetched lazily and refreshed before it expires.
func NewClient(cfg config.AmadeusConfig) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     base + tokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})

	httpClient := cc.Client(tokenCtx)
	httpClient.Timeout = timeout

	return &Client{baseURL: base, http: httpClient}
}

func (c *Client) SearchFlightOffers(ctx context.Context, p domain.FlightSearchParams) ([]domain.FlightOffer, error) {
	q := url.Values{}
	q.Set("originLocationCode", p.Origin)
	q.Set("destinationLocationCode", p.Destination)
	q.Set("departureDate", p.DepartureDate)
	q.Set("adults", strconv.Itoa(p.Adults))
	if p.ReturnDate != "" {
		q.Set("returnDate", p.ReturnDate)
	}
	if p.Children > 0 {
		q.Set("children", strconv.Itoa(p.Children))
	}
	if p.TravelClass != "" {
		q.Set("travelClass", p.TravelClass)
	}
	if p.NonStop {
		q.Set("nonStop", "true")
	}
	if p.Currency != "" {
		q.Set("currencyCode", p.Currency)
	}
	if p.Max > 0 {
		q.Set("max", strconv.Itoa(p.Max))
	}

	var resp struct {
		Data []domain.FlightOffer `json:"data"`
	}
	if err := c.get(ctx, flightOffersPath, q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) SearchPointsOfInterest(ctx context.Context, p domain.POIParams) ([]domain.PointOfInterest, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(p.Radius))
	if len(p.Categories) > 0 {
		q.Set("categories", strings.Join(p.Categories, ","))
	}

	var resp struct {
		Data []domain.PointOfInterest `json:"data"`
	}
	if err := c.get(ctx, poisPath, q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) SearchLocations(ctx context.Context, keyword string, subTypes []string) ([]domain.Location, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("subType", strings.Join(subTypes, ","))

	var resp struct {
		Data []domain.Location `json:"data"`
	}
	if err := c.get(ctx, locationsPath, q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/vnd.amadeus+json, application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w: %w", path, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w: %w", path, domain.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w: %w", path, domain.ErrUpstream, err)
	}
	return nil
}
