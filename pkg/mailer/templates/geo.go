package templates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultGeoBaseURL = "http://ip-api.com"

// Geo locates the client that requested an email, used to localize timestamps.
type Geo struct {
	City     string
	Region   string
	Country  string
	Timezone string // IANA name, e.g. Asia/Jakarta
}

// GeoResolver maps a client IP to a location. The email worker treats lookups as best effort.
type GeoResolver interface {
	Lookup(ctx context.Context, ip string) (Geo, error)
}

// FormatGeo renders g as "City, Region, Country", skipping empty parts.
func FormatGeo(g Geo) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{g.City, g.Region, g.Country} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// IPAPIResolver looks up IPs against the ip-api.com JSON endpoint.
type IPAPIResolver struct {
	Client  *http.Client // 2s timeout when nil
	BaseURL string       // defaults to http://ip-api.com
}

type ipAPIResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Country    string `json:"country"`
	RegionName string `json:"regionName"`
	City       string `json:"city"`
	Timezone   string `json:"timezone"`
}

func (r IPAPIResolver) endpoint(ip string) string {
	base := strings.TrimRight(r.BaseURL, "/")
	if base == "" {
		base = defaultGeoBaseURL
	}
	return base + "/json/" + url.PathEscape(ip) + "?fields=status,message,country,regionName,city,timezone"
}

func (r IPAPIResolver) Lookup(ctx context.Context, ip string) (Geo, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return Geo{}, errors.New("geo lookup: empty ip")
	}
	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint(ip), nil)
	if err != nil {
		return Geo{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return Geo{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Geo{}, fmt.Errorf("geo lookup: decode: %w", err)
	}
	if !strings.EqualFold(body.Status, "success") {
		return Geo{}, fmt.Errorf("geo lookup failed: %s", body.Message)
	}
	return Geo{City: body.City, Region: body.RegionName, Country: body.Country, Timezone: body.Timezone}, nil
}
