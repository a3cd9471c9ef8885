package providers

import (
	"context"
	"net/url"

	"github.com/voyago/trip-planner/internal/planner"
)

const visaDefaultURL = "https://rough-sun-2523.fly.dev/api"

// VisaClient checks visa requirements via a free lookup API and serves
// static safety guidance. Both lookups degrade to an informative fallback
// record rather than an error: unknown visa status is still useful output.
type VisaClient struct {
	baseURL   string
	transport *Transport
}

// NewVisaClient constructs a VisaClient (no API key required).
func NewVisaClient(t *Transport) *VisaClient {
	return &VisaClient{baseURL: visaDefaultURL, transport: t}
}

// NewVisaClientWithURL points the client at a custom base URL (for tests).
func NewVisaClientWithURL(t *Transport, baseURL string) *VisaClient {
	return &VisaClient{baseURL: baseURL, transport: t}
}

type rawVisaResponse struct {
	VisaRequired string   `json:"visa_required"`
	VisaType     string   `json:"visa_type"`
	Requirements []string `json:"requirements"`
}

// CheckVisa returns visa requirements between the two countries.
func (c *VisaClient) CheckVisa(ctx context.Context, origin, destination string) (planner.VisaInfo, error) {
	params := url.Values{
		"origin":      {origin},
		"destination": {destination},
	}

	var raw rawVisaResponse
	if err := c.transport.getJSON(ctx, c.baseURL, params, nil, &raw); err != nil {
		return planner.VisaInfo{
			Required: "unknown",
			Note:     "Please check official embassy websites for visa requirements",
			Source:   "fallback",
		}, nil
	}

	required := raw.VisaRequired
	if required == "" {
		required = "unknown"
	}
	visaType := raw.VisaType
	if visaType == "" {
		visaType = "unknown"
	}
	return planner.VisaInfo{
		Required:     required,
		Type:         visaType,
		Requirements: raw.Requirements,
		Source:       "visa_api",
	}, nil
}

// SafetyAdvisories returns travel safety guidance for the destination.
// There is no live advisory feed wired yet, so this always points at
// official sources.
func (c *VisaClient) SafetyAdvisories(ctx context.Context, destination string) (planner.SafetyInfo, error) {
	return planner.SafetyInfo{
		Level:      "check_official_sources",
		Advisories: []string{},
		Source:     "placeholder",
	}, nil
}
