package ephemeris

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"TrueArk/internal/domain/models"
	xhttp "TrueArk/pkg/http"
)

// Remote talks to the Swiss Ephemeris sidecar service over JSON/HTTP. The
// sidecar owns the ephemeris data files; its own precision mode (full data
// files vs Moshier fallback) is probed once at construction and surfaced
// unmodified for the lifetime of this handle.
type Remote struct {
	base   string
	client *xhttp.Client
	mode   models.EphemerisMode
}

// NewRemote probes the sidecar and pins its precision mode. ephePath, when
// non-empty, is forwarded so the sidecar initializes its data-file search
// path exactly once.
func NewRemote(baseURL string, timeout time.Duration, ephePath string) (*Remote, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("sidecar base url is required")
	}
	r := &Remote{
		base:   baseURL,
		client: xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}

	var health struct {
		Status string `json:"status"`
		Mode   string `json:"mode"`
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	opts := &xhttp.RequestOptions{Method: xhttp.MethodGet, URL: r.base + "/health"}
	if ephePath != "" {
		opts.QueryParams = map[string][]string{"ephe_path": {ephePath}}
	}
	if err := r.client.SendAndParse(ctx, opts, &health); err != nil {
		return nil, fmt.Errorf("sidecar health probe: %w", err)
	}

	switch models.EphemerisMode(health.Mode) {
	case models.ModeSwiss, models.ModeMoshier:
		r.mode = models.EphemerisMode(health.Mode)
	default:
		return nil, fmt.Errorf("sidecar reported unknown mode %q", health.Mode)
	}
	return r, nil
}

func (r *Remote) Mode() models.EphemerisMode { return r.mode }

func (r *Remote) Precision() string {
	if r.mode == models.ModeSwiss {
		return "arcsecond"
	}
	return "arcminute"
}

func (r *Remote) BodyPosition(ctx context.Context, jd float64, body models.Body) (float64, float64, error) {
	var resp struct {
		Longitude float64 `json:"longitude"`
		Speed     float64 `json:"speed"`
	}
	err := r.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    r.base + "/position",
		QueryParams: map[string][]string{
			"jd":   {formatFloat(jd)},
			"body": {string(body)},
		},
	}, &resp)
	if err != nil {
		return 0, 0, fmt.Errorf("sidecar position for %s: %w", body, err)
	}
	return resp.Longitude, resp.Speed, nil
}

func (r *Remote) Angles(ctx context.Context, jd, latitude, longitude float64) (float64, float64, error) {
	var resp struct {
		Ascendant float64 `json:"ascendant"`
		Midheaven float64 `json:"midheaven"`
	}
	err := r.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    r.base + "/houses",
		QueryParams: map[string][]string{
			"jd":     {formatFloat(jd)},
			"lat":    {formatFloat(latitude)},
			"lon":    {formatFloat(longitude)},
			"system": {models.SupportedHouseSystem},
		},
	}, &resp)
	if err != nil {
		return 0, 0, fmt.Errorf("sidecar houses: %w", err)
	}
	return resp.Ascendant, resp.Midheaven, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
