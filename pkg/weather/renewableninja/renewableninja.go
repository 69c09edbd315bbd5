// Package renewableninja implements weather.Provider against the
// Renewable Ninja PV/demand HTTP API, ported from the original model's
// renewable_ninja.py service adapter.
package renewableninja

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"time"

	"github.com/levenlabs/go-lflag"
	"github.com/plansize/plansize/pkg/log"
)

const defaultBaseURL = "https://www.renewables.ninja/api/data"

// Provider hits the Renewable Ninja API for PV output and heating/cooling
// demand series. The API token is read from RENEWABLES_NINJA_API_TOKEN
// (loaded from a .env file by cmd/plansize via godotenv, mirroring the
// original's load_dotenv()+os.getenv()), not a flag, since it's a secret.
type Provider struct {
	client  *http.Client
	baseURL string
	token   string
}

// Configured builds a Provider, registering a flag for the base URL (so a
// test or staging environment can point elsewhere) and reading the API
// token from the environment.
func Configured(client *http.Client) *Provider {
	baseURL := lflag.String("renewableninja-base-url", defaultBaseURL, "Base URL for the Renewable Ninja data API")
	p := &Provider{client: client}
	lflag.Do(func() {
		p.baseURL = *baseURL
		p.token = os.Getenv("RENEWABLES_NINJA_API_TOKEN")
	})
	return p
}

// PVOutput fetches hourly PV capacity-factor data for [start, end],
// requesting one extra day on either side the way the original does (its
// date math isn't aligned to local-time boundaries, so it over-fetches),
// then keeping only samples whose local date falls in [start, end].
func (p *Provider) PVOutput(ctx context.Context, lat, lon float64, start, end time.Time) ([]float64, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("date_from", start.AddDate(0, 0, -1).Format("2006-01-02"))
	params.Set("date_to", end.AddDate(0, 0, 1).Format("2006-01-02"))
	params.Set("capacity", "1")
	params.Set("system_loss", "0.1")
	params.Set("tracking", "0")
	params.Set("tilt", "35")
	params.Set("azim", "180")
	params.Set("dataset", "merra2")
	params.Set("format", "json")

	var resp pvResponse
	if err := p.get(ctx, "/pv", params, &resp); err != nil {
		return nil, fmt.Errorf("renewableninja: pv output: %w", err)
	}

	type sample struct {
		localTime   string
		electricity float64
	}
	samples := make([]sample, 0, len(resp.Data))
	for key, v := range resp.Data {
		samples = append(samples, sample{localTime: key, electricity: v.Electricity})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].localTime < samples[j].localTime })

	startKey := start.Format("2006-01-02")
	endKey := end.Format("2006-01-02")
	out := make([]float64, 0, len(samples))
	for _, s := range samples {
		day := s.localTime
		if len(day) >= 10 {
			day = day[:10]
		}
		if day < startKey || day > endKey {
			continue
		}
		out = append(out, s.electricity)
	}
	return out, nil
}

// HeatingDemand fetches the daily cooling-demand index for [start, end],
// using the same parameter set (heating/cooling thresholds, diurnal
// profile, smoothing) as the original get_heating_demand call.
func (p *Provider) HeatingDemand(ctx context.Context, lat, lon float64, start, end time.Time) ([]float64, error) {
	params := url.Values{}
	params.Set("local_time", "true")
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("date_from", start.Format("2006-01-02"))
	params.Set("date_to", end.Format("2006-01-02"))
	params.Set("dataset", "merra2")
	params.Set("heating_threshold", "14")
	params.Set("cooling_threshold", "20")
	params.Set("base_power", "0")
	params.Set("heating_power", "0.3")
	params.Set("cooling_power", "0.15")
	params.Set("smoothing", "0.5")
	params.Set("solar_gains", "0.012")
	params.Set("wind_chill", "-0.2")
	params.Set("humidity_discomfort", "0.05")
	params.Set("use_diurnal_profile", "true")
	params.Set("format", "json")
	params.Set("mean", "day")

	var resp demandResponse
	if err := p.get(ctx, "/demand", params, &resp); err != nil {
		return nil, fmt.Errorf("renewableninja: heating demand: %w", err)
	}

	dates := make([]string, 0, len(resp.Data))
	for k := range resp.Data {
		dates = append(dates, k)
	}
	sort.Strings(dates)

	out := make([]float64, 0, len(dates))
	for _, d := range dates {
		out = append(out, resp.Data[d].CoolingDemand)
	}
	return out, nil
}

type pvResponse struct {
	Data map[string]struct {
		Electricity float64 `json:"electricity"`
	} `json:"data"`
}

type demandResponse struct {
	Data map[string]struct {
		CoolingDemand float64 `json:"cooling_demand"`
	} `json:"data"`
}

func (p *Provider) get(ctx context.Context, path string, params url.Values, out any) error {
	u, err := url.Parse(p.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+p.token)

	log.Ctx(ctx).DebugContext(ctx, "fetching renewable ninja data", "url", u.String())
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("renewable ninja api returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
