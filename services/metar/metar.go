package metar

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const metarURL = "https://aviationweather.gov/api/data/metar"

// Report is one decoded METAR observation. Only the fields the dispatch
// briefing displays are decoded; the raw text carries everything else.
type Report struct {
	StationID   string  `json:"icaoId"`
	StationName string  `json:"name,omitempty"`
	RawText     string  `json:"rawOb"`
	ReportTime  string  `json:"reportTime,omitempty"`
	Temp        float64 `json:"temp,omitempty"`
	Dewpoint    float64 `json:"dewp,omitempty"`
	WindSpeedKt float64 `json:"wspd,omitempty"`
	AltimeterMb float64 `json:"altim,omitempty"`
}

type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchStation fetches the latest METAR for one station. Callers treat a
// failure as "no weather available"; it never blocks a dispatch read.
func (c *Client) FetchStation(station string) (*Report, error) {
	u := fmt.Sprintf("%s?ids=%s&format=json", metarURL, url.QueryEscape(station))
	resp, err := c.httpClient.Get(u)
	if err != nil {
		return nil, fmt.Errorf("error fetching METAR for %s: %v", station, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("METAR request for %s returned status %d", station, resp.StatusCode)
	}

	var reports []Report
	if err := json.NewDecoder(resp.Body).Decode(&reports); err != nil {
		return nil, fmt.Errorf("error decoding METAR for %s: %v", station, err)
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("no METAR available for %s", station)
	}
	return &reports[0], nil
}
