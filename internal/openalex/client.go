package openalex

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jnfrdm/polito-collaborations-dashboard/internal/mode"
)

const defaultBaseURL = "https://api.openalex.org"

// Client talks to the OpenAlex REST API.
type Client struct {
	BaseURL string
	// Mailto joins the polite pool when set.
	Mailto string
	// Pause is slept after every successful institution lookup to bound the
	// outbound request rate.
	Pause time.Duration

	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Pause:   100 * time.Millisecond,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) get(requestURL string, dest interface{}) error {
	resp, err := c.httpClient.Get(requestURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openalex: %s returned %s", requestURL, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// InstitutionCountryCode fetches one institution by its short id, e.g. I55143463,
// and returns its country_code (empty when the record carries none).
func (c *Client) InstitutionCountryCode(shortID string) (string, error) {
	requestURL := fmt.Sprintf("%s/institutions/%s", c.BaseURL, shortID)
	if c.Mailto != "" {
		requestURL += "?mailto=" + url.QueryEscape(c.Mailto)
	}

	var body struct {
		CountryCode string `json:"country_code"`
	}
	if err := c.get(requestURL, &body); err != nil {
		return "", err
	}
	// be gentle with the API
	time.Sleep(c.Pause)
	return body.CountryCode, nil
}

// DatasetWorks pages through all works of type dataset having at least one
// authorship at the given ror institution.
func (c *Client) DatasetWorks(ror string, perPage int) ([]mode.Work, error) {
	var all []mode.Work
	for page := 1; ; page++ {
		requestURL := fmt.Sprintf("%s/works?filter=type:dataset,authorships.institutions.ror:%s&per-page=%d&page=%d",
			c.BaseURL, url.QueryEscape(ror), perPage, page)
		if c.Mailto != "" {
			requestURL += "&mailto=" + url.QueryEscape(c.Mailto)
		}

		var body struct {
			Meta struct {
				Count int `json:"count"`
			} `json:"meta"`
			Results []mode.Work `json:"results"`
		}
		if err := c.get(requestURL, &body); err != nil {
			return nil, err
		}
		if len(body.Results) == 0 {
			break
		}
		all = append(all, body.Results...)
		log.Infof("fetched page %d, %d/%d works", page, len(all), body.Meta.Count)
		if len(all) >= body.Meta.Count {
			break
		}
		time.Sleep(c.Pause)
	}
	return all, nil
}
