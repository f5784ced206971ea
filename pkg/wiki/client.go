package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultAPIBaseURL = "https://en.wikipedia.org/w/api.php"
	DefaultUserAgent  = "knowledge-bot/1.0 (conversational QA bot)"
	DefaultSentences  = 5
)

// Client queries the MediaWiki Action API. It is stateless and safe for
// concurrent use.
type Client struct {
	BaseURL   string
	UserAgent string
	Sentences int
	Client    *http.Client
}

var _ Provider = &Client{}

func NewClient(baseURL, userAgent string, sentences int) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if sentences <= 0 {
		sentences = DefaultSentences
	}
	return &Client{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Sentences: sentences,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// --- Wire structs (internal to this package) ---

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
			FullURL string `json:"fullurl"`
			// The Action API encodes page flags as empty strings.
			Missing *string `json:"missing,omitempty"`
			PageProps struct {
				Disambiguation *string `json:"disambiguation"`
			} `json:"pageprops"`
		} `json:"pages"`
	} `json:"query"`
}

// Lookup ranks pages matching the phrase, then fetches the intro extract of
// the best hit. A best hit that turns out to be a disambiguation page is
// reported as OutcomeDisambiguation with the remaining ranked titles, so the
// caller can decide which candidate to retry with.
func (c *Client) Lookup(ctx context.Context, phrase string) (*Result, error) {
	titles, err := c.search(ctx, phrase)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return &Result{Outcome: OutcomeNotFound}, nil
	}

	page, err := c.fetchExtract(ctx, titles[0])
	if err != nil {
		return nil, err
	}
	if page == nil || page.extract == "" {
		return &Result{Outcome: OutcomeNotFound}, nil
	}
	if page.disambiguation {
		return &Result{
			Outcome:    OutcomeDisambiguation,
			Title:      page.title,
			Candidates: titles[1:],
		}, nil
	}

	return &Result{
		Outcome: OutcomeFound,
		Title:   page.title,
		Summary: page.extract,
		URL:     page.url,
	}, nil
}

func (c *Client) search(ctx context.Context, phrase string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", phrase)
	params.Set("srlimit", "10")
	params.Set("format", "json")

	var sr searchResponse
	if err := c.get(ctx, params, &sr); err != nil {
		return nil, fmt.Errorf("wiki search %q: %w", phrase, err)
	}

	titles := make([]string, 0, len(sr.Query.Search))
	for _, hit := range sr.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

type pageInfo struct {
	title          string
	extract        string
	url            string
	disambiguation bool
}

func (c *Client) fetchExtract(ctx context.Context, title string) (*pageInfo, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts|info|pageprops")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("exsentences", strconv.Itoa(c.Sentences))
	params.Set("inprop", "url")
	params.Set("ppprop", "disambiguation")
	params.Set("redirects", "1")
	params.Set("titles", title)
	params.Set("format", "json")

	var er extractResponse
	if err := c.get(ctx, params, &er); err != nil {
		return nil, fmt.Errorf("wiki extract %q: %w", title, err)
	}

	for _, page := range er.Query.Pages {
		if page.Missing != nil {
			continue
		}
		return &pageInfo{
			title:          page.Title,
			extract:        page.Extract,
			url:            page.FullURL,
			disambiguation: page.PageProps.Disambiguation != nil,
		}, nil
	}
	return nil, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
