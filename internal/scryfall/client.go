package scryfall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// DefaultBaseURL is the public Scryfall API.
const DefaultBaseURL = "https://api.scryfall.com"

// requestGap is the polite pacing between upstream requests, per Scryfall's
// published guidance (50-100ms).
const requestGap = 100 * time.Millisecond

// Cache is the read-through store for whole-set card lists. The SQLite
// implementation lives in internal/database.
type Cache interface {
	GetSetCards(ctx context.Context, setCode string) ([]models.Card, bool, error)
	PutSetCards(ctx context.Context, setCode string, cards []models.Card) error
}

// Client talks to a Scryfall-compatible card API. One client serves both the
// primary and the supplemental card source roles; it is safe for concurrent
// use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
	Cache      Cache

	group singleflight.Group

	paceMu   sync.Mutex
	lastCall time.Time
}

// New returns a client against the public API.
func New(logger *zap.Logger, cache Cache) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Logger:     logger,
		Cache:      cache,
	}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

// pace enforces the request gap across goroutines.
func (c *Client) pace() {
	c.paceMu.Lock()
	defer c.paceMu.Unlock()
	if wait := requestGap - time.Since(c.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	c.lastCall = time.Now()
}

// apiError is Scryfall's error envelope.
type apiError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

type listResponse struct {
	Data     []cardJSON `json:"data"`
	HasMore  bool       `json:"has_more"`
	NextPage string     `json:"next_page"`
}

// SetCards returns every printing in a set, tokens included. Results are
// cached; concurrent fetches of the same set collapse into one upstream call.
func (c *Client) SetCards(ctx context.Context, setCode string) ([]models.Card, error) {
	if setCode == "" {
		return nil, models.ErrEmptyInput
	}
	if c.Cache != nil {
		if cards, ok, err := c.Cache.GetSetCards(ctx, setCode); err == nil && ok {
			return cards, nil
		} else if err != nil {
			c.logger().Warn("set cache read failed", zap.String("set", setCode), zap.Error(err))
		}
	}

	v, err, _ := c.group.Do("set:"+setCode, func() (any, error) {
		return c.fetchSetCards(ctx, setCode)
	})
	if err != nil {
		return nil, err
	}
	cards := v.([]models.Card)

	if c.Cache != nil {
		if err := c.Cache.PutSetCards(ctx, setCode, cards); err != nil {
			c.logger().Warn("set cache write failed", zap.String("set", setCode), zap.Error(err))
		}
	}
	return cards, nil
}

func (c *Client) fetchSetCards(ctx context.Context, setCode string) ([]models.Card, error) {
	query := url.Values{
		"q":              {fmt.Sprintf("set:%s lang:en", setCode)},
		"unique":         {"prints"},
		"include_extras": {"true"},
	}
	page := c.BaseURL + "/cards/search?" + query.Encode()

	var cards []models.Card
	for page != "" {
		var list listResponse
		if err := c.getJSON(ctx, page, &list); err != nil {
			return nil, err
		}
		for _, cj := range list.Data {
			card, err := cj.toModel()
			if err != nil {
				c.logger().Warn("skipping unparseable card",
					zap.String("set", setCode), zap.String("name", cj.Name), zap.Error(err))
				continue
			}
			cards = append(cards, card)
		}
		page = ""
		if list.HasMore {
			page = list.NextPage
		}
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("set %s: %w", setCode, models.ErrNoCards)
	}
	return cards, nil
}

// NamedFuzzy resolves a card by approximate name.
func (c *Client) NamedFuzzy(ctx context.Context, name string) (models.Card, error) {
	return c.named(ctx, "fuzzy", name)
}

// NamedExact resolves a card by its exact name.
func (c *Client) NamedExact(ctx context.Context, name string) (models.Card, error) {
	return c.named(ctx, "exact", name)
}

func (c *Client) named(ctx context.Context, mode, name string) (models.Card, error) {
	if name == "" {
		return models.Card{}, models.ErrEmptyInput
	}
	u := fmt.Sprintf("%s/cards/named?%s=%s", c.BaseURL, mode, url.QueryEscape(name))
	var cj cardJSON
	if err := c.getJSON(ctx, u, &cj); err != nil {
		if isNotFound(err) {
			return models.Card{}, &models.NoCardFoundError{Identifier: name}
		}
		return models.Card{}, err
	}
	return cj.toModel()
}

// ByCollectorNumber resolves one printing by (set, collector number).
func (c *Client) ByCollectorNumber(ctx context.Context, setCode, number string) (models.Card, error) {
	if setCode == "" || number == "" {
		return models.Card{}, models.ErrEmptyInput
	}
	u := fmt.Sprintf("%s/cards/%s/%s", c.BaseURL, url.PathEscape(setCode), url.PathEscape(number))
	var cj cardJSON
	if err := c.getJSON(ctx, u, &cj); err != nil {
		if isNotFound(err) {
			return models.Card{}, &models.NoCardFoundError{Identifier: setCode + "/" + number}
		}
		return models.Card{}, err
	}
	return cj.toModel()
}

// Identifier is one entry of a batch collection lookup. Either Name (with
// optional Set) or Set+CollectorNumber identifies the card.
type Identifier struct {
	Name            string `json:"name,omitempty"`
	Set             string `json:"set,omitempty"`
	CollectorNumber string `json:"collector_number,omitempty"`
}

func (id Identifier) String() string {
	if id.CollectorNumber != "" {
		return id.Set + "/" + id.CollectorNumber
	}
	if id.Set != "" {
		return id.Name + " (" + id.Set + ")"
	}
	return id.Name
}

// collectionBatchSize is the API's per-request identifier limit.
const collectionBatchSize = 75

// Collection resolves a batch of mixed identifiers, partitioned into found
// cards and the identifiers that missed.
func (c *Client) Collection(ctx context.Context, ids []Identifier) ([]models.Card, []Identifier, error) {
	if len(ids) == 0 {
		return nil, nil, models.ErrEmptyInput
	}
	var found []models.Card
	var missed []Identifier
	for start := 0; start < len(ids); start += collectionBatchSize {
		end := start + collectionBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		f, m, err := c.collectionPage(ctx, ids[start:end])
		if err != nil {
			return nil, nil, err
		}
		found = append(found, f...)
		missed = append(missed, m...)
	}
	return found, missed, nil
}

func (c *Client) collectionPage(ctx context.Context, ids []Identifier) ([]models.Card, []Identifier, error) {
	body, err := json.Marshal(map[string]any{"identifiers": ids})
	if err != nil {
		return nil, nil, err
	}
	var resp struct {
		Data     []cardJSON   `json:"data"`
		NotFound []Identifier `json:"not_found"`
	}
	if err := c.postJSON(ctx, c.BaseURL+"/cards/collection", body, &resp); err != nil {
		return nil, nil, err
	}
	var found []models.Card
	for _, cj := range resp.Data {
		card, err := cj.toModel()
		if err != nil {
			continue
		}
		found = append(found, card)
	}
	return found, resp.NotFound, nil
}

// Search runs a raw search query and returns every page of results.
func (c *Client) Search(ctx context.Context, query string) ([]models.Card, error) {
	if query == "" {
		return nil, models.ErrEmptyInput
	}
	page := c.BaseURL + "/cards/search?" + url.Values{"q": {query}, "unique": {"prints"}}.Encode()
	var cards []models.Card
	for page != "" {
		var list listResponse
		if err := c.getJSON(ctx, page, &list); err != nil {
			if isNotFound(err) && cards == nil {
				return nil, fmt.Errorf("search %q: %w", query, models.ErrNoCards)
			}
			return nil, err
		}
		for _, cj := range list.Data {
			card, err := cj.toModel()
			if err != nil {
				continue
			}
			cards = append(cards, card)
		}
		page = ""
		if list.HasMore {
			page = list.NextPage
		}
	}
	return cards, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, u string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	c.pace()
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("card api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Code != "" {
			return &requestError{status: resp.StatusCode, code: apiErr.Code, details: apiErr.Details}
		}
		return &requestError{status: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type requestError struct {
	status  int
	code    string
	details string
}

func (e *requestError) Error() string {
	if e.details != "" {
		return fmt.Sprintf("card api: %d %s: %s", e.status, e.code, e.details)
	}
	return fmt.Sprintf("card api: status %d", e.status)
}

func isNotFound(err error) bool {
	re, ok := err.(*requestError)
	return ok && re.status == http.StatusNotFound
}
