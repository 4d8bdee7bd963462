// Package backend talks to the node host's HTTP routes: the panel's
// listing, index resolution, thumbnails and explorer routes, plus the small
// list endpoints behind the simple pickers.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"folderpick/internal/config"
	"folderpick/internal/errors"
	"folderpick/internal/log"
	"folderpick/pkg/types"

	"github.com/hashicorp/go-retryablehttp"
)

// maxErrorBody bounds how much of a failed response is kept for messages
const maxErrorBody = 4 << 10

// retryLogger implements the retryablehttp.LeveledLogger interface
type retryLogger struct{}

func fields(keysAndValues []interface{}) []log.Field {
	out := make([]log.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		out = append(out, log.F(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1]))
	}
	return out
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	log.LogWithFields(fields(keysAndValues)...).Error(msg)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	log.LogWithFields(fields(keysAndValues)...).Debug(msg)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	log.LogWithFields(fields(keysAndValues)...).Debug(msg)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	log.LogWithFields(fields(keysAndValues)...).Warn(msg)
}

// noRetry hands every response back untouched; failures surface once.
func noRetry(_ context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}

// Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	endpoints  config.Endpoints
}

// NewClient creates a backend client from the backend section of cfg
func NewClient(cfg *config.Config) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.Backend.URL, "/"))
	if err != nil {
		return nil, errors.NewConfigError("invalid backend url", "backend.url", errors.InvalidConfig, err)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = &retryLogger{}

	return &Client{
		httpClient: retryClient.StandardClient(),
		baseURL:    base,
		endpoints:  cfg.Backend.Endpoints,
	}, nil
}

// BaseURL returns the backend root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) url(path string, q url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if q != nil {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func boolParam(b bool) string {
	return strconv.FormatBool(b)
}

// navParams encodes the listing filters shared by list and resolve_index.
// The view mode is a presentation concern and is never sent.
func navParams(s types.NavigationState) url.Values {
	q := url.Values{}
	q.Set("directory", s.Directory)
	q.Set("exts", s.Extensions)
	q.Set("sort_by", string(s.SortBy))
	q.Set("descending", boolParam(s.Descending))
	q.Set("regex", s.Regex)
	q.Set("regex_mode", string(s.RegexMode))
	q.Set("regex_ic", boolParam(s.RegexIgnoreCase))
	return q
}

// do performs one request and returns the body of a 2xx response. Any
// other outcome becomes a *errors.BackendError of the given kind.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body interface{}, kind errors.ErrorKind) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.NewBackendError("encode request", path, 0, kind, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, q), reader)
	if err != nil {
		return nil, errors.NewBackendError("build request", path, 0, kind, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.LogWithFields(log.F("method", method), log.F("endpoint", path)).Debug("backend request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewBackendError("request failed", path, 0, kind, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewBackendError("read response", path, resp.StatusCode, kind, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewBackendError("unexpected status", path, resp.StatusCode, kind, serverMessage(data))
	}
	return data, nil
}

// serverMessage extracts {"error": "..."} from a failed response
func serverMessage(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return errors.New(payload.Error)
	}
	if len(data) > maxErrorBody {
		data = data[:maxErrorBody]
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil
	}
	return errors.New(text)
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, kind errors.ErrorKind, out interface{}) error {
	data, err := c.do(ctx, http.MethodGet, path, q, nil, kind)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.NewBackendError("malformed response", path, 0, kind, err)
	}
	return nil
}

// List fetches the directory listing for s. Every failure is ListingFailed.
func (c *Client) List(ctx context.Context, s types.NavigationState) (*types.Listing, error) {
	var listing types.Listing
	if err := c.getJSON(ctx, c.endpoints.List, navParams(s), errors.ListingFailed, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// ResolveIndex asks where path sits in the filtered, sorted file list of s.
func (c *Client) ResolveIndex(ctx context.Context, s types.NavigationState, path string) (types.ResolvedIndex, error) {
	q := navParams(s)
	q.Set("path", path)

	// a body without "index" is not found
	res := types.ResolvedIndex{Index: -1}
	if err := c.getJSON(ctx, c.endpoints.ResolveIndex, q, errors.ResolveFailed, &res); err != nil {
		return types.ResolvedIndex{Index: -1}, err
	}
	return res, nil
}

// LastPath returns the directory the backend last listed, or ""
func (c *Client) LastPath(ctx context.Context) (string, error) {
	var res struct {
		LastPath string `json:"last_path"`
	}
	if err := c.getJSON(ctx, c.endpoints.LastPath, nil, errors.FetchGenericFailure, &res); err != nil {
		return "", err
	}
	return res.LastPath, nil
}

// OpenInExplorer asks the backend to reveal path in the OS file manager
func (c *Client) OpenInExplorer(ctx context.Context, path string) error {
	body := map[string]string{"path": path}
	data, err := c.do(ctx, http.MethodPost, c.endpoints.OpenExplorer, nil, body, errors.ExplorerOpenFailed)
	if err != nil {
		return err
	}

	var res struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return errors.NewBackendError("malformed response", c.endpoints.OpenExplorer, 0, errors.ExplorerOpenFailed, err)
	}
	if !res.OK {
		return errors.NewBackendError("explorer refused", c.endpoints.OpenExplorer, 0, errors.ExplorerOpenFailed, errors.New(res.Error))
	}
	return nil
}

// ThumbnailURL is the address of the scaled preview of path
func (c *Client) ThumbnailURL(path string) string {
	return c.url(c.endpoints.Thumbnail, url.Values{"filepath": {path}})
}

// ViewURL is the address of the raw bytes of path
func (c *Client) ViewURL(path string) string {
	return c.url(c.endpoints.View, url.Values{"filepath": {path}})
}

// SourceURL picks the endpoint a card's preview comes from
func (c *Client) SourceURL(card types.Card) string {
	if card.Thumb == types.ThumbScaled {
		return c.ThumbnailURL(card.Path)
	}
	return c.ViewURL(card.Path)
}

// Thumbnail downloads the scaled preview of path
func (c *Client) Thumbnail(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, c.endpoints.Thumbnail, url.Values{"filepath": {path}}, nil, errors.ThumbnailFailed)
}

// View downloads the raw bytes of path
func (c *Client) View(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, c.endpoints.View, url.Values{"filepath": {path}}, nil, errors.ThumbnailFailed)
}

// ListDir returns the flat listing used by the simple file picker
func (c *Client) ListDir(ctx context.Context, s types.NavigationState, recursive bool) (*types.PickerListing, error) {
	q := url.Values{}
	q.Set("dir", s.Directory)
	q.Set("exts", s.Extensions)
	q.Set("recursive", boolParam(recursive))
	q.Set("sort_by", string(s.SortBy))
	q.Set("descending", boolParam(s.Descending))
	q.Set("regex", s.Regex)
	q.Set("regex_mode", string(s.RegexMode))
	q.Set("regex_ic", boolParam(s.RegexIgnoreCase))

	var listing types.PickerListing
	if err := c.getJSON(ctx, c.endpoints.ListDir, q, errors.FetchGenericFailure, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// PaletteFiles lists the palette files under a picker prefix
func (c *Client) PaletteFiles(ctx context.Context, prefix string) ([]string, error) {
	var res struct {
		Files []string `json:"files"`
	}
	if err := c.getJSON(ctx, prefix+"/files", nil, errors.FetchGenericFailure, &res); err != nil {
		return nil, err
	}
	return res.Files, nil
}

// PaletteColors lists the colors of one palette file
func (c *Client) PaletteColors(ctx context.Context, prefix, file string) ([]string, error) {
	var res struct {
		Colors []string `json:"colors"`
	}
	if err := c.getJSON(ctx, prefix+"/colors", url.Values{"file": {file}}, errors.FetchGenericFailure, &res); err != nil {
		return nil, err
	}
	return res.Colors, nil
}

// Fonts lists the font files available to the text maker
func (c *Client) Fonts(ctx context.Context) ([]string, error) {
	var res struct {
		Fonts []string `json:"fonts"`
	}
	if err := c.getJSON(ctx, c.endpoints.Fonts, nil, errors.FetchGenericFailure, &res); err != nil {
		return nil, err
	}
	return res.Fonts, nil
}

// Endpoints returns the configured routes
func (c *Client) Endpoints() config.Endpoints {
	return c.endpoints
}
