package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	clistPath  = "/api/qt/clist/get"
	userAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36"
	referer    = "http://quote.eastmoney.com/"
	chainField = "f1,f2,f3,f12,f13,f14,f298,f299,f249,f300,f330,f331,f332,f333,f334,f335,f336,f301"
)

// Client interface for testability
type Client interface {
	FetchPage(ctx context.Context, code string, market, page int) ([]ChainRow, error)
}

type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	pageSize   int
	limiter    *rate.Limiter
	logger     *zap.Logger
	now        func() time.Time
}

type clistResponse struct {
	RC   int `json:"rc"`
	Data *struct {
		Total int        `json:"total"`
		Diff  []ChainRow `json:"diff"`
	} `json:"data"`
}

func NewClient(baseURL, token string, pageSize, ratePerSec int, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:       10,
		MaxConnsPerHost:    2,
		IdleConnTimeout:    90 * time.Second,
		DisableCompression: false,
	}

	return &HTTPClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		baseURL:  baseURL,
		token:    token,
		pageSize: pageSize,
		limiter:  rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
		logger:   logger,
		now:      time.Now,
	}
}

// FetchPage requests one page of the option chain listed on an underlying.
// An empty page returns ErrNoData.
func (c *HTTPClient) FetchPage(ctx context.Context, code string, market, page int) ([]ChainRow, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + clistPath + "?" + c.query(code, market, page).Encode()
	c.logger.Debug("requesting", zap.String("code", code), zap.Int("page", page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	payload, err := unwrapJSONP(body)
	if err != nil {
		return nil, err
	}

	var parsed clistResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if parsed.Data == nil || len(parsed.Data.Diff) == 0 {
		return nil, ErrNoData
	}

	c.logger.Debug("page received",
		zap.String("code", code),
		zap.Int("page", page),
		zap.Int("rows", len(parsed.Data.Diff)),
		zap.Int("total", parsed.Data.Total),
	)
	return parsed.Data.Diff, nil
}

func (c *HTTPClient) query(code string, market, page int) url.Values {
	ms := c.now().UnixMilli()
	q := url.Values{}
	q.Set("pn", strconv.Itoa(page))
	q.Set("pz", strconv.Itoa(c.pageSize))
	q.Set("po", "1")
	q.Set("np", "1")
	q.Set("fltt", "2")
	q.Set("invt", "2")
	q.Set("fid", "f301")
	q.Set("fs", fmt.Sprintf("m:%d+c:%s", market, code))
	q.Set("fields", chainField)
	q.Set("ut", c.token)
	q.Set("cb", fmt.Sprintf("jQuery_callback_%d", ms))
	q.Set("_", strconv.FormatInt(ms, 10))
	return q
}

// unwrapJSONP strips the callback wrapper, keeping what lies between the
// first '(' and the last ')'.
func unwrapJSONP(body []byte) ([]byte, error) {
	start := bytes.IndexByte(body, '(')
	end := bytes.LastIndexByte(body, ')')
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, truncate(body, 200))
	}
	return body[start+1 : end], nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
