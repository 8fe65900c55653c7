package random

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/TemiKayas/411HW3/pkg/logger"
)

// DefaultBaseURL random.org 십진 분수 엔드포인트
const DefaultBaseURL = "https://www.random.org/decimal-fractions/"

// Source provides a random decimal fraction in [0, 1).
// The battle resolver depends on this interface so tests can stub it.
type Source interface {
	Fraction(ctx context.Context) (float64, error)
}

// Client random.org HTTP 클라이언트
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient random.org 클라이언트 생성
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fraction 무작위 십진 분수 조회 (plain text, 소수점 둘째 자리)
func (c *Client) Fraction(ctx context.Context) (float64, error) {
	query := url.Values{}
	query.Set("num", "1")
	query.Set("dec", "2")
	query.Set("col", "1")
	query.Set("format", "plain")
	query.Set("rnd", "new")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build random.org request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to reach random.org: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("random.org returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return 0, fmt.Errorf("failed to read random.org response: %w", err)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(string(body)), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid random.org response %q: %w", strings.TrimSpace(string(body)), err)
	}

	logger.Debug("Fetched random fraction", "value", value)

	return value, nil
}
