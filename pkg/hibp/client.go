// SPDX-License-Identifier: MIT

// Package hibp queries the Pwned Passwords range API using the k-anonymity
// protocol: only the first five characters of the password's SHA-1 digest
// ever leave the process.
package hibp

import (
	"bufio"
	"bytes"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"pwd-strength/pkg/strength"
)

// DefaultBaseURL is the public Pwned Passwords range endpoint.
const DefaultBaseURL = "https://api.pwnedpasswords.com/range"

// DefaultTimeout bounds one breach lookup, retries included. Evaluations are
// request-scoped, so a slow lookup must not hold a submission hostage.
const DefaultTimeout = 5 * time.Second

// Client checks passwords against a breach corpus over the range API. It
// caches range responses keyed by the 5-character prefix; no password
// material is ever cached or logged.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	cache   *ristretto.Cache
}

// NewClient builds a Client for the given endpoint. An empty baseURL selects
// the public API, a timeout <= 0 selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	// Prefix space is only 16^5; a small cache absorbs repeated submissions
	// without another round trip.
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1 << 14,
		MaxCost:     32 << 20,
		BufferItems: 64,
	})
	if err != nil {
		log.Warn().Err(err).Msg("range cache disabled")
		cache = nil
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    initHttpClient(timeout),
		cache:   cache,
	}
}

func initHttpClient(timeout time.Duration) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	// zerolog already covers the interesting events, the retry chatter is
	// just noise.
	client.Logger = nil

	// Two quick retries on protocol errors. Anything more and the overall
	// timeout wins anyway.
	client.RetryMax = 2
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 1 * time.Second

	client.HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DisableCompression: false,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          10,
			IdleConnTimeout:       10 * time.Second,
			TLSHandshakeTimeout:   timeout,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return client
}

// IsBreached reports whether the password appears in the breach corpus. Any
// transport, status, or parse failure returns an error so the caller can
// decide its failure policy; this client takes no fail-open stance itself.
func (c *Client) IsBreached(ctx context.Context, password string) (bool, error) {
	digest := strength.Sha1Hex(password)
	prefix, suffix := digest[:5], digest[5:]

	body, err := c.fetchRange(ctx, prefix)
	if err != nil {
		return false, err
	}

	return matchSuffix(body, suffix)
}

func (c *Client) fetchRange(ctx context.Context, prefix string) ([]byte, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(prefix); ok {
			if body, ok := cached.([]byte); ok {
				return body, nil
			}
		}
	}

	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/%s", c.baseURL, prefix),
		nil,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "golang-pwd-strength/1.0")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := res.Body.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing body for range %s", prefix)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("range request for prefix %s failed with status [%d] %s", prefix, res.StatusCode, res.Status)
	}

	var buf bytes.Buffer
	if _, err = buf.ReadFrom(res.Body); err != nil {
		return nil, err
	}

	body := buf.Bytes()
	if c.cache != nil {
		c.cache.SetWithTTL(prefix, body, int64(len(body)), 1*time.Hour)
	}

	return body, nil
}

// matchSuffix scans SUFFIX:COUNT lines for an exact suffix match.
func matchSuffix(body []byte, suffix string) (bool, error) {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		candidate, _, found := strings.Cut(line, ":")
		if !found {
			return false, fmt.Errorf("malformed range response line: %q", line)
		}

		// Exact match only; both sides are uppercase hex.
		if candidate == suffix {
			return true, nil
		}
	}

	return false, scanner.Err()
}
