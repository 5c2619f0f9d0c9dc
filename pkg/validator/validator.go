// Package validator checks Directus credential sets by calling the
// identity-lookup endpoint with the stored token.
package validator

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexvdvalk/directus-auth-manager/pkg/credentials"
)

// IdentityPath is appended to the base URL to look up the token's user.
const IdentityPath = "/users/me"

const maxBodyBytes = 1 << 20

// Config configures a Validator. The zero value is usable.
type Config struct {
	// HTTPClient overrides the client. Timeout is ignored when set.
	HTTPClient *http.Client

	// Timeout bounds each request. Zero leaves it to the transport.
	Timeout time.Duration

	// Concurrency caps in-flight requests in ValidateAll. Zero is unbounded.
	Concurrency int

	UserAgent string
	Logger    *zap.Logger
}

// Validator validates credential sets against their Directus instance.
type Validator struct {
	client      *http.Client
	concurrency int
	userAgent   string
	logger      *zap.Logger
}

// New creates a Validator from cfg. A nil cfg uses defaults.
func New(cfg *Config) *Validator {
	if cfg == nil {
		cfg = &Config{}
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	concurrency := cfg.Concurrency
	if concurrency < 0 {
		concurrency = 0
	}

	return &Validator{
		client:      client,
		concurrency: concurrency,
		userAgent:   cfg.UserAgent,
		logger:      logger,
	}
}

// Endpoint returns the identity-lookup URL for a base URL.
func Endpoint(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + IdentityPath
}

// Validate checks one credential set. Failures are reported in the Result,
// never as an error.
func (v *Validator) Validate(ctx context.Context, name string, creds credentials.Credentials) Result {
	result := Result{Name: name}
	endpoint := Endpoint(creds.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		result.Message = err.Error()
		return result
	}
	req.Header.Set("Authorization", "Bearer "+creds.Token)
	req.Header.Set("Accept", "application/json")
	if v.userAgent != "" {
		req.Header.Set("User-Agent", v.userAgent)
	}

	start := time.Now()
	resp, err := v.client.Do(req)
	if err != nil {
		result.Message = describeTransportError(err)
		v.logger.Debug("validation request failed",
			zap.String("name", name),
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return result
	}
	defer resp.Body.Close()

	v.logger.Debug("validation response",
		zap.String("name", name),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Message = describeStatus(resp.StatusCode)
		return result
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		result.Message = describeTransportError(err)
		return result
	}

	if !gjson.ValidBytes(body) {
		result.Message = MessageInvalidResponse
		return result
	}

	result.Success = true
	result.Message = MessageValid
	result.User = parseUser(body)

	return result
}

// ValidateAll validates every set concurrently. Results follow the sorted
// order of the names, whatever order the requests complete in.
func (v *Validator) ValidateAll(ctx context.Context, creds map[string]credentials.Credentials) []Result {
	names := make([]string, 0, len(creds))
	for name := range creds {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]Result, len(names))

	var g errgroup.Group
	if v.concurrency > 0 {
		g.SetLimit(v.concurrency)
	}

	for i, name := range names {
		g.Go(func() error {
			results[i] = v.Validate(ctx, name, creds[name])
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func parseUser(body []byte) *User {
	data := gjson.GetBytes(body, "data")
	if !data.Exists() || !data.IsObject() {
		return nil
	}

	return &User{
		ID:        data.Get("id").String(),
		Email:     data.Get("email").String(),
		FirstName: data.Get("first_name").String(),
		LastName:  data.Get("last_name").String(),
	}
}

func describeStatus(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return MessageUnauthorized
	case http.StatusForbidden:
		return MessageForbidden
	case http.StatusNotFound:
		return MessageNotFound
	default:
		return fmt.Sprintf("HTTP %d", code)
	}
}

// describeTransportError maps a request error to a readable message,
// preferring typed errors and falling back to the error text.
func describeTransportError(err error) string {
	var (
		dnsErr      *net.DNSError
		netErr      net.Error
		unknownCA   x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		invalidCert x509.CertificateInvalidError
		verifyErr   *tls.CertificateVerificationError
		recordErr   tls.RecordHeaderError
	)

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return MessageRefused
	case errors.As(err, &dnsErr):
		if dnsErr.IsTimeout {
			return MessageTimeout
		}
		return MessageHostNotFound
	case errors.As(err, &verifyErr),
		errors.As(err, &unknownCA),
		errors.As(err, &hostnameErr),
		errors.As(err, &invalidCert),
		errors.As(err, &recordErr):
		return MessageCertificate
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, syscall.ETIMEDOUT),
		errors.As(err, &netErr) && netErr.Timeout():
		return MessageTimeout
	}

	// Report the transport's own text, not the "Get <url>:" wrapper.
	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		msg = urlErr.Err.Error()
	}
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "connection refused"), strings.Contains(lower, "econnrefused"):
		return MessageRefused
	case strings.Contains(lower, "no such host"), strings.Contains(lower, "enotfound"):
		return MessageHostNotFound
	case strings.Contains(lower, "timeout"), strings.Contains(lower, "timed out"), strings.Contains(lower, "etimedout"):
		return MessageTimeout
	case strings.Contains(lower, "certificate"), strings.Contains(lower, "x509"), strings.Contains(lower, "tls"):
		return MessageCertificate
	}

	return msg
}
