// Package symphony implements a minimal REST client for the Symphony
// messaging platform.
//
// The client covers the surface the adapter needs: certificate-based
// authentication against the session and key-manager auth endpoints,
// datafeed creation and long reads on the agent, and message send, IM
// creation and user lookup on the pod. Every call takes a context and
// returns an explicit error; non-2xx responses surface as *StatusError.
package symphony

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/keepmind9/symbot/internal/logger"
	"github.com/keepmind9/symbot/pkg/constants"
)

// Config holds the connection parameters for a pod
type Config struct {
	Host       string // pod host, without scheme
	PublicKey  string // path to the bot certificate PEM
	PrivateKey string // path to the bot private key PEM
	Passphrase string // passphrase for the private key
}

// Client talks to a single Symphony pod. It is safe for concurrent use:
// sends and lookups may run while a datafeed read is in flight.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu              sync.RWMutex
	sessionToken    string
	keyManagerToken string
}

// NewClient builds a client from the configured certificate material.
// The private key may be an RFC 1423 encrypted PEM; it is decrypted with
// the passphrase before the TLS key pair is assembled.
func NewClient(cfg Config) (*Client, error) {
	logger.WithFields(logrus.Fields{
		"host":       cfg.Host,
		"public_key": cfg.PublicKey,
		"passphrase": maskSecret(cfg.Passphrase),
	}).Debug("building-symphony-client")

	cert, err := loadKeyPair(cfg.PublicKey, cfg.PrivateKey, cfg.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to load client certificate: %w", err)
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			Certificates: []tls.Certificate{cert},
		},
	}

	return &Client{
		baseURL:    "https://" + cfg.Host,
		httpClient: &http.Client{Transport: transport},
	}, nil
}

// loadKeyPair reads the certificate and private key PEM files and builds
// the TLS key pair, decrypting the key with the passphrase when needed
func loadKeyPair(certPath, keyPath, passphrase string) (tls.Certificate, error) {
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to read public key: %w", err)
	}
	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to read private key: %w", err)
	}

	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return tls.Certificate{}, fmt.Errorf("no PEM block found in private key")
	}
	if x509.IsEncryptedPEMBlock(block) {
		der, err := x509.DecryptPEMBlock(block, []byte(passphrase))
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("failed to decrypt private key: %w", err)
		}
		keyPEM = pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der})
	}

	return tls.X509KeyPair(certPEM, keyPEM)
}

type authResponse struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// Authenticate obtains the session and key-manager tokens. Both are
// required before any agent or pod call; retry policy on auth failure
// belongs to the caller.
func (c *Client) Authenticate(ctx context.Context) error {
	logger.WithField("host", c.baseURL).Info("authenticating-with-symphony")

	var session authResponse
	if err := c.do(ctx, http.MethodPost, "/sessionauth/v1/authenticate", nil, &session); err != nil {
		return fmt.Errorf("session authentication failed: %w", err)
	}

	var km authResponse
	if err := c.do(ctx, http.MethodPost, "/keyauth/v1/authenticate", nil, &km); err != nil {
		return fmt.Errorf("key manager authentication failed: %w", err)
	}

	c.mu.Lock()
	c.sessionToken = session.Token
	c.keyManagerToken = km.Token
	c.mu.Unlock()

	logger.Info("symphony-authentication-complete")
	return nil
}

// tokens returns the current auth tokens
func (c *Client) tokens() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionToken, c.keyManagerToken
}

// do issues one JSON request against the pod and decodes the response
// into out when out is non-nil. A 204 leaves out untouched. Non-2xx
// responses become *StatusError.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultHTTPTimeout)
	defer cancel()
	return c.doWithContext(ctx, method, path, body, out)
}

// doLong is do without the short per-call timeout, for long-poll reads
func (c *Client) doLong(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultReadTimeout)
	defer cancel()
	return c.doWithContext(ctx, method, path, body, out)
}

func (c *Client) doWithContext(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	sessionToken, keyManagerToken := c.tokens()
	if sessionToken != "" {
		req.Header.Set("sessionToken", sessionToken)
	}
	if keyManagerToken != "" {
		req.Header.Set("keyManagerToken", keyManagerToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	logger.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
	}).Debug("symphony-api-call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(data)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
