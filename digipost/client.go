package digipost

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/http2"

	"github.com/vitalvas/digipost/httpsig"
)

// HTTP/2 health-check settings applied when Config.HTTP2 is set.
const (
	http2ReadIdleTimeout = 30 * time.Second
	http2PingTimeout     = 15 * time.Second
)

// Client is a Digipost API client. Every request is signed with the
// sender's certificate by an httpsig.Transport. A Client is safe for
// concurrent use.
type Client struct {
	http      *http.Client
	baseURL   string
	sender    SenderID
	userAgent string
	logger    *slog.Logger
}

// Part is one part of a multipart upload.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Content     []byte
}

// NewClient creates a client that signs requests as sender with signer,
// typically a *credential.Credential.
func NewClient(cfg Config, sender SenderID, signer httpsig.Signer) (*Client, error) {
	if sender <= 0 {
		return nil, fmt.Errorf("%w: sender %d", ErrInvalidID, sender)
	}

	if signer == nil {
		return nil, httpsig.ErrNoSigner
	}

	cfg = cfg.withDefaults()

	base, err := url.Parse(cfg.APIURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: api url %q", ErrInvalidConfig, cfg.APIURL)
	}

	transport, err := newBaseTransport(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		http: &http.Client{
			Transport: httpsig.NewTransport(transport, httpsig.SignConfig{
				Signer: signer,
				UserID: sender.String(),
			}),
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   strings.TrimRight(cfg.APIURL, "/"),
		sender:    sender,
		userAgent: cfg.UserAgent,
		logger:    cfg.Logger,
	}, nil
}

func newBaseTransport(cfg Config) (*http.Transport, error) {
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
		transport.DialContext = (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
		transport.TLSHandshakeTimeout = cfg.ConnectTimeout
	}

	if cfg.HTTP2 {
		h2, err := http2.ConfigureTransports(transport)
		if err != nil {
			return nil, fmt.Errorf("%w: http2: %w", ErrInvalidConfig, err)
		}

		h2.ReadIdleTimeout = http2ReadIdleTimeout
		h2.PingTimeout = http2PingTimeout
	}

	return transport, nil
}

// SenderID returns the sender the client signs as.
func (c *Client) SenderID() SenderID {
	return c.sender
}

// BuildURL resolves path against the API base URL. Absolute http and https
// URLs, such as links returned by the API, are returned unchanged.
func (c *Client) BuildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// NewRequest creates a request for path with the default Digipost headers.
// Content-Type is set when body is non-nil.
func (c *Client) NewRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BuildURL(path), reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", MediaType)
	req.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		req.Header.Set("Content-Type", MediaType)
	}

	return req, nil
}

// Do sends req and classifies the response. A transport failure is
// returned as an *APIError with status 0, a non-2xx status as an *APIError
// carrying the parsed error envelope. On success the caller closes the
// response body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	log := c.logger.With("method", req.Method, "url", req.URL.String())

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("digipost request failed", "error", err)
		return nil, NewTransportError(err)
	}

	log.Debug("digipost response",
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if err := CheckResponse(resp); err != nil {
		resp.Body.Close()
		log.Warn("digipost api error", "status", resp.StatusCode, "error", err)

		return nil, err
	}

	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	req, err := c.NewRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	return c.readAll(req)
}

func (c *Client) readAll(req *http.Request) ([]byte, error) {
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTransportError(err)
	}

	return data, nil
}

// Get fetches path with optional query parameters and returns the body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	return c.send(ctx, http.MethodGet, path, nil)
}

// Post sends an XML body to path and returns the response body.
func (c *Client) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	if body == nil {
		body = []byte{}
	}

	return c.send(ctx, http.MethodPost, path, body)
}

// Put sends an XML body to path and returns the response body.
func (c *Client) Put(ctx context.Context, path string, body []byte) ([]byte, error) {
	if body == nil {
		body = []byte{}
	}

	return c.send(ctx, http.MethodPut, path, body)
}

// Delete deletes the resource at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.send(ctx, http.MethodDelete, path, nil)

	return err
}

// GetStream fetches path and returns the unread body, for document
// content downloads. The caller closes it.
func (c *Client) GetStream(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// PostMultipart uploads parts as multipart/vnd.digipost-v8+xml.
func (c *Client) PostMultipart(ctx context.Context, path string, parts []Part) ([]byte, error) {
	body, boundary, err := encodeMultipart(parts)
	if err != nil {
		return nil, err
	}

	req, err := c.NewRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", multipartMediaType+"; boundary="+boundary)

	return c.readAll(req)
}

func encodeMultipart(parts []Part) ([]byte, string, error) {
	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	for _, p := range parts {
		params := map[string]string{"name": p.Name}
		if p.Filename != "" {
			params["filename"] = p.Filename
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", mime.FormatMediaType("form-data", params))

		if p.ContentType != "" {
			h.Set("Content-Type", p.ContentType)
		}

		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}

		if _, err := pw.Write(p.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), w.Boundary(), nil
}
