// Package bridgeclient implements the bridge contracts over a TCP connection
// to an automation agent running next to the target applications. The agent
// owns the actual scripting transport; this package only moves requests and
// JSON responses.
package bridgeclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Config controls low-level transport behavior such as timeouts. Secret,
// when set, enables the authenticated, encrypted protocol variant.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Secret       string
}

func defaultConfig() Config {
	return Config{
		DialTimeout:  3 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Transport is the low-level agent protocol. Request framing:
// `<path>[ SP <payload>] \x00` — the payload may contain anything including
// newlines because only the NUL byte ends the request. The agent answers
// with a single JSON document and closes the connection; a trailing newline
// is trimmed.
type Transport struct {
	addr string
	cfg  Config
	mock func(path string, payload any, pathParams map[string]string) (string, error)
}

// NewTransport creates a transport with default timeouts.
func NewTransport(addr string) *Transport { return NewTransportWithConfig(addr, nil) }

// NewTransportWithConfig creates a transport with explicit configuration.
func NewTransportWithConfig(addr string, cfg *Config) *Transport {
	c := defaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return &Transport{addr: addr, cfg: c}
}

// NewMockTransport creates a transport that returns canned responses without
// real networking. The responder receives the unfilled path, the payload,
// and the path params, and returns the raw response document.
func NewMockTransport(responder func(path string, payload any, pathParams map[string]string) (string, error)) *Transport {
	return &Transport{addr: "mock", mock: responder, cfg: defaultConfig()}
}

// Do sends one request and returns the agent's response document.
// Payload handling: []byte and string are sent as-is, nil appends nothing,
// and anything else is JSON-marshaled.
func (t *Transport) Do(path string, payload any, pathParams map[string]string) (string, error) {
	return t.DoCtx(context.Background(), path, payload, pathParams)
}

// DoCtx is like Do but honors the context and the configured timeouts.
func (t *Transport) DoCtx(ctx context.Context, path string, payload any, pathParams map[string]string) (string, error) {
	if t.mock != nil {
		return t.mock(path, payload, pathParams)
	}

	line := []byte(fillPath(path, pathParams))
	if pb, ok := toPayloadBytes(payload); ok && len(pb) > 0 {
		line = append(append(line, ' '), pb...)
	} else if !ok {
		return "", fmt.Errorf("encode payload for %s: unsupported value", path)
	}

	d := &net.Dialer{Timeout: t.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return "", fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	if t.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout))
	}

	if t.cfg.Secret != "" {
		key, err := DeriveKey(t.cfg.Secret)
		if err != nil {
			return "", err
		}
		sessionKey, err := clientHandshake(conn, key)
		if err != nil {
			return "", fmt.Errorf("authenticate: %w", err)
		}
		conn, err = wrapConn(conn, sessionKey)
		if err != nil {
			return "", err
		}
	}

	if _, err := conn.Write(append(line, '\x00')); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	if t.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(t.cfg.ReadTimeout))
	}
	resp, err := io.ReadAll(conn)
	if err != nil && len(resp) == 0 {
		return "", fmt.Errorf("read: %w", err)
	}
	return strings.TrimSuffix(string(resp), "\n"), nil
}

func fillPath(pattern string, params map[string]string) string {
	out := pattern
	for k, v := range params {
		out = strings.ReplaceAll(out, "{"+k+"}", url.PathEscape(v))
	}
	return out
}

func toPayloadBytes(v any) ([]byte, bool) {
	switch p := v.(type) {
	case nil:
		return nil, true
	case []byte:
		return p, true
	case string:
		return []byte(p), true
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		return b, true
	}
}
