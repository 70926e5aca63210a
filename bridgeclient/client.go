package bridgeclient

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"goxa/bridge"
)

// AgentError is the structured error document the agent returns.
type AgentError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *AgentError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// Client talks to an automation agent. It implements bridge.Launcher, and
// the handles it returns implement bridge.RemoteHandle.
type Client struct {
	transport *Transport
}

// New constructs a client for the agent at addr (host:port).
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithConfig constructs a client with explicit transport configuration.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a client over a custom transport, typically the
// mock transport in tests.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

type pingResponse struct {
	Agent   string `json:"agent"`
	Version string `json:"version"`
}

// Ping returns the agent's identity and version.
func (c *Client) Ping(ctx context.Context) (agent, version string, err error) {
	raw, err := c.transport.DoCtx(ctx, "ping", nil, nil)
	if err != nil {
		return "", "", err
	}
	resp, err := parse[pingResponse](raw)
	if err != nil {
		return "", "", err
	}
	return resp.Agent, resp.Version, nil
}

type launchRequest struct {
	BundleID string `json:"bundleId"`
}

type launchResponse struct {
	Handle string `json:"handle"`
}

// LaunchOrAttach asks the agent to launch (or attach to) the application and
// returns the handle of its root object. The agent blocks until the
// application reports readiness or the request's context is done.
func (c *Client) LaunchOrAttach(ctx context.Context, bundleID string) (bridge.RemoteHandle, error) {
	raw, err := c.transport.DoCtx(ctx, "app/launch", launchRequest{BundleID: bundleID}, nil)
	if err != nil {
		return nil, err
	}
	resp, err := parse[launchResponse](raw)
	if err != nil {
		var agentErr *AgentError
		if errors.As(err, &agentErr) && agentErr.Status == 404 {
			return nil, &bridge.ApplicationNotFoundError{Name: bundleID}
		}
		return nil, err
	}
	return &remoteHandle{c: c, id: resp.Handle}, nil
}

// remoteHandle is one agent-side object reference.
type remoteHandle struct {
	c  *Client
	id string
}

type propertyRequest struct {
	Name string `json:"name"`
}

type valueResponse struct {
	Value any `json:"value"`
}

func (h *remoteHandle) Property(ctx context.Context, name string) (any, error) {
	raw, err := h.c.transport.DoCtx(ctx, "handle/{id}/property", propertyRequest{Name: name}, h.params())
	if err != nil {
		return nil, err
	}
	resp, err := parse[valueResponse](raw)
	if err != nil {
		return nil, err
	}
	return h.c.decodeValue(resp.Value), nil
}

type elementsRequest struct {
	Name string `json:"name"`
}

type elementsResponse struct {
	Handles []string `json:"handles"`
}

func (h *remoteHandle) Elements(ctx context.Context, name string) ([]bridge.RemoteHandle, error) {
	raw, err := h.c.transport.DoCtx(ctx, "handle/{id}/elements", elementsRequest{Name: name}, h.params())
	if err != nil {
		return nil, err
	}
	resp, err := parse[elementsResponse](raw)
	if err != nil {
		return nil, err
	}
	out := make([]bridge.RemoteHandle, len(resp.Handles))
	for i, id := range resp.Handles {
		out[i] = &remoteHandle{c: h.c, id: id}
	}
	return out, nil
}

type elementsPropertyRequest struct {
	Element  string `json:"element"`
	Property string `json:"property"`
}

type valuesResponse struct {
	Values []any `json:"values"`
}

func (h *remoteHandle) ElementsProperty(ctx context.Context, element, property string) ([]any, error) {
	req := elementsPropertyRequest{Element: element, Property: property}
	raw, err := h.c.transport.DoCtx(ctx, "handle/{id}/elements/property", req, h.params())
	if err != nil {
		return nil, err
	}
	resp, err := parse[valuesResponse](raw)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(resp.Values))
	for i, v := range resp.Values {
		out[i] = h.c.decodeValue(v)
	}
	return out, nil
}

type invokeRequest struct {
	Command string         `json:"command"`
	Direct  any            `json:"direct,omitempty"`
	Named   map[string]any `json:"named,omitempty"`
}

func (h *remoteHandle) Invoke(ctx context.Context, command string, direct any, named map[string]any) (any, error) {
	req := invokeRequest{Command: command, Direct: encodeValue(direct)}
	if len(named) > 0 {
		req.Named = make(map[string]any, len(named))
		for k, v := range named {
			req.Named[k] = encodeValue(v)
		}
	}
	raw, err := h.c.transport.DoCtx(ctx, "handle/{id}/invoke", req, h.params())
	if err != nil {
		return nil, err
	}
	resp, err := parse[valueResponse](raw)
	if err != nil {
		return nil, err
	}
	return h.c.decodeValue(resp.Value), nil
}

func (h *remoteHandle) params() map[string]string {
	return map[string]string{"id": h.id}
}

// Object references cross the wire as {"$handle": "<id>"}.

func encodeValue(v any) any {
	if rh, ok := v.(*remoteHandle); ok {
		return map[string]any{"$handle": rh.id}
	}
	return v
}

func (c *Client) decodeValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		if id, ok := x["$handle"].(string); ok && len(x) == 1 {
			return &remoteHandle{c: c, id: id}
		}
		return x
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = c.decodeValue(item)
		}
		return out
	default:
		return v
	}
}

// parse decodes an agent response, surfacing structured agent errors.
func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	var problem AgentError
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
