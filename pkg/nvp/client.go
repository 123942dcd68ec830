// Package nvp is a thin REST client for an NVP-style SDN controller.
// It exposes the three collections the driver cares about (logical
// switches, logical ports, transport zones) plus the zone-binding call
// on a switch. Queries are always live; nothing is cached here.
package nvp

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// Config holds controller connection settings.
type Config struct {
	// URL is the controller API base, e.g. "https://nvp.example:443".
	URL      string
	Username string
	Password string

	// InsecureSkipVerify disables TLS verification (lab controllers
	// with self-signed certs).
	InsecureSkipVerify bool

	// Timeout bounds each request. Zero means defaultTimeout.
	Timeout time.Duration
}

// Client talks to one NVP controller.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient validates cfg and returns a controller client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("nvp: controller URL is required")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("nvp: parsing controller URL %q: %w", cfg.URL, err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
			},
			Timeout: timeout,
		},
	}, nil
}

// APIError is a non-2xx controller response.
type APIError struct {
	Status int
	Method string
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nvp: %s %s: %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// IsNotFound reports whether err is a controller 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ─── Logical Switches ───────────────────────────────────────────────────────

// QuerySwitches returns the switches matching all given tags, with the
// LogicalSwitchStatus relation populated so callers see live port counts.
func (c *Client) QuerySwitches(ctx context.Context, tags []Tag) ([]LogicalSwitch, error) {
	q := url.Values{}
	q.Set("fields", "*")
	q.Set("relations", "LogicalSwitchStatus")
	addTagFilters(q, tags)

	var out queryResult[LogicalSwitch]
	if err := c.get(ctx, "/ws.v1/lswitch", q, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// CreateSwitch creates a logical switch and returns the record the
// controller assigned (at minimum its uuid).
func (c *Client) CreateSwitch(ctx context.Context, attrs SwitchAttrs) (*LogicalSwitch, error) {
	var sw LogicalSwitch
	if err := c.post(ctx, "/ws.v1/lswitch", attrs, &sw); err != nil {
		return nil, err
	}
	return &sw, nil
}

// DeleteSwitch removes a logical switch. A switch that is already gone
// counts as deleted.
func (c *Client) DeleteSwitch(ctx context.Context, switchUUID string) error {
	err := c.delete(ctx, "/ws.v1/lswitch/"+switchUUID)
	if IsNotFound(err) {
		return nil
	}
	return err
}

// BindTransportZone attaches a switch to a transport zone.
func (c *Client) BindTransportZone(ctx context.Context, switchUUID string, binding TransportZoneBinding) error {
	path := "/ws.v1/lswitch/" + switchUUID + "/transport-zone"
	return c.post(ctx, path, binding, nil)
}

// ─── Logical Ports ──────────────────────────────────────────────────────────

// CreatePort creates a port on the given switch.
func (c *Client) CreatePort(ctx context.Context, switchUUID string, attrs PortAttrs) (*LogicalPort, error) {
	var port LogicalPort
	if err := c.post(ctx, "/ws.v1/lswitch/"+switchUUID+"/lport", attrs, &port); err != nil {
		return nil, err
	}
	return &port, nil
}

// QueryPorts returns the ports matching all given tags across every
// switch, with the LogicalSwitchConfig relation identifying the host.
func (c *Client) QueryPorts(ctx context.Context, tags []Tag) ([]LogicalPort, error) {
	q := url.Values{}
	q.Set("fields", "*")
	q.Set("relations", "LogicalSwitchConfig")
	addTagFilters(q, tags)

	var out queryResult[LogicalPort]
	if err := c.get(ctx, "/ws.v1/lport", q, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// DeletePort removes a port from a switch. A port that is already gone
// counts as deleted.
func (c *Client) DeletePort(ctx context.Context, switchUUID, portUUID string) error {
	err := c.delete(ctx, "/ws.v1/lswitch/"+switchUUID+"/lport/"+portUUID)
	if IsNotFound(err) {
		return nil
	}
	return err
}

// ─── Transport Zones ────────────────────────────────────────────────────────

// TransportZoneCount returns how many transport zones match the uuid.
func (c *Client) TransportZoneCount(ctx context.Context, zoneUUID string) (int, error) {
	q := url.Values{}
	q.Set("uuid", zoneUUID)
	q.Set("fields", "uuid")

	var out queryResult[json.RawMessage]
	if err := c.get(ctx, "/ws.v1/transport-zone", q, &out); err != nil {
		return 0, err
	}
	return out.ResultCount, nil
}

// ─── HTTP plumbing ──────────────────────────────────────────────────────────

func addTagFilters(q url.Values, tags []Tag) {
	for _, t := range tags {
		q.Add("tag", t.Tag)
		q.Add("tag_scope", t.Scope)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, result)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	u := c.cfg.URL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("nvp: encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Method: method, Path: path, Body: string(b)}
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("nvp: decoding %s %s response: %w", method, path, err)
	}
	return nil
}
