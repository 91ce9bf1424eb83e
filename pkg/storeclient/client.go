// Package storeclient talks to a single-endpoint collection store:
// GET returns every collection, POST {action,type,payload} mutates one entity.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	pkgerrors "pptq-absensi/pkg/errors"
)

// Action mutation verb.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Collection names used by the store.
const (
	Santri         = "santri"
	Pembina        = "pembina"
	Kelas          = "kelas"
	Kegiatan       = "kegiatan"
	Pelanggaran    = "pelanggaran"
	Kesehatan      = "kesehatan"
	AbsensiHistory = "absensiHistory"
	Admin          = "admin"
)

// Collections every collection name, in snapshot order.
var Collections = []string{Santri, Pembina, Kelas, Kegiatan, Pelanggaran, Kesehatan, AbsensiHistory, Admin}

// IsCollection reports whether name is a known collection.
func IsCollection(name string) bool {
	return slices.Contains(Collections, name)
}

// Request POST body.
type Request struct {
	Action  Action `json:"action"`
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Snapshot raw collections keyed by name.
type Snapshot map[string]json.RawMessage

// Decode unmarshals one collection into out. A missing collection leaves out untouched.
func (s Snapshot) Decode(name string, out any) error {
	raw, ok := s[name]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", pkgerrors.ErrTransport, name, err)
	}
	return nil
}

// Client store endpoint client.
type Client struct {
	endpoint string
	http     *http.Client
	now      func() time.Time
}

// New creates a Client for endpoint.
func New(endpoint string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid store url %q", pkgerrors.ErrValidation, endpoint)
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		now:      time.Now,
	}, nil
}

// bustURL appends a unique v parameter so intermediaries never serve a cached reply.
func (c *Client) bustURL() string {
	u, _ := url.Parse(c.endpoint)
	q := u.Query()
	q.Set("v", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}

// FetchAll downloads every collection.
func (c *Client) FetchAll(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.bustURL(), nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("%w: undecodable snapshot: %v", pkgerrors.ErrTransport, err)
	}
	// a failed read still answers 200, with the marker in place of the collections
	if _, ok := snap["error"]; ok {
		if err := remoteError(body); err != nil {
			return nil, err
		}
		delete(snap, "error")
	}
	return snap, nil
}

// Call sends one mutation and returns the entity the store echoes back.
func (c *Client) Call(ctx context.Context, action Action, kind string, payload any) (json.RawMessage, error) {
	buf, err := json.Marshal(Request{Action: action, Type: kind, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("%w: encode payload: %v", pkgerrors.ErrValidation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.bustURL(), bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	// text/plain keeps browsers and script hosts from requiring a preflight
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if err := remoteError(body); err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// remoteError reports the error marker of a 200 body as ErrRemote.
func remoteError(body []byte) error {
	var marker struct {
		Error   any             `json:"error"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &marker); err != nil {
		return fmt.Errorf("%w: undecodable response: %v", pkgerrors.ErrTransport, err)
	}
	if !isSet(marker.Error) {
		return nil
	}
	var msg string
	if err := json.Unmarshal(marker.Message, &msg); err != nil || msg == "" {
		msg = fmt.Sprint(marker.Error)
	}
	return fmt.Errorf("%w: %s", pkgerrors.ErrRemote, msg)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", pkgerrors.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrTransport, resp.Status)
	}
	return body, nil
}

// isSet treats false, "", 0 and null as no error.
func isSet(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	}
	return true
}
