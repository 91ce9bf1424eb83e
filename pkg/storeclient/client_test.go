package storeclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "pptq-absensi/pkg/errors"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/exec", 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return c
}

func TestFetchAll(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Query().Get("v") != "1700000000000" {
			t.Errorf("expected cache-busting v param, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"santri":[{"id":1,"nama":"Ahmad"}],"kelas":[]}`))
	})

	snap, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	var santri []struct {
		ID   int    `json:"id"`
		Nama string `json:"nama"`
	}
	if err := snap.Decode(Santri, &santri); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(santri) != 1 || santri[0].Nama != "Ahmad" {
		t.Errorf("unexpected santri %+v", santri)
	}

	var missing []any
	if err := snap.Decode(Admin, &missing); err != nil || missing != nil {
		t.Errorf("missing collection should decode to nothing, got %v %v", missing, err)
	}
}

func TestFetchAll_Non2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := c.FetchAll(context.Background()); !errors.Is(err, pkgerrors.ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestFetchAll_Undecodable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>login required</html>"))
	})

	if _, err := c.FetchAll(context.Background()); !errors.Is(err, pkgerrors.ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestFetchAll_RemoteError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":true,"message":"sheet santri not found"}`))
	})

	snap, err := c.FetchAll(context.Background())
	if !errors.Is(err, pkgerrors.ErrRemote) {
		t.Fatalf("expected ErrRemote, got %v (snapshot %v)", err, snap)
	}
	if got := err.Error(); got != "remote reported an error: sheet santri not found" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestFetchAll_FalseErrorMarker(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":false,"kelas":[{"id":1}]}`))
	})

	snap, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("false marker is not an error, got %v", err)
	}
	if _, ok := snap["error"]; ok {
		t.Error("marker should not be kept as a collection")
	}
	if _, ok := snap[Kelas]; !ok {
		t.Error("kelas collection should be kept")
	}
}

func TestCall(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "text/plain;charset=utf-8" {
			t.Errorf("unexpected content type %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		var req Request
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if req.Action != ActionAdd || req.Type != Pelanggaran {
			t.Errorf("unexpected request %+v", req)
		}
		_, _ = w.Write([]byte(`{"id":9,"jenis":"gaduh"}`))
	})

	raw, err := c.Call(context.Background(), ActionAdd, Pelanggaran, map[string]string{"jenis": "gaduh"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	var out struct {
		ID int `json:"id"`
	}
	_ = json.Unmarshal(raw, &out)
	if out.ID != 9 {
		t.Errorf("expected echoed entity, got %s", raw)
	}
}

func TestCall_RemoteError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":true,"message":"sheet not found"}`))
	})

	_, err := c.Call(context.Background(), ActionDelete, Santri, map[string]int{"id": 1})
	if !errors.Is(err, pkgerrors.ErrRemote) {
		t.Fatalf("expected ErrRemote, got %v", err)
	}
	if got := err.Error(); got != "remote reported an error: sheet not found" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestCall_FalseErrorMarker(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":false,"id":3}`))
	})

	if _, err := c.Call(context.Background(), ActionUpdate, Kelas, map[string]int{"id": 3}); err != nil {
		t.Errorf("false marker is not an error, got %v", err)
	}
}

func TestNew_InvalidURL(t *testing.T) {
	if _, err := New("not a url", time.Second); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
