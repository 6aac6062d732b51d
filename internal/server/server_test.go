package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/five82/stateful/internal/catalog"
)

type fakeSource struct {
	items   []catalog.Item
	pageErr error
}

func (f *fakeSource) Page(ctx context.Context, offset, limit int) (catalog.Page, error) {
	if err := catalog.ValidatePage(offset, limit); err != nil {
		return catalog.Page{}, err
	}
	if f.pageErr != nil {
		return catalog.Page{}, f.pageErr
	}
	end := min(offset+limit, len(f.items))
	start := min(offset, end)
	return catalog.Page{Items: f.items[start:end], Offset: offset, Total: len(f.items)}, nil
}

func (f *fakeSource) Status(ctx context.Context) (catalog.Status, error) {
	return catalog.Status{Source: "fake", Total: len(f.items)}, nil
}

func newFakeSource(n int) *fakeSource {
	f := &fakeSource{}
	for i := range n {
		f.items = append(f.items, catalog.Item{ID: int64(i + 1), Title: "item"})
	}
	return f
}

func TestHandler_Items(t *testing.T) {
	h := NewHandler(newFakeSource(30), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/items?offset=25&limit=10", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var page catalog.Page
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Offset != 25 || page.Total != 30 || len(page.Items) != 5 || page.Items[0].ID != 26 {
		t.Fatalf("page = %#v", page)
	}
}

func TestHandler_ItemsDefaultsLimit(t *testing.T) {
	h := NewHandler(newFakeSource(100), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil))

	var page catalog.Page
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Items) != defaultPageLimit {
		t.Fatalf("items = %d, want %d", len(page.Items), defaultPageLimit)
	}
}

func TestHandler_Errors(t *testing.T) {
	cases := []struct {
		name   string
		source *fakeSource
		url    string
		status int
		want   string
	}{
		{"bad_offset", newFakeSource(1), "/api/items?offset=x", http.StatusBadRequest, "offset"},
		{"bad_limit", newFakeSource(1), "/api/items?limit=1000", http.StatusBadRequest, "limit"},
		{"source_failure", &fakeSource{pageErr: errors.New("disk gone")}, "/api/items", http.StatusInternalServerError, "disk gone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(tc.source, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.url, nil))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Fatalf("body = %q, want it to mention %q", rec.Body.String(), tc.want)
			}
		})
	}
}

func TestHandler_RejectsOtherMethods(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(newFakeSource(1), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/items", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestServeListener_WorksWithClientAndShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ServeListener(ctx, ln, newFakeSource(12), nil) }()

	client, err := catalog.NewClient(ln.Addr().String())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	reqCtx, reqCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer reqCancel()

	page, err := client.Page(reqCtx, 10, 5)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(page.Items) != 2 || page.HasMore() {
		t.Fatalf("page = %#v", page)
	}
	st, err := client.Status(reqCtx)
	if err != nil || st.Total != 12 {
		t.Fatalf("Status = %#v, %v", st, err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ServeListener returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ServeListener did not stop")
	}
}
