package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mgeier/knotwork/pkg/knot"
	"github.com/mgeier/knotwork/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st := store.NewMemory()
	t.Cleanup(func() { st.Close() })
	ts := httptest.NewServer(New(st, nil, nil).Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func createKnot(t *testing.T, ts *httptest.Server, name, code string) {
	t.Helper()
	resp := postJSON(t, ts.URL+"/knots", createRequest{Name: name, Code: code})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create %s: status %d", name, resp.StatusCode)
	}
}

func TestCreateAndFetch(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/knots", createRequest{
		Name:     "trefoil",
		Code:     "[1,-2,3,-1,2,-3]",
		Metadata: map[string]string{"family": "torus"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	created := decode[knotJSON](t, resp)
	if created.Crossings != 3 || created.Writhe != 1 || !created.WellFormed {
		t.Errorf("created = %+v", created)
	}
	if created.ID == "" {
		t.Error("missing record ID")
	}

	resp, err := http.Get(ts.URL + "/knots/trefoil")
	if err != nil {
		t.Fatal(err)
	}
	fetched := decode[knotJSON](t, resp)
	if fetched.Code != "[1,-2,3,-1,2,-3]" {
		t.Errorf("Code = %q", fetched.Code)
	}
	if fetched.Canonical != "[-1,2,-3,1,-2,3]" {
		t.Errorf("Canonical = %q", fetched.Canonical)
	}
	if fetched.Metadata["family"] != "torus" {
		t.Errorf("Metadata = %v", fetched.Metadata)
	}
}

func TestCreate_MalformedIsAccepted(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/knots", createRequest{Name: "broken", Code: "[1,2,-1]"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	created := decode[knotJSON](t, resp)
	if created.WellFormed {
		t.Error("record should be flagged as not well-formed")
	}
}

func TestCreate_Errors(t *testing.T) {
	ts := newTestServer(t)
	createKnot(t, ts, "trefoil", "[1,-2,3,-1,2,-3]")

	tests := []struct {
		name       string
		req        createRequest
		wantStatus int
		wantCode   string
	}{
		{"duplicate name", createRequest{Name: "trefoil", Code: "[]"}, http.StatusConflict, "DUPLICATE_NAME"},
		{"missing name", createRequest{Code: "[]"}, http.StatusBadRequest, "INVALID_NAME"},
		{"bad encoding", createRequest{Name: "x", Code: "[1,banana]"}, http.StatusBadRequest, "INVALID_ENCODING"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/knots", tt.req)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body := decode[errorJSON](t, resp)
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestFetch_ExtendedInvariants(t *testing.T) {
	st := store.NewMemory()
	t.Cleanup(func() { st.Close() })
	ts := httptest.NewServer(New(st, nil, nil).Router())
	t.Cleanup(ts.Close)

	ctx := context.Background()
	if _, err := st.Create(ctx, "trefoil", knot.New([]int{1, -2, 3, -1, 2, -3}), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := st.UpdateExtended(ctx, "trefoil", map[string]any{"genus": 1}); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(ts.URL + "/knots/trefoil")
	if err != nil {
		t.Fatal(err)
	}
	fetched := decode[knotJSON](t, resp)
	// JSON numbers decode as float64.
	if fetched.Extended["genus"] != float64(1) {
		t.Errorf("Extended = %v, provider invariants not surfaced", fetched.Extended)
	}
}

func TestReadOnlyStore(t *testing.T) {
	inner := store.NewMemory()
	if _, err := inner.Create(context.Background(), "trefoil", knot.New([]int{1, -2, 3, -1, 2, -3}), nil); err != nil {
		t.Fatal(err)
	}
	ro := store.NewReadOnly(inner)
	t.Cleanup(func() { ro.Close() })
	ts := httptest.NewServer(New(ro, nil, nil).Router())
	t.Cleanup(ts.Close)

	// Reads pass through.
	resp, err := http.Get(ts.URL + "/knots/trefoil")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("read status = %d", resp.StatusCode)
	}

	// Mutations are rejected with 403.
	resp = postJSON(t, ts.URL+"/knots", createRequest{Name: "new", Code: "[]"})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("create status = %d, want 403", resp.StatusCode)
	}
	body := decode[errorJSON](t, resp)
	if body.Error.Code != "READ_ONLY" {
		t.Errorf("code = %q, want READ_ONLY", body.Error.Code)
	}
}

func TestFetch_NotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/knots/nope")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
	body := decode[errorJSON](t, resp)
	if body.Error.Code != "KNOT_NOT_FOUND" {
		t.Errorf("code = %q", body.Error.Code)
	}
}

func TestList_Filters(t *testing.T) {
	ts := newTestServer(t)
	createKnot(t, ts, "trefoil", "[1,-2,3,-1,2,-3]")
	createKnot(t, ts, "figure-eight", "[1,-2,3,-4,2,-1,4,-3]")
	createKnot(t, ts, "unknot", "[]")

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"figure-eight", "trefoil", "unknot"}},
		{"?crossings=3", []string{"trefoil"}},
		{"?crossings=1-4", []string{"figure-eight", "trefoil"}},
		{"?writhe=0", []string{"figure-eight", "unknot"}},
		{"?name=*knot", []string{"unknot"}},
		{"?crossings=3&writhe=1", []string{"trefoil"}},
	}
	for _, tt := range tests {
		t.Run("q"+tt.query, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/knots" + tt.query)
			if err != nil {
				t.Fatal(err)
			}
			records := decode[[]knotJSON](t, resp)
			var names []string
			for _, rec := range records {
				names = append(names, rec.Name)
			}
			if fmt.Sprint(names) != fmt.Sprint(tt.want) {
				t.Errorf("names = %v, want %v", names, tt.want)
			}
		})
	}
}

func TestList_BadFilter(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/knots?crossings=lots")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestDelete(t *testing.T) {
	ts := newTestServer(t)
	createKnot(t, ts, "trefoil", "[1,-2,3,-1,2,-3]")

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/knots/trefoil", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/knots/trefoil")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("deleted record still fetchable: %d", resp.StatusCode)
	}
}

func TestUpdateMetadata(t *testing.T) {
	ts := newTestServer(t)
	createKnot(t, ts, "trefoil", "[1,-2,3,-1,2,-3]")

	data, _ := json.Marshal(map[string]string{"family": "torus"})
	req, err := http.NewRequest(http.MethodPatch, ts.URL+"/knots/trefoil/metadata", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	updated := decode[knotJSON](t, resp)
	if updated.Metadata["family"] != "torus" {
		t.Errorf("Metadata = %v", updated.Metadata)
	}
}

func TestCheck(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		req  checkRequest
		want bool
	}{
		{"rotated trefoil equivalent", checkRequest{
			Left: "[1,-2,3,-1,2,-3]", Right: "[-2,3,-1,2,-3,1]", Relation: "equivalent"}, true},
		{"trefoil vs figure-eight", checkRequest{
			Left: "[1,-2,3,-1,2,-3]", Right: "[1,-2,3,-4,2,-1,4,-3]", Relation: "equivalent"}, false},
		{"kinked trefoil isotopic", checkRequest{
			Left: "[4,-4,1,-2,3,-1,2,-3]", Right: "[1,-2,3,-1,2,-3]", Relation: "isotopic"}, true},
		{"default relation is equivalent", checkRequest{
			Left: "[]", Right: "[]"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/check", tt.req)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			body := decode[checkResponse](t, resp)
			if body.Match != tt.want {
				t.Errorf("Match = %v, want %v", body.Match, tt.want)
			}
		})
	}
}

func TestCheck_UnknownRelation(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/check", checkRequest{Left: "[]", Right: "[]", Relation: "homotopic"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	body := decode[map[string]string](t, resp)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}
