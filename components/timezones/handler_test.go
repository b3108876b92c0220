package timezones

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type handlerResponse struct {
	Data []Option `json:"data"`
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewHandler_EmptyQueryReturnsEmptyDataArray(t *testing.T) {
	h := NewHandler(
		WithCatalog(fixtureCatalog()),
		WithCities(&fakeCities{}),
		WithEmptySearchMode(EmptySearchNone),
	)

	rec := serve(t, h, http.MethodGet, "/api/timezones")
	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := strings.TrimSpace(res.Header.Get("Content-Type")); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	var payload handlerResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestNewHandler_EmptyQueryTopReturnsLeadingRecords(t *testing.T) {
	h := NewHandler(WithCatalog(fixtureCatalog()), WithCities(&fakeCities{}))

	rec := serve(t, h, http.MethodGet, "/api/timezones?limit=2")
	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := []Option{
		{Value: "Pacific/Honolulu", Label: "(GMT-10:00) Hawaii (HST)"},
		{Value: "America/Regina", Label: "(GMT-6:00) Saskatchewan (CST)"},
	}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("unexpected payload (-want +got):\n%s", diff)
	}
}

func TestNewHandler_SearchAndLimitClamped(t *testing.T) {
	h := NewHandler(
		WithCatalog(fixtureCatalog()),
		WithCities(&fakeCities{}),
		WithMaxLimit(2),
	)

	rec := serve(t, h, http.MethodGet, "/api/timezones?q=America&limit=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Data) != 2 {
		t.Fatalf("expected 2 results, got %d: %#v", len(payload.Data), payload.Data)
	}
	if payload.Data[0].Value != "America/Regina" || payload.Data[1].Value != "America/Chicago" {
		t.Fatalf("unexpected options: %#v", payload.Data)
	}
}

func TestNewHandler_CustomQueryParams(t *testing.T) {
	h := NewHandler(
		WithCatalog(fixtureCatalog()),
		WithCities(&fakeCities{}),
		WithSearchParam("search"),
		WithLimitParam("l"),
		WithLabelStyle(LabelAltName),
	)

	rec := serve(t, h, http.MethodGet, "/api/timezones?search=utc&l=5")
	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := []Option{{Value: "UTC", Label: "(GMT+0:00) Coordinated Universal Time"}}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("unexpected payload (-want +got):\n%s", diff)
	}
}

func TestNewHandler_Formats(t *testing.T) {
	h := NewHandler(WithCatalog(fixtureCatalog()), WithCities(&fakeCities{}))

	rec := serve(t, h, http.MethodGet, "/api/timezones?q=tokyo&format=records")
	var records struct {
		Data []Record `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&records); err != nil {
		t.Fatalf("failed to decode records: %v", err)
	}
	if diff := cmp.Diff([]Record{fixtureRecords()[7]}, records.Data); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}

	rec = serve(t, h, http.MethodGet, "/api/timezones?q=tokyo&format=titles")
	var titles struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&titles); err != nil {
		t.Fatalf("failed to decode titles: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"Asia/Tokyo": "Osaka, Sapporo, Tokyo"}, titles.Data); diff != "" {
		t.Fatalf("unexpected titles (-want +got):\n%s", diff)
	}
}

func TestNewHandler_CityLookupFailureIsBadGateway(t *testing.T) {
	h := NewHandler(
		WithCatalog(fixtureCatalog()),
		WithCities(&fakeCities{err: errors.New("down")}),
	)

	rec := serve(t, h, http.MethodGet, "/api/timezones?q=paris")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
}

func TestNewHandler_BuildFailureIsInternalError(t *testing.T) {
	h := NewHandler(
		WithEntries([]Entry{{ID: "Zone/A", Title: "A"}}),
		WithResolver(fakeResolver{}),
		WithNames(fakeNames{}),
		WithCities(&fakeCities{}),
	)

	rec := serve(t, h, http.MethodGet, "/api/timezones?q=a")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestNewHandler_GuardRejects(t *testing.T) {
	h := NewHandler(
		WithCatalog(fixtureCatalog()),
		WithGuard(func(r *http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		}),
	)

	rec := serve(t, h, http.MethodGet, "/api/timezones?q=utc")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	h = NewHandler(
		WithCatalog(fixtureCatalog()),
		WithGuard(func(r *http.Request) error { return errors.New("nope") }),
	)
	rec = serve(t, h, http.MethodGet, "/api/timezones?q=utc")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestNewHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler(WithCatalog(fixtureCatalog()))

	rec := serve(t, h, http.MethodPost, "/api/timezones?q=utc")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestNewHandler_HeadHasNoBody(t *testing.T) {
	h := NewHandler(WithCatalog(fixtureCatalog()), WithCities(&fakeCities{}))

	rec := serve(t, h, http.MethodHead, "/api/timezones?q=utc")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestNewHandler_NegativeLimitReturnsEmptyDataArray(t *testing.T) {
	h := NewHandler(WithCatalog(fixtureCatalog()), WithCities(&fakeCities{}))

	rec := serve(t, h, http.MethodGet, "/api/timezones?q=utc&limit=-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestLookupHandler(t *testing.T) {
	h := LookupHandlerWithOptions(NewOptions(WithCatalog(fixtureCatalog())))

	rec := serve(t, h, http.MethodGet, "/api/timezones/lookup?id=America/Chicago")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload struct {
		Data Record `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if diff := cmp.Diff(fixtureRecords()[2], payload.Data); diff != "" {
		t.Fatalf("unexpected record (-want +got):\n%s", diff)
	}

	if rec := serve(t, h, http.MethodGet, "/api/timezones/lookup?id=Mars/Olympus"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if rec := serve(t, h, http.MethodGet, "/api/timezones/lookup"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
