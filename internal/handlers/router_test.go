package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yellowsense/jobswipe/internal/services"
	"github.com/yellowsense/jobswipe/internal/storage"
	"github.com/yellowsense/jobswipe/internal/web"
)

type testApp struct {
	router *gin.Engine
	deps   Deps
	store  *storage.MemoryStore
}

// newJobsAPI serves fixed bodies per page; unknown pages are empty.
func newJobsAPI(t *testing.T, pages map[int]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		body, ok := pages[page]
		if !ok {
			body = `{"results": []}`
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestApp(t *testing.T, apiURL string, trigger services.LoadTrigger) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	store := storage.NewMemoryStore()
	jobs := services.NewReconciler(services.NewJobFetcher(apiURL, 2*time.Second, 0), trigger, 0)
	bookmarks := services.NewBookmarkService(store)
	deps := Deps{
		Jobs:            jobs,
		Bookmarks:       bookmarks,
		Swipes:          services.NewSwipeService(bookmarks, jobs, time.Second),
		Lookup:          services.NewLookupService(jobs, bookmarks),
		Renderer:        renderer,
		ScrollThreshold: 50,
	}
	return &testApp{router: NewRouter(deps), deps: deps, store: store}
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

const twoJobs = `{"results": [
	{"id": 1, "title": "Clerk", "primary_details": {"Place": "Pune"}},
	{"id": 2, "company_name": "Acme"}
]}`

func TestHealth(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, nil).URL, nil)
	w := app.do(http.MethodGet, "/api/v1/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}
}

func TestJobsPage_FirstVisitLoads(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: twoJobs}).URL, nil)
	w := app.do(http.MethodGet, "/jobs", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Clerk", "Pune", "Acme", "Job title not available", "N/A"} {
		if !strings.Contains(body, want) {
			t.Errorf("jobs page missing %q", want)
		}
	}
}

func TestJobsPage_FetchErrorIsInline(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: `{"count": 0}`}).URL, nil)
	w := app.do(http.MethodGet, "/jobs", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error fetching jobs") {
		t.Error("expected inline fetch error")
	}
}

func TestAPI_LoadMoreUntilEmptyPage(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: twoJobs}).URL, nil)

	w := app.do(http.MethodPost, "/api/v1/jobs/more", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Added   int  `json:"added"`
		HasMore bool `json:"has_more"`
		Jobs    []struct {
			ID int `json:"id"`
		} `json:"jobs"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Added != 2 || len(resp.Jobs) != 2 || !resp.HasMore {
		t.Fatalf("unexpected first load %+v", resp)
	}

	w = app.do(http.MethodPost, "/api/v1/jobs/more", "")
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Added != 0 || resp.HasMore {
		t.Fatalf("empty page should end pagination: %+v", resp)
	}

	w = app.do(http.MethodPost, "/api/v1/jobs/more", "")
	if w.Code != http.StatusOK {
		t.Errorf("terminal load should still be 200, got %d", w.Code)
	}
}

func TestAPI_LoadMoreMalformed(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: `{"results": "nope"}`}).URL, nil)

	w := app.do(http.MethodPost, "/api/v1/jobs/more", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if s := app.deps.Jobs.Snapshot(); len(s.Jobs) != 0 || s.Loading {
		t.Errorf("unexpected state after failure: %+v", s)
	}
}

func TestAPI_SwipeRight(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: twoJobs}).URL, nil)
	app.do(http.MethodPost, "/api/v1/jobs/more", "")

	w := app.do(http.MethodPost, "/api/v1/jobs/1/swipe", `{"direction":"right"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Bookmarked!") {
		t.Errorf("expected feedback, got %s", w.Body.String())
	}

	if _, ok := app.deps.Jobs.Get(1); ok {
		t.Error("job 1 should be gone from the list")
	}
	w = app.do(http.MethodGet, "/api/v1/bookmarks", "")
	if !strings.Contains(w.Body.String(), `"count":1`) || !strings.Contains(w.Body.String(), "Clerk") {
		t.Errorf("job 1 should be bookmarked: %s", w.Body.String())
	}
}

func TestAPI_SwipeValidation(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: twoJobs}).URL, nil)
	app.do(http.MethodPost, "/api/v1/jobs/more", "")

	if w := app.do(http.MethodPost, "/api/v1/jobs/1/swipe", `{"direction":"up"}`); w.Code != http.StatusBadRequest {
		t.Errorf("bad direction: expected 400, got %d", w.Code)
	}
	if w := app.do(http.MethodPost, "/api/v1/jobs/99/swipe", `{"direction":"left"}`); w.Code != http.StatusNotFound {
		t.Errorf("unknown job: expected 404, got %d", w.Code)
	}
	if w := app.do(http.MethodPost, "/api/v1/jobs/x/swipe", `{"direction":"left"}`); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}
}

func TestAPI_BookmarkLifecycle(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: twoJobs}).URL, nil)
	app.do(http.MethodPost, "/api/v1/jobs/more", "")

	if w := app.do(http.MethodPost, "/api/v1/bookmarks", `{"job_id":2}`); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if w := app.do(http.MethodPost, "/api/v1/bookmarks", `{"job_id":2}`); w.Code != http.StatusConflict {
		t.Errorf("duplicate bookmark: expected 409, got %d", w.Code)
	}
	if w := app.do(http.MethodPost, "/api/v1/bookmarks", `{"job_id":0}`); w.Code != http.StatusBadRequest {
		t.Errorf("invalid body: expected 400, got %d", w.Code)
	}
	if w := app.do(http.MethodPost, "/api/v1/bookmarks", `{"job_id":77}`); w.Code != http.StatusNotFound {
		t.Errorf("unknown job: expected 404, got %d", w.Code)
	}

	if w := app.do(http.MethodDelete, "/api/v1/bookmarks/2", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w := app.do(http.MethodGet, "/api/v1/bookmarks", "")
	if !strings.Contains(w.Body.String(), `"count":0`) {
		t.Errorf("expected empty bookmarks, got %s", w.Body.String())
	}
}

func TestAPI_GetAndDismissJob(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: twoJobs}).URL, nil)

	// deep link loads the first page
	w := app.do(http.MethodGet, "/api/v1/jobs/2", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Acme") {
		t.Fatalf("expected job 2, got %d %s", w.Code, w.Body.String())
	}

	w = app.do(http.MethodDelete, "/api/v1/jobs/2", "")
	if !strings.Contains(w.Body.String(), `"removed":true`) {
		t.Errorf("expected removal, got %s", w.Body.String())
	}
	w = app.do(http.MethodDelete, "/api/v1/jobs/2", "")
	if !strings.Contains(w.Body.String(), `"removed":false`) {
		t.Errorf("second removal should be a no-op, got %s", w.Body.String())
	}
	if w := app.do(http.MethodGet, "/api/v1/jobs/2", ""); w.Code != http.StatusNotFound {
		t.Errorf("dismissed job: expected 404, got %d", w.Code)
	}
}

func TestJobDetailPage(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: twoJobs}).URL, nil)

	w := app.do(http.MethodGet, "/job/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, want := range []string{"Clerk", "Pune", "Fees_Charged:", "N/A"} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("detail page missing %q", want)
		}
	}

	if w := app.do(http.MethodGet, "/job/404", ""); w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "Job not found") {
		t.Errorf("expected 404 page, got %d", w.Code)
	}
	if w := app.do(http.MethodGet, "/job/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSwipeFormShowsFeedback(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: twoJobs}).URL, nil)
	app.do(http.MethodGet, "/jobs", "")

	w := app.postForm("/jobs/1/swipe", url.Values{"direction": {"right"}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/jobs" {
		t.Fatalf("expected redirect to /jobs, got %d %s", w.Code, w.Header().Get("Location"))
	}

	w = app.do(http.MethodGet, "/jobs", "")
	if !strings.Contains(w.Body.String(), "Bookmarked!") {
		t.Error("expected swipe feedback on the jobs page")
	}

	w = app.do(http.MethodGet, "/bookmarks", "")
	if !strings.Contains(w.Body.String(), "Welcome To Bookmark") || !strings.Contains(w.Body.String(), "Clerk") {
		t.Error("bookmarks page should list the swiped job")
	}
}

func TestSwipeFormRefillsEmptyStack(t *testing.T) {
	api := newJobsAPI(t, map[int]string{
		1: `{"results": [{"id": 1}]}`,
		2: `{"results": [{"id": 2, "title": "Welder"}]}`,
	})
	app := newTestApp(t, api.URL, services.SwipeStackTrigger{})
	app.do(http.MethodGet, "/jobs", "")

	app.postForm("/jobs/1/swipe", url.Values{"direction": {"left"}})

	if _, ok := app.deps.Jobs.Get(2); !ok {
		t.Error("swiping the last card should load the next page")
	}
}

func TestScrollProbe(t *testing.T) {
	api := newJobsAPI(t, map[int]string{1: twoJobs})
	app := newTestApp(t, api.URL, services.ScrollTrigger{Threshold: 50})

	w := app.do(http.MethodGet, "/jobs/more?distance=400", "")
	if !strings.Contains(w.Body.String(), `"loaded":false`) {
		t.Errorf("far from bottom should not load: %s", w.Body.String())
	}
	w = app.do(http.MethodGet, "/jobs/more?distance=10", "")
	if !strings.Contains(w.Body.String(), `"loaded":true`) {
		t.Errorf("near bottom should load: %s", w.Body.String())
	}
}

func TestBookmarksPage(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, nil).URL, nil)

	w := app.do(http.MethodGet, "/bookmarks", "")
	if !strings.Contains(w.Body.String(), "No bookmarks here.") {
		t.Error("expected empty message")
	}
	if strings.Contains(w.Body.String(), "Welcome To Bookmark") {
		t.Error("heading should only show with bookmarks")
	}

	app.store.Set(context.Background(), services.BookmarksKey, "[{broken")
	w = app.do(http.MethodGet, "/bookmarks", "")
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), "Error fetching bookmarked jobs") {
		t.Errorf("expected inline corrupt-storage error, got %d", w.Code)
	}
}

func TestRemoveBookmarkForm(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: twoJobs}).URL, nil)
	app.do(http.MethodGet, "/jobs", "")
	app.postForm("/jobs/2/bookmark", nil)

	w := app.postForm("/bookmarks/2/remove", nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if ok, _ := app.deps.Bookmarks.Contains(context.Background(), 2); ok {
		t.Error("bookmark 2 should be removed")
	}
}

func TestBookmarkFormReportsDuplicate(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: twoJobs}).URL, nil)
	app.do(http.MethodGet, "/jobs", "")

	app.postForm("/jobs/1/bookmark", nil)
	w := app.postForm("/jobs/1/bookmark", nil)

	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "/job/1?notice=") || !strings.Contains(loc, "already") {
		t.Errorf("expected already-bookmarked notice, got %q", loc)
	}
}

func TestJobDetailPage_CorruptBookmarks(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, map[int]string{1: twoJobs}).URL, nil)
	app.do(http.MethodGet, "/jobs", "")
	app.store.Set(context.Background(), services.BookmarksKey, "{not json")

	w := app.do(http.MethodGet, "/job/42", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error fetching bookmarked jobs") {
		t.Errorf("expected storage error, got %s", w.Body.String())
	}

	// jobs still in the list resolve without storage
	if w := app.do(http.MethodGet, "/job/1", ""); w.Code != http.StatusOK {
		t.Errorf("loaded job should still render, got %d", w.Code)
	}

	w = app.do(http.MethodPost, "/api/v1/bookmarks", `{"job_id":42}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("API add with corrupt storage: expected 500, got %d", w.Code)
	}
}

func TestRemoveBookmarkForm_ReportsStorageFailure(t *testing.T) {
	app := newTestApp(t, newJobsAPI(t, nil).URL, nil)
	app.store.Set(context.Background(), services.BookmarksKey, "[{broken")

	w := app.postForm("/bookmarks/2/remove", nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "/bookmarks?notice=") {
		t.Errorf("expected a notice on the redirect, got %q", loc)
	}
}
