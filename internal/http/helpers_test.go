package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glancery/glancery/internal/events"
	httpapi "github.com/glancery/glancery/internal/http"
	"github.com/glancery/glancery/internal/queue"
	"github.com/glancery/glancery/internal/repo"
	"github.com/glancery/glancery/internal/state"
	"github.com/glancery/glancery/internal/storage"
)

type testEnv struct {
	T      *testing.T
	Store  *repo.MemoryStore
	Stats  *events.Async
	Router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repo.NewMemoryStore()
	images, err := storage.NewImages(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	stats := events.NewAsync(store, zap.NewNop())

	h := httpapi.NewHandler(store, repo.NewMemorySessions(), state.New(),
		stats, queue.NewNoop(), images)
	h.Dev = true // sendotp echoes the code back so tests can verify it

	gin.SetMode(gin.TestMode)
	r := httpapi.NewRouter(h, 1000)

	return &testEnv{T: t, Store: store, Stats: stats, Router: r}
}

// postJSON posts body and decodes the JSON response into a generic map.
func (e *testEnv) postJSON(path, body string, cookies ...string) (*httptest.ResponseRecorder, map[string]any) {
	e.T.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.Header.Add("Cookie", c)
	}
	e.Router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

// postForm posts a multipart body built from fields, as the editors do.
func (e *testEnv) postForm(path string, fields map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	e.T.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			e.T.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		e.T.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	e.Router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

// signIn walks the full OTP flow for email and returns the issued icode.
func (e *testEnv) signIn(email string) string {
	e.T.Helper()
	w, out := e.postJSON("/api/v1/user/sendotp", `{"email":"`+email+`"}`)
	if w.Code != 200 {
		e.T.Fatalf("sendotp: %d %s", w.Code, w.Body.String())
	}
	otp, _ := out["otp_dev"].(string)
	if otp == "" {
		e.T.Fatal("no dev otp in response")
	}
	w, out = e.postJSON("/api/v1/user/verifyotp", `{"email":"`+email+`","otp":"`+otp+`"}`)
	if w.Code != 200 {
		e.T.Fatalf("verifyotp: %d %s", w.Code, w.Body.String())
	}
	icode, _ := out["icode"].(string)
	if icode == "" {
		e.T.Fatal("no icode in verify response")
	}
	return icode
}

// createGlance publishes a minimal glance and returns its gcode.
func (e *testEnv) createGlance(icode string, extra map[string]string) string {
	e.T.Helper()
	fields := map[string]string{
		"icode":    icode,
		"headline": "Why we switched to rye",
		"snippet":  "A short take",
	}
	for k, v := range extra {
		fields[k] = v
	}
	w, out := e.postForm("/api/v1/glance/create", fields)
	if w.Code != 200 {
		e.T.Fatalf("create glance: %d %s", w.Code, w.Body.String())
	}
	g, _ := out["glance"].(map[string]any)
	gcode, _ := g["gcode"].(string)
	if gcode == "" {
		e.T.Fatal("no gcode in create response")
	}
	return gcode
}
