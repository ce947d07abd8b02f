package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pankajydv07/portfolio/internal/config"
	"github.com/pankajydv07/portfolio/internal/contact"
	"github.com/pankajydv07/portfolio/internal/content"
	"github.com/pankajydv07/portfolio/internal/particle"
	"github.com/pankajydv07/portfolio/internal/store"
	"github.com/pankajydv07/portfolio/internal/terminal"
)

type fakeRelay struct {
	err error
	got []contact.Message
}

func (f *fakeRelay) Send(_ context.Context, m contact.Message) error {
	f.got = append(f.got, m)
	return f.err
}

func newTestSite(t *testing.T, relay contact.Relay) (*site, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	p, err := content.Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	cfg := config.Config{AdminUsername: "admin", AdminPassword: "secret", Debug: true}
	s := newSite(cfg, db, p, relay)
	// Runs before the store closes.
	t.Cleanup(s.tracking.Wait)
	return s, setupRouter(s, "templates/*")
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHomePage(t *testing.T) {
	_, r := newTestSite(t, &fakeRelay{})
	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Pankaj Yadav", `id="backdrop"`, "ElderCare", `hx-post="/contact"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestHealthz(t *testing.T) {
	_, r := newTestSite(t, &fakeRelay{})
	w := do(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ok") {
		t.Fatalf("status=%d body=%s", w.Code, w.Body)
	}
}

func TestContentAPI(t *testing.T) {
	s, r := newTestSite(t, &fakeRelay{})
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/content", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got content.Portfolio
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Profile.Name != s.content.Profile.Name || len(got.Projects) != len(s.content.Projects) {
		t.Fatalf("got %+v", got.Profile)
	}
}

func TestTerminalAPI(t *testing.T) {
	_, r := newTestSite(t, &fakeRelay{})

	req := httptest.NewRequest(http.MethodPost, "/api/terminal", strings.NewReader(`{"command":"  CONTACT "}`))
	req.Header.Set("Content-Type", "application/json")
	w := do(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var res terminal.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var text []string
	for _, l := range res.Lines {
		text = append(text, l.String())
	}
	if !strings.Contains(strings.Join(text, "\n"), "pankajyadsv08@gmail.com") {
		t.Fatalf("lines=%v", text)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/terminal", strings.NewReader(`{"command":"clear"}`))
	req.Header.Set("Content-Type", "application/json")
	if err := json.Unmarshal(do(r, req).Body.Bytes(), &res); err != nil || !res.Clear {
		t.Fatalf("clear: res=%+v err=%v", res, err)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/terminal", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")
	if w := do(r, req); w.Code != http.StatusBadRequest {
		t.Fatalf("bad body: status=%d", w.Code)
	}
}

func jsonContact(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestContactRelaysAndRecords(t *testing.T) {
	relay := &fakeRelay{}
	s, r := newTestSite(t, relay)

	w := do(r, jsonContact(`{"name":" Ada ","email":"ada@example.com","message":"Hello"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body)
	}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Message != contact.SuccessNotice {
		t.Fatalf("resp=%+v", resp)
	}
	if len(relay.got) != 1 || relay.got[0].Name != "Ada" {
		t.Fatalf("relayed %+v", relay.got)
	}

	attempts, err := s.store.RecentContacts(context.Background(), 10)
	if err != nil {
		t.Fatalf("contacts: %v", err)
	}
	if len(attempts) != 1 || !attempts[0].Delivered || attempts[0].Email != "ada@example.com" {
		t.Fatalf("attempts=%+v", attempts)
	}
}

func TestContactFailureShowsFallback(t *testing.T) {
	relay := &fakeRelay{err: contact.ErrRejected}
	s, r := newTestSite(t, relay)

	w := do(r, jsonContact(`{"name":"Ada","email":"ada@example.com","message":"Hello"}`))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d", w.Code)
	}
	want := contact.FallbackNotice(s.content.Profile.Email)
	if !strings.Contains(w.Body.String(), want) {
		t.Fatalf("body=%s want %q", w.Body, want)
	}

	attempts, err := s.store.RecentContacts(context.Background(), 10)
	if err != nil {
		t.Fatalf("contacts: %v", err)
	}
	if len(attempts) != 1 || attempts[0].Delivered {
		t.Fatalf("attempts=%+v", attempts)
	}
}

func TestContactRejectsInvalidWithoutRelaying(t *testing.T) {
	relay := &fakeRelay{}
	_, r := newTestSite(t, relay)

	w := do(r, jsonContact(`{"name":"Ada","email":"","message":"Hello"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "email is required") {
		t.Fatalf("body=%s", w.Body)
	}
	if len(relay.got) != 0 {
		t.Fatalf("relayed %+v", relay.got)
	}
}

func TestContactHTMXFragments(t *testing.T) {
	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}}
	htmxPost := func(r http.Handler, v url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(v.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("HX-Request", "true")
		return do(r, req)
	}

	_, r := newTestSite(t, &fakeRelay{})
	w := htmxPost(r, form)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `class="notice success"`) {
		t.Fatalf("success: status=%d body=%s", w.Code, w.Body)
	}

	_, r = newTestSite(t, &fakeRelay{err: errors.New("boom")})
	w = htmxPost(r, form)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `class="notice error"`) {
		t.Fatalf("failure: status=%d body=%s", w.Code, w.Body)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Fatal("relay error leaked to the visitor")
	}
}

func TestBackdropPNG(t *testing.T) {
	s, r := newTestSite(t, &fakeRelay{})
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		s.backdrop.Run(ctx, particle.Discard)
		close(stopped)
	}()

	w := do(r, httptest.NewRequest(http.MethodGet, "/backdrop.png?theme=light", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != backdropWidth || cfg.Height != backdropHeight {
		t.Fatalf("size %dx%d", cfg.Width, cfg.Height)
	}

	cancel()
	<-stopped
	if w := do(r, httptest.NewRequest(http.MethodGet, "/backdrop.png", nil)); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("stopped loop: status=%d", w.Code)
	}
}

func TestBackdropKeepsFieldTheme(t *testing.T) {
	s, r := newTestSite(t, &fakeRelay{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.backdrop.Run(ctx, particle.Discard)

	if w := do(r, httptest.NewRequest(http.MethodGet, "/backdrop.png?theme=light", nil)); w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var theme particle.Theme
	if err := s.backdrop.Do(ctx, func(f *particle.Field) { theme = f.Theme() }); err != nil {
		t.Fatalf("do: %v", err)
	}
	if theme != particle.Dark {
		t.Fatalf("field theme %v, want dark", theme)
	}
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	return ln
}

func TestServeStopsCleanly(t *testing.T) {
	ln := listen(t)
	srv := &http.Server{Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, ln, time.Second) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
}

func TestServeReportsShutdownTimeout(t *testing.T) {
	ln := listen(t)
	started, release := make(chan struct{}), make(chan struct{})
	defer close(release)
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, ln, 50*time.Millisecond) }()
	go http.Get("http://" + ln.Addr().String() + "/")

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("request never arrived")
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("serve: %v, want the shutdown deadline", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
}

func TestContactFragmentsCarryDismissal(t *testing.T) {
	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}}
	post := func(r http.Handler) string {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("HX-Request", "true")
		return do(r, req).Body.String()
	}

	_, r := newTestSite(t, &fakeRelay{})
	if body := post(r); !strings.Contains(body, `data-dismiss-after="5000"`) {
		t.Fatalf("success fragment does not return to idle: %s", body)
	}

	_, r = newTestSite(t, &fakeRelay{err: contact.ErrRejected})
	if body := post(r); !strings.Contains(body, "data-alert") {
		t.Fatalf("failure fragment does not alert: %s", body)
	}
}
