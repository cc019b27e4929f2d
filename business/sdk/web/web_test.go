package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jcpaschoal/partner-portal/business/sdk/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	Text string `json:"text"`
}

func (m message) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

func (m *message) Decode(data []byte) error {
	return json.Unmarshal(data, m)
}

type checked struct {
	message
}

func (c *checked) Validate() error {
	if c.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

type teapot struct{}

func (teapot) Error() string { return "teapot" }
func (teapot) HTTPStatus() int { return http.StatusTeapot }
func (teapot) Encode() ([]byte, string, error) { return []byte(`{"error":"teapot"}`), "application/json", nil }

type plainErr struct{}

func (plainErr) Error() string { return "boom" }
func (plainErr) Encode() ([]byte, string, error) { return []byte("boom"), "text/plain", nil }

func discard(ctx context.Context, msg string, args ...any) {}

func Test_Routing(t *testing.T) {
	app := web.NewApp(discard, nil)

	app.HandlerFunc(http.MethodGet, "v1", "/echo/{text}", func(ctx context.Context, r *http.Request) web.Encoder {
		return message{Text: web.Param(r, "text")}
	})

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/echo/hello", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"text":"hello"}`, w.Body.String())

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/echo/hello", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func Test_MiddlewareOrder(t *testing.T) {
	var calls []string

	mark := func(name string) web.MidFunc {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				calls = append(calls, name)
				return next(ctx, r)
			}
		}
	}

	app := web.NewApp(discard, nil, mark("app"))
	app.HandlerFunc(http.MethodGet, "", "/x", func(ctx context.Context, r *http.Request) web.Encoder {
		calls = append(calls, "handler")
		return nil
	}, mark("route"))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"app", "route", "handler"}, calls)
}

func Test_RespondStatus(t *testing.T) {
	tests := []struct {
		name string
		resp web.Encoder
		code int
		body string
	}{
		{name: "nil", resp: nil, code: http.StatusNoContent, body: ""},
		{name: "status error", resp: teapot{}, code: http.StatusTeapot, body: `{"error":"teapot"}`},
		{name: "plain error", resp: plainErr{}, code: http.StatusInternalServerError, body: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, web.Respond(w, tt.resp))

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func Test_NoResponseLeavesWriter(t *testing.T) {
	app := web.NewApp(discard, nil)

	app.HandlerFuncNoMid(http.MethodGet, "", "/raw", func(ctx context.Context, r *http.Request) web.Encoder {
		w := web.GetWriter(ctx)
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("raw"))
		return web.NoResponse{}
	})

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "raw", w.Body.String())
}

func Test_DecodeValidates(t *testing.T) {
	var ok checked
	require.NoError(t, web.Decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hi"}`)), &ok))
	assert.Equal(t, "hi", ok.Text)

	var missing checked
	err := web.Decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)), &missing)
	assert.EqualError(t, err, "text is required")

	var bad message
	err = web.Decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`)), &bad)
	assert.ErrorContains(t, err, "request: decode")
}

func Test_CORS(t *testing.T) {
	app := web.NewApp(discard, nil)
	app.EnableCORS([]string{"https://console.contoso.com"})

	app.HandlerFunc(http.MethodGet, "v1", "/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		return message{Text: "pong"}
	})

	r := httptest.NewRequest(http.MethodOptions, "/v1/ping", nil)
	r.Header.Set("Origin", "https://console.contoso.com")

	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	assert.Equal(t, "https://console.contoso.com", w.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	r.Header.Set("Origin", "https://evil.example")

	w = httptest.NewRecorder()
	app.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
