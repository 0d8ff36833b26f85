package analysis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"confidencevoice/internal/retry"
	"github.com/stretchr/testify/require"
)

func newClient(url string) *Client {
	return NewClient(map[string]string{"audio": url}, retry.Fixed(3, time.Millisecond), time.Second)
}

func TestReportsForwardsBearerToken(t *testing.T) {
	var path, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, auth = r.URL.Path, r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"reports":[{"id":1}]}`))
	}))
	defer srv.Close()

	body, err := newClient(srv.URL + "/").Reports(context.Background(), "audio", "tkn")
	require.NoError(t, err)
	require.Equal(t, "/reports", path)
	require.Equal(t, "Bearer tkn", auth)
	require.JSONEq(t, `{"success":true,"reports":[{"id":1}]}`, string(body))
}

func TestReportsRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Reports(context.Background(), "audio", "")
	require.NoError(t, err)
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestReportsDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid token"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Reports(context.Background(), "audio", "bad")
	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	require.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
	require.Equal(t, "Invalid token", svcErr.Message)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestReportsSurfacesUnsuccessfulReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"No reports yet"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Reports(context.Background(), "audio", "")
	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	require.Equal(t, "No reports yet", svcErr.Message)
}

func TestReportsUnknownService(t *testing.T) {
	_, err := newClient("http://127.0.0.1:1").Reports(context.Background(), "video", "")
	require.ErrorIs(t, err, ErrUnknownService)
}
