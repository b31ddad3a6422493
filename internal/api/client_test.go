package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/aktivitaeten/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", WithHTTPClient(srv.Client()), WithLogger(logging.Discard()))
	require.NoError(t, err)
	return c
}

func TestNewRejectsInvalidURL(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)

	_, err = New("://nope")
	assert.Error(t, err)
}

func TestActivities(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/activities", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Chess Club": {"description": "Play", "schedule": "Mon", "max_participants": 10, "participants": ["a@x.com"]}, "Art": {"max_participants": 2, "participants": []}}`))
	})

	coll, err := c.Activities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Chess Club", "Art"}, coll.Names())

	chess, ok := coll.Get("Chess Club")
	require.True(t, ok)
	assert.Equal(t, "1/10", chess.Spots())
}

func TestActivitiesStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Activities(context.Background())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Empty(t, statusErr.Message())
}

func TestActivitiesUndecodable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := c.Activities(context.Background())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, OpList, transportErr.Op)
}

func TestActivitiesNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, WithLogger(logging.Discard()))
	require.NoError(t, err)

	_, err = c.Activities(context.Background())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestSignupEncodesIdentifiers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/activities/Chess%20Club%2F2/signup", r.URL.EscapedPath())
		assert.Equal(t, "a+b@x.com", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{"message": "Signed up a+b@x.com for Chess Club/2"}`))
	})

	msg, err := c.Signup(context.Background(), "Chess Club/2", "a+b@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Signed up a+b@x.com for Chess Club/2", msg)
}

func TestQueryEncodesSpacesAsPercent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "email=a%20b%2Bc%40x.com", r.URL.RawQuery)
		assert.Equal(t, "a b+c@x.com", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.Signup(context.Background(), "Chess Club", "a b+c@x.com")
	require.NoError(t, err)
	_, err = c.RemoveParticipant(context.Background(), "Chess Club", "a b+c@x.com")
	require.NoError(t, err)
}

func TestSignupServerDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Student is already signed up"}`))
	})

	_, err := c.Signup(context.Background(), "Chess Club", "a@x.com")
	require.Error(t, err)
	assert.Equal(t, "Student is already signed up", ServerMessage(err))
}

func TestSignupServerMessageFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Activity not found"}`))
	})

	_, err := c.Signup(context.Background(), "Nope", "a@x.com")
	assert.Equal(t, "Activity not found", ServerMessage(err))
}

func TestSignupSuccessWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	msg, err := c.Signup(context.Background(), "Chess Club", "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestRemoveParticipant(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/activities/Chess Club/participants", r.URL.Path)
		assert.Equal(t, "a@x.com", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{"message": "Unregistered a@x.com from Chess Club"}`))
	})

	msg, err := c.RemoveParticipant(context.Background(), "Chess Club", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Unregistered a@x.com from Chess Club", msg)
}

func TestServerMessageIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, ServerMessage(errors.New("plain")))
	assert.Empty(t, ServerMessage(&TransportError{Op: OpList, Err: errors.New("dial")}))
	assert.Empty(t, ServerMessage(nil))
}
