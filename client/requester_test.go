package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequesterBaseURL(t *testing.T) {
	r := NewRequester(Config{Address: "192.168.1.20", Token: "abc"})
	assert.Equal(t, "http://192.168.1.20:16021/api/v1/abc/", r.BaseURL())
	assert.Equal(t, "http://192.168.1.20:16021/api/v1/abc/state/on/value", r.url("state/on/value"))

	r.SetAddress("10.0.0.5")
	assert.Equal(t, "10.0.0.5", r.Address())
	assert.Equal(t, "http://10.0.0.5:16021/api/v1/abc/", r.BaseURL())
}

func TestRequesterExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes json body", func(t *testing.T) {
		f := newFakeController(t)
		f.get("state/brightness", `{"value": 42, "min": 0, "max": 100}`)
		r := f.client().Requester()

		var target Range
		require.NoError(t, r.Get(ctx, "state/brightness", &target))
		assert.Equal(t, Range{Value: 42, Min: 0, Max: 100}, target)
	})

	t.Run("empty body is no content", func(t *testing.T) {
		f := newFakeController(t)
		f.handle(http.MethodPut, "state", http.StatusNoContent, "")
		r := f.client().Requester()

		data, err := r.Execute(ctx, http.MethodPut, "state", map[string]bool{"on": true})
		require.NoError(t, err)
		assert.Nil(t, data)

		writes := f.writes()
		require.Len(t, writes, 1)
		assert.Equal(t, map[string]interface{}{"on": true}, writes[0].Body)
	})

	t.Run("typed read of empty body", func(t *testing.T) {
		f := newFakeController(t)
		f.get("state/hue/value", "")
		r := f.client().Requester()

		_, err := getValue[int](ctx, r, "state/hue/value")
		assert.True(t, errors.Is(err, ErrNoContent))
	})

	t.Run("typed read of null body", func(t *testing.T) {
		f := newFakeController(t)
		f.get("state/hue/value", "null")
		r := f.client().Requester()

		_, err := getValue[int](ctx, r, "state/hue/value")
		assert.True(t, errors.Is(err, ErrNoContent))
	})

	t.Run("invalid json on success", func(t *testing.T) {
		f := newFakeController(t)
		f.get("state", "not json")
		r := f.client().Requester()

		_, err := r.Execute(ctx, http.MethodGet, "state", nil)
		require.Error(t, err)
		var ce *ControllerError
		assert.False(t, errors.As(err, &ce))
	})
}

func TestRequesterErrorStatus(t *testing.T) {
	ctx := context.Background()
	for _, tt := range []struct {
		name   string
		status int
		want   *ControllerError
	}{
		{"bad request", http.StatusForbidden, ErrBadRequest},
		{"invalid credentials", http.StatusUnauthorized, ErrInvalidCredentials},
		{"not found", http.StatusNotFound, ErrResourceNotFound},
		{"unprocessable", http.StatusUnprocessableEntity, ErrUnprocessableEntity},
		{"internal", http.StatusInternalServerError, ErrInternalServerError},
		{"teapot", http.StatusTeapot, ErrUnmappedServerError},
		{"bad gateway", http.StatusBadGateway, ErrUnmappedServerError},
	} {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeController(t)
			f.handle(http.MethodGet, "effects", tt.status, `{"error":"nope"}`)
			r := f.client().Requester()

			_, err := r.Execute(ctx, http.MethodGet, "effects", nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))

			var ce *ControllerError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.status, ce.Status)
			assert.Equal(t, tt.want.Kind, ce.Kind)
			assert.Equal(t, map[string]interface{}{"error": "nope"}, ce.Payload)
		})
	}
}

func TestRequesterErrorPayload(t *testing.T) {
	ctx := context.Background()

	t.Run("raw text payload", func(t *testing.T) {
		f := newFakeController(t)
		f.handle(http.MethodGet, "effects", http.StatusInternalServerError, "boom")
		_, err := f.client().Requester().Execute(ctx, http.MethodGet, "effects", nil)

		var ce *ControllerError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "boom", ce.Payload)
		assert.Equal(t, `500 "boom"`, ce.Error())
	})

	t.Run("empty payload", func(t *testing.T) {
		f := newFakeController(t)
		f.handle(http.MethodPut, "effects", http.StatusUnprocessableEntity, "")
		_, err := f.client().Requester().Execute(ctx, http.MethodPut, "effects", map[string]string{"select": "x"})

		var ce *ControllerError
		require.True(t, errors.As(err, &ce))
		assert.Nil(t, ce.Payload)
		assert.Equal(t, "422 null", ce.Error())
	})

	t.Run("json payload", func(t *testing.T) {
		f := newFakeController(t)
		f.handle(http.MethodGet, "effects", http.StatusNotFound, `{"a":1}`)
		_, err := f.client().Requester().Execute(ctx, http.MethodGet, "effects", nil)
		assert.EqualError(t, err, `404 {"a":1}`)
	})

	t.Run("markup in payload is printed as sent", func(t *testing.T) {
		f := newFakeController(t)
		f.handle(http.MethodGet, "effects", http.StatusForbidden, `{"error":"<b>x & y</b>"}`)
		_, err := f.client().Requester().Execute(ctx, http.MethodGet, "effects", nil)
		assert.EqualError(t, err, `403 {"error":"<b>x & y</b>"}`)
	})
}

func TestRequesterTransportError(t *testing.T) {
	f := newFakeController(t)
	r := f.client().Requester()
	f.server.Close()

	_, err := r.Execute(context.Background(), http.MethodGet, "state/on/value", nil)
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.MethodGet, te.Method)
	assert.Contains(t, te.URL, "/api/v1/"+testToken+"/state/on/value")

	var ce *ControllerError
	assert.False(t, errors.As(err, &ce))
}
