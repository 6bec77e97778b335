package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"stuma/internal/api"
	"stuma/internal/domain"
	"stuma/internal/token"
)

func TestItemsWithoutTokenNeverCallsNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, nil, token.NewMemStore())
	_, err := c.Items(context.Background())
	require.ErrorIs(t, err, api.ErrNoToken)
	require.Equal(t, "No token found. Please log in again.", err.Error())
	require.Zero(t, calls)
}

func TestItemsSendsBearerAndDecodes(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok","data":[{"id":1,"items_name":"Desk","category":"Furniture","stock":2,"price":500000}]}`))
	}))
	defer srv.Close()

	tokens := token.NewMemStore()
	require.NoError(t, tokens.Save("tok-1"))

	c := api.NewClient(srv.URL, nil, tokens)
	items, err := c.Items(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-1", gotAuth)
	require.Equal(t, "/api/items", gotPath)
	require.Len(t, items, 1)
	require.Equal(t, "Desk", items[0].Name)
	require.Equal(t, 2, items[0].Stock)
}

func TestItemsNullDataIsItsOwnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok","data":null}`))
	}))
	defer srv.Close()

	tokens := token.NewMemStore()
	require.NoError(t, tokens.Save("tok-1"))

	c := api.NewClient(srv.URL, nil, tokens)
	_, err := c.Items(context.Background())
	require.ErrorIs(t, err, api.ErrNullItems)
}

func TestItemsEmptyListIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok","data":[]}`))
	}))
	defer srv.Close()

	tokens := token.NewMemStore()
	require.NoError(t, tokens.Save("tok-1"))

	c := api.NewClient(srv.URL, nil, tokens)
	items, err := c.Items(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid or expired token"}`))
	}))
	defer srv.Close()

	tokens := token.NewMemStore()
	require.NoError(t, tokens.Save("expired"))

	c := api.NewClient(srv.URL, nil, tokens)
	_, err := c.Items(context.Background())

	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusUnauthorized, se.Code)
	require.Contains(t, se.Error(), "Invalid or expired token")
}

func TestLoginSavesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"welcome","token":"tok-9"}`))
	}))
	defer srv.Close()

	tokens := token.NewMemStore()
	c := api.NewClient(srv.URL, nil, tokens)

	out, err := c.Login(context.Background(), domain.LoginRequest{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)
	require.Equal(t, "tok-9", out.Token)

	saved, ok := tokens.Token()
	require.True(t, ok)
	require.Equal(t, "tok-9", saved)
}

func TestProfileEmptyBodyIsNullBodyFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tokens := token.NewMemStore()
	require.NoError(t, tokens.Save("tok-1"))

	c := api.NewClient(srv.URL, nil, tokens)
	_, err := c.Profile(context.Background())
	require.ErrorIs(t, err, api.ErrNullBody)
}

func TestTransportErrorPropagates(t *testing.T) {
	tokens := token.NewMemStore()
	require.NoError(t, tokens.Save("tok-1"))

	// port 1 is never listening
	c := api.NewClient("http://127.0.0.1:1", nil, tokens)
	_, err := c.Items(context.Background())
	require.Error(t, err)
}
