package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neksoft-admin/backend"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL, 5*time.Second)
}

func TestLogin_TokenPaths(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"nested access_token", `{"data":{"access_token":"tok"}}`},
		{"top-level access_token", `{"access_token":"tok"}`},
		{"nested token", `{"data":{"token":"tok"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var got map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				assert.Equal(t, "ops@example.com", got["userName"])
				assert.Equal(t, "hunter2", got["password"])

				w.Write([]byte(tt.body))
			})

			token, err := client.Login(context.Background(), "ops@example.com", "hunter2")
			require.NoError(t, err)
			assert.Equal(t, "tok", token)
		})
	}
}

func TestLogin_PrefersNestedAccessToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"outer","data":{"access_token":"inner","token":"other"}}`))
	})

	token, err := client.Login(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "inner", token)
}

func TestLogin_Rejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	_, err := client.Login(context.Background(), "a", "b")

	var loginErr *backend.LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, http.StatusUnauthorized, loginErr.Status)
	assert.Equal(t, "Invalid credentials", loginErr.Message)
}

func TestLogin_OKWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	})

	_, err := client.Login(context.Background(), "a", "b")

	var loginErr *backend.LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, "Login failed", loginErr.Message)
}

func TestLogin_MalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := client.Login(context.Background(), "a", "b")
	assert.ErrorIs(t, err, backend.ErrUnavailable)
}

func TestLogin_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	client := backend.NewClient(srv.URL, time.Second)

	_, err := client.Login(context.Background(), "a", "b")
	assert.ErrorIs(t, err, backend.ErrUnavailable)
}

func TestListBusinesses(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/business", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("count"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Write([]byte(`{"data":{"total":42,"data":[
			{"_id":"b1","fullName":"Acme","email":"acme@example.com","status":"active","shopLogo":{"url":"https://cdn/acme.png"}},
			{"_id":"b2","fullName":"Globex","email":"globex@example.com","status":"pending"}
		]}}`))
	})

	page, err := client.ListBusinesses(context.Background(), "tok", 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 42, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "b1", page.Items[0].ID)
	assert.Equal(t, "https://cdn/acme.png", page.Items[0].LogoURL)
	assert.Equal(t, "", page.Items[1].LogoURL)
}

func TestListBusinesses_TotalFallbacks(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		page, count   int
		want          int
		wantEstimated bool
	}{
		{"totalCount", `{"data":{"totalCount":7,"data":[]}}`, 1, 10, 7, false},
		{"count", `{"data":{"count":5,"data":[]}}`, 1, 10, 5, false},
		{"top-level total", `{"total":9,"data":{"data":[]}}`, 1, 10, 9, false},
		{"missing total, short page", `{"data":{"data":[{"_id":"x"}]}}`, 1, 10, 1, true},
		{"missing total, full page allows a next page", `{"data":{"data":[{"_id":"x"},{"_id":"y"}]}}`, 2, 2, 5, true},
		{"missing total, empty page", `{"data":{"data":[]}}`, 3, 10, 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			page, err := client.ListBusinesses(context.Background(), "tok", tt.page, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.want, page.Total)
			assert.Equal(t, tt.wantEstimated, page.Estimated)
		})
	}
}

func TestListBusinesses_MixedFieldTypes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"total":2,"data":[
			{"_id":101,"fullName":"Acme","email":null,"status":1},
			{"_id":"b2","fullName":"Globex","status":true,"shopLogo":null}
		]}}`))
	})

	page, err := client.ListBusinesses(context.Background(), "tok", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "101", page.Items[0].ID)
	assert.Equal(t, "1", page.Items[0].Status)
	assert.Empty(t, page.Items[0].Email, "null reads as absent")
	assert.Equal(t, "true", page.Items[1].Status)
	assert.Empty(t, page.Items[1].LogoURL)
}

func TestListBusinesses_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"expired"}`))
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":`))
		}},
		{"items not an array", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"data":"nope"}}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.ListBusinesses(context.Background(), "tok", 1, 10)
			assert.ErrorIs(t, err, backend.ErrFetchFailed)
		})
	}
}

func TestGetBusiness(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/business/detail", r.URL.Path)
		assert.Equal(t, "b1", r.URL.Query().Get("businesId"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Write([]byte(`{"description":"Sells *things*","data":{"id":"b1","fullName":"Acme","isAdminSeller":true,"sellerId":"s1"}}`))
	})

	d, err := client.GetBusiness(context.Background(), "tok", "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", d.Data.ID)
	assert.Equal(t, "Acme", d.Data.FullName)
	assert.True(t, d.Data.IsAdminSeller)
	assert.Equal(t, "s1", d.Data.SellerID)
	assert.Equal(t, "Sells *things*", d.Description)
	assert.Empty(t, d.Data.PhoneNumber)
}

func TestGetBusiness_MixedFieldTypes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":"b1","phoneNumber":923001234567,"isAdminSeller":"true","sellerId":42,"sellerType":null}}`))
	})

	d, err := client.GetBusiness(context.Background(), "tok", "b1")
	require.NoError(t, err)
	assert.Equal(t, "923001234567", d.Data.PhoneNumber)
	assert.True(t, d.Data.IsAdminSeller)
	assert.Equal(t, "42", d.Data.SellerID)
	assert.Empty(t, d.Data.SellerType)
	assert.Empty(t, d.Description)
}

func TestGetBusiness_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetBusiness(context.Background(), "tok", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, backend.ErrFetchFailed))
}

func TestSentinelErrors_AreLowercase(t *testing.T) {
	for _, err := range []error{backend.ErrFetchFailed, backend.ErrUnavailable} {
		msg := err.Error()
		assert.True(t, unicode.IsLower([]rune(msg)[0]), msg)
		assert.False(t, strings.HasSuffix(msg, "."), msg)
	}
}
