package alegra_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centli/alegra-relay/internal/config"
	"github.com/centli/alegra-relay/pkg/clients/alegra"
)

func TestClient_SendsBasicAuthAndJSONHeaders(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := alegra.NewClient(config.AlegraConfig{
		Email:   "demo@centli.mx",
		Token:   "s3cret",
		BaseURL: srv.URL + "/",
	})

	_, err := client.SearchItems(context.Background(), "anything", 5)
	require.NoError(t, err)

	// base64("demo@centli.mx:s3cret")
	assert.Equal(t, "Basic ZGVtb0BjZW50bGkubXg6czNjcmV0", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_ErrorResponseBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "not allowed"}`))
	}))
	defer srv.Close()

	client := alegra.NewClient(config.AlegraConfig{Email: "e", Token: "t", BaseURL: srv.URL})

	_, err := client.FindItemsByReference(context.Background(), "SKU-1", 1)
	var apiErr *alegra.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.JSONEq(t, `{"message": "not allowed"}`, string(apiErr.Body))
	assert.Contains(t, apiErr.Error(), "status=403")
}

func TestAPIError_ErrorBodyForms(t *testing.T) {
	jsonErr := &alegra.APIError{StatusCode: 500, Body: []byte(`{"message": "boom"}`)}
	body, ok := jsonErr.ErrorBody().(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"message": "boom"}`, string(body))

	textErr := &alegra.APIError{StatusCode: 502, Body: []byte("bad gateway")}
	assert.Equal(t, "bad gateway", textErr.ErrorBody())

	emptyErr := &alegra.APIError{StatusCode: 504}
	assert.Equal(t, "alegra api error: status=504", emptyErr.ErrorBody())
}
