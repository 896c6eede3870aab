package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func TestListProductsFallsBackToCatalog(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Products []domain.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Products, 6)
	assert.Equal(t, "Handcrafted Ceramic Mug", body.Products[0].Name)
}

func TestGetProductDetail(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/products/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var detail domain.ProductDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "1", detail.ID)
	assert.True(t, detail.Sale)
	assert.NotEmpty(t, detail.Features)
	assert.NotEmpty(t, detail.Specifications)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/products/999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"product not found","home":"/"}`, rec.Body.String())
}

func TestSubmitReviewRequiresAllFields(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(jsonRequest(http.MethodPost, "/api/products/1/reviews", `{"name":"Ann","rating":0,"comment":"Nice"}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	_, err := env.store.Get(t.Context(), "reviews_1")
	assert.Error(t, err)
}

func TestSubmitReviewPrependsAndSummarizes(t *testing.T) {
	env := newTestEnv(t)
	before := env.do(httptest.NewRequest(http.MethodGet, "/api/products/2/reviews", nil))
	require.Equal(t, http.StatusOK, before.Code)
	var prev domain.ReviewSummary
	require.NoError(t, json.Unmarshal(before.Body.Bytes(), &prev))

	rec := env.do(jsonRequest(http.MethodPost, "/api/products/2/reviews", `{"name":" Ann ","rating":5,"comment":"Lovely basket"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var summary domain.ReviewSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, prev.ReviewCount+1, summary.ReviewCount)
	require.NotEmpty(t, summary.Reviews)
	assert.Equal(t, "Ann", summary.Reviews[0].Name)
	assert.Equal(t, "Lovely basket", summary.Reviews[0].Comment)
}

func TestReviewsUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/products/nope/reviews", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
