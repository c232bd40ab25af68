package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopsmart/substitution/internal/adapter/httphandler"
	"github.com/shopsmart/substitution/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubstituteFinder struct {
	mock.Mock
}

func (m *MockSubstituteFinder) FindSubstitutes(
	ctx context.Context, req domain.SubstituteRequest,
) (domain.SearchResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.SearchResult), args.Error(1)
}

type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) Product(
	ctx context.Context, id string,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductReader) Products(
	ctx context.Context,
) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

type MockProductsSender struct {
	mock.Mock
}

func (m *MockProductsSender) SendProducts(
	ctx context.Context, ps []domain.Product,
) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}

type MockRecallSetter struct {
	mock.Mock
}

func (m *MockRecallSetter) SetRecall(
	ctx context.Context, r domain.RecallRule,
) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPostSubstitutions(t *testing.T) {
	newMux := func(finder *MockSubstituteFinder) *http.ServeMux {
		mux := http.NewServeMux()
		httphandler.RegisterSubstitutions(mux, finder)
		return mux
	}

	t.Run("Substitutes", func(t *testing.T) {
		finder := new(MockSubstituteFinder)
		finder.On("FindSubstitutes", mock.Anything, domain.SubstituteRequest{
			ProductID:    "amul-butter",
			MaxPrice:     60,
			RequiredTags: []string{"veg"},
		}).Return(domain.SearchResult{
			Kind: domain.KindSubstitutes,
			Items: []domain.RankedSubstitute{{
				Product:     domain.Product{ID: "md-butter", Price: 54, Stock: 12},
				Score:       10.1,
				MatchedTags: []string{"same_cat_all_tags"},
				Explanation: "Same category with all required tags matched.",
			}},
		}, nil)

		body := `{"product_id":"amul-butter","max_price":60,"required_tags":["veg"]}`
		rec := postJSON(t, newMux(finder), "/v1/substitutions", body)

		require.Equal(t, http.StatusOK, rec.Code)

		var res httphandler.SearchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "substitutes", res.Kind)
		assert.Nil(t, res.Product)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "md-butter", res.Items[0].Product.ID)
		assert.InDelta(t, 10.1, res.Items[0].Score, 1e-9)
	})

	t.Run("ExactMatch", func(t *testing.T) {
		finder := new(MockSubstituteFinder)
		finder.On("FindSubstitutes", mock.Anything, mock.Anything).
			Return(domain.SearchResult{
				Kind:    domain.KindExactMatch,
				Product: domain.Product{ID: "md-butter", Stock: 12},
			}, nil)

		body := `{"product_id":"md-butter","max_price":60}`
		rec := postJSON(t, newMux(finder), "/v1/substitutions", body)

		require.Equal(t, http.StatusOK, rec.Code)

		var res httphandler.SearchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "exact_match", res.Kind)
		require.NotNil(t, res.Product)
		assert.Equal(t, "md-butter", res.Product.ID)
		assert.Empty(t, res.Items)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		finder := new(MockSubstituteFinder)
		finder.On("FindSubstitutes", mock.Anything, mock.Anything).
			Return(domain.SearchResult{}, domain.ErrNotFound)

		body := `{"product_id":"ghost","max_price":60}`
		rec := postJSON(t, newMux(finder), "/v1/substitutions", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		rec := postJSON(
			t, newMux(new(MockSubstituteFinder)), "/v1/substitutions", "{oops",
		)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingProductID", func(t *testing.T) {
		body := `{"max_price":60}`
		rec := postJSON(
			t, newMux(new(MockSubstituteFinder)), "/v1/substitutions", body,
		)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NonPositiveMaxPrice", func(t *testing.T) {
		body := `{"product_id":"amul-butter","max_price":0}`
		rec := postJSON(
			t, newMux(new(MockSubstituteFinder)), "/v1/substitutions", body,
		)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProducts(t *testing.T) {
	newMux := func(
		reader *MockProductReader, sender *MockProductsSender,
	) *http.ServeMux {
		mux := http.NewServeMux()
		httphandler.RegisterProducts(mux, reader, sender)
		return mux
	}

	t.Run("GetProducts", func(t *testing.T) {
		reader := new(MockProductReader)
		reader.On("Products", mock.Anything).Return([]domain.Product{
			{ID: "amul-butter", Name: "Amul Butter", Price: 56},
			{ID: "md-butter", Name: "Mother Dairy Butter", Price: 54},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		rec := httptest.NewRecorder()
		newMux(reader, new(MockProductsSender)).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var ps []httphandler.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ps))
		require.Len(t, ps, 2)
		assert.Equal(t, "amul-butter", ps[0].ID)
	})

	t.Run("GetProductNotFound", func(t *testing.T) {
		reader := new(MockProductReader)
		reader.On("Product", mock.Anything, "ghost").
			Return(domain.Product{}, domain.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/ghost", nil)
		rec := httptest.NewRecorder()
		newMux(reader, new(MockProductsSender)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("PostProducts", func(t *testing.T) {
		sender := new(MockProductsSender)
		sender.On("SendProducts", mock.Anything, []domain.Product{{
			ID: "md-butter", Name: "Mother Dairy Butter", Price: 54, Stock: 12,
			Category: "Dairy", Brand: "Mother Dairy", Attributes: []string{"veg"},
		}}).Return(nil)

		body := `[{"id":"md-butter","name":"Mother Dairy Butter","price":54,` +
			`"stock":12,"category":"Dairy","brand":"Mother Dairy",` +
			`"attributes":["veg"]}]`
		rec := postJSON(
			t, newMux(new(MockProductReader), sender), "/v1/products", body,
		)

		require.Equal(t, http.StatusAccepted, rec.Code)
		sender.AssertExpectations(t)
	})

	t.Run("PostProductsEmptyList", func(t *testing.T) {
		rec := postJSON(
			t,
			newMux(new(MockProductReader), new(MockProductsSender)),
			"/v1/products", "[]",
		)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPostRecall(t *testing.T) {
	newMux := func(setter *MockRecallSetter) *http.ServeMux {
		mux := http.NewServeMux()
		httphandler.RegisterRecalls(mux, setter)
		return mux
	}

	t.Run("Accepted", func(t *testing.T) {
		setter := new(MockRecallSetter)
		setter.On("SetRecall", mock.Anything, domain.RecallRule{
			ProductID: "amul-cheese", Recalled: true,
		}).Return(nil)

		body := `{"product_id":"amul-cheese","recalled":true}`
		rec := postJSON(t, newMux(setter), "/v1/recalls", body)

		require.Equal(t, http.StatusAccepted, rec.Code)
		setter.AssertExpectations(t)
	})

	t.Run("MissingProductID", func(t *testing.T) {
		body := `{"recalled":true}`
		rec := postJSON(t, newMux(new(MockRecallSetter)), "/v1/recalls", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAllowJSON(t *testing.T) {
	mux := http.NewServeMux()
	httphandler.RegisterHealth(mux)
	h := httphandler.AllowJSON(mux)

	t.Run("NoBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("WrongMediaType", func(t *testing.T) {
		req := httptest.NewRequest(
			http.MethodGet, "/v1/healthz", strings.NewReader("data"),
		)
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}
