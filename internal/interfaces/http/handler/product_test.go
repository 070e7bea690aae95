package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/podstore/backoffice/internal/application/catalog"
	"github.com/podstore/backoffice/internal/domain/catalog"
	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/interfaces/http/dto"
	"github.com/podstore/backoffice/internal/interfaces/http/middleware"
	"github.com/podstore/backoffice/tests/testutil"
)

// signedIn stands in for DashboardAuth
func signedIn(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func newDashboardEngine() *gin.Engine {
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID(), signedIn(testutil.TestUserID))
	return engine
}

func setupProductHandler() (*gin.Engine, *testutil.MockProductRepository) {
	repo := new(testutil.MockProductRepository)
	h := NewProductHandler(catalogapp.NewProductService(repo))

	engine := newDashboardEngine()
	products := engine.Group("/api/v1/dashboard/products")
	products.GET("", h.List)
	products.POST("", h.Create)
	products.GET("/:id", h.GetByID)
	products.PATCH("/:id", h.Update)
	products.DELETE("/:id", h.Delete)
	return engine, repo
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("echoes SKU and price", func(t *testing.T) {
		engine, repo := setupProductHandler()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
			return p.UserID == testutil.TestUserID && p.InternalSKU == "VHILL-001"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*catalog.Product).ID = 10
		}).Return(nil)

		w := testutil.RunHTTPTestCase(t, engine, testutil.HTTPTestCase{
			Method:         http.MethodPost,
			Path:           "/api/v1/dashboard/products",
			Body:           map[string]any{"name": "Vape Hill Mango", "price": 250.5, "internalSku": "VHILL-001"},
			ExpectedStatus: http.StatusCreated,
		})

		data := testutil.AssertSuccessResponse(t, w)["data"].(map[string]any)
		assert.Equal(t, "VHILL-001", data["internalSku"])
		assert.Equal(t, "250.5", data["price"])
		assert.Equal(t, float64(10), data["id"])
		repo.AssertExpectations(t)
	})

	t.Run("rejects non-positive price without touching the store", func(t *testing.T) {
		engine, repo := setupProductHandler()

		w := testutil.RunHTTPTestCase(t, engine, testutil.HTTPTestCase{
			Method:         http.MethodPost,
			Path:           "/api/v1/dashboard/products",
			Body:           map[string]any{"name": "Vape Hill Mango", "price": 0, "internalSku": "VHILL-001"},
			ExpectedStatus: http.StatusBadRequest,
		})

		errMap := testutil.AssertErrorResponse(t, w, dto.ErrCodeValidation)
		assert.NotEmpty(t, errMap["details"])
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate SKU is a conflict", func(t *testing.T) {
		engine, repo := setupProductHandler()
		repo.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

		w := testutil.RunHTTPTestCase(t, engine, testutil.HTTPTestCase{
			Method:         http.MethodPost,
			Path:           "/api/v1/dashboard/products",
			Body:           map[string]any{"name": "Vape Hill Mango", "price": 10, "internalSku": "VHILL-001"},
			ExpectedStatus: http.StatusConflict,
		})

		errMap := testutil.AssertErrorResponse(t, w, dto.ErrCodeAlreadyExists)
		assert.Contains(t, errMap["message"], "Error al crear el producto")
	})
}

func TestProductHandler_List(t *testing.T) {
	engine, repo := setupProductHandler()
	repo.On("FindAll", mock.Anything).Return([]catalog.Product{*testutil.NewTestProduct(1), *testutil.NewTestProduct(2)}, nil)

	w := testutil.RunHTTPTestCase(t, engine, testutil.HTTPTestCase{
		Path:           "/api/v1/dashboard/products",
		ExpectedStatus: http.StatusOK,
	})

	assert.Len(t, testutil.AssertSuccessResponse(t, w)["data"], 2)
}

func TestProductHandler_GetByID(t *testing.T) {
	engine, repo := setupProductHandler()
	repo.On("FindByID", mock.Anything, int64(1)).Return(testutil.NewTestProduct(1), nil)
	repo.On("FindByID", mock.Anything, int64(99)).Return(nil, shared.ErrNotFound)

	testutil.RunHTTPTestCases(t, engine, []testutil.HTTPTestCase{
		{Name: "found", Path: "/api/v1/dashboard/products/1", ExpectedStatus: http.StatusOK},
		{Name: "missing", Path: "/api/v1/dashboard/products/99", ExpectedStatus: http.StatusNotFound},
		{Name: "bad id", Path: "/api/v1/dashboard/products/abc", ExpectedStatus: http.StatusBadRequest},
	})
}

func TestProductHandler_Update(t *testing.T) {
	engine, repo := setupProductHandler()
	updated := testutil.NewTestProduct(1)
	updated.Price = decimal.RequireFromString("300")
	repo.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(p catalog.ProductPatch) bool {
		price, ok := p.Price.Get()
		return ok && price.Equal(decimal.NewFromInt(300)) && !p.Name.IsSet()
	})).Return(updated, nil)

	w := testutil.RunHTTPTestCase(t, engine, testutil.HTTPTestCase{
		Method:         http.MethodPatch,
		Path:           "/api/v1/dashboard/products/1",
		Body:           map[string]any{"price": 300},
		ExpectedStatus: http.StatusOK,
	})

	data := testutil.AssertSuccessResponse(t, w)["data"].(map[string]any)
	assert.Equal(t, "300", data["price"])
	repo.AssertExpectations(t)
}

func detailFields(errMap map[string]any) []string {
	details, _ := errMap["details"].([]any)
	out := make([]string, 0, len(details))
	for _, d := range details {
		if m, ok := d.(map[string]any); ok {
			out = append(out, m["field"].(string))
		}
	}
	return out
}

func TestProductHandler_UpdateFormRules(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"empty name", `{"name": ""}`, "name"},
		{"null name", `{"name": null}`, "name"},
		{"empty sku", `{"internalSku": ""}`, "internalSku"},
		{"null sku", `{"internalSku": null}`, "internalSku"},
		{"null price", `{"price": null}`, "price"},
		{"ean longer than the column", `{"ean": "123456789012345678901"}`, "ean"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine, repo := setupProductHandler()

			w := testutil.RunHTTPTestCase(t, engine, testutil.HTTPTestCase{
				Method:         http.MethodPatch,
				Path:           "/api/v1/dashboard/products/1",
				RawBody:        tc.body,
				ExpectedStatus: http.StatusBadRequest,
			})

			errMap := testutil.AssertErrorResponse(t, w, dto.ErrCodeValidation)
			assert.Equal(t, []string{tc.field}, detailFields(errMap))
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("empty ean clears the barcode", func(t *testing.T) {
		engine, repo := setupProductHandler()
		repo.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(p catalog.ProductPatch) bool {
			ean, ok := p.EAN.Get()
			return ok && ean == "" && !p.Name.IsSet()
		})).Return(testutil.NewTestProduct(1), nil)

		testutil.RunHTTPTestCase(t, engine, testutil.HTTPTestCase{
			Method:         http.MethodPatch,
			Path:           "/api/v1/dashboard/products/1",
			RawBody:        `{"ean": ""}`,
			ExpectedStatus: http.StatusOK,
		})
		repo.AssertExpectations(t)
	})
}

func TestProductHandler_CreateRejectsLongEAN(t *testing.T) {
	engine, repo := setupProductHandler()

	w := testutil.RunHTTPTestCase(t, engine, testutil.HTTPTestCase{
		Method: http.MethodPost,
		Path:   "/api/v1/dashboard/products",
		Body: map[string]any{
			"name": "Vape Hill Mango", "price": 250, "internalSku": "VHILL-001",
			"ean": "123456789012345678901",
		},
		ExpectedStatus: http.StatusBadRequest,
	})

	errMap := testutil.AssertErrorResponse(t, w, dto.ErrCodeValidation)
	assert.Equal(t, []string{"ean"}, detailFields(errMap))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductHandler_Delete(t *testing.T) {
	t.Run("returns the removed product", func(t *testing.T) {
		engine, repo := setupProductHandler()
		repo.On("Delete", mock.Anything, int64(1)).Return(testutil.NewTestProduct(1), nil)

		w := testutil.RunHTTPTestCase(t, engine, testutil.HTTPTestCase{
			Method:         http.MethodDelete,
			Path:           "/api/v1/dashboard/products/1",
			ExpectedStatus: http.StatusOK,
		})
		testutil.AssertSuccessResponse(t, w)
	})

	t.Run("missing product", func(t *testing.T) {
		engine, repo := setupProductHandler()
		repo.On("Delete", mock.Anything, int64(404)).Return(nil, shared.ErrNotFound)

		w := testutil.RunHTTPTestCase(t, engine, testutil.HTTPTestCase{
			Method:         http.MethodDelete,
			Path:           "/api/v1/dashboard/products/404",
			ExpectedStatus: http.StatusNotFound,
		})

		errMap := testutil.AssertErrorResponse(t, w, dto.ErrCodeNotFound)
		require.IsType(t, "", errMap["message"])
		assert.Contains(t, errMap["message"], "Error al eliminar el producto")
	})
}
