package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podstore/backoffice/internal/infrastructure/persistence"
	"github.com/podstore/backoffice/internal/interfaces/http/middleware"
	"github.com/podstore/backoffice/tests/testutil"
)

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func dataOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", body)
	return data
}

func createProduct(t *testing.T, srv *TestServer, token, name, price, sku string) int64 {
	t.Helper()
	w := testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Method:         http.MethodPost,
		Path:           "/api/v1/dashboard/products",
		Headers:        bearer(token),
		RawBody:        fmt.Sprintf(`{"name":%q,"price":%s,"internalSku":%q}`, name, price, sku),
		ExpectedStatus: http.StatusCreated,
	})
	return int64(dataOf(t, testutil.DecodeJSON(t, w))["id"].(float64))
}

const marketplaceUserID = "rappi-integration"

// setupMarketplaceUser creates the marketplace account and one product in its
// catalog, then exchanges the credentials for a token
func setupMarketplaceUser(t *testing.T, srv *TestServer) string {
	t.Helper()
	session := srv.DashboardToken(t)
	testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Method:  http.MethodPost,
		Path:    "/api/v1/dashboard/users",
		Headers: bearer(session),
		Body: map[string]any{
			"id":       marketplaceUserID,
			"name":     "Rappi",
			"username": persistence.SeedRappiUsername,
			"email":    persistence.SeedRappiEmail,
			"password": persistence.SeedRappiPassword,
		},
		ExpectedStatus: http.StatusCreated,
	})
	testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Method:         http.MethodPost,
		Path:           "/api/v1/dashboard/products",
		Headers:        bearer(session),
		RawBody:        fmt.Sprintf(`{"name":"Vape Hill Mango","price":250,"internalSku":"VHILL-001","userId":%q}`, marketplaceUserID),
		ExpectedStatus: http.StatusCreated,
	})

	w := testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Method: http.MethodPost,
		Path:   "/api/v1/turbo-rappi",
		Body: map[string]any{
			"email":    persistence.SeedRappiEmail,
			"password": persistence.SeedRappiPassword,
		},
		ExpectedStatus: http.StatusOK,
	})
	token, _ := testutil.DecodeJSON(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func webhookOrder(externalID string) map[string]any {
	return map[string]any{
		"storeId":         "900100",
		"orderExternalId": externalID,
		"totalAmount":     570.5,
		"customerName":    "Ana López",
		"customerEmail":   "ana@example.com",
		"items": []map[string]any{
			{"quantity": 1, "price": 250, "syncProductId": "VHILL-001", "taxes": []any{}},
			{"quantity": 1, "price": 320.5, "name": "Sin catálogo", "taxes": []map[string]any{{"value": 16}, {"value": 8}}},
		},
		"status":    map[string]any{"id": 4, "name": "successful"},
		"createdAt": "2024-03-05T18:30:00Z",
	}
}

func TestAPI_Health(t *testing.T) {
	srv := NewTestServer(t, "")

	w := testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Path:           "/health",
		ExpectedStatus: http.StatusOK,
	})
	body := testutil.DecodeJSON(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["database"])
}

func TestAPI_DashboardRequiresSession(t *testing.T) {
	srv := NewTestServer(t, "")

	testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Path:           "/api/v1/dashboard/products",
		ExpectedStatus: http.StatusUnauthorized,
	})
	testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Path:           "/api/v1/dashboard/products",
		Headers:        bearer("not-a-session"),
		ExpectedStatus: http.StatusUnauthorized,
	})
}

func TestAPI_ProductLifecycle(t *testing.T) {
	srv := NewTestServer(t, "")
	token := srv.DashboardToken(t)

	id := createProduct(t, srv, token, "Vape Hill Mango", "250", "VHILL-001")
	path := fmt.Sprintf("/api/v1/dashboard/products/%d", id)

	w := testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Path:           path,
		Headers:        bearer(token),
		ExpectedStatus: http.StatusOK,
	})
	product := dataOf(t, testutil.DecodeJSON(t, w))
	assert.Equal(t, DashboardUserID, product["userId"])
	assert.Equal(t, "250", product["price"])

	w = testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Method:         http.MethodPatch,
		Path:           path,
		Headers:        bearer(token),
		RawBody:        `{"price":275.5}`,
		ExpectedStatus: http.StatusOK,
	})
	updated := dataOf(t, testutil.DecodeJSON(t, w))
	assert.Equal(t, "275.5", updated["price"])
	assert.Equal(t, "Vape Hill Mango", updated["name"])

	t.Run("duplicate sku for the same owner conflicts", func(t *testing.T) {
		testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
			Method:         http.MethodPost,
			Path:           "/api/v1/dashboard/products",
			Headers:        bearer(token),
			RawBody:        `{"name":"Otro","price":10,"internalSku":"VHILL-001"}`,
			ExpectedStatus: http.StatusConflict,
		})
		assert.Equal(t, int64(1), srv.DB.Count("products"))
	})

	testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Method:         http.MethodDelete,
		Path:           path,
		Headers:        bearer(token),
		ExpectedStatus: http.StatusOK,
	})
	assert.Equal(t, int64(0), srv.DB.Count("products"))

	t.Run("deleting a missing product is a localized 404", func(t *testing.T) {
		w := testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
			Method:         http.MethodDelete,
			Path:           path,
			Headers:        bearer(token),
			ExpectedStatus: http.StatusNotFound,
		})
		errInfo := testutil.DecodeJSON(t, w)["error"].(map[string]any)
		assert.Equal(t, "ERR_NOT_FOUND", errInfo["code"])
		assert.Equal(t, "Error al eliminar el producto: registro no encontrado", errInfo["message"])
	})
}

func TestAPI_MarketplaceAuthentication(t *testing.T) {
	srv := NewTestServer(t, "")
	token := srv.DashboardToken(t)

	testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Method:  http.MethodPost,
		Path:    "/api/v1/dashboard/users",
		Headers: bearer(token),
		Body: map[string]any{
			"name":     "Rappi",
			"username": "rappi_user",
			"email":    "Rappi@Rappi.com",
			"password": "rappi_password",
		},
		ExpectedStatus: http.StatusCreated,
		Validate: func(t *testing.T, w *httptest.ResponseRecorder) {
			user := dataOf(t, testutil.DecodeJSON(t, w))
			assert.Equal(t, true, user["hasPassword"])
			assert.NotContains(t, w.Body.String(), "rappi_password")
		},
	})

	testutil.RunHTTPTestCases(t, srv.Engine, []testutil.HTTPTestCase{
		{
			Name:           "correct password",
			Method:         http.MethodPost,
			Path:           "/api/v1/turbo-rappi",
			Body:           map[string]any{"email": "rappi@rappi.com", "password": "rappi_password"},
			ExpectedStatus: http.StatusOK,
			Validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.NotEmpty(t, w.Header().Get(middleware.MarketplaceTokenHeader))
			},
		},
		{
			Name:           "user name login",
			Method:         http.MethodPost,
			Path:           "/api/v1/turbo-rappi",
			Body:           map[string]any{"user": "rappi_user", "password": "rappi_password"},
			ExpectedStatus: http.StatusOK,
		},
		{
			Name:           "wrong password",
			Method:         http.MethodPost,
			Path:           "/api/v1/turbo-rappi",
			Body:           map[string]any{"email": "rappi@rappi.com", "password": "nope-nope"},
			ExpectedStatus: http.StatusUnauthorized,
		},
		{
			Name:           "unknown user",
			Method:         http.MethodPost,
			Path:           "/api/v1/turbo-rappi",
			Body:           map[string]any{"email": "ghost@rappi.com", "password": "rappi_password"},
			ExpectedStatus: http.StatusNotFound,
		},
	})
}

func TestAPI_MarketplaceWebhook(t *testing.T) {
	srv := NewTestServer(t, "")
	token := setupMarketplaceUser(t, srv)

	w := testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Method:         http.MethodPost,
		Path:           "/api/v1/turbo-rappi/orders",
		Headers:        map[string]string{middleware.MarketplaceTokenHeader: token},
		Body:           webhookOrder("ORD-1"),
		ExpectedStatus: http.StatusCreated,
	})
	body := testutil.DecodeJSON(t, w)
	assert.Equal(t, "Nueva orden", body["message"])
	assert.NotContains(t, body, "emailWarning")

	order := body["order"].(map[string]any)
	assert.Equal(t, marketplaceUserID, order["userId"])
	items := order["items"].([]any)
	require.Len(t, items, 2)

	linked := items[0].(map[string]any)
	assert.NotNil(t, linked["productId"])
	assert.Equal(t, "0", linked["tax"])

	unlinked := items[1].(map[string]any)
	assert.Nil(t, unlinked["productId"])
	assert.Equal(t, "16", unlinked["tax"])

	sent := srv.Mail.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"ana@example.com"}, sent[0].To)

	t.Run("replay is rejected without a second row", func(t *testing.T) {
		w := testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
			Method:         http.MethodPost,
			Path:           "/api/v1/turbo-rappi/orders",
			Headers:        map[string]string{middleware.MarketplaceTokenHeader: token},
			Body:           webhookOrder("ORD-1"),
			ExpectedStatus: http.StatusConflict,
		})
		assert.Equal(t, "La orden ya fue registrada", testutil.DecodeJSON(t, w)["error"])
		assert.Equal(t, int64(1), srv.DB.Count("orders"))
		assert.Equal(t, int64(2), srv.DB.Count("order_products"))
	})

	t.Run("missing token", func(t *testing.T) {
		testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
			Method:         http.MethodPost,
			Path:           "/api/v1/turbo-rappi/orders",
			Body:           webhookOrder("ORD-2"),
			ExpectedStatus: http.StatusUnauthorized,
		})
		assert.Equal(t, int64(1), srv.DB.Count("orders"))
	})

	t.Run("deleting a product keeps the order line", func(t *testing.T) {
		productID := int64(linked["productId"].(float64))
		testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
			Method:         http.MethodDelete,
			Path:           fmt.Sprintf("/api/v1/dashboard/products/%d", productID),
			Headers:        bearer(srv.DashboardToken(t)),
			ExpectedStatus: http.StatusOK,
		})
		assert.Equal(t, int64(2), srv.DB.Count("order_products"))
	})
}

func TestAPI_CheckoutAndFormattedList(t *testing.T) {
	srv := NewTestServer(t, "")
	token := srv.DashboardToken(t)

	first := createProduct(t, srv, token, "Vape Hill Mango", "250", "VHILL-001")
	second := createProduct(t, srv, token, "IPlay Max Uva", "320.50", "IPLAY-001")

	w := testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Method:  http.MethodPost,
		Path:    "/api/v1/dashboard/orders",
		Headers: bearer(token),
		Body: map[string]any{
			"customerEmail": "cliente@example.com",
			"totalAmount":   570.5,
			"products": []map[string]any{
				{"productId": first, "quantity": 1},
				{"productId": second, "quantity": 1},
			},
		},
		ExpectedStatus: http.StatusCreated,
	})
	order := dataOf(t, testutil.DecodeJSON(t, w))
	assert.Equal(t, DashboardUserID, order["userId"])

	t.Run("unknown product conflicts and writes nothing", func(t *testing.T) {
		testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
			Method:  http.MethodPost,
			Path:    "/api/v1/dashboard/orders",
			Headers: bearer(token),
			Body: map[string]any{
				"customerEmail": "cliente@example.com",
				"totalAmount":   1,
				"products":      []map[string]any{{"productId": 999999, "quantity": 1}},
			},
			ExpectedStatus: http.StatusConflict,
		})
		assert.Equal(t, int64(1), srv.DB.Count("orders"))
	})

	w = testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Path:           "/api/v1/dashboard/orders",
		Headers:        bearer(token),
		ExpectedStatus: http.StatusOK,
	})
	var list struct {
		Data []struct {
			ID       string `json:"id"`
			Customer struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"customer"`
			Items []struct {
				Name string `json:"name"`
			} `json:"items"`
			TotalFormatted string `json:"totalFormatted"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Cliente sin nombre", list.Data[0].Customer.Name)
	assert.Equal(t, "cliente@example.com", list.Data[0].Customer.Email)
	assert.Len(t, list.Data[0].Items, 2)
	assert.Equal(t, "$570.50", list.Data[0].TotalFormatted)

	orderPath := fmt.Sprintf("/api/v1/dashboard/orders/%s", list.Data[0].ID)
	testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Method:         http.MethodDelete,
		Path:           orderPath,
		Headers:        bearer(token),
		ExpectedStatus: http.StatusOK,
	})
	assert.Equal(t, int64(0), srv.DB.Count("orders"))
	assert.Equal(t, int64(0), srv.DB.Count("order_products"))
	assert.Equal(t, int64(2), srv.DB.Count("products"))
}

func TestAPI_SyncTickets(t *testing.T) {
	rappiAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" || r.Header.Get("Authorization") != "Bearer rappi-api-token" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orders":[
			{"id":101,"status":{"id":4,"name":"successful"},"customer":{"name":"Ana","email":"ana@example.com"},
			 "items":[{"name":"Vape Hill Mango","quantity":2,"price":250}],"totalAmount":500,"createdAt":"2024-03-05T18:30:00Z"},
			{"id":"102","status":"canceled","customer":{"email":"otra@example.com"},"items":[],"totalAmount":0}
		]}`))
	}))
	defer rappiAPI.Close()

	srv := NewTestServer(t, rappiAPI.URL)

	w := testutil.RunHTTPTestCase(t, srv.Engine, testutil.HTTPTestCase{
		Method:         http.MethodPost,
		Path:           "/api/v1/dashboard/orders/sync-tickets",
		Headers:        bearer(srv.DashboardToken(t)),
		ExpectedStatus: http.StatusOK,
	})
	body := testutil.DecodeJSON(t, w)
	assert.Equal(t, float64(1), body["sent"])
	assert.Equal(t, float64(0), body["failed"])

	sent := srv.Mail.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"ana@example.com"}, sent[0].To)

	ticket, ok := srv.Archive.Get("tickets/101.html")
	require.True(t, ok)
	assert.Contains(t, string(ticket), "Vape Hill Mango")
}
