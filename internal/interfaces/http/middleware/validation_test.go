package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podstore/backoffice/internal/application/catalog"
	"github.com/podstore/backoffice/internal/application/identity"
	"github.com/podstore/backoffice/internal/application/integration"
	"github.com/podstore/backoffice/internal/interfaces/http/dto"
)

func bindRouter[T any]() *gin.Engine {
	SetupValidator()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req T
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func postJSON(router *gin.Engine, body string) (*httptest.ResponseRecorder, dto.Response) {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func fields(resp dto.Response) []string {
	if resp.Error == nil {
		return nil
	}
	out := make([]string, 0, len(resp.Error.Details))
	for _, d := range resp.Error.Details {
		out = append(out, d.Field)
	}
	return out
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

const validWebhook = `{
	"storeId": "900",
	"orderExternalId": "R-1",
	"totalAmount": 0,
	"customerEmail": "cliente@example.com",
	"status": {"id": 1, "name": "successful"},
	"items": [{"quantity": 1, "price": 0, "syncProductId": "VHILL-001"}]
}`

func TestValidation_MarketplaceOrder(t *testing.T) {
	router := bindRouter[integration.OrderPayload]()

	t.Run("zero amounts are present", func(t *testing.T) {
		w, _ := postJSON(router, validWebhook)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing total and item price", func(t *testing.T) {
		body := strings.Replace(validWebhook, `"totalAmount": 0,`, "", 1)
		body = strings.Replace(body, `"price": 0, `, "", 1)

		w, resp := postJSON(router, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.ElementsMatch(t, []string{"totalAmount", "items[0].price"}, fields(resp))
		assert.Equal(t, ValidationMessage, resp.Error.Message)
	})

	t.Run("empty items", func(t *testing.T) {
		body := strings.Replace(validWebhook, `[{"quantity": 1, "price": 0, "syncProductId": "VHILL-001"}]`, "[]", 1)
		w, resp := postJSON(router, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, fields(resp), "items")
	})

	t.Run("bad timestamp", func(t *testing.T) {
		body := strings.Replace(validWebhook, `"storeId": "900",`, `"storeId": "900", "createdAt": "ayer",`, 1)
		w, resp := postJSON(router, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, fields(resp), "createdAt")
	})

	t.Run("RFC 3339 timestamp", func(t *testing.T) {
		body := strings.Replace(validWebhook, `"storeId": "900",`, `"storeId": "900", "createdAt": "2024-03-05T18:30:00.000Z",`, 1)
		w, _ := postJSON(router, body)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestValidation_ProductPrice(t *testing.T) {
	router := bindRouter[catalog.CreateProductRequest]()

	w, resp := postJSON(router, `{"name": "Vape Hill", "price": -5, "internalSku": "VHILL-001"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"price"}, fields(resp))
	assert.Equal(t, "debe ser mayor que 0", resp.Error.Details[0].Message)

	w, _ = postJSON(router, `{"name": "Vape Hill", "price": 250.5, "internalSku": "VHILL-001"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidation_OptionalFields(t *testing.T) {
	router := bindRouter[identity.UpdateUserRequest]()

	w, _ := postJSON(router, `{}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := postJSON(router, `{"role": "ROOT", "email": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.ElementsMatch(t, []string{"role", "email"}, fields(resp))

	w, _ = postJSON(router, `{"role": "ADMIN"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidation_OptionalSetToBlank(t *testing.T) {
	users := bindRouter[identity.UpdateUserRequest]()
	for _, body := range []string{`{"email": ""}`, `{"email": null}`} {
		w, resp := postJSON(users, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, []string{"email"}, fields(resp), body)
	}

	products := bindRouter[catalog.UpdateProductRequest]()
	for body, field := range map[string]string{
		`{"name": ""}`:        "name",
		`{"name": null}`:      "name",
		`{"internalSku": ""}`: "internalSku",
		`{"price": null}`:     "price",
	} {
		w, resp := postJSON(products, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, []string{field}, fields(resp), body)
	}

	w, _ := postJSON(products, `{"ean": null}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidation_MalformedJSON(t *testing.T) {
	router := bindRouter[integration.OrderPayload]()

	w, resp := postJSON(router, `{"storeId": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"body"}, fields(resp))

	w, resp = postJSON(router, `{"storeId": 900}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"storeId"}, fields(resp))
}
