package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestCase represents a request sent through a gin engine.
type HTTPTestCase struct {
	Name           string
	Method         string
	Path           string
	Body           any
	RawBody        string
	Headers        map[string]string
	ExpectedStatus int
	ExpectedBody   map[string]any
	Validate       func(t *testing.T, w *httptest.ResponseRecorder)
}

// RunHTTPTestCases runs each case as a subtest against the engine.
func RunHTTPTestCases(t *testing.T, engine *gin.Engine, cases []HTTPTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, engine, tc)
		})
	}
}

// RunHTTPTestCase serves one request and checks status and top-level body keys.
func RunHTTPTestCase(t *testing.T, engine *gin.Engine, tc HTTPTestCase) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	switch {
	case tc.RawBody != "":
		body = bytes.NewBufferString(tc.RawBody)
	case tc.Body != nil:
		body = ToJSONReader(t, tc.Body)
	}

	method := tc.Method
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, tc.Path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range tc.Headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, w.Code, "Unexpected status code: %s", w.Body.String())
	}

	if tc.ExpectedBody != nil {
		actual := DecodeJSON(t, w)
		for key, expected := range tc.ExpectedBody {
			assert.Equal(t, expected, actual[key], "Unexpected value for key: %s", key)
		}
	}

	if tc.Validate != nil {
		tc.Validate(t, w)
	}
	return w
}

// DecodeJSON parses the recorded body as a JSON object.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var result map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), "Failed to parse JSON response: %s", w.Body.String())
	return result
}

// DecodeJSONAs parses the recorded body into T.
func DecodeJSONAs[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var result T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), "Failed to parse JSON response")
	return result
}

// AssertSuccessResponse asserts the body is a successful dashboard envelope.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	resp := DecodeJSON(t, w)
	assert.Equal(t, true, resp["success"], "Expected success to be true")
	assert.Nil(t, resp["error"], "Expected no error")
	return resp
}

// AssertErrorResponse asserts the body is a failed dashboard envelope with code.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) map[string]any {
	t.Helper()

	resp := DecodeJSON(t, w)
	assert.Equal(t, false, resp["success"], "Expected success to be false")

	errMap, ok := resp["error"].(map[string]any)
	require.True(t, ok, "Expected error object in response")
	assert.Equal(t, expectedCode, errMap["code"], "Unexpected error code")
	return errMap
}

// ToJSONReader converts a value to a JSON io.Reader.
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
