package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-be/internal/apperror"
	"fintrack-be/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespond(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, w := testContext("/")
		respond(c, http.StatusCreated, gin.H{"name": "Food"}, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.JSONEq(t, `{"name":"Food"}`, string(body["response"]))
		assert.Equal(t, "null", string(body["errorMessage"]))
	})

	t.Run("nil pointer value serializes as null", func(t *testing.T) {
		c, w := testContext("/")
		var dto *models.CategoryDTO
		respond(c, http.StatusOK, dto, apperror.CategoryNotFound())

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "null", string(body["response"]))
		assert.JSONEq(t, `{"message":"Category not found!","errorCode":"CategoryNotFound","status":"not-found"}`, string(body["errorMessage"]))
	})

	t.Run("value alongside error", func(t *testing.T) {
		c, w := testContext("/")
		respond(c, http.StatusCreated, gin.H{"id": 1}, apperror.EmailNotificationFailed(errors.New("broker down")))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body models.RequestResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotNil(t, body.Response)
		require.NotNil(t, body.ErrorMessage)
		assert.Equal(t, "EmailNotificationFailed", body.ErrorMessage.ErrorCode)
		assert.Len(t, c.Errors, 1)
	})

	t.Run("unclassified error becomes technical error", func(t *testing.T) {
		c, w := testContext("/")
		respond(c, http.StatusOK, nil, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body models.RequestResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.NotNil(t, body.ErrorMessage)
		assert.Equal(t, "TechnicalError", body.ErrorMessage.ErrorCode)
		assert.Equal(t, "internal-error", body.ErrorMessage.Status)
		assert.NotContains(t, body.ErrorMessage.Message, "boom")
	})
}

func TestPagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, _ := testContext("/categories")
		q, ok := pagination(c)
		require.True(t, ok)
		assert.Equal(t, models.PaginationSearchQuery{Page: 1, PageSize: 10}, q)
	})

	t.Run("explicit values", func(t *testing.T) {
		c, _ := testContext("/categories?page=3&pageSize=25&search=foo+bar")
		q, ok := pagination(c)
		require.True(t, ok)
		assert.Equal(t, models.PaginationSearchQuery{Page: 3, PageSize: 25, Search: "foo bar"}, q)
	})

	t.Run("zero values are passed through for the service to reject", func(t *testing.T) {
		c, _ := testContext("/categories?page=0&pageSize=0")
		q, ok := pagination(c)
		require.True(t, ok)
		assert.Equal(t, 0, q.Page)
		assert.Equal(t, 0, q.PageSize)
	})

	for _, target := range []string{"/categories?page=abc", "/categories?pageSize=1.5"} {
		t.Run("malformed "+target, func(t *testing.T) {
			c, w := testContext(target)
			_, ok := pagination(c)
			assert.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body models.RequestResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.NotNil(t, body.ErrorMessage)
			assert.Equal(t, "InvalidRequest", body.ErrorMessage.ErrorCode)
		})
	}
}

func TestTransactionQuery(t *testing.T) {
	categoryID := uuid.New()
	c, _ := testContext("/expenses?from=2024-01-01&to=2024-01-31&categoryId=" + categoryID.String())

	q, ok := transactionQuery(c)
	require.True(t, ok)
	require.NotNil(t, q.From)
	require.NotNil(t, q.To)
	require.NotNil(t, q.CategoryID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *q.From)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), *q.To)
	assert.Equal(t, categoryID, *q.CategoryID)
	assert.Equal(t, 1, q.Page)

	for _, target := range []string{
		"/expenses?from=01-01-2024",
		"/expenses?to=2024-13-01",
		"/expenses?categoryId=nope",
		"/expenses?page=x",
	} {
		t.Run(target, func(t *testing.T) {
			c, w := testContext(target)
			_, ok := transactionQuery(c)
			assert.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestPathID(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		c.String(http.StatusOK, id.String())
	})

	id := uuid.New()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/123", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBindingMessage(t *testing.T) {
	type body struct {
		Name string `json:"name" binding:"required"`
	}
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var b body
		if !bindJSON(c, &b) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	for name, tc := range map[string]struct {
		payload string
		message string
	}{
		"missing field": {`{}`, "The name field failed the required check!"},
		"malformed":     {`{"name":`, "Invalid request body!"},
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.payload))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp models.RequestResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.ErrorMessage)
			assert.Equal(t, tc.message, resp.ErrorMessage.Message)
		})
	}
}
