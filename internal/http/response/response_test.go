package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code int
		want int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeTooManyRequests, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{CodeServiceUnavailable, http.StatusServiceUnavailable},
		{CodeOK, http.StatusInternalServerError},
		{12345, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := httpStatus(tc.code); got != tc.want {
			t.Fatalf("httpStatus(%d) want %d got %d", tc.code, tc.want, got)
		}
	}
}

func TestErrorWritesRealHTTPStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, CodeNotFound, "not found")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.StatusCode != CodeNotFound || resp.Msg != "not found" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-42")
	Error(c, CodeInternal, "boom")

	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.Data["request_id"] != "req-42" {
		t.Fatalf("expected request_id in data, got: %v", resp.Data)
	}
}

func TestCreatedWrites201(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Created(c, "created", gin.H{"id": 1})

	if w.Code != http.StatusCreated {
		t.Fatalf("status want 201 got %d", w.Code)
	}
}
