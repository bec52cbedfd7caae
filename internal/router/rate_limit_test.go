package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"username":" Desk.Editor "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("username")(c)
	if key != "desk.editor|1.2.3.4" {
		t.Fatalf("key want desk.editor|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Desk.Editor") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestRateLimitMiddlewareBlocksAfterLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := gin.New()
	rule := RateLimitRule{Prefix: "jn:rate:react", WindowSeconds: 60, MaxRequests: 2, Message: "too many reactions"}
	r.POST("/articles/:id/reactions", RateLimitMiddleware(client, rule, KeyByVisitorAndParam("id")), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})

	react := func(articleID, visitor string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/articles/"+articleID+"/reactions", nil)
		req.Header.Set("X-Visitor-ID", visitor)
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := react("5", "abc"); strings.Contains(w.Body.String(), `"status_code":429`) {
			t.Fatalf("request %d should pass, got %s", i+1, w.Body.String())
		}
	}
	w := react("5", "abc")
	if !strings.Contains(w.Body.String(), `"status_code":429`) {
		t.Fatalf("third request should be limited, got %s", w.Body.String())
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("limited response should carry Retry-After")
	}
	if !strings.Contains(w.Body.String(), "too many reactions") {
		t.Fatalf("limited response should carry rule message, got %s", w.Body.String())
	}

	if w := react("6", "abc"); strings.Contains(w.Body.String(), `"status_code":429`) {
		t.Fatalf("another article should have its own counter, got %s", w.Body.String())
	}
	if w := react("5", "xyz"); strings.Contains(w.Body.String(), `"status_code":429`) {
		t.Fatalf("another visitor should have its own counter, got %s", w.Body.String())
	}
	if !mr.Exists("jn:rate:react:v:abc|5") {
		t.Fatalf("counter key should be prefixed by rule, keys=%v", mr.Keys())
	}
}

func TestKeyByVisitorAndParamFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/articles/9/reactions", nil)
	c.Request.RemoteAddr = "5.6.7.8:1000"
	c.Params = gin.Params{{Key: "id", Value: "9"}}

	if key := KeyByVisitorAndParam("id")(c); key != "ip:5.6.7.8|9" {
		t.Fatalf("key want ip:5.6.7.8|9 got %s", key)
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "uint8", input: uint8(12), want: 12, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
