package quota

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "absent", raw: "", want: 0},
		{name: "zero", raw: "0", want: 0},
		{name: "two", raw: "2", want: 2},
		{name: "padded", raw: " 1 ", want: 1},
		{name: "garbage", raw: "abc", want: 0},
		{name: "negative", raw: "-5", want: 0},
		{name: "float", raw: "1.5", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCount(tt.raw); got != tt.want {
				t.Fatalf("ParseCount(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAdmitBoundary(t *testing.T) {
	for count := 0; count < Limit; count++ {
		if !(State{Count: count, Limit: Limit}).Admit() {
			t.Fatalf("count %d should be admitted", count)
		}
	}
	if (State{Count: Limit, Limit: Limit}).Admit() {
		t.Fatalf("count %d should be rejected", Limit)
	}
	if (State{Count: Limit + 1, Limit: Limit}).Admit() {
		t.Fatalf("count %d should be rejected", Limit+1)
	}
}

func TestNextIncrementsByOne(t *testing.T) {
	s := State{Count: 0, Limit: Limit}
	for i := 1; i <= Limit; i++ {
		s = s.Next()
		if s.Count != i {
			t.Fatalf("expected count %d after %d increments, got %d", i, i, s.Count)
		}
	}
}

func TestRemaining(t *testing.T) {
	if got := (State{Count: 1, Limit: 3}).Remaining(); got != 2 {
		t.Fatalf("expected 2 remaining, got %d", got)
	}
	if got := (State{Count: 5, Limit: 3}).Remaining(); got != 0 {
		t.Fatalf("expected 0 remaining for over-limit count, got %d", got)
	}
}

func TestFromRequestMalformedCookieReadsAsZero(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/analyze", nil)
	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-number"})

	s := FromRequest(c)
	if s.Count != 0 {
		t.Fatalf("expected malformed cookie to read as 0, got %d", s.Count)
	}
	if !s.Admit() {
		t.Fatal("expected malformed cookie state to admit")
	}
}

func TestWriteSetsCookieWithWindowAndPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/analyze", nil)

	Write(c, State{Count: 2, Limit: Limit})

	res := rec.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != CookieName {
		t.Fatalf("expected cookie %s, got %s", CookieName, cookie.Name)
	}
	if cookie.Value != "2" {
		t.Fatalf("expected cookie value 2, got %s", cookie.Value)
	}
	if cookie.MaxAge != CookieMaxAge {
		t.Fatalf("expected max age %d, got %d", CookieMaxAge, cookie.MaxAge)
	}
	if cookie.Path != "/" {
		t.Fatalf("expected path /, got %s", cookie.Path)
	}
	if cookie.HttpOnly {
		t.Fatal("cookie must be readable by client-side logic")
	}
}
