package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/windoze95/saltybytes-planner/internal/config"
)

const testSecret = "test-secret-key-for-jwt-signing"

func init() {
	gin.SetMode(gin.TestMode)
}

func makeTestToken(claims jwt.MapClaims, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, _ := token.SignedString([]byte(secret))
	return s
}

func setupIdentityRouter(captured *string) *gin.Engine {
	cfg := &config.Config{
		EnvVars: config.EnvVars{
			JwtSecretKey: testSecret,
		},
	}

	r := gin.New()
	r.Use(ClientIdentity(cfg))
	r.GET("/test", func(c *gin.Context) {
		val, _ := c.Get("client_id")
		*captured, _ = val.(string)
		c.JSON(http.StatusOK, gin.H{"client_id": val})
	})
	return r
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestClientIdentity_IssuesCookieOnFirstVisit(t *testing.T) {
	var clientID string
	r := setupIdentityRouter(&clientID)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if clientID == "" {
		t.Fatal("client_id not set in context")
	}
	cookie := responseCookie(w, ClientCookie)
	if cookie == nil {
		t.Fatal("client cookie not set")
	}
	if !cookie.HttpOnly {
		t.Error("client cookie should be HttpOnly")
	}
	got, err := ParseClientToken(testSecret, cookie.Value)
	if err != nil {
		t.Fatalf("ParseClientToken error: %v", err)
	}
	if got != clientID {
		t.Errorf("cookie client_id = %q, want %q", got, clientID)
	}
}

func TestClientIdentity_KeepsValidCookie(t *testing.T) {
	var clientID string
	r := setupIdentityRouter(&clientID)

	token, err := IssueClientToken(testSecret, "client-42", time.Hour)
	if err != nil {
		t.Fatalf("IssueClientToken error: %v", err)
	}
	req := httptest.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if clientID != "client-42" {
		t.Errorf("client_id = %q, want client-42", clientID)
	}
	if responseCookie(w, ClientCookie) != nil {
		t.Error("a valid cookie should not be reissued")
	}
}

func TestClientIdentity_ReplacesInvalidCookies(t *testing.T) {
	cases := map[string]string{
		"garbage":      "invalid.token.here",
		"wrong secret": makeTestToken(jwt.MapClaims{"client_id": "x", "type": TokenTypeClient, "exp": time.Now().Add(time.Hour).Unix()}, "wrong-secret"),
		"expired":      makeTestToken(jwt.MapClaims{"client_id": "x", "type": TokenTypeClient, "exp": time.Now().Add(-time.Hour).Unix()}, testSecret),
		"session type": makeTestToken(jwt.MapClaims{"client_id": "x", "session_id": "s", "type": TokenTypeSession, "exp": time.Now().Add(time.Hour).Unix()}, testSecret),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			var clientID string
			r := setupIdentityRouter(&clientID)

			req := httptest.NewRequest("GET", "/test", nil)
			req.AddCookie(&http.Cookie{Name: ClientCookie, Value: token})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if clientID == "" || clientID == "x" {
				t.Errorf("client_id = %q, want a fresh id", clientID)
			}
			if responseCookie(w, ClientCookie) == nil {
				t.Error("invalid cookie should be replaced")
			}
		})
	}
}

func TestParseSessionToken(t *testing.T) {
	token, err := IssueSessionToken(testSecret, "sess-1", "client-1", time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken error: %v", err)
	}
	claims, err := ParseSessionToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseSessionToken error: %v", err)
	}
	if claims.SessionID != "sess-1" || claims.ClientID != "client-1" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ParseSessionToken("wrong-secret", token); err == nil {
		t.Error("token signed with another secret should be rejected")
	}

	clientToken, _ := IssueClientToken(testSecret, "client-1", time.Hour)
	if _, err := ParseSessionToken(testSecret, clientToken); err == nil {
		t.Error("client token should be rejected as a session token")
	}

	noSession := makeTestToken(jwt.MapClaims{"client_id": "c", "type": TokenTypeSession, "exp": time.Now().Add(time.Hour).Unix()}, testSecret)
	if _, err := ParseSessionToken(testSecret, noSession); err == nil {
		t.Error("session token without session_id should be rejected")
	}
}

func TestRateLimitByIP_RejectsBurst(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitByIP(2, time.Minute, time.Minute))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes[i] = w.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first two requests = %v, want 200", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want %d", codes[2], http.StatusTooManyRequests)
	}
}

func TestRateLimitByIP_ConcurrentRequests(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitByIP(1000, time.Millisecond, time.Minute))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest("GET", "/test", nil)
			req.RemoteAddr = "10.0.0.2:1234"
			r.ServeHTTP(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()
}

func TestLimiterInfo_Idle(t *testing.T) {
	info := newLimiterInfo(1)
	info.lastSeen.Store(time.Now().Add(-time.Hour).UnixNano())
	if info.idle() < time.Hour {
		t.Errorf("idle = %v, want at least 1h", info.idle())
	}
	info.touch()
	if info.idle() > time.Minute {
		t.Errorf("idle after touch = %v", info.idle())
	}
}

func TestRateLimitByClient_SeparatesClients(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("client_id", c.GetHeader("X-Test-Client"))
		c.Next()
	})
	r.Use(RateLimitByClient(1, time.Minute, time.Minute))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(client string) int {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Test-Client", client)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	if code := do("a"); code != http.StatusOK {
		t.Errorf("a first = %d", code)
	}
	if code := do("b"); code != http.StatusOK {
		t.Errorf("b first = %d, want its own limiter", code)
	}
	if code := do("a"); code != http.StatusTooManyRequests {
		t.Errorf("a second = %d, want %d", code, http.StatusTooManyRequests)
	}
}
