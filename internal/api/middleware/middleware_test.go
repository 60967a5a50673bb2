package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issue-hub/internal/dto"
	"issue-hub/internal/pkg/metrics"
	"issue-hub/pkg/errors"
	"issue-hub/pkg/utils"
)

type stubVerifier struct {
	token string
	user  *dto.UserInfo
}

func (s stubVerifier) VerifyToken(token string) (*dto.UserInfo, error) {
	if token != s.token {
		return nil, errors.ErrInvalidToken
	}
	return s.user, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func whoami(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		utils.Error(c, errors.ErrUnauthorized)
		return
	}
	utils.Success(c, user.ID)
}

func TestAuthMiddleware(t *testing.T) {
	verifier := stubVerifier{token: "good", user: &dto.UserInfo{ID: "u-1", Email: "ada@example.com"}}
	r := gin.New()
	r.Use(AuthMiddleware(verifier))
	r.GET("/whoami", whoami)

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"valid bearer token", "Bearer good", `"data":"u-1"`},
		{"no header", "", `"code":401`},
		{"invalid token", "Bearer bad", `"code":401`},
		{"wrong scheme", "Basic good", `"code":401`},
		{"empty bearer", "Bearer ", `"code":401`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tc.want)
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New("test")
	r := gin.New()
	r.Use(MetricsMiddleware(m), AuthMiddleware(stubVerifier{}))
	r.GET("/whoami", whoami)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/whoami", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
