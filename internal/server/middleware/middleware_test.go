package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"myzai/internal/pkg/ctxutil"
	"myzai/internal/pkg/jwt"
)

func TestSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("Session 中间件", t, func() {
		jwtUtil := jwt.NewJWT("secret", time.Hour)

		var got string
		r := gin.New()
		r.Use(Session(jwtUtil))
		r.GET("/", func(c *gin.Context) {
			got, _ = ctxutil.GetSessionID(c.Request.Context())
			c.Status(http.StatusNoContent)
		})

		serve := func(auth string) int {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.7:51234"
			if auth != "" {
				req.Header.Set("Authorization", auth)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			return w.Code
		}

		Convey("无令牌时回退到客户端IP", func() {
			So(serve(""), ShouldEqual, http.StatusNoContent)
			So(got, ShouldEqual, "anon:10.0.0.7")
		})

		Convey("有效令牌", func() {
			token, _, err := jwtUtil.GenerateToken("sess-1")
			So(err, ShouldBeNil)
			So(serve("Bearer "+token), ShouldEqual, http.StatusNoContent)
			So(got, ShouldEqual, "sess-1")
		})

		Convey("无效令牌返回 401", func() {
			So(serve("Bearer not-a-token"), ShouldEqual, http.StatusUnauthorized)
		})

		Convey("格式错误返回 401", func() {
			So(serve("Basic abc"), ShouldEqual, http.StatusUnauthorized)
		})
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("RequestID 中间件", t, func() {
		var got string
		r := gin.New()
		r.Use(RequestID())
		r.GET("/", func(c *gin.Context) {
			got, _ = ctxutil.GetRequestID(c.Request.Context())
		})

		Convey("沿用请求头中的ID", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, "req-42")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			So(got, ShouldEqual, "req-42")
			So(w.Header().Get(RequestIDHeader), ShouldEqual, "req-42")
		})

		Convey("缺失时生成", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			So(got, ShouldNotBeEmpty)
			So(w.Header().Get(RequestIDHeader), ShouldEqual, got)
		})
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("panic 转换为 500", t, func() {
		r := gin.New()
		r.Use(Recovery())
		r.GET("/", func(c *gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		So(w.Code, ShouldEqual, http.StatusInternalServerError)
		So(w.Body.String(), ShouldContainSubstring, "50001")
	})
}
