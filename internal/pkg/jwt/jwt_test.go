package jwt

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJWT(t *testing.T) {
	Convey("会话令牌签发与校验", t, func() {
		j := NewJWT("secret", time.Hour)

		Convey("签发的令牌可以校验并还原会话 ID", func() {
			token, expiresAt, err := j.GenerateToken("session-1")
			So(err, ShouldBeNil)
			So(expiresAt, ShouldHappenAfter, time.Now())

			claims, err := j.ValidateToken(token)
			So(err, ShouldBeNil)
			So(claims.SessionID, ShouldEqual, "session-1")
		})

		Convey("不同密钥签发的令牌无效", func() {
			token, _, err := NewJWT("other", time.Hour).GenerateToken("session-1")
			So(err, ShouldBeNil)

			_, err = j.ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("过期令牌返回 ErrExpiredToken", func() {
			token, _, err := NewJWT("secret", -time.Minute).GenerateToken("session-1")
			So(err, ShouldBeNil)

			_, err = j.ValidateToken(token)
			So(err, ShouldEqual, ErrExpiredToken)
		})

		Convey("非法字符串", func() {
			_, err := j.ValidateToken("not-a-token")
			So(err, ShouldEqual, ErrInvalidToken)
		})
	})
}
