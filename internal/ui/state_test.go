package ui

import (
	"errors"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"myzai/internal/ai"
	"myzai/internal/model"
)

func TestLyricsState(t *testing.T) {
	Convey("LyricsState", t, func() {
		s := NewLyricsState()

		Convey("默认值", func() {
			v := s.View()
			So(v.Config.Genre, ShouldEqual, model.DefaultGenre)
			So(v.Config.Mood, ShouldEqual, model.DefaultMood)
			So(v.Config.Structure, ShouldEqual, model.DefaultStructure)
		})

		Convey("主题为空时不能提交", func() {
			So(s.View().CanGenerate, ShouldBeFalse)
			_, ok := s.Start()
			So(ok, ShouldBeFalse)

			s.Update(func(cfg *model.LyricsConfig) { cfg.Topic = "   " })
			_, ok = s.Start()
			So(ok, ShouldBeFalse)
		})

		Convey("请求在途时禁用，成功后恢复", func() {
			s.Update(func(cfg *model.LyricsConfig) { cfg.Topic = "midnight drive" })
			cfg, ok := s.Start()
			So(ok, ShouldBeTrue)
			So(cfg.Topic, ShouldEqual, "midnight drive")
			So(s.View().Busy, ShouldBeTrue)
			So(s.View().CanGenerate, ShouldBeFalse)

			_, again := s.Start()
			So(again, ShouldBeFalse)

			s.Finish("[Verse 1]", nil)
			v := s.View()
			So(v.Busy, ShouldBeFalse)
			So(v.CanGenerate, ShouldBeTrue)
			So(v.Lyrics, ShouldEqual, "[Verse 1]")
			So(v.Alert, ShouldBeEmpty)
		})

		Convey("失败后恢复并提示", func() {
			s.Update(func(cfg *model.LyricsConfig) { cfg.Topic = "x" })
			s.Start()
			s.Finish("", ai.ErrRequestFailed)
			v := s.View()
			So(v.Busy, ShouldBeFalse)
			So(v.CanGenerate, ShouldBeTrue)
			So(v.Alert, ShouldEqual, LyricsFailedAlert)

			Convey("再次开始时清除提示", func() {
				s.Start()
				So(s.View().Alert, ShouldBeEmpty)
			})
		})
	})
}

func TestArtState(t *testing.T) {
	Convey("ArtState", t, func() {
		s := NewArtState()
		now := time.UnixMilli(1700000000000)

		Convey("描述为空时不能提交", func() {
			_, ok := s.Start()
			So(ok, ShouldBeFalse)
			_, _, ok = s.Download(now)
			So(ok, ShouldBeFalse)
		})

		Convey("成功后可下载", func() {
			s.SetPrompt("retro synthwave sunset")
			prompt, ok := s.Start()
			So(ok, ShouldBeTrue)
			So(prompt, ShouldEqual, "retro synthwave sunset")
			So(s.View().CanGenerate, ShouldBeFalse)

			s.Finish(&model.GeneratedImage{URL: "data:image/png;base64,eA==", MIMEType: "image/png"}, []byte("x"), nil)
			So(s.View().Busy, ShouldBeFalse)

			name, data, ok := s.Download(now)
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "myzAI-art-1700000000000.png")
			So(data, ShouldResemble, []byte("x"))
		})

		Convey("没有图片", func() {
			s.SetPrompt("p")
			s.Start()
			s.Finish(nil, nil, fmt.Errorf("wrapped: %w", ai.ErrNoImage))
			So(s.View().Alert, ShouldEqual, NoImageAlert)
			So(s.View().CanGenerate, ShouldBeTrue)
		})

		Convey("调用失败", func() {
			s.SetPrompt("p")
			s.Start()
			s.Finish(nil, nil, errors.New("boom"))
			So(s.View().Alert, ShouldEqual, ArtFailedAlert)
		})
	})
}

func TestChatState(t *testing.T) {
	Convey("ChatState", t, func() {
		s := NewChatState()

		Convey("以欢迎语开场", func() {
			v := s.View()
			So(v.Messages, ShouldHaveLength, 1)
			So(v.Messages[0].Role, ShouldEqual, model.RoleModel)
			So(v.Messages[0].Content, ShouldEqual, model.WelcomeMessage)
		})

		Convey("空消息不发送", func() {
			_, ok := s.Start("  ")
			So(ok, ShouldBeFalse)
			So(s.View().Messages, ShouldHaveLength, 1)
		})

		Convey("发送与回复按顺序记录", func() {
			history, ok := s.Start("suggest a chord progression")
			So(ok, ShouldBeTrue)
			So(history, ShouldHaveLength, 1)
			So(s.View().Busy, ShouldBeTrue)

			_, again := s.Start("another")
			So(again, ShouldBeFalse)

			s.Finish("I-V-vi-IV", nil)
			v := s.View()
			So(v.Busy, ShouldBeFalse)
			So(v.Messages, ShouldHaveLength, 3)
			So(v.Messages[1].Role, ShouldEqual, model.RoleUser)
			So(v.Messages[2].Content, ShouldEqual, "I-V-vi-IV")
		})

		Convey("失败时追加错误消息", func() {
			s.Start("hi")
			s.Finish("", ai.ErrRequestFailed)
			v := s.View()
			So(v.Busy, ShouldBeFalse)
			last := v.Messages[len(v.Messages)-1]
			So(last.IsError, ShouldBeTrue)
			So(last.Content, ShouldEqual, model.ChatErrorMessage)

			Convey("错误消息原样随历史返回", func() {
				history, ok := s.Start("retry")
				So(ok, ShouldBeTrue)
				So(history[len(history)-1].IsError, ShouldBeTrue)
				So(history[len(history)-1].Role, ShouldEqual, model.RoleModel)
				So(history[len(history)-1].Content, ShouldEqual, model.ChatErrorMessage)
			})
		})
	})
}
