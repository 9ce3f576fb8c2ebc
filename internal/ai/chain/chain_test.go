package chain

import (
	"context"
	"errors"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	. "github.com/smartystreets/goconvey/convey"

	"myzai/internal/ai/prompt"
	"myzai/internal/model"
)

type fakeChatModel struct {
	input   []*schema.Message
	options *einomodel.Options
	reply   *schema.Message
	err     error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.input = input
	f.options = einomodel.GetCommonOptions(&einomodel.Options{}, opts...)
	return f.reply, f.err
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

type fakeImageModel struct {
	prompt string
	data   []byte
	mime   string
	err    error
}

func (f *fakeImageModel) Generate(_ context.Context, p string) ([]byte, string, error) {
	f.prompt = p
	return f.data, f.mime, f.err
}

func TestLyricsChain(t *testing.T) {
	Convey("LyricsChain.Run", t, func() {
		ctx := context.Background()
		fake := &fakeChatModel{reply: schema.AssistantMessage("[Verse 1]\nneon rain", nil)}
		c := NewLyricsChain(fake, 0)
		cfg := model.LyricsConfig{Topic: "neon", Genre: "Pop", Mood: "Sad", Structure: "V-C"}

		Convey("发送系统指令与提示词，温度 0.7", func() {
			res, err := c.Run(ctx, cfg)
			So(err, ShouldBeNil)
			So(res.Text, ShouldEqual, "[Verse 1]\nneon rain")

			So(len(fake.input), ShouldEqual, 2)
			So(fake.input[0].Role, ShouldEqual, schema.System)
			So(fake.input[0].Content, ShouldEqual, prompt.LyricsSystemInstruction)
			So(fake.input[1].Content, ShouldEqual, prompt.Lyrics(cfg))
			So(*fake.options.Temperature, ShouldAlmostEqual, 0.7, 0.0001)
		})

		Convey("模型返回空文本时使用占位结果", func() {
			fake.reply = schema.AssistantMessage("", nil)
			res, err := c.Run(ctx, cfg)
			So(err, ShouldBeNil)
			So(res.Text, ShouldEqual, NoLyricsGenerated)
		})

		Convey("仅含空白的文本原样返回", func() {
			fake.reply = schema.AssistantMessage("  \n", nil)
			res, err := c.Run(ctx, cfg)
			So(err, ShouldBeNil)
			So(res.Text, ShouldEqual, "  \n")
		})

		Convey("模型错误直接返回", func() {
			fake.err = errors.New("unavailable")
			_, err := c.Run(ctx, cfg)
			So(err, ShouldEqual, fake.err)
		})

		Convey("自定义温度", func() {
			_, err := NewLyricsChain(fake, 1.2).Run(ctx, cfg)
			So(err, ShouldBeNil)
			So(*fake.options.Temperature, ShouldAlmostEqual, 1.2, 0.0001)
		})
	})
}

func TestChatChain(t *testing.T) {
	Convey("ChatChain", t, func() {
		history := []model.ChatMessage{
			{Role: model.RoleModel, Content: model.WelcomeMessage},
			{Role: model.RoleUser, Content: "chords for a sad song?"},
			{Role: model.RoleModel, Content: model.ChatErrorMessage, IsError: true},
			{Role: model.RoleUser, Content: "in A minor"},
		}

		Convey("BuildChatMessages 原样重放历史，错误消息作为模型回合", func() {
			msgs := BuildChatMessages(history, "and a bridge?")
			So(len(msgs), ShouldEqual, 6)
			So(msgs[0].Role, ShouldEqual, schema.System)
			So(msgs[0].Content, ShouldEqual, prompt.ChatSystemInstruction)
			So(msgs[1].Role, ShouldEqual, schema.Assistant)
			So(msgs[1].Content, ShouldEqual, model.WelcomeMessage)
			So(msgs[2].Role, ShouldEqual, schema.User)
			So(msgs[2].Content, ShouldEqual, "chords for a sad song?")
			So(msgs[3].Role, ShouldEqual, schema.Assistant)
			So(msgs[3].Content, ShouldEqual, model.ChatErrorMessage)
			So(msgs[4].Content, ShouldEqual, "in A minor")
			So(msgs[5].Role, ShouldEqual, schema.User)
			So(msgs[5].Content, ShouldEqual, "and a bridge?")
		})

		Convey("未知角色被忽略", func() {
			msgs := BuildChatMessages([]model.ChatMessage{{Role: "tool", Content: "x"}}, "hi")
			So(len(msgs), ShouldEqual, 2)
		})

		Convey("Run 返回模型文本，空文本不视为错误", func() {
			fake := &fakeChatModel{reply: schema.AssistantMessage("", nil)}
			res, err := NewChatChain(fake).Run(context.Background(), history, "hi")
			So(err, ShouldBeNil)
			So(res.Text, ShouldEqual, "")
		})
	})
}

func TestAlbumArtChain(t *testing.T) {
	Convey("AlbumArtChain.Run", t, func() {
		ctx := context.Background()
		fake := &fakeImageModel{data: []byte{1, 2, 3}, mime: "image/jpeg"}
		c := NewAlbumArtChain(fake)

		Convey("返回 data URL", func() {
			art, err := c.Run(ctx, "vaporwave sunset")
			So(err, ShouldBeNil)
			So(fake.prompt, ShouldEqual, "vaporwave sunset")
			So(art.Image.URL, ShouldEqual, "data:image/jpeg;base64,AQID")
			So(art.Image.Prompt, ShouldEqual, "vaporwave sunset")
			So(art.Data, ShouldResemble, []byte{1, 2, 3})
		})

		Convey("未声明 MIME 时默认 image/png", func() {
			fake.mime = ""
			art, err := c.Run(ctx, "p")
			So(err, ShouldBeNil)
			So(strings.HasPrefix(art.Image.URL, "data:image/png;base64,"), ShouldBeTrue)
		})

		Convey("没有图片时返回 ErrNoImage", func() {
			fake.data = nil
			_, err := c.Run(ctx, "p")
			So(err, ShouldEqual, ErrNoImage)
		})

		Convey("模型错误直接返回", func() {
			fake.err = errors.New("quota")
			_, err := c.Run(ctx, "p")
			So(err, ShouldEqual, fake.err)
		})
	})
}
