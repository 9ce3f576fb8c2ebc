package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/mongo"

	"myzai/internal/ai"
	"myzai/internal/model"
	"myzai/internal/pkg/inflight"
	"myzai/internal/pkg/storage/local"
)

type fakeAI struct {
	mu         sync.Mutex
	lyricsCfg  model.LyricsConfig
	history    []model.ChatMessage
	message    string
	reply      string
	err        error
	image      *model.GeneratedImage
	data       []byte
	block      chan struct{} // 非空时调用阻塞直到关闭
	started    chan struct{}
	lyricsCall int
}

func (f *fakeAI) wait() {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeAI) GenerateLyrics(_ context.Context, cfg model.LyricsConfig) (string, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lyricsCall++
	f.lyricsCfg = cfg
	if f.err != nil {
		return "", f.err
	}
	return "[Verse 1]\nla la", nil
}

func (f *fakeAI) GenerateAlbumArt(_ context.Context, description string) (*model.GeneratedImage, []byte, error) {
	f.wait()
	if f.err != nil {
		return nil, nil, f.err
	}
	if f.image != nil {
		return f.image, f.data, nil
	}
	return &model.GeneratedImage{URL: "data:image/png;base64,cG5n", Prompt: description, MIMEType: "image/png"}, []byte("png"), nil
}

func (f *fakeAI) ContinueChat(_ context.Context, history []model.ChatMessage, message string) (string, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = history
	f.message = message
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type memConversations struct {
	items map[string]*model.Conversation
}

func newMemConversations() *memConversations {
	return &memConversations{items: map[string]*model.Conversation{}}
}

func (m *memConversations) Create(_ context.Context, conv *model.Conversation) error {
	m.items[conv.ID] = conv
	return nil
}

func (m *memConversations) FindByID(_ context.Context, sessionID, id string) (*model.Conversation, error) {
	conv, ok := m.items[id]
	if !ok || conv.SessionID != sessionID {
		return nil, mongo.ErrNoDocuments
	}
	return conv, nil
}

func (m *memConversations) ListBySession(_ context.Context, sessionID string, _, _ int64) ([]*model.Conversation, error) {
	var out []*model.Conversation
	for _, c := range m.items {
		if c.SessionID == sessionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memConversations) AppendMessages(ctx context.Context, sessionID, id string, msgs ...model.ChatMessage) error {
	conv, err := m.FindByID(ctx, sessionID, id)
	if err != nil {
		return err
	}
	conv.Messages = append(conv.Messages, msgs...)
	return nil
}

func (m *memConversations) Delete(_ context.Context, sessionID, id string) error {
	conv, ok := m.items[id]
	if !ok || conv.SessionID != sessionID {
		return mongo.ErrNoDocuments
	}
	delete(m.items, id)
	return nil
}

type memArtworks struct {
	items map[string]*model.Artwork
	err   error
}

func (m *memArtworks) Create(_ context.Context, art *model.Artwork) error {
	if m.err != nil {
		return m.err
	}
	m.items[art.ID] = art
	return nil
}

func (m *memArtworks) FindByID(_ context.Context, sessionID, id string) (*model.Artwork, error) {
	art, ok := m.items[id]
	if !ok || art.SessionID != sessionID {
		return nil, mongo.ErrNoDocuments
	}
	return art, nil
}

func (m *memArtworks) ListBySession(_ context.Context, sessionID string, _, _ int64) ([]*model.Artwork, int64, error) {
	var out []*model.Artwork
	for _, a := range m.items {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memArtworks) Delete(_ context.Context, sessionID, id string) error {
	if _, err := m.FindByID(context.Background(), sessionID, id); err != nil {
		return err
	}
	delete(m.items, id)
	return nil
}

func TestStudioService_GenerateLyrics(t *testing.T) {
	ctx := context.Background()

	Convey("GenerateLyrics", t, func() {
		fake := &fakeAI{}
		svc := NewStudioService(StudioDeps{AI: fake})

		Convey("主题为空时不调用模型", func() {
			_, err := svc.GenerateLyrics(ctx, "s1", model.LyricsConfig{Topic: "   "})
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			So(fake.lyricsCall, ShouldEqual, 0)
		})

		Convey("填充默认值后调用模型", func() {
			res, err := svc.GenerateLyrics(ctx, "s1", model.LyricsConfig{Topic: "summer rain"})
			So(err, ShouldBeNil)
			So(res.Lyrics, ShouldContainSubstring, "[Verse 1]")
			So(fake.lyricsCfg.Genre, ShouldEqual, model.DefaultGenre)
			So(res.Config.Structure, ShouldEqual, model.DefaultStructure)
		})

		Convey("失败后忙碌标记被释放", func() {
			fake.err = fmt.Errorf("%w: boom", ai.ErrRequestFailed)
			_, err := svc.GenerateLyrics(ctx, "s1", model.LyricsConfig{Topic: "x"})
			So(errors.Is(err, ai.ErrRequestFailed), ShouldBeTrue)

			fake.err = nil
			_, err = svc.GenerateLyrics(ctx, "s1", model.LyricsConfig{Topic: "x"})
			So(err, ShouldBeNil)
		})
	})
}

func TestStudioService_Busy(t *testing.T) {
	ctx := context.Background()

	Convey("同一会话同一操作只允许一个在途请求", t, func() {
		fake := &fakeAI{block: make(chan struct{}), started: make(chan struct{}, 1)}
		svc := NewStudioService(StudioDeps{AI: fake, Guard: inflight.NewMemoryGuard()})

		done := make(chan error, 1)
		go func() {
			_, err := svc.GenerateLyrics(ctx, "s1", model.LyricsConfig{Topic: "first"})
			done <- err
		}()
		<-fake.started

		_, err := svc.GenerateLyrics(ctx, "s1", model.LyricsConfig{Topic: "second"})
		So(errors.Is(err, inflight.ErrBusy), ShouldBeTrue)

		close(fake.block)
		So(<-done, ShouldBeNil)

		fake.started = nil
		_, err = svc.GenerateLyrics(ctx, "s1", model.LyricsConfig{Topic: "third"})
		So(err, ShouldBeNil)
	})
}

func TestStudioService_GenerateAlbumArt(t *testing.T) {
	ctx := context.Background()

	Convey("GenerateAlbumArt", t, func() {
		fake := &fakeAI{}

		Convey("描述为空", func() {
			svc := NewStudioService(StudioDeps{AI: fake})
			_, err := svc.GenerateAlbumArt(ctx, "s1", "")
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("未启用保存时只返回图片", func() {
			svc := NewStudioService(StudioDeps{AI: fake})
			res, err := svc.GenerateAlbumArt(ctx, "s1", "neon city")
			So(err, ShouldBeNil)
			So(res.Image.URL, ShouldStartWith, "data:image/png;base64,")
			So(res.Artwork, ShouldBeNil)
		})

		Convey("没有图片时原样返回 ErrNoImage", func() {
			fake.err = ai.ErrNoImage
			svc := NewStudioService(StudioDeps{AI: fake})
			_, err := svc.GenerateAlbumArt(ctx, "s1", "neon city")
			So(errors.Is(err, ai.ErrNoImage), ShouldBeTrue)
		})

		Convey("启用保存时上传并记录", func() {
			store, err := local.NewLocalStorage(t.TempDir(), "")
			So(err, ShouldBeNil)
			arts := &memArtworks{items: map[string]*model.Artwork{}}
			svc := NewStudioService(StudioDeps{AI: fake, Artworks: arts, Storage: store})

			res, err := svc.GenerateAlbumArt(ctx, "anon:127.0.0.1", "neon city")
			So(err, ShouldBeNil)
			So(res.Artwork, ShouldNotBeNil)
			So(res.Artwork.StorageKey, ShouldStartWith, "artworks/anon_127.0.0.1/")
			So(res.Artwork.StorageKey, ShouldEndWith, ".png")
			So(res.Artwork.FileSize, ShouldEqual, 3)

			art, body, err := svc.OpenArtwork(ctx, "anon:127.0.0.1", res.Artwork.ID)
			So(err, ShouldBeNil)
			defer body.Close()
			data, _ := io.ReadAll(body)
			So(string(data), ShouldEqual, "png")
			So(art.Prompt, ShouldEqual, "neon city")

			Convey("其他会话不可见", func() {
				_, err := svc.GetArtwork(ctx, "other", res.Artwork.ID)
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})

			Convey("删除后不可再打开", func() {
				So(svc.DeleteArtwork(ctx, "anon:127.0.0.1", res.Artwork.ID), ShouldBeNil)
				_, _, err := svc.OpenArtwork(ctx, "anon:127.0.0.1", res.Artwork.ID)
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("保存失败不影响生成结果", func() {
			store, _ := local.NewLocalStorage(t.TempDir(), "")
			arts := &memArtworks{items: map[string]*model.Artwork{}, err: errors.New("mongo down")}
			svc := NewStudioService(StudioDeps{AI: fake, Artworks: arts, Storage: store})

			res, err := svc.GenerateAlbumArt(ctx, "s1", "neon city")
			So(err, ShouldBeNil)
			So(res.Image, ShouldNotBeNil)
			So(res.Artwork, ShouldBeNil)
		})

		Convey("未启用保存时封面管理返回 ErrPersistenceDisabled", func() {
			svc := NewStudioService(StudioDeps{AI: fake})
			_, _, err := svc.ListArtworks(ctx, "s1", 20, 0)
			So(errors.Is(err, ErrPersistenceDisabled), ShouldBeTrue)
		})
	})
}

func TestStudioService_Chat(t *testing.T) {
	ctx := context.Background()

	Convey("Chat", t, func() {
		fake := &fakeAI{reply: "Try a ii-V-I."}

		Convey("消息为空", func() {
			svc := NewStudioService(StudioDeps{AI: fake})
			_, err := svc.Chat(ctx, "s1", &ChatRequest{Message: " "})
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("无状态模式重放请求中的历史", func() {
			svc := NewStudioService(StudioDeps{AI: fake})
			history := []model.ChatMessage{
				{Role: model.RoleModel, Content: model.WelcomeMessage},
				{Role: model.RoleUser, Content: "jazz chords?"},
			}
			res, err := svc.Chat(ctx, "s1", &ChatRequest{Message: "more", History: history})
			So(err, ShouldBeNil)
			So(res.Reply.Role, ShouldEqual, model.RoleModel)
			So(res.Reply.Content, ShouldEqual, "Try a ii-V-I.")
			So(res.Message.Content, ShouldEqual, "more")
			So(fake.history, ShouldResemble, history)
		})

		Convey("历史中的未知角色被拒绝", func() {
			svc := NewStudioService(StudioDeps{AI: fake})
			_, err := svc.Chat(ctx, "s1", &ChatRequest{
				Message: "hi",
				History: []model.ChatMessage{{Role: "system", Content: "x"}},
			})
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("带 conversation_id 但未启用持久化", func() {
			svc := NewStudioService(StudioDeps{AI: fake})
			_, err := svc.Chat(ctx, "s1", &ChatRequest{ConversationID: "c1", Message: "hi"})
			So(errors.Is(err, ErrPersistenceDisabled), ShouldBeTrue)
		})

		Convey("持久化对话", func() {
			convs := newMemConversations()
			svc := NewStudioService(StudioDeps{AI: fake, Conversations: convs})

			conv, err := svc.CreateConversation(ctx, "s1", "")
			So(err, ShouldBeNil)
			So(conv.Title, ShouldEqual, "New session")
			So(conv.Messages, ShouldHaveLength, 1)
			So(conv.Messages[0].Content, ShouldEqual, model.WelcomeMessage)

			_, err = svc.Chat(ctx, "s1", &ChatRequest{ConversationID: conv.ID, Message: "band name?"})
			So(err, ShouldBeNil)
			So(fake.history, ShouldHaveLength, 1)

			got, err := svc.GetConversation(ctx, "s1", conv.ID)
			So(err, ShouldBeNil)
			So(got.Messages, ShouldHaveLength, 3)
			So(got.Messages[1].Content, ShouldEqual, "band name?")
			So(got.Messages[2].Content, ShouldEqual, "Try a ii-V-I.")

			Convey("失败时记录错误消息", func() {
				fake.err = ai.ErrRequestFailed
				_, err := svc.Chat(ctx, "s1", &ChatRequest{ConversationID: conv.ID, Message: "again"})
				So(errors.Is(err, ai.ErrRequestFailed), ShouldBeTrue)

				got, _ := svc.GetConversation(ctx, "s1", conv.ID)
				So(got.Messages, ShouldHaveLength, 5)
				So(got.Messages[4].IsError, ShouldBeTrue)
				So(got.Messages[4].Content, ShouldEqual, model.ChatErrorMessage)
			})

			Convey("其他会话无法访问", func() {
				_, err := svc.Chat(ctx, "s2", &ChatRequest{ConversationID: conv.ID, Message: "hi"})
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})

			Convey("删除对话", func() {
				So(svc.DeleteConversation(ctx, "s1", conv.ID), ShouldBeNil)
				err := svc.DeleteConversation(ctx, "s1", conv.ID)
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})

			Convey("非法 ID 视为不存在", func() {
				_, err := svc.GetConversation(ctx, "s1", "not-a-uuid")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})
	})
}
