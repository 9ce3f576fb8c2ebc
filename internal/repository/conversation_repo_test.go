package repository

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/mongo"

	"myzai/internal/model"
)

func TestConversationRepo(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepo(db)
	ctx := context.Background()

	Convey("ConversationRepo", t, func() {
		conv := &model.Conversation{ID: "c-1", SessionID: "s-1", Title: "夜曲"}
		So(repo.Create(ctx, conv), ShouldBeNil)
		Reset(func() {
			_ = repo.Delete(ctx, "s-1", "c-1")
			_ = repo.Delete(ctx, "s-1", "c-2")
		})

		Convey("Create 补齐时间戳和空消息列表", func() {
			So(conv.CreatedAt.IsZero(), ShouldBeFalse)
			So(conv.UpdatedAt, ShouldEqual, conv.CreatedAt)

			got, err := repo.FindByID(ctx, "s-1", "c-1")
			So(err, ShouldBeNil)
			So(got.Title, ShouldEqual, "夜曲")
			So(got.Messages, ShouldBeEmpty)
		})

		Convey("FindByID 不跨会话", func() {
			_, err := repo.FindByID(ctx, "s-2", "c-1")
			So(err, ShouldEqual, mongo.ErrNoDocuments)
		})

		Convey("AppendMessages 按顺序追加", func() {
			now := time.Now()
			So(repo.AppendMessages(ctx, "s-1", "c-1",
				model.ChatMessage{ID: "m1", Role: model.RoleUser, Content: "写一首歌", Timestamp: now},
				model.ChatMessage{ID: "m2", Role: model.RoleModel, Content: "好的", Timestamp: now},
			), ShouldBeNil)
			So(repo.AppendMessages(ctx, "s-1", "c-1",
				model.ChatMessage{ID: "m3", Role: model.RoleModel, Content: model.ChatErrorMessage, IsError: true, Timestamp: now},
			), ShouldBeNil)

			got, err := repo.FindByID(ctx, "s-1", "c-1")
			So(err, ShouldBeNil)
			So(len(got.Messages), ShouldEqual, 3)
			So(got.Messages[0].ID, ShouldEqual, "m1")
			So(got.Messages[1].ID, ShouldEqual, "m2")
			So(got.Messages[2].ID, ShouldEqual, "m3")
			So(got.Messages[2].IsError, ShouldBeTrue)
			So(got.UpdatedAt.Before(conv.CreatedAt.Truncate(time.Millisecond)), ShouldBeFalse)
		})

		Convey("AppendMessages 目标不存在返回 ErrNoDocuments", func() {
			err := repo.AppendMessages(ctx, "s-2", "c-1", model.ChatMessage{ID: "m1", Role: model.RoleUser})
			So(err, ShouldEqual, mongo.ErrNoDocuments)
		})

		Convey("ListBySession 只返回本会话且不含消息", func() {
			So(repo.AppendMessages(ctx, "s-1", "c-1", model.ChatMessage{ID: "m1", Role: model.RoleUser, Content: "hi"}), ShouldBeNil)
			So(repo.Create(ctx, &model.Conversation{ID: "c-2", SessionID: "s-2", Title: "别人的"}), ShouldBeNil)
			Reset(func() { _ = repo.Delete(ctx, "s-2", "c-2") })

			list, err := repo.ListBySession(ctx, "s-1", 10, 0)
			So(err, ShouldBeNil)
			So(len(list), ShouldEqual, 1)
			So(list[0].ID, ShouldEqual, "c-1")
			So(list[0].Messages, ShouldBeEmpty)
		})

		Convey("Delete 目标不存在返回 ErrNoDocuments", func() {
			So(repo.Delete(ctx, "s-1", "c-1"), ShouldBeNil)
			So(repo.Delete(ctx, "s-1", "c-1"), ShouldEqual, mongo.ErrNoDocuments)
		})
	})
}
