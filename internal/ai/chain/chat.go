package chain

import (
	"context"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"myzai/internal/ai/prompt"
	"myzai/internal/model"
)

// ChatChain 头脑风暴对话链
// 每次请求重放完整历史，不在服务端保留会话对象
type ChatChain struct {
	chatModel einomodel.BaseChatModel
}

// NewChatChain 创建对话链
func NewChatChain(chatModel einomodel.BaseChatModel) *ChatChain {
	return &ChatChain{chatModel: chatModel}
}

// Run 在历史之后追加用户消息并返回模型回复
func (c *ChatChain) Run(ctx context.Context, history []model.ChatMessage, message string) (*Result, error) {
	resp, err := c.chatModel.Generate(ctx, BuildChatMessages(history, message))
	if err != nil {
		return nil, err
	}
	return newResult(resp), nil
}

// BuildChatMessages 组装发送给模型的消息
// 历史按原顺序原样重放，错误提示消息同样作为模型回合发送
func BuildChatMessages(history []model.ChatMessage, message string) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(prompt.ChatSystemInstruction))

	for _, h := range history {
		switch h.Role {
		case model.RoleUser:
			messages = append(messages, schema.UserMessage(h.Content))
		case model.RoleModel:
			messages = append(messages, schema.AssistantMessage(h.Content, nil))
		}
	}

	return append(messages, schema.UserMessage(message))
}
