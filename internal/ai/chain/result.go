package chain

import (
	"github.com/cloudwego/eino/schema"
)

// Result 文本链的输出
type Result struct {
	Text         string
	PromptTokens int // 输入 token 数
	OutputTokens int // 输出 token 数
}

func newResult(msg *schema.Message) *Result {
	if msg == nil {
		return &Result{}
	}
	r := &Result{Text: msg.Content}
	if msg.ResponseMeta != nil && msg.ResponseMeta.Usage != nil {
		r.PromptTokens = msg.ResponseMeta.Usage.PromptTokens
		r.OutputTokens = msg.ResponseMeta.Usage.CompletionTokens
	}
	return r
}
