// Package prompt 构建发送给模型的提示词与系统指令
package prompt

import (
	"fmt"

	"myzai/internal/model"
)

// 系统指令
const (
	LyricsSystemInstruction = "You are a world-class songwriter and music producer."
	ChatSystemInstruction   = "You are a helpful music theory expert, audio engineer, and band manager. Keep answers concise and related to music."
)

const lyricsTemplate = `Act as a professional songwriter. Write lyrics for a song with the following details:
Topic: %s
Genre: %s
Mood: %s
Structure: %s

Output only the lyrics with section headers (e.g., [Verse 1], [Chorus]).
Do not include conversational filler.`

// Lyrics 构建歌词提示词，字段原样拼入
func Lyrics(cfg model.LyricsConfig) string {
	return fmt.Sprintf(lyricsTemplate, cfg.Topic, cfg.Genre, cfg.Mood, cfg.Structure)
}
