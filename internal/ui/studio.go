// Package ui 终端版创作工作室：歌词、封面、对话三个页面，F1/F2/F3 切换。
package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"myzai/internal/model"
	"myzai/internal/service"
)

// studioSessionID 终端界面使用固定会话，忙碌标记按操作区分
const studioSessionID = "studio"

const (
	pageLyrics = "lyrics"
	pageArt    = "art"
	pageChat   = "chat"
)

// Backend 工作室调用的服务
type Backend interface {
	GenerateLyrics(ctx context.Context, sessionID string, cfg model.LyricsConfig) (*service.LyricsResult, error)
	GenerateAlbumArt(ctx context.Context, sessionID, prompt string) (*service.ArtResult, error)
	Chat(ctx context.Context, sessionID string, req *service.ChatRequest) (*service.ChatResult, error)
}

// Studio 终端工作室
type Studio struct {
	ctx     context.Context
	backend Backend
	saveDir string

	app    *tview.Application
	pages  *tview.Pages
	header *tview.TextView

	lyrics       *LyricsState
	lyricsForm   *tview.Form
	lyricsOutput *tview.TextView
	lyricsAlert  *tview.TextView

	art       *ArtState
	artForm   *tview.Form
	artOutput *tview.TextView
	artAlert  *tview.TextView

	chat       *ChatState
	transcript *tview.TextView
	chatInput  *tview.InputField
}

// Run 启动终端工作室，ctx 取消或 Ctrl-C 时退出；下载的封面保存到 saveDir
func Run(ctx context.Context, backend Backend, saveDir string) error {
	s := NewStudio(ctx, backend, saveDir)

	go func() {
		<-ctx.Done()
		s.app.Stop()
	}()

	return s.app.SetRoot(s.layout(), true).EnableMouse(true).Run()
}

// NewStudio 创建终端工作室
func NewStudio(ctx context.Context, backend Backend, saveDir string) *Studio {
	s := &Studio{
		ctx:     ctx,
		backend: backend,
		saveDir: saveDir,
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		lyrics:  NewLyricsState(),
		art:     NewArtState(),
		chat:    NewChatState(),
	}

	s.header = tview.NewTextView().SetDynamicColors(true)
	s.pages.
		AddPage(pageLyrics, s.lyricsPage(), true, true).
		AddPage(pageArt, s.artPage(), true, false).
		AddPage(pageChat, s.chatPage(), true, false)

	s.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			s.switchTo(pageLyrics)
			return nil
		case tcell.KeyF2:
			s.switchTo(pageArt)
			return nil
		case tcell.KeyF3:
			s.switchTo(pageChat)
			return nil
		}
		return event
	})

	s.renderHeader(pageLyrics)
	s.renderLyrics()
	s.renderArt()
	s.renderChat()
	return s
}

func (s *Studio) layout() tview.Primitive {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(s.header, 1, 0, false).
		AddItem(s.pages, 0, 1, true)
}

func (s *Studio) switchTo(page string) {
	s.pages.SwitchToPage(page)
	s.renderHeader(page)
	switch page {
	case pageLyrics:
		s.app.SetFocus(s.lyricsForm)
	case pageArt:
		s.app.SetFocus(s.artForm)
	case pageChat:
		s.app.SetFocus(s.chatInput)
	}
}

func (s *Studio) renderHeader(active string) {
	tab := func(key, name, page string) string {
		if page == active {
			return fmt.Sprintf("[black:yellow] %s %s [-:-]", key, name)
		}
		return fmt.Sprintf(" %s %s ", key, name)
	}
	s.header.SetText("[::b]myzAI Studio[::-]  " +
		tab("F1", "Lyrics Studio", pageLyrics) +
		tab("F2", "Album Art", pageArt) +
		tab("F3", "Assistant", pageChat) +
		"  Ctrl-C quit")
}

// --- Lyrics ---

func (s *Studio) lyricsPage() tview.Primitive {
	cfg := s.lyrics.View().Config

	s.lyricsForm = tview.NewForm().
		AddInputField("Topic", "", 40, nil, func(text string) {
			s.lyrics.Update(func(c *model.LyricsConfig) { c.Topic = text })
			s.renderLyrics()
		}).
		AddDropDown("Genre", model.Genres, indexOf(model.Genres, cfg.Genre), func(option string, _ int) {
			s.lyrics.Update(func(c *model.LyricsConfig) { c.Genre = option })
		}).
		AddDropDown("Mood", model.Moods, indexOf(model.Moods, cfg.Mood), func(option string, _ int) {
			s.lyrics.Update(func(c *model.LyricsConfig) { c.Mood = option })
		}).
		AddInputField("Structure", cfg.Structure, 40, nil, func(text string) {
			s.lyrics.Update(func(c *model.LyricsConfig) { c.Structure = text })
		}).
		AddButton("Generate Lyrics", s.generateLyrics)
	s.lyricsForm.SetBorder(true).SetTitle(" Lyrics Studio ")

	s.lyricsAlert = tview.NewTextView().SetDynamicColors(true)
	s.lyricsOutput = tview.NewTextView().SetWordWrap(true).SetScrollable(true)
	s.lyricsOutput.SetBorder(true).SetTitle(" Lyrics ")

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.lyricsForm, 0, 1, true).
		AddItem(s.lyricsAlert, 2, 0, false)
	return tview.NewFlex().
		AddItem(left, 0, 1, true).
		AddItem(s.lyricsOutput, 0, 2, false)
}

func (s *Studio) generateLyrics() {
	cfg, ok := s.lyrics.Start()
	if !ok {
		return
	}
	s.renderLyrics()

	go func() {
		res, err := s.backend.GenerateLyrics(s.ctx, studioSessionID, cfg)
		lyrics := ""
		if err == nil {
			lyrics = res.Lyrics
		} else {
			log.Error().Err(err).Msg("failed to generate lyrics")
		}
		s.lyrics.Finish(lyrics, err)
		s.app.QueueUpdateDraw(s.renderLyrics)
	}()
}

func (s *Studio) renderLyrics() {
	v := s.lyrics.View()
	label := "Generate Lyrics"
	if v.Busy {
		label = "Writing..."
	}
	btn := s.lyricsForm.GetButton(0)
	btn.SetLabel(label)
	btn.SetDisabled(!v.CanGenerate)

	if v.Lyrics == "" {
		s.lyricsOutput.SetText("Your lyrics will appear here.")
	} else {
		s.lyricsOutput.SetText(v.Lyrics).ScrollToBeginning()
	}
	s.lyricsAlert.SetText(alertText(v.Alert))
}

// --- Album art ---

func (s *Studio) artPage() tview.Primitive {
	s.artForm = tview.NewForm().
		AddInputField("Description", "", 50, nil, func(text string) {
			s.art.SetPrompt(text)
			s.renderArt()
		}).
		AddButton("Generate Art", s.generateArt).
		AddButton("Download", s.downloadArt)
	s.artForm.SetBorder(true).SetTitle(" Album Art ")

	s.artAlert = tview.NewTextView().SetDynamicColors(true)
	s.artOutput = tview.NewTextView().SetWordWrap(true)
	s.artOutput.SetBorder(true).SetTitle(" Result ")

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.artForm, 7, 0, true).
		AddItem(s.artAlert, 2, 0, false).
		AddItem(s.artOutput, 0, 1, false)
}

func (s *Studio) generateArt() {
	prompt, ok := s.art.Start()
	if !ok {
		return
	}
	s.renderArt()

	go func() {
		res, err := s.backend.GenerateAlbumArt(s.ctx, studioSessionID, prompt)
		if err != nil {
			log.Error().Err(err).Msg("failed to generate album art")
			s.art.Finish(nil, nil, err)
		} else {
			s.art.Finish(res.Image, res.Data, nil)
		}
		s.app.QueueUpdateDraw(s.renderArt)
	}()
}

func (s *Studio) downloadArt() {
	name, data, ok := s.art.Download(time.Now())
	if !ok {
		return
	}
	path := filepath.Join(s.saveDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to save album art")
		s.artAlert.SetText(alertText("Failed to save " + path))
		return
	}
	s.artAlert.SetText("[green]Saved " + path + "[-]")
}

func (s *Studio) renderArt() {
	v := s.art.View()
	label := "Generate Art"
	if v.Busy {
		label = "Painting..."
	}
	btn := s.artForm.GetButton(0)
	btn.SetLabel(label)
	btn.SetDisabled(!v.CanGenerate)
	s.artForm.GetButton(1).SetDisabled(v.Image == nil)

	if v.Image == nil {
		s.artOutput.SetText("Describe the cover, then Generate. Generated covers can be saved with Download.")
	} else {
		s.artOutput.SetText(fmt.Sprintf("Cover ready (%s, 1:1)\nPrompt: %s", v.Image.MIMEType, v.Image.Prompt))
	}
	s.artAlert.SetText(alertText(v.Alert))
}

// --- Assistant ---

func (s *Studio) chatPage() tview.Primitive {
	s.transcript = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetScrollable(true)
	s.transcript.SetBorder(true).SetTitle(" Assistant ")

	s.chatInput = tview.NewInputField().SetLabel("> ")
	s.chatInput.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			s.sendChat()
		}
	})
	s.chatInput.SetBorder(true)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.transcript, 0, 1, false).
		AddItem(s.chatInput, 3, 0, true)
}

func (s *Studio) sendChat() {
	message := s.chatInput.GetText()
	history, ok := s.chat.Start(message)
	if !ok {
		return
	}
	s.chatInput.SetText("")
	s.renderChat()

	go func() {
		res, err := s.backend.Chat(s.ctx, studioSessionID, &service.ChatRequest{
			Message: message,
			History: history,
		})
		reply := ""
		if err == nil {
			reply = res.Reply.Content
		} else {
			log.Error().Err(err).Msg("chat request failed")
		}
		s.chat.Finish(reply, err)
		s.app.QueueUpdateDraw(s.renderChat)
	}()
}

func (s *Studio) renderChat() {
	v := s.chat.View()

	var b strings.Builder
	for _, m := range v.Messages {
		switch {
		case m.IsError:
			fmt.Fprintf(&b, "[red::b]myzAI:[-::-] [red]%s[-]\n\n", tview.Escape(m.Content))
		case m.Role == model.RoleUser:
			fmt.Fprintf(&b, "[yellow::b]You:[-::-] %s\n\n", tview.Escape(m.Content))
		default:
			fmt.Fprintf(&b, "[green::b]myzAI:[-::-] %s\n\n", tview.Escape(m.Content))
		}
	}
	if v.Busy {
		b.WriteString("[gray]myzAI is thinking...[-]\n")
	}
	s.transcript.SetText(b.String()).ScrollToEnd()
	s.chatInput.SetDisabled(v.Busy)
}

func alertText(alert string) string {
	if alert == "" {
		return ""
	}
	return "[red]" + tview.Escape(alert) + "[-]"
}

func indexOf(options []string, value string) int {
	for i, o := range options {
		if o == value {
			return i
		}
	}
	return 0
}
