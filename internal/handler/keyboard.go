// Package handler provides the Telegram command and callback handlers that
// connect the session registry to the chat transport.
package handler

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"telegram-minigame-bot/internal/game"
)

const (
	// CallbackPrefix marks all mini-game callback data.
	CallbackPrefix = "mg|"
)

// EncodeCallback encodes a game kind, session id and action payload into
// callback data. Session ids are 32 hex chars and action payloads are short,
// so the result stays inside Telegram's 64-byte callback data budget.
func EncodeCallback(kind, sessionID, action string) string {
	return fmt.Sprintf("%s%s|%s|%s", CallbackPrefix, kind, sessionID, action)
}

// DecodeCallback decodes callback data produced by EncodeCallback.
// Returns empty strings for data that is not mini-game callback data.
func DecodeCallback(data string) (kind, sessionID, action string) {
	if !strings.HasPrefix(data, CallbackPrefix) {
		return "", "", ""
	}
	parts := strings.SplitN(strings.TrimPrefix(data, CallbackPrefix), "|", 3)
	if len(parts) != 3 {
		return "", "", ""
	}
	return parts[0], parts[1], parts[2]
}

// Markup converts a render directive's controls into a Telegram inline
// keyboard addressed at the given session. Telegram has no disabled or
// styled buttons; emphasis lives in the labels and illegal clicks are
// rejected by the session itself.
func Markup(kind, sessionID string, d game.RenderDirective) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([][]tele.InlineButton, 0, len(d.Controls))
	for _, row := range d.Controls {
		btns := make([]tele.InlineButton, 0, len(row))
		for _, ctl := range row {
			btns = append(btns, tele.InlineButton{
				Text: ctl.Label,
				Data: EncodeCallback(kind, sessionID, ctl.Data),
			})
		}
		rows = append(rows, btns)
	}
	markup.InlineKeyboard = rows
	return markup
}
