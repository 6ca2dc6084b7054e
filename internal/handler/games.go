package handler

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"telegram-minigame-bot/internal/config"
	"telegram-minigame-bot/internal/game"
	"telegram-minigame-bot/internal/game/avoid"
	"telegram-minigame-bot/internal/game/story"
	"telegram-minigame-bot/internal/game/tictactoe"
)

// GamesHandler handles mini-game commands and button callbacks.
type GamesHandler struct {
	cfg      *config.Config
	registry *game.Registry
	bot      *tele.Bot

	// messages tracks the chat message of each live session so the expiry
	// notifier can edit it to the "time's up" view.
	messages   map[string]*tele.Message
	messagesMu sync.Mutex
}

// NewGamesHandler creates a GamesHandler.
func NewGamesHandler(cfg *config.Config, registry *game.Registry) *GamesHandler {
	return &GamesHandler{
		cfg:      cfg,
		registry: registry,
		messages: make(map[string]*tele.Message),
	}
}

// Bind attaches the handler to a bot instance and installs the expiry
// notifier. Must be called before the bot starts polling.
func (h *GamesHandler) Bind(b *tele.Bot) {
	h.bot = b
	h.registry.SetNotifier(h.onExpiry)
}

// HandleTrashAvoid handles the /trashavoid command.
func (h *GamesHandler) HandleTrashAvoid(c tele.Context) error {
	return h.startSession(c, avoid.Kind, nil)
}

// HandleTrashStory handles the /trashstory command.
func (h *GamesHandler) HandleTrashStory(c tele.Context) error {
	return h.startSession(c, story.Kind, nil)
}

// HandleTicTacToe handles the /tictactoe command. It starts the difficulty
// picker; the game session is created when a difficulty is chosen.
func (h *GamesHandler) HandleTicTacToe(c tele.Context) error {
	return h.startSession(c, tictactoe.PickKind, nil)
}

// startSession creates a session for the sender and sends its opening view.
func (h *GamesHandler) startSession(c tele.Context, kind string, params map[string]any) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	id, opening, err := h.registry.Create(actorID(sender), kind, params)
	if err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("Failed to create session")
		return c.Reply("❌ Could not start the game, please try again.")
	}

	msg, err := c.Bot().Send(c.Chat(), opening.Text, Markup(kind, id, opening))
	if err != nil {
		// The session stays live until its own deadline; nothing to undo.
		return err
	}
	h.track(id, msg)
	return nil
}

// HandleGameCallback handles every mini-game button press.
func (h *GamesHandler) HandleGameCallback(c tele.Context) error {
	callback := c.Callback()
	sender := c.Sender()
	if callback == nil || sender == nil {
		return nil
	}

	// Telebot v3 may add a \f prefix to callback data.
	data := strings.TrimPrefix(callback.Data, "\f")
	kind, sessionID, action := DecodeCallback(data)
	if kind == "" {
		return nil
	}

	d, err := h.registry.Submit(sessionID, actorID(sender), action)
	switch {
	case errors.Is(err, game.ErrForbidden):
		return c.Respond(&tele.CallbackResponse{Text: "This isn't your game, chill!"})
	case errors.Is(err, game.ErrNotFound):
		return c.Respond(&tele.CallbackResponse{Text: "The game is over!"})
	case errors.Is(err, game.ErrInvalidMove):
		return c.Respond(&tele.CallbackResponse{Text: "You can't do that here."})
	case err != nil:
		log.Error().Err(err).Str("session_id", sessionID).Msg("Action failed")
		return c.Respond(&tele.CallbackResponse{Text: "Something went wrong."})
	}

	// A finished difficulty pick chains straight into the game it selected.
	if kind == tictactoe.PickKind && d.Terminal {
		return h.startGameFromPick(c, callback, sessionID, action)
	}

	if _, err := c.Bot().Edit(callback.Message, d.Text, Markup(kind, sessionID, d)); err != nil {
		log.Debug().Err(err).Str("session_id", sessionID).Msg("Failed to edit game message")
	}
	if d.Terminal {
		h.untrack(sessionID)
	}
	return c.Respond(&tele.CallbackResponse{})
}

// startGameFromPick replaces a finished difficulty picker with the
// tic-tac-toe session it selected. The chosen action is the difficulty.
func (h *GamesHandler) startGameFromPick(c tele.Context, callback *tele.Callback, pickID, difficulty string) error {
	h.untrack(pickID)

	sender := c.Sender()
	id, opening, err := h.registry.Create(actorID(sender), tictactoe.Kind,
		map[string]any{"difficulty": difficulty})
	if err != nil {
		log.Warn().Err(err).Str("difficulty", difficulty).Msg("Failed to create tictactoe session")
		_, _ = c.Bot().Edit(callback.Message, "❌ Could not start the game, please try again.")
		return c.Respond(&tele.CallbackResponse{})
	}

	msg, err := c.Bot().Edit(callback.Message, opening.Text, Markup(tictactoe.Kind, id, opening))
	if err == nil && msg != nil {
		h.track(id, msg)
	}
	return c.Respond(&tele.CallbackResponse{})
}

// onExpiry edits a timed-out session's message to its final view.
func (h *GamesHandler) onExpiry(sessionID, kind string, d game.RenderDirective) {
	h.messagesMu.Lock()
	msg, ok := h.messages[sessionID]
	delete(h.messages, sessionID)
	h.messagesMu.Unlock()
	if !ok || h.bot == nil {
		return
	}

	if _, err := h.bot.Edit(msg, d.Text, Markup(kind, sessionID, d)); err != nil {
		log.Debug().Err(err).Str("session_id", sessionID).Msg("Failed to edit expired game message")
	}
}

func (h *GamesHandler) track(sessionID string, msg *tele.Message) {
	h.messagesMu.Lock()
	defer h.messagesMu.Unlock()
	h.messages[sessionID] = msg
}

func (h *GamesHandler) untrack(sessionID string) {
	h.messagesMu.Lock()
	defer h.messagesMu.Unlock()
	delete(h.messages, sessionID)
}

// actorID formats a Telegram user as an opaque session owner id.
func actorID(u *tele.User) string {
	return strconv.FormatInt(u.ID, 10)
}
