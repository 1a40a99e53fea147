// Package bot is a Telegram remote control for the personalizer.
package bot

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"Moodfeed/core"
	"Moodfeed/lib/sl"
	"Moodfeed/mood"
)

const helpText = "You can use the following commands:\n" +
	"/help - show this help\n" +
	"/mood - show the current mood\n" +
	"/setmood <Mood> - switch mood\n" +
	"/suggest - ask for a mood suggestion\n" +
	"/channel <id> - show trust status of a channel\n" +
	"/trust <id> - trust a channel\n" +
	"/block <id> - block a channel\n" +
	"/buffer - show how many recent events are kept"

type TgBot struct {
	conf    *core.Config
	log     *slog.Logger
	api     *tgbotapi.BotAPI
	service core.Personalizer
}

func NewTgBot(conf *core.Config, service core.Personalizer, log *slog.Logger) (*TgBot, error) {
	api, err := tgbotapi.NewBotAPI(conf.Telegram.ApiKey)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &TgBot{
		conf:    conf,
		log:     log.With(sl.Module("bot")),
		api:     api,
		service: service,
	}, nil
}

// Start long-polls for updates until Stop is called.
func (t *TgBot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates, err := t.api.GetUpdatesChan(u)
	if err != nil {
		return fmt.Errorf("telegram updates: %w", err)
	}
	t.log.Info("bot started", slog.String("username", t.api.Self.UserName))

	for update := range updates {
		incoming := update.Message
		if incoming == nil || !incoming.IsCommand() {
			continue
		}
		chatID := incoming.Chat.ID
		if !t.allowed(chatID) {
			t.log.Debug("ignoring chat", slog.Int64("chat", chatID))
			continue
		}
		t.log.With(
			slog.Int64("chat", chatID),
			slog.String("command", incoming.Command()),
		).Info("command received")
		t.plainResponse(chatID, t.handleCommand(incoming.Command(), incoming.CommandArguments()))
	}
	return nil
}

func (t *TgBot) Stop() {
	t.api.StopReceivingUpdates()
}

func (t *TgBot) allowed(chatID int64) bool {
	return t.conf.Telegram.AllowedChatID == 0 || t.conf.Telegram.AllowedChatID == chatID
}

func (t *TgBot) handleCommand(command, args string) string {
	args = strings.TrimSpace(args)
	switch command {
	case "help", "start":
		return helpText
	case "mood":
		return "Current mood: " + t.service.CurrentMood().String()
	case "setmood":
		m, ok := mood.Parse(args)
		if !ok {
			return fmt.Sprintf("Unknown mood %q. Choose one of: %s", args, moodList())
		}
		t.service.SetMood(m.String())
		return "Mood set to " + t.service.CurrentMood().String()
	case "suggest":
		return "Suggested mood: " + t.service.SuggestMoodChange().String()
	case "channel":
		if args == "" {
			return "Usage: /channel <id>"
		}
		status := t.service.ChannelStatus(args)
		return fmt.Sprintf("Channel %s: trusted=%t blocked=%t", args, status.Trusted, status.Blocked)
	case "trust":
		return t.channelEvent(args, "trust_channel", "trusted")
	case "block":
		return t.channelEvent(args, "block_channel", "blocked")
	case "buffer":
		return fmt.Sprintf("Events in buffer: %d", t.service.BufferSize())
	default:
		return "Unknown command, try /help"
	}
}

// channelEvent routes list changes through the event path, keeping the
// current mood so the command does not switch it.
func (t *TgBot) channelEvent(channelID, eventType, verb string) string {
	if channelID == "" {
		return "Usage: /" + strings.TrimSuffix(eventType, "_channel") + " <id>"
	}
	t.service.ProcessEvent(core.Event{
		ChannelID: channelID,
		Type:      eventType,
		Mood:      t.service.CurrentMood().String(),
	})
	return fmt.Sprintf("Channel %s %s", channelID, verb)
}

func (t *TgBot) plainResponse(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		t.log.Error("sending message", sl.Err(err))
	}
}

func moodList() string {
	names := make([]string, 0, len(mood.All()))
	for _, m := range mood.All() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}
