package shareimpl

import (
	"context"
	"fmt"
	"io"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/reels-client/internal/share"
	"github.com/orgball2608/reels-client/pkg/config"
	"github.com/orgball2608/reels-client/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// New picks the Telegram sharer when a bot token is configured and falls
// back to printing the share message on stdout.
func New(opts Opts) (share.Client, error) {
	if opts.Config.Telegram.Token == "" {
		return NewTerminal(os.Stdout), nil
	}
	return NewTelegram(opts)
}

type TerminalImpl struct {
	out io.Writer
}

func NewTerminal(out io.Writer) *TerminalImpl {
	return &TerminalImpl{out: out}
}

var _ share.Client = (*TerminalImpl)(nil)

func (t *TerminalImpl) Share(_ context.Context, message string) error {
	_, err := fmt.Fprintf(t.out, "[share] %s\n", message)
	return err
}

// sender is the part of tgbotapi.BotAPI we use.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramImpl struct {
	bot    sender
	chatID int64
	logger logger.Logger
}

func NewTelegram(opts Opts) (*TelegramImpl, error) {
	if opts.Config.Telegram.ChatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	bot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		opts.Logger.Error("Error creating bot", "error", err)
		return nil, err
	}

	return &TelegramImpl{
		bot:    bot,
		chatID: opts.Config.Telegram.ChatID,
		logger: opts.Logger.WithComponent("TelegramShare"),
	}, nil
}

var _ share.Client = (*TelegramImpl)(nil)

func (tg *TelegramImpl) Share(_ context.Context, message string) error {
	msg := tgbotapi.NewMessage(tg.chatID, message)

	sent, err := tg.bot.Send(msg)
	if err != nil {
		tg.logger.Error("Error sending share message", "chat_id", tg.chatID, "error", err)
		return fmt.Errorf("failed to share: %w", err)
	}

	tg.logger.Info("Shared to telegram", "chat_id", tg.chatID, "message_id", sent.MessageID)
	return nil
}
