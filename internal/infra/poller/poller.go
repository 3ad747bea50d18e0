package poller

import (
	"errors"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/infra/config"
)

// allowedUpdates типы обновлений, которые обрабатывает бот
var allowedUpdates = []string{"message", "callback_query"}

// NewPoller создаёт Poller в зависимости от режима
func NewPoller(cfg *config.Config) (telebot.Poller, error) {
	bot := cfg.TelegramBot
	if bot.Mode == config.ModeWebhook {
		if bot.WebhookURL == "" {
			return nil, errors.New("webhook mode requires webhook_url")
		}
		return &telebot.Webhook{
			Listen:         bot.ListenAddr,
			AllowedUpdates: allowedUpdates,
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: bot.WebhookURL,
			},
		}, nil
	}
	return &telebot.LongPoller{
		Timeout:        bot.PollTimeout,
		AllowedUpdates: allowedUpdates,
	}, nil
}
