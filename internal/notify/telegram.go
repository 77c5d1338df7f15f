package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/WinGo-Predictor/models"
)

// Telegram broadcasts prediction events to a single chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// New creates a Telegram notifier for the given bot token and chat.
func New(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	logger := log.With().Str("component", "telegram").Logger()
	logger.Info().Str("account", bot.Self.UserName).Msg("Telegram notifier authorized")

	return &Telegram{bot: bot, chatID: chatID, logger: logger}, nil
}

// NotifyPrediction announces a freshly created prediction.
func (t *Telegram) NotifyPrediction(p models.Prediction) error {
	var text string
	if p.Category == models.CategorySkip {
		text = fmt.Sprintf(
			"⚠️ *Period %s*\nSKIP — %s",
			p.Period, p.Rationale.Label(),
		)
	} else {
		text = fmt.Sprintf(
			"🎯 *Period %s*\nCall: *%s %d*\nConfidence: %d%%\nLogic: %s\nBias: %s",
			p.Period, p.Category, p.Number, p.Confidence, p.Rationale.Label(), p.Bias,
		)
	}
	return t.send(text)
}

// NotifyGrade announces a settled prediction. Only Jackpots are pushed;
// routine wins and losses stay in the logs.
func (t *Telegram) NotifyGrade(p models.Prediction, obs models.Observation) error {
	if p.Result != models.ResultJackpot {
		return nil
	}
	text := fmt.Sprintf(
		"💎 *JACKPOT* on period %s: called %s %d, drawn %d",
		p.Period, p.Category, p.Number, obs.Number,
	)
	return t.send(text)
}

func (t *Telegram) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}
