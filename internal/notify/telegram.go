package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/powerschedule/powerschedule/pkg/models"
)

type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a Notifier that sends HTML messages to a
// single chat.
func NewTelegramNotifier(token string, chatID int64) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &telegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *telegramNotifier) ShutdownAlert(queue models.PowerQueue, startClock, leadText string) error {
	text := fmt.Sprintf(
		"<b>⚡ Скоро відключення!</b>\n\n%s (черга %s): відключення о <b>%s</b> (%s)",
		queue.Name, queue.QueueNumber, startClock, leadText,
	)
	return n.send(text)
}

func (n *telegramNotifier) ScheduleChanged(queue models.PowerQueue) error {
	text := fmt.Sprintf(
		"<b>Графік оновлено</b>\n\nГрафік відключень для %s (черга %s) змінився.",
		queue.Name, queue.QueueNumber,
	)
	return n.send(text)
}

func (n *telegramNotifier) send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}
