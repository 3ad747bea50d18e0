package reply

import (
	"bytes"
	"fmt"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

// Send отправляет ответы по порядку. Тексты уходят без разметки.
func Send(c telebot.Context, replies ...model.Reply) error {
	for _, r := range replies {
		if err := send(c, r); err != nil {
			return err
		}
	}
	return nil
}

func send(c telebot.Context, r model.Reply) error {
	markup := Markup(r.Buttons)

	if r.Document != nil {
		doc := &telebot.Document{
			File:     telebot.FromReader(bytes.NewReader(r.Document.Data)),
			FileName: r.Document.FileName,
			MIME:     r.Document.MIME,
			Caption:  r.Document.Caption,
		}
		if err := c.Send(doc, &telebot.SendOptions{ReplyMarkup: markup}); err != nil {
			return fmt.Errorf("failed to send document %s: %w", r.Document.FileName, err)
		}
		if r.Text == "" {
			return nil
		}
	}

	if r.Text == "" {
		return nil
	}
	if err := c.Send(r.Text, &telebot.SendOptions{ReplyMarkup: markup}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Markup строит inline-клавиатуру. Для пустого списка кнопок возвращает nil.
func Markup(rows [][]model.Button) *telebot.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}
	keyboard := make([][]telebot.InlineButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]telebot.InlineButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, telebot.InlineButton{Text: b.Label, Data: b.Payload})
		}
		keyboard = append(keyboard, buttons)
	}
	return &telebot.ReplyMarkup{InlineKeyboard: keyboard}
}
