package reply_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/interview-prep-bot/internal/app/reply"
	"github.com/IT-Nick/interview-prep-bot/internal/app/telegramtest"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

func TestSend_TextWithButtons(t *testing.T) {
	c := telegramtest.NewMessage(1, "/menu")

	err := reply.Send(c, model.Reply{
		Text:    "menu",
		Buttons: [][]model.Button{{{Label: "A", Payload: "a"}, {Label: "B", Payload: "b"}}, {{Label: "C", Payload: "c"}}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"menu"}, c.Texts())
	markup := c.Markup(0)
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "b", markup.InlineKeyboard[0][1].Data)
	assert.Equal(t, "C", markup.InlineKeyboard[1][0].Text)
}

func TestSend_Document(t *testing.T) {
	c := telegramtest.NewMessage(1, "/export")

	err := reply.Send(c,
		model.Reply{Document: &model.Document{FileName: "h.xlsx", MIME: "application/x", Caption: "history", Data: []byte("PK")}},
		model.Reply{Text: "done"},
	)
	require.NoError(t, err)

	docs := c.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, "h.xlsx", docs[0].FileName)
	assert.Equal(t, "history", docs[0].Caption)
	assert.Equal(t, []string{"done"}, c.Texts())
}

func TestSend_Error(t *testing.T) {
	c := telegramtest.NewMessage(1, "hi")
	c.SendErr = errors.New("blocked by user")

	err := reply.Send(c, model.Reply{Text: "a"}, model.Reply{Text: "b"})
	assert.ErrorContains(t, err, "blocked by user")
}

func TestMarkup_Empty(t *testing.T) {
	assert.Nil(t, reply.Markup(nil))
}
