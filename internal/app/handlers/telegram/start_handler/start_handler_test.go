package start_handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/handlertest"
	"github.com/IT-Nick/interview-prep-bot/internal/app/telegramtest"
)

func TestStartHandler_ListsTopics(t *testing.T) {
	f := handlertest.New(t, false)
	h := NewStartHandler(f.Messages, f.Questions)
	c := telegramtest.NewMessage(1, "/start")

	require.NoError(t, h.GetHandlerFunc()(c))

	text := c.LastText()
	assert.Contains(t, text, "Welcome")
	assert.Contains(t, text, "QA")
	assert.Contains(t, text, "CHOICE")
	markup := c.Markup(0)
	require.NotNil(t, markup)
	assert.Equal(t, "menu", markup.InlineKeyboard[0][0].Data)
}
