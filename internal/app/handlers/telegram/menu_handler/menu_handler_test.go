package menu_handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/handlertest"
	"github.com/IT-Nick/interview-prep-bot/internal/app/telegramtest"
)

func TestMenuHandler_Buttons(t *testing.T) {
	f := handlertest.New(t, false)
	c := telegramtest.NewMessage(1, "/menu")

	require.NoError(t, NewMenuHandler(f.Messages).Handle(c))

	markup := c.Markup(0)
	require.NotNil(t, markup)
	var data []string
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			data = append(data, b.Data)
		}
	}
	assert.Equal(t, []string{"practice_mode", "test_mode", "view_topics", "show_help"}, data)
}
