package callback_handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/handlertest"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/help_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/menu_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/mock_interview_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/topic_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/topics_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/telegramtest"
)

func newHandler(f *handlertest.Fixture) *CallbackHandler {
	return NewCallbackHandler(
		menu_handler.NewMenuHandler(f.Messages),
		help_handler.NewHelpHandler(f.Messages, f.Questions),
		topics_handler.NewTopicsHandler(f.Messages, f.Questions),
		topic_handler.NewTopicHandler(f.Messages, f.Questions, f.Logger),
		mock_interview_handler.NewMockInterviewHandler(f.Interview, f.Flow),
		f.Interview,
		f.Flow,
		f.Logger,
	)
}

func TestCallbackHandler_Navigation(t *testing.T) {
	f := handlertest.New(t, false)
	h := newHandler(f)

	tests := []struct {
		data string
		want string
	}{
		{"\fbtn|menu", "Practice"},
		{"show_help", "TEST MODE"},
		{"view_topics", "Available Topics"},
		{"practice_mode", "Choose a topic to practice"},
		{"test_mode", "Choose a topic for your mock interview"},
		{"practice:qa", "What is regression testing?"},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			c := telegramtest.NewCallback(1, tt.data)
			require.NoError(t, h.Handle(c))
			assert.Contains(t, c.LastText(), tt.want)
		})
	}
}

func TestCallbackHandler_Malformed(t *testing.T) {
	f := handlertest.New(t, false)
	h := newHandler(f)

	for _, data := range []string{"", "bogus", "opt:abc", "skip:abcd1234:x"} {
		c := telegramtest.NewCallback(1, data)
		require.NoError(t, h.Handle(c))
		assert.Empty(t, c.Sent())
		require.Len(t, c.Responses(), 1)
		assert.Equal(t, unknownActionText, c.Responses()[0].Text)
	}
}

func TestCallbackHandler_InterviewByButtons(t *testing.T) {
	f := handlertest.New(t, false)
	h := newHandler(f)

	start := telegramtest.NewCallback(1, "interview:choice")
	require.NoError(t, h.Handle(start))
	assert.Contains(t, start.Texts()[1], "Pick C")

	press := telegramtest.NewCallback(1, "opt:abcd1234:10:2")
	require.NoError(t, h.Handle(press))
	assert.Contains(t, press.Texts()[0], "Good answer")
	assert.Contains(t, press.Texts()[1], "Pick A")

	duplicate := telegramtest.NewCallback(1, "opt:abcd1234:10:1")
	require.NoError(t, h.Handle(duplicate))
	assert.Empty(t, duplicate.Sent())
	assert.Contains(t, duplicate.Responses()[0].Text, "already answered")

	stale := telegramtest.NewCallback(1, "opt:ffff0000:11:0")
	require.NoError(t, h.Handle(stale))
	assert.Contains(t, stale.Responses()[0].Text, "no longer active")

	invalid := telegramtest.NewCallback(1, "opt:abcd1234:11:5")
	require.NoError(t, h.Handle(invalid))
	assert.Contains(t, invalid.Responses()[0].Text, "from 1 to 3")

	skip := telegramtest.NewCallback(1, "skip:abcd1234:11")
	require.NoError(t, h.Handle(skip))
	assert.Contains(t, skip.Texts()[0], "Question skipped")
	assert.Contains(t, skip.LastText(), "Correct: 1/2")
	assert.Equal(t, 0, f.Registry.Count())

	late := telegramtest.NewCallback(1, "skip:abcd1234:11")
	require.NoError(t, h.Handle(late))
	assert.Empty(t, late.Sent())
	assert.Contains(t, late.Responses()[0].Text, "already answered")

	again := telegramtest.NewCallback(1, "opt:abcd1234:11:0")
	require.NoError(t, h.Handle(again))
	assert.Empty(t, again.Sent())
	assert.Contains(t, again.Responses()[0].Text, "already answered")

	other := telegramtest.NewCallback(1, "opt:ffff0000:11:0")
	require.NoError(t, h.Handle(other))
	assert.Contains(t, other.Responses()[0].Text, "no mock interview in progress")
}
