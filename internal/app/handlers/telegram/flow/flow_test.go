package flow_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/flow"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/handlertest"
	"github.com/IT-Nick/interview-prep-bot/internal/app/telegramtest"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	resultsService "github.com/IT-Nick/interview-prep-bot/internal/domain/results/service"
)

type failingRepo struct{}

func (failingRepo) Save(context.Context, model.AttemptRecord) error {
	return errors.New("connection refused")
}

func (failingRepo) ListByUser(context.Context, int64, int) ([]model.AttemptRecord, error) {
	return nil, nil
}

type countingFailures struct{ n int }

func (c *countingFailures) ResultSaveFailed() { c.n++ }

func TestFlow_Begin(t *testing.T) {
	f := handlertest.New(t, false)
	v, err := f.Interview.Start(1, "choice")
	require.NoError(t, err)

	c := telegramtest.NewMessage(1, "/mockinterview choice")
	require.NoError(t, f.Flow.Begin(c, v))

	texts := c.Texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "Mock Interview Started")
	assert.Contains(t, texts[1], "Question 1/2")
	require.NotNil(t, c.Markup(1))
	assert.Len(t, c.Markup(1).InlineKeyboard, 3)
}

func TestFlow_StepShowsNextQuestion(t *testing.T) {
	f := handlertest.New(t, false)
	_, err := f.Interview.Start(1, "choice")
	require.NoError(t, err)
	step, err := f.Interview.SubmitAnswer(1, "3")
	require.NoError(t, err)

	c := telegramtest.NewMessage(1, "3")
	require.NoError(t, f.Flow.Step(c, step))

	texts := c.Texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "Good answer")
	assert.Contains(t, texts[1], "Question 2/2")
}

func TestFlow_StepCompletesAndRecords(t *testing.T) {
	f := handlertest.New(t, true)
	_, err := f.Interview.Start(1, "choice")
	require.NoError(t, err)
	_, err = f.Interview.SubmitAnswer(1, "3")
	require.NoError(t, err)
	step, err := f.Interview.SubmitAnswer(1, "2")
	require.NoError(t, err)
	require.NotNil(t, step.Report)

	c := telegramtest.NewMessage(1, "2")
	require.NoError(t, f.Flow.Step(c, step))

	texts := c.Texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[1], "TEST COMPLETED")
	assert.Contains(t, texts[1], "1/2")

	docs := c.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, "application/pdf", docs[0].MIME)

	records, err := f.Results.History(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, handlertest.SessionID, records[0].ID)
	assert.Equal(t, 50, records[0].Percentage)
	assert.Equal(t, "tester", records[0].Username)
}

func TestFlow_SaveFailureStillShowsReport(t *testing.T) {
	f := handlertest.New(t, false)
	failures := &countingFailures{}
	fl := flow.NewFlow(f.Messages, resultsService.NewResultService(failingRepo{}),
		slog.New(slog.NewTextHandler(io.Discard, nil)), failures, false)

	_, err := f.Interview.Start(1, "choice")
	require.NoError(t, err)
	_, err = f.Interview.SubmitAnswer(1, "1")
	require.NoError(t, err)
	step, err := f.Interview.SubmitAnswer(1, "1")
	require.NoError(t, err)

	c := telegramtest.NewMessage(1, "1")
	require.NoError(t, fl.Step(c, step))

	assert.Contains(t, c.LastText(), "TEST COMPLETED")
	assert.Equal(t, 1, failures.n)
}

func TestFlow_ErrorOnCallbackResponds(t *testing.T) {
	f := handlertest.New(t, false)

	tests := []struct {
		err  error
		want string
	}{
		{model.ErrStaleQuestion, "no longer"},
		{model.ErrDuplicateAnswer, "already"},
		{fmt.Errorf("option 7: %w", model.ErrInvalidOption), "1 to 3"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			c := telegramtest.NewCallback(1, "opt:abcd1234:10:7")
			require.NoError(t, f.Flow.Error(c, tt.err, 3))

			assert.Empty(t, c.Sent())
			responses := c.Responses()
			require.Len(t, responses, 1)
			assert.Contains(t, responses[0].Text, tt.want)
		})
	}
}

func TestFlow_ErrorOnMessageSends(t *testing.T) {
	f := handlertest.New(t, false)
	c := telegramtest.NewMessage(1, "7")

	require.NoError(t, f.Flow.Error(c, model.ErrInvalidOption, 3))

	assert.Equal(t, f.Messages.InvalidOption(3).Text, c.LastText())
}

func TestFlow_UnknownErrorIsReturned(t *testing.T) {
	f := handlertest.New(t, false)
	c := telegramtest.NewMessage(1, "hello")
	boom := errors.New("boom")

	err := f.Flow.Error(c, boom, 0)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, f.Messages.InternalError().Text, c.LastText())
}
