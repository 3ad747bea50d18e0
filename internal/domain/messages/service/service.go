package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/callback"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/messages/repository"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/timer"
)

const (
	divider        = "━━━━━━━━━━━━━━━━━━"
	promptPreview  = 60
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfMIME        = "application/pdf"
	historyDateFmt = "2006-01-02 15:04"
)

// Settings параметры интервью, которые упоминаются в текстах
type Settings struct {
	QuestionCount int
	TimeLimit     time.Duration
}

// MessageService собирает ответы бота из текстов репозитория и данных предметной области
type MessageService struct {
	texts    *repository.TextRepository
	settings Settings
}

// NewMessageService создает новый экземпляр MessageService
func NewMessageService(texts *repository.TextRepository, settings Settings) *MessageService {
	return &MessageService{texts: texts, settings: settings}
}

// GetMessageByKey возвращает текст по ключу; при отсутствии ключа возвращается сам ключ
func (s *MessageService) GetMessageByKey(key string) string {
	text, err := s.texts.GetMessageByKey(key)
	if err != nil {
		return key
	}
	return text
}

func (s *MessageService) plain(key string) model.Reply {
	return model.Reply{Text: s.GetMessageByKey(key)}
}

// Welcome приветствие для /start
func (s *MessageService) Welcome(topics []model.TopicSummary) model.Reply {
	var b strings.Builder
	b.WriteString(s.GetMessageByKey(repository.WelcomeKey))
	b.WriteString("\n\n📚 Available Topics:\n")
	for _, t := range topics {
		fmt.Fprintf(&b, "  • %s\n", strings.ToUpper(t.Name))
	}
	b.WriteString("\n")
	b.WriteString(s.GetMessageByKey(repository.WelcomeGuideKey))

	return model.Reply{
		Text:    b.String(),
		Buttons: [][]model.Button{{button("📋 Open menu", callback.ShowMenu{})}},
	}
}

// Menu главное меню с кнопками режимов
func (s *MessageService) Menu() model.Reply {
	return model.Reply{
		Text: s.GetMessageByKey(repository.MenuKey),
		Buttons: [][]model.Button{
			{button("🎓 Practice Mode", callback.PracticeMode{}), button("🔥 Test Mode", callback.TestMode{})},
			{button("📚 View Topics", callback.ShowTopics{})},
			{button("ℹ️ Help", callback.ShowHelp{})},
		},
	}
}

// Help справка по командам, режимам и темам
func (s *MessageService) Help(topics []model.TopicSummary) model.Reply {
	var b strings.Builder
	b.WriteString(s.GetMessageByKey(repository.HelpCommandsKey))
	b.WriteString("\n\n" + divider + "\n\n🎯 MODES:\n\n")
	b.WriteString("🎓 PRACTICE MODE\n• Get random questions from any topic\n• See immediate feedback\n• Learn the correct answers\n\n")
	fmt.Fprintf(&b, "🔥 TEST MODE\n• Take a timed mock interview\n• %d random questions per test\n• %s per question\n• Get scored results with breakdown\n",
		s.settings.QuestionCount, timer.FormatMinutes(s.settings.TimeLimit))
	b.WriteString("\n" + divider + "\n\n📚 TOPICS:\n\n")
	for _, t := range topics {
		fmt.Fprintf(&b, "✅ %s - %d questions\n", strings.ToUpper(t.Name), t.QuestionCount)
	}
	b.WriteString("\n" + divider + "\n\n")
	b.WriteString(s.GetMessageByKey(repository.HelpTipsKey))

	return model.Reply{
		Text:    b.String(),
		Buttons: [][]model.Button{{button("📋 Menu", callback.ShowMenu{})}},
	}
}

// Topics список тем с количеством вопросов
func (s *MessageService) Topics(topics []model.TopicSummary) model.Reply {
	var b strings.Builder
	b.WriteString("📖 Available Topics\n\n")
	rows := make([][]model.Button, 0, len(topics))
	for _, t := range topics {
		fmt.Fprintf(&b, "📚 %s\n   └─ %d questions available\n", strings.ToUpper(t.Name), t.QuestionCount)
		if t.Description != "" {
			fmt.Fprintf(&b, "   └─ %s\n", t.Description)
		}
		b.WriteString("\n")
		rows = append(rows, []model.Button{
			button("🎓 "+t.Name, callback.PracticeTopic{Topic: t.Name}),
			button("🔥 "+t.Name, callback.StartInterview{Topic: t.Name}),
		})
	}
	b.WriteString(divider + "\n\n")
	b.WriteString(s.GetMessageByKey(repository.TopicsFooterKey))

	return model.Reply{Text: b.String(), Buttons: rows}
}

// TopicPicker выбор темы для практики или интервью
func (s *MessageService) TopicPicker(practice bool, topics []model.TopicSummary) model.Reply {
	text := "🔥 Choose a topic for your mock interview:"
	if practice {
		text = "🎓 Choose a topic to practice:"
	}
	rows := make([][]model.Button, 0, len(topics)+1)
	for _, t := range topics {
		label := fmt.Sprintf("%s (%d)", strings.ToUpper(t.Name), t.QuestionCount)
		if practice {
			rows = append(rows, []model.Button{button(label, callback.PracticeTopic{Topic: t.Name})})
		} else {
			rows = append(rows, []model.Button{button(label, callback.StartInterview{Topic: t.Name})})
		}
	}
	rows = append(rows, []model.Button{button("⬅️ Back", callback.ShowMenu{})})
	return model.Reply{Text: text, Buttons: rows}
}

// TopicUsage подсказка для /topic без аргумента
func (s *MessageService) TopicUsage(names []string) model.Reply {
	var b strings.Builder
	b.WriteString("Please specify a topic.\n\nAvailable topics:\n")
	for _, n := range names {
		fmt.Fprintf(&b, "• %s\n", n)
	}
	b.WriteString("\nExample: /topic playwright")
	return model.Reply{Text: b.String()}
}

// InterviewUsage подсказка для /mockinterview без аргумента
func (s *MessageService) InterviewUsage() model.Reply {
	return s.plain(repository.InterviewUsageKey)
}

// TopicNotFound тема не найдена
func (s *MessageService) TopicNotFound(name string) model.Reply {
	return model.Reply{Text: fmt.Sprintf("❌ Topic %q not found. Use /topics to see available topics.", name)}
}

// EmptyTopic в теме нет вопросов
func (s *MessageService) EmptyTopic(name string) model.Reply {
	return model.Reply{Text: fmt.Sprintf("❌ No questions found for topic: %s\n\nUse /topics to see available topics.", name)}
}

// PracticeQuestion вопрос режима практики. Для свободного ответа эталон показывается сразу,
// для вопроса с вариантами показываются кнопки.
func (s *MessageService) PracticeQuestion(topic string, q model.Question) model.Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Difficulty: %s\n\n❓ Question:\n%s\n", difficultyEmoji(q.Difficulty), strings.ToUpper(string(q.Difficulty)), q.Prompt)

	if q.IsMultipleChoice() {
		b.WriteString("\n")
		rows := make([][]model.Button, 0, len(q.Options))
		for i, opt := range q.Options {
			fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
			rows = append(rows, []model.Button{button(
				fmt.Sprintf("%d. %s", i+1, opt),
				callback.PracticeAnswer{Topic: topic, QuestionID: q.ID, OptionIndex: i},
			)})
		}
		b.WriteString("\nChoose your answer below 👇")
		return model.Reply{Text: b.String(), Buttons: rows}
	}

	fmt.Fprintf(&b, "\n💡 Answer:\n%s\n\n---\n", q.ReferenceAnswer)
	fmt.Fprintf(&b, s.GetMessageByKey(repository.PracticeFooterKey), topic)
	return model.Reply{
		Text:    b.String(),
		Buttons: [][]model.Button{{button("➡️ Another question", callback.PracticeTopic{Topic: topic})}},
	}
}

// PracticeFeedback реакция на выбор варианта в режиме практики
func (s *MessageService) PracticeFeedback(topic string, q model.Question, option int) model.Reply {
	var b strings.Builder
	if q.IsCorrectOption(option) {
		b.WriteString("✅ Correct!\n\n")
	} else {
		fmt.Fprintf(&b, "❌ Not quite. The correct answer is: %s\n\n", q.CorrectOptionText())
	}
	fmt.Fprintf(&b, "💡 Explanation:\n%s\n\n---\n", q.ReferenceAnswer)
	fmt.Fprintf(&b, s.GetMessageByKey(repository.PracticeFooterKey), topic)
	return model.Reply{
		Text: b.String(),
		Buttons: [][]model.Button{
			{button("➡️ Another question", callback.PracticeTopic{Topic: topic})},
			{button("📋 Menu", callback.ShowMenu{})},
		},
	}
}

// InterviewStarted заголовок нового интервью
func (s *MessageService) InterviewStarted(v model.QuestionView) model.Reply {
	return model.Reply{Text: fmt.Sprintf(
		"🎯 Mock Interview Started!\n\n📚 Topic: %s\n📝 Questions: %d\n⏱️ Time limit: %d seconds per question\n\n%s",
		strings.ToUpper(v.Topic), v.Total, timer.WholeSeconds(v.TimeLimit), s.GetMessageByKey(repository.InterviewHowToKey),
	)}
}

// Question текущий вопрос интервью
func (s *MessageService) Question(v model.QuestionView) model.Reply {
	q := v.Question
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d/%d\n%s %s\n⏱️ Time limit: %ds\n\n❓ %s\n",
		v.Index+1, v.Total, difficultyEmoji(q.Difficulty), strings.ToUpper(string(q.Difficulty)),
		timer.WholeSeconds(v.TimeLimit), q.Prompt)

	if !q.IsMultipleChoice() {
		b.WriteString("\n---\nType your answer below or \"skip\" to skip.")
		return model.Reply{
			Text:    b.String(),
			Buttons: [][]model.Button{{button("⏭️ Skip", callback.SkipQuestion{SessionTag: v.SessionTag, QuestionID: q.ID})}},
		}
	}

	b.WriteString("\n")
	rows := make([][]model.Button, 0, len(q.Options))
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
		rows = append(rows, []model.Button{button(
			fmt.Sprintf("%d. %s", i+1, opt),
			callback.SelectOption{SessionTag: v.SessionTag, QuestionID: q.ID, OptionIndex: i},
		)})
	}
	fmt.Fprintf(&b, "\n---\nPress a button or type the option number (1-%d).", len(q.Options))
	return model.Reply{Text: b.String(), Buttons: rows}
}

// Feedback реакция на решенный вопрос интервью
func (s *MessageService) Feedback(r model.QuestionResult) model.Reply {
	q := r.Question
	reference := q.ReferenceAnswer
	if q.IsMultipleChoice() && q.CorrectOptionText() != "" {
		reference = q.CorrectOptionText()
	}

	var text string
	switch {
	case r.Outcome == model.OutcomeTimeout:
		text = fmt.Sprintf("⏰ Time's up! (%ds exceeded)\n\n✅ Correct answer:\n%s", r.TimeTaken, reference)
	case r.Outcome == model.OutcomeSkipped:
		text = fmt.Sprintf("⏭️ Question skipped.\n\n✅ Correct answer:\n%s", reference)
	case r.IsCorrect:
		text = fmt.Sprintf("✅ Good answer! (%ds)\n\n📖 Reference answer:\n%s", r.TimeTaken, q.ReferenceAnswer)
	default:
		text = fmt.Sprintf("❌ Not quite right. (%ds)\n\n✅ Correct answer:\n%s", r.TimeTaken, reference)
	}
	return model.Reply{Text: text}
}

// Report итоговый отчет интервью
func (s *MessageService) Report(r model.Report) model.Reply {
	var b strings.Builder
	b.WriteString("🎉 TEST COMPLETED! 🎉\n\n📊 OVERALL SCORE\n" + divider + "\n")
	fmt.Fprintf(&b, "📚 Topic: %s\n✅ Correct: %d/%d\n📈 Score: %d%%\n⏱️ Total time: %s\n\n",
		strings.ToUpper(r.Topic), r.Correct, r.Total, r.Percentage, timer.FormatMinutes(r.TotalElapsed))

	b.WriteString("📚 BY DIFFICULTY\n" + divider + "\n")
	for _, d := range r.ByDifficulty {
		pct := 0
		if d.Total > 0 {
			pct = (100*d.Correct + d.Total/2) / d.Total
		}
		fmt.Fprintf(&b, "%s %s: %d/%d (%d%%)\n", difficultyEmoji(d.Difficulty), strings.ToUpper(string(d.Difficulty)), d.Correct, d.Total, pct)
	}

	b.WriteString("\n📝 DETAILED RESULTS\n" + divider + "\n")
	for i, res := range r.Results {
		fmt.Fprintf(&b, "\n%d. %s %s (%ds)\n   %s\n", i+1, resultEmoji(res), res.Label(), res.TimeTaken, preview(res.Question.Prompt))
	}

	b.WriteString("\n" + divider + "\n\n")
	b.WriteString(tierMessage(r.Tier))
	b.WriteString("\n\nStart a new interview with /mockinterview <topic>")

	return model.Reply{
		Text: b.String(),
		Buttons: [][]model.Button{
			{button("🔁 Try again", callback.StartInterview{Topic: r.Topic})},
			{button("📋 Menu", callback.ShowMenu{})},
		},
	}
}

// ReportDocument PDF-версия отчета
func (s *MessageService) ReportDocument(r model.Report, pdf []byte) model.Reply {
	return model.Reply{Document: &model.Document{
		FileName: fmt.Sprintf("interview-%s-%s.pdf", r.Topic, r.FinishedAt.Format("20060102-150405")),
		MIME:     pdfMIME,
		Caption:  fmt.Sprintf("📄 %s report: %d%%", strings.ToUpper(r.Topic), r.Percentage),
		Data:     pdf,
	}}
}

// History последние результаты пользователя
func (s *MessageService) History(records []model.AttemptRecord) model.Reply {
	if len(records) == 0 {
		return s.plain(repository.EmptyHistoryKey)
	}
	var b strings.Builder
	b.WriteString("📜 YOUR RECENT RESULTS\n" + divider + "\n")
	for i, rec := range records {
		fmt.Fprintf(&b, "\n%d. %s %s: %d/%d (%d%%), %s\n",
			i+1, rec.FinishedAt.Format(historyDateFmt), strings.ToUpper(rec.Topic), rec.Correct, rec.Total,
			rec.Percentage, timer.FormatMinutes(time.Duration(rec.DurationSeconds)*time.Second))
	}
	b.WriteString("\nUse /export to download the full history.")
	return model.Reply{Text: b.String()}
}

// HistoryDocument выгрузка истории в xlsx
func (s *MessageService) HistoryDocument(userID int64, xlsx []byte) model.Reply {
	return model.Reply{Document: &model.Document{
		FileName: fmt.Sprintf("interview-history-%d.xlsx", userID),
		MIME:     xlsxMIME,
		Caption:  "📊 Your mock interview history",
		Data:     xlsx,
	}}
}

func (s *MessageService) StaleQuestion() model.Reply   { return s.plain(repository.StaleQuestionKey) }
func (s *MessageService) DuplicateAnswer() model.Reply { return s.plain(repository.DuplicateKey) }
func (s *MessageService) NoSession() model.Reply       { return s.plain(repository.NoSessionKey) }
func (s *MessageService) Cancelled() model.Reply       { return s.plain(repository.CancelledKey) }
func (s *MessageService) InternalError() model.Reply   { return s.plain(repository.InternalErrorKey) }
func (s *MessageService) EmptyHistory() model.Reply    { return s.plain(repository.EmptyHistoryKey) }

// InvalidOption ответ вне диапазона вариантов
func (s *MessageService) InvalidOption(options int) model.Reply {
	return model.Reply{Text: fmt.Sprintf("⚠️ Please choose an option from 1 to %d or type \"skip\".", options)}
}

func button(label string, i callback.Intent) model.Button {
	return model.Button{Label: label, Payload: callback.Encode(i)}
}

func difficultyEmoji(d model.Difficulty) string {
	switch d {
	case model.DifficultyEasy:
		return "🟢"
	case model.DifficultyMedium:
		return "🟡"
	case model.DifficultyHard:
		return "🔴"
	}
	return "⚪"
}

func resultEmoji(r model.QuestionResult) string {
	switch r.Outcome {
	case model.OutcomeSkipped:
		return "⏭️"
	case model.OutcomeTimeout:
		return "⏰"
	}
	if r.IsCorrect {
		return "✅"
	}
	return "❌"
}

func tierMessage(t model.Tier) string {
	switch t {
	case model.TierOutstanding:
		return "🌟 Outstanding! You're interview-ready!"
	case model.TierExcellent:
		return "🏆 Excellent work! You're doing great!"
	case model.TierGood:
		return "👍 Good job! Keep practicing!"
	case model.TierFair:
		return "📚 Not bad! Review the questions you missed."
	default:
		return "💪 Keep learning! Practice makes perfect!"
	}
}

// preview обрезает текст вопроса до 60 символов
func preview(s string) string {
	if utf8.RuneCountInString(s) <= promptPreview {
		return s
	}
	return string([]rune(s)[:promptPreview]) + "..."
}
