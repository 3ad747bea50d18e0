package repository

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Ключи статических текстов бота
const (
	WelcomeKey        = "welcome"
	WelcomeGuideKey   = "welcome_guide"
	MenuKey           = "menu"
	HelpCommandsKey   = "help_commands"
	HelpTipsKey       = "help_tips"
	TopicsFooterKey   = "topics_footer"
	InterviewHowToKey = "interview_how_to"
	InterviewUsageKey = "interview_usage"
	PracticeFooterKey = "practice_footer"
	StaleQuestionKey  = "stale_question"
	DuplicateKey      = "duplicate_answer"
	NoSessionKey      = "no_session"
	CancelledKey      = "cancelled"
	InternalErrorKey  = "internal_error"
	EmptyHistoryKey   = "empty_history"
)

const divider = "━━━━━━━━━━━━━━━━━━"

var defaults = map[string]string{
	WelcomeKey: "👋 Welcome to Interview Prep Bot!\n\n" +
		"🎯 Your personal interview coach is ready to help you ace your next technical interview!",
	WelcomeGuideKey: "🎓 Practice Mode:\n" +
		"/topic <name> - Get a random question with instant answer\n" +
		"   Example: /topic typescript\n\n" +
		"🔥 Test Mode:\n" +
		"/mockinterview <topic> - Take a timed test with scoring\n" +
		"   Example: /mockinterview playwright\n\n" +
		"📋 Browse:\n" +
		"/topics - View all topics with question counts\n" +
		"/menu - Open the main menu\n\n" +
		"💡 Tip: Start with practice mode to learn, then test yourself with mock interviews!",
	MenuKey: "🤖 INTERVIEW BOT MENU\n\n" + divider + "\n\n" +
		"Choose what you'd like to do:\n\n" +
		"🎓 Practice Mode\n   • Get random questions\n   • See instant feedback\n   • Learn at your own pace\n\n" +
		"🔥 Test Mode\n   • Timed mock interviews\n   • Get scored results\n\n" +
		"📚 View Topics\n   • See all available topics",
	HelpCommandsKey: "ℹ️ HOW TO USE THIS BOT\n\n" + divider + "\n\n" +
		"📝 AVAILABLE COMMANDS:\n\n" +
		"/start - Start the bot and see welcome message\n" +
		"/menu - Show the main menu\n" +
		"/topics - List all available topics\n" +
		"/topic <name> - Practice a random question\n" +
		"/mockinterview <topic> - Start a timed mock interview\n" +
		"/cancel - Abandon the current mock interview\n" +
		"/history - Show your recent results\n" +
		"/export - Download your results as a spreadsheet\n" +
		"/help - Show this help message",
	HelpTipsKey: "💡 TIPS:\n\n" +
		"• Use Practice Mode to learn\n" +
		"• Use Test Mode to assess yourself\n" +
		"• Tests show difficulty levels:\n  🟢 Easy  🟡 Medium  🔴 Hard\n\n" +
		"Need help? Just type /menu to start!",
	TopicsFooterKey: "🎓 Practice a topic:\n/topic <name>\n\n" +
		"🔥 Take a mock interview:\n/mockinterview <topic>\n\n" +
		"Example: /mockinterview typescript",
	InterviewHowToKey: "Type your answer to each question or press a button.\n" +
		"Type \"skip\" to skip a question.\n\nLet's begin! 🚀",
	InterviewUsageKey: "❌ Please specify a topic.\n" +
		"Usage: /mockinterview <topic>\n" +
		"Example: /mockinterview typescript\n\n" +
		"Use /topics to see available topics.",
	PracticeFooterKey: "Want another? Press the button or try /topic %s again!",
	StaleQuestionKey:  "⚠️ This question is no longer active.",
	DuplicateKey:      "⚠️ You have already answered this question.",
	NoSessionKey:      "There is no mock interview in progress. Start one with /mockinterview <topic>.",
	CancelledKey:      "🛑 Mock interview cancelled. Start a new one with /mockinterview <topic>.",
	InternalErrorKey:  "Something went wrong. Please try again later.",
	EmptyHistoryKey:   "You have no finished mock interviews yet. Start one with /mockinterview <topic>.",
}

// TextRepository хранит тексты сообщений по ключам.
// Встроенные тексты можно переопределить YAML-файлом вида key: text.
type TextRepository struct {
	texts map[string]string
}

// NewTextRepository создает репозиторий и применяет переопределения из path, если он задан
func NewTextRepository(path string) (*TextRepository, error) {
	r := &TextRepository{texts: make(map[string]string, len(defaults))}
	for k, v := range defaults {
		r.texts[k] = v
	}
	if path == "" {
		return r, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}
	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse messages file %s: %w", path, err)
	}
	for k, v := range overrides {
		if _, ok := defaults[k]; !ok {
			return nil, fmt.Errorf("unknown message key %q in %s", k, path)
		}
		r.texts[k] = v
	}
	return r, nil
}

// GetMessageByKey возвращает текст сообщения по ключу
func (r *TextRepository) GetMessageByKey(key string) (string, error) {
	text, ok := r.texts[key]
	if !ok {
		return "", fmt.Errorf("message with key %s not found", key)
	}
	return text, nil
}
