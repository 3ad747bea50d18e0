package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"gopkg.in/telebot.v4"
	telemw "gopkg.in/telebot.v4/middleware"

	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/http/active_sessions_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/http/health_handler"
	httpTopics "github.com/IT-Nick/interview-prep-bot/internal/app/handlers/http/topics_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/http/user_results_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/answer_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/callback_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/cancel_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/flow"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/help_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/history_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/menu_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/mock_interview_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/start_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/topic_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/handlers/telegram/topics_handler"
	"github.com/IT-Nick/interview-prep-bot/internal/app/middleware"
	interviewService "github.com/IT-Nick/interview-prep-bot/internal/domain/interview/service"
	msgRepo "github.com/IT-Nick/interview-prep-bot/internal/domain/messages/repository"
	msgService "github.com/IT-Nick/interview-prep-bot/internal/domain/messages/service"
	questionsRepo "github.com/IT-Nick/interview-prep-bot/internal/domain/questions/repository"
	questionsService "github.com/IT-Nick/interview-prep-bot/internal/domain/questions/service"
	resultsService "github.com/IT-Nick/interview-prep-bot/internal/domain/results/service"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/sessions"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/config"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/logger"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/metrics"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/poller"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/random"
)

const shutdownTimeout = 10 * time.Second

// commands меню команд бота в клиенте Telegram
var commands = []telebot.Command{
	{Text: "start", Description: "Welcome and list of topics"},
	{Text: "menu", Description: "Main menu"},
	{Text: "topics", Description: "Available topics"},
	{Text: "topic", Description: "Practice: random question from a topic"},
	{Text: "mockinterview", Description: "Timed mock interview on a topic"},
	{Text: "cancel", Description: "Cancel the current mock interview"},
	{Text: "history", Description: "Your recent results"},
	{Text: "export", Description: "Download your history as xlsx"},
	{Text: "help", Description: "Commands and modes"},
}

type Services struct {
	questionService  *questionsService.QuestionService
	interviewService *interviewService.InterviewService
	messageService   *msgService.MessageService
	resultService    *resultsService.ResultService
}

type App struct {
	config   *config.Config
	logger   *slog.Logger
	bot      *telebot.Bot
	server   *http.Server
	registry *sessions.Registry
	metrics  *metrics.Metrics
	flow     *flow.Flow

	closeStorage func() error

	Services
}

// NewApp читает конфигурацию и собирает приложение
func NewApp(ctx context.Context, configPath string) (*App, error) {
	configImpl, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	return New(ctx, configImpl, logger.New(os.Stdout, configImpl.Log.Level, configImpl.Log.Format))
}

// New собирает приложение по готовой конфигурации
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	app := &App{
		config: cfg,
		logger: log,
	}

	if err := app.initServices(ctx); err != nil {
		return nil, err
	}

	return app, nil
}

// Функция для инициализации сервисов и репозиториев
func (app *App) initServices(ctx context.Context) error {
	// Инициализация репозиториев
	questionRepo, err := questionsRepo.NewQuestionRepository(app.config.Questions.Dir, app.config.Questions.Topics)
	if err != nil {
		return fmt.Errorf("failed to load question bank: %w", err)
	}
	textRepo, err := msgRepo.NewTextRepository(app.config.Messages.Path)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}
	resultRepo, closeStorage, err := app.initResultRepository(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize result storage: %w", err)
	}
	app.closeStorage = closeStorage

	// Инициализация сервисов
	rnd := random.New(app.config.Interview.Seed)
	app.questionService = questionsService.NewQuestionService(questionRepo, rnd)
	app.registry = sessions.NewRegistry(app.questionService, rnd,
		sessions.WithQuestionCount(app.config.Interview.QuestionCount),
		sessions.WithTimeLimit(app.config.Interview.TimeLimit),
	)
	app.metrics = metrics.New(app.registry.Count)
	app.interviewService = interviewService.NewInterviewService(app.registry, app.metrics)
	app.messageService = msgService.NewMessageService(textRepo, msgService.Settings{
		QuestionCount: app.config.Interview.QuestionCount,
		TimeLimit:     app.config.Interview.TimeLimit,
	})
	app.resultService = resultsService.NewResultService(resultRepo)
	app.flow = flow.NewFlow(app.messageService, app.resultService, app.logger, app.metrics, app.config.Report.PDF)

	app.logger.Info("services initialized",
		slog.Int("topics", len(app.questionService.TopicNames())),
		slog.String("storage", app.config.Storage.Type),
	)
	return nil
}

// newBot создает бота. В режиме offline запросы к Telegram при создании не выполняются.
func (app *App) newBot(offline bool) (*telebot.Bot, error) {
	p, err := poller.NewPoller(app.config)
	if err != nil {
		return nil, fmt.Errorf("poller.NewPoller: %w", err)
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:   app.config.TelegramBot.Token,
		Poller:  p,
		Offline: offline,
		OnError: func(err error, c telebot.Context) {
			attrs := []any{slog.Any("error", err)}
			if c != nil && c.Sender() != nil {
				attrs = append(attrs, slog.Int64("user_id", c.Sender().ID))
			}
			app.logger.Error("telegram handler error", attrs...)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}
	return bot, nil
}

// ListenAndServeTelegram запускает Telegram бота
func (app *App) ListenAndServeTelegram() error {
	bot, err := app.newBot(false)
	if err != nil {
		return err
	}
	app.bot = bot

	app.bootstrapHandlersTelegram()

	if err := app.bot.SetCommands(commands); err != nil {
		app.logger.Warn("failed to set bot commands", slog.Any("error", err))
	}

	app.logger.Info("starting telegram bot", slog.String("mode", app.config.TelegramBot.Mode))
	go app.bot.Start()

	return nil
}

// bootstrapHandlersTelegram - регистрирует middleware и обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Use(
		middleware.Recover(app.logger, app.metrics),
		middleware.Logger(app.logger),
		middleware.Metrics(app.metrics),
		middleware.Serialize(app.registry),
		telemw.AutoRespond(),
		middleware.DebugUserActions(app.config.Debug, app.interviewService),
	)

	menu := menu_handler.NewMenuHandler(app.messageService)
	help := help_handler.NewHelpHandler(app.messageService, app.questionService)
	topics := topics_handler.NewTopicsHandler(app.messageService, app.questionService)
	topic := topic_handler.NewTopicHandler(app.messageService, app.questionService, app.logger)
	mock := mock_interview_handler.NewMockInterviewHandler(app.interviewService, app.flow)
	history := history_handler.NewHistoryHandler(app.messageService, app.resultService, app.logger)

	app.bot.Handle("/start", start_handler.NewStartHandler(app.messageService, app.questionService).GetHandlerFunc())
	app.bot.Handle("/menu", menu.GetHandlerFunc())
	app.bot.Handle("/help", help.GetHandlerFunc())
	app.bot.Handle("/topics", topics.GetHandlerFunc())
	app.bot.Handle("/topic", topic.GetHandlerFunc())
	app.bot.Handle("/mockinterview", mock.GetHandlerFunc())
	app.bot.Handle("/cancel", cancel_handler.NewCancelHandler(app.interviewService, app.flow).GetHandlerFunc())
	app.bot.Handle("/history", history.GetHandlerFunc())
	app.bot.Handle("/export", history.GetExportHandlerFunc())

	// Все inline-кнопки приходят в один обработчик, данные разбираются в callback.Parse
	app.bot.Handle(telebot.OnCallback, callback_handler.NewCallbackHandler(
		menu, help, topics, topic, mock, app.interviewService, app.flow, app.logger,
	).GetHandlerFunc())

	app.bot.Handle(telebot.OnText, answer_handler.NewAnswerHandler(app.interviewService, app.flow).GetHandlerFunc())
}

// routes маршруты служебного HTTP API
func (app *App) routes() http.Handler {
	mx := http.NewServeMux()

	mx.Handle("GET /healthz", health_handler.NewHealthHandler(app.registry.Count))
	mx.Handle("GET /metrics", app.metrics.Handler())
	mx.Handle("GET /topics", httpTopics.NewTopicsHandler(app.questionService))
	mx.Handle("GET /sessions/active", active_sessions_handler.NewActiveSessionsHandler(app.registry))
	mx.Handle("GET /users/{id}/results", user_results_handler.NewUserResultsHandler(app.resultService))

	return mx
}

// ListenAndServeHTTP запускает HTTP сервер. Блокирует до остановки сервера.
func (app *App) ListenAndServeHTTP() error {
	app.server = &http.Server{
		Addr:              app.config.Addr(),
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	app.logger.Info("starting http server", slog.String("addr", app.server.Addr))
	if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe запускает оба сервера (Telegram и HTTP) и останавливает их при отмене ctx
func (app *App) ListenAndServe(ctx context.Context) error {
	// Запускаем Telegram сервер
	if err := app.ListenAndServeTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}

	// Запускаем HTTP сервер
	httpErr := make(chan error, 1)
	go func() {
		httpErr <- app.ListenAndServeHTTP()
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-httpErr:
		if err != nil {
			err = fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}

	app.shutdown()
	return err
}

func (app *App) shutdown() {
	app.logger.Info("shutting down")

	if app.bot != nil {
		app.bot.Stop()
	}

	if app.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.server.Shutdown(ctx); err != nil {
			app.logger.Error("failed to shutdown http server", slog.Any("error", err))
		}
	}

	if err := app.Close(); err != nil {
		app.logger.Error("failed to close result storage", slog.Any("error", err))
	}
}

// Close закрывает подключения хранилища результатов
func (app *App) Close() error {
	if app.closeStorage == nil {
		return nil
	}
	closeStorage := app.closeStorage
	app.closeStorage = nil
	return closeStorage()
}
