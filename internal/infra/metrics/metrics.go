package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

const namespace = "prepbot"

// Metrics метрики бота в собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	updatesTotal        *prometheus.CounterVec
	handlerErrorsTotal  *prometheus.CounterVec
	interviewsStarted   *prometheus.CounterVec
	interviewsCompleted *prometheus.CounterVec
	questionsResolved   *prometheus.CounterVec
	answerSeconds       *prometheus.HistogramVec
	scorePercent        *prometheus.HistogramVec
	resultSaveFailures  prometheus.Counter
}

// New создает метрики. activeSessions вызывается при каждом сборе метрик.
func New(activeSessions func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		updatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Total number of Telegram updates by kind",
		}, []string{"kind"}), // kind: command, callback, text, other
		handlerErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_errors_total",
			Help:      "Total number of handler errors and recovered panics",
		}, []string{"kind"}), // kind: error, panic
		interviewsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interviews_started_total",
			Help:      "Total number of started mock interviews",
		}, []string{"topic"}),
		interviewsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interviews_completed_total",
			Help:      "Total number of completed mock interviews",
		}, []string{"topic"}),
		questionsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_resolved_total",
			Help:      "Total number of resolved interview questions by outcome",
		}, []string{"topic", "outcome", "correct"}),
		answerSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "answer_duration_seconds",
			Help:      "Time taken to resolve an interview question in seconds",
			Buckets:   []float64{5, 10, 20, 30, 45, 60, 90, 120},
		}, []string{"topic"}),
		scorePercent: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "interview_score_percent",
			Help:      "Final mock interview score in percent",
			Buckets:   []float64{20, 40, 60, 70, 80, 90, 100},
		}, []string{"topic"}),
		resultSaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_save_failures_total",
			Help:      "Total number of interview results that could not be stored",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.updatesTotal,
		m.handlerErrorsTotal,
		m.interviewsStarted,
		m.interviewsCompleted,
		m.questionsResolved,
		m.answerSeconds,
		m.scorePercent,
		m.resultSaveFailures,
	)
	if activeSessions != nil {
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of mock interviews in progress",
		}, func() float64 { return float64(activeSessions()) }))
	}
	return m
}

// Handler HTTP-обработчик /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Update считает входящее обновление по типу
func (m *Metrics) Update(kind string) {
	m.updatesTotal.WithLabelValues(kind).Inc()
}

// HandlerError считает ошибку или панику обработчика
func (m *Metrics) HandlerError(kind string) {
	m.handlerErrorsTotal.WithLabelValues(kind).Inc()
}

// ResultSaveFailed считает неудачное сохранение результата интервью
func (m *Metrics) ResultSaveFailed() {
	m.resultSaveFailures.Inc()
}

// InterviewStarted считает начатое интервью
func (m *Metrics) InterviewStarted(topic string) {
	m.interviewsStarted.WithLabelValues(topic).Inc()
}

// QuestionResolved учитывает исход вопроса и время ответа
func (m *Metrics) QuestionResolved(topic string, r model.QuestionResult) {
	correct := "false"
	if r.IsCorrect {
		correct = "true"
	}
	m.questionsResolved.WithLabelValues(topic, string(r.Outcome), correct).Inc()
	m.answerSeconds.WithLabelValues(topic).Observe(float64(r.TimeTaken))
}

// InterviewCompleted учитывает завершенное интервью и его процент
func (m *Metrics) InterviewCompleted(r model.Report) {
	m.interviewsCompleted.WithLabelValues(r.Topic).Inc()
	m.scorePercent.WithLabelValues(r.Topic).Observe(float64(r.Percentage))
}
