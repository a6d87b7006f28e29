package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Game Metrics
var (
	// GamesStartedTotal tracks sessions created by /play or by a restart
	GamesStartedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flagquiz_games_started_total",
			Help: "Total game sessions started by trigger (play, restart)",
		},
		[]string{"trigger"},
	)

	// AnswersTotal tracks submitted answers by result
	AnswersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flagquiz_answers_total",
			Help: "Total answers submitted by result (correct, wrong)",
		},
		[]string{"result"},
	)

	// GamesCompletedTotal tracks sessions that reached game over
	GamesCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flagquiz_games_completed_total",
			Help: "Total game sessions that reached game over",
		},
	)

	// FinalScore tracks the distribution of final scores
	FinalScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flagquiz_final_score",
			Help:    "Final score of completed games",
			Buckets: prometheus.LinearBuckets(0, 1, 9),
		},
	)

	// StaleTapsTotal tracks button presses on outdated messages
	StaleTapsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flagquiz_stale_taps_total",
			Help: "Total button presses rejected because the session or round moved on",
		},
	)
)

// Session Metrics
var (
	// ActiveSessions tracks sessions currently held in memory
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flagquiz_active_sessions",
			Help: "Number of game sessions held in memory",
		},
	)

	// SessionsEvictedTotal tracks sessions dropped by the idle janitor
	SessionsEvictedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flagquiz_sessions_evicted_total",
			Help: "Total idle game sessions evicted from memory",
		},
	)
)

// Results Log Metrics
var (
	// ResultWritesTotal tracks writes to the results log by status
	ResultWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flagquiz_result_writes_total",
			Help: "Total finished-game writes to the results log by status",
		},
		[]string{"status"},
	)
)

// Telegram Metrics
var (
	// UpdatesTotal tracks Telegram updates by kind
	UpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flagquiz_telegram_updates_total",
			Help: "Total Telegram updates received by kind (command, callback, message)",
		},
		[]string{"kind"},
	)

	// SendErrorsTotal tracks failed Telegram API calls
	SendErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flagquiz_telegram_send_errors_total",
			Help: "Total failed Telegram send or request calls",
		},
	)
)
