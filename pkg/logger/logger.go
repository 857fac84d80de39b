package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithUserID adds user ID to logger context
func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("user_id", userID))}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{Logger: l.Logger.With(args...)}
}

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// Ticket lifecycle logging

// LogTicketBooked logs a successful booking
func (l *Logger) LogTicketBooked(ticketNumber, eventID, seatNumber string, price float64) {
	l.Logger.Info("Ticket Booked",
		slog.String("ticket_number", ticketNumber),
		slog.String("event_id", eventID),
		slog.String("seat_number", seatNumber),
		slog.Float64("price", price),
	)
}

// LogTicketCancelled logs a cancellation with seat release
func (l *Logger) LogTicketCancelled(ticketNumber, eventID, seatNumber string) {
	l.Logger.Info("Ticket Cancelled",
		slog.String("ticket_number", ticketNumber),
		slog.String("event_id", eventID),
		slog.String("seat_number", seatNumber),
	)
}

// LogCheckIn logs a gate check-in
func (l *Logger) LogCheckIn(ticketNumber, eventID, gate string) {
	l.Logger.Info("Ticket Checked In",
		slog.String("ticket_number", ticketNumber),
		slog.String("event_id", eventID),
		slog.String("gate", gate),
	)
}

// LogTicketsExpired logs an expiry sweep result
func (l *Logger) LogTicketsExpired(count int) {
	l.Logger.Info("Tickets Expired", slog.Int("count", count))
}

// Security logging

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Package-level convenience helpers on the default logger.

func Info(msg string, args ...interface{}) {
	defaultLogger.Logger.Info(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	defaultLogger.Logger.Warn(msg, args...)
}

func Error(msg string, args ...interface{}) {
	defaultLogger.Logger.Error(msg, args...)
}

func LogTicketBooked(ticketNumber, eventID, seatNumber string, price float64) {
	defaultLogger.LogTicketBooked(ticketNumber, eventID, seatNumber, price)
}

func LogTicketCancelled(ticketNumber, eventID, seatNumber string) {
	defaultLogger.LogTicketCancelled(ticketNumber, eventID, seatNumber)
}

func LogCheckIn(ticketNumber, eventID, gate string) {
	defaultLogger.LogCheckIn(ticketNumber, eventID, gate)
}

func LogTicketsExpired(count int) {
	defaultLogger.LogTicketsExpired(count)
}
