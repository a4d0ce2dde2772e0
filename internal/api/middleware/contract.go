package middleware

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HTTPMetrics интерфейс учета HTTP запросов
type HTTPMetrics interface {
	ObserveHTTP(method, path string, status int, duration time.Duration)
}
