package platform

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Observer получает длительность и результат каждого вызова платформы
type Observer interface {
	ObservePlatformCall(operation string, err error, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObservePlatformCall(string, error, time.Duration) {}
