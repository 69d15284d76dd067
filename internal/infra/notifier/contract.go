package notifier

// MetricsRecorder записывает метрики доставки уведомлений
type MetricsRecorder interface {
	ObserveNotification(result string)
	SetWebSocketClients(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Conn соединение WebSocket (абстракция для тестов)
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}
