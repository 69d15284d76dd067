package notifier

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// pongWait сколько ждём pong от клиента
	pongWait = 60 * time.Second

	// pingPeriod период отправки ping, должен быть меньше pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize входящие сообщения клиенту не нужны, ограничиваем размер
	maxMessageSize = 512

	defaultWriteTimeout = 10 * time.Second
)

// Option настройка хаба
type Option func(*Hub)

// WithAllowedOrigins задает список Origin, с которых разрешено подключение
// Пустой список: только тот же хост (проверка gorilla/websocket по умолчанию), "*": любой Origin
func WithAllowedOrigins(origins []string) Option {
	return func(h *Hub) {
		h.upgrader.CheckOrigin = originChecker(origins)
	}
}

func newUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// originChecker возвращает nil для пустого списка, тогда Upgrader сравнивает Origin с Host
func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return nil
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		if origin != "" {
			allowed[strings.ToLower(origin)] = struct{}{}
		}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			// не браузер: токен проверен до апгрейда
			return true
		}
		_, ok := allowed[strings.ToLower(origin)]
		return ok
	}
}

// Client одно WebSocket подключение пользователя
type Client struct {
	ID     string
	UserID int64
	Send   chan []byte
	conn   Conn
}

// NewClient создает клиента поверх установленного соединения
func (h *Hub) NewClient(userID int64, conn Conn) *Client {
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Send:   make(chan []byte, h.sendBuffer),
		conn:   conn,
	}
}

// Serve переводит HTTP запрос в WebSocket и держит подключение пользователя
// Аутентификация выполняется до вызова: userID берётся из проверенного токена
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID int64, writeTimeout time.Duration) error {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	client := h.NewClient(userID, ws)
	h.Register(client)

	go h.writePump(client, ws, writeTimeout)
	go h.readPump(client)

	return nil
}

// readPump читает соединение до ошибки, чтобы обрабатывать close и pong
// Входящие сообщения игнорируются: канал только для уведомлений
func (h *Hub) readPump(client *Client) {
	defer func() {
		h.Unregister(client)
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump пишет сообщения из очереди клиента и периодически шлёт ping
func (h *Hub) writePump(client *Client, ws *websocket.Conn, writeTimeout time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Хаб закрыл очередь
				_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, message); err != nil {
				h.logger.Warn("Hub: write to client %s failed: %v", client.ID, err)
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
