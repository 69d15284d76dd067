package notifier

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// Hub хранит подключения пользователей и рассылает им уведомления
// У одного пользователя может быть несколько подключений (вкладки, устройства)
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{} // userID -> подключения
	total   int

	sendBuffer int
	upgrader   websocket.Upgrader
	metrics    MetricsRecorder
	logger     Logger
}

// NewHub создает новый хаб
// sendBuffer: размер очереди исходящих сообщений на одно подключение
func NewHub(sendBuffer int, recorder MetricsRecorder, logger Logger, opts ...Option) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	if recorder == nil {
		// методы *metrics.Metrics безопасны для nil-получателя
		recorder = (*metrics.Metrics)(nil)
	}
	h := &Hub{
		clients:    make(map[int64]map[*Client]struct{}),
		sendBuffer: sendBuffer,
		upgrader:   newUpgrader(),
		metrics:    recorder,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register добавляет подключение пользователя
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[*Client]struct{})
	}
	h.clients[client.UserID][client] = struct{}{}
	h.total++

	h.metrics.SetWebSocketClients(h.total)
	h.logger.Info("Hub: client %s of user=%d connected, total=%d", client.ID, client.UserID, h.total)
}

// Unregister удаляет подключение и закрывает его очередь
// Повторный вызов безопасен
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := subscribers[client]; !ok {
		return
	}

	delete(subscribers, client)
	if len(subscribers) == 0 {
		delete(h.clients, client.UserID)
	}
	h.total--
	close(client.Send)

	h.metrics.SetWebSocketClients(h.total)
	h.logger.Info("Hub: client %s of user=%d disconnected, total=%d", client.ID, client.UserID, h.total)
}

// Notify отправляет событие всем подключениям пользователя
// Никогда не блокируется: если очередь подключения заполнена, сообщение для него отбрасывается
func (h *Hub) Notify(_ context.Context, recipientID int64, event domain.Event) {
	data, err := json.Marshal(NewMessage(event))
	if err != nil {
		h.logger.Error("Hub: failed to marshal event %s for request id=%d: %v", event.Type, event.RequestID, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	subscribers, ok := h.clients[recipientID]
	if !ok {
		// Пользователь не в сети: уведомления не хранятся
		h.metrics.ObserveNotification(metrics.DeliveryDropped)
		return
	}

	for client := range subscribers {
		select {
		case client.Send <- data:
			h.metrics.ObserveNotification(metrics.DeliveryDelivered)
		default:
			h.metrics.ObserveNotification(metrics.DeliveryDropped)
			h.logger.Warn("Hub: send buffer of client %s is full, event %s dropped", client.ID, event.Type)
		}
	}
}

// ClientCount возвращает общее число подключений
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// UserClientCount возвращает число подключений пользователя
func (h *Hub) UserClientCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// CloseAll закрывает все подключения (при остановке сервиса)
func (h *Hub) CloseAll() {
	h.mu.RLock()
	clients := make([]*Client, 0, h.total)
	for _, subscribers := range h.clients {
		for client := range subscribers {
			clients = append(clients, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if client.conn != nil {
			client.conn.Close()
		}
	}
}

// Nop notifier для режима с выключенными уведомлениями
type Nop struct{}

// Notify ничего не делает
func (Nop) Notify(context.Context, int64, domain.Event) {}
