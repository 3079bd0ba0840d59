package ws

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"sky-drone/backend/internal/sim"
	"sky-drone/backend/internal/world"
)

const (
	DefaultUpdateInterval = 50 * time.Millisecond // Интервал отправки обновлений
	DefaultPingInterval   = 2 * time.Second       // Интервал отправки пингов
)

// MessageHandler - тип функции обработчика сообщений
type MessageHandler func(conn *SafeWriter, message interface{}) error

// WSServer представляет WebSocket сервер с поддержкой потокобезопасной записи.
// Симуляция одна на процесс: все клиенты видят одного дрона и управляют им.
type WSServer struct {
	upgrader     websocket.Upgrader
	worldManager *world.Manager
	serializer   *WorldSerializer
	handlers     map[string]MessageHandler
	pingInterval time.Duration

	// Состояние симуляции, которое стримится клиентам
	drone       *sim.Drone
	intents     *sim.IntentState
	projectiles *sim.ProjectileSystem
}

// NewWSServer создает новый экземпляр WebSocket сервера
func NewWSServer(worldManager *world.Manager, drone *sim.Drone, intents *sim.IntentState, projectiles *sim.ProjectileSystem) *WSServer {
	server := &WSServer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		worldManager: worldManager,
		serializer:   NewWorldSerializer(worldManager),
		handlers:     make(map[string]MessageHandler),
		pingInterval: DefaultPingInterval,

		drone:       drone,
		intents:     intents,
		projectiles: projectiles,
	}

	// Регистрируем стандартные обработчики
	server.RegisterHandler(MessageTypePing, server.handlePing)
	server.RegisterHandler(MessageTypeCommand, server.handleCmd)

	return server
}

// RegisterHandler регистрирует обработчик для конкретного типа сообщений
func (s *WSServer) RegisterHandler(messageType string, handler MessageHandler) {
	s.handlers[messageType] = handler
}

// SetPingInterval устанавливает интервал отправки пингов
func (s *WSServer) SetPingInterval(interval time.Duration) {
	s.pingInterval = interval
}

// HandleWS обрабатывает входящие WebSocket соединения
func (s *WSServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade error: %v", err)
		return
	}

	// Создаем потокобезопасную обертку для WebSocket соединения
	safeConn := NewSafeWriter(conn)

	// Канал остановки фоновых горутин этого соединения
	done := make(chan struct{})

	defer func() {
		close(done)
		// Сбрасываем флаги управления, чтобы дрон не продолжал
		// лететь по последней команде оборвавшегося клиента
		s.intents.Reset()
		safeConn.Close()
	}()

	log.Printf("New WebSocket connection established from %s", safeConn.RemoteAddr())

	// Отправляем приветственное сообщение
	if err := safeConn.WriteJSON(NewInfoMessage("Successfully connected to sky-drone server")); err != nil {
		log.Printf("Error sending welcome message: %v", err)
		return
	}

	// Отправляем клиенту конфигурацию симуляции перед созданием объектов
	s.sendSimConfig(safeConn)

	// Теперь отправляем существующие объекты: террейн и дрона
	if err := s.serializer.SendCreateForAllObjects(safeConn); err != nil {
		log.Printf("[Go] Ошибка при отправке существующих объектов: %v", err)
		return
	}

	// Запускаем пинг для поддержания соединения
	if s.pingInterval > 0 {
		go s.startPing(safeConn, done)
	}

	go s.startClientStreaming(safeConn, done)

	// Основной цикл обработки сообщений
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		// Разбираем сообщение
		message, err := ParseMessage(data)
		if err != nil {
			log.Printf("Error parsing message: %v", err)
			continue
		}

		// Получаем тип сообщения
		var messageType string
		switch msg := message.(type) {
		case *CommandMessage:
			messageType = msg.Type
		case *PingMessage:
			messageType = msg.Type
		case *PongMessage:
			messageType = msg.Type
		case *AckMessage:
			messageType = msg.Type
		case *InfoMessage:
			messageType = msg.Type
		default:
			log.Printf("Unknown message type: %T", message)
			continue
		}

		// Ищем обработчик для данного типа сообщений
		if handler, ok := s.handlers[messageType]; ok {
			if err := handler(safeConn, message); err != nil {
				log.Printf("Error handling message %s: %v", messageType, err)
			}
		} else {
			log.Printf("No handler registered for message type: %s", messageType)
		}
	}

	log.Printf("WebSocket connection closed: %s", safeConn.RemoteAddr())
}

// sendSimConfig отправляет конфигурацию симуляции клиенту: клиенту нужны
// размеры мира и параметры полета для камеры и индикации
func (s *WSServer) sendSimConfig(conn *SafeWriter) {
	simConfig := world.GetSimConfig()

	configMessage := map[string]interface{}{
		"type":   "sim_config",
		"config": simConfig,
	}

	if err := conn.WriteJSON(configMessage); err != nil {
		log.Printf("[Go] Ошибка отправки конфигурации симуляции: %v", err)
	} else {
		log.Printf("[Go] Конфигурация симуляции отправлена клиенту")
	}
}
