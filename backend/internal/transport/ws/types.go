package ws

import "errors"

// Константы для WebSocket сообщений
const (
	// Типы сообщений
	MessageTypeCreate  = "create"       // Создание объекта
	MessageTypeUpdate  = "update"       // Обновление объекта
	MessageTypeBatch   = "batch_update" // Пакетное обновление объектов
	MessageTypePing    = "ping"         // Пинг для измерения задержки
	MessageTypePong    = "pong"         // Ответ на пинг
	MessageTypeCommand = "cmd"          // Команда от клиента
	MessageTypeAck     = "cmd_ack"      // Подтверждение команды
	MessageTypeInfo    = "info"         // Информационное сообщение
)

// ErrInvalidMessage возвращается обработчиком, если тип сообщения
// не совпал с ожидаемым.
var ErrInvalidMessage = errors.New("invalid message for handler")

// CommandMessage представляет команду от клиента.
// Для cmd "INPUT" в Data лежат флаги управления дроном.
type CommandMessage struct {
	Type       string      `json:"type"`
	Cmd        string      `json:"cmd,omitempty"`
	ClientTime int64       `json:"client_time,omitempty"`
	Data       interface{} `json:"data"`
}

// AckMessage представляет подтверждение команды сервером
type AckMessage struct {
	Type       string `json:"type"`
	Cmd        string `json:"cmd"`
	ClientTime int64  `json:"client_time"`
	ServerTime int64  `json:"server_time"`
}

// PingMessage представляет пинг от клиента
type PingMessage struct {
	Type       string `json:"type"`
	ClientTime int64  `json:"client_time"`
}

// PongMessage представляет ответ на пинг от сервера
type PongMessage struct {
	Type       string `json:"type"`
	ClientTime int64  `json:"client_time"`
	ServerTime int64  `json:"server_time"`
}

// InfoMessage представляет информационное сообщение от сервера
type InfoMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
