package ws

import (
	"encoding/json"
	"log"
	"time"

	"sky-drone/backend/internal/sim"
)

// handleCmd обрабатывает команды управления от клиента
func (s *WSServer) handleCmd(conn *SafeWriter, message interface{}) error {
	cmdMsg, ok := message.(*CommandMessage)
	if !ok {
		return ErrInvalidMessage
	}

	switch cmdMsg.Cmd {
	case "INPUT":
		if err := s.handleInputCommand(cmdMsg); err != nil {
			log.Printf("[Go] Ошибка обработки команды INPUT: %v", err)
			return nil
		}

	default:
		log.Printf("[Go] Неизвестная команда: %s", cmdMsg.Cmd)
		return nil
	}

	// Отправляем подтверждение обработки команды
	ackMsg := NewAckMessage(cmdMsg.Cmd, cmdMsg.ClientTime)
	return conn.WriteJSON(ackMsg)
}

// handleInputCommand разбирает флаги управления и передает их игровому
// циклу. Клиент шлет полный снимок флагов при каждом изменении, поэтому
// состояние заменяется целиком, а не накапливается.
func (s *WSServer) handleInputCommand(cmdMsg *CommandMessage) error {
	// Преобразуем interface{} обратно в JSON для строгого разбора
	dataBytes, err := json.Marshal(cmdMsg.Data)
	if err != nil {
		return err
	}

	var intent sim.InputIntent
	if err := json.Unmarshal(dataBytes, &intent); err != nil {
		return err
	}

	s.intents.Set(intent)
	return nil
}

// handlePing обрабатывает ping-сообщения
func (s *WSServer) handlePing(conn *SafeWriter, message interface{}) error {
	pingMsg, ok := message.(*PingMessage)
	if !ok {
		return ErrInvalidMessage
	}

	// Отправляем pong в ответ
	return conn.WriteJSON(NewPongMessage(pingMsg.ClientTime))
}

// startPing запускает периодическую отправку пингов для проверки соединения
func (s *WSServer) startPing(conn *SafeWriter, done <-chan struct{}) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			pingMsg := map[string]interface{}{
				"type":        MessageTypePing,
				"server_time": GetCurrentServerTime(),
			}

			if err := conn.WriteJSON(pingMsg); err != nil {
				log.Printf("Error sending ping: %v", err)
				return
			}
		}
	}
}
