package ws

import (
	"log"
	"time"

	"sky-drone/backend/internal/world"
)

// startClientStreaming запускает потоковую передачу состояния симуляции
// клиенту. Снаряды передаются только в batch_update: клиент создает их
// при первом появлении идентификатора и убирает, когда идентификатор
// пропадает из пакета.
func (s *WSServer) startClientStreaming(wsWriter *SafeWriter, done <-chan struct{}) {
	ticker := time.NewTicker(DefaultUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}

		updates := make(map[string]interface{})

		// Дрон: позиция и курс из состояния симуляции
		droneState := s.drone.State()
		updates[world.DroneObjectID] = map[string]interface{}{
			"type":        MessageTypeUpdate,
			"id":          world.DroneObjectID,
			"object_type": "drone",
			"position": map[string]float32{
				"x": safeFloat32(float32(droneState.Position.X()), 0.0),
				"y": safeFloat32(float32(droneState.Position.Y()), 0.0),
				"z": safeFloat32(float32(droneState.Position.Z()), 0.0),
			},
			"yaw": safeFloat32(float32(droneState.Yaw), 0.0),
		}

		// Живые снаряды
		for _, p := range s.projectiles.Live() {
			updates[p.ID] = map[string]interface{}{
				"type":        MessageTypeUpdate,
				"id":          p.ID,
				"object_type": "projectile",
				"position": map[string]float32{
					"x": safeFloat32(float32(p.Position.X()), 0.0),
					"y": safeFloat32(float32(p.Position.Y()), 0.0),
					"z": safeFloat32(float32(p.Position.Z()), 0.0),
				},
			}
		}

		batchUpdate := map[string]interface{}{
			"type":    MessageTypeBatch,
			"updates": updates,
			"time":    GetCurrentServerTime(),
		}

		if err := wsWriter.WriteJSON(batchUpdate); err != nil {
			log.Printf("[Go] Ошибка отправки пакетного обновления: %v", err)
			return
		}
	}
}
