package ws

import (
	"log"
	"math"

	"sky-drone/backend/internal/world"
)

// WorldSerializer отвечает за сериализацию объектов мира для отправки клиенту
type WorldSerializer struct {
	worldManager *world.Manager
}

// NewWorldSerializer создает новый экземпляр WorldSerializer
func NewWorldSerializer(worldManager *world.Manager) *WorldSerializer {
	return &WorldSerializer{
		worldManager: worldManager,
	}
}

// Вспомогательная функция для проверки и замены NaN
func safeFloat32(val float32, defaultVal float32) float32 {
	if math.IsNaN(float64(val)) {
		return defaultVal
	}
	return val
}

// SendCreateForAllObjects отправляет информацию о всех объектах клиенту.
// Реестр отдает объекты в порядке добавления, поэтому террейн уходит
// раньше дрона.
func (s *WorldSerializer) SendCreateForAllObjects(wsWriter *SafeWriter) error {
	worldObjects := s.worldManager.GetAllObjects()

	for _, obj := range worldObjects {
		msg := s.buildCreateMessage(obj)
		if msg == nil {
			log.Printf("[Serialize] Пропускаем объект %s: неизвестный тип %s", obj.ID, obj.Kind)
			continue
		}

		if err := wsWriter.WriteJSON(msg); err != nil {
			log.Printf("[Serialize] Ошибка отправки объекта %s: %v", obj.ID, err)
			return err
		}
	}

	return nil
}

// SendCreateForObject отправляет информацию об одном объекте клиенту
func (s *WorldSerializer) SendCreateForObject(wsWriter *SafeWriter, objectID string) error {
	obj, exists := s.worldManager.GetObject(objectID)
	if !exists {
		log.Printf("[Serialize] Объект %s не найден в реестре", objectID)
		return nil
	}

	msg := s.buildCreateMessage(obj)
	if msg == nil {
		return nil
	}

	return wsWriter.WriteJSON(msg)
}

// buildCreateMessage собирает create-сообщение для объекта мира
func (s *WorldSerializer) buildCreateMessage(obj *world.Object) map[string]interface{} {
	serverTime := GetCurrentServerTime()

	// Базовый объект с общими полями
	msg := map[string]interface{}{
		"type":        MessageTypeCreate,
		"id":          obj.ID,
		"x":           safeFloat32(obj.Position.X, 0.0),
		"y":           safeFloat32(obj.Position.Y, 0.0),
		"z":           safeFloat32(obj.Position.Z, 0.0),
		"yaw":         safeFloat32(obj.Yaw, 0.0),
		"server_time": serverTime,
	}

	// Заполняем поля в зависимости от типа объекта
	switch obj.Kind {
	case world.KindTerrain:
		if obj.Terrain == nil {
			return nil
		}
		msg["object_type"] = "terrain"

		// Проверяем высоты на NaN
		safeHeights := make([]float32, len(obj.Terrain.Heights))
		for i, h := range obj.Terrain.Heights {
			safeHeights[i] = safeFloat32(h, 0.0)
		}
		msg["height_data"] = safeHeights
		msg["colors"] = obj.Terrain.Colors
		msg["grid_n"] = obj.Terrain.GridN
		msg["size"] = safeFloat32(obj.Terrain.Size, 1.0)
		msg["min_height"] = safeFloat32(obj.Terrain.MinHeight, 0.0)
		msg["max_height"] = safeFloat32(obj.Terrain.MaxHeight, 10.0)
		msg["water_level"] = safeFloat32(obj.Terrain.WaterLevel, 0.0)

	case world.KindDrone:
		if obj.Drone == nil {
			return nil
		}
		msg["object_type"] = "drone"
		msg["width"] = safeFloat32(obj.Drone.BodyWidth, 1.0)
		msg["height"] = safeFloat32(obj.Drone.BodyHeight, 1.0)
		msg["depth"] = safeFloat32(obj.Drone.BodyDepth, 1.0)
		msg["color"] = obj.Drone.Color

	case world.KindProjectile:
		if obj.Projectile == nil {
			return nil
		}
		msg["object_type"] = "projectile"
		msg["radius"] = safeFloat32(obj.Projectile.Radius, 1.0)
		msg["color"] = obj.Projectile.Color

	default:
		return nil
	}

	return msg
}
