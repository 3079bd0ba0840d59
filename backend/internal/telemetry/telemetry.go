package telemetry

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Vector3 структура для 3D вектора
type Vector3 struct {
	X, Y, Z float64
}

// DroneSample - одна запись телеметрии дрона
type DroneSample struct {
	Timestamp       int64   `json:"timestamp"` // Время в миллисекундах
	Position        Vector3 `json:"position"`
	Yaw             float64 `json:"yaw"`
	GroundHeight    float64 `json:"ground_height"`    // Высота рельефа под дроном
	Clearance       float64 `json:"clearance"`        // Запас высоты над рельефом
	LiveProjectiles int     `json:"live_projectiles"` // Снарядов в полете
	Source          string  `json:"source"`
}

// TelemetryManager управляет сбором и выводом телеметрии
type TelemetryManager struct {
	enabled    bool
	data       []DroneSample
	mutex      sync.RWMutex
	maxEntries int

	// Счетчики для статистики
	counters      map[string]int
	lastPrint     time.Time
	printInterval time.Duration
}

// NewTelemetryManager создает новый менеджер телеметрии
func NewTelemetryManager() *TelemetryManager {
	return &TelemetryManager{
		enabled:       true, // Включаем по умолчанию для отладки
		data:          make([]DroneSample, 0),
		maxEntries:    200, // Храним последние 200 записей
		counters:      make(map[string]int),
		lastPrint:     time.Now(),
		printInterval: 2 * time.Second, // Выводим статистику каждые 2 секунды
	}
}

// LogDroneState записывает состояние дрона
func (tm *TelemetryManager) LogDroneState(position Vector3, yaw, groundHeight float64, liveProjectiles int) {
	if !tm.enabled {
		return
	}

	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	entry := DroneSample{
		Timestamp:       time.Now().UnixMilli(),
		Position:        position,
		Yaw:             yaw,
		GroundHeight:    groundHeight,
		Clearance:       position.Y - groundHeight,
		LiveProjectiles: liveProjectiles,
		Source:          "server",
	}

	tm.data = append(tm.data, entry)

	// Ограничиваем размер буфера
	if len(tm.data) > tm.maxEntries {
		tm.data = tm.data[1:]
	}

	tm.counters["drone_samples"]++
}

// LogShot фиксирует выстрел для статистики
func (tm *TelemetryManager) LogShot() {
	if !tm.enabled {
		return
	}

	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	tm.counters["shots_fired"]++
}

// PrintSummary выводит сводку телеметрии
func (tm *TelemetryManager) PrintSummary() {
	if !tm.enabled {
		return
	}

	now := time.Now()
	if now.Sub(tm.lastPrint) < tm.printInterval {
		return
	}

	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	log.Println("🔬 [Telemetry] ===== СЕРВЕРНАЯ ТЕЛЕМЕТРИЯ =====")
	log.Printf("📊 [Telemetry] Всего записей: %d", len(tm.data))

	// Статистика по счетчикам
	for key, count := range tm.counters {
		log.Printf("📈 [Telemetry] %s: %d", key, count)
	}

	// Последнее состояние дрона
	if len(tm.data) > 0 {
		last := tm.data[len(tm.data)-1]
		timestamp := time.UnixMilli(last.Timestamp)

		log.Printf("🚁 [Telemetry] Дрон [%s]:", timestamp.Format("15:04:05.000"))
		log.Printf("   📍 Позиция: (%.2f, %.2f, %.2f), курс: %.3f",
			last.Position.X, last.Position.Y, last.Position.Z, last.Yaw)
		log.Printf("   ⛰  Рельеф под дроном: %.2f, запас высоты: %.2f",
			last.GroundHeight, last.Clearance)
		log.Printf("   🚀 Снарядов в полете: %d", last.LiveProjectiles)
	}

	// Сброс счетчиков
	tm.counters = make(map[string]int)
	tm.lastPrint = now

	log.Println("🔬 [Telemetry] ===================================")
}

// GetTelemetryJSON возвращает телеметрию в JSON формате
func (tm *TelemetryManager) GetTelemetryJSON() (string, error) {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	jsonData, err := json.MarshalIndent(tm.data, "", "  ")
	if err != nil {
		return "", err
	}

	return string(jsonData), nil
}

// SetEnabled включает/выключает телеметрию
func (tm *TelemetryManager) SetEnabled(enabled bool) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	tm.enabled = enabled
	log.Printf("🔬 [Telemetry] Телеметрия %s", map[bool]string{true: "включена", false: "выключена"}[enabled])
}

// Clear очищает все данные телеметрии
func (tm *TelemetryManager) Clear() {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	tm.data = make([]DroneSample, 0)
	tm.counters = make(map[string]int)
	log.Println("🔬 [Telemetry] Данные телеметрии очищены")
}

// Глобальный экземпляр для удобства использования
var GlobalTelemetry = NewTelemetryManager()
