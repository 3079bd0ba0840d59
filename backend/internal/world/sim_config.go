package world

import (
	"sync"

	"sky-drone/backend/internal/sim"
	"sky-drone/backend/internal/terrain"
)

// TerrainSettings - конфигурация генерации рельефа.
type TerrainSettings struct {
	Seed       int64
	Size       float64
	Resolution int

	Octaves []terrain.Octave
	WarpX   terrain.Warp
	WarpZ   terrain.Warp

	Bands []terrain.Band
	Peak  terrain.VisualBucket
}

// TickerSettings - конфигурация игрового цикла.
type TickerSettings struct {
	TargetTPS int
}

// SimConfig объединяет все настройки симуляции. Ядро получает их как
// неизменяемые входы при создании и никогда не читает окружение или
// файлы само.
type SimConfig struct {
	Terrain    TerrainSettings
	Flight     sim.FlightConfig
	Projectile sim.ProjectileConfig
	Ticker     TickerSettings

	WaterLevel float64 // мировой Y плоскости воды на клиенте
}

var (
	simConfig SimConfig
	configMu  sync.RWMutex
)

// Конфигурация по умолчанию
func init() {
	simConfig = SimConfig{
		Terrain: TerrainSettings{
			Seed:       1337,
			Size:       8192,
			Resolution: 256,

			// Фрактальный рельеф: низкочастотная основа плюс детализация
			Octaves: []terrain.Octave{
				{FrequencyScale: 0.00018, Amplitude: 1150},
				{FrequencyScale: 0.0007, Amplitude: 340},
				{FrequencyScale: 0.0028, Amplitude: 90},
				{FrequencyScale: 0.011, Amplitude: 22},
			},
			// Доменное искажение ломает видимую решетку шума;
			// разные слои, чтобы смещения X и Z не коррелировали
			WarpX: terrain.Warp{FrequencyScale: 0.00006, Amplitude: 900, Layer: 7.3},
			WarpZ: terrain.Warp{FrequencyScale: 0.00005, Amplitude: 900, Layer: 19.7},

			// Таблица покрывает практический диапазон высот снизу,
			// первая граница сильно отрицательная
			Bands: []terrain.Band{
				{UpperBound: -260, Bucket: terrain.VisualBucket{Color: "#1a3a5c", Metalness: 0.1, Roughness: 0.9}},
				{UpperBound: 0, Bucket: terrain.VisualBucket{Color: "#2e5d7d", Metalness: 0.1, Roughness: 0.8}},
				{UpperBound: 28, Bucket: terrain.VisualBucket{Color: "#d9c78a", Metalness: 0.0, Roughness: 1.0}},
				{UpperBound: 320, Bucket: terrain.VisualBucket{Color: "#4a7c3b", Metalness: 0.0, Roughness: 1.0}},
				{UpperBound: 780, Bucket: terrain.VisualBucket{Color: "#2f5a28", Metalness: 0.0, Roughness: 1.0}},
				{UpperBound: 1260, Bucket: terrain.VisualBucket{Color: "#6b6b6b", Metalness: 0.2, Roughness: 0.7}},
			},
			Peak: terrain.VisualBucket{Color: "#f2f2f7", Metalness: 0.1, Roughness: 0.4},
		},

		Flight: sim.FlightConfig{
			MoveSpeed:        420.0,
			RotateSpeed:      1.6,
			BasicMultiplier:  1.0,
			ThrustMultiplier: 3.0,

			WorldSize:       8192.0,
			BorderFactor:    2.0,
			BorderDelimiter: 0.125,

			MinClearance: 4.0,
			MaxAltitude:  2048.0,
		},

		Projectile: sim.ProjectileConfig{
			Speed:    1600.0,
			TTL:      2.5,
			Cooldown: 0.18,
		},

		Ticker: TickerSettings{
			TargetTPS: 60,
		},

		WaterLevel: 2.0,
	}
}

// GetSimConfig возвращает текущую конфигурацию симуляции.
func GetSimConfig() SimConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return simConfig
}

// SetSimConfig устанавливает новую конфигурацию. Имеет смысл только до
// создания террейна и моделей: ядро копирует настройки при конструировании.
func SetSimConfig(config SimConfig) {
	configMu.Lock()
	defer configMu.Unlock()
	simConfig = config
}

// GetFlightConfig возвращает только настройки полета.
func GetFlightConfig() sim.FlightConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return simConfig.Flight
}

// GetProjectileConfig возвращает только настройки снарядов.
func GetProjectileConfig() sim.ProjectileConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return simConfig.Projectile
}

// TerrainConfig собирает terrain.Config из настроек.
func (ts TerrainSettings) TerrainConfig() terrain.Config {
	return terrain.Config{
		Seed:       ts.Seed,
		Size:       ts.Size,
		Resolution: ts.Resolution,
		Octaves:    ts.Octaves,
		WarpX:      ts.WarpX,
		WarpZ:      ts.WarpZ,
		Bands:      ts.Bands,
		Peak:       ts.Peak,
	}
}
