package main

import (
	"log"
	"net/http"
	"os"

	"sky-drone/backend/internal/game"
	"sky-drone/backend/internal/sim"
	"sky-drone/backend/internal/telemetry"
	"sky-drone/backend/internal/terrain"
	"sky-drone/backend/internal/transport/ws"
	"sky-drone/backend/internal/world"
)

// Основная функция
func main() {
	// Конфигурация симуляции: размеры мира, октавы шума, параметры полета
	config := world.GetSimConfig()

	// Генерация террейна. Ошибка конфигурации фатальна: без рельефа
	// симуляция не имеет смысла
	terrainField, err := terrain.New(config.Terrain.TerrainConfig())
	if err != nil {
		log.Fatalf("Failed to create terrain: %v", err)
	}
	log.Printf("[Go] Террейн сгенерирован: мир %.0f, сетка %d", config.Terrain.Size, config.Terrain.Resolution)

	// Создаем менеджер игрового мира
	worldManager := world.NewManager()

	// Наполняем сцену: террейн первым, чтобы клиент получил его раньше дрона
	sceneBuilder := world.NewSceneBuilder(worldManager)
	sceneBuilder.BuildTerrain(terrainField, config.WaterLevel)

	startState := world.SpawnStart(terrainField, config.Flight)
	sceneBuilder.BuildDrone(startState)

	// Состояние симуляции
	drone := sim.NewDrone(startState)
	intents := sim.NewIntentState()
	flightModel := sim.NewFlightModel(config.Flight, terrainField)
	projectiles := sim.NewProjectileSystem(config.Projectile)

	// Игровой цикл: полет, снаряды, телеметрия
	ticker := game.NewSimTicker(config.Ticker.TargetTPS, nil)
	ticker.RegisterSystem(game.NewFlightSystem(drone, intents, flightModel, worldManager))
	ticker.RegisterSystem(game.NewProjectileTickSystem(drone, intents, projectiles))
	ticker.RegisterSystem(game.NewTelemetrySystem(drone, projectiles, terrainField, telemetry.GlobalTelemetry))

	if err := ticker.Start(); err != nil {
		log.Fatalf("Failed to start game ticker: %v", err)
	}
	defer ticker.Stop()

	// WebSocket сервер
	wsServer := ws.NewWSServer(worldManager, drone, intents, projectiles)
	http.HandleFunc("/ws", wsServer.HandleWS)

	// Статика клиента
	staticDir := "../../../dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		log.Printf("Warning: Directory %s does not exist", staticDir)
	}

	fs := http.FileServer(http.Dir(staticDir))
	http.Handle("/", http.StripPrefix("/", fs))

	log.Printf("Serving static files from: %s\n", staticDir)
	log.Println("Server starting on :8080")
	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatal(err)
	}
}
