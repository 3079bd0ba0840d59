package game

import (
	"time"

	"sky-drone/backend/internal/sim"
	"sky-drone/backend/internal/telemetry"
	"sky-drone/backend/internal/world"
)

// FlightSystem продвигает состояние дрона по снимку ввода и публикует
// результат в реестр мира для стриминга клиентам.
type FlightSystem struct {
	drone   *sim.Drone
	intents *sim.IntentState
	model   *sim.FlightModel
	manager *world.Manager
}

func NewFlightSystem(drone *sim.Drone, intents *sim.IntentState, model *sim.FlightModel, manager *world.Manager) *FlightSystem {
	return &FlightSystem{
		drone:   drone,
		intents: intents,
		model:   model,
		manager: manager,
	}
}

func (fs *FlightSystem) Update(deltaTime time.Duration) error {
	input := fs.intents.Snapshot()

	state := fs.drone.State()
	fs.model.Update(&state, input, deltaTime.Seconds())
	fs.drone.SetState(state)

	fs.manager.UpdateObjectState(world.DroneObjectID, world.Vector3{
		X: float32(state.Position.X()),
		Y: float32(state.Position.Y()),
		Z: float32(state.Position.Z()),
	}, float32(state.Yaw))

	return nil
}

func (fs *FlightSystem) GetName() string { return "FlightSystem" }

// Полет идет раньше снарядов: выстрел в этом же тике уходит
// из уже обновленной позиции дрона.
func (fs *FlightSystem) GetPriority() int { return 10 }

// ProjectileTickSystem отрабатывает намерение выстрела и продвигает
// живые снаряды.
type ProjectileTickSystem struct {
	drone       *sim.Drone
	intents     *sim.IntentState
	projectiles *sim.ProjectileSystem
}

func NewProjectileTickSystem(drone *sim.Drone, intents *sim.IntentState, projectiles *sim.ProjectileSystem) *ProjectileTickSystem {
	return &ProjectileTickSystem{
		drone:       drone,
		intents:     intents,
		projectiles: projectiles,
	}
}

func (ps *ProjectileTickSystem) Update(deltaTime time.Duration) error {
	input := ps.intents.Snapshot()

	if input.Fire {
		state := ps.drone.State()
		// Fire сам решает, позволяет ли кулдаун: nil здесь не ошибка
		ps.projectiles.Fire(state.Position, sim.Forward(state.Yaw))
	}

	ps.projectiles.Advance(deltaTime.Seconds())

	return nil
}

func (ps *ProjectileTickSystem) GetName() string { return "ProjectileTickSystem" }

func (ps *ProjectileTickSystem) GetPriority() int { return 20 }

// TelemetrySystem снимает состояние дрона в телеметрию и периодически
// печатает сводку. Работает после систем симуляции, чтобы видеть
// итоговое состояние тика.
type TelemetrySystem struct {
	drone       *sim.Drone
	projectiles *sim.ProjectileSystem
	ground      sim.HeightSource
	manager     *telemetry.TelemetryManager
}

func NewTelemetrySystem(drone *sim.Drone, projectiles *sim.ProjectileSystem, ground sim.HeightSource, manager *telemetry.TelemetryManager) *TelemetrySystem {
	return &TelemetrySystem{
		drone:       drone,
		projectiles: projectiles,
		ground:      ground,
		manager:     manager,
	}
}

func (ts *TelemetrySystem) Update(deltaTime time.Duration) error {
	state := ts.drone.State()

	ts.manager.LogDroneState(
		telemetry.Vector3{
			X: state.Position.X(),
			Y: state.Position.Y(),
			Z: state.Position.Z(),
		},
		state.Yaw,
		ts.ground.Height(state.Position.X(), state.Position.Z()),
		len(ts.projectiles.Live()),
	)

	ts.manager.PrintSummary()

	return nil
}

func (ts *TelemetrySystem) GetName() string { return "TelemetrySystem" }

func (ts *TelemetrySystem) GetPriority() int { return 30 }
