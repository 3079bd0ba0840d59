package sim

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// DroneState - позиция и курс дрона. Мутируется только полетной моделью
// раз в кадр.
//
// Соглашение по осям (совпадает с камерой three.js на клиенте):
// yaw = 0 смотрит вдоль -Z; yaw растет против часовой стрелки, если
// смотреть сверху, поэтому yawLeft увеличивает yaw, yawRight уменьшает.
type DroneState struct {
	Position mgl64.Vec3
	Yaw      float64
}

// Forward возвращает мировой вектор "вперед" для курса yaw.
func Forward(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(yaw), 0, -math.Cos(yaw)}
}

// Right возвращает мировой вектор "вправо" для курса yaw.
func Right(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}
}

// FlightConfig - все константы полетной модели. Поступают из внешней
// конфигурации при создании, модель их не меняет.
type FlightConfig struct {
	MoveSpeed        float64 `json:"move_speed"`        // единиц в секунду
	RotateSpeed      float64 `json:"rotate_speed"`      // радиан в секунду
	BasicMultiplier  float64 `json:"basic_multiplier"`  // обычный режим
	ThrustMultiplier float64 `json:"thrust_multiplier"` // режим ускорения

	WorldSize       float64 `json:"world_size"`
	BorderFactor    float64 `json:"border_factor"`
	BorderDelimiter float64 `json:"border_delimiter"`

	MinClearance float64 `json:"min_clearance"` // зазор над рельефом
	MaxAltitude  float64 `json:"max_altitude"`
}

// HeightSource - то, что полетной модели нужно от террейна: одна чистая
// функция высоты. Ей удовлетворяет terrain.Field.
type HeightSource interface {
	Height(x, z float64) float64
}

// FlightModel - кинематическое обновление дрона раз в кадр. Сама модель
// без состояния: весь изменяемый мир - это DroneState, который передают
// по ссылке на время вызова.
type FlightModel struct {
	cfg     FlightConfig
	terrain HeightSource
}

// NewFlightModel создает модель над источником высот.
func NewFlightModel(cfg FlightConfig, terrain HeightSource) *FlightModel {
	return &FlightModel{cfg: cfg, terrain: terrain}
}

// HalfExtent возвращает половину допустимого пролета по X и Z.
// Граница нарочно меньше видимого края террейна: дрон не должен
// подлетать к вырожденной кромке меша.
func (m *FlightModel) HalfExtent() float64 {
	return m.cfg.WorldSize / (m.cfg.BorderFactor + m.cfg.BorderDelimiter)
}

// Update применяет один кадр управления к состоянию дрона.
// Все выходы за границы тихо зажимаются, ошибок здесь нет по построению:
// симуляция не имеет права остановиться на граничном условии.
func (m *FlightModel) Update(state *DroneState, input InputIntent, dt float64) {
	multiplier := m.cfg.BasicMultiplier
	if input.Boost {
		multiplier = m.cfg.ThrustMultiplier
	}

	moveDelta := m.cfg.MoveSpeed * dt * multiplier
	rotateDelta := m.cfg.RotateSpeed * dt

	// Продольное и боковое движение идет по локальным осям дрона:
	// куда "вперед" в мире - решает текущий курс, не мировые оси.
	forward := Forward(state.Yaw)
	right := Right(state.Yaw)

	pos := state.Position
	if input.Forward {
		pos = pos.Add(forward.Mul(moveDelta))
	}
	if input.Backward {
		pos = pos.Sub(forward.Mul(moveDelta))
	}
	if input.StrafeLeft {
		pos = pos.Sub(right.Mul(moveDelta))
	}
	if input.StrafeRight {
		pos = pos.Add(right.Mul(moveDelta))
	}

	if input.YawLeft {
		state.Yaw += rotateDelta
	}
	if input.YawRight {
		state.Yaw -= rotateDelta
	}

	// Вертикаль всегда мировая: подъем не зависит от курса
	if input.Ascend {
		pos[1] += moveDelta
	}
	if input.Descend {
		pos[1] -= moveDelta
	}

	half := m.HalfExtent()
	pos[0] = clamp(pos[0], -half, half)
	pos[2] = clamp(pos[2], -half, half)

	// Высота земли берется в уже зажатой точке, чтобы зазор считался
	// там, где дрон реально окажется
	ground := m.terrain.Height(pos[0], pos[2])
	minAltitude := math.Max(0, ground+m.cfg.MinClearance)
	pos[1] = clamp(pos[1], minAltitude, m.cfg.MaxAltitude)

	state.Position = pos
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Drone - сущность дрона, разделяемая между игровым циклом (пишет)
// и стримингом состояния клиентам (читает из своей горутины).
type Drone struct {
	mu    sync.RWMutex
	state DroneState
}

// NewDrone создает дрона в стартовой позиции.
func NewDrone(start DroneState) *Drone {
	return &Drone{state: start}
}

// State возвращает копию текущего состояния.
func (d *Drone) State() DroneState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// SetState заменяет состояние после кадра полетной модели.
func (d *Drone) SetState(state DroneState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = state
}
