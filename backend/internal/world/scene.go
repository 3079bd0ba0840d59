package world

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"sky-drone/backend/internal/sim"
	"sky-drone/backend/internal/terrain"
)

// Идентификаторы постоянных объектов сцены
const (
	TerrainObjectID = "terrain_main"
	DroneObjectID   = "drone_1"
)

// SceneBuilder наполняет реестр стартовыми объектами: меш рельефа
// (снимается с TerrainField один раз) и дрон.
type SceneBuilder struct {
	manager *Manager
}

func NewSceneBuilder(manager *Manager) *SceneBuilder {
	return &SceneBuilder{manager: manager}
}

// BuildTerrain снимает сетку высот с террейна и кладет ее в реестр как
// статический объект. Дорого, но выполняется один раз при старте.
func (b *SceneBuilder) BuildTerrain(field *terrain.Field, waterLevel float64) *Object {
	n := field.Resolution()
	count := (n + 1) * (n + 1)

	heights := make([]float32, 0, count)
	colors := make([]string, 0, count)

	minH := math.Inf(1)
	maxH := math.Inf(-1)

	field.ForEachGridPoint(func(p terrain.GridPoint) {
		heights = append(heights, float32(p.Height))
		colors = append(colors, p.Bucket.Color)
		if p.Height < minH {
			minH = p.Height
		}
		if p.Height > maxH {
			maxH = p.Height
		}
	})

	obj := &Object{
		ID:   TerrainObjectID,
		Kind: KindTerrain,
		Terrain: &TerrainShape{
			Heights:    heights,
			Colors:     colors,
			GridN:      int32(n),
			Size:       float32(field.Size()),
			MinHeight:  float32(minH),
			MaxHeight:  float32(maxH),
			WaterLevel: float32(waterLevel),
		},
	}
	b.manager.AddObject(obj)

	log.Printf("[Scene] Террейн собран: сетка %dx%d, высоты [%.1f, %.1f]",
		n+1, n+1, minH, maxH)

	return obj
}

// BuildDrone кладет дрона в реестр в стартовом состоянии.
func (b *SceneBuilder) BuildDrone(state sim.DroneState) *Object {
	obj := &Object{
		ID:   DroneObjectID,
		Kind: KindDrone,
		Position: Vector3{
			X: float32(state.Position.X()),
			Y: float32(state.Position.Y()),
			Z: float32(state.Position.Z()),
		},
		Yaw: float32(state.Yaw),
		Drone: &DroneShape{
			BodyWidth:  14,
			BodyHeight: 4,
			BodyDepth:  14,
			Color:      "#d94f30",
		},
	}
	b.manager.AddObject(obj)

	log.Printf("[Scene] Дрон создан в (%.1f, %.1f, %.1f)",
		obj.Position.X, obj.Position.Y, obj.Position.Z)

	return obj
}

// SpawnStart выбирает стартовую позицию дрона: центр мира, на безопасной
// высоте над рельефом.
func SpawnStart(field *terrain.Field, flight sim.FlightConfig) sim.DroneState {
	ground := field.Height(0, 0)
	y := math.Max(0, ground+flight.MinClearance) + 120

	if y > flight.MaxAltitude {
		y = flight.MaxAltitude
	}

	return sim.DroneState{
		Position: mgl64.Vec3{0, y, 0},
		Yaw:      0,
	}
}
