package world

import (
	"testing"

	"sky-drone/backend/internal/sim"
	"sky-drone/backend/internal/terrain"
)

func TestManager_OrderPreserved(t *testing.T) {
	m := NewManager()

	m.AddObject(&Object{ID: "terrain_main", Kind: KindTerrain})
	m.AddObject(&Object{ID: "drone_1", Kind: KindDrone})

	all := m.GetAllObjects()
	if len(all) != 2 {
		t.Fatalf("Ожидалось 2 объекта, получено %d", len(all))
	}
	// Террейн добавлен первым и должен уйти клиенту первым
	if all[0].ID != "terrain_main" || all[1].ID != "drone_1" {
		t.Errorf("Нарушен порядок объектов: %s, %s", all[0].ID, all[1].ID)
	}
}

func TestManager_UpdateObjectState(t *testing.T) {
	m := NewManager()
	m.AddObject(&Object{ID: "drone_1", Kind: KindDrone})

	m.UpdateObjectState("drone_1", Vector3{X: 1, Y: 2, Z: 3}, 0.5)

	obj, ok := m.GetObject("drone_1")
	if !ok {
		t.Fatal("Объект drone_1 не найден")
	}
	if obj.Position.X != 1 || obj.Position.Y != 2 || obj.Position.Z != 3 {
		t.Errorf("Позиция не обновлена: %+v", obj.Position)
	}
	if obj.Yaw != 0.5 {
		t.Errorf("Курс не обновлен: %f", obj.Yaw)
	}

	// Обновление несуществующего объекта не должно паниковать
	m.UpdateObjectState("ghost", Vector3{}, 0)
}

func TestManager_RemoveObject(t *testing.T) {
	m := NewManager()
	m.AddObject(&Object{ID: "a", Kind: KindProjectile})
	m.AddObject(&Object{ID: "b", Kind: KindProjectile})

	m.RemoveObject("a")

	if _, ok := m.GetObject("a"); ok {
		t.Error("Объект a должен быть удален")
	}
	all := m.GetAllObjects()
	if len(all) != 1 || all[0].ID != "b" {
		t.Errorf("После удаления ожидался только b, получено %d объектов", len(all))
	}
}

func testTerrainField(t *testing.T) *terrain.Field {
	t.Helper()

	cfg := GetSimConfig().Terrain.TerrainConfig()
	cfg.Resolution = 32 // Мелкая сетка: тесту не нужна полная детализация

	field, err := terrain.New(cfg)
	if err != nil {
		t.Fatalf("Не удалось создать террейн: %v", err)
	}
	return field
}

func TestSpawnStart_AboveGroundWithinLimits(t *testing.T) {
	field := testTerrainField(t)
	flight := GetFlightConfig()

	state := SpawnStart(field, flight)

	if state.Position.X() != 0 || state.Position.Z() != 0 {
		t.Errorf("Старт должен быть в центре мира, получено (%.1f, %.1f)",
			state.Position.X(), state.Position.Z())
	}

	ground := field.Height(0, 0)
	minAlt := ground + flight.MinClearance
	if minAlt < 0 {
		minAlt = 0
	}

	if state.Position.Y() < minAlt {
		t.Errorf("Старт ниже безопасной высоты: %.2f < %.2f", state.Position.Y(), minAlt)
	}
	if state.Position.Y() > flight.MaxAltitude {
		t.Errorf("Старт выше потолка: %.2f > %.2f", state.Position.Y(), flight.MaxAltitude)
	}
}

func TestSceneBuilder_BuildTerrain(t *testing.T) {
	field := testTerrainField(t)
	m := NewManager()
	b := NewSceneBuilder(m)

	obj := b.BuildTerrain(field, 2.0)

	if obj.Kind != KindTerrain || obj.Terrain == nil {
		t.Fatal("Ожидался объект террейна с заполненной формой")
	}

	expected := (field.Resolution() + 1) * (field.Resolution() + 1)
	if len(obj.Terrain.Heights) != expected {
		t.Errorf("Ожидалось %d высот, получено %d", expected, len(obj.Terrain.Heights))
	}
	if len(obj.Terrain.Colors) != expected {
		t.Errorf("Ожидалось %d цветов, получено %d", expected, len(obj.Terrain.Colors))
	}
	if obj.Terrain.MinHeight > obj.Terrain.MaxHeight {
		t.Errorf("MinHeight %.1f больше MaxHeight %.1f", obj.Terrain.MinHeight, obj.Terrain.MaxHeight)
	}

	if _, ok := m.GetObject(TerrainObjectID); !ok {
		t.Error("Террейн не попал в реестр")
	}
}

func TestSceneBuilder_BuildDrone(t *testing.T) {
	m := NewManager()
	b := NewSceneBuilder(m)

	obj := b.BuildDrone(sim.DroneState{})

	if obj.Kind != KindDrone || obj.Drone == nil {
		t.Fatal("Ожидался объект дрона с заполненной формой")
	}
	if _, ok := m.GetObject(DroneObjectID); !ok {
		t.Error("Дрон не попал в реестр")
	}
}
