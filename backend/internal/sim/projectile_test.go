package sim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testProjectileConfig() ProjectileConfig {
	return ProjectileConfig{
		Speed:    1600,
		TTL:      2.5,
		Cooldown: 0.18,
	}
}

func TestProjectileSystem_FireCooldown(t *testing.T) {
	ps := NewProjectileSystem(testProjectileConfig())

	origin := mgl64.Vec3{0, 50, 0}
	dir := mgl64.Vec3{0, 0, -1}

	// Первый выстрел проходит
	first := ps.Fire(origin, dir)
	if first == nil {
		t.Fatal("Первый выстрел должен пройти")
	}

	// Второй в пределах окна перезарядки - нет, и без побочных эффектов
	second := ps.Fire(origin, dir)
	if second != nil {
		t.Error("Второй выстрел в окне перезарядки должен быть отклонен")
	}
	if got := len(ps.Live()); got != 1 {
		t.Errorf("В живом наборе должен быть ровно 1 снаряд, получили %d", got)
	}

	// Проматываем чуть меньше перезарядки - все еще нельзя
	ps.Advance(0.17)
	if ps.Fire(origin, dir) != nil {
		t.Error("Выстрел до истечения перезарядки должен быть отклонен")
	}

	// Доматываем остаток - можно
	ps.Advance(0.02)
	if ps.Fire(origin, dir) == nil {
		t.Error("Выстрел после истечения перезарядки должен пройти")
	}
}

func TestProjectileSystem_TTL(t *testing.T) {
	cfg := testProjectileConfig()
	ps := NewProjectileSystem(cfg)

	p := ps.Fire(mgl64.Vec3{0, 50, 0}, mgl64.Vec3{1, 0, 0})
	if p == nil {
		t.Fatal("Выстрел должен пройти")
	}

	// Снаряд жив при суммарном t < TTL
	elapsed := 0.0
	for elapsed+0.5 < cfg.TTL {
		ps.Advance(0.5)
		elapsed += 0.5
		if got := len(ps.Live()); got != 1 {
			t.Fatalf("t=%v < TTL=%v: снаряд должен быть жив, в наборе %d", elapsed, cfg.TTL, got)
		}
	}

	// Доводим суммарное время ровно до TTL - снаряд должен погаснуть
	ps.Advance(cfg.TTL - elapsed)
	if got := len(ps.Live()); got != 0 {
		t.Errorf("t=TTL: снаряд должен быть удален, в наборе %d", got)
	}
}

func TestProjectileSystem_AdvanceMovesAlongDirection(t *testing.T) {
	cfg := testProjectileConfig()
	ps := NewProjectileSystem(cfg)

	origin := mgl64.Vec3{10, 50, -20}
	p := ps.Fire(origin, mgl64.Vec3{0, 0, -2}) // ненормированный вход
	if p == nil {
		t.Fatal("Выстрел должен пройти")
	}

	// Направление нормируется при создании
	if math.Abs(p.Direction.Len()-1) > 1e-12 {
		t.Errorf("Направление должно быть единичным, длина %v", p.Direction.Len())
	}

	ps.Advance(0.25)
	live := ps.Live()
	if len(live) != 1 {
		t.Fatalf("Ожидали 1 живой снаряд, получили %d", len(live))
	}

	want := origin.Add(mgl64.Vec3{0, 0, -1}.Mul(cfg.Speed * 0.25))
	got := live[0].Position
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("Позиция после Advance: ожидали %v, получили %v", want, got)
	}
}

func TestProjectileSystem_CooldownDecaysWithoutFiring(t *testing.T) {
	ps := NewProjectileSystem(testProjectileConfig())

	ps.Fire(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
	if ps.CooldownRemaining() <= 0 {
		t.Fatal("После выстрела перезарядка должна быть активна")
	}

	// Перезарядка тает каждый кадр, даже без попыток выстрела,
	// и не уходит в минус
	ps.Advance(10)
	if got := ps.CooldownRemaining(); got != 0 {
		t.Errorf("Перезарядка должна дойти ровно до 0, получили %v", got)
	}
}

func TestProjectileSystem_IndependentProjectiles(t *testing.T) {
	// Снаряды не взаимодействуют: каждый живет свой TTL
	cfg := ProjectileConfig{Speed: 100, TTL: 1.0, Cooldown: 0.1}
	ps := NewProjectileSystem(cfg)

	if ps.Fire(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}) == nil {
		t.Fatal("Первый выстрел должен пройти")
	}
	ps.Advance(0.5)
	if ps.Fire(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}) == nil {
		t.Fatal("Второй выстрел должен пройти")
	}

	// Первый гаснет на t=1.0, второй живет до t=1.5
	ps.Advance(0.5)
	if got := len(ps.Live()); got != 1 {
		t.Errorf("После t=1.0 ожидали 1 живой снаряд, получили %d", got)
	}

	ps.Advance(0.5)
	if got := len(ps.Live()); got != 0 {
		t.Errorf("После t=1.5 ожидали пустой набор, получили %d", got)
	}
}

func TestDrone_StateRoundTrip(t *testing.T) {
	d := NewDrone(DroneState{Position: mgl64.Vec3{1, 2, 3}, Yaw: 0.5})

	st := d.State()
	st.Position[0] = 100
	st.Yaw = 9

	// Снимок - копия, оригинал не мутирует
	if d.State().Position.X() != 1 || d.State().Yaw != 0.5 {
		t.Error("Мутация снимка не должна влиять на состояние дрона")
	}

	d.SetState(st)
	if d.State().Position.X() != 100 || d.State().Yaw != 9 {
		t.Error("SetState должен заменить состояние целиком")
	}
}
