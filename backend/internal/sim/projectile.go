package sim

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Projectile - короткоживущий кинематический снаряд. Снаряды друг с другом
// и с рельефом не взаимодействуют, живут до истечения RemainingLife.
type Projectile struct {
	ID            string
	Position      mgl64.Vec3
	Direction     mgl64.Vec3 // единичный вектор
	RemainingLife float64    // секунды
}

// FireControl - состояние перезарядки турели.
type FireControl struct {
	CooldownRemaining float64
	CooldownDuration  float64
}

// ProjectileConfig - константы системы снарядов из внешней конфигурации.
type ProjectileConfig struct {
	Speed    float64 `json:"speed"`    // единиц в секунду
	TTL      float64 `json:"ttl"`      // время жизни снаряда, секунды
	Cooldown float64 `json:"cooldown"` // минимальный интервал между выстрелами
}

// ProjectileSystem создает, продвигает и гасит снаряды. Живой набор
// упорядочен по времени выстрела. Мьютекс нужен только потому, что
// стриминг читает список из своей горутины; сам тик однопоточный.
type ProjectileSystem struct {
	mu     sync.RWMutex
	cfg    ProjectileConfig
	fire   FireControl
	live   []*Projectile
	nextID uint64
}

// NewProjectileSystem создает систему с пустым живым набором
// и готовой к выстрелу турелью.
func NewProjectileSystem(cfg ProjectileConfig) *ProjectileSystem {
	return &ProjectileSystem{
		cfg:  cfg,
		fire: FireControl{CooldownDuration: cfg.Cooldown},
	}
}

// Fire пытается выстрелить из точки origin в направлении direction.
// Пока идет перезарядка - возвращает nil без каких-либо побочных эффектов;
// это определенный исход, а не ошибка. При успехе перезарядка начинается
// заново и возвращается созданный снаряд.
func (ps *ProjectileSystem) Fire(origin, direction mgl64.Vec3) *Projectile {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.fire.CooldownRemaining > 0 {
		return nil
	}

	ps.fire.CooldownRemaining = ps.fire.CooldownDuration
	ps.nextID++

	p := &Projectile{
		ID:            fmt.Sprintf("projectile_%d", ps.nextID),
		Position:      origin,
		Direction:     direction.Normalize(),
		RemainingLife: ps.cfg.TTL,
	}
	ps.live = append(ps.live, p)

	return p
}

// Advance продвигает все живые снаряды на dt секунд и убирает погасшие.
// Перезарядка убывает каждый кадр независимо от попыток выстрела.
func (ps *ProjectileSystem) Advance(dt float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.fire.CooldownRemaining > 0 {
		ps.fire.CooldownRemaining -= dt
		if ps.fire.CooldownRemaining < 0 {
			ps.fire.CooldownRemaining = 0
		}
	}

	alive := ps.live[:0]
	for _, p := range ps.live {
		p.Position = p.Position.Add(p.Direction.Mul(ps.cfg.Speed * dt))
		p.RemainingLife -= dt
		if p.RemainingLife > 0 {
			alive = append(alive, p)
		}
	}
	// Хвост обнуляем, чтобы не держать погасшие снаряды живыми для GC
	for i := len(alive); i < len(ps.live); i++ {
		ps.live[i] = nil
	}
	ps.live = alive
}

// Live возвращает снимок живых снарядов по значению: внешнего алиасинга
// на живой набор нет.
func (ps *ProjectileSystem) Live() []Projectile {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	out := make([]Projectile, len(ps.live))
	for i, p := range ps.live {
		out[i] = *p
	}
	return out
}

// CooldownRemaining возвращает остаток перезарядки.
func (ps *ProjectileSystem) CooldownRemaining() float64 {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.fire.CooldownRemaining
}
