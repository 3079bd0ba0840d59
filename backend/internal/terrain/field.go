package terrain

import (
	"fmt"

	"sky-drone/backend/internal/noise"
)

// Config - полное описание террейна. Все поля фиксируются при создании
// поля; смена любого из них означает пересборку меша на клиенте.
type Config struct {
	Seed       int64
	Size       float64 // мир квадратный, Size - сторона квадрата
	Resolution int     // число делений сетки, нужно только построителю меша

	Octaves []Octave
	WarpX   Warp
	WarpZ   Warp

	Bands []Band
	Peak  VisualBucket
}

// Field - общий read-only сервис высот: один и тот же Height(x, z)
// используется и при построении статического меша, и в коллизии дрона
// каждый кадр, поэтому визуальная поверхность и поверхность столкновения
// совпадают точно. После создания не мутирует, блокировки не нужны.
type Field struct {
	sampler    *HeightSampler
	classifier *ElevationClassifier
	size       float64
	resolution int
}

// New собирает террейн. Некорректная конфигурация (пустые октавы, кривая
// таблица классификации, неположительные размеры) отклоняется сразу.
func New(cfg Config) (*Field, error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("terrain: размер мира должен быть положительным, получен %v", cfg.Size)
	}
	if cfg.Resolution <= 0 {
		return nil, fmt.Errorf("terrain: разрешение сетки должно быть положительным, получено %d", cfg.Resolution)
	}

	sampler, err := NewHeightSampler(noise.NewField(cfg.Seed), cfg.Octaves, cfg.WarpX, cfg.WarpZ)
	if err != nil {
		return nil, err
	}

	classifier, err := NewElevationClassifier(cfg.Bands, cfg.Peak)
	if err != nil {
		return nil, err
	}

	return &Field{
		sampler:    sampler,
		classifier: classifier,
		size:       cfg.Size,
		resolution: cfg.Resolution,
	}, nil
}

// Height возвращает высоту рельефа в точке (x, z). Единственный запрос,
// который используется вне построения меша.
func (f *Field) Height(x, z float64) float64 {
	return f.sampler.Height(x, z)
}

// Classify делегирует классификатору высот.
func (f *Field) Classify(h float64) VisualBucket {
	return f.classifier.Classify(h)
}

// IsSubmerged делегирует классификатору высот.
func (f *Field) IsSubmerged(h float64) bool {
	return f.classifier.IsSubmerged(h)
}

// Size возвращает сторону квадрата мира.
func (f *Field) Size() float64 {
	return f.size
}

// Resolution возвращает число делений сетки меша.
func (f *Field) Resolution() int {
	return f.resolution
}

// GridPoint - одна точка сетки для построителя меша.
type GridPoint struct {
	X      float64
	Z      float64
	Height float64
	Bucket VisualBucket
}

// ForEachGridPoint обходит регулярную сетку (resolution+1)^2 точек,
// покрывающую [-size/2, size/2] по обеим осям, в порядке строк по Z.
// Используется один раз при старте для сериализации меша, не в горячем пути.
func (f *Field) ForEachGridPoint(fn func(GridPoint)) {
	half := f.size / 2
	step := f.size / float64(f.resolution)

	for j := 0; j <= f.resolution; j++ {
		z := -half + float64(j)*step
		for i := 0; i <= f.resolution; i++ {
			x := -half + float64(i)*step
			h := f.sampler.Height(x, z)
			fn(GridPoint{
				X:      x,
				Z:      z,
				Height: h,
				Bucket: f.classifier.Classify(h),
			})
		}
	}
}
