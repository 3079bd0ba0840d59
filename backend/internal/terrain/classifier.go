package terrain

import (
	"errors"
	"fmt"
)

// VisualBucket - визуальная категория поверхности: цвет и параметры
// материала, которые клиент подставляет в вершины меша.
type VisualBucket struct {
	Color     string  `json:"color"`
	Metalness float64 `json:"metalness"`
	Roughness float64 `json:"roughness"`
}

// Band - одна строка таблицы классификации: верхняя граница (включительно)
// и категория для высот не выше нее.
type Band struct {
	UpperBound float64
	Bucket     VisualBucket
}

var ErrEmptyBands = errors.New("terrain: пустая таблица классификации")

// ElevationClassifier отображает сырую высоту в визуальную категорию.
// Таблица просматривается снизу вверх, выигрывает первая полоса с h <= bound;
// все, что выше последней границы, попадает в категорию peak.
type ElevationClassifier struct {
	bands []Band
	peak  VisualBucket
}

// NewElevationClassifier проверяет таблицу при создании: пустая таблица или
// границы не в строго возрастающем порядке - ошибка конфигурации,
// конструирование отклоняется сразу, а не дает тихо кривой рельеф.
func NewElevationClassifier(bands []Band, peak VisualBucket) (*ElevationClassifier, error) {
	if len(bands) == 0 {
		return nil, ErrEmptyBands
	}

	for i := 1; i < len(bands); i++ {
		if bands[i].UpperBound <= bands[i-1].UpperBound {
			return nil, fmt.Errorf("terrain: границы классификации должны строго возрастать: bands[%d]=%v <= bands[%d]=%v",
				i, bands[i].UpperBound, i-1, bands[i-1].UpperBound)
		}
	}

	own := make([]Band, len(bands))
	copy(own, bands)

	return &ElevationClassifier{bands: own, peak: peak}, nil
}

// Classify возвращает категорию для высоты h. Для h точно на границе
// выигрывает нижняя полоса (граница включительная). Никогда не паникует:
// все, что выше последней границы, уходит в peak.
func (c *ElevationClassifier) Classify(h float64) VisualBucket {
	for _, band := range c.bands {
		if h <= band.UpperBound {
			return band.Bucket
		}
	}
	return c.peak
}

// IsSubmerged сообщает, находится ли высота на уровне воды или ниже.
// От этого зависят выбор материала и плоскость воды на клиенте.
func (c *ElevationClassifier) IsSubmerged(h float64) bool {
	return h <= 0
}
