package noise

import (
	"github.com/aquilax/go-perlin"
)

// Параметры решетки Перлина. Три внутренние октавы дают достаточно
// гладкое поле, фрактальность рельефа набирается выше, в terrain.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// Field - детерминированное гладкое скалярное поле над (x, y, z).
// Значения лежат примерно в диапазоне [-1, 1]. После создания поле
// не содержит изменяемого состояния, читать можно из любого числа горутин.
type Field struct {
	p *perlin.Perlin
}

// NewField создает поле с фиксированным сидом. Один и тот же сид
// дает побитово одинаковые значения между запусками процесса.
func NewField(seed int64) *Field {
	return &Field{
		p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
	}
}

// Sample возвращает значение поля в точке (x, y, z).
// Чистая функция: без состояния, без ошибок, без побочных эффектов.
func (f *Field) Sample(x, y, z float64) float64 {
	return f.p.Noise3D(x, y, z)
}
