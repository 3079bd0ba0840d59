package terrain

import (
	"errors"

	"sky-drone/backend/internal/noise"
)

// Octave - один слой фрактального шума: масштаб частоты и амплитуда.
type Octave struct {
	FrequencyScale float64
	Amplitude      float64
}

// Warp - параметры доменного искажения координат перед суммированием октав.
// Layer разводит шум для X и Z по третьей оси, чтобы искажения не коррелировали.
type Warp struct {
	FrequencyScale float64
	Amplitude      float64
	Layer          float64
}

// ErrNoOctaves возвращается при попытке собрать сэмплер без октав.
var ErrNoOctaves = errors.New("terrain: пустой список октав")

// HeightSampler вычисляет высоту рельефа в произвольной точке (x, z).
// Список октав и параметры искажения фиксируются при создании, после
// чего сэмплер - чистая функция без состояния.
type HeightSampler struct {
	field   *noise.Field
	octaves []Octave
	warpX   Warp
	warpZ   Warp
}

// NewHeightSampler собирает сэмплер над готовым шумовым полем.
// Пустой список октав - ошибка конфигурации, а не рантайма.
func NewHeightSampler(field *noise.Field, octaves []Octave, warpX, warpZ Warp) (*HeightSampler, error) {
	if len(octaves) == 0 {
		return nil, ErrNoOctaves
	}

	own := make([]Octave, len(octaves))
	copy(own, octaves)

	return &HeightSampler{
		field:   field,
		octaves: own,
		warpX:   warpX,
		warpZ:   warpZ,
	}, nil
}

// Height возвращает высоту рельефа в точке (x, z).
// Область определения бесконечна, ограничения по размеру мира накладывает
// только построитель сетки. Вызывается из горячего пути коллизии каждый кадр.
func (s *HeightSampler) Height(x, z float64) float64 {
	// Искажаем координаты низкочастотным шумом по исходным (неискаженным)
	// координатам. Слои warpX.Layer и warpZ.Layer разные, иначе точка
	// сместилась бы по диагонали и сетка осталась бы заметной.
	wx := x + s.warpX.Amplitude*s.field.Sample(x*s.warpX.FrequencyScale, z*s.warpX.FrequencyScale, s.warpX.Layer)
	wz := z + s.warpZ.Amplitude*s.field.Sample(x*s.warpZ.FrequencyScale, z*s.warpZ.FrequencyScale, s.warpZ.Layer)

	// Сумма октав по искаженным координатам. Без нормализации: амплитуды
	// подобраны так, чтобы практический диапазон совпадал с таблицей
	// классификатора.
	h := 0.0
	for _, oct := range s.octaves {
		h += oct.Amplitude * s.field.Sample(wx*oct.FrequencyScale, wz*oct.FrequencyScale, 0)
	}

	return h
}
