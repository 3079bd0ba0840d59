package terrain

import (
	"math"
	"testing"

	"sky-drone/backend/internal/noise"
)

func testOctaves() []Octave {
	return []Octave{
		{FrequencyScale: 0.00018, Amplitude: 1150},
		{FrequencyScale: 0.0007, Amplitude: 340},
		{FrequencyScale: 0.0028, Amplitude: 90},
		{FrequencyScale: 0.011, Amplitude: 22},
	}
}

func testWarps() (Warp, Warp) {
	warpX := Warp{FrequencyScale: 0.00006, Amplitude: 900, Layer: 7.3}
	warpZ := Warp{FrequencyScale: 0.00005, Amplitude: 900, Layer: 19.7}
	return warpX, warpZ
}

func newTestSampler(t *testing.T, seed int64) *HeightSampler {
	t.Helper()
	warpX, warpZ := testWarps()
	s, err := NewHeightSampler(noise.NewField(seed), testOctaves(), warpX, warpZ)
	if err != nil {
		t.Fatalf("Не удалось создать сэмплер: %v", err)
	}
	return s
}

func TestHeightSampler_EmptyOctaves(t *testing.T) {
	warpX, warpZ := testWarps()
	_, err := NewHeightSampler(noise.NewField(1), nil, warpX, warpZ)
	if err == nil {
		t.Fatal("Ожидали ошибку для пустого списка октав, получили nil")
	}
}

func TestHeightSampler_Determinism(t *testing.T) {
	// Одинаковый сид => побитово одинаковые высоты, в том числе
	// между независимыми экземплярами
	s1 := newTestSampler(t, 42)
	s2 := newTestSampler(t, 42)

	points := [][2]float64{
		{0, 0},
		{100.5, -300.25},
		{-4000, 4000},
		{3855.0588, 1.0},
	}

	for _, p := range points {
		h1 := s1.Height(p[0], p[1])
		h2 := s2.Height(p[0], p[1])
		if h1 != h2 {
			t.Errorf("Высоты в (%v, %v) различаются между экземплярами: %v != %v", p[0], p[1], h1, h2)
		}
		if again := s1.Height(p[0], p[1]); again != h1 {
			t.Errorf("Повторный вызов в (%v, %v) дал другую высоту: %v != %v", p[0], p[1], again, h1)
		}
	}
}

func TestHeightSampler_Continuity(t *testing.T) {
	// Конечные разности по сетке: малое eps не должно давать скачков,
	// пропорциональность |dh| <= K*eps с запасом по константе Липшица
	s := newTestSampler(t, 7)

	const eps = 0.01
	// Верхняя оценка наклона: сумма amplitude*frequency октав, умноженная
	// на запас из-за доменного искажения (производная warp добавляет
	// warpAmp*warpFreq к растяжению координат). Берем грубо с запасом x100.
	maxSlope := 0.0
	for _, oct := range testOctaves() {
		maxSlope += oct.Amplitude * oct.FrequencyScale
	}
	maxJump := maxSlope * eps * 100

	for i := 0; i < 60; i++ {
		for j := 0; j < 60; j++ {
			x := float64(i)*130 - 3900
			z := float64(j)*130 - 3900

			h := s.Height(x, z)
			hx := s.Height(x+eps, z)
			hz := s.Height(x, z+eps)

			if math.Abs(hx-h) > maxJump || math.Abs(hz-h) > maxJump {
				t.Fatalf("Разрыв рельефа около (%v, %v): dhx=%v dhz=%v (допуск %v)",
					x, z, hx-h, hz-h, maxJump)
			}
		}
	}
}

func TestHeightSampler_UnboundedDomain(t *testing.T) {
	// Поле в принципе бесконечно: далеко за пределами мира высоты
	// по-прежнему валидны
	s := newTestSampler(t, 3)

	for _, p := range [][2]float64{{1e6, -1e6}, {-5e5, 5e5}, {123456.789, 987654.321}} {
		h := s.Height(p[0], p[1])
		if math.IsNaN(h) || math.IsInf(h, 0) {
			t.Errorf("Невалидная высота в (%v, %v): %v", p[0], p[1], h)
		}
	}
}

func BenchmarkHeightSampler_Height(b *testing.B) {
	warpX, warpZ := testWarps()
	s, err := NewHeightSampler(noise.NewField(42), testOctaves(), warpX, warpZ)
	if err != nil {
		b.Fatalf("Не удалось создать сэмплер: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Путь коллизии: непрерывно меняющиеся координаты каждый кадр
		x := float64(i%1000) * 3.7
		z := float64(i%997) * 5.1
		_ = s.Height(x, z)
	}
}
