package game

import (
	"context"
	"log"
	"sync"
	"time"
)

// TickSystem - интерфейс для всех систем симуляции.
type TickSystem interface {
	Update(deltaTime time.Duration) error
	GetName() string
	GetPriority() int // Приоритет выполнения (меньше = раньше)
}

// SimTicker - менеджер игрового цикла: один логический тик на кадр,
// системы выполняются по приоритету, dt поступает от кадровых часов.
type SimTicker struct {
	// Конфигурация
	targetTPS    int
	tickDuration time.Duration
	maxTickTime  time.Duration

	// Состояние
	isRunning    bool
	tickCount    uint64
	startTime    time.Time
	lastTickTime time.Time

	// Системы
	systems      []TickSystem
	systemsMutex sync.RWMutex

	// Мониторинг производительности
	perfMonitor *PerformanceMonitor

	// Управление
	ctx       context.Context
	cancel    context.CancelFunc
	pauseChan chan bool

	// Метрики
	averageTickTime time.Duration
	maxObservedTick time.Duration
	slowTicks       uint64

	logger           *log.Logger
	warningThreshold time.Duration
}

// NewSimTicker создает тикер симуляции.
func NewSimTicker(targetTPS int, logger *log.Logger) *SimTicker {
	if targetTPS <= 0 {
		targetTPS = 60 // По умолчанию 60 TPS: кадровая частота клиента
	}

	if logger == nil {
		logger = log.Default()
	}

	tickDuration := time.Second / time.Duration(targetTPS)

	ctx, cancel := context.WithCancel(context.Background())

	return &SimTicker{
		targetTPS:        targetTPS,
		tickDuration:     tickDuration,
		maxTickTime:      tickDuration * 2,
		systems:          make([]TickSystem, 0),
		perfMonitor:      NewPerformanceMonitor(50, tickDuration/4),
		ctx:              ctx,
		cancel:           cancel,
		pauseChan:        make(chan bool, 1),
		logger:           logger,
		warningThreshold: tickDuration / 2,
	}
}

// Start запускает игровой цикл.
func (st *SimTicker) Start() error {
	if st.isRunning {
		return nil // Уже запущен
	}

	st.isRunning = true
	st.startTime = time.Now()
	st.lastTickTime = st.startTime

	st.logger.Printf("[SimTicker] Запуск цикла симуляции: %d TPS (тик каждые %v)",
		st.targetTPS, st.tickDuration)

	go st.loop()

	return nil
}

// Stop останавливает игровой цикл.
func (st *SimTicker) Stop() {
	if !st.isRunning {
		return
	}

	st.logger.Printf("[SimTicker] Остановка цикла симуляции (выполнено тиков: %d)", st.tickCount)

	st.cancel()
	st.isRunning = false
}

// Pause приостанавливает продвижение состояния: кадровые часы просто
// перестают звать системы, разборки состояния не требуется.
func (st *SimTicker) Pause() {
	select {
	case st.pauseChan <- true:
	default:
	}
}

// Resume возобновляет цикл после паузы.
func (st *SimTicker) Resume() {
	select {
	case st.pauseChan <- false:
	default:
	}
}

// RegisterSystem добавляет систему в игровой цикл.
func (st *SimTicker) RegisterSystem(system TickSystem) {
	st.systemsMutex.Lock()
	defer st.systemsMutex.Unlock()

	st.systems = append(st.systems, system)

	// Сортируем по приоритету (меньше = выше приоритет)
	for i := len(st.systems) - 1; i > 0; i-- {
		if st.systems[i].GetPriority() < st.systems[i-1].GetPriority() {
			st.systems[i], st.systems[i-1] = st.systems[i-1], st.systems[i]
		} else {
			break
		}
	}

	st.perfMonitor.initSystemMetrics(system.GetName())

	st.logger.Printf("[SimTicker] Зарегистрирована система: %s (приоритет: %d)",
		system.GetName(), system.GetPriority())
}

// loop - основной цикл симуляции.
func (st *SimTicker) loop() {
	ticker := time.NewTicker(st.tickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-st.ctx.Done():
			return

		case pause := <-st.pauseChan:
			if pause {
				// Ждем команды возобновления
				for pause {
					select {
					case <-st.ctx.Done():
						return
					case pause = <-st.pauseChan:
					}
				}
				// После паузы dt считается от момента возобновления
				st.lastTickTime = time.Now()
			}

		case tickTime := <-ticker.C:
			st.executeTick(tickTime)
		}
	}
}

// executeTick выполняет один тик симуляции.
func (st *SimTicker) executeTick(tickTime time.Time) {
	tickStart := time.Now()

	// На самом первом тике dt может быть равен нулю - это легально
	deltaTime := tickTime.Sub(st.lastTickTime)
	if deltaTime < 0 {
		deltaTime = 0
	}

	st.tickCount++
	st.lastTickTime = tickTime

	st.executeAllSystems(deltaTime)

	totalTickTime := time.Since(tickStart)
	st.updateTickMetrics(totalTickTime)
	st.checkPerformance(totalTickTime)
}

// executeAllSystems выполняет все зарегистрированные системы по приоритету.
func (st *SimTicker) executeAllSystems(deltaTime time.Duration) {
	st.systemsMutex.RLock()
	systems := make([]TickSystem, len(st.systems))
	copy(systems, st.systems)
	st.systemsMutex.RUnlock()

	for _, system := range systems {
		st.executeSystem(system, deltaTime)
	}
}

// executeSystem выполняет одну систему с замером времени.
func (st *SimTicker) executeSystem(system TickSystem, deltaTime time.Duration) {
	systemStart := time.Now()
	systemName := system.GetName()

	defer func() {
		if r := recover(); r != nil {
			st.logger.Printf("[SimTicker] КРИТИЧЕСКАЯ ОШИБКА в системе %s: %v", systemName, r)
			st.perfMonitor.recordError(systemName)
		}
	}()

	err := system.Update(deltaTime)

	executionTime := time.Since(systemStart)
	st.perfMonitor.recordExecution(systemName, executionTime)

	if err != nil {
		st.logger.Printf("[SimTicker] Ошибка в системе %s: %v", systemName, err)
		st.perfMonitor.recordError(systemName)
	}
}

// GetTickCount возвращает текущее количество тиков.
func (st *SimTicker) GetTickCount() uint64 {
	return st.tickCount
}

// GetStats возвращает статистику игрового цикла.
func (st *SimTicker) GetStats() map[string]interface{} {
	uptime := time.Since(st.startTime)
	actualTPS := float64(st.tickCount) / uptime.Seconds()

	return map[string]interface{}{
		"target_tps":        st.targetTPS,
		"actual_tps":        actualTPS,
		"tick_count":        st.tickCount,
		"uptime_seconds":    uptime.Seconds(),
		"average_tick_time": st.averageTickTime,
		"max_observed_tick": st.maxObservedTick,
		"slow_ticks":        st.slowTicks,
		"is_running":        st.isRunning,
		"systems_count":     len(st.systems),
	}
}

func (st *SimTicker) updateTickMetrics(tickTime time.Duration) {
	if tickTime > st.maxObservedTick {
		st.maxObservedTick = tickTime
	}

	// Простое скользящее среднее
	if st.averageTickTime == 0 {
		st.averageTickTime = tickTime
	} else {
		st.averageTickTime = (st.averageTickTime*9 + tickTime) / 10
	}
}

func (st *SimTicker) checkPerformance(tickTime time.Duration) {
	if tickTime > st.maxTickTime {
		st.slowTicks++
		st.logger.Printf("[SimTicker] ПРЕДУПРЕЖДЕНИЕ: Тик превысил максимальное время! %v > %v (цель: %v)",
			tickTime, st.maxTickTime, st.tickDuration)
	} else if tickTime > st.warningThreshold {
		st.logger.Printf("[SimTicker] ПРЕДУПРЕЖДЕНИЕ: Медленный тик: %v (цель: %v)",
			tickTime, st.tickDuration)
	}
}
