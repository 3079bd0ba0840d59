package sim

import "sync"

// InputIntent - снимок семантических флагов управления на один кадр.
// Собирается заново каждый тик из последнего состояния контроллера,
// между кадрами не хранится. Физические клавиши сюда не попадают:
// раскладка - забота клиента.
type InputIntent struct {
	Forward     bool `json:"forward"`
	Backward    bool `json:"backward"`
	StrafeLeft  bool `json:"strafe_left"`
	StrafeRight bool `json:"strafe_right"`
	YawLeft     bool `json:"yaw_left"`
	YawRight    bool `json:"yaw_right"`
	Ascend      bool `json:"ascend"`
	Descend     bool `json:"descend"`
	Boost       bool `json:"boost"`
	Fire        bool `json:"fire"`
}

// IntentState - общее состояние контроллера между обработчиком WebSocket
// (пишет при каждом сообщении клиента) и игровым циклом (читает раз в тик).
type IntentState struct {
	mu     sync.RWMutex
	intent InputIntent
}

// NewIntentState создает пустое состояние контроллера.
func NewIntentState() *IntentState {
	return &IntentState{}
}

// Set заменяет текущее состояние флагов целиком.
func (s *IntentState) Set(intent InputIntent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intent = intent
}

// Snapshot возвращает копию текущих флагов для одного кадра.
func (s *IntentState) Snapshot() InputIntent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.intent
}

// Reset сбрасывает все флаги (например, при разрыве соединения,
// чтобы дрон не продолжал лететь по последней команде).
func (s *IntentState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intent = InputIntent{}
}
