package world

import "sync"

// Manager - реестр объектов мира. Пишет игровой цикл, читают
// горутины стриминга, поэтому доступ под RWMutex.
type Manager struct {
	objects map[string]*Object
	order   []string // порядок добавления: террейн должен уйти клиенту первым
	mu      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		objects: make(map[string]*Object),
	}
}

// AddObject добавляет объект в реестр.
func (m *Manager) AddObject(obj *Object) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.objects[obj.ID]; !exists {
		m.order = append(m.order, obj.ID)
	}
	m.objects[obj.ID] = obj
}

// GetObject возвращает объект по идентификатору.
func (m *Manager) GetObject(id string) (*Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, exists := m.objects[id]
	return obj, exists
}

// GetAllObjects возвращает объекты в порядке добавления.
func (m *Manager) GetAllObjects() []*Object {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Object, 0, len(m.order))
	for _, id := range m.order {
		if obj, exists := m.objects[id]; exists {
			result = append(result, obj)
		}
	}
	return result
}

// UpdateObjectState обновляет позицию и курс объекта.
func (m *Manager) UpdateObjectState(id string, position Vector3, yaw float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj, exists := m.objects[id]; exists {
		obj.Position = position
		obj.Yaw = yaw
	}
}

// RemoveObject убирает объект из реестра.
func (m *Manager) RemoveObject(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.objects[id]; !exists {
		return
	}
	delete(m.objects, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
