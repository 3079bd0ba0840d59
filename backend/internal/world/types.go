package world

// Vector3 - вектор для проводных сообщений. Клиенту хватает float32.
type Vector3 struct {
	X, Y, Z float32
}

// ObjectKind - тип объекта мира.
type ObjectKind string

const (
	KindTerrain    ObjectKind = "terrain"
	KindDrone      ObjectKind = "drone"
	KindProjectile ObjectKind = "projectile"
)

// Object - объект мира в реестре: то, что сериализуется клиенту.
// Для каждого типа заполнен ровно один дескриптор формы.
type Object struct {
	ID       string
	Kind     ObjectKind
	Position Vector3
	Yaw      float32

	Terrain    *TerrainShape
	Drone      *DroneShape
	Projectile *ProjectileShape
}

// TerrainShape - статический меш рельефа: регулярная сетка высот
// и повершинные цвета из классификатора. Строится один раз при старте.
type TerrainShape struct {
	Heights []float32 // (GridN+1)^2 значений, строки по Z
	Colors  []string  // цвет категории для каждой вершины
	GridN   int32     // число делений сетки
	Size    float32   // сторона квадрата мира

	MinHeight  float32
	MaxHeight  float32
	WaterLevel float32 // мировой Y плоскости воды на клиенте
}

// DroneShape - габариты и цвет корпуса дрона для клиентской модели.
type DroneShape struct {
	BodyWidth  float32
	BodyHeight float32
	BodyDepth  float32
	Color      string
}

// ProjectileShape - параметры отрисовки снаряда.
type ProjectileShape struct {
	Radius float32
	Color  string
}
