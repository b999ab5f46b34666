package ecs

// UpdateFrame is handed to every system during a scheduler tick.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  NewCommands(storage),
		Storage:   storage,
	}
}

// NewUpdateFrame creates a frame outside a scheduler, for driving a single system.
func NewUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return newUpdateFrame(dt, storage)
}
