package manager

import "github.com/Edwardzzz-c/gotrak/internal/tracker"

// Manager owns the device session and is the single goroutine allowed to
// touch it. Every operation below is serialized internally, so it is safe to
// call from concurrent gRPC and HTTP handlers.
type Manager interface {
	Start() error
	Stop() error
	Restart() error
	Running() bool
	ManuallyStopped() bool
	Faulted() bool
	TrySleep() error

	// Read returns acquisition frames after cursor; pass -1 for the latest.
	Read(cursor int64) (int64, []*tracker.Frame, error)

	ListDev() ([]int, error)
	ProbeDev() ([]string, error)

	Health() bool
	TransmitterAttached() (bool, error)
	SensorAttached(sensorID int) (bool, error)
	SetRate(rate float64) (int, error)
	SetRange(range72 bool) (int, error)
	SetHemisphere(sensorID int, rear bool) (int, error)
	SetMode(sensorID int, mode tracker.OutputMode) (int, error)
	ReadQuaternion(sensorID int) (tracker.QuaternionRecord, error)
	ReadAngles(sensorID int) (tracker.AngleRecord, error)
	ReadMatrix(sensorID int) (tracker.MatrixRecord, error)
}
