package tracker

// Hemisphere selector codes forwarded verbatim to the driver. The device
// measures a sensor inside one half-space around the transmitter.
const (
	HemisphereFront = 0
	HemisphereRear  = 1
)

// OutputMode selects the orientation representation a sensor reports.
type OutputMode string

const (
	ModeQuaternion OutputMode = "quaternion"
	ModeAngles     OutputMode = "angles"
	ModeMatrix     OutputMode = "matrix"
)

// Driver is the vendor tracker driver (PointATC3DG and compatibles).
// Configuration and read calls return the driver's raw status code,
// 0 meaning success; codes are passed through without interpretation.
// A Driver is not safe for concurrent use.
type Driver interface {
	Ok() bool
	NumberOfSensors() int
	TransmitterAttached() bool
	SensorAttached(sensorID int) bool

	SetMeasurementRate(rate float64) int
	SetMaximumRange(range72 bool) int
	SetSensorHemisphere(sensorID int, hemisphere int) int
	SetSensorQuaternion(sensorID int) int
	SetSensorAngles(sensorID int) int
	SetSensorRotationMatrix(sensorID int) int

	GetCoordinatesQuaternion(sensorID int) (x, y, z float64, quat [4]float64, status int)
	GetCoordinatesAngles(sensorID int) (x, y, z, azimuth, elevation, roll float64, status int)
	GetCoordinatesMatrix(sensorID int) (x, y, z float64, mat [9]float64, status int)

	Close() error
}
