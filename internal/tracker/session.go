package tracker

// Session owns one driver handle and exposes its capabilities as calls with
// primitive inputs and flat record outputs. The sensor count is read once at
// construction; topology changes after that are not picked up. A Session is
// not safe for concurrent use, callers must serialize access themselves.
//
// The session does not validate anything: out-of-range sensor ids, reads
// that do not match the configured output mode and calls on a failed device
// all go straight to the driver and come back as whatever it reports.
type Session struct {
	drv        Driver
	numSensors int
}

// NewSession wraps drv. If the driver failed to initialize the session is
// created anyway; Ok reports false and the cached sensor count stays 0.
func NewSession(drv Driver) *Session {
	s := &Session{drv: drv}
	if drv.Ok() {
		s.numSensors = drv.NumberOfSensors()
	}
	return s
}

// Ok reports whether the driver initialized successfully.
func (s *Session) Ok() bool {
	return s.drv.Ok()
}

// NumberOfSensors returns the sensor count cached at construction.
func (s *Session) NumberOfSensors() int {
	return s.numSensors
}

func (s *Session) TransmitterAttached() bool {
	return s.drv.TransmitterAttached()
}

func (s *Session) SensorAttached(sensorID int) bool {
	return s.drv.SensorAttached(sensorID)
}

// SetMeasurementRate sets the device update rate in Hz. The rate is not
// range-checked here.
func (s *Session) SetMeasurementRate(rate float64) int {
	return s.drv.SetMeasurementRate(rate)
}

// SetMaximumRange selects the 72-inch tracking range when range72 is true,
// the 36-inch range otherwise.
func (s *Session) SetMaximumRange(range72 bool) int {
	return s.drv.SetMaximumRange(range72)
}

// SetSensorHemisphere selects the rear hemisphere when rear is true, the
// front hemisphere otherwise.
func (s *Session) SetSensorHemisphere(sensorID int, rear bool) int {
	hemisphere := HemisphereFront
	if rear {
		hemisphere = HemisphereRear
	}
	return s.drv.SetSensorHemisphere(sensorID, hemisphere)
}

func (s *Session) SetSensorQuaternion(sensorID int) int {
	return s.drv.SetSensorQuaternion(sensorID)
}

func (s *Session) SetSensorAngles(sensorID int) int {
	return s.drv.SetSensorAngles(sensorID)
}

func (s *Session) SetSensorRotationMatrix(sensorID int) int {
	return s.drv.SetSensorRotationMatrix(sensorID)
}

// SetSensorMode applies one of the three output modes by name.
func (s *Session) SetSensorMode(sensorID int, mode OutputMode) int {
	switch mode {
	case ModeAngles:
		return s.SetSensorAngles(sensorID)
	case ModeMatrix:
		return s.SetSensorRotationMatrix(sensorID)
	default:
		return s.SetSensorQuaternion(sensorID)
	}
}

// GetCoordinatesQuaternion reads one sensor. The record content is undefined
// if the sensor is not in quaternion mode.
func (s *Session) GetCoordinatesQuaternion(sensorID int) QuaternionRecord {
	x, y, z, quat, status := s.drv.GetCoordinatesQuaternion(sensorID)
	return QuaternionRecord{
		Success:    status == 0,
		X:          x,
		Y:          y,
		Z:          z,
		Quaternion: quat,
	}
}

// GetCoordinatesAngles reads one sensor. The record content is undefined if
// the sensor is not in angle mode.
func (s *Session) GetCoordinatesAngles(sensorID int) AngleRecord {
	x, y, z, azimuth, elevation, roll, status := s.drv.GetCoordinatesAngles(sensorID)
	return AngleRecord{
		Success:   status == 0,
		X:         x,
		Y:         y,
		Z:         z,
		Azimuth:   azimuth,
		Elevation: elevation,
		Roll:      roll,
	}
}

// GetCoordinatesMatrix reads one sensor. The record content is undefined if
// the sensor is not in rotation matrix mode.
func (s *Session) GetCoordinatesMatrix(sensorID int) MatrixRecord {
	x, y, z, mat, status := s.drv.GetCoordinatesMatrix(sensorID)
	return MatrixRecord{
		Success:        status == 0,
		X:              x,
		Y:              y,
		Z:              z,
		RotationMatrix: mat,
	}
}

// GetAllSensorsData reads every sensor in quaternion mode, regardless of the
// per-sensor output mode configured earlier. Entries are tagged with their
// sensor id in order. The record succeeds only when the device is up and
// every sensor read succeeded.
func (s *Session) GetAllSensorsData() AllSensorsRecord {
	all := AllSensorsRecord{
		Success:    s.drv.Ok(),
		NumSensors: s.numSensors,
		Sensors:    make([]SensorRecord, 0, s.numSensors),
	}
	for i := 0; i < s.numSensors; i++ {
		rec := SensorRecord{
			QuaternionRecord: s.GetCoordinatesQuaternion(i),
			SensorID:         i,
		}
		all.Success = all.Success && rec.Success
		all.Sensors = append(all.Sensors, rec)
	}
	return all
}

// Close releases the driver handle.
func (s *Session) Close() error {
	return s.drv.Close()
}
