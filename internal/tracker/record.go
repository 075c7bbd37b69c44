package tracker

// Record field names are part of the wire contract shared with existing
// clients; do not rename the tags.

// QuaternionRecord is a position read with quaternion orientation.
// The quaternion is ordered [w, x, y, z].
type QuaternionRecord struct {
	Success    bool       `json:"success" yaml:"success"`
	X          float64    `json:"x" yaml:"x"`
	Y          float64    `json:"y" yaml:"y"`
	Z          float64    `json:"z" yaml:"z"`
	Quaternion [4]float64 `json:"quaternion" yaml:"quaternion,flow"`
}

// AngleRecord is a position read with Euler angle orientation, degrees.
type AngleRecord struct {
	Success   bool    `json:"success" yaml:"success"`
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	Z         float64 `json:"z" yaml:"z"`
	Azimuth   float64 `json:"azimuth" yaml:"azimuth"`
	Elevation float64 `json:"elevation" yaml:"elevation"`
	Roll      float64 `json:"roll" yaml:"roll"`
}

// MatrixRecord is a position read with a 3x3 rotation matrix flattened
// row-major.
type MatrixRecord struct {
	Success        bool       `json:"success" yaml:"success"`
	X              float64    `json:"x" yaml:"x"`
	Y              float64    `json:"y" yaml:"y"`
	Z              float64    `json:"z" yaml:"z"`
	RotationMatrix [9]float64 `json:"rotation_matrix" yaml:"rotation_matrix,flow"`
}

// SensorRecord is a quaternion read tagged with the sensor it came from.
type SensorRecord struct {
	QuaternionRecord `yaml:",inline"`
	SensorID         int `json:"sensor_id" yaml:"sensor_id"`
}

// AllSensorsRecord is one quaternion read of every attached sensor.
type AllSensorsRecord struct {
	Success    bool           `json:"success" yaml:"success"`
	NumSensors int            `json:"num_sensors" yaml:"num_sensors"`
	Sensors    []SensorRecord `json:"sensors" yaml:"sensors"`
}

// Frame is an AllSensorsRecord stamped by the acquisition loop.
type Frame struct {
	AllSensorsRecord `yaml:",inline"`
	Seq              uint64 `json:"seq" yaml:"seq"`
	SysTicks         int64  `json:"sys_ticks" yaml:"sys_ticks"`
}
