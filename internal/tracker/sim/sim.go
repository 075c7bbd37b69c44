// Package sim implements tracker.Driver in software. It stands in for the
// vendor driver during tests and when serving with `device.driver: sim`,
// moving each sensor along a smooth circular path so that downstream
// consumers see plausible, continuous data.
package sim

import (
	"time"

	"gonum.org/v1/gonum/num/quat"

	"github.com/Edwardzzz-c/gotrak/internal/tracker"
)

const (
	baseRadius   = 12.0 // inches from the transmitter
	radiusStep   = 3.0
	baseHeight   = 4.0
	heightStep   = 1.5
	orbitRate    = 0.35 // rad/s around the transmitter
	baseTiltDeg  = 15.0
	tiltStepDeg  = 5.0
)

// Opt configures the simulated device.
type Opt struct {
	NumSensors int
	// FailInit simulates a device that never came up: Ok reports false
	// and every read fails.
	FailInit bool
	// Detached lists sensor ids that report as not attached.
	Detached []int
	// FailStatus scripts a non-zero status code per sensor id, returned
	// by every read of that sensor.
	FailStatus map[int]int
}

// Driver is a simulated PointATC3DG. Like the real driver it is not safe
// for concurrent use.
type Driver struct {
	opt         Opt
	ok          bool
	rate        float64
	range72     bool
	hemispheres map[int]int
	modes       map[int]tracker.OutputMode
	start       time.Time
	now         func() time.Time
	closed      bool
}

func NewDriver(opt Opt) *Driver {
	d := &Driver{
		opt:         opt,
		ok:          !opt.FailInit,
		rate:        80,
		hemispheres: make(map[int]int),
		modes:       make(map[int]tracker.OutputMode),
		now:         time.Now,
	}
	d.start = d.now()
	return d
}

func (d *Driver) Ok() bool { return d.ok }

func (d *Driver) NumberOfSensors() int {
	if !d.ok {
		return 0
	}
	return d.opt.NumSensors
}

func (d *Driver) TransmitterAttached() bool { return d.ok }

func (d *Driver) SensorAttached(sensorID int) bool {
	if !d.ok || sensorID < 0 || sensorID >= d.opt.NumSensors {
		return false
	}
	for _, id := range d.opt.Detached {
		if id == sensorID {
			return false
		}
	}
	return true
}

func (d *Driver) SetMeasurementRate(rate float64) int {
	if !d.ok {
		return 1
	}
	d.rate = rate
	return 0
}

func (d *Driver) SetMaximumRange(range72 bool) int {
	if !d.ok {
		return 1
	}
	d.range72 = range72
	return 0
}

func (d *Driver) SetSensorHemisphere(sensorID, hemisphere int) int {
	if st := d.configStatus(sensorID); st != 0 {
		return st
	}
	d.hemispheres[sensorID] = hemisphere
	return 0
}

func (d *Driver) SetSensorQuaternion(sensorID int) int {
	if st := d.configStatus(sensorID); st != 0 {
		return st
	}
	d.modes[sensorID] = tracker.ModeQuaternion
	return 0
}

func (d *Driver) SetSensorAngles(sensorID int) int {
	if st := d.configStatus(sensorID); st != 0 {
		return st
	}
	d.modes[sensorID] = tracker.ModeAngles
	return 0
}

func (d *Driver) SetSensorRotationMatrix(sensorID int) int {
	if st := d.configStatus(sensorID); st != 0 {
		return st
	}
	d.modes[sensorID] = tracker.ModeMatrix
	return 0
}

// Hemisphere returns the hemisphere code last configured for a sensor.
func (d *Driver) Hemisphere(sensorID int) int { return d.hemispheres[sensorID] }

// Mode returns the output mode last configured for a sensor.
func (d *Driver) Mode(sensorID int) tracker.OutputMode { return d.modes[sensorID] }

func (d *Driver) configStatus(sensorID int) int {
	if !d.ok {
		return 1
	}
	if sensorID < 0 || sensorID >= d.opt.NumSensors {
		return 2
	}
	return 0
}

func (d *Driver) readStatus(sensorID int) int {
	if st := d.configStatus(sensorID); st != 0 {
		return st
	}
	if st, scripted := d.opt.FailStatus[sensorID]; scripted {
		return st
	}
	return 0
}

func (d *Driver) GetCoordinatesQuaternion(sensorID int) (x, y, z float64, q [4]float64, status int) {
	status = d.readStatus(sensorID)
	if status != 0 {
		return 0, 0, 0, [4]float64{1, 0, 0, 0}, status
	}
	p, o := d.pose(sensorID)
	return p[0], p[1], p[2], quatArray(o), 0
}

func (d *Driver) GetCoordinatesAngles(sensorID int) (x, y, z, azimuth, elevation, roll float64, status int) {
	status = d.readStatus(sensorID)
	if status != 0 {
		return 0, 0, 0, 0, 0, 0, status
	}
	p, o := d.pose(sensorID)
	azimuth, elevation, roll = quatEulerDeg(o)
	return p[0], p[1], p[2], azimuth, elevation, roll, 0
}

func (d *Driver) GetCoordinatesMatrix(sensorID int) (x, y, z float64, mat [9]float64, status int) {
	status = d.readStatus(sensorID)
	if status != 0 {
		return 0, 0, 0, identityMatrix(), status
	}
	p, o := d.pose(sensorID)
	return p[0], p[1], p[2], quatMatrix(o), 0
}

func (d *Driver) Close() error {
	d.closed = true
	d.ok = false
	return nil
}

// pose computes position and orientation of a sensor at the current sim
// clock. Orientation is the composition of heading around the circle with a
// fixed per-sensor tilt, so all three representations describe the same
// rotation.
func (d *Driver) pose(sensorID int) (pos [3]float64, o quat.Number) {
	t := d.now().Sub(d.start).Seconds()
	return poseAt(sensorID, t)
}
