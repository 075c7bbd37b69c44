package tracker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDriver records configuration calls and serves scripted reads.
type mockDriver struct {
	ok          bool
	numSensors  int
	transmitter bool
	attached    map[int]bool

	rate        float64
	range72     bool
	hemispheres map[int]int
	modes       map[int]OutputMode

	failStatus map[int]int
	closed     bool
}

func newMockDriver(numSensors int) *mockDriver {
	return &mockDriver{
		ok:          true,
		numSensors:  numSensors,
		transmitter: true,
		attached:    make(map[int]bool),
		hemispheres: make(map[int]int),
		modes:       make(map[int]OutputMode),
		failStatus:  make(map[int]int),
	}
}

func (d *mockDriver) Ok() bool                    { return d.ok }
func (d *mockDriver) NumberOfSensors() int        { return d.numSensors }
func (d *mockDriver) TransmitterAttached() bool   { return d.transmitter }
func (d *mockDriver) SensorAttached(id int) bool  { return d.attached[id] }
func (d *mockDriver) SetMeasurementRate(rate float64) int {
	d.rate = rate
	return 0
}
func (d *mockDriver) SetMaximumRange(range72 bool) int {
	d.range72 = range72
	return 0
}
func (d *mockDriver) SetSensorHemisphere(id, hemisphere int) int {
	d.hemispheres[id] = hemisphere
	return 0
}
func (d *mockDriver) SetSensorQuaternion(id int) int {
	d.modes[id] = ModeQuaternion
	return 0
}
func (d *mockDriver) SetSensorAngles(id int) int {
	d.modes[id] = ModeAngles
	return 0
}
func (d *mockDriver) SetSensorRotationMatrix(id int) int {
	d.modes[id] = ModeMatrix
	return 0
}

func (d *mockDriver) status(id int) int {
	if st, ok := d.failStatus[id]; ok {
		return st
	}
	if id < 0 || id >= d.numSensors {
		return 1
	}
	return 0
}

func (d *mockDriver) GetCoordinatesQuaternion(id int) (x, y, z float64, quat [4]float64, status int) {
	return float64(id), float64(id) + 0.5, -1, [4]float64{1, 0, 0, 0}, d.status(id)
}

func (d *mockDriver) GetCoordinatesAngles(id int) (x, y, z, azimuth, elevation, roll float64, status int) {
	return float64(id), 2, 3, 90, 45, -10, d.status(id)
}

func (d *mockDriver) GetCoordinatesMatrix(id int) (x, y, z float64, mat [9]float64, status int) {
	return float64(id), 2, 3, [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, d.status(id)
}

func (d *mockDriver) Close() error {
	d.closed = true
	return nil
}

func TestSessionConfigureThenReadEachMode(t *testing.T) {
	drv := newMockDriver(4)
	s := NewSession(drv)
	require.True(t, s.Ok())
	require.Equal(t, 4, s.NumberOfSensors())

	for id := 0; id < s.NumberOfSensors(); id++ {
		assert.Zero(t, s.SetSensorQuaternion(id))
		q := s.GetCoordinatesQuaternion(id)
		assert.True(t, q.Success)
		assert.Equal(t, float64(id), q.X)
		assert.Equal(t, 1.0, q.Quaternion[0])

		assert.Zero(t, s.SetSensorAngles(id))
		a := s.GetCoordinatesAngles(id)
		assert.True(t, a.Success)
		assert.Equal(t, 90.0, a.Azimuth)
		assert.Equal(t, 45.0, a.Elevation)
		assert.Equal(t, -10.0, a.Roll)

		assert.Zero(t, s.SetSensorRotationMatrix(id))
		m := s.GetCoordinatesMatrix(id)
		assert.True(t, m.Success)
		assert.Equal(t, [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, m.RotationMatrix)
	}
}

func TestSessionSetSensorModeByName(t *testing.T) {
	drv := newMockDriver(1)
	s := NewSession(drv)

	s.SetSensorMode(0, ModeAngles)
	assert.Equal(t, ModeAngles, drv.modes[0])
	s.SetSensorMode(0, ModeMatrix)
	assert.Equal(t, ModeMatrix, drv.modes[0])
	s.SetSensorMode(0, ModeQuaternion)
	assert.Equal(t, ModeQuaternion, drv.modes[0])
}

func TestSessionAllSensorsIgnoresConfiguredModes(t *testing.T) {
	drv := newMockDriver(3)
	s := NewSession(drv)

	// configure a mixed bag of modes, the bulk read must not care
	s.SetSensorAngles(0)
	s.SetSensorRotationMatrix(1)

	all := s.GetAllSensorsData()
	require.True(t, all.Success)
	require.Equal(t, 3, all.NumSensors)
	require.Len(t, all.Sensors, 3)
	for i, rec := range all.Sensors {
		assert.Equal(t, i, rec.SensorID)
		assert.True(t, rec.Success)
		assert.Equal(t, [4]float64{1, 0, 0, 0}, rec.Quaternion)
	}
}

func TestSessionHemisphereFlagMapping(t *testing.T) {
	drv := newMockDriver(2)
	s := NewSession(drv)

	s.SetSensorHemisphere(0, true)
	s.SetSensorHemisphere(1, false)
	assert.Equal(t, HemisphereRear, drv.hemispheres[0])
	assert.Equal(t, HemisphereFront, drv.hemispheres[1])
}

func TestSessionFailedInit(t *testing.T) {
	drv := newMockDriver(4)
	drv.ok = false
	s := NewSession(drv)

	assert.False(t, s.Ok())
	assert.Equal(t, 0, s.NumberOfSensors())

	all := s.GetAllSensorsData()
	assert.False(t, all.Success)
	assert.Equal(t, 0, all.NumSensors)
	assert.Empty(t, all.Sensors)
}

func TestSessionDriverFailureSurfacesAsFlag(t *testing.T) {
	drv := newMockDriver(2)
	drv.failStatus[1] = 3
	s := NewSession(drv)

	q := s.GetCoordinatesQuaternion(1)
	assert.False(t, q.Success)
	// fields are present even on failure
	assert.False(t, math.IsNaN(q.X))

	// one failing sensor fails the bulk record, the healthy entry is kept
	all := s.GetAllSensorsData()
	assert.False(t, all.Success)
	assert.True(t, all.Sensors[0].Success)
	assert.False(t, all.Sensors[1].Success)
	assert.Equal(t, 1, all.Sensors[1].SensorID)
}

func TestSessionOutOfRangeIDDoesNotPanic(t *testing.T) {
	drv := newMockDriver(2)
	s := NewSession(drv)

	assert.NotPanics(t, func() {
		q := s.GetCoordinatesQuaternion(17)
		assert.False(t, q.Success)
		a := s.GetCoordinatesAngles(-1)
		assert.False(t, a.Success)
		m := s.GetCoordinatesMatrix(2)
		assert.False(t, m.Success)
	})
}

func TestSessionCountCachedAtConstruction(t *testing.T) {
	drv := newMockDriver(2)
	s := NewSession(drv)
	require.Equal(t, 2, s.NumberOfSensors())

	// detaching sensors later does not change the cached count
	drv.numSensors = 1
	assert.Equal(t, 2, s.NumberOfSensors())
}

func TestSessionRatePassThrough(t *testing.T) {
	drv := newMockDriver(1)
	s := NewSession(drv)

	assert.Zero(t, s.SetMeasurementRate(120.5))
	assert.Equal(t, 120.5, drv.rate)
	assert.Zero(t, s.SetMaximumRange(true))
	assert.True(t, drv.range72)
}

func TestSessionClose(t *testing.T) {
	drv := newMockDriver(1)
	s := NewSession(drv)
	require.NoError(t, s.Close())
	assert.True(t, drv.closed)
}
