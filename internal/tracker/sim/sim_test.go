package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"

	"github.com/Edwardzzz-c/gotrak/internal/tracker"
)

// rotate applies a unit quaternion to a vector, q v q*.
func rotate(q quat.Number, v [3]float64) [3]float64 {
	vq := quat.Number{Imag: v[0], Jmag: v[1], Kmag: v[2]}
	r := quat.Mul(quat.Mul(q, vq), quat.Conj(q))
	return [3]float64{r.Imag, r.Jmag, r.Kmag}
}

// applyMatrix multiplies a row-major 3x3 matrix with a vector.
func applyMatrix(m [9]float64, v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = m[3*i]*v[0] + m[3*i+1]*v[1] + m[3*i+2]*v[2]
	}
	return out
}

func axisAngleY(a float64) quat.Number {
	return quat.Number{Real: math.Cos(a / 2), Jmag: math.Sin(a / 2)}
}

func TestPoseRepresentationsAgree(t *testing.T) {
	basis := [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	for _, tsec := range []float64{0, 0.7, 3.1, 42} {
		for sensorID := 0; sensorID < 4; sensorID++ {
			_, q := poseAt(sensorID, tsec)

			// the quaternion must stay unit length
			assert.InDelta(t, 1.0, quat.Abs(q), 1e-9)

			// matrix and quaternion describe the same rotation
			m := quatMatrix(q)
			for _, v := range basis {
				want := rotate(q, v)
				got := applyMatrix(m, v)
				for i := 0; i < 3; i++ {
					assert.InDelta(t, want[i], got[i], 1e-9)
				}
			}

			// recomposing the Euler angles reproduces the rotation
			const degToRad = math.Pi / 180
			az, el, roll := quatEulerDeg(q)
			recomposed := quat.Mul(quat.Mul(
				axisAngleZ(az*degToRad), axisAngleY(el*degToRad)), axisAngleX(roll*degToRad))
			for _, v := range basis {
				want := rotate(q, v)
				got := rotate(recomposed, v)
				for i := 0; i < 3; i++ {
					assert.InDelta(t, want[i], got[i], 1e-9)
				}
			}
		}
	}
}

func TestDriverReadsAreConsistentAcrossModes(t *testing.T) {
	d := NewDriver(Opt{NumSensors: 2})
	frozen := d.start.Add(3 * time.Second)
	d.now = func() time.Time { return frozen }

	x1, y1, z1, q, st := d.GetCoordinatesQuaternion(1)
	require.Zero(t, st)
	x2, y2, z2, _, _, _, st := d.GetCoordinatesAngles(1)
	require.Zero(t, st)
	x3, y3, z3, _, st := d.GetCoordinatesMatrix(1)
	require.Zero(t, st)

	assert.Equal(t, x1, x2)
	assert.Equal(t, x2, x3)
	assert.Equal(t, y1, y2)
	assert.Equal(t, y2, y3)
	assert.Equal(t, z1, z2)
	assert.Equal(t, z2, z3)
	assert.InDelta(t, 1.0, q[0]*q[0]+q[1]*q[1]+q[2]*q[2]+q[3]*q[3], 1e-9)
}

func TestDriverFailInit(t *testing.T) {
	d := NewDriver(Opt{NumSensors: 4, FailInit: true})

	assert.False(t, d.Ok())
	assert.Equal(t, 0, d.NumberOfSensors())
	assert.False(t, d.TransmitterAttached())
	assert.NotZero(t, d.SetMeasurementRate(100))

	_, _, _, _, st := d.GetCoordinatesQuaternion(0)
	assert.NotZero(t, st)
}

func TestDriverScriptedFailure(t *testing.T) {
	d := NewDriver(Opt{NumSensors: 2, FailStatus: map[int]int{1: 5}})

	_, _, _, _, st := d.GetCoordinatesQuaternion(0)
	assert.Zero(t, st)
	_, _, _, _, st = d.GetCoordinatesQuaternion(1)
	assert.Equal(t, 5, st)
}

func TestDriverAttachment(t *testing.T) {
	d := NewDriver(Opt{NumSensors: 3, Detached: []int{1}})

	assert.True(t, d.SensorAttached(0))
	assert.False(t, d.SensorAttached(1))
	assert.True(t, d.SensorAttached(2))
	assert.False(t, d.SensorAttached(3))
	assert.False(t, d.SensorAttached(-1))
}

func TestDriverConfiguration(t *testing.T) {
	d := NewDriver(Opt{NumSensors: 2})

	assert.Zero(t, d.SetSensorHemisphere(0, tracker.HemisphereRear))
	assert.Equal(t, tracker.HemisphereRear, d.Hemisphere(0))

	assert.Zero(t, d.SetSensorAngles(1))
	assert.Equal(t, tracker.ModeAngles, d.Mode(1))

	// out of range ids are rejected with a status code, not a panic
	assert.NotZero(t, d.SetSensorQuaternion(9))
}

func TestDriverClose(t *testing.T) {
	d := NewDriver(Opt{NumSensors: 1})
	require.NoError(t, d.Close())
	assert.False(t, d.Ok())
}
