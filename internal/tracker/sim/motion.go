package sim

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// poseAt computes the scripted pose of a sensor t seconds after start.
// Each sensor orbits the transmitter on its own circle, facing along its
// direction of travel with a constant tilt.
func poseAt(sensorID int, t float64) (pos [3]float64, o quat.Number) {
	phase := orbitRate*t + 2*math.Pi*float64(sensorID)/8
	radius := baseRadius + radiusStep*float64(sensorID)

	pos[0] = radius * math.Cos(phase)
	pos[1] = radius * math.Sin(phase)
	pos[2] = baseHeight + heightStep*float64(sensorID) + 0.5*math.Sin(0.2*t)

	tilt := (baseTiltDeg + tiltStepDeg*float64(sensorID)) * math.Pi / 180
	o = quat.Mul(axisAngleZ(phase), axisAngleX(tilt))
	return pos, o
}

// axisAngleZ is a rotation of a radians about the z axis.
func axisAngleZ(a float64) quat.Number {
	return quat.Number{Real: math.Cos(a / 2), Kmag: math.Sin(a / 2)}
}

// axisAngleX is a rotation of a radians about the x axis.
func axisAngleX(a float64) quat.Number {
	return quat.Number{Real: math.Cos(a / 2), Imag: math.Sin(a / 2)}
}

// quatArray exposes a unit quaternion in the device's [w, x, y, z] order.
func quatArray(q quat.Number) [4]float64 {
	return [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag}
}

// quatMatrix expands a unit quaternion into a row-major rotation matrix.
func quatMatrix(q quat.Number) [9]float64 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return [9]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	}
}

// quatEulerDeg extracts Z-Y-X Euler angles in degrees from a unit
// quaternion: azimuth about z, elevation about y, roll about x.
func quatEulerDeg(q quat.Number) (azimuth, elevation, roll float64) {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	azimuth = math.Atan2(2*(x*y+w*z), 1-2*(y*y+z*z))

	sinElevation := 2 * (w*y - x*z)
	if sinElevation > 1 {
		sinElevation = 1
	} else if sinElevation < -1 {
		sinElevation = -1
	}
	elevation = math.Asin(sinElevation)

	roll = math.Atan2(2*(y*z+w*x), 1-2*(x*x+y*y))

	const radToDeg = 180 / math.Pi
	return azimuth * radToDeg, elevation * radToDeg, roll * radToDeg
}

func identityMatrix() [9]float64 {
	return [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
}
