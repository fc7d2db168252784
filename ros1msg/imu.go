package ros1msg

// Vector3 is the geometry_msgs/Vector3 message.
type Vector3 struct {
	X, Y, Z float64
}

// Quaternion is the geometry_msgs/Quaternion message.
type Quaternion struct {
	X, Y, Z, W float64
}

// Imu is the sensor_msgs/Imu message. Covariance matrices are row-major
// about the x, y and z axes; a matrix with element 0 set to -1 marks the
// associated estimate as unavailable.
type Imu struct {
	Header                       Header
	Orientation                  Quaternion
	OrientationCovariance        [9]float64
	AngularVelocity              Vector3
	AngularVelocityCovariance    [9]float64
	LinearAcceleration           Vector3
	LinearAccelerationCovariance [9]float64
}

// Marshal returns the ROS1 serialization of the message.
func (m *Imu) Marshal() []byte {
	e := newEncoder(312 + len(m.Header.FrameID))
	e.header(m.Header)
	e.quaternion(m.Orientation)
	e.covariance(m.OrientationCovariance)
	e.vector3(m.AngularVelocity)
	e.covariance(m.AngularVelocityCovariance)
	e.vector3(m.LinearAcceleration)
	e.covariance(m.LinearAccelerationCovariance)
	return e.buf
}

func (e *encoder) vector3(v Vector3) {
	e.f64(v.X)
	e.f64(v.Y)
	e.f64(v.Z)
}

func (e *encoder) quaternion(q Quaternion) {
	e.f64(q.X)
	e.f64(q.Y)
	e.f64(q.Z)
	e.f64(q.W)
}

func (e *encoder) covariance(m [9]float64) {
	for _, x := range m {
		e.f64(x)
	}
}
