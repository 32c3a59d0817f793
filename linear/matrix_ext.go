// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import "math"

// MulV4 sets v to contain m ⋅ w.
func (m *M4) MulV4(v, w *V4) { v.Mul(m, w) }

// Translate makes m a translation matrix.
func (m *M4) Translate(x, y, z float32) {
	m.I()
	m[3][0] = x
	m[3][1] = y
	m[3][2] = z
}

// Scale makes m a scaling matrix.
func (m *M4) Scale(x, y, z float32) {
	*m = M4{}
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	m[3][3] = 1
}

// Skew makes m a skew matrix that shears the x and y axes by the
// given angles (radians), about the given anchor point.
func (m *M4) Skew(angleX, angleY float32, anchor *V3) {
	m.I()
	m[1][0] = float32(math.Tan(float64(angleX)))
	m[0][1] = float32(math.Tan(float64(angleY)))
	if anchor != nil {
		m[3][0] = -anchor[1] * m[1][0]
		m[3][1] = -anchor[0] * m[0][1]
	}
}

// Rotate makes m a rotation matrix of the given angle (radians) around
// axis, about the given anchor point (may be nil for the origin).
// axis need not be normalized.
func (m *M4) Rotate(angle float32, axis *V3, anchor *V3) {
	var a V3
	a.Norm(axis)
	s, c := float32(math.Sin(float64(angle))), float32(math.Cos(float64(angle)))
	ic := 1 - c
	x, y, z := a[0], a[1], a[2]
	*m = M4{
		{x*x*ic + c, x*y*ic + z*s, x*z*ic - y*s, 0},
		{x*y*ic - z*s, y*y*ic + c, y*z*ic + x*s, 0},
		{x*z*ic + y*s, y*z*ic - x*s, z*z*ic + c, 0},
		{0, 0, 0, 1},
	}
	if anchor != nil {
		var t, neg, pos M4
		neg.Translate(-anchor[0], -anchor[1], -anchor[2])
		pos.Translate(anchor[0], anchor[1], anchor[2])
		t.Mul(m, &neg)
		m.Mul(&pos, &t)
	}
}

// FromQuat sets m to the rotation matrix represented by q.
// q is assumed to be a unit quaternion.
func (m *M4) FromQuat(q *Q) {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.R
	x2, y2, z2 := x+x, y+y, z+z
	xx, yy, zz := x*x2, y*y2, z*z2
	xy, xz, yz := x*y2, x*z2, y*z2
	wx, wy, wz := w*x2, w*y2, w*z2
	*m = M4{
		{1 - (yy + zz), xy + wz, xz - wy, 0},
		{xy - wz, 1 - (xx + zz), yz + wx, 0},
		{xz + wy, yz - wx, 1 - (xx + yy), 0},
		{0, 0, 0, 1},
	}
}

// LookAt makes m a view matrix placed at eye, looking towards center,
// with the given up direction.
func (m *M4) LookAt(eye, center, up *V3) {
	var f, s, u V3
	f.Sub(center, eye)
	f.Norm(&f)
	s.Cross(&f, up)
	s.Norm(&s)
	u.Cross(&s, &f)
	*m = M4{
		{s[0], u[0], -f[0], 0},
		{s[1], u[1], -f[1], 0},
		{s[2], u[2], -f[2], 0},
		{-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1},
	}
}

// Perspective makes m a perspective projection matrix.
// fovy is the vertical field of view, in radians. aspect is the
// width-over-height ratio of the viewport. near and far are the
// distances to the clipping planes (far may be +Inf).
// The projection maps depth to the [0,1] range (clip-space
// convention shared by Vulkan/Metal/D3D; callers targeting OpenGL's
// [-1,1] convention adjust via TransformProjectionMatrix on the
// GpuCtx).
func (m *M4) Perspective(fovy, aspect, near, far float32) {
	t := float32(math.Tan(float64(fovy) / 2))
	*m = M4{}
	m[0][0] = 1 / (aspect * t)
	m[1][1] = 1 / t
	m[2][3] = -1
	if math.IsInf(float64(far), 1) {
		m[2][2] = -1
		m[3][2] = -near
	} else {
		m[2][2] = far / (near - far)
		m[3][2] = (far * near) / (near - far)
	}
}

// Orthographic makes m an orthographic projection matrix.
func (m *M4) Orthographic(left, right, bottom, top, near, far float32) {
	m.I()
	m[0][0] = 2 / (right - left)
	m[1][1] = 2 / (top - bottom)
	m[2][2] = -1 / (far - near)
	m[3][0] = -(right + left) / (right - left)
	m[3][1] = -(top + bottom) / (top - bottom)
	m[3][2] = -near / (far - near)
}
