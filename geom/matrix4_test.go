package geom

import (
	"math"
	"testing"
)

func TestDecomposeMatrix(t *testing.T) {
	const eps = 0.000001

	pos := NewVector3(1, 2, 3)
	rot := NewAxisAngleQuaternion(NewVector3(1, 2, 3).Normalize(), 40*math.Pi/180)
	scale := NewVector3(1.5, 1.6, 1.7)

	mat := NewTRSMatrix4(pos, rot, scale)
	pos1, rot1, scale1 := mat.Decompose()

	if pos.Sub(pos1).Len() > eps {
		t.Error("pos: ", pos, pos1)
	}
	if rot.Sub(rot1).Len() > eps {
		t.Error("rot: ", rot, rot1)
	}
	if scale.Sub(scale1).Len() > eps {
		t.Error("scale: ", scale, scale1)
	}

	mat2 := NewRotationMatrix4FromQuaternion(rot)
	pos1, rot1, scale1 = mat2.Decompose()
	if rot.Sub(rot1).Len() > eps {
		t.Error("rot: ", rot, rot1)
	}
	if pos1.Len() > eps {
		t.Error("pos: ", pos1)
	}
	if scale1.Sub(NewVector3(1, 1, 1)).Len() > eps {
		t.Error("scale: ", scale1)
	}
}

func TestAxisRotationMatrix(t *testing.T) {
	const eps = 0.000001

	for i, c := range []struct {
		axis     Vector3
		deg      float64
		src, dst Vector3
	}{
		{AxisX, 90, Vector3{0, 1, 0}, Vector3{0, 0, 1}},
		{AxisY, 90, Vector3{0, 0, 1}, Vector3{1, 0, 0}},
		{AxisZ, 90, Vector3{1, 0, 0}, Vector3{0, 1, 0}},
		{AxisZ, -90, Vector3{1, 0, 0}, Vector3{0, -1, 0}},
		{AxisX, 180, Vector3{0, 1, 0}, Vector3{0, -1, 0}},
	} {
		rad := c.deg * math.Pi / 180
		m := NewAxisRotationMatrix4(&c.axis, rad)
		if v := m.ApplyTo(&c.src); v.Sub(&c.dst).Len() > eps {
			t.Error("matrix: ", i, v, c.dst)
		}
		q := NewAxisAngleQuaternion(&c.axis, rad)
		if v := q.ApplyTo(&c.src); v.Sub(&c.dst).Len() > eps {
			t.Error("quaternion: ", i, v, c.dst)
		}
		if !NewRotationMatrix4FromQuaternion(q).Equals(m, eps) {
			t.Error("quaternion matrix: ", i, NewRotationMatrix4FromQuaternion(q), m)
		}
	}
}

func TestMatrixMul(t *testing.T) {
	const eps = 0.000001

	// translate after rotate
	m := NewTranslateMatrix4(1, 0, 0).Mul(NewAxisRotationMatrix4(&AxisZ, math.Pi/2))
	if v := m.ApplyTo(NewVector3(1, 0, 0)); v.Sub(NewVector3(1, 1, 0)).Len() > eps {
		t.Error("T*R: ", v)
	}
	// rotate after translate
	m = NewAxisRotationMatrix4(&AxisZ, math.Pi/2).Mul(NewTranslateMatrix4(1, 0, 0))
	if v := m.ApplyTo(NewVector3(1, 0, 0)); v.Sub(NewVector3(0, 2, 0)).Len() > eps {
		t.Error("R*T: ", v)
	}

	if !NewMatrix4().Mul(m).Equals(m, 0) || !m.Mul(NewMatrix4()).Equals(m, 0) {
		t.Error("identity")
	}
}
