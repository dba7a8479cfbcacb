package bvh

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/binzume/bvhconv/geom"
)

const eps = 1e-9

func TestTransformRelativeToParent(t *testing.T) {
	doc := mustParse(t, testBVH)

	// frame 0: no motion, offsets only
	m, err := doc.TransformRelativeToParent(doc.Joint("Head"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equals(geom.NewTranslateMatrix4(0, 20, 1.25), eps) {
		t.Error("rest pose: ", m)
	}

	// frame 2: Head Zrotation 30
	m, _ = doc.TransformRelativeToParent(doc.Joint("Head"), 2)
	expected := geom.NewTranslateMatrix4(0, 20, 1.25).Mul(geom.NewAxisRotationMatrix4(&geom.AxisZ, math.Pi/6))
	if !m.Equals(expected, eps) {
		t.Error("head: ", m)
	}

	// frame 1: Hips translation then Z, X, Y rotations in file order
	m, _ = doc.TransformRelativeToParent(doc.Root(), 1)
	expected = geom.NewTranslateMatrix4(1.5, 88, 3).
		Mul(geom.NewAxisRotationMatrix4(&geom.AxisZ, 10*math.Pi/180)).
		Mul(geom.NewAxisRotationMatrix4(&geom.AxisX, 20*math.Pi/180)).
		Mul(geom.NewAxisRotationMatrix4(&geom.AxisY, 30*math.Pi/180))
	if !m.Equals(expected, eps) {
		t.Error("hips: ", m)
	}
}

func TestChannelOrder(t *testing.T) {
	src1 := "ROOT A\n{\nOFFSET 0 0 0\nCHANNELS 2 Xrotation Zposition\n}\nMOTION\nFrames: 1\nFrame Time: 1\n90 1\n"
	src2 := "ROOT A\n{\nOFFSET 0 0 0\nCHANNELS 2 Zposition Xrotation\n}\nMOTION\nFrames: 1\nFrame Time: 1\n1 90\n"

	m1, _ := mustParse(t, src1).RootTransform(0)
	m2, _ := mustParse(t, src2).RootTransform(0)
	// rotation first moves the translation onto -Y
	if m1.Translation().Sub(geom.NewVector3(0, -1, 0)).Len() > eps {
		t.Error("rotate then translate: ", m1.Translation())
	}
	if m2.Translation().Sub(geom.NewVector3(0, 0, 1)).Len() > eps {
		t.Error("translate then rotate: ", m2.Translation())
	}
}

func TestTransform(t *testing.T) {
	doc := mustParse(t, testBVH)

	for f := 0; f < doc.Frames(); f++ {
		for _, j := range doc.JointList() {
			world, err := doc.Transform(j, f)
			if err != nil {
				t.Fatal(err)
			}
			local, _ := doc.TransformRelativeToParent(j, f)
			if j.Parent() == nil {
				if !world.Equals(local, eps) {
					t.Error("root: ", f)
				}
				continue
			}
			parent, _ := doc.Transform(j.Parent(), f)
			if !world.Equals(parent.Mul(local), eps) {
				t.Error("transform: ", j.Name(), f)
			}
		}

		transforms, err := doc.WorldTransforms(f)
		if err != nil {
			t.Fatal(err)
		}
		for i, j := range doc.JointList() {
			m, _ := doc.Transform(j, f)
			if !transforms[i].Equals(m, eps) {
				t.Error("world transforms: ", j.Name(), f)
			}
		}
	}

	root, _ := doc.RootTransform(1)
	m, _ := doc.Transform(doc.Root(), 1)
	if !root.Equals(m, 0) {
		t.Error("root transform")
	}
}

func TestJointPositions(t *testing.T) {
	doc := mustParse(t, testBVH)

	positions, err := doc.JointPositions(0)
	if err != nil {
		t.Fatal(err)
	}
	for i, expected := range []*geom.Vector3{{Y: 90}, {Y: 100.5}, {Y: 120.5, Z: 1.25}, {X: 10, Y: 85}} {
		if positions[i].Sub(expected).Len() > eps {
			t.Error("position: ", i, positions[i])
		}
	}

	// frame 2: Hips Yrotation 90, LeftLeg Yrotation -45 does not move its end site
	p, err := doc.EndSitePosition(doc.Joint("LeftLeg"), 2)
	if err != nil {
		t.Fatal(err)
	}
	if p.Sub(geom.NewVector3(-1, 47.25, -10)).Len() > eps {
		t.Error("end site: ", p)
	}
	if _, err := doc.EndSitePosition(doc.Joint("Chest"), 0); err == nil {
		t.Error("expected error")
	}
}

func TestFrameOutOfRange(t *testing.T) {
	doc := mustParse(t, testBVH)
	for _, f := range []int{-1, 3, 100} {
		if _, err := doc.TransformRelativeToParent(doc.Root(), f); !errors.Is(err, ErrFrameOutOfRange) {
			t.Error("local: ", f, err)
		}
		if _, err := doc.Transform(doc.Joint("Head"), f); !errors.Is(err, ErrFrameOutOfRange) {
			t.Error("world: ", f, err)
		}
		if _, err := doc.JointPositions(f); !errors.Is(err, ErrFrameOutOfRange) {
			t.Error("positions: ", f, err)
		}
	}
}

func TestJointListStable(t *testing.T) {
	doc := mustParse(t, testBVH)
	l1, l2 := doc.JointList(), doc.JointList()
	if len(l1) != len(l2) {
		t.Fatal("length")
	}
	for i := range l1 {
		if l1[i] != l2[i] {
			t.Error("order: ", i)
		}
	}
}

func TestPrintJointHierarchy(t *testing.T) {
	doc := mustParse(t, testBVH)
	var buf bytes.Buffer
	doc.PrintJointHierarchy(&buf)
	if buf.String() != "Hips\n  Chest\n    Head\n  LeftLeg\n" {
		t.Errorf("hierarchy:\n%s", buf.String())
	}
}

func TestResizeFrames(t *testing.T) {
	doc := mustParse(t, testBVH)
	orig := make([][]float64, doc.Frames())
	for f := range orig {
		orig[f] = append([]float64(nil), doc.Motion().Row(f)...)
	}

	if err := doc.ResizeFrames(10); err != nil {
		t.Fatal(err)
	}
	if doc.Frames() != 10 || doc.Motion().Rows() != 10 {
		t.Error("grow: ", doc.Frames())
	}
	for c := 0; c < doc.Motion().Cols(); c++ {
		doc.Motion().Set(9, c, float64(c))
	}
	if _, err := doc.RootTransform(9); err != nil {
		t.Error(err)
	}

	if err := doc.ResizeFrames(3); err != nil {
		t.Fatal(err)
	}
	if doc.Frames() != 3 {
		t.Error("shrink: ", doc.Frames())
	}
	for f, row := range orig {
		for c, v := range row {
			if doc.Motion().At(f, c) != v {
				t.Error("value changed: ", f, c)
			}
		}
	}

	if err := doc.ResizeFrames(1); err != nil || doc.Frames() != 1 {
		t.Error("truncate: ", doc.Frames(), err)
	}
	if _, err := doc.RootTransform(1); !errors.Is(err, ErrFrameOutOfRange) {
		t.Error("expected out of range: ", err)
	}
	if err := doc.ResizeFrames(1); err != nil {
		t.Error("no-op: ", err)
	}
	if err := doc.ResizeFrames(-1); !errors.Is(err, ErrFrameOutOfRange) {
		t.Error("negative: ", err)
	}

	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		t.Fatal(err)
	}
	if doc2, err := Parse(&buf); err != nil || doc2.Frames() != 1 {
		t.Error("write resized: ", err)
	}
}
