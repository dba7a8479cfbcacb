package bvh

import (
	"fmt"
	"math"

	"github.com/binzume/bvhconv/geom"
)

func (d *Document) checkFrame(frame int) error {
	if frame < 0 || frame >= d.frames {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrFrameOutOfRange, frame, d.frames)
	}
	return nil
}

// localTransform composes the offset and then each channel in file order.
func (d *Document) localTransform(j *Joint, frame int) *geom.Matrix4 {
	m := geom.NewTranslateMatrix4(j.Offset.X, j.Offset.Y, j.Offset.Z)
	row := d.motion.Row(frame)
	for _, ci := range j.channels {
		t := d.channels[ci].Type
		axis := t.Axis()
		v := row[ci]
		if t.IsPosition() {
			m = m.Mul(geom.NewTranslateMatrix4(axis.X*v, axis.Y*v, axis.Z*v))
		} else {
			m = m.Mul(geom.NewAxisRotationMatrix4(&axis, v*math.Pi/180))
		}
	}
	return m
}

// TransformRelativeToParent returns the local transform of the joint at the frame.
func (d *Document) TransformRelativeToParent(j *Joint, frame int) (*geom.Matrix4, error) {
	if err := d.checkFrame(frame); err != nil {
		return nil, err
	}
	return d.localTransform(j, frame), nil
}

// Transform returns the transform of the joint in the root space at the frame.
func (d *Document) Transform(j *Joint, frame int) (*geom.Matrix4, error) {
	if err := d.checkFrame(frame); err != nil {
		return nil, err
	}
	m := d.localTransform(j, frame)
	for p := j.parent; p != nil; p = p.parent {
		m = d.localTransform(p, frame).Mul(m)
	}
	return m, nil
}

func (d *Document) RootTransform(frame int) (*geom.Matrix4, error) {
	return d.Transform(d.root, frame)
}

// WorldTransforms returns transforms of all joints in JointList order.
func (d *Document) WorldTransforms(frame int) ([]*geom.Matrix4, error) {
	if err := d.checkFrame(frame); err != nil {
		return nil, err
	}
	var result []*geom.Matrix4
	var walk func(j *Joint, parent *geom.Matrix4)
	walk = func(j *Joint, parent *geom.Matrix4) {
		m := d.localTransform(j, frame)
		if parent != nil {
			m = parent.Mul(m)
		}
		result = append(result, m)
		for _, c := range j.children {
			walk(c, m)
		}
	}
	if d.root != nil {
		walk(d.root, nil)
	}
	return result, nil
}

// JointPositions returns positions of all joints in JointList order.
func (d *Document) JointPositions(frame int) ([]*geom.Vector3, error) {
	transforms, err := d.WorldTransforms(frame)
	if err != nil {
		return nil, err
	}
	positions := make([]*geom.Vector3, len(transforms))
	for i, m := range transforms {
		positions[i] = m.Translation()
	}
	return positions, nil
}

// EndSitePosition returns the end site of the joint in the root space.
func (d *Document) EndSitePosition(j *Joint, frame int) (*geom.Vector3, error) {
	if !j.HasEndSite {
		return nil, fmt.Errorf("joint %q has no end site", j.name)
	}
	m, err := d.Transform(j, frame)
	if err != nil {
		return nil, err
	}
	return m.ApplyTo(&j.EndSite), nil
}
