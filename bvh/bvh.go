// Package bvh reads and writes Biovision Hierarchy motion capture files.
//
// A Document holds the joint tree, the flat channel list and the frames x channels motion
// matrix. Column i of the matrix holds the values of Channels()[i].
package bvh

import (
	"fmt"
	"io"
	"strings"
)

// Document is a parsed bvh file.
// Queries do not modify it. ResizeFrames requires exclusive access.
type Document struct {
	frames    int
	frameTime float64
	channels  []*Channel
	motion    *Motion
	root      *Joint
}

func (d *Document) Frames() int {
	return d.frames
}

// FrameTime is the duration of a frame in seconds.
func (d *Document) FrameTime() float64 {
	return d.frameTime
}

func (d *Document) Channels() []*Channel {
	return d.channels
}

func (d *Document) Motion() *Motion {
	return d.motion
}

func (d *Document) Root() *Joint {
	return d.root
}

// JointList returns all joints in pre-order (root first, children in file order).
// The order is stable for the same document.
func (d *Document) JointList() []*Joint {
	var joints []*Joint
	var add func(j *Joint)
	add = func(j *Joint) {
		joints = append(joints, j)
		for _, c := range j.children {
			add(c)
		}
	}
	if d.root != nil {
		add(d.root)
	}
	return joints
}

// Joint finds a joint by name.
func (d *Document) Joint(name string) *Joint {
	for _, j := range d.JointList() {
		if j.name == name {
			return j
		}
	}
	return nil
}

// PrintJointHierarchy writes joint names indented by depth.
func (d *Document) PrintJointHierarchy(w io.Writer) {
	for _, j := range d.JointList() {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", j.Depth()), j.name)
	}
}

// ResizeFrames changes the number of frames. New frames are appended at the end and
// must be written before they are read. Shrinking drops the last frames.
func (d *Document) ResizeFrames(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrFrameOutOfRange, n)
	}
	if n == d.frames {
		return nil
	}
	d.motion.resize(n)
	d.frames = n
	return nil
}
