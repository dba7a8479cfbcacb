package bvh

import "github.com/binzume/bvhconv/geom"

// Joint is a node of the skeleton. Children are owned by the joint; parent is a back reference.
type Joint struct {
	name     string
	parent   *Joint
	children []*Joint
	channels []int

	Offset     geom.Vector3
	HasEndSite bool
	EndSite    geom.Vector3 // valid only if HasEndSite
}

func newJoint(name string, parent *Joint) *Joint {
	j := &Joint{name: name, parent: parent}
	if parent != nil {
		parent.children = append(parent.children, j)
	}
	return j
}

func (j *Joint) Name() string {
	return j.name
}

// Parent returns nil for the root joint.
func (j *Joint) Parent() *Joint {
	return j.parent
}

func (j *Joint) Children() []*Joint {
	return j.children
}

// ChannelIndices returns indices of the channels driving this joint, in file order.
func (j *Joint) ChannelIndices() []int {
	return j.channels
}

func (j *Joint) IsRoot() bool {
	return j.parent == nil
}

// Depth is the number of ancestors.
func (j *Joint) Depth() int {
	d := 0
	for p := j.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

func (j *Joint) associateChannel(index int) {
	j.channels = append(j.channels, index)
}
