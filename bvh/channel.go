package bvh

import (
	"fmt"

	"github.com/binzume/bvhconv/geom"
)

type ChannelType int

const (
	XPosition ChannelType = iota
	YPosition
	ZPosition
	ZRotation
	XRotation
	YRotation
)

var channelTypeNames = map[ChannelType]string{
	XPosition: "Xposition",
	YPosition: "Yposition",
	ZPosition: "Zposition",
	ZRotation: "Zrotation",
	XRotation: "Xrotation",
	YRotation: "Yrotation",
}

var channelTypeByName = map[string]ChannelType{}

func init() {
	for t, name := range channelTypeNames {
		channelTypeByName[name] = t
	}
}

// ParseChannelType converts one of the six channel literals. Names are case-sensitive.
func ParseChannelType(s string) (ChannelType, error) {
	if t, ok := channelTypeByName[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChannelType, s)
}

func (t ChannelType) String() string {
	if name, ok := channelTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ChannelType(%d)", int(t))
}

func (t ChannelType) IsPosition() bool {
	return t == XPosition || t == YPosition || t == ZPosition
}

func (t ChannelType) IsRotation() bool {
	return t == XRotation || t == YRotation || t == ZRotation
}

// Axis returns the unit axis the channel translates along or rotates around.
func (t ChannelType) Axis() geom.Vector3 {
	switch t {
	case XPosition, XRotation:
		return geom.AxisX
	case YPosition, YRotation:
		return geom.AxisY
	default:
		return geom.AxisZ
	}
}

// Channel is a single animated degree of freedom of a joint.
// Its index in Document.Channels() is the column in the motion matrix.
type Channel struct {
	Type  ChannelType
	Joint *Joint
}
