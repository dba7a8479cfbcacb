package converter

import (
	"log"

	"github.com/binzume/bvhconv/bvh"
	"github.com/binzume/bvhconv/geom"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

type BVHToGLTFOption struct {
	Scale            float64           `yaml:"scale"` // Default: 0.01 (cm to m)
	AnimationName    string            `yaml:"animationName"`
	FrameStep        int               `yaml:"frameStep"` // Default: 1
	MaxFrames        int               `yaml:"maxFrames"` // 0: unlimited
	IgnoreRootMotion bool              `yaml:"ignoreRootMotion"`
	EndSites         bool              `yaml:"endSites"`
	JointNames       map[string]string `yaml:"jointNames"` // bvh joint name => node name
}

type bvhToGltf struct {
	*BVHToGLTFOption
	*gltf.Document
	JointNodes map[*bvh.Joint]uint32
}

func NewBVHToGLTFConverter(options *BVHToGLTFOption) *bvhToGltf {
	if options == nil {
		options = &BVHToGLTFOption{}
	}
	if options.Scale == 0 {
		options.Scale = 0.01
	}
	if options.FrameStep <= 0 {
		options.FrameStep = 1
	}
	if options.AnimationName == "" {
		options.AnimationName = "motion"
	}
	return &bvhToGltf{
		BVHToGLTFOption: options,
		Document:        gltf.NewDocument(),
		JointNodes:      map[*bvh.Joint]uint32{},
	}
}

func (c *bvhToGltf) nodeName(j *bvh.Joint) string {
	if name, ok := c.JointNames[j.Name()]; ok {
		return name
	}
	return j.Name()
}

func (c *bvhToGltf) addJointNodes(joints []*bvh.Joint) {
	for _, j := range joints {
		c.JointNodes[j] = uint32(len(c.Nodes))
		c.Nodes = append(c.Nodes, &gltf.Node{
			Name:        c.nodeName(j),
			Translation: j.Offset.Scale(c.Scale).ToFloat32(),
			Rotation:    [4]float32{0, 0, 0, 1},
		})
	}

	for _, j := range joints {
		node := c.Nodes[c.JointNodes[j]]
		if parent := j.Parent(); parent != nil {
			parentNode := c.Nodes[c.JointNodes[parent]]
			parentNode.Children = append(parentNode.Children, c.JointNodes[j])
		} else {
			c.Scenes[0].Nodes = append(c.Scenes[0].Nodes, c.JointNodes[j])
		}
		if c.EndSites && j.HasEndSite {
			node.Children = append(node.Children, uint32(len(c.Nodes)))
			c.Nodes = append(c.Nodes, &gltf.Node{
				Name:        node.Name + "_end",
				Translation: j.EndSite.Scale(c.Scale).ToFloat32(),
				Rotation:    [4]float32{0, 0, 0, 1},
			})
		}
	}
}

func (c *bvhToGltf) addSampler(a *gltf.Animation, node, keysAcc, samplesAcc uint32, path gltf.TRSProperty) {
	a.Samplers = append(a.Samplers, &gltf.AnimationSampler{
		Input:         gltf.Index(keysAcc),
		Output:        gltf.Index(samplesAcc),
		Interpolation: gltf.InterpolationLinear,
	})

	a.Channels = append(a.Channels, &gltf.Channel{
		Sampler: gltf.Index(uint32(len(a.Samplers) - 1)),
		Target: gltf.ChannelTarget{
			Node: gltf.Index(node),
			Path: path,
		},
	})
}

func jointChannelKinds(doc *bvh.Document, j *bvh.Joint) (rotation, position bool) {
	for _, ci := range j.ChannelIndices() {
		t := doc.Channels()[ci].Type
		rotation = rotation || t.IsRotation()
		position = position || t.IsPosition()
	}
	return
}

func (c *bvhToGltf) addAnimation(doc *bvh.Document, joints []*bvh.Joint) error {
	frames := doc.Frames()
	if c.MaxFrames > 0 && c.MaxFrames < frames {
		frames = c.MaxFrames
	}
	if frames == 0 {
		log.Print("no frames to convert")
		return nil
	}

	var sampled []int
	var keys []float32
	for f := 0; f < frames; f += c.FrameStep {
		sampled = append(sampled, f)
		keys = append(keys, float32(float64(f)*doc.FrameTime()))
	}
	keysAcc := modeler.WriteAccessor(c.Document, gltf.TargetNone, keys)
	c.Accessors[keysAcc].Min = []float32{keys[0]}
	c.Accessors[keysAcc].Max = []float32{keys[len(keys)-1]}

	a := &gltf.Animation{Name: c.AnimationName}
	for _, j := range joints {
		rotate, translate := jointChannelKinds(doc, j)
		if j.IsRoot() && c.IgnoreRootMotion {
			translate = false
		}
		if !rotate && !translate {
			continue
		}

		var prev *geom.Quaternion
		rotations := make([][4]float32, 0, len(sampled))
		translations := make([][3]float32, 0, len(sampled))
		for _, f := range sampled {
			m, err := doc.TransformRelativeToParent(j, f)
			if err != nil {
				return err
			}
			pos, rot, _ := m.Decompose()
			// keep quaternions in one hemisphere for linear interpolation
			if prev != nil && prev.Dot(rot) < 0 {
				rot = rot.Scale(-1)
			}
			prev = rot
			rotations = append(rotations, rot.ToFloat32())
			translations = append(translations, pos.Scale(c.Scale).ToFloat32())
		}

		node := c.JointNodes[j]
		if rotate {
			c.addSampler(a, node, keysAcc, modeler.WriteTangent(c.Document, rotations), gltf.TRSRotation)
		}
		if translate {
			c.addSampler(a, node, keysAcc, modeler.WritePosition(c.Document, translations), gltf.TRSTranslation)
		}
	}

	if len(a.Channels) > 0 {
		c.Animations = append(c.Animations, a)
	} else {
		log.Print("no animated joints: ", c.AnimationName)
	}
	return nil
}

// Convert builds a glTF document with one node per joint and one animation.
func (c *bvhToGltf) Convert(doc *bvh.Document) (*gltf.Document, error) {
	joints := doc.JointList()
	if len(joints) == 0 {
		return nil, bvh.ErrNoRoot
	}
	c.addJointNodes(joints)
	if err := c.addAnimation(doc, joints); err != nil {
		return nil, err
	}
	return c.Document, nil
}
