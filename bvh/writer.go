package bvh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/binzume/bvhconv/geom"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatVector(v *geom.Vector3) string {
	return formatFloat(v.X) + " " + formatFloat(v.Y) + " " + formatFloat(v.Z)
}

func (d *Document) writeJoint(w *bufio.Writer, j *Joint, depth int) {
	indent := strings.Repeat("\t", depth)
	if j.parent == nil {
		fmt.Fprintf(w, "%sROOT %s\n", indent, j.name)
	} else {
		fmt.Fprintf(w, "%sJOINT %s\n", indent, j.name)
	}
	fmt.Fprintf(w, "%s{\n", indent)
	fmt.Fprintf(w, "%s\tOFFSET %s\n", indent, formatVector(&j.Offset))

	fmt.Fprintf(w, "%s\tCHANNELS %d", indent, len(j.channels))
	for _, ci := range j.channels {
		w.WriteString(" " + d.channels[ci].Type.String())
	}
	w.WriteString("\n")

	if j.HasEndSite {
		fmt.Fprintf(w, "%s\tEnd Site\n", indent)
		fmt.Fprintf(w, "%s\t{\n", indent)
		fmt.Fprintf(w, "%s\t\tOFFSET %s\n", indent, formatVector(&j.EndSite))
		fmt.Fprintf(w, "%s\t}\n", indent)
	}
	for _, c := range j.children {
		d.writeJoint(w, c, depth+1)
	}
	fmt.Fprintf(w, "%s}\n", indent)
}

// Write writes the document in bvh format.
func Write(doc *Document, ww io.Writer) error {
	w := bufio.NewWriter(ww)
	w.WriteString("HIERARCHY\n")
	if doc.root != nil {
		doc.writeJoint(w, doc.root, 0)
	}

	w.WriteString("MOTION\n")
	fmt.Fprintf(w, "Frames: %d\n", doc.frames)
	fmt.Fprintf(w, "Frame Time: %s\n", formatFloat(doc.frameTime))
	for frame := 0; frame < doc.frames; frame++ {
		for i, v := range doc.motion.Row(frame) {
			if i != 0 {
				w.WriteString(" ")
			}
			w.WriteString(formatFloat(v))
		}
		w.WriteString("\n")
	}
	return w.Flush()
}

// Save writes the document to a file.
func (d *Document) Save(path string) error {
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(d, w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
