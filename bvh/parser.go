package bvh

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/binzume/bvhconv/geom"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// motion storage reserved from the Frames header is capped; more rows grow as read.
const maxReservedValues = 1 << 20

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Parser for bvh file.
type Parser struct {
	name string
	r    io.Reader

	// Scale is applied to offsets, end sites and position channels. Default: 1 (0 is treated as 1)
	Scale float64
	// Encoding of the input. nil: UTF-8, or Shift_JIS if the input is not valid UTF-8.
	Encoding encoding.Encoding

	lr    *lineReader
	doc   *Document
	stack []*Joint
}

// NewParser returns new parser. path is used only in error messages.
func NewParser(r io.Reader, path string) *Parser {
	return &Parser{name: path, r: r, Scale: 1}
}

func (p *Parser) decode() (io.Reader, error) {
	data, err := io.ReadAll(p.r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	enc := p.Encoding
	if enc == nil && !utf8.Valid(data) {
		enc = japanese.ShiftJIS
	}
	if enc != nil {
		data, _, err = transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			return nil, err
		}
	}
	return bytes.NewReader(data), nil
}

func (p *Parser) top() *Joint {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *Parser) parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, p.lr.errorf(ErrNumberFormat, strconv.Quote(s))
	}
	return v, nil
}

func (p *Parser) readOffset(tokens []string, kind error) (geom.Vector3, error) {
	if len(tokens) != 4 || tokens[0] != "OFFSET" {
		return geom.Vector3{}, p.lr.errorf(kind, "expected OFFSET x y z")
	}
	var v [3]float64
	for i := range v {
		f, err := p.parseFloat(tokens[i+1])
		if err != nil {
			return geom.Vector3{}, err
		}
		v[i] = f * p.Scale
	}
	return geom.Vector3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func (p *Parser) expectLine(token string, kind error) error {
	tokens, err := p.lr.nextTokens()
	if err != nil {
		return err
	}
	if len(tokens) != 1 || tokens[0] != token {
		return p.lr.errorf(kind, fmt.Sprintf("expected %q", token))
	}
	return nil
}

func (p *Parser) readJoint(tokens []string) error {
	if len(tokens) != 2 {
		return p.lr.errorf(ErrMalformedJoint, "expected joint name")
	}
	parent := p.top()
	if parent == nil && p.doc.root != nil {
		return p.lr.errorf(ErrMultipleRoots, "")
	}
	joint := newJoint(tokens[1], parent)
	if parent == nil {
		p.doc.root = joint
	}
	p.stack = append(p.stack, joint)
	return p.expectLine("{", ErrMalformedBlock)
}

func (p *Parser) readChannels(tokens []string) error {
	joint := p.top()
	if joint == nil {
		return p.lr.errorf(ErrMalformedBlock, "CHANNELS outside of joint")
	}
	if len(tokens) < 2 {
		return p.lr.errorf(ErrChannelCount, "missing channel count")
	}
	n, err := strconv.Atoi(tokens[1])
	if err != nil || n < 0 {
		return p.lr.errorf(ErrChannelCount, fmt.Sprintf("invalid channel count %q", tokens[1]))
	}
	if len(tokens) != n+2 {
		return p.lr.errorf(ErrChannelCount, fmt.Sprintf("declared %d, found %d", n, len(tokens)-2))
	}
	for _, name := range tokens[2:] {
		typ, err := ParseChannelType(name)
		if err != nil {
			return p.lr.errorf(ErrUnknownChannelType, strconv.Quote(name))
		}
		joint.associateChannel(len(p.doc.channels))
		p.doc.channels = append(p.doc.channels, &Channel{Type: typ, Joint: joint})
	}
	return nil
}

func (p *Parser) readEndSite(tokens []string) error {
	joint := p.top()
	if len(tokens) != 2 || tokens[1] != "Site" || joint == nil {
		return p.lr.errorf(ErrMalformedEndSite, "")
	}
	joint.HasEndSite = true
	if err := p.expectLine("{", ErrMalformedEndSite); err != nil {
		return err
	}
	tokens, err := p.lr.nextTokens()
	if err != nil {
		return err
	}
	if joint.EndSite, err = p.readOffset(tokens, ErrMalformedEndSite); err != nil {
		return err
	}
	return p.expectLine("}", ErrMalformedEndSite)
}

func (p *Parser) parseHierarchy() error {
	for {
		tokens, ok, err := p.lr.next()
		if err != nil {
			return err
		}
		if !ok {
			return &ParseError{Line: p.lr.line, Err: ErrMissingMotionSection}
		}
		if len(tokens) == 0 {
			continue
		}

		switch tokens[0] {
		case "HIERARCHY":
		case "ROOT", "JOINT":
			err = p.readJoint(tokens)
		case "OFFSET":
			joint := p.top()
			if joint == nil {
				return p.lr.errorf(ErrMalformedBlock, "OFFSET outside of joint")
			}
			joint.Offset, err = p.readOffset(tokens, ErrMalformedOffset)
		case "CHANNELS":
			err = p.readChannels(tokens)
		case "End":
			err = p.readEndSite(tokens)
		case "}":
			if len(p.stack) == 0 {
				return p.lr.errorf(ErrUnbalancedBraces, "")
			}
			p.stack = p.stack[:len(p.stack)-1]
		case "MOTION":
			if len(p.stack) != 0 {
				return p.lr.errorf(ErrUnbalancedBraces, fmt.Sprintf("%d unclosed joint blocks", len(p.stack)))
			}
			if p.doc.root == nil {
				return p.lr.errorf(ErrNoRoot, "")
			}
			return nil
		default:
			return p.lr.errorf(ErrUnrecognizedKeyword, strconv.Quote(tokens[0]))
		}
		if err != nil {
			return err
		}
	}
}

func (p *Parser) parseMotion() error {
	doc := p.doc

	tokens, err := p.lr.nextTokens()
	if err != nil {
		return err
	}
	if len(tokens) != 2 || tokens[0] != "Frames:" {
		return p.lr.errorf(ErrMalformedFrameCount, "expected Frames: n")
	}
	if doc.frames, err = strconv.Atoi(tokens[1]); err != nil || doc.frames < 0 {
		return p.lr.errorf(ErrMalformedFrameCount, strconv.Quote(tokens[1]))
	}

	tokens, err = p.lr.nextTokens()
	if err != nil {
		return err
	}
	if len(tokens) != 3 || tokens[0] != "Frame" || tokens[1] != "Time:" {
		return p.lr.errorf(ErrMalformedFrameTime, "expected Frame Time: t")
	}
	if doc.frameTime, err = strconv.ParseFloat(tokens[2], 64); err != nil {
		return p.lr.errorf(ErrMalformedFrameTime, strconv.Quote(tokens[2]))
	}

	scales := make([]float64, len(doc.channels))
	for i, ch := range doc.channels {
		scales[i] = 1
		if ch.Type.IsPosition() {
			scales[i] = p.Scale
		}
	}

	cols := len(doc.channels)
	reserve := doc.frames
	if cols > 0 && reserve > maxReservedValues/cols {
		reserve = maxReservedValues / cols
	}
	doc.motion = &Motion{cols: cols, data: make([]float64, 0, reserve*cols)}
	for frame := 0; frame < doc.frames; frame++ {
		tokens, err := p.lr.nextTokens()
		if err != nil {
			return err
		}
		if len(tokens) != len(doc.channels) {
			return p.lr.errorf(ErrFrameColumnMismatch,
				fmt.Sprintf("frame %d has %d values, expected %d", frame, len(tokens), len(doc.channels)))
		}
		row := doc.motion.appendRow()
		for i, s := range tokens {
			v, err := p.parseFloat(s)
			if err != nil {
				return err
			}
			row[i] = v * scales[i]
		}
	}
	return nil
}

// Parse reads a whole bvh document. No partial result is returned on error.
func (p *Parser) Parse() (*Document, error) {
	r, err := p.decode()
	if err != nil {
		return nil, p.wrap(err)
	}
	if p.Scale == 0 {
		p.Scale = 1
	}
	p.lr = newLineReader(r)
	p.doc = &Document{}
	p.stack = nil

	if err := p.parseHierarchy(); err != nil {
		return nil, p.wrap(err)
	}
	if err := p.parseMotion(); err != nil {
		return nil, p.wrap(err)
	}
	doc := p.doc
	p.doc = nil
	return doc, nil
}

func (p *Parser) wrap(err error) error {
	if p.name == "" {
		return err
	}
	return fmt.Errorf("%s: %w", p.name, err)
}

// Parse reads a bvh document from r.
func Parse(r io.Reader) (*Document, error) {
	return NewParser(r, "").Parse()
}

func Load(path string) (*Document, error) {
	return LoadScaled(path, 1)
}

// LoadScaled loads a bvh file and multiplies all lengths by scale. scale 0 means no scaling.
func LoadScaled(path string, scale float64) (*Document, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	parser := NewParser(r, path)
	parser.Scale = scale
	return parser.Parse()
}
