package octree

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// binaryTreeTag is the ASCII header line identifying this package's binary format. ReadBinary is
// strict: any other tag is rejected as InvalidFile. The format is this module's own, not a shared
// wire contract with a pre-existing reader, so there is no compatibility reason to be permissive,
// and rejecting unknown tags turns a file-version mistake into an immediate, diagnosable error.
const binaryTreeTag = "octomap-go-occupancy-tree"

const (
	childAbsent   = 0b00
	childFree     = 0b01
	childOccupied = 0b10
	childInner    = 0b11
)

// WriteBinary converts the tree to its maximum-likelihood, pruned form (mutating it in place) and
// writes that compact representation to w.
func (t *Tree) WriteBinary(w io.Writer) error {
	t.ToMaxLikelihood()
	t.PruneAll()
	return t.WriteBinaryConst(w)
}

// WriteBinaryConst writes the tree's current state to w without mutating it. If the tree has not
// already been thresholded and pruned, the resulting file may be larger than WriteBinary would
// produce, since unpruned sibling leaves are encoded individually.
func (t *Tree) WriteBinaryConst(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(binaryTreeTag + "\n"); err != nil {
		return errors.Wrap(err, "writing tree tag")
	}

	var resBuf [8]byte
	binary.LittleEndian.PutUint64(resBuf[:], math.Float64bits(t.resolution))
	if _, err := bw.Write(resBuf[:]); err != nil {
		return errors.Wrap(err, "writing resolution")
	}

	numNodes := t.countNodes(t.root)
	var numBuf [4]byte
	binary.LittleEndian.PutUint32(numBuf[:], numNodes)
	if _, err := bw.Write(numBuf[:]); err != nil {
		return errors.Wrap(err, "writing node count")
	}

	if err := t.writeNode(bw, t.root); err != nil {
		return errors.Wrap(err, "writing root node")
	}

	return bw.Flush()
}

func (t *Tree) countNodes(n *node) uint32 {
	if n.IsLeaf() {
		return 1
	}
	count := uint32(1)
	for _, c := range n.children {
		if c != nil {
			count += t.countNodes(c)
		}
	}
	return count
}

// writeNode writes n's 8-slot, 2-bits-per-slot control word, then recurses pre-order into every
// slot coded childInner.
func (t *Tree) writeNode(w *bufio.Writer, n *node) error {
	var word uint16
	for i := uint8(0); i < 8; i++ {
		var code uint16
		switch c := n.Child(i); {
		case c == nil:
			code = childAbsent
		case c.HasChildren():
			code = childInner
		case t.IsNodeOccupied(c):
			code = childOccupied
		default:
			code = childFree
		}
		word |= code << (2 * i)
	}

	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], word)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	for i := uint8(0); i < 8; i++ {
		c := n.Child(i)
		if c != nil && c.HasChildren() {
			if err := t.writeNode(w, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadBinary decodes a tree previously written by WriteBinary/WriteBinaryConst from r, replacing
// this tree's contents on success. It decodes into a scratch tree and swaps it in only once
// decoding fully succeeds, so a malformed stream leaves the receiver untouched.
func (t *Tree) ReadBinary(r io.Reader) error {
	br := bufio.NewReader(r)

	tag, err := br.ReadString('\n')
	if err != nil {
		return &Error{Kind: KindInvalidFile, Err: errors.Wrap(err, "reading tree tag")}
	}
	if trimNewline(tag) != binaryTreeTag {
		t.logger.Errorw("rejecting stream with unrecognized tag", "tag", trimNewline(tag))
		return newError(KindInvalidFile, "unrecognized tree tag %q", trimNewline(tag))
	}

	var resBuf [8]byte
	if _, err := io.ReadFull(br, resBuf[:]); err != nil {
		return &Error{Kind: KindInvalidFile, Err: errors.Wrap(err, "reading resolution")}
	}
	resolution := math.Float64frombits(binary.LittleEndian.Uint64(resBuf[:]))

	var numBuf [4]byte
	if _, err := io.ReadFull(br, numBuf[:]); err != nil {
		return &Error{Kind: KindInvalidFile, Err: errors.Wrap(err, "reading node count")}
	}
	// numNodes is informational only (a sanity check a caller could cross-reference); decoding
	// itself is fully self-delimiting via the childInner recursion.
	_ = binary.LittleEndian.Uint32(numBuf[:])

	scratch := &Tree{
		logger:           t.logger,
		resolution:       resolution,
		root:             newNode(),
		probHitLog:       t.probHitLog,
		probMissLog:      t.probMissLog,
		occProbThresLog:  t.occProbThresLog,
		clampingThresMin: t.clampingThresMin,
		clampingThresMax: t.clampingThresMax,
		changedKeys:      NewKeySet(),
	}

	root, err := scratch.readNode(br)
	if err != nil {
		t.logger.Errorw("truncated or malformed tree stream", "error", err)
		return err
	}
	scratch.root = root
	scratch.rootTouched = root.HasChildren() || root.LogOdds() != 0

	*t = *scratch
	return nil
}

func (t *Tree) readNode(r io.Reader) (*node, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, &Error{Kind: KindInvalidFile, Err: errors.Wrap(err, "reading node control word")}
	}
	word := binary.LittleEndian.Uint16(buf[:])

	n := newNode()
	for i := uint8(0); i < 8; i++ {
		code := (word >> (2 * i)) & 0b11
		switch code {
		case childAbsent:
			continue
		case childFree:
			c, _ := n.CreateChild(i)
			c.SetLogOdds(t.clampingThresMin)
		case childOccupied:
			c, _ := n.CreateChild(i)
			c.SetLogOdds(t.clampingThresMax)
		case childInner:
			c, err := n.CreateChild(i)
			if err != nil {
				return nil, err
			}
			child, err := t.readNode(r)
			if err != nil {
				return nil, err
			}
			*c = *child
		}
	}
	return n, nil
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}

// WriteBinaryFile writes the tree (converted to maximum-likelihood and pruned) to the named file.
func (t *Tree) WriteBinaryFile(filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating binary file")
	}
	defer utils.UncheckedErrorFunc(f.Close)
	return t.WriteBinary(f)
}

// ReadBinaryFile reads a tree previously written by WriteBinaryFile, replacing this tree's
// contents on success.
func (t *Tree) ReadBinaryFile(filename string) (err error) {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "opening binary file")
	}
	defer utils.UncheckedErrorFunc(f.Close)
	return t.ReadBinary(f)
}
