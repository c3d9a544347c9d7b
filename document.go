package icontool

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/bodgit/icontool/frame"
	"github.com/bodgit/icontool/sheet"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Reserved document keys, every other key names a state
const (
	keyPath     = "__dmi_path"
	keyWidth    = "__image_width"
	keyHeight   = "__image_height"
	keyMetadata = "__dmi_metadata"
)

const (
	tagStr  = "!!str"
	tagInt  = "!!int"
	tagNull = "!!null"
)

var errNotMapping = errors.New("icontool: document is not a mapping")

// MissingKeyError is returned when a required key is absent from a document.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("icontool: key %s is missing", e.Key)
}

// InvalidTypeError is returned when the value of a key has the wrong type.
type InvalidTypeError struct {
	Key      string
	Value    string
	Expected string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("icontool: under key %s, value %q cannot be converted to %s", e.Key, e.Value, e.Expected)
}

// DuplicateKeyError is returned when a document repeats a key, or a state
// name collides with a reserved key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("icontool: key %s appears more than once", e.Key)
}

// Document is the text form of an icon. The states are kept in document
// order.
type Document struct {
	Path     string
	Width    int
	Height   int
	States   []sheet.StateFrames
	Metadata string
}

// Keys returns the state keys of the document in order
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.States))
	for _, s := range d.States {
		keys = append(keys, s.Name)
	}
	return keys
}

// Frames returns the transport strings of each state keyed by name
func (d *Document) Frames() map[string][]string {
	frames := make(map[string][]string, len(d.States))
	for _, s := range d.States {
		frames[s.Name] = s.Frames
	}
	return frames
}

func isReserved(key string) bool {
	switch key {
	case keyPath, keyWidth, keyHeight, keyMetadata:
		return true
	}
	return false
}

func stringValue(key string, n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != tagStr {
		return "", &InvalidTypeError{Key: key, Value: n.Value, Expected: "a string"}
	}
	return n.Value, nil
}

func dimensionValue(key string, n *yaml.Node) (int, error) {
	var v uint64
	if n.Kind != yaml.ScalarNode || n.ShortTag() != tagInt || n.Decode(&v) != nil || v > math.MaxUint32 {
		return 0, &InvalidTypeError{Key: key, Value: n.Value, Expected: "an unsigned 32-bit integer"}
	}
	return int(v), nil
}

func framesValue(key string, n *yaml.Node) ([]string, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == tagNull {
		return []string{}, nil
	}
	if n.Kind != yaml.ScalarNode || n.ShortTag() != tagStr {
		return nil, &InvalidTypeError{Key: key, Value: n.Value, Expected: "a list of newline separated frames"}
	}
	return frame.Split(n.Value), nil
}

// ReadDocument reads a document from r.
func ReadDocument(r io.Reader) (*Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "icontool")
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	d := new(Document)
	seen := make(map[string]bool)

	switch node.Kind {
	case 0:
		// Empty document, fall through to the missing key check
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i].Value, node.Content[i+1]
			if seen[key] {
				return nil, &DuplicateKeyError{Key: key}
			}
			seen[key] = true

			var err error
			switch key {
			case keyPath:
				d.Path, err = stringValue(key, value)
			case keyWidth:
				d.Width, err = dimensionValue(key, value)
			case keyHeight:
				d.Height, err = dimensionValue(key, value)
			case keyMetadata:
				d.Metadata, err = stringValue(key, value)
			default:
				var frames []string
				if frames, err = framesValue(key, value); err == nil {
					d.States = append(d.States, sheet.StateFrames{
						Name:   key,
						Frames: frames,
					})
				}
			}
			if err != nil {
				return nil, err
			}
		}
	default:
		return nil, errNotMapping
	}

	for _, key := range []string{keyWidth, keyHeight, keyMetadata} {
		if !seen[key] {
			return nil, &MissingKeyError{Key: key}
		}
	}

	return d, nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}

func literal(value string) *yaml.Node {
	n := scalar(tagStr, value)
	n.Style = yaml.LiteralStyle
	return n
}

func (d *Document) node() (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		n.Content = append(n.Content, scalar(tagStr, key), value)
	}

	add(keyPath, scalar(tagStr, d.Path))
	add(keyWidth, scalar(tagInt, strconv.Itoa(d.Width)))
	add(keyHeight, scalar(tagInt, strconv.Itoa(d.Height)))

	seen := make(map[string]bool)
	for _, s := range d.States {
		if isReserved(s.Name) || seen[s.Name] {
			return nil, &DuplicateKeyError{Key: s.Name}
		}
		seen[s.Name] = true
		add(s.Name, literal(frame.Join(s.Frames)))
	}

	add(keyMetadata, literal(d.Metadata))

	return n, nil
}

// WriteTo writes the document to w with the reserved keys surrounding the
// states. It implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := d.node()
	if err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	enc := yaml.NewEncoder(bw)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return cw.n, errors.Wrap(err, "icontool")
	}
	if err := enc.Close(); err != nil {
		return cw.n, errors.Wrap(err, "icontool")
	}
	err = bw.Flush()

	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
