package icontool

import (
	"bufio"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/icontool/dmi"
	"github.com/bodgit/icontool/pngtext"
	"github.com/bodgit/icontool/sheet"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// writeFile calls fn to fill a temporary file alongside path which then
// replaces path. Nothing is left behind if fn fails.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	closed := false
	defer func() {
		if err != nil {
			if !closed {
				f.Close()
			}
			os.Remove(f.Name())
		}
	}()

	w := bufio.NewWriter(f)
	if err = fn(w); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = f.Chmod(0o644); err != nil {
		return err
	}

	closed = true
	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), path)
}

func (t *IconTool) readIcon(file string) (image.Image, string, *dmi.Metadata, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", nil, err
	}
	defer f.Close()

	img, text, err := pngtext.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", nil, errors.Wrap(err, file)
	}

	m, err := t.parser.Parse(text)
	if err != nil {
		return nil, "", nil, errors.Wrap(err, file)
	}

	return img, text, m, nil
}

func readDocument(file string) (*Document, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := ReadDocument(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	return d, nil
}

// Compile reads the document in and writes the icon it describes to out. If
// out is empty, CompiledPath is used.
func (t *IconTool) Compile(in, out string) error {
	if out == "" {
		out = CompiledPath(in)
	}

	d, err := readDocument(in)
	if err != nil {
		return err
	}

	m, err := t.parser.Parse(d.Metadata)
	if err != nil {
		return errors.Wrap(err, in)
	}

	l, grown, err := sheet.Plan(m, d.Width, d.Height, t.policy)
	if err != nil {
		return errors.Wrap(err, in)
	}
	if grown {
		glog.Warningf("%s: image dimensions %dx%d are not sufficient for %d frames of %dx%d, increased to %dx%d", in, d.Width, d.Height, m.FrameCount(), m.Width, m.Height, l.Width, l.Height)
	}

	if unused := sheet.Unreferenced(m, d.Keys()); len(unused) > 0 {
		glog.Warningf("%s: %d icon state(s) are not used by the metadata: %q", in, len(unused), unused)
	}

	img, err := sheet.Pack(l, m, d.Frames())
	if err != nil {
		return errors.Wrap(err, in)
	}

	if err := writeFile(out, func(w io.Writer) error {
		return pngtext.Encode(w, img, d.Metadata)
	}); err != nil {
		return errors.Wrap(err, out)
	}

	glog.V(1).Infof("compiled %s to %s, %d state(s) on a %dx%d image", in, out, len(m.States), l.Width, l.Height)

	return nil
}

// Decompile reads the icon in and writes its document form to out. If out is
// empty, DecompiledPath is used.
func (t *IconTool) Decompile(in, out string) error {
	if out == "" {
		out = DecompiledPath(in)
	}

	img, text, m, err := t.readIcon(in)
	if err != nil {
		return err
	}

	b := img.Bounds()
	states, err := sheet.Unpack(sheet.NewLayout(m, b.Dx(), b.Dy()), m, img)
	if err != nil {
		return errors.Wrap(err, in)
	}

	d := &Document{
		Path:     in,
		Width:    b.Dx(),
		Height:   b.Dy(),
		States:   states,
		Metadata: text,
	}

	if err := writeFile(out, func(w io.Writer) error {
		_, err := d.WriteTo(w)
		return err
	}); err != nil {
		return errors.Wrap(err, out)
	}

	glog.V(1).Infof("decompiled %s to %s, %d state(s)", in, out, len(states))

	return nil
}

// Inspect writes the parsed metadata of the icon in to w as YAML.
func (t *IconTool) Inspect(in string, w io.Writer) error {
	_, _, m, err := t.readIcon(in)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(err, in)
	}
	return enc.Close()
}
