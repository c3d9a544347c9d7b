package dmi

import (
	"fmt"
	"strings"
)

var nameEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// String renders the metadata in the text form understood by Parse. The
// width and height lines are always written.
func (m *Metadata) String() string {
	b := new(strings.Builder)

	fmt.Fprintln(b, beginTag)
	fmt.Fprintf(b, "version = %s\n", m.Version)
	fmt.Fprintf(b, "\twidth = %d\n", m.Width)
	fmt.Fprintf(b, "\theight = %d\n", m.Height)

	for _, s := range m.States {
		fmt.Fprintf(b, "state = \"%s\"\n", nameEscaper.Replace(s.Name))
		fmt.Fprintf(b, "\tdirs = %d\n", s.Dirs)
		fmt.Fprintf(b, "\tframes = %d\n", s.Frames)
		if len(s.Delay) > 0 {
			fmt.Fprintf(b, "\tdelay = %s\n", strings.Join(s.Delay, ","))
		}
		if s.Loop != "" {
			fmt.Fprintf(b, "\tloop = %s\n", s.Loop)
		}
		if s.Rewind != "" {
			fmt.Fprintf(b, "\trewind = %s\n", s.Rewind)
		}
		if s.Movement != "" {
			fmt.Fprintf(b, "\tmovement = %s\n", s.Movement)
		}
		if len(s.Hotspot) > 0 {
			fmt.Fprintf(b, "\thotspot = %s\n", strings.Join(s.Hotspot, ","))
		}
	}

	fmt.Fprintln(b, endTag)

	return b.String()
}
