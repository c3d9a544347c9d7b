/*
Package icontool is a library for converting BYOND DreamMaker icon (.dmi)
files to and from a text document that is friendly to version control and
merge tools.
*/
package icontool

import (
	"path/filepath"
	"strings"

	"github.com/bodgit/icontool/dmi"
	"github.com/bodgit/icontool/sheet"
)

const (
	iconExt     = ".dmi"
	documentExt = ".yml"
)

type IconTool struct {
	parser dmi.Parser
	policy sheet.Policy
}

func New(parser dmi.Parser, policy sheet.Policy) *IconTool {
	return &IconTool{
		parser: parser,
		policy: policy,
	}
}

// CompiledPath returns the default output path when compiling file, it has
// its last extension replaced with .dmi so "x.dmi.yml" becomes "x.dmi"
func CompiledPath(file string) string {
	stem := strings.TrimSuffix(file, filepath.Ext(file))
	return strings.TrimSuffix(stem, filepath.Ext(stem)) + iconExt
}

// DecompiledPath returns the default output path when decompiling file, it
// has its extension replaced with .dmi.yml so "x.dmi" becomes "x.dmi.yml"
func DecompiledPath(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + iconExt + documentExt
}
