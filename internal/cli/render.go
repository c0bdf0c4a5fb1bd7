package cli

import (
	"fmt"
	"io"

	"github.com/roach88/irattrs/internal/attr"
)

// renderInfo writes one attribute as a listing block:
//
//	Identifier (name)
//	  Description.
//	  value: Shape
//
// The value line appears only for attributes that take a value.
func renderInfo(w io.Writer, info attr.Info) {
	fmt.Fprintf(w, "%s (%s)\n", info.Identifier, info.Name)
	fmt.Fprintf(w, "  %s\n", info.Description)
	if shape, ok := info.Shape(); ok {
		fmt.Fprintf(w, "  value: %s\n", shape)
	}
}

// renderInfos writes blocks separated by a blank line.
func renderInfos(w io.Writer, infos []attr.Info) {
	for i, info := range infos {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderInfo(w, info)
	}
}
