package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/justyntemme/rnbossp/pkg/toolchain"
)

// NextSteps returns the instructions printed after a module is created.
func (p *Project) NextSteps(id string) string {
	var b strings.Builder

	export := filepath.Join(filepath.Base(p.ModulesDir), id, ExportDir(id))
	fmt.Fprintf(&b, "Next steps:\n")
	fmt.Fprintf(&b, "1. Export your RNBO code to:\n")
	fmt.Fprintf(&b, "   %s%c\n", export, filepath.Separator)
	fmt.Fprintf(&b, "   and validate it with: rnbossp check\n")
	fmt.Fprintf(&b, "   The module imports that directory as a Go package, so it must also\n")
	fmt.Fprintf(&b, "   hold a .go file whose init calls rnbo.Register(%q, ...).\n", id)
	fmt.Fprintf(&b, "   Until then the build fails. Run `rnbossp add-demo` for an example.\n")
	fmt.Fprintf(&b, "\n2. Build the module:\n")
	for _, name := range toolchain.Names() {
		fmt.Fprintf(&b, "   rnbossp build -target %s %s\n", name, id)
	}
	fmt.Fprintf(&b, "\n3. Preview its editors:\n")
	fmt.Fprintf(&b, "   rnbossp preview %s\n", id)
	return b.String()
}
