package scaffold

import (
	"embed"
	"io/fs"
)

//go:embed all:template
var embedded embed.FS

// TemplateSuffix is stripped from template file names on copy.
const TemplateSuffix = ".tmpl"

// ModuleTemplate returns the embedded module template.
func ModuleTemplate() fs.FS {
	sub, err := fs.Sub(embedded, "template/module")
	if err != nil {
		panic(err)
	}
	return sub
}

func demoTemplate() fs.FS {
	sub, err := fs.Sub(embedded, "template/demo")
	if err != nil {
		panic(err)
	}
	return sub
}
