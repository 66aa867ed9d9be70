package contact

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templatesFS embed.FS

// Templates holds the email templates, with layouts under "layouts".
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
