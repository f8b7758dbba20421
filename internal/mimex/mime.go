// Package mimex maps KiCAD file extensions to their vendor MIME types.
package mimex

import "strings"

// DefaultType is returned for any extension not in the KiCAD table.
const DefaultType = "text/plain"

var kicadTypes = map[string]string{
	"kicad_sch": "application/x-kicad-schematic",
	"kicad_pcb": "application/x-kicad-pcb",
	"kicad_pro": "application/x-kicad-project",
	"kicad_wks": "application/x-kicad-worksheet",
	"kicad_mod": "application/x-kicad-footprint",
	"kicad_sym": "application/x-kicad-symbol",
}

// ForExtension returns the vendor MIME type for a KiCAD file extension.
// The extension may carry a leading dot and any letter case. Unrecognized
// extensions map to DefaultType; there are no error cases.
func ForExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if t, ok := kicadTypes[ext]; ok {
		return t
	}
	return DefaultType
}

// ForFilename returns the vendor MIME type for a file name, derived from the
// text after the last dot. Names without a dot map to DefaultType.
func ForFilename(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return DefaultType
	}
	return ForExtension(name[i+1:])
}

// ExtensionOf returns the lowercased extension of a file name without the
// dot, or "" when the name has none.
func ExtensionOf(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// Extensions returns the set of supported KiCAD extensions, for handler
// registration. The slice is a copy; callers may modify it.
func Extensions() []string {
	out := make([]string, 0, len(kicadTypes))
	for ext := range kicadTypes {
		out = append(out, ext)
	}
	return out
}
