// Package render delivers fetched file content to an embeddable rendering
// widget. The widget is opaque: each optional way of accepting content is a
// separate capability interface, and Deliver probes them in a fixed order
// instead of reflecting on an unknown object.
package render

// Widget is the minimal handle every rendering backend must provide.
// Optional capabilities are discovered with type assertions.
type Widget interface {
	// ClearChildren removes any rendered content from the widget.
	ClearChildren()
}

// ContentSetter is a widget with a native set-content call.
// This is the preferred delivery strategy.
type ContentSetter interface {
	SetContent(text string) error
}

// SourceNode is a widget exposing a child source element whose text can be
// set directly, tagged with the detected format (the file extension).
type SourceNode interface {
	SetSourceText(text, format string) error
}

// URLSource is a widget that loads content from a source URL, either an
// object URL minted by ObjectURLRegistry or a base64 data URL.
type URLSource interface {
	SetSourceURL(url string) error
}

// Relayouter is a widget that can recompute its layout after the surrounding
// container changes size. Absence of this capability is not an error.
type Relayouter interface {
	Relayout()
}
