package export

import (
	"encoding/json"
	"io"

	"github.com/RooCodeInc/convo-viewer/internal"
)

// JSONExporter exports conversations as a single indented JSON document
type JSONExporter struct{}

// Export exports a conversation view to JSON format
func (e *JSONExporter) Export(view *internal.View, w io.Writer) error {
	doc := BuildDoc(view)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
