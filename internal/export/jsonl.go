package export

import (
	"encoding/json"
	"io"

	"github.com/RooCodeInc/convo-viewer/internal"
)

// JSONLExporter exports conversations with one message per line
type JSONLExporter struct{}

// Export exports a conversation view to JSONL format
func (e *JSONLExporter) Export(view *internal.View, w io.Writer) error {
	doc := BuildDoc(view)
	enc := json.NewEncoder(w)
	for _, msg := range doc.Messages {
		if err := enc.Encode(msg); err != nil {
			return err
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
