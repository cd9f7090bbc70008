package export

import (
	"io"

	"github.com/RooCodeInc/convo-viewer/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports conversations in YAML format
type YAMLExporter struct{}

// Export exports a conversation view to YAML format
func (e *YAMLExporter) Export(view *internal.View, w io.Writer) error {
	doc := BuildDoc(view)
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
