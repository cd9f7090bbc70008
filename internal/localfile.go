package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"unicode"
)

// ParseLocalConversation validates an uploaded conversation. The payload must
// be a JSON array of messages; anything else is rejected without touching any
// held state.
func ParseLocalConversation(data []byte) ([]Message, error) {
	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &LocalFileError{Err: errors.New("not a JSON array of messages")}
	}

	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, &LocalFileError{Err: err}
	}

	return messages, nil
}

// LoadLocalConversation reads and validates a conversation from a local file,
// bypassing the task repository entirely.
func LoadLocalConversation(path string) ([]Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LocalFileError{Path: path, Err: err}
	}

	messages, err := ParseLocalConversation(data)
	if err != nil {
		var lf *LocalFileError
		if errors.As(err, &lf) {
			lf.Path = path
		}
		return nil, err
	}

	return messages, nil
}
