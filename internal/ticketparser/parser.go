package ticketparser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Another0Noob/stagelog/internal/ticket"
	"github.com/Another0Noob/stagelog/internal/ticketparser/csvparser"
	"github.com/Another0Noob/stagelog/internal/ticketparser/jsonparser"
)

func Parse(path string) ([]ticket.Ticket, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".csv":
		return csvparser.ParseFile(path)
	case ".json":
		return jsonparser.ParseFile(path)
	default:
		return nil, fmt.Errorf("unknown file format: %s (must be .csv or .json)", ext)
	}
}

// ParseFromBytes parses file content directly from memory
func ParseFromBytes(data []byte, filename string) ([]ticket.Ticket, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	reader := bytes.NewReader(data)

	switch ext {
	case ".csv":
		return csvparser.ParseReader(reader)
	case ".json":
		return jsonparser.ParseReader(reader)
	default:
		return nil, fmt.Errorf("unknown file format: %s (must be .csv or .json)", ext)
	}
}
