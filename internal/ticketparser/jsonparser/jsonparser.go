package jsonparser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Another0Noob/stagelog/internal/ticket"
)

func ParseFile(path string) ([]ticket.Ticket, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader accepts either a bare array of tickets or the backend's
// {"data": [...]} envelope.
func ParseReader(reader io.Reader) ([]ticket.Ticket, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var tickets []ticket.Ticket
	if data[0] == '[' {
		if err := json.Unmarshal(data, &tickets); err != nil {
			return nil, fmt.Errorf("decode tickets: %w", err)
		}
		return tickets, nil
	}

	var wrapper struct {
		Data []ticket.Ticket `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	return wrapper.Data, nil
}
