package scoresheet

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Factory creates the appropriate parser based on file extension
type Factory struct {
	opts Options
}

// NewFactory creates a new parser factory
func NewFactory(opts Options) *Factory {
	return &Factory{opts: opts}
}

// GetParser returns the appropriate parser for the given filename
func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return NewCSVParser(f.opts), nil
	case ".xlsx", ".xls":
		return NewXLSXParser(f.opts), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %q", ext)
	}
}

// Parse picks a parser for filename and parses data with it.
func (f *Factory) Parse(filename string, data []byte) (*Sheet, error) {
	p, err := f.GetParser(filename)
	if err != nil {
		return nil, err
	}
	return p.Parse(data)
}
