package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/renato0307/remux/internal/domain"
)

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func formatExitCode(code *int) string {
	if code == nil {
		return "-"
	}
	return strconv.Itoa(*code)
}

// parseSize reads COLSxROWS, e.g. 120x40
func parseSize(value string) (*domain.Size, error) {
	if value == "" {
		return nil, nil
	}
	cols, rows, ok := strings.Cut(strings.ToLower(value), "x")
	if !ok {
		return nil, fmt.Errorf("invalid size %q: want COLSxROWS", value)
	}
	c, err := strconv.Atoi(cols)
	if err != nil {
		return nil, fmt.Errorf("invalid size %q: %w", value, err)
	}
	r, err := strconv.Atoi(rows)
	if err != nil {
		return nil, fmt.Errorf("invalid size %q: %w", value, err)
	}
	size := domain.Size{Cols: c, Rows: r}
	if err := size.Validate(); err != nil {
		return nil, err
	}
	return &size, nil
}
