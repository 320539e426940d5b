package main

import (
	"fmt"
	"io"
	"os"

	"github.com/inamate/sketchboard/internal/engine"
	"github.com/inamate/sketchboard/internal/history"
)

// readInput reads name, or stdin for "-".
func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read drawing: %w", err)
	}
	return data, nil
}

func loadDrawing(name string, stdin io.Reader) (history.Snapshot, error) {
	data, err := readInput(name, stdin)
	if err != nil {
		return history.Snapshot{}, err
	}
	return engine.DecodeSnapshot(data)
}
