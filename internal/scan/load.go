package scan

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"dirtybench/internal/strategy"
)

// LoadError reports an artifact that could not be read or is not valid JSON.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ShapeError reports a well-formed JSON document that does not have the
// expected structure.
type ShapeError struct {
	Source string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s does not match the expected format: %s", e.Source, e.Reason)
}

// LoadReport reads one strategy artifact from disk.
func LoadReport(path string) (*StrategyReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	return DecodeReport(f, path)
}

// DecodeReport parses a strategy artifact. source names the input in errors.
func DecodeReport(r io.Reader, source string) (*StrategyReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Path: source, Err: err}
	}

	var raw struct {
		Strategy *string         `json:"strategy"`
		Results  json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ShapeError{Source: source, Reason: "expected an object with \"strategy\" and \"results\""}
		}
		return nil, &LoadError{Path: source, Err: err}
	}
	if raw.Strategy == nil {
		return nil, &ShapeError{Source: source, Reason: "missing \"strategy\""}
	}
	if len(raw.Results) == 0 || string(raw.Results) == "null" {
		return nil, &ShapeError{Source: source, Reason: "missing \"results\""}
	}

	s, err := strategy.Parse(*raw.Strategy)
	if err != nil {
		return nil, &ShapeError{Source: source, Reason: err.Error()}
	}

	var results []RunResult
	if err := json.Unmarshal(raw.Results, &results); err != nil {
		return nil, &ShapeError{Source: source, Reason: fmt.Sprintf("invalid \"results\": %v", err)}
	}

	return &StrategyReport{Strategy: s, Results: results}, nil
}
