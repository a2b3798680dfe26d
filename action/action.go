// Package action implements the request/response shell: a single JSON
// document in, naming an action and its arguments, a single JSON document
// out. It is glue — every type it touches is borrowed from the crypto
// packages, never reimplemented here — but it is the one layer every core
// capability is reachable through.
package action

import (
	"encoding/json"
	"fmt"
	"io"
)

// Request is the envelope decoded from the input file or stdin.
type Request struct {
	Action    string          `json:"action"`
	Arguments json.RawMessage `json:"arguments"`
}

// Handler executes one named action against its raw arguments and returns a
// value that marshals to the action's JSON response.
type Handler func(arguments json.RawMessage) (any, error)

var registry = map[string]Handler{}

// Register adds a handler under name. Called from package init functions in
// this package's other files, one per core capability; a duplicate name is
// a programmer error and panics immediately.
func Register(name string, h Handler) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("action: handler %q already registered", name))
	}
	registry[name] = h
}

// Dispatch decodes a single Request from input, looks up its action in the
// registry, invokes the handler, and writes the marshaled result to output.
// It never writes partial output: a decode failure or handler error is
// returned to the caller without touching output at all.
func Dispatch(input io.Reader, output io.Writer) error {
	var req Request
	if err := json.NewDecoder(input).Decode(&req); err != nil {
		return fmt.Errorf("action: decoding request: %w", err)
	}

	handler, ok := registry[req.Action]
	if !ok {
		return fmt.Errorf("action: unknown action %q", req.Action)
	}

	result, err := handler(req.Arguments)
	if err != nil {
		return fmt.Errorf("action %q: %w", req.Action, err)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("action %q: encoding response: %w", req.Action, err)
	}
	if _, err := output.Write(encoded); err != nil {
		return fmt.Errorf("action %q: writing response: %w", req.Action, err)
	}
	return nil
}

// decodeArgs unmarshals raw into v, wrapping any error with the action name
// for diagnostics.
func decodeArgs(action string, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("action %q: decoding arguments: %w", action, err)
	}
	return nil
}
