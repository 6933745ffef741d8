// Package agent implements the pipeline agents and the runner that chains
// them. Every agent reads one JSON object from stdin and writes one JSON
// object to stdout, so any agent can be swapped for an external program
// honoring the same contract.
package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"
)

// Status values of an agent response.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
)

// Envelope keys every response carries.
const (
	KeyStatus    = "status"
	KeyAgent     = "agent"
	KeyTimestamp = "timestamp"
	KeyRunID     = "runId"
	KeySkipped   = "skipped"
)

// ErrUnknownAgent is returned for an agent name without a handler.
var ErrUnknownAgent = errors.New("unknown agent")

// Message is a decoded agent request or response.
type Message map[string]any

// String returns the string stored under key, or "".
func (m Message) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// Strings returns the string list stored under key. Non-string items are
// dropped.
func (m Message) Strings(key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Map returns the object stored under key, or nil.
func (m Message) Map(key string) Message {
	switch v := m[key].(type) {
	case Message:
		return v
	case map[string]any:
		return v
	}
	return nil
}

// Skipped reports whether the runner skipped the agent that produced m.
func (m Message) Skipped() bool {
	b, _ := m[KeySkipped].(bool)
	return b
}

// Handler computes an agent's payload from its request. The envelope fields
// are filled in by Serve.
type Handler func(in Message) (Message, error)

// Agent names in pipeline order.
const (
	Planner    = "planner"
	Tokenizer  = "tokenizer"
	Codegen    = "codegen"
	Reviewer   = "reviewer"
	Integrator = "integrator"
)

// Names lists the built-in agents in pipeline order.
var Names = []string{Planner, Tokenizer, Codegen, Reviewer, Integrator}

var handlers = map[string]Handler{
	Planner:    plan,
	Tokenizer:  tokenize,
	Codegen:    generate,
	Reviewer:   review,
	Integrator: integrate,
}

// Lookup returns the built-in handler for name.
func Lookup(name string) (Handler, bool) {
	h, ok := handlers[name]
	return h, ok
}

// Serve runs the named agent once: it decodes a request from r, invokes the
// handler and writes the indented response to w.
func Serve(name string, r io.Reader, w io.Writer) error {
	h, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w %q (known: %v)", ErrUnknownAgent, name, known())
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	var in Message
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	if in == nil {
		in = Message{}
	}

	out, err := h(in)
	if err != nil {
		return err
	}

	resp := envelope(name, in, out, time.Now())
	b, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func envelope(name string, in, out Message, now time.Time) Message {
	resp := make(Message, len(out)+4)
	for k, v := range out {
		resp[k] = v
	}
	if _, ok := resp[KeyStatus]; !ok {
		resp[KeyStatus] = StatusSuccess
	}
	resp[KeyAgent] = name
	resp[KeyTimestamp] = now.UTC().Format(time.RFC3339)
	if id := in.String(KeyRunID); id != "" {
		resp[KeyRunID] = id
	}
	return resp
}

func known() []string {
	names := make([]string, 0, len(handlers))
	for n := range handlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
