package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/kataras/figma-tokens/pkg/codegen"
)

// Logger receives runner progress. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Runner chains the agents: planner, tokenizer, codegen, reviewer and
// integrator, feeding the first four results to the integrator.
type Runner struct {
	// Command is the base command line of every agent; the agent name is
	// appended. Empty runs the built-in handlers in process.
	Command []string
	// Commands overrides the command line of single agents. An agent whose
	// executable cannot be found is skipped.
	Commands map[string][]string
	Dir      string    // working directory of spawned agents
	Stderr   io.Writer // receives agent stderr in addition to error messages

	TokensPath    string
	TemplatesDir  string
	ComponentsDir string
	Templates     []string // default: the reference components
	Mode          string   // WCAG mode for the reviewer, default "AA"

	Logger Logger

	newRunID func() string
}

// Step is the outcome of one agent invocation.
type Step struct {
	Agent   string  `json:"agent"`
	Skipped bool    `json:"skipped"`
	Output  Message `json:"output"`
}

// Result is the outcome of a full run.
type Result struct {
	RunID string `json:"runId"`
	Steps []Step `json:"steps"`
}

// Output returns the response of the named agent, or nil.
func (r *Result) Output(name string) Message {
	for _, s := range r.Steps {
		if s.Agent == name {
			return s.Output
		}
	}
	return nil
}

// Run executes the five agents in order. Any agent failure aborts the run
// and is returned with the steps completed so far.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	newID := r.newRunID
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	res := &Result{RunID: newID()}
	r.infof("Starting agent run %s", res.RunID)

	templates := r.Templates
	if len(templates) == 0 {
		for _, c := range codegen.DefaultComponents {
			templates = append(templates, c.Template)
		}
	}

	step := func(i int, name string, input Message) (Message, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.infof("Step %d/%d: running %s agent...", i, len(Names), name)
		input[KeyRunID] = res.RunID

		out, err := r.runAgent(ctx, name, input)
		if err != nil {
			return nil, err
		}
		res.Steps = append(res.Steps, Step{Agent: name, Skipped: out.Skipped(), Output: out})
		if out.String(KeyStatus) == StatusWarning {
			r.warnf("%s agent finished with warnings", name)
		}
		return out, nil
	}

	plan, err := step(1, Planner, Message{
		"task":      "ui-sync",
		"context":   "Full UI sync pipeline",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return res, err
	}

	tokenizerResult, err := step(2, Tokenizer, Message{
		"action":     "validate",
		"tokensPath": r.TokensPath,
	})
	if err != nil {
		return res, err
	}

	codegenInput := Message{"action": "generate", "templates": templates}
	if r.TemplatesDir != "" && r.ComponentsDir != "" {
		codegenInput["templatesDir"] = r.TemplatesDir
		codegenInput["outputDir"] = r.ComponentsDir
		codegenInput["tokensPath"] = r.TokensPath
	}
	codegenResult, err := step(3, Codegen, codegenInput)
	if err != nil {
		return res, err
	}

	mode := r.Mode
	if mode == "" {
		mode = "AA"
	}
	reviewerResult, err := step(4, Reviewer, Message{
		"checks":     []string{"a11y", "contrast", "keyboard"},
		"mode":       mode,
		"tokensPath": r.TokensPath,
	})
	if err != nil {
		return res, err
	}

	if _, err := step(5, Integrator, Message{
		"action": "prepare-pr",
		"artifacts": Message{
			"plan":            plan,
			"tokenizerResult": tokenizerResult,
			"codegenResult":   codegenResult,
			"reviewerResult":  reviewerResult,
		},
	}); err != nil {
		return res, err
	}

	return res, nil
}

func (r *Runner) runAgent(ctx context.Context, name string, input Message) (Message, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s input: %w", name, err)
	}

	args, ok := r.Commands[name]
	if !ok {
		if len(r.Command) == 0 {
			return r.serveLocal(name, data)
		}
		args = append(slices.Clone(r.Command), name)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("agent %s: empty command", name)
	}

	if _, err := exec.LookPath(args[0]); err != nil {
		r.infof("Agent %s not found (%s), skipping...", name, args[0])
		return Message{KeySkipped: true, KeyAgent: name}, nil
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if r.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, r.Stderr)
	}

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("agent %s failed: %w (stderr: %s)", name, err, bytes.TrimSpace(stderr.Bytes()))
	}

	return decodeResponse(name, stdout.Bytes())
}

func (r *Runner) serveLocal(name string, data []byte) (Message, error) {
	var stdout bytes.Buffer
	if err := Serve(name, bytes.NewReader(data), &stdout); err != nil {
		return nil, fmt.Errorf("agent %s failed: %w", name, err)
	}
	return decodeResponse(name, stdout.Bytes())
}

func decodeResponse(name string, data []byte) (Message, error) {
	var out Message
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("agent %s produced invalid JSON: %w", name, err)
	}
	if out == nil {
		return nil, fmt.Errorf("agent %s produced an empty response", name)
	}
	return out, nil
}

func (r *Runner) infof(f string, a ...any) {
	if r.Logger != nil {
		r.Logger.Infof(f, a...)
	}
}

func (r *Runner) warnf(f string, a ...any) {
	if r.Logger != nil {
		r.Logger.Warnf(f, a...)
	}
}
