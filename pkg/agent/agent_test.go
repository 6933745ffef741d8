package agent

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kataras/figma-tokens/pkg/tokens"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, name, input string) Message {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, Serve(name, strings.NewReader(input), &out))

	var msg Message
	require.NoError(t, json.Unmarshal(out.Bytes(), &msg))
	return msg
}

// writeTokens saves set and returns the token file path.
func writeTokens(t *testing.T, set tokens.Set) string {
	t.Helper()
	dir := t.TempDir()
	_, err := tokens.Save(dir, set, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	return filepath.Join(dir, tokens.FileName)
}

func TestEnvelope(t *testing.T) {
	msg := serve(t, Planner, `{"runId":"run-1"}`)
	assert.Equal(t, StatusSuccess, msg.String(KeyStatus))
	assert.Equal(t, Planner, msg.String(KeyAgent))
	assert.Equal(t, "run-1", msg.String(KeyRunID))

	_, err := time.Parse(time.RFC3339, msg.String(KeyTimestamp))
	assert.NoError(t, err)

	msg = serve(t, Planner, `{}`)
	assert.NotContains(t, msg, KeyRunID)
}

func TestServeErrors(t *testing.T) {
	var out bytes.Buffer
	err := Serve(Planner, strings.NewReader("not json"), &out)
	assert.ErrorContains(t, err, "decode request")
	assert.Empty(t, out.String())

	err = Serve("designer", strings.NewReader("{}"), &out)
	assert.ErrorIs(t, err, ErrUnknownAgent)

	err = Serve(Reviewer, strings.NewReader(`{"mode":"AAAA"}`), &out)
	assert.ErrorContains(t, err, "unknown conformance mode")
}

func TestPlanner(t *testing.T) {
	msg := serve(t, Planner, `{"context":"Nightly sync"}`)
	assert.Equal(t, "Nightly sync", msg.String("context"))
	assert.Len(t, msg["tasks"], 5)
	assert.Len(t, msg.Strings("recommendations"), 3)

	msg = serve(t, Planner, `{}`)
	assert.Equal(t, "No context provided", msg.String("context"))
}

func TestTokenizer(t *testing.T) {
	path := writeTokens(t, tokens.Defaults())

	msg := serve(t, Tokenizer, `{"action":"validate","tokensPath":`+quote(path)+`}`)
	assert.Equal(t, StatusSuccess, msg.String(KeyStatus))
	v := msg.Map("validation")
	assert.Equal(t, true, v["fileExists"])
	assert.Equal(t, true, v["hasColors"])
	assert.Equal(t, true, v["hasTypography"])
	assert.Equal(t, true, v["hasSpacing"])
	assert.Equal(t, Message{"colors": 12.0, "typography": 4.0, "spacing": 5.0}, v.Map("tokenCount"))

	msg = serve(t, Tokenizer, `{"action":"validate","tokensPath":`+quote(filepath.Join(t.TempDir(), "none.json"))+`}`)
	assert.Equal(t, StatusWarning, msg.String(KeyStatus))
	assert.Equal(t, false, msg.Map("validation")["fileExists"])

	msg = serve(t, Tokenizer, `{"action":"noop"}`)
	assert.NotContains(t, msg, "validation")
}

func TestCodegenEcho(t *testing.T) {
	msg := serve(t, Codegen, `{"action":"generate","templates":["LoginForm","IntakeCard"]}`)
	assert.Equal(t, []string{"LoginForm", "IntakeCard"}, msg.Strings("generated"))

	msg = serve(t, Codegen, `{}`)
	assert.Equal(t, []any{}, msg["generated"])
}

func TestCodegenRenders(t *testing.T) {
	path := writeTokens(t, tokens.Defaults())
	tmplDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "Components")
	require.NoError(t, os.WriteFile(filepath.Join(tmplDir, "LoginForm.template"), []byte("{{COMPONENT_NAME}} {{COLOR_PRIMARY}}"), 0644))

	in, err := json.Marshal(Message{
		"templates":    []string{"LoginForm", "IntakeCard"},
		"templatesDir": tmplDir,
		"outputDir":    outDir,
		"tokensPath":   path,
	})
	require.NoError(t, err)

	msg := serve(t, Codegen, string(in))
	assert.Equal(t, []string{"LoginForm"}, msg.Strings("generated"))
	assert.Equal(t, []string{"IntakeCard"}, msg.Strings("skippedTemplates"))
	assert.False(t, msg.Skipped())

	data, err := os.ReadFile(filepath.Join(outDir, "LoginForm.razor"))
	require.NoError(t, err)
	assert.Equal(t, "LoginForm #007AFF", string(data))
}

func TestReviewerStub(t *testing.T) {
	msg := serve(t, Reviewer, `{"checks":["a11y","contrast"]}`)
	assert.Equal(t, "AA", msg.String("mode"))
	assert.Equal(t, []string{"a11y", "contrast"}, msg.Strings("checks"))

	results := msg.Map("results")
	assert.Equal(t, true, results.Map("a11y")["passed"])
	assert.Equal(t, true, results.Map("contrast")["passed"])
	assert.Equal(t, true, results.Map("keyboard")["passed"])
}

func TestReviewerChecksTokens(t *testing.T) {
	set := tokens.NewSet()
	set.Put(tokens.CategoryColor, tokens.Color("textPrimary", "#000000"))
	set.Put(tokens.CategoryColor, tokens.Color("textSubtle", "#949494"))
	set.Put(tokens.CategoryColor, tokens.Color("backgroundApp", "#FFFFFF"))
	path := writeTokens(t, set)

	msg := serve(t, Reviewer, `{"mode":"AA","tokensPath":`+quote(path)+`}`)
	results := msg.Map("results")

	// textSubtle passes for large text only, so it is not an a11y failure
	// but misses AA for normal text.
	assert.Equal(t, true, results.Map("a11y")["passed"])
	assert.Equal(t, []any{}, results.Map("a11y")["issues"])
	contrast := results.Map("contrast")
	assert.Equal(t, false, contrast["passed"])
	assert.NotEmpty(t, contrast["ratios"])

	msg = serve(t, Reviewer, `{"mode":"aa","tokensPath":`+quote(filepath.Join(t.TempDir(), "x.json"))+`}`)
	assert.Equal(t, StatusWarning, msg.String(KeyStatus))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "AA", false},
		{"aa", "AA", false},
		{" AAA ", "AAA", false},
		{"A", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestIntegrator(t *testing.T) {
	msg := serve(t, Integrator, `{"action":"prepare-pr","artifacts":{
		"plan":{"status":"success"},
		"tokenizerResult":{"skipped":true,"agent":"tokenizer"},
		"codegenResult":{"generated":["LoginForm"]},
		"reviewerResult":{"results":{"contrast":{"passed":true}}}
	}}`)

	assert.Equal(t, true, msg["prReady"])
	artifacts := msg.Map("artifacts")
	assert.Equal(t, tokens.FileName, artifacts.String("tokens"))
	assert.Equal(t, "design-tokens.xaml", artifacts.String("xaml"))
	assert.Equal(t, []string{"LoginForm"}, artifacts.Strings("components"))
	assert.Equal(t, Message{
		"plan":            "OK",
		"tokenizerResult": "Skipped",
		"codegenResult":   "OK",
		"reviewerResult":  "OK",
	}, msg.Map("summary"))

	msg = serve(t, Integrator, `{"artifacts":{"reviewerResult":{"results":{"contrast":{"passed":false}}}}}`)
	assert.Equal(t, false, msg["prReady"])
	assert.Equal(t, []string{"LoginForm", "IntakeCard", "AppointmentsList"}, msg.Map("artifacts").Strings("components"))
	assert.Equal(t, "Missing", msg.Map("summary").String("plan"))
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
