package a11y

import (
	"fmt"
	"testing"

	"github.com/kataras/figma-tokens/pkg/color"
	"github.com/kataras/figma-tokens/pkg/tokens"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colors(pairs ...string) tokens.Set {
	s := tokens.NewSet()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Put(tokens.CategoryColor, tokens.Color(pairs[i], pairs[i+1]))
	}
	return s
}

func TestBlackOnWhite(t *testing.T) {
	report := Check(colors("textPrimary", "#000000", "backgroundPrimary", "#FFFFFF"))

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Equal(t, "textPrimary", res.ForegroundKey)
	assert.Equal(t, "backgroundPrimary", res.BackgroundKey)
	assert.Equal(t, "21.00", fmt.Sprintf("%.2f", res.Ratio))
	assert.Equal(t, color.AAA, res.NormalCompliance)
	assert.Equal(t, color.AAA, res.LargeTextCompliance)
	assert.Empty(t, report.Failures)
	assert.True(t, report.Passed())
	assert.True(t, report.MeetsMode(color.AAA))
}

func TestNearIdenticalGraysFail(t *testing.T) {
	report := Check(colors("textMuted", "#777777", "bgCard", "#888888"))

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Equal(t, color.Fail, res.NormalCompliance)
	assert.Equal(t, color.Fail, res.LargeTextCompliance)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, res, report.Failures[0])
	assert.False(t, report.Passed())
	assert.False(t, report.MeetsMode(color.AA))
}

func TestLargeTextOnlyPassIsNotAFailure(t *testing.T) {
	// #949494 on white is about 3.03:1.
	report := Check(colors("textSubtle", "#949494", "background", "#FFFFFF"))

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Equal(t, color.Fail, res.NormalCompliance)
	assert.Equal(t, color.AA, res.LargeTextCompliance)
	assert.Empty(t, report.Failures)
	assert.False(t, report.MeetsMode(color.AA))
}

func TestCrossProductOrder(t *testing.T) {
	report := Check(colors(
		"textB", "#000000",
		"textA", "#111111",
		"surfaceBg", "#FFFFFF",
		"background", "#EEEEEE",
		"primary", "#007AFF",
	))

	require.Len(t, report.Results, 4)
	var got []string
	for _, r := range report.Results {
		got = append(got, r.ForegroundKey+" on "+r.BackgroundKey)
	}
	assert.Equal(t, []string{
		"textA on background",
		"textA on surfaceBg",
		"textB on background",
		"textB on surfaceBg",
	}, got)
}

func TestNoCandidates(t *testing.T) {
	// The defaults have background colors but no text colors.
	report := Check(tokens.Defaults())
	assert.Empty(t, report.Results)
	assert.Empty(t, report.Failures)
	assert.True(t, report.Passed())

	report = Check(tokens.NewSet())
	assert.Empty(t, report.Results)
}

func TestUnparseableValuesAreSkipped(t *testing.T) {
	report := Check(colors("text", "var(--x)", "bg", "#FFFFFF"))
	assert.Empty(t, report.Results)
	assert.Equal(t, []string{"text/bg"}, report.Skipped)
}

func TestCandidateMatching(t *testing.T) {
	assert.True(t, IsForeground("TextPrimary"))
	assert.True(t, IsForeground("onSurfaceForeground"))
	assert.False(t, IsForeground("onPrimary"))
	assert.True(t, IsBackground("BG"))
	assert.True(t, IsBackground("onBackground"))
	assert.False(t, IsBackground("surface"))
}
