package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTimelineCmd_ByCategory(t *testing.T) {
	out, err := run(t, "timeline", "--date", "2026-04-01", "--today", "2026-04-11", "--done", "marriage-registration")
	require.NoError(t, err)

	assert.Contains(t, out, "結婚日 2026-04-01")
	assert.Contains(t, out, "完了 1/18")
	assert.Contains(t, out, "名義変更")
	assert.Contains(t, out, "mynumber-card")
	assert.Contains(t, out, "期限 2026-04-15")
	assert.NotContains(t, out, "引越し", "moving tasks are off by default")
}

func TestTimelineCmd_Options(t *testing.T) {
	out, err := run(t, "timeline", "--date", "2026-04-01", "--today", "2026-04-01",
		"--moving", "--name-changed=false", "--group", "none")
	require.NoError(t, err)

	assert.NotContains(t, out, "drivers-license")
	assert.NotContains(t, out, "mynumber-card")
	assert.Contains(t, out, "move-in-notice")
}

func TestTimelineCmd_GroupUrgency(t *testing.T) {
	out, err := run(t, "timeline", "--date", "2026-01-01", "--today", "2026-04-01", "--group", "urgency")
	require.NoError(t, err)
	assert.Contains(t, out, "期限超過")
}

func TestTimelineCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing date", []string{"timeline"}, "required flag"},
		{"bad date", []string{"timeline", "--date", "2026/04/01"}, "--date"},
		{"bad today", []string{"timeline", "--date", "2026-04-01", "--today", "x"}, "--today"},
		{"unknown done", []string{"timeline", "--date", "2026-04-01", "--done", "nope"}, "unknown task id"},
		{"bad group", []string{"timeline", "--date", "2026-04-01", "--group", "weekday"}, "--group"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSimulateCmd(t *testing.T) {
	out, err := run(t, "simulate", "--age-a", "28", "--age-b", "29", "--income", "under-300", "--share")
	require.NoError(t, err)

	assert.Contains(t, out, "60万円")
	assert.Contains(t, out, "お金がもらえる制度")
	assert.Contains(t, out, "使える制度・サービス")

	var token string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "share: ") {
			token = strings.TrimPrefix(line, "share: ")
		}
	}
	assert.True(t, strings.HasPrefix(token, "FN-"), "share token %q", token)
}

func TestSimulateCmd_OverAge(t *testing.T) {
	out, err := run(t, "simulate", "--age-a", "45", "--age-b", "45", "--income", "300-500")
	require.NoError(t, err)
	assert.Contains(t, out, "0円")
	assert.NotContains(t, out, "お金がもらえる制度")
}

func TestSimulateCmd_Invalid(t *testing.T) {
	_, err := run(t, "simulate", "--age-a", "17", "--age-b", "30", "--income", "under-300")
	require.Error(t, err)

	_, err = run(t, "simulate", "--age-a", "30", "--age-b", "30", "--income", "rich")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "under-300")

	_, err = run(t, "simulate", "--age-a", "30", "--age-b", "30", "--income", "300-500", "--date", "soon")
	require.Error(t, err)
}

func TestProgramsCmd(t *testing.T) {
	out, err := run(t, "programs")
	require.NoError(t, err)
	assert.Contains(t, out, "marriage-subsidy")
	assert.Contains(t, out, "最大 60万円")

	out, err = run(t, "programs", "--category", "tax")
	require.NoError(t, err)
	assert.NotContains(t, out, "marriage-subsidy")

	_, err = run(t, "programs", "--category", "lottery")
	require.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	SetVersionInfo("1.2.3", "abc")
	defer SetVersionInfo("dev", "none")

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "navi 1.2.3")
}
