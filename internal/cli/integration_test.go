package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tmplpatch/internal/cli"
	"github.com/yaklabco/tmplpatch/pkg/fsutil"
)

const (
	testTemplate = "<div>\n  <p>A</p>\n  <p>B</p>\n</div>\n"
	testEdits    = "removals: [1]\nstyles:\n  2: {padding: 4px}\n"
	testPatched  = "<div>\n  \n  <p style=\"padding: 4px\">B</p>\n</div>\n"
)

// execute runs the root command with config files ignored and color off.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--no-config", "--color", "never"))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_Names(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "mail.ftl", "<p>{{name}} ${order.id?has_content} {{name}}</p>")

	out, _, err := execute(t, "", "names", file)
	require.NoError(t, err)
	assert.Equal(t, "name\norder.id\n", out)
}

func TestIntegration_NamesPositionsJSON(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "mail.ftl", "<#if x><p>{{name}}</p></#if>")

	out, _, err := execute(t, "", "names", "--positions", "--format", "json", file)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "directive", entries[0]["kind"])
	assert.Equal(t, "name", entries[1]["name"])
	assert.InDelta(t, 10, entries[1]["start"], 0)
	assert.Equal(t, "directive", entries[2]["kind"])
}

func TestIntegration_NamesFromStdin(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "<b>{{total}}</b>", "names", "-")
	require.NoError(t, err)
	assert.Equal(t, "total\n", out)
}

func TestIntegration_Data(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "mail.html", "<p>{{name}}</p>")

	out, _, err := execute(t, "", "data", "--format", "json", file)
	require.NoError(t, err)

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Equal(t, "Sample Product", data["name"])
}

func TestIntegration_DataRejectsTable(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "mail.html", "<p>{{name}}</p>")

	_, _, err := execute(t, "", "data", "--format", "table", file)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_Resolve(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "mail.ftl", "<div>Hello {{name}}<#if x>!</#if></div>")

	out, _, err := execute(t, "", "resolve", file)
	require.NoError(t, err)
	assert.Equal(t, "<div>Hello Sample Product!</div>", out)
}

func TestIntegration_ResolveWithData(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "mail.ftl", "<div>Hello {{name}}, {{footer}}</div>")
	values := writeFile(t, dir, "values.yaml", "name: Ada\n")

	out, _, err := execute(t, "", "resolve", "--data", values, file)
	require.NoError(t, err)
	assert.Equal(t, "<div>Hello Ada, Thank you.</div>", out)
}

func TestIntegration_IndexJSON(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "mail.html", testTemplate)

	out, _, err := execute(t, "", "index", "--json", file)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "div", records[0]["tag"])
	assert.InDelta(t, 8, records[1]["start"], 0)
	assert.InDelta(t, 16, records[1]["end"], 0)
	assert.InDelta(t, 21, records[2]["open_tag_end"], 0)
}

func TestIntegration_IndexTableMarksEdits(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "mail.html", testTemplate)
	edits := writeFile(t, dir, "edits.yaml", testEdits)

	out, _, err := execute(t, "", "index", "--edits", edits, file)
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "<p>A</p>")
}

func TestIntegration_Locate(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "mail.html", testTemplate)

	out, _, err := execute(t, "", "locate", "--from", "20", "--to", "22", "--format", "json", file)
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.InDelta(t, 2, rec["id"], 0)
	assert.Equal(t, "p", rec["tag"])
	assert.InDelta(t, 2, rec["preview_index"], 0)
}

func TestIntegration_LocateNothing(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "mail.html", testTemplate)

	_, _, err := execute(t, "", "locate", "--from", "500", file)
	require.ErrorIs(t, err, cli.ErrNoElement)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
}

func TestIntegration_Preview(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "mail.html", testTemplate)
	output := filepath.Join(dir, "preview.html")

	_, _, err := execute(t, "", "preview", "-o", output, file)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), `data-node-id="0"`)
	assert.Contains(t, string(content), `data-tag-name="p"`)
}

func TestIntegration_Apply(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "mail.html", testTemplate)
	edits := writeFile(t, dir, "edits.yaml", testEdits)

	out, _, err := execute(t, "", "apply", "--edits", edits, file)
	require.NoError(t, err)
	assert.Equal(t, testPatched, out)

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, testTemplate, string(content), "apply without --write must not touch the file")
}

func TestIntegration_ApplyJSONEdits(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "mail.html", testTemplate)
	edits := writeFile(t, dir, "edits.jsonc", `{
  // drop the first paragraph
  "removals": [1],
  "styles": {"2": {"padding": "4px"}},
}`)

	out, _, err := execute(t, "", "apply", "--edits", edits, file)
	require.NoError(t, err)
	assert.Equal(t, testPatched, out)
}

func TestIntegration_ApplyWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "mail.html", testTemplate)
	edits := writeFile(t, dir, "edits.yaml", testEdits)

	_, _, err := execute(t, "", "apply", "--edits", edits, "--write", file)
	require.NoError(t, err)

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, testPatched, string(content))

	backup, err := os.ReadFile(file + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, testTemplate, string(backup))
}

func TestIntegration_ApplyWriteNoBackups(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "mail.html", testTemplate)
	edits := writeFile(t, dir, "edits.yaml", testEdits)

	_, _, err := execute(t, "", "apply", "--edits", edits, "--write", "--no-backups", file)
	require.NoError(t, err)

	assert.NoFileExists(t, file+fsutil.BackupSuffix)
}

func TestIntegration_ApplyWriteStdin(t *testing.T) {
	t.Parallel()

	edits := writeFile(t, t.TempDir(), "edits.yaml", testEdits)

	_, _, err := execute(t, testTemplate, "apply", "--edits", edits, "--write", "-")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_ApplyDiff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "mail.html", testTemplate)
	edits := writeFile(t, dir, "edits.yaml", testEdits)

	out, _, err := execute(t, "", "apply", "--edits", edits, "--diff", file)
	require.NoError(t, err)
	assert.Contains(t, out, "-  <p>A</p>")
	assert.Contains(t, out, `+  <p style="padding: 4px">B</p>`)
	assert.Contains(t, out, "insertions(+)")
}

func TestIntegration_ApplyExplain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "mail.html", testTemplate)
	edits := writeFile(t, dir, "edits.yaml", "removals: [1, 9]\nstyles:\n  2: {padding: 4px}\n")

	out, _, err := execute(t, "", "apply", "--edits", edits, "--explain", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Removals")
	assert.Contains(t, out, `#2 @21 -> 13 style="padding: 4px"`)
	assert.Contains(t, out, "#9")
}

func TestIntegration_ApplyRequiresEdits(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "mail.html", testTemplate)

	_, _, err := execute(t, "", "apply", file)
	require.Error(t, err)
}

func TestIntegration_BadEditFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "mail.html", testTemplate)
	edits := writeFile(t, dir, "edits.yaml", "removals: [oops\n")

	_, _, err := execute(t, "", "apply", "--edits", edits, file)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "index", filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestIntegration_UnknownFlag(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "index", "--bogus", "x.html")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_WrongArgCount(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "index")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_ExplicitConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "mail.ftl", "<p>${name!}</p>")
	cfg := writeFile(t, dir, "custom.yml", "placeholders:\n  suffix: \"!\"\n")

	out, _, err := execute(t, "", "names", "--config", cfg, file)
	require.NoError(t, err)
	assert.Equal(t, "name\n", out)
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "mail.html", testTemplate)
	cfg := writeFile(t, dir, "custom.yml", "sample:\n  lookup: dice\n")

	_, _, err := execute(t, "", "index", "--config", cfg, file)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), ".tmplpatch.yml")

	_, _, err := execute(t, "", "init", "--full", "-o", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "lookup: table")

	_, _, err = execute(t, "", "init", "-o", output)
	require.ErrorIs(t, err, cli.ErrUsage)

	_, _, err = execute(t, "", "init", "--force", "-o", output)
	require.NoError(t, err)
}

func TestIntegration_ConfigEnv(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "config", "--env")
	require.NoError(t, err)
	assert.Contains(t, out, "TMPLPATCH_LOG_LEVEL")
	assert.Contains(t, out, "TMPLPATCH_SAMPLE_LOOKUP")
}

func TestIntegration_ConfigShowsDefaults(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "marker:")
	assert.Contains(t, out, "log_level: info")
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tmplpatch")
	assert.Contains(t, out, "test")
}
