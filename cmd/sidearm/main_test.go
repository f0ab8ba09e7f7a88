// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/sidearm-dev/sidearm/pkg/sidearmtype/dirnames"
	"github.com/sidearm-dev/sidearm/pkg/toolchain"
)

const testManifest = `[
  {"name": "sqlmap", "type": "git", "repo": "https://github.com/sqlmapproject/sqlmap.git", "exec": "sqlmap.py"},
  {"name": "ffuf", "type": "go", "repo": "github.com/ffuf/ffuf/v2"}
]
`

// setup creates an initialized sidearm under a temporary directory and
// replaces the toolchain with a mock.
func setup(t *testing.T, manifest string) (toolsDir, binDir string, mock *toolchain.Mock) {
	t.Helper()
	tmp := t.TempDir()
	home := filepath.Join(tmp, "home")
	toolsDir = filepath.Join(tmp, "tools")
	binDir = filepath.Join(tmp, "bin")
	t.Setenv(dirnames.HomeEnv, home)

	assert.NilError(t, os.MkdirAll(home, 0o755))
	assert.NilError(t, os.MkdirAll(toolsDir, 0o755))
	cfg := `{"tools_dir": "` + toolsDir + `", "bin_dir": "` + binDir + `"}`
	assert.NilError(t, os.WriteFile(filepath.Join(home, "config.json"), []byte(cfg), 0o644))
	assert.NilError(t, os.WriteFile(filepath.Join(toolsDir, "tools.json"), []byte(manifest), 0o644))

	mock = &toolchain.Mock{
		Files: map[string][]string{
			"https://github.com/sqlmapproject/sqlmap.git": {"sqlmap.py"},
		},
	}
	orig := newToolchain
	newToolchain = func() (toolchain.Git, toolchain.GoToolchain) { return mock, mock }
	t.Cleanup(func() { newToolchain = orig })
	return toolsDir, binDir, mock
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWithInput(t, "", args...)
}

func runWithInput(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var stdout bytes.Buffer
	app.SetOut(&stdout)
	app.SetErr(&bytes.Buffer{})
	app.SetIn(strings.NewReader(stdin))
	app.SetArgs(append([]string{"--tty=false"}, args...))
	err := app.Execute()
	return stdout.String(), err
}

func TestGetNotFound(t *testing.T) {
	_, _, mock := setup(t, testManifest)
	_, err := run(t, "get", "nonexistent")
	assert.NilError(t, err)
	assert.Check(t, is.Len(mock.Operations, 0))
}

func TestGetGit(t *testing.T) {
	toolsDir, binDir, mock := setup(t, testManifest)
	_, err := run(t, "get", "sqlmap")
	assert.NilError(t, err)
	assert.DeepEqual(t, mock.Ops(), []string{"clone"})

	target, err := os.Readlink(filepath.Join(binDir, "sqlmap"))
	assert.NilError(t, err)
	assert.Equal(t, target, filepath.Join(toolsDir, "sqlmap", "sqlmap.py"))
}

func TestGetExternalFailureExitsZero(t *testing.T) {
	_, _, mock := setup(t, testManifest)
	mock.InstallErr = os.ErrPermission
	_, err := run(t, "get", "ffuf")
	assert.NilError(t, err)
	assert.DeepEqual(t, mock.Ops(), []string{"go-install"})
	assert.Equal(t, mock.Operations[0].URL, "github.com/ffuf/ffuf/v2@latest")
}

func TestSync(t *testing.T) {
	_, _, mock := setup(t, testManifest)
	_, err := run(t, "sync")
	assert.NilError(t, err)
	assert.DeepEqual(t, mock.Ops(), []string{"clone", "go-install"})
}

func TestGetWithoutInit(t *testing.T) {
	t.Setenv(dirnames.HomeEnv, filepath.Join(t.TempDir(), "missing"))
	_, err := run(t, "get", "sqlmap")
	assert.ErrorContains(t, err, "init")
}

func TestList(t *testing.T) {
	setup(t, testManifest)

	out, err := run(t, "list", "--quiet")
	assert.NilError(t, err)
	assert.Equal(t, out, "sqlmap\nffuf\n")

	out, err = run(t, "ls", "--format", "{{.Name}}:{{.Type}}")
	assert.NilError(t, err)
	assert.Equal(t, out, "sqlmap:git\nffuf:go\n")

	out, err = run(t, "list", "--format", "json")
	assert.NilError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Assert(t, is.Len(lines, 2))
	assert.Equal(t, lines[1], `{"name":"ffuf","type":"go","repo":"github.com/ffuf/ffuf/v2"}`)

	out, err = run(t, "list")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "NAME"))
	assert.Check(t, is.Contains(out, "Not installed"))
	assert.Check(t, is.Contains(out, "Managed by go"))

	_, err = run(t, "list", "--format", "{{.Nope")
	assert.ErrorContains(t, err, "invalid go template")

	_, err = run(t, "list", "-q", "--format", "json")
	assert.ErrorContains(t, err, "conflicts")
}

func TestValidate(t *testing.T) {
	setup(t, testManifest)
	_, err := run(t, "validate")
	assert.NilError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	assert.NilError(t, os.WriteFile(bad, []byte(`[{"name": "x", "type": "svn", "repo": "r"}]`), 0o644))
	_, err = run(t, "validate", bad)
	assert.ErrorContains(t, err, "1 invalid")
}

func TestEdit(t *testing.T) {
	toolsDir, _, _ := setup(t, testManifest)
	manifest := filepath.Join(toolsDir, "tools.json")

	edited := `[{"name": "ffuf", "type": "go", "repo": "github.com/ffuf/ffuf/v2", "note": "kept"}]` + "\n"
	_, err := runWithInput(t, edited, "edit")
	assert.NilError(t, err)
	b, err := os.ReadFile(manifest)
	assert.NilError(t, err)
	assert.Equal(t, string(b), edited)

	_, err = runWithInput(t, `[{"name": "x", "type": "git", "repo": "r"}]`, "edit")
	assert.ErrorContains(t, err, "'exec'")
	b, err = os.ReadFile(manifest)
	assert.NilError(t, err)
	assert.Equal(t, string(b), edited)
	_, err = os.Stat(filepath.Join(toolsDir, "tools.REJECTED.json"))
	assert.NilError(t, err)

	_, err = runWithInput(t, "", "edit")
	assert.NilError(t, err)
	b, err = os.ReadFile(manifest)
	assert.NilError(t, err)
	assert.Equal(t, string(b), edited)
}

func TestGenSchema(t *testing.T) {
	schema := manifestSchema()
	assert.Equal(t, schema.Type, "array")
	assert.Equal(t, schema.Items.Ref, "#/$defs/Tool")
	props := schema.Definitions["Tool"].Properties
	assert.DeepEqual(t, getProp(props, "type").Enum, []any{"git", "go"})

	dir := t.TempDir()
	manifest := filepath.Join(dir, "tools.json")
	assert.NilError(t, os.WriteFile(manifest, []byte(testManifest), 0o644))
	_, err := run(t, "generate-jsonschema", "--schemafile", filepath.Join(dir, "schema.json"), manifest)
	assert.NilError(t, err)
}

func TestTTYAndYesConflict(t *testing.T) {
	setup(t, testManifest)
	app := newApp()
	app.SetOut(&bytes.Buffer{})
	app.SetArgs([]string{"--tty", "--yes", "list"})
	assert.ErrorContains(t, app.Execute(), "--tty and --yes")
}
