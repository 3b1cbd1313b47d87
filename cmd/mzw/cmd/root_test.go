package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with fresh flag values
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MZW_CONFIG", "")

	cfgFile, verbose = "", false
	heapDesc = false
	treeOrder, treeDepth, treeNth, treeFrom, treeTo = "in", 0, 0, "", ""
	arrayStart, arrayEnd, arraySort = 0, -1, ""
	gridPath, gridUpTo = false, 10
	towerCheck = false
	fmtStyle, fmtRoman = "", false
	calcRemote = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestHeapCommand(t *testing.T) {
	out, err := runCommand(t, "", "heap", "5", "1", "9", "3")
	require.NoError(t, err)
	assert.Equal(t, "1 3 5 9\n", out)

	out, err = runCommand(t, "", "heap", "--desc", "--", "0x10", "1_000", "-7")
	require.NoError(t, err)
	assert.Equal(t, "1000 16 -7\n", out)

	_, err = runCommand(t, "", "heap", "five")
	assert.Error(t, err)
}

func TestFmtCommand(t *testing.T) {
	out, err := runCommand(t, "", "fmt", "--style", "roman", "1994")
	require.NoError(t, err)
	assert.Equal(t, "MCMXCIV\n", out)

	out, err = runCommand(t, "", "fmt", "1234567")
	require.NoError(t, err)
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "12d687")

	out, err = runCommand(t, "", "fmt", "--roman", "--style", "grouped", "MMXXVI")
	require.NoError(t, err)
	assert.Equal(t, "2,026\n", out)

	_, err = runCommand(t, "", "fmt", "--style", "klingon", "1")
	assert.Error(t, err)
	_, err = runCommand(t, "", "fmt", "--roman", "IIII")
	assert.Error(t, err)
}

func TestGridAckCommand(t *testing.T) {
	out, err := runCommand(t, "", "grid", "ack", "3", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "A(3,3)")
	assert.Contains(t, out, "61")

	_, err = runCommand(t, "", "grid", "ack", "x", "3")
	assert.Error(t, err)
}

func TestTowerCommand(t *testing.T) {
	out, err := runCommand(t, "", "tower", "2", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "65536")

	out, err = runCommand(t, "", "tower", "--check", "3", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "exceeds the ceiling")
}

func TestCalcCommand(t *testing.T) {
	out, err := runCommand(t, "", "calc", "add", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = runCommand(t, "", "calc", "grid", "ack", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "A(2, 3) = 9\n", out)

	_, err = runCommand(t, "", "calc", "frobnicate")
	assert.Error(t, err)
}

func TestCalcCommandScript(t *testing.T) {
	script := "# build a tree\ntree insert 5 3 8\n\ntree nth 1\n"
	out, err := runCommand(t, script, "calc")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "3", lines[1])

	_, err = runCommand(t, "tree insert 1\ntree nth 9\n", "calc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "meinZAHLWERK")
	assert.Contains(t, out, "Go Version")
}
