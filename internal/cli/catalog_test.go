package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCommandText(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"catalog"})
	require.NoError(t, cmd.Execute())
	for _, name := range []string{"addition", "matvecmul", "decomposematrix", "lessthan", "functioncall"} {
		assert.Contains(t, out.String(), name)
	}
}

func TestCatalogCommandYAML(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"catalog", "--format", "yaml"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "opcode:")
}

func TestCatalogCommandUnknownFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"catalog", "--format", "xml"})
	err := cmd.Execute()
	require.Error(t, err)
}
