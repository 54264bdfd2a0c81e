package handlers_test

import (
	"bytes"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSourcesAreGofmtFormatted keeps import ordering and alignment canonical across the module.
func TestSourcesAreGofmtFormatted(t *testing.T) {
	for _, root := range []string{"..", "../../cmd", "../../pkg"} {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
				return err
			}
			src, err := os.ReadFile(path)
			require.NoError(t, err)
			formatted, err := format.Source(src)
			require.NoError(t, err, path)
			assert.True(t, bytes.Equal(src, formatted), "%s is not gofmt-formatted", path)
			return nil
		})
		require.NoError(t, err)
	}
}
