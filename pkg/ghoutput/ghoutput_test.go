package ghoutput_test

import (
	"bytes"
	"domainimpact/pkg/domain"
	"domainimpact/pkg/ghoutput"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteOutputs(t *testing.T) {
	var buf bytes.Buffer
	w := ghoutput.NewWriter(&buf)

	require.NoError(t, w.WriteOutputs(domain.Outputs{
		HasChanges: true,
		Domains:    `["core"]`,
		Matrix:     `{"include":[{"domain":"core","release-config":"core.yml"}]}`,
	}))

	require.Equal(t,
		"has-changes=true\n"+
			`domains=["core"]`+"\n"+
			`matrix={"include":[{"domain":"core","release-config":"core.yml"}]}`+"\n",
		buf.String())
}

func TestSetMultiline(t *testing.T) {
	var buf bytes.Buffer
	w := ghoutput.NewWriter(&buf)

	require.NoError(t, w.Set("notes", "line one\nline two"))

	re := regexp.MustCompile(`^notes<<(ghadelimiter_[0-9a-f-]+)\nline one\nline two\n(ghadelimiter_[0-9a-f-]+)\n$`)
	m := re.FindStringSubmatch(buf.String())
	require.NotNil(t, m, buf.String())
	require.Equal(t, m[1], m[2])
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "github_output")
	require.NoError(t, os.WriteFile(path, []byte("previous=1\n"), 0o600))

	w, closeFn, err := ghoutput.Open(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteOutputs(domain.Outputs{Domains: "[]", Matrix: `{"include":[]}`}))
	require.NoError(t, closeFn())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "previous=1\nhas-changes=false\ndomains=[]\nmatrix={\"include\":[]}\n", string(content))
}
