package render

import (
	"bytes"
	"io/fs"
	"testing"

	"detention/internal/errors"
	"detention/internal/pages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullVars() pages.Vars {
	return pages.Vars{
		"localVersion": "1.2.3",
		"absoluteUrl":  "runnable.io",
		"shortHash":    "axcde",
		"branchName":   "master",
		"ownerName":    "casey",
		"instanceName": "api",
		"ports":        []string{"80", "3000"},
		"status":       "buildFailed",
		"headerText":   "build failed",
		"redirectUrl":  "http://api-staging-casey.runnable.io/",
		"containerUrl": "",
	}
}

func TestRenderer_EveryPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range pages.Names {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, name, fullVars(), nil))

			body := buf.String()
			assert.Contains(t, body, "<!DOCTYPE html>")
			assert.Contains(t, body, "/stylesheets/error.css?v=1.2.3")
			assert.Contains(t, body, "runnable.io")
		})
	}
}

func TestRenderer_InstanceFields(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, pages.BuildFailed, fullVars(), nil))

	body := buf.String()
	assert.Contains(t, body, "api build failed")
	assert.Contains(t, body, "master")
	assert.Contains(t, body, "casey")
	assert.Contains(t, body, "<code>3000</code>")
	assert.Contains(t, body, `href="http://api-staging-casey.runnable.io/"`)
}

func TestRenderer_InvalidPageIgnoresInstanceFields(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, pages.Invalid, fullVars(), nil))

	body := buf.String()
	assert.NotContains(t, body, "casey")
	assert.NotContains(t, body, "master")
}

func TestRenderer_EscapesValues(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	vars := fullVars()
	vars["instanceName"] = "<script>alert(1)</script>"

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, pages.Stopped, vars, nil))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "nope", fullVars(), nil)
	assert.True(t, errors.HasCode(err, errors.ErrRenderFailed))
}

func TestPublic(t *testing.T) {
	for _, name := range []string{"stylesheets/error.css", "images/runnable.svg", "favicon.svg"} {
		_, err := fs.Stat(Public(), name)
		assert.NoError(t, err, name)
	}
}
