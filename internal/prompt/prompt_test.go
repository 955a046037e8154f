package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWithoutContext(t *testing.T) {
	tmpl := &Template{System: "Be brief."}
	got := tmpl.Build("", "What is Go?")
	assert.Equal(t, "Be brief.\n\nHuman: What is Go?\nAssistant:", got)
}

func TestBuildWithContext(t *testing.T) {
	tmpl := &Template{System: "Be brief."}
	ctx := "Human: hi\nAssistant: hello"
	got := tmpl.Build(ctx, "What is Go?")
	assert.Equal(t, "Be brief.\n\nHuman: hi\nAssistant: hello\nHuman: What is Go?\nAssistant:", got)
}

func TestDefaultHasSystem(t *testing.T) {
	assert.NotEmpty(t, Default().System)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pirate.toml")
	content := "system = \"Answer like a pirate.\"\ngreeting = \"Ahoy!\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tmpl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Answer like a pirate.", tmpl.System)
	assert.Equal(t, "Ahoy!", tmpl.Greeting)
}

func TestLoadMissingSystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("greeting = \"hi\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "system")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
