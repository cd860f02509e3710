package store

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamjuaness/ForgeArch/internal/errs"
	"github.com/iamjuaness/ForgeArch/internal/templates"
)

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"api", "backend-api", "v1.2_x", "9lives"} {
		assert.NoError(t, ValidateKey(key), key)
	}
	for _, key := range []string{"", "-flag", ".hidden", "a/b", "a b", "../x"} {
		assert.ErrorIs(t, ValidateKey(key), errs.ErrValidation, key)
	}
}

func TestAdd_CreatesSkeleton(t *testing.T) {
	s, _ := newTestStore(t)

	res, err := s.Add("scratch")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.False(t, res.Existing)
	assert.Equal(t, s.LocalPath(), res.Path)

	got, err := s.Lookup("scratch")
	require.NoError(t, err)
	assert.Equal(t, templates.Skeleton("scratch"), got)
}

func TestAdd_ExistingKeyIsNotOverwritten(t *testing.T) {
	s, fsys := newTestStore(t)

	res, err := s.Add("backend-api")
	require.NoError(t, err)
	assert.True(t, res.Existing)
	assert.False(t, res.Created)
	assert.Equal(t, "Backend API", res.Template.Name)

	exists, _ := afero.Exists(fsys, s.LocalPath())
	assert.False(t, exists)
}

func TestAdd_RejectsBadKey(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Add("../escape")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestEdit_CopiesBuiltin(t *testing.T) {
	s, _ := newTestStore(t)

	path, copied, err := s.Edit("cli-tool")
	require.NoError(t, err)
	assert.True(t, copied)
	assert.Equal(t, s.LocalPath(), path)

	local, err := s.Local()
	require.NoError(t, err)
	assert.Equal(t, "CLI Tool", local["cli-tool"].Name)

	_, copied, err = s.Edit("cli-tool")
	require.NoError(t, err)
	assert.False(t, copied)
}

func TestEdit_UnknownKey(t *testing.T) {
	s, _ := newTestStore(t)
	_, _, err := s.Edit("nope")
	assert.ErrorIs(t, err, errs.ErrKeyNotFound)
}

func TestSave_RejectsUnsafeTemplate(t *testing.T) {
	s, fsys := newTestStore(t)
	bad := templates.Skeleton("bad")
	bad.Structure = append(bad.Structure, "../outside")

	err := s.Save("bad", bad)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "../outside", ve.Path)

	exists, _ := afero.Exists(fsys, s.LocalPath())
	assert.False(t, exists)
}

func TestSave_TreatsCorruptFileAsEmpty(t *testing.T) {
	s, fsys := newTestStore(t)
	writeFile(t, fsys, "local_templates.json", `{not json`)

	require.NoError(t, s.Save("scratch", templates.Skeleton("scratch")))

	local, err := s.Local()
	require.NoError(t, err)
	assert.Equal(t, []string{"scratch"}, local.Keys())
}

func TestSave_WritesCanonicalJSON(t *testing.T) {
	s, fsys := newTestStore(t)
	require.NoError(t, s.Save("b", templates.Template{Name: "B"}))
	require.NoError(t, s.Save("a", templates.Template{Name: "A"}))

	data, err := afero.ReadFile(fsys, s.LocalPath())
	require.NoError(t, err)
	want := `{
  "a": {
    "name": "A",
    "description": "",
    "structure": [],
    "files": {}
  },
  "b": {
    "name": "B",
    "description": "",
    "structure": [],
    "files": {}
  }
}
`
	assert.Equal(t, want, string(data))
}

func TestRemove_MissingFileIsNotCreated(t *testing.T) {
	s, fsys := newTestStore(t)

	found, err := s.Remove("nonexistent")
	require.NoError(t, err)
	assert.False(t, found)

	exists, _ := afero.Exists(fsys, s.LocalPath())
	assert.False(t, exists)
}

func TestRemove_AbsentKeyLeavesFileUntouched(t *testing.T) {
	s, fsys := newTestStore(t)
	writeFile(t, fsys, "local_templates.json", overrideDoc)

	found, err := s.Remove("nonexistent")
	require.NoError(t, err)
	assert.False(t, found)

	data, err := afero.ReadFile(fsys, s.LocalPath())
	require.NoError(t, err)
	assert.Equal(t, overrideDoc, string(data))
}

func TestRemove_FallsBackToBuiltin(t *testing.T) {
	s, fsys := newTestStore(t)
	writeFile(t, fsys, "local_templates.json", overrideDoc)

	found, err := s.Remove("backend-api")
	require.NoError(t, err)
	assert.True(t, found)

	got, err := s.Lookup("backend-api")
	require.NoError(t, err)
	assert.Equal(t, "Backend API", got.Name)
}

func TestRemove_UserOnlyKeyDisappears(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Save("scratch", templates.Skeleton("scratch")))

	found, err := s.Remove("scratch")
	require.NoError(t, err)
	assert.True(t, found)

	_, err = s.Lookup("scratch")
	assert.ErrorIs(t, err, errs.ErrKeyNotFound)
}

func TestRemove_MalformedFile(t *testing.T) {
	s, fsys := newTestStore(t)
	writeFile(t, fsys, "local_templates.json", `[1, 2]`)

	_, err := s.Remove("x")
	assert.ErrorIs(t, err, errs.ErrConfig)
}
