package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSeedIsValid(t *testing.T) {
	require.NoError(t, Validate(Seed()))
}

func TestLoadFileRoundTripsSeed(t *testing.T) {
	data, err := yaml.Marshal(document{Categories: Seed()})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "knowledge.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	categories, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Seed(), categories)
}

func TestParseRejectsMissingCategory(t *testing.T) {
	doc := document{Categories: Seed()[:4]}
	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	_, err = Parse(data)
	assert.ErrorIs(t, err, ErrMissingCategory)
}

func TestValidateRejectsUnknownKey(t *testing.T) {
	categories := append(Seed(), Category{Key: "treatments", Questions: Seed()[0].Questions})
	assert.ErrorIs(t, Validate(categories), ErrUnknownCategory)
}

func TestValidateRejectsDuplicateQuestion(t *testing.T) {
	categories := Seed()
	categories[1].Questions[1].Question = categories[1].Questions[0].Question
	assert.ErrorIs(t, Validate(categories), ErrDuplicateQuestion)
}

func TestValidateRejectsSingleQuestion(t *testing.T) {
	categories := Seed()
	categories[3].Questions = categories[3].Questions[:1]
	assert.ErrorIs(t, Validate(categories), ErrTooFewQuestions)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadWithoutPathUsesSeed(t *testing.T) {
	categories, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Seed(), categories)
}
