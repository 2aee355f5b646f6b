package stamper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/prh/stamper"
)

func TestStamp_substitutes_variables(t *testing.T) {
	t.Parallel()

	got := stamper.Stamp(
		"{branch} into {base}",
		map[string]string{
			"branch": "feature/x",
			"base":   "develop",
		},
	)

	assert.Equal(t, "feature/x into develop", got)
}

func TestStamp_missing_variable_preserved(t *testing.T) {
	t.Parallel()

	got := stamper.Stamp(
		"{owner}/{repo} {unknown}",
		map[string]string{"owner": "acme", "repo": "widgets"},
	)

	assert.Equal(t, "acme/widgets {unknown}", got)
}

func TestStamp_no_placeholders(t *testing.T) {
	t.Parallel()

	got := stamper.Stamp("plain title", nil)

	assert.Equal(t, "plain title", got)
}

func TestStamp_repeated_variable(t *testing.T) {
	t.Parallel()

	got := stamper.Stamp(
		"{branch} ({branch})",
		map[string]string{"branch": "dev"},
	)

	assert.Equal(t, "dev (dev)", got)
}

func TestStamp_empty_format(t *testing.T) {
	t.Parallel()

	assert.Empty(
		t,
		stamper.Stamp("", map[string]string{"branch": "dev"}),
	)
}
