package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandFormValidate(t *testing.T) {
	tests := []struct {
		name  string
		form  CommandForm
		field string
	}{
		{name: "complete", form: CommandForm{Title: "ls", Template: "ls -la"}},
		{name: "missing title", form: CommandForm{Template: "ls"}, field: "title"},
		{name: "blank title", form: CommandForm{Title: "  ", Template: "ls"}, field: "title"},
		{name: "missing template", form: CommandForm{Title: "ls"}, field: "template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"docker", "k8s"}, ParseTags(" docker, ,k8s,docker "))
	assert.Nil(t, ParseTags(""))
}

func TestFormCopiesTags(t *testing.T) {
	c := Command{Title: "t", Template: "x", Tags: []string{"a"}}
	f := c.Form()
	f.Tags[0] = "b"
	assert.Equal(t, "a", c.Tags[0])
}
