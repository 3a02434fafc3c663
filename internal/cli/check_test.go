package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexley/opdesc/pkg/opdesc"
)

func TestCheckDescription_CleanDescription(t *testing.T) {
	desc := opdesc.NewDescription("widgets",
		opdesc.NewCommand(opdesc.CommandConfig{
			Name:   "widget.get",
			Method: "GET",
			URI:    "/widgets/{id}",
			Params: []opdesc.ParamSource{
				opdesc.ParamConfig{Name: "id", Type: "integer", Required: true},
			},
		}),
	)

	assert.Empty(t, CheckDescription(desc, nil))
}

func TestCheckDescription_Problems(t *testing.T) {
	tests := []struct {
		name     string
		cfg      opdesc.CommandConfig
		contains string
	}{
		{
			name:     "URIWithoutMethod",
			cfg:      opdesc.CommandConfig{Name: "x", URI: "/x"},
			contains: "has a uri but no method",
		},
		{
			name:     "MethodWithoutURI",
			cfg:      opdesc.CommandConfig{Name: "x", Method: "GET"},
			contains: "has a method but no uri",
		},
		{
			name:     "PlaceholderWithoutParam",
			cfg:      opdesc.CommandConfig{Name: "x", Method: "GET", URI: "/x/{id}"},
			contains: `uri placeholder {id} has no parameter`,
		},
		{
			name: "UnknownType",
			cfg: opdesc.CommandConfig{Name: "x", Params: []opdesc.ParamSource{
				opdesc.ParamConfig{Name: "p", Type: "decimal128"},
			}},
			contains: `unknown type "decimal128"`,
		},
		{
			name: "UnknownFilter",
			cfg: opdesc.CommandConfig{Name: "x", Params: []opdesc.ParamSource{
				opdesc.ParamConfig{Name: "p", Filters: []string{"sparkle"}},
			}},
			contains: `unknown filter "sparkle"`,
		},
		{
			name: "DegenerateLengthRange",
			cfg: opdesc.CommandConfig{Name: "x", Params: []opdesc.ParamSource{
				opdesc.ParamConfig{Name: "p", MinLength: 9, MaxLength: 3},
			}},
			contains: "min_length 9 greater than max_length 3",
		},
		{
			name: "StaticWithoutDefault",
			cfg: opdesc.CommandConfig{Name: "x", Params: []opdesc.ParamSource{
				opdesc.ParamConfig{Name: "p", Static: true},
			}},
			contains: "static but has no default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := opdesc.NewDescription("t", opdesc.NewCommand(tt.cfg))
			problems := CheckDescription(desc, nil)
			require.Len(t, problems, 1)
			assert.Equal(t, "x", problems[0].Command)
			assert.Contains(t, problems[0].Message, tt.contains)
			assert.Contains(t, problems[0].String(), "x: ")
		})
	}
}

func TestCheckDescription_CollectsAcrossCommands(t *testing.T) {
	desc := opdesc.NewDescription("t",
		opdesc.NewCommand(opdesc.CommandConfig{Name: "a", URI: "/a"}),
		opdesc.NewCommand(opdesc.CommandConfig{Name: "b", Method: "GET"}),
	)

	problems := CheckDescription(desc, nil)
	assert.Len(t, problems, 2)
}

func TestUriPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"id", "part_id"}, uriPlaceholders("/w/{id}/p/{part_id}"))
	assert.Nil(t, uriPlaceholders("/w"))
}
