package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDescriptor = `{
	"name": "greeter-submission",
	"assignments": ["hw01", "hw02"],
	"fileGroups": [
		{"name": "sources", "files": ["acme/Greeter.w"]},
		{"name": "resources", "files": ["greeting.txt", "banner.txt"]}
	]
}`

func TestLoad(t *testing.T) {
	d, err := Load([]byte(sampleDescriptor))
	require.Nil(t, err)
	require.Equal(t, "greeter-submission", d.Name)
	require.Len(t, d.Assignments, 2)
	require.Len(t, d.FileGroups, 2)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load([]byte("{"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "decode descriptor")
}

func TestHasAssignment(t *testing.T) {
	d, err := Load([]byte(sampleDescriptor))
	require.Nil(t, err)
	require.True(t, d.HasAssignment("hw01"))
	require.False(t, d.HasAssignment("hw99"))
}

func TestGroup(t *testing.T) {
	d, err := Load([]byte(sampleDescriptor))
	require.Nil(t, err)

	group, ok := d.Group("resources")
	require.True(t, ok)
	require.Equal(t, []string{"greeting.txt", "banner.txt"}, group.Files)

	_, ok = d.Group("missing")
	require.False(t, ok)
}
