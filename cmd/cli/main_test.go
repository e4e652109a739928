package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommandsLists(t *testing.T) {
	out, err := execute(t, "commands")
	require.NoError(t, err)
	for _, name := range []string{"bot", "hello", "name", "ping", "roles"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "guild only")
}

func TestInvoke(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "ping",
			args: []string{"invoke", "ping", "--latency", "42ms"},
			want: "Websocket Heartbeat: **42ms**\n",
		},
		{
			name: "name",
			args: []string{"invoke", "NAME", "--name", "Alice", "--id", "99"},
			want: "Hi!! **Alice** \nyour Discord ID is  `99` \n",
		},
		{
			name: "roles in guild",
			args: []string{"invoke", "roles", "--name", "Alice", "--guild", "g1",
				"--member-roles", "r2,r1", "--guild-roles", "r1=Admin,r2=VIP"},
			want: "User **Alice** has the following roles:\n@everyone, VIP, Admin\n",
		},
		{
			name: "roles in dm",
			args: []string{"invoke", "roles"},
			want: "This command cannot be used in DMs.\n",
		},
		{
			name: "roles without extra roles",
			args: []string{"invoke", "roles", "--name", "Bob", "--guild", "g1"},
			want: "User **Bob** has no server roles other than @everyone.\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestInvokeUnknown(t *testing.T) {
	_, err := execute(t, "invoke", "music")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "music"`)
}

func TestInvokeBadRole(t *testing.T) {
	_, err := execute(t, "invoke", "roles", "--guild", "g1", "--guild-roles", "Admin")
	assert.Error(t, err)
}
