package filesystem_test

import (
	"os"
	"os/user"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/stacks/filesystem"
)

func TestAccounts_UserName(t *testing.T) {
	current, err := user.Current()
	if err != nil {
		t.Skipf("current user unavailable: %v", err)
	}

	name, err := filesystem.NewAccounts().UserName(uint32(os.Getuid()))

	require.NoError(t, err)
	assert.Equal(t, current.Username, name)
}

func TestAccounts_GroupName(t *testing.T) {
	want, err := user.LookupGroupId(strconv.Itoa(os.Getgid()))
	if err != nil {
		t.Skipf("current group unavailable: %v", err)
	}

	name, err := filesystem.NewAccounts().GroupName(uint32(os.Getgid()))

	require.NoError(t, err)
	assert.Equal(t, want.Name, name)
}

func TestAccounts_UnknownID(t *testing.T) {
	accounts := filesystem.NewAccounts()

	_, err := accounts.UserName(4000000000)
	assert.Error(t, err)

	_, err = accounts.GroupName(4000000000)
	assert.Error(t, err)
}
