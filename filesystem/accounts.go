package filesystem

import (
	"fmt"
	"os/user"
	"strconv"
)

// Accounts implements stacks.Accounts using the system user database.
// It keeps no cache; the lister memoizes names for one listing.
type Accounts struct{}

// NewAccounts creates a new Accounts.
func NewAccounts() *Accounts {
	return &Accounts{}
}

// UserName returns the login name of uid.
func (a *Accounts) UserName(uid uint32) (string, error) {
	u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return "", fmt.Errorf("lookup user %d: %w", uid, err)
	}
	return u.Username, nil
}

// GroupName returns the name of gid.
func (a *Accounts) GroupName(gid uint32) (string, error) {
	g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10))
	if err != nil {
		return "", fmt.Errorf("lookup group %d: %w", gid, err)
	}
	return g.Name, nil
}
