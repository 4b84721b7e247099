// Package privilege checks that the process may read the cluster's admin
// keyring: ceph commands only work as root or the ceph user.
package privilege

import (
	"errors"
	"fmt"
	"os/user"
	"slices"
	"strconv"

	"golang.org/x/sys/unix"
)

var ErrNotPermitted = errors.New("must be run as root or ceph user")

// AllowedUsers may run ceph admin commands.
var AllowedUsers = []string{"root", "ceph"}

// CheckUser returns ErrNotPermitted unless the effective user is allowed.
func CheckUser() error {
	return checkUID(unix.Geteuid(), lookupName)
}

func lookupName(uid int) (string, error) {
	u, err := user.LookupId(strconv.Itoa(uid))
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

func checkUID(uid int, lookup func(int) (string, error)) error {
	if uid == 0 {
		return nil
	}
	name, err := lookup(uid)
	if err != nil {
		return fmt.Errorf("%w: resolve uid %d: %v", ErrNotPermitted, uid, err)
	}
	if !slices.Contains(AllowedUsers, name) {
		return fmt.Errorf("%w: running as %q", ErrNotPermitted, name)
	}
	return nil
}
