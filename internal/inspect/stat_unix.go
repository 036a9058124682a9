// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

//go:build unix

package inspect

import (
	"fmt"
	"os/user"
	"strconv"

	"golang.org/x/sys/unix"
)

// ownerDetails resolves ownership and inode details where the platform
// exposes them. Failures are silent; the report simply omits the line.
func ownerDetails(path string) (string, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return "", false
	}

	owner := strconv.FormatUint(uint64(st.Uid), 10)
	if u, err := user.LookupId(owner); err == nil && u.Username != "" {
		owner = u.Username
	}

	return fmt.Sprintf("%s (uid %d, gid %d, inode %d, links %d)",
		owner, st.Uid, st.Gid, uint64(st.Ino), uint64(st.Nlink)), true
}
