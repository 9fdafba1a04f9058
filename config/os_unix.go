//go:build !windows

package config

import "os"

const forbiddenFileRunes = ""

func enableVirtualTerminal(*os.File) bool {
	return true
}
