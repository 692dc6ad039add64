/*
	This file holds the command type used by the wintermute command line.  A Command
	bundles the command name, positional arguments, and optional "key=value" settings.
*/

package wm

import (
	"fmt"
	"strconv"
	"strings"
)

// Keys for setting various arguments within the command line via "key=value" strings.
const (
	KeyMode   = "mode"
	KeyType   = "type"
	KeyOpen   = "open"
	KeyIndex  = "index"
	KeyPrefix = "prefix"
	KeyAt     = "at"
	KeyNear   = "near"
)

var setKeys = map[string]bool{
	KeyMode:   true,
	KeyType:   true,
	KeyOpen:   true,
	KeyIndex:  true,
	KeyPrefix: true,
	KeyAt:     true,
	KeyNear:   true,
}

// Command is a parsed command line.  The first item in the string slice is the
// command, e.g., "neighbors".  The other arguments are command arguments or
// optional settings of the form "<key>=<value>".
type Command []string

// String returns a space-separated command line
func (cmd Command) String() string {
	return strings.Join([]string(cmd), " ")
}

// Name returns the first argument which is assumed to be the name of the command.
func (cmd Command) Name() string {
	if len(cmd) == 0 {
		return ""
	}
	return cmd[0]
}

// Parameter scans a command for any "key=value" argument and returns
// the value of the passed 'key'.
func (cmd Command) Parameter(key string) (value string, found bool) {
	if len(cmd) > 1 {
		for _, arg := range cmd[1:] {
			elems := strings.SplitN(arg, "=", 2)
			if len(elems) == 2 && elems[0] == key {
				value = elems[1]
				found = true
				return
			}
		}
	}
	return
}

// BoolParameter returns the boolean value of a "key=value" setting, false if absent.
func (cmd Command) BoolParameter(key string) (bool, error) {
	s, found := cmd.Parameter(key)
	if !found {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("bad %s=%q setting: %v", key, s, err)
	}
	return b, nil
}

// CommandArgs sets a variadic argument set of string pointers to command arguments,
// ignoring setting arguments of the form "<key>=<value>".  If there aren't enough
// arguments to set a target, the target is set to the empty string.  It returns an
// 'overflow' slice that has all arguments beyond those needed for targets.
func (cmd Command) CommandArgs(targets ...*string) (overflow []string) {
	overflow = make([]string, 0, len(cmd))
	for _, target := range targets {
		*target = ""
	}
	if len(cmd) > 1 {
		numTargets := len(targets)
		curTarget := 0
		for _, arg := range cmd[1:] {
			optionalSet := false
			elems := strings.SplitN(arg, "=", 2)
			if len(elems) == 2 {
				_, optionalSet = setKeys[elems[0]]
			}
			if !optionalSet {
				if curTarget >= numTargets {
					overflow = append(overflow, arg)
				} else {
					*(targets[curTarget]) = arg
				}
				curTarget++
			}
		}
	}
	return
}

// ParseSegment parses a segment (body) id given on the command line.
func ParseSegment(s string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad segment id %q: %v", s, err)
	}
	return id, nil
}
