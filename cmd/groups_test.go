package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRegistryEnsureIsIdempotent(t *testing.T) {
	t.Parallel()

	parent := &cobra.Command{Use: "maas"}
	registry := newGroupRegistry()

	first := registry.Ensure(parent, groupProfiles, "Profile management:")
	second := registry.Ensure(parent, groupProfiles, "Profile management:")

	assert.Same(t, first, second)
	require.Len(t, parent.Groups(), 1)
	assert.Equal(t, groupProfiles, parent.Groups()[0].ID)
}

func TestGroupRegistryKeepsDistinctGroupsApart(t *testing.T) {
	t.Parallel()

	parent := &cobra.Command{Use: "maas"}
	registry := newGroupRegistry()

	registry.Ensure(parent, groupProfiles, "Profile management:")
	registry.Ensure(parent, groupLifecycle, "Node lifecycle:")
	registry.Ensure(parent, groupProfiles, "Profile management:")

	assert.Len(t, parent.Groups(), 2)
}

func TestRootCommandRegistersEveryVerbOnce(t *testing.T) {
	t.Parallel()

	var debug bool
	root := newRootCmd(&app{}, &debug)

	seen := map[string]int{}
	for _, sub := range root.Commands() {
		name := strings.Fields(sub.Use)[0]
		seen[name]++
	}

	for _, verb := range []string{
		"login", "login-api", "logout", "list-profiles", "refresh-profiles",
		"list-nodes", "list-tags", "list-files", "list-users",
		"acquire-node", "launch-node", "release-node", "version",
	} {
		assert.Equal(t, 1, seen[verb], "verb %s", verb)
	}
}

func TestRenderErrorTerseAndVerbose(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	err := &wrapError{msg: "establish session", err: inner}

	var terse strings.Builder
	renderError(&terse, err, false)
	assert.Equal(t, "Error: establish session: connection refused\n", terse.String())

	var verbose strings.Builder
	renderError(&verbose, err, true)
	assert.Contains(t, verbose.String(), "caused by")
	assert.Contains(t, verbose.String(), "connection refused")
}

type wrapError struct {
	msg string
	err error
}

func (e *wrapError) Error() string { return e.msg + ": " + e.err.Error() }
func (e *wrapError) Unwrap() error { return e.err }
