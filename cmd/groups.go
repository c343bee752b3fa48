package cmd

import "github.com/spf13/cobra"

const (
	groupProfiles  = "profiles"
	groupResources = "resources"
	groupLifecycle = "lifecycle"
)

// groupRegistry memoizes cobra command groups per parent. cobra's
// AddGroup is a one-shot append with no duplicate check; attaching the
// same group id twice corrupts the help layout. The registry guards that
// initialization so registering any number of commands yields exactly one
// group per id.
type groupRegistry struct {
	groups map[string]*cobra.Group
}

func newGroupRegistry() *groupRegistry {
	return &groupRegistry{groups: map[string]*cobra.Group{}}
}

// Ensure returns the group with this id, attaching it to parent on first
// use only.
func (r *groupRegistry) Ensure(parent *cobra.Command, id, title string) *cobra.Group {
	if group, ok := r.groups[id]; ok {
		return group
	}

	group := &cobra.Group{ID: id, Title: title}
	parent.AddGroup(group)
	r.groups[id] = group
	return group
}
