package cli

// GroupID identifies a help section within one [Command].
type GroupID int

// NoGroup is the implicit group of options that weren't assigned one.
// These are listed under [DefaultOptionsLabel].
const NoGroup GroupID = 0

// Group is a labeled help section that options can be assigned to.
type Group struct {
	ID    GroupID
	Label string
}

func (c *Command) group(id GroupID) (Group, bool) {
	for _, g := range c.groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// AddGroup declares a help section for options of this [Command].
// Sections are rendered in the order they're declared, before the default section.
//
// Using [NoGroup] or an ID that was already declared will panic.
func (c *Command) AddGroup(id GroupID, label string) *Command {
	if id == NoGroup {
		panic(declarationErrorf("group ID %d is reserved for ungrouped options in '%s'", id, c.Path()))
	}
	if _, ok := c.group(id); ok {
		panic(declarationErrorf("duplicate group ID %d in '%s'", id, c.Path()))
	}
	c.groups = append(c.groups, Group{ID: id, Label: label})
	return c
}

// Groups returns the declared groups in declaration order.
func (c *Command) Groups() []Group {
	groups := make([]Group, len(c.groups))
	copy(groups, c.groups)
	return groups
}
