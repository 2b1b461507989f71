package render

// Context owns a Device and the one piece of global state the render layer
// has: which program is currently bound. Every program activation goes
// through Use so that redundant binds are never issued.
type Context struct {
	dev    Device
	active ProgramHandle
}

// NewContext wraps dev. No program is considered active.
func NewContext(dev Device) *Context {
	return &Context{dev: dev}
}

// Device returns the wrapped device.
func (c *Context) Device() Device {
	return c.dev
}

// Use binds p unless it is already the active program.
func (c *Context) Use(p ProgramHandle) {
	if c.active == p {
		return
	}
	c.dev.UseProgram(p)
	c.active = p
}

// Active returns the currently bound program, zero if none.
func (c *Context) Active() ProgramHandle {
	return c.active
}

// deleteProgram frees p and forgets it if it was active, so a later program
// reusing the same handle value is bound again.
func (c *Context) deleteProgram(p ProgramHandle) {
	c.dev.DeleteProgram(p)
	if c.active == p {
		c.active = 0
	}
}
