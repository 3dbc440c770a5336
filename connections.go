package ganvas

import "fmt"

// Connection records that item's handle is glued to connected's port,
// held in place by constraint. Callback, if set, is invoked when the
// connection is broken.
type Connection struct {
	Item      Item
	Handle    *Handle
	Connected Item
	Port      Port
	Constraint Constraint
	Callback  func()
}

// ConnectionError is returned when a connect/reconnect request can't be
// satisfied, e.g. the handle is already connected.
type ConnectionError struct {
	message string
}

func (e *ConnectionError) Error() string {
	return e.message
}

// Connections is the registry of handle-to-port glue relationships for
// a Canvas, and owns the Solver those relationships' constraints are
// registered with.
type Connections struct {
	solver *Solver
	table  *connectionTable
}

// NewConnections returns an empty registry backed by a fresh Solver.
func NewConnections() *Connections {
	return &Connections{solver: NewSolver(), table: newConnectionTable()}
}

// Solver returns the registry's constraint solver.
func (c *Connections) Solver() *Solver {
	return c.solver
}

// AddConstraint registers constraint with the solver on behalf of
// item, so it can be found again by RemoveConstraint.
func (c *Connections) AddConstraint(item Item, constraint Constraint) Constraint {
	c.solver.AddConstraint(constraint)
	c.table.insert(&Connection{Item: item, Constraint: constraint})
	return constraint
}

// RemoveConstraint unregisters a constraint previously added with
// AddConstraint.
func (c *Connections) RemoveConstraint(item Item, constraint Constraint) {
	c.solver.RemoveConstraint(constraint)
	for _, row := range c.table.query(item, nil, nil, nil) {
		if row.Constraint == constraint {
			c.table.delete(row)
			break
		}
	}
}

// ConnectItem registers a connection between item's handle and
// connected's port, and if constraint is non-nil, adds it to the
// solver. Returns a *ConnectionError if handle is already connected.
func (c *Connections) ConnectItem(item Item, handle *Handle, connected Item, port Port, constraint Constraint, callback func()) error {
	if c.GetConnection(handle) != nil {
		return &ConnectionError{message: fmt.Sprintf("ganvas: handle %v of item %v is already connected", handle, item)}
	}

	c.table.insert(&Connection{
		Item: item, Handle: handle, Connected: connected, Port: port,
		Constraint: constraint, Callback: callback,
	})
	if constraint != nil {
		c.solver.AddConstraint(constraint)
	}
	return nil
}

// DisconnectItem removes the connections for item. If handle is
// non-nil, only the connection for that handle is removed.
func (c *Connections) DisconnectItem(item Item, handle *Handle) {
	for _, row := range c.table.query(item, handle, nil, nil) {
		c.disconnect(row)
	}
}

func (c *Connections) disconnect(row *Connection) {
	if row.Constraint != nil {
		c.solver.RemoveConstraint(row.Constraint)
	}
	if row.Callback != nil {
		row.Callback()
	}
	c.table.delete(row)
}

// RemoveConnectionsToItem removes every connection where item is
// either the connecting or the connected side.
func (c *Connections) RemoveConnectionsToItem(item Item) {
	for _, row := range c.table.query(item, nil, nil, nil) {
		c.disconnect(row)
	}
	for _, row := range c.table.query(nil, nil, item, nil) {
		c.disconnect(row)
	}
}

// ReconnectItem replaces the port and/or constraint of an existing
// connection, keyed by item and handle. If port is nil the existing
// port is kept.
func (c *Connections) ReconnectItem(item Item, handle *Handle, port Port, constraint Constraint) error {
	existing := c.GetConnection(handle)
	if existing == nil {
		return fmt.Errorf("ganvas: no connection for item %v and handle %v", item, handle)
	}

	if existing.Constraint != nil {
		c.solver.RemoveConstraint(existing.Constraint)
	}
	c.table.delete(existing)

	if port == nil {
		port = existing.Port
	}
	c.table.insert(&Connection{
		Item: item, Handle: handle, Connected: existing.Connected, Port: port,
		Constraint: constraint, Callback: existing.Callback,
	})
	if constraint != nil {
		c.solver.AddConstraint(constraint)
	}
	return nil
}

// GetConnection returns the connection registered for handle, or nil
// if handle isn't connected.
func (c *Connections) GetConnection(handle *Handle) *Connection {
	rows := c.table.query(nil, handle, nil, nil)
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// GetConnections returns every connection matching the given non-nil
// filters.
func (c *Connections) GetConnections(item Item, handle *Handle, connected Item, port Port) []*Connection {
	return c.table.query(item, handle, connected, port)
}

// Solve resolves every pending constraint in the registry's solver.
func (c *Connections) Solve() {
	c.solver.Solve()
}
