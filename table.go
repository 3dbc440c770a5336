package ganvas

// connectionTable is a small four-column indexed table over Connection
// rows, keyed by item, handle, connected, and port. It exists purely
// to back Connections' query-by-any-column lookups without a linear
// scan on every call.
type connectionTable struct {
	rows []*Connection

	byItem      map[Item][]*Connection
	byHandle    map[*Handle][]*Connection
	byConnected map[Item][]*Connection
	byPort      map[Port][]*Connection
}

func newConnectionTable() *connectionTable {
	return &connectionTable{
		byItem:      make(map[Item][]*Connection),
		byHandle:    make(map[*Handle][]*Connection),
		byConnected: make(map[Item][]*Connection),
		byPort:      make(map[Port][]*Connection),
	}
}

func (t *connectionTable) insert(c *Connection) {
	t.rows = append(t.rows, c)
	if c.Item != nil {
		t.byItem[c.Item] = append(t.byItem[c.Item], c)
	}
	if c.Handle != nil {
		t.byHandle[c.Handle] = append(t.byHandle[c.Handle], c)
	}
	if c.Connected != nil {
		t.byConnected[c.Connected] = append(t.byConnected[c.Connected], c)
	}
	if c.Port != nil {
		t.byPort[c.Port] = append(t.byPort[c.Port], c)
	}
}

func (t *connectionTable) delete(c *Connection) {
	t.rows = removeConnection(t.rows, c)
	if c.Item != nil {
		t.byItem[c.Item] = removeConnection(t.byItem[c.Item], c)
	}
	if c.Handle != nil {
		t.byHandle[c.Handle] = removeConnection(t.byHandle[c.Handle], c)
	}
	if c.Connected != nil {
		t.byConnected[c.Connected] = removeConnection(t.byConnected[c.Connected], c)
	}
	if c.Port != nil {
		t.byPort[c.Port] = removeConnection(t.byPort[c.Port], c)
	}
}

func removeConnection(cs []*Connection, target *Connection) []*Connection {
	out := cs[:0]
	for _, c := range cs {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}

// query returns every row matching all of the non-nil filters,
// intersected across columns. A nil filter for a column matches
// anything.
func (t *connectionTable) query(item Item, handle *Handle, connected Item, port Port) []*Connection {
	var candidates []*Connection
	switch {
	case item != nil:
		candidates = t.byItem[item]
	case handle != nil:
		candidates = t.byHandle[handle]
	case connected != nil:
		candidates = t.byConnected[connected]
	case port != nil:
		candidates = t.byPort[port]
	default:
		candidates = t.rows
	}

	out := make([]*Connection, 0, len(candidates))
	for _, c := range candidates {
		if item != nil && c.Item != item {
			continue
		}
		if handle != nil && c.Handle != handle {
			continue
		}
		if connected != nil && c.Connected != connected {
			continue
		}
		if port != nil && c.Port != port {
			continue
		}
		out = append(out, c)
	}
	return out
}
