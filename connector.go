package ganvas

// ConnectionSink is the connectable target side of a glue-then-connect
// operation: something that can be asked how close a position lies to
// one of its ports, and that builds the constraint holding a handle
// glued there once a port has been chosen.
type ConnectionSink interface {
	Item() Item
	Port() Port
	Glue(pos, secondary Point, hasSecondary bool) (Point, bool, float64)
	Constraint(item Item, handle *Handle) Constraint
}

// ItemConnectionSink glues to whichever of an item's connectable ports
// lies closest to the requested position, within Distance.
type ItemConnectionSink struct {
	item     Item
	Distance float64
	port     Port
}

// NewItemConnectionSink returns a sink that glues to item's ports within
// the default distance threshold.
func NewItemConnectionSink(item Item) *ItemConnectionSink {
	return &ItemConnectionSink{item: item, Distance: 10}
}

func (s *ItemConnectionSink) Item() Item { return s.item }
func (s *ItemConnectionSink) Port() Port { return s.port }

// Glue finds the closest connectable port on the sink's item to pos,
// within Distance. secondary/hasSecondary are unused here;
// ElementConnectionSink below uses them for its edge-intersection
// fallback.
func (s *ItemConnectionSink) Glue(pos, secondary Point, hasSecondary bool) (Point, bool, float64) {
	var bestPort Port
	var bestPoint Point
	bestDistance := s.Distance

	for _, port := range s.item.Ports() {
		if !port.Connectable() {
			continue
		}
		pt, d := port.Glue(pos)
		if d <= bestDistance {
			bestDistance = d
			bestPoint = pt
			bestPort = port
		}
	}
	if bestPort == nil {
		return Point{}, false, 0
	}
	s.port = bestPort
	return bestPoint, true, bestDistance
}

// Constraint builds the constraint that keeps handle glued to the port
// resolved by the last successful Glue. Panics if Glue never succeeded.
func (s *ItemConnectionSink) Constraint(item Item, handle *Handle) Constraint {
	if s.port == nil {
		panic("ganvas: ItemConnectionSink.Constraint called before a successful Glue")
	}
	return s.port.Constraint(item, handle, s.item)
}

// ElementConnectionSink specializes ItemConnectionSink for Element
// targets: when no port lies within Distance, it falls back to
// intersecting the handle's motion line (pos to secondary) against each
// of the element's four edges, snapping exactly onto whichever edge the
// motion crosses.
type ElementConnectionSink struct {
	ItemConnectionSink
	element *Element
}

// NewElementConnectionSink returns an edge-fallback sink for element.
func NewElementConnectionSink(element *Element) *ElementConnectionSink {
	return &ElementConnectionSink{
		ItemConnectionSink: ItemConnectionSink{item: element, Distance: 10},
		element:            element,
	}
}

// Glue tries the inherited port search first; only when that finds
// nothing in range, and a secondary position is available, does it fall
// back to edge intersection.
func (s *ElementConnectionSink) Glue(pos, secondary Point, hasSecondary bool) (Point, bool, float64) {
	if pt, ok, d := s.ItemConnectionSink.Glue(pos, secondary, hasSecondary); ok {
		return pt, ok, d
	}
	if !hasSecondary {
		return Point{}, false, 0
	}

	ports := s.element.Ports()
	for i := 0; i < len(ports) && i < 4; i++ {
		edge, ok := ports[i].(*LinePort)
		if !ok {
			continue
		}
		if pt, hit := IntersectLineLine(pos, secondary, edge.Start.Point(), edge.End.Point()); hit {
			s.port = edge
			return pt, true, 0
		}
	}
	return Point{}, false, 0
}

// Connector drives glue-then-connect for one handle of item, projecting
// positions between item's coordinate space and a sink's, and
// registering the resulting connection with connections.
type Connector struct {
	item        Item
	handle      *Handle
	connections *Connections
}

// NewConnector returns a Connector for handle, one of item's own
// handles.
func NewConnector(item Item, handle *Handle, connections *Connections) *Connector {
	return &Connector{item: item, handle: handle, connections: connections}
}

// secondaryHandle returns the line's other end handle when item is a
// *Line and handle is one of its two ends, giving the edge-intersection
// fallback a motion line to test. Any other item has no secondary
// position.
func (c *Connector) secondaryHandle() *Handle {
	line, ok := c.item.(*Line)
	if !ok {
		return nil
	}
	if c.handle == line.Head() || c.handle == line.Tail() {
		return line.Opposite(c.handle)
	}
	return nil
}

// Glue asks sink for a glue point for the connector's handle, projecting
// positions between the connector's item and the sink's item through
// matrixI2I, and on success moves the handle to the resolved point
// (expressed in the connector's item's own coordinates). Reports
// whether a glue point was found.
func (c *Connector) Glue(sink ConnectionSink) bool {
	m := matrixI2I(c.item, sink.Item())
	p := c.handle.Point()
	x, y := m.TransformPoint(p.X, p.Y)
	pos := Point{X: x, Y: y}

	var secondary Point
	hasSecondary := false
	if sh := c.secondaryHandle(); sh != nil {
		sp := sh.Point()
		sx, sy := m.TransformPoint(sp.X, sp.Y)
		secondary = Point{X: sx, Y: sy}
		hasSecondary = true
	}

	glued, ok, _ := sink.Glue(pos, secondary, hasSecondary)
	if !ok {
		return false
	}

	back := m.Inverse()
	bx, by := back.TransformPoint(glued.X, glued.Y)
	c.handle.SetPoint(Point{X: bx, Y: by})
	return true
}

// Connect glues the connector's handle to sink and, on success,
// registers the resulting connection, disconnecting any existing one
// first. callback, if non-nil, runs when the connection is later
// broken.
func (c *Connector) Connect(sink ConnectionSink, callback func()) error {
	c.connections.DisconnectItem(c.item, c.handle)
	if !c.Glue(sink) {
		return &ConnectionError{message: "ganvas: no connectable port within glue distance"}
	}
	constraint := sink.Constraint(c.item, c.handle)
	return c.connections.ConnectItem(c.item, c.handle, sink.Item(), sink.Port(), constraint, callback)
}

// Disconnect removes the connector's handle's connection, if any.
func (c *Connector) Disconnect() {
	c.connections.DisconnectItem(c.item, c.handle)
}
