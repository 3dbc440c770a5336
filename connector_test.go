package ganvas

import "testing"

func TestItemConnectionSinkGluesToNearestPortInRange(t *testing.T) {
	conn := NewConnections()
	target := NewElement(conn, 40, 40)
	conn.Solve()

	sink := NewItemConnectionSink(target)
	pt, ok, d := sink.Glue(Point{X: 20, Y: 2}, Point{}, false)
	if !ok {
		t.Fatalf("expected a glue hit within range")
	}
	assertNear(t, d, 2)
	assertNear(t, pt.X, 20)
	assertNear(t, pt.Y, 0)
	if sink.Port() != target.Ports()[0] {
		t.Fatalf("expected the top edge port to be resolved")
	}
}

func TestItemConnectionSinkMissesBeyondDistance(t *testing.T) {
	conn := NewConnections()
	target := NewElement(conn, 40, 40)
	conn.Solve()

	sink := NewItemConnectionSink(target)
	if _, ok, _ := sink.Glue(Point{X: 20, Y: -50}, Point{}, false); ok {
		t.Fatalf("expected no glue hit outside range")
	}
}

func TestElementConnectionSinkFallsBackToEdgeIntersection(t *testing.T) {
	conn := NewConnections()
	target := NewElement(conn, 40, 40)
	conn.Solve()

	sink := NewElementConnectionSink(target)
	pos := Point{X: 20, Y: -50}
	secondary := Point{X: 20, Y: 50}

	pt, ok, d := sink.Glue(pos, secondary, true)
	if !ok {
		t.Fatalf("expected the edge-intersection fallback to find a hit")
	}
	assertNear(t, d, 0)
	assertNear(t, pt.X, 20)
	assertNear(t, pt.Y, 0)
	if sink.Port() != target.Ports()[0] {
		t.Fatalf("expected the top edge port to be resolved by the fallback")
	}
}

func TestElementConnectionSinkFallbackNeedsASecondaryPosition(t *testing.T) {
	conn := NewConnections()
	target := NewElement(conn, 40, 40)
	conn.Solve()

	sink := NewElementConnectionSink(target)
	if _, ok, _ := sink.Glue(Point{X: 20, Y: -50}, Point{}, false); ok {
		t.Fatalf("expected no hit without a secondary position to test against the edges")
	}
}

func TestConnectorSecondaryHandleIsOnlySetForLineEnds(t *testing.T) {
	conn := NewConnections()
	target := NewElement(conn, 40, 40)
	line := NewLine(conn)

	c := NewConnector(line, line.Head(), conn)
	if c.secondaryHandle() != line.Tail() {
		t.Fatalf("expected the line's tail as the head's secondary handle")
	}

	cTarget := NewConnector(target, target.Handles()[0], conn)
	if cTarget.secondaryHandle() != nil {
		t.Fatalf("expected no secondary handle for a non-line item")
	}
}

func TestConnectorConnectUsesEdgeIntersectionFallback(t *testing.T) {
	conn := NewConnections()
	target := NewElement(conn, 40, 40)
	conn.Solve()

	line := NewLine(conn)
	line.Head().SetPoint(Point{X: 20, Y: -50})
	line.Tail().SetPoint(Point{X: 20, Y: 50})

	connector := NewConnector(line, line.Head(), conn)
	sink := NewElementConnectionSink(target)

	if err := connector.Connect(sink, nil); err != nil {
		t.Fatalf("connect: %v", err)
	}

	assertNear(t, line.Head().Point().X, 20)
	assertNear(t, line.Head().Point().Y, 0)

	got := conn.GetConnection(line.Head())
	if got == nil {
		t.Fatalf("expected a registered connection")
	}
	if got.Connected != Item(target) {
		t.Fatalf("expected the connection to point at target")
	}
	if got.Port != target.Ports()[0] {
		t.Fatalf("expected the top edge port to be recorded")
	}
}

func TestConnectorConnectFailsWhenNothingIsInGlueRange(t *testing.T) {
	conn := NewConnections()
	target := NewElement(conn, 40, 40)
	conn.Solve()

	line := NewLine(conn)
	line.Head().SetPoint(Point{X: 1000, Y: 1000})
	line.Tail().SetPoint(Point{X: 1000, Y: 990})

	connector := NewConnector(line, line.Head(), conn)
	sink := NewElementConnectionSink(target)

	err := connector.Connect(sink, nil)
	if err == nil {
		t.Fatalf("expected an error when no port or edge is reachable")
	}
	if _, ok := err.(*ConnectionError); !ok {
		t.Fatalf("expected *ConnectionError, got %T", err)
	}
}

func TestConnectorDisconnectRemovesTheConnection(t *testing.T) {
	conn := NewConnections()
	target := NewElement(conn, 40, 40)
	conn.Solve()

	line := NewLine(conn)
	line.Head().SetPoint(Point{X: 20, Y: 2})

	connector := NewConnector(line, line.Head(), conn)
	sink := NewElementConnectionSink(target)
	if err := connector.Connect(sink, nil); err != nil {
		t.Fatalf("connect: %v", err)
	}

	connector.Disconnect()
	if conn.GetConnection(line.Head()) != nil {
		t.Fatalf("expected the connection to be gone after Disconnect")
	}
}
