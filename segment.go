package ganvas

import "fmt"

// SplitSegment splits one line segment into count equal pieces,
// inserting count-1 new Weak-strength handles and rebuilding the
// affected ports. It returns the newly created handles and the first
// count-1 of the count ports that now span the split segment, and
// rebuilds any connections this line has to other items.
func (l *Line) SplitSegment(segment, count int) ([]*Handle, []*Port, error) {
	if segment < 0 || segment >= len(l.ports) {
		return nil, nil, fmt.Errorf("ganvas: incorrect segment %d", segment)
	}
	if count < 2 {
		return nil, nil, fmt.Errorf("ganvas: incorrect segment count %d", count)
	}

	var newHandles []*Handle
	var doSplit func(segment, count int)
	doSplit = func(segment, count int) {
		p0 := l.handles[segment].pos
		p1 := l.handles[segment+1].pos
		dx := p1.X.Value() - p0.X.Value()
		dy := p1.Y.Value() - p0.Y.Value()

		newHandle := NewHandle(p0.X.Value()+dx/float64(count), p0.Y.Value()+dy/float64(count))
		newHandle.pos.X.strength = Weak
		newHandle.pos.Y.strength = Weak
		l.InsertHandle(segment+1, newHandle)
		newHandles = append(newHandles, newHandle)

		if count > 2 {
			doSplit(segment+1, count-1)
		}
	}
	doSplit(segment, count)

	l.updateOrthogonalConstraints(l.Orthogonal())
	l.recreateConstraints()

	ports := make([]*Port, 0, count-1)
	for i := segment; i < segment+count-1; i++ {
		p := l.ports[i]
		ports = append(ports, &p)
	}
	return newHandles, ports, nil
}

// MergeSegment merges count consecutive line segments starting at
// segment back into one, removing the handles and ports between them.
// It returns the removed handles and ports, and rebuilds any
// connections this line has to other items.
func (l *Line) MergeSegment(segment, count int) ([]*Handle, []*Port, error) {
	if len(l.ports) < 2 {
		return nil, nil, fmt.Errorf("ganvas: cannot merge a line with one segment")
	}
	if l.Orthogonal() && len(l.ports) < 1+count {
		return nil, nil, fmt.Errorf("ganvas: cannot merge an orthogonal line down to one segment")
	}
	if segment < 0 || segment >= len(l.ports) {
		return nil, nil, fmt.Errorf("ganvas: incorrect segment %d", segment)
	}
	if count < 2 || segment+count > len(l.ports) {
		return nil, nil, fmt.Errorf("ganvas: incorrect segment count %d", count)
	}

	deletedHandles := append([]*Handle(nil), l.handles[segment+1:segment+count]...)
	deletedPorts := append([]Port(nil), l.ports[segment:segment+count]...)

	for _, h := range deletedHandles {
		l.RemoveHandle(h)
	}
	// RemoveHandle rebuilds ports from the remaining handles on every
	// call, so the segment..segment+1 gap is already a single port.

	l.updateOrthogonalConstraints(l.Orthogonal())
	l.recreateConstraints()

	ports := make([]*Port, 0, len(deletedPorts))
	for _, p := range deletedPorts {
		p := p
		ports = append(ports, &p)
	}
	return deletedHandles, ports, nil
}

// recreateConstraints rebuilds the glue constraint for every other
// item connected to this line, using each connected item's closest
// port to the handle's current canvas position. Called after a split
// or merge changes which ports exist.
func (l *Line) recreateConstraints() {
	if l.connections == nil {
		return
	}
	for _, cinfo := range l.connections.GetConnections(l, nil, nil, nil) {
		if cinfo.Handle == nil || cinfo.Connected == nil {
			continue
		}
		pos := matrixI2I(l, cinfo.Connected)
		x, y := pos.TransformPoint(cinfo.Handle.Point().X, cinfo.Handle.Point().Y)

		var bestPort Port
		bestDist := -1.0
		for _, p := range cinfo.Connected.Ports() {
			_, d := p.Glue(Point{X: x, Y: y})
			if bestPort == nil || d < bestDist {
				bestPort = p
				bestDist = d
			}
		}
		if bestPort == nil {
			continue
		}

		constraint := bestPort.Constraint(l, cinfo.Handle, cinfo.Connected)
		l.connections.ReconnectItem(l, cinfo.Handle, bestPort, constraint)
	}
}
