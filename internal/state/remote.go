package state

import (
	"VectorBoard/internal/logging"
)

// ApplyRemote merges an op received from another site and reports whether
// the collection changed. Inserts of a stroke ID already present and deletes
// of an unknown ID are ignored. Remote ops are not re-emitted.
func (c *Collection) ApplyRemote(op Op) bool {
	c.clock.Observe(op.Lamport)

	switch op.Type {
	case OpInsertStroke:
		if op.Stroke == nil || op.Stroke.Empty() {
			logging.Logger().Warn("remote insert without points", "site", op.Site)
			return false
		}
		if _, exists := c.FindByID(op.Stroke.ID); exists {
			logging.Logger().Debug("remote stroke already present, ignoring", "stroke", op.Stroke.ID)
			return false
		}
		_, ok := c.add(op.Stroke)
		return ok
	case OpDeleteStroke:
		h, ok := c.FindByID(op.Target)
		if !ok {
			return false
		}
		_, ok = c.remove(h)
		return ok
	default:
		logging.Logger().Warn("unknown remote op", "type", op.Type, "site", op.Site)
		return false
	}
}
