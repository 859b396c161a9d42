// Package input turns pointer events into physics interactions. Dragging
// works through a temporary mouse joint so the grabbed body is pulled, not
// teleported.
package input

import (
	"github.com/ByteArena/box2d"

	"github.com/san-kum/grainlab/internal/scene"
	"github.com/san-kum/grainlab/internal/world"
)

// Spring response of the drag joint. Soft enough that heavy bodies lag the
// pointer visibly.
const (
	dragFrequencyHz  = 5.0
	dragDampingRatio = 0.7
	dragForceFactor  = 1000.0
)

// Dragger is a single-pointer drag state machine: Idle until a press lands on
// a draggable body, Dragging until release. A second press while dragging is
// ignored.
type Dragger struct {
	mgr    *world.Manager
	joint  *box2d.B2MouseJoint
	target string
}

func NewDragger(mgr *world.Manager) *Dragger {
	return &Dragger{mgr: mgr}
}

// Press starts a drag if p lands on a draggable body. Reports whether a drag
// began. Pressing while already dragging does nothing.
func (d *Dragger) Press(p scene.Vec2) bool {
	if d.joint != nil {
		return false
	}

	id, ok := d.mgr.HitTest(p)
	if !ok {
		return false
	}
	body, ok := d.mgr.Lookup(id)
	if !ok {
		return false
	}

	jd := box2d.MakeB2MouseJointDef()
	jd.BodyA = d.mgr.Ground()
	jd.BodyB = body
	// The target doubles as the grab anchor: the joint stores it as a
	// body-local offset, so the body hangs from the clicked point.
	jd.Target = box2d.MakeB2Vec2(p.X, p.Y)
	jd.MaxForce = dragForceFactor * body.GetMass()
	jd.FrequencyHz = dragFrequencyHz
	jd.DampingRatio = dragDampingRatio

	d.joint = d.mgr.World().CreateJoint(&jd).(*box2d.B2MouseJoint)
	d.target = id
	body.SetAwake(true)
	return true
}

// Move updates the drag target. No-op while idle.
func (d *Dragger) Move(p scene.Vec2) {
	if d.joint == nil {
		return
	}
	d.joint.SetTarget(box2d.MakeB2Vec2(p.X, p.Y))
}

// Release ends the drag. The body keeps whatever velocity the spring gave it.
// Safe to call while idle.
func (d *Dragger) Release() {
	if d.joint == nil {
		return
	}
	d.mgr.World().DestroyJoint(d.joint)
	d.joint = nil
	d.target = ""
}

// Dragging reports whether a drag is active.
func (d *Dragger) Dragging() bool {
	return d.joint != nil
}

// Target returns the ID of the body being dragged, or "".
func (d *Dragger) Target() string {
	return d.target
}
