package imgedit

// MutableModel is the editable counterpart of EditModel. Every setter that
// changes a field notifies observers with the new snapshot. Changes made
// inside PerformChanges are batched: observers hear once, when the
// outermost call returns, and only if something changed.
//
// MutableModel is NOT safe for concurrent use.
type MutableModel struct {
	model     EditModel
	depth     int
	dirty     bool
	observers []modelObserver
	nextID    int
}

type modelObserver struct {
	id int
	fn func(EditModel)
}

// NewMutableModel returns a model holding NewEditModel defaults.
func NewMutableModel() *MutableModel {
	return NewMutableModelFrom(NewEditModel())
}

// NewMutableModelFrom returns a model holding a copy of m.
func NewMutableModelFrom(m EditModel) *MutableModel {
	return &MutableModel{model: m}
}

// Snapshot returns the current values.
func (m *MutableModel) Snapshot() EditModel {
	return m.model
}

// Observe registers fn to be called after each change. The returned
// function removes the registration.
func (m *MutableModel) Observe(fn func(EditModel)) (cancel func()) {
	m.nextID++
	id := m.nextID
	m.observers = append(m.observers, modelObserver{id: id, fn: fn})
	return func() {
		for i, o := range m.observers {
			if o.id == id {
				m.observers = append(m.observers[:i:i], m.observers[i+1:]...)
				return
			}
		}
	}
}

// PerformChanges runs fn as one logical edit. Calls nest; only the
// outermost one notifies.
func (m *MutableModel) PerformChanges(fn func()) {
	m.depth++
	defer func() {
		m.depth--
		if m.depth == 0 && m.dirty {
			m.notify()
		}
	}()
	fn()
}

func (m *MutableModel) update(apply func(*EditModel)) {
	next := m.model
	apply(&next)
	if next == m.model {
		return
	}
	m.model = next
	m.dirty = true
	if m.depth == 0 {
		m.notify()
	}
}

func (m *MutableModel) notify() {
	m.dirty = false
	snapshot := m.model
	observers := append([]modelObserver(nil), m.observers...)
	for _, o := range observers {
		o.fn(snapshot)
	}
}

// Replace overwrites every field with the values of e.
func (m *MutableModel) Replace(e EditModel) {
	m.update(func(x *EditModel) { *x = e })
}

// Reset restores NewEditModel defaults.
func (m *MutableModel) Reset() {
	m.Replace(NewEditModel())
}

// SetAppliedOrientation replaces the orientation. It panics if o is invalid.
func (m *MutableModel) SetAppliedOrientation(o Orientation) {
	o.mustBeValid()
	m.update(func(x *EditModel) { x.AppliedOrientation = o })
}

// ApplyOrientation composes o onto the current orientation.
func (m *MutableModel) ApplyOrientation(o Orientation) {
	m.update(func(x *EditModel) { x.AppliedOrientation = Compose(x.AppliedOrientation, o) })
}

// SetAutoEnhancementEnabled toggles the auto enhancement stage.
func (m *MutableModel) SetAutoEnhancementEnabled(enabled bool) {
	m.update(func(x *EditModel) { x.AutoEnhancementEnabled = enabled })
}

// SetBrightness sets the brightness adjustment.
func (m *MutableModel) SetBrightness(v float64) {
	m.update(func(x *EditModel) { x.Brightness = v })
}

// SetContrast sets the contrast adjustment.
func (m *MutableModel) SetContrast(v float64) {
	m.update(func(x *EditModel) { x.Contrast = v })
}

// SetSaturation sets the saturation adjustment.
func (m *MutableModel) SetSaturation(v float64) {
	m.update(func(x *EditModel) { x.Saturation = v })
}

// SetEffectIdentifier selects an effect by identifier; empty means none.
func (m *MutableModel) SetEffectIdentifier(id string) {
	m.update(func(x *EditModel) { x.EffectIdentifier = id })
}

// SetEffectIntensity clamps v to [0,1].
func (m *MutableModel) SetEffectIntensity(v float64) {
	v = min(max(v, 0), 1)
	m.update(func(x *EditModel) { x.EffectIntensity = v })
}

// SetFocusType selects the focus blur shape.
func (m *MutableModel) SetFocusType(t FocusType) {
	m.update(func(x *EditModel) { x.FocusType = t })
}

// SetFocusControlPoints sets both focus points in normalized coordinates.
func (m *MutableModel) SetFocusControlPoints(p1, p2 Point) {
	m.update(func(x *EditModel) {
		x.FocusControlPoint1 = p1
		x.FocusControlPoint2 = p2
	})
}

// SetFocusBlurRadius sets the focus blur radius.
func (m *MutableModel) SetFocusBlurRadius(r float64) {
	m.update(func(x *EditModel) { x.FocusBlurRadius = r })
}

// SetNormalizedCropRect sets the crop in normalized coordinates.
func (m *MutableModel) SetNormalizedCropRect(r Rect) {
	m.update(func(x *EditModel) { x.NormalizedCropRect = r })
}

// SetStraightenAngle sets the straighten rotation in radians.
func (m *MutableModel) SetStraightenAngle(radians float64) {
	m.update(func(x *EditModel) { x.StraightenAngle = radians })
}
