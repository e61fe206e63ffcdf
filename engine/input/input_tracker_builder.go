package input

// InputTrackerOption is a functional option for configuring an InputTracker.
type InputTrackerOption func(*inputTracker)

// WithModifierSource sets where the tracker reads live Shift/Ctrl/Alt state from,
// typically the platform window.
//
// Parameters:
//   - src: the live modifier state provider
//
// Returns:
//   - InputTrackerOption: functional option to set the modifier source
func WithModifierSource(src ModifierSource) InputTrackerOption {
	return func(it *inputTracker) {
		it.modifiers = src
	}
}
