package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithParticipants adds initial participants to the scene.
// GameObjects without IDs will be assigned new IDs; ephemeral objects are not registered.
//
// Parameters:
//   - participants: the participants to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithParticipants(participants ...Participant) SceneBuilderOption {
	return func(s *scene) {
		for _, p := range participants {
			s.add(p)
		}
	}
}

// WithUpdateWorkers sets the number of worker goroutines used to update participants
// each frame. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of update workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithUpdateWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.updateWorkers = n
	}
}
