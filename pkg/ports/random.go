package ports

// DrawSource supplies the random input of a create action.
// Implementations must return true and false with equal probability,
// independently across calls.
type DrawSource interface {
	Draw() bool
}
