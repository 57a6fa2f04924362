package prune

// Prompter asks the operator a yes/no question and blocks until answered.
// There is no timeout; the prompt waits indefinitely.
type Prompter interface {
	// Confirm prints the question and reads one answer line. Only a
	// case-insensitive "yes" confirms; anything else, including end of
	// input, declines.
	Confirm(question string) (bool, error)
}
