package redact

// Recognizer is an optional entity-recognition backend (for example a
// named-entity PII model) that performs a deeper sanitization pass than
// the pattern registry. It is requested per call via the
// recognize_entities rule name.
//
// The engine treats a nil or failing Recognizer as a degraded mode, not
// an error: the pattern rules still apply and a notice is logged once.
type Recognizer interface {
	// Redact returns the text with recognized entities replaced. An
	// error marks the pass as failed; the engine falls back to the
	// input unchanged.
	Redact(text string) (string, error)
}

// RecognizerFunc adapts a plain function to the Recognizer interface.
type RecognizerFunc func(text string) (string, error)

// Redact implements Recognizer.
func (f RecognizerFunc) Redact(text string) (string, error) {
	return f(text)
}
