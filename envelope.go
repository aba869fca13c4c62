package accounts

// Void is the payload of operations that return no entity. It
// serializes as null in the envelope.
type Void = *struct{}

// Envelope is the uniform result shape every account operation
// returns. On success Messages holds a single secret (activation token
// or generated password) meant for one out-of-band delivery; on
// failure it holds the localized error messages. Each operation builds
// a fresh envelope, the value is never shared or mutated across calls.
type Envelope[T any] struct {
	Status   bool     `json:"status"`
	Messages []string `json:"messages"`
	Data     T        `json:"data"`
}

// Secret returns the out-of-band secret of a success envelope.
func (e Envelope[T]) Secret() string {
	if !e.Status || len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}

// ConsumeSecret clears Messages after the secret has been handed to
// the delivery channel. Call it before the envelope crosses the HTTP
// boundary.
func (e *Envelope[T]) ConsumeSecret() {
	e.Messages = []string{}
}

func succeed[T any](data T, secret string) Envelope[T] {
	return Envelope[T]{
		Status:   true,
		Messages: []string{secret},
		Data:     data,
	}
}

func failed[T any](messages []string) Envelope[T] {
	if messages == nil {
		messages = []string{}
	}
	var zero T
	return Envelope[T]{
		Status:   false,
		Messages: messages,
		Data:     zero,
	}
}
