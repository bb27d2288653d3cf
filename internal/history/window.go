// Package history keeps the bounded conversation memory shared by question
// generation and answer assessment.
package history

import (
	"sync"

	"github.com/abhisek/interviewbot/internal/llm"
)

// DefaultSize is the number of exchanges an interview remembers.
const DefaultSize = 5

// Exchange is one directive sent to the model and the reply it produced.
type Exchange struct {
	Human string
	AI    string
}

// Window is a FIFO of the most recent exchanges. Appending to a full window
// evicts the oldest exchange. The zero value is not usable; call New.
type Window struct {
	mu        sync.Mutex
	size      int
	exchanges []Exchange
}

// New returns an empty window holding at most size exchanges. A size below
// one is treated as one.
func New(size int) *Window {
	size = max(size, 1)
	return &Window{size: size, exchanges: make([]Exchange, 0, size)}
}

// Append records an exchange, evicting the oldest one if the window is full.
func (w *Window) Append(ex Exchange) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.exchanges) == w.size {
		copy(w.exchanges, w.exchanges[1:])
		w.exchanges = w.exchanges[:w.size-1]
	}
	w.exchanges = append(w.exchanges, ex)
}

// Exchanges returns a copy of the remembered exchanges, oldest first.
func (w *Window) Exchanges() []Exchange {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Exchange, len(w.exchanges))
	copy(out, w.exchanges)
	return out
}

// Messages flattens the window into alternating user/assistant messages,
// ready to precede the next directive in a request.
func (w *Window) Messages() []llm.Message {
	w.mu.Lock()
	defer w.mu.Unlock()

	msgs := make([]llm.Message, 0, 2*len(w.exchanges))
	for _, ex := range w.exchanges {
		msgs = append(msgs,
			llm.Message{Role: llm.RoleUser, Content: ex.Human},
			llm.Message{Role: llm.RoleAssistant, Content: ex.AI},
		)
	}
	return msgs
}
