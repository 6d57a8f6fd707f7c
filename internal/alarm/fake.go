package alarm

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Fake is an in-memory Facility for tests. It never fires on its own;
// call Fire to run a callback.
type Fake struct {
	mu   sync.Mutex
	regs map[string]FakeRegistration

	// Err, when set, is returned by RegisterDaily and Cancel.
	Err error

	Registers int
	Cancels   int
}

// FakeRegistration is one registration held by a Fake.
type FakeRegistration struct {
	Trigger  time.Time
	Callback Callback
}

var _ Facility = (*Fake)(nil)

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{regs: make(map[string]FakeRegistration)}
}

func (f *Fake) RegisterDaily(_ context.Context, trigger time.Time, id string, cb Callback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Registers++
	if f.Err != nil {
		return f.Err
	}
	f.regs[id] = FakeRegistration{Trigger: trigger, Callback: cb}
	return nil
}

func (f *Fake) Cancel(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Cancels++
	if f.Err != nil {
		return f.Err
	}
	delete(f.regs, id)
	return nil
}

// Registrations returns a copy of the active registrations.
func (f *Fake) Registrations() map[string]FakeRegistration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]FakeRegistration, len(f.regs))
	for k, v := range f.regs {
		out[k] = v
	}
	return out
}

// Fire runs the callback registered under id.
func (f *Fake) Fire(ctx context.Context, id string) error {
	f.mu.Lock()
	reg, ok := f.regs[id]
	f.mu.Unlock()
	if !ok {
		return errors.New("alarm: no registration " + id)
	}
	reg.Callback(ctx, reg.Trigger)
	return nil
}
