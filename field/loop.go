package field

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrLoopRunning is returned by Start when the loop is already running.
var ErrLoopRunning = errors.New("field: loop already running")

// FrameSource blocks until the next frame is due. *rate.Limiter satisfies it.
type FrameSource interface {
	Wait(ctx context.Context) error
}

// Unthrottled is a FrameSource that never waits.
type Unthrottled struct{}

func (Unthrottled) Wait(ctx context.Context) error { return ctx.Err() }

// InputSource feeds pointer state into the field at the start of a frame.
type InputSource interface {
	Poll(f *Field)
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithInput polls src at the start of every frame.
func WithInput(src InputSource) LoopOption {
	return func(l *Loop) { l.input = src }
}

// WithLoopLogger sets the loop logger.
func WithLoopLogger(log *zap.Logger) LoopOption {
	return func(l *Loop) { l.log = log }
}

// Loop drives a field frame by frame. All field access happens on the loop
// goroutine; external input is handed over through Post.
type Loop struct {
	field  *Field
	frames FrameSource
	input  InputSource
	log    *zap.Logger
	hooks  []func(*Field, Frame)
	events chan func(*Field)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// NewLoop returns a stopped loop for f.
func NewLoop(f *Field, frames FrameSource, opts ...LoopOption) *Loop {
	l := &Loop{
		field:  f,
		frames: frames,
		log:    zap.NewNop(),
		events: make(chan func(*Field), 64),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OnFrame registers fn to run after every frame on the loop goroutine.
func (l *Loop) OnFrame(fn func(*Field, Frame)) {
	l.hooks = append(l.hooks, fn)
}

// Post queues fn to run against the field before the next frame. It blocks
// while the queue is full and gives up when ctx is done. Only the loop
// goroutine drains the queue, so OnFrame hooks and posted events must use
// TryPost instead.
func (l *Loop) Post(ctx context.Context, fn func(*Field)) error {
	select {
	case l.events <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryPost queues fn without blocking. It reports false when the queue is
// full and fn was dropped.
func (l *Loop) TryPost(fn func(*Field)) bool {
	select {
	case l.events <- fn:
		return true
	default:
		return false
	}
}

// Start runs the loop on a new goroutine until ctx is done or Stop is called.
// An uninitialized field never starts and its loop reports done immediately.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done != nil {
		select {
		case <-l.done:
		default:
			return ErrLoopRunning
		}
	}

	l.done = make(chan struct{})
	l.err = nil
	if l.field == nil {
		close(l.done)
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	done := l.done
	go func() {
		defer close(done)
		err := l.run(ctx, -1)
		l.mu.Lock()
		l.err = err
		l.mu.Unlock()
	}()
	return nil
}

// Stop cancels a running loop and waits for it to exit.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Done is closed once the loop has exited. It is nil before Start.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Err reports why the loop exited. A loop stopped through Stop or its
// context reports nil.
func (l *Loop) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// RunFrames runs n frames on the calling goroutine.
func (l *Loop) RunFrames(ctx context.Context, n int) error {
	if l.field == nil || n <= 0 {
		return nil
	}
	return l.run(ctx, n)
}

// run steps the field until ctx is done, or n frames when n >= 0.
func (l *Loop) run(ctx context.Context, n int) error {
	w, h := l.field.Bounds()
	l.log.Info("frame loop started",
		zap.Stringer("generation", l.field.Generation()),
		zap.Float64("width", w),
		zap.Float64("height", h),
		zap.Int("frames", n),
	)

	count := 0
	for n < 0 || count < n {
		if err := l.frames.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			return err
		}
		l.drain()
		if l.input != nil {
			l.input.Poll(l.field)
		}
		fr := l.field.Step()
		for _, hook := range l.hooks {
			hook(l.field, fr)
		}
		count++
	}

	l.log.Info("frame loop stopped", zap.Int("frames", count))
	return nil
}

func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.events:
			fn(l.field)
		default:
			return
		}
	}
}
