package game

import (
	"context"
	"sync"
	"time"
)

// Coordinator routes every mutation of a room through a single goroutine,
// eliminating read-modify-write races between concurrent writers. Each
// active room gets one actor with a mailbox; tasks run in submission order
// and the fan-out for a mutation is emitted before the next task starts.
type Coordinator struct {
	mu    sync.Mutex
	rooms map[string]*roomActor
}

type roomActor struct {
	mailbox chan task
}

// A task with a nil fn is the retirement sentinel: the actor drains
// everything queued before it, then exits. The mailbox is never closed,
// so a concurrent send can never panic.
type task struct {
	fn   func()
	done chan struct{}
}

func NewCoordinator() *Coordinator {
	return &Coordinator{
		rooms: make(map[string]*roomActor),
	}
}

func (a *roomActor) run() {
	for t := range a.mailbox {
		if t.fn == nil {
			close(t.done)
			return
		}
		t.fn()
		close(t.done)
	}
}

// Do posts fn to the room's mailbox and waits for it to finish. A canceled
// context returns early; a task already in the mailbox still runs, so fn
// must not capture state that dies with the caller.
//
// The enqueue happens while holding the registry lock: an actor the lookup
// returned cannot be retired before the task is in its mailbox, and the
// retirement sentinel always queues behind it.
func (c *Coordinator) Do(ctx context.Context, roomId string, fn func()) error {
	t := task{fn: fn, done: make(chan struct{})}

	for {
		c.mu.Lock()
		a, ok := c.rooms[roomId]
		if !ok {
			a = &roomActor{mailbox: make(chan task, 64)}
			c.rooms[roomId] = a
			go a.run()
		}
		select {
		case a.mailbox <- t:
			c.mu.Unlock()
			select {
			case <-t.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		default:
		}
		c.mu.Unlock()

		// Mailbox full; back off without pinning the registry.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// Release retires a room's actor once the room is finished or emptied.
// Tasks already queued drain before the goroutine exits; a Do racing the
// release either lands ahead of the sentinel or gets a fresh actor. Callers
// release only when no further mutations for the room are expected.
func (c *Coordinator) Release(roomId string) {
	c.mu.Lock()
	a, ok := c.rooms[roomId]
	if ok {
		delete(c.rooms, roomId)
	}
	c.mu.Unlock()

	if ok {
		// The actor is out of the registry, so nobody else can enqueue;
		// this send only waits for the drain.
		a.mailbox <- task{done: make(chan struct{})}
	}
}

// Close releases every active room actor.
func (c *Coordinator) Close() {
	c.mu.Lock()
	actors := make([]*roomActor, 0, len(c.rooms))
	for id, a := range c.rooms {
		actors = append(actors, a)
		delete(c.rooms, id)
	}
	c.mu.Unlock()

	for _, a := range actors {
		a.mailbox <- task{done: make(chan struct{})}
	}
}
