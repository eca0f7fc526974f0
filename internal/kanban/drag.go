package kanban

import (
	"errors"
	"sync"
	"time"

	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/utils"
)

var (
	ErrDragFinished = errors.New("drag gesture already finished")
	ErrDragNotFound = errors.New("drag gesture not found")
	ErrDragExpired  = errors.New("drag gesture expired")
)

// Drag is one drag-and-drop gesture. It binds a single task until it is
// dropped or cancelled; after either it can no longer move anything.
type Drag struct {
	ID        string
	ProjectID string
	TaskID    string
	OwnerID   string
	ExpiresAt time.Time

	done bool
}

// StartDrag begins a gesture on a task of this board.
func (b *Board) StartDrag(taskID string) (*Drag, error) {
	if b.taskIndex(taskID) < 0 {
		return nil, ErrTaskNotFound
	}
	return &Drag{ProjectID: b.ProjectID, TaskID: taskID}, nil
}

// Drop moves the dragged task to columnID and ends the gesture. A drop on an
// unknown column ends the gesture too, without moving the task.
func (d *Drag) Drop(b *Board, columnID string) (models.Task, error) {
	if d.done {
		return models.Task{}, ErrDragFinished
	}
	d.done = true
	if b.ProjectID != d.ProjectID {
		return models.Task{}, ErrTaskNotFound
	}
	return b.MoveTask(d.TaskID, columnID)
}

// Cancel ends the gesture without a move.
func (d *Drag) Cancel() {
	d.done = true
}

func (d *Drag) Done() bool {
	return d.done
}

// Registry keeps gestures that span two requests: one that starts the drag
// and one that drops or cancels it.
type Registry struct {
	mu    sync.Mutex
	ttl   time.Duration
	drags map[string]*Drag
	now   func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:   ttl,
		drags: make(map[string]*Drag),
		now:   time.Now,
	}
}

// Put stores d under a fresh id and stamps its expiry.
func (r *Registry) Put(d *Drag) *Drag {
	r.mu.Lock()
	defer r.mu.Unlock()

	d.ID = utils.NewID("drag")
	d.ExpiresAt = r.now().Add(r.ttl)
	r.drags[d.ID] = d
	return d
}

// Take removes and returns the gesture. Each gesture can be taken once, so a
// repeated drop finds nothing.
func (r *Registry) Take(id string) (*Drag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drags[id]
	if !ok {
		return nil, ErrDragNotFound
	}
	delete(r.drags, id)
	if r.now().After(d.ExpiresAt) {
		d.Cancel()
		return nil, ErrDragExpired
	}
	return d, nil
}

// Peek returns the gesture without removing it.
func (r *Registry) Peek(id string) (*Drag, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drags[id]
	return d, ok
}

// Cancel discards the gesture.
func (r *Registry) Cancel(id string) error {
	d, err := r.Take(id)
	if errors.Is(err, ErrDragExpired) {
		return nil
	}
	if err != nil {
		return err
	}
	d.Cancel()
	return nil
}

// Prune drops expired gestures and reports how many were removed.
func (r *Registry) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, d := range r.drags {
		if now.After(d.ExpiresAt) {
			d.Cancel()
			delete(r.drags, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drags)
}
