package usecase

import (
	"context"
	"sync"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/manage/domain"
	"github.com/MMN3003/tradedesk/src/validation"
)

// EditorOps binds an Editor to one entity of the catalog.
type EditorOps[R any, F any] struct {
	Entity   string
	ID       func(R) int64
	Name     func(R) string
	FormOf   func(R) F
	FormName func(F) string
	Create   func(ctx context.Context, form F) (bool, error)
	Update   func(ctx context.Context, id int64, changed F) (bool, error)
	Delete   func(ctx context.Context, id int64) (bool, error)
}

// EditorState is a snapshot of an editor for display.
type EditorState[R any] struct {
	State  domain.State `json:"state"`
	Mode   domain.Mode  `json:"mode,omitempty"`
	Record *R           `json:"record,omitempty"`
}

// Editor drives the add/edit/delete form of one entity:
// closed -> open(add|edit) -> submitting -> closed, and open(edit) -> deleting -> closed.
// A failed submit or delete leaves it open.
type Editor[R any, F any] struct {
	ops       EditorOps[R, F]
	onSuccess func()
	logger    *logger.Logger

	mu      sync.Mutex
	state   domain.State
	mode    domain.Mode
	record  *R
	initial F
}

func NewEditor[R any, F any](ops EditorOps[R, F], onSuccess func(), logg *logger.Logger) *Editor[R, F] {
	return &Editor[R, F]{ops: ops, onSuccess: onSuccess, logger: logg, state: domain.StateClosed}
}

func (e *Editor[R, F]) OpenAdd() error {
	return e.open(domain.ModeAdd, nil)
}

func (e *Editor[R, F]) OpenEdit(record R) error {
	return e.open(domain.ModeEdit, &record)
}

func (e *Editor[R, F]) open(mode domain.Mode, record *R) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy() {
		return domain.ErrBusy
	}
	var initial F
	if record != nil {
		initial = e.ops.FormOf(*record)
	}
	e.state, e.mode, e.record, e.initial = domain.StateOpen, mode, record, initial
	return nil
}

// Close discards the form. It is refused while a request is in flight.
func (e *Editor[R, F]) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy() {
		return domain.ErrBusy
	}
	e.reset()
	return nil
}

func (e *Editor[R, F]) State() EditorState[R] {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := EditorState[R]{State: e.state}
	if e.state != domain.StateClosed {
		st.Mode = e.mode
		st.Record = e.record
	}
	return st
}

// Submit validates form and sends it. In edit mode form is merged over the
// record's values and only changed fields are sent; nothing changed means no call.
func (e *Editor[R, F]) Submit(ctx context.Context, form F) error {
	e.mu.Lock()
	if err := e.ready(); err != nil {
		e.mu.Unlock()
		return err
	}
	mode, record, initial := e.mode, e.record, e.initial
	if mode == domain.ModeEdit {
		form = domain.Merge(initial, form)
	}
	e.state = domain.StateSubmitting
	e.mu.Unlock()

	err := e.submit(ctx, mode, record, initial, form)
	e.finish(err)
	return err
}

func (e *Editor[R, F]) submit(ctx context.Context, mode domain.Mode, record *R, initial, form F) error {
	if err := validation.Struct(form); err != nil {
		return err
	}

	if mode == domain.ModeEdit && record != nil {
		changed := domain.Changed(initial, form)
		if domain.IsEmpty(changed) {
			return nil
		}
		ok, err := e.ops.Update(ctx, e.ops.ID(*record), changed)
		if err != nil {
			return err
		}
		if !ok {
			return tradeapi.Rejected("Failed to update %s %s", e.ops.Entity, e.ops.Name(*record))
		}
		e.logger.Infof("updated %s %s", e.ops.Entity, e.ops.Name(*record))
		return nil
	}

	if domain.IsEmpty(form) {
		return nil
	}
	ok, err := e.ops.Create(ctx, form)
	if err != nil {
		return err
	}
	if !ok {
		return tradeapi.Rejected("Failed to add new %s %s", e.ops.Entity, e.ops.FormName(form))
	}
	e.logger.Infof("added %s %s", e.ops.Entity, e.ops.FormName(form))
	return nil
}

// Delete removes the record being edited. No validation runs.
func (e *Editor[R, F]) Delete(ctx context.Context) error {
	e.mu.Lock()
	if err := e.ready(); err != nil {
		e.mu.Unlock()
		return err
	}
	if e.mode != domain.ModeEdit || e.record == nil {
		e.mu.Unlock()
		return domain.ErrNotEditing
	}
	record := *e.record
	e.state = domain.StateDeleting
	e.mu.Unlock()

	ok, err := e.ops.Delete(ctx, e.ops.ID(record))
	if err == nil && !ok {
		err = tradeapi.Rejected("Failed to delete %s %s", e.ops.Entity, e.ops.Name(record))
	}
	if err == nil {
		e.logger.Infof("deleted %s %s", e.ops.Entity, e.ops.Name(record))
	}
	e.finish(err)
	return err
}

func (e *Editor[R, F]) finish(err error) {
	e.mu.Lock()
	if err != nil {
		e.state = domain.StateOpen
		e.mu.Unlock()
		return
	}
	e.reset()
	e.mu.Unlock()

	if e.onSuccess != nil {
		e.onSuccess()
	}
}

func (e *Editor[R, F]) ready() error {
	switch e.state {
	case domain.StateOpen:
		return nil
	case domain.StateClosed:
		return domain.ErrClosed
	default:
		return domain.ErrBusy
	}
}

func (e *Editor[R, F]) busy() bool {
	return e.state == domain.StateSubmitting || e.state == domain.StateDeleting
}

func (e *Editor[R, F]) reset() {
	var zero F
	e.state, e.mode, e.record, e.initial = domain.StateClosed, "", nil, zero
}
