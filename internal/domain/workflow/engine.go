package workflow

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rosterservice/internal/domain"
)

// Values is the growing context bag a workflow instance carries: each
// step reads its declared inputs from it and merges its outputs back in.
type Values map[string]string

type FormField struct {
	Name     string
	Title    string
	Type     string
	Required bool
}

type FormRequest struct {
	Title       string
	Description string
	SubmitLabel string
	Fields      []FormField
}

// Step is one downstream stage: it may only consume fields produced by
// stages that precede it in the same instance.
type Step struct {
	Name    string
	Inputs  []string
	Outputs []string
	Run     func(ctx context.Context, in Values) (Values, error)
}

// Definition is a fixed linear pipeline: a form-collection step followed
// by the declared downstream steps. No branching, no looping.
type Definition struct {
	Name  string
	Form  FormRequest
	Steps []Step
}

type State string

const (
	StateCreated      State = "CREATED"
	StateAwaitingForm State = "AWAITING_FORM_SUBMISSION"
	StateExecuting    State = "EXECUTING"
	StateCompleted    State = "COMPLETED"
	StateFailed       State = "FAILED"
)

type InstanceView struct {
	ID       string
	Workflow string
	State    State
	Error    string
	Form     FormRequest
}

type instance struct {
	mu       sync.Mutex
	id       string
	def      Definition
	state    State
	errMsg   string
	bag      Values
	submit   chan Values
	abandon  chan struct{}
	resolved bool
}

func (inst *instance) setState(s State) {
	inst.mu.Lock()
	inst.state = s
	inst.mu.Unlock()
}

func (inst *instance) fail(msg string) {
	inst.mu.Lock()
	inst.state = StateFailed
	inst.errMsg = msg
	inst.mu.Unlock()
}

func (inst *instance) view() InstanceView {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	v := InstanceView{
		ID:       inst.id,
		Workflow: inst.def.Name,
		State:    inst.state,
		Error:    inst.errMsg,
	}
	if inst.state == StateCreated || inst.state == StateAwaitingForm {
		v.Form = inst.def.Form
	}
	return v
}

// Engine runs workflow instances. Each instance gets its own goroutine;
// the form wait is a channel receive, so a suspended instance costs
// nothing and never blocks the others.
type Engine struct {
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	log       *zap.Logger
	defs      map[string]Definition
	mu        sync.Mutex
	instances map[string]*instance
}

func NewEngine(parent context.Context, log *zap.Logger) *Engine {
	ctx, cancel := context.WithCancel(parent)
	return &Engine{
		ctx:       ctx,
		cancel:    cancel,
		log:       log,
		defs:      map[string]Definition{},
		instances: map[string]*instance{},
	}
}

func (e *Engine) Register(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("workflow definition has no name")
	}
	if _, ok := e.defs[def.Name]; ok {
		return fmt.Errorf("workflow %q already registered", def.Name)
	}
	e.defs[def.Name] = def
	return nil
}

func (e *Engine) Start(name string, initial Values) (InstanceView, error) {
	def, ok := e.defs[name]
	if !ok {
		return InstanceView{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    fmt.Sprintf("unknown workflow %q", name),
			HTTPStatus: http.StatusNotFound,
		}
	}

	bag := Values{}
	for k, v := range initial {
		bag[k] = v
	}

	inst := &instance{
		id:      uuid.NewString(),
		def:     def,
		state:   StateCreated,
		bag:     bag,
		submit:  make(chan Values, 1),
		abandon: make(chan struct{}),
	}

	e.mu.Lock()
	e.instances[inst.id] = inst
	e.mu.Unlock()

	e.wg.Add(1)
	go e.run(inst)

	e.log.Info("workflow_started",
		zap.String("workflow", def.Name),
		zap.String("instance_id", inst.id),
	)
	return inst.view(), nil
}

func (e *Engine) run(inst *instance) {
	defer e.wg.Done()

	inst.setState(StateAwaitingForm)

	var submitted Values
	select {
	case <-e.ctx.Done():
		inst.fail("workflow engine stopped")
		return
	case <-inst.abandon:
		inst.fail("form abandoned before submission")
		e.log.Info("workflow_abandoned",
			zap.String("workflow", inst.def.Name),
			zap.String("instance_id", inst.id),
		)
		return
	case submitted = <-inst.submit:
	}

	for _, f := range inst.def.Form.Fields {
		if f.Required && submitted[f.Name] == "" {
			inst.fail(fmt.Sprintf("form field %q is required", f.Name))
			return
		}
	}
	for k, v := range submitted {
		inst.bag[k] = v
	}

	inst.setState(StateExecuting)

	for _, step := range inst.def.Steps {
		out, err := e.runStep(inst, step)
		if err != nil {
			inst.fail(err.Error())
			e.log.Warn("workflow_failed",
				zap.String("workflow", inst.def.Name),
				zap.String("instance_id", inst.id),
				zap.String("step", step.Name),
				zap.Error(err),
			)
			return
		}
		for k, v := range out {
			inst.bag[k] = v
		}
	}

	inst.setState(StateCompleted)
	e.log.Info("workflow_completed",
		zap.String("workflow", inst.def.Name),
		zap.String("instance_id", inst.id),
	)
}

func (e *Engine) runStep(inst *instance, step Step) (Values, error) {
	in := Values{}
	for _, name := range step.Inputs {
		v, ok := inst.bag[name]
		if !ok {
			return nil, fmt.Errorf("step %q missing input %q", step.Name, name)
		}
		in[name] = v
	}

	out, err := step.Run(e.ctx, in)
	if err != nil {
		return nil, err
	}

	for _, name := range step.Outputs {
		if _, ok := out[name]; !ok {
			return nil, fmt.Errorf("step %q did not produce output %q", step.Name, name)
		}
	}
	return out, nil
}

// Submit resumes an instance waiting on its form step. It fails when the
// instance has already been resumed or abandoned.
func (e *Engine) Submit(id string, vals Values) error {
	inst, err := e.get(id)
	if err != nil {
		return err
	}

	inst.mu.Lock()
	if inst.resolved || (inst.state != StateCreated && inst.state != StateAwaitingForm) {
		inst.mu.Unlock()
		return &domain.DomainError{
			Code:       domain.ErrorCodeWorkflowState,
			Message:    "workflow is not awaiting form submission",
			HTTPStatus: http.StatusConflict,
		}
	}
	inst.resolved = true
	inst.mu.Unlock()

	inst.submit <- vals
	return nil
}

func (e *Engine) Abandon(id string) error {
	inst, err := e.get(id)
	if err != nil {
		return err
	}

	inst.mu.Lock()
	if inst.resolved || (inst.state != StateCreated && inst.state != StateAwaitingForm) {
		inst.mu.Unlock()
		return &domain.DomainError{
			Code:       domain.ErrorCodeWorkflowState,
			Message:    "workflow is not awaiting form submission",
			HTTPStatus: http.StatusConflict,
		}
	}
	inst.resolved = true
	inst.mu.Unlock()

	close(inst.abandon)
	return nil
}

func (e *Engine) Get(id string) (InstanceView, error) {
	inst, err := e.get(id)
	if err != nil {
		return InstanceView{}, err
	}
	return inst.view(), nil
}

func (e *Engine) get(id string) (*instance, error) {
	e.mu.Lock()
	inst, ok := e.instances[id]
	e.mu.Unlock()
	if !ok {
		return nil, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "workflow instance not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	return inst, nil
}

func (e *Engine) Shutdown() {
	e.cancel()
	e.wg.Wait()
}
