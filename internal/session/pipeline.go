package session

import (
	"context"

	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/generics"
	"github.com/typegraph/typegraph/internal/names"
)

// Context carries state between build stages.
type Context struct {
	Ctx     context.Context
	Decls   []decl.Declaration
	Table   *names.Table
	Session *Session
	Report  *Report
	Errors  []error
}

// Processor is one build stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of build stages.
type Pipeline struct {
	processors []Processor
}

func NewPipeline(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages keep running after errors so one
// bad declaration does not hide diagnostics from other stages.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}

// RegisterStage bulk-loads declarations into a fresh name table and
// opens the session over that snapshot.
type RegisterStage struct{}

func (RegisterStage) Process(ctx *Context) *Context {
	table := names.NewTable()
	for _, d := range ctx.Decls {
		table.Add(d)
	}
	ctx.Table = table
	ctx.Session = New(table)
	return ctx
}

// ValidateStage runs declaration-site generics checks: variance
// positions and application arity inside member signatures.
type ValidateStage struct{}

func (ValidateStage) Process(ctx *Context) *Context {
	if ctx.Table == nil {
		return ctx
	}
	validator := generics.NewValidator(ctx.Table)
	for _, d := range ctx.Decls {
		if err := validator.CheckDeclaration(d); err != nil {
			ctx.Errors = append(ctx.Errors, err)
		}
	}
	return ctx
}

// ResolveStage resolves every declared type and attaches the report.
type ResolveStage struct{}

func (ResolveStage) Process(ctx *Context) *Context {
	if ctx.Session == nil {
		return ctx
	}
	runCtx := ctx.Ctx
	if runCtx == nil {
		runCtx = context.Background()
	}
	report, err := ctx.Session.ResolveAll(runCtx)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Report = report
	return ctx
}
