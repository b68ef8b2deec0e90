package tasks

import (
	"github.com/dmdhrumilmistry/chitragupta/taskqueue"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewRunner),
	fx.Provide(func(r *Runner) taskqueue.TaskRunner { return r }),
)
