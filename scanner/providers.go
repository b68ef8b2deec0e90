package scanner

import (
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewTrufflehog),
	fx.Provide(func(t *Trufflehog) shared.SecretScanner { return t }),
)
