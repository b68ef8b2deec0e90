package githubint

import (
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewClient),
	fx.Provide(func(c *Client) shared.ForgeClient { return c }),
)
