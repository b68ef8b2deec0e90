package services

import (
	"go.uber.org/fx"

	"github.com/dmdhrumilmistry/chitragupta/shared"
)

// ServiceModule provides all service constructors
var ServiceModule = fx.Options(
	fx.Provide(NewCacheVersionService),
	fx.Provide(NewSecretScanService),
	fx.Provide(func(s *SecretScanService) shared.FindingIngester { return s }),
)
