package repositories

import (
	"go.uber.org/fx"
)

// Module provides all gorm repository constructors
var Module = fx.Options(
	fx.Provide(NewRepoOwnerRepository),
	fx.Provide(NewRepoRepository),
	fx.Provide(NewSecretScanResultRepository),
	fx.Provide(NewAssetRepository),
	fx.Provide(NewVulnerabilityRepository),
	fx.Provide(NewCacheVersionRepository),
)
