package controllers

import "go.uber.org/fx"

var Module = fx.Options(
	fx.Provide(
		NewRepoOwnerController,
		NewRepoController,
		NewSecretScanResultController,
		NewVulnerabilityController,
		NewTaskController,
	),
)
