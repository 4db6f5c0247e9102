package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/epoch-schedule/common/errs"
	"github.com/gaze-network/epoch-schedule/core/issuance"
	"github.com/gaze-network/epoch-schedule/internal/config"
	"github.com/samber/do/v2"
)

// newInjector registers the configuration and the active schedule.
// Providers are lazy: a schedule is only built by commands that need it.
func newInjector() do.Injector {
	injector := do.New()

	do.Provide(injector, func(do.Injector) (config.Config, error) {
		return config.Load(), nil
	})

	do.Provide(injector, func(i do.Injector) (*issuance.Schedule, error) {
		conf := do.MustInvoke[config.Config](i)
		if !conf.Network.IsSupported() {
			return nil, errors.Wrapf(errs.Unsupported, "%q network is not supported", conf.Network.String())
		}

		schedule, err := conf.Schedule.Build(conf.Network)
		if err != nil {
			return nil, errors.Wrap(err, "invalid schedule configuration")
		}
		return schedule, nil
	})

	return injector
}

func invokeSchedule() (*issuance.Schedule, error) {
	schedule, err := do.Invoke[*issuance.Schedule](newInjector())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return schedule, nil
}
