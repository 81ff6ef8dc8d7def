package module

import (
	modkit "codemix/internal/modkit"
	mmodule "codemix/internal/modkit/module"
	ldomain "codemix/internal/services/learning/domain"
)

// DepsModules carries the modules analyze depends on
type DepsModules struct {
	Learning mmodule.Module
}

// WithLearning passes the learning module; its ports are extracted internally
func WithLearning(m mmodule.Module) modkit.Option {
	return modkit.WithPorts(DepsModules{Learning: m})
}

// learning joins the learning ports into the one surface the engine drives
type learning struct {
	ldomain.CachePort
	ldomain.CorrectionPort
	ldomain.StatsPort
	ldomain.LifecyclePort
}

func learningOf(m mmodule.Module) learning {
	return learning{
		CachePort:      mmodule.MustPortsOf[ldomain.CachePort](m),
		CorrectionPort: mmodule.MustPortsOf[ldomain.CorrectionPort](m),
		StatsPort:      mmodule.MustPortsOf[ldomain.StatsPort](m),
		LifecyclePort:  mmodule.MustPortsOf[ldomain.LifecyclePort](m),
	}
}
