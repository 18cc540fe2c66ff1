package main

// DriverConfig holds the command-line driver's settings, populated from
// flags the way core.BuildConfig is populated in the teacher's own CLI
// glue — a plain struct with a constructor supplying defaults, not a
// config file.
type DriverConfig struct {
	InputPath  string
	OutputPath string // empty means console mode, matching the original's #ifdef CONSOLE
	Compress   bool   // LZ4-compress OutputPath instead of writing plain text
	Eval       bool   // also print the EVAL query-only-time= line
	Verbose    bool
	MetricsOut string // path to dump prometheus text exposition after the run; empty disables it
}

// DefaultDriverConfig returns a DriverConfig with the original driver's
// implicit defaults: console output, no compression, no eval timing.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		Compress: false,
		Eval:     false,
		Verbose:  false,
	}
}
