package runner

const defaultConcurrency = 1

// Target is a transaction expected to be included in the block at Height
type Target struct {
	Height uint64 `mapstructure:"Height"`
	// TxID in display (big endian) hex, as shown by block explorers
	TxID string `mapstructure:"TxID"`
}

// Config is the configuration of the verification runner
type Config struct {
	// Targets to verify, in report order
	Targets []Target `mapstructure:"Targets"`
	// Concurrency is the max number of targets verified at the same time
	Concurrency int `mapstructure:"Concurrency"`
	// Trace logs and reports the intermediate hash of every tree level
	Trace bool `mapstructure:"Trace"`
	// FailFast aborts the run on the first target that could not be checked
	FailFast bool `mapstructure:"FailFast"`
}

// GetConcurrency returns the concurrency, using a default if not set
func (c *Config) GetConcurrency() int {
	if c.Concurrency <= 0 {
		return defaultConcurrency
	}
	return c.Concurrency
}

// DefaultTargets returns a few well known mainnet transactions
func DefaultTargets() []Target {
	return []Target{
		{Height: 100000, TxID: "e9a66845e05d5abc0ad04ec80f774a7e585c6e8db975962d069a522137b80c1d"},
		{Height: 150000, TxID: "25c6a1f8c0b5be2bee1e8dd3478b4ec8f54bbc3742eaf90bfb5afd46cf217ad9"},
		{Height: 200000, TxID: "9ec5296ae83c24de706254122409d1164ebc58666962a4578372d4cc7ffebc30"},
		{Height: 300000, TxID: "c33240a15d4e252ec0284e4079776843780a7ea8836bd91f8fb8217ca23eed9b"},
		{Height: 500000, TxID: "f7bd6c0eb3c032eff48f41a06539cbfbf1be29514afb99b258696fc9dbd7efbc"},
	}
}
