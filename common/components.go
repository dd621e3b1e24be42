package common

const (
	// VERIFIER name to identify the verifier component, checks the configured targets once
	VERIFIER = "verifier"
	// RPC name to identify the rpc component, serves the spv endpoints until stopped
	RPC = "rpc"
	// SOURCE name to identify the block data source in logs
	SOURCE = "source"
)
