package config

// This doesn't belong to config, but are the vars used
// to avoid repetition in config-files
const DefaultVars = `
# SourceURL is the server the block headers and merkle branches are read from.
# tcp:// or ssl:// for an electrum server, http(s):// for an esplora API
SourceURL = "tcp://electrum.blockstream.info:50001"
`

// DefaultValues is the default configuration
const DefaultValues = `
# This is the default configuration for spvproof

# Log configuration
[Log]
  # Environment is the environment where the node is running
  Environment = "development" # "production" or "development"
  # Level is the log level
  Level = "info"
  # Outputs are the outputs where the logs will be written
  Outputs = ["stderr"]

# Source is the block data source
[Source]
  # Type is the protocol of the server: "electrum" or "esplora"
  Type = "electrum"
  # URL of the server
  URL = "{{SourceURL}}"
  # Timeout of every request
  Timeout = "30s"
  # MaxRetries is the number of retries after a transport error
  MaxRetries = 3
  # RetryInterval is the wait before the first retry, doubled on every retry
  RetryInterval = "1s"
  # CacheSize is the number of block merkle roots kept in memory, 0 disables it
  CacheSize = 128
  # TLSSkipVerify disables the certificate check of ssl:// electrum servers
  TLSSkipVerify = false

# Runner verifies the inclusion of the configured targets
[Runner]
  # Concurrency is the max number of targets checked at the same time
  Concurrency = 1
  # Trace reports the hash computed at every level of the tree
  Trace = false
  # FailFast stops on the first target that could not be checked
  FailFast = false

  [[Runner.Targets]]
    Height = 100000
    TxID = "e9a66845e05d5abc0ad04ec80f774a7e585c6e8db975962d069a522137b80c1d"

  [[Runner.Targets]]
    Height = 150000
    TxID = "25c6a1f8c0b5be2bee1e8dd3478b4ec8f54bbc3742eaf90bfb5afd46cf217ad9"

  [[Runner.Targets]]
    Height = 200000
    TxID = "9ec5296ae83c24de706254122409d1164ebc58666962a4578372d4cc7ffebc30"

  [[Runner.Targets]]
    Height = 300000
    TxID = "c33240a15d4e252ec0284e4079776843780a7ea8836bd91f8fb8217ca23eed9b"

  [[Runner.Targets]]
    Height = 500000
    TxID = "f7bd6c0eb3c032eff48f41a06539cbfbf1be29514afb99b258696fc9dbd7efbc"

[RPC]
  # Host defines the network adapter that will be used to serve the HTTP requests
  Host = "0.0.0.0"
  # Port defines the port to serve the endpoints via HTTP
  Port = 5576
  # ReadTimeout is the HTTP server read timeout
  # check net/http.server.ReadTimeout and net/http.server.ReadHeaderTimeout
  ReadTimeout = "60s"
  # WriteTimeout is the HTTP server write timeout
  # check net/http.server.WriteTimeout
  WriteTimeout = "60s"
  # MaxRequestsPerIPAndSecond defines how much requests a single IP can
  # send within a single second
  MaxRequestsPerIPAndSecond = 10
`
