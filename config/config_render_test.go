package config

import (
	"fmt"
	"testing"

	"github.com/spvproof/spvproof/blocksource"
	"github.com/spvproof/spvproof/runner"
	"github.com/stretchr/testify/require"
)

const (
	esploraFile = `
SourceURL = "https://blockstream.info/api"

[Source]
  Type = "esplora"
`
	singleTargetFile = `
[Runner]
  Concurrency = 2
  [[Runner.Targets]]
    Height = 100000
    TxID = "e9a66845e05d5abc0ad04ec80f774a7e585c6e8db975962d069a522137b80c1d"
`
)

type renderTestCase struct {
	name          string
	contents      []string
	envVars       map[string]string
	expectedError error
	// checks the decoded config when rendering succeeds
	check func(t *testing.T, cfg *Config)
}

func TestConfigRenderSourceURL(t *testing.T) {
	executeRenderCases(t, []renderTestCase{
		{
			name:     "defaults resolve SourceURL",
			contents: []string{DefaultVars, DefaultValues},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.Equal(t, "tcp://electrum.blockstream.info:50001", cfg.Source.URL)
				require.Equal(t, blocksource.TypeElectrum, cfg.Source.Type)
			},
		},
		{
			name:     "file overrides the var",
			contents: []string{DefaultVars, DefaultValues, esploraFile},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.Equal(t, "https://blockstream.info/api", cfg.Source.URL)
				require.Equal(t, blocksource.TypeEsplora, cfg.Source.Type)
				require.NoError(t, cfg.Source.Validate())
			},
		},
		{
			name:     "env var wins over every file",
			contents: []string{DefaultVars, DefaultValues, esploraFile},
			envVars:  map[string]string{"SPVPROOF_SourceURL": "https://mempool.space/api"},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.Equal(t, "https://mempool.space/api", cfg.Source.URL)
			},
		},
		{
			name: "url composed from a host var",
			contents: []string{DefaultVars, DefaultValues,
				"ElectrumHost = \"electrum.example.com\"\nSourceURL = \"ssl://{{ElectrumHost}}:50002\"\n"},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.Equal(t, "ssl://electrum.example.com:50002", cfg.Source.URL)
			},
		},
		{
			name:          "unknown var",
			contents:      []string{DefaultVars, DefaultValues, "[Source]\n  URL = \"{{ElectrumURL}}\"\n"},
			expectedError: ErrMissingVars,
		},
	})
}

func TestConfigRenderChainedVars(t *testing.T) {
	cycle := "SourceURL = \"{{Source.URL}}\"\n"
	executeRenderCases(t, []renderTestCase{
		{
			name:          "SourceURL and Source.URL refer to each other",
			contents:      []string{DefaultVars, DefaultValues, cycle},
			expectedError: ErrCycleVars,
		},
		{
			name:     "env var breaks the cycle",
			contents: []string{DefaultVars, DefaultValues, cycle},
			envVars:  map[string]string{"SPVPROOF_SourceURL": "tcp://localhost:50001"},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.Equal(t, "tcp://localhost:50001", cfg.Source.URL)
			},
		},
	})
}

func TestConfigRenderTypedVars(t *testing.T) {
	retries := "Retries = 5\nSkipVerify = true\n[Source]\n  MaxRetries = {{Retries}}\n  TLSSkipVerify = {{SkipVerify}}\n"
	executeRenderCases(t, []renderTestCase{
		{
			name:     "unquoted vars keep their type",
			contents: []string{DefaultVars, DefaultValues, retries},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.Equal(t, 5, cfg.Source.MaxRetries)
				require.True(t, cfg.Source.TLSSkipVerify)
			},
		},
		{
			name:     "env var replaces a typed var",
			contents: []string{DefaultVars, DefaultValues, retries},
			envVars:  map[string]string{"SPVPROOF_Retries": "0"},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.Equal(t, 0, cfg.Source.MaxRetries)
			},
		},
	})
}

func TestConfigRenderTargets(t *testing.T) {
	executeRenderCases(t, []renderTestCase{
		{
			name:     "default targets survive the render",
			contents: []string{DefaultVars, DefaultValues},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.Equal(t, runner.DefaultTargets(), cfg.Runner.Targets)
			},
		},
		{
			name:     "a file replaces the whole list",
			contents: []string{DefaultVars, DefaultValues, singleTargetFile},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.Equal(t, []runner.Target{{
					Height: 100000,
					TxID:   "e9a66845e05d5abc0ad04ec80f774a7e585c6e8db975962d069a522137b80c1d",
				}}, cfg.Runner.Targets)
				require.Equal(t, 2, cfg.Runner.Concurrency)
				// untouched sections keep the defaults
				require.Equal(t, "tcp://electrum.blockstream.info:50001", cfg.Source.URL)
			},
		},
	})

	sut, _ := newTestConfigRender(DefaultVars, DefaultValues, singleTargetFile)
	merged, err := sut.Merge()
	require.NoError(t, err)
	require.Contains(t, merged, "{{SourceURL}}")
	require.NotContains(t, merged, "150000")
}

func TestConfigRenderEnvOverridesAfterRender(t *testing.T) {
	// SPVPROOF_SOURCE_URL is not a var: rendering keeps the file value and
	// the env var is applied when the rendered config is decoded
	t.Setenv("SPVPROOF_SOURCE_URL", "tcp://from-env:50001")
	sut, _ := newTestConfigRender(DefaultVars, DefaultValues, esploraFile)
	rendered, err := sut.Render()
	require.NoError(t, err)
	require.Contains(t, rendered, "https://blockstream.info/api")
	require.NotContains(t, rendered, "from-env")

	cfg, err := LoadFileFromString(rendered, ConfigType)
	require.NoError(t, err)
	require.Equal(t, "tcp://from-env:50001", cfg.Source.URL)
}

func TestConfigRenderConvertFileToToml(t *testing.T) {
	jsonFile := `{
  "SourceURL": "https://blockstream.info/api",
  "Source": {
    "Type": "esplora",
    "CacheSize": 16
  }
}
`
	data, err := convertFileToToml(jsonFile, "json")
	require.NoError(t, err)
	require.Equal(t, "SourceURL = \"https://blockstream.info/api\"\n\n[Source]\n  CacheSize = 16.0\n  Type = \"esplora\"\n", data)

	_, err = convertFileToToml("a: 1", "yaml")
	require.ErrorIs(t, err, ErrUnsupportedConfigFileType)

	data, err = convertFileToToml("SourceURL = \"tcp://localhost:50001\"\n", "conf")
	require.NoError(t, err)
	require.Equal(t, "SourceURL = \"tcp://localhost:50001\"\n", data)
}

func TestConfigRenderGetVars(t *testing.T) {
	sut, _ := newTestConfigRender()
	require.Equal(t, []string{"SourceURL"}, sut.GetVars(DefaultValues))
	require.Equal(t, []string{"Retries", "Source.URL"}, sut.GetVars("X = {{Retries}}\nY = \"{{Source.URL}}\"\n"))
	require.Empty(t, sut.GetVars(DefaultVars))
}

type lookupEnvMock struct {
	env map[string]string
}

func (m *lookupEnvMock) LookupEnv(key string) (string, bool) {
	val, exists := m.env[key]
	return val, exists
}

func newTestConfigRender(contents ...string) (*ConfigRender, *lookupEnvMock) {
	envMock := &lookupEnvMock{env: map[string]string{}}
	filesData := make([]FileData, len(contents))
	for i, content := range contents {
		filesData[i] = FileData{Name: fmt.Sprintf("file%d", i), Content: content}
	}
	sut := NewConfigRender(filesData, EnvVarPrefix)
	sut.LookupEnvFunc = envMock.LookupEnv
	return sut, envMock
}

func executeRenderCases(t *testing.T, tests []renderTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sut, envMock := newTestConfigRender(tt.contents...)
			if tt.envVars != nil {
				envMock.env = tt.envVars
			}
			rendered, err := sut.Render()
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			require.Empty(t, sut.GetVars(rendered))

			cfg, err := LoadFileFromString(rendered, ConfigType)
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
