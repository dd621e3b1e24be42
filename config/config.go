package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jRPC "github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/spvproof/spvproof/blocksource"
	"github.com/spvproof/spvproof/log"
	"github.com/spvproof/spvproof/runner"
	"github.com/urfave/cli/v2"
)

const (
	// FlagCfg is the flag for cfg.
	FlagCfg = "cfg"
	// FlagComponents is the flag for components.
	FlagComponents = "components"
	// FlagSaveConfigPath is the flag to save the final configuration file
	FlagSaveConfigPath = "save-config-path"
	// FlagHeight is the flag for the block height of the check command
	FlagHeight = "height"
	// FlagTxID is the flag for the transaction id of the check command
	FlagTxID = "txid"
	// FlagRPCURL is the flag for the url of a remote spvproof node
	FlagRPCURL = "rpc-url"
	// FlagTrace is the flag to report the hash of every tree level
	FlagTrace = "trace"

	EnvVarPrefix       = "SPVPROOF"
	ConfigType         = "toml"
	SaveConfigFileName = "spvproof_config.toml"

	DefaultCreationFilePermissions = os.FileMode(0600)
)

/*
Config represents the configuration of spvproof
The file is [TOML format]. Every field has a default (see DefaultValues)
so a config file only needs the fields to override, i.e.:

	[Source]
	  Type = "esplora"
	  URL = "https://blockstream.info/api"

[TOML format]: https://en.wikipedia.org/wiki/TOML
*/
type Config struct {
	// Configure Log level for all the services, allow also to store the logs in a file
	Log log.Config
	// Source is the server blocks and merkle branches are read from
	Source blocksource.Config
	// Runner holds the transactions to verify
	Runner runner.Config
	// RPC is the config for the RPC server
	RPC jRPC.Config
}

// Load loads the configuration. Without config files the defaults are used
func Load(ctx *cli.Context) (*Config, error) {
	configFilePath := ctx.StringSlice(FlagCfg)
	filesData, err := readFiles(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading files:  Err:%w", err)
	}
	saveConfigPath := ctx.String(FlagSaveConfigPath)
	return LoadFile(filesData, saveConfigPath)
}

func readFiles(files []string) ([]FileData, error) {
	result := make([]FileData, 0, len(files))
	for _, file := range files {
		fileContent, err := readFileToString(file)
		if err != nil {
			return nil, fmt.Errorf("error reading file content: %s. Err:%w", file, err)
		}
		fileExtension := getFileExtension(file)
		if fileExtension != ConfigType {
			fileContent, err = convertFileToToml(fileContent, fileExtension)
			if err != nil {
				return nil, fmt.Errorf("error converting file: %s from %s to TOML. Err:%w", file, fileExtension, err)
			}
		}
		result = append(result, FileData{Name: file, Content: fileContent})
	}
	return result, nil
}

func getFileExtension(fileName string) string {
	return fileName[strings.LastIndex(fileName, ".")+1:]
}

// LoadFile merges the defaults with files, resolves the vars and decodes the result.
// If saveConfigPath is set the rendered configuration is written there
func LoadFile(files []FileData, saveConfigPath string) (*Config, error) {
	fileData := make([]FileData, 0, len(files)+2) //nolint:mnd
	fileData = append(fileData, FileData{Name: "default_vars", Content: DefaultVars})
	fileData = append(fileData, FileData{Name: "default_values", Content: DefaultValues})
	fileData = append(fileData, files...)

	merger := NewConfigRender(fileData, EnvVarPrefix)

	renderedCfg, err := merger.Render()
	if err != nil {
		return nil, err
	}
	if saveConfigPath != "" {
		fullPath := filepath.Join(saveConfigPath, SaveConfigFileName)
		err = os.WriteFile(fullPath, []byte(renderedCfg), DefaultCreationFilePermissions)
		if err != nil {
			err = fmt.Errorf("error writing config file: %s. Err: %w", fullPath, err)
			log.Error(err)
			return nil, err
		}
	}
	return LoadFileFromString(renderedCfg, ConfigType)
}

// LoadFileFromString decodes an already rendered configuration
func LoadFileFromString(configFileData string, configType string) (*Config, error) {
	expectedKeys, err := defaultKeys()
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	err = loadString(cfg, configFileData, configType, true, EnvVarPrefix, expectedKeys)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the default configuration
func Default() (*Config, error) {
	return LoadFile(nil, "")
}

// Dump renders cfg as TOML
func Dump(cfg Config) (string, error) {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func defaultKeys() ([]string, error) {
	v := viper.New()
	v.SetConfigType(ConfigType)
	// vars are not config fields, only their uses are
	defaults := strings.ReplaceAll(DefaultValues, "{{SourceURL}}", "")
	if err := v.ReadConfig(bytes.NewBufferString(defaults)); err != nil {
		return nil, fmt.Errorf("error reading default values. Err: %w", err)
	}
	return v.AllKeys(), nil
}

func loadString(cfg *Config, configData string, configType string,
	allowEnvVars bool, envPrefix string, expectedKeys []string) error {
	v := viper.New()
	v.SetConfigType(configType)
	if allowEnvVars {
		replacer := strings.NewReplacer(".", "_")
		v.SetEnvKeyReplacer(replacer)
		v.SetEnvPrefix(envPrefix)
		v.AutomaticEnv()
	}
	err := v.ReadConfig(bytes.NewBufferString(configData))
	if err != nil {
		return err
	}
	decodeHooks := []viper.DecoderConfigOption{
		// this allows arrays to be decoded from env var separated by ",", example: MY_VAR="value1,value2,value3"
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(), mapstructure.StringToSliceHookFunc(","))),
	}

	err = v.Unmarshal(&cfg, decodeHooks...)
	if err != nil {
		return err
	}

	if expectedKeys != nil {
		for _, field := range getUnexpectedFields(v.AllKeys(), expectedKeys) {
			log.Warnf("field %s in config file is unknown, it will be ignored", field)
		}
	}
	return nil
}

// getUnexpectedFields returns the keys of the file that are not config fields.
// The vars used to render the file are top level keys and are skipped
func getUnexpectedFields(keysOnFile, expectedConfigKeys []string) []string {
	wrongFields := make([]string, 0)
	for _, key := range keysOnFile {
		if !strings.Contains(key, ".") {
			continue
		}
		if !contains(expectedConfigKeys, key) {
			wrongFields = append(wrongFields, key)
		}
	}
	return wrongFields
}
