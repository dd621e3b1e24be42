package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/spvproof/spvproof/config"
	"github.com/urfave/cli/v2"
)

func configCmd(*cli.Context) error {
	// String buffer to concatenate all the default config vars
	defaultConfig := strings.Builder{}
	defaultConfig.WriteString(config.DefaultVars)
	defaultConfig.WriteString(config.DefaultValues)

	_, err := os.Stdout.WriteString(defaultConfig.String())
	return err
}

func configSchemaCmd(*cli.Context) error {
	return writeConfigSchema(os.Stdout)
}

func writeConfigSchema(w io.Writer) error {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		// config files may have only the fields to override
		RequiredFromJSONSchemaTags: true,
	}
	schema := r.Reflect(&config.Config{})
	schema.Title = "spvproof config file"
	schema.Description = "Configuration of spvproof, the fields not set take the values of `spvproof config`"
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config schema. Err: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
