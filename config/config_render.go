package config

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/spvproof/spvproof/log"
	"github.com/valyala/fasttemplate"
)

const (
	startTag = "{{"
	endTag   = "}}"
	// unquoted vars are turned into strings with this suffix so the file
	// is valid TOML while rendering, i.e. A={{B}} -> A="{{B:int}}"
	typeMark = ":int"
)

var (
	ErrCycleVars                 = fmt.Errorf("cycle vars")
	ErrMissingVars               = fmt.Errorf("missing vars")
	ErrUnsupportedConfigFileType = fmt.Errorf("unsupported config file type")

	unquotedVarRe = regexp.MustCompile(`=\s*\{\{([^}:]+)\}\}`)
	quotedVarRe   = regexp.MustCompile(`=\s*\"\{\{([^}:]+` + typeMark + `)\}\}\"`)
	typedVarRe    = regexp.MustCompile(`\{\{([^}:]+` + typeMark + `)\}\}`)
)

// FileData is a named chunk of TOML configuration
type FileData struct {
	Name    string
	Content string
}

// ConfigRender merges TOML files and resolves the {{Var}} references between them.
// A var can be any key of the merged files (i.e. {{Source.URL}}) or an
// environment variable <EnvironmentPrefix>_<Var> that takes precedence
type ConfigRender struct {
	// sorted by priority, the last one wins
	FilesData []FileData
	// Function to resolve environment variables typically: os.LookupEnv
	LookupEnvFunc     func(key string) (string, bool)
	EnvironmentPrefix string
}

func NewConfigRender(filesData []FileData, environmentPrefix string) *ConfigRender {
	return &ConfigRender{
		FilesData:         filesData,
		LookupEnvFunc:     os.LookupEnv,
		EnvironmentPrefix: environmentPrefix,
	}
}

// Render merges all files and resolves all the vars inside
func (c *ConfigRender) Render() (string, error) {
	mergedData, err := c.Merge()
	if err != nil {
		return "", fmt.Errorf("fail to merge files. Err: %w", err)
	}
	return c.ResolveVars(mergedData)
}

// Merge returns the TOML result of loading every file on top of the previous ones
func (c *ConfigRender) Merge() (string, error) {
	k := koanf.New(".")
	for _, data := range c.FilesData {
		dataToml := markUnquotedVars(data.Content)
		err := k.Load(rawbytes.Provider([]byte(dataToml)), toml.Parser())
		if err != nil {
			log.Errorf("error loading file %s. Err:%v.FileData: %v", data.Name, err, dataToml)
			return "", fmt.Errorf("fail to load converted template %s to toml. Err: %w", data.Name, err)
		}
	}
	marshaled, err := k.Marshal(toml.Parser())
	if err != nil {
		return "", fmt.Errorf("fail to marshal to toml. Err: %w", err)
	}
	return unquoteMarkedVars(string(marshaled)), nil
}

// ResolveVars replaces every {{Var}} of fullConfigData by its value
func (c *ConfigRender) ResolveVars(fullConfigData string) (string, error) {
	// values that are vars keep the "{{tag}}" form, nothing is resolved yet
	tpl, values, err := c.readTemplate(fullConfigData)
	if err != nil {
		return "", err
	}
	rendered := removeTypeMarks(c.execute(tpl, values))
	// a var that is neither a key nor an env var can't ever be resolved
	if missing := c.missingVars(tpl, values); len(missing) > 0 {
		return rendered, fmt.Errorf("missing vars: %v. Err: %w", missing, ErrMissingVars)
	}
	// vars whose value is another var need more passes. If a pass doesn't
	// reduce the pending vars they depend on each other: A={{B}} B={{A}}
	finalConfigData, err := c.resolveChained(rendered)
	if err != nil {
		return fullConfigData, err
	}
	return finalConfigData, nil
}

func (c *ConfigRender) resolveChained(partialResolvedConfigData string) (string, error) {
	data := unquoteMarkedVars(partialResolvedConfigData)
	pending := c.GetVars(data)
	if len(pending) == 0 {
		return partialResolvedConfigData, nil
	}
	log.Debugf("resolving chained vars: %v", pending)
	for len(pending) > 0 {
		previous := len(pending)
		tpl, values, err := c.readTemplate(data)
		if err != nil {
			log.Errorf("fail to read template resolving chained vars. Err: %v. Data:%s", err, data)
			return "", fmt.Errorf("fails to read template resolving chained vars. Err: %w", err)
		}
		data = removeTypeMarks(unquoteMarkedVars(c.execute(tpl, values)))
		pending = c.GetVars(data)
		if len(pending) == previous {
			return partialResolvedConfigData, fmt.Errorf("not resolved cycle vars: %v. Err: %w", pending, ErrCycleVars)
		}
	}
	return data, nil
}

// readTemplate returns data as a template and the values defined in it.
// The vars in data must be unquoted: A={{B}} not A="{{B}}"
func (c *ConfigRender) readTemplate(data string) (*fasttemplate.Template, map[string]interface{}, error) {
	tpl, err := fasttemplate.NewTemplate(data, startTag, endTag)
	if err != nil {
		return nil, nil, fmt.Errorf("fail to load template. Err:%w", err)
	}
	out := markUnquotedVars(data)
	k := koanf.New(".")
	err = k.Load(rawbytes.Provider([]byte(out)), toml.Parser())
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing template values."+
			" Content: %s.  Err: %w", out, err)
	}
	return tpl, k.All(), nil
}

// execute fills the vars with the environment or values. Unknown vars keep the {{tag}} form
func (c *ConfigRender) execute(tpl *fasttemplate.Template, values map[string]interface{}) string {
	return tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if v, ok := c.lookupVar(tag, values); ok {
			return w.Write([]byte(v))
		}
		return w.Write([]byte(startTag + tag + endTag))
	})
}

// missingVars returns the vars of tpl that have no value
func (c *ConfigRender) missingVars(tpl *fasttemplate.Template, values map[string]interface{}) []string {
	var missing []string
	tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if _, ok := c.lookupVar(tag, values); !ok && !contains(missing, tag) {
			missing = append(missing, tag)
		}
		return 0, nil
	})
	return missing
}

func (c *ConfigRender) lookupVar(tag string, values map[string]interface{}) (string, bool) {
	envKey := c.EnvironmentPrefix + "_" + strings.ReplaceAll(tag, ".", "_")
	if v, ok := c.LookupEnvFunc(envKey); ok {
		return v, true
	}
	if v, ok := values[tag]; ok {
		return fmt.Sprintf("%v", v), true
	}
	return "", false
}

// GetVars returns the vars in configData
func (c *ConfigRender) GetVars(configData string) []string {
	tpl, err := fasttemplate.NewTemplate(configData, startTag, endTag)
	if err != nil {
		return []string{}
	}
	var vars []string
	tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		vars = append(vars, tag)
		return 0, nil
	})
	return vars
}

func markUnquotedVars(data string) string {
	return unquotedVarRe.ReplaceAllString(data, `= "{{${1}`+typeMark+`}}"`)
}

func unquoteMarkedVars(data string) string {
	return quotedVarRe.ReplaceAllStringFunc(data, func(match string) string {
		submatch := quotedVarRe.FindStringSubmatch(match)
		return "= {{" + strings.TrimSuffix(submatch[1], typeMark) + "}}"
	})
}

func removeTypeMarks(data string) string {
	return typedVarRe.ReplaceAllStringFunc(data, func(match string) string {
		submatch := typedVarRe.FindStringSubmatch(match)
		return "{{" + strings.TrimSuffix(submatch[1], typeMark) + "}}"
	})
}

func contains(vars []string, search string) bool {
	for _, v := range vars {
		if v == search {
			return true
		}
	}
	return false
}

func readFileToString(filename string) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func convertFileToToml(fileData string, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "json":
		k := koanf.New(".")
		err := k.Load(rawbytes.Provider([]byte(fileData)), json.Parser())
		if err != nil {
			return fileData, fmt.Errorf("error loading json file. Err: %w", err)
		}
		tomlData, err := toml.Parser().Marshal(k.Raw())
		if err != nil {
			return fileData, fmt.Errorf("error converting json to toml. Err: %w", err)
		}
		return string(tomlData), nil
	case "yml", "yaml", "ini":
		return fileData, fmt.Errorf("cant convert from %s to TOML. Err: %w", fileType, ErrUnsupportedConfigFileType)
	default:
		log.Warnf("filetype %s unknown, assuming is a TOML file", fileType)
		return fileData, nil
	}
}
