package config

import (
	"reflect"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/tessellated-io/signet/log"
)

// WriteYamlWithComments writes config as YAML, placing each field's `comment` tag above it. Existing
// files are left alone.
func WriteYamlWithComments(config interface{}, header string, filename string, logger *log.Logger) error {
	fileData, err := addCommentsToYaml(config, header)
	if err != nil {
		return err
	}

	return SafeWrite(filename, fileData, logger)
}

// LoadYaml reads a YAML file from a short path into out. Keys that don't map to a field are an error.
func LoadYaml(filename string, out interface{}) error {
	contents, err := ReadFileContents(filename)
	if err != nil {
		return err
	}

	return yaml.UnmarshalStrict(contents, out)
}

func addCommentsToYaml(config interface{}, header string) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, err
	}

	var result strings.Builder

	if header != "" {
		result.WriteString("# " + header + "\n")
	}

	// Handle both struct and pointer to struct
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	yamlStr := string(data)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)

		key := strings.Split(field.Tag.Get("yaml"), ",")[0]
		comment := field.Tag.Get("comment")
		if key == "" || key == "-" {
			continue
		}

		// Only match top level keys, ie. at the start of a line
		lineStart := findTopLevelKey(yamlStr, key)
		if lineStart < 0 {
			continue
		}

		lineEnd := strings.Index(yamlStr[lineStart:], "\n")
		if lineEnd < 0 {
			lineEnd = len(yamlStr)
		} else {
			lineEnd += lineStart
		}

		result.WriteString(yamlStr[:lineStart])

		if comment != "" {
			result.WriteString("\n# " + comment + "\n")
		}

		result.WriteString(yamlStr[lineStart:lineEnd])
		yamlStr = yamlStr[lineEnd:]
	}

	result.WriteString(yamlStr)
	return []byte(result.String()), nil
}

func findTopLevelKey(yamlStr, key string) int {
	if strings.HasPrefix(yamlStr, key+":") {
		return 0
	}

	index := strings.Index(yamlStr, "\n"+key+":")
	if index < 0 {
		return -1
	}
	return index + 1
}
