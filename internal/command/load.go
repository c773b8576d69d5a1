package command

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/point-o/sham/internal/symbols"
	"github.com/point-o/sham/internal/value"
)

// Load reads external data into a variable. Two formats: CSV files
// become a list of maps keyed by the header row, YAML documents become
// the equivalent Value tree.
type Load struct{}

func (Load) Name() string  { return "load" }
func (Load) Usage() string { return "load csv|yaml <name> <path>" }

func (Load) Execute(env *symbols.Table, args []string) Result {
	if len(args) != 3 {
		return Failure("usage: " + Load{}.Usage())
	}
	format, name, path := args[0], args[1], args[2]

	var (
		v   value.Value
		err error
	)
	switch format {
	case "csv":
		v, err = loadCSV(path)
	case "yaml":
		v, err = loadYAML(path)
	default:
		return Failure(fmt.Sprintf("unknown load format '%s'", format))
	}
	if err != nil {
		return Failure(err.Error())
	}
	if err := env.Set(name, v); err != nil {
		return Failure(err.Error())
	}
	return Success(fmt.Sprintf("loaded %s into %s", path, name))
}

// loadCSV parses a CSV file whose first row names the columns. Cells
// stay strings; rows missing trailing cells get empty strings so every
// row has every column.
func loadCSV(path string) (value.Value, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, fmt.Errorf("cannot read file: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1 // tolerate ragged rows, missing cells are padded below
	records, err := reader.ReadAll()
	if err != nil {
		return value.Value{}, fmt.Errorf("CSV parse error: %w", err)
	}
	if len(records) == 0 {
		return value.OfList(nil), nil
	}

	headers := records[0]
	rows := make([]value.Value, 0, len(records)-1)
	for _, rec := range records[1:] {
		fields := make(map[string]value.Value, len(headers))
		for i, header := range headers {
			cell := ""
			if i < len(rec) {
				cell = rec[i]
			}
			fields[header] = value.OfString(cell)
		}
		rows = append(rows, value.OfMap(fields))
	}
	return value.OfList(rows), nil
}

func loadYAML(path string) (value.Value, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, fmt.Errorf("cannot read file: %w", err)
	}

	var data any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return value.Value{}, fmt.Errorf("YAML parse error: %w", err)
	}
	return fromYAML(data)
}

// fromYAML converts what yaml.Unmarshal produced into a Value tree.
// Integers that fit int32 become Integer, wider ones Long; yaml.v3
// returns int for integers, not float64 like encoding/json.
func fromYAML(data any) (value.Value, error) {
	switch v := data.(type) {
	case nil:
		return value.OfNull(), nil
	case bool:
		return value.OfBool(v), nil
	case int:
		return yamlInt(int64(v)), nil
	case int64:
		return yamlInt(v), nil
	case float64:
		return value.OfDouble(v), nil
	case string:
		return value.OfString(v), nil
	case []any:
		items := make([]value.Value, len(v))
		for i, item := range v {
			obj, err := fromYAML(item)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = obj
		}
		return value.OfList(items), nil
	case map[string]any:
		fields := make(map[string]value.Value, len(v))
		for k, item := range v {
			obj, err := fromYAML(item)
			if err != nil {
				return value.Value{}, err
			}
			fields[k] = obj
		}
		return value.OfMap(fields), nil
	case map[any]any:
		fields := make(map[string]value.Value, len(v))
		for k, item := range v {
			obj, err := fromYAML(item)
			if err != nil {
				return value.Value{}, err
			}
			fields[fmt.Sprintf("%v", k)] = obj
		}
		return value.OfMap(fields), nil
	}
	return value.Value{}, fmt.Errorf("unsupported YAML value type %T", data)
}

func yamlInt(n int64) value.Value {
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return value.OfInt(int32(n))
	}
	return value.OfLong(n)
}
