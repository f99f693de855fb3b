// Package commands implements the otc CLI commands.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/opentoclose/pkg/otc"
	"github.com/fivetwenty-io/opentoclose/pkg/otcclient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	NotAvailable = "N/A"

	defaultJSONIndent = 2
)

// CreateClient builds an API client from the resolved CLI configuration.
func CreateClient() (otc.Client, error) {
	config := &otc.Config{
		APIKey:  viper.GetString("token"),
		BaseURL: viper.GetString("api"),
		Debug:   viper.GetBool("debug"),
	}

	if viper.GetBool("verbose") || config.Debug {
		config.Logger = &stderrLogger{}
	}

	client, err := otcclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// stderrLogger adapts the CLI's verbose output to the otc.Logger interface.
type stderrLogger struct{}

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, fields[key]))
	}

	fmt.Fprintf(os.Stderr, "[%s] %s %s\n", level, msg, strings.Join(parts, " "))
}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }

// StandardJSONRenderer writes data as indented JSON to stdout.
func StandardJSONRenderer(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML to stdout.
func StandardYAMLRenderer(data interface{}) error {
	encoded, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	fmt.Print(string(encoded))

	return nil
}

// OutputRecords renders a record list in the configured output format. The
// table view shows the given columns; records are dynamic, so absent values
// render as N/A.
func OutputRecords(records []otc.Record, columns []string) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(records)
	case OutputFormatYAML:
		return StandardYAMLRenderer(records)
	default:
		return renderRecordsTable(records, columns)
	}
}

// OutputRecord renders a single record in the configured output format.
func OutputRecord(record otc.Record) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(record)
	case OutputFormatYAML:
		return StandardYAMLRenderer(record)
	default:
		return renderRecordTable(record)
	}
}

func renderRecordsTable(records []otc.Record, columns []string) error {
	if len(records) == 0 {
		fmt.Println("No results found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)

	headers := make([]any, 0, len(columns))
	for _, column := range columns {
		headers = append(headers, strings.ToUpper(strings.ReplaceAll(column, "_", " ")))
	}

	table.Header(headers...)

	for _, record := range records {
		row := make([]any, 0, len(columns))

		for _, column := range columns {
			value := record.String(column)
			if value == "" {
				value = NotAvailable
			}

			row = append(row, value)
		}

		_ = table.Append(row...)
	}

	_ = table.Render()

	return nil
}

func renderRecordTable(record otc.Record) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")

	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		_ = table.Append(key, record.String(key))
	}

	_ = table.Render()

	return nil
}

// ParseFieldArgs turns key=value arguments into a payload map.
func ParseFieldArgs(args []string) (map[string]interface{}, error) {
	data := make(map[string]interface{}, len(args))

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid field %q, expected key=value", arg)
		}

		data[key] = value
	}

	return data, nil
}

// listParamsFromFlags reads the shared --limit/--offset flags into listing
// parameters, nil when neither was set.
func listParamsFromFlags(cmd *cobra.Command) map[string]interface{} {
	params := map[string]interface{}{}

	if cmd.Flags().Changed("limit") {
		limit, _ := cmd.Flags().GetInt("limit")
		params["limit"] = limit
	}

	if cmd.Flags().Changed("offset") {
		offset, _ := cmd.Flags().GetInt("offset")
		params["offset"] = offset
	}

	if len(params) == 0 {
		return nil
	}

	return params
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", 0, "maximum number of results")
	cmd.Flags().Int("offset", 0, "number of results to skip")
}
