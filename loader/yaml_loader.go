package loader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/debtreport/validator"
)

type yamlFile struct {
	Records []yamlRecord `yaml:"records"`
}

type yamlRecord struct {
	CountryName   string    `yaml:"country_name"`
	IndicatorCode string    `yaml:"indicator_code"`
	IndicatorName string    `yaml:"indicator_name"`
	Debt          yaml.Node `yaml:"debt"`
}

// YAMLSource reads a document of the form
//
//	records:
//	  - country_name: Afghanistan
//	    indicator_code: DT.AMT.DLXF.CD
//	    indicator_name: "Principal repayments on external debt, long-term (AMT, current US$)"
//	    debt: 61739336.9
type YAMLSource struct {
	Path string
}

func (s *YAMLSource) Describe() string {
	return "yaml file " + s.Path
}

func (s *YAMLSource) Rows(ctx context.Context) ([]validator.RecordInput, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading yaml file: %w", err)
	}
	return parseYAML(data)
}

func parseYAML(data []byte) ([]validator.RecordInput, error) {
	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	rows := make([]validator.RecordInput, 0, len(yf.Records))
	for i, r := range yf.Records {
		rows = append(rows, validator.RecordInput{
			Row:           i + 1,
			CountryName:   r.CountryName,
			IndicatorCode: r.IndicatorCode,
			IndicatorName: r.IndicatorName,
			Debt:          scalarText(r.Debt),
		})
	}
	return rows, nil
}

// scalarText returns the literal text of a scalar node, or "" for null,
// missing and non-scalar values.
func scalarText(n yaml.Node) string {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return ""
	}
	return n.Value
}
