package dataset

import "fmt"

// LabeledQuery is one evaluation case: a raw file name and the title and
// author a correct normalization should produce.
type LabeledQuery struct {
	ID             string `json:"id" yaml:"id" parquet:"id"`
	Query          string `json:"query" yaml:"query" parquet:"query"`
	HintedAuthor   string `json:"hinted_author,omitempty" yaml:"hinted_author,omitempty" parquet:"hinted_author,optional"`
	ExpectedTitle  string `json:"expected_title" yaml:"expected_title" parquet:"expected_title"`
	ExpectedAuthor string `json:"expected_author" yaml:"expected_author" parquet:"expected_author,optional"`
}

// Validate reports records that cannot be evaluated
func (q *LabeledQuery) Validate() error {
	if q.Query == "" {
		return fmt.Errorf("record %q has no query", q.ID)
	}
	return nil
}

// Identifier returns the record ID, falling back to its position in the dataset
func (q *LabeledQuery) Identifier(index int) string {
	if q.ID != "" {
		return q.ID
	}
	return fmt.Sprintf("%d", index+1)
}
