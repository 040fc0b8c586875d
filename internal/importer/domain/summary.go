package importer

// ImportSummary aggregates a dry run over the full normalized set. It is
// computed without side effects: the same input always yields the same
// summary.
type ImportSummary struct {
	ToBeCreated      int `json:"toBeCreated"`
	ToBeSkipped      int `json:"toBeSkipped"`
	ValidationErrors int `json:"validationErrors"`
}

// Summarize partitions rows on the presence of blocking errors. Rows with
// warnings only remain creatable.
func Summarize(events []NormalizedEvent) ImportSummary {
	var summary ImportSummary
	for _, event := range events {
		if event.HasBlockingErrors() {
			summary.ToBeSkipped++
			summary.ValidationErrors++
			continue
		}
		summary.ToBeCreated++
	}
	return summary
}

// CommitResult is the outcome of persisting an import.
type CommitResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
