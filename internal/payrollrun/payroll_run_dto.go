package payrollrun

// Summary reports what one payroll run did with the completed occurrences it
// examined.
type Summary struct {
	Processed               int `json:"processed"`
	SkippedMissingData      int `json:"skipped_missing_data"`
	SkippedPeriodError      int `json:"skipped_period_error"`
	SkippedNoRates          int `json:"skipped_no_rates"`
	SkippedAlreadyProcessed int `json:"skipped_already_processed"`
}

func (s Summary) Examined() int {
	return s.Processed + s.SkippedMissingData + s.SkippedPeriodError + s.SkippedNoRates + s.SkippedAlreadyProcessed
}
