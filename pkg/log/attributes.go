// Package log defines standard attribute keys for dataset preparation runs.
//
// Using these keys consistently across the pipeline makes log lines from a
// generation run filterable by stage, table shape and output artifact.

package log

// Pipeline and Stage Context
const (
	// StageKey identifies the pipeline stage emitting the log line.
	// Standard values: "load", "clean", "split", "corrupt", "persist"
	StageKey = "pipeline.stage"

	// SeedKey records the pseudo-random seed driving the run.
	// Two runs with the same seed and input must produce identical artifacts.
	SeedKey = "pipeline.seed"

	// InputPathKey records the raw CSV path read at the start of the run.
	InputPathKey = "pipeline.input_path"

	// ArtifactKey names the output file being written.
	// Examples: "train.csv", "test.csv", "solution.csv", "sample_submission.csv"
	ArtifactKey = "pipeline.artifact"
)

// Table Shape and Characteristics
const (
	// RowsKey indicates the number of rows in the table at the current stage.
	RowsKey = "table.rows"

	// ColumnsKey indicates the number of columns in the table at the current stage.
	ColumnsKey = "table.columns"

	// TargetKey names the active target column.
	TargetKey = "table.target"

	// HeldOutRowsKey indicates the size of the held-out partition after splitting.
	HeldOutRowsKey = "table.heldout_rows"

	// TrainingRowsKey indicates the size of the training partition after splitting.
	TrainingRowsKey = "table.training_rows"

	// CorruptedRowsKey indicates how many training rows received missing markers.
	CorruptedRowsKey = "table.corrupted_rows"

	// EligibleColumnsKey indicates how many columns were eligible for corruption.
	EligibleColumnsKey = "table.eligible_columns"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of a stage in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
